package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"parbfs/pkg/config"
	"parbfs/pkg/graph"
	osmparser "parbfs/pkg/osm"
)

func newEdgeListCmd(cfg *config.Config, out *outputOptions) *cobra.Command {
	var (
		input    string
		numNodes uint32
	)

	cmd := &cobra.Command{
		Use:   "edgelist",
		Short: "Read a whitespace-separated edge list (one \"u v\" pair per line)",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := cfg.CreateLogger("preprocess")

			f, err := os.Open(input)
			if err != nil {
				return fmt.Errorf("open input: %w", err)
			}
			defer f.Close()

			start := time.Now()
			g, err := graph.ReadEdgeList(f, numNodes)
			if err != nil {
				return err
			}
			log.Info().Str("input", input).Dur("elapsed", time.Since(start)).Msg("edge list parsed")
			return save(g, *out, log)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Path to edge list file")
	cmd.Flags().Uint32Var(&numNodes, "nodes", 0, "Minimum vertex count (default: largest id + 1)")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func newOSMCmd(cfg *config.Config, out *outputOptions) *cobra.Command {
	var (
		input     string
		bbox      string
		profile   string
		singapore bool
		kl        bool
	)

	cmd := &cobra.Command{
		Use:   "osm",
		Short: "Extract the road network from an OpenStreetMap .osm.pbf file",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := cfg.CreateLogger("preprocess")

			p, err := osmparser.ParseProfile(profile)
			if err != nil {
				return err
			}
			opts := osmparser.ParseOptions{Profile: p, Logger: log}

			switch {
			case kl:
				opts.BBox = osmparser.BBox{MinLat: 2.75, MaxLat: 3.5, MinLng: 101.2, MaxLng: 102.0}
			case singapore:
				opts.BBox = osmparser.BBox{MinLat: 1.15, MaxLat: 1.48, MinLng: 103.6, MaxLng: 104.1}
			case bbox != "":
				minLat, minLng, maxLat, maxLng, err := parseBBox(bbox)
				if err != nil {
					return err
				}
				opts.BBox = osmparser.BBox{MinLat: minLat, MaxLat: maxLat, MinLng: minLng, MaxLng: maxLng}
			}
			if !opts.BBox.IsZero() {
				log.Info().
					Float64("min_lat", opts.BBox.MinLat).Float64("max_lat", opts.BBox.MaxLat).
					Float64("min_lng", opts.BBox.MinLng).Float64("max_lng", opts.BBox.MaxLng).
					Msg("using bounding box filter")
			}

			f, err := os.Open(input)
			if err != nil {
				return fmt.Errorf("open input: %w", err)
			}
			defer f.Close()

			start := time.Now()
			parseResult, err := osmparser.Parse(cmd.Context(), f, opts)
			if err != nil {
				return fmt.Errorf("parse OSM data: %w", err)
			}
			log.Info().
				Int("edges", len(parseResult.Edges)).
				Int("nodes", len(parseResult.NodeLat)).
				Stringer("profile", p).
				Dur("elapsed", time.Since(start)).
				Msg("OSM data parsed")

			return save(graph.FromOSM(parseResult), *out, log)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Path to .osm.pbf file")
	cmd.Flags().StringVar(&bbox, "bbox", "", "Bounding box filter: minLat,minLng,maxLat,maxLng (e.g. 1.15,103.6,1.48,104.1)")
	cmd.Flags().StringVar(&profile, "profile", "car", "Network profile: car|walk")
	cmd.Flags().BoolVar(&singapore, "singapore", false, "Shortcut for --bbox 1.15,103.6,1.48,104.1")
	cmd.Flags().BoolVar(&kl, "kl", false, "Shortcut for --bbox 2.75,101.2,3.5,102.0 (Selangor + Kuala Lumpur)")
	_ = cmd.MarkFlagRequired("input")
	cmd.MarkFlagsMutuallyExclusive("bbox", "singapore", "kl")
	return cmd
}

func newGenerateCmd(cfg *config.Config, out *outputOptions) *cobra.Command {
	var (
		kind       string
		nodes      uint32
		width      uint32
		height     uint32
		degree     uint32
		scale      uint32
		edgeFactor uint32
		seed       uint64
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a synthetic graph",
		Long: `Generate a synthetic graph. Kinds:
  chain     0 -> 1 -> ... -> n-1
  complete  every ordered pair of distinct vertices
  star      vertex 0 points at every other vertex
  grid      width x height lattice with edges both ways
  uniform   n*degree edges with uniformly random endpoints
  rmat      2^scale vertices, edge-factor*2^scale skewed R-MAT edges`,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := cfg.CreateLogger("preprocess")

			start := time.Now()
			var g *graph.Graph
			switch kind {
			case "chain":
				g = graph.Chain(nodes)
			case "complete":
				g = graph.Complete(nodes)
			case "star":
				g = graph.Star(nodes)
			case "grid":
				g = graph.Grid(width, height)
			case "uniform":
				g = graph.Uniform(nodes, degree, seed)
			case "rmat":
				if scale > 30 {
					return fmt.Errorf("scale %d too large (max 30)", scale)
				}
				g = graph.RMAT(scale, edgeFactor, seed)
			default:
				return fmt.Errorf("unknown kind %q", kind)
			}
			log.Info().Str("kind", kind).Dur("elapsed", time.Since(start)).Msg("graph generated")
			return save(g, *out, log)
		},
	}

	cmd.Flags().StringVarP(&kind, "kind", "k", "rmat", "Graph kind: chain|complete|star|grid|uniform|rmat")
	cmd.Flags().Uint32VarP(&nodes, "nodes", "n", 1000, "Vertex count for chain, complete, star and uniform")
	cmd.Flags().Uint32Var(&width, "width", 100, "Grid width")
	cmd.Flags().Uint32Var(&height, "height", 100, "Grid height")
	cmd.Flags().Uint32Var(&degree, "degree", 8, "Average out-degree for uniform graphs")
	cmd.Flags().Uint32Var(&scale, "scale", 16, "log2 of the vertex count for R-MAT graphs")
	cmd.Flags().Uint32Var(&edgeFactor, "edge-factor", 16, "Edges per vertex for R-MAT graphs")
	cmd.Flags().Uint64Var(&seed, "seed", 1, "Random seed")
	return cmd
}
