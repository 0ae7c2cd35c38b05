package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"parbfs/pkg/config"
	"parbfs/pkg/graph"
)

// outputOptions are shared by every source subcommand.
type outputOptions struct {
	path             string
	format           string
	largestComponent bool
}

func main() {
	cfg := config.New()
	var (
		configPath string
		out        outputOptions
	)

	rootCmd := &cobra.Command{
		Use:   "preprocess",
		Short: "Convert edge lists, OSM extracts or generated graphs into the binary graph format",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configPath != "" {
				if err := cfg.LoadFromFile(configPath); err != nil {
					return err
				}
			}
			if out.format != "binary" && out.format != "edgelist" {
				return fmt.Errorf("unknown output format %q (want binary or edgelist)", out.format)
			}
			return cfg.Validate()
		},
		SilenceUsage: true,
	}
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "Config file (env overrides use the PARBFS_ prefix)")
	pf.String("log-level", "info", "Log level: debug|info|warn|error")
	pf.StringVarP(&out.path, "output", "o", "graph.bin", "Output file path")
	pf.StringVar(&out.format, "format", "binary", "Output format: binary|edgelist")
	pf.BoolVar(&out.largestComponent, "largest-component", false, "Keep only the largest weakly connected component")
	if err := cfg.BindFlag("logging.level", pf.Lookup("log-level")); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(newEdgeListCmd(cfg, &out))
	rootCmd.AddCommand(newOSMCmd(cfg, &out))
	rootCmd.AddCommand(newGenerateCmd(cfg, &out))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// save optionally reduces g to its largest component and writes it in the
// selected format.
func save(g *graph.Graph, out outputOptions, log zerolog.Logger) error {
	cs := graph.Components(g)
	log.Info().
		Uint32("nodes", g.NumNodes).
		Uint32("edges", g.NumEdges).
		Int("components", cs.Count).
		Uint32("largest", cs.Largest).
		Msg("graph built")

	if out.largestComponent && g.NumNodes > 0 {
		componentNodes := graph.LargestComponent(g)
		log.Info().
			Int("nodes", len(componentNodes)).
			Float64("percent", float64(len(componentNodes))/float64(g.NumNodes)*100).
			Msg("largest component")
		g = graph.FilterToComponent(g, componentNodes)
		log.Info().Uint32("nodes", g.NumNodes).Uint32("edges", g.NumEdges).Msg("filtered graph")
	}

	start := time.Now()
	if err := write(g, out); err != nil {
		return err
	}

	info, err := os.Stat(out.path)
	if err != nil {
		return err
	}
	log.Info().
		Str("path", out.path).
		Float64("mb", float64(info.Size())/(1024*1024)).
		Dur("elapsed", time.Since(start)).
		Msg("output written")
	return nil
}

func write(g *graph.Graph, out outputOptions) error {
	if out.format == "binary" {
		if err := graph.WriteBinary(out.path, g); err != nil {
			return fmt.Errorf("write binary: %w", err)
		}
		return nil
	}

	f, err := os.Create(out.path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := graph.WriteEdgeList(f, g); err != nil {
		f.Close()
		return fmt.Errorf("write edge list: %w", err)
	}
	return f.Close()
}

// parseBBox parses "minLat,minLng,maxLat,maxLng".
func parseBBox(s string) (minLat, minLng, maxLat, maxLng float64, err error) {
	s = strings.ReplaceAll(s, " ", "")
	_, err = fmt.Sscanf(s, "%f,%f,%f,%f", &minLat, &minLng, &maxLat, &maxLng)
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("invalid bbox %q (expected minLat,minLng,maxLat,maxLng): %w", s, err)
	}
	if minLat > maxLat || minLng > maxLng {
		return 0, 0, 0, 0, fmt.Errorf("invalid bbox %q: minimum exceeds maximum", s)
	}
	return minLat, minLng, maxLat, maxLng, nil
}
