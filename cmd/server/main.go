package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"parbfs/pkg/api"
	"parbfs/pkg/config"
	"parbfs/pkg/graph"
	"parbfs/pkg/metrics"
	"parbfs/pkg/query"
)

func main() {
	cfg := config.New()
	var (
		configPath string
		graphPath  string
	)

	cmd := &cobra.Command{
		Use:   "server",
		Short: "Serve breadth-first search queries over HTTP",
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if configPath != "" {
				if err := cfg.LoadFromFile(configPath); err != nil {
					return err
				}
			}
			return cfg.Validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cfg, graphPath)
		},
		SilenceUsage: true,
	}

	f := cmd.Flags()
	f.StringVar(&configPath, "config", "", "Config file (env overrides use the PARBFS_ prefix)")
	f.StringVarP(&graphPath, "graph", "g", "graph.bin", "Path to preprocessed graph binary")
	f.String("addr", ":8080", "Listen address")
	f.String("cors-origin", "", "CORS allowed origin (empty = same-origin)")
	f.Int("workers", 0, "Worker goroutines per traversal step (default: number of CPUs)")
	f.Uint64("cache-max-weight", 256<<20, "Bytes of distance buffers to cache; 0 disables the cache")
	f.String("log-level", "info", "Log level: debug|info|warn|error")
	f.String("log-format", "console", "Log format: console|json")

	for key, name := range map[string]string{
		"server.addr":        "addr",
		"server.cors_origin": "cors-origin",
		"bfs.workers":        "workers",
		"cache.max_weight":   "cache-max-weight",
		"logging.level":      "log-level",
		"logging.format":     "log-format",
	} {
		if err := cfg.BindFlag(key, f.Lookup(name)); err != nil {
			panic(err)
		}
	}

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serve(cfg *config.Config, graphPath string) error {
	log := cfg.CreateLogger("server")
	start := time.Now()

	// Load graph.
	log.Info().Str("path", graphPath).Msg("loading graph")
	g, err := graph.ReadBinary(graphPath)
	if err != nil {
		return fmt.Errorf("load graph: %w", err)
	}
	metrics.GraphNodes.Set(float64(g.NumNodes))
	metrics.GraphEdges.Set(float64(g.NumEdges))
	log.Info().
		Uint32("nodes", g.NumNodes).
		Uint32("edges", g.NumEdges).
		Bool("coordinates", g.HasCoordinates()).
		Msg("graph loaded")

	engine, err := query.NewEngine(g, query.EngineConfig{
		Options:        cfg.TraversalOptions(),
		CacheMaxWeight: cfg.CacheMaxWeight(),
		CacheTTL:       cfg.CacheTTL(),
		Logger:         log,
		Observe:        metrics.ObserveTraversal,
	})
	if err != nil {
		return err
	}
	log.Info().Dur("elapsed", time.Since(start).Round(time.Millisecond)).Msg("ready")

	// Setup HTTP server.
	srvCfg := api.ServerConfig{
		Addr:           cfg.Addr(),
		ReadTimeout:    cfg.ReadTimeout(),
		WriteTimeout:   cfg.WriteTimeout(),
		RequestTimeout: cfg.RequestTimeout(),
		MaxConcurrent:  cfg.MaxConcurrent(),
		CORSOrigin:     cfg.CORSOrigin(),
		Logger:         log,
	}
	srv := api.NewServer(srvCfg, api.NewHandlers(engine, engine))

	if err := api.ListenAndServe(srv, log); err != nil {
		log.Error().Err(err).Msg("server stopped")
		return err
	}
	return nil
}
