package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"parbfs/pkg/config"
)

func main() {
	cfg := config.New()
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "bfs",
		Short: "Parallel breadth-first search over preprocessed graphs",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configPath != "" {
				if err := cfg.LoadFromFile(configPath); err != nil {
					return err
				}
			}
			return cfg.Validate()
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (env overrides use the PARBFS_ prefix)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug|info|warn|error")
	mustBind(cfg, rootCmd, "logging.level", "log-level")

	rootCmd.AddCommand(newRunCmd(cfg))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// mustBind binds a persistent or local flag of cmd to a configuration key.
func mustBind(cfg *config.Config, cmd *cobra.Command, key, flag string) {
	f := cmd.Flags().Lookup(flag)
	if f == nil {
		f = cmd.PersistentFlags().Lookup(flag)
	}
	if err := cfg.BindFlag(key, f); err != nil {
		panic(fmt.Sprintf("bind --%s: %v", flag, err))
	}
}
