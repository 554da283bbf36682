package main

import (
	"os"

	"github.com/spf13/cobra"

	"docker-worker-mgr/config"
	clog "docker-worker-mgr/utils/log" //custom log
)

func main() {
	clog.LogSet("info")

	if err := rootCmd().Execute(); err != nil {
		clog.Error("command failed", "err", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var configPath string
	var logLevel string
	cfg := config.Default()

	cmd := &cobra.Command{
		Use:           "worker-mgr",
		Short:         "Keeps a database of Docker workers in sync with the engine",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(configPath)
			if err != nil {
				return err
			}
			*cfg = *loaded
			if logLevel != "" {
				cfg.Log.Level = logLevel
			}
			clog.LogSet(cfg.Log.Level)
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", os.Getenv("WORKER_MGR_CONFIG"), "YAML config file")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override log.level (debug, info, warn, error)")

	cmd.AddCommand(
		serveCmd(cfg),
		syncCmd(cfg),
		startCmd(cfg),
		stopCmd(cfg),
		statsCmd(cfg),
		workersCmd(cfg),
	)
	return cmd
}
