package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"docker-worker-mgr/config"
	"docker-worker-mgr/internal/redisops"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func syncCmd(cfg *config.Config) *cobra.Command {
	var remote bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Run one reconciliation pass and print its report",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if remote {
				if !cfg.RedisEnabled() {
					return fmt.Errorf("--remote needs redis.host")
				}
				rdb, err := redisops.NewRedisClient(ctx, &cfg.Redis)
				if err != nil {
					return err
				}
				defer rdb.Close()
				host, _ := os.Hostname()
				if err := redisops.PublishSyncRequest(ctx, rdb, "cli@"+host); err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), "sync requested")
				return err
			}

			deps, cleanup, err := buildDeps(ctx, cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			report, err := deps.Service.Reconcile(ctx)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), report)
		},
	}
	cmd.Flags().BoolVar(&remote, "remote", false, "Ask running servers to sync through redis instead of syncing here")
	return cmd
}

func startCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "start CONTAINER",
		Short: "Start a container unless it is already running",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, cleanup, err := buildDeps(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := deps.Service.StartContainer(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
}

func stopCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "stop CONTAINER",
		Short: "Stop a container unless it is already stopped",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, cleanup, err := buildDeps(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := deps.Service.StopContainer(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
}

func statsCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "stats CONTAINER",
		Short: "Print one live resource-usage sample",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, cleanup, err := buildDeps(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			s, err := deps.Service.GetStatistics(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), s)
		},
	}
}

func workersCmd(cfg *config.Config) *cobra.Command {
	var page, size int

	cmd := &cobra.Command{
		Use:   "workers [CONTAINER]",
		Short: "List stored workers, or show one in full",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, cleanup, err := buildDeps(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			if len(args) == 1 {
				w, err := deps.Service.GetWorker(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if w == nil {
					return fmt.Errorf("no worker for container %s", args[0])
				}
				return printJSON(cmd.OutOrStdout(), w)
			}

			p, err := deps.Service.ListWorkers(cmd.Context(), page, size)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), p)
		},
	}
	cmd.Flags().IntVar(&page, "page", 0, "Zero-based page")
	cmd.Flags().IntVar(&size, "size", 20, "Page size (1-100)")
	return cmd
}
