package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	systemd "github.com/coreos/go-systemd/v22/daemon"
	"github.com/spf13/cobra"

	"docker-worker-mgr/config"
	"docker-worker-mgr/internal/redisops"
	"docker-worker-mgr/internal/server"
	"docker-worker-mgr/utils"
	clog "docker-worker-mgr/utils/log" //custom log
)

func serveCmd(cfg *config.Config) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the periodic sync loop",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				cfg.HTTP.Addr = addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides http.addr)")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config) error {
	deps, cleanup, err := buildDeps(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	// docker 상태 동기화 thread (panic 시 재시작)
	utils.SafeGoRoutineCtx(ctx, 5*time.Second, deps.Monitor.CheckDockerStatus)

	// 다른 인스턴스/CLI에서 온 동기화 요청 감시 thread
	if deps.RedisClient != nil {
		utils.SafeGoRoutineCtx(ctx, 5*time.Second, func(ctx context.Context) {
			redisops.SubscribeSyncRequests(ctx, deps.RedisClient, deps.Monitor.Trigger)
		})
	}

	ln, err := net.Listen("tcp", cfg.HTTP.Addr)
	if err != nil {
		return err
	}

	if ok, err := systemd.SdNotify(false, systemd.SdNotifyReady); err != nil {
		clog.Error("Failed to notify systemd that the daemon is ready.", "err", err)
	} else if ok {
		clog.Debug("Notified systemd readiness")
	}

	return server.StartHTTPServer(ctx, ln, deps)
}
