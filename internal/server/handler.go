package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"docker-worker-mgr/internal/appctx"
	clog "docker-worker-mgr/utils/log" //custom log
)

// StartHTTPServer serves on ln until ctx ends, then drains in-flight
// requests for a few seconds. The caller owns binding so it can report
// readiness once the port is open.
func StartHTTPServer(ctx context.Context, ln net.Listener, deps *appctx.Dependencies) error {
	srv := &http.Server{
		Handler:           NewRouter(deps),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		clog.Info("Listening", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	clog.Info("Shutting down HTTP server")
	return srv.Shutdown(shutdownCtx)
}
