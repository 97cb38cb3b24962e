package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cattlecloud.net/go/scope"
	"cattlecloud.net/go/webguard/internal/config"
	"cattlecloud.net/go/webguard/internal/server"
	"cattlecloud.net/go/webguard/logs"
	"github.com/go-faster/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// purgeInterval is how often expired sessions and reset grants are dropped
// from memory.
const purgeInterval = 10 * time.Minute

func serveCommand(load func() (*config.Config, *zap.Logger)) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the web front",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger := load()
			return serve(cfg, logger)
		},
	}
}

func serve(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(logs.Into(scope.New(), logger), os.Interrupt, syscall.SIGTERM)
	defer stop()

	handler := server.New(cfg, logger, server.NewMemoryAccounts())

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	}

	go purge(ctx, handler)

	errs := make(chan error, 1)
	go func() {
		logs.Info(ctx, "listening", zap.String("addr", cfg.HTTP.Addr))
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		if !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "serve")
		}
		return nil
	case <-ctx.Done():
	}

	logs.Info(ctx, "shutting down")
	shutdown, cancel := scope.TTL(cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdown); err != nil {
		return errors.Wrap(err, "shutdown")
	}
	return nil
}

func purge(ctx context.Context, s *server.Server) {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Purge(); n > 0 {
				logs.Debug(ctx, "purged expired entries", zap.Int("count", n))
			}
		}
	}
}
