package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	apphttp "smartspend/internal/http"
	applog "smartspend/internal/log"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the SmartSpend dashboard",
	Long: `Serve the single-page dashboard over HTTP.

Each user action re-reads the backing files and rewrites them whole;
the server assumes it is the only process touching them.

Example:
  smartspend serve
  PORT=9000 DATA_DIR=/srv/smartspend smartspend serve`,
	Run: runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	cfg := loadConfig()

	svc, err := buildService(cfg)
	if err != nil {
		slog.Error("Failed to initialize service", applog.FieldError, err)
		os.Exit(1)
	}

	srv := apphttp.NewServer(":"+cfg.Port, svc)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Starting smartspend server",
			"port", cfg.Port, applog.FieldBackend, cfg.DataBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("Server error", applog.FieldError, err)
		os.Exit(1)
	}
	slog.Info("Server stopped gracefully")
}
