// Package cmd - serve command
package cmd

import (
	"context"
	stderrors "errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"fee-wizard/adapters/feeapi"
	"fee-wizard/adapters/storage"
	"fee-wizard/api"
	"fee-wizard/core/catalog"
	"fee-wizard/core/wizard"
	"fee-wizard/internal/config"
	"fee-wizard/internal/logging"
	"fee-wizard/internal/telemetry"
)

var listenAddr string

// serveCmd runs the JSON API
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the questionnaire API server",
	Long: `Run the questionnaire API server.

The server keeps one answer set per browser session in the configured
session store and calls the fee API to list fees and calculate the result.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&listenAddr, "addr", "", "listen address (overrides server.address)")
}

// expiringStore is implemented by stores that need expired sessions swept
type expiringStore interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	if listenAddr != "" {
		cfg.Server.Address = listenAddr
	}
	defer logging.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.Telemetry, Version)
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(flushCtx)
	}()

	cat, err := catalog.LoadFile(cfg.Catalog.Path)
	if err != nil {
		return err
	}

	store, err := storage.New(ctx, cfg.Session)
	if err != nil {
		return err
	}
	defer store.Close()
	if s, ok := store.(expiringStore); ok {
		go purgeExpired(ctx, s, cfg.Session.TTL.Std())
	}

	fees := feeapi.New(feeapi.Config{
		BaseURL:         cfg.Backend.BaseURL,
		Timeout:         cfg.Backend.Timeout.Std(),
		MaxConnsPerHost: cfg.Backend.MaxConnsPerHost,
	})

	server := api.NewServer(wizard.New(cat, fees), store, cfg.Server, Version)

	logging.Info("starting fee-wizard",
		zap.String("version", Version),
		zap.String("address", cfg.Server.Address),
		zap.String("session_backend", cfg.Session.Backend),
		zap.String("fee_api", cfg.Backend.BaseURL),
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !stderrors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logging.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func purgeExpired(ctx context.Context, store expiringStore, every time.Duration) {
	if every <= 0 {
		every = 30 * time.Minute
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := store.PurgeExpired(ctx)
			if err != nil {
				logging.Warn("purge expired sessions", zap.Error(err))
				continue
			}
			if n > 0 {
				logging.Debug("purged expired sessions", zap.Int64("count", n))
			}
		}
	}
}
