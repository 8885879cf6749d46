package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/camden-git/carregistrybackend/handlers"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the registry JSON API",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	store, err := openStore(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := os.MkdirAll(cfg.ExportDirectory, 0755); err != nil {
		return fmt.Errorf("failed to create export directory %s: %w", cfg.ExportDirectory, err)
	}

	appLog.Info("configuration loaded",
		"database", cfg.DatabasePath,
		"export_dir", cfg.ExportDirectory,
		"max_upload_mb", cfg.MaxUploadSizeMB,
		"allowed_origins", cfg.AllowedOrigins)

	serverAddr := ":" + cfg.Port
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handlers.NewRouter(cfg, store, appLog),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		appLog.Info("server listening", "addr", serverAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		appLog.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	})
	return g.Wait()
}
