package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/diewo77/go-blogs/internal/config"
	"github.com/diewo77/go-blogs/internal/db"
	"github.com/diewo77/go-blogs/internal/logger"
	"github.com/diewo77/go-blogs/internal/storage"
	"github.com/getsentry/sentry-go"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var cfg *config.Config

func main() {
	rootCmd := &cobra.Command{
		Use:           "blogs",
		Short:         "Multi-user news and blog manager",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load()
			if err != nil {
				return err
			}
			logger.Init(cfg.App.Dev, cfg.App.SentryDSN)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}
	rootCmd.AddCommand(serveCmd(), migrateCmd())

	err := rootCmd.Execute()
	sentry.Flush(2 * time.Second)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			gdb, err := db.Open(cfg.Database)
			if err != nil {
				return err
			}
			if err := db.Migrate(gdb, cfg.Database.Migrations); err != nil {
				return err
			}
			slog.Info("migrations completed", "driver", cfg.Database.Driver, "sql", cfg.Database.Migrations)
			return nil
		},
	}
}

func serve(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	gdb, err := db.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.Migrate(gdb, cfg.Database.Migrations); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	files, err := openStorage(ctx, cfg.Upload, cfg.S3)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      NewApp(cfg, gdb, files),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	return run(ctx, srv, gdb)
}

func openStorage(ctx context.Context, up config.UploadConfig, s3 config.S3Config) (storage.Storage, error) {
	if up.Backend == "s3" {
		return storage.NewS3(ctx, storage.S3Config{
			Region:    s3.Region,
			Bucket:    s3.Bucket,
			AccessKey: s3.AccessKey,
			SecretKey: s3.SecretKey,
			Endpoint:  s3.Endpoint,
		})
	}
	return storage.NewLocal(up.Folder)
}

// run serves until SIGINT/SIGTERM, then shuts down gracefully.
func run(ctx context.Context, srv *http.Server, gdb *gorm.DB) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", srv.Addr, "dev", cfg.App.Dev)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
		slog.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("error during shutdown", "error", err)
	}
	if sqlDB, err := gdb.DB(); err == nil {
		sqlDB.Close()
	}
	slog.Info("server stopped gracefully")
	return nil
}
