package a3diet

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/a3health/a3diet/internal/app"
	"github.com/a3health/a3diet/internal/config"
	"github.com/a3health/a3diet/internal/db"
	"github.com/a3health/a3diet/internal/httpapi"
	"github.com/a3health/a3diet/internal/jobs"
	"github.com/a3health/a3diet/internal/logger"
	"github.com/a3health/a3diet/internal/mcpserver"
)

const shutdownTimeout = 10 * time.Second

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API, the MCP endpoint and scheduled jobs",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("addr") {
			cfg.HTTPAddr = serveAddr
		}
		log, err := logger.New(logger.Options{Level: cfg.LogLevel, Production: cfg.IsProduction})
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		path, err := resolveDBPath()
		if err != nil {
			return err
		}
		if err := app.EnsureDBDir(path); err != nil {
			return err
		}
		sqldb, err := db.OpenMigrated(path)
		if err != nil {
			return err
		}
		defer sqldb.Close()
		log.Info("database ready", zap.String("path", path))

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serve(ctx, cfg, sqldb, log)
	},
}

func serve(ctx context.Context, cfg *config.Config, sqldb *sql.DB, log *zap.Logger) error {
	scheduler := jobs.New(sqldb, log.Named("jobs"))
	if err := scheduler.AddDoctor(cfg.DoctorSchedule); err != nil {
		return err
	}
	scheduler.Start()

	srv := httpapi.New(sqldb, log.Named("http"), httpapi.WithTools(mcpserver.New(sqldb, log.Named("mcp"))))
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start(cfg.HTTPAddr) }()

	var serveErr error
	select {
	case <-ctx.Done():
		log.Info("received shutdown signal, gracefully shutting down")
	case serveErr = <-errCh:
		if serveErr != nil {
			log.Error("http server stopped", zap.Error(serveErr))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown", zap.Error(err))
	}
	if err := scheduler.Stop(shutdownCtx); err != nil {
		log.Error("scheduler shutdown", zap.Error(err))
	}
	log.Info("server stopped")
	if serveErr != nil {
		return fmt.Errorf("http server: %w", serveErr)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (env A3_HTTP_ADDR, default :8080)")
}
