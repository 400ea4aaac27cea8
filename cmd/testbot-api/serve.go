package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/testbot/testbot-api/internal/api"
	"github.com/testbot/testbot-api/internal/api/handler"
	"github.com/testbot/testbot-api/internal/core/ports"
	"github.com/testbot/testbot-api/internal/core/service"
	"github.com/testbot/testbot-api/internal/infrastructure/db/mongo"
	"github.com/testbot/testbot-api/internal/infrastructure/db/redis"
	"github.com/testbot/testbot-api/internal/infrastructure/db/sqldb"
	"github.com/testbot/testbot-api/internal/pkg/config"
	"github.com/testbot/testbot-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start the HTTP API server. Configuration is read from the environment
(PORT, JWT_SECRET, DB_DRIVER, DB_DSN, REDIS_ADDR, MONGO_URI, ...).`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	level := cfg.LogLevel
	if logLevel != "" {
		level = logLevel
	}
	log := logger.Init(logger.Options{
		Level:   level,
		Pretty:  cfg.IsDevelopment(),
		Service: "testbot-api",
	})

	// --- Relational store (required) ---
	db, err := sqldb.Connect(ctx, sqldb.Config{
		Driver:       cfg.Database.Driver,
		DSN:          cfg.Database.DSN,
		MaxOpenConns: cfg.Database.MaxOpenConns,
	}, log)
	if err != nil {
		log.Error().Err(err).Msg("could not connect to the database, server not started")
		return err
	}
	defer func() {
		if err := sqldb.Close(db); err != nil {
			log.Warn().Err(err).Msg("closing database")
		}
	}()
	log.Info().Str("driver", cfg.Database.Driver).Msg("database connected")

	if cfg.Database.AutoMigrate {
		if err := sqldb.AutoMigrate(ctx, db); err != nil {
			return err
		}
		log.Warn().Msg("database schema auto-migrated")
	}

	checks := map[string]handler.Check{
		"database": func(ctx context.Context) error { return sqldb.Ping(ctx, db) },
	}

	// --- Optional stores ---
	var dedup ports.ReportDeduplicator
	if cfg.Redis.Addr != "" {
		rdb, err := redis.Connect(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		defer closeRedis(rdb, log)

		dedup = redis.NewReportDedup(rdb)
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		log.Info().Str("addr", cfg.Redis.Addr).Msg("report idempotency enabled")
	}

	var audit ports.AuditRepository
	if cfg.Mongo.URI != "" {
		client, mdb, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return err
		}
		defer func() {
			if err := client.Disconnect(context.Background()); err != nil {
				log.Warn().Err(err).Msg("disconnecting mongo")
			}
		}()

		auditRepo := mongo.NewAuditRepository(mdb)
		if err := auditRepo.EnsureIndexes(ctx); err != nil {
			log.Warn().Err(err).Msg("could not create audit indexes")
		}
		audit = auditRepo
		checks["mongodb"] = func(ctx context.Context) error { return client.Ping(ctx, nil) }
		log.Info().Str("database", cfg.Mongo.Database).Msg("report audit trail enabled")
	}

	e := api.NewRouter(buildDependencies(cfg, db, dedup, audit, checks, log))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}

func buildDependencies(
	cfg *config.Config,
	db *gorm.DB,
	dedup ports.ReportDeduplicator,
	audit ports.AuditRepository,
	checks map[string]handler.Check,
	log zerolog.Logger,
) api.Dependencies {
	tokens := service.NewTokenManager(cfg.JWTSecret)

	return api.Dependencies{
		Auth:        service.NewAuthService(sqldb.NewUserRepository(db), tokens, log),
		Tokens:      tokens,
		Data:        service.NewDataService(sqldb.NewSnapshotRepository(db)),
		TestCases:   service.NewTestCaseService(sqldb.NewTestCaseRepository(db), log),
		Reports:     service.NewReportService(sqldb.NewReportRepository(db), dedup, audit, log),
		Templates:   service.NewTemplateService(sqldb.NewTemplateRepository(db), log),
		Checks:      checks,
		CORSOrigins: cfg.CORSOrigins,
		Logger:      log,
	}
}

func closeRedis(rdb *goredis.Client, log zerolog.Logger) {
	if err := rdb.Close(); err != nil {
		log.Warn().Err(err).Msg("closing redis")
	}
}
