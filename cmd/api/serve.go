package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"msdsapi/internal/cache"
	"msdsapi/internal/config"
	"msdsapi/internal/database"
	"msdsapi/internal/database/migration"
	handlers "msdsapi/internal/http/handler"
	"msdsapi/internal/http/middleware"
	"msdsapi/internal/logger"
	tracing "msdsapi/internal/otel"
	"msdsapi/internal/repository/postgres"
	"msdsapi/internal/service"
	"msdsapi/internal/storage"
)

const (
	shutdownTimeout = 15 * time.Second
	// maxUploadBytes bounds request bodies; scanned safety data sheets can be large.
	maxUploadBytes = 32 << 20
)

func newServeCmd(cfg *config.AppConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), cfg)
		},
	}
}

func serve(ctx context.Context, cfg *config.AppConfig) error {
	log, err := logger.New(cfg.Env)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(ctx, log)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := migration.EnsureMigrated(ctx, db, log); err != nil {
			return err
		}
	}

	store, err := storage.NewFromConfig(ctx, cfg.Blob)
	if err != nil {
		return fmt.Errorf("failed to initialize object storage: %w", err)
	}
	if c, ok := store.(io.Closer); ok {
		defer c.Close()
	}

	optionsCache := openOptionsCache(ctx, cfg.Redis, log)
	defer optionsCache.Close()

	docRepo := postgres.NewDocumentPostgres(db)
	attRepo := postgres.NewAttachmentPostgres(db)
	query := service.NewQueryEngine(docRepo, attRepo, optionsCache, log)
	files := service.NewFileManager(docRepo, attRepo, store, log, service.FileManagerConfig{
		SignedURLExpiry: cfg.Blob.SignedURLExpiry,
		Timeout:         cfg.Blob.Timeout,
	})
	svc := service.NewCatalogService(docRepo, attRepo, query, files, log)

	app, err := newApp(cfg, log, prometheus.DefaultRegisterer, db, svc)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server_listening", "port", cfg.Port, "env", cfg.Env, "blob_backend", cfg.Blob.Backend)
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
	}

	log.Info("server_shutdown", "timeout", shutdownTimeout.String())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var errs []error
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("shutdown http: %w", err))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("shutdown tracing: %w", err))
	}
	return errors.Join(errs...)
}

// openOptionsCache falls back to no caching when Redis is not configured or unreachable.
func openOptionsCache(ctx context.Context, cfg config.RedisConfig, log *logger.Logger) cache.OptionsCache {
	if cfg.Addr == "" {
		return cache.Nop{}
	}
	c, err := cache.NewRedis(ctx, cfg)
	if err != nil {
		log.Warn("options cache disabled", "addr", cfg.Addr, "error", err)
		return cache.Nop{}
	}
	return c
}

// newApp builds the Fiber app with the global middleware chain and all routes.
func newApp(cfg *config.AppConfig, log *logger.Logger, reg prometheus.Registerer, db *sql.DB, svc service.CatalogService) (*fiber.App, error) {
	app := fiber.New(fiber.Config{
		AppName:               "msdsapi",
		ErrorHandler:          handlers.ErrorHandler(),
		BodyLimit:             maxUploadBytes,
		DisableStartupMessage: true,
	})

	prom, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}

	app.Use(otelfiber.Middleware(otelfiber.WithNext(func(c *fiber.Ctx) bool {
		return c.Path() == "/metrics"
	})))
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(log))
	app.Use(prom.Handler())
	app.Use(middleware.Timeout(cfg.RequestTimeout))
	app.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.CORSAllowOrigins,
		AllowMethods:  "GET,POST,PUT,DELETE,OPTIONS",
		ExposeHeaders: fiber.HeaderContentDisposition + "," + middleware.RequestIDHeader,
	}))

	handlers.RegisterRoutes(app, db, svc)
	return app, nil
}
