package components

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"roadIncidents/internal/api"
	"roadIncidents/internal/api/handlers/http/catalog"
	"roadIncidents/internal/api/handlers/http/incidents"
	"roadIncidents/internal/api/handlers/http/system"
	"roadIncidents/internal/config"
	"roadIncidents/internal/pipeline"
	"roadIncidents/internal/redis"
	"roadIncidents/internal/service"
	"roadIncidents/internal/storage/postgres"
	"roadIncidents/pkg/logger"
)

type Components struct {
	logger        *slog.Logger
	HttpServer    *api.Server
	Postgres      *postgres.Postgres
	Redis         *redis.Redis
	WebhookSender *service.WebhookSender
}

func InitComponents(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Components, error) {
	logger.Info("Initializing Postgres")

	storage, err := postgres.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Error("Failed to init postgres",
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("failed to init postgres: %w", err)
	}

	if cfg.Postgres.AutoMigrate {
		version, err := postgres.Migrate(ctx, storage.Pool, logger)
		if err != nil {
			storage.Close()
			return nil, fmt.Errorf("failed to migrate: %w", err)
		}
		logger.Info("Schema up to date", slog.Int64("version", version))
	}

	c := &Components{
		logger:   logger,
		Postgres: storage,
	}

	var (
		cache  service.IncidentCache
		events service.EventQueue
	)
	if !cfg.Redis.Disabled {
		logger.Info("Initializing Redis")
		redisClient, err := redis.NewRedis(ctx, cfg.Redis, logger)
		if err != nil {
			storage.Close()
			return nil, fmt.Errorf("failed to init redis: %w", err)
		}
		c.Redis = redisClient
		cache = redis.NewIncidentCache(redisClient.Client, cfg.Redis.CacheTTL)

		if cfg.WebhookEnabled() {
			queue := redis.NewEventQueue(redisClient.Client, cfg.Webhook.QueueKey)
			events = queue
			c.WebhookSender = service.NewWebhookSender(logger, cfg.Webhook, queue)
		}
	}

	registry := pipeline.NewRegistry()
	service.RegisterValidators(registry)

	svc := service.NewService(
		service.NewIncidentQueryService(storage.IncidentRepo(), cache, logger),
		service.NewIncidentCommandService(storage.IncidentRepo(), storage.CatalogRepo(), events, logger),
		service.NewCatalogService(storage.CatalogRepo()),
		registry,
	)

	c.HttpServer = api.NewServer(ctx, cfg, logger, api.Handlers{
		Incidents: incidents.NewHandler(logger, svc),
		Catalog:   catalog.NewHandler(logger, svc),
		System:    system.NewHandler(logger, storage),
	})
	logger.Info("Initialized server")

	return c, nil
}

func SetupLogger(env string) *slog.Logger {
	switch env {
	case "local":
		return logger.SetupPrettySlog()
	case "dev":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	default:
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	}
}

func (c *Components) ShutdownAll() {
	start := time.Now()
	c.logger.Info("Component shutdown started")

	c.Postgres.Close()
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.logger.Error("Redis close failed", slog.String("err", err.Error()))
		}
	}

	c.logger.Info("All components stopped",
		slog.Duration("latency", time.Since(start)))
}
