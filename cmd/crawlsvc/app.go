package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"github.com/user/website-crawl-service/internal/adapter/cached"
	"github.com/user/website-crawl-service/internal/adapter/encrypter"
	"github.com/user/website-crawl-service/internal/adapter/firecrawl"
	"github.com/user/website-crawl-service/internal/adapter/memory"
	"github.com/user/website-crawl-service/internal/adapter/postgres"
	redis_adapter "github.com/user/website-crawl-service/internal/adapter/redis"
	"github.com/user/website-crawl-service/internal/delivery/http/handler"
	"github.com/user/website-crawl-service/internal/repository"
	"github.com/user/website-crawl-service/internal/usecase"
	"github.com/user/website-crawl-service/pkg/config"
	"github.com/user/website-crawl-service/pkg/logger"
)

// app holds the wired dependencies shared by all commands.
type app struct {
	cfg            *config.Config
	dbpool         *pgxpool.Pool
	rdb            *redis.Client
	credentialRepo repository.CredentialRepository
	cipher         *encrypter.TenantEncrypter
	websiteService usecase.WebsiteService
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	logger.Init(os.Stderr, logger.ParseLevel(cfg.Log.Level), cfg.Log.Format)
	return cfg, nil
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	// PostgreSQL
	dbpool, err := pgxpool.New(ctx, cfg.Postgres.URL)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}
	if err := dbpool.Ping(ctx); err != nil {
		dbpool.Close()
		return nil, fmt.Errorf("unable to reach database: %w", err)
	}
	slog.Info("PostgreSQL connection pool established")

	a := &app{cfg: cfg, dbpool: dbpool}

	var credentialRepo repository.CredentialRepository = postgres.NewCredentialRepo(dbpool)
	switch cfg.Cache.Driver {
	case "redis":
		a.rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if _, err := a.rdb.Ping(ctx).Result(); err != nil {
			a.Close()
			return nil, fmt.Errorf("unable to connect to redis: %w", err)
		}
		slog.Info("Redis connection established")
		credentialRepo = cached.NewCredentialRepo(credentialRepo, redis_adapter.NewCredentialCache(a.rdb), cfg.Cache.TTL)
	case "memory":
		credentialRepo = cached.NewCredentialRepo(credentialRepo, memory.NewCredentialCache(cfg.Cache.TTL, 2*cfg.Cache.TTL), cfg.Cache.TTL)
	}
	slog.Info("Credential cache configured", "driver", cfg.Cache.Driver, "ttl", cfg.Cache.TTL.String())
	a.credentialRepo = credentialRepo

	a.cipher, err = encrypter.New(cfg.Encryption.Secret)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.websiteService = usecase.NewWebsiteService(
		a.credentialRepo,
		a.cipher,
		firecrawl.NewProvider(cfg.Firecrawl.Timeout, cfg.Firecrawl.DefaultBaseURL),
	)
	return a, nil
}

func (a *app) healthChecks() map[string]handler.HealthCheck {
	checks := map[string]handler.HealthCheck{
		"postgres": a.dbpool.Ping,
	}
	if a.rdb != nil {
		checks["redis"] = func(ctx context.Context) error {
			return a.rdb.Ping(ctx).Err()
		}
	}
	return checks
}

func (a *app) Close() {
	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			slog.Error("Failed to close redis client", "error", err)
		}
	}
	a.dbpool.Close()
}

func withTimeout(d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), d)
}
