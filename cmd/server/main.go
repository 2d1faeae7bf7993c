package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/CCC-MF/mtb-validator/internal/api"
	"github.com/CCC-MF/mtb-validator/internal/catalog"
	"github.com/CCC-MF/mtb-validator/internal/config"
	"github.com/CCC-MF/mtb-validator/internal/database"
	"github.com/CCC-MF/mtb-validator/internal/domain"
	"github.com/CCC-MF/mtb-validator/internal/repository"
	"github.com/CCC-MF/mtb-validator/internal/service"
)

func main() {
	configManager, err := config.NewManager()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := configManager.Validate(); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	cfg := configManager.GetConfig()

	logger := logrus.New()
	if level, err := logrus.ParseLevel(cfg.Logging.Level); err == nil {
		logger.SetLevel(level)
	}
	if cfg.Logging.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	logger.Infof("Starting MTB file validator on %s:%d", cfg.Server.Host, cfg.Server.Port)

	catalogs, err := buildCatalogs(cfg.Catalog, cfg.Cache, logger)
	if err != nil {
		logger.Fatalf("Failed to load clinical catalogs: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dbCfg := cfg.Database
	db, err := database.NewConnection(ctx, database.Config{
		Host:        dbCfg.Host,
		Port:        dbCfg.Port,
		Database:    dbCfg.Database,
		Username:    dbCfg.Username,
		Password:    dbCfg.Password,
		MaxConns:    int32(dbCfg.MaxOpenConns),
		MinConns:    int32(dbCfg.MaxIdleConns),
		MaxConnLife: dbCfg.ConnMaxLifetime,
		MaxConnIdle: dbCfg.ConnMaxLifetime,
		SSLMode:     dbCfg.SSLMode,
	}, logger)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Pool.Close()

	if dbCfg.MigrationsPath != "" {
		runner, err := database.NewMigrationRunner(configManager.GetDatabaseConnectionString(), dbCfg.MigrationsPath, logger)
		if err != nil {
			logger.Fatalf("Failed to set up migration runner: %v", err)
		}
		if err := runner.Up(ctx); err != nil {
			logger.Fatalf("Failed to run database migrations: %v", err)
		}
		runner.Close()
	}

	reports := repository.NewReportRepository(db.Pool, logger)
	forwarder := service.NewLogForwarder(logger)
	intake := service.NewIntakeService(logger, catalogs, reports, forwarder)

	server := api.NewServer(configManager, intake)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		logger.Info("Shutdown signal received, gracefully shutting down...")
		cancel()
	}()

	if err := server.Start(ctx); err != nil {
		logger.Fatalf("Server failed to start: %v", err)
	}

	logger.Info("Server stopped")
}

// buildCatalogs loads the static clinical catalogs from the configured
// fixture paths and wraps them with the LRU/Redis cache tiers when a
// Redis URL is configured.
func buildCatalogs(catalogCfg domain.CatalogConfig, cacheCfg domain.CacheConfig, logger *logrus.Logger) (catalog.Catalogs, error) {
	static, err := catalog.LoadStaticCatalog(catalogCfg.ICD10GMPath, catalogCfg.ICDO3Path, catalogCfg.ATCPath)
	if err != nil {
		return nil, err
	}

	var redisClient *redis.Client
	if cacheCfg.RedisURL != "" {
		opts, err := redis.ParseURL(cacheCfg.RedisURL)
		if err != nil {
			return nil, err
		}
		if cacheCfg.PoolSize > 0 {
			opts.PoolSize = cacheCfg.PoolSize
		}
		if cacheCfg.PoolTimeout > 0 {
			opts.PoolTimeout = cacheCfg.PoolTimeout
		}
		if cacheCfg.MaxRetries > 0 {
			opts.MaxRetries = cacheCfg.MaxRetries
		}
		redisClient = redis.NewClient(opts)
	}

	ttl := catalogCfg.CacheTTL
	if ttl <= 0 {
		ttl = cacheCfg.DefaultTTL
	}

	return catalog.NewCachedCatalog(static, catalog.CachedCatalogConfig{
		RedisClient: redisClient,
		TTL:         ttl,
		MaxEntries:  catalogCfg.MaxMemoryEntries,
	}, logger)
}
