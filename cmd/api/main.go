package main

import (
	"context"
	"log"
	"time"

	"banner-service/internal/core/auth"
	"banner-service/internal/core/cache"
	"banner-service/internal/core/config"
	"banner-service/internal/core/database"
	"banner-service/internal/core/i18n"
	"banner-service/internal/core/logger"
	"banner-service/internal/core/server"
	banneradapter "banner-service/internal/features/banners/adapters"
	"banner-service/internal/features/banners/domain"
	bannerhandler "banner-service/internal/features/banners/handler"
	bannerservice "banner-service/internal/features/banners/service"
	catalogadapter "banner-service/internal/features/catalog/adapters"
	catalog "banner-service/internal/features/catalog/domain"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// @title Banner Service API
// @version 1.0
// @description Storefront banners: admin management and public reads of banners, their sections and translations.
// @contact.name API Support
// @license.name MIT
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	l := logger.Get()
	l.Info("Application starting",
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
	)

	fallback, err := i18n.ParseLanguageCode(cfg.DefaultLanguage)
	if err != nil {
		l.Fatal("Invalid default language", zap.String("language", cfg.DefaultLanguage), zap.Error(err))
	}

	// Initialize Database and run migrations
	db, err := openDatabase(cfg.Database, l)
	if err != nil {
		l.Fatal("Database initialization failed", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		l.Fatal("Database handle unavailable", zap.Error(err))
	}
	defer sqlDB.Close()

	// Initialize Cache
	var c cache.Cache = cache.Noop{}
	if cfg.Cache.Enabled() {
		redisCache, err := cache.NewRedisAdapter(cfg.Cache.RedisURL)
		if err != nil {
			l.Fatal("Redis configuration invalid", zap.Error(err))
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisCache.Ping(ctx); err != nil {
			l.Warn("Redis unreachable, reads fall through to the database", zap.Error(err))
		}
		cancel()
		c = redisCache
		l.Info("Redis cache enabled", zap.Duration("ttl", cfg.Cache.TTL()))
	}
	defer c.Close()

	// Initialize Banner Service & Handler
	repo := banneradapter.NewGormBannerRepository()
	transactor := database.NewTransactor(db)
	resolver := catalogadapter.NewGormResolver(db)
	translator := bannerservice.NewLanguageTranslator(fallback)

	bannerSvc := bannerservice.NewBannerService(repo, transactor, resolver, translator)
	cachedSvc := bannerservice.NewCachedBannerService(bannerSvc, c, cfg.Cache.TTL())
	bannerHdl := bannerhandler.NewBannerHandler(cachedSvc)

	tokens := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL())

	srv := server.New(cfg, map[string]server.Check{
		"database": sqlDB.PingContext,
		"cache":    c.Ping,
	})

	// Register Routes
	bannerHdl.Register(srv.App, tokens)

	if err := srv.Run(); err != nil {
		l.Fatal("Server failed to start", zap.Error(err))
	}
}

// openDatabase connects with SQL logging routed through l and migrates the
// schema when enabled.
func openDatabase(cfg config.DatabaseConfig, l *zap.Logger) (*gorm.DB, error) {
	db, err := database.Connect(cfg.URL, logger.NewGormLogger(l, cfg.SlowQueryThreshold()))
	if err != nil {
		return nil, err
	}

	if cfg.AutoMigrate {
		models := append(catalog.Models(), domain.Models()...)
		if err := database.Migrate(db, models...); err != nil {
			return nil, err
		}
		l.Info("Database schema migrated")
	}
	return db, nil
}
