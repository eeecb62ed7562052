package main

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/Sharecom5/TBM/internal/api"
	"github.com/Sharecom5/TBM/internal/cache"
	"github.com/Sharecom5/TBM/internal/config"
	"github.com/Sharecom5/TBM/internal/httpclient"
	"github.com/Sharecom5/TBM/internal/httpserver"
	"github.com/Sharecom5/TBM/internal/indexing"
	"github.com/Sharecom5/TBM/internal/linkedin"
	"github.com/Sharecom5/TBM/internal/logger"
	"github.com/Sharecom5/TBM/internal/wordpress"
)

const (
	serviceName    = "tbm-content"
	serviceVersion = "1.0.0"
)

func main() {
	// .env is a development convenience; absence is fine.
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting content service",
		logger.String("service", serviceName),
		logger.String("version", serviceVersion),
		logger.Bool("debug", cfg.Debug),
	)

	// Revalidation cache. Without Redis every fetch goes straight to the
	// CMS, which is acceptable for development.
	var revalidationCache cache.Cache = cache.Nop{}
	var redisPing func() error
	if cfg.Redis.Addr != "" {
		redisClient, err := cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Warn("Redis unavailable, revalidation cache disabled",
				logger.String("addr", cfg.Redis.Addr),
				logger.Error(err),
			)
		} else {
			log.Info("Redis connection established",
				logger.String("addr", cfg.Redis.Addr),
			)
			revalidationCache = cache.NewRedis(redisClient, log)
			redisPing = func() error {
				return redisClient.Ping(context.Background()).Err()
			}
		}
	}

	upstreamClient := httpclient.New(0)

	wp := wordpress.NewClient(cfg.WordPress.APIURL, upstreamClient, revalidationCache, log)

	notifier := indexing.NewNotifier(indexing.Config{
		ClientEmail: cfg.Indexing.ClientEmail,
		PrivateKey:  cfg.Indexing.PrivateKey,
	}, upstreamClient, log)

	publisher := linkedin.NewPublisher(linkedin.Config{
		AccessToken: cfg.LinkedIn.AccessToken,
		OwnerURN:    cfg.LinkedIn.OwnerURN(),
		SiteURL:     cfg.Site.URL,
	}, upstreamClient, log)

	handler := api.NewHandler(wp, notifier, publisher, cfg.Webhook.Secret, cfg.Site.URL, log)

	checks := map[string]httpserver.HealthChecker{}
	if redisPing != nil {
		checks["redis"] = httpserver.PingHealthChecker(redisPing, httpserver.HealthStatusDegraded)
	}

	server := httpserver.New(&httpserver.Config{
		Port:           cfg.Server.Port,
		Debug:          cfg.Debug,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		ServiceName:    serviceName,
		ServiceVersion: serviceVersion,
	}, log, checks, func(router *gin.Engine) {
		api.SetupRoutes(router, handler)
	})

	if err := server.Run(context.Background()); err != nil {
		log.Error("Server stopped with error", logger.Error(err))
		os.Exit(1)
	}

	log.Info("Content service stopped")
}
