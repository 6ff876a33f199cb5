package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oneride/ride-gateway/internal/api/handlers"
	"github.com/oneride/ride-gateway/internal/api/middleware"
	"github.com/oneride/ride-gateway/internal/api/routes"
	"github.com/oneride/ride-gateway/internal/config"
	"github.com/oneride/ride-gateway/internal/provider/bolt"
	"github.com/oneride/ride-gateway/pkg/cache"
	"github.com/oneride/ride-gateway/pkg/logger"
	"github.com/oneride/ride-gateway/pkg/monitoring"
	"github.com/oneride/ride-gateway/pkg/requestlog"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer appLogger.Sync()

	appLogger.Info("Starting OneRide provider gateway",
		logger.String("env", cfg.Server.Env),
		logger.String("port", cfg.Server.Port),
	)

	// Initialize New Relic
	nrApp, err := monitoring.New(monitoring.Config{
		LicenseKey: cfg.NewRelic.LicenseKey,
		AppName:    cfg.NewRelic.AppName,
		Enabled:    cfg.NewRelic.Enabled,
	})
	if err != nil {
		appLogger.Warn("Failed to initialize New Relic", logger.Err(err))
		nrApp, _ = monitoring.New(monitoring.Config{})
	} else if nrApp.IsEnabled() {
		appLogger.Info("New Relic APM initialized",
			logger.String("app_name", cfg.NewRelic.AppName))
	}
	defer nrApp.Shutdown(10 * time.Second)

	// Request diagnostics sink: file-based when configured, discarded otherwise
	var sink requestlog.Sink = requestlog.Nop()
	if cfg.Provider.RequestLogDir != "" {
		fileSink, err := requestlog.NewFileSink(cfg.Provider.RequestLogDir)
		if err != nil {
			appLogger.Warn("Failed to create request log sink", logger.Err(err))
		} else {
			sink = fileSink
			appLogger.Info("Provider request logging enabled",
				logger.String("dir", cfg.Provider.RequestLogDir))
		}
	}

	// Deep link builder
	deeplink := bolt.NewDeeplinkBuilder(bolt.DeeplinkConfig{
		Scheme:      bolt.DeeplinkScheme(cfg.Deeplink.Scheme),
		ClientID:    cfg.Deeplink.ClientID,
		OneLinkBase: cfg.Deeplink.OneLinkBase,
		AppScheme:   cfg.Deeplink.AppScheme,
	})

	// Provider service
	boltService := bolt.NewService(bolt.Config{
		BaseURL:         cfg.Provider.BaseURL,
		Host:            cfg.Provider.APIHost,
		SentryPublicKey: cfg.Provider.SentryPublicKey,
		ReleasePackage:  cfg.Provider.ReleasePackage,
		VersionCode:     cfg.Provider.VersionCode,
		Timeout:         cfg.Provider.Timeout,
	}, deeplink, appLogger, sink)

	h := handlers.NewHandlers(boltService, appLogger, nrApp)

	// Optional Redis-backed rate limiting
	opts := routes.Options{}
	if nrApp.IsEnabled() {
		opts.NewRelic = nrApp.Application
	}
	if cfg.RateLimit.Enabled {
		redisClient, err := cache.NewRedisClient(cache.Config{
			Host:        cfg.Redis.Host,
			Port:        cfg.Redis.Port,
			Password:    cfg.Redis.Password,
			DB:          cfg.Redis.DB,
			DialTimeout: cfg.Redis.DialTimeout,
			ReadTimeout: cfg.Redis.ReadTimeout,
		})
		if err != nil {
			appLogger.Fatal("Failed to connect to Redis", logger.Err(err))
		}
		defer cache.Close(redisClient)

		opts.GeneralLimit = middleware.RateLimit(redisClient, appLogger, cfg.RateLimit.RequestsPerMin, "general")
		opts.SearchLimit = middleware.RateLimit(redisClient, appLogger, cfg.RateLimit.SearchPerMin, "search")
		appLogger.Info("Rate limiting enabled",
			logger.Int("general_per_minute", cfg.RateLimit.RequestsPerMin),
			logger.Int("search_per_minute", cfg.RateLimit.SearchPerMin),
		)
	}

	// Initialize Gin router
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	routes.SetupRoutes(router, h, opts)

	appLogger.Info("Routes configured successfully")

	// Create HTTP server
	srv := &http.Server{
		Addr:           fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:        router,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	// Start server in a goroutine
	go func() {
		appLogger.Info("Server starting", logger.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("Failed to start server", logger.Err(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", logger.Err(err))
	}

	appLogger.Info("Server stopped gracefully")
}
