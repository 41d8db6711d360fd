package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"hourline.app/server/common/id"
	"hourline.app/server/common/logger"
	"hourline.app/server/common/otel"
	"hourline.app/server/core/config"
	"hourline.app/server/core/db"
	"hourline.app/server/internal/http/middleware"
	httprouter "hourline.app/server/internal/http/router"
	"hourline.app/server/internal/queue"
	"hourline.app/server/internal/service"
	"hourline.app/server/internal/service/integration"
	"hourline.app/server/internal/store"
)

func main() {
	fmt.Printf("%s\n", banner)
	ctx := context.Background()

	cfg, err := config.Load(config.ServiceTypeServer)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	// OTel must init before logger (logger uses OTel provider in production)
	telemetry, err := otel.Setup(ctx, cfg.OTel)
	if err != nil {
		os.Stderr.WriteString("failed to initialize otel: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Setup(cfg)

	if telemetry != nil {
		slog.InfoContext(ctx, "otel initialized", "endpoint", cfg.OTel.Endpoint)
	} else {
		slog.InfoContext(ctx, "otel disabled (no endpoint configured)")
	}

	slog.InfoContext(ctx, "hourline server starting", "env", cfg.Env, "service", cfg.OTel.ServiceName)
	if err := id.Init(1); err != nil {
		slog.ErrorContext(ctx, "failed to initialize snowflake id generator", "error", err)
		os.Exit(1)
	}

	database, err := db.New(ctx, cfg.DB)
	if err != nil {
		slog.ErrorContext(ctx, "failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()
	slog.InfoContext(ctx, "database connected")

	redisOpts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		slog.ErrorContext(ctx, "failed to parse redis url", "error", err)
		os.Exit(1)
	}

	redisClient := redis.NewClient(redisOpts)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		slog.ErrorContext(ctx, "failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()
	slog.InfoContext(ctx, "redis connected", "stream", cfg.Queue.Stream)

	emailProducer := queue.NewRedisProducer(redisClient, cfg.Queue.Stream, slog.Default())
	defer emailProducer.Close()

	providers, err := setupProviders(cfg)
	if err != nil {
		slog.ErrorContext(ctx, "failed to configure integration providers", "error", err)
		os.Exit(1)
	}

	services := service.NewServices(service.Dependencies{
		Stores:       store.NewStores(database.Queries()),
		TxRunner:     service.NewTxRunner(database),
		Database:     database,
		Redis:        redisClient,
		EmailQueue:   emailProducer,
		WorkOS:       service.NewWorkOSClient(cfg.WorkOS.APIKey),
		Providers:    providers,
		StateSigner:  integration.NewStateSigner(cfg.StateSecret),
		WorkOSConfig: cfg.WorkOS,
		DashboardURL: cfg.DashboardURL,
	})

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := setupRouter(cfg, services)
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.InfoContext(ctx, "http server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.ErrorContext(ctx, "http server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.InfoContext(ctx, "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(shutdownCtx, "http server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "otel shutdown error", "error", err)
		}
	}

	slog.InfoContext(shutdownCtx, "shutdown complete")
}

// setupProviders registers the integration providers whose OAuth apps are configured.
func setupProviders(cfg config.Config) (integration.Registry, error) {
	callbackURL := func(p string) string {
		return cfg.APIURL + "/api/integrations/" + p + "/callback"
	}

	var providers []integration.Provider
	if cfg.GitHub.Enabled() {
		gh, err := integration.NewGitHubProvider(cfg.GitHub, callbackURL("github"), "", nil)
		if err != nil {
			return nil, err
		}
		providers = append(providers, gh)
	}
	if cfg.Linear.Enabled() {
		providers = append(providers, integration.NewLinearProvider(cfg.Linear, callbackURL("linear"), nil, ""))
	}
	if cfg.GitLab.Enabled() {
		providers = append(providers, integration.NewGitLabProvider(cfg.GitLab, callbackURL("gitlab")))
	}

	registry := integration.NewRegistry(providers...)
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, string(name))
	}
	slog.Info("integration providers configured", "providers", names)
	return registry, nil
}

func setupRouter(cfg config.Config, services *service.Services) *gin.Engine {
	router := gin.New()

	// Order matters: OTel creates span → Recovery catches panics → Logger logs with trace context
	if cfg.OTel.Enabled() {
		router.Use(otelgin.Middleware(cfg.OTel.ServiceName))
	}
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())

	httprouter.SetupRoutes(router, services, httprouter.RouterConfig{
		DashboardURL: cfg.DashboardURL,
		CronSecret:   cfg.Cron.Secret,
		Cookies: middleware.CookieConfig{
			Domain: cfg.CookieDomain,
			Secure: cfg.SecureCookie,
		},
	})

	return router
}

const banner = `
 _                      _ _
| |__   ___  _   _ _ __| (_)_ __   ___
| '_ \ / _ \| | | | '__| | | '_ \ / _ \
| | | | (_) | |_| | |  | | | | | |  __/
|_| |_|\___/ \__,_|_|  |_|_|_| |_|\___|
`
