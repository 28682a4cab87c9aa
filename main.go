package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/soelshaikh/feedback-portal/backend/handlers"
	"github.com/soelshaikh/feedback-portal/backend/internal/analytics"
	"github.com/soelshaikh/feedback-portal/backend/internal/config"
	"github.com/soelshaikh/feedback-portal/backend/internal/database"
	"github.com/soelshaikh/feedback-portal/backend/internal/export"
	feedbackhandler "github.com/soelshaikh/feedback-portal/backend/internal/feedback/handler"
	"github.com/soelshaikh/feedback-portal/backend/internal/feedback/repository"
	"github.com/soelshaikh/feedback-portal/backend/internal/feedback/service"
	"github.com/soelshaikh/feedback-portal/backend/internal/oidc"
	"github.com/soelshaikh/feedback-portal/backend/internal/storage"
	"github.com/soelshaikh/feedback-portal/backend/internal/tokens"
	"github.com/soelshaikh/feedback-portal/backend/pkg/logger"
	"github.com/soelshaikh/feedback-portal/backend/pkg/metrics"
	"github.com/soelshaikh/feedback-portal/backend/pkg/middleware"
)

var startTime = time.Now()

func main() {
	// LOG_LEVEL: debug|info|warn|error|fatal
	logger.Init(os.Getenv("LOG_LEVEL"))
	defer func() { _ = logger.Sync() }()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Init(cfg.Server.LogLevel)
	logger.Infof("config loaded: mongo=%v redis=%v keycloak=%v minio=%v",
		cfg.MongoDB.URI != "", cfg.Redis.Host != "", cfg.Auth.Issuer() != "", cfg.MinIO.Endpoint != "")

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware(),
		middleware.RequestLogger(),
		middleware.CORSMiddleware(cfg.Server.AllowedOrigins),
		middleware.ErrorHandler(),
	)

	checks := map[string]handlers.Check{}

	// Redis backs the analytics cache and, optionally, the shared rate limiter.
	var redisClient *redis.Client
	if addr := cfg.Redis.Addr(); addr != "" {
		client := redis.NewClient(&redis.Options{Addr: addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s): %v; continuing without cache", addr, err)
			_ = client.Close()
		} else {
			redisClient = client
			defer func() { _ = client.Close() }()
			checks["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
			logger.Infof("connected to Redis: %s", addr)
		}
	}

	// Document store: MongoDB when configured, otherwise in-memory.
	var repo repository.Repository
	var exportLog export.Log
	if cfg.MongoDB.URI != "" {
		client, err := database.ConnectWithRetry(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout, 5, time.Second)
		if err != nil {
			logger.Fatalf("MongoDB is configured but unreachable: %v", err)
		}
		defer func() { _ = client.Disconnect(context.Background()) }()
		db := client.Database(cfg.MongoDB.Database)
		repo = repository.NewMongoRepo(ctx, db.Collection(cfg.MongoDB.Collection))
		exportLog = export.NewMongoLog(db.Collection("exports"))
		logger.Infof("using MongoDB %s.%s", cfg.MongoDB.Database, cfg.MongoDB.Collection)
	} else {
		repo = repository.NewMemoryRepo()
		logger.Warnf("MONGODB_URI not set; feedback is kept in memory and lost on restart")
	}
	checks["store"] = repo.Ping

	var cache analytics.Cache = analytics.NopCache{}
	if redisClient != nil {
		cache = analytics.NewRedisCache(redisClient, "analytics:")
	}
	stats := analytics.NewService(repo, cache, cfg.Analytics.CacheTTL)
	feedbackSvc := service.New(repo, stats.Invalidate)

	// Object storage for export snapshots.
	var objects storage.ObjectStore
	if cfg.MinIO.Endpoint != "" {
		s, err := storage.NewMinIOStorage(ctx, cfg.MinIO)
		if err != nil {
			logger.Warnf("MinIO unavailable, export snapshots disabled: %v", err)
		} else {
			objects = s
			checks["storage"] = s.Ping
		}
	}
	exports := export.NewService(repo, objects, exportLog, cfg.MinIO.PresignTTL)

	admin := adminMiddleware(ctx, cfg.Auth)

	var submitLimiter gin.HandlerFunc
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && redisClient != nil {
			submitLimiter = middleware.RedisRateLimitMiddleware(redisClient, cfg.RateLimit.RPS, cfg.RateLimit.Burst, cfg.RateLimit.Window)
		} else {
			submitLimiter = middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		}
	}

	handlers.RegisterHealth(r, startTime, checks)
	handlers.RegisterSwagger(r)
	feedbackhandler.RegisterFeedbackRoutes(r, feedbackSvc, stats, feedbackhandler.Options{Admin: admin, Submit: submitLimiter})
	export.RegisterExportRoutes(r, exports, admin)

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		logger.Infof("feedback service listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Infof("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("graceful shutdown failed: %v", err)
	}
}

// adminMiddleware picks the bearer-token verifier for dashboard routes:
// Keycloak OIDC, then the HS256 admin secret, then the insecure decoder.
// It returns nil when none is configured, leaving the routes open.
func adminMiddleware(ctx context.Context, auth config.AuthConfig) gin.HandlerFunc {
	var verifier middleware.Verifier
	if issuer := auth.Issuer(); issuer != "" {
		ver, err := oidc.NewVerifier(ctx, issuer, auth.KeycloakClientID, auth.KeycloakAdminRole)
		if err != nil {
			logger.Warnf("failed to initialize OIDC verifier: %v", err)
		} else {
			verifier = ver
		}
	}
	if verifier == nil && auth.AdminJWTSecret != "" {
		verifier = tokens.NewHMACVerifier(auth.AdminJWTSecret)
	}
	if verifier == nil && auth.AllowInsecureToken {
		logger.Warnf("enabling insecure token verifier (integration mode)")
		verifier = oidc.NewInsecureVerifier()
	}
	if verifier == nil {
		logger.Warnf("no admin auth configured; dashboard endpoints are open")
		return nil
	}
	return middleware.AuthMiddleware(verifier)
}
