package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dashflow/internal/auth"
	"dashflow/internal/cache"
	"dashflow/internal/config"
	"dashflow/internal/confirm"
	"dashflow/internal/dashboard"
	"dashflow/internal/db"
	"dashflow/internal/events"
	"dashflow/internal/logger"
	"dashflow/internal/middleware"
	"dashflow/internal/products"
	"dashflow/internal/router"
	"dashflow/internal/settings"
	"dashflow/internal/storage"
	"dashflow/internal/upstream"
	"dashflow/internal/users"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ───────────────────────── ENV ─────────────────────────
	cfg, err := config.Load()
	if err != nil {
		// logger is not configured yet
		logger.Setup("info", false)
		log.Fatal().Err(err).Msg("configuration error")
	}

	logger.Setup(cfg.LogLevel, cfg.Production())
	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	// ───────────────────────── REDIS ─────────────────────────
	var rdb *redis.Client
	if cfg.SessionStore == "redis" || cfg.CacheStore == "redis" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("redis connection failed")
		}
		defer rdb.Close()
	}

	// ───────────────────────── SESSIONS ─────────────────────────
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)

	var sessions auth.SessionRepository
	switch cfg.SessionStore {
	case "redis":
		sessions = auth.NewRedisSessionRepository(rdb, cfg.TokenTTL)
	case "postgres":
		pgDB, err := db.ConnectPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("postgres init failed")
		}
		defer pgDB.Close()
		sessions = auth.NewPostgresSessionRepository(pgDB)
	default:
		sessions = auth.NewInMemorySessionRepository()
	}
	log.Info().Str("store", cfg.SessionStore).Msg("session store ready")

	// ───────────────────────── CACHE ─────────────────────────
	var listCache cache.Cache = cache.NewMemory()
	if cfg.CacheStore == "redis" {
		listCache = cache.NewRedis(rdb, "dashflow:")
	}

	// ───────────────────────── EVENTS ─────────────────────────
	hub := events.NewHub(cfg.CORSOrigins)
	publishers := events.Multi{hub}

	if len(cfg.KafkaBrokers) > 0 {
		writer := events.NewKafkaWriter(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer writer.Close()
		publishers = append(publishers, events.NewKafkaPublisher(writer))
		log.Info().Strs("brokers", cfg.KafkaBrokers).Str("topic", cfg.KafkaTopic).Msg("kafka publisher enabled")
	}

	// ───────────────────────── STORAGE ─────────────────────────
	var images products.ImageUploader
	if cfg.StorageEnabled() {
		r2Client, err := storage.NewR2Client(ctx, storage.R2Options{
			Endpoint:      cfg.R2Endpoint,
			AccessKey:     cfg.R2AccessKey,
			SecretKey:     cfg.R2SecretKey,
			Bucket:        cfg.R2Bucket,
			PublicBaseURL: cfg.R2PublicBaseURL,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("R2 init failed")
		}
		images = r2Client
	} else {
		log.Warn().Msg("R2 not configured, product image upload disabled")
	}

	// ───────────────────────── SERVICES ─────────────────────────
	usersAPI := upstream.NewClient(cfg.UsersAPIURL, cfg.UpstreamTimeout)
	productsAPI := upstream.NewClient(cfg.ProductsAPIURL, cfg.UpstreamTimeout)

	confirms := confirm.NewStore(5 * time.Minute)

	authService := auth.NewService(sessions, tokens)
	userService := users.NewService(users.NewAPIRepository(usersAPI), listCache, cfg.CacheTTL, publishers)
	productService := products.NewService(products.NewAPIRepository(productsAPI), listCache, cfg.CacheTTL, publishers, images)
	dashboardService := dashboard.NewService(userService, productService)

	// ───────────────────────── HTTP ─────────────────────────
	r := router.NewRouter(router.Deps{
		CORSOrigins:   cfg.CORSOrigins,
		RateLimiter:   middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
		Tokens:        tokens,
		Sessions:      sessions,
		Auth:          auth.NewHandler(authService),
		Users:         users.NewHandler(userService, confirms, cfg.PageSize),
		Products:      products.NewHandler(productService, confirms, cfg.PageSize),
		Confirmations: confirm.NewHandler(confirms),
		Dashboard:     dashboard.NewHandler(dashboardService),
		Settings:      settings.NewHandler(authService, settings.Preferences{PageSize: cfg.PageSize}),
		Events:        hub,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ───────────────────────── START ─────────────────────────
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("API running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
