package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/skincare-storefront/config"
	"github.com/junaidrashid-git/skincare-storefront/database"
	"github.com/junaidrashid-git/skincare-storefront/logger"
	"github.com/junaidrashid-git/skincare-storefront/middleware"
	"github.com/junaidrashid-git/skincare-storefront/notify"
	"github.com/junaidrashid-git/skincare-storefront/ratelimit"
	"github.com/junaidrashid-git/skincare-storefront/routes"
	"github.com/junaidrashid-git/skincare-storefront/storage"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	lg := logger.New(cfg.LogLevel, cfg.AppEnv)

	if err := run(cfg, lg); err != nil {
		lg.Fatal().Err(err).Msg("server stopped")
	}
}

func run(cfg *config.Config, lg zerolog.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	lg.Info().Str("env", cfg.AppEnv).Str("db_driver", cfg.DBDriver).Msg("starting storefront")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg)
	if err != nil {
		return err
	}
	if err := database.Migrate(db); err != nil {
		return err
	}

	limiter := newLimiter(ctx, cfg, lg)

	hub := notify.NewHub()
	defer hub.Close()
	publishers := notify.Fanout{hub}
	if brokers := cfg.KafkaBrokerList(); len(brokers) > 0 {
		kp := notify.NewKafkaPublisher(notify.NewKafkaWriter(brokers, cfg.KafkaOrderTopic))
		defer kp.Close()
		publishers = append(publishers, kp)
		lg.Info().Strs("brokers", brokers).Str("topic", cfg.KafkaOrderTopic).Msg("kafka order events enabled")
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.MaxMultipartMemory = 32 << 20
	r.Use(middleware.RequestID(), middleware.Logger(lg), middleware.Recovery(lg))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOriginList(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-KEY", "X-Request-ID", "X-Signature"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: !allowsAnyOrigin(cfg.CORSOriginList()),
		MaxAge:           12 * time.Hour,
	}))

	// Serve uploaded images
	r.Static("/uploads", cfg.UploadsDir)

	routes.SetupRoutes(r, routes.Deps{
		DB:        db,
		Config:    cfg,
		Limiter:   limiter,
		Hub:       hub,
		Publisher: publishers,
	})

	backup := &storage.Backup{
		Src:       cfg.UploadsDir,
		Dest:      cfg.BackupDir,
		Retention: cfg.BackupRetention,
		Hour:      cfg.BackupHour,
		Logger:    lg.With().Str("component", "backup").Logger(),
	}
	go backup.Run(ctx)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		lg.Info().Str("addr", srv.Addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	lg.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	return nil
}

// newLimiter prefers redis so limits hold across instances, and falls back to an
// in-process limiter when redis is not configured or unreachable.
func newLimiter(ctx context.Context, cfg *config.Config, lg zerolog.Logger) ratelimit.Limiter {
	perMinute := cfg.RateLimitPerMinute
	if perMinute == 0 {
		perMinute = 20
	}
	if cfg.RedisAddr != "" {
		client, err := ratelimit.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err == nil {
			lg.Info().Str("addr", cfg.RedisAddr).Msg("redis rate limiter enabled")
			return ratelimit.NewRedisLimiter(client, perMinute, time.Minute)
		}
		lg.Warn().Err(err).Msg("redis unavailable, using in-process rate limiter")
	}
	return ratelimit.NewLocalLimiter(perMinute, time.Minute)
}

func allowsAnyOrigin(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
