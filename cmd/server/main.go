package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"travel/internal/app"
	"travel/internal/config"
	"travel/internal/logger"
	"travel/internal/server"
	"travel/internal/session"
	"travel/pkg/graceful"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Must("error", "console").Fatal("failed to load config", zap.Error(err))
	}
	log := logger.Must(cfg.LogLevel, cfg.LogFormat)
	defer func() { _ = log.Sync() }()

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, cancel := graceful.Context(context.Background(), log)
	defer cancel()

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to start", zap.Error(err))
	}
	defer a.Close()

	guard, closeGuard := newGuard(ctx, cfg, log)
	defer closeGuard()

	opts := server.Options{
		Guard:       guard,
		CORSOrigins: cfg.CORSOrigins,
		Logger:      log,
	}
	if a.History != nil {
		opts.History = a.History
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           server.New(a.Explorer, opts),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", zap.Error(err))
			cancel()
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http server shutdown failed", zap.Error(err))
		os.Exit(1)
	}
	log.Info("http server stopped")
}

// newGuard picks the Redis busy flag when REDIS_ADDR is set and the
// in-memory one otherwise.
func newGuard(ctx context.Context, cfg *config.Config, log *zap.Logger) (session.Guard, func()) {
	if !cfg.RedisEnabled() {
		return session.NewMemoryGuard(), func() {}
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr,
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal("redis ping failed", zap.String("addr", cfg.RedisAddr), zap.Error(err))
	}
	log.Info("using redis busy flags", zap.String("addr", cfg.RedisAddr))
	return session.NewRedisGuard(client, cfg.BusyTTL), func() { _ = client.Close() }
}
