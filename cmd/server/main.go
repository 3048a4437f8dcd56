package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"volunteer_hub/internal/cache"
	"volunteer_hub/internal/config"
	"volunteer_hub/internal/controllers"
	"volunteer_hub/internal/logger"
	"volunteer_hub/internal/middleware"
	"volunteer_hub/internal/notify"
	"volunteer_hub/internal/routes"
	"volunteer_hub/internal/storage"
)

func main() {
	cfg := config.LoadConfig()

	// Initialize structured logging to file
	logger.Setup(cfg.LogFile, !cfg.IsProd)

	middleware.SetSecret(cfg.JWTSecret)

	// Connect to the database
	config.InitDB(cfg)

	opts := controllers.Options{}

	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPass,
			DB:       cfg.RedisDB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := rdb.Ping(ctx).Err(); err != nil {
			logrus.WithError(err).Warn("redis unreachable, listing cache disabled")
			_ = rdb.Close()
		} else {
			opts.Cache = cache.New(rdb, cfg.ListingCacheTTL)
			defer rdb.Close()
		}
		cancel()
	}

	if cfg.NatsURL != "" {
		pub, err := notify.NewNatsPublisher(cfg.NatsURL)
		if err != nil {
			logrus.WithError(err).Warn("nats unreachable, notifications disabled")
		} else {
			opts.Publisher = pub
			defer pub.Close()
		}
	}

	if cfg.S3Bucket != "" {
		p, err := storage.NewFilePresigner(context.Background(), storage.Options{
			Endpoint:     cfg.S3Endpoint,
			Region:       cfg.S3Region,
			Bucket:       cfg.S3Bucket,
			AccessKey:    cfg.S3AccessKey,
			SecretKey:    cfg.S3SecretKey,
			UsePathStyle: cfg.S3UsePathStyle,
		})
		if err != nil {
			logrus.WithError(err).Warn("s3 presigner unavailable, uploads disabled")
		} else {
			opts.Presigner = p
		}
	}

	controllers.Configure(opts)

	// Setup Gin router, wrapped with CORS
	r := routes.SetupRouter(cfg)
	handler := middleware.EnableCORS(r, cfg.CORSOrigins)

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logrus.Infof("Server running at :%s", cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("server forced to shutdown")
	}
}
