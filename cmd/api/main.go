package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	v1 "github.com/HarichndR/Faithconnect/cmd/api/router/v1"
	cacheadapter "github.com/HarichndR/Faithconnect/internal/infrastructure/cache/adapter"
	"github.com/HarichndR/Faithconnect/internal/infrastructure/config"
	"github.com/HarichndR/Faithconnect/internal/infrastructure/database"
	queueadapter "github.com/HarichndR/Faithconnect/internal/infrastructure/queue/adapter"
	qport "github.com/HarichndR/Faithconnect/internal/infrastructure/queue/port"
	"github.com/HarichndR/Faithconnect/internal/infrastructure/realtime"
	notiftask "github.com/HarichndR/Faithconnect/internal/pkg/notification/application/task"
	notifusecase "github.com/HarichndR/Faithconnect/internal/pkg/notification/application/usecase"
	pushadapter "github.com/HarichndR/Faithconnect/internal/pkg/notification/gateway/adapter"
	notifrepo "github.com/HarichndR/Faithconnect/internal/pkg/notification/persistence/repository/adapter"
	diradapter "github.com/HarichndR/Faithconnect/internal/repository/adapter"
	dirport "github.com/HarichndR/Faithconnect/internal/repository/port"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := zerolog.New(os.Stderr)
		bootLog.Fatal().Err(err).Msg("configuration failed")
	}

	log := newLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	pool, err := database.Connect(connectCtx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}

	var directory dirport.UserDirectory = diradapter.NewPgUserDirectory(pool)
	if cfg.RedisURL != "" {
		cache, err := cacheadapter.NewRedisAdapter(cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		defer cache.Close()
		directory = diradapter.NewCachedUserDirectory(directory, cache)
	}

	registry := realtime.NewRegistry()
	defer registry.Close()
	relay := realtime.NewRelay(registry, log)

	gateway := pushadapter.NewLogPushGateway(log)

	var queueClient qport.Client
	if cfg.RedisURL != "" {
		client, err := queueadapter.NewAsynqClient(cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("queue client failed")
		}
		defer client.Close()
		queueClient = client

		server, err := queueadapter.NewAsynqServer(cfg.RedisURL, cfg.PushConcurrency, log)
		if err != nil {
			log.Fatal().Err(err).Msg("queue server failed")
		}
		notiftask.RegisterMobilePushTask(server, directory, gateway, log)
		// Run blocks on ctx and drains workers on shutdown.
		go func() {
			if err := server.Run(ctx); err != nil {
				log.Error().Err(err).Msg("queue server stopped")
			}
		}()
	} else {
		log.Warn().Msg("REDIS_URL not set; mobile pushes run inline and user lookups skip the cache")
	}

	dispatcher := notifusecase.NewDispatcher(
		notifrepo.NewPgNotificationRepository(pool),
		directory,
		registry,
		queueClient,
		gateway,
		log,
		cfg.PushMaxRetry,
	)
	triggers := notifusecase.NewSocialTriggers(dispatcher, directory)

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1.RegisterRoutes(r, pool, directory, triggers, registry, relay, log)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("api listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("http server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown failed")
	}
}

func newLogger(cfg *config.Config) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339
	out := zerolog.New(os.Stdout)
	if cfg.IsDevelopment() {
		out = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout})
	}
	return out.With().Timestamp().Str("service", "faithconnect").Logger()
}
