package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/anyulbade/retail-sales-dashboard/internal/config"
	"github.com/anyulbade/retail-sales-dashboard/internal/database"
	"github.com/anyulbade/retail-sales-dashboard/internal/handler"
	"github.com/anyulbade/retail-sales-dashboard/internal/middleware"
	"github.com/anyulbade/retail-sales-dashboard/internal/observability"
	"github.com/anyulbade/retail-sales-dashboard/internal/repository"
	"github.com/anyulbade/retail-sales-dashboard/internal/service"
)

func runServer(cfg *config.Config) error {
	gin.SetMode(cfg.GinMode)

	shutdownTracer, err := observability.InitTracer(context.Background(), cfg.OTLPEndpoint, "salesdash")
	if err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracer(ctx); err != nil {
			log.Warn().Err(err).Msg("tracer shutdown failed")
		}
	}()

	var (
		store  repository.Store
		pinger handler.Pinger
	)

	switch cfg.Store {
	case config.StoreMemory:
		mem := repository.NewMemoryStore(database.GenerateTransactions(cfg.SeedRows, 42))
		store, pinger = mem, mem
		log.Info().Int("rows", cfg.SeedRows).Msg("serving generated data from memory")

	default:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		pool, err := database.NewPool(ctx, cfg.DatabaseURL())
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer pool.Close()

		if cfg.AutoMigrate {
			if err := database.RunMigrations(cfg.DatabaseURL()); err != nil {
				log.Fatal().Err(err).Msg("failed to run migrations")
			}
			if err := database.SeedData(context.Background(), pool, cfg.SeedRows); err != nil {
				log.Fatal().Err(err).Msg("failed to seed data")
			}
		}

		repo := repository.NewSalesRepository(pool)
		store, pinger = repository.NewBreakerStore("sales-postgres", repo), repo
	}

	metrics := observability.NewMetrics()
	salesService := service.NewSalesService(store, metrics, service.Options{
		QueryTimeout: cfg.QueryTimeout,
		FacetsTTL:    cfg.FacetsCacheTTL,
	})

	var limiter *middleware.RateLimiter
	if cfg.RateLimitEnabled() {
		limiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	}

	router := handler.NewRouter(handler.RouterDeps{
		Sales:          salesService,
		Store:          pinger,
		Backend:        cfg.Store,
		Metrics:        metrics,
		RateLimiter:    limiter,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Swagger:        true,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("store", cfg.Store).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		return err
	}

	log.Info().Msg("server exited")
	return nil
}
