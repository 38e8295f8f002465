package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"wealth-agent/backend"
	"wealth-agent/config"
	httpLayer "wealth-agent/http"
	"wealth-agent/repository"
	"wealth-agent/scheduler"
	"wealth-agent/service"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	if err := run(logger); err != nil {
		logger.WithError(err).Error("server stopped")
		os.Exit(1)
	}
}

// run owns every resource it opens, so deferred cleanup happens on all paths.
func run(logger *logrus.Logger) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	} else {
		logger.WithField("level", cfg.LogLevel).Warn("unknown log level, using info")
	}

	limits, err := config.LoadLimits(cfg.LimitsFile)
	if err != nil {
		return fmt.Errorf("load calculator limits: %w", err)
	}

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelStartup()

	var cache repository.CacheRepository = repository.NewMockCache()
	if cfg.RedisAddr != "" {
		redisCache, err := repository.NewRedisCache(startupCtx, cfg.RedisAddr, logger)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer redisCache.Close()
		cache = redisCache
	}

	var calculations repository.CalculationRepository = repository.NewCalculationRepositoryMemory()
	if cfg.DatabaseURL != "" {
		pg, err := repository.NewCalculationRepositoryPostgres(startupCtx, cfg.DatabaseURL, logger)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer pg.Close()
		calculations = pg
	}

	provider := backend.NewClient(cfg.BackendURL, cfg.BackendTimeout, logger)

	cron := scheduler.NewCronScheduler(logger)
	cron.Start()

	calculatorService := service.NewCalculatorService(calculations, cache, limits, logger)
	profileService := service.NewProfileService(provider, logger)
	sessions := service.NewPaymentSessionManager(provider, cron, cfg.PollInterval, cfg.BackendTimeout, logger)

	defer func() {
		sessions.CloseAll()
		select {
		case <-cron.Stop().Done():
		case <-time.After(10 * time.Second):
			logger.Warn("timed out waiting for polling jobs")
		}
	}()

	if err := sessions.StartSweeper(cfg.SessionIdleTTL, service.SessionSweepInterval); err != nil {
		return err
	}

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimitCapacity, cfg.RateLimitWindow)
	defer rateLimiter.Stop()

	router := httpLayer.NewRouter(httpLayer.Handlers{
		Calculator: httpLayer.NewCalculatorHandler(calculatorService, logger),
		Profile:    httpLayer.NewProfileHandler(profileService, logger),
		Payment:    httpLayer.NewPaymentHandler(sessions, logger),
		Auth:       httpLayer.NewAuthHandler(provider, logger),
	}, rateLimiter, logger)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.BackendTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.WithField("addr", cfg.HTTPAddr).Info("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("serve: %w", err)
	case <-quit:
		logger.Info("shutting down server")
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("server shutdown failed")
	}

	logger.Info("server exited")
	return nil
}
