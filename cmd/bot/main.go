package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"jobboard-bot/internal/ai"
	"jobboard-bot/internal/bot"
	"jobboard-bot/internal/bot/scheduler"
	"jobboard-bot/internal/config"
	"jobboard-bot/internal/logger"
	"jobboard-bot/internal/storage/cached"
	"jobboard-bot/internal/storage/postgres"
	"jobboard-bot/internal/storage/redis"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("starting job board bot",
		zap.String("log_level", cfg.LogLevel),
		zap.Duration("session_ttl", cfg.SessionTTL),
		zap.Duration("sweep_interval", cfg.SweepInterval),
	)

	log.Info("connecting to PostgreSQL...")
	store, err := postgres.New(cfg.PostgresDSN, log)
	if err != nil {
		log.Fatal("failed to connect to PostgreSQL", zap.Error(err))
	}
	defer store.Close()

	log.Info("PostgreSQL connected successfully")

	log.Info("connecting to Redis...")
	cache, err := redis.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, log)
	if err != nil {
		log.Fatal("failed to connect to Redis", zap.Error(err))
	}
	defer cache.Close()

	log.Info("Redis connected successfully")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	draftGen, err := ai.New(ctx, cfg.GeminiAPIKey, log)
	if err != nil {
		log.Fatal("failed to create draft generator", zap.Error(err))
	}

	log.Info("initializing Telegram bot...")
	tgBot, err := bot.New(cfg, store, cache, draftGen, log)
	if err != nil {
		log.Fatal("failed to create bot", zap.Error(err))
	}

	log.Info("Telegram bot initialized successfully")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		log.Info("received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	}()

	log.Info("starting deadline sweeper...")
	sweeper := scheduler.New(
		store,
		cached.NewJobs(store, cache, log),
		tgBot.Notifier(),
		cfg,
		log,
	)

	go sweeper.Start(ctx)

	log.Info("bot is running...")
	log.Info("press Ctrl+C to stop")

	if err := tgBot.Start(ctx); err != nil {
		log.Error("bot stopped with error", zap.Error(err))
	}

	log.Info("shutting down gracefully...")

	log.Info("bot stopped")
}
