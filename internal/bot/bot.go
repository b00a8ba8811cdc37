package bot

import (
	"context"
	"fmt"
	"time"

	"jobboard-bot/internal/ai"
	"jobboard-bot/internal/bot/handlers"
	"jobboard-bot/internal/bot/middleware"
	"jobboard-bot/internal/config"
	"jobboard-bot/internal/flow"
	"jobboard-bot/internal/notify"
	"jobboard-bot/internal/session"
	"jobboard-bot/internal/storage/cached"
	"jobboard-bot/internal/storage/postgres"
	"jobboard-bot/internal/storage/redis"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Bot represents the Telegram bot
type Bot struct {
	bot      *tele.Bot
	store    *postgres.Store
	cache    *redis.Cache
	ai       *ai.Generator
	config   *config.Config
	logger   *zap.Logger
	notifier *notify.Notifier
}

func New(
	cfg *config.Config,
	store *postgres.Store,
	cache *redis.Cache,
	draftGen *ai.Generator,
	logger *zap.Logger,
) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.TelegramToken,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	bot := &Bot{
		bot:      b,
		store:    store,
		cache:    cache,
		ai:       draftGen,
		config:   cfg,
		logger:   logger,
		notifier: notify.New(b, cfg.AdminGroupID, cfg.NotifyGroupID, logger),
	}

	bot.setupMiddleware()

	bot.registerHandlers()

	logger.Info("bot initialized successfully")

	return bot, nil
}

func (b *Bot) setupMiddleware() {
	b.bot.Use(middleware.Recovery(b.logger))

	b.bot.Use(middleware.Logger(b.logger))

	b.bot.Use(middleware.RateLimit(b.cache, b.logger))
}

func (b *Bot) registerHandlers() {
	sessions := session.NewStore(b.cache, b.config.SessionTTL, b.logger)

	ctx := &handlers.Context{
		Store:    b.store,
		Cache:    b.cache,
		Actors:   cached.NewActors(b.store, b.cache, b.logger),
		Jobs:     cached.NewJobs(b.store, b.cache, b.logger),
		Sessions: sessions,
		Engine:   flow.NewEngine(sessions, b.logger),
		Notify:   b.notifier,
		AI:       b.ai,
		Config:   b.config,
		Logger:   b.logger,
	}

	b.bot.Handle("/start", handlers.HandleStart(ctx))
	b.bot.Handle("/help", handlers.HandleHelp(ctx))
	b.bot.Handle("/cancel", handlers.HandleCancel(ctx))
	b.bot.Handle("/jobs", handlers.HandleJobs(ctx))
	b.bot.Handle("/profile", handlers.HandleProfileCommand(ctx))

	b.bot.Handle(tele.OnText, handlers.HandleText(ctx))
	b.bot.Handle(tele.OnDocument, handlers.HandleDocument(ctx))
	b.bot.Handle(tele.OnPhoto, handlers.HandlePhoto(ctx))

	b.bot.Handle(tele.OnCallback, handlers.HandleCallback(ctx))

	b.logger.Info("handlers registered")
}

func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("starting bot...")

	go b.bot.Start()

	<-ctx.Done()

	b.logger.Info("stopping bot...")
	b.bot.Stop()

	return nil
}

func (b *Bot) Notifier() *notify.Notifier {
	return b.notifier
}

func (b *Bot) GetBot() *tele.Bot {
	return b.bot
}
