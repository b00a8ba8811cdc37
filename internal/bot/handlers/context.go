package handlers

import (
	"context"
	"time"

	"jobboard-bot/internal/ai"
	"jobboard-bot/internal/bot/utils"
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

// Context contains deps for all handlers
type Context struct {
	Store    *postgres.Store
	Cache    *redis.Cache
	Actors   *cached.Actors
	Jobs     *cached.Jobs
	Sessions *session.Store
	Engine   *flow.Engine
	Notify   *notify.Notifier
	AI       *ai.Generator
	Config   *config.Config
	Logger   *zap.Logger
}

func dbContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

// sendPrompt turns an engine prompt into a message with the matching
// keyboard. Terminal prompts bring the role's main menu back.
func sendPrompt(c tele.Context, sess *session.Session, p flow.Prompt) error {
	switch {
	case p.Done:
		return c.Send(p.Text, utils.MainMenuKeyboard(sess.Role))
	case p.Confirm:
		return c.Send(p.Text, utils.ConfirmKeyboard(), tele.ModeMarkdownV2)
	case len(p.Options) > 0:
		return c.Send(p.Text, utils.OptionsKeyboard(p.Options, p.Optional))
	default:
		return c.Send(p.Text, utils.TextStepKeyboard(p.Optional))
	}
}

// loadSession fetches the chat's session, replying generically on failure.
func loadSession(ctx *Context, c tele.Context) (*session.Session, error) {
	dbCtx, cancel := dbContext()
	defer cancel()

	sess, err := ctx.Sessions.Get(dbCtx, c.Sender().ID)
	if err != nil {
		_ = c.Send("😔 Something went wrong. Please try again later.")
		return nil, err
	}
	return sess, nil
}

func stringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
