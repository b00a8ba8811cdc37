package handlers

import (
	"jobboard-bot/internal/bot/utils"
	"jobboard-bot/internal/models"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// /start command
func HandleStart(ctx *Context) tele.HandlerFunc {
	return func(c tele.Context) error {
		chatID := c.Sender().ID

		ctx.Logger.Info("user started bot",
			zap.Int64("chat_id", chatID),
			zap.String("username", c.Sender().Username),
		)

		sess, err := loadSession(ctx, c)
		if err != nil {
			return err
		}

		// Session blobs outlive deploys; drop a role value the code no
		// longer knows.
		if sess.Role != "" && !models.IsValidRole(sess.Role) {
			sess.Role = ""
		}

		dbCtx, cancel := dbContext()
		defer cancel()

		// Known role: greet and show the menu.
		if sess.Role != "" {
			actor, err := ctx.Actors.Get(dbCtx, chatID, sess.Role)
			if err != nil {
				return c.Send("😔 Something went wrong. Please try again later.")
			}
			if actor != nil {
				return c.Send(
					utils.FormatWelcomeMessage(actor.FirstName, sess.Role),
					utils.MainMenuKeyboard(sess.Role),
					tele.ModeMarkdownV2,
				)
			}
		}

		// The session may have expired while the profile still exists, so
		// check both roles before asking the user to pick one.
		for _, role := range []string{models.RoleApplicant, models.RoleEmployer} {
			actor, err := ctx.Actors.Get(dbCtx, chatID, role)
			if err != nil {
				return c.Send("😔 Something went wrong. Please try again later.")
			}
			if actor != nil {
				sess.Role = role
				if err := ctx.Sessions.Save(dbCtx, sess); err != nil {
					return c.Send("😔 Something went wrong. Please try again later.")
				}
				return c.Send(
					utils.FormatWelcomeMessage(actor.FirstName, role),
					utils.MainMenuKeyboard(role),
					tele.ModeMarkdownV2,
				)
			}
		}

		return c.Send(
			"👋 Welcome to the job board! Are you looking for a job, or hiring?",
			utils.RoleKeyboard(),
		)
	}
}

// /help command
func HandleHelp(ctx *Context) tele.HandlerFunc {
	return func(c tele.Context) error {
		return c.Send(utils.FormatHelpMessage(), tele.ModeMarkdownV2)
	}
}

// /cancel command, also accepted mid-flow by the engine itself.
func HandleCancel(ctx *Context) tele.HandlerFunc {
	return func(c tele.Context) error {
		sess, err := loadSession(ctx, c)
		if err != nil {
			return err
		}

		if !sess.InFlow() {
			return c.Send("Nothing to cancel.", utils.MainMenuKeyboard(sess.Role))
		}

		dbCtx, cancel := dbContext()
		defer cancel()

		sess.ResetFlow()
		if err := ctx.Sessions.Save(dbCtx, sess); err != nil {
			return c.Send("😔 Something went wrong. Please try again later.")
		}

		return c.Send("❌ Cancelled. Nothing was saved.", utils.MainMenuKeyboard(sess.Role))
	}
}

// /jobs command
func HandleJobs(ctx *Context) tele.HandlerFunc {
	return func(c tele.Context) error {
		sess, err := loadSession(ctx, c)
		if err != nil {
			return err
		}
		return HandleBrowseJobs(ctx, c, sess)
	}
}

// /profile command
func HandleProfileCommand(ctx *Context) tele.HandlerFunc {
	return func(c tele.Context) error {
		sess, err := loadSession(ctx, c)
		if err != nil {
			return err
		}
		return HandleProfile(ctx, c, sess)
	}
}
