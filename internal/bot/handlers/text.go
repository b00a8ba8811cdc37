package handlers

import (
	"jobboard-bot/internal/bot/utils"
	"jobboard-bot/internal/models"
	"jobboard-bot/internal/session"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// HandleText routes free text: into the active flow when one is running,
// otherwise through the main-menu buttons.
func HandleText(ctx *Context) tele.HandlerFunc {
	return func(c tele.Context) error {
		sess, err := loadSession(ctx, c)
		if err != nil {
			return err
		}

		if sess.InFlow() {
			return flowInput(ctx, c, sess, c.Text())
		}

		return menuInput(ctx, c, sess, c.Text())
	}
}

// flowInput feeds one unit of input to the active flow's engine.
func flowInput(ctx *Context, c tele.Context, sess *session.Session, input string) error {
	dbCtx, cancel := dbContext()
	defer cancel()

	f := resolveFlow(ctx, dbCtx, sess)
	if f == nil {
		ctx.Logger.Warn("session references unknown flow",
			zap.Int64("chat_id", sess.ChatID),
			zap.String("flow", sess.Flow),
		)
		sess.ResetFlow()
		if err := ctx.Sessions.Save(dbCtx, sess); err != nil {
			ctx.Logger.Error("failed to reset broken flow", zap.Error(err))
		}
		return c.Send("😔 Something went wrong. Please try again later.",
			utils.MainMenuKeyboard(sess.Role))
	}

	prompt, err := ctx.Engine.Input(dbCtx, sess, f, input)
	if err != nil {
		ctx.Logger.Error("flow input failed",
			zap.Int64("chat_id", sess.ChatID),
			zap.String("flow", sess.Flow),
			zap.Error(err),
		)
	}

	return sendPrompt(c, sess, prompt)
}

// menuInput dispatches idle-state button presses.
func menuInput(ctx *Context, c tele.Context, sess *session.Session, text string) error {
	switch text {
	case utils.BtnRoleApplicant:
		return startRegistration(ctx, c, sess, models.RoleApplicant)
	case utils.BtnRoleEmployer:
		return startRegistration(ctx, c, sess, models.RoleEmployer)

	case utils.BtnBrowseJobs:
		return HandleBrowseJobs(ctx, c, sess)
	case utils.BtnSavedJobs:
		return renderList(ctx, c, sess, session.ListSavedJobs, false)
	case utils.BtnMyApps:
		return renderList(ctx, c, sess, session.ListApplications, false)
	case utils.BtnMyProfile:
		return HandleProfile(ctx, c, sess)

	case utils.BtnAddCompany:
		return HandleAddCompany(ctx, c, sess)
	case utils.BtnMyCompanies:
		return renderList(ctx, c, sess, session.ListMyCompanies, false)
	case utils.BtnPostJob:
		return HandlePostJob(ctx, c, sess)
	case utils.BtnMyJobs:
		return renderList(ctx, c, sess, session.ListMyJobs, false)

	case utils.BtnHelp:
		return c.Send(utils.FormatHelpMessage(), tele.ModeMarkdownV2)
	}

	if sess.Role == "" {
		return c.Send("Please choose a role to get started.", utils.RoleKeyboard())
	}

	return c.Send("I didn't catch that. Use the menu below or /help.",
		utils.MainMenuKeyboard(sess.Role))
}

// HandleDocument feeds an uploaded document's file ID into the active flow.
// Outside a flow (or on a step that doesn't take files) the upload is
// politely declined.
func HandleDocument(ctx *Context) tele.HandlerFunc {
	return func(c tele.Context) error {
		doc := c.Message().Document
		if doc == nil {
			return nil
		}
		return fileInput(ctx, c, doc.FileID)
	}
}

// HandlePhoto covers users who send licenses or CVs as photos.
func HandlePhoto(ctx *Context) tele.HandlerFunc {
	return func(c tele.Context) error {
		photo := c.Message().Photo
		if photo == nil {
			return nil
		}
		return fileInput(ctx, c, photo.FileID)
	}
}

// fileFields are the flow steps that store a Telegram file ID.
var fileFields = map[string]bool{
	"cv_ref":                   true,
	"trade_license_ref":        true,
	"authorized_person_ref":    true,
	"authorization_letter_ref": true,
}

func fileInput(ctx *Context, c tele.Context, fileID string) error {
	sess, err := loadSession(ctx, c)
	if err != nil {
		return err
	}

	if !sess.InFlow() || !fileFields[sess.State] {
		return c.Send("I wasn't expecting a file here.")
	}

	return flowInput(ctx, c, sess, fileID)
}
