package handlers

import (
	"fmt"
	"strconv"

	"jobboard-bot/internal/models"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Moderation buttons are only posted to the admin group, but callback data
// is forgeable, so the chat is checked anyway.
func fromAdminGroup(ctx *Context, c tele.Context) bool {
	return c.Chat() != nil && c.Chat().ID == ctx.Config.AdminGroupID
}

func handleCompanyModeration(ctx *Context, c tele.Context, parts []string, approve bool) error {
	if !fromAdminGroup(ctx, c) {
		return c.Respond(&tele.CallbackResponse{Text: "⛔️ Admins only"})
	}
	if len(parts) < 2 {
		return c.Respond(&tele.CallbackResponse{Text: "❌ Invalid request"})
	}

	companyID, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "❌ Invalid request"})
	}

	status := models.CompanyStatusRejected
	if approve {
		status = models.CompanyStatusApproved
	}

	dbCtx, cancel := dbContext()
	defer cancel()

	company, err := ctx.Store.GetCompany(dbCtx, companyID)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "😔 Something went wrong"})
	}
	if company == nil {
		return c.Respond(&tele.CallbackResponse{Text: "❓ Company not found"})
	}

	if err := ctx.Store.SetCompanyStatus(dbCtx, companyID, status); err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "😔 Something went wrong"})
	}

	ctx.Logger.Info("company moderated",
		zap.Int64("company_id", companyID),
		zap.String("status", status),
		zap.Int64("moderator_id", c.Sender().ID),
	)

	ctx.Notify.ModerationResult(company.OwnerChatID, "company", company.Name, status)

	if err := c.Edit(fmt.Sprintf("🏢 %s — %s", company.Name, status)); err != nil {
		ctx.Logger.Warn("failed to edit moderation message", zap.Error(err))
	}

	return c.Respond(&tele.CallbackResponse{Text: "✅ " + status})
}

func handleJobModeration(ctx *Context, c tele.Context, parts []string, approve bool) error {
	if !fromAdminGroup(ctx, c) {
		return c.Respond(&tele.CallbackResponse{Text: "⛔️ Admins only"})
	}
	if len(parts) < 2 {
		return c.Respond(&tele.CallbackResponse{Text: "❌ Invalid request"})
	}

	jobID, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "❌ Invalid request"})
	}

	status := models.JobStatusRejected
	if approve {
		status = models.JobStatusApproved
	}

	dbCtx, cancel := dbContext()
	defer cancel()

	job, err := ctx.Jobs.Get(dbCtx, jobID)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "😔 Something went wrong"})
	}
	if job == nil {
		return c.Respond(&tele.CallbackResponse{Text: "❓ Job not found"})
	}

	if err := ctx.Store.SetJobStatus(dbCtx, jobID, status); err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "😔 Something went wrong"})
	}

	// The cached card still shows the old status.
	if err := ctx.Jobs.Invalidate(dbCtx, jobID); err != nil {
		ctx.Logger.Warn("job cache invalidation failed",
			zap.Int64("job_id", jobID),
			zap.Error(err),
		)
	}

	ctx.Logger.Info("job moderated",
		zap.Int64("job_id", jobID),
		zap.String("status", status),
		zap.Int64("moderator_id", c.Sender().ID),
	)

	ctx.Notify.ModerationResult(job.PostedBy, "job", job.Title, status)

	if err := c.Edit(fmt.Sprintf("📋 %s — %s", job.Title, status)); err != nil {
		ctx.Logger.Warn("failed to edit moderation message", zap.Error(err))
	}

	return c.Respond(&tele.CallbackResponse{Text: "✅ " + status})
}
