package handlers

import (
	"strings"

	"jobboard-bot/internal/bot/utils"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// parseCallback flattens the two wire forms inline buttons arrive in.
// A button built with a payload argument comes back as
// "\f<unique>|<payload>"; a button whose action and argument were packed
// into one string comes back as "\f<action>:<arg>". Either way the result
// is [action, arg, ...].
func parseCallback(data string) []string {
	data = strings.TrimPrefix(data, "\f")

	if unique, payload, found := strings.Cut(data, "|"); found {
		parts := []string{unique}
		if payload != "" {
			parts = append(parts, strings.Split(payload, ":")...)
		}
		return parts
	}

	return strings.Split(data, ":")
}

// HandleCallback processes all callback queries from inline buttons
func HandleCallback(ctx *Context) tele.HandlerFunc {
	return func(c tele.Context) error {
		cb := c.Callback()
		if cb == nil {
			ctx.Logger.Warn("callback is nil")
			return nil
		}

		parts := parseCallback(cb.Data)
		if len(parts) < 1 || parts[0] == "" {
			ctx.Logger.Warn("invalid callback format", zap.String("data", cb.Data))
			return c.Respond(&tele.CallbackResponse{Text: "❌ Invalid request"})
		}
		action := parts[0]

		ctx.Logger.Debug("routing callback",
			zap.String("action", action),
			zap.Int64("user_id", c.Sender().ID),
		)

		switch action {
		case utils.CbJobsPrev:
			return handleJobsPage(ctx, c, false)
		case utils.CbJobsNext:
			return handleJobsPage(ctx, c, true)
		case utils.CbListPrev:
			return handleListPage(ctx, c, parts, false)
		case utils.CbListNext:
			return handleListPage(ctx, c, parts, true)

		case utils.CbApplyJob:
			return handleApplyJob(ctx, c, parts)
		case utils.CbSaveJob:
			return handleSaveJob(ctx, c, parts)
		case utils.CbAIDraft:
			return handleAIDraft(ctx, c, parts)

		case utils.CbEditField:
			return handleEditField(ctx, c, parts)

		case utils.CbViewApplicants:
			return handleViewApplicants(ctx, c, parts)
		case utils.CbAppStatus:
			return handleAppStatus(ctx, c, parts)

		case utils.CbCompanyApprove:
			return handleCompanyModeration(ctx, c, parts, true)
		case utils.CbCompanyReject:
			return handleCompanyModeration(ctx, c, parts, false)
		case utils.CbJobApprove:
			return handleJobModeration(ctx, c, parts, true)
		case utils.CbJobReject:
			return handleJobModeration(ctx, c, parts, false)

		default:
			ctx.Logger.Warn("unknown callback action",
				zap.String("action", action),
				zap.String("data", cb.Data),
			)
			return c.Respond(&tele.CallbackResponse{Text: "❓ Unknown action"})
		}
	}
}
