package handlers

import (
	"context"
	"strings"

	"jobboard-bot/internal/flow"
	"jobboard-bot/internal/models"
	"jobboard-bot/internal/session"
)

// Flow names stored in session state.
const (
	flowRegisterApplicant = "register_applicant"
	flowRegisterEmployer  = "register_employer"
	flowCompanyNew        = "company_new"
	flowJobPost           = "job_post"
	flowApply             = "apply"
	flowEditPrefix        = "edit_"
)

// resolveFlow maps a session's active flow name back to its definition.
// The job-posting flow embeds the employer's approved companies as options,
// so it is rebuilt against the database on every input.
func resolveFlow(ctx *Context, dbCtx context.Context, sess *session.Session) *flow.Flow {
	switch sess.Flow {
	case flowRegisterApplicant:
		return registrationFlow(ctx, models.RoleApplicant)
	case flowRegisterEmployer:
		return registrationFlow(ctx, models.RoleEmployer)
	case flowCompanyNew:
		return companyFlow(ctx)
	case flowJobPost:
		return postJobFlow(ctx, dbCtx, sess.ChatID)
	case flowApply:
		return applyFlow(ctx)
	}

	if column, ok := strings.CutPrefix(sess.Flow, flowEditPrefix); ok {
		return editFlow(ctx, column)
	}

	return nil
}
