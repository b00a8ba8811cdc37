package handlers

import (
	"context"
	"strconv"
	"strings"

	"jobboard-bot/internal/ai"
	"jobboard-bot/internal/bot/utils"
	"jobboard-bot/internal/flow"
	"jobboard-bot/internal/models"
	"jobboard-bot/internal/session"
	"jobboard-bot/internal/validate"

	"github.com/lib/pq"
	tele "gopkg.in/telebot.v3"
)

const msgAlreadyApplied = "📨 You have already applied for this job."

// applyFlow collects an application for the job in session.JobID. Every step
// is optional; the CV step takes a document upload.
func applyFlow(ctx *Context) *flow.Flow {
	return &flow.Flow{
		Name:  flowApply,
		First: "cover_letter",
		Steps: map[string]flow.Step{
			"cover_letter": {
				Field:    "cover_letter",
				Prompt:   "✍️ Write a short cover letter, or skip this step.",
				Validate: validate.FreeText,
				Optional: true,
				Next:     "cv_ref",
			},
			"cv_ref": {
				Field:    "cv_ref",
				Prompt:   "📎 Upload your CV as a document, or skip.",
				Optional: true,
				Next:     "portfolio",
			},
			"portfolio": {
				Field:    "portfolio",
				Prompt:   "🔗 Portfolio links, comma-separated, or skip.",
				Validate: validate.FreeText,
				Optional: true,
				Next:     flow.StateConfirm,
			},
		},
		Summary: utils.FormatApplicationSummary,
		Commit: func(cctx context.Context, s *session.Session) (string, error) {
			actor, err := ctx.Actors.Get(cctx, s.ChatID, models.RoleApplicant)
			if err != nil {
				return "", flow.Storage(err)
			}
			if actor == nil {
				return "", flow.Duplicate("Please register as an applicant first.")
			}

			job, err := ctx.Jobs.Get(cctx, s.JobID)
			if err != nil {
				return "", flow.Storage(err)
			}
			if job == nil || !job.Open() {
				return "", flow.Duplicate("⏳ This job is no longer open.")
			}

			app := &models.Application{
				JobID:       s.JobID,
				ActorID:     actor.ID,
				CoverLetter: stringPtr(s.Get("cover_letter")),
				CVRef:       stringPtr(s.Get("cv_ref")),
				Portfolio:   splitLinks(s.Get("portfolio")),
			}

			inserted, err := ctx.Store.CreateApplication(cctx, app)
			if err != nil {
				return "", flow.Storage(err)
			}
			if !inserted {
				return "", flow.Duplicate(msgAlreadyApplied)
			}

			ctx.Notify.NewApplication(job, actor)

			return "🎉 Application sent! The employer has been notified.", nil
		},
	}
}

func splitLinks(raw string) pq.StringArray {
	if raw == "" {
		return nil
	}
	var links pq.StringArray
	for _, part := range strings.Split(raw, ",") {
		if link := strings.TrimSpace(part); link != "" {
			links = append(links, link)
		}
	}
	return links
}

// handleApplyJob starts the application flow from the Apply button under a
// job card.
func handleApplyJob(ctx *Context, c tele.Context, parts []string) error {
	if len(parts) < 2 {
		return c.Respond(&tele.CallbackResponse{Text: "❌ Invalid request"})
	}

	jobID, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "❌ Invalid request"})
	}

	sess, err := loadSession(ctx, c)
	if err != nil {
		return err
	}

	dbCtx, cancel := dbContext()
	defer cancel()

	actor, err := ctx.Actors.Get(dbCtx, sess.ChatID, models.RoleApplicant)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "😔 Something went wrong"})
	}
	if actor == nil {
		_ = c.Respond(&tele.CallbackResponse{})
		return c.Send("Please register as an applicant first.", utils.RoleKeyboard())
	}

	job, err := ctx.Jobs.Get(dbCtx, jobID)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "😔 Something went wrong"})
	}
	if job == nil || !job.Open() {
		return c.Respond(&tele.CallbackResponse{Text: "⏳ This job is no longer open"})
	}

	applied, err := ctx.Store.HasApplication(dbCtx, jobID, actor.ID)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "😔 Something went wrong"})
	}
	if applied {
		return c.Respond(&tele.CallbackResponse{Text: msgAlreadyApplied})
	}

	sess.JobID = jobID

	prompt, err := ctx.Engine.Start(dbCtx, sess, applyFlow(ctx))
	if err != nil {
		return c.Send(prompt.Text)
	}

	_ = c.Respond(&tele.CallbackResponse{})

	if err := sendPrompt(c, sess, prompt); err != nil {
		return err
	}

	// Reply keyboards and inline buttons can't share one message.
	return c.Send("Or let me write a draft for you:", utils.AIDraftKeyboard(jobID))
}

// handleAIDraft generates a cover-letter draft and feeds it into the apply
// flow as if the applicant had typed it.
func handleAIDraft(ctx *Context, c tele.Context, parts []string) error {
	sess, err := loadSession(ctx, c)
	if err != nil {
		return err
	}

	if sess.Flow != flowApply || sess.State != "cover_letter" {
		return c.Respond(&tele.CallbackResponse{Text: "This draft offer has expired"})
	}

	dbCtx, cancel := dbContext()
	defer cancel()

	actor, err := ctx.Actors.Get(dbCtx, sess.ChatID, models.RoleApplicant)
	if err != nil || actor == nil {
		return c.Respond(&tele.CallbackResponse{Text: "😔 Something went wrong"})
	}

	job, err := ctx.Jobs.Get(dbCtx, sess.JobID)
	if err != nil || job == nil {
		return c.Respond(&tele.CallbackResponse{Text: "😔 Something went wrong"})
	}

	companyName := ""
	if company, err := ctx.Store.GetCompany(dbCtx, job.CompanyID); err == nil && company != nil {
		companyName = company.Name
	}

	_ = c.Respond(&tele.CallbackResponse{Text: "✨ Drafting..."})

	draft, err := ctx.AI.CoverLetter(dbCtx, ai.DraftRequest{
		JobTitle:    job.Title,
		CompanyName: companyName,
		Description: job.Description,
		FirstName:   actor.FirstName,
		Skills:      actor.Skills,
	})
	if err != nil {
		return c.Send("😔 Couldn't draft a letter right now. Please write one yourself or skip.")
	}

	if err := c.Send("Here's a draft you can use:\n\n" + draft); err != nil {
		return err
	}

	prompt, err := ctx.Engine.Input(dbCtx, sess, applyFlow(ctx), draft)
	if err != nil {
		return c.Send(prompt.Text)
	}

	return sendPrompt(c, sess, prompt)
}
