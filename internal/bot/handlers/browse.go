package handlers

import (
	"fmt"
	"strconv"

	"jobboard-bot/internal/bot/utils"
	"jobboard-bot/internal/models"
	"jobboard-bot/internal/session"

	tele "gopkg.in/telebot.v3"
)

const msgNothingHere = "Nothing here yet."

// sendOrEdit renders a list element: pagination callbacks edit the existing
// message in place, menu entries send a fresh one.
func sendOrEdit(c tele.Context, edit bool, text string, opts ...interface{}) error {
	if edit {
		if err := c.Edit(text, opts...); err == nil {
			return nil
		}
		// Editing fails when the message is too old; fall through to a send.
	}
	return c.Send(text, opts...)
}

// HandleBrowseJobs shows the open-jobs list at the chat's cursor.
func HandleBrowseJobs(ctx *Context, c tele.Context, sess *session.Session) error {
	return renderJobs(ctx, c, sess, false)
}

func renderJobs(ctx *Context, c tele.Context, sess *session.Session, edit bool) error {
	dbCtx, cancel := dbContext()
	defer cancel()

	count, err := ctx.Store.CountOpenJobs(dbCtx)
	if err != nil {
		return c.Send("😔 Something went wrong. Please try again later.")
	}
	if count == 0 {
		return sendOrEdit(c, edit, "There are no open jobs right now. Check back soon!")
	}

	cur := sess.Cursor(session.ListJobs)
	cur.Sync(count)

	job, err := ctx.Store.GetOpenJobAt(dbCtx, cur.Index)
	if err != nil || job == nil {
		return c.Send("😔 Something went wrong. Please try again later.")
	}

	companyName := ""
	if company, err := ctx.Store.GetCompany(dbCtx, job.CompanyID); err == nil && company != nil {
		companyName = company.Name
	}

	if err := ctx.Sessions.Save(dbCtx, sess); err != nil {
		return c.Send("😔 Something went wrong. Please try again later.")
	}

	text := utils.EscapeMarkdown(utils.FormatListHeader("Job", cur.Index, cur.Total)) +
		"\n\n" + utils.FormatJob(job, companyName)

	return sendOrEdit(c, edit, text,
		utils.JobBrowseKeyboard(job.ID, cur.Index, cur.Total),
		tele.ModeMarkdownV2,
	)
}

func handleJobsPage(ctx *Context, c tele.Context, forward bool) error {
	sess, err := loadSession(ctx, c)
	if err != nil {
		return err
	}

	cur := sess.Cursor(session.ListJobs)
	if forward {
		cur.Next()
	} else {
		cur.Prev()
	}

	_ = c.Respond(&tele.CallbackResponse{})

	return renderJobs(ctx, c, sess, true)
}

// handleSaveJob bookmarks the job shown on the card.
func handleSaveJob(ctx *Context, c tele.Context, parts []string) error {
	if len(parts) < 2 {
		return c.Respond(&tele.CallbackResponse{Text: "❌ Invalid request"})
	}

	jobID, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "❌ Invalid request"})
	}

	dbCtx, cancel := dbContext()
	defer cancel()

	actor, err := ctx.Actors.Get(dbCtx, c.Sender().ID, models.RoleApplicant)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "😔 Something went wrong"})
	}
	if actor == nil {
		return c.Respond(&tele.CallbackResponse{Text: "Register as an applicant first"})
	}

	saved, err := ctx.Store.SaveJob(dbCtx, jobID, actor.ID)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "😔 Something went wrong"})
	}
	if !saved {
		return c.Respond(&tele.CallbackResponse{Text: "⭐️ Already saved"})
	}

	return c.Respond(&tele.CallbackResponse{Text: "⭐️ Saved"})
}

// renderList drives every cursor-backed list except the open-jobs browse.
func renderList(ctx *Context, c tele.Context, sess *session.Session, kind session.ListKind, edit bool) error {
	dbCtx, cancel := dbContext()
	defer cancel()

	var (
		count int
		err   error
	)

	var actorID int64
	if kind == session.ListSavedJobs || kind == session.ListApplications {
		actor, aerr := ctx.Actors.Get(dbCtx, sess.ChatID, models.RoleApplicant)
		if aerr != nil {
			return c.Send("😔 Something went wrong. Please try again later.")
		}
		if actor == nil {
			return c.Send("Register as an applicant first.", utils.RoleKeyboard())
		}
		actorID = actor.ID
	}

	switch kind {
	case session.ListSavedJobs:
		count, err = ctx.Store.CountSavedJobs(dbCtx, actorID)
	case session.ListApplications:
		count, err = ctx.Store.CountApplicationsByActor(dbCtx, actorID)
	case session.ListMyJobs:
		count, err = ctx.Store.CountJobsByPoster(dbCtx, sess.ChatID)
	case session.ListMyCompanies:
		count, err = ctx.Store.CountCompaniesByOwner(dbCtx, sess.ChatID)
	case session.ListApplicants:
		count, err = ctx.Store.CountApplicationsByJob(dbCtx, sess.JobID)
	default:
		return c.Send(msgNothingHere)
	}
	if err != nil {
		return c.Send("😔 Something went wrong. Please try again later.")
	}
	if count == 0 {
		return sendOrEdit(c, edit, msgNothingHere)
	}

	cur := sess.Cursor(kind)
	cur.Sync(count)

	text, markup, err := renderListItem(ctx, c, sess, kind, actorID, cur)
	if err != nil {
		return c.Send("😔 Something went wrong. Please try again later.")
	}

	if err := ctx.Sessions.Save(dbCtx, sess); err != nil {
		return c.Send("😔 Something went wrong. Please try again later.")
	}

	opts := []interface{}{tele.ModeMarkdownV2}
	if markup != nil {
		opts = append(opts, markup)
	}

	return sendOrEdit(c, edit, text, opts...)
}

func renderListItem(ctx *Context, c tele.Context, sess *session.Session, kind session.ListKind, actorID int64, cur *session.Cursor) (string, *tele.ReplyMarkup, error) {
	dbCtx, cancel := dbContext()
	defer cancel()

	switch kind {
	case session.ListSavedJobs:
		job, err := ctx.Store.GetSavedJobAt(dbCtx, actorID, cur.Index)
		if err != nil || job == nil {
			return "", nil, fmt.Errorf("saved job at %d: %w", cur.Index, err)
		}
		text := utils.EscapeMarkdown(utils.FormatListHeader("Saved job", cur.Index, cur.Total)) +
			"\n\n" + utils.FormatJob(job, "")
		return text, savedJobKeyboard(kind, job.ID, cur), nil

	case session.ListApplications:
		app, err := ctx.Store.GetApplicationByActorAt(dbCtx, actorID, cur.Index)
		if err != nil || app == nil {
			return "", nil, fmt.Errorf("application at %d: %w", cur.Index, err)
		}
		title := "(removed)"
		if job, err := ctx.Jobs.Get(dbCtx, app.JobID); err == nil && job != nil {
			title = job.Title
		}
		text := fmt.Sprintf("%s\n\n*%s*\nStatus: %s",
			utils.EscapeMarkdown(utils.FormatListHeader("Application", cur.Index, cur.Total)),
			utils.EscapeMarkdown(title),
			utils.EscapeMarkdown(app.Status),
		)
		return text, utils.ListKeyboard(kind, cur.Index, cur.Total), nil

	case session.ListMyJobs:
		job, err := ctx.Store.GetJobByPosterAt(dbCtx, sess.ChatID, cur.Index)
		if err != nil || job == nil {
			return "", nil, fmt.Errorf("my job at %d: %w", cur.Index, err)
		}
		status := job.Status
		if job.Closed {
			status += ", closed"
		}
		text := utils.EscapeMarkdown(utils.FormatListHeader("Job", cur.Index, cur.Total)) +
			"\n\n" + utils.FormatJob(job, "") +
			fmt.Sprintf("\n*Status:* %s", utils.EscapeMarkdown(status))
		return text, myJobKeyboard(kind, job.ID, cur), nil

	case session.ListMyCompanies:
		company, err := ctx.Store.GetCompanyByOwnerAt(dbCtx, sess.ChatID, cur.Index)
		if err != nil || company == nil {
			return "", nil, fmt.Errorf("company at %d: %w", cur.Index, err)
		}
		text := utils.EscapeMarkdown(utils.FormatListHeader("Company", cur.Index, cur.Total)) +
			"\n\n" + utils.FormatCompany(company)
		return text, utils.ListKeyboard(kind, cur.Index, cur.Total), nil

	case session.ListApplicants:
		app, err := ctx.Store.GetApplicationByJobAt(dbCtx, sess.JobID, cur.Index)
		if err != nil || app == nil {
			return "", nil, fmt.Errorf("applicant at %d: %w", cur.Index, err)
		}
		applicant, err := ctx.Store.GetActorByID(dbCtx, app.ActorID)
		if err != nil || applicant == nil {
			return "", nil, fmt.Errorf("applicant actor %d: %w", app.ActorID, err)
		}
		text := applicantCard(applicant, app, cur)
		return text, applicantKeyboard(kind, app.ID, cur), nil
	}

	return "", nil, fmt.Errorf("unknown list kind %q", kind)
}

func applicantCard(applicant *models.Actor, app *models.Application, cur *session.Cursor) string {
	text := utils.EscapeMarkdown(utils.FormatListHeader("Applicant", cur.Index, cur.Total)) +
		"\n\n" + utils.FormatProfile(applicant) +
		fmt.Sprintf("\n*Application status:* %s\n", utils.EscapeMarkdown(app.Status))

	if app.CoverLetter != nil {
		text += fmt.Sprintf("\n*Cover letter:*\n%s\n",
			utils.EscapeMarkdown(utils.TruncateString(*app.CoverLetter, 600)))
	}
	if len(app.Portfolio) > 0 {
		text += "\n*Portfolio:*\n"
		for _, link := range app.Portfolio {
			text += utils.EscapeMarkdown(link) + "\n"
		}
	}

	return text
}

func savedJobKeyboard(kind session.ListKind, jobID int64, cur *session.Cursor) *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}

	apply := menu.Row(menu.Data("📨 Apply", utils.CbApplyJob, fmt.Sprintf("%d", jobID)))

	if nav := utils.ListNavRow(menu, kind, cur.Index, cur.Total); nav != nil {
		menu.Inline(*nav, apply)
	} else {
		menu.Inline(apply)
	}
	return menu
}

func myJobKeyboard(kind session.ListKind, jobID int64, cur *session.Cursor) *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}

	view := menu.Row(menu.Data("👀 View applicants", utils.CbViewApplicants, fmt.Sprintf("%d", jobID)))

	if nav := utils.ListNavRow(menu, kind, cur.Index, cur.Total); nav != nil {
		menu.Inline(*nav, view)
	} else {
		menu.Inline(view)
	}
	return menu
}

func applicantKeyboard(kind session.ListKind, appID int64, cur *session.Cursor) *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}

	statuses := menu.Row(
		menu.Data("⭐ Shortlist", utils.CbAppStatus, fmt.Sprintf("%d:%s", appID, models.ApplicationStatusShortlisted)),
		menu.Data("✅ Approve", utils.CbAppStatus, fmt.Sprintf("%d:%s", appID, models.ApplicationStatusApproved)),
		menu.Data("🚫 Reject", utils.CbAppStatus, fmt.Sprintf("%d:%s", appID, models.ApplicationStatusRejected)),
	)

	if nav := utils.ListNavRow(menu, kind, cur.Index, cur.Total); nav != nil {
		menu.Inline(*nav, statuses)
	} else {
		menu.Inline(statuses)
	}
	return menu
}

// handleListPage moves a per-session cursor one step and re-renders.
func handleListPage(ctx *Context, c tele.Context, parts []string, forward bool) error {
	if len(parts) < 2 {
		return c.Respond(&tele.CallbackResponse{Text: "❌ Invalid request"})
	}

	kind := session.ListKind(parts[1])

	sess, err := loadSession(ctx, c)
	if err != nil {
		return err
	}

	cur := sess.Cursor(kind)
	if forward {
		cur.Next()
	} else {
		cur.Prev()
	}

	_ = c.Respond(&tele.CallbackResponse{})

	return renderList(ctx, c, sess, kind, true)
}

// jobOwnedBy reports whether chatID posted the job. Callback data is
// forgeable, so employer-only actions re-check ownership before touching
// anything.
func jobOwnedBy(job *models.Job, chatID int64) bool {
	return job != nil && job.PostedBy == chatID
}

// handleViewApplicants switches the employer to the applicants list for one
// of their jobs.
func handleViewApplicants(ctx *Context, c tele.Context, parts []string) error {
	if len(parts) < 2 {
		return c.Respond(&tele.CallbackResponse{Text: "❌ Invalid request"})
	}

	jobID, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "❌ Invalid request"})
	}

	dbCtx, cancel := dbContext()
	defer cancel()

	job, err := ctx.Jobs.Get(dbCtx, jobID)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "😔 Something went wrong"})
	}
	if !jobOwnedBy(job, c.Sender().ID) {
		return c.Respond(&tele.CallbackResponse{Text: "⛔️ Not your job"})
	}

	sess, err := loadSession(ctx, c)
	if err != nil {
		return err
	}

	sess.JobID = jobID
	sess.Cursor(session.ListApplicants).Sync(0)

	_ = c.Respond(&tele.CallbackResponse{})

	return renderList(ctx, c, sess, session.ListApplicants, false)
}

// handleAppStatus records an employer's decision on one application.
func handleAppStatus(ctx *Context, c tele.Context, parts []string) error {
	if len(parts) < 3 {
		return c.Respond(&tele.CallbackResponse{Text: "❌ Invalid request"})
	}

	appID, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "❌ Invalid request"})
	}

	status := parts[2]
	switch status {
	case models.ApplicationStatusShortlisted,
		models.ApplicationStatusApproved,
		models.ApplicationStatusRejected:
	default:
		return c.Respond(&tele.CallbackResponse{Text: "❓ Unknown status"})
	}

	dbCtx, cancel := dbContext()
	defer cancel()

	app, err := ctx.Store.GetApplication(dbCtx, appID)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "😔 Something went wrong"})
	}
	if app == nil {
		return c.Respond(&tele.CallbackResponse{Text: "❓ Unknown application"})
	}

	job, err := ctx.Jobs.Get(dbCtx, app.JobID)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "😔 Something went wrong"})
	}
	if !jobOwnedBy(job, c.Sender().ID) {
		return c.Respond(&tele.CallbackResponse{Text: "⛔️ Not your job"})
	}

	if err := ctx.Store.SetApplicationStatus(dbCtx, appID, status); err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "😔 Something went wrong"})
	}

	return c.Respond(&tele.CallbackResponse{Text: "✅ " + status})
}
