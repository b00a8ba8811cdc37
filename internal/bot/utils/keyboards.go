package utils

import (
	"fmt"

	"jobboard-bot/internal/flow"
	"jobboard-bot/internal/models"
	"jobboard-bot/internal/session"

	tele "gopkg.in/telebot.v3"
)

// Main menu button labels. The text router dispatches on these, so they are
// shared constants rather than literals in two places.
const (
	BtnBrowseJobs   = "🔎 Browse Jobs"
	BtnSavedJobs    = "⭐️ Saved Jobs"
	BtnMyApps       = "📨 My Applications"
	BtnMyProfile    = "👤 My Profile"
	BtnMyCompanies  = "🏢 My Companies"
	BtnAddCompany   = "➕ Register Company"
	BtnPostJob      = "📋 Post a Job"
	BtnMyJobs       = "🗂 My Jobs"
	BtnHelp         = "ℹ️ Help"
	BtnRoleApplicant = "🧑‍💼 I'm looking for a job"
	BtnRoleEmployer  = "🏢 I'm hiring"
)

// Inline callback uniques. Callback data is "<unique>:<arg>".
const (
	CbJobsPrev       = "jobs_prev"
	CbJobsNext       = "jobs_next"
	CbApplyJob       = "apply_job"
	CbSaveJob        = "save_job"
	CbCompanyApprove = "company_approve"
	CbCompanyReject  = "company_reject"
	CbJobApprove     = "job_approve"
	CbJobReject      = "job_reject"
	CbViewApplicants = "view_applicants"
	CbListPrev       = "list_prev"
	CbListNext       = "list_next"
	CbAIDraft        = "ai_draft"
	CbEditField      = "edit_field"
	CbAppStatus      = "app_status"
)

// RoleKeyboard is shown on first contact, before any profile exists.
func RoleKeyboard() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true, OneTimeKeyboard: true}
	menu.Reply(
		menu.Row(menu.Text(BtnRoleApplicant)),
		menu.Row(menu.Text(BtnRoleEmployer)),
	)
	return menu
}

func MainMenuKeyboard(role string) *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true}

	switch role {
	case models.RoleEmployer:
		menu.Reply(
			menu.Row(menu.Text(BtnPostJob), menu.Text(BtnMyJobs)),
			menu.Row(menu.Text(BtnAddCompany), menu.Text(BtnMyCompanies)),
			menu.Row(menu.Text(BtnMyProfile), menu.Text(BtnHelp)),
		)
	default:
		menu.Reply(
			menu.Row(menu.Text(BtnBrowseJobs), menu.Text(BtnSavedJobs)),
			menu.Row(menu.Text(BtnMyApps), menu.Text(BtnMyProfile)),
			menu.Row(menu.Text(BtnHelp)),
		)
	}

	return menu
}

// OptionsKeyboard renders a flow step's choice buttons, two per row, plus
// Skip for optional steps and Cancel always.
func OptionsKeyboard(options []string, optional bool) *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true, OneTimeKeyboard: true}

	var rows []tele.Row
	for i := 0; i < len(options); i += 2 {
		if i+1 < len(options) {
			rows = append(rows, menu.Row(menu.Text(options[i]), menu.Text(options[i+1])))
		} else {
			rows = append(rows, menu.Row(menu.Text(options[i])))
		}
	}

	if optional {
		rows = append(rows, menu.Row(menu.Text(flow.SkipLabel)))
	}
	rows = append(rows, menu.Row(menu.Text(flow.CancelLabel)))

	menu.Reply(rows...)
	return menu
}

// TextStepKeyboard is shown on free-text steps: Skip (when optional) and
// Cancel only.
func TextStepKeyboard(optional bool) *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true, OneTimeKeyboard: true}
	if optional {
		menu.Reply(
			menu.Row(menu.Text(flow.SkipLabel)),
			menu.Row(menu.Text(flow.CancelLabel)),
		)
	} else {
		menu.Reply(menu.Row(menu.Text(flow.CancelLabel)))
	}
	return menu
}

func ConfirmKeyboard() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true, OneTimeKeyboard: true}
	menu.Reply(
		menu.Row(menu.Text(flow.ConfirmLabel)),
		menu.Row(menu.Text(flow.RestartLabel), menu.Text(flow.CancelLabel)),
	)
	return menu
}

// JobBrowseKeyboard is the inline keyboard under a job card while browsing:
// pagination plus Apply and Save.
func JobBrowseKeyboard(jobID int64, index, total int) *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}

	nav := paginationRow(menu, CbJobsPrev, CbJobsNext, "", index, total)
	actions := menu.Row(
		menu.Data("📨 Apply", CbApplyJob, fmt.Sprintf("%d", jobID)),
		menu.Data("⭐️ Save", CbSaveJob, fmt.Sprintf("%d", jobID)),
	)

	if nav == nil {
		menu.Inline(actions)
	} else {
		menu.Inline(*nav, actions)
	}
	return menu
}

// ListKeyboard is the inline pagination keyboard for the other per-session
// lists. The list kind rides in the callback data so one handler pair serves
// every list.
func ListKeyboard(kind session.ListKind, index, total int) *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	nav := ListNavRow(menu, kind, index, total)
	if nav == nil {
		return nil
	}
	menu.Inline(*nav)
	return menu
}

// ListNavRow exposes the bare nav row so handlers can stack action rows
// under it.
func ListNavRow(menu *tele.ReplyMarkup, kind session.ListKind, index, total int) *tele.Row {
	return paginationRow(menu, CbListPrev, CbListNext, string(kind), index, total)
}

// paginationRow builds "⬅️ Prev | Next ➡️", dropping the arrow that would be
// a no-op at the clamped end. Returns nil when the list fits on one page.
func paginationRow(menu *tele.ReplyMarkup, prevUnique, nextUnique, arg string, index, total int) *tele.Row {
	if total <= 1 {
		return nil
	}

	var btns []tele.Btn
	if index > 0 {
		btns = append(btns, menu.Data("⬅️ Prev", prevUnique, arg))
	}
	if index < total-1 {
		btns = append(btns, menu.Data("Next ➡️", nextUnique, arg))
	}
	if len(btns) == 0 {
		return nil
	}

	row := menu.Row(btns...)
	return &row
}

// AIDraftKeyboard offers a generated cover-letter draft on the apply flow's
// cover-letter step, alongside the usual Skip/Cancel reply buttons.
func AIDraftKeyboard(jobID int64) *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(menu.Row(
		menu.Data("✨ Draft it for me", CbAIDraft, fmt.Sprintf("%d", jobID)),
	))
	return menu
}
