package handlers

import (
	"fmt"
	"testing"

	"jobboard-bot/internal/bot/utils"
	"jobboard-bot/internal/models"
	"jobboard-bot/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v3"
)

// wireData reproduces the callback data Telegram echoes back for an inline
// button: "\f<unique>", plus "|<payload>" when the button carries data.
func wireData(btn tele.InlineButton) string {
	data := "\f" + btn.Unique
	if btn.Data != "" {
		data += "|" + btn.Data
	}
	return data
}

func findInline(t *testing.T, markup *tele.ReplyMarkup, text string) tele.InlineButton {
	t.Helper()
	require.NotNil(t, markup)
	for _, row := range markup.InlineKeyboard {
		for _, btn := range row {
			if btn.Text == text {
				return btn
			}
		}
	}
	t.Fatalf("no button %q in markup", text)
	return tele.InlineButton{}
}

// Every inline button the bot renders must come back over the wire as an
// action the router recognizes, with its argument intact.
func TestCallbackRouterResolvesEveryKeyboardButton(t *testing.T) {
	cur := &session.Cursor{Index: 0, Total: 1}

	moderation := &tele.ReplyMarkup{}
	approve := moderation.Data("✅ Approve", fmt.Sprintf("%s:%d", utils.CbCompanyApprove, 3))

	cases := []struct {
		name   string
		button tele.InlineButton
		action string
		args   []string
	}{
		{"browse apply", findInline(t, utils.JobBrowseKeyboard(42, 1, 3), "📨 Apply"), utils.CbApplyJob, []string{"42"}},
		{"browse save", findInline(t, utils.JobBrowseKeyboard(42, 1, 3), "⭐️ Save"), utils.CbSaveJob, []string{"42"}},
		{"browse prev", findInline(t, utils.JobBrowseKeyboard(42, 1, 3), "⬅️ Prev"), utils.CbJobsPrev, []string{}},
		{"browse next", findInline(t, utils.JobBrowseKeyboard(42, 1, 3), "Next ➡️"), utils.CbJobsNext, []string{}},
		{"list prev", findInline(t, utils.ListKeyboard(session.ListSavedJobs, 1, 3), "⬅️ Prev"), utils.CbListPrev, []string{"saved_jobs"}},
		{"list next", findInline(t, utils.ListKeyboard(session.ListApplications, 0, 3), "Next ➡️"), utils.CbListNext, []string{"applications"}},
		{"draft", findInline(t, utils.AIDraftKeyboard(7), "✨ Draft it for me"), utils.CbAIDraft, []string{"7"}},
		{"edit field", findInline(t, profileEditKeyboard(), "✏️ First name"), utils.CbEditField, []string{"first_name"}},
		{"saved job apply", findInline(t, savedJobKeyboard(session.ListSavedJobs, 11, cur), "📨 Apply"), utils.CbApplyJob, []string{"11"}},
		{"view applicants", findInline(t, myJobKeyboard(session.ListMyJobs, 9, cur), "👀 View applicants"), utils.CbViewApplicants, []string{"9"}},
		{"app status", findInline(t, applicantKeyboard(session.ListApplicants, 5, cur), "✅ Approve"), utils.CbAppStatus, []string{"5", models.ApplicationStatusApproved}},
		{"moderation", *approve.Inline(), utils.CbCompanyApprove, []string{"3"}},
	}

	for _, tc := range cases {
		parts := parseCallback(wireData(tc.button))
		require.NotEmpty(t, parts, tc.name)
		assert.Equal(t, tc.action, parts[0], tc.name)
		assert.Equal(t, tc.args, parts[1:], tc.name)
	}
}

// Buttons built with a payload argument are not registered as per-unique
// handlers, so the generic callback handler must receive their data verbatim
// and the router must still resolve them.
func TestPayloadButtonsFallThroughToGenericHandler(t *testing.T) {
	bot, err := tele.NewBot(tele.Settings{Offline: true, Synchronous: true})
	require.NoError(t, err)

	var got string
	bot.Handle(tele.OnCallback, func(c tele.Context) error {
		got = c.Callback().Data
		return nil
	})

	bot.ProcessUpdate(tele.Update{Callback: &tele.Callback{
		Sender: &tele.User{ID: 1},
		Data:   "\fapply_job|42",
	}})

	assert.Equal(t, "\fapply_job|42", got)
	assert.Equal(t, []string{"apply_job", "42"}, parseCallback(got))
}

func TestParseCallbackPackedForm(t *testing.T) {
	assert.Equal(t, []string{"company_approve", "3"}, parseCallback("\fcompany_approve:3"))
	assert.Equal(t, []string{"jobs_next"}, parseCallback("\fjobs_next"))
	assert.Equal(t, []string{"app_status", "5", "rejected"}, parseCallback("\fapp_status|5:rejected"))
}

func TestJobOwnedBy(t *testing.T) {
	job := &models.Job{ID: 1, PostedBy: 100}

	assert.True(t, jobOwnedBy(job, 100))
	assert.False(t, jobOwnedBy(job, 200))
	assert.False(t, jobOwnedBy(nil, 100))
}
