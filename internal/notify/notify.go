// Package notify broadcasts moderation and activity events to fixed group
// chats. Every send is best-effort: a delivery failure is logged and never
// surfaced to the user whose action triggered it.
package notify

import (
	"fmt"

	"jobboard-bot/internal/models"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

type Notifier struct {
	bot         *tele.Bot
	adminGroup  tele.ChatID
	notifyGroup tele.ChatID
	logger      *zap.Logger
}

func New(bot *tele.Bot, adminGroupID, notifyGroupID int64, logger *zap.Logger) *Notifier {
	return &Notifier{
		bot:         bot,
		adminGroup:  tele.ChatID(adminGroupID),
		notifyGroup: tele.ChatID(notifyGroupID),
		logger:      logger,
	}
}

func (n *Notifier) send(to tele.ChatID, text string, opts ...interface{}) {
	if int64(to) == 0 {
		return
	}
	if _, err := n.bot.Send(to, text, opts...); err != nil {
		n.logger.Warn("notification delivery failed",
			zap.Int64("chat_id", int64(to)),
			zap.Error(err),
		)
	}
}

func (n *Notifier) NewRegistration(actor *models.Actor) {
	text := fmt.Sprintf("👤 New %s registered: %s", actor.Role, actor.FullName())
	n.send(n.notifyGroup, text)
}

// NewCompany asks the admin group to verify a pending company.
func (n *Notifier) NewCompany(company *models.Company) {
	menu := &tele.ReplyMarkup{}
	menu.Inline(menu.Row(
		menu.Data("✅ Approve", fmt.Sprintf("company_approve:%d", company.ID)),
		menu.Data("🚫 Reject", fmt.Sprintf("company_reject:%d", company.ID)),
	))

	text := fmt.Sprintf(
		"🏢 New %s pending verification: %s\nTrade license: %s",
		company.Kind, company.Name, company.TradeLicenseRef,
	)
	n.send(n.adminGroup, text, menu)
}

// NewJob asks the admin group to moderate a pending posting.
func (n *Notifier) NewJob(job *models.Job, companyName string) {
	menu := &tele.ReplyMarkup{}
	menu.Inline(menu.Row(
		menu.Data("✅ Approve", fmt.Sprintf("job_approve:%d", job.ID)),
		menu.Data("🚫 Reject", fmt.Sprintf("job_reject:%d", job.ID)),
	))

	text := fmt.Sprintf(
		"📋 New job pending review: %s at %s (deadline %s)",
		job.Title, companyName, job.Deadline.Format("2006-01-02"),
	)
	n.send(n.adminGroup, text, menu)
}

// NewApplication tells the posting employer about an applicant, with a view
// action for the applicant list.
func (n *Notifier) NewApplication(job *models.Job, applicant *models.Actor) {
	menu := &tele.ReplyMarkup{}
	menu.Inline(menu.Row(
		menu.Data("👀 View applicants", fmt.Sprintf("view_applicants:%d", job.ID)),
	))

	text := fmt.Sprintf("📨 %s applied for %s", applicant.FullName(), job.Title)
	n.send(tele.ChatID(job.PostedBy), text, menu)
	n.send(n.notifyGroup, text)
}

// JobClosed tells the posting employer the deadline sweeper closed a job.
func (n *Notifier) JobClosed(job *models.Job) {
	text := fmt.Sprintf("⏳ Your job %q reached its deadline and is now closed.", job.Title)
	n.send(tele.ChatID(job.PostedBy), text)
}

// ModerationResult tells an owner what the admins decided.
func (n *Notifier) ModerationResult(ownerChatID int64, what, name, status string) {
	icon := "✅"
	if status == models.CompanyStatusRejected {
		icon = "🚫"
	}
	text := fmt.Sprintf("%s Your %s %q was %s.", icon, what, name, status)
	n.send(tele.ChatID(ownerChatID), text)
}
