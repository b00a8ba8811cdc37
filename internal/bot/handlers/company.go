package handlers

import (
	"context"
	"strings"

	"jobboard-bot/internal/bot/utils"
	"jobboard-bot/internal/flow"
	"jobboard-bot/internal/models"
	"jobboard-bot/internal/session"
	"jobboard-bot/internal/validate"

	tele "gopkg.in/telebot.v3"
)

// companyFlow registers a company for verification. The license and
// authorization steps accept either a document upload (stored as the
// Telegram file ID) or a reference typed as text.
func companyFlow(ctx *Context) *flow.Flow {
	return &flow.Flow{
		Name:  flowCompanyNew,
		First: "kind",
		Steps: map[string]flow.Step{
			"kind": {
				Field:   "kind",
				Prompt:  "🏢 Is this a company or a startup?",
				Options: models.CompanyKindOptions(),
				Next:    "name",
			},
			"name": {
				Field:    "name",
				Prompt:   "What's the company name?",
				Validate: validate.CompanyName,
				Next:     "trade_license_ref",
			},
			"trade_license_ref": {
				Field:  "trade_license_ref",
				Prompt: "📄 Please upload the trade license, or type its reference number.",
				Next:   "authorized_person_ref",
			},
			"authorized_person_ref": {
				Field:  "authorized_person_ref",
				Prompt: "🪪 Please upload the authorized person's ID, or type its reference.",
				Next:   "authorization_letter_ref",
			},
			"authorization_letter_ref": {
				Field:    "authorization_letter_ref",
				Prompt:   "📝 An authorization letter, if you have one. You can skip this.",
				Optional: true,
				Next:     flow.StateConfirm,
			},
		},
		Summary: utils.FormatCompanySummary,
		Commit: func(cctx context.Context, s *session.Session) (string, error) {
			company := &models.Company{
				OwnerChatID:            s.ChatID,
				Kind:                   strings.ToLower(s.Get("kind")),
				Name:                   s.Get("name"),
				TradeLicenseRef:        s.Get("trade_license_ref"),
				AuthorizedPersonRef:    s.Get("authorized_person_ref"),
				AuthorizationLetterRef: stringPtr(s.Get("authorization_letter_ref")),
			}

			if err := ctx.Store.CreateCompany(cctx, company); err != nil {
				return "", flow.Storage(err)
			}

			ctx.Notify.NewCompany(company)

			return "✅ Company submitted for verification. We'll let you know once it's reviewed.", nil
		},
	}
}

// HandleAddCompany starts company registration from the employer menu.
func HandleAddCompany(ctx *Context, c tele.Context, sess *session.Session) error {
	if sess.Role != models.RoleEmployer {
		return c.Send("Only employers can register companies.")
	}

	dbCtx, cancel := dbContext()
	defer cancel()

	prompt, err := ctx.Engine.Start(dbCtx, sess, companyFlow(ctx))
	if err != nil {
		return c.Send(prompt.Text)
	}

	return sendPrompt(c, sess, prompt)
}
