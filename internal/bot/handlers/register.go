package handlers

import (
	"context"
	"errors"
	"strconv"

	"jobboard-bot/internal/bot/utils"
	"jobboard-bot/internal/flow"
	"jobboard-bot/internal/models"
	"jobboard-bot/internal/session"
	"jobboard-bot/internal/validate"

	"github.com/lib/pq"
	tele "gopkg.in/telebot.v3"
)

const pqUniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation
}

func registrationFlowName(role string) string {
	if role == models.RoleEmployer {
		return flowRegisterEmployer
	}
	return flowRegisterApplicant
}

// registrationFlow collects a profile one field at a time and creates the
// actor on confirm. Names are collected one word per step because the name
// validator rejects spaces.
func registrationFlow(ctx *Context, role string) *flow.Flow {
	return &flow.Flow{
		Name:  registrationFlowName(role),
		First: "first_name",
		Steps: map[string]flow.Step{
			"first_name": {
				Field:    "first_name",
				Prompt:   "👋 Let's get you registered. What's your first name?",
				Validate: validate.Name,
				Next:     "last_name",
			},
			"last_name": {
				Field:    "last_name",
				Prompt:   "And your last name?",
				Validate: validate.Name,
				Next:     "email",
			},
			"email": {
				Field:    "email",
				Prompt:   "📧 Your email address?",
				Validate: validate.Email,
				Next:     "phone",
			},
			"phone": {
				Field:    "phone",
				Prompt:   "📱 Your phone number? Digits only, please.",
				Validate: validate.Phone,
				Next:     "gender",
			},
			"gender": {
				Field:    "gender",
				Prompt:   "Your gender? You can skip this.",
				Options:  models.GenderOptions(),
				Optional: true,
				Next:     "age",
			},
			"age": {
				Field:    "age",
				Prompt:   "🎂 How old are you?",
				Validate: validate.Age,
				Next:     "country",
			},
			"country": {
				Field:   "country",
				Prompt:  "🌍 Which country are you in?",
				Options: models.CountryOptions(),
				Next:    "city",
			},
			"city": {
				Field:   "city",
				Prompt:  "🏙 And which city?",
				Options: models.CityOptions(),
				Next:    flow.StateConfirm,
			},
		},
		Summary: utils.FormatRegistrationSummary,
		Commit: func(cctx context.Context, s *session.Session) (string, error) {
			age, err := strconv.Atoi(s.Get("age"))
			if err != nil {
				return "", flow.Storage(err)
			}

			actor := &models.Actor{
				ChatID:    s.ChatID,
				Role:      role,
				FirstName: s.Get("first_name"),
				LastName:  s.Get("last_name"),
				Email:     stringPtr(s.Get("email")),
				Phone:     stringPtr(s.Get("phone")),
				Gender:    stringPtr(s.Get("gender")),
				Age:       &age,
				Country:   stringPtr(s.Get("country")),
				City:      stringPtr(s.Get("city")),
			}

			if err := ctx.Store.CreateActor(cctx, actor); err != nil {
				if isUniqueViolation(err) {
					return "", flow.Duplicate("You are already registered with this role. Use /start to continue.")
				}
				return "", flow.Storage(err)
			}

			ctx.Notify.NewRegistration(actor)

			return "🎉 Registration complete! Welcome aboard.", nil
		},
	}
}

// startRegistration kicks off the flow after a role button press. An actor
// that already exists for the role goes straight to the main menu.
func startRegistration(ctx *Context, c tele.Context, sess *session.Session, role string) error {
	dbCtx, cancel := dbContext()
	defer cancel()

	actor, err := ctx.Actors.Get(dbCtx, sess.ChatID, role)
	if err != nil {
		return c.Send("😔 Something went wrong. Please try again later.")
	}

	sess.Role = role

	if actor != nil {
		if err := ctx.Sessions.Save(dbCtx, sess); err != nil {
			return c.Send("😔 Something went wrong. Please try again later.")
		}
		return c.Send(
			utils.FormatWelcomeMessage(actor.FirstName, role),
			utils.MainMenuKeyboard(role),
			tele.ModeMarkdownV2,
		)
	}

	prompt, err := ctx.Engine.Start(dbCtx, sess, registrationFlow(ctx, role))
	if err != nil {
		return c.Send(prompt.Text)
	}

	return sendPrompt(c, sess, prompt)
}
