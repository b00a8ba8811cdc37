package handlers

import (
	"context"
	"fmt"
	"strconv"

	"jobboard-bot/internal/bot/utils"
	"jobboard-bot/internal/flow"
	"jobboard-bot/internal/models"
	"jobboard-bot/internal/session"
	"jobboard-bot/internal/validate"

	tele "gopkg.in/telebot.v3"
)

// editableField describes one profile field the edit flow can change.
// Fields with options become button steps, the rest validate free text.
type editableField struct {
	column   string
	label    string
	validate validate.Func
	options  []string
}

var editableFields = []editableField{
	{column: "first_name", label: "First name", validate: validate.Name},
	{column: "last_name", label: "Last name", validate: validate.Name},
	{column: "email", label: "Email", validate: validate.Email},
	{column: "phone", label: "Phone", validate: validate.Phone},
	{column: "age", label: "Age", validate: validate.Age},
	{column: "gender", label: "Gender", options: models.GenderOptions()},
	{column: "country", label: "Country", options: models.CountryOptions()},
	{column: "city", label: "City", options: models.CityOptions()},
	{column: "skills", label: "Skills", validate: validate.FreeText},
}

func fieldByColumn(column string) *editableField {
	for i := range editableFields {
		if editableFields[i].column == column {
			return &editableFields[i]
		}
	}
	return nil
}

// editFlow is a one-step form: collect the new value, confirm, write it.
func editFlow(ctx *Context, column string) *flow.Flow {
	field := fieldByColumn(column)
	if field == nil {
		return nil
	}

	prompt := fmt.Sprintf("Enter a new value for %s:", field.label)
	if len(field.options) > 0 {
		prompt = fmt.Sprintf("Choose a new value for %s:", field.label)
	}
	if column == "skills" {
		prompt = "List your skills, comma-separated:"
	}

	return &flow.Flow{
		Name:  flowEditPrefix + column,
		First: "value",
		Steps: map[string]flow.Step{
			"value": {
				Field:    "value",
				Prompt:   prompt,
				Validate: field.validate,
				Options:  field.options,
				Next:     flow.StateConfirm,
			},
		},
		Summary: func(acc map[string]string) string {
			return fmt.Sprintf("Set *%s* to: %s",
				utils.EscapeMarkdown(field.label),
				utils.EscapeMarkdown(acc["value"]),
			)
		},
		Commit: func(cctx context.Context, s *session.Session) (string, error) {
			value, err := columnValue(column, s.Get("value"))
			if err != nil {
				return "", flow.Storage(err)
			}

			if err := ctx.Store.UpdateActorField(cctx, s.ChatID, s.Role, column, value); err != nil {
				return "", flow.Storage(err)
			}

			// The cached copy is stale the moment the write lands.
			if err := ctx.Actors.Invalidate(cctx, s.ChatID, s.Role); err != nil {
				ctx.Logger.Warn("actor cache invalidation failed")
			}

			return fmt.Sprintf("✅ %s updated.", field.label), nil
		},
	}
}

// columnValue converts the collected string to the column's storage type.
// Option-backed columns re-check the value against the canonical list: the
// accumulator sits in redis between steps and is not trusted at write time.
func columnValue(column, raw string) (interface{}, error) {
	switch column {
	case "age":
		return strconv.Atoi(raw)
	case "skills":
		return splitLinks(raw), nil
	case "gender":
		if !models.IsValidGender(raw) {
			return nil, fmt.Errorf("unknown gender %q", raw)
		}
		return raw, nil
	case "country":
		if !models.IsValidCountry(raw) {
			return nil, fmt.Errorf("unknown country %q", raw)
		}
		return raw, nil
	case "city":
		if !models.IsValidCity(raw) {
			return nil, fmt.Errorf("unknown city %q", raw)
		}
		return raw, nil
	default:
		return raw, nil
	}
}

// HandleProfile shows the profile with per-field edit buttons.
func HandleProfile(ctx *Context, c tele.Context, sess *session.Session) error {
	if sess.Role == "" {
		return c.Send("Please choose a role first.", utils.RoleKeyboard())
	}

	dbCtx, cancel := dbContext()
	defer cancel()

	actor, err := ctx.Actors.Get(dbCtx, sess.ChatID, sess.Role)
	if err != nil {
		return c.Send("😔 Something went wrong. Please try again later.")
	}
	if actor == nil {
		return c.Send("You're not registered yet.", utils.RoleKeyboard())
	}

	return c.Send(
		utils.FormatProfile(actor),
		profileEditKeyboard(),
		tele.ModeMarkdownV2,
	)
}

func profileEditKeyboard() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}

	var rows []tele.Row
	for i := 0; i < len(editableFields); i += 2 {
		var btns []tele.Btn
		for j := i; j < i+2 && j < len(editableFields); j++ {
			f := editableFields[j]
			btns = append(btns, menu.Data("✏️ "+f.label, utils.CbEditField, f.column))
		}
		rows = append(rows, menu.Row(btns...))
	}

	menu.Inline(rows...)
	return menu
}

// handleEditField starts the one-step edit flow for the chosen column.
func handleEditField(ctx *Context, c tele.Context, parts []string) error {
	if len(parts) < 2 {
		return c.Respond(&tele.CallbackResponse{Text: "❌ Invalid request"})
	}

	f := editFlow(ctx, parts[1])
	if f == nil {
		return c.Respond(&tele.CallbackResponse{Text: "❓ Unknown field"})
	}

	sess, err := loadSession(ctx, c)
	if err != nil {
		return err
	}

	dbCtx, cancel := dbContext()
	defer cancel()

	prompt, err := ctx.Engine.Start(dbCtx, sess, f)
	if err != nil {
		return c.Send(prompt.Text)
	}

	_ = c.Respond(&tele.CallbackResponse{})

	return sendPrompt(c, sess, prompt)
}
