package flow

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"jobboard-bot/internal/session"

	"go.uber.org/zap"
)

// Messages for engine-level outcomes. Step-level correction prompts come
// from the validators.
const (
	msgCancelled    = "❌ Cancelled. Nothing was saved."
	msgChooseOption = "Please choose one of the options below."
	msgConfirmHint  = "Please confirm, restart or cancel."
	msgGenericError = "😔 Something went wrong. Please try again later."
)

// Engine drives any Flow one input at a time against a redis-backed session.
type Engine struct {
	sessions *session.Store
	logger   *zap.Logger
}

func NewEngine(sessions *session.Store, logger *zap.Logger) *Engine {
	return &Engine{
		sessions: sessions,
		logger:   logger,
	}
}

// Start puts the session at the flow's first step and returns its prompt.
func (e *Engine) Start(ctx context.Context, s *session.Session, f *Flow) (Prompt, error) {
	s.Flow = f.Name
	s.State = f.First
	s.Acc = make(map[string]string)

	if err := e.sessions.Save(ctx, s); err != nil {
		return Prompt{Text: msgGenericError, Done: true}, err
	}

	return e.promptFor(f, f.First), nil
}

// Input consumes one unit of user input for the session's current state.
// The returned Prompt always reflects the state the session was left in.
func (e *Engine) Input(ctx context.Context, s *session.Session, f *Flow, input string) (Prompt, error) {
	input = strings.TrimSpace(input)

	// Global cancellation, accepted in every state.
	if input == CancelCommand || input == CancelLabel {
		return e.abort(ctx, s, msgCancelled)
	}

	if s.State == StateConfirm {
		return e.confirmInput(ctx, s, f, input)
	}

	step, ok := f.Steps[s.State]
	if !ok {
		e.logger.Warn("session in unknown state",
			zap.Int64("chat_id", s.ChatID),
			zap.String("flow", f.Name),
			zap.String("state", s.State),
		)
		return e.abort(ctx, s, msgGenericError)
	}

	value, prompt, ok := e.stepValue(step, input)
	if !ok {
		// Validation failure: same state, accumulator untouched.
		return prompt, nil
	}

	s.Set(step.Field, value)
	next := step.next(value, s.Acc)
	s.State = next

	if err := e.sessions.Save(ctx, s); err != nil {
		return e.abort(ctx, s, msgGenericError)
	}

	if next == StateConfirm {
		return Prompt{Text: f.Summary(s.Acc), Confirm: true}, nil
	}

	return e.promptFor(f, next), nil
}

// stepValue validates one input against a step. The bool reports acceptance;
// on rejection the Prompt re-asks in the same state.
func (e *Engine) stepValue(step Step, input string) (string, Prompt, bool) {
	if step.Optional && input == SkipLabel {
		return "", Prompt{}, true
	}

	if len(step.Options) > 0 {
		for _, o := range step.Options {
			if o == input {
				return input, Prompt{}, true
			}
		}
		return "", Prompt{
			Text:     msgChooseOption,
			Options:  step.Options,
			Optional: step.Optional,
		}, false
	}

	if step.Validate != nil {
		value, err := step.Validate(input)
		if err != nil {
			return "", Prompt{
				Text:     err.Error(),
				Optional: step.Optional,
			}, false
		}
		return value, Prompt{}, true
	}

	if input == "" {
		return "", Prompt{Text: step.Prompt, Optional: step.Optional}, false
	}

	return input, Prompt{}, true
}

func (e *Engine) confirmInput(ctx context.Context, s *session.Session, f *Flow, input string) (Prompt, error) {
	switch input {
	case ConfirmLabel:
		return e.commit(ctx, s, f)

	case RestartLabel:
		s.Acc = make(map[string]string)
		s.State = f.First
		if err := e.sessions.Save(ctx, s); err != nil {
			return e.abort(ctx, s, msgGenericError)
		}
		return e.promptFor(f, f.First), nil

	default:
		return Prompt{Text: msgConfirmHint, Confirm: true}, nil
	}
}

func (e *Engine) commit(ctx context.Context, s *session.Session, f *Flow) (Prompt, error) {
	msg, err := f.Commit(ctx, s)
	if err != nil {
		var ferr *Error
		if errors.As(err, &ferr) && ferr.Kind == KindDuplicate {
			e.logger.Info("duplicate commit rejected",
				zap.Int64("chat_id", s.ChatID),
				zap.String("flow", f.Name),
			)
			return e.abort(ctx, s, ferr.Msg)
		}

		e.logger.Error("flow commit failed",
			zap.Int64("chat_id", s.ChatID),
			zap.String("flow", f.Name),
			zap.Error(err),
		)
		return e.abort(ctx, s, msgGenericError)
	}

	e.logger.Info("flow committed",
		zap.Int64("chat_id", s.ChatID),
		zap.String("flow", f.Name),
	)

	prompt, err := e.abort(ctx, s, msg)
	return prompt, err
}

// abort ends the flow, keeping the rest of the session (role, cursors).
func (e *Engine) abort(ctx context.Context, s *session.Session, msg string) (Prompt, error) {
	s.ResetFlow()
	if err := e.sessions.Save(ctx, s); err != nil {
		e.logger.Error("failed to clear flow state",
			zap.Int64("chat_id", s.ChatID),
			zap.Error(err),
		)
	}
	return Prompt{Text: msg, Done: true}, nil
}

func (e *Engine) promptFor(f *Flow, state string) Prompt {
	step, ok := f.Steps[state]
	if !ok {
		return Prompt{Text: fmt.Sprintf("unknown state %q", state), Done: true}
	}
	return Prompt{
		Text:     step.Prompt,
		Options:  step.Options,
		Optional: step.Optional,
	}
}
