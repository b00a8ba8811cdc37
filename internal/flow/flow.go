package flow

import (
	"context"

	"jobboard-bot/internal/session"
	"jobboard-bot/internal/validate"
)

// Button labels understood by the engine in every flow.
const (
	CancelCommand = "/cancel"
	CancelLabel   = "❌ Cancel"
	SkipLabel     = "⏭ Skip"
	ConfirmLabel  = "✅ Confirm"
	RestartLabel  = "🔄 Restart"
)

// StateConfirm is the distinguished review state every flow terminates in
// before its commit.
const StateConfirm = "confirm"

// Step collects one field. Exactly one of Validate/Options is normally set:
// free-text steps validate, button steps match an option. A step with
// neither accepts any non-empty input verbatim (used for file references
// delivered as upload IDs).
type Step struct {
	Field    string
	Prompt   string
	Validate validate.Func
	Options  []string
	Optional bool

	// Next is the state after a successful input. NextFunc overrides it
	// when the transition depends on the collected value (e.g. remote jobs
	// skip the city step).
	Next     string
	NextFunc func(value string, acc map[string]string) string
}

func (s Step) next(value string, acc map[string]string) string {
	if s.NextFunc != nil {
		return s.NextFunc(value, acc)
	}
	return s.Next
}

// CommitFunc persists the accumulator. It returns the terminal message shown
// to the user, or a *Error classifying the failure.
type CommitFunc func(ctx context.Context, s *session.Session) (string, error)

// Flow is one conversational form: an ordered step table ending in a
// confirm/commit pair.
type Flow struct {
	Name  string
	First string
	Steps map[string]Step

	// Summary renders the accumulator for review at the confirm state.
	Summary func(acc map[string]string) string
	Commit  CommitFunc
}

// Prompt describes what to send the user next. The transport layer turns
// Options/Optional/Confirm into the matching keyboard.
type Prompt struct {
	Text     string
	Options  []string
	Optional bool
	Confirm  bool

	// Done marks a terminal transition: the session flow state has been
	// cleared and no keyboard beyond the main menu is expected.
	Done bool
}
