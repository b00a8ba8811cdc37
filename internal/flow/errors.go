package flow

import "fmt"

// Kind classifies what went wrong inside a flow, so handlers react by type
// instead of by convention: validation stays on the same step, duplicates
// end the flow with an informational notice, storage failures end it with a
// generic apology.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindDuplicate
	KindStorage
)

type Error struct {
	Kind Kind
	Msg  string // user-facing, static
	Err  error  // wrapped cause, never shown to the user
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Duplicate marks a commit rejected by an idempotence guard.
func Duplicate(msg string) *Error {
	return &Error{Kind: KindDuplicate, Msg: msg}
}

// Storage wraps a persistence failure during a commit.
func Storage(err error) *Error {
	return &Error{Kind: KindStorage, Msg: "storage failure", Err: err}
}
