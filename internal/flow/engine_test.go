package flow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"jobboard-bot/internal/session"
	"jobboard-bot/internal/storage/redis"
	"jobboard-bot/internal/validate"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeKV struct {
	data map[string][]byte
}

func (f *fakeKV) Get(_ context.Context, key string, dest interface{}) error {
	raw, ok := f.data[key]
	if !ok {
		return redis.ErrNotFound
	}
	return json.Unmarshal(raw, dest)
}

func (f *fakeKV) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.data[key] = raw
	return nil
}

func (f *fakeKV) Delete(_ context.Context, key string) error {
	delete(f.data, key)
	return nil
}

func newEngine(t *testing.T) (*Engine, *session.Store) {
	t.Helper()
	store := session.NewStore(&fakeKV{data: make(map[string][]byte)}, time.Minute, zap.NewNop())
	return NewEngine(store, zap.NewNop()), store
}

// testFlow collects a name and an optional age, then commits.
func testFlow(commit CommitFunc) *Flow {
	return &Flow{
		Name:  "test",
		First: "name",
		Steps: map[string]Step{
			"name": {
				Field:    "name",
				Prompt:   "What is your name?",
				Validate: validate.Name,
				Next:     "age",
			},
			"age": {
				Field:    "age",
				Prompt:   "How old are you?",
				Validate: validate.Age,
				Optional: true,
				Next:     StateConfirm,
			},
		},
		Summary: func(acc map[string]string) string {
			return fmt.Sprintf("name=%s age=%s", acc["name"], acc["age"])
		},
		Commit: commit,
	}
}

func TestEngineHappyPath(t *testing.T) {
	e, store := newEngine(t)
	ctx := context.Background()

	committed := 0
	f := testFlow(func(_ context.Context, s *session.Session) (string, error) {
		committed++
		assert.Equal(t, "Abebe", s.Get("name"))
		assert.Equal(t, "28", s.Get("age"))
		return "Saved!", nil
	})

	s, _ := store.Get(ctx, 1)
	p, err := e.Start(ctx, s, f)
	require.NoError(t, err)
	assert.Equal(t, "What is your name?", p.Text)

	p, err = e.Input(ctx, s, f, "Abebe")
	require.NoError(t, err)
	assert.Equal(t, "How old are you?", p.Text)
	assert.True(t, p.Optional)

	p, err = e.Input(ctx, s, f, "28")
	require.NoError(t, err)
	assert.True(t, p.Confirm)
	assert.Equal(t, "name=Abebe age=28", p.Text)

	p, err = e.Input(ctx, s, f, ConfirmLabel)
	require.NoError(t, err)
	assert.True(t, p.Done)
	assert.Equal(t, "Saved!", p.Text)
	assert.Equal(t, 1, committed)

	// session is back to idle
	loaded, _ := store.Get(ctx, 1)
	assert.False(t, loaded.InFlow())
}

func TestEngineValidationRepromptsWithoutMutatingAccumulator(t *testing.T) {
	e, store := newEngine(t)
	ctx := context.Background()
	f := testFlow(nil)

	s, _ := store.Get(ctx, 1)
	_, err := e.Start(ctx, s, f)
	require.NoError(t, err)

	p, err := e.Input(ctx, s, f, "Abebe 2")
	require.NoError(t, err)
	assert.False(t, p.Done)
	assert.NotEmpty(t, p.Text)

	loaded, _ := store.Get(ctx, 1)
	assert.Equal(t, "name", loaded.State, "failed input must stay on the same step")
	assert.Empty(t, loaded.Get("name"))
}

func TestEngineAgeErrorMessagesAreDistinct(t *testing.T) {
	e, store := newEngine(t)
	ctx := context.Background()
	f := testFlow(nil)

	s, _ := store.Get(ctx, 1)
	_, _ = e.Start(ctx, s, f)
	_, _ = e.Input(ctx, s, f, "Abebe")

	pFormat, err := e.Input(ctx, s, f, "abc")
	require.NoError(t, err)

	pRange, err := e.Input(ctx, s, f, "9")
	require.NoError(t, err)

	assert.NotEqual(t, pFormat.Text, pRange.Text)
}

func TestEngineSkipOptionalStep(t *testing.T) {
	e, store := newEngine(t)
	ctx := context.Background()

	f := testFlow(func(_ context.Context, s *session.Session) (string, error) {
		assert.Equal(t, "", s.Get("age"))
		return "ok", nil
	})

	s, _ := store.Get(ctx, 1)
	_, _ = e.Start(ctx, s, f)
	_, _ = e.Input(ctx, s, f, "Abebe")

	p, err := e.Input(ctx, s, f, SkipLabel)
	require.NoError(t, err)
	assert.True(t, p.Confirm)

	p, err = e.Input(ctx, s, f, ConfirmLabel)
	require.NoError(t, err)
	assert.True(t, p.Done)
}

func TestEngineCancelAnywhere(t *testing.T) {
	e, store := newEngine(t)
	ctx := context.Background()
	f := testFlow(func(_ context.Context, _ *session.Session) (string, error) {
		t.Fatal("commit must not run after cancel")
		return "", nil
	})

	for _, input := range []string{CancelCommand, CancelLabel} {
		s, _ := store.Get(ctx, 1)
		_, _ = e.Start(ctx, s, f)
		_, _ = e.Input(ctx, s, f, "Abebe")

		p, err := e.Input(ctx, s, f, input)
		require.NoError(t, err)
		assert.True(t, p.Done)

		loaded, _ := store.Get(ctx, 1)
		assert.False(t, loaded.InFlow())
		assert.Empty(t, loaded.Acc)
	}
}

func TestEngineRestartClearsAccumulator(t *testing.T) {
	e, store := newEngine(t)
	ctx := context.Background()
	f := testFlow(nil)

	s, _ := store.Get(ctx, 1)
	_, _ = e.Start(ctx, s, f)
	_, _ = e.Input(ctx, s, f, "Abebe")
	_, _ = e.Input(ctx, s, f, "28")

	p, err := e.Input(ctx, s, f, RestartLabel)
	require.NoError(t, err)
	assert.Equal(t, "What is your name?", p.Text)

	loaded, _ := store.Get(ctx, 1)
	assert.Equal(t, "name", loaded.State)
	assert.Empty(t, loaded.Acc)
}

func TestEngineDuplicateCommit(t *testing.T) {
	e, store := newEngine(t)
	ctx := context.Background()

	calls := 0
	f := testFlow(func(_ context.Context, _ *session.Session) (string, error) {
		calls++
		if calls > 1 {
			return "", Duplicate("ℹ️ You already applied for this job.")
		}
		return "Application sent.", nil
	})

	run := func() Prompt {
		s, _ := store.Get(ctx, 1)
		_, _ = e.Start(ctx, s, f)
		_, _ = e.Input(ctx, s, f, "Abebe")
		_, _ = e.Input(ctx, s, f, SkipLabel)
		p, err := e.Input(ctx, s, f, ConfirmLabel)
		require.NoError(t, err)
		return p
	}

	first := run()
	assert.Equal(t, "Application sent.", first.Text)

	second := run()
	assert.True(t, second.Done)
	assert.Equal(t, "ℹ️ You already applied for this job.", second.Text)
	assert.Equal(t, 2, calls)
}

func TestEngineStorageErrorAbortsWithGenericMessage(t *testing.T) {
	e, store := newEngine(t)
	ctx := context.Background()

	f := testFlow(func(_ context.Context, _ *session.Session) (string, error) {
		return "", Storage(errors.New("pq: connection refused"))
	})

	s, _ := store.Get(ctx, 1)
	_, _ = e.Start(ctx, s, f)
	_, _ = e.Input(ctx, s, f, "Abebe")
	_, _ = e.Input(ctx, s, f, SkipLabel)

	p, err := e.Input(ctx, s, f, ConfirmLabel)
	require.NoError(t, err)
	assert.True(t, p.Done)
	assert.NotContains(t, p.Text, "pq:", "diagnostic detail must never reach the user")

	loaded, _ := store.Get(ctx, 1)
	assert.False(t, loaded.InFlow(), "persistence errors force the terminal state")
}

func TestEngineOptionStepRejectsFreeText(t *testing.T) {
	e, store := newEngine(t)
	ctx := context.Background()

	f := &Flow{
		Name:  "options",
		First: "gender",
		Steps: map[string]Step{
			"gender": {
				Field:   "gender",
				Prompt:  "Select gender",
				Options: []string{"Male", "Female"},
				Next:    StateConfirm,
			},
		},
		Summary: func(acc map[string]string) string { return acc["gender"] },
		Commit: func(_ context.Context, _ *session.Session) (string, error) {
			return "ok", nil
		},
	}

	s, _ := store.Get(ctx, 1)
	_, _ = e.Start(ctx, s, f)

	p, err := e.Input(ctx, s, f, "something else")
	require.NoError(t, err)
	assert.Equal(t, []string{"Male", "Female"}, p.Options)

	p, err = e.Input(ctx, s, f, "Female")
	require.NoError(t, err)
	assert.True(t, p.Confirm)
}
