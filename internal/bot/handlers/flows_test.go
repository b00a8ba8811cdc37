package handlers

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"jobboard-bot/internal/flow"
	"jobboard-bot/internal/models"
	"jobboard-bot/internal/session"
	"jobboard-bot/internal/storage/redis"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeKV struct {
	data map[string][]byte
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: make(map[string][]byte)}
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

func newTestEngine() *flow.Engine {
	return flow.NewEngine(session.NewStore(newFakeKV(), time.Hour, zap.NewNop()), zap.NewNop())
}

// walk feeds inputs in order, requiring every step to be accepted.
func walk(t *testing.T, e *flow.Engine, sess *session.Session, f *flow.Flow, inputs ...string) flow.Prompt {
	t.Helper()
	ctx := context.Background()

	var (
		prompt flow.Prompt
		err    error
	)
	for _, input := range inputs {
		before := sess.State
		prompt, err = e.Input(ctx, sess, f, input)
		require.NoError(t, err)
		require.NotEqual(t, before, sess.State, "input %q was not accepted at %q", input, before)
	}
	return prompt
}

func TestRegistrationFlowHappyPath(t *testing.T) {
	e := newTestEngine()
	sess := &session.Session{ChatID: 100, Role: models.RoleApplicant}

	var committed map[string]string
	f := registrationFlow(&Context{}, models.RoleApplicant)
	f.Commit = func(_ context.Context, s *session.Session) (string, error) {
		committed = s.Acc
		return "🎉 Registration complete! Welcome aboard.", nil
	}

	prompt, err := e.Start(context.Background(), sess, f)
	require.NoError(t, err)
	assert.Contains(t, prompt.Text, "first name")

	prompt = walk(t, e, sess, f,
		"Abebe", "Bekele",
		"abebe@example.com", "0911223344",
		flow.SkipLabel, // gender
		"28", "Ethiopia", "Addis Ababa",
	)
	require.True(t, prompt.Confirm)
	assert.Contains(t, prompt.Text, "Abebe")
	assert.Contains(t, prompt.Text, "0911223344")

	prompt, err = e.Input(context.Background(), sess, f, flow.ConfirmLabel)
	require.NoError(t, err)
	assert.True(t, prompt.Done)
	assert.Contains(t, prompt.Text, "Registration complete")

	require.NotNil(t, committed)
	assert.Equal(t, "Abebe", committed["first_name"])
	assert.Equal(t, "", committed["gender"], "skipped step stores an empty value")
	assert.False(t, sess.InFlow())
}

func TestRegistrationFlowRejectsBadEmail(t *testing.T) {
	e := newTestEngine()
	sess := &session.Session{ChatID: 100, Role: models.RoleApplicant}
	f := registrationFlow(&Context{}, models.RoleApplicant)

	_, err := e.Start(context.Background(), sess, f)
	require.NoError(t, err)
	walk(t, e, sess, f, "Abebe", "Bekele")

	prompt, err := e.Input(context.Background(), sess, f, "a@b")
	require.NoError(t, err)
	assert.Equal(t, "email", sess.State, "rejected input keeps the state")
	assert.Contains(t, prompt.Text, "email")
	assert.Empty(t, sess.Get("email"))
}

func TestJobPostStepsRemoteSkipsCity(t *testing.T) {
	e := newTestEngine()
	sess := &session.Session{ChatID: 200, Role: models.RoleEmployer}

	f := &flow.Flow{
		Name:    flowJobPost,
		First:   "company",
		Steps:   jobPostSteps([]string{"Acme"}),
		Summary: func(acc map[string]string) string { return "summary" },
		Commit: func(_ context.Context, s *session.Session) (string, error) {
			return "submitted", nil
		},
	}

	_, err := e.Start(context.Background(), sess, f)
	require.NoError(t, err)

	walk(t, e, sess, f, "Acme", "Backend Engineer", "IT and Software", "Remote")
	assert.Equal(t, "employment_type", sess.State, "remote jobs skip the city step")
	assert.Empty(t, sess.Get("city"))

	walk(t, e, sess, f, "Full-time", "Private", "Bachelor's degree", "3-5 years", "Any", "2")
	assert.Equal(t, "salary_type", sess.State)

	walk(t, e, sess, f, "Negotiable")
	assert.Equal(t, "deadline", sess.State, "negotiable salary skips amount and currency")
	assert.Empty(t, sess.Get("salary_amount"))

	prompt := walk(t, e, sess, f, "2030-01-31", "We build things.")
	assert.True(t, prompt.Confirm)
}

func TestJobPostStepsOnSiteFixedSalary(t *testing.T) {
	e := newTestEngine()
	sess := &session.Session{ChatID: 200, Role: models.RoleEmployer}

	f := &flow.Flow{
		Name:    flowJobPost,
		First:   "company",
		Steps:   jobPostSteps([]string{"Acme"}),
		Summary: func(acc map[string]string) string { return "summary" },
		Commit: func(_ context.Context, s *session.Session) (string, error) {
			return "submitted", nil
		},
	}

	_, err := e.Start(context.Background(), sess, f)
	require.NoError(t, err)

	walk(t, e, sess, f, "Acme", "Accountant", "Accounting and Finance", "On-site")
	assert.Equal(t, "city", sess.State)

	walk(t, e, sess, f, "Addis Ababa", "Full-time", "Private", "Diploma", "1-2 years", "Female", "1", "Fixed")
	assert.Equal(t, "salary_amount", sess.State)

	walk(t, e, sess, f, "15000")
	assert.Equal(t, "salary_currency", sess.State)

	prompt := walk(t, e, sess, f, "ETB", "2030-06-30", "Handle the books.")
	assert.True(t, prompt.Confirm)
	assert.Equal(t, "Addis Ababa", sess.Get("city"))
	assert.Equal(t, "15000", sess.Get("salary_amount"))
}

func TestApplyFlowFileStepTakesUploadID(t *testing.T) {
	e := newTestEngine()
	sess := &session.Session{ChatID: 300, Role: models.RoleApplicant, JobID: 7}

	f := applyFlow(&Context{})
	f.Commit = func(_ context.Context, s *session.Session) (string, error) {
		return "sent", nil
	}

	_, err := e.Start(context.Background(), sess, f)
	require.NoError(t, err)

	walk(t, e, sess, f, "I am a great fit.")
	assert.Equal(t, "cv_ref", sess.State)

	// an upload arrives as its Telegram file ID
	walk(t, e, sess, f, "BQACAgIAAxkBAAIB")
	assert.Equal(t, "portfolio", sess.State)
	assert.Equal(t, "BQACAgIAAxkBAAIB", sess.Get("cv_ref"))

	prompt := walk(t, e, sess, f, flow.SkipLabel)
	assert.True(t, prompt.Confirm)
}

func TestApplyFlowDuplicateCommitEndsWithNotice(t *testing.T) {
	e := newTestEngine()
	sess := &session.Session{ChatID: 300, Role: models.RoleApplicant, JobID: 7}

	f := applyFlow(&Context{})
	f.Commit = func(_ context.Context, s *session.Session) (string, error) {
		return "", flow.Duplicate(msgAlreadyApplied)
	}

	_, err := e.Start(context.Background(), sess, f)
	require.NoError(t, err)

	walk(t, e, sess, f, flow.SkipLabel, flow.SkipLabel, flow.SkipLabel)

	prompt, err := e.Input(context.Background(), sess, f, flow.ConfirmLabel)
	require.NoError(t, err)
	assert.True(t, prompt.Done)
	assert.Equal(t, msgAlreadyApplied, prompt.Text)
	assert.False(t, sess.InFlow())
}

func TestEditFlowSingleStep(t *testing.T) {
	e := newTestEngine()
	sess := &session.Session{ChatID: 400, Role: models.RoleApplicant}

	f := editFlow(&Context{}, "email")
	require.NotNil(t, f)

	var committed string
	f.Commit = func(_ context.Context, s *session.Session) (string, error) {
		committed = s.Get("value")
		return "✅ Email updated.", nil
	}

	_, err := e.Start(context.Background(), sess, f)
	require.NoError(t, err)

	prompt := walk(t, e, sess, f, "new@example.com")
	require.True(t, prompt.Confirm)

	prompt, err = e.Input(context.Background(), sess, f, flow.ConfirmLabel)
	require.NoError(t, err)
	assert.True(t, prompt.Done)
	assert.Equal(t, "new@example.com", committed)
}

func TestEditFlowUnknownColumn(t *testing.T) {
	assert.Nil(t, editFlow(&Context{}, "role"), "role is not an editable column")
	assert.Nil(t, fieldByColumn("chat_id"))
}

// A value outside the canonical option list must not reach the database,
// even if it somehow lands in the accumulator.
func TestEditFlowRejectsTamperedOptionValue(t *testing.T) {
	f := editFlow(&Context{}, "gender")
	require.NotNil(t, f)

	sess := &session.Session{ChatID: 1, Role: models.RoleApplicant}
	sess.Set("value", "Attack helicopter")

	_, err := f.Commit(context.Background(), sess)
	require.Error(t, err)
}

func TestResolveFlowNames(t *testing.T) {
	ctx := &Context{}

	tests := []struct {
		name string
		want string
	}{
		{flowRegisterApplicant, flowRegisterApplicant},
		{flowRegisterEmployer, flowRegisterEmployer},
		{flowCompanyNew, flowCompanyNew},
		{flowApply, flowApply},
		{"edit_email", "edit_email"},
	}

	for _, tt := range tests {
		sess := &session.Session{ChatID: 1, Flow: tt.name}
		f := resolveFlow(ctx, context.Background(), sess)
		require.NotNil(t, f, "flow %q must resolve", tt.name)
		assert.Equal(t, tt.want, f.Name)
	}

	sess := &session.Session{ChatID: 1, Flow: "bogus"}
	assert.Nil(t, resolveFlow(ctx, context.Background(), sess))
}
