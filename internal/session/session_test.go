package session

import (
	"context"
	"encoding/json"
	"testing"
	"time"

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

func TestCursorClamping(t *testing.T) {
	c := &Cursor{Total: 3}

	c.Prev()
	assert.Equal(t, 0, c.Index, "prev at index 0 must not underflow")

	c.Next()
	c.Next()
	assert.Equal(t, 2, c.Index)

	c.Next()
	assert.Equal(t, 2, c.Index, "next at last element must not overflow")
}

func TestCursorSyncAfterShrink(t *testing.T) {
	c := &Cursor{Index: 4, Total: 5}

	// backing list shrank between renders
	c.Sync(2)
	assert.Equal(t, 1, c.Index)
	assert.Equal(t, 2, c.Total)

	c.Sync(0)
	assert.Equal(t, 0, c.Index)
}

func TestCursorEmptyList(t *testing.T) {
	c := &Cursor{}
	c.Next()
	c.Prev()
	assert.Equal(t, 0, c.Index)
}

func TestCursorsArePerListKind(t *testing.T) {
	s := &Session{ChatID: 1}
	s.Cursor(ListJobs).Sync(10)
	s.Cursor(ListJobs).Next()

	assert.Equal(t, 1, s.Cursor(ListJobs).Index)
	assert.Equal(t, 0, s.Cursor(ListSavedJobs).Index)
}

func TestStoreRoundTrip(t *testing.T) {
	st := NewStore(newFakeKV(), time.Minute, zap.NewNop())
	ctx := context.Background()

	s, err := st.Get(ctx, 42)
	require.NoError(t, err)
	assert.False(t, s.InFlow())

	s.Flow = "registration"
	s.State = "email"
	s.Set("first_name", "Abebe")
	s.Cursor(ListJobs).Sync(7)
	require.NoError(t, st.Save(ctx, s))

	loaded, err := st.Get(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "registration", loaded.Flow)
	assert.Equal(t, "email", loaded.State)
	assert.Equal(t, "Abebe", loaded.Get("first_name"))
	assert.Equal(t, 7, loaded.Cursor(ListJobs).Total)

	// sessions are keyed per chat
	other, err := st.Get(ctx, 43)
	require.NoError(t, err)
	assert.False(t, other.InFlow())
	assert.Equal(t, 0, other.Cursor(ListJobs).Total)

	require.NoError(t, st.Clear(ctx, 42))
	cleared, err := st.Get(ctx, 42)
	require.NoError(t, err)
	assert.False(t, cleared.InFlow())
}
