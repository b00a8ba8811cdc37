package cached

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"jobboard-bot/internal/models"
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

type fakeActorStore struct {
	actor *models.Actor
	calls int
}

func (f *fakeActorStore) GetActorByChat(_ context.Context, chatID int64, role string) (*models.Actor, error) {
	f.calls++
	if f.actor != nil && f.actor.ChatID == chatID && f.actor.Role == role {
		return f.actor, nil
	}
	return nil, nil
}

func TestActorsReadThrough(t *testing.T) {
	ctx := context.Background()
	store := &fakeActorStore{actor: &models.Actor{
		ID:        1,
		ChatID:    100,
		Role:      models.RoleApplicant,
		FirstName: "Abebe",
		LastName:  "Bekele",
	}}
	actors := NewActors(store, newFakeKV(), zap.NewNop())

	// miss → backing store → populate
	got, err := actors.Get(ctx, 100, models.RoleApplicant)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Abebe", got.FirstName)
	assert.Equal(t, 1, store.calls)

	// hit → no extra store call
	got, err = actors.Get(ctx, 100, models.RoleApplicant)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 1, store.calls)
}

func TestActorsInvalidateForcesExactlyOneReload(t *testing.T) {
	ctx := context.Background()
	store := &fakeActorStore{actor: &models.Actor{
		ChatID:    100,
		Role:      models.RoleApplicant,
		FirstName: "Abebe",
	}}
	actors := NewActors(store, newFakeKV(), zap.NewNop())

	_, err := actors.Get(ctx, 100, models.RoleApplicant)
	require.NoError(t, err)
	require.Equal(t, 1, store.calls)

	// the underlying row changes, cache is invalidated
	store.actor.FirstName = "Almaz"
	require.NoError(t, actors.Invalidate(ctx, 100, models.RoleApplicant))

	got, err := actors.Get(ctx, 100, models.RoleApplicant)
	require.NoError(t, err)
	assert.Equal(t, "Almaz", got.FirstName, "read after invalidation must reflect the write")
	assert.Equal(t, 2, store.calls, "exactly one reload from the backing store")

	_, err = actors.Get(ctx, 100, models.RoleApplicant)
	require.NoError(t, err)
	assert.Equal(t, 2, store.calls, "cache repopulated after the reload")
}

func TestActorsNotFoundIsNotCached(t *testing.T) {
	ctx := context.Background()
	store := &fakeActorStore{}
	actors := NewActors(store, newFakeKV(), zap.NewNop())

	got, err := actors.Get(ctx, 200, models.RoleEmployer)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, 1, store.calls)

	// registration happens between the two lookups
	store.actor = &models.Actor{ChatID: 200, Role: models.RoleEmployer, FirstName: "Sara"}

	got, err = actors.Get(ctx, 200, models.RoleEmployer)
	require.NoError(t, err)
	require.NotNil(t, got, "negative result must not have been cached")
	assert.Equal(t, "Sara", got.FirstName)
}

func TestActorsRolesAreCachedSeparately(t *testing.T) {
	ctx := context.Background()
	kv := newFakeKV()
	store := &fakeActorStore{actor: &models.Actor{ChatID: 100, Role: models.RoleApplicant}}
	actors := NewActors(store, kv, zap.NewNop())

	_, err := actors.Get(ctx, 100, models.RoleApplicant)
	require.NoError(t, err)

	_, ok := kv.data[redis.ActorKey(models.RoleApplicant, 100)]
	assert.True(t, ok)
	_, ok = kv.data[redis.ActorKey(models.RoleEmployer, 100)]
	assert.False(t, ok)
}
