package wizard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_StartAndUpdate(t *testing.T) {
	store := NewStore(time.Minute)
	key := Key("discord", "42")

	session := store.Start(key)
	require.NotEmpty(t, session.ID)
	assert.False(t, session.Complete())

	updated, err := store.Update(key, session.ID, func(s *Session) { s.WorkFrom = "office" })
	require.NoError(t, err)
	assert.Equal(t, "office", updated.WorkFrom)

	updated, err = store.Update(key, session.ID, func(s *Session) { s.Mood = "focused" })
	require.NoError(t, err)
	assert.True(t, updated.Complete())

	got, err := store.Get(key, "")
	require.NoError(t, err)
	assert.Equal(t, updated, got)
}

func TestStore_RestartInvalidatesOldSession(t *testing.T) {
	store := NewStore(time.Minute)
	key := Key("slack", "U1")

	first := store.Start(key)
	second := store.Start(key)
	assert.NotEqual(t, first.ID, second.ID)

	_, err := store.Get(key, first.ID)
	assert.ErrorIs(t, err, ErrSessionMismatch)

	_, err = store.Get(key, second.ID)
	assert.NoError(t, err)
}

func TestStore_Expiry(t *testing.T) {
	store := NewStore(20 * time.Millisecond)
	key := Key("discord", "7")
	store.Start(key)

	time.Sleep(40 * time.Millisecond)

	_, err := store.Get(key, "")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Zero(t, store.Len())
}

func TestStore_Delete(t *testing.T) {
	store := NewStore(time.Minute)
	key := Key("discord", "9")
	store.Start(key)
	store.Delete(key)

	_, err := store.Get(key, "")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
