package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qorax-ai/sales-agent-platform/internal/model"
	"github.com/qorax-ai/sales-agent-platform/pkg/logger"
)

func newTestStore(t *testing.T, ttl time.Duration) *Store {
	t.Helper()
	log, err := logger.New("error")
	require.NoError(t, err)
	s := NewStore(ttl, log)
	t.Cleanup(s.Close)
	return s
}

func TestStorePutGetDelete(t *testing.T) {
	s := newTestStore(t, time.Hour)
	ctx := context.Background()

	sess := &Session{
		Conversation: model.NewConversation("s1", "prompt"),
		Profile:      model.NewProfile(),
	}
	require.NoError(t, s.Put(ctx, "s1", sess))

	got, err := s.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Same(t, sess, got)
	assert.Equal(t, 1, s.Count(ctx))

	require.NoError(t, s.Delete(ctx, "s1"))
	_, err = s.Get(ctx, "s1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreGetMissing(t *testing.T) {
	s := newTestStore(t, time.Hour)
	_, err := s.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreEvictsIdleSessions(t *testing.T) {
	s := newTestStore(t, 10*time.Millisecond)
	ctx := context.Background()

	sess := &Session{Conversation: model.NewConversation("s1", "prompt")}
	require.NoError(t, s.Put(ctx, "s1", sess))

	// force the idle timestamp into the past and run eviction directly
	s.mu.Lock()
	s.sessions["s1"].LastActivity = time.Now().Add(-time.Minute)
	s.mu.Unlock()
	s.evictExpired()

	assert.Equal(t, 0, s.Count(ctx))
}

func TestStoreGetRefreshesActivity(t *testing.T) {
	s := newTestStore(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "s1", &Session{}))
	s.mu.Lock()
	s.sessions["s1"].LastActivity = time.Now().Add(-30 * time.Minute)
	s.mu.Unlock()

	_, err := s.Get(ctx, "s1")
	require.NoError(t, err)

	s.mu.RLock()
	last := s.sessions["s1"].LastActivity
	s.mu.RUnlock()
	assert.WithinDuration(t, time.Now(), last, time.Second)
}
