package service

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/stickynotes/stickynotes/internal/auth"
	"github.com/stickynotes/stickynotes/internal/metrics"
	"github.com/stickynotes/stickynotes/internal/repository"
)

// fakeClock hands out strictly increasing timestamps.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Second)
	return c.t
}

func fastHasher() *auth.Argon2Hasher {
	return &auth.Argon2Hasher{Time: 1, Memory: 8 * 1024, Threads: 1}
}

func newTestAuthService(t *testing.T, store UserStore, cache UserCache) (*AuthService, *metrics.InMemoryRecorder) {
	t.Helper()
	tokens, err := auth.NewTokenManager("test-secret", time.Hour)
	require.NoError(t, err)

	rec := metrics.NewInMemory()
	if store == nil {
		store = repository.NewMemory()
	}
	return NewAuthService(store, fastHasher(), tokens, cache, rec), rec
}

func newTestNoteService(t *testing.T) (*NoteService, *metrics.InMemoryRecorder) {
	t.Helper()
	rec := metrics.NewInMemory()
	svc := NewNoteService(repository.NewMemory(), rec)
	svc.now = newFakeClock().Now
	return svc, rec
}
