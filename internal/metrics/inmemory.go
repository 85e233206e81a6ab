package metrics

import (
	"sync/atomic"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	UsersRegistered          uint64
	LoginsSucceeded          uint64
	LoginsFailed             uint64
	AuthFailuresMissingToken uint64
	AuthFailuresInvalidToken uint64
	RateLimited              uint64
	IdentityCacheHits        uint64
	IdentityCacheMisses      uint64
	NotesCreated             uint64
	NotesUpdated             uint64
	NotesCompleted           uint64
	NotesDeleted             uint64
}

// InMemoryRecorder keeps counters in process memory.
type InMemoryRecorder struct {
	usersRegistered     atomic.Uint64
	loginsSucceeded     atomic.Uint64
	loginsFailed        atomic.Uint64
	authMissingToken    atomic.Uint64
	authInvalidToken    atomic.Uint64
	rateLimited         atomic.Uint64
	identityCacheHits   atomic.Uint64
	identityCacheMisses atomic.Uint64
	notesCreated        atomic.Uint64
	notesUpdated        atomic.Uint64
	notesCompleted      atomic.Uint64
	notesDeleted        atomic.Uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		UsersRegistered:          m.usersRegistered.Load(),
		LoginsSucceeded:          m.loginsSucceeded.Load(),
		LoginsFailed:             m.loginsFailed.Load(),
		AuthFailuresMissingToken: m.authMissingToken.Load(),
		AuthFailuresInvalidToken: m.authInvalidToken.Load(),
		RateLimited:              m.rateLimited.Load(),
		IdentityCacheHits:        m.identityCacheHits.Load(),
		IdentityCacheMisses:      m.identityCacheMisses.Load(),
		NotesCreated:             m.notesCreated.Load(),
		NotesUpdated:             m.notesUpdated.Load(),
		NotesCompleted:           m.notesCompleted.Load(),
		NotesDeleted:             m.notesDeleted.Load(),
	}
}

// IncUserRegistered increments the registration counter.
func (m *InMemoryRecorder) IncUserRegistered() {
	m.usersRegistered.Add(1)
}

// IncLogin increments the login counter for the given status.
func (m *InMemoryRecorder) IncLogin(status string) {
	if status == "success" {
		m.loginsSucceeded.Add(1)
		return
	}
	m.loginsFailed.Add(1)
}

// IncAuthFailure increments the rejected-request counter for the given reason.
func (m *InMemoryRecorder) IncAuthFailure(reason string) {
	if reason == "missing_token" {
		m.authMissingToken.Add(1)
		return
	}
	m.authInvalidToken.Add(1)
}

// IncRateLimited increments the throttled-request counter.
func (m *InMemoryRecorder) IncRateLimited() {
	m.rateLimited.Add(1)
}

// IncIdentityCacheHit increments cache hit counter.
func (m *InMemoryRecorder) IncIdentityCacheHit() {
	m.identityCacheHits.Add(1)
}

// IncIdentityCacheMiss increments cache miss counter.
func (m *InMemoryRecorder) IncIdentityCacheMiss() {
	m.identityCacheMisses.Add(1)
}

// IncNoteCreated increments note created counter.
func (m *InMemoryRecorder) IncNoteCreated() {
	m.notesCreated.Add(1)
}

// IncNoteUpdated increments note updated counter.
func (m *InMemoryRecorder) IncNoteUpdated() {
	m.notesUpdated.Add(1)
}

// IncNoteCompleted increments note completed counter.
func (m *InMemoryRecorder) IncNoteCompleted() {
	m.notesCompleted.Add(1)
}

// IncNoteDeleted increments note deleted counter.
func (m *InMemoryRecorder) IncNoteDeleted() {
	m.notesDeleted.Add(1)
}
