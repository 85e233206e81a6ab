package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/stickynotes/stickynotes/internal/model"
)

// Memory is an in-process store with the same semantics as Repository, for tests.
type Memory struct {
	mu      sync.RWMutex
	users   map[string]model.User
	byEmail map[string]string
	notes   map[string]model.Note
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		users:   make(map[string]model.User),
		byEmail: make(map[string]string),
		notes:   make(map[string]model.Note),
	}
}

// Ping always succeeds.
func (m *Memory) Ping(context.Context) error { return nil }

// CreateUser stores a user, rejecting duplicate emails.
func (m *Memory) CreateUser(_ context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byEmail[user.Email]; ok {
		return ErrEmailExists
	}
	m.users[user.ID] = *user
	m.byEmail[user.Email] = user.ID
	return nil
}

// GetUserByID retrieves a user by ID.
func (m *Memory) GetUserByID(_ context.Context, id string) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by email.
func (m *Memory) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.byEmail[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	user := m.users[id]
	return &user, nil
}

// CreateNote stores a copy of the note.
func (m *Memory) CreateNote(_ context.Context, note *model.Note) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.notes[note.ID] = cloneNote(note)
	return nil
}

// GetNoteByID retrieves a note regardless of owner.
func (m *Memory) GetNoteByID(_ context.Context, id string) (*model.Note, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	note, ok := m.notes[id]
	if !ok {
		return nil, ErrNoteNotFound
	}
	out := cloneNote(&note)
	return &out, nil
}

// ListNotes returns every note of the owner, newest first.
func (m *Memory) ListNotes(_ context.Context, ownerID string) ([]*model.Note, error) {
	notes := m.filter(func(n *model.Note) bool { return n.OwnerID == ownerID })
	sortNotes(notes, func(n *model.Note) time.Time { return n.CreatedAt })
	return notes, nil
}

// ListActiveNotes returns the owner's open notes, most recently edited first.
func (m *Memory) ListActiveNotes(_ context.Context, ownerID string) ([]*model.Note, error) {
	notes := m.filter(func(n *model.Note) bool { return n.OwnerID == ownerID && !n.IsCompleted })
	sortNotes(notes, func(n *model.Note) time.Time { return n.UpdatedAt })
	return notes, nil
}

// ListCompletedNotes returns the owner's completed notes, most recently completed first.
func (m *Memory) ListCompletedNotes(_ context.Context, ownerID string) ([]*model.Note, error) {
	notes := m.filter(func(n *model.Note) bool { return n.OwnerID == ownerID && n.IsCompleted })
	sortNotes(notes, func(n *model.Note) time.Time {
		if n.CompletedAt == nil {
			return time.Time{}
		}
		return *n.CompletedAt
	})
	return notes, nil
}

// UpdateNote replaces the mutable fields of a stored note.
func (m *Memory) UpdateNote(_ context.Context, note *model.Note) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.notes[note.ID]
	if !ok {
		return ErrNoteNotFound
	}
	updated := cloneNote(note)
	updated.OwnerID = stored.OwnerID
	updated.CreatedAt = stored.CreatedAt
	m.notes[note.ID] = updated
	return nil
}

// DeleteNote removes a note.
func (m *Memory) DeleteNote(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.notes[id]; !ok {
		return ErrNoteNotFound
	}
	delete(m.notes, id)
	return nil
}

func (m *Memory) filter(keep func(*model.Note) bool) []*model.Note {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*model.Note, 0)
	for _, n := range m.notes {
		if keep(&n) {
			c := cloneNote(&n)
			out = append(out, &c)
		}
	}
	return out
}

func sortNotes(notes []*model.Note, key func(*model.Note) time.Time) {
	sort.Slice(notes, func(i, j int) bool {
		ki, kj := key(notes[i]), key(notes[j])
		if ki.Equal(kj) {
			return notes[i].ID > notes[j].ID
		}
		return ki.After(kj)
	})
}

func cloneNote(n *model.Note) model.Note {
	c := *n
	if n.CompletedAt != nil {
		at := *n.CompletedAt
		c.CompletedAt = &at
	}
	return c
}
