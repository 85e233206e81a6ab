package client

import (
	"context"
	"errors"
	"sync"
)

// ErrSignedOut is returned by note operations when the store has no session.
var ErrSignedOut = errors.New("not signed in")

// Backend is the remote API the Store drives. *API implements it.
type Backend interface {
	Register(ctx context.Context, email, password, name string) (*Session, error)
	Login(ctx context.Context, email, password string) (*Session, error)
	Logout(ctx context.Context, token string) error
	Me(ctx context.Context, token string) (User, error)
	ListActive(ctx context.Context, token string) ([]Note, error)
	ListCompleted(ctx context.Context, token string) ([]Note, error)
	CreateNote(ctx context.Context, token string, note NewNote) (Note, error)
	UpdateNote(ctx context.Context, token, id string, changes NoteChanges) (Note, error)
	CompleteNote(ctx context.Context, token, id, feedback string) (Note, error)
	DeleteNote(ctx context.Context, token, id string) error
}

// State is a point-in-time copy of the store.
type State struct {
	Session   *Session
	Active    []Note
	Completed []Note
	Loading   bool
	// Err is the message of the last failed operation, cleared when the next one starts.
	Err string
}

// Store holds the note collections of one session. Every successful mutation
// is followed by a full refetch of both collections; local state is never
// patched. Requests are not cancelled, so when two fetches race the one that
// finishes last wins. Results that arrive after the session changed are dropped.
type Store struct {
	api Backend

	mu         sync.Mutex
	session    *Session
	generation uint64
	active     []Note
	completed  []Note
	pending    int
	err        string
}

// NewStore creates a store for session, which may be nil. Call Fetch to load
// the collections of an initial session.
func NewStore(api Backend, session *Session) *Store {
	return &Store{api: api, session: session}
}

// State returns a copy of the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{
		Session:   s.session,
		Active:    append([]Note(nil), s.active...),
		Completed: append([]Note(nil), s.completed...),
		Loading:   s.pending > 0,
		Err:       s.err,
	}
}

// Session returns the current session, or nil when signed out.
func (s *Store) Session() *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

// SetSession replaces the session, clears both collections and, when the new
// session is authenticated, fetches them again.
func (s *Store) SetSession(ctx context.Context, session *Session) error {
	s.mu.Lock()
	s.session = session
	s.generation++
	s.active = nil
	s.completed = nil
	s.err = ""
	s.mu.Unlock()

	if !session.Authenticated() {
		return nil
	}
	return s.Fetch(ctx)
}

// Login signs in and switches the store to the new session.
func (s *Store) Login(ctx context.Context, email, password string) error {
	s.begin()
	session, err := s.api.Login(ctx, email, password)
	s.end(err)
	if err != nil {
		return err
	}
	return s.SetSession(ctx, session)
}

// Register creates an account and switches the store to its session.
func (s *Store) Register(ctx context.Context, email, password, name string) error {
	s.begin()
	session, err := s.api.Register(ctx, email, password, name)
	s.end(err)
	if err != nil {
		return err
	}
	return s.SetSession(ctx, session)
}

// Resume restores a session from a previously issued token.
func (s *Store) Resume(ctx context.Context, token string) error {
	s.begin()
	user, err := s.api.Me(ctx, token)
	s.end(err)
	if err != nil {
		return err
	}
	return s.SetSession(ctx, &Session{Token: token, User: user})
}

// Logout clears the session and both collections locally, then tells the
// server. The local state is cleared even if the server call fails.
func (s *Store) Logout(ctx context.Context) error {
	session := s.Session()
	_ = s.SetSession(ctx, nil)
	if !session.Authenticated() {
		return nil
	}
	return s.api.Logout(ctx, session.Token)
}

// Fetch reloads both collections. It is a no-op when signed out.
func (s *Store) Fetch(ctx context.Context) error {
	s.mu.Lock()
	session, generation := s.session, s.generation
	s.mu.Unlock()

	if !session.Authenticated() {
		return nil
	}

	s.begin()

	active, err := s.api.ListActive(ctx, session.Token)
	if err != nil {
		s.end(err)
		return err
	}
	completed, err := s.api.ListCompleted(ctx, session.Token)
	if err != nil {
		s.end(err)
		return err
	}

	s.mu.Lock()
	if s.generation == generation {
		s.active = active
		s.completed = completed
	}
	s.pending--
	s.mu.Unlock()
	return nil
}

// CreateNote adds a note and refetches.
func (s *Store) CreateNote(ctx context.Context, note NewNote) error {
	return s.mutate(ctx, func(token string) error {
		_, err := s.api.CreateNote(ctx, token, note)
		return err
	})
}

// UpdateNote edits a note and refetches.
func (s *Store) UpdateNote(ctx context.Context, id string, changes NoteChanges) error {
	return s.mutate(ctx, func(token string) error {
		_, err := s.api.UpdateNote(ctx, token, id, changes)
		return err
	})
}

// CompleteNote completes a note and refetches.
func (s *Store) CompleteNote(ctx context.Context, id, feedback string) error {
	return s.mutate(ctx, func(token string) error {
		_, err := s.api.CompleteNote(ctx, token, id, feedback)
		return err
	})
}

// DeleteNote deletes a note and refetches.
func (s *Store) DeleteNote(ctx context.Context, id string) error {
	return s.mutate(ctx, func(token string) error {
		return s.api.DeleteNote(ctx, token, id)
	})
}

func (s *Store) mutate(ctx context.Context, call func(token string) error) error {
	session := s.Session()
	if !session.Authenticated() {
		return ErrSignedOut
	}

	s.begin()
	err := call(session.Token)
	s.end(err)
	if err != nil {
		return err
	}
	return s.Fetch(ctx)
}

// begin marks an operation in flight and clears the previous error.
func (s *Store) begin() {
	s.mu.Lock()
	s.pending++
	s.err = ""
	s.mu.Unlock()
}

func (s *Store) end(err error) {
	s.mu.Lock()
	s.pending--
	if err != nil {
		s.err = err.Error()
	}
	s.mu.Unlock()
}
