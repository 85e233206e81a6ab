// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"

	"github.com/stickynotes/stickynotes/internal/model"
)

// Service errors.
var (
	ErrValidation         = errors.New("validation failed")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAlreadyExists      = errors.New("user already exists")
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("not authorized")
)

// UserStore persists user accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
}

// NoteStore persists notes. Lookups by ID are not owner-scoped.
type NoteStore interface {
	CreateNote(ctx context.Context, note *model.Note) error
	GetNoteByID(ctx context.Context, id string) (*model.Note, error)
	ListNotes(ctx context.Context, ownerID string) ([]*model.Note, error)
	ListActiveNotes(ctx context.Context, ownerID string) ([]*model.Note, error)
	ListCompletedNotes(ctx context.Context, ownerID string) ([]*model.Note, error)
	UpdateNote(ctx context.Context, note *model.Note) error
	DeleteNote(ctx context.Context, id string) error
}

// UserCache is an optional read-through cache for user profiles.
// GetUser returns nil, nil on a miss.
type UserCache interface {
	GetUser(ctx context.Context, id string) (*model.User, error)
	SetUser(ctx context.Context, user *model.User) error
}
