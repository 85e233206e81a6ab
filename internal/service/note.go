package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/stickynotes/stickynotes/internal/metrics"
	"github.com/stickynotes/stickynotes/internal/model"
	"github.com/stickynotes/stickynotes/internal/repository"
)

// colorRegex accepts #RRGGBB hex colors.
var colorRegex = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Access is the outcome of an ownership check.
type Access int

const (
	AccessGranted Access = iota
	AccessNotFound
	AccessForbidden
)

// Err maps the access outcome onto a service error. Granted maps to nil.
func (a Access) Err() error {
	switch a {
	case AccessNotFound:
		return ErrNotFound
	case AccessForbidden:
		return ErrForbidden
	default:
		return nil
	}
}

// CheckAccess decides whether userID may mutate note. A nil note is not found.
func CheckAccess(note *model.Note, userID string) Access {
	if note == nil {
		return AccessNotFound
	}
	if !note.OwnedBy(userID) {
		return AccessForbidden
	}
	return AccessGranted
}

// NoteService handles note business logic. Every call is scoped to an owner.
type NoteService struct {
	notes   NoteStore
	metrics metrics.Recorder
	now     func() time.Time
}

// NewNoteService creates a new NoteService.
func NewNoteService(notes NoteStore, recorder metrics.Recorder) *NoteService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &NoteService{
		notes:   notes,
		metrics: recorder,
		now:     time.Now,
	}
}

// CreateNoteInput defines input for creating a note.
type CreateNoteInput struct {
	Title   string
	Content string
	Color   string
}

// ListAll returns every note of the owner, newest first.
func (s *NoteService) ListAll(ctx context.Context, ownerID string) ([]*model.Note, error) {
	if ownerID == "" {
		return nil, ErrUnauthenticated
	}
	notes, err := s.notes.ListNotes(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	return notes, nil
}

// ListActive returns the owner's open notes, most recently edited first.
func (s *NoteService) ListActive(ctx context.Context, ownerID string) ([]*model.Note, error) {
	if ownerID == "" {
		return nil, ErrUnauthenticated
	}
	notes, err := s.notes.ListActiveNotes(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active notes: %w", err)
	}
	return notes, nil
}

// ListCompleted returns the owner's completed notes, most recently completed first.
func (s *NoteService) ListCompleted(ctx context.Context, ownerID string) ([]*model.Note, error) {
	if ownerID == "" {
		return nil, ErrUnauthenticated
	}
	notes, err := s.notes.ListCompletedNotes(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list completed notes: %w", err)
	}
	return notes, nil
}

// Create stores a new active note for the owner.
func (s *NoteService) Create(ctx context.Context, ownerID string, input CreateNoteInput) (*model.Note, error) {
	if ownerID == "" {
		return nil, ErrUnauthenticated
	}

	title := strings.TrimSpace(input.Title)
	content := strings.TrimSpace(input.Content)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if content == "" {
		return nil, fmt.Errorf("%w: content is required", ErrValidation)
	}

	color := strings.TrimSpace(input.Color)
	if color == "" {
		color = model.DefaultNoteColor
	}
	if !colorRegex.MatchString(color) {
		return nil, fmt.Errorf("%w: color must be a #RRGGBB value", ErrValidation)
	}

	now := s.now().UTC()
	note := &model.Note{
		ID:        ulid.Make().String(),
		OwnerID:   ownerID,
		Title:     title,
		Content:   content,
		Color:     color,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.notes.CreateNote(ctx, note); err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	s.metrics.IncNoteCreated()
	return note, nil
}

// Update applies the supplied non-empty fields and bumps updated_at.
func (s *NoteService) Update(ctx context.Context, ownerID, id string, patch model.NotePatch) (*model.Note, error) {
	note, err := s.authorize(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	patch = trimPatch(patch)
	if patch.Color != nil && *patch.Color != "" && !colorRegex.MatchString(*patch.Color) {
		return nil, fmt.Errorf("%w: color must be a #RRGGBB value", ErrValidation)
	}

	patch.Apply(note)
	note.UpdatedAt = s.now().UTC()

	if err := s.save(ctx, note); err != nil {
		return nil, err
	}

	s.metrics.IncNoteUpdated()
	return note, nil
}

// Complete marks the note completed with optional feedback. Completion cannot be undone.
func (s *NoteService) Complete(ctx context.Context, ownerID, id, feedback string) (*model.Note, error) {
	note, err := s.authorize(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	note.Complete(s.now().UTC(), feedback)

	if err := s.save(ctx, note); err != nil {
		return nil, err
	}

	s.metrics.IncNoteCompleted()
	return note, nil
}

// Delete permanently removes the note.
func (s *NoteService) Delete(ctx context.Context, ownerID, id string) error {
	if _, err := s.authorize(ctx, ownerID, id); err != nil {
		return err
	}

	if err := s.notes.DeleteNote(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNoteNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete note: %w", err)
	}

	s.metrics.IncNoteDeleted()
	return nil
}

// authorize loads the note and runs the ownership check shared by every mutation.
func (s *NoteService) authorize(ctx context.Context, ownerID, id string) (*model.Note, error) {
	if ownerID == "" {
		return nil, ErrUnauthenticated
	}

	note, err := s.notes.GetNoteByID(ctx, id)
	if err != nil && !errors.Is(err, repository.ErrNoteNotFound) {
		return nil, fmt.Errorf("failed to get note: %w", err)
	}

	if err := CheckAccess(note, ownerID).Err(); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *NoteService) save(ctx context.Context, note *model.Note) error {
	if err := s.notes.UpdateNote(ctx, note); err != nil {
		if errors.Is(err, repository.ErrNoteNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to update note: %w", err)
	}
	return nil
}

func trimPatch(p model.NotePatch) model.NotePatch {
	trim := func(v *string) *string {
		if v == nil {
			return nil
		}
		t := strings.TrimSpace(*v)
		return &t
	}
	return model.NotePatch{Title: trim(p.Title), Content: trim(p.Content), Color: trim(p.Color)}
}
