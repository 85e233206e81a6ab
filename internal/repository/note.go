package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/stickynotes/stickynotes/internal/model"
)

// ErrNoteNotFound is returned when no note has the requested ID.
var ErrNoteNotFound = errors.New("note not found")

const noteColumns = `id, owner_id, title, content, color, is_completed, completed_at, completion_feedback, created_at, updated_at`

// CreateNote inserts a new note into the database.
func (r *Repository) CreateNote(ctx context.Context, note *model.Note) error {
	query := `
		INSERT INTO notes (` + noteColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.pool.Exec(ctx, query,
		note.ID,
		note.OwnerID,
		note.Title,
		note.Content,
		note.Color,
		note.IsCompleted,
		note.CompletedAt,
		note.CompletionFeedback,
		note.CreatedAt,
		note.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create note: %w", err)
	}

	return nil
}

// GetNoteByID retrieves a note regardless of owner. Ownership is checked by the caller.
func (r *Repository) GetNoteByID(ctx context.Context, id string) (*model.Note, error) {
	query := `SELECT ` + noteColumns + ` FROM notes WHERE id = $1`

	note, err := scanNote(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoteNotFound
		}
		return nil, fmt.Errorf("failed to get note by ID: %w", err)
	}

	return note, nil
}

// ListNotes returns every note of the owner, newest first.
func (r *Repository) ListNotes(ctx context.Context, ownerID string) ([]*model.Note, error) {
	query := `
		SELECT ` + noteColumns + `
		FROM notes
		WHERE owner_id = $1
		ORDER BY created_at DESC, id DESC
	`
	return r.queryNotes(ctx, query, ownerID)
}

// ListActiveNotes returns the owner's open notes, most recently edited first.
func (r *Repository) ListActiveNotes(ctx context.Context, ownerID string) ([]*model.Note, error) {
	query := `
		SELECT ` + noteColumns + `
		FROM notes
		WHERE owner_id = $1 AND is_completed = FALSE
		ORDER BY updated_at DESC, id DESC
	`
	return r.queryNotes(ctx, query, ownerID)
}

// ListCompletedNotes returns the owner's completed notes, most recently completed first.
func (r *Repository) ListCompletedNotes(ctx context.Context, ownerID string) ([]*model.Note, error) {
	query := `
		SELECT ` + noteColumns + `
		FROM notes
		WHERE owner_id = $1 AND is_completed = TRUE
		ORDER BY completed_at DESC, id DESC
	`
	return r.queryNotes(ctx, query, ownerID)
}

// UpdateNote persists the mutable fields of a note. Owner and creation time never change.
func (r *Repository) UpdateNote(ctx context.Context, note *model.Note) error {
	query := `
		UPDATE notes
		SET title = $2,
		    content = $3,
		    color = $4,
		    is_completed = $5,
		    completed_at = $6,
		    completion_feedback = $7,
		    updated_at = $8
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		note.ID,
		note.Title,
		note.Content,
		note.Color,
		note.IsCompleted,
		note.CompletedAt,
		note.CompletionFeedback,
		note.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrNoteNotFound
	}

	return nil
}

// DeleteNote permanently removes a note.
func (r *Repository) DeleteNote(ctx context.Context, id string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM notes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrNoteNotFound
	}

	return nil
}

func (r *Repository) queryNotes(ctx context.Context, query string, args ...any) ([]*model.Note, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	notes := make([]*model.Note, 0)
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, note)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate notes: %w", err)
	}

	return notes, nil
}

func scanNote(row pgx.Row) (*model.Note, error) {
	var note model.Note
	if err := row.Scan(
		&note.ID,
		&note.OwnerID,
		&note.Title,
		&note.Content,
		&note.Color,
		&note.IsCompleted,
		&note.CompletedAt,
		&note.CompletionFeedback,
		&note.CreatedAt,
		&note.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &note, nil
}
