package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stickynotes/stickynotes/internal/model"
)

func TestMemory_Users(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	m := NewMemory()

	user := &model.User{ID: "u1", Email: "a@example.com", Name: "A", PasswordHash: "h"}
	if err := m.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	dup := &model.User{ID: "u2", Email: "a@example.com"}
	if err := m.CreateUser(ctx, dup); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}

	got, err := m.GetUserByEmail(ctx, "a@example.com")
	if err != nil || got.ID != "u1" {
		t.Fatalf("GetUserByEmail = %+v, %v", got, err)
	}
	if _, err := m.GetUserByID(ctx, "missing"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestMemory_NoteLifecycle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	m := NewMemory()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, id := range []string{"n1", "n2", "n3"} {
		at := base.Add(time.Duration(i) * time.Minute)
		note := &model.Note{ID: id, OwnerID: "u1", Title: id, Content: "c", CreatedAt: at, UpdatedAt: at}
		if err := m.CreateNote(ctx, note); err != nil {
			t.Fatalf("CreateNote: %v", err)
		}
	}
	other := &model.Note{ID: "x1", OwnerID: "u2", Title: "x", Content: "c", CreatedAt: base, UpdatedAt: base}
	if err := m.CreateNote(ctx, other); err != nil {
		t.Fatalf("CreateNote: %v", err)
	}

	n1, _ := m.GetNoteByID(ctx, "n1")
	n1.Title = "edited"
	n1.UpdatedAt = base.Add(time.Hour)
	if err := m.UpdateNote(ctx, n1); err != nil {
		t.Fatalf("UpdateNote: %v", err)
	}

	active, _ := m.ListActiveNotes(ctx, "u1")
	if len(active) != 3 || active[0].ID != "n1" {
		t.Fatalf("active order wrong: %v", ids(active))
	}

	n2, _ := m.GetNoteByID(ctx, "n2")
	n2.Complete(base.Add(2*time.Hour), "done")
	if err := m.UpdateNote(ctx, n2); err != nil {
		t.Fatalf("UpdateNote: %v", err)
	}

	completed, _ := m.ListCompletedNotes(ctx, "u1")
	if len(completed) != 1 || completed[0].ID != "n2" {
		t.Fatalf("completed = %v", ids(completed))
	}
	active, _ = m.ListActiveNotes(ctx, "u1")
	if len(active) != 2 {
		t.Fatalf("active = %v", ids(active))
	}

	all, _ := m.ListNotes(ctx, "u1")
	if got := ids(all); len(got) != 3 || got[0] != "n3" || got[2] != "n1" {
		t.Fatalf("ListNotes order = %v", got)
	}

	if err := m.DeleteNote(ctx, "n3"); err != nil {
		t.Fatalf("DeleteNote: %v", err)
	}
	if err := m.DeleteNote(ctx, "n3"); !errors.Is(err, ErrNoteNotFound) {
		t.Fatalf("expected ErrNoteNotFound on second delete, got %v", err)
	}
	if err := m.UpdateNote(ctx, &model.Note{ID: "nope"}); !errors.Is(err, ErrNoteNotFound) {
		t.Fatalf("expected ErrNoteNotFound, got %v", err)
	}
}

func TestMemory_ReturnsCopies(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	m := NewMemory()

	note := &model.Note{ID: "n1", OwnerID: "u1", Title: "t", Content: "c"}
	_ = m.CreateNote(ctx, note)
	note.Title = "mutated"

	got, _ := m.GetNoteByID(ctx, "n1")
	if got.Title != "t" {
		t.Fatalf("stored note was aliased: %q", got.Title)
	}
}

func ids(notes []*model.Note) []string {
	out := make([]string, len(notes))
	for i, n := range notes {
		out[i] = n.ID
	}
	return out
}
