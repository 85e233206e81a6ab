package handler

import (
	"net/http"
	"testing"

	"github.com/stickynotes/stickynotes/internal/handler/dto"
	"github.com/stickynotes/stickynotes/internal/model"
)

func TestNoteHandler_CreateDefaultsColor(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)
	user := api.register(t, "u1@example.com", "U1")

	note := api.createNote(t, user.Token, "Buy milk", "2%")

	if note.Color != model.DefaultNoteColor {
		t.Errorf("expected default color, got %s", note.Color)
	}
	if note.IsCompleted || note.CompletedAt != nil {
		t.Error("expected new note to be active")
	}
	if note.Title != "Buy milk" || note.Content != "2%" {
		t.Errorf("unexpected note: %+v", note)
	}
}

func TestNoteHandler_CreateValidation(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)
	user := api.register(t, "u1@example.com", "U1")

	tests := []struct {
		name string
		body any
		code string
	}{
		{"invalid json", "{not json", "INVALID_JSON"},
		{"blank title", dto.CreateNoteRequest{Title: "   ", Content: "x"}, "VALIDATION_ERROR"},
		{"missing content", dto.CreateNoteRequest{Title: "x"}, "VALIDATION_ERROR"},
		{"bad color", dto.CreateNoteRequest{Title: "x", Content: "y", Color: "red"}, "VALIDATION_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := api.do(t, http.MethodPost, "/api/notes", user.Token, tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d", rec.Code)
			}
			if resp := decode[dto.ErrorResponse](t, rec); resp.Code != tt.code {
				t.Errorf("expected %s, got %s", tt.code, resp.Code)
			}
		})
	}
}

func TestNoteHandler_RequiresAuthentication(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)

	for _, path := range []string{"/api/notes", "/api/notes/active", "/api/notes/completed"} {
		rec := api.do(t, http.MethodGet, path, "", nil)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s: expected status 401, got %d", path, rec.Code)
		}
	}
}

func TestNoteHandler_OwnershipIsolation(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)
	alice := api.register(t, "alice@example.com", "Alice")
	bob := api.register(t, "bob@example.com", "Bob")

	note := api.createNote(t, alice.Token, "Secret", "alice only")

	rec := api.do(t, http.MethodGet, "/api/notes/active", bob.Token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if notes := decode[[]dto.NoteResponse](t, rec); len(notes) != 0 {
		t.Errorf("expected bob to see no notes, got %d", len(notes))
	}

	attempts := []struct {
		method string
		path   string
		body   any
	}{
		{http.MethodPut, "/api/notes/" + note.ID, dto.UpdateNoteRequest{Title: strPtr("mine")}},
		{http.MethodPut, "/api/notes/" + note.ID + "/complete", dto.CompleteNoteRequest{}},
		{http.MethodDelete, "/api/notes/" + note.ID, nil},
	}
	for _, a := range attempts {
		rec := api.do(t, a.method, a.path, bob.Token, a.body)
		if rec.Code != http.StatusForbidden {
			t.Errorf("%s %s: expected status 403, got %d", a.method, a.path, rec.Code)
			continue
		}
		if resp := decode[dto.ErrorResponse](t, rec); resp.Message != "Not authorized to modify this note" {
			t.Errorf("unexpected message: %s", resp.Message)
		}
	}

	rec = api.do(t, http.MethodGet, "/api/notes/active", alice.Token, nil)
	notes := decode[[]dto.NoteResponse](t, rec)
	if len(notes) != 1 || notes[0].Title != "Secret" {
		t.Errorf("expected alice's note untouched, got %+v", notes)
	}
}

func TestNoteHandler_UpdatePartial(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)
	user := api.register(t, "u1@example.com", "U1")
	note := api.createNote(t, user.Token, "Old", "body")

	rec := api.do(t, http.MethodPut, "/api/notes/"+note.ID, user.Token, dto.UpdateNoteRequest{Title: strPtr("X")})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	updated := decode[dto.NoteResponse](t, rec)
	if updated.Title != "X" {
		t.Errorf("expected title X, got %s", updated.Title)
	}
	if updated.Content != note.Content || updated.Color != note.Color {
		t.Errorf("expected content and color unchanged, got %+v", updated)
	}
	if updated.UpdatedAt.Before(note.UpdatedAt) {
		t.Errorf("expected updated_at to advance, got %v < %v", updated.UpdatedAt, note.UpdatedAt)
	}
}

func TestNoteHandler_CompleteMovesNote(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)
	user := api.register(t, "u1@example.com", "U1")
	note := api.createNote(t, user.Token, "Ship it", "v1")

	rec := api.do(t, http.MethodPut, "/api/notes/"+note.ID+"/complete", user.Token, dto.CompleteNoteRequest{Feedback: "great job"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	completed := decode[dto.NoteResponse](t, rec)
	if !completed.IsCompleted || completed.CompletedAt == nil {
		t.Fatalf("expected completed note, got %+v", completed)
	}
	if completed.CompletionFeedback != "great job" {
		t.Errorf("unexpected feedback: %q", completed.CompletionFeedback)
	}

	active := decode[[]dto.NoteResponse](t, api.do(t, http.MethodGet, "/api/notes/active", user.Token, nil))
	if len(active) != 0 {
		t.Errorf("expected no active notes, got %d", len(active))
	}
	done := decode[[]dto.NoteResponse](t, api.do(t, http.MethodGet, "/api/notes/completed", user.Token, nil))
	if len(done) != 1 || done[0].ID != note.ID {
		t.Errorf("expected note in completed list, got %+v", done)
	}
	all := decode[[]dto.NoteResponse](t, api.do(t, http.MethodGet, "/api/notes", user.Token, nil))
	if len(all) != 1 {
		t.Errorf("expected note in full list, got %d", len(all))
	}
}

func TestNoteHandler_CompleteWithoutBody(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)
	user := api.register(t, "u1@example.com", "U1")
	note := api.createNote(t, user.Token, "Quiet", "no feedback")

	rec := api.do(t, http.MethodPut, "/api/notes/"+note.ID+"/complete", user.Token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if completed := decode[dto.NoteResponse](t, rec); completed.CompletionFeedback != "" {
		t.Errorf("expected empty feedback, got %q", completed.CompletionFeedback)
	}
}

func TestNoteHandler_UpdateWithoutBody(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)
	user := api.register(t, "u1@example.com", "U1")
	note := api.createNote(t, user.Token, "Keep", "as is")

	rec := api.do(t, http.MethodPut, "/api/notes/01HZZZZZZZZZZZZZZZZZZZZZZZ", user.Token, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown id: expected status 404, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = api.do(t, http.MethodPut, "/api/notes/"+note.ID, user.Token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	updated := decode[dto.NoteResponse](t, rec)
	if updated.Title != "Keep" || updated.Content != "as is" {
		t.Errorf("empty update changed the note: %+v", updated)
	}
}

func TestNoteHandler_DeleteTwice(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)
	user := api.register(t, "u1@example.com", "U1")
	note := api.createNote(t, user.Token, "Temp", "gone soon")

	rec := api.do(t, http.MethodDelete, "/api/notes/"+note.ID, user.Token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if resp := decode[dto.MessageResponse](t, rec); resp.Message != "Note deleted" {
		t.Errorf("unexpected message: %s", resp.Message)
	}

	rec = api.do(t, http.MethodDelete, "/api/notes/"+note.ID, user.Token, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
	if resp := decode[dto.ErrorResponse](t, rec); resp.Message != "Note not found" {
		t.Errorf("unexpected message: %s", resp.Message)
	}
}

func TestNoteHandler_UnknownID(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)
	user := api.register(t, "u1@example.com", "U1")

	rec := api.do(t, http.MethodPut, "/api/notes/01HZZZZZZZZZZZZZZZZZZZZZZZ", user.Token, dto.UpdateNoteRequest{Title: strPtr("x")})
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rec.Code)
	}
}
