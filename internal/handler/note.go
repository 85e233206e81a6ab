package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stickynotes/stickynotes/internal/auth"
	"github.com/stickynotes/stickynotes/internal/handler/dto"
	"github.com/stickynotes/stickynotes/internal/model"
	"github.com/stickynotes/stickynotes/internal/service"
)

// NoteHandler handles note management endpoints.
type NoteHandler struct {
	svc    *service.NoteService
	logger *slog.Logger
}

// NewNoteHandler creates a new NoteHandler.
func NewNoteHandler(svc *service.NoteService, logger *slog.Logger) *NoteHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &NoteHandler{svc: svc, logger: logger}
}

// List returns every note of the caller.
// GET /notes
func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	notes, err := h.svc.ListAll(r.Context(), auth.UserIDFromContext(r.Context()))
	h.writeNotes(w, notes, err)
}

// ListActive returns the caller's active notes.
// GET /notes/active
func (h *NoteHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	notes, err := h.svc.ListActive(r.Context(), auth.UserIDFromContext(r.Context()))
	h.writeNotes(w, notes, err)
}

// ListCompleted returns the caller's completed notes.
// GET /notes/completed
func (h *NoteHandler) ListCompleted(w http.ResponseWriter, r *http.Request) {
	notes, err := h.svc.ListCompleted(r.Context(), auth.UserIDFromContext(r.Context()))
	h.writeNotes(w, notes, err)
}

// Create adds a note.
// POST /notes
func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateNoteRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}

	note, err := h.svc.Create(r.Context(), auth.UserIDFromContext(r.Context()), service.CreateNoteInput{
		Title:   req.Title,
		Content: req.Content,
		Color:   req.Color,
	})
	if err != nil {
		handleServiceError(w, h.logger, err, "Note")
		return
	}

	writeJSON(w, http.StatusCreated, dto.ToNoteResponse(note))
}

// Update edits the supplied fields of a note.
// PUT /notes/{id}
func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateNoteRequest
	if err := decodeJSON(r, &req, true); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}

	note, err := h.svc.Update(r.Context(), auth.UserIDFromContext(r.Context()), chi.URLParam(r, "id"), req.ToPatch())
	h.writeNote(w, note, err)
}

// Complete marks a note completed. The body is optional.
// PUT /notes/{id}/complete
func (h *NoteHandler) Complete(w http.ResponseWriter, r *http.Request) {
	var req dto.CompleteNoteRequest
	if err := decodeJSON(r, &req, true); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}

	note, err := h.svc.Complete(r.Context(), auth.UserIDFromContext(r.Context()), chi.URLParam(r, "id"), req.Feedback)
	h.writeNote(w, note, err)
}

// Delete removes a note permanently.
// DELETE /notes/{id}
func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), auth.UserIDFromContext(r.Context()), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.logger, err, "Note")
		return
	}
	writeJSON(w, http.StatusOK, dto.MessageResponse{Message: "Note deleted"})
}

func (h *NoteHandler) writeNote(w http.ResponseWriter, note *model.Note, err error) {
	if err != nil {
		handleServiceError(w, h.logger, err, "Note")
		return
	}
	writeJSON(w, http.StatusOK, dto.ToNoteResponse(note))
}

func (h *NoteHandler) writeNotes(w http.ResponseWriter, notes []*model.Note, err error) {
	if err != nil {
		handleServiceError(w, h.logger, err, "Note")
		return
	}
	writeJSON(w, http.StatusOK, dto.ToNoteResponses(notes))
}
