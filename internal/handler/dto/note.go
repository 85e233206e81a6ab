package dto

import (
	"time"

	"github.com/stickynotes/stickynotes/internal/model"
)

// CreateNoteRequest is the body of POST /notes.
type CreateNoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Color   string `json:"color,omitempty"`
}

// UpdateNoteRequest is the body of PUT /notes/{id}. Absent or empty fields are left unchanged.
type UpdateNoteRequest struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
	Color   *string `json:"color,omitempty"`
}

// ToPatch converts the request to a model patch.
func (r UpdateNoteRequest) ToPatch() model.NotePatch {
	return model.NotePatch{Title: r.Title, Content: r.Content, Color: r.Color}
}

// CompleteNoteRequest is the body of PUT /notes/{id}/complete.
type CompleteNoteRequest struct {
	Feedback string `json:"feedback,omitempty"`
}

// NoteResponse is the API representation of a note.
type NoteResponse struct {
	ID                 string     `json:"id"`
	Title              string     `json:"title"`
	Content            string     `json:"content"`
	Color              string     `json:"color"`
	IsCompleted        bool       `json:"is_completed"`
	CompletedAt        *time.Time `json:"completed_at"`
	CompletionFeedback string     `json:"completion_feedback"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// ToNoteResponse converts a Note model to NoteResponse DTO.
func ToNoteResponse(n *model.Note) NoteResponse {
	return NoteResponse{
		ID:                 n.ID,
		Title:              n.Title,
		Content:            n.Content,
		Color:              n.Color,
		IsCompleted:        n.IsCompleted,
		CompletedAt:        n.CompletedAt,
		CompletionFeedback: n.CompletionFeedback,
		CreatedAt:          n.CreatedAt,
		UpdatedAt:          n.UpdatedAt,
	}
}

// ToNoteResponses converts a slice of notes, never returning nil.
func ToNoteResponses(notes []*model.Note) []NoteResponse {
	out := make([]NoteResponse, 0, len(notes))
	for _, n := range notes {
		out = append(out, ToNoteResponse(n))
	}
	return out
}
