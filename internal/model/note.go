package model

import "time"

// DefaultNoteColor is the swatch applied when a note is created without a color.
const DefaultNoteColor = "#F9EAD3"

// Swatch is a named note color offered by clients.
type Swatch struct {
	Label string
	Value string
}

// Palette lists the swatches clients offer, default first.
var Palette = []Swatch{
	{Label: "Warm Sand", Value: DefaultNoteColor},
	{Label: "Soft Pink", Value: "#F8D8D8"},
	{Label: "Mint", Value: "#DCF8D8"},
	{Label: "Sky Blue", Value: "#D8E5F8"},
	{Label: "Lavender", Value: "#E8D8F8"},
}

// Note is a sticky note owned by exactly one user.
type Note struct {
	ID                 string     `json:"id"`
	OwnerID            string     `json:"owner_id"`
	Title              string     `json:"title"`
	Content            string     `json:"content"`
	Color              string     `json:"color"`
	IsCompleted        bool       `json:"is_completed"`
	CompletedAt        *time.Time `json:"completed_at"`
	CompletionFeedback string     `json:"completion_feedback"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// OwnedBy reports whether userID owns the note.
func (n *Note) OwnedBy(userID string) bool {
	return userID != "" && n.OwnerID == userID
}

// NotePatch carries the optional fields of an edit. Nil and empty values are ignored.
type NotePatch struct {
	Title   *string
	Content *string
	Color   *string
}

// Apply copies the non-empty patch fields onto the note and reports whether anything was supplied.
func (p NotePatch) Apply(n *Note) bool {
	changed := false
	if p.Title != nil && *p.Title != "" {
		n.Title = *p.Title
		changed = true
	}
	if p.Content != nil && *p.Content != "" {
		n.Content = *p.Content
		changed = true
	}
	if p.Color != nil && *p.Color != "" {
		n.Color = *p.Color
		changed = true
	}
	return changed
}

// Complete marks the note completed at the given time. Completion is one-way.
func (n *Note) Complete(at time.Time, feedback string) {
	n.IsCompleted = true
	n.CompletedAt = &at
	n.CompletionFeedback = feedback
	n.UpdatedAt = at
}
