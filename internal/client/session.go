package client

import "github.com/stickynotes/stickynotes/internal/handler/dto"

// User is the public profile returned by the auth endpoints.
type User = dto.UserResponse

// Note is a note as returned by the API.
type Note = dto.NoteResponse

// Session is the signed-in identity a Store fetches for. A nil *Session is
// the signed-out state.
type Session struct {
	Token string
	User  User
}

// Authenticated reports whether the session carries a token.
func (s *Session) Authenticated() bool {
	return s != nil && s.Token != ""
}
