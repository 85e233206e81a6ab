// Package model defines domain entities for the application.
package model

import (
	"strconv"
	"time"
)

// User is a registered account. PasswordHash is never serialized.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Sanitized returns a copy of the user without the password hash.
func (u *User) Sanitized() *User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.PasswordHash = ""
	return &clone
}

// Identity is the authenticated caller resolved from a session token.
type Identity struct {
	UserID    string
	ExpiresAt time.Time
}

// CachedUser represents user profile data stored in Redis.
// Uses string types for Redis hash compatibility.
type CachedUser struct {
	Email     string `redis:"email"`
	Name      string `redis:"name"`
	CreatedAt string `redis:"created_at"` // Unix timestamp
}

// ToUser converts CachedUser to the User domain model.
func (c *CachedUser) ToUser(id string) *User {
	user := &User{
		ID:    id,
		Email: c.Email,
		Name:  c.Name,
	}
	if c.CreatedAt != "" {
		if ts, err := parseUnix(c.CreatedAt); err == nil {
			user.CreatedAt = ts
		}
	}
	return user
}

// ToCachedUser converts a User to its cached representation.
func (u *User) ToCachedUser() *CachedUser {
	return &CachedUser{
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: formatUnix(u.CreatedAt),
	}
}

func parseUnix(s string) (time.Time, error) {
	ts, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(ts, 0).UTC(), nil
}

func formatUnix(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return strconv.FormatInt(t.Unix(), 10)
}
