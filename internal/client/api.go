package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/stickynotes/stickynotes/internal/handler/dto"
)

// maxErrorBody caps how much of a non-JSON error body is kept.
const maxErrorBody = 4 << 10

// APIError is a non-2xx response from the API.
type APIError struct {
	Status  int
	Code    string
	Message string
}

// Error returns the server's message, which is what users see.
func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// IsUnauthorized reports whether err is a 401 from the API.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// NewNote is the input of CreateNote. An empty Color takes the server default.
type NewNote = dto.CreateNoteRequest

// NoteChanges is the input of UpdateNote. Nil fields are left unchanged.
type NoteChanges = dto.UpdateNoteRequest

// API is a typed client for the notes REST API. Every authenticated call
// takes the session token explicitly.
type API struct {
	baseURL string
	http    *http.Client
}

// NewAPI creates an API client from options.
func NewAPI(opts Options) *API {
	return NewAPIWithClient(opts.BaseURL, NewHTTPClient(opts.Timeout))
}

// NewAPIWithClient creates an API client that uses the given HTTP client.
func NewAPIWithClient(baseURL string, httpClient *http.Client) *API {
	return &API{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

// Register creates an account and returns its session.
func (a *API) Register(ctx context.Context, email, password, name string) (*Session, error) {
	var resp dto.AuthResponse
	err := a.do(ctx, http.MethodPost, "/auth/register", "", dto.RegisterRequest{
		Email:    email,
		Password: password,
		Name:     name,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &Session{Token: resp.Token, User: resp.User}, nil
}

// Login signs in and returns the session.
func (a *API) Login(ctx context.Context, email, password string) (*Session, error) {
	var resp dto.AuthResponse
	err := a.do(ctx, http.MethodPost, "/auth/login", "", dto.LoginRequest{
		Email:    email,
		Password: password,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &Session{Token: resp.Token, User: resp.User}, nil
}

// Logout tells the server to clear its session cookie.
func (a *API) Logout(ctx context.Context, token string) error {
	return a.do(ctx, http.MethodPost, "/auth/logout", token, nil, nil)
}

// Me resolves a token to its user.
func (a *API) Me(ctx context.Context, token string) (User, error) {
	var resp dto.MeResponse
	if err := a.do(ctx, http.MethodGet, "/auth/me", token, nil, &resp); err != nil {
		return User{}, err
	}
	return resp.User, nil
}

// ListActive returns the caller's active notes, most recently updated first.
func (a *API) ListActive(ctx context.Context, token string) ([]Note, error) {
	var notes []Note
	if err := a.do(ctx, http.MethodGet, "/notes/active", token, nil, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// ListCompleted returns the caller's completed notes, most recently completed first.
func (a *API) ListCompleted(ctx context.Context, token string) ([]Note, error) {
	var notes []Note
	if err := a.do(ctx, http.MethodGet, "/notes/completed", token, nil, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// CreateNote adds a note.
func (a *API) CreateNote(ctx context.Context, token string, note NewNote) (Note, error) {
	var created Note
	err := a.do(ctx, http.MethodPost, "/notes", token, note, &created)
	return created, err
}

// UpdateNote edits the supplied fields of a note.
func (a *API) UpdateNote(ctx context.Context, token, id string, changes NoteChanges) (Note, error) {
	var updated Note
	err := a.do(ctx, http.MethodPut, "/notes/"+url.PathEscape(id), token, changes, &updated)
	return updated, err
}

// CompleteNote marks a note completed with optional feedback.
func (a *API) CompleteNote(ctx context.Context, token, id, feedback string) (Note, error) {
	var completed Note
	err := a.do(ctx, http.MethodPut, "/notes/"+url.PathEscape(id)+"/complete", token, dto.CompleteNoteRequest{
		Feedback: feedback,
	}, &completed)
	return completed, err
}

// DeleteNote removes a note.
func (a *API) DeleteNote(ctx context.Context, token, id string) error {
	return a.do(ctx, http.MethodDelete, "/notes/"+url.PathEscape(id), token, nil, nil)
}

func (a *API) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := a.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	apiErr := &APIError{Status: resp.StatusCode}
	var envelope dto.ErrorResponse
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Message != "" {
		apiErr.Code = envelope.Code
		apiErr.Message = envelope.Message
		return apiErr
	}

	apiErr.Message = strings.TrimSpace(string(raw))
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
