package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stickynotes/stickynotes/internal/auth"
	"github.com/stickynotes/stickynotes/internal/handler/dto"
)

func TestAuthHandler_RegisterSetsSessionCookie(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		Email:    "  Ada@Example.com ",
		Password: "correct horse",
		Name:     "Ada",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	resp := decode[dto.AuthResponse](t, rec)
	if resp.User.Email != "ada@example.com" {
		t.Errorf("expected normalized email, got %q", resp.User.Email)
	}
	if resp.Token == "" {
		t.Error("expected token in response body")
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected one cookie, got %d", len(cookies))
	}
	c := cookies[0]
	if c.Name != auth.CookieName || c.Value != resp.Token {
		t.Errorf("unexpected cookie %s=%s", c.Name, c.Value)
	}
	if !c.HttpOnly {
		t.Error("expected HttpOnly cookie")
	}
	if c.Secure {
		t.Error("expected non-secure cookie outside production")
	}
	if c.SameSite != http.SameSiteLaxMode {
		t.Errorf("expected SameSite=Lax, got %v", c.SameSite)
	}
	if c.MaxAge != 3600 {
		t.Errorf("expected Max-Age 3600, got %d", c.MaxAge)
	}
}

func TestAuthHandler_RegisterDuplicateEmail(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)
	api.register(t, "ada@example.com", "Ada")

	rec := api.do(t, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		Email:    "ADA@example.com",
		Password: "another one",
		Name:     "Imposter",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	if resp := decode[dto.ErrorResponse](t, rec); resp.Code != "ALREADY_EXISTS" {
		t.Errorf("expected ALREADY_EXISTS, got %s", resp.Code)
	}
}

func TestAuthHandler_RegisterValidation(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)

	tests := []struct {
		name string
		body any
		code string
	}{
		{"invalid json", "{", "INVALID_JSON"},
		{"missing email", dto.RegisterRequest{Password: "pw", Name: "N"}, "VALIDATION_ERROR"},
		{"missing password", dto.RegisterRequest{Email: "a@b.co", Name: "N"}, "VALIDATION_ERROR"},
		{"missing name", dto.RegisterRequest{Email: "a@b.co", Password: "pw"}, "VALIDATION_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := api.do(t, http.MethodPost, "/api/auth/register", "", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d", rec.Code)
			}
			if resp := decode[dto.ErrorResponse](t, rec); resp.Code != tt.code {
				t.Errorf("expected %s, got %s", tt.code, resp.Code)
			}
		})
	}
}

func TestAuthHandler_LoginReturnsSameUser(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)
	registered := api.register(t, "ada@example.com", "Ada")

	rec := api.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{
		Email:    "ada@example.com",
		Password: "correct horse",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	resp := decode[dto.AuthResponse](t, rec)
	if resp.User.ID != registered.User.ID {
		t.Errorf("expected user %s, got %s", registered.User.ID, resp.User.ID)
	}
	if resp.Message != "Login successful" {
		t.Errorf("unexpected message: %s", resp.Message)
	}
	if len(rec.Result().Cookies()) != 1 {
		t.Error("expected session cookie on login")
	}
}

func TestAuthHandler_LoginInvalidCredentials(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)
	api.register(t, "ada@example.com", "Ada")

	for _, req := range []dto.LoginRequest{
		{Email: "ada@example.com", Password: "wrong"},
		{Email: "nobody@example.com", Password: "correct horse"},
	} {
		rec := api.do(t, http.MethodPost, "/api/auth/login", "", req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected status 400, got %d", req.Email, rec.Code)
		}
		resp := decode[dto.ErrorResponse](t, rec)
		if resp.Code != "INVALID_CREDENTIALS" || resp.Message != "Invalid credentials" {
			t.Errorf("%s: unexpected error body %+v", req.Email, resp)
		}
	}

	if got := api.metrics.Snapshot().LoginsFailed; got != 2 {
		t.Errorf("expected 2 failed logins, got %d", got)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/auth/logout", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if resp := decode[dto.MessageResponse](t, rec); resp.Message != "Logged out successfully" {
		t.Errorf("unexpected message: %s", resp.Message)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != auth.CookieName {
		t.Fatalf("expected cleared session cookie, got %v", cookies)
	}
	if cookies[0].Value != "" || cookies[0].MaxAge >= 0 {
		t.Errorf("expected expired empty cookie, got value=%q max-age=%d", cookies[0].Value, cookies[0].MaxAge)
	}
}

func TestAuthHandler_Me(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)
	registered := api.register(t, "ada@example.com", "Ada")

	rec := api.do(t, http.MethodGet, "/api/auth/me", registered.Token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	resp := decode[dto.MeResponse](t, rec)
	if resp.User != registered.User {
		t.Errorf("expected %+v, got %+v", registered.User, resp.User)
	}
}

func TestAuthHandler_MeWithCookie(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)
	registered := api.register(t, "ada@example.com", "Ada")

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: registered.Token})
	rec := serve(api, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}

func TestAuthHandler_MeUnknownUser(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)

	token, _, err := api.tokens.Issue("01HZZZZZZZZZZZZZZZZZZZZZZZ")
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	rec := api.do(t, http.MethodGet, "/api/auth/me", token, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
	if resp := decode[dto.ErrorResponse](t, rec); resp.Message != "User not found" {
		t.Errorf("expected 'User not found', got %q", resp.Message)
	}
}

func TestAuthHandler_MeRequiresToken(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/api/auth/me", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
	if resp := decode[dto.ErrorResponse](t, rec); resp.Code != "UNAUTHENTICATED" {
		t.Errorf("expected UNAUTHENTICATED, got %s", resp.Code)
	}

	rec = api.do(t, http.MethodGet, "/api/auth/me", "not-a-jwt", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
	resp := decode[dto.ErrorResponse](t, rec)
	if resp.Code != "INVALID_TOKEN" || resp.Error == "" {
		t.Errorf("expected INVALID_TOKEN with detail, got %+v", resp)
	}
}
