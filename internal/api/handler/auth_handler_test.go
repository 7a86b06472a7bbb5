package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/payrollhq/payroll-system/internal/api/middleware"
	"github.com/payrollhq/payroll-system/internal/core/domain"
	"github.com/payrollhq/payroll-system/internal/core/ports"
)

type stubAuthService struct {
	signupResult *ports.AuthResult
	signupErr    error
	loginResult  *ports.AuthResult
	loginErr     error
	verifyUser   *domain.User
	verifyErr    error
	changeErr    error
	forgotErr    error
	resetErr     error
}

func (s *stubAuthService) Signup(_ context.Context, _ ports.SignupInput) (*ports.AuthResult, error) {
	return s.signupResult, s.signupErr
}

func (s *stubAuthService) Login(_ context.Context, _, _ string) (*ports.AuthResult, error) {
	return s.loginResult, s.loginErr
}

func (s *stubAuthService) VerifiedUser(_ context.Context, _ string) (*domain.User, error) {
	return s.verifyUser, s.verifyErr
}

func (s *stubAuthService) ChangePassword(_ context.Context, _, _, _ string) error {
	return s.changeErr
}

func (s *stubAuthService) ForgotPassword(_ context.Context, _ string) error {
	return s.forgotErr
}

func (s *stubAuthService) ResetPassword(_ context.Context, _, _ string) error {
	return s.resetErr
}

func newAuthTestContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func testUser() *domain.User {
	return &domain.User{
		ID:           "user_1",
		Name:         "Alice",
		Email:        "alice@example.com",
		PasswordHash: "$2a$10$secret-hash",
		Role:         domain.RoleEmployee,
	}
}

func TestAuthHandler_Signup_Created(t *testing.T) {
	svc := &stubAuthService{signupResult: &ports.AuthResult{User: testUser(), Token: "issued-token"}}
	h := NewAuthHandler(svc)

	c, rec := newAuthTestContext(t, http.MethodPost, "/api/auth/signup",
		`{"name":"Alice","email":"alice@example.com","password":"pass123"}`)

	if err := h.Signup(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp struct {
		User  map[string]any `json:"user"`
		Token string         `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Token != "issued-token" {
		t.Fatalf("expected token in response, got %q", resp.Token)
	}
	if strings.Contains(rec.Body.String(), "secret-hash") {
		t.Fatalf("password hash leaked in response: %s", rec.Body.String())
	}
}

func TestAuthHandler_Signup_Validation(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	cases := []string{
		`{"email":"alice@example.com","password":"pass123"}`, // missing name
		`{"name":"Alice","email":"not-an-email","password":"pass123"}`,
		`{"name":"Alice","email":"alice@example.com","password":"short"}`, // below min
		`{"name":"Alice","email":"alice@example.com","password":"pass123","role":"superuser"}`,
	}
	for _, body := range cases {
		c, rec := newAuthTestContext(t, http.MethodPost, "/api/auth/signup", body)
		if err := h.Signup(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %d", body, rec.Code)
		}
	}
}

func TestAuthHandler_Signup_Conflict(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{signupErr: domain.ErrUserExists})

	c, rec := newAuthTestContext(t, http.MethodPost, "/api/auth/signup",
		`{"name":"Alice","email":"alice@example.com","password":"pass123"}`)

	if err := h.Signup(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	svc := &stubAuthService{loginResult: &ports.AuthResult{User: testUser(), Token: "issued-token"}}
	h := NewAuthHandler(svc)

	c, rec := newAuthTestContext(t, http.MethodPost, "/api/auth/login",
		`{"email":"alice@example.com","password":"pass123"}`)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "issued-token") {
		t.Fatalf("token missing from response: %s", rec.Body.String())
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{loginErr: domain.ErrInvalidCredentials})

	c, rec := newAuthTestContext(t, http.MethodPost, "/api/auth/login",
		`{"email":"alice@example.com","password":"wrong"}`)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "invalid credentials") {
		t.Fatalf("expected uniform message, got %s", rec.Body.String())
	}
}

func TestAuthHandler_Verify_Success(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{verifyUser: testUser()})

	c, rec := newAuthTestContext(t, http.MethodGet, "/api/auth/verify", "")
	c.Set(middleware.CtxUserID, "user_1")
	c.Set(middleware.CtxRole, domain.RoleEmployee)

	if err := h.Verify(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "secret-hash") {
		t.Fatalf("password hash leaked in response")
	}
	// Verify answers with the user only, never a fresh token.
	var resp struct {
		Token string `json:"token"`
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Token != "" {
		t.Fatalf("verify must not issue tokens, got %q", resp.Token)
	}
}

func TestAuthHandler_Verify_MissingClaims(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{verifyUser: testUser()})

	e := echo.New()
	c, rec := newAuthTestContext(t, http.MethodGet, "/api/auth/verify", "")

	if err := h.Verify(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthHandler_Verify_SubjectGone(t *testing.T) {
	// Token verified but the account was deleted: same 401 as a bad token.
	h := NewAuthHandler(&stubAuthService{verifyErr: domain.ErrUserNotFound})

	c, rec := newAuthTestContext(t, http.MethodGet, "/api/auth/verify", "")
	c.Set(middleware.CtxUserID, "user_1")
	c.Set(middleware.CtxRole, domain.RoleEmployee)

	if err := h.Verify(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "invalid token") {
		t.Fatalf("expected opaque message, got %s", rec.Body.String())
	}
}

func TestAuthHandler_ChangePassword(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, rec := newAuthTestContext(t, http.MethodPost, "/api/auth/change-password",
		`{"oldPassword":"oldpass","newPassword":"newpass"}`)
	c.Set(middleware.CtxUserID, "user_1")
	c.Set(middleware.CtxRole, domain.RoleEmployee)

	if err := h.ChangePassword(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthHandler_ChangePassword_WrongOldPassword(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{changeErr: domain.ErrInvalidCredentials})

	c, rec := newAuthTestContext(t, http.MethodPost, "/api/auth/change-password",
		`{"oldPassword":"wrong","newPassword":"newpass"}`)
	c.Set(middleware.CtxUserID, "user_1")
	c.Set(middleware.CtxRole, domain.RoleEmployee)

	if err := h.ChangePassword(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthHandler_ForgotPassword_AlwaysOK(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, rec := newAuthTestContext(t, http.MethodPost, "/api/auth/forgot-password",
		`{"email":"whoever@example.com"}`)

	if err := h.ForgotPassword(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthHandler_ResetPassword_InvalidToken(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{resetErr: domain.ErrResetTokenInvalid})

	c, rec := newAuthTestContext(t, http.MethodPost, "/api/auth/reset-password",
		`{"token":"stale","newPassword":"newpass"}`)

	if err := h.ResetPassword(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
