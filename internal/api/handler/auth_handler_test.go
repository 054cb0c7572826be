package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mindhaven/wellness-api/internal/core/domain"
	"github.com/mindhaven/wellness-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stub auth service
// ---------------------------------------------------------------------------

type stubAuthService struct {
	registerFn func(ctx context.Context, input ports.RegisterInput) error
	verifyFn   func(ctx context.Context, email, code string) (*domain.User, error)
	loginFn    func(ctx context.Context, email, password string) (*ports.LoginResult, error)
	refreshFn  func(ctx context.Context, refreshToken string) (string, error)
}

func (s *stubAuthService) Register(ctx context.Context, input ports.RegisterInput) error {
	return s.registerFn(ctx, input)
}

func (s *stubAuthService) VerifyRegisterOtp(ctx context.Context, email, code string) (*domain.User, error) {
	return s.verifyFn(ctx, email, code)
}

func (s *stubAuthService) ResendRegisterOtp(context.Context, string) error { return nil }

func (s *stubAuthService) ForgotPassword(context.Context, string) error { return nil }

func (s *stubAuthService) VerifyForgotOtp(context.Context, string, string) error { return nil }

func (s *stubAuthService) ResetPassword(context.Context, string, string, string) error { return nil }

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	return s.refreshFn(ctx, refreshToken)
}

// ---------------------------------------------------------------------------
// Harness
// ---------------------------------------------------------------------------

func newHandlerContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func refreshCookieFrom(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == refreshCookieName {
			return cookie
		}
	}
	t.Fatal("refresh cookie not set")
	return nil
}

// ---------------------------------------------------------------------------
// Register
// ---------------------------------------------------------------------------

func TestAuthHandler_Register_SendsOtp(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(_ context.Context, input ports.RegisterInput) error {
			if input.Email != "maya@example.com" || input.FullName != "Maya Chen" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return nil
		},
	}
	h := NewAuthHandler(stub, 7*24*time.Hour, false)

	c, rec := newHandlerContext(t, http.MethodPost, "/api/auth/register",
		`{"full_name":"Maya Chen","email":"maya@example.com","password":"hunter2hunter2","age":29}`)

	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "OTP sent to email") {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestAuthHandler_Register_ValidationFailures(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, 7*24*time.Hour, false)

	cases := []string{
		`{"email":"maya@example.com","password":"hunter2hunter2"}`,         // missing name
		`{"full_name":"Maya","email":"not-an-email","password":"hunter2hunter2"}`, // bad email
		`{"full_name":"Maya","email":"maya@example.com","password":"short"}`,      // short password
	}
	for _, body := range cases {
		c, _ := newHandlerContext(t, http.MethodPost, "/api/auth/register", body)
		err := h.Register(c)
		var he *echo.HTTPError
		if err == nil {
			t.Errorf("body %s: expected validation error", body)
			continue
		}
		if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
			t.Errorf("body %s: expected 400, got %v", body, err)
		}
	}
}

func TestAuthHandler_VerifyRegisterOtp_Created(t *testing.T) {
	stub := &stubAuthService{
		verifyFn: func(_ context.Context, email, code string) (*domain.User, error) {
			if email != "maya@example.com" || code != "482916" {
				t.Fatalf("unexpected args: %s %s", email, code)
			}
			return &domain.User{ID: "user-1", Email: email, Role: domain.RoleUser, PasswordHash: "secret-hash"}, nil
		},
	}
	h := NewAuthHandler(stub, 7*24*time.Hour, false)

	c, rec := newHandlerContext(t, http.MethodPost, "/api/auth/register/verify-otp",
		`{"email":"maya@example.com","otp":"482916"}`)

	if err := h.VerifyRegisterOtp(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "secret-hash") {
		t.Error("password hash must never appear in a response")
	}
}

func TestAuthHandler_VerifyRegisterOtp_BadCodeShape(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, 7*24*time.Hour, false)

	for _, otp := range []string{"12345", "1234567", "abcdef"} {
		c, _ := newHandlerContext(t, http.MethodPost, "/api/auth/register/verify-otp",
			`{"email":"maya@example.com","otp":"`+otp+`"}`)
		if err := h.VerifyRegisterOtp(c); err == nil {
			t.Errorf("otp %q: expected validation error", otp)
		}
	}
}

// ---------------------------------------------------------------------------
// Login / refresh / logout
// ---------------------------------------------------------------------------

func TestAuthHandler_Login_SetsRefreshCookie(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(_ context.Context, email, password string) (*ports.LoginResult, error) {
			return &ports.LoginResult{
				AccessToken:  "access-jwt",
				RefreshToken: "refresh-jwt",
				User:         &domain.User{ID: "user-1", Email: email, Role: domain.RoleUser},
			}, nil
		},
	}
	h := NewAuthHandler(stub, 7*24*time.Hour, false)

	c, rec := newHandlerContext(t, http.MethodPost, "/api/auth/login",
		`{"email":"maya@example.com","password":"hunter2hunter2"}`)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp loginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.AccessToken != "access-jwt" {
		t.Errorf("access token: got %q", resp.AccessToken)
	}
	if strings.Contains(rec.Body.String(), "refresh-jwt") {
		t.Error("refresh token must not appear in the body")
	}

	cookie := refreshCookieFrom(t, rec)
	if cookie.Value != "refresh-jwt" {
		t.Errorf("cookie value: got %q", cookie.Value)
	}
	if !cookie.HttpOnly {
		t.Error("refresh cookie must be HttpOnly")
	}
	if cookie.SameSite != http.SameSiteStrictMode {
		t.Error("refresh cookie must be SameSite=Strict")
	}
	if cookie.MaxAge != int((7 * 24 * time.Hour).Seconds()) {
		t.Errorf("cookie max-age: got %d", cookie.MaxAge)
	}
	if cookie.Secure {
		t.Error("secure flag must follow the environment, got true in non-production")
	}
}

func TestAuthHandler_Login_SecureCookieInProduction(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(_ context.Context, email, password string) (*ports.LoginResult, error) {
			return &ports.LoginResult{AccessToken: "a", RefreshToken: "r", User: &domain.User{ID: "u"}}, nil
		},
	}
	h := NewAuthHandler(stub, 7*24*time.Hour, true)

	c, rec := newHandlerContext(t, http.MethodPost, "/api/auth/login",
		`{"email":"maya@example.com","password":"hunter2hunter2"}`)

	if err := h.Login(c); err != nil {
		t.Fatal(err)
	}
	if !refreshCookieFrom(t, rec).Secure {
		t.Error("production cookie must be Secure")
	}
}

func TestAuthHandler_Login_CoalescesCredentialErrors(t *testing.T) {
	for _, serviceErr := range []error{domain.ErrUserNotFound, domain.ErrInvalidPassword} {
		stub := &stubAuthService{
			loginFn: func(context.Context, string, string) (*ports.LoginResult, error) {
				return nil, serviceErr
			},
		}
		h := NewAuthHandler(stub, 7*24*time.Hour, false)

		c, _ := newHandlerContext(t, http.MethodPost, "/api/auth/login",
			`{"email":"maya@example.com","password":"whatever1"}`)

		err := h.Login(c)
		var he *echo.HTTPError
		if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
			t.Fatalf("%v: expected 400, got %v", serviceErr, err)
		}
		if he.Message != "invalid email or password" {
			t.Errorf("%v: both failures must share one message, got %v", serviceErr, he.Message)
		}
	}
}

func TestAuthHandler_Refresh_NoCookie(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, 7*24*time.Hour, false)

	c, _ := newHandlerContext(t, http.MethodPost, "/api/auth/refresh-token", "")

	err := h.Refresh(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuthHandler_Refresh_Success(t *testing.T) {
	stub := &stubAuthService{
		refreshFn: func(_ context.Context, token string) (string, error) {
			if token != "refresh-jwt" {
				t.Fatalf("unexpected token: %q", token)
			}
			return "new-access-jwt", nil
		},
	}
	h := NewAuthHandler(stub, 7*24*time.Hour, false)

	c, rec := newHandlerContext(t, http.MethodPost, "/api/auth/refresh-token", "")
	c.Request().AddCookie(&http.Cookie{Name: refreshCookieName, Value: "refresh-jwt"})

	if err := h.Refresh(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp refreshResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.AccessToken != "new-access-jwt" {
		t.Errorf("access token: got %q", resp.AccessToken)
	}
}

func TestAuthHandler_Refresh_InvalidToken(t *testing.T) {
	stub := &stubAuthService{
		refreshFn: func(context.Context, string) (string, error) {
			return "", domain.ErrInvalidToken
		},
	}
	h := NewAuthHandler(stub, 7*24*time.Hour, false)

	c, _ := newHandlerContext(t, http.MethodPost, "/api/auth/refresh-token", "")
	c.Request().AddCookie(&http.Cookie{Name: refreshCookieName, Value: "stale"})

	err := h.Refresh(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuthHandler_Logout_ClearsCookie(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, 7*24*time.Hour, false)

	c, rec := newHandlerContext(t, http.MethodPost, "/api/auth/logout", "")

	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	cookie := refreshCookieFrom(t, rec)
	if cookie.Value != "" {
		t.Errorf("logout must blank the cookie, got %q", cookie.Value)
	}
	if cookie.MaxAge != -1 {
		t.Errorf("logout must expire the cookie, got max-age %d", cookie.MaxAge)
	}
}
