package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mindhaven/wellness-api/internal/api/metrics"
	"github.com/mindhaven/wellness-api/internal/core/domain"
	"github.com/mindhaven/wellness-api/internal/core/ports"
)

const refreshCookieName = "refreshToken"

// AuthHandler handles the register/login/refresh/logout surface.
type AuthHandler struct {
	authService ports.AuthService
	refreshTTL  time.Duration
	secure      bool
}

// NewAuthHandler creates an AuthHandler. secure controls the Secure cookie
// attribute and should be true in production.
func NewAuthHandler(authService ports.AuthService, refreshTTL time.Duration, secure bool) *AuthHandler {
	return &AuthHandler{authService: authService, refreshTTL: refreshTTL, secure: secure}
}

func toUserView(u *domain.User) userView {
	return userView{
		ID:             u.ID,
		FullName:       u.FullName,
		Email:          u.Email,
		Role:           u.Role,
		Age:            u.Age,
		WeightKg:       u.WeightKg,
		HeightCm:       u.HeightCm,
		HealthGoals:    u.HealthGoals,
		AvatarURL:      u.AvatarURL,
		AccountStatus:  u.AccountStatus,
		AppLockEnabled: u.AppLockEnabled,
	}
}

// Register starts the OTP-gated registration flow.
//
// @Summary      Start registration (sends an OTP)
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration form"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
		Age:      req.Age,
		WeightKg: req.WeightKg,
	})
	if err != nil {
		return err
	}

	metrics.OtpIssuedTotal.WithLabelValues(string(domain.PurposeRegister)).Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "OTP sent to email"})
}

// VerifyRegisterOtp completes registration and creates the account.
//
// @Summary      Verify the registration OTP
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      verifyOtpRequest  true  "Email and code"
// @Success      201   {object}  registeredResponse
// @Failure      400   {object}  errorResponse
// @Router       /api/auth/register/verify-otp [post]
func (h *AuthHandler) VerifyRegisterOtp(c echo.Context) error {
	var req verifyOtpRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.VerifyRegisterOtp(c.Request().Context(), req.Email, req.Otp)
	metrics.OtpVerificationsTotal.WithLabelValues(string(domain.PurposeRegister), otpResultLabel(err)).Inc()
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, registeredResponse{
		Message: "Register success. Redirect to login",
		User:    toUserView(user),
	})
}

// ResendRegisterOtp re-issues a pending registration code.
//
// @Summary      Resend the registration OTP
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      emailRequest  true  "Email"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /api/auth/register/resend-otp [post]
func (h *AuthHandler) ResendRegisterOtp(c echo.Context) error {
	var req emailRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.authService.ResendRegisterOtp(c.Request().Context(), req.Email); err != nil {
		if errors.Is(err, domain.ErrRateLimited) {
			metrics.RateLimitedTotal.Inc()
		}
		return err
	}

	metrics.OtpIssuedTotal.WithLabelValues(string(domain.PurposeRegister)).Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "OTP resent"})
}

// ForgotPassword issues a password-recovery OTP.
//
// @Summary      Request a password-recovery OTP
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      emailRequest  true  "Email"
// @Success      200   {object}  messageResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req emailRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.authService.ForgotPassword(c.Request().Context(), req.Email); err != nil {
		return err
	}

	metrics.OtpIssuedTotal.WithLabelValues(string(domain.PurposeForgotPassword)).Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "OTP sent"})
}

// VerifyForgotOtp checks the recovery code without consuming it.
//
// @Summary      Verify the password-recovery OTP
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      verifyOtpRequest  true  "Email and code"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Router       /api/auth/forgot-password/verify-otp [post]
func (h *AuthHandler) VerifyForgotOtp(c echo.Context) error {
	var req verifyOtpRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err := h.authService.VerifyForgotOtp(c.Request().Context(), req.Email, req.Otp)
	metrics.OtpVerificationsTotal.WithLabelValues(string(domain.PurposeForgotPassword), otpResultLabel(err)).Inc()
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "OTP verified"})
}

// ResetPassword consumes the recovery code and sets the new password.
//
// @Summary      Reset the password with a verified OTP
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      resetPasswordRequest  true  "Email, code and new password"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Router       /api/auth/forgot-password/reset [post]
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.authService.ResetPassword(c.Request().Context(), req.Email, req.Otp, req.NewPassword); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "Password reset success"})
}

// Login authenticates credentials and sets the refresh cookie.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(loginResultLabel(err)).Inc()
		// Unknown email and wrong password stay distinct internally but
		// share one client-facing message.
		if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrInvalidPassword) {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid email or password")
		}
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	c.SetCookie(h.refreshCookie(result.RefreshToken, h.refreshTTL))

	return c.JSON(http.StatusOK, loginResponse{
		AccessToken: result.AccessToken,
		User:        toUserView(result.User),
	})
}

// Refresh mints a new access token from the refresh cookie.
//
// @Summary      Refresh the access token
// @Tags         auth
// @Produce      json
// @Success      200  {object}  refreshResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/auth/refresh-token [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	cookie, err := c.Cookie(refreshCookieName)
	if err != nil || cookie.Value == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "no refresh token")
	}

	access, err := h.authService.Refresh(c.Request().Context(), cookie.Value)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid refresh token")
	}

	return c.JSON(http.StatusOK, refreshResponse{AccessToken: access})
}

// Logout clears the refresh cookie. Idempotent; always succeeds.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  messageResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(h.refreshCookie("", -time.Second))
	return c.JSON(http.StatusOK, messageResponse{Message: "Logged out"})
}

// refreshCookie builds the HttpOnly SameSite=Strict cookie carrying the
// refresh token. A non-positive ttl expires the cookie immediately.
func (h *AuthHandler) refreshCookie(value string, ttl time.Duration) *http.Cookie {
	maxAge := int(ttl.Seconds())
	if ttl <= 0 {
		maxAge = -1
	}
	return &http.Cookie{
		Name:     refreshCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteStrictMode,
	}
}

func otpResultLabel(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrOtpNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrOtpExpired):
		return "expired"
	case errors.Is(err, domain.ErrOtpInvalid):
		return "invalid"
	default:
		return "error"
	}
}

func loginResultLabel(err error) string {
	switch {
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrInvalidPassword):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrAccountBanned):
		return "banned"
	default:
		return "error"
	}
}
