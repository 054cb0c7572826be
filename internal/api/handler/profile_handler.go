package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mindhaven/wellness-api/internal/core/domain"
	"github.com/mindhaven/wellness-api/internal/core/ports"
)

// ProfileHandler exposes the self-service account endpoints.
type ProfileHandler struct {
	profileService ports.ProfileService
}

func NewProfileHandler(profileService ports.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// GetProfile returns the authenticated user's profile.
//
// @Summary      Get own profile
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  profileResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/profile [get]
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	user, err := h.profileService.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, profileResponse{User: toUserView(user)})
}

// UpdateProfile applies a partial profile update. Absent fields are left
// unchanged.
//
// @Summary      Update own profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Fields to change"
// @Success      200   {object}  profileResponse
// @Failure      400   {object}  errorResponse
// @Router       /api/profile [put]
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.profileService.UpdateProfile(c.Request().Context(), userID, domain.ProfileUpdate{
		FullName:    req.FullName,
		Age:         req.Age,
		WeightKg:    req.WeightKg,
		HeightCm:    req.HeightCm,
		DateOfBirth: req.DateOfBirth,
		HealthGoals: req.HealthGoals,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, profileResponse{User: toUserView(user)})
}

// ChangePassword verifies the current password and sets a new one.
//
// @Summary      Change password
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      changePasswordRequest  true  "Current and new password"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Router       /api/profile/change-password [put]
func (h *ProfileHandler) ChangePassword(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.profileService.ChangePassword(c.Request().Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "Password changed"})
}

// SetAppLockPin enables the app lock with a six-digit PIN.
//
// @Summary      Set the app-lock PIN
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      pinRequest  true  "Six-digit PIN"
// @Success      200   {object}  profileResponse
// @Failure      400   {object}  errorResponse
// @Router       /api/profile/app-lock [put]
func (h *ProfileHandler) SetAppLockPin(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req pinRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.profileService.SetAppLockPin(c.Request().Context(), userID, req.Pin)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, profileResponse{User: toUserView(user)})
}

// VerifyAppLockPin checks the submitted PIN against the stored hash.
//
// @Summary      Verify the app-lock PIN
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      pinRequest  true  "Six-digit PIN"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Router       /api/profile/app-lock/verify [post]
func (h *ProfileHandler) VerifyAppLockPin(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req pinRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.profileService.VerifyAppLockPin(c.Request().Context(), userID, req.Pin); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "PIN verified"})
}

// ResetAvatar restores the default avatar.
//
// @Summary      Reset avatar to the default
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  profileResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/profile/avatar [delete]
func (h *ProfileHandler) ResetAvatar(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	user, err := h.profileService.ResetAvatar(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, profileResponse{User: toUserView(user)})
}
