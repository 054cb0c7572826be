package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mindhaven/wellness-api/internal/api/metrics"
	"github.com/mindhaven/wellness-api/internal/core/domain"
	"github.com/mindhaven/wellness-api/internal/core/ports"
)

// WellnessHandler exposes onboarding, daily check-ins and mood analytics.
type WellnessHandler struct {
	wellnessService ports.WellnessService
}

func NewWellnessHandler(wellnessService ports.WellnessService) *WellnessHandler {
	return &WellnessHandler{wellnessService: wellnessService}
}

// OnboardingStatus reports whether the user completed the guided setup.
//
// @Summary      Onboarding status
// @Tags         wellness
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  onboardingStatusResponse
// @Router       /api/onboarding/status [get]
func (h *WellnessHandler) OnboardingStatus(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	onboarded, err := h.wellnessService.OnboardingStatus(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, onboardingStatusResponse{IsOnboarded: onboarded})
}

// GetOnboarding returns the stored answers, or defaults when the user has
// not onboarded yet.
//
// @Summary      Get onboarding answers
// @Tags         wellness
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  onboardingResponse
// @Router       /api/onboarding [get]
func (h *WellnessHandler) GetOnboarding(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	onboarding, err := h.wellnessService.GetOnboarding(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, onboardingResponse{Onboarding: *onboarding})
}

// SaveOnboarding stores the guided-setup answers and marks the user onboarded.
//
// @Summary      Save onboarding answers
// @Tags         wellness
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      onboardingRequest  true  "Answers"
// @Success      200   {object}  onboardingResponse
// @Failure      400   {object}  errorResponse
// @Router       /api/onboarding [post]
func (h *WellnessHandler) SaveOnboarding(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req onboardingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	onboarding, err := h.wellnessService.SaveOnboarding(c.Request().Context(), userID, ports.OnboardingInput{
		Goals:                req.Goals,
		EmotionalSensitivity: req.EmotionalSensitivity,
		ReminderTone:         req.ReminderTone,
		ThemePreference:      req.ThemePreference,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, onboardingResponse{Onboarding: *onboarding})
}

// TodayCheckIn returns the current UTC day's check-in, or null when absent.
//
// @Summary      Today's check-in
// @Tags         wellness
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  todayCheckInResponse
// @Router       /api/checkins/today [get]
func (h *WellnessHandler) TodayCheckIn(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	checkIn, err := h.wellnessService.TodayCheckIn(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrCheckInNotFound) {
			return c.JSON(http.StatusOK, todayCheckInResponse{CheckIn: nil})
		}
		return err
	}

	return c.JSON(http.StatusOK, todayCheckInResponse{CheckIn: checkIn})
}

// SaveCheckIn records today's mood and energy; submitting twice on the same
// day overwrites the earlier values.
//
// @Summary      Save today's check-in
// @Tags         wellness
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      checkInRequest  true  "Mood and energy"
// @Success      200   {object}  checkInResponse
// @Failure      400   {object}  errorResponse
// @Router       /api/checkins [post]
func (h *WellnessHandler) SaveCheckIn(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req checkInRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	checkIn, err := h.wellnessService.SaveCheckIn(c.Request().Context(), userID, ports.CheckInInput{
		Mood:   req.Mood,
		Energy: req.Energy,
		Note:   req.Note,
	})
	if err != nil {
		return err
	}

	metrics.CheckInsSavedTotal.WithLabelValues(string(checkIn.Theme)).Inc()
	return c.JSON(http.StatusOK, checkInResponse{CheckIn: *checkIn})
}

// MoodFlow returns the check-in window for the requested period
// (week, month or year; week by default).
//
// @Summary      Mood flow analytics
// @Tags         wellness
// @Produce      json
// @Security     BearerAuth
// @Param        period  query     string  false  "week | month | year"
// @Success      200     {object}  domain.MoodFlow
// @Failure      400     {object}  errorResponse
// @Router       /api/checkins/mood-flow [get]
func (h *WellnessHandler) MoodFlow(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	flow, err := h.wellnessService.MoodFlow(c.Request().Context(), userID, c.QueryParam("period"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, flow)
}
