package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mindhaven/wellness-api/internal/core/domain"
	"github.com/mindhaven/wellness-api/internal/core/ports"
)

// JournalHandler exposes the journal CRUD endpoints.
type JournalHandler struct {
	journalService ports.JournalService
}

func NewJournalHandler(journalService ports.JournalService) *JournalHandler {
	return &JournalHandler{journalService: journalService}
}

// CreateEntry adds a journal entry dated today.
//
// @Summary      Create a journal entry
// @Tags         journal
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createJournalRequest  true  "Entry"
// @Success      201   {object}  journalEntryResponse
// @Failure      400   {object}  errorResponse
// @Router       /api/journal [post]
func (h *JournalHandler) CreateEntry(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req createJournalRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	entry, err := h.journalService.CreateEntry(c.Request().Context(), userID, ports.JournalEntryInput{
		Title:    req.Title,
		Content:  req.Content,
		Mood:     req.Mood,
		Emotions: req.Emotions,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, journalEntryResponse{Entry: *entry})
}

// ListEntries returns the user's entries, newest first. Soft-deleted entries
// are excluded.
//
// @Summary      List journal entries
// @Tags         journal
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Max entries (default 50)"
// @Success      200    {object}  journalListResponse
// @Router       /api/journal [get]
func (h *JournalHandler) ListEntries(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid limit")
		}
	}

	entries, err := h.journalService.ListEntries(c.Request().Context(), userID, limit)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, journalListResponse{Entries: entries, Count: len(entries)})
}

// SearchEntries filters entries by a case-insensitive match on title and
// content. An empty query behaves like a plain listing.
//
// @Summary      Search journal entries
// @Tags         journal
// @Produce      json
// @Security     BearerAuth
// @Param        q  query     string  false  "Search text"
// @Success      200  {object}  journalListResponse
// @Router       /api/journal/search [get]
func (h *JournalHandler) SearchEntries(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	entries, err := h.journalService.SearchEntries(c.Request().Context(), userID, c.QueryParam("q"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, journalListResponse{Entries: entries, Count: len(entries)})
}

// GetEntry returns a single entry owned by the caller.
//
// @Summary      Get a journal entry
// @Tags         journal
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Entry id"
// @Success      200  {object}  journalEntryResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/journal/{id} [get]
func (h *JournalHandler) GetEntry(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	entry, err := h.journalService.GetEntry(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, journalEntryResponse{Entry: *entry})
}

// UpdateEntry applies a partial update to an entry.
//
// @Summary      Update a journal entry
// @Tags         journal
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Entry id"
// @Param        body  body      updateJournalRequest  true  "Fields to change"
// @Success      200   {object}  journalEntryResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/journal/{id} [put]
func (h *JournalHandler) UpdateEntry(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req updateJournalRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	entry, err := h.journalService.UpdateEntry(c.Request().Context(), userID, c.Param("id"), domain.JournalUpdate{
		Title:    req.Title,
		Content:  req.Content,
		Mood:     req.Mood,
		Emotions: req.Emotions,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, journalEntryResponse{Entry: *entry})
}

// DeleteEntry soft-deletes an entry; it disappears from listings but can be
// restored.
//
// @Summary      Delete a journal entry
// @Tags         journal
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Entry id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/journal/{id} [delete]
func (h *JournalHandler) DeleteEntry(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	if err := h.journalService.DeleteEntry(c.Request().Context(), userID, c.Param("id")); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "Entry deleted"})
}

// RestoreEntry undoes a soft delete.
//
// @Summary      Restore a deleted journal entry
// @Tags         journal
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Entry id"
// @Success      200  {object}  journalEntryResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/journal/{id}/restore [post]
func (h *JournalHandler) RestoreEntry(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	entry, err := h.journalService.RestoreEntry(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, journalEntryResponse{Entry: *entry})
}
