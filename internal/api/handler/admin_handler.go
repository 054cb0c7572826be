package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mindhaven/wellness-api/internal/core/ports"
)

// AdminHandler exposes the role-gated system views.
type AdminHandler struct {
	adminService ports.AdminService
}

func NewAdminHandler(adminService ports.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

type adminUsersResponse struct {
	Users []userView `json:"users"`
	Count int        `json:"count"`
}

// ListUsers returns every account in sanitized form.
//
// @Summary      List all users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  adminUsersResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.adminService.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}

	views := make([]userView, 0, len(users))
	for i := range users {
		views = append(views, toUserView(&users[i]))
	}

	return c.JSON(http.StatusOK, adminUsersResponse{Users: views, Count: len(views)})
}

// Stats returns the system-wide aggregate counters.
//
// @Summary      System statistics
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.SystemStats
// @Failure      403  {object}  errorResponse
// @Router       /api/admin/stats [get]
func (h *AdminHandler) Stats(c echo.Context) error {
	stats, err := h.adminService.Stats(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, stats)
}
