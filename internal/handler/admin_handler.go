package handler

import (
	"net/http"
	"strings"

	"github.com/shiyas-dx/Project/internal/domain/model"
	repo "github.com/shiyas-dx/Project/internal/repository"
	"github.com/shiyas-dx/Project/internal/usecase"

	"github.com/labstack/echo/v4"
)

// dashboard and audit log
type AdminHandler struct {
	dashboard *usecase.DashboardUsecase
	audit     *usecase.AuditLogUsecase
}

func NewAdminHandler(dashboard *usecase.DashboardUsecase, audit *usecase.AuditLogUsecase) *AdminHandler {
	return &AdminHandler{dashboard: dashboard, audit: audit}
}

func (h *AdminHandler) RegisterRoutes(e *echo.Echo, g Guards) {
	admin := e.Group("/admin", g.Admin...)

	admin.GET("/dashboard", h.getDashboard)
	admin.GET("/audit-logs", h.listAuditLogs)
}

func (h *AdminHandler) getDashboard(c echo.Context) error {
	out, err := h.dashboard.Get(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminHandler) listAuditLogs(c echo.Context) error {
	f := repo.AuditLogFilter{}

	if v := strings.TrimSpace(c.QueryParam("action")); v != "" {
		a := model.AuditAction(strings.ToUpper(v))
		f.Action = &a
	}
	if v := strings.TrimSpace(c.QueryParam("resource_type")); v != "" {
		rt := model.AuditResourceType(strings.ToLower(v))
		f.ResourceType = &rt
	}

	var ok bool
	if f.ResourceID, ok = queryInt64(c, "resource_id"); !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid resource_id"})
	}
	if f.ActorUserID, ok = queryInt64(c, "actor_user_id"); !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid actor_user_id"})
	}
	if f.Limit, ok = queryInt(c, "limit"); !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
	}
	if f.Offset, ok = queryInt(c, "offset"); !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid offset"})
	}

	out, err := h.audit.List(c.Request().Context(), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
