package handler

import (
	"net/http"

	"github.com/shiyas-dx/Project/internal/middleware"
	"github.com/shiyas-dx/Project/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AdminUserHandler struct {
	uc *usecase.AdminUserUsecase
}

func NewAdminUserHandler(uc *usecase.AdminUserUsecase) *AdminUserHandler {
	return &AdminUserHandler{uc: uc}
}

// only present keys are applied
type EditUserRequest struct {
	FirstName *string `json:"firstname"`
	Username  *string `json:"username"`
	Email     *string `json:"email"`
}

func (h *AdminUserHandler) RegisterRoutes(e *echo.Echo, g Guards) {
	users := e.Group("/users", g.Admin...)

	users.GET("", h.list)
	users.PATCH("/:id/block", h.toggleBlock)
	users.PATCH("/:id/edit", h.edit)
	users.GET("/:id/orders", h.orders)
}

func (h *AdminUserHandler) list(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeDetailError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminUserHandler) toggleBlock(c echo.Context) error {
	adminID, ok := middleware.UserID(c)
	if !ok {
		return unauthorized(c)
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusNotFound, DetailResponse{Detail: "User not found"})
	}

	out, err := h.uc.ToggleBlock(c.Request().Context(), adminID, id)
	if err != nil {
		return writeDetailError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminUserHandler) edit(c echo.Context) error {
	adminID, ok := middleware.UserID(c)
	if !ok {
		return unauthorized(c)
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusNotFound, DetailResponse{Detail: "User not found"})
	}

	var req EditUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, DetailResponse{Detail: "invalid body"})
	}

	out, err := h.uc.Edit(c.Request().Context(), adminID, id, usecase.EditUserInput{
		FirstName: req.FirstName,
		Username:  req.Username,
		Email:     req.Email,
	})
	if err != nil {
		return writeDetailError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminUserHandler) orders(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusNotFound, DetailResponse{Detail: "User not found"})
	}

	out, err := h.uc.ListOrders(c.Request().Context(), id)
	if err != nil {
		return writeDetailError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
