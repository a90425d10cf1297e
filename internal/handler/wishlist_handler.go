package handler

import (
	"net/http"

	"github.com/shiyas-dx/Project/internal/middleware"
	"github.com/shiyas-dx/Project/internal/usecase"

	"github.com/labstack/echo/v4"
)

type WishlistHandler struct {
	uc *usecase.WishlistUsecase
}

func NewWishlistHandler(uc *usecase.WishlistUsecase) *WishlistHandler {
	return &WishlistHandler{uc: uc}
}

func (h *WishlistHandler) RegisterRoutes(e *echo.Echo, g Guards) {
	wl := e.Group("/wishlist", g.User...)

	wl.GET("", h.list)
	wl.POST("/toggle", h.toggle)
	wl.POST("/remove", h.remove)
}

func (h *WishlistHandler) list(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return unauthorized(c)
	}

	out, err := h.uc.List(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *WishlistHandler) toggle(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return unauthorized(c)
	}

	var req CartProductRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}

	out, err := h.uc.Toggle(c.Request().Context(), userID, req.ProductID.Or(0, 0))
	if err != nil {
		return writeError(c, err)
	}
	status := http.StatusOK
	if out.Added {
		status = http.StatusCreated
	}
	return c.JSON(status, out)
}

func (h *WishlistHandler) remove(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return unauthorized(c)
	}

	var req CartProductRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}

	msg, err := h.uc.Remove(c.Request().Context(), userID, req.ProductID.Or(0, 0))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: msg})
}
