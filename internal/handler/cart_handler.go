package handler

import (
	"net/http"

	"github.com/shiyas-dx/Project/internal/middleware"
	"github.com/shiyas-dx/Project/internal/usecase"

	"github.com/labstack/echo/v4"
)

type CartHandler struct {
	uc *usecase.CartUsecase
}

func NewCartHandler(uc *usecase.CartUsecase) *CartHandler {
	return &CartHandler{uc: uc}
}

type AddCartRequest struct {
	ProductID FlexInt `json:"product_id"`
	Quantity  FlexInt `json:"quantity"`
}

type CartProductRequest struct {
	ProductID FlexInt `json:"product_id"`
}

func (h *CartHandler) RegisterRoutes(e *echo.Echo, g Guards) {
	cart := e.Group("/cart", g.User...)

	cart.GET("", h.list)
	cart.POST("/add", h.add)
	cart.POST("/remove", h.remove)
}

func (h *CartHandler) list(c echo.Context) error {
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

func (h *CartHandler) add(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return unauthorized(c)
	}

	var req AddCartRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}

	out, err := h.uc.Add(c.Request().Context(), userID, usecase.AddCartInput{
		ProductID: req.ProductID.Or(0, 0),
		Quantity:  req.Quantity.Or(1, 0),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) remove(c echo.Context) error {
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
