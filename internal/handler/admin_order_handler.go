package handler

import (
	"net/http"
	"strings"

	"github.com/shiyas-dx/Project/internal/middleware"
	repo "github.com/shiyas-dx/Project/internal/repository"
	"github.com/shiyas-dx/Project/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// OrderStream serves the live admin order feed.
type OrderStream interface {
	ServeWS(w http.ResponseWriter, r *http.Request) error
}

type AdminOrderHandler struct {
	uc     *usecase.AdminOrderUsecase
	stream OrderStream
}

func NewAdminOrderHandler(uc *usecase.AdminOrderUsecase, stream OrderStream) *AdminOrderHandler {
	return &AdminOrderHandler{uc: uc, stream: stream}
}

func (h *AdminOrderHandler) RegisterRoutes(e *echo.Echo, g Guards) {
	admin := e.Group("/admin/orders", g.Admin...)

	admin.GET("", h.list)
	admin.PATCH("/:id/cancel", h.cancel)
	if h.stream != nil {
		admin.GET("/stream", h.streamOrders)
	}
}

func (h *AdminOrderHandler) list(c echo.Context) error {
	userID, ok := queryInt64(c, "user_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid user_id"})
	}

	out, err := h.uc.List(c.Request().Context(), repo.AdminOrderListFilter{
		Status: strings.ToUpper(strings.TrimSpace(c.QueryParam("status"))),
		UserID: userID,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminOrderHandler) cancel(c echo.Context) error {
	return cancelOrder(c, h.uc)
}

func (h *AdminOrderHandler) streamOrders(c echo.Context) error {
	if err := h.stream.ServeWS(c.Response(), c.Request()); err != nil {
		// the upgrader has already written the HTTP error
		middleware.Logger(c, logrus.StandardLogger()).WithError(err).Warn("order stream upgrade failed")
	}
	return nil
}
