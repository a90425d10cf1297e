package handler

import (
	"net/http"

	"github.com/shiyas-dx/Project/internal/middleware"
	"github.com/shiyas-dx/Project/internal/usecase"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	uc      *usecase.OrderUsecase
	adminUC *usecase.AdminOrderUsecase
}

func NewOrderHandler(uc *usecase.OrderUsecase, adminUC *usecase.AdminOrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc, adminUC: adminUC}
}

type OrderItemRequest struct {
	Product  FlexInt `json:"product"`
	Quantity FlexInt `json:"quantity"`
	Price    FlexInt `json:"price"`
}

type CreateOrderRequest struct {
	TotalAmount   FlexInt            `json:"total_amount"`
	PaymentMethod string             `json:"payment_method"`
	Name          string             `json:"name"`
	Address       string             `json:"address"`
	Pincode       string             `json:"pincode"`
	Items         []OrderItemRequest `json:"items"`
}

func (r CreateOrderRequest) toInput() usecase.CreateOrderInput {
	in := usecase.CreateOrderInput{
		PaymentMethod: r.PaymentMethod,
		Name:          r.Name,
		Address:       r.Address,
		Pincode:       r.Pincode,
		Items:         make([]usecase.CreateOrderItemInput, 0, len(r.Items)),
	}
	if r.TotalAmount.Set {
		v := r.TotalAmount.Or(0, -1)
		in.TotalAmount = &v
	}
	for _, it := range r.Items {
		item := usecase.CreateOrderItemInput{
			ProductID: it.Product.Or(0, 0),
			Quantity:  it.Quantity.Or(0, 0),
		}
		if it.Price.Set {
			v := it.Price.Or(0, -1)
			item.Price = &v
		}
		in.Items = append(in.Items, item)
	}
	return in
}

// /orders plus the admin actions mounted under /orders/admin/orders.
func (h *OrderHandler) RegisterRoutes(e *echo.Echo, g Guards) {
	orders := e.Group("/orders", g.User...)
	orders.POST("/create", h.create)
	orders.GET("", h.list)
	orders.GET("/:id", h.detail)

	admin := e.Group("/orders/admin/orders", g.Admin...)
	admin.PATCH("/:id/cancel", h.cancel)
	admin.POST("/:id/reorder", h.reorder)
	admin.DELETE("/:id/delete", h.delete)
}

func (h *OrderHandler) create(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return unauthorized(c)
	}

	var req CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}

	out, err := h.uc.Create(c.Request().Context(), userID, req.toInput())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *OrderHandler) list(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return unauthorized(c)
	}

	out, err := h.uc.ListMine(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) detail(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return unauthorized(c)
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "Order not found"})
	}

	out, err := h.uc.GetMine(c.Request().Context(), userID, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) cancel(c echo.Context) error {
	return cancelOrder(c, h.adminUC)
}

func (h *OrderHandler) reorder(c echo.Context) error {
	adminID, ok := middleware.UserID(c)
	if !ok {
		return unauthorized(c)
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "Order not found"})
	}

	out, err := h.adminUC.Reorder(c.Request().Context(), adminID, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *OrderHandler) delete(c echo.Context) error {
	adminID, ok := middleware.UserID(c)
	if !ok {
		return unauthorized(c)
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "Order not found"})
	}

	if err := h.adminUC.Delete(c.Request().Context(), adminID, id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "Order deleted successfully"})
}

// cancelOrder is shared by both admin cancel routes.
func cancelOrder(c echo.Context, uc *usecase.AdminOrderUsecase) error {
	adminID, ok := middleware.UserID(c)
	if !ok {
		return unauthorized(c)
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "Order not found"})
	}

	if err := uc.Cancel(c.Request().Context(), adminID, id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "Order cancelled successfully"})
}
