package server

import (
	"net/http"

	"github.com/shiyas-dx/Project/internal/handler"

	"github.com/labstack/echo/v4"
)

type Handlers struct {
	Auth         *handler.AuthHandler
	Products     *handler.ProductHandler
	AdminProduct *handler.AdminProductHandler
	Cart         *handler.CartHandler
	Wishlist     *handler.WishlistHandler
	Orders       *handler.OrderHandler
	AdminOrders  *handler.AdminOrderHandler
	AdminUsers   *handler.AdminUserHandler
	Admin        *handler.AdminHandler
	Metrics      http.Handler
}

func RegisterRoutes(e *echo.Echo, h Handlers, g handler.Guards) {
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	if h.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(h.Metrics))
	}

	h.Auth.RegisterRoutes(e, g)
	h.Products.RegisterRoutes(e)
	h.AdminProduct.RegisterRoutes(e, g)
	h.Cart.RegisterRoutes(e, g)
	h.Wishlist.RegisterRoutes(e, g)
	h.Orders.RegisterRoutes(e, g)
	h.AdminOrders.RegisterRoutes(e, g)
	h.AdminUsers.RegisterRoutes(e, g)
	h.Admin.RegisterRoutes(e, g)
}
