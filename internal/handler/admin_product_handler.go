package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shiyas-dx/Project/internal/export"
	"github.com/shiyas-dx/Project/internal/middleware"
	"github.com/shiyas-dx/Project/internal/usecase"

	"github.com/labstack/echo/v4"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ProductRequest is used by POST, PUT and PATCH. Missing keys stay nil.
type ProductRequest struct {
	Name        *string         `json:"name"`
	Specs       *string         `json:"specs"`
	Description json.RawMessage `json:"description"`
	Brand       *string         `json:"brand"`
	Category    json.RawMessage `json:"category"`
	Price       *int64          `json:"price"`
	Rating      *float64        `json:"rating"`
	Quantity    *int64          `json:"quantity"`
	Image       *string         `json:"image"`
}

func (r ProductRequest) toInput() usecase.ProductInput {
	return usecase.ProductInput{
		Name:        r.Name,
		Specs:       r.Specs,
		Description: r.Description,
		Brand:       r.Brand,
		Category:    r.Category,
		Price:       r.Price,
		Rating:      r.Rating,
		Quantity:    r.Quantity,
		Image:       r.Image,
	}
}

type AdminProductHandler struct {
	uc *usecase.ProductUsecase
}

func NewAdminProductHandler(uc *usecase.ProductUsecase) *AdminProductHandler {
	return &AdminProductHandler{uc: uc}
}

func (h *AdminProductHandler) RegisterRoutes(e *echo.Echo, g Guards) {
	admin := e.Group("/products/admin", g.Admin...)

	admin.GET("", h.list)
	admin.POST("", h.create)
	admin.GET("/export", h.export)
	admin.GET("/:id", h.get)
	admin.PUT("/:id", h.replace)
	admin.PATCH("/:id", h.patch)
	admin.DELETE("/:id", h.delete)
}

func (h *AdminProductHandler) list(c echo.Context) error {
	out, err := h.uc.AdminList(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminProductHandler) get(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "Product not found"})
	}
	out, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminProductHandler) create(c echo.Context) error {
	adminID, ok := middleware.UserID(c)
	if !ok {
		return unauthorized(c)
	}

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}

	out, err := h.uc.AdminCreate(c.Request().Context(), adminID, req.toInput())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *AdminProductHandler) replace(c echo.Context) error {
	return h.update(c, false)
}

func (h *AdminProductHandler) patch(c echo.Context) error {
	return h.update(c, true)
}

func (h *AdminProductHandler) update(c echo.Context, partial bool) error {
	adminID, ok := middleware.UserID(c)
	if !ok {
		return unauthorized(c)
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "Product not found"})
	}

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}

	out, err := h.uc.AdminUpdate(c.Request().Context(), adminID, id, req.toInput(), partial)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminProductHandler) delete(c echo.Context) error {
	adminID, ok := middleware.UserID(c)
	if !ok {
		return unauthorized(c)
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "Product not found"})
	}

	if err := h.uc.AdminDelete(c.Request().Context(), adminID, id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AdminProductHandler) export(c echo.Context) error {
	products, err := h.uc.AdminList(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}

	var buf bytes.Buffer
	if err := export.WriteProductsXLSX(&buf, products); err != nil {
		return writeError(c, usecase.NewInternalError("export failed", err))
	}

	filename := fmt.Sprintf("products-%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Blob(http.StatusOK, xlsxContentType, buf.Bytes())
}
