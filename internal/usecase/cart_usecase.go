package usecase

import (
	"context"
	"errors"
	"net/http"

	"github.com/shiyas-dx/Project/internal/domain/model"
	repo "github.com/shiyas-dx/Project/internal/repository"
)

const (
	msgProductIDRequired = "product_id is required"
	msgBadQuantity       = "quantity must be a positive integer"
	msgProductNotFound   = "Product not found"
)

type CartUsecase struct {
	carts    repo.CartRepository
	products repo.ProductRepository
}

func NewCartUsecase(carts repo.CartRepository, products repo.ProductRepository) *CartUsecase {
	return &CartUsecase{carts: carts, products: products}
}

type CartItemOutput struct {
	ID        int64         `json:"id"`
	ProductID int64         `json:"product_id"`
	Quantity  int64         `json:"quantity"`
	Product   model.Product `json:"product"`
}

type AddCartInput struct {
	ProductID int64
	Quantity  int64
}

type AddCartOutput struct {
	Message   string `json:"message"`
	ProductID int64  `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

func (u *CartUsecase) List(ctx context.Context, userID int64) ([]CartItemOutput, error) {
	if userID <= 0 {
		return []CartItemOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	items, err := u.carts.ListByUserID(ctx, userID)
	if err != nil {
		return []CartItemOutput{}, NewInternalError("Failed to fetch cart items", err)
	}

	out := make([]CartItemOutput, 0, len(items))
	for _, it := range items {
		// a line whose product was removed from the catalog is not shown
		if it.Product == nil {
			continue
		}
		out = append(out, CartItemOutput{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Product:   *it.Product,
		})
	}
	return out, nil
}

// Add accumulates quantity on the user's line for the product.
func (u *CartUsecase) Add(ctx context.Context, userID int64, in AddCartInput) (AddCartOutput, error) {
	if userID <= 0 {
		return AddCartOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.ProductID <= 0 {
		return AddCartOutput{}, NewHTTPError(http.StatusBadRequest, msgProductIDRequired)
	}
	if in.Quantity < 1 {
		return AddCartOutput{}, NewHTTPError(http.StatusBadRequest, msgBadQuantity)
	}

	if err := u.ensureProduct(ctx, in.ProductID, "Failed to add item to cart"); err != nil {
		return AddCartOutput{}, err
	}

	item, err := u.carts.AddQuantity(ctx, userID, in.ProductID, in.Quantity)
	if err != nil {
		return AddCartOutput{}, NewInternalError("Failed to add item to cart", err)
	}

	return AddCartOutput{
		Message:   "Added to cart successfully",
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
	}, nil
}

func (u *CartUsecase) Remove(ctx context.Context, userID int64, productID int64) (string, error) {
	if userID <= 0 {
		return "", NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return "", NewHTTPError(http.StatusBadRequest, msgProductIDRequired)
	}

	if err := u.ensureProduct(ctx, productID, "Failed to remove item from cart"); err != nil {
		return "", err
	}

	err := u.carts.Delete(ctx, userID, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return "", NewHTTPError(http.StatusNotFound, "Item not found in cart")
	}
	if err != nil {
		return "", NewInternalError("Failed to remove item from cart", err)
	}
	return "Removed from cart successfully", nil
}

func (u *CartUsecase) ensureProduct(ctx context.Context, productID int64, failMsg string) error {
	_, err := u.products.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, msgProductNotFound)
	}
	if err != nil {
		return NewInternalError(failMsg, err)
	}
	return nil
}
