package usecase

import (
	"context"
	"errors"
	"net/http"

	"github.com/shiyas-dx/Project/internal/domain/model"
	repo "github.com/shiyas-dx/Project/internal/repository"
)

type WishlistUsecase struct {
	wishlists repo.WishlistRepository
	products  repo.ProductRepository
}

func NewWishlistUsecase(wishlists repo.WishlistRepository, products repo.ProductRepository) *WishlistUsecase {
	return &WishlistUsecase{wishlists: wishlists, products: products}
}

type WishlistItemOutput struct {
	ID        int64         `json:"id"`
	ProductID int64         `json:"product_id"`
	Product   model.Product `json:"product"`
}

type ToggleWishlistOutput struct {
	Message string `json:"message"`
	// Added is true when the product is in the wishlist after the call.
	Added bool `json:"added"`
}

func (u *WishlistUsecase) List(ctx context.Context, userID int64) ([]WishlistItemOutput, error) {
	if userID <= 0 {
		return []WishlistItemOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	items, err := u.wishlists.ListByUserID(ctx, userID)
	if err != nil {
		return []WishlistItemOutput{}, NewInternalError("Failed to fetch wishlist items", err)
	}

	out := make([]WishlistItemOutput, 0, len(items))
	for _, it := range items {
		if it.Product == nil {
			continue
		}
		out = append(out, WishlistItemOutput{ID: it.ID, ProductID: it.ProductID, Product: *it.Product})
	}
	return out, nil
}

func (u *WishlistUsecase) Toggle(ctx context.Context, userID int64, productID int64) (ToggleWishlistOutput, error) {
	if userID <= 0 {
		return ToggleWishlistOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return ToggleWishlistOutput{}, NewHTTPError(http.StatusBadRequest, msgProductIDRequired)
	}
	if err := u.ensureProduct(ctx, productID, "Wishlist operation failed"); err != nil {
		return ToggleWishlistOutput{}, err
	}

	added, err := u.wishlists.Toggle(ctx, userID, productID)
	if err != nil {
		return ToggleWishlistOutput{}, NewInternalError("Wishlist operation failed", err)
	}
	if added {
		return ToggleWishlistOutput{Message: "Added to wishlist", Added: true}, nil
	}
	return ToggleWishlistOutput{Message: "Removed from wishlist", Added: false}, nil
}

func (u *WishlistUsecase) Remove(ctx context.Context, userID int64, productID int64) (string, error) {
	if userID <= 0 {
		return "", NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return "", NewHTTPError(http.StatusBadRequest, msgProductIDRequired)
	}
	if err := u.ensureProduct(ctx, productID, "Failed to remove item from wishlist"); err != nil {
		return "", err
	}

	err := u.wishlists.Delete(ctx, userID, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return "", NewHTTPError(http.StatusNotFound, "Item not found in wishlist")
	}
	if err != nil {
		return "", NewInternalError("Failed to remove item from wishlist", err)
	}
	return "Removed from wishlist successfully", nil
}

func (u *WishlistUsecase) ensureProduct(ctx context.Context, productID int64, failMsg string) error {
	_, err := u.products.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, msgProductNotFound)
	}
	if err != nil {
		return NewInternalError(failMsg, err)
	}
	return nil
}
