package repository

import (
	"context"

	"github.com/shiyas-dx/Project/internal/domain/model"
)

// Every method is scoped by the owning user.
type CartRepository interface {
	// ListByUserID returns the user's lines with the current product attached.
	ListByUserID(ctx context.Context, userID int64) ([]model.CartItem, error)
	// AddQuantity inserts the line or adds qty to the existing one in a single statement.
	AddQuantity(ctx context.Context, userID int64, productID int64, qty int64) (model.CartItem, error)
	// Delete returns ErrNotFound when the user has no line for the product.
	Delete(ctx context.Context, userID int64, productID int64) error
	DeleteAllByUserID(ctx context.Context, userID int64) (int64, error)
	DeleteByProductID(ctx context.Context, productID int64) error
}
