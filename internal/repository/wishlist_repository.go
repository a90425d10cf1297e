package repository

import (
	"context"

	"github.com/shiyas-dx/Project/internal/domain/model"
)

type WishlistRepository interface {
	ListByUserID(ctx context.Context, userID int64) ([]model.WishlistItem, error)
	// Toggle removes the entry when present, otherwise adds it. It reports whether the entry now exists.
	Toggle(ctx context.Context, userID int64, productID int64) (bool, error)
	Delete(ctx context.Context, userID int64, productID int64) error
	DeleteByProductID(ctx context.Context, productID int64) error
}
