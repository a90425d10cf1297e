package repository

import "context"

type InventoryRepository interface {
	// DecreaseStockIfEnough reports false when stock would go negative.
	DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error)

	// IncreaseStock puts stock back, e.g. on cancel.
	IncreaseStock(ctx context.Context, productID int64, qty int64) error
}
