package repository

import (
	"context"

	"github.com/shiyas-dx/Project/internal/domain/model"
)

type OrderItemRepository interface {
	CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error
	ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error)
	// ListByOrderIDs loads the items of many orders in one query.
	ListByOrderIDs(ctx context.Context, orderIDs []int64) ([]model.OrderItem, error)
	DeleteByOrderID(ctx context.Context, orderID int64) error
}
