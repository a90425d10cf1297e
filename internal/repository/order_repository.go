package repository

import (
	"context"

	"github.com/shiyas-dx/Project/internal/domain/model"
)

type AdminOrderListFilter struct {
	Status string
	UserID *int64
}

type OrderRepository interface {
	// Create fills order.ID.
	Create(ctx context.Context, order *model.Order) error
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	// ListByUserID returns the user's orders newest-first.
	ListByUserID(ctx context.Context, userID int64) ([]model.Order, error)
	// ListAdmin lists orders for the admin views.
	ListAdmin(ctx context.Context, f AdminOrderListFilter) ([]model.Order, error)
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
	Delete(ctx context.Context, orderID int64) error
}
