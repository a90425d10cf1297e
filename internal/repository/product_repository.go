package repository

import (
	"context"

	"github.com/shiyas-dx/Project/internal/domain/model"
)

type ProductListQuery struct {
	// Search matches name or brand, case-insensitively.
	Search string
}

type ProductRepository interface {
	// List returns products newest-first.
	List(ctx context.Context, q ProductListQuery) ([]model.Product, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)
	FindByIDs(ctx context.Context, ids []int64) ([]model.Product, error)
	Count(ctx context.Context) (int64, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	SoftDelete(ctx context.Context, id int64) error
}
