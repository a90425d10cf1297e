package usecase

import (
	"context"

	repo "github.com/shiyas-dx/Project/internal/repository"
)

type DashboardUsecase struct {
	users    repo.UserRepository
	products repo.ProductRepository
	orders   repo.OrderRepository
	items    repo.OrderItemRepository
}

func NewDashboardUsecase(
	users repo.UserRepository,
	products repo.ProductRepository,
	orders repo.OrderRepository,
	items repo.OrderItemRepository,
) *DashboardUsecase {
	return &DashboardUsecase{users: users, products: products, orders: orders, items: items}
}

type DashboardUser struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

type DashboardProduct struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

type DashboardOrder struct {
	ID        int64                     `json:"id"`
	UserEmail string                    `json:"user_email"`
	Products  []AdminOrderProductOutput `json:"products"`
}

type DashboardOutput struct {
	Users    []DashboardUser    `json:"users"`
	Products []DashboardProduct `json:"products"`
	Orders   []DashboardOrder   `json:"orders"`
}

// Get issues one query per relation regardless of how many orders exist.
func (u *DashboardUsecase) Get(ctx context.Context) (DashboardOutput, error) {
	users, err := u.users.ListNewestFirst(ctx)
	if err != nil {
		return DashboardOutput{}, NewInternalError("db error", err)
	}
	products, err := u.products.List(ctx, repo.ProductListQuery{})
	if err != nil {
		return DashboardOutput{}, NewInternalError("db error", err)
	}
	orders, err := u.orders.ListAdmin(ctx, repo.AdminOrderListFilter{})
	if err != nil {
		return DashboardOutput{}, NewInternalError("db error", err)
	}

	orderIDs := make([]int64, 0, len(orders))
	for _, o := range orders {
		orderIDs = append(orderIDs, o.ID)
	}
	items, err := u.items.ListByOrderIDs(ctx, orderIDs)
	if err != nil {
		return DashboardOutput{}, NewInternalError("db error", err)
	}

	out := DashboardOutput{
		Users:    make([]DashboardUser, 0, len(users)),
		Products: make([]DashboardProduct, 0, len(products)),
		Orders:   make([]DashboardOrder, 0, len(orders)),
	}

	emails := make(map[int64]string, len(users))
	for _, usr := range users {
		emails[usr.ID] = usr.Email
		out.Users = append(out.Users, DashboardUser{ID: usr.ID, Email: usr.Email})
	}
	for _, p := range products {
		out.Products = append(out.Products, DashboardProduct{ID: p.ID, Name: p.Name, Price: p.Price})
	}

	byOrder := groupItems(items)
	for _, o := range orders {
		view := toAdminOrderOutput(o, emails[o.UserID], byOrder[o.ID])
		out.Orders = append(out.Orders, DashboardOrder{ID: o.ID, UserEmail: view.UserEmail, Products: view.Products})
	}
	return out, nil
}
