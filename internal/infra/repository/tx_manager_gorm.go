package repository

import (
	"context"

	repo "github.com/shiyas-dx/Project/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	users         repo.UserRepository
	products      repo.ProductRepository
	inventory     repo.InventoryRepository
	carts         repo.CartRepository
	wishlists     repo.WishlistRepository
	orders        repo.OrderRepository
	orderItems    repo.OrderItemRepository
	refreshTokens repo.RefreshTokenRepository
	outbox        repo.OutboxRepository
	auditLogs     repo.AuditLogRepository
}

func (r *txReposGorm) Users() repo.UserRepository                 { return r.users }
func (r *txReposGorm) Products() repo.ProductRepository           { return r.products }
func (r *txReposGorm) Inventory() repo.InventoryRepository        { return r.inventory }
func (r *txReposGorm) Carts() repo.CartRepository                 { return r.carts }
func (r *txReposGorm) Wishlists() repo.WishlistRepository         { return r.wishlists }
func (r *txReposGorm) Orders() repo.OrderRepository               { return r.orders }
func (r *txReposGorm) OrderItems() repo.OrderItemRepository       { return r.orderItems }
func (r *txReposGorm) RefreshTokens() repo.RefreshTokenRepository { return r.refreshTokens }
func (r *txReposGorm) Outbox() repo.OutboxRepository              { return r.outbox }
func (r *txReposGorm) AuditLogs() repo.AuditLogRepository         { return r.auditLogs }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// every repository is rebuilt on the tx handle
		return fn(newTxRepos(tx))
	})
}

func newTxRepos(tx *gorm.DB) *txReposGorm {
	return &txReposGorm{
		users:         NewUserGormRepository(tx),
		products:      NewProductGormRepository(tx),
		inventory:     NewInventoryGormRepository(tx),
		carts:         NewCartGormRepository(tx),
		wishlists:     NewWishlistGormRepository(tx),
		orders:        NewOrderGormRepository(tx),
		orderItems:    NewOrderItemGormRepository(tx),
		refreshTokens: NewRefreshTokenRepository(tx),
		outbox:        NewOutboxGormRepository(tx),
		auditLogs:     NewAuditLogGormRepository(tx),
	}
}
