package repository

import "context"

// TxRepos exposes repositories bound to one transaction.
type TxRepos interface {
	Users() UserRepository
	Products() ProductRepository
	Inventory() InventoryRepository
	Carts() CartRepository
	Wishlists() WishlistRepository
	Orders() OrderRepository
	OrderItems() OrderItemRepository
	RefreshTokens() RefreshTokenRepository
	Outbox() OutboxRepository
	AuditLogs() AuditLogRepository
}

// TransactionManager hides begin/commit/rollback from usecases.
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error
}
