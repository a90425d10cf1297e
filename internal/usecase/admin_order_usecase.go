package usecase

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/shiyas-dx/Project/internal/domain/model"
	repo "github.com/shiyas-dx/Project/internal/repository"
)

type AdminOrderUsecase struct {
	tx     repo.TransactionManager
	orders repo.OrderRepository
	items  repo.OrderItemRepository
	users  repo.UserRepository
	policy OrderPolicy
	events OrderEventPublisher
}

func NewAdminOrderUsecase(
	tx repo.TransactionManager,
	orders repo.OrderRepository,
	items repo.OrderItemRepository,
	users repo.UserRepository,
	policy OrderPolicy,
	events OrderEventPublisher,
) *AdminOrderUsecase {
	return &AdminOrderUsecase{
		tx:     tx,
		orders: orders,
		items:  items,
		users:  users,
		policy: policy,
		events: orEmptyPublisher(events),
	}
}

type AdminOrderProductOutput struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int64  `json:"quantity"`
}

type AdminOrderOutput struct {
	ID            int64                     `json:"id"`
	UserID        int64                     `json:"userId"`
	UserEmail     string                    `json:"userEmail"`
	Status        string                    `json:"status"`
	TotalAmount   int64                     `json:"total_amount"`
	PaymentMethod string                    `json:"payment_method"`
	Name          string                    `json:"name"`
	Address       string                    `json:"address"`
	Pincode       string                    `json:"pincode"`
	CreatedAt     time.Time                 `json:"created_at"`
	Products      []AdminOrderProductOutput `json:"products"`
}

// List returns every order newest-first. Items and owners are loaded in one query each.
func (u *AdminOrderUsecase) List(ctx context.Context, f repo.AdminOrderListFilter) ([]AdminOrderOutput, error) {
	switch model.OrderStatus(f.Status) {
	case "", model.OrderStatusPaid, model.OrderStatusCancelled:
	default:
		return []AdminOrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	orders, err := u.orders.ListAdmin(ctx, f)
	if err != nil {
		return []AdminOrderOutput{}, NewInternalError("db error", err)
	}

	orderIDs := make([]int64, 0, len(orders))
	userIDs := make([]int64, 0, len(orders))
	seenUser := map[int64]struct{}{}
	for _, o := range orders {
		orderIDs = append(orderIDs, o.ID)
		if _, ok := seenUser[o.UserID]; !ok {
			seenUser[o.UserID] = struct{}{}
			userIDs = append(userIDs, o.UserID)
		}
	}

	items, err := u.items.ListByOrderIDs(ctx, orderIDs)
	if err != nil {
		return []AdminOrderOutput{}, NewInternalError("db error", err)
	}
	users, err := u.users.FindByIDs(ctx, userIDs)
	if err != nil {
		return []AdminOrderOutput{}, NewInternalError("db error", err)
	}

	emails := make(map[int64]string, len(users))
	for _, usr := range users {
		emails[usr.ID] = usr.Email
	}
	byOrder := groupItems(items)

	out := make([]AdminOrderOutput, 0, len(orders))
	for _, o := range orders {
		out = append(out, toAdminOrderOutput(o, emails[o.UserID], byOrder[o.ID]))
	}
	return out, nil
}

// Cancel marks the order CANCELLED whatever its current status.
func (u *AdminOrderUsecase) Cancel(ctx context.Context, adminUserID int64, orderID int64) error {
	var order model.Order

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "Order not found")
		}
		if err != nil {
			return NewInternalError("db error", err)
		}
		order = o

		if u.policy.DecrementStock && o.Status == model.OrderStatusPaid {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewInternalError("db error", err)
			}
			for _, it := range items {
				err := r.Inventory().IncreaseStock(ctx, it.ProductID, it.Quantity)
				// a product deleted from the catalog has nothing to restock
				if err != nil && !errors.Is(err, repo.ErrNotFound) {
					return NewInternalError("db error", err)
				}
			}
		}

		if err := r.Orders().UpdateStatus(ctx, o.ID, model.OrderStatusCancelled); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusNotFound, "Order not found")
			}
			return NewInternalError("db error", err)
		}

		return writeAudit(ctx, r, adminUserID, model.AuditActionCancelOrder, model.AuditResourceOrder, o.ID,
			map[string]interface{}{"status": o.Status},
			map[string]interface{}{"status": model.OrderStatusCancelled},
		)
	})
	if err != nil {
		return err
	}

	u.events.PublishOrderEvent(OrderEvent{
		Type:        OrderEventCancelled,
		OrderID:     order.ID,
		UserID:      order.UserID,
		Status:      string(model.OrderStatusCancelled),
		TotalAmount: order.TotalAmount,
		At:          time.Now(),
	})
	return nil
}

// Reorder copies an order and its items into a new PAID order. The source is left untouched.
func (u *AdminOrderUsecase) Reorder(ctx context.Context, adminUserID int64, orderID int64) (AdminOrderOutput, error) {
	var (
		copyOrder model.Order
		copyItems []model.OrderItem
	)

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		src, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "Order not found")
		}
		if err != nil {
			return NewInternalError("db error", err)
		}

		srcItems, err := r.OrderItems().ListByOrderID(ctx, src.ID)
		if err != nil {
			return NewInternalError("db error", err)
		}

		copyOrder = model.Order{
			UserID:        src.UserID,
			TotalAmount:   src.TotalAmount,
			PaymentMethod: src.PaymentMethod,
			Name:          src.Name,
			Address:       src.Address,
			Pincode:       src.Pincode,
			Status:        model.OrderStatusPaid,
		}
		if err := r.Orders().Create(ctx, &copyOrder); err != nil {
			return NewInternalError("db error", err)
		}

		copyItems = make([]model.OrderItem, 0, len(srcItems))
		for _, it := range srcItems {
			copyItems = append(copyItems, model.OrderItem{
				ProductID:           it.ProductID,
				ProductNameSnapshot: it.ProductNameSnapshot,
				Quantity:            it.Quantity,
				Price:               it.Price,
			})
		}
		if err := r.OrderItems().CreateBulk(ctx, copyOrder.ID, copyItems); err != nil {
			return NewInternalError("db error", err)
		}

		return writeAudit(ctx, r, adminUserID, model.AuditActionReorder, model.AuditResourceOrder, copyOrder.ID,
			map[string]interface{}{"source_order_id": src.ID},
			map[string]interface{}{"order_id": copyOrder.ID, "items": len(copyItems)},
		)
	})
	if err != nil {
		return AdminOrderOutput{}, err
	}

	email := ""
	if owner, err := u.users.FindByID(ctx, copyOrder.UserID); err == nil && owner != nil {
		email = owner.Email
	}

	u.events.PublishOrderEvent(OrderEvent{
		Type:        OrderEventReordered,
		OrderID:     copyOrder.ID,
		UserID:      copyOrder.UserID,
		Status:      string(copyOrder.Status),
		TotalAmount: copyOrder.TotalAmount,
		At:          time.Now(),
	})

	return toAdminOrderOutput(copyOrder, email, copyItems), nil
}

// Delete removes the order and its items.
func (u *AdminOrderUsecase) Delete(ctx context.Context, adminUserID int64, orderID int64) error {
	var order model.Order

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "Order not found")
		}
		if err != nil {
			return NewInternalError("db error", err)
		}
		order = o

		if err := r.OrderItems().DeleteByOrderID(ctx, o.ID); err != nil {
			return NewInternalError("db error", err)
		}
		if err := r.Orders().Delete(ctx, o.ID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusNotFound, "Order not found")
			}
			return NewInternalError("db error", err)
		}

		return writeAudit(ctx, r, adminUserID, model.AuditActionDeleteOrder, model.AuditResourceOrder, o.ID,
			map[string]interface{}{"status": o.Status, "total_amount": o.TotalAmount, "user_id": o.UserID},
			nil,
		)
	})
	if err != nil {
		return err
	}

	u.events.PublishOrderEvent(OrderEvent{
		Type:        OrderEventDeleted,
		OrderID:     order.ID,
		UserID:      order.UserID,
		TotalAmount: order.TotalAmount,
		At:          time.Now(),
	})
	return nil
}

func toAdminOrderOutput(o model.Order, userEmail string, items []model.OrderItem) AdminOrderOutput {
	products := make([]AdminOrderProductOutput, 0, len(items))
	for _, it := range items {
		products = append(products, AdminOrderProductOutput{
			ID:       it.ProductID,
			Name:     it.ProductNameSnapshot,
			Price:    it.Price,
			Quantity: it.Quantity,
		})
	}

	return AdminOrderOutput{
		ID:            o.ID,
		UserID:        o.UserID,
		UserEmail:     userEmail,
		Status:        string(o.Status),
		TotalAmount:   o.TotalAmount,
		PaymentMethod: o.PaymentMethod,
		Name:          o.Name,
		Address:       o.Address,
		Pincode:       o.Pincode,
		CreatedAt:     o.CreatedAt,
		Products:      products,
	}
}
