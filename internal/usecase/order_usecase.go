package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shiyas-dx/Project/internal/domain/model"
	repo "github.com/shiyas-dx/Project/internal/repository"
)

// OrderPolicy toggles the checks applied when an order is placed.
type OrderPolicy struct {
	// VerifyPrices rejects orders whose unit prices or total differ from the catalog.
	VerifyPrices bool
	// DecrementStock takes ordered quantities out of stock and returns them on cancel.
	DecrementStock bool
}

type OrderUsecase struct {
	tx     repo.TransactionManager
	orders repo.OrderRepository
	items  repo.OrderItemRepository
	policy OrderPolicy
	events OrderEventPublisher
}

func NewOrderUsecase(
	tx repo.TransactionManager,
	orders repo.OrderRepository,
	items repo.OrderItemRepository,
	policy OrderPolicy,
	events OrderEventPublisher,
) *OrderUsecase {
	return &OrderUsecase{
		tx:     tx,
		orders: orders,
		items:  items,
		policy: policy,
		events: orEmptyPublisher(events),
	}
}

// Price is nil when the line did not carry one.
type CreateOrderItemInput struct {
	ProductID int64
	Quantity  int64
	Price     *int64
}

type CreateOrderInput struct {
	TotalAmount   *int64
	PaymentMethod string
	Name          string
	Address       string
	Pincode       string
	Items         []CreateOrderItemInput
}

type CreateOrderOutput struct {
	Message string `json:"message"`
	OrderID int64  `json:"order_id"`
}

type OrderItemOutput struct {
	ProductID   int64  `json:"product"`
	ProductName string `json:"product_name"`
	Quantity    int64  `json:"quantity"`
	Price       int64  `json:"price"`
}

type OrderOutput struct {
	ID            int64             `json:"id"`
	TotalAmount   int64             `json:"total_amount"`
	PaymentMethod string            `json:"payment_method"`
	Name          string            `json:"name"`
	Address       string            `json:"address"`
	Pincode       string            `json:"pincode"`
	Status        string            `json:"status"`
	CreatedAt     time.Time         `json:"created_at"`
	Items         []OrderItemOutput `json:"items"`
}

// Create places an order and empties the user's cart in one transaction.
func (u *OrderUsecase) Create(ctx context.Context, userID int64, in CreateOrderInput) (CreateOrderOutput, error) {
	if userID <= 0 {
		return CreateOrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if fields := validateOrderInput(&in); len(fields) > 0 {
		return CreateOrderOutput{}, NewValidationError("validation error", fields)
	}

	var created model.Order
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		products, err := r.Products().FindByIDs(ctx, distinctProductIDs(in.Items))
		if err != nil {
			return NewInternalError("Failed to place order", err)
		}
		byID := make(map[int64]model.Product, len(products))
		for _, p := range products {
			byID[p.ID] = p
		}

		fields := map[string]string{}
		var computed int64
		for i, it := range in.Items {
			p, ok := byID[it.ProductID]
			if !ok {
				fields[fmt.Sprintf("items[%d].product", i)] = fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", it.ProductID)
				continue
			}
			if u.policy.VerifyPrices && *it.Price != p.Price {
				fields[fmt.Sprintf("items[%d].price", i)] = "Price does not match the catalog."
			}
			computed += *it.Price * it.Quantity
		}
		if u.policy.VerifyPrices && len(fields) == 0 && computed != *in.TotalAmount {
			fields["total_amount"] = "Total does not match the order items."
		}
		if len(fields) > 0 {
			return NewValidationError("validation error", fields)
		}

		if u.policy.DecrementStock {
			for i, it := range in.Items {
				ok, err := r.Inventory().DecreaseStockIfEnough(ctx, it.ProductID, it.Quantity)
				if err != nil {
					return NewInternalError("Failed to place order", err)
				}
				if !ok {
					return NewValidationError("validation error", map[string]string{
						fmt.Sprintf("items[%d].quantity", i): "Not enough stock.",
					})
				}
			}
		}

		created = model.Order{
			UserID:        userID,
			TotalAmount:   *in.TotalAmount,
			PaymentMethod: in.PaymentMethod,
			Name:          in.Name,
			Address:       in.Address,
			Pincode:       in.Pincode,
			Status:        model.OrderStatusPaid,
		}
		if err := r.Orders().Create(ctx, &created); err != nil {
			return NewInternalError("Failed to place order", err)
		}

		items := make([]model.OrderItem, 0, len(in.Items))
		for _, it := range in.Items {
			items = append(items, model.OrderItem{
				ProductID:           it.ProductID,
				ProductNameSnapshot: byID[it.ProductID].Name,
				Quantity:            it.Quantity,
				Price:               *it.Price,
			})
		}
		if err := r.OrderItems().CreateBulk(ctx, created.ID, items); err != nil {
			return NewInternalError("Failed to place order", err)
		}

		// the whole cart is cleared, not only the ordered products
		if _, err := r.Carts().DeleteAllByUserID(ctx, userID); err != nil {
			return NewInternalError("Failed to place order", err)
		}
		return nil
	})
	if err != nil {
		return CreateOrderOutput{}, err
	}

	u.events.PublishOrderEvent(OrderEvent{
		Type:        OrderEventCreated,
		OrderID:     created.ID,
		UserID:      userID,
		Status:      string(created.Status),
		TotalAmount: created.TotalAmount,
		At:          time.Now(),
	})

	return CreateOrderOutput{Message: "Order placed successfully", OrderID: created.ID}, nil
}

func (u *OrderUsecase) ListMine(ctx context.Context, userID int64) ([]OrderOutput, error) {
	if userID <= 0 {
		return []OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	return listOrdersWithItems(ctx, u.orders, u.items, userID)
}

func (u *OrderUsecase) GetMine(ctx context.Context, userID int64, orderID int64) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	o, err := u.orders.FindByID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return OrderOutput{}, NewHTTPError(http.StatusNotFound, "Order not found")
	}
	if err != nil {
		return OrderOutput{}, NewInternalError("db error", err)
	}
	if o.UserID != userID {
		// someone else's order looks exactly like a missing one
		return OrderOutput{}, NewHTTPError(http.StatusNotFound, "Order not found")
	}

	items, err := u.items.ListByOrderID(ctx, orderID)
	if err != nil {
		return OrderOutput{}, NewInternalError("db error", err)
	}
	return toOrderOutput(o, items), nil
}

func listOrdersWithItems(ctx context.Context, orders repo.OrderRepository, itemRepo repo.OrderItemRepository, userID int64) ([]OrderOutput, error) {
	list, err := orders.ListByUserID(ctx, userID)
	if err != nil {
		return []OrderOutput{}, NewInternalError("db error", err)
	}

	ids := make([]int64, 0, len(list))
	for _, o := range list {
		ids = append(ids, o.ID)
	}
	items, err := itemRepo.ListByOrderIDs(ctx, ids)
	if err != nil {
		return []OrderOutput{}, NewInternalError("db error", err)
	}
	byOrder := groupItems(items)

	out := make([]OrderOutput, 0, len(list))
	for _, o := range list {
		out = append(out, toOrderOutput(o, byOrder[o.ID]))
	}
	return out, nil
}

func validateOrderInput(in *CreateOrderInput) map[string]string {
	fields := map[string]string{}

	in.PaymentMethod = strings.TrimSpace(in.PaymentMethod)
	in.Name = strings.TrimSpace(in.Name)
	in.Address = strings.TrimSpace(in.Address)
	in.Pincode = strings.TrimSpace(in.Pincode)

	checkText := func(field, v string, max int) {
		switch {
		case v == "":
			fields[field] = "This field is required."
		case max > 0 && len(v) > max:
			fields[field] = fmt.Sprintf("Ensure this field has no more than %d characters.", max)
		}
	}
	checkText("payment_method", in.PaymentMethod, 50)
	checkText("name", in.Name, 255)
	checkText("address", in.Address, 0)
	checkText("pincode", in.Pincode, 10)

	if in.TotalAmount == nil {
		fields["total_amount"] = "This field is required."
	} else if *in.TotalAmount < 0 {
		fields["total_amount"] = "Ensure this value is greater than or equal to 0."
	}

	if len(in.Items) == 0 {
		fields["items"] = "At least one item is required."
	}
	for i, it := range in.Items {
		if it.ProductID <= 0 {
			fields[fmt.Sprintf("items[%d].product", i)] = "This field is required."
		}
		if it.Quantity < 1 {
			fields[fmt.Sprintf("items[%d].quantity", i)] = "Ensure this value is greater than or equal to 1."
		}
		switch {
		case it.Price == nil:
			fields[fmt.Sprintf("items[%d].price", i)] = "This field is required."
		case *it.Price < 0:
			fields[fmt.Sprintf("items[%d].price", i)] = "Ensure this value is greater than or equal to 0."
		}
	}
	return fields
}

func distinctProductIDs(items []CreateOrderItemInput) []int64 {
	seen := make(map[int64]struct{}, len(items))
	ids := make([]int64, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it.ProductID]; ok {
			continue
		}
		seen[it.ProductID] = struct{}{}
		ids = append(ids, it.ProductID)
	}
	return ids
}

func groupItems(items []model.OrderItem) map[int64][]model.OrderItem {
	out := make(map[int64][]model.OrderItem)
	for _, it := range items {
		out[it.OrderID] = append(out[it.OrderID], it)
	}
	return out
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			ProductID:   it.ProductID,
			ProductName: it.ProductNameSnapshot,
			Quantity:    it.Quantity,
			Price:       it.Price,
		})
	}

	return OrderOutput{
		ID:            o.ID,
		TotalAmount:   o.TotalAmount,
		PaymentMethod: o.PaymentMethod,
		Name:          o.Name,
		Address:       o.Address,
		Pincode:       o.Pincode,
		Status:        string(o.Status),
		CreatedAt:     o.CreatedAt,
		Items:         outItems,
	}
}
