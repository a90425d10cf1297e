package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/shiyas-dx/Project/internal/domain/model"
	repo "github.com/shiyas-dx/Project/internal/repository"
	"github.com/shiyas-dx/Project/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func int64p(v int64) *int64 { return &v }

func validOrderInput() usecase.CreateOrderInput {
	return usecase.CreateOrderInput{
		TotalAmount:   int64p(2500),
		PaymentMethod: "card",
		Name:          "Asha",
		Address:       "12 Lake Road",
		Pincode:       "560001",
		Items: []usecase.CreateOrderItemInput{
			{ProductID: 1, Quantity: 2, Price: int64p(1000)},
			{ProductID: 2, Quantity: 1, Price: int64p(500)},
		},
	}
}

func catalog() []model.Product {
	return []model.Product{
		{ID: 1, Name: "Kettle", Price: 1000},
		{ID: 2, Name: "Cup", Price: 500},
	}
}

// =====================
// Create
// =====================

func TestOrderCreate_PersistsItemsAndDrainsCart(t *testing.T) {
	r := newTxRepos()
	tx := newTx(r)
	pub := &recordingPublisher{}
	uc := usecase.NewOrderUsecase(tx, r.orders, r.orderItems, usecase.OrderPolicy{}, pub)

	r.products.On("FindByIDs", mock.Anything, []int64{1, 2}).Return(catalog(), nil)
	r.orders.On("Create", mock.Anything, mock.MatchedBy(func(o *model.Order) bool {
		return o.UserID == 9 && o.Status == model.OrderStatusPaid && o.TotalAmount == 2500
	})).Return(int64(41), nil)
	r.orderItems.On("CreateBulk", mock.Anything, int64(41), mock.MatchedBy(func(items []model.OrderItem) bool {
		return len(items) == 2 &&
			items[0].ProductNameSnapshot == "Kettle" && items[0].Quantity == 2 && items[0].Price == 1000 &&
			items[1].ProductNameSnapshot == "Cup" && items[1].Quantity == 1 && items[1].Price == 500
	})).Return(nil)
	r.carts.On("DeleteAllByUserID", mock.Anything, int64(9)).Return(int64(3), nil)

	out, err := uc.Create(context.Background(), 9, validOrderInput())
	require.NoError(t, err)
	assert.Equal(t, "Order placed successfully", out.Message)
	assert.Equal(t, int64(41), out.OrderID)

	r.carts.AssertCalled(t, "DeleteAllByUserID", mock.Anything, int64(9))
	require.Len(t, pub.events, 1)
	assert.Equal(t, usecase.OrderEventCreated, pub.events[0].Type)
	assert.Equal(t, int64(41), pub.events[0].OrderID)
}

func TestOrderCreate_ItemFailureRollsBack(t *testing.T) {
	r := newTxRepos()
	tx := newTx(r)
	pub := &recordingPublisher{}
	uc := usecase.NewOrderUsecase(tx, r.orders, r.orderItems, usecase.OrderPolicy{}, pub)

	r.products.On("FindByIDs", mock.Anything, mock.Anything).Return(catalog(), nil)
	r.orders.On("Create", mock.Anything, mock.Anything).Return(int64(41), nil)
	r.orderItems.On("CreateBulk", mock.Anything, int64(41), mock.Anything).Return(errors.New("insert failed"))

	_, err := uc.Create(context.Background(), 9, validOrderInput())
	assertStatus(t, err, http.StatusInternalServerError)

	// the cart survives and nothing is announced
	r.carts.AssertNotCalled(t, "DeleteAllByUserID", mock.Anything, mock.Anything)
	assert.Empty(t, pub.events)
}

func TestOrderCreate_FieldValidation(t *testing.T) {
	r := newTxRepos()
	tx := newTx(r)
	uc := usecase.NewOrderUsecase(tx, r.orders, r.orderItems, usecase.OrderPolicy{}, nil)

	in := validOrderInput()
	in.Name = ""
	in.Pincode = "12345678901"
	in.TotalAmount = nil
	in.Items[1].Quantity = 0
	in.Items[0].Price = nil

	_, err := uc.Create(context.Background(), 9, in)
	he := assertStatus(t, err, http.StatusBadRequest)
	assert.Equal(t, "validation error", he.Message)
	assert.Contains(t, he.Fields, "name")
	assert.Contains(t, he.Fields, "pincode")
	assert.Contains(t, he.Fields, "total_amount")
	assert.Contains(t, he.Fields, "items[1].quantity")
	assert.Equal(t, "This field is required.", he.Fields["items[0].price"])

	tx.AssertNotCalled(t, "WithinTx", mock.Anything)
}

func TestOrderCreate_EmptyItemsRejected(t *testing.T) {
	r := newTxRepos()
	uc := usecase.NewOrderUsecase(newTx(r), r.orders, r.orderItems, usecase.OrderPolicy{}, nil)

	in := validOrderInput()
	in.Items = nil

	_, err := uc.Create(context.Background(), 9, in)
	he := assertStatus(t, err, http.StatusBadRequest)
	assert.Contains(t, he.Fields, "items")
}

func TestOrderCreate_UnknownProduct(t *testing.T) {
	r := newTxRepos()
	uc := usecase.NewOrderUsecase(newTx(r), r.orders, r.orderItems, usecase.OrderPolicy{}, nil)

	r.products.On("FindByIDs", mock.Anything, mock.Anything).Return([]model.Product{{ID: 1, Name: "Kettle", Price: 1000}}, nil)

	_, err := uc.Create(context.Background(), 9, validOrderInput())
	he := assertStatus(t, err, http.StatusBadRequest)
	assert.Contains(t, he.Fields["items[1].product"], "does not exist")
	r.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestOrderCreate_ClientPricesKeptVerbatim(t *testing.T) {
	r := newTxRepos()
	uc := usecase.NewOrderUsecase(newTx(r), r.orders, r.orderItems, usecase.OrderPolicy{}, nil)

	in := validOrderInput()
	in.Items[0].Price = int64p(1)
	in.TotalAmount = int64p(7)

	r.products.On("FindByIDs", mock.Anything, mock.Anything).Return(catalog(), nil)
	r.orders.On("Create", mock.Anything, mock.MatchedBy(func(o *model.Order) bool { return o.TotalAmount == 7 })).Return(int64(5), nil)
	r.orderItems.On("CreateBulk", mock.Anything, int64(5), mock.MatchedBy(func(items []model.OrderItem) bool {
		return items[0].Price == 1
	})).Return(nil)
	r.carts.On("DeleteAllByUserID", mock.Anything, int64(9)).Return(int64(0), nil)

	_, err := uc.Create(context.Background(), 9, in)
	require.NoError(t, err)
}

func TestOrderCreate_CatalogPolicyRejectsMismatch(t *testing.T) {
	r := newTxRepos()
	uc := usecase.NewOrderUsecase(newTx(r), r.orders, r.orderItems, usecase.OrderPolicy{VerifyPrices: true}, nil)
	r.products.On("FindByIDs", mock.Anything, mock.Anything).Return(catalog(), nil)

	in := validOrderInput()
	in.Items[0].Price = int64p(900)
	_, err := uc.Create(context.Background(), 9, in)
	he := assertStatus(t, err, http.StatusBadRequest)
	assert.Contains(t, he.Fields, "items[0].price")

	in = validOrderInput()
	in.TotalAmount = int64p(1)
	_, err = uc.Create(context.Background(), 9, in)
	he = assertStatus(t, err, http.StatusBadRequest)
	assert.Contains(t, he.Fields, "total_amount")

	r.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestOrderCreate_StockPolicy(t *testing.T) {
	r := newTxRepos()
	uc := usecase.NewOrderUsecase(newTx(r), r.orders, r.orderItems, usecase.OrderPolicy{DecrementStock: true}, nil)

	r.products.On("FindByIDs", mock.Anything, mock.Anything).Return(catalog(), nil)
	r.inventory.On("DecreaseStockIfEnough", mock.Anything, int64(1), int64(2)).Return(true, nil)
	r.inventory.On("DecreaseStockIfEnough", mock.Anything, int64(2), int64(1)).Return(false, nil)

	_, err := uc.Create(context.Background(), 9, validOrderInput())
	he := assertStatus(t, err, http.StatusBadRequest)
	assert.Equal(t, "Not enough stock.", he.Fields["items[1].quantity"])
	r.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// =====================
// ListMine / GetMine
// =====================

func TestOrderGetMine_OtherUsersOrderIsNotFound(t *testing.T) {
	r := newTxRepos()
	uc := usecase.NewOrderUsecase(newTx(r), r.orders, r.orderItems, usecase.OrderPolicy{}, nil)

	r.orders.On("FindByID", mock.Anything, int64(3)).Return(model.Order{ID: 3, UserID: 100}, nil)

	_, err := uc.GetMine(context.Background(), 9, 3)
	he := assertStatus(t, err, http.StatusNotFound)
	assert.Equal(t, "Order not found", he.Message)
	r.orderItems.AssertNotCalled(t, "ListByOrderID", mock.Anything, mock.Anything)
}

func TestOrderListMine_GroupsItems(t *testing.T) {
	r := newTxRepos()
	uc := usecase.NewOrderUsecase(newTx(r), r.orders, r.orderItems, usecase.OrderPolicy{}, nil)

	r.orders.On("ListByUserID", mock.Anything, int64(9)).Return([]model.Order{{ID: 2, UserID: 9}, {ID: 1, UserID: 9}}, nil)
	r.orderItems.On("ListByOrderIDs", mock.Anything, []int64{2, 1}).Return([]model.OrderItem{
		{OrderID: 1, ProductID: 5, Quantity: 1, Price: 10},
		{OrderID: 2, ProductID: 6, Quantity: 2, Price: 20},
		{OrderID: 2, ProductID: 7, Quantity: 3, Price: 30},
	}, nil)

	out, err := uc.ListMine(context.Background(), 9)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, int64(2), out[0].ID)
	assert.Len(t, out[0].Items, 2)
	assert.Len(t, out[1].Items, 1)
	r.orders.AssertNotCalled(t, "ListByUserID", mock.Anything, int64(100))
}

func TestOrderGetMine_Missing(t *testing.T) {
	r := newTxRepos()
	uc := usecase.NewOrderUsecase(newTx(r), r.orders, r.orderItems, usecase.OrderPolicy{}, nil)
	r.orders.On("FindByID", mock.Anything, int64(3)).Return(model.Order{}, repo.ErrNotFound)

	_, err := uc.GetMine(context.Background(), 9, 3)
	assertStatus(t, err, http.StatusNotFound)
}
