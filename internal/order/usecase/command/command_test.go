package command_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inventorydomain "github.com/tair/pos-backoffice/internal/inventory/domain"
	inventoryrepo "github.com/tair/pos-backoffice/internal/inventory/repository"
	inventorycmd "github.com/tair/pos-backoffice/internal/inventory/usecase/command"
	"github.com/tair/pos-backoffice/internal/order/domain"
	"github.com/tair/pos-backoffice/internal/order/repository"
	"github.com/tair/pos-backoffice/internal/order/usecase/command"
	productdomain "github.com/tair/pos-backoffice/internal/product/domain"
	productrepo "github.com/tair/pos-backoffice/internal/product/repository"
	"github.com/tair/pos-backoffice/pkg/apperr"
	"github.com/tair/pos-backoffice/pkg/config"
	"github.com/tair/pos-backoffice/pkg/database"
	"github.com/tair/pos-backoffice/pkg/database/dbtest"
)

type fixture struct {
	tx          database.Transactor
	orders      *repository.GormOrderRepository
	products    *productrepo.GormProductRepository
	inventories *inventoryrepo.GormInventoryRepository
	ledger      *inventorycmd.Ledger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := dbtest.Open(t,
		&productdomain.Product{}, &inventorydomain.Inventory{},
		&domain.Order{}, &domain.OrderItem{},
	)
	inventories := inventoryrepo.NewGormInventoryRepository(db)
	return &fixture{
		tx:          database.NewGormTransactor(db),
		orders:      repository.NewGormOrderRepository(db),
		products:    productrepo.NewGormProductRepository(db),
		inventories: inventories,
		ledger:      inventorycmd.NewLedger(inventories, config.InventoryConfig{MaxReserveRetries: 3}),
	}
}

// product inserts a catalog entry with its inventory record holding stock units
func (f *fixture) product(t *testing.T, barcode, mrp string, stock int) *productdomain.Product {
	t.Helper()
	ctx := context.Background()
	p := &productdomain.Product{Barcode: barcode, ClientID: 1, Name: "product " + barcode, MRP: decimal.RequireFromString(mrp)}
	require.NoError(t, f.products.Create(ctx, p))
	require.NoError(t, f.inventories.Create(ctx, &inventorydomain.Inventory{
		ProductID:   p.ID,
		ProductName: p.Name,
		Barcode:     p.Barcode,
		MRP:         p.MRP,
		Quantity:    stock,
	}))
	return p
}

func (f *fixture) stock(t *testing.T, productID uint) int {
	t.Helper()
	inv, err := f.inventories.FindByProductID(context.Background(), productID)
	require.NoError(t, err)
	return inv.Quantity
}

func (f *fixture) orderCount(t *testing.T) int {
	t.Helper()
	orders, err := f.orders.FindAll(context.Background(), 100, 0)
	require.NoError(t, err)
	return len(orders)
}

func (f *fixture) create() *command.CreateOrderHandler {
	return command.NewCreateOrderHandler(f.tx, f.orders, f.products, f.ledger)
}

func (f *fixture) cancel() *command.CancelOrderHandler {
	return command.NewCancelOrderHandler(f.tx, f.orders, f.ledger)
}

func price(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestCreateOrder_ReservesStockAtProductPrice(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.product(t, "p-1", "2.50", 0)

	_, err := f.ledger.SetQuantity(ctx, p.ID, 10)
	require.NoError(t, err)

	order, err := f.create().Handle(ctx, command.CreateOrderCommand{
		UserID: 7,
		Items:  []command.ItemInput{{ProductID: p.ID, Quantity: 3}},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCreated, order.Status)
	assert.Equal(t, "7.50", order.Total.StringFixed(2))
	assert.Equal(t, 7, f.stock(t, p.ID))
	require.Len(t, order.Items, 1)
	assert.Equal(t, "product p-1", order.Items[0].ProductName)
	assert.Equal(t, "p-1", order.Items[0].Barcode)

	stored, err := f.orders.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(7), stored.UserID)
	require.Len(t, stored.Items, 1)
	assert.Equal(t, 3, stored.Items[0].Quantity)
}

func TestCreateOrder_TotalIsSumOfRoundedAmounts(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a := f.product(t, "a", "12.50", 100)
	b := f.product(t, "b", "3.00", 100)

	order, err := f.create().Handle(ctx, command.CreateOrderCommand{
		UserID: 1,
		Items: []command.ItemInput{
			{ProductID: a.ID, Quantity: 3},
			{ProductID: b.ID, Quantity: 7, SellingPrice: price("0.335")},
			{ProductID: b.ID, Quantity: 1, SellingPrice: price("2.999")},
		},
	})
	require.NoError(t, err)

	require.Len(t, order.Items, 3)
	assert.Equal(t, "37.50", order.Items[0].Amount.StringFixed(2))
	assert.Equal(t, "0.34", order.Items[1].SellingPrice.StringFixed(2))
	assert.Equal(t, "2.38", order.Items[1].Amount.StringFixed(2))
	assert.Equal(t, "3.00", order.Items[2].Amount.StringFixed(2))

	sum := decimal.Zero
	for _, item := range order.Items {
		sum = sum.Add(item.Amount)
	}
	assert.Equal(t, sum.StringFixed(2), order.Total.StringFixed(2))
	assert.Equal(t, "42.88", order.Total.StringFixed(2))
	assert.Equal(t, 92, f.stock(t, b.ID))
}

func TestCreateOrder_InsufficientStockLeavesNothingBehind(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.product(t, "p-1", "4.00", 3)

	_, err := f.create().Handle(ctx, command.CreateOrderCommand{
		UserID: 1,
		Items:  []command.ItemInput{{ProductID: p.ID, Quantity: 5}},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrInsufficientStock))

	assert.Equal(t, 3, f.stock(t, p.ID))
	assert.Equal(t, 0, f.orderCount(t))
}

func TestCreateOrder_AllOrNothing(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	first := f.product(t, "first", "1.00", 10)
	second := f.product(t, "second", "1.00", 1)
	third := f.product(t, "third", "1.00", 10)

	tests := []struct {
		name  string
		items []command.ItemInput
		want  error
	}{
		{
			name: "second line short of stock",
			items: []command.ItemInput{
				{ProductID: first.ID, Quantity: 2},
				{ProductID: second.ID, Quantity: 2},
				{ProductID: third.ID, Quantity: 2},
			},
			want: apperr.ErrInsufficientStock,
		},
		{
			name: "second line unknown product",
			items: []command.ItemInput{
				{ProductID: first.ID, Quantity: 2},
				{ProductID: 999, Quantity: 1},
				{ProductID: third.ID, Quantity: 2},
			},
			want: apperr.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.create().Handle(ctx, command.CreateOrderCommand{UserID: 1, Items: tt.items})
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)

			assert.Equal(t, 10, f.stock(t, first.ID))
			assert.Equal(t, 1, f.stock(t, second.ID))
			assert.Equal(t, 10, f.stock(t, third.ID))
			assert.Equal(t, 0, f.orderCount(t))
		})
	}
}

func TestCreateOrder_Validation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.product(t, "p-1", "1.00", 10)

	tests := []struct {
		name string
		cmd  command.CreateOrderCommand
	}{
		{name: "no items", cmd: command.CreateOrderCommand{UserID: 1}},
		{name: "missing user", cmd: command.CreateOrderCommand{Items: []command.ItemInput{{ProductID: p.ID, Quantity: 1}}}},
		{name: "zero quantity", cmd: command.CreateOrderCommand{UserID: 1, Items: []command.ItemInput{{ProductID: p.ID}}}},
		{name: "negative quantity", cmd: command.CreateOrderCommand{UserID: 1, Items: []command.ItemInput{{ProductID: p.ID, Quantity: -2}}}},
		{name: "zero price", cmd: command.CreateOrderCommand{UserID: 1, Items: []command.ItemInput{{ProductID: p.ID, Quantity: 1, SellingPrice: price("0")}}}},
		{name: "missing product", cmd: command.CreateOrderCommand{UserID: 1, Items: []command.ItemInput{{Quantity: 1}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.create().Handle(ctx, tt.cmd)
			require.Error(t, err)
			assert.True(t, errors.Is(err, apperr.ErrInvalidInput), "got %v", err)
		})
	}
	assert.Equal(t, 10, f.stock(t, p.ID))
}

func TestCancelOrder_RestoresStockOnce(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a := f.product(t, "a", "2.00", 10)
	b := f.product(t, "b", "3.00", 5)

	order, err := f.create().Handle(ctx, command.CreateOrderCommand{
		UserID: 1,
		Items: []command.ItemInput{
			{ProductID: a.ID, Quantity: 4},
			{ProductID: b.ID, Quantity: 5},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 6, f.stock(t, a.ID))
	assert.Equal(t, 0, f.stock(t, b.ID))

	cancelled, err := f.cancel().Handle(ctx, command.CancelOrderCommand{OrderID: order.ID})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, cancelled.Status)
	assert.Equal(t, 10, f.stock(t, a.ID))
	assert.Equal(t, 5, f.stock(t, b.ID))

	_, err = f.cancel().Handle(ctx, command.CancelOrderCommand{OrderID: order.ID})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrInvalidState))
	assert.Equal(t, 10, f.stock(t, a.ID))

	_, err = f.cancel().Handle(ctx, command.CancelOrderCommand{OrderID: 999})
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.product(t, "p-1", "2.00", 10)
	status := command.NewUpdateStatusHandler(f.orders, f.cancel())

	order, err := f.create().Handle(ctx, command.CreateOrderCommand{
		UserID: 1,
		Items:  []command.ItemInput{{ProductID: p.ID, Quantity: 3}},
	})
	require.NoError(t, err)

	err = status.Handle(ctx, command.UpdateStatusCommand{OrderID: order.ID, Status: domain.StatusCreated})
	assert.True(t, errors.Is(err, apperr.ErrInvalidInput))

	require.NoError(t, status.Handle(ctx, command.UpdateStatusCommand{OrderID: order.ID, Status: domain.StatusInvoiced}))

	err = status.Handle(ctx, command.UpdateStatusCommand{OrderID: order.ID, Status: domain.StatusInvoiced})
	assert.True(t, errors.Is(err, apperr.ErrInvalidState))

	_, err = f.cancel().Handle(ctx, command.CancelOrderCommand{OrderID: order.ID})
	assert.True(t, errors.Is(err, apperr.ErrInvalidState))
	assert.Equal(t, 7, f.stock(t, p.ID))

	stored, err := f.orders.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInvoiced, stored.Status)
}

func TestUpdateStatus_CancelRestoresStock(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.product(t, "p-1", "2.00", 10)
	status := command.NewUpdateStatusHandler(f.orders, f.cancel())

	order, err := f.create().Handle(ctx, command.CreateOrderCommand{
		UserID: 1,
		Items:  []command.ItemInput{{ProductID: p.ID, Quantity: 3}},
	})
	require.NoError(t, err)

	require.NoError(t, status.Handle(ctx, command.UpdateStatusCommand{OrderID: order.ID, Status: domain.StatusCancelled}))
	assert.Equal(t, 10, f.stock(t, p.ID))

	err = status.Handle(ctx, command.UpdateStatusCommand{OrderID: order.ID, Status: domain.StatusInvoiced})
	assert.True(t, errors.Is(err, apperr.ErrInvalidState))
}

func TestUpdateOrder(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a := f.product(t, "a", "2.00", 10)
	b := f.product(t, "b", "5.00", 4)
	update := command.NewUpdateOrderHandler(f.tx, f.orders, f.products, f.ledger)

	order, err := f.create().Handle(ctx, command.CreateOrderCommand{
		UserID: 1,
		Items:  []command.ItemInput{{ProductID: a.ID, Quantity: 6}},
	})
	require.NoError(t, err)

	updated, err := update.Handle(ctx, command.UpdateOrderCommand{
		OrderID: order.ID,
		Items: []command.ItemInput{
			{ProductID: a.ID, Quantity: 8},
			{ProductID: b.ID, Quantity: 2},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "26.00", updated.Total.StringFixed(2))
	assert.Equal(t, 2, f.stock(t, a.ID))
	assert.Equal(t, 2, f.stock(t, b.ID))

	stored, err := f.orders.FindByID(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, stored.Items, 2)
	assert.Equal(t, "26.00", stored.Total.StringFixed(2))

	// too much of b: the whole edit rolls back, previous reservations intact
	_, err = update.Handle(ctx, command.UpdateOrderCommand{
		OrderID: order.ID,
		Items:   []command.ItemInput{{ProductID: b.ID, Quantity: 5}},
	})
	assert.True(t, errors.Is(err, apperr.ErrInsufficientStock))
	assert.Equal(t, 2, f.stock(t, a.ID))
	assert.Equal(t, 2, f.stock(t, b.ID))

	_, err = f.cancel().Handle(ctx, command.CancelOrderCommand{OrderID: order.ID})
	require.NoError(t, err)

	_, err = update.Handle(ctx, command.UpdateOrderCommand{
		OrderID: order.ID,
		Items:   []command.ItemInput{{ProductID: a.ID, Quantity: 1}},
	})
	assert.True(t, errors.Is(err, apperr.ErrInvalidState))
	assert.Equal(t, 10, f.stock(t, a.ID))
	assert.Equal(t, 4, f.stock(t, b.ID))
}

// interleavedRepo counts row-locking reads and runs edit once, right before the
// first status transition, inside the caller's transaction
type interleavedRepo struct {
	domain.OrderRepository
	locked int
	edit   func(ctx context.Context)
}

func (r *interleavedRepo) FindByIDForUpdate(ctx context.Context, id uint) (*domain.Order, error) {
	r.locked++
	return r.OrderRepository.FindByIDForUpdate(ctx, id)
}

func (r *interleavedRepo) TransitionStatus(ctx context.Context, id uint, from, to domain.Status) (bool, error) {
	if edit := r.edit; edit != nil {
		r.edit = nil
		edit(ctx)
	}
	return r.OrderRepository.TransitionStatus(ctx, id, from, to)
}

func TestCancelOrder_RestoresLinesEditedBeforeStatusFlip(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.product(t, "p-1", "2.50", 10)
	update := command.NewUpdateOrderHandler(f.tx, f.orders, f.products, f.ledger)

	order, err := f.create().Handle(ctx, command.CreateOrderCommand{
		UserID: 1,
		Items:  []command.ItemInput{{ProductID: p.ID, Quantity: 3}},
	})
	require.NoError(t, err)
	assert.Equal(t, 7, f.stock(t, p.ID))

	repo := &interleavedRepo{
		OrderRepository: f.orders,
		edit: func(ctx context.Context) {
			_, err := update.Handle(ctx, command.UpdateOrderCommand{
				OrderID: order.ID,
				Items:   []command.ItemInput{{ProductID: p.ID, Quantity: 1}},
			})
			require.NoError(t, err)
		},
	}

	cancelled, err := command.NewCancelOrderHandler(f.tx, repo, f.ledger).Handle(ctx, command.CancelOrderCommand{OrderID: order.ID})
	require.NoError(t, err)

	assert.Equal(t, 1, repo.locked)
	assert.Equal(t, domain.StatusCancelled, cancelled.Status)
	require.Len(t, cancelled.Items, 1)
	assert.Equal(t, 1, cancelled.Items[0].Quantity)
	assert.Equal(t, 10, f.stock(t, p.ID))
}

func TestUpdateOrder_LocksOrderRow(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.product(t, "p-1", "2.00", 10)
	repo := &interleavedRepo{OrderRepository: f.orders}

	order, err := f.create().Handle(ctx, command.CreateOrderCommand{
		UserID: 1,
		Items:  []command.ItemInput{{ProductID: p.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	_, err = command.NewUpdateOrderHandler(f.tx, repo, f.products, f.ledger).Handle(ctx, command.UpdateOrderCommand{
		OrderID: order.ID,
		Items:   []command.ItemInput{{ProductID: p.ID, Quantity: 5}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.locked)
	assert.Equal(t, 5, f.stock(t, p.ID))

	require.NoError(t, command.NewUpdateStatusHandler(repo, f.cancel()).Handle(ctx, command.UpdateStatusCommand{
		OrderID: order.ID,
		Status:  domain.StatusInvoiced,
	}))
	assert.Equal(t, 2, repo.locked)
}
