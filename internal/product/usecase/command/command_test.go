package command_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clientdomain "github.com/tair/pos-backoffice/internal/client/domain"
	clientrepo "github.com/tair/pos-backoffice/internal/client/repository"
	inventorydomain "github.com/tair/pos-backoffice/internal/inventory/domain"
	inventoryrepo "github.com/tair/pos-backoffice/internal/inventory/repository"
	"github.com/tair/pos-backoffice/internal/product/domain"
	"github.com/tair/pos-backoffice/internal/product/repository"
	"github.com/tair/pos-backoffice/internal/product/usecase/command"
	"github.com/tair/pos-backoffice/pkg/apperr"
	"github.com/tair/pos-backoffice/pkg/database"
	"github.com/tair/pos-backoffice/pkg/database/dbtest"
)

type fixture struct {
	tx          database.Transactor
	products    *repository.GormProductRepository
	clients     *clientrepo.GormClientRepository
	inventories *inventoryrepo.GormInventoryRepository
	active      *clientdomain.Client
	inactive    *clientdomain.Client
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := dbtest.Open(t, &clientdomain.Client{}, &domain.Product{}, &inventorydomain.Inventory{})
	f := &fixture{
		tx:          database.NewGormTransactor(db),
		products:    repository.NewGormProductRepository(db),
		clients:     clientrepo.NewGormClientRepository(db),
		inventories: inventoryrepo.NewGormInventoryRepository(db),
		active:      &clientdomain.Client{Name: "acme", IsActive: true},
		inactive:    &clientdomain.Client{Name: "dormant", IsActive: false},
	}
	ctx := context.Background()
	require.NoError(t, f.clients.Create(ctx, f.active))
	require.NoError(t, f.clients.Create(ctx, f.inactive))
	return f
}

func (f *fixture) create(inventories inventorydomain.InventoryRepository) *command.CreateProductHandler {
	if inventories == nil {
		inventories = f.inventories
	}
	return command.NewCreateProductHandler(f.tx, f.products, f.clients, inventories)
}

func TestCreateProduct(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	h := f.create(nil)

	product, err := h.Handle(ctx, command.CreateProductCommand{
		Barcode:  " ABC-123 ",
		ClientID: f.active.ID,
		Name:     " Basmati Rice ",
		MRP:      decimal.RequireFromString("10.005"),
	})
	require.NoError(t, err)
	assert.Equal(t, "abc-123", product.Barcode)
	assert.Equal(t, "Basmati Rice", product.Name)
	assert.Equal(t, "10.01", product.MRP.StringFixed(2))

	inv, err := f.inventories.FindByProductID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, inv.Quantity)
	assert.Equal(t, "abc-123", inv.Barcode)
	assert.Equal(t, "Basmati Rice", inv.ProductName)

	tests := []struct {
		name string
		cmd  command.CreateProductCommand
		want error
	}{
		{
			name: "duplicate barcode after normalisation",
			cmd:  command.CreateProductCommand{Barcode: "abc-123", ClientID: f.active.ID, Name: "x", MRP: decimal.NewFromInt(1)},
			want: apperr.ErrConflict,
		},
		{
			name: "unknown client",
			cmd:  command.CreateProductCommand{Barcode: "b-1", ClientID: 999, Name: "x", MRP: decimal.NewFromInt(1)},
			want: apperr.ErrNotFound,
		},
		{
			name: "inactive client",
			cmd:  command.CreateProductCommand{Barcode: "b-2", ClientID: f.inactive.ID, Name: "x", MRP: decimal.NewFromInt(1)},
			want: apperr.ErrInvalidState,
		},
		{
			name: "non-positive mrp",
			cmd:  command.CreateProductCommand{Barcode: "b-3", ClientID: f.active.ID, Name: "x", MRP: decimal.Zero},
			want: apperr.ErrInvalidInput,
		},
		{
			name: "missing barcode",
			cmd:  command.CreateProductCommand{Barcode: "  ", ClientID: f.active.ID, Name: "x", MRP: decimal.NewFromInt(1)},
			want: apperr.ErrInvalidInput,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.Handle(ctx, tt.cmd)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

type failingInventories struct {
	inventorydomain.InventoryRepository
}

func (failingInventories) Create(context.Context, *inventorydomain.Inventory) error {
	return errors.New("disk full")
}

func TestCreateProduct_RollsBackWhenInventoryFails(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	h := f.create(failingInventories{f.inventories})

	_, err := h.Handle(ctx, command.CreateProductCommand{
		Barcode:  "lonely",
		ClientID: f.active.ID,
		Name:     "x",
		MRP:      decimal.NewFromInt(3),
	})
	require.Error(t, err)

	_, err = f.products.FindByBarcode(ctx, "lonely")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestUpdateProduct_RefreshesInventoryCache(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	product, err := f.create(nil).Handle(ctx, command.CreateProductCommand{
		Barcode: "tea", ClientID: f.active.ID, Name: "green tea", MRP: decimal.RequireFromString("4.00"),
	})
	require.NoError(t, err)

	update := command.NewUpdateProductHandler(f.tx, f.products, f.clients, f.inventories)
	updated, err := update.Handle(ctx, command.UpdateProductCommand{
		ID:   product.ID,
		Name: "jasmine tea",
		MRP:  decimal.RequireFromString("4.499"),
	})
	require.NoError(t, err)
	assert.Equal(t, "tea", updated.Barcode)
	assert.Equal(t, "4.50", updated.MRP.StringFixed(2))

	inv, err := f.inventories.FindByProductID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "jasmine tea", inv.ProductName)
	assert.Equal(t, "4.50", inv.MRP.StringFixed(2))

	_, err = update.Handle(ctx, command.UpdateProductCommand{ID: product.ID, ClientID: f.inactive.ID, Name: "x", MRP: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, apperr.ErrInvalidState)

	_, err = update.Handle(ctx, command.UpdateProductCommand{ID: 777, Name: "x", MRP: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestDeleteProduct(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	product, err := f.create(nil).Handle(ctx, command.CreateProductCommand{
		Barcode: "milk", ClientID: f.active.ID, Name: "milk", MRP: decimal.NewFromInt(2),
	})
	require.NoError(t, err)

	del := command.NewDeleteProductHandler(f.tx, f.products, f.inventories)
	require.NoError(t, del.Handle(ctx, command.DeleteProductCommand{ID: product.ID}))

	_, err = f.products.FindByID(ctx, product.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	_, err = f.inventories.FindByProductID(ctx, product.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	assert.ErrorIs(t, del.Handle(ctx, command.DeleteProductCommand{ID: product.ID}), apperr.ErrNotFound)
}
