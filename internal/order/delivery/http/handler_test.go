package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inventorydomain "github.com/tair/pos-backoffice/internal/inventory/domain"
	inventoryrepo "github.com/tair/pos-backoffice/internal/inventory/repository"
	inventorycmd "github.com/tair/pos-backoffice/internal/inventory/usecase/command"
	"github.com/tair/pos-backoffice/internal/order/domain"
	"github.com/tair/pos-backoffice/internal/order/repository"
	"github.com/tair/pos-backoffice/internal/order/usecase/command"
	"github.com/tair/pos-backoffice/internal/order/usecase/query"
	productdomain "github.com/tair/pos-backoffice/internal/product/domain"
	productrepo "github.com/tair/pos-backoffice/internal/product/repository"
	"github.com/tair/pos-backoffice/kafka"
	"github.com/tair/pos-backoffice/pkg/auth"
	"github.com/tair/pos-backoffice/pkg/config"
	"github.com/tair/pos-backoffice/pkg/database"
	"github.com/tair/pos-backoffice/pkg/database/dbtest"
	"github.com/tair/pos-backoffice/pkg/middleware"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []kafka.OrderEvent
}

func (p *recordingPublisher) PublishOrderEvent(_ context.Context, event kafka.OrderEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) PublishInvoiceGenerated(context.Context, kafka.InvoiceGeneratedEvent) error {
	return nil
}

type envelope struct {
	Success bool            `json:"success"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

func setup(t *testing.T) (*mux.Router, *recordingPublisher, uint) {
	t.Helper()
	db := dbtest.Open(t, &productdomain.Product{}, &inventorydomain.Inventory{}, &domain.Order{}, &domain.OrderItem{})

	products := productrepo.NewGormProductRepository(db)
	inventories := inventoryrepo.NewGormInventoryRepository(db)
	orders := repository.NewGormOrderRepository(db)
	tx := database.NewGormTransactor(db)
	ledger := inventorycmd.NewLedger(inventories, config.InventoryConfig{MaxReserveRetries: 3})

	ctx := context.Background()
	p := &productdomain.Product{Barcode: "soap-1", ClientID: 1, Name: "soap", MRP: decimal.RequireFromString("1.50")}
	require.NoError(t, products.Create(ctx, p))
	require.NoError(t, inventories.Create(ctx, &inventorydomain.Inventory{ProductID: p.ID, ProductName: p.Name, Barcode: p.Barcode, MRP: p.MRP, Quantity: 3}))

	publisher := &recordingPublisher{}
	cancel := command.NewCancelOrderHandler(tx, orders, ledger)
	h := NewOrderHandler(
		command.NewCreateOrderHandler(tx, orders, products, ledger),
		command.NewUpdateOrderHandler(tx, orders, products, ledger),
		cancel,
		query.NewGetOrderHandler(orders),
		query.NewListOrdersHandler(orders),
		query.NewOrdersByDateRangeHandler(orders),
		publisher,
	)

	router := mux.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := &auth.Claims{UserID: 42, Username: "till-1", Role: auth.RoleOperator}
			next.ServeHTTP(w, r.WithContext(middleware.ContextWithClaims(r.Context(), claims)))
		})
	})
	h.RegisterRoutes(router)
	return router, publisher, p.ID
}

func do(router http.Handler, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	return rec, env
}

func TestCreateAndCancelOrder(t *testing.T) {
	router, publisher, productID := setup(t)

	rec, env := do(router, http.MethodPost, "/api/orders",
		`{"items":[{"product_id":`+itoa(productID)+`,"quantity":2}]}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var order domain.Order
	require.NoError(t, json.Unmarshal(env.Data, &order))
	assert.Equal(t, uint(42), order.UserID)
	assert.Equal(t, "3.00", order.Total.StringFixed(2))

	rec, _ = do(router, http.MethodPost, "/api/orders/"+itoa(order.ID)+"/cancel", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec, env = do(router, http.MethodPost, "/api/orders/"+itoa(order.ID)+"/cancel", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.False(t, env.Success)

	require.Len(t, publisher.events, 2)
	assert.Equal(t, kafka.EventTypeOrderCreated, publisher.events[0].EventType)
	assert.Equal(t, kafka.EventTypeOrderCancelled, publisher.events[1].EventType)
	assert.Equal(t, string(domain.StatusCancelled), publisher.events[1].Status)
}

func TestCreateOrder_Errors(t *testing.T) {
	router, publisher, productID := setup(t)

	tests := []struct {
		name string
		body string
		want int
	}{
		{name: "malformed body", body: `{"items":`, want: http.StatusBadRequest},
		{name: "empty items", body: `{"items":[]}`, want: http.StatusBadRequest},
		{name: "zero quantity", body: `{"items":[{"product_id":1,"quantity":0}]}`, want: http.StatusBadRequest},
		{name: "unknown product", body: `{"items":[{"product_id":99,"quantity":1}]}`, want: http.StatusNotFound},
		{name: "not enough stock", body: `{"items":[{"product_id":` + itoa(productID) + `,"quantity":5}]}`, want: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := do(router, http.MethodPost, "/api/orders", tt.body)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
			assert.False(t, env.Success)
		})
	}
	assert.Empty(t, publisher.events)
}

func TestGetOrdersByDateRange_InvalidRange(t *testing.T) {
	router, _, _ := setup(t)

	rec, _ := do(router, http.MethodGet, "/api/orders/range?start=2024-01-10&end=2024-01-05", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = do(router, http.MethodGet, "/api/orders/range?start=2024-01-05", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env := do(router, http.MethodGet, "/api/orders/range?start=2024-01-05&end=2024-01-10", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
