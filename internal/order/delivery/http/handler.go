package http

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/tair/pos-backoffice/internal/order/domain"
	"github.com/tair/pos-backoffice/internal/order/usecase/command"
	"github.com/tair/pos-backoffice/internal/order/usecase/query"
	"github.com/tair/pos-backoffice/kafka"
	"github.com/tair/pos-backoffice/pkg/apperr"
	"github.com/tair/pos-backoffice/pkg/httpreq"
	"github.com/tair/pos-backoffice/pkg/httpresp"
	"github.com/tair/pos-backoffice/pkg/logger"
	"github.com/tair/pos-backoffice/pkg/middleware"
)

// OrderHandler handles HTTP requests for orders using CQRS pattern
type OrderHandler struct {
	// Command handlers
	createHandler *command.CreateOrderHandler
	updateHandler *command.UpdateOrderHandler
	cancelHandler *command.CancelOrderHandler

	// Query handlers
	getHandler   *query.GetOrderHandler
	listHandler  *query.ListOrdersHandler
	rangeHandler *query.OrdersByDateRangeHandler

	publisher kafka.EventPublisher
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(
	createHandler *command.CreateOrderHandler,
	updateHandler *command.UpdateOrderHandler,
	cancelHandler *command.CancelOrderHandler,
	getHandler *query.GetOrderHandler,
	listHandler *query.ListOrdersHandler,
	rangeHandler *query.OrdersByDateRangeHandler,
	publisher kafka.EventPublisher,
) *OrderHandler {
	return &OrderHandler{
		createHandler: createHandler,
		updateHandler: updateHandler,
		cancelHandler: cancelHandler,
		getHandler:    getHandler,
		listHandler:   listHandler,
		rangeHandler:  rangeHandler,
		publisher:     publisher,
	}
}

type orderItemRequest struct {
	ProductID    uint             `json:"product_id" validate:"required"`
	Quantity     int              `json:"quantity" validate:"required,gt=0"`
	SellingPrice *decimal.Decimal `json:"selling_price,omitempty"`
}

type orderRequest struct {
	Items []orderItemRequest `json:"items" validate:"required,min=1,dive"`
}

func (req orderRequest) inputs() []command.ItemInput {
	items := make([]command.ItemInput, len(req.Items))
	for i, item := range req.Items {
		items[i] = command.ItemInput{
			ProductID:    item.ProductID,
			Quantity:     item.Quantity,
			SellingPrice: item.SellingPrice,
		}
	}
	return items
}

// RegisterRoutes registers order routes on an authenticated router
func (h *OrderHandler) RegisterRoutes(router *mux.Router) {
	router.Handle("/api/orders", middleware.AnyRole(h.ListOrders)).Methods("GET")
	router.Handle("/api/orders", middleware.AnyRole(h.CreateOrder)).Methods("POST")
	router.Handle("/api/orders/range", middleware.AnyRole(h.GetOrdersByDateRange)).Methods("GET")
	router.Handle("/api/orders/{id}", middleware.AnyRole(h.GetOrder)).Methods("GET")
	router.Handle("/api/orders/{id}", middleware.AnyRole(h.UpdateOrder)).Methods("PUT")
	router.Handle("/api/orders/{id}/cancel", middleware.AnyRole(h.CancelOrder)).Methods("POST")
}

// CreateOrder godoc
// @Summary Create order
// @Description Reserve stock for every line and create the order; a line without selling_price uses the product MRP
// @Tags Orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{items=[]object{product_id=int,quantity=int,selling_price=number}} true "Order lines"
// @Success 201 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Failure 409 {object} object{success=bool,error=string}
// @Router /api/orders [post]
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		httpresp.Error(w, r, apperr.InvalidInput("missing user"))
		return
	}

	var req orderRequest
	if err := httpreq.DecodeJSON(r, &req); err != nil {
		httpresp.Error(w, r, err)
		return
	}

	order, err := h.createHandler.Handle(r.Context(), command.CreateOrderCommand{
		UserID: claims.UserID,
		Items:  req.inputs(),
	})
	if err != nil {
		httpresp.Error(w, r, err)
		return
	}

	h.publish(r.Context(), kafka.EventTypeOrderCreated, order)
	httpresp.OK(w, http.StatusCreated, "Order created successfully", order)
}

// UpdateOrder godoc
// @Summary Replace order lines
// @Description Only orders in CREATED status can be modified
// @Tags Orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Param request body object{items=[]object{product_id=int,quantity=int,selling_price=number}} true "Order lines"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 409 {object} object{success=bool,error=string}
// @Router /api/orders/{id} [put]
func (h *OrderHandler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	id, err := httpreq.PathID(r, "id")
	if err != nil {
		httpresp.Error(w, r, err)
		return
	}

	var req orderRequest
	if err := httpreq.DecodeJSON(r, &req); err != nil {
		httpresp.Error(w, r, err)
		return
	}

	order, err := h.updateHandler.Handle(r.Context(), command.UpdateOrderCommand{
		OrderID: id,
		Items:   req.inputs(),
	})
	if err != nil {
		httpresp.Error(w, r, err)
		return
	}

	httpresp.OK(w, http.StatusOK, "Order updated successfully", order)
}

// CancelOrder godoc
// @Summary Cancel order
// @Description Restores reserved stock; invoiced or cancelled orders cannot be cancelled
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 404 {object} object{success=bool,error=string}
// @Failure 409 {object} object{success=bool,error=string}
// @Router /api/orders/{id}/cancel [post]
func (h *OrderHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	id, err := httpreq.PathID(r, "id")
	if err != nil {
		httpresp.Error(w, r, err)
		return
	}

	order, err := h.cancelHandler.Handle(r.Context(), command.CancelOrderCommand{OrderID: id})
	if err != nil {
		httpresp.Error(w, r, err)
		return
	}

	h.publish(r.Context(), kafka.EventTypeOrderCancelled, order)
	httpresp.OK(w, http.StatusOK, "Order cancelled successfully", order)
}

// GetOrder godoc
// @Summary Get order with items
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/orders/{id} [get]
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := httpreq.PathID(r, "id")
	if err != nil {
		httpresp.Error(w, r, err)
		return
	}

	order, err := h.getHandler.Handle(r.Context(), query.GetOrderQuery{OrderID: id})
	if err != nil {
		httpresp.Error(w, r, err)
		return
	}

	httpresp.OK(w, http.StatusOK, "", order)
}

// ListOrders godoc
// @Summary List orders, newest first
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Limit"
// @Param offset query int false "Offset"
// @Success 200 {object} object{success=bool,data=array}
// @Router /api/orders [get]
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	limit, offset := httpreq.Pagination(r)

	orders, err := h.listHandler.Handle(r.Context(), query.ListOrdersQuery{Limit: limit, Offset: offset})
	if err != nil {
		httpresp.Error(w, r, err)
		return
	}

	httpresp.OK(w, http.StatusOK, "", orders)
}

// GetOrdersByDateRange godoc
// @Summary Orders created between two UTC days, inclusive
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Param start query string true "Start day (YYYY-MM-DD)"
// @Param end query string true "End day (YYYY-MM-DD)"
// @Success 200 {object} object{success=bool,data=array}
// @Failure 400 {object} object{success=bool,error=string}
// @Router /api/orders/range [get]
func (h *OrderHandler) GetOrdersByDateRange(w http.ResponseWriter, r *http.Request) {
	start, err := httpreq.Date(r, "start")
	if err != nil {
		httpresp.Error(w, r, err)
		return
	}
	end, err := httpreq.Date(r, "end")
	if err != nil {
		httpresp.Error(w, r, err)
		return
	}

	orders, err := h.rangeHandler.Handle(r.Context(), query.OrdersByDateRangeQuery{Start: start, End: end})
	if err != nil {
		httpresp.Error(w, r, err)
		return
	}

	httpresp.OK(w, http.StatusOK, "", orders)
}

// publish emits an order event; failures are logged and never fail the request
func (h *OrderHandler) publish(ctx context.Context, eventType string, order *domain.Order) {
	event := kafka.OrderEvent{
		EventID:   uuid.NewString(),
		EventType: eventType,
		OrderID:   order.ID,
		UserID:    order.UserID,
		Status:    string(order.Status),
		Total:     order.Total,
		ItemCount: len(order.Items),
		Timestamp: time.Now().UTC(),
	}

	if err := h.publisher.PublishOrderEvent(ctx, event); err != nil {
		logger.Error(ctx).
			Err(err).
			Uint("order_id", order.ID).
			Str("event_type", eventType).
			Msg("Failed to publish order event")
	}
}
