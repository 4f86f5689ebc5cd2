package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/tair/pos-backoffice/internal/invoice/domain"
	"github.com/tair/pos-backoffice/internal/invoice/usecase/command"
	"github.com/tair/pos-backoffice/internal/invoice/usecase/query"
	"github.com/tair/pos-backoffice/kafka"
	"github.com/tair/pos-backoffice/pkg/httpreq"
	"github.com/tair/pos-backoffice/pkg/httpresp"
	"github.com/tair/pos-backoffice/pkg/logger"
	"github.com/tair/pos-backoffice/pkg/middleware"
)

// InvoiceHandler handles HTTP requests for invoices
type InvoiceHandler struct {
	generateHandler *command.GenerateInvoiceHandler
	pdfHandler      *command.GenerateInvoicePdfHandler
	getHandler      *query.GetInvoiceByOrderHandler
	publisher       kafka.EventPublisher
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(
	generateHandler *command.GenerateInvoiceHandler,
	pdfHandler *command.GenerateInvoicePdfHandler,
	getHandler *query.GetInvoiceByOrderHandler,
	publisher kafka.EventPublisher,
) *InvoiceHandler {
	return &InvoiceHandler{
		generateHandler: generateHandler,
		pdfHandler:      pdfHandler,
		getHandler:      getHandler,
		publisher:       publisher,
	}
}

// RegisterRoutes registers invoice routes on an authenticated router
func (h *InvoiceHandler) RegisterRoutes(router *mux.Router) {
	router.Handle("/api/orders/{id}/invoice", middleware.AnyRole(h.GenerateInvoice)).Methods("POST")
	router.Handle("/api/orders/{id}/invoice", middleware.AnyRole(h.GetInvoice)).Methods("GET")
	router.Handle("/api/orders/{id}/invoice/pdf", middleware.AnyRole(h.GetInvoicePdf)).Methods("GET")
}

// GenerateInvoice godoc
// @Summary Generate the invoice of an order
// @Description Idempotent: repeated calls return the existing invoice with status 200
// @Tags Invoices
// @Security BearerAuth
// @Produce json
// @Param id path int true "Order ID"
// @Success 201 {object} object{success=bool,message=string,data=object}
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 404 {object} object{success=bool,error=string}
// @Failure 409 {object} object{success=bool,error=string}
// @Router /api/orders/{id}/invoice [post]
func (h *InvoiceHandler) GenerateInvoice(w http.ResponseWriter, r *http.Request) {
	orderID, err := httpreq.PathID(r, "id")
	if err != nil {
		httpresp.Error(w, r, err)
		return
	}

	invoice, created, err := h.generateHandler.Handle(r.Context(), command.GenerateInvoiceCommand{OrderID: orderID})
	if err != nil {
		httpresp.Error(w, r, err)
		return
	}

	if !created {
		httpresp.OK(w, http.StatusOK, "Invoice already exists", invoice)
		return
	}

	h.publish(r.Context(), invoice)
	httpresp.OK(w, http.StatusCreated, "Invoice generated successfully", invoice)
}

// GetInvoice godoc
// @Summary Get the invoice of an order
// @Tags Invoices
// @Security BearerAuth
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/orders/{id}/invoice [get]
func (h *InvoiceHandler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	orderID, err := httpreq.PathID(r, "id")
	if err != nil {
		httpresp.Error(w, r, err)
		return
	}

	invoice, err := h.getHandler.Handle(r.Context(), query.GetInvoiceByOrderQuery{OrderID: orderID})
	if err != nil {
		httpresp.Error(w, r, err)
		return
	}

	httpresp.OK(w, http.StatusOK, "", invoice)
}

// GetInvoicePdf godoc
// @Summary Download the invoice document
// @Description The invoice must be generated first
// @Tags Invoices
// @Security BearerAuth
// @Produce application/pdf
// @Param id path int true "Order ID"
// @Success 200 {file} binary
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/orders/{id}/invoice/pdf [get]
func (h *InvoiceHandler) GetInvoicePdf(w http.ResponseWriter, r *http.Request) {
	orderID, err := httpreq.PathID(r, "id")
	if err != nil {
		httpresp.Error(w, r, err)
		return
	}

	data, err := h.pdfHandler.Handle(r.Context(), command.GenerateInvoicePdfCommand{OrderID: orderID})
	if err != nil {
		httpresp.Error(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `inline; filename="invoice-order-`+strconv.FormatUint(uint64(orderID), 10)+`.pdf"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (h *InvoiceHandler) publish(ctx context.Context, invoice *domain.Invoice) {
	event := kafka.InvoiceGeneratedEvent{
		EventID:       uuid.NewString(),
		EventType:     kafka.EventTypeInvoiceGenerated,
		InvoiceID:     invoice.ID,
		InvoiceNumber: invoice.Number,
		OrderID:       invoice.OrderID,
		Total:         invoice.Total,
		TotalQuantity: invoice.TotalQuantity,
		Timestamp:     time.Now().UTC(),
	}

	if err := h.publisher.PublishInvoiceGenerated(ctx, event); err != nil {
		logger.Error(ctx).
			Err(err).
			Str("invoice_number", invoice.Number).
			Msg("Failed to publish invoice event")
	}
}
