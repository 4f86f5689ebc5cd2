package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tair/pos-backoffice/internal/inventory/usecase/command"
	"github.com/tair/pos-backoffice/internal/inventory/usecase/query"
	"github.com/tair/pos-backoffice/pkg/httpreq"
	"github.com/tair/pos-backoffice/pkg/httpresp"
	"github.com/tair/pos-backoffice/pkg/middleware"
)

// InventoryHandler handles HTTP requests for inventory
type InventoryHandler struct {
	setQuantityHandler *command.SetQuantityHandler
	getHandler         *query.GetInventoryHandler
	listHandler        *query.ListInventoryHandler
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(
	setQuantityHandler *command.SetQuantityHandler,
	getHandler *query.GetInventoryHandler,
	listHandler *query.ListInventoryHandler,
) *InventoryHandler {
	return &InventoryHandler{
		setQuantityHandler: setQuantityHandler,
		getHandler:         getHandler,
		listHandler:        listHandler,
	}
}

type setQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required,gte=0"`
}

// ListInventory godoc
// @Summary List all inventory
// @Description Get a list of all inventory records with pagination
// @Tags Inventory
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Limit"
// @Param offset query int false "Offset"
// @Success 200 {object} object{success=bool,data=array}
// @Failure 500 {object} object{success=bool,error=string}
// @Router /api/inventory [get]
func (h *InventoryHandler) ListInventory(w http.ResponseWriter, r *http.Request) {
	limit, offset := httpreq.Pagination(r)

	inventories, err := h.listHandler.Handle(r.Context(), query.ListInventoryQuery{Limit: limit, Offset: offset})
	if err != nil {
		httpresp.Error(w, r, err)
		return
	}

	httpresp.OK(w, http.StatusOK, "", inventories)
}

// GetByProduct godoc
// @Summary Get stock by product
// @Tags Inventory
// @Security BearerAuth
// @Produce json
// @Param product_id path int true "Product ID"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/inventory/product/{product_id} [get]
func (h *InventoryHandler) GetByProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := httpreq.PathID(r, "product_id")
	if err != nil {
		httpresp.Error(w, r, err)
		return
	}

	inventory, err := h.getHandler.Handle(r.Context(), query.GetInventoryQuery{ProductID: productID})
	if err != nil {
		httpresp.Error(w, r, err)
		return
	}

	httpresp.OK(w, http.StatusOK, "", inventory)
}

// GetByBarcode godoc
// @Summary Get stock by barcode
// @Tags Inventory
// @Security BearerAuth
// @Produce json
// @Param barcode path string true "Barcode"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/inventory/barcode/{barcode} [get]
func (h *InventoryHandler) GetByBarcode(w http.ResponseWriter, r *http.Request) {
	inventory, err := h.getHandler.Handle(r.Context(), query.GetInventoryQuery{Barcode: mux.Vars(r)["barcode"]})
	if err != nil {
		httpresp.Error(w, r, err)
		return
	}

	httpresp.OK(w, http.StatusOK, "", inventory)
}

// SetQuantity godoc
// @Summary Set stock level
// @Description Overwrite the stock of a product (supervisor only)
// @Tags Inventory
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param product_id path int true "Product ID"
// @Param request body object{quantity=int} true "New quantity"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 409 {object} object{success=bool,error=string}
// @Router /api/inventory/{product_id}/quantity [put]
func (h *InventoryHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	productID, err := httpreq.PathID(r, "product_id")
	if err != nil {
		httpresp.Error(w, r, err)
		return
	}

	var req setQuantityRequest
	if err := httpreq.DecodeJSON(r, &req); err != nil {
		httpresp.Error(w, r, err)
		return
	}

	inventory, err := h.setQuantityHandler.Handle(r.Context(), command.SetQuantityCommand{
		ProductID: productID,
		Quantity:  *req.Quantity,
	})
	if err != nil {
		httpresp.Error(w, r, err)
		return
	}

	httpresp.OK(w, http.StatusOK, "Quantity updated successfully", inventory)
}

// RegisterRoutes registers all inventory routes
func (h *InventoryHandler) RegisterRoutes(router *mux.Router) {
	router.Handle("/api/inventory", middleware.AnyRole(h.ListInventory)).Methods("GET")
	router.Handle("/api/inventory/product/{product_id}", middleware.AnyRole(h.GetByProduct)).Methods("GET")
	router.Handle("/api/inventory/barcode/{barcode}", middleware.AnyRole(h.GetByBarcode)).Methods("GET")
	router.Handle("/api/inventory/{product_id}/quantity", middleware.Supervisor(h.SetQuantity)).Methods("PUT")
}
