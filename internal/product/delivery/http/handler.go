package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/tair/pos-backoffice/internal/product/usecase/command"
	"github.com/tair/pos-backoffice/internal/product/usecase/query"
	"github.com/tair/pos-backoffice/pkg/httpreq"
	"github.com/tair/pos-backoffice/pkg/httpresp"
	"github.com/tair/pos-backoffice/pkg/middleware"
)

// ProductHandler handles HTTP requests for products using CQRS pattern
type ProductHandler struct {
	// Command handlers
	createHandler *command.CreateProductHandler
	updateHandler *command.UpdateProductHandler
	deleteHandler *command.DeleteProductHandler

	// Query handlers
	getHandler  *query.GetProductHandler
	listHandler *query.ListProductsHandler
}

// NewProductHandler creates a new product handler
func NewProductHandler(
	createHandler *command.CreateProductHandler,
	updateHandler *command.UpdateProductHandler,
	deleteHandler *command.DeleteProductHandler,
	getHandler *query.GetProductHandler,
	listHandler *query.ListProductsHandler,
) *ProductHandler {
	return &ProductHandler{
		createHandler: createHandler,
		updateHandler: updateHandler,
		deleteHandler: deleteHandler,
		getHandler:    getHandler,
		listHandler:   listHandler,
	}
}

type createProductRequest struct {
	Barcode  string          `json:"barcode" validate:"required"`
	ClientID uint            `json:"client_id" validate:"required"`
	Name     string          `json:"name" validate:"required"`
	MRP      decimal.Decimal `json:"mrp"`
	ImageURL string          `json:"image_url" validate:"omitempty,url"`
}

type updateProductRequest struct {
	ClientID uint            `json:"client_id"`
	Name     string          `json:"name" validate:"required"`
	MRP      decimal.Decimal `json:"mrp"`
	ImageURL string          `json:"image_url" validate:"omitempty,url"`
}

// RegisterRoutes registers product routes on an authenticated router
func (h *ProductHandler) RegisterRoutes(router *mux.Router) {
	router.Handle("/api/products", middleware.AnyRole(h.ListProducts)).Methods("GET")
	router.Handle("/api/products", middleware.Supervisor(h.CreateProduct)).Methods("POST")
	router.Handle("/api/products/barcode/{barcode}", middleware.AnyRole(h.GetProductByBarcode)).Methods("GET")
	router.Handle("/api/products/{id}", middleware.AnyRole(h.GetProduct)).Methods("GET")
	router.Handle("/api/products/{id}", middleware.Supervisor(h.UpdateProduct)).Methods("PUT")
	router.Handle("/api/products/{id}", middleware.Supervisor(h.DeleteProduct)).Methods("DELETE")
}

// CreateProduct godoc
// @Summary Create product
// @Description Create a product and its empty stock record (supervisor only)
// @Tags Products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{barcode=string,client_id=int,name=string,mrp=number,image_url=string} true "Product data"
// @Success 201 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Failure 409 {object} object{success=bool,error=string}
// @Router /api/products [post]
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := httpreq.DecodeJSON(r, &req); err != nil {
		httpresp.Error(w, r, err)
		return
	}

	product, err := h.createHandler.Handle(r.Context(), command.CreateProductCommand{
		Barcode:  req.Barcode,
		ClientID: req.ClientID,
		Name:     req.Name,
		MRP:      req.MRP,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		httpresp.Error(w, r, err)
		return
	}

	httpresp.OK(w, http.StatusCreated, "Product created successfully", product)
}

// ListProducts godoc
// @Summary List products
// @Tags Products
// @Security BearerAuth
// @Produce json
// @Param client_id query int false "Only products of this client"
// @Param limit query int false "Limit"
// @Param offset query int false "Offset"
// @Success 200 {object} object{success=bool,data=array}
// @Router /api/products [get]
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	limit, offset := httpreq.Pagination(r)

	var clientID uint
	if raw := r.URL.Query().Get("client_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			httpresp.BadRequest(w, "Invalid client_id")
			return
		}
		clientID = uint(id)
	}

	products, err := h.listHandler.Handle(r.Context(), query.ListProductsQuery{
		ClientID: clientID,
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		httpresp.Error(w, r, err)
		return
	}

	httpresp.OK(w, http.StatusOK, "", products)
}

// GetProduct godoc
// @Summary Get product by ID
// @Tags Products
// @Security BearerAuth
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/products/{id} [get]
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := httpreq.PathID(r, "id")
	if err != nil {
		httpresp.Error(w, r, err)
		return
	}

	product, err := h.getHandler.Handle(r.Context(), query.GetProductQuery{ID: id})
	if err != nil {
		httpresp.Error(w, r, err)
		return
	}

	httpresp.OK(w, http.StatusOK, "", product)
}

// GetProductByBarcode godoc
// @Summary Get product by barcode
// @Tags Products
// @Security BearerAuth
// @Produce json
// @Param barcode path string true "Barcode"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/products/barcode/{barcode} [get]
func (h *ProductHandler) GetProductByBarcode(w http.ResponseWriter, r *http.Request) {
	product, err := h.getHandler.Handle(r.Context(), query.GetProductQuery{Barcode: mux.Vars(r)["barcode"]})
	if err != nil {
		httpresp.Error(w, r, err)
		return
	}

	httpresp.OK(w, http.StatusOK, "", product)
}

// UpdateProduct godoc
// @Summary Update product
// @Description Barcode cannot be changed (supervisor only)
// @Tags Products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param request body object{client_id=int,name=string,mrp=number,image_url=string} true "Product data"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/products/{id} [put]
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := httpreq.PathID(r, "id")
	if err != nil {
		httpresp.Error(w, r, err)
		return
	}

	var req updateProductRequest
	if err := httpreq.DecodeJSON(r, &req); err != nil {
		httpresp.Error(w, r, err)
		return
	}

	product, err := h.updateHandler.Handle(r.Context(), command.UpdateProductCommand{
		ID:       id,
		ClientID: req.ClientID,
		Name:     req.Name,
		MRP:      req.MRP,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		httpresp.Error(w, r, err)
		return
	}

	httpresp.OK(w, http.StatusOK, "Product updated successfully", product)
}

// DeleteProduct godoc
// @Summary Delete product
// @Description Deletes the product and its stock record (supervisor only)
// @Tags Products
// @Security BearerAuth
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} object{success=bool,message=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/products/{id} [delete]
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := httpreq.PathID(r, "id")
	if err != nil {
		httpresp.Error(w, r, err)
		return
	}

	if err := h.deleteHandler.Handle(r.Context(), command.DeleteProductCommand{ID: id}); err != nil {
		httpresp.Error(w, r, err)
		return
	}

	httpresp.OK(w, http.StatusOK, "Product deleted successfully", nil)
}
