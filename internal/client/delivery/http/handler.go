package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tair/pos-backoffice/internal/client/usecase/command"
	"github.com/tair/pos-backoffice/internal/client/usecase/query"
	"github.com/tair/pos-backoffice/pkg/httpreq"
	"github.com/tair/pos-backoffice/pkg/httpresp"
	"github.com/tair/pos-backoffice/pkg/middleware"
)

// ClientHandler handles HTTP requests for clients
type ClientHandler struct {
	createHandler    *command.CreateClientHandler
	updateHandler    *command.UpdateClientHandler
	setActiveHandler *command.SetClientActiveHandler
	getHandler       *query.GetClientHandler
	listHandler      *query.ListClientsHandler
}

// NewClientHandler creates a new client handler
func NewClientHandler(
	createHandler *command.CreateClientHandler,
	updateHandler *command.UpdateClientHandler,
	setActiveHandler *command.SetClientActiveHandler,
	getHandler *query.GetClientHandler,
	listHandler *query.ListClientsHandler,
) *ClientHandler {
	return &ClientHandler{
		createHandler:    createHandler,
		updateHandler:    updateHandler,
		setActiveHandler: setActiveHandler,
		getHandler:       getHandler,
		listHandler:      listHandler,
	}
}

type clientRequest struct {
	Name string `json:"name" validate:"required"`
}

type setActiveRequest struct {
	Active *bool `json:"active" validate:"required"`
}

// CreateClient godoc
// @Summary Create client
// @Description Create a supplier or brand (supervisor only)
// @Tags Clients
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{name=string} true "Client data"
// @Success 201 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 409 {object} object{success=bool,error=string}
// @Router /api/clients [post]
func (h *ClientHandler) CreateClient(w http.ResponseWriter, r *http.Request) {
	var req clientRequest
	if err := httpreq.DecodeJSON(r, &req); err != nil {
		httpresp.Error(w, r, err)
		return
	}

	client, err := h.createHandler.Handle(r.Context(), command.CreateClientCommand{Name: req.Name})
	if err != nil {
		httpresp.Error(w, r, err)
		return
	}

	httpresp.OK(w, http.StatusCreated, "Client created successfully", client)
}

// UpdateClient godoc
// @Summary Rename client
// @Tags Clients
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Client ID"
// @Param request body object{name=string} true "Client data"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 404 {object} object{success=bool,error=string}
// @Failure 409 {object} object{success=bool,error=string}
// @Router /api/clients/{id} [put]
func (h *ClientHandler) UpdateClient(w http.ResponseWriter, r *http.Request) {
	id, err := httpreq.PathID(r, "id")
	if err != nil {
		httpresp.Error(w, r, err)
		return
	}

	var req clientRequest
	if err := httpreq.DecodeJSON(r, &req); err != nil {
		httpresp.Error(w, r, err)
		return
	}

	client, err := h.updateHandler.Handle(r.Context(), command.UpdateClientCommand{ID: id, Name: req.Name})
	if err != nil {
		httpresp.Error(w, r, err)
		return
	}

	httpresp.OK(w, http.StatusOK, "Client updated successfully", client)
}

// SetClientActive godoc
// @Summary Activate or deactivate client
// @Description Deactivation is refused while the client owns products
// @Tags Clients
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Client ID"
// @Param request body object{active=bool} true "Status"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 409 {object} object{success=bool,error=string}
// @Router /api/clients/{id}/status [patch]
func (h *ClientHandler) SetClientActive(w http.ResponseWriter, r *http.Request) {
	id, err := httpreq.PathID(r, "id")
	if err != nil {
		httpresp.Error(w, r, err)
		return
	}

	var req setActiveRequest
	if err := httpreq.DecodeJSON(r, &req); err != nil {
		httpresp.Error(w, r, err)
		return
	}

	client, err := h.setActiveHandler.Handle(r.Context(), command.SetClientActiveCommand{ID: id, Active: *req.Active})
	if err != nil {
		httpresp.Error(w, r, err)
		return
	}

	httpresp.OK(w, http.StatusOK, "Client status updated", client)
}

// GetClient godoc
// @Summary Get client by ID
// @Tags Clients
// @Security BearerAuth
// @Produce json
// @Param id path int true "Client ID"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/clients/{id} [get]
func (h *ClientHandler) GetClient(w http.ResponseWriter, r *http.Request) {
	id, err := httpreq.PathID(r, "id")
	if err != nil {
		httpresp.Error(w, r, err)
		return
	}

	client, err := h.getHandler.Handle(r.Context(), query.GetClientQuery{ID: id})
	if err != nil {
		httpresp.Error(w, r, err)
		return
	}

	httpresp.OK(w, http.StatusOK, "", client)
}

// ListClients godoc
// @Summary List clients
// @Tags Clients
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Limit"
// @Param offset query int false "Offset"
// @Success 200 {object} object{success=bool,data=array}
// @Router /api/clients [get]
func (h *ClientHandler) ListClients(w http.ResponseWriter, r *http.Request) {
	limit, offset := httpreq.Pagination(r)

	clients, err := h.listHandler.Handle(r.Context(), query.ListClientsQuery{Limit: limit, Offset: offset})
	if err != nil {
		httpresp.Error(w, r, err)
		return
	}

	httpresp.OK(w, http.StatusOK, "", clients)
}

// RegisterRoutes registers client routes on an authenticated router
func (h *ClientHandler) RegisterRoutes(router *mux.Router) {
	router.Handle("/api/clients", middleware.AnyRole(h.ListClients)).Methods("GET")
	router.Handle("/api/clients", middleware.Supervisor(h.CreateClient)).Methods("POST")
	router.Handle("/api/clients/{id}", middleware.AnyRole(h.GetClient)).Methods("GET")
	router.Handle("/api/clients/{id}", middleware.Supervisor(h.UpdateClient)).Methods("PUT")
	router.Handle("/api/clients/{id}/status", middleware.Supervisor(h.SetClientActive)).Methods("PATCH")
}
