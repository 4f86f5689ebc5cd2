package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tair/pos-backoffice/internal/report/usecase/query"
	"github.com/tair/pos-backoffice/pkg/httpreq"
	"github.com/tair/pos-backoffice/pkg/httpresp"
	"github.com/tair/pos-backoffice/pkg/middleware"
)

// ReportHandler serves sales reports
type ReportHandler struct {
	daySalesHandler *query.DaySalesHandler
}

// NewReportHandler creates a new report handler
func NewReportHandler(daySalesHandler *query.DaySalesHandler) *ReportHandler {
	return &ReportHandler{daySalesHandler: daySalesHandler}
}

// RegisterRoutes registers report routes on an authenticated router
func (h *ReportHandler) RegisterRoutes(router *mux.Router) {
	router.Handle("/api/reports/day-sales", middleware.Supervisor(h.GetDaySales)).Methods("GET")
}

// GetDaySales godoc
// @Summary Day sales between two UTC days, inclusive
// @Description Days without invoices are omitted (supervisor only)
// @Tags Reports
// @Security BearerAuth
// @Produce json
// @Param start query string true "Start day (YYYY-MM-DD)"
// @Param end query string true "End day (YYYY-MM-DD)"
// @Success 200 {object} object{success=bool,data=[]object{date=string,invoiced_orders=int,invoiced_items=int,total_revenue=number}}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 403 {object} object{success=bool,error=string}
// @Router /api/reports/day-sales [get]
func (h *ReportHandler) GetDaySales(w http.ResponseWriter, r *http.Request) {
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

	days, err := h.daySalesHandler.Handle(r.Context(), query.DaySalesQuery{Start: start, End: end})
	if err != nil {
		httpresp.Error(w, r, err)
		return
	}

	httpresp.OK(w, http.StatusOK, "", days)
}
