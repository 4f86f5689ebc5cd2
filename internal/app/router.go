package app

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tair/pos-backoffice/pkg/auth"
	"github.com/tair/pos-backoffice/pkg/httpresp"
	"github.com/tair/pos-backoffice/pkg/middleware"
)

// RouterConfig carries what the HTTP surface needs besides the handlers
type RouterConfig struct {
	DB         *sql.DB
	Tokens     *auth.TokenManager
	Limiter    mux.MiddlewareFunc
	Swagger    http.Handler
	Middleware *middleware.Config
}

// NewRouter assembles public endpoints, the authenticated API and CORS
func NewRouter(h *Handlers, cfg RouterConfig) http.Handler {
	if cfg.Middleware == nil {
		cfg.Middleware = middleware.DefaultConfig()
	}

	router := mux.NewRouter()
	middleware.Register(router, cfg.Middleware)

	router.HandleFunc("/health", healthCheck(cfg.DB)).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler())
	if cfg.Swagger != nil {
		router.PathPrefix("/swagger/").Handler(cfg.Swagger)
	}

	api := router.NewRoute().Subrouter()
	api.Use(middleware.Authenticate(cfg.Tokens))
	if cfg.Limiter != nil {
		api.Use(cfg.Limiter)
	}

	h.Client.RegisterRoutes(api)
	h.Product.RegisterRoutes(api)
	h.Inventory.RegisterRoutes(api)
	h.Order.RegisterRoutes(api)
	h.Invoice.RegisterRoutes(api)
	h.Report.RegisterRoutes(api)

	return middleware.CORS(cfg.Middleware, router)
}

// HealthCheck godoc
// @Summary Health check
// @Description Check service health and database connectivity
// @Tags Health
// @Produce json
// @Success 200 {object} object{status=string}
// @Failure 503 {object} object{status=string,error=string}
// @Router /health [get]
func healthCheck(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if db != nil {
			if err := db.PingContext(ctx); err != nil {
				httpresp.JSON(w, http.StatusServiceUnavailable, map[string]string{
					"status": "unhealthy",
					"error":  err.Error(),
				})
				return
			}
		}

		httpresp.JSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	}
}
