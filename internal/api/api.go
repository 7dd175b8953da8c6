package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jbweber/homelab/territoire/internal/logger"
	"github.com/jbweber/homelab/territoire/internal/metrics"
)

// API holds the stores behind the HTTP handlers.
type API struct {
	departements DepartementsStore
	villes       VillesStore
	metrics      *metrics.Metrics
	log          *logger.Logger
}

// NewAPI creates a new API instance. m and log may be nil.
func NewAPI(departements DepartementsStore, villes VillesStore, m *metrics.Metrics, log *logger.Logger) *API {
	if log == nil {
		log = logger.NewNop()
	}
	return &API{departements: departements, villes: villes, metrics: m, log: log}
}

// RegisterRoutes registers all API endpoints to the given chi router.
func (a *API) RegisterRoutes(r chi.Router) {
	RegisterDepartementsRoutes(r, NewDepartements(a.departements, a.villes, a.metrics, a.log))
	RegisterVillesRoutes(r, NewVilles(a.villes, a.metrics, a.log))
}

// NewRouter builds the full HTTP handler: middleware, health check, the
// prometheus endpoint for gatherer (skipped when nil) and the API routes.
func NewRouter(a *API, gatherer prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(a.log))
	r.Use(RequestMetrics(a.metrics))
	r.Use(middleware.Recoverer)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		if _, err := fmt.Fprintln(w, "Territoire web service is running!"); err != nil {
			a.log.Warn("failed to write response", "error", err)
		}
	})
	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	a.RegisterRoutes(r)
	return r
}
