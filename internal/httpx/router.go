package httpx

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/AngelCh415/marketing-dashboard/internal/metrics"
	"github.com/AngelCh415/marketing-dashboard/internal/store"
	"github.com/AngelCh415/marketing-dashboard/internal/utils"
)

// API paths. Clients use them as cache keys too.
const (
	PathMetrics        = "/api/metrics"
	PathCampaigns      = "/api/campaigns"
	PathRevenueData    = "/api/revenue-data"
	PathTrafficSources = "/api/traffic-sources"
	PathExport         = "/api/export"
	PathHealth         = "/api/health"
)

type Options struct {
	Version     string
	Environment string
	Started     time.Time
	Now         func() time.Time
	// Registry, when set, receives the HTTP collectors and is served on /metrics.
	Registry *prometheus.Registry
}

type api struct {
	log  *slog.Logger
	st   store.Store
	opts Options
}

func NewRouter(log *slog.Logger, st store.Store, opts Options) http.Handler {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Started.IsZero() {
		opts.Started = opts.Now()
	}
	a := &api{log: log, st: st, opts: opts}

	var httpMetrics *metrics.HTTP
	if opts.Registry != nil {
		httpMetrics = metrics.NewHTTP(opts.Registry)
	}

	mux := chi.NewRouter()
	mux.Use(utils.RequestID)
	mux.Use(utils.Logger(log, httpMetrics))
	mux.Use(utils.Recover(log))
	mux.Use(utils.SecurityHeaders)
	mux.Use(utils.CORS)

	mux.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteError(w, http.StatusNotFound, "Not Found")
	})
	mux.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	mux.Get(PathMetrics, a.getMetrics)
	mux.Get(PathCampaigns, a.getCampaigns)
	mux.Get(PathCampaigns+"/{id}", a.getCampaign)
	mux.Get(PathRevenueData, a.getRevenueData)
	mux.Get(PathTrafficSources, a.getTrafficSources)
	mux.Get(PathExport, a.export)
	mux.Get(PathHealth, a.health)

	mux.Post(PathMetrics, a.createMetrics)
	mux.Post(PathCampaigns, a.createCampaign)
	mux.Post(PathRevenueData, a.createRevenuePoint)
	mux.Post(PathTrafficSources, a.createTrafficSource)

	if opts.Registry != nil {
		mux.Method(http.MethodGet, "/metrics", metrics.Handler(opts.Registry))
	}

	return mux
}
