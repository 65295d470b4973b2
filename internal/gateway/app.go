package gateway

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"ProductAPI/internal/auth"
	"ProductAPI/internal/catalog"
	"ProductAPI/pkg/kit"
)

type HTTPDeps struct {
	Log      *zap.Logger
	Service  string
	Registry *prometheus.Registry

	MetricsEnabled bool
	MetricsToken   string
}

type Deps struct {
	Users    auth.UserStore
	Products catalog.Store
	Sessions *auth.SessionManager
	Pool     Pool
}

// Pool reports whether the product task pool still accepts work.
type Pool interface {
	Closed() bool
}

func NewHandler(deps Deps, httpDeps HTTPDeps) (http.Handler, error) {
	if deps.Users == nil || deps.Products == nil || deps.Sessions == nil {
		return nil, errors.New("gateway: users, products and sessions are required")
	}
	if httpDeps.Log == nil {
		httpDeps.Log = zap.NewNop()
	}

	users := &auth.Server{
		Log:      httpDeps.Log,
		Store:    deps.Users,
		Sessions: deps.Sessions,
	}
	products := &catalog.Server{
		Store:   deps.Products,
		Creator: &catalog.Creator{Store: deps.Products},
		Log:     httpDeps.Log,
	}

	d, err := kit.NewDispatcher(Rules(users, products)...)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	setupMiddleware(r, httpDeps)
	metricsOn := setupMetrics(r, httpDeps, d)

	// the gate sits in front of every route; it only acts on the protected prefix
	r.Use(deps.Sessions.LoadSession)
	r.Use(auth.Gate(httpDeps.Log))

	if metricsOn {
		r.With(kit.MetricsAuth(httpDeps.MetricsToken)).
			Handle("/metrics", promhttp.HandlerFor(httpDeps.Registry, promhttp.HandlerOpts{}))
	}
	r.Get("/healthz", healthz)
	r.Get("/readyz", readyz(deps.Pool, httpDeps.Log))

	r.Mount("/", d)

	return r, nil
}

func setupMiddleware(r *chi.Mux, deps HTTPDeps) {
	r.Use(chimw.RequestID)
	r.Use(kit.EchoRequestID)
	r.Use(kit.Recoverer)
	r.Use(kit.Logging(deps.Log))
}

// setupMetrics instruments the mux and reports whether /metrics should be served.
func setupMetrics(r *chi.Mux, deps HTTPDeps, d *kit.Dispatcher) bool {
	if deps.Registry == nil {
		return false
	}

	metrics := kit.NewMetrics(deps.Registry)
	r.Use(metrics.Middleware(deps.Service, kit.RoutePatternLabel(d)))

	return deps.MetricsEnabled
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func readyz(pool Pool, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		if pool != nil && pool.Closed() {
			log.Warn("readyz failed: task pool closed")
			kit.WriteError(w, http.StatusServiceUnavailable, "not ready")
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}
