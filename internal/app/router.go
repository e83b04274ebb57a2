package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/meridian-erp/meridian-erp/internal/access"
	attendancehttp "github.com/meridian-erp/meridian-erp/internal/attendance/http"
	"github.com/meridian-erp/meridian-erp/internal/auth"
	"github.com/meridian-erp/meridian-erp/internal/employees"
	"github.com/meridian-erp/meridian-erp/internal/observability"
	"github.com/meridian-erp/meridian-erp/internal/platform/httpx"
	"github.com/meridian-erp/meridian-erp/internal/shared"
	"github.com/meridian-erp/meridian-erp/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger            *slog.Logger
	Config            *Config
	SessionManager    *shared.SessionManager
	CSRFManager       *shared.CSRFManager
	AccessEngine      *access.Engine
	Resolver          access.Resolver
	AuthHandler       *auth.Handler
	EmployeesHandler  *employees.Handler
	AttendanceHandler *attendancehttp.Handler
	JobsHandler       *jobs.Handler
	Metrics           *observability.Metrics
}

// NewRouter constructs the chi.Router with Meridian defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:         params.Logger,
		Config:         params.Config,
		SessionManager: params.SessionManager,
		CSRFManager:    params.CSRFManager,
		Metrics:        params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	gate := access.Middleware{
		Engine: params.AccessEngine,
		Logger: params.Logger,
	}
	if params.Metrics != nil {
		gate.OnDenied = func(module access.Module) {
			params.Metrics.RecordAccessDenial(string(module))
		}
	}

	// Root dashboard: admins land here, everyone else is sent to
	// their department home.
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		user, loading := access.UserFromRequest(r)
		decision := params.AccessEngine.Evaluate(user, loading, access.ModuleDashboardRoot)
		switch decision.State {
		case access.StateAllowed:
			httpx.JSON(w, http.StatusOK, map[string]any{
				"dashboard":   "root",
				"departments": access.Departments(),
			})
		case access.StatePending:
			w.Header().Set("Retry-After", "1")
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		default:
			http.Redirect(w, r, decision.RedirectPath, http.StatusSeeOther)
		}
	})

	params.AuthHandler.MountRoutes(r)

	// Each department home is gated on its own module; the resolver
	// table is the single source of the paths.
	for _, dept := range access.Departments() {
		// The HR home is served by the employee directory below.
		if dept == access.DeptHR && params.EmployeesHandler != nil {
			continue
		}
		home, ok := params.Resolver.HomeRoute(dept)
		if !ok {
			continue
		}
		dept := dept
		r.Group(func(gr chi.Router) {
			gr.Use(gate.RequireModule(home.Module))
			gr.Get(home.Path, func(w http.ResponseWriter, r *http.Request) {
				httpx.JSON(w, http.StatusOK, map[string]string{
					"module":     string(home.Module),
					"department": string(dept),
				})
			})
		})
	}

	if params.EmployeesHandler != nil {
		r.Group(func(gr chi.Router) {
			gr.Use(gate.RequireModule(access.ModuleHR))
			params.EmployeesHandler.MountRoutes(gr)
		})
	}

	if params.AttendanceHandler != nil {
		r.Group(func(gr chi.Router) {
			gr.Use(gate.RequireModule(access.ModuleHR))
			params.AttendanceHandler.MountRoutes(gr)
		})
	}

	if params.JobsHandler != nil {
		r.Route("/jobs", params.JobsHandler.MountRoutes)
	}

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}
