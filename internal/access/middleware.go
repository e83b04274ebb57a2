package access

import (
	"log/slog"
	"net/http"

	"github.com/meridian-erp/meridian-erp/internal/shared"
)

// Middleware applies the gate to HTTP routes.
type Middleware struct {
	Engine *Engine
	Logger *slog.Logger
	// OnDenied, when set, is invoked for every denial. Used to feed
	// the denial counter without coupling the gate to metrics.
	OnDenied func(module Module)
}

// RequireModule gates every request under a route on the module's
// access decision. Denials redirect with 303 See Other so the denied
// route does not remain in back-navigation history.
func (m Middleware) RequireModule(module Module) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, loading := UserFromRequest(r)
			decision := m.Engine.Evaluate(user, loading, module)
			switch decision.State {
			case StateAllowed:
				next.ServeHTTP(w, r)
			case StatePending:
				w.Header().Set("Retry-After", "1")
				http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
			default:
				if m.OnDenied != nil {
					m.OnDenied(module)
				}
				if m.Logger != nil {
					m.Logger.Info("module access denied",
						slog.String("module", string(module)),
						slog.String("redirect", decision.RedirectPath))
				}
				http.Redirect(w, r, decision.RedirectPath, http.StatusSeeOther)
			}
		})
	}
}

// UserFromRequest extracts the gate's view of the principal from the
// request session. The second return mirrors the session-still-loading
// state: true when the session middleware has not run at all.
func UserFromRequest(r *http.Request) (*User, bool) {
	sess := shared.SessionFromContext(r.Context())
	if sess == nil {
		return nil, true
	}
	id := sess.Identity()
	if id.UserID == "" {
		return nil, false
	}
	return &User{
		ID:         id.UserID,
		Role:       Role(id.Role),
		Department: Department(id.Department),
	}, false
}
