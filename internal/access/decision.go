package access

// State enumerates the outcome of a gate evaluation. Pending is the
// only non-terminal state; once a session resolves the engine never
// transitions back into it for the same evaluation.
type State int

const (
	StatePending State = iota
	StateAllowed
	StateDenied
)

// Decision is the derived outcome of one navigation attempt. It is
// recomputed on every evaluation and never persisted.
type Decision struct {
	State        State
	RedirectPath string
}

// Allowed reports whether the route may render.
func (d Decision) Allowed() bool { return d.State == StateAllowed }

// Engine gates rendering of protected dashboard routes. It never
// returns an error: absence of a session or a denied module always
// resolves to a navigation outcome.
type Engine struct {
	policy    Policy
	resolver  Resolver
	loginPath string
}

// NewEngine wires a Policy and Resolver into a gate.
func NewEngine(policy Policy, resolver Resolver, loginPath string) *Engine {
	if loginPath == "" {
		loginPath = "/auth/login"
	}
	return &Engine{policy: policy, resolver: resolver, loginPath: loginPath}
}

// Evaluate runs the gate for one navigation attempt. A nil user means
// unauthenticated; loading means the session is still resolving and no
// decision can be made yet.
func (e *Engine) Evaluate(user *User, loading bool, module Module) Decision {
	if loading {
		return Decision{State: StatePending}
	}
	if user == nil {
		return Decision{State: StateDenied, RedirectPath: e.loginPath}
	}
	if e.policy.Allows(user.Role, user.Department, module) {
		return Decision{State: StateAllowed}
	}
	return Decision{State: StateDenied, RedirectPath: e.resolver.Fallback(*user)}
}

// CanAccess is the boolean contract exposed to view components.
func (e *Engine) CanAccess(user *User, module Module) bool {
	return e.Evaluate(user, false, module).Allowed()
}

// ResolveFallback exposes the resolver for callers that already hold a
// denial and only need the target path.
func (e *Engine) ResolveFallback(user User) string {
	return e.resolver.Fallback(user)
}
