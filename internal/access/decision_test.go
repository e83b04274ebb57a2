package access

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/meridian-erp/meridian-erp/internal/shared"
)

func newTestEngine() *Engine {
	return NewEngine(DefaultPolicy(), DefaultResolver(), "/auth/login")
}

func TestEvaluatePendingWhileLoading(t *testing.T) {
	engine := newTestEngine()
	decision := engine.Evaluate(nil, true, ModuleHR)
	if decision.State != StatePending {
		t.Fatalf("state = %v, want pending", decision.State)
	}
	if decision.RedirectPath != "" {
		t.Fatalf("pending decision carries redirect %q", decision.RedirectPath)
	}
}

func TestEvaluateUnauthenticatedRedirectsToLogin(t *testing.T) {
	engine := newTestEngine()
	decision := engine.Evaluate(nil, false, ModuleFinance)
	if decision.State != StateDenied {
		t.Fatalf("state = %v, want denied", decision.State)
	}
	if decision.RedirectPath != "/auth/login" {
		t.Fatalf("redirect = %s, want /auth/login", decision.RedirectPath)
	}
}

func TestEvaluateDeniedUsesFallback(t *testing.T) {
	engine := newTestEngine()
	user := &User{ID: "7", Role: RoleEmployee, Department: DeptSales}

	decision := engine.Evaluate(user, false, ModuleFinance)
	if decision.State != StateDenied {
		t.Fatalf("state = %v, want denied", decision.State)
	}
	if decision.RedirectPath != "/sales/orders" {
		t.Fatalf("redirect = %s, want /sales/orders", decision.RedirectPath)
	}

	allowed := engine.Evaluate(user, false, ModuleSales)
	if !allowed.Allowed() {
		t.Fatal("own department module denied")
	}
}

func TestCanAccessMatrix(t *testing.T) {
	engine := newTestEngine()
	admin := &User{ID: "1", Role: RoleAdmin, Department: DeptHR}
	for _, dept := range Departments() {
		if !engine.CanAccess(admin, Module(dept)) {
			t.Fatalf("admin denied %s", dept)
		}
	}
	employee := &User{ID: "2", Role: RoleEmployee, Department: DeptCRM}
	for _, dept := range Departments() {
		got := engine.CanAccess(employee, Module(dept))
		if got != (dept == DeptCRM) {
			t.Fatalf("employee %s access to %s = %v", DeptCRM, dept, got)
		}
	}
}

func TestRequireModuleRedirectsWithSeeOther(t *testing.T) {
	mw := Middleware{Engine: newTestEngine()}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := mw.RequireModule(ModuleFinance)(next)

	sess := &shared.Session{}
	sess.SetIdentity(shared.Identity{UserID: "7", Role: "employee", Department: "Sales"})
	req := httptest.NewRequest(http.MethodGet, "/finance/transactions", nil)
	req = req.WithContext(shared.ContextWithSession(req.Context(), sess))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if got := rec.Header().Get("Location"); got != "/sales/orders" {
		t.Fatalf("location = %s, want /sales/orders", got)
	}
}

func TestRequireModuleAllowsOwnDepartment(t *testing.T) {
	mw := Middleware{Engine: newTestEngine()}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	handler := mw.RequireModule(ModuleSales)(next)

	sess := &shared.Session{}
	sess.SetIdentity(shared.Identity{UserID: "7", Role: "employee", Department: "Sales"})
	req := httptest.NewRequest(http.MethodGet, "/sales/orders", nil)
	req = req.WithContext(shared.ContextWithSession(req.Context(), sess))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}
}
