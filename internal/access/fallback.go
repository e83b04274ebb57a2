package access

// Route pairs a navigable path with the module that owns it, so the
// consistency between the fallback table and the Policy stays checkable.
type Route struct {
	Path   string
	Module Module
}

// Resolver chooses where to send a user who failed the access check.
// The home route mapped for a department must always be a route that
// department is permitted to view; a mismatch is a configuration bug.
type Resolver struct {
	// Root is where admins land.
	Root Route
	// Homes maps each department to its canonical home route.
	Homes map[Department]Route
	// Default is the caller-supplied fallback for unrecognized
	// departments.
	Default Route
}

// DefaultResolver returns the standard department home table.
func DefaultResolver() Resolver {
	return Resolver{
		Root:    Route{Path: "/", Module: ModuleDashboardRoot},
		Default: Route{Path: "/auth/login", Module: ""},
		Homes: map[Department]Route{
			DeptHR:            {Path: "/hr/employees", Module: ModuleHR},
			DeptSales:         {Path: "/sales/orders", Module: ModuleSales},
			DeptPurchasing:    {Path: "/purchasing/orders", Module: ModulePurchasing},
			DeptInventory:     {Path: "/inventory/items", Module: ModuleInventory},
			DeptManufacturing: {Path: "/manufacturing/orders", Module: ModuleManufacturing},
			DeptCRM:           {Path: "/crm/leads", Module: ModuleCRM},
			DeptSCM:           {Path: "/scm/shipments", Module: ModuleSCM},
			DeptFinance:       {Path: "/finance/transactions", Module: ModuleFinance},
		},
	}
}

// Fallback returns the path a denied user should be sent to.
func (r Resolver) Fallback(user User) string {
	if user.Role == RoleAdmin {
		return r.Root.Path
	}
	if home, ok := r.Homes[user.Department]; ok {
		return home.Path
	}
	return r.Default.Path
}

// HomeRoute exposes the mapped route for a department, reporting
// whether the department is present in the table.
func (r Resolver) HomeRoute(dept Department) (Route, bool) {
	home, ok := r.Homes[dept]
	return home, ok
}
