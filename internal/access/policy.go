package access

// Policy declares, as data, which (role, department) pairs may view
// which module's dashboard. It is injected into the Engine rather than
// read from a package-level table so tests can substitute alternate
// policies.
type Policy struct {
	// AdminRoles bypass department scoping for every module.
	AdminRoles map[Role]struct{}
	// Departments enumerates the known department tags. Unknown
	// departments or modules resolve to deny.
	Departments map[Department]struct{}
}

// DefaultPolicy returns the standard dashboard policy: admins see
// everything, everyone else sees only their own department's module.
func DefaultPolicy() Policy {
	depts := make(map[Department]struct{})
	for _, d := range Departments() {
		depts[d] = struct{}{}
	}
	return Policy{
		AdminRoles:  map[Role]struct{}{RoleAdmin: {}},
		Departments: depts,
	}
}

// Allows reports whether a user with the given role and department may
// view the requested module. Deny-by-default: any combination not
// explicitly allowed is denied.
func (p Policy) Allows(role Role, dept Department, module Module) bool {
	if _, ok := p.AdminRoles[role]; ok {
		return true
	}
	if _, ok := p.Departments[dept]; !ok {
		return false
	}
	return Module(dept) == module
}
