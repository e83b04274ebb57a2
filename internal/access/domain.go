package access

// Role groups users by their platform privileges.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

// Department identifies the business area a user belongs to.
type Department string

const (
	DeptHR            Department = "HR"
	DeptSales         Department = "Sales"
	DeptPurchasing    Department = "Purchasing"
	DeptInventory     Department = "Inventory"
	DeptManufacturing Department = "Manufacturing"
	DeptCRM           Department = "CRM"
	DeptSCM           Department = "SCM"
	DeptFinance       Department = "Finance"
)

// Departments lists every known department tag in declaration order.
func Departments() []Department {
	return []Department{
		DeptHR,
		DeptSales,
		DeptPurchasing,
		DeptInventory,
		DeptManufacturing,
		DeptCRM,
		DeptSCM,
		DeptFinance,
	}
}

// Module is the unit of access control: a department-scoped dashboard
// area, or a cross-cutting tag such as the root dashboard.
type Module string

const (
	ModuleDashboardRoot Module = "dashboard-root"
	ModuleHR            Module = Module(DeptHR)
	ModuleSales         Module = Module(DeptSales)
	ModulePurchasing    Module = Module(DeptPurchasing)
	ModuleInventory     Module = Module(DeptInventory)
	ModuleManufacturing Module = Module(DeptManufacturing)
	ModuleCRM           Module = Module(DeptCRM)
	ModuleSCM           Module = Module(DeptSCM)
	ModuleFinance       Module = Module(DeptFinance)
)

// User describes the authenticated principal as seen by the gate.
type User struct {
	ID         string
	Role       Role
	Department Department
}
