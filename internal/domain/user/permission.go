package user

type Permission string

const (
	// Self service
	PermissionViewOwnProfile Permission = "profile.view_own"
	PermissionPayslipViewOwn Permission = "payslip.view_own"

	// Payroll runs
	PermissionPayrollManage Permission = "payroll.manage"

	// Employee Management
	PermissionEmployeeManage Permission = "employee.manage"

	// Reports
	PermissionReportsView Permission = "reports.view"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionViewOwnProfile,
		PermissionPayrollManage,
		PermissionEmployeeManage,
		PermissionReportsView,
	},
	RoleEmployee: {
		PermissionViewOwnProfile,
		PermissionPayslipViewOwn,
	},
}
