package user

type Permission string

const (
	// Ledger
	PermissionLedgerView    Permission = "ledger.view"
	PermissionLedgerPost    Permission = "ledger.post"
	PermissionLedgerVoid    Permission = "ledger.void"
	PermissionAccountManage Permission = "account.manage"

	// Payroll
	PermissionPayrollView    Permission = "payroll.view"
	PermissionPayrollRun     Permission = "payroll.run"
	PermissionPayrollConfirm Permission = "payroll.confirm"
	PermissionSalaryManage   Permission = "salary.manage"

	// Attendance
	PermissionAttendanceViewOwn Permission = "attendance.view_own"
	PermissionAttendanceClock   Permission = "attendance.clock"
	PermissionAttendanceManage  Permission = "attendance.manage"

	// Leave
	PermissionLeaveViewOwn Permission = "leave.view_own"
	PermissionLeaveCreate  Permission = "leave.create"
	PermissionLeaveViewAll Permission = "leave.view_all"

	// Approvals
	PermissionApprovalView   Permission = "approval.view"
	PermissionApprovalDecide Permission = "approval.decide"

	// Remittance
	PermissionRemittanceRecord Permission = "remittance.record"
	PermissionRemittanceClose  Permission = "remittance.close"

	// Employee / master data
	PermissionEmployeeViewAll Permission = "employee.view_all"
	PermissionEmployeeManage  Permission = "employee.manage"
	PermissionMasterManage    Permission = "master.manage"

	// User Management
	PermissionUserManage Permission = "user.manage"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		// Admin has all permissions
		PermissionLedgerView,
		PermissionLedgerPost,
		PermissionLedgerVoid,
		PermissionAccountManage,
		PermissionPayrollView,
		PermissionPayrollRun,
		PermissionPayrollConfirm,
		PermissionSalaryManage,
		PermissionAttendanceViewOwn,
		PermissionAttendanceClock,
		PermissionAttendanceManage,
		PermissionLeaveViewOwn,
		PermissionLeaveCreate,
		PermissionLeaveViewAll,
		PermissionApprovalView,
		PermissionApprovalDecide,
		PermissionRemittanceRecord,
		PermissionRemittanceClose,
		PermissionEmployeeViewAll,
		PermissionEmployeeManage,
		PermissionMasterManage,
		PermissionUserManage,
	},
	RoleFinance: {
		// Finance runs the ledger, payroll and remittance desks
		PermissionLedgerView,
		PermissionLedgerPost,
		PermissionLedgerVoid,
		PermissionAccountManage,
		PermissionPayrollView,
		PermissionPayrollRun,
		PermissionPayrollConfirm,
		PermissionSalaryManage,
		PermissionAttendanceViewOwn,
		PermissionAttendanceClock,
		PermissionAttendanceManage,
		PermissionLeaveViewOwn,
		PermissionLeaveCreate,
		PermissionLeaveViewAll,
		PermissionApprovalView,
		PermissionApprovalDecide,
		PermissionRemittanceRecord,
		PermissionRemittanceClose,
		PermissionEmployeeViewAll,
	},
	RoleStaff: {
		// Staff has self-service access only
		PermissionAttendanceViewOwn,
		PermissionAttendanceClock,
		PermissionLeaveViewOwn,
		PermissionLeaveCreate,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
