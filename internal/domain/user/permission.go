package user

type Permission string

const (
	// Self service
	PermissionClock         Permission = "time_record.clock"
	PermissionTimeRecordOwn Permission = "time_record.view_own"
	PermissionTimesheetOwn  Permission = "timesheet.view_own"

	// Administration
	PermissionTimeRecordViewAll Permission = "time_record.view_all"
	PermissionTimeRecordCorrect Permission = "time_record.correct"
	PermissionEmployeeManage    Permission = "employee.manage"
	PermissionTimesheetViewAll  Permission = "timesheet.view_all"
	PermissionPayrollCalculate  Permission = "payroll.calculate"
	PermissionReportsExport     Permission = "reports.export"
	PermissionAuditView         Permission = "audit.view"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionClock,
		PermissionTimeRecordOwn,
		PermissionTimesheetOwn,
		PermissionTimeRecordViewAll,
		PermissionTimeRecordCorrect,
		PermissionEmployeeManage,
		PermissionTimesheetViewAll,
		PermissionPayrollCalculate,
		PermissionReportsExport,
		PermissionAuditView,
	},
	RoleEmployee: {
		PermissionClock,
		PermissionTimeRecordOwn,
		PermissionTimesheetOwn,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	for _, p := range RolePermissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}
