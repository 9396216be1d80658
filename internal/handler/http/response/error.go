package response

import (
	"errors"
	"net/http"

	"github.com/remitdesk/backoffice-go/internal/domain/approval"
	"github.com/remitdesk/backoffice-go/internal/domain/attendance"
	"github.com/remitdesk/backoffice-go/internal/domain/auth"
	"github.com/remitdesk/backoffice-go/internal/domain/employee"
	"github.com/remitdesk/backoffice-go/internal/domain/expense"
	"github.com/remitdesk/backoffice-go/internal/domain/leave"
	"github.com/remitdesk/backoffice-go/internal/domain/ledger"
	"github.com/remitdesk/backoffice-go/internal/domain/master"
	"github.com/remitdesk/backoffice-go/internal/domain/payroll"
	"github.com/remitdesk/backoffice-go/internal/domain/remittance"
	"github.com/remitdesk/backoffice-go/internal/domain/user"
	"github.com/remitdesk/backoffice-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth / user
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or missing token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserInactive):
		Forbidden(w, "User account is inactive")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrPermissionRequired):
		Forbidden(w, "Insufficient permissions")

	// Ledger
	case errors.Is(err, ledger.ErrAccountNotFound):
		NotFound(w, "Account not found")
	case errors.Is(err, ledger.ErrAccountCodeExists):
		Conflict(w, "Account code already exists")
	case errors.Is(err, ledger.ErrInvalidAccountType),
		errors.Is(err, ledger.ErrInvalidParentLevel):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, ledger.ErrAccountInUse):
		Conflict(w, "Account is referenced by journal lines")
	case errors.Is(err, ledger.ErrEntryNotFound):
		NotFound(w, "Journal entry not found")
	case errors.Is(err, ledger.ErrEntryNumberExists):
		Conflict(w, "Journal entry number already exists")
	case errors.Is(err, ledger.ErrTooFewLines),
		errors.Is(err, ledger.ErrLineMissingAccount),
		errors.Is(err, ledger.ErrInvalidLineAmounts),
		errors.Is(err, ledger.ErrUnbalancedEntry),
		errors.Is(err, ledger.ErrVoidReasonRequired):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, ledger.ErrEntryNotDraft),
		errors.Is(err, ledger.ErrEntryAlreadyVoid),
		errors.Is(err, ledger.ErrPostedEntryImmutable):
		Conflict(w, err.Error())

	// Payroll
	case errors.Is(err, payroll.ErrNoSalaryStructure):
		BadRequest(w, "No salary structure configured for employee", nil)
	case errors.Is(err, payroll.ErrCalculationNotFound):
		NotFound(w, "Payroll calculation not found")
	case errors.Is(err, payroll.ErrRuleNotFound):
		NotFound(w, "Late deduction rule not found")
	case errors.Is(err, payroll.ErrBatchNotFound):
		NotFound(w, "Salary transfer batch not found")
	case errors.Is(err, payroll.ErrInsuranceConfigNotFound):
		NotFound(w, "Insurance config not found")
	case errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, "Invalid payroll period", nil)
	case errors.Is(err, payroll.ErrCalculationNotDraft),
		errors.Is(err, payroll.ErrCalculationNotConfirmed),
		errors.Is(err, payroll.ErrEmptyTransferBatch):
		Conflict(w, err.Error())

	// Attendance
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrScheduleNotFound):
		NotFound(w, "Work schedule not found")
	case errors.Is(err, attendance.ErrAlreadyClockedIn),
		errors.Is(err, attendance.ErrAlreadyClockedOut):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrNotClockedIn),
		errors.Is(err, attendance.ErrClockOutBeforeIn):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendance.ErrEmployeeNotActive):
		Forbidden(w, "Employee is not active")

	// Leave
	case errors.Is(err, leave.ErrRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrOverlappingLeave):
		Conflict(w, "Overlapping leave request exists")
	case errors.Is(err, leave.ErrAlreadyProcessed):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrInvalidDateRange):
		BadRequest(w, err.Error(), nil)

	// Approvals
	case errors.Is(err, approval.ErrRecordNotFound):
		NotFound(w, "Approval record not found")
	case errors.Is(err, approval.ErrAlreadyDecided):
		Conflict(w, "Approval record already decided")
	case errors.Is(err, approval.ErrReasonRequired):
		BadRequest(w, "Rejection reason is required", nil)
	case errors.Is(err, approval.ErrNotRequester):
		Forbidden(w, "Only the requester may cancel")
	case errors.Is(err, approval.ErrNoUpdaterForEntity),
		errors.Is(err, approval.ErrInvalidEntityKind):
		BadRequest(w, err.Error(), nil)

	// Expenses
	case errors.Is(err, expense.ErrVoucherNotFound):
		NotFound(w, "Expense voucher not found")
	case errors.Is(err, expense.ErrVoucherDecided):
		Conflict(w, "Expense voucher already decided")

	// Remittance
	case errors.Is(err, remittance.ErrReceiptNotFound):
		NotFound(w, "Remittance receipt not found")
	case errors.Is(err, remittance.ErrClosingNotFound):
		NotFound(w, "Daily closing not found")
	case errors.Is(err, remittance.ErrDayAlreadyClosed),
		errors.Is(err, remittance.ErrReceiptAfterClose):
		Conflict(w, err.Error())
	case errors.Is(err, remittance.ErrNothingToClose),
		errors.Is(err, remittance.ErrUnknownCurrency):
		BadRequest(w, err.Error(), nil)

	// Employees / master data
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeCodeExists):
		Conflict(w, "Employee code already exists")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, employee.ErrEmployeeInactive):
		Forbidden(w, "Employee is inactive")
	case errors.Is(err, master.ErrDepartmentNotFound):
		NotFound(w, "Department not found")
	case errors.Is(err, master.ErrPositionNotFound):
		NotFound(w, "Position not found")
	case errors.Is(err, master.ErrDepartmentInUse),
		errors.Is(err, master.ErrPositionInUse):
		Conflict(w, err.Error())

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
