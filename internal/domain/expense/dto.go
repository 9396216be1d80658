package expense

import (
	"github.com/remitdesk/backoffice-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateVoucherRequest struct {
	EmployeeID  string          `json:"employee_id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

func (r *CreateVoucherRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if !r.Amount.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be positive"})
	}
	if validator.IsEmpty(r.Description) {
		errs = append(errs, validator.ValidationError{Field: "description", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type VoucherResponse struct {
	ID            string          `json:"id"`
	VoucherNumber string          `json:"voucher_number"`
	EmployeeID    string          `json:"employee_id"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	Status        string          `json:"status"`
}
