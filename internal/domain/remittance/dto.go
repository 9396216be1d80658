package remittance

import (
	"github.com/remitdesk/backoffice-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

var supportedCurrencies = map[string]bool{
	"USD": true, "JPY": true, "TWD": true, "PHP": true,
	"VND": true, "IDR": true, "THB": true,
}

type RecordReceiptRequest struct {
	CustomerName string          `json:"customer_name"`
	ReceiptDate  string          `json:"receipt_date"`
	Amount       decimal.Decimal `json:"amount"`
	Fee          decimal.Decimal `json:"fee"`
	Currency     string          `json:"currency"`
}

func (r *RecordReceiptRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.CustomerName) {
		errs = append(errs, validator.ValidationError{Field: "customer_name", Message: "is required"})
	}
	if _, ok := validator.IsValidDate(r.ReceiptDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "receipt_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if !r.Amount.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be positive"})
	}
	if r.Fee.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "fee", Message: "must be non-negative"})
	}
	if !supportedCurrencies[r.Currency] {
		errs = append(errs, validator.ValidationError{Field: "currency", Message: "is not supported"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CloseDayRequest struct {
	ClosingDate string `json:"closing_date"`
}

func (r *CloseDayRequest) Validate() error {
	if _, ok := validator.IsValidDate(r.ClosingDate); !ok {
		return validator.ValidationErrors{{Field: "closing_date", Message: "must be a valid date (YYYY-MM-DD)"}}
	}
	return nil
}

type ReceiptResponse struct {
	ID             string          `json:"id"`
	ReceiptNumber  string          `json:"receipt_number"`
	CustomerName   string          `json:"customer_name"`
	ReceiptDate    string          `json:"receipt_date"`
	Amount         decimal.Decimal `json:"amount"`
	Fee            decimal.Decimal `json:"fee"`
	Currency       string          `json:"currency"`
	JournalEntryID string          `json:"journal_entry_id"`
}

type ClosingResponse struct {
	ID             string          `json:"id"`
	ClosingDate    string          `json:"closing_date"`
	ReceiptCount   int             `json:"receipt_count"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	TotalFees      decimal.Decimal `json:"total_fees"`
	JournalEntryID *string         `json:"journal_entry_id,omitempty"`
	Status         string          `json:"status"`
}
