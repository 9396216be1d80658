package ledger

import (
	"github.com/remitdesk/backoffice-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== ACCOUNT DTOs ==========

type CreateAccountRequest struct {
	Code     string  `json:"code"`
	Name     string  `json:"name"`
	Type     string  `json:"type"` // asset, liability, equity, revenue, expense
	ParentID *string `json:"parent_id,omitempty"`
}

func (r *CreateAccountRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Code) {
		errs = append(errs, validator.ValidationError{Field: "code", Message: "is required"})
	} else if !validator.IsValidAccountCode(r.Code) {
		errs = append(errs, validator.ValidationError{Field: "code", Message: "must be digits optionally separated by dashes"})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if !AccountType(r.Type).Valid() {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "must be one of asset, liability, equity, revenue, expense"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateAccountRequest struct {
	ID       string
	Name     *string `json:"name,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

type AccountResponse struct {
	ID       string  `json:"id"`
	Code     string  `json:"code"`
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	ParentID *string `json:"parent_id,omitempty"`
	Level    int     `json:"level"`
	IsActive bool    `json:"is_active"`
}

// ========== JOURNAL DTOs ==========

type EntryLineInput struct {
	AccountID string          `json:"account_id"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
	Memo      *string         `json:"memo,omitempty"`
}

type PostEntryRequest struct {
	Description string           `json:"description"`
	EntryDate   string           `json:"entry_date"` // "2006-01-02"
	Lines       []EntryLineInput `json:"lines"`
}

func (r *PostEntryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Description) {
		errs = append(errs, validator.ValidationError{Field: "description", Message: "is required"})
	}
	if _, ok := validator.IsValidDate(r.EntryDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "entry_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if len(r.Lines) < 2 {
		errs = append(errs, validator.ValidationError{Field: "lines", Message: "at least two lines are required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type VoidEntryRequest struct {
	ID     string
	Reason string `json:"reason"`
}

func (r *VoidEntryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EntryFilter struct {
	DateFrom *string
	DateTo   *string
	Status   *string
	Page     int
	Limit    int
}

type EntryLineResponse struct {
	ID          string          `json:"id"`
	AccountID   string          `json:"account_id"`
	AccountCode string          `json:"account_code,omitempty"`
	AccountName string          `json:"account_name,omitempty"`
	LineNo      int             `json:"line_no"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Memo        *string         `json:"memo,omitempty"`
}

type EntryResponse struct {
	ID          string              `json:"id"`
	EntryNumber string              `json:"entry_number"`
	EntryDate   string              `json:"entry_date"`
	Description string              `json:"description"`
	Status      string              `json:"status"`
	TotalDebit  decimal.Decimal     `json:"total_debit"`
	TotalCredit decimal.Decimal     `json:"total_credit"`
	CreatedBy   string              `json:"created_by"`
	PostedAt    *string             `json:"posted_at,omitempty"`
	PostedBy    *string             `json:"posted_by,omitempty"`
	VoidedAt    *string             `json:"voided_at,omitempty"`
	VoidedBy    *string             `json:"voided_by,omitempty"`
	VoidReason  *string             `json:"void_reason,omitempty"`
	Lines       []EntryLineResponse `json:"lines,omitempty"`
}

type ListEntriesResponse struct {
	Data       []EntryResponse `json:"data"`
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
}
