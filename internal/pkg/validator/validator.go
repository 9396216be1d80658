package validator

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Email validation
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// Account codes are digit groups optionally separated by dashes, e.g. 1101 or 1101-02.
var accountCodeRegex = regexp.MustCompile(`^[0-9]+(-[0-9]+)*$`)

func IsValidAccountCode(code string) bool {
	return accountCodeRegex.MatchString(code)
}

// Numeric validation
var numericRegex = regexp.MustCompile(`^[0-9]+$`)

func IsNumeric(s string) bool {
	return numericRegex.MatchString(s)
}

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", dateStr)
	return date, err == nil
}

// Period validation ("2006-01" year-month)
func IsValidPeriod(period string) (time.Time, bool) {
	p, err := time.Parse("2006-01", period)
	return p, err == nil
}

// IsNonNegative reports whether a nullable amount is absent or >= 0.
func IsNonNegative(d *decimal.Decimal) bool {
	return d == nil || !d.IsNegative()
}
