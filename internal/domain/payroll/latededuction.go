package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// LateDeductionRuleType enum
type LateDeductionRuleType string

const (
	LateRuleFixed        LateDeductionRuleType = "fixed"
	LateRuleProportional LateDeductionRuleType = "proportional"
	LateRuleTiered       LateDeductionRuleType = "tiered"
)

func (t LateDeductionRuleType) Valid() bool {
	switch t {
	case LateRuleFixed, LateRuleProportional, LateRuleTiered:
		return true
	}
	return false
}

// LateDeductionRule maps lateness minutes to a deduction amount. The rule in
// effect for an employee is the most recent EffectiveDate not after today.
type LateDeductionRule struct {
	ID              string
	Name            string
	Type            LateDeductionRuleType
	EffectiveDate   time.Time
	PerMinuteAmount decimal.Decimal  // fixed
	Ratio           decimal.Decimal  // proportional
	MaxAmount       *decimal.Decimal // cap for fixed/proportional
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Items []LateDeductionRuleItem
}

// LateDeductionRuleItem is one tier of a tiered rule. A nil MaxMinutes marks
// the unbounded top tier.
type LateDeductionRuleItem struct {
	ID         string
	RuleID     string
	MinMinutes int
	MaxMinutes *int
	Amount     decimal.Decimal
}

var proportionalDivisor = decimal.NewFromInt(30)

// ResolveLateDeduction computes the deduction for the given lateness.
// Minutes at or below zero, or a nil rule, resolve to exactly zero. The result
// is rounded to two decimal places, half-up. A tiered rule with no matching
// tier also resolves to zero rather than failing.
func ResolveLateDeduction(rule *LateDeductionRule, baseSalary decimal.Decimal, minutes int) decimal.Decimal {
	if rule == nil || minutes <= 0 {
		return decimal.Zero
	}

	var amount decimal.Decimal
	switch rule.Type {
	case LateRuleFixed:
		amount = decimal.NewFromInt(int64(minutes)).Mul(rule.PerMinuteAmount)
		amount = capAt(amount, rule.MaxAmount)
	case LateRuleProportional:
		// Daily rate uses a fixed 30-day divisor regardless of calendar month.
		dailyRate := baseSalary.Div(proportionalDivisor)
		amount = dailyRate.Mul(rule.Ratio).Mul(decimal.NewFromInt(int64(minutes)))
		amount = capAt(amount, rule.MaxAmount)
	case LateRuleTiered:
		for _, item := range rule.Items {
			if minutes < item.MinMinutes {
				continue
			}
			if item.MaxMinutes != nil && minutes > *item.MaxMinutes {
				continue
			}
			amount = item.Amount
			break
		}
	}

	return amount.Round(2)
}

func capAt(amount decimal.Decimal, max *decimal.Decimal) decimal.Decimal {
	if max != nil && amount.GreaterThan(*max) {
		return *max
	}
	return amount
}
