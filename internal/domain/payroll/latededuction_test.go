package payroll

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestResolveLateDeduction_NoLateness(t *testing.T) {
	rule := LateDeductionRule{
		Type:            LateRuleFixed,
		PerMinuteAmount: d("10"),
	}

	assert.True(t, ResolveLateDeduction(&rule, d("30000"), 0).IsZero())
	assert.True(t, ResolveLateDeduction(&rule, d("30000"), -5).IsZero())
}

func TestResolveLateDeduction_NilRule(t *testing.T) {
	assert.True(t, ResolveLateDeduction(nil, d("30000"), 45).IsZero())
}

func TestResolveLateDeduction_Fixed(t *testing.T) {
	rule := LateDeductionRule{
		Type:            LateRuleFixed,
		PerMinuteAmount: d("10"),
	}

	got := ResolveLateDeduction(&rule, d("30000"), 15)
	assert.True(t, d("150").Equal(got), "expected 150, got %s", got)
}

func TestResolveLateDeduction_FixedCappedAtMax(t *testing.T) {
	max := d("100")
	rule := LateDeductionRule{
		Type:            LateRuleFixed,
		PerMinuteAmount: d("10"),
		MaxAmount:       &max,
	}

	got := ResolveLateDeduction(&rule, d("30000"), 60)
	assert.True(t, max.Equal(got), "expected cap 100, got %s", got)
}

func TestResolveLateDeduction_Proportional(t *testing.T) {
	rule := LateDeductionRule{
		Type:  LateRuleProportional,
		Ratio: d("0.001"),
	}

	// 30000 / 30 * 0.001 * 20 = 20
	got := ResolveLateDeduction(&rule, d("30000"), 20)
	assert.True(t, d("20").Equal(got), "expected 20, got %s", got)
}

func TestResolveLateDeduction_ProportionalRounding(t *testing.T) {
	rule := LateDeductionRule{
		Type:  LateRuleProportional,
		Ratio: d("0.001"),
	}

	// 31000 / 30 * 0.001 * 7 = 7.2333... -> 7.23
	got := ResolveLateDeduction(&rule, d("31000"), 7)
	assert.True(t, d("7.23").Equal(got), "expected 7.23, got %s", got)
}

func TestResolveLateDeduction_Tiered(t *testing.T) {
	ten := 10
	thirty := 30
	rule := LateDeductionRule{
		Type: LateRuleTiered,
		Items: []LateDeductionRuleItem{
			{MinMinutes: 1, MaxMinutes: &ten, Amount: d("50")},
			{MinMinutes: 11, MaxMinutes: &thirty, Amount: d("150")},
			{MinMinutes: 31, Amount: d("300")},
		},
	}

	cases := []struct {
		minutes int
		want    decimal.Decimal
	}{
		{1, d("50")},
		{10, d("50")},
		{11, d("150")},
		{30, d("150")},
		{31, d("300")},
		{500, d("300")},
	}
	for _, c := range cases {
		got := ResolveLateDeduction(&rule, d("30000"), c.minutes)
		assert.True(t, c.want.Equal(got), "minutes %d: expected %s, got %s", c.minutes, c.want, got)
	}
}

func TestResolveLateDeduction_TieredNoMatchingTier(t *testing.T) {
	rule := LateDeductionRule{
		Type: LateRuleTiered,
		Items: []LateDeductionRuleItem{
			{MinMinutes: 10, Amount: d("100")},
		},
	}

	// Below the lowest tier resolves to zero, not an error.
	assert.True(t, ResolveLateDeduction(&rule, d("30000"), 5).IsZero())
}
