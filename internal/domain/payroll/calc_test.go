package payroll

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestPayableDays(t *testing.T) {
	tests := []struct {
		name     string
		counts   Counts
		expected string
	}{
		{"full month", Counts{PresentDays: 30}, "30"},
		{"half days count half", Counts{PresentDays: 20, HalfDays: 2}, "21"},
		{"only half days", Counts{HalfDays: 3}, "1.5"},
		{"empty month", Counts{}, "0"},
		{"absences do not count", Counts{PresentDays: 10, AbsentDays: 20}, "10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.counts.PayableDays().Equal(d(tt.expected)),
				"got %s, want %s", tt.counts.PayableDays(), tt.expected)
		})
	}
}

func TestCompute(t *testing.T) {
	cfg := SalaryConfig{
		BasicSalary:          d("30000"),
		SpecialAllowance:     d("3000"),
		Conveyance:           d("1000"),
		EPF:                  true,
		ESIC:                 false,
		PaidLeaveEntitlement: 2,
	}
	counts := Counts{PresentDays: 20, AbsentDays: 8, HalfDays: 2}

	b := Compute(cfg, counts)

	assert.True(t, b.PayableDays.Equal(d("21")))
	assert.True(t, b.ProratedBasic.Equal(d("21000")), "basic: %s", b.ProratedBasic)
	assert.True(t, b.ProratedSpecialAllowance.Equal(d("2100")), "special: %s", b.ProratedSpecialAllowance)
	assert.True(t, b.ProratedConveyance.Equal(d("700")), "conveyance: %s", b.ProratedConveyance)
	assert.True(t, b.GrossSalary.Equal(d("23800")), "gross: %s", b.GrossSalary)
	assert.True(t, b.EPFDeduction.Equal(d("2520")), "epf: %s", b.EPFDeduction)
	assert.True(t, b.ESICDeduction.Equal(d("0")), "esic: %s", b.ESICDeduction)
	assert.True(t, b.TotalDeductions.Equal(d("2520")))
	assert.True(t, b.NetSalary.Equal(d("21280")), "net: %s", b.NetSalary)
	assert.Equal(t, 0, b.RemainingPaidLeaves)
}

func TestComputeESIC(t *testing.T) {
	cfg := SalaryConfig{
		BasicSalary: d("15000"),
		ESIC:        true,
	}
	counts := Counts{PresentDays: 30}

	b := Compute(cfg, counts)

	assert.True(t, b.GrossSalary.Equal(d("15000")))
	// 0.75% of gross
	assert.True(t, b.ESICDeduction.Equal(d("112.5")), "esic: %s", b.ESICDeduction)
	assert.True(t, b.EPFDeduction.Equal(d("0")))
	assert.True(t, b.NetSalary.Equal(d("14887.5")), "net: %s", b.NetSalary)
}

func TestComputeStatutoryDisabled(t *testing.T) {
	cfg := SalaryConfig{
		BasicSalary: d("30000"),
	}
	counts := Counts{PresentDays: 30}

	b := Compute(cfg, counts)

	assert.True(t, b.EPFDeduction.IsZero())
	assert.True(t, b.ESICDeduction.IsZero())
	assert.True(t, b.NetSalary.Equal(b.GrossSalary))
}

func TestComputeEmptyMonth(t *testing.T) {
	cfg := SalaryConfig{
		BasicSalary:          d("30000"),
		EPF:                  true,
		ESIC:                 true,
		PaidLeaveEntitlement: 2,
	}

	b := Compute(cfg, Counts{})

	assert.True(t, b.PayableDays.IsZero())
	assert.True(t, b.GrossSalary.IsZero())
	assert.True(t, b.NetSalary.IsZero())
	assert.Equal(t, 2, b.RemainingPaidLeaves)
}

func TestComputeRounding(t *testing.T) {
	// 10000/30 is non-terminating; only the output is rounded.
	cfg := SalaryConfig{BasicSalary: d("10000")}
	counts := Counts{PresentDays: 1}

	b := Compute(cfg, counts)

	assert.True(t, b.ProratedBasic.Equal(d("333.33")), "basic: %s", b.ProratedBasic)
	// Gross is rounded from the unrounded sum, not summed from rounded parts.
	assert.True(t, b.GrossSalary.Equal(d("333.33")), "gross: %s", b.GrossSalary)
}

func TestRemainingPaidLeavesClamp(t *testing.T) {
	cfg := SalaryConfig{PaidLeaveEntitlement: 2}
	counts := Counts{AbsentDays: 5, HalfDays: 1}

	b := Compute(cfg, counts)

	assert.Equal(t, 0, b.RemainingPaidLeaves)
}

func TestHourlyRate(t *testing.T) {
	rate := HourlyRate(d("24000"))
	assert.True(t, rate.Equal(d("100")), "rate: %s", rate)
}

func TestLateMarkingsNotPayable(t *testing.T) {
	// PresentDays already excludes late arrivals; LateMarkings is a
	// separate tally and never feeds proration.
	cfg := SalaryConfig{BasicSalary: d("30000")}
	counts := Counts{PresentDays: 10, LateMarkings: 5}

	b := Compute(cfg, counts)

	assert.True(t, b.PayableDays.Equal(d("10")))
}
