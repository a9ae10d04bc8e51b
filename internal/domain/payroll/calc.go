package payroll

import (
	"github.com/shopspring/decimal"
)

// Proration uses a fixed 30-day month regardless of the calendar month
// selected; salary figures are quoted per 30-day period.
const (
	ProrationBaseDays = 30
	WorkHoursPerDay   = 8
)

var (
	prorationBase = decimal.NewFromInt(ProrationBaseDays)
	half          = decimal.RequireFromString("0.5")
	epfRate       = decimal.RequireFromString("0.12")   // 12% of prorated basic
	esicRate      = decimal.RequireFromString("0.0075") // 0.75% of gross
)

// SalaryConfig is the per-employee salary component configuration read
// from the identity store. Zero values stand in for unset fields.
type SalaryConfig struct {
	BasicSalary          decimal.Decimal
	SpecialAllowance     decimal.Decimal
	Conveyance           decimal.Decimal
	EPF                  bool
	ESIC                 bool
	PaidLeaveEntitlement int
}

// Counts is the monthly aggregation output consumed by the calculator.
// PresentDays excludes late arrivals; those are reported separately
// under LateMarkings and do not feed proration.
type Counts struct {
	PresentDays  int
	AbsentDays   int
	HalfDays     int
	LateMarkings int
}

// PayableDays is the present-day-equivalent count used for proration:
// one day per Present, half per Halfday.
func (c Counts) PayableDays() decimal.Decimal {
	return decimal.NewFromInt(int64(c.PresentDays)).
		Add(decimal.NewFromInt(int64(c.HalfDays)).Mul(half))
}

// Breakdown is the prorated salary result. Currency fields are rounded
// half-up to two decimal places.
type Breakdown struct {
	PayableDays              decimal.Decimal `json:"payable_days"`
	ProratedBasic            decimal.Decimal `json:"prorated_basic"`
	ProratedSpecialAllowance decimal.Decimal `json:"prorated_special_allowance"`
	ProratedConveyance       decimal.Decimal `json:"prorated_conveyance"`
	OvertimePay              decimal.Decimal `json:"overtime"`
	GrossSalary              decimal.Decimal `json:"gross_salary"`
	EPFDeduction             decimal.Decimal `json:"epf_deduction"`
	ESICDeduction            decimal.Decimal `json:"esic_deduction"`
	TotalDeductions          decimal.Decimal `json:"deductions"`
	NetSalary                decimal.Decimal `json:"net_salary"`
	RemainingPaidLeaves      int             `json:"remaining_paid_leaves"`
}

// HourlyRate returns basic/30/8, the stub rate for the not-yet-wired
// overtime computation.
func HourlyRate(basic decimal.Decimal) decimal.Decimal {
	return basic.Div(prorationBase).Div(decimal.NewFromInt(WorkHoursPerDay))
}

// Compute prorates each salary component by payable days, applies the
// EPF/ESIC statutory deductions, and nets the result. All intermediate
// arithmetic stays unrounded; only the output fields are rounded.
func Compute(cfg SalaryConfig, counts Counts) Breakdown {
	payable := counts.PayableDays()

	prorate := func(component decimal.Decimal) decimal.Decimal {
		return component.Div(prorationBase).Mul(payable)
	}

	basic := prorate(cfg.BasicSalary)
	special := prorate(cfg.SpecialAllowance)
	conveyance := prorate(cfg.Conveyance)

	// Overtime stays zero until hourly tracking lands; HourlyRate is the
	// agreed rate for when it does.
	overtime := decimal.Zero

	gross := basic.Add(special).Add(conveyance).Add(overtime)

	epf := decimal.Zero
	if cfg.EPF {
		epf = basic.Mul(epfRate)
	}

	esic := decimal.Zero
	if cfg.ESIC {
		esic = gross.Mul(esicRate)
	}

	deductions := epf.Add(esic)
	net := gross.Sub(deductions)

	remaining := cfg.PaidLeaveEntitlement - (counts.AbsentDays + counts.HalfDays)
	if remaining < 0 {
		remaining = 0
	}

	return Breakdown{
		PayableDays:              payable,
		ProratedBasic:            basic.Round(2),
		ProratedSpecialAllowance: special.Round(2),
		ProratedConveyance:       conveyance.Round(2),
		OvertimePay:              overtime.Round(2),
		GrossSalary:              gross.Round(2),
		EPFDeduction:             epf.Round(2),
		ESICDeduction:            esic.Round(2),
		TotalDeductions:          deductions.Round(2),
		NetSalary:                net.Round(2),
		RemainingPaidLeaves:      remaining,
	}
}
