package report

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stafftrack/hrms-backend-go/internal/domain/payroll"
	"github.com/stafftrack/hrms-backend-go/internal/pkg/validator"
)

// ========================================
// MONTHLY ATTENDANCE-PAYROLL REPORT
// ========================================

type MonthlyReportRequest struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

func (r *MonthlyReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}

	currentYear := time.Now().Year()
	if r.Year < 2000 || r.Year > currentYear+1 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: fmt.Sprintf("year must be between 2000 and %d", currentYear+1),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// EmployeeAggregate is one employee's ledger counts for the period joined
// with the identity fields the payroll calculator needs. Employees with
// no ledger rows carry zero counts.
type EmployeeAggregate struct {
	EmployeeID  string
	Name        string
	EmpID       *string
	Designation *string
	Department  *string

	BasicSalary      decimal.Decimal
	SpecialAllowance decimal.Decimal
	Conveyance       decimal.Decimal
	EPF              string
	ESIC             string
	PaidLeaves       int

	Counts payroll.Counts
}

type MonthlyReportRow struct {
	EmployeeID  string  `json:"employee_id"`
	Name        string  `json:"name"`
	EmpID       *string `json:"emp_id,omitempty"`
	Designation *string `json:"designation,omitempty"`
	Department  *string `json:"department,omitempty"`

	PresentDays  int `json:"present_days"`
	AbsentDays   int `json:"absent_days"`
	HalfDays     int `json:"half_days"`
	LateMarkings int `json:"late_markings"`

	payroll.Breakdown
}

type MonthlyReport struct {
	PeriodYear  int    `json:"period_year"`
	PeriodMonth int    `json:"period_month"`
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
	GeneratedAt string `json:"generated_at"`

	Rows []MonthlyReportRow `json:"rows"`
}

type UpdateSalaryRequest struct {
	EmployeeID       string           `json:"employee_id"`
	BasicSalary      *decimal.Decimal `json:"basic_salary"`
	SpecialAllowance *decimal.Decimal `json:"special_allowance"`
	Conveyance       *decimal.Decimal `json:"conveyance"`
	EPF              *string          `json:"epf"`
	ESIC             *string          `json:"esic"`
	PaidLeaves       *int             `json:"paid_leaves"`
}

func (r *UpdateSalaryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	for field, flag := range map[string]*string{"epf": r.EPF, "esic": r.ESIC} {
		if flag != nil && *flag != "Yes" && *flag != "No" {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: field + " must be Yes or No",
			})
		}
	}

	if r.PaidLeaves != nil && *r.PaidLeaves < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "paid_leaves",
			Message: "paid_leaves must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
