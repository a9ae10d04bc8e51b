package report

import "context"

// Service produces the monthly attendance-payroll report and its
// exports.
type Service interface {
	// Monthly aggregates the ledger for (year, month) and prorates each
	// active employee's salary from the resulting counts.
	Monthly(ctx context.Context, req MonthlyReportRequest) (MonthlyReport, error)

	// UpdateSalary overwrites an employee's salary configuration.
	UpdateSalary(ctx context.Context, req UpdateSalaryRequest) error

	// ExportXLSX renders the monthly report as a spreadsheet.
	ExportXLSX(ctx context.Context, req MonthlyReportRequest) ([]byte, error)

	// PayslipPDF renders one employee's month as a payslip.
	PayslipPDF(ctx context.Context, employeeID string, req MonthlyReportRequest) ([]byte, error)
}
