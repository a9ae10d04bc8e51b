package report

import (
	"context"
	"time"

	"github.com/stafftrack/hrms-backend-go/internal/domain/identity"
	"github.com/stafftrack/hrms-backend-go/internal/domain/payroll"
	"github.com/stafftrack/hrms-backend-go/internal/domain/report"
)

type ReportServiceImpl struct {
	reportRepo   report.Repository
	identityRepo identity.Repository
}

func NewReportService(reportRepo report.Repository, identityRepo identity.Repository) report.Service {
	return &ReportServiceImpl{
		reportRepo:   reportRepo,
		identityRepo: identityRepo,
	}
}

// period returns the report month's first and last calendar days.
// Proration still uses the fixed 30-day base, not the calendar length.
func period(year, month int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return start, end
}

func buildRow(agg report.EmployeeAggregate) report.MonthlyReportRow {
	cfg := payroll.SalaryConfig{
		BasicSalary:          agg.BasicSalary,
		SpecialAllowance:     agg.SpecialAllowance,
		Conveyance:           agg.Conveyance,
		EPF:                  agg.EPF == string(identity.FlagYes),
		ESIC:                 agg.ESIC == string(identity.FlagYes),
		PaidLeaveEntitlement: agg.PaidLeaves,
	}

	return report.MonthlyReportRow{
		EmployeeID:   agg.EmployeeID,
		Name:         agg.Name,
		EmpID:        agg.EmpID,
		Designation:  agg.Designation,
		Department:   agg.Department,
		PresentDays:  agg.Counts.PresentDays,
		AbsentDays:   agg.Counts.AbsentDays,
		HalfDays:     agg.Counts.HalfDays,
		LateMarkings: agg.Counts.LateMarkings,
		Breakdown:    payroll.Compute(cfg, agg.Counts),
	}
}

// Monthly implements report.Service.
func (s *ReportServiceImpl) Monthly(ctx context.Context, req report.MonthlyReportRequest) (report.MonthlyReport, error) {
	if err := req.Validate(); err != nil {
		return report.MonthlyReport{}, err
	}

	start, end := period(req.Year, req.Month)

	aggregates, err := s.reportRepo.AggregateAttendance(ctx, start, end)
	if err != nil {
		return report.MonthlyReport{}, err
	}

	rows := make([]report.MonthlyReportRow, 0, len(aggregates))
	for _, agg := range aggregates {
		rows = append(rows, buildRow(agg))
	}

	return report.MonthlyReport{
		PeriodYear:  req.Year,
		PeriodMonth: req.Month,
		PeriodStart: start.Format("2006-01-02"),
		PeriodEnd:   end.Format("2006-01-02"),
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Rows:        rows,
	}, nil
}

// UpdateSalary implements report.Service.
func (s *ReportServiceImpl) UpdateSalary(ctx context.Context, req report.UpdateSalaryRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	ident, err := s.identityRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return err
	}

	salary := identity.SalaryUpdate{
		BasicSalary:      ident.BasicSalary,
		SpecialAllowance: ident.SpecialAllowance,
		Conveyance:       ident.Conveyance,
		EPF:              ident.EPF,
		ESIC:             ident.ESIC,
		PaidLeaves:       ident.PaidLeaves,
	}

	if req.BasicSalary != nil {
		salary.BasicSalary = *req.BasicSalary
	}
	if req.SpecialAllowance != nil {
		salary.SpecialAllowance = *req.SpecialAllowance
	}
	if req.Conveyance != nil {
		salary.Conveyance = *req.Conveyance
	}
	if req.EPF != nil {
		salary.EPF = identity.StatutoryFlag(*req.EPF)
	}
	if req.ESIC != nil {
		salary.ESIC = identity.StatutoryFlag(*req.ESIC)
	}
	if req.PaidLeaves != nil {
		salary.PaidLeaves = *req.PaidLeaves
	}

	return s.identityRepo.UpdateSalary(ctx, req.EmployeeID, salary)
}

// ExportXLSX implements report.Service.
func (s *ReportServiceImpl) ExportXLSX(ctx context.Context, req report.MonthlyReportRequest) ([]byte, error) {
	monthly, err := s.Monthly(ctx, req)
	if err != nil {
		return nil, err
	}
	return renderXLSX(monthly)
}

// PayslipPDF implements report.Service.
func (s *ReportServiceImpl) PayslipPDF(ctx context.Context, employeeID string, req report.MonthlyReportRequest) ([]byte, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	start, end := period(req.Year, req.Month)

	agg, err := s.reportRepo.AggregateEmployeeAttendance(ctx, employeeID, start, end)
	if err != nil {
		return nil, err
	}

	return renderPayslip(buildRow(agg), start)
}
