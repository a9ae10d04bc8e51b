package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/stafftrack/hrms-backend-go/internal/domain/report"
	"github.com/xuri/excelize/v2"
)

var xlsxHeaders = []string{
	"Employee", "Emp ID", "Designation", "Department",
	"Present", "Absent", "Half Days", "Late",
	"Payable Days", "Basic", "Special Allowance", "Conveyance",
	"Gross", "EPF", "ESIC", "Deductions", "Net", "Remaining Paid Leaves",
}

func renderXLSX(monthly report.MonthlyReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	title := fmt.Sprintf("Attendance & Payroll %04d-%02d", monthly.PeriodYear, monthly.PeriodMonth)
	if err := f.SetCellValue(sheet, "A1", title); err != nil {
		return nil, fmt.Errorf("failed to write sheet title: %w", err)
	}

	for i, header := range xlsxHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 2)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for rowIdx, row := range monthly.Rows {
		values := []interface{}{
			row.Name, deref(row.EmpID), deref(row.Designation), deref(row.Department),
			row.PresentDays, row.AbsentDays, row.HalfDays, row.LateMarkings,
			row.PayableDays.String(), row.ProratedBasic.String(),
			row.ProratedSpecialAllowance.String(), row.ProratedConveyance.String(),
			row.GrossSalary.String(), row.EPFDeduction.String(), row.ESICDeduction.String(),
			row.TotalDeductions.String(), row.NetSalary.String(), row.RemainingPaidLeaves,
		}
		for colIdx, value := range values {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+3)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write report row: %w", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func renderPayslip(row report.MonthlyReportRow, periodStart time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s", row.Name))
	pdf.Ln(7)
	if row.EmpID != nil {
		pdf.Cell(0, 8, fmt.Sprintf("Employee ID: %s", *row.EmpID))
		pdf.Ln(7)
	}
	if row.Designation != nil {
		pdf.Cell(0, 8, fmt.Sprintf("Designation: %s", *row.Designation))
		pdf.Ln(7)
	}
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s", periodStart.Format("January 2006")))
	pdf.Ln(10)

	pdf.Cell(0, 8, fmt.Sprintf("Present: %d  Absent: %d  Half days: %d  Late: %d",
		row.PresentDays, row.AbsentDays, row.HalfDays, row.LateMarkings))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Payable days: %s", row.PayableDays.String()))
	pdf.Ln(10)

	pdf.Cell(0, 8, fmt.Sprintf("Basic: %s", row.ProratedBasic.String()))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Special allowance: %s", row.ProratedSpecialAllowance.String()))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Conveyance: %s", row.ProratedConveyance.String()))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Gross: %s", row.GrossSalary.String()))
	pdf.Ln(10)

	pdf.Cell(0, 8, fmt.Sprintf("EPF: %s", row.EPFDeduction.String()))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("ESIC: %s", row.ESICDeduction.String()))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Total deductions: %s", row.TotalDeductions.String()))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Net salary: %s", row.NetSalary.String()))
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Remaining paid leaves: %d", row.RemainingPaidLeaves))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render payslip: %w", err)
	}
	return buf.Bytes(), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
