package report

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stafftrack/hrms-backend-go/internal/domain/payroll"
	"github.com/stafftrack/hrms-backend-go/internal/domain/report"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sampleAggregate() report.EmployeeAggregate {
	empID := "E042"
	return report.EmployeeAggregate{
		EmployeeID:       "emp-1",
		Name:             "Ravi",
		EmpID:            &empID,
		BasicSalary:      d("30000"),
		SpecialAllowance: d("3000"),
		Conveyance:       d("1000"),
		EPF:              "Yes",
		ESIC:             "No",
		PaidLeaves:       2,
		Counts:           payroll.Counts{PresentDays: 20, AbsentDays: 8, HalfDays: 2},
	}
}

func TestPeriod(t *testing.T) {
	tests := []struct {
		year, month int
		start, end  string
	}{
		{2024, 6, "2024-06-01", "2024-06-30"},
		{2024, 2, "2024-02-01", "2024-02-29"},
		{2023, 2, "2023-02-01", "2023-02-28"},
		{2024, 12, "2024-12-01", "2024-12-31"},
	}

	for _, tt := range tests {
		start, end := period(tt.year, tt.month)
		assert.Equal(t, tt.start, start.Format("2006-01-02"))
		assert.Equal(t, tt.end, end.Format("2006-01-02"))
		assert.Equal(t, time.UTC, start.Location())
	}
}

func TestBuildRow(t *testing.T) {
	row := buildRow(sampleAggregate())

	assert.Equal(t, "Ravi", row.Name)
	assert.Equal(t, 20, row.PresentDays)
	assert.Equal(t, 2, row.HalfDays)
	assert.True(t, row.ProratedBasic.Equal(d("21000")), "basic: %s", row.ProratedBasic)
	assert.True(t, row.EPFDeduction.Equal(d("2520")), "epf: %s", row.EPFDeduction)
	assert.True(t, row.ESICDeduction.IsZero())
	assert.True(t, row.NetSalary.Equal(d("21280")), "net: %s", row.NetSalary)
	assert.Equal(t, 0, row.RemainingPaidLeaves)
}

func TestBuildRowZeroFilled(t *testing.T) {
	agg := report.EmployeeAggregate{
		EmployeeID:  "emp-2",
		Name:        "Mira",
		BasicSalary: d("20000"),
		EPF:         "No",
		ESIC:        "No",
		PaidLeaves:  3,
	}

	row := buildRow(agg)

	assert.True(t, row.PayableDays.IsZero())
	assert.True(t, row.NetSalary.IsZero())
	assert.Equal(t, 3, row.RemainingPaidLeaves)
}

func TestRenderXLSX(t *testing.T) {
	monthly := report.MonthlyReport{
		PeriodYear:  2024,
		PeriodMonth: 6,
		Rows:        []report.MonthlyReportRow{buildRow(sampleAggregate())},
	}

	data, err := renderXLSX(monthly)
	require.NoError(t, err)
	require.NotEmpty(t, data)
	// XLSX files are zip archives.
	assert.Equal(t, []byte{'P', 'K'}, data[:2])
}

func TestRenderPayslip(t *testing.T) {
	data, err := renderPayslip(buildRow(sampleAggregate()), time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.Equal(t, []byte("%PDF"), data[:4])
}
