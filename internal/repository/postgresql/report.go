package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stafftrack/hrms-backend-go/internal/domain/report"
	"github.com/stafftrack/hrms-backend-go/internal/pkg/database"
)

type reportRepository struct {
	db *database.DB
}

func NewReportRepository(db *database.DB) report.Repository {
	return &reportRepository{db: db}
}

// One LEFT JOIN keeps employees without ledger rows in the result with
// zero counts. FILTER mirrors the aggregation rules: presentDays counts
// only on-time Present rows; late ones go to lateMarkings.
const aggregateQuery = `
	SELECT i.id, i.name, i.emp_id, i.designation, i.department,
		   i.basic_salary, i.special_allowance, i.conveyance, i.epf, i.esic, i.paid_leaves,
		   COUNT(a.id) FILTER (WHERE a.status = 'Present' AND a.is_late = FALSE) AS present_days,
		   COUNT(a.id) FILTER (WHERE a.status = 'Absent') AS absent_days,
		   COUNT(a.id) FILTER (WHERE a.status = 'Halfday') AS half_days,
		   COUNT(a.id) FILTER (WHERE a.status = 'Present' AND a.is_late = TRUE) AS late_markings
	FROM identities i
	LEFT JOIN attendances a
		ON a.employee_id = i.id AND a.date >= $1 AND a.date <= $2
	WHERE i.is_active = TRUE AND i.role IN ('employee', 'supervisor')`

func scanAggregate(row pgx.Row) (report.EmployeeAggregate, error) {
	var agg report.EmployeeAggregate
	err := row.Scan(
		&agg.EmployeeID, &agg.Name, &agg.EmpID, &agg.Designation, &agg.Department,
		&agg.BasicSalary, &agg.SpecialAllowance, &agg.Conveyance, &agg.EPF, &agg.ESIC, &agg.PaidLeaves,
		&agg.Counts.PresentDays, &agg.Counts.AbsentDays, &agg.Counts.HalfDays, &agg.Counts.LateMarkings,
	)
	return agg, err
}

// AggregateAttendance implements report.Repository.
func (r *reportRepository) AggregateAttendance(ctx context.Context, start, end time.Time) ([]report.EmployeeAggregate, error) {
	q := GetQuerier(ctx, r.db)

	query := aggregateQuery + `
	GROUP BY i.id, i.name, i.emp_id, i.designation, i.department,
			 i.basic_salary, i.special_allowance, i.conveyance, i.epf, i.esic, i.paid_leaves
	ORDER BY i.name`

	rows, err := q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate attendance: %w", err)
	}
	defer rows.Close()

	aggregates := make([]report.EmployeeAggregate, 0)
	for rows.Next() {
		agg, err := scanAggregate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance aggregate: %w", err)
		}
		aggregates = append(aggregates, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance aggregates: %w", err)
	}

	return aggregates, nil
}

// AggregateEmployeeAttendance implements report.Repository.
func (r *reportRepository) AggregateEmployeeAttendance(ctx context.Context, employeeID string, start, end time.Time) (report.EmployeeAggregate, error) {
	q := GetQuerier(ctx, r.db)

	query := aggregateQuery + ` AND i.id = $3
	GROUP BY i.id, i.name, i.emp_id, i.designation, i.department,
			 i.basic_salary, i.special_allowance, i.conveyance, i.epf, i.esic, i.paid_leaves`

	agg, err := scanAggregate(q.QueryRow(ctx, query, start, end, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return report.EmployeeAggregate{}, report.ErrEmployeeNotFound
		}
		return report.EmployeeAggregate{}, fmt.Errorf("failed to aggregate employee attendance: %w", err)
	}

	return agg, nil
}
