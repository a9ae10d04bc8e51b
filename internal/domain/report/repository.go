package report

import (
	"context"
	"time"
)

// Repository defines the read-only aggregation queries behind reports.
type Repository interface {
	// AggregateAttendance reduces the ledger over [start, end] to
	// per-employee counts for every active employee and supervisor,
	// zero-filled for those without ledger rows. Pure read: it never
	// writes placeholder records for missing days.
	AggregateAttendance(ctx context.Context, start, end time.Time) ([]EmployeeAggregate, error)

	// AggregateEmployeeAttendance is the single-employee variant, used
	// for payslips.
	AggregateEmployeeAttendance(ctx context.Context, employeeID string, start, end time.Time) (EmployeeAggregate, error)
}
