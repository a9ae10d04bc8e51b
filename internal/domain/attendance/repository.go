package attendance

import (
	"context"
	"time"
)

// Repository defines data access methods for the attendance ledger.
type Repository interface {
	// Upsert inserts the record or overwrites the mutable fields of the
	// existing row for (employee, date). The unique index on
	// (employee_id, date) serializes concurrent marks; last writer wins.
	Upsert(ctx context.Context, att Attendance) (Attendance, error)

	GetByID(ctx context.Context, id string) (Attendance, error)

	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)

	// Update overwrites the mutable fields of an existing row by id.
	Update(ctx context.Context, att Attendance) (Attendance, error)

	// List retrieves ledger rows in [start, end], optionally restricted to
	// the given employees, hydrated with employee display fields.
	List(ctx context.Context, start, end time.Time, employeeIDs []string) ([]Attendance, error)
}

// ModificationRepository defines data access for correction requests.
type ModificationRepository interface {
	Create(ctx context.Context, req ModificationRequest) (ModificationRequest, error)

	GetByID(ctx context.Context, id string) (ModificationRequest, error)

	ListPending(ctx context.Context) ([]ModificationRequest, error)

	// Decide flips a pending request to approved/rejected. The update is
	// conditional on status still being pending; zero rows affected means
	// another decision already landed.
	Decide(ctx context.Context, id string, status ModificationStatus, decidedBy string, note *string) (ModificationRequest, error)
}
