package attendance

import (
	"context"
)

// Service defines business logic for attendance operations.
type Service interface {
	// Mark validates and upserts a single day's record for an employee,
	// computing the lateness flag against the assigned shift start.
	Mark(ctx context.Context, req MarkRequest) (Response, error)

	// List retrieves ledger rows for a day or range, filtered by the
	// caller's role: employees see their own, supervisors their
	// assignees, hr/admin everyone.
	List(ctx context.Context, filter ListFilter) ([]Response, error)

	// Update corrects a record in place. HR/admin are unrestricted;
	// supervisors may only touch their assignees.
	Update(ctx context.Context, req UpdateRequest) (Response, error)

	// RequestModification files a supervisor correction request.
	RequestModification(ctx context.Context, req CreateModificationRequest) (ModificationResponse, error)

	// ListModifications lists pending correction requests (hr/admin).
	ListModifications(ctx context.Context) ([]ModificationResponse, error)

	// DecideModification approves (applying the changes to the ledger) or
	// rejects a pending correction request.
	DecideModification(ctx context.Context, req DecideModificationRequest) (ModificationResponse, error)
}
