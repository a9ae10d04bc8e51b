package request

import "context"

// Service drives the three-stage approval workflow shared by leave and
// advance requests.
type Service interface {
	// SubmitLeave creates a Pending leave request for the authenticated
	// employee and notifies their supervisor.
	SubmitLeave(ctx context.Context, req SubmitLeaveRequest) (Response, error)

	// SubmitAdvance creates a Pending advance request for the
	// authenticated employee and notifies their supervisor.
	SubmitAdvance(ctx context.Context, req SubmitAdvanceRequest) (Response, error)

	// Decide applies one stage's approval or rejection. Only the role
	// matching the request's current pending stage may act; a rejection
	// is terminal at any stage.
	Decide(ctx context.Context, stage Stage, req DecideRequest) (Response, error)

	// ListSupervisorQueue lists requests awaiting the caller's
	// supervisor decision.
	ListSupervisorQueue(ctx context.Context, kind Kind) ([]Response, error)

	// ListHRQueue lists requests past supervisor approval awaiting HR.
	ListHRQueue(ctx context.Context, kind Kind) ([]Response, error)

	// ListAdminQueue lists requests past HR approval awaiting admin.
	ListAdminQueue(ctx context.Context, kind Kind) ([]Response, error)

	// ListMine lists the authenticated employee's own requests.
	ListMine(ctx context.Context, kind Kind) ([]Response, error)

	// MarkSeen flags a request as seen in the calling supervisor's queue.
	MarkSeen(ctx context.Context, kind Kind, id string) error
}
