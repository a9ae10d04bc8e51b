package request

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// StageDecision carries the fields a single approval stage may write.
type StageDecision struct {
	Approve        bool
	Comments       *string
	ModifiedAmount *decimal.Decimal
	DecidedAt      time.Time
}

// Repository defines data access methods for leave/advance requests.
type Repository interface {
	Create(ctx context.Context, req Request) (Request, error)

	GetByID(ctx context.Context, id string, kind Kind) (Request, error)

	// DecideStage applies one stage's decision as a conditional update:
	// the write succeeds only while the request is still Pending and the
	// stage's flag has not been set. Zero rows affected means a
	// concurrent decision won; callers translate that to
	// ErrAlreadyProcessed.
	DecideStage(ctx context.Context, id string, kind Kind, stage Stage, d StageDecision) (Request, error)

	// ListPendingForSupervisor returns requests awaiting the supervisor
	// stage for one supervisor.
	ListPendingForSupervisor(ctx context.Context, kind Kind, supervisorID string) ([]Request, error)

	// ListHRQueue returns requests with supervisor_approved and not
	// hr_approved.
	ListHRQueue(ctx context.Context, kind Kind) ([]Request, error)

	// ListAdminQueue returns requests with hr_approved and not
	// admin_approved.
	ListAdminQueue(ctx context.Context, kind Kind) ([]Request, error)

	ListByEmployee(ctx context.Context, kind Kind, employeeID string) ([]Request, error)

	// MarkSeenBySupervisor flags a request as seen in the supervisor's
	// queue view.
	MarkSeenBySupervisor(ctx context.Context, id string, kind Kind) error
}
