package request

import (
	"time"

	"github.com/shopspring/decimal"
)

// Kind distinguishes the two request types sharing one approval shape.
type Kind string

const (
	KindLeave   Kind = "Leave"
	KindAdvance Kind = "Advance"
)

type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

// Stage is one of the three sequential approval roles.
type Stage string

const (
	StageSupervisor Stage = "supervisor"
	StageHR         Stage = "hr"
	StageAdmin      Stage = "admin"
)

// Request is a leave or advance request moving through the
// supervisor -> hr -> admin chain. Status stays Pending while the stage
// flags advance; it becomes Approved only on the admin stage and
// Rejected terminally at any stage.
type Request struct {
	ID           string
	Kind         Kind
	EmployeeID   string
	SupervisorID string

	// Denormalized display names, captured at submission.
	EmployeeName   string
	SupervisorName string

	// Leave details
	FromDate *time.Time
	ToDate   *time.Time

	// Advance details
	Amount         *decimal.Decimal
	ModifiedAmount *decimal.Decimal

	Reason string
	Status Status

	SupervisorApproved   bool
	SupervisorApprovedAt *time.Time
	HRApproved           bool
	HRApprovedAt         *time.Time
	AdminApproved        bool
	AdminApprovedAt      *time.Time

	HRComments    *string
	AdminComments *string

	IsSeenByEmployee   bool
	IsSeenBySupervisor bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// StageApproved reports whether a stage's approval flag is already set.
func (r *Request) StageApproved(stage Stage) bool {
	switch stage {
	case StageSupervisor:
		return r.SupervisorApproved
	case StageHR:
		return r.HRApproved
	case StageAdmin:
		return r.AdminApproved
	}
	return false
}

// NextStage returns the stage whose decision the request is waiting on,
// or "" when the request is terminal.
func (r *Request) NextStage() Stage {
	if r.Status != StatusPending {
		return ""
	}
	switch {
	case !r.SupervisorApproved:
		return StageSupervisor
	case !r.HRApproved:
		return StageHR
	default:
		return StageAdmin
	}
}
