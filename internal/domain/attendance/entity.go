package attendance

import (
	"time"
)

type Status string

const (
	StatusPresent Status = "Present"
	StatusAbsent  Status = "Absent"
	StatusHalfday Status = "Halfday"
)

func IsValidStatus(s string) bool {
	switch Status(s) {
	case StatusPresent, StatusAbsent, StatusHalfday:
		return true
	}
	return false
}

// Attendance is one ledger row per (employee, calendar day).
// Date is always normalized to midnight UTC; at most one row exists per
// employee per day, enforced by a unique index on (employee_id, date).
type Attendance struct {
	ID         string
	EmployeeID string
	Date       time.Time
	TimeIn     *string // "HH:mm", nil for Absent/Halfday
	TimeOut    *string // "HH:mm"
	Status     Status
	IsLate     bool
	RecordedBy *string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Hydrated for display
	EmployeeName        *string
	EmployeeEmpID       *string
	EmployeeDesignation *string
}

// ModificationStatus tracks the lifecycle of a correction request.
type ModificationStatus string

const (
	ModificationPending  ModificationStatus = "pending"
	ModificationApproved ModificationStatus = "approved"
	ModificationRejected ModificationStatus = "rejected"
)

// ModificationRequest is a supervisor-filed correction to a ledger row,
// applied only once HR approves it.
type ModificationRequest struct {
	ID          string
	RequestedBy string
	EmployeeID  string
	Date        time.Time
	Reason      string

	// Requested changes; nil fields are left untouched.
	NewStatus  *string
	NewTimeIn  *string
	NewTimeOut *string
	NewIsLate  *bool

	Status       ModificationStatus
	DecidedBy    *string
	DecisionNote *string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Hydrated for display
	RequesterName *string
	EmployeeName  *string
}
