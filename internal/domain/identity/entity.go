package identity

import (
	"time"

	"github.com/shopspring/decimal"
)

type Role string

const (
	RoleAdmin      Role = "admin"
	RoleHR         Role = "hr"
	RoleSupervisor Role = "supervisor"
	RoleEmployee   Role = "employee"
)

func IsValidRole(r string) bool {
	switch Role(r) {
	case RoleAdmin, RoleHR, RoleSupervisor, RoleEmployee:
		return true
	}
	return false
}

// StatutoryFlag is the "Yes"/"No" toggle for EPF and ESIC enrollment.
type StatutoryFlag string

const (
	FlagYes StatutoryFlag = "Yes"
	FlagNo  StatutoryFlag = "No"
)

// Identity is the single person record for every role. Role-specific
// fields (shift, supervisor linkage, salary components) are optional and
// meaningful only for the roles that carry them.
type Identity struct {
	ID           string
	Name         string
	Email        *string
	EmpID        *string
	Designation  *string
	Department   *string
	PasswordHash *string
	Role         Role

	// Shift assignment; ShiftStart is the lateness reference point.
	ShiftStart *string // "HH:mm"
	ShiftEnd   *string // "HH:mm"

	// Supervisor linkage, set for employees.
	SupervisorID *string

	IsActive bool

	// Salary components.
	BasicSalary      decimal.Decimal
	SpecialAllowance decimal.Decimal
	Conveyance       decimal.Decimal
	EPF              StatutoryFlag
	ESIC             StatutoryFlag
	PaidLeaves       int

	CreatedAt time.Time
	UpdatedAt time.Time
}
