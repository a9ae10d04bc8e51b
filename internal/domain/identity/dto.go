package identity

import (
	"github.com/shopspring/decimal"
	"github.com/stafftrack/hrms-backend-go/internal/pkg/validator"
)

// ========================================
// IDENTITY DTOs
// ========================================

type Filter struct {
	Role       *string
	ActiveOnly bool
}

type CreateIdentityRequest struct {
	Name         string  `json:"name"`
	Email        *string `json:"email"`
	EmpID        *string `json:"emp_id"`
	Designation  *string `json:"designation"`
	Department   *string `json:"department"`
	Password     *string `json:"password"`
	Role         string  `json:"role"`
	ShiftStart   *string `json:"shift_start"`
	ShiftEnd     *string `json:"shift_end"`
	SupervisorID *string `json:"supervisor_id"`

	BasicSalary      *decimal.Decimal `json:"basic_salary"`
	SpecialAllowance *decimal.Decimal `json:"special_allowance"`
	Conveyance       *decimal.Decimal `json:"conveyance"`
	EPF              *string          `json:"epf"`
	ESIC             *string          `json:"esic"`
	PaidLeaves       *int             `json:"paid_leaves"`
}

func (r *CreateIdentityRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if !IsValidRole(r.Role) {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be one of admin, hr, supervisor, employee",
		})
	}

	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "invalid email format",
		})
	}

	if r.ShiftStart != nil && !validator.IsValidClockTime(*r.ShiftStart) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_start",
			Message: "shift_start must be HH:mm in 00:00-23:59",
		})
	}

	if r.ShiftEnd != nil && !validator.IsValidClockTime(*r.ShiftEnd) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_end",
			Message: "shift_end must be HH:mm in 00:00-23:59",
		})
	}

	if r.EPF != nil && *r.EPF != string(FlagYes) && *r.EPF != string(FlagNo) {
		errs = append(errs, validator.ValidationError{
			Field:   "epf",
			Message: "epf must be Yes or No",
		})
	}

	if r.ESIC != nil && *r.ESIC != string(FlagYes) && *r.ESIC != string(FlagNo) {
		errs = append(errs, validator.ValidationError{
			Field:   "esic",
			Message: "esic must be Yes or No",
		})
	}

	if r.PaidLeaves != nil && *r.PaidLeaves < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "paid_leaves",
			Message: "paid_leaves must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SalaryUpdate struct {
	BasicSalary      decimal.Decimal
	SpecialAllowance decimal.Decimal
	Conveyance       decimal.Decimal
	EPF              StatutoryFlag
	ESIC             StatutoryFlag
	PaidLeaves       int
}

type IdentityResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Email        *string `json:"email,omitempty"`
	EmpID        *string `json:"emp_id,omitempty"`
	Designation  *string `json:"designation,omitempty"`
	Department   *string `json:"department,omitempty"`
	Role         string  `json:"role"`
	ShiftStart   *string `json:"shift_start,omitempty"`
	ShiftEnd     *string `json:"shift_end,omitempty"`
	SupervisorID *string `json:"supervisor_id,omitempty"`
	IsActive     bool    `json:"is_active"`

	BasicSalary      decimal.Decimal `json:"basic_salary"`
	SpecialAllowance decimal.Decimal `json:"special_allowance"`
	Conveyance       decimal.Decimal `json:"conveyance"`
	EPF              string          `json:"epf"`
	ESIC             string          `json:"esic"`
	PaidLeaves       int             `json:"paid_leaves"`
}

func ToResponse(id Identity) IdentityResponse {
	return IdentityResponse{
		ID:               id.ID,
		Name:             id.Name,
		Email:            id.Email,
		EmpID:            id.EmpID,
		Designation:      id.Designation,
		Department:       id.Department,
		Role:             string(id.Role),
		ShiftStart:       id.ShiftStart,
		ShiftEnd:         id.ShiftEnd,
		SupervisorID:     id.SupervisorID,
		IsActive:         id.IsActive,
		BasicSalary:      id.BasicSalary,
		SpecialAllowance: id.SpecialAllowance,
		Conveyance:       id.Conveyance,
		EPF:              string(id.EPF),
		ESIC:             string(id.ESIC),
		PaidLeaves:       id.PaidLeaves,
	}
}
