package attendance

import (
	"github.com/stafftrack/hrms-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type MarkRequest struct {
	EmployeeID string  `json:"employee_id"`
	Date       string  `json:"date"` // "YYYY-MM-DD"
	TimeIn     *string `json:"time_in"`
	TimeOut    *string `json:"time_out"`
	Status     string  `json:"status"`
	IsLate     *bool   `json:"is_late"`
}

func (r *MarkRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be YYYY-MM-DD",
		})
	}

	if !IsValidStatus(r.Status) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be Present, Absent, or Halfday",
		})
	}

	if r.TimeIn != nil && !validator.IsValidClockTime(*r.TimeIn) {
		errs = append(errs, validator.ValidationError{
			Field:   "time_in",
			Message: "time_in must be HH:mm in 00:00-23:59",
		})
	}

	if r.TimeOut != nil && !validator.IsValidClockTime(*r.TimeOut) {
		errs = append(errs, validator.ValidationError{
			Field:   "time_out",
			Message: "time_out must be HH:mm in 00:00-23:59",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateRequest struct {
	ID      string  `json:"-"`
	Status  *string `json:"status"`
	TimeIn  *string `json:"time_in"`
	TimeOut *string `json:"time_out"`
	IsLate  *bool   `json:"is_late"`
}

func (r *UpdateRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Status != nil && !IsValidStatus(*r.Status) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be Present, Absent, or Halfday",
		})
	}

	if r.TimeIn != nil && *r.TimeIn != "" && !validator.IsValidClockTime(*r.TimeIn) {
		errs = append(errs, validator.ValidationError{
			Field:   "time_in",
			Message: "time_in must be HH:mm in 00:00-23:59",
		})
	}

	if r.TimeOut != nil && *r.TimeOut != "" && !validator.IsValidClockTime(*r.TimeOut) {
		errs = append(errs, validator.ValidationError{
			Field:   "time_out",
			Message: "time_out must be HH:mm in 00:00-23:59",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListFilter struct {
	Date      *string
	StartDate *string
	EndDate   *string
}

func (f *ListFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Date != nil {
		if _, ok := validator.IsValidDate(*f.Date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be YYYY-MM-DD",
			})
		}
	}

	if (f.StartDate == nil) != (f.EndDate == nil) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date and end_date must be provided together",
		})
	}

	if f.StartDate != nil {
		if _, ok := validator.IsValidDate(*f.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be YYYY-MM-DD",
			})
		}
	}

	if f.EndDate != nil {
		if _, ok := validator.IsValidDate(*f.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be YYYY-MM-DD",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type Response struct {
	ID         string  `json:"id"`
	EmployeeID string  `json:"employee_id"`
	Date       string  `json:"date"`
	TimeIn     *string `json:"time_in"`
	TimeOut    *string `json:"time_out"`
	Status     string  `json:"status"`
	IsLate     bool    `json:"is_late"`
	RecordedBy *string `json:"recorded_by,omitempty"`

	EmployeeName        *string `json:"employee_name,omitempty"`
	EmployeeEmpID       *string `json:"employee_emp_id,omitempty"`
	EmployeeDesignation *string `json:"employee_designation,omitempty"`
}

// ========================================
// MODIFICATION REQUEST DTOs
// ========================================

type CreateModificationRequest struct {
	EmployeeID string  `json:"employee_id"`
	Date       string  `json:"date"`
	Reason     string  `json:"reason"`
	NewStatus  *string `json:"status"`
	NewTimeIn  *string `json:"time_in"`
	NewTimeOut *string `json:"time_out"`
	NewIsLate  *bool   `json:"is_late"`
}

func (r *CreateModificationRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be YYYY-MM-DD",
		})
	}

	if r.NewStatus != nil && !IsValidStatus(*r.NewStatus) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be Present, Absent, or Halfday",
		})
	}

	if r.NewTimeIn != nil && !validator.IsValidClockTime(*r.NewTimeIn) {
		errs = append(errs, validator.ValidationError{
			Field:   "time_in",
			Message: "time_in must be HH:mm in 00:00-23:59",
		})
	}

	if r.NewTimeOut != nil && !validator.IsValidClockTime(*r.NewTimeOut) {
		errs = append(errs, validator.ValidationError{
			Field:   "time_out",
			Message: "time_out must be HH:mm in 00:00-23:59",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DecideModificationRequest struct {
	ID     string  `json:"-"`
	Action string  `json:"action"` // "approve" or "reject"
	Note   *string `json:"note"`
}

func (r *DecideModificationRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Action != "approve" && r.Action != "reject" {
		errs = append(errs, validator.ValidationError{
			Field:   "action",
			Message: "action must be approve or reject",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ModificationResponse struct {
	ID          string  `json:"id"`
	RequestedBy string  `json:"requested_by"`
	EmployeeID  string  `json:"employee_id"`
	Date        string  `json:"date"`
	Reason      string  `json:"reason"`
	NewStatus   *string `json:"status,omitempty"`
	NewTimeIn   *string `json:"time_in,omitempty"`
	NewTimeOut  *string `json:"time_out,omitempty"`
	NewIsLate   *bool   `json:"is_late,omitempty"`
	State       string  `json:"state"`
	DecidedBy   *string `json:"decided_by,omitempty"`

	RequesterName *string `json:"requester_name,omitempty"`
	EmployeeName  *string `json:"employee_name,omitempty"`
}
