package request

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/stafftrack/hrms-backend-go/internal/pkg/validator"
)

// ========================================
// REQUEST DTOs
// ========================================

type SubmitLeaveRequest struct {
	FromDate string `json:"from_date"` // "YYYY-MM-DD"
	ToDate   string `json:"to_date"`
	Reason   string `json:"reason"`
}

func (r *SubmitLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	from, fromOK := time.Time{}, false
	if validator.IsEmpty(r.FromDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "from_date",
			Message: "from_date is required",
		})
	} else if from, fromOK = validator.IsValidDate(r.FromDate); !fromOK {
		errs = append(errs, validator.ValidationError{
			Field:   "from_date",
			Message: "from_date must be YYYY-MM-DD",
		})
	}

	if validator.IsEmpty(r.ToDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "to_date",
			Message: "to_date is required",
		})
	} else if to, ok := validator.IsValidDate(r.ToDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "to_date",
			Message: "to_date must be YYYY-MM-DD",
		})
	} else if fromOK && to.Before(from) {
		errs = append(errs, validator.ValidationError{
			Field:   "to_date",
			Message: "to_date must not be before from_date",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SubmitAdvanceRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Reason string          `json:"reason"`
}

func (r *SubmitAdvanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Amount.LessThanOrEqual(decimal.Zero) {
		errs = append(errs, validator.ValidationError{
			Field:   "amount",
			Message: "amount must be greater than zero",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DecideRequest struct {
	ID   string `json:"-"`
	Kind Kind   `json:"-"`

	Status   string  `json:"status"` // "Approved" or "Rejected"
	Comments *string `json:"comments"`

	// HR stage of an advance may adjust the amount.
	ModifiedAmount *decimal.Decimal `json:"modified_amount"`
}

func (r *DecideRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Status != string(StatusApproved) && r.Status != string(StatusRejected) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be Approved or Rejected",
		})
	}

	if r.ModifiedAmount != nil && r.ModifiedAmount.LessThanOrEqual(decimal.Zero) {
		errs = append(errs, validator.ValidationError{
			Field:   "modified_amount",
			Message: "modified_amount must be greater than zero",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type Response struct {
	ID             string `json:"id"`
	Kind           string `json:"kind"`
	EmployeeID     string `json:"employee_id"`
	EmployeeName   string `json:"employee_name"`
	SupervisorID   string `json:"supervisor_id"`
	SupervisorName string `json:"supervisor_name"`

	FromDate *string `json:"from_date,omitempty"`
	ToDate   *string `json:"to_date,omitempty"`

	Amount         *decimal.Decimal `json:"amount,omitempty"`
	ModifiedAmount *decimal.Decimal `json:"modified_amount,omitempty"`

	Reason string `json:"reason"`
	Status string `json:"status"`

	SupervisorApproved bool `json:"supervisor_approved"`
	HRApproved         bool `json:"hr_approved"`
	AdminApproved      bool `json:"admin_approved"`

	SupervisorApprovedAt *time.Time `json:"supervisor_approved_at,omitempty"`
	HRApprovedAt         *time.Time `json:"hr_approved_at,omitempty"`
	AdminApprovedAt      *time.Time `json:"admin_approved_at,omitempty"`

	HRComments    *string `json:"hr_comments,omitempty"`
	AdminComments *string `json:"admin_comments,omitempty"`

	IsSeenByEmployee   bool `json:"is_seen_by_employee"`
	IsSeenBySupervisor bool `json:"is_seen_by_supervisor"`

	CreatedAt time.Time `json:"created_at"`
}

func ToResponse(req Request) Response {
	resp := Response{
		ID:                   req.ID,
		Kind:                 string(req.Kind),
		EmployeeID:           req.EmployeeID,
		EmployeeName:         req.EmployeeName,
		SupervisorID:         req.SupervisorID,
		SupervisorName:       req.SupervisorName,
		Amount:               req.Amount,
		ModifiedAmount:       req.ModifiedAmount,
		Reason:               req.Reason,
		Status:               string(req.Status),
		SupervisorApproved:   req.SupervisorApproved,
		HRApproved:           req.HRApproved,
		AdminApproved:        req.AdminApproved,
		SupervisorApprovedAt: req.SupervisorApprovedAt,
		HRApprovedAt:         req.HRApprovedAt,
		AdminApprovedAt:      req.AdminApprovedAt,
		HRComments:           req.HRComments,
		AdminComments:        req.AdminComments,
		IsSeenByEmployee:     req.IsSeenByEmployee,
		IsSeenBySupervisor:   req.IsSeenBySupervisor,
		CreatedAt:            req.CreatedAt,
	}
	if req.FromDate != nil {
		s := req.FromDate.Format("2006-01-02")
		resp.FromDate = &s
	}
	if req.ToDate != nil {
		s := req.ToDate.Format("2006-01-02")
		resp.ToDate = &s
	}
	return resp
}
