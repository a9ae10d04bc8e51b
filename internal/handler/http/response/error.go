package response

import (
	"errors"
	"net/http"

	"github.com/stafftrack/hrms-backend-go/internal/domain/attendance"
	"github.com/stafftrack/hrms-backend-go/internal/domain/auth"
	"github.com/stafftrack/hrms-backend-go/internal/domain/identity"
	"github.com/stafftrack/hrms-backend-go/internal/domain/notification"
	"github.com/stafftrack/hrms-backend-go/internal/domain/report"
	"github.com/stafftrack/hrms-backend-go/internal/domain/request"
	"github.com/stafftrack/hrms-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid login or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or missing token")
	case errors.Is(err, auth.ErrOTPRequired):
		Unauthorized(w, "A one-time code is required for admin login")
	case errors.Is(err, auth.ErrInvalidOTP):
		Unauthorized(w, "Invalid or expired one-time code")

	// Identity domain errors
	case errors.Is(err, identity.ErrIdentityNotFound):
		NotFound(w, "Identity not found")
	case errors.Is(err, identity.ErrIdentityInactive):
		Forbidden(w, "Identity is inactive")
	case errors.Is(err, identity.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, identity.ErrEmpIDExists):
		Conflict(w, "Employee ID already registered")
	case errors.Is(err, identity.ErrNotASupervisor):
		BadRequest(w, "Linked identity is not an active supervisor", nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrNotAssigned):
		Forbidden(w, "Employee is not assigned to this supervisor")
	case errors.Is(err, attendance.ErrModificationNotFound):
		NotFound(w, "Modification request not found")
	case errors.Is(err, attendance.ErrModificationAlreadyProcessed):
		Conflict(w, "Modification request already processed")

	// Request workflow errors
	case errors.Is(err, request.ErrRequestNotFound):
		NotFound(w, "Request not found")
	case errors.Is(err, request.ErrAlreadyProcessed):
		Conflict(w, "Request already processed")
	case errors.Is(err, request.ErrOutOfTurn):
		Forbidden(w, "Request is not awaiting this approval stage")
	case errors.Is(err, request.ErrInvalidSupervisor):
		BadRequest(w, "Employee has no active supervisor linked", nil)

	// Notification domain errors
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")
	case errors.Is(err, notification.ErrNotRecipient):
		Forbidden(w, "Only the recipient may mark a notification seen")

	// Report domain errors
	case errors.Is(err, report.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
