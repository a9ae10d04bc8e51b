package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/stafftrack/hrms-backend-go/internal/domain/attendance"
	"github.com/stafftrack/hrms-backend-go/internal/domain/identity"
	"github.com/stafftrack/hrms-backend-go/internal/pkg/database"
	"github.com/stafftrack/hrms-backend-go/internal/pkg/validator"
	"github.com/stafftrack/hrms-backend-go/internal/repository/postgresql"
)

type AttendanceServiceImpl struct {
	db               *database.DB
	attendanceRepo   attendance.Repository
	modificationRepo attendance.ModificationRepository
	identityRepo     identity.Repository
	graceMinutes     int
}

func NewAttendanceService(
	db *database.DB,
	attendanceRepo attendance.Repository,
	modificationRepo attendance.ModificationRepository,
	identityRepo identity.Repository,
	graceMinutes int,
) attendance.Service {
	return &AttendanceServiceImpl{
		db:               db,
		attendanceRepo:   attendanceRepo,
		modificationRepo: modificationRepo,
		identityRepo:     identityRepo,
		graceMinutes:     graceMinutes,
	}
}

// Helper function to extract claims from context
func getClaimsFromContext(ctx context.Context) (userID, role string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", "", fmt.Errorf("user_id claim is missing or invalid")
	}

	role, _ = claims["role"].(string)

	return userID, role, nil
}

// isLate compares a clock-in against the assigned shift start. An
// employee with no shift assignment is never late.
func (s *AttendanceServiceImpl) isLate(shiftStart, timeIn *string) bool {
	if shiftStart == nil || timeIn == nil {
		return false
	}
	assigned, err := validator.MinuteOfDay(*shiftStart)
	if err != nil {
		return false
	}
	actual, err := validator.MinuteOfDay(*timeIn)
	if err != nil {
		return false
	}
	return actual > assigned+s.graceMinutes
}

func toResponse(att attendance.Attendance) attendance.Response {
	return attendance.Response{
		ID:                  att.ID,
		EmployeeID:          att.EmployeeID,
		Date:                att.Date.Format("2006-01-02"),
		TimeIn:              att.TimeIn,
		TimeOut:             att.TimeOut,
		Status:              string(att.Status),
		IsLate:              att.IsLate,
		RecordedBy:          att.RecordedBy,
		EmployeeName:        att.EmployeeName,
		EmployeeEmpID:       att.EmployeeEmpID,
		EmployeeDesignation: att.EmployeeDesignation,
	}
}

func toModificationResponse(req attendance.ModificationRequest) attendance.ModificationResponse {
	return attendance.ModificationResponse{
		ID:            req.ID,
		RequestedBy:   req.RequestedBy,
		EmployeeID:    req.EmployeeID,
		Date:          req.Date.Format("2006-01-02"),
		Reason:        req.Reason,
		NewStatus:     req.NewStatus,
		NewTimeIn:     req.NewTimeIn,
		NewTimeOut:    req.NewTimeOut,
		NewIsLate:     req.NewIsLate,
		State:         string(req.Status),
		DecidedBy:     req.DecidedBy,
		RequesterName: req.RequesterName,
		EmployeeName:  req.EmployeeName,
	}
}

// checkCanManage verifies the caller may write attendance for the
// employee: supervisors only for their own assignees, hr/admin for
// anyone.
func (s *AttendanceServiceImpl) checkCanManage(callerID, role string, emp identity.Identity) error {
	if role == string(identity.RoleSupervisor) {
		if emp.SupervisorID == nil || *emp.SupervisorID != callerID {
			return attendance.ErrNotAssigned
		}
	}
	return nil
}

// Mark implements attendance.Service.
func (s *AttendanceServiceImpl) Mark(ctx context.Context, req attendance.MarkRequest) (attendance.Response, error) {
	if err := req.Validate(); err != nil {
		return attendance.Response{}, err
	}

	callerID, role, err := getClaimsFromContext(ctx)
	if err != nil {
		return attendance.Response{}, err
	}

	emp, err := s.identityRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return attendance.Response{}, err
	}
	// A deactivated identity cannot be marked; same outcome as an
	// unknown one.
	if !emp.IsActive {
		return attendance.Response{}, identity.ErrIdentityNotFound
	}

	if err := s.checkCanManage(callerID, role, emp); err != nil {
		return attendance.Response{}, err
	}

	date, _ := validator.IsValidDate(req.Date)

	att := attendance.Attendance{
		ID:         uuid.New().String(),
		EmployeeID: req.EmployeeID,
		Date:       date,
		Status:     attendance.Status(req.Status),
		RecordedBy: &callerID,
	}

	// Clock times are meaningful only for Present; Absent and Halfday
	// rows carry no time and are never late.
	if att.Status == attendance.StatusPresent {
		timeIn := req.TimeIn
		if timeIn == nil {
			now := time.Now().Format("15:04")
			timeIn = &now
		}
		att.TimeIn = timeIn
		att.TimeOut = req.TimeOut
		if req.IsLate != nil {
			att.IsLate = *req.IsLate
		} else {
			att.IsLate = s.isLate(emp.ShiftStart, timeIn)
		}
	}

	saved, err := s.attendanceRepo.Upsert(ctx, att)
	if err != nil {
		return attendance.Response{}, err
	}

	saved.EmployeeName = &emp.Name
	saved.EmployeeEmpID = emp.EmpID
	saved.EmployeeDesignation = emp.Designation

	return toResponse(saved), nil
}

// List implements attendance.Service.
func (s *AttendanceServiceImpl) List(ctx context.Context, filter attendance.ListFilter) ([]attendance.Response, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	callerID, role, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var start, end time.Time
	switch {
	case filter.Date != nil:
		start, _ = validator.IsValidDate(*filter.Date)
		end = start
	case filter.StartDate != nil:
		start, _ = validator.IsValidDate(*filter.StartDate)
		end, _ = validator.IsValidDate(*filter.EndDate)
	default:
		now := time.Now().UTC()
		start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		end = start
	}

	var employeeIDs []string
	switch role {
	case string(identity.RoleEmployee):
		employeeIDs = []string{callerID}
	case string(identity.RoleSupervisor):
		assignees, err := s.identityRepo.ListBySupervisor(ctx, callerID)
		if err != nil {
			return nil, err
		}
		if len(assignees) == 0 {
			return []attendance.Response{}, nil
		}
		for _, a := range assignees {
			employeeIDs = append(employeeIDs, a.ID)
		}
	}

	records, err := s.attendanceRepo.List(ctx, start, end, employeeIDs)
	if err != nil {
		return nil, err
	}

	responses := make([]attendance.Response, 0, len(records))
	for _, att := range records {
		responses = append(responses, toResponse(att))
	}
	return responses, nil
}

// Update implements attendance.Service.
func (s *AttendanceServiceImpl) Update(ctx context.Context, req attendance.UpdateRequest) (attendance.Response, error) {
	if err := req.Validate(); err != nil {
		return attendance.Response{}, err
	}

	callerID, role, err := getClaimsFromContext(ctx)
	if err != nil {
		return attendance.Response{}, err
	}

	att, err := s.attendanceRepo.GetByID(ctx, req.ID)
	if err != nil {
		return attendance.Response{}, err
	}

	emp, err := s.identityRepo.GetByID(ctx, att.EmployeeID)
	if err != nil {
		return attendance.Response{}, err
	}

	if err := s.checkCanManage(callerID, role, emp); err != nil {
		return attendance.Response{}, err
	}

	applyChanges(&att, req.Status, req.TimeIn, req.TimeOut, req.IsLate)

	if att.Status == attendance.StatusPresent && req.IsLate == nil && req.TimeIn != nil {
		att.IsLate = s.isLate(emp.ShiftStart, att.TimeIn)
	}

	att.RecordedBy = &callerID

	saved, err := s.attendanceRepo.Update(ctx, att)
	if err != nil {
		return attendance.Response{}, err
	}

	return toResponse(saved), nil
}

// applyChanges merges non-nil fields into the record and re-asserts the
// no-times-when-not-Present invariant.
func applyChanges(att *attendance.Attendance, status, timeIn, timeOut *string, isLate *bool) {
	if status != nil {
		att.Status = attendance.Status(*status)
	}
	if timeIn != nil {
		if *timeIn == "" {
			att.TimeIn = nil
		} else {
			att.TimeIn = timeIn
		}
	}
	if timeOut != nil {
		if *timeOut == "" {
			att.TimeOut = nil
		} else {
			att.TimeOut = timeOut
		}
	}
	if isLate != nil {
		att.IsLate = *isLate
	}

	if att.Status != attendance.StatusPresent {
		att.TimeIn = nil
		att.TimeOut = nil
		att.IsLate = false
	}
}

// RequestModification implements attendance.Service.
func (s *AttendanceServiceImpl) RequestModification(ctx context.Context, req attendance.CreateModificationRequest) (attendance.ModificationResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.ModificationResponse{}, err
	}

	callerID, role, err := getClaimsFromContext(ctx)
	if err != nil {
		return attendance.ModificationResponse{}, err
	}

	emp, err := s.identityRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return attendance.ModificationResponse{}, err
	}

	if err := s.checkCanManage(callerID, role, emp); err != nil {
		return attendance.ModificationResponse{}, err
	}

	date, _ := validator.IsValidDate(req.Date)

	mod := attendance.ModificationRequest{
		ID:          uuid.New().String(),
		RequestedBy: callerID,
		EmployeeID:  req.EmployeeID,
		Date:        date,
		Reason:      req.Reason,
		NewStatus:   req.NewStatus,
		NewTimeIn:   req.NewTimeIn,
		NewTimeOut:  req.NewTimeOut,
		NewIsLate:   req.NewIsLate,
		Status:      attendance.ModificationPending,
	}

	created, err := s.modificationRepo.Create(ctx, mod)
	if err != nil {
		return attendance.ModificationResponse{}, err
	}

	return toModificationResponse(created), nil
}

// ListModifications implements attendance.Service.
func (s *AttendanceServiceImpl) ListModifications(ctx context.Context) ([]attendance.ModificationResponse, error) {
	mods, err := s.modificationRepo.ListPending(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]attendance.ModificationResponse, 0, len(mods))
	for _, mod := range mods {
		responses = append(responses, toModificationResponse(mod))
	}
	return responses, nil
}

// DecideModification implements attendance.Service.
func (s *AttendanceServiceImpl) DecideModification(ctx context.Context, req attendance.DecideModificationRequest) (attendance.ModificationResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.ModificationResponse{}, err
	}

	callerID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return attendance.ModificationResponse{}, err
	}

	status := attendance.ModificationApproved
	if req.Action == "reject" {
		status = attendance.ModificationRejected
	}

	var decided attendance.ModificationRequest

	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		decided, err = s.modificationRepo.Decide(txCtx, req.ID, status, callerID, req.Note)
		if err != nil {
			return err
		}

		if status != attendance.ModificationApproved {
			return nil
		}

		// Approval applies the requested changes to the ledger, creating
		// the day's row when the correction targets a missing one.
		existing, err := s.attendanceRepo.GetByEmployeeAndDate(txCtx, decided.EmployeeID, decided.Date)
		if err != nil {
			return err
		}

		if existing == nil {
			att := attendance.Attendance{
				ID:         uuid.New().String(),
				EmployeeID: decided.EmployeeID,
				Date:       decided.Date,
				Status:     attendance.StatusAbsent,
				RecordedBy: &callerID,
			}
			applyChanges(&att, decided.NewStatus, decided.NewTimeIn, decided.NewTimeOut, decided.NewIsLate)
			_, err = s.attendanceRepo.Upsert(txCtx, att)
			return err
		}

		applyChanges(existing, decided.NewStatus, decided.NewTimeIn, decided.NewTimeOut, decided.NewIsLate)
		existing.RecordedBy = &callerID
		_, err = s.attendanceRepo.Update(txCtx, *existing)
		return err
	})
	if err != nil {
		return attendance.ModificationResponse{}, err
	}

	return toModificationResponse(decided), nil
}
