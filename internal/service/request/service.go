package request

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/stafftrack/hrms-backend-go/internal/domain/identity"
	"github.com/stafftrack/hrms-backend-go/internal/domain/notification"
	"github.com/stafftrack/hrms-backend-go/internal/domain/request"
	"github.com/stafftrack/hrms-backend-go/internal/pkg/database"
	"github.com/stafftrack/hrms-backend-go/internal/pkg/validator"
	"github.com/stafftrack/hrms-backend-go/internal/repository/postgresql"
)

type RequestServiceImpl struct {
	db               *database.DB
	requestRepo      request.Repository
	identityRepo     identity.Repository
	notificationRepo notification.Repository
}

func NewRequestService(
	db *database.DB,
	requestRepo request.Repository,
	identityRepo identity.Repository,
	notificationRepo notification.Repository,
) request.Service {
	return &RequestServiceImpl{
		db:               db,
		requestRepo:      requestRepo,
		identityRepo:     identityRepo,
		notificationRepo: notificationRepo,
	}
}

// Helper function to extract claims from context
func getClaimsFromContext(ctx context.Context) (userID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user_id claim is missing or invalid")
	}

	return userID, nil
}

// submit creates the request and notifies its supervisor in one
// transaction.
func (s *RequestServiceImpl) submit(ctx context.Context, req request.Request) (request.Response, error) {
	callerID := req.EmployeeID

	emp, err := s.identityRepo.GetByID(ctx, callerID)
	if err != nil {
		return request.Response{}, err
	}
	if emp.SupervisorID == nil {
		return request.Response{}, request.ErrInvalidSupervisor
	}

	sup, err := s.identityRepo.GetByID(ctx, *emp.SupervisorID)
	if err != nil {
		return request.Response{}, request.ErrInvalidSupervisor
	}
	if sup.Role != identity.RoleSupervisor || !sup.IsActive {
		return request.Response{}, request.ErrInvalidSupervisor
	}

	req.ID = uuid.New().String()
	req.SupervisorID = sup.ID
	req.EmployeeName = emp.Name
	req.SupervisorName = sup.Name
	req.Status = request.StatusPending

	var created request.Request

	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		created, err = s.requestRepo.Create(txCtx, req)
		if err != nil {
			return err
		}

		_, err = s.notificationRepo.Create(txCtx, notification.Notification{
			ID:               uuid.New().String(),
			RecipientID:      sup.ID,
			Kind:             notification.Kind(req.Kind),
			Message:          fmt.Sprintf("%s submitted a %s request", emp.Name, kindNoun(req.Kind)),
			RelatedRequestID: created.ID,
		})
		return err
	})
	if err != nil {
		return request.Response{}, err
	}

	return request.ToResponse(created), nil
}

// SubmitLeave implements request.Service.
func (s *RequestServiceImpl) SubmitLeave(ctx context.Context, req request.SubmitLeaveRequest) (request.Response, error) {
	if err := req.Validate(); err != nil {
		return request.Response{}, err
	}

	callerID, err := getClaimsFromContext(ctx)
	if err != nil {
		return request.Response{}, err
	}

	from, _ := validator.IsValidDate(req.FromDate)
	to, _ := validator.IsValidDate(req.ToDate)

	return s.submit(ctx, request.Request{
		Kind:       request.KindLeave,
		EmployeeID: callerID,
		FromDate:   &from,
		ToDate:     &to,
		Reason:     req.Reason,
	})
}

// SubmitAdvance implements request.Service.
func (s *RequestServiceImpl) SubmitAdvance(ctx context.Context, req request.SubmitAdvanceRequest) (request.Response, error) {
	if err := req.Validate(); err != nil {
		return request.Response{}, err
	}

	callerID, err := getClaimsFromContext(ctx)
	if err != nil {
		return request.Response{}, err
	}

	amount := req.Amount

	return s.submit(ctx, request.Request{
		Kind:       request.KindAdvance,
		EmployeeID: callerID,
		Amount:     &amount,
		Reason:     req.Reason,
	})
}

// Decide implements request.Service.
func (s *RequestServiceImpl) Decide(ctx context.Context, stage request.Stage, req request.DecideRequest) (request.Response, error) {
	if err := req.Validate(); err != nil {
		return request.Response{}, err
	}

	callerID, err := getClaimsFromContext(ctx)
	if err != nil {
		return request.Response{}, err
	}

	existing, err := s.requestRepo.GetByID(ctx, req.ID, req.Kind)
	if err != nil {
		return request.Response{}, err
	}
	if existing.Status != request.StatusPending || existing.StageApproved(stage) {
		return request.Response{}, request.ErrAlreadyProcessed
	}
	if existing.NextStage() != stage {
		return request.Response{}, request.ErrOutOfTurn
	}
	if stage == request.StageSupervisor && existing.SupervisorID != callerID {
		return request.Response{}, request.ErrOutOfTurn
	}

	approve := req.Status == string(request.StatusApproved)

	decision := request.StageDecision{
		Approve:   approve,
		Comments:  req.Comments,
		DecidedAt: time.Now().UTC(),
	}
	if stage == request.StageHR && existing.Kind == request.KindAdvance {
		decision.ModifiedAmount = req.ModifiedAmount
	}

	var decided request.Request

	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		decided, err = s.requestRepo.DecideStage(txCtx, req.ID, req.Kind, stage, decision)
		if err != nil {
			return err
		}
		return s.notifyTransition(txCtx, decided, stage, approve)
	})
	if err != nil {
		return request.Response{}, err
	}

	return request.ToResponse(decided), nil
}

// notifyTransition notifies the requesting employee of every decision,
// fans a stage approval out to every active user of the next role, and
// retires the request's notification trail on final approval.
func (s *RequestServiceImpl) notifyTransition(ctx context.Context, req request.Request, stage request.Stage, approved bool) error {
	kind := notification.Kind(req.Kind)

	outcome := "rejected"
	if approved {
		outcome = "approved"
	}
	employeeNote := notification.Notification{
		ID:               uuid.New().String(),
		RecipientID:      req.EmployeeID,
		Kind:             kind,
		Message:          fmt.Sprintf("Your %s request was %s at the %s stage", kindNoun(req.Kind), outcome, stage),
		RelatedRequestID: req.ID,
	}

	if !approved {
		// Rejection is terminal: retire the trail, tell the employee.
		if err := s.notificationRepo.DeleteByRequest(ctx, req.ID, kind); err != nil {
			return err
		}
		_, err := s.notificationRepo.Create(ctx, employeeNote)
		return err
	}

	var nextRole identity.Role
	var message string

	switch stage {
	case request.StageSupervisor:
		nextRole = identity.RoleHR
		message = fmt.Sprintf("%s's %s request is awaiting HR review", req.EmployeeName, kindNoun(req.Kind))
	case request.StageHR:
		nextRole = identity.RoleAdmin
		message = fmt.Sprintf("%s's %s request is awaiting admin review", req.EmployeeName, kindNoun(req.Kind))
	case request.StageAdmin:
		// Final approval clears the review trail, then records the
		// outcome for the employee.
		if err := s.notificationRepo.DeleteByRequest(ctx, req.ID, kind); err != nil {
			return err
		}
		_, err := s.notificationRepo.Create(ctx, employeeNote)
		return err
	}

	recipients, err := s.identityRepo.ListByRole(ctx, nextRole)
	if err != nil {
		return err
	}

	notifications := make([]notification.Notification, 0, len(recipients)+1)
	notifications = append(notifications, employeeNote)
	for _, recipient := range recipients {
		notifications = append(notifications, notification.Notification{
			ID:               uuid.New().String(),
			RecipientID:      recipient.ID,
			Kind:             kind,
			Message:          message,
			RelatedRequestID: req.ID,
		})
	}

	return s.notificationRepo.CreateBatch(ctx, notifications)
}

// ListSupervisorQueue implements request.Service.
func (s *RequestServiceImpl) ListSupervisorQueue(ctx context.Context, kind request.Kind) ([]request.Response, error) {
	callerID, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	reqs, err := s.requestRepo.ListPendingForSupervisor(ctx, kind, callerID)
	if err != nil {
		return nil, err
	}
	return toResponses(reqs), nil
}

// ListHRQueue implements request.Service.
func (s *RequestServiceImpl) ListHRQueue(ctx context.Context, kind request.Kind) ([]request.Response, error) {
	reqs, err := s.requestRepo.ListHRQueue(ctx, kind)
	if err != nil {
		return nil, err
	}
	return toResponses(reqs), nil
}

// ListAdminQueue implements request.Service.
func (s *RequestServiceImpl) ListAdminQueue(ctx context.Context, kind request.Kind) ([]request.Response, error) {
	reqs, err := s.requestRepo.ListAdminQueue(ctx, kind)
	if err != nil {
		return nil, err
	}
	return toResponses(reqs), nil
}

// ListMine implements request.Service.
func (s *RequestServiceImpl) ListMine(ctx context.Context, kind request.Kind) ([]request.Response, error) {
	callerID, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	reqs, err := s.requestRepo.ListByEmployee(ctx, kind, callerID)
	if err != nil {
		return nil, err
	}
	return toResponses(reqs), nil
}

// MarkSeen implements request.Service.
func (s *RequestServiceImpl) MarkSeen(ctx context.Context, kind request.Kind, id string) error {
	callerID, err := getClaimsFromContext(ctx)
	if err != nil {
		return err
	}

	existing, err := s.requestRepo.GetByID(ctx, id, kind)
	if err != nil {
		return err
	}
	if existing.SupervisorID != callerID {
		return request.ErrOutOfTurn
	}

	return s.requestRepo.MarkSeenBySupervisor(ctx, id, kind)
}

func toResponses(reqs []request.Request) []request.Response {
	responses := make([]request.Response, 0, len(reqs))
	for _, req := range reqs {
		responses = append(responses, request.ToResponse(req))
	}
	return responses
}

func kindNoun(k request.Kind) string {
	return strings.ToLower(string(k))
}
