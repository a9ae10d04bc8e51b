package request

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stafftrack/hrms-backend-go/internal/domain/identity"
	"github.com/stafftrack/hrms-backend-go/internal/domain/notification"
	"github.com/stafftrack/hrms-backend-go/internal/domain/request"
	"github.com/stafftrack/hrms-backend-go/internal/pkg/database"
	"github.com/stafftrack/hrms-backend-go/internal/repository/postgresql"
)

var testDB *database.DB

func testInit(t *testing.T) {
	t.Helper()
	if testDB != nil {
		return
	}

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping database tests")
	}

	var err error
	testDB, err = database.NewPostgreSQLDB(dsn)
	require.NoError(t, err, "failed to connect to test database")
}

func truncateTables(t *testing.T, ctx context.Context) {
	t.Helper()
	tables := []string{"notifications", "requests", "attendance_modification_requests", "attendances", "identities"}
	for _, table := range tables {
		_, err := testDB.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err)
	}
}

var testJWTAuth = jwtauth.New("HS256", []byte("test-secret"), nil)

func authedContext(t *testing.T, userID string, role identity.Role) context.Context {
	t.Helper()
	token, _, err := testJWTAuth.Encode(map[string]interface{}{
		"user_id": userID,
		"role":    string(role),
		"type":    "access",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

type fixture struct {
	svc              request.Service
	notificationRepo notification.Repository

	employeeID   string
	supervisorID string
	hrID         string
	adminID      string
}

func setup(t *testing.T) fixture {
	testInit(t)
	ctx := context.Background()
	truncateTables(t, ctx)

	identityRepo := postgresql.NewIdentityRepository(testDB)
	requestRepo := postgresql.NewRequestRepository(testDB)
	notificationRepo := postgresql.NewNotificationRepository(testDB)

	f := fixture{
		svc:              NewRequestService(testDB, requestRepo, identityRepo, notificationRepo),
		notificationRepo: notificationRepo,
		employeeID:       uuid.New().String(),
		supervisorID:     uuid.New().String(),
		hrID:             uuid.New().String(),
		adminID:          uuid.New().String(),
	}

	seed := func(id, name string, role identity.Role, supervisorID *string) {
		_, err := identityRepo.Create(ctx, identity.Identity{
			ID:           id,
			Name:         name,
			Role:         role,
			SupervisorID: supervisorID,
			IsActive:     true,
		})
		require.NoError(t, err)
	}

	seed(f.supervisorID, "Sana", identity.RoleSupervisor, nil)
	seed(f.employeeID, "Ravi", identity.RoleEmployee, &f.supervisorID)
	seed(f.hrID, "Dev", identity.RoleHR, nil)
	seed(f.adminID, "Asha", identity.RoleAdmin, nil)

	return f
}

func (f fixture) submitLeave(t *testing.T) request.Response {
	t.Helper()
	resp, err := f.svc.SubmitLeave(authedContext(t, f.employeeID, identity.RoleEmployee), request.SubmitLeaveRequest{
		FromDate: "2024-07-01",
		ToDate:   "2024-07-03",
		Reason:   "family function",
	})
	require.NoError(t, err)
	return resp
}

func (f fixture) decide(t *testing.T, stage request.Stage, actor string, role identity.Role, req request.DecideRequest) (request.Response, error) {
	t.Helper()
	return f.svc.Decide(authedContext(t, actor, role), stage, req)
}

func TestSubmitLeaveNotifiesSupervisor(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	resp := f.submitLeave(t)

	assert.Equal(t, string(request.StatusPending), resp.Status)
	assert.Equal(t, f.supervisorID, resp.SupervisorID)
	assert.False(t, resp.SupervisorApproved)

	ns, err := f.notificationRepo.ListByRecipient(ctx, f.supervisorID)
	require.NoError(t, err)
	require.Len(t, ns, 1)
	assert.Equal(t, resp.ID, ns[0].RelatedRequestID)
}

func TestSubmitWithoutSupervisorFails(t *testing.T) {
	f := setup(t)

	orphanID := uuid.New().String()
	identityRepo := postgresql.NewIdentityRepository(testDB)
	_, err := identityRepo.Create(context.Background(), identity.Identity{
		ID: orphanID, Name: "Noor", Role: identity.RoleEmployee, IsActive: true,
	})
	require.NoError(t, err)

	_, err = f.svc.SubmitLeave(authedContext(t, orphanID, identity.RoleEmployee), request.SubmitLeaveRequest{
		FromDate: "2024-07-01",
		ToDate:   "2024-07-01",
		Reason:   "errand",
	})
	assert.ErrorIs(t, err, request.ErrInvalidSupervisor)
}

func TestFullApprovalChain(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	resp := f.submitLeave(t)

	// Supervisor approves: status stays Pending, HR gets notified.
	resp2, err := f.decide(t, request.StageSupervisor, f.supervisorID, identity.RoleSupervisor,
		request.DecideRequest{ID: resp.ID, Kind: request.KindLeave, Status: "Approved"})
	require.NoError(t, err)
	assert.Equal(t, string(request.StatusPending), resp2.Status)
	assert.True(t, resp2.SupervisorApproved)
	assert.NotNil(t, resp2.SupervisorApprovedAt)

	hrNotifs, err := f.notificationRepo.ListByRecipient(ctx, f.hrID)
	require.NoError(t, err)
	assert.Len(t, hrNotifs, 1)

	// HR approves with a comment.
	comment := "within quota"
	resp3, err := f.decide(t, request.StageHR, f.hrID, identity.RoleHR,
		request.DecideRequest{ID: resp.ID, Kind: request.KindLeave, Status: "Approved", Comments: &comment})
	require.NoError(t, err)
	assert.Equal(t, string(request.StatusPending), resp3.Status)
	assert.True(t, resp3.HRApproved)
	require.NotNil(t, resp3.HRComments)
	assert.Equal(t, comment, *resp3.HRComments)

	adminNotifs, err := f.notificationRepo.ListByRecipient(ctx, f.adminID)
	require.NoError(t, err)
	assert.Len(t, adminNotifs, 1)

	// Admin approval is terminal and clears the notification trail.
	resp4, err := f.decide(t, request.StageAdmin, f.adminID, identity.RoleAdmin,
		request.DecideRequest{ID: resp.ID, Kind: request.KindLeave, Status: "Approved"})
	require.NoError(t, err)
	assert.Equal(t, string(request.StatusApproved), resp4.Status)
	assert.True(t, resp4.AdminApproved)

	for _, recipient := range []string{f.supervisorID, f.hrID, f.adminID} {
		ns, err := f.notificationRepo.ListByRecipient(ctx, recipient)
		require.NoError(t, err)
		assert.Empty(t, ns, "notifications for %s should be cleared", recipient)
	}

	// The employee keeps only the final outcome.
	empNotifs, err := f.notificationRepo.ListByRecipient(ctx, f.employeeID)
	require.NoError(t, err)
	require.Len(t, empNotifs, 1)
	assert.Contains(t, empNotifs[0].Message, "approved")
}

func TestDecideOutOfTurn(t *testing.T) {
	f := setup(t)

	resp := f.submitLeave(t)

	// HR cannot act before the supervisor stage.
	_, err := f.decide(t, request.StageHR, f.hrID, identity.RoleHR,
		request.DecideRequest{ID: resp.ID, Kind: request.KindLeave, Status: "Approved"})
	assert.ErrorIs(t, err, request.ErrOutOfTurn)

	// Neither can admin.
	_, err = f.decide(t, request.StageAdmin, f.adminID, identity.RoleAdmin,
		request.DecideRequest{ID: resp.ID, Kind: request.KindLeave, Status: "Approved"})
	assert.ErrorIs(t, err, request.ErrOutOfTurn)
}

func TestDecideSameStageTwice(t *testing.T) {
	f := setup(t)

	resp := f.submitLeave(t)

	_, err := f.decide(t, request.StageSupervisor, f.supervisorID, identity.RoleSupervisor,
		request.DecideRequest{ID: resp.ID, Kind: request.KindLeave, Status: "Approved"})
	require.NoError(t, err)

	// The supervisor stage is already settled, even though the request
	// as a whole is still pending HR and admin.
	_, err = f.decide(t, request.StageSupervisor, f.supervisorID, identity.RoleSupervisor,
		request.DecideRequest{ID: resp.ID, Kind: request.KindLeave, Status: "Approved"})
	assert.ErrorIs(t, err, request.ErrAlreadyProcessed)
}

func TestRejectionIsTerminal(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	resp := f.submitLeave(t)

	_, err := f.decide(t, request.StageSupervisor, f.supervisorID, identity.RoleSupervisor,
		request.DecideRequest{ID: resp.ID, Kind: request.KindLeave, Status: "Approved"})
	require.NoError(t, err)

	reason := "headcount too thin that week"
	rejected, err := f.decide(t, request.StageHR, f.hrID, identity.RoleHR,
		request.DecideRequest{ID: resp.ID, Kind: request.KindLeave, Status: "Rejected", Comments: &reason})
	require.NoError(t, err)
	assert.Equal(t, string(request.StatusRejected), rejected.Status)

	// A rejected request never advances.
	_, err = f.decide(t, request.StageAdmin, f.adminID, identity.RoleAdmin,
		request.DecideRequest{ID: resp.ID, Kind: request.KindLeave, Status: "Approved"})
	assert.ErrorIs(t, err, request.ErrAlreadyProcessed)

	// The pending review trail is retired, the employee keeps the outcome.
	hrNotifs, err := f.notificationRepo.ListByRecipient(ctx, f.hrID)
	require.NoError(t, err)
	assert.Empty(t, hrNotifs)

	empNotifs, err := f.notificationRepo.ListByRecipient(ctx, f.employeeID)
	require.NoError(t, err)
	require.Len(t, empNotifs, 1)
	assert.Contains(t, empNotifs[0].Message, "rejected")
}

func TestAdvanceHRModifiesAmount(t *testing.T) {
	f := setup(t)

	amount := decimal.RequireFromString("5000")
	resp, err := f.svc.SubmitAdvance(authedContext(t, f.employeeID, identity.RoleEmployee), request.SubmitAdvanceRequest{
		Amount: amount,
		Reason: "medical expense",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Amount)
	assert.True(t, resp.Amount.Equal(amount))

	_, err = f.decide(t, request.StageSupervisor, f.supervisorID, identity.RoleSupervisor,
		request.DecideRequest{ID: resp.ID, Kind: request.KindAdvance, Status: "Approved"})
	require.NoError(t, err)

	modified := decimal.RequireFromString("3000")
	resp2, err := f.decide(t, request.StageHR, f.hrID, identity.RoleHR,
		request.DecideRequest{ID: resp.ID, Kind: request.KindAdvance, Status: "Approved", ModifiedAmount: &modified})
	require.NoError(t, err)
	require.NotNil(t, resp2.ModifiedAmount)
	assert.True(t, resp2.ModifiedAmount.Equal(modified))
	// The requested amount is preserved alongside the adjustment.
	require.NotNil(t, resp2.Amount)
	assert.True(t, resp2.Amount.Equal(amount))
}

func TestAdvanceHRApproveWithoutModificationKeepsAmount(t *testing.T) {
	f := setup(t)

	amount := decimal.RequireFromString("2000")
	resp, err := f.svc.SubmitAdvance(authedContext(t, f.employeeID, identity.RoleEmployee), request.SubmitAdvanceRequest{
		Amount: amount,
		Reason: "rent deposit",
	})
	require.NoError(t, err)

	_, err = f.decide(t, request.StageSupervisor, f.supervisorID, identity.RoleSupervisor,
		request.DecideRequest{ID: resp.ID, Kind: request.KindAdvance, Status: "Approved"})
	require.NoError(t, err)

	resp2, err := f.decide(t, request.StageHR, f.hrID, identity.RoleHR,
		request.DecideRequest{ID: resp.ID, Kind: request.KindAdvance, Status: "Approved"})
	require.NoError(t, err)
	require.NotNil(t, resp2.ModifiedAmount)
	assert.True(t, resp2.ModifiedAmount.Equal(amount))
}

func TestForeignSupervisorCannotDecide(t *testing.T) {
	f := setup(t)

	otherSupID := uuid.New().String()
	identityRepo := postgresql.NewIdentityRepository(testDB)
	_, err := identityRepo.Create(context.Background(), identity.Identity{
		ID: otherSupID, Name: "Kiran", Role: identity.RoleSupervisor, IsActive: true,
	})
	require.NoError(t, err)

	resp := f.submitLeave(t)

	_, err = f.decide(t, request.StageSupervisor, otherSupID, identity.RoleSupervisor,
		request.DecideRequest{ID: resp.ID, Kind: request.KindLeave, Status: "Approved"})
	assert.ErrorIs(t, err, request.ErrOutOfTurn)
}

func TestQueues(t *testing.T) {
	f := setup(t)

	resp := f.submitLeave(t)

	supQueue, err := f.svc.ListSupervisorQueue(authedContext(t, f.supervisorID, identity.RoleSupervisor), request.KindLeave)
	require.NoError(t, err)
	require.Len(t, supQueue, 1)
	assert.Equal(t, resp.ID, supQueue[0].ID)

	hrQueue, err := f.svc.ListHRQueue(authedContext(t, f.hrID, identity.RoleHR), request.KindLeave)
	require.NoError(t, err)
	assert.Empty(t, hrQueue)

	_, err = f.decide(t, request.StageSupervisor, f.supervisorID, identity.RoleSupervisor,
		request.DecideRequest{ID: resp.ID, Kind: request.KindLeave, Status: "Approved"})
	require.NoError(t, err)

	supQueue, err = f.svc.ListSupervisorQueue(authedContext(t, f.supervisorID, identity.RoleSupervisor), request.KindLeave)
	require.NoError(t, err)
	assert.Empty(t, supQueue)

	hrQueue, err = f.svc.ListHRQueue(authedContext(t, f.hrID, identity.RoleHR), request.KindLeave)
	require.NoError(t, err)
	require.Len(t, hrQueue, 1)

	mine, err := f.svc.ListMine(authedContext(t, f.employeeID, identity.RoleEmployee), request.KindLeave)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, resp.ID, mine[0].ID)
}

func TestMarkSeenBySupervisor(t *testing.T) {
	f := setup(t)

	resp := f.submitLeave(t)
	assert.False(t, resp.IsSeenBySupervisor)

	err := f.svc.MarkSeen(authedContext(t, f.supervisorID, identity.RoleSupervisor), request.KindLeave, resp.ID)
	require.NoError(t, err)

	queue, err := f.svc.ListSupervisorQueue(authedContext(t, f.supervisorID, identity.RoleSupervisor), request.KindLeave)
	require.NoError(t, err)
	require.Len(t, queue, 1)
	assert.True(t, queue[0].IsSeenBySupervisor)

	// Only the linked supervisor may mark it.
	otherSupID := uuid.New().String()
	identityRepo := postgresql.NewIdentityRepository(testDB)
	_, err = identityRepo.Create(context.Background(), identity.Identity{
		ID: otherSupID, Name: "Kiran", Role: identity.RoleSupervisor, IsActive: true,
	})
	require.NoError(t, err)

	err = f.svc.MarkSeen(authedContext(t, otherSupID, identity.RoleSupervisor), request.KindLeave, resp.ID)
	assert.ErrorIs(t, err, request.ErrOutOfTurn)
}

func TestLeaveDateValidation(t *testing.T) {
	f := setup(t)

	_, err := f.svc.SubmitLeave(authedContext(t, f.employeeID, identity.RoleEmployee), request.SubmitLeaveRequest{
		FromDate: "2024-07-05",
		ToDate:   "2024-07-01",
		Reason:   "backwards range",
	})
	assert.Error(t, err)
}
