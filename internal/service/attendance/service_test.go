package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stafftrack/hrms-backend-go/internal/domain/attendance"
	"github.com/stafftrack/hrms-backend-go/internal/domain/identity"
	"github.com/stafftrack/hrms-backend-go/internal/pkg/validator"
)

// ---- fakes ----

type fakeAttendanceRepo struct {
	records map[string]attendance.Attendance // keyed by id
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[string]attendance.Attendance)}
}

func (f *fakeAttendanceRepo) Upsert(_ context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	for id, existing := range f.records {
		if existing.EmployeeID == att.EmployeeID && existing.Date.Equal(att.Date) {
			att.ID = id
			att.CreatedAt = existing.CreatedAt
			f.records[id] = att
			return att, nil
		}
	}
	att.CreatedAt = time.Now()
	f.records[att.ID] = att
	return att, nil
}

func (f *fakeAttendanceRepo) GetByID(_ context.Context, id string) (attendance.Attendance, error) {
	att, ok := f.records[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return att, nil
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(_ context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	for _, att := range f.records {
		if att.EmployeeID == employeeID && att.Date.Equal(date) {
			copied := att
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeAttendanceRepo) Update(_ context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	if _, ok := f.records[att.ID]; !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	f.records[att.ID] = att
	return att, nil
}

func (f *fakeAttendanceRepo) List(_ context.Context, start, end time.Time, employeeIDs []string) ([]attendance.Attendance, error) {
	allowed := map[string]bool{}
	for _, id := range employeeIDs {
		allowed[id] = true
	}
	var out []attendance.Attendance
	for _, att := range f.records {
		if att.Date.Before(start) || att.Date.After(end) {
			continue
		}
		if len(employeeIDs) > 0 && !allowed[att.EmployeeID] {
			continue
		}
		out = append(out, att)
	}
	return out, nil
}

type fakeIdentityRepo struct {
	identities map[string]identity.Identity
}

func newFakeIdentityRepo(idents ...identity.Identity) *fakeIdentityRepo {
	f := &fakeIdentityRepo{identities: make(map[string]identity.Identity)}
	for _, id := range idents {
		f.identities[id.ID] = id
	}
	return f
}

func (f *fakeIdentityRepo) Create(_ context.Context, id identity.Identity) (identity.Identity, error) {
	f.identities[id.ID] = id
	return id, nil
}

func (f *fakeIdentityRepo) GetByID(_ context.Context, id string) (identity.Identity, error) {
	ident, ok := f.identities[id]
	if !ok {
		return identity.Identity{}, identity.ErrIdentityNotFound
	}
	return ident, nil
}

func (f *fakeIdentityRepo) GetByLogin(_ context.Context, login string) (identity.Identity, error) {
	for _, ident := range f.identities {
		if ident.Email != nil && *ident.Email == login {
			return ident, nil
		}
	}
	return identity.Identity{}, identity.ErrIdentityNotFound
}

func (f *fakeIdentityRepo) List(_ context.Context, _ identity.Filter) ([]identity.Identity, error) {
	return nil, nil
}

func (f *fakeIdentityRepo) ListByRole(_ context.Context, role identity.Role) ([]identity.Identity, error) {
	var out []identity.Identity
	for _, ident := range f.identities {
		if ident.Role == role && ident.IsActive {
			out = append(out, ident)
		}
	}
	return out, nil
}

func (f *fakeIdentityRepo) ListBySupervisor(_ context.Context, supervisorID string) ([]identity.Identity, error) {
	var out []identity.Identity
	for _, ident := range f.identities {
		if ident.SupervisorID != nil && *ident.SupervisorID == supervisorID {
			out = append(out, ident)
		}
	}
	return out, nil
}

func (f *fakeIdentityRepo) Update(_ context.Context, id identity.Identity) error {
	f.identities[id.ID] = id
	return nil
}

func (f *fakeIdentityRepo) UpdateSalary(_ context.Context, _ string, _ identity.SalaryUpdate) error {
	return nil
}

func (f *fakeIdentityRepo) Deactivate(_ context.Context, id string) error {
	ident := f.identities[id]
	ident.IsActive = false
	f.identities[id] = ident
	return nil
}

// ---- helpers ----

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

func strPtr(s string) *string { return &s }

const (
	supervisorID = "sup-1"
	employeeID   = "emp-1"
)

func fixtureIdentities() *fakeIdentityRepo {
	return newFakeIdentityRepo(
		identity.Identity{
			ID:       supervisorID,
			Name:     "Sana",
			Role:     identity.RoleSupervisor,
			IsActive: true,
		},
		identity.Identity{
			ID:           employeeID,
			Name:         "Ravi",
			Role:         identity.RoleEmployee,
			ShiftStart:   strPtr("09:00"),
			SupervisorID: strPtr(supervisorID),
			IsActive:     true,
		},
		identity.Identity{
			ID:       "emp-2",
			Name:     "Mira",
			Role:     identity.RoleEmployee,
			IsActive: true,
		},
		identity.Identity{
			ID:       "hr-1",
			Name:     "Dev",
			Role:     identity.RoleHR,
			IsActive: true,
		},
	)
}

func newTestService(attRepo *fakeAttendanceRepo, identRepo *fakeIdentityRepo) attendance.Service {
	return NewAttendanceService(nil, attRepo, nil, identRepo, 5)
}

// ---- tests ----

func TestMarkWithinGraceIsNotLate(t *testing.T) {
	svc := newTestService(newFakeAttendanceRepo(), fixtureIdentities())
	ctx := authedContext(t, supervisorID, identity.RoleSupervisor)

	resp, err := svc.Mark(ctx, attendance.MarkRequest{
		EmployeeID: employeeID,
		Date:       "2024-06-03",
		TimeIn:     strPtr("09:04"),
		Status:     "Present",
	})
	require.NoError(t, err)
	assert.False(t, resp.IsLate)
	require.NotNil(t, resp.TimeIn)
	assert.Equal(t, "09:04", *resp.TimeIn)
}

func TestMarkBeyondGraceIsLate(t *testing.T) {
	svc := newTestService(newFakeAttendanceRepo(), fixtureIdentities())
	ctx := authedContext(t, supervisorID, identity.RoleSupervisor)

	resp, err := svc.Mark(ctx, attendance.MarkRequest{
		EmployeeID: employeeID,
		Date:       "2024-06-03",
		TimeIn:     strPtr("09:06"),
		Status:     "Present",
	})
	require.NoError(t, err)
	assert.True(t, resp.IsLate)
}

func TestMarkAtExactGraceBoundary(t *testing.T) {
	svc := newTestService(newFakeAttendanceRepo(), fixtureIdentities())
	ctx := authedContext(t, supervisorID, identity.RoleSupervisor)

	// 09:05 is exactly shift start plus grace: not late.
	resp, err := svc.Mark(ctx, attendance.MarkRequest{
		EmployeeID: employeeID,
		Date:       "2024-06-03",
		TimeIn:     strPtr("09:05"),
		Status:     "Present",
	})
	require.NoError(t, err)
	assert.False(t, resp.IsLate)
}

func TestMarkNoShiftAssignedNeverLate(t *testing.T) {
	svc := newTestService(newFakeAttendanceRepo(), fixtureIdentities())
	ctx := authedContext(t, "hr-1", identity.RoleHR)

	resp, err := svc.Mark(ctx, attendance.MarkRequest{
		EmployeeID: "emp-2",
		Date:       "2024-06-03",
		TimeIn:     strPtr("15:30"),
		Status:     "Present",
	})
	require.NoError(t, err)
	assert.False(t, resp.IsLate)
}

func TestMarkAbsentClearsTimes(t *testing.T) {
	svc := newTestService(newFakeAttendanceRepo(), fixtureIdentities())
	ctx := authedContext(t, supervisorID, identity.RoleSupervisor)

	resp, err := svc.Mark(ctx, attendance.MarkRequest{
		EmployeeID: employeeID,
		Date:       "2024-06-03",
		TimeIn:     strPtr("09:30"),
		TimeOut:    strPtr("17:00"),
		Status:     "Absent",
	})
	require.NoError(t, err)
	assert.Nil(t, resp.TimeIn)
	assert.Nil(t, resp.TimeOut)
	assert.False(t, resp.IsLate)
}

func TestMarkHalfdayClearsTimes(t *testing.T) {
	svc := newTestService(newFakeAttendanceRepo(), fixtureIdentities())
	ctx := authedContext(t, supervisorID, identity.RoleSupervisor)

	resp, err := svc.Mark(ctx, attendance.MarkRequest{
		EmployeeID: employeeID,
		Date:       "2024-06-03",
		TimeIn:     strPtr("09:30"),
		Status:     "Halfday",
	})
	require.NoError(t, err)
	assert.Nil(t, resp.TimeIn)
	assert.False(t, resp.IsLate)
}

func TestMarkDeactivatedEmployeeNotFound(t *testing.T) {
	idents := fixtureIdentities()
	svc := newTestService(newFakeAttendanceRepo(), idents)
	ctx := authedContext(t, "hr-1", identity.RoleHR)

	require.NoError(t, idents.Deactivate(context.Background(), employeeID))

	_, err := svc.Mark(ctx, attendance.MarkRequest{
		EmployeeID: employeeID,
		Date:       "2024-06-03",
		TimeIn:     strPtr("09:00"),
		Status:     "Present",
	})
	assert.ErrorIs(t, err, identity.ErrIdentityNotFound)
}

func TestMarkPresentDefaultsToWallClock(t *testing.T) {
	svc := newTestService(newFakeAttendanceRepo(), fixtureIdentities())
	ctx := authedContext(t, supervisorID, identity.RoleSupervisor)

	resp, err := svc.Mark(ctx, attendance.MarkRequest{
		EmployeeID: employeeID,
		Date:       "2024-06-03",
		Status:     "Present",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.TimeIn)
	_, err = time.Parse("15:04", *resp.TimeIn)
	assert.NoError(t, err, "defaulted time_in should be HH:mm")
}

func TestMarkIsLateOverride(t *testing.T) {
	svc := newTestService(newFakeAttendanceRepo(), fixtureIdentities())
	ctx := authedContext(t, supervisorID, identity.RoleSupervisor)

	// Caller-supplied flag wins over the computed one.
	late := true
	resp, err := svc.Mark(ctx, attendance.MarkRequest{
		EmployeeID: employeeID,
		Date:       "2024-06-03",
		TimeIn:     strPtr("09:00"),
		Status:     "Present",
		IsLate:     &late,
	})
	require.NoError(t, err)
	assert.True(t, resp.IsLate)
}

func TestMarkSameDayOverwrites(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	svc := newTestService(attRepo, fixtureIdentities())
	ctx := authedContext(t, supervisorID, identity.RoleSupervisor)

	first, err := svc.Mark(ctx, attendance.MarkRequest{
		EmployeeID: employeeID,
		Date:       "2024-06-03",
		Status:     "Absent",
	})
	require.NoError(t, err)

	second, err := svc.Mark(ctx, attendance.MarkRequest{
		EmployeeID: employeeID,
		Date:       "2024-06-03",
		TimeIn:     strPtr("09:02"),
		Status:     "Present",
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "remark of the same day must hit the same row")
	assert.Len(t, attRepo.records, 1)
	assert.Equal(t, attendance.StatusPresent, attRepo.records[first.ID].Status)
}

func TestMarkNotAssignedSupervisor(t *testing.T) {
	svc := newTestService(newFakeAttendanceRepo(), fixtureIdentities())
	ctx := authedContext(t, supervisorID, identity.RoleSupervisor)

	_, err := svc.Mark(ctx, attendance.MarkRequest{
		EmployeeID: "emp-2",
		Date:       "2024-06-03",
		Status:     "Present",
	})
	assert.ErrorIs(t, err, attendance.ErrNotAssigned)
}

func TestMarkValidation(t *testing.T) {
	svc := newTestService(newFakeAttendanceRepo(), fixtureIdentities())
	ctx := authedContext(t, supervisorID, identity.RoleSupervisor)

	tests := []struct {
		name  string
		req   attendance.MarkRequest
		field string
	}{
		{
			"bad date",
			attendance.MarkRequest{EmployeeID: employeeID, Date: "03-06-2024", Status: "Present"},
			"date",
		},
		{
			"bad status",
			attendance.MarkRequest{EmployeeID: employeeID, Date: "2024-06-03", Status: "OnLeave"},
			"status",
		},
		{
			"bad time",
			attendance.MarkRequest{EmployeeID: employeeID, Date: "2024-06-03", Status: "Present", TimeIn: strPtr("9:00")},
			"time_in",
		},
		{
			"missing employee",
			attendance.MarkRequest{Date: "2024-06-03", Status: "Present"},
			"employee_id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Mark(ctx, tt.req)
			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Contains(t, verrs.ToMap(), tt.field)
		})
	}
}

func TestListEmployeeSeesOnlyOwn(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	svc := newTestService(attRepo, fixtureIdentities())

	supCtx := authedContext(t, supervisorID, identity.RoleSupervisor)
	_, err := svc.Mark(supCtx, attendance.MarkRequest{EmployeeID: employeeID, Date: "2024-06-03", Status: "Present"})
	require.NoError(t, err)
	hrCtx := authedContext(t, "hr-1", identity.RoleHR)
	_, err = svc.Mark(hrCtx, attendance.MarkRequest{EmployeeID: "emp-2", Date: "2024-06-03", Status: "Present"})
	require.NoError(t, err)

	date := "2024-06-03"
	empCtx := authedContext(t, employeeID, identity.RoleEmployee)
	records, err := svc.List(empCtx, attendance.ListFilter{Date: &date})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, employeeID, records[0].EmployeeID)
}

func TestListSupervisorSeesAssignees(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	svc := newTestService(attRepo, fixtureIdentities())

	supCtx := authedContext(t, supervisorID, identity.RoleSupervisor)
	_, err := svc.Mark(supCtx, attendance.MarkRequest{EmployeeID: employeeID, Date: "2024-06-03", Status: "Present"})
	require.NoError(t, err)
	hrCtx := authedContext(t, "hr-1", identity.RoleHR)
	_, err = svc.Mark(hrCtx, attendance.MarkRequest{EmployeeID: "emp-2", Date: "2024-06-03", Status: "Present"})
	require.NoError(t, err)

	date := "2024-06-03"
	records, err := svc.List(supCtx, attendance.ListFilter{Date: &date})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, employeeID, records[0].EmployeeID)

	// HR sees everyone.
	records, err = svc.List(hrCtx, attendance.ListFilter{Date: &date})
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestListRangeValidation(t *testing.T) {
	svc := newTestService(newFakeAttendanceRepo(), fixtureIdentities())
	ctx := authedContext(t, "hr-1", identity.RoleHR)

	start := "2024-06-01"
	_, err := svc.List(ctx, attendance.ListFilter{StartDate: &start})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "start_date")
}

func TestUpdateToAbsentClearsTimes(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	svc := newTestService(attRepo, fixtureIdentities())
	ctx := authedContext(t, supervisorID, identity.RoleSupervisor)

	marked, err := svc.Mark(ctx, attendance.MarkRequest{
		EmployeeID: employeeID,
		Date:       "2024-06-03",
		TimeIn:     strPtr("09:10"),
		Status:     "Present",
	})
	require.NoError(t, err)
	assert.True(t, marked.IsLate)

	status := "Absent"
	updated, err := svc.Update(ctx, attendance.UpdateRequest{ID: marked.ID, Status: &status})
	require.NoError(t, err)
	assert.Nil(t, updated.TimeIn)
	assert.False(t, updated.IsLate)
}

func TestUpdateRecomputesLateness(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	svc := newTestService(attRepo, fixtureIdentities())
	ctx := authedContext(t, supervisorID, identity.RoleSupervisor)

	marked, err := svc.Mark(ctx, attendance.MarkRequest{
		EmployeeID: employeeID,
		Date:       "2024-06-03",
		TimeIn:     strPtr("09:30"),
		Status:     "Present",
	})
	require.NoError(t, err)
	assert.True(t, marked.IsLate)

	updated, err := svc.Update(ctx, attendance.UpdateRequest{ID: marked.ID, TimeIn: strPtr("08:55")})
	require.NoError(t, err)
	assert.False(t, updated.IsLate)
}

func TestUpdateNotFound(t *testing.T) {
	svc := newTestService(newFakeAttendanceRepo(), fixtureIdentities())
	ctx := authedContext(t, "hr-1", identity.RoleHR)

	_, err := svc.Update(ctx, attendance.UpdateRequest{ID: "missing"})
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
}
