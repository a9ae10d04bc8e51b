package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/stafftrack/hrms-backend-go/internal/domain/request"
	"github.com/stafftrack/hrms-backend-go/internal/pkg/database"
)

type requestRepository struct {
	db *database.DB
}

func NewRequestRepository(db *database.DB) request.Repository {
	return &requestRepository{db: db}
}

const requestColumns = `
	id, kind, employee_id, supervisor_id, employee_name, supervisor_name,
	from_date, to_date, amount, modified_amount, reason, status,
	supervisor_approved, supervisor_approved_at,
	hr_approved, hr_approved_at,
	admin_approved, admin_approved_at,
	hr_comments, admin_comments,
	is_seen_by_employee, is_seen_by_supervisor,
	created_at, updated_at`

func scanRequest(row pgx.Row) (request.Request, error) {
	var req request.Request
	err := row.Scan(
		&req.ID, &req.Kind, &req.EmployeeID, &req.SupervisorID, &req.EmployeeName, &req.SupervisorName,
		&req.FromDate, &req.ToDate, &req.Amount, &req.ModifiedAmount, &req.Reason, &req.Status,
		&req.SupervisorApproved, &req.SupervisorApprovedAt,
		&req.HRApproved, &req.HRApprovedAt,
		&req.AdminApproved, &req.AdminApprovedAt,
		&req.HRComments, &req.AdminComments,
		&req.IsSeenByEmployee, &req.IsSeenBySupervisor,
		&req.CreatedAt, &req.UpdatedAt,
	)
	return req, err
}

// Create implements request.Repository.
func (r *requestRepository) Create(ctx context.Context, req request.Request) (request.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO requests (
			id, kind, employee_id, supervisor_id, employee_name, supervisor_name,
			from_date, to_date, amount, reason, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		req.ID, req.Kind, req.EmployeeID, req.SupervisorID, req.EmployeeName, req.SupervisorName,
		req.FromDate, req.ToDate, req.Amount, req.Reason, req.Status,
	).Scan(&req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return request.Request{}, fmt.Errorf("failed to create request: %w", err)
	}

	return req, nil
}

// GetByID implements request.Repository.
func (r *requestRepository) GetByID(ctx context.Context, id string, kind request.Kind) (request.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + requestColumns + ` FROM requests WHERE id = $1 AND kind = $2`

	req, err := scanRequest(q.QueryRow(ctx, query, id, kind))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return request.Request{}, request.ErrRequestNotFound
		}
		return request.Request{}, fmt.Errorf("failed to get request: %w", err)
	}

	return req, nil
}

// DecideStage implements request.Repository. Each stage's UPDATE is
// conditional on the request still being Pending with that stage unset,
// so two concurrent decisions cannot both land.
func (r *requestRepository) DecideStage(ctx context.Context, id string, kind request.Kind, stage request.Stage, d request.StageDecision) (request.Request, error) {
	q := GetQuerier(ctx, r.db)

	var query string
	var args []interface{}

	switch stage {
	case request.StageSupervisor:
		if d.Approve {
			query = `
				UPDATE requests SET
					supervisor_approved = TRUE, supervisor_approved_at = $3,
					is_seen_by_supervisor = TRUE, updated_at = NOW()
				WHERE id = $1 AND kind = $2 AND status = 'Pending' AND supervisor_approved = FALSE
			`
			args = []interface{}{id, kind, d.DecidedAt}
		} else {
			query = `
				UPDATE requests SET
					status = 'Rejected', is_seen_by_supervisor = TRUE, updated_at = NOW()
				WHERE id = $1 AND kind = $2 AND status = 'Pending' AND supervisor_approved = FALSE
			`
			args = []interface{}{id, kind}
		}

	case request.StageHR:
		if d.Approve {
			query = `
				UPDATE requests SET
					hr_approved = TRUE, hr_approved_at = $3, hr_comments = $4,
					modified_amount = COALESCE($5, amount), updated_at = NOW()
				WHERE id = $1 AND kind = $2 AND status = 'Pending'
				  AND supervisor_approved = TRUE AND hr_approved = FALSE
			`
			args = []interface{}{id, kind, d.DecidedAt, d.Comments, d.ModifiedAmount}
		} else {
			query = `
				UPDATE requests SET
					status = 'Rejected', hr_comments = $3, updated_at = NOW()
				WHERE id = $1 AND kind = $2 AND status = 'Pending'
				  AND supervisor_approved = TRUE AND hr_approved = FALSE
			`
			args = []interface{}{id, kind, d.Comments}
		}

	case request.StageAdmin:
		if d.Approve {
			query = `
				UPDATE requests SET
					admin_approved = TRUE, admin_approved_at = $3, admin_comments = $4,
					status = 'Approved', updated_at = NOW()
				WHERE id = $1 AND kind = $2 AND status = 'Pending'
				  AND hr_approved = TRUE AND admin_approved = FALSE
			`
			args = []interface{}{id, kind, d.DecidedAt, d.Comments}
		} else {
			query = `
				UPDATE requests SET
					status = 'Rejected', admin_comments = $3, updated_at = NOW()
				WHERE id = $1 AND kind = $2 AND status = 'Pending'
				  AND hr_approved = TRUE AND admin_approved = FALSE
			`
			args = []interface{}{id, kind, d.Comments}
		}

	default:
		return request.Request{}, fmt.Errorf("unknown approval stage: %s", stage)
	}

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return request.Request{}, fmt.Errorf("failed to apply %s decision: %w", stage, err)
	}
	if tag.RowsAffected() == 0 {
		// Missing, terminal, or a concurrent decision won the race.
		if _, getErr := r.GetByID(ctx, id, kind); getErr != nil {
			return request.Request{}, getErr
		}
		return request.Request{}, request.ErrAlreadyProcessed
	}

	return r.GetByID(ctx, id, kind)
}

// MarkSeenBySupervisor implements request.Repository.
func (r *requestRepository) MarkSeenBySupervisor(ctx context.Context, id string, kind request.Kind) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE requests SET is_seen_by_supervisor = TRUE, updated_at = NOW()
		WHERE id = $1 AND kind = $2
	`, id, kind)
	if err != nil {
		return fmt.Errorf("failed to mark request seen: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return request.ErrRequestNotFound
	}

	return nil
}

// ListPendingForSupervisor implements request.Repository.
func (r *requestRepository) ListPendingForSupervisor(ctx context.Context, kind request.Kind, supervisorID string) ([]request.Request, error) {
	return r.list(ctx, `
		SELECT `+requestColumns+` FROM requests
		WHERE kind = $1 AND supervisor_id = $2 AND status = 'Pending' AND supervisor_approved = FALSE
		ORDER BY created_at DESC
	`, kind, supervisorID)
}

// ListHRQueue implements request.Repository.
func (r *requestRepository) ListHRQueue(ctx context.Context, kind request.Kind) ([]request.Request, error) {
	return r.list(ctx, `
		SELECT `+requestColumns+` FROM requests
		WHERE kind = $1 AND status = 'Pending' AND supervisor_approved = TRUE AND hr_approved = FALSE
		ORDER BY created_at DESC
	`, kind)
}

// ListAdminQueue implements request.Repository.
func (r *requestRepository) ListAdminQueue(ctx context.Context, kind request.Kind) ([]request.Request, error) {
	return r.list(ctx, `
		SELECT `+requestColumns+` FROM requests
		WHERE kind = $1 AND status = 'Pending' AND hr_approved = TRUE AND admin_approved = FALSE
		ORDER BY created_at DESC
	`, kind)
}

// ListByEmployee implements request.Repository.
func (r *requestRepository) ListByEmployee(ctx context.Context, kind request.Kind, employeeID string) ([]request.Request, error) {
	return r.list(ctx, `
		SELECT `+requestColumns+` FROM requests
		WHERE kind = $1 AND employee_id = $2
		ORDER BY created_at DESC
	`, kind, employeeID)
}

func (r *requestRepository) list(ctx context.Context, query string, args ...interface{}) ([]request.Request, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}
	defer rows.Close()

	requests := make([]request.Request, 0)
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan request: %w", err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate requests: %w", err)
	}

	return requests, nil
}
