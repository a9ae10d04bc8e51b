package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/stafftrack/hrms-backend-go/internal/domain/attendance"
	"github.com/stafftrack/hrms-backend-go/internal/pkg/database"
)

type modificationRepository struct {
	db *database.DB
}

func NewModificationRepository(db *database.DB) attendance.ModificationRepository {
	return &modificationRepository{db: db}
}

// Create implements attendance.ModificationRepository.
func (r *modificationRepository) Create(ctx context.Context, req attendance.ModificationRequest) (attendance.ModificationRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_modification_requests (
			id, requested_by, employee_id, date, reason,
			new_status, new_time_in, new_time_out, new_is_late, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		req.ID, req.RequestedBy, req.EmployeeID, req.Date, req.Reason,
		req.NewStatus, req.NewTimeIn, req.NewTimeOut, req.NewIsLate, req.Status,
	).Scan(&req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return attendance.ModificationRequest{}, fmt.Errorf("failed to create modification request: %w", err)
	}

	return req, nil
}

// GetByID implements attendance.ModificationRepository.
func (r *modificationRepository) GetByID(ctx context.Context, id string) (attendance.ModificationRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT m.id, m.requested_by, m.employee_id, m.date, m.reason,
			   m.new_status, m.new_time_in, m.new_time_out, m.new_is_late,
			   m.status, m.decided_by, m.decision_note, m.created_at, m.updated_at,
			   req.name, emp.name
		FROM attendance_modification_requests m
		JOIN identities req ON req.id = m.requested_by
		JOIN identities emp ON emp.id = m.employee_id
		WHERE m.id = $1
	`

	var req attendance.ModificationRequest
	err := q.QueryRow(ctx, query, id).Scan(
		&req.ID, &req.RequestedBy, &req.EmployeeID, &req.Date, &req.Reason,
		&req.NewStatus, &req.NewTimeIn, &req.NewTimeOut, &req.NewIsLate,
		&req.Status, &req.DecidedBy, &req.DecisionNote, &req.CreatedAt, &req.UpdatedAt,
		&req.RequesterName, &req.EmployeeName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.ModificationRequest{}, attendance.ErrModificationNotFound
		}
		return attendance.ModificationRequest{}, fmt.Errorf("failed to get modification request: %w", err)
	}

	return req, nil
}

// ListPending implements attendance.ModificationRepository.
func (r *modificationRepository) ListPending(ctx context.Context) ([]attendance.ModificationRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT m.id, m.requested_by, m.employee_id, m.date, m.reason,
			   m.new_status, m.new_time_in, m.new_time_out, m.new_is_late,
			   m.status, m.decided_by, m.decision_note, m.created_at, m.updated_at,
			   req.name, emp.name
		FROM attendance_modification_requests m
		JOIN identities req ON req.id = m.requested_by
		JOIN identities emp ON emp.id = m.employee_id
		WHERE m.status = 'pending'
		ORDER BY m.created_at DESC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending modification requests: %w", err)
	}
	defer rows.Close()

	requests := make([]attendance.ModificationRequest, 0)
	for rows.Next() {
		var req attendance.ModificationRequest
		err := rows.Scan(
			&req.ID, &req.RequestedBy, &req.EmployeeID, &req.Date, &req.Reason,
			&req.NewStatus, &req.NewTimeIn, &req.NewTimeOut, &req.NewIsLate,
			&req.Status, &req.DecidedBy, &req.DecisionNote, &req.CreatedAt, &req.UpdatedAt,
			&req.RequesterName, &req.EmployeeName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan modification request: %w", err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate modification requests: %w", err)
	}

	return requests, nil
}

// Decide implements attendance.ModificationRepository. The WHERE clause
// keeps the update conditional on the request still being pending.
func (r *modificationRepository) Decide(ctx context.Context, id string, status attendance.ModificationStatus, decidedBy string, note *string) (attendance.ModificationRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_modification_requests SET
			status = $2, decided_by = $3, decision_note = $4, updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
	`

	tag, err := q.Exec(ctx, query, id, status, decidedBy, note)
	if err != nil {
		return attendance.ModificationRequest{}, fmt.Errorf("failed to decide modification request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// Either missing or already decided; let the caller distinguish.
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return attendance.ModificationRequest{}, getErr
		}
		return attendance.ModificationRequest{}, attendance.ErrModificationAlreadyProcessed
	}

	return r.GetByID(ctx, id)
}
