package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stafftrack/hrms-backend-go/internal/domain/attendance"
	"github.com/stafftrack/hrms-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.Repository {
	return &attendanceRepository{db: db}
}

// Upsert implements attendance.Repository. The unique index on
// (employee_id, date) makes concurrent marks for the same day serialize
// into a single row; the last writer overwrites the mutable fields.
func (r *attendanceRepository) Upsert(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendances (id, employee_id, date, time_in, time_out, status, is_late, recorded_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (employee_id, date) DO UPDATE SET
			time_in = EXCLUDED.time_in,
			time_out = EXCLUDED.time_out,
			status = EXCLUDED.status,
			is_late = EXCLUDED.is_late,
			recorded_by = EXCLUDED.recorded_by,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		att.ID, att.EmployeeID, att.Date, att.TimeIn, att.TimeOut,
		att.Status, att.IsLate, att.RecordedBy,
	).Scan(&att.ID, &att.CreatedAt, &att.UpdatedAt)

	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to upsert attendance: %w", err)
	}

	return att, nil
}

// GetByID implements attendance.Repository.
func (r *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT a.id, a.employee_id, a.date, a.time_in, a.time_out, a.status, a.is_late,
			   a.recorded_by, a.created_at, a.updated_at,
			   i.name, i.emp_id, i.designation
		FROM attendances a
		JOIN identities i ON i.id = a.employee_id
		WHERE a.id = $1
	`

	var att attendance.Attendance
	err := q.QueryRow(ctx, query, id).Scan(
		&att.ID, &att.EmployeeID, &att.Date, &att.TimeIn, &att.TimeOut, &att.Status, &att.IsLate,
		&att.RecordedBy, &att.CreatedAt, &att.UpdatedAt,
		&att.EmployeeName, &att.EmployeeEmpID, &att.EmployeeDesignation,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	return att, nil
}

// GetByEmployeeAndDate implements attendance.Repository.
func (r *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, date, time_in, time_out, status, is_late,
			   recorded_by, created_at, updated_at
		FROM attendances
		WHERE employee_id = $1 AND date = $2
		LIMIT 1
	`

	var att attendance.Attendance
	err := q.QueryRow(ctx, query, employeeID, date).Scan(
		&att.ID, &att.EmployeeID, &att.Date, &att.TimeIn, &att.TimeOut, &att.Status, &att.IsLate,
		&att.RecordedBy, &att.CreatedAt, &att.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance by employee and date: %w", err)
	}

	return &att, nil
}

// Update implements attendance.Repository.
func (r *attendanceRepository) Update(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances SET
			time_in = $2, time_out = $3, status = $4, is_late = $5,
			recorded_by = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		att.ID, att.TimeIn, att.TimeOut, att.Status, att.IsLate, att.RecordedBy,
	).Scan(&att.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to update attendance: %w", err)
	}

	return att, nil
}

// List implements attendance.Repository.
func (r *attendanceRepository) List(ctx context.Context, start, end time.Time, employeeIDs []string) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT a.id, a.employee_id, a.date, a.time_in, a.time_out, a.status, a.is_late,
			   a.recorded_by, a.created_at, a.updated_at,
			   i.name, i.emp_id, i.designation
		FROM attendances a
		JOIN identities i ON i.id = a.employee_id
		WHERE a.date >= $1 AND a.date <= $2
	`
	args := []interface{}{start, end}

	if employeeIDs != nil {
		args = append(args, employeeIDs)
		query += fmt.Sprintf(" AND a.employee_id = ANY($%d)", len(args))
	}
	query += " ORDER BY a.date, i.name"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer rows.Close()

	records := make([]attendance.Attendance, 0)
	for rows.Next() {
		var att attendance.Attendance
		err := rows.Scan(
			&att.ID, &att.EmployeeID, &att.Date, &att.TimeIn, &att.TimeOut, &att.Status, &att.IsLate,
			&att.RecordedBy, &att.CreatedAt, &att.UpdatedAt,
			&att.EmployeeName, &att.EmployeeEmpID, &att.EmployeeDesignation,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, att)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance: %w", err)
	}

	return records, nil
}
