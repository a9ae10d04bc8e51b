package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stafftrack/hrms-backend-go/internal/domain/identity"
	"github.com/stafftrack/hrms-backend-go/internal/pkg/database"
)

type identityRepository struct {
	db *database.DB
}

func NewIdentityRepository(db *database.DB) identity.Repository {
	return &identityRepository{db: db}
}

const identityColumns = `
	id, name, email, emp_id, designation, department, password_hash, role,
	shift_start, shift_end, supervisor_id, is_active,
	basic_salary, special_allowance, conveyance, epf, esic, paid_leaves,
	created_at, updated_at`

func scanIdentity(row pgx.Row) (identity.Identity, error) {
	var id identity.Identity
	err := row.Scan(
		&id.ID, &id.Name, &id.Email, &id.EmpID, &id.Designation, &id.Department,
		&id.PasswordHash, &id.Role,
		&id.ShiftStart, &id.ShiftEnd, &id.SupervisorID, &id.IsActive,
		&id.BasicSalary, &id.SpecialAllowance, &id.Conveyance, &id.EPF, &id.ESIC, &id.PaidLeaves,
		&id.CreatedAt, &id.UpdatedAt,
	)
	return id, err
}

// Create implements identity.Repository.
func (r *identityRepository) Create(ctx context.Context, id identity.Identity) (identity.Identity, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO identities (
			id, name, email, emp_id, designation, department, password_hash, role,
			shift_start, shift_end, supervisor_id, is_active,
			basic_salary, special_allowance, conveyance, epf, esic, paid_leaves
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		id.ID, id.Name, id.Email, id.EmpID, id.Designation, id.Department,
		id.PasswordHash, id.Role,
		id.ShiftStart, id.ShiftEnd, id.SupervisorID, id.IsActive,
		id.BasicSalary, id.SpecialAllowance, id.Conveyance, id.EPF, id.ESIC, id.PaidLeaves,
	).Scan(&id.CreatedAt, &id.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			if strings.Contains(pgErr.ConstraintName, "email") {
				return identity.Identity{}, identity.ErrEmailExists
			}
			return identity.Identity{}, identity.ErrEmpIDExists
		}
		return identity.Identity{}, fmt.Errorf("failed to create identity: %w", err)
	}

	return id, nil
}

// GetByID implements identity.Repository.
func (r *identityRepository) GetByID(ctx context.Context, id string) (identity.Identity, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + identityColumns + ` FROM identities WHERE id = $1`

	ident, err := scanIdentity(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return identity.Identity{}, identity.ErrIdentityNotFound
		}
		return identity.Identity{}, fmt.Errorf("failed to get identity: %w", err)
	}

	return ident, nil
}

// GetByLogin implements identity.Repository.
func (r *identityRepository) GetByLogin(ctx context.Context, login string) (identity.Identity, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + identityColumns + ` FROM identities WHERE email = $1 OR emp_id = $1 LIMIT 1`

	ident, err := scanIdentity(q.QueryRow(ctx, query, login))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return identity.Identity{}, identity.ErrIdentityNotFound
		}
		return identity.Identity{}, fmt.Errorf("failed to get identity by login: %w", err)
	}

	return ident, nil
}

// List implements identity.Repository.
func (r *identityRepository) List(ctx context.Context, filter identity.Filter) ([]identity.Identity, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + identityColumns + ` FROM identities WHERE 1=1`
	args := []interface{}{}

	if filter.Role != nil {
		args = append(args, *filter.Role)
		query += fmt.Sprintf(" AND role = $%d", len(args))
	}
	if filter.ActiveOnly {
		query += " AND is_active = TRUE"
	}
	query += " ORDER BY name"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list identities: %w", err)
	}
	defer rows.Close()

	return collectIdentities(rows)
}

// ListByRole implements identity.Repository.
func (r *identityRepository) ListByRole(ctx context.Context, role identity.Role) ([]identity.Identity, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + identityColumns + ` FROM identities WHERE role = $1 AND is_active = TRUE ORDER BY name`

	rows, err := q.Query(ctx, query, role)
	if err != nil {
		return nil, fmt.Errorf("failed to list identities by role: %w", err)
	}
	defer rows.Close()

	return collectIdentities(rows)
}

// ListBySupervisor implements identity.Repository.
func (r *identityRepository) ListBySupervisor(ctx context.Context, supervisorID string) ([]identity.Identity, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + identityColumns + ` FROM identities WHERE supervisor_id = $1 AND is_active = TRUE ORDER BY name`

	rows, err := q.Query(ctx, query, supervisorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list identities by supervisor: %w", err)
	}
	defer rows.Close()

	return collectIdentities(rows)
}

// Update implements identity.Repository.
func (r *identityRepository) Update(ctx context.Context, id identity.Identity) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE identities SET
			name = $2, email = $3, emp_id = $4, designation = $5, department = $6,
			role = $7, shift_start = $8, shift_end = $9, supervisor_id = $10,
			is_active = $11, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		id.ID, id.Name, id.Email, id.EmpID, id.Designation, id.Department,
		id.Role, id.ShiftStart, id.ShiftEnd, id.SupervisorID, id.IsActive,
	)
	if err != nil {
		return fmt.Errorf("failed to update identity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return identity.ErrIdentityNotFound
	}

	return nil
}

// UpdateSalary implements identity.Repository.
func (r *identityRepository) UpdateSalary(ctx context.Context, id string, salary identity.SalaryUpdate) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE identities SET
			basic_salary = $2, special_allowance = $3, conveyance = $4,
			epf = $5, esic = $6, paid_leaves = $7, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		id, salary.BasicSalary, salary.SpecialAllowance, salary.Conveyance,
		salary.EPF, salary.ESIC, salary.PaidLeaves,
	)
	if err != nil {
		return fmt.Errorf("failed to update salary: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return identity.ErrIdentityNotFound
	}

	return nil
}

// Deactivate implements identity.Repository.
func (r *identityRepository) Deactivate(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE identities SET is_active = FALSE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate identity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return identity.ErrIdentityNotFound
	}

	return nil
}

func collectIdentities(rows pgx.Rows) ([]identity.Identity, error) {
	identities := make([]identity.Identity, 0)
	for rows.Next() {
		ident, err := scanIdentity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan identity: %w", err)
		}
		identities = append(identities, ident)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate identities: %w", err)
	}
	return identities, nil
}
