package identity

import "context"

// Repository defines data access methods for identity records.
type Repository interface {
	Create(ctx context.Context, id Identity) (Identity, error)

	GetByID(ctx context.Context, id string) (Identity, error)

	// GetByLogin resolves an identity by email or employee code.
	GetByLogin(ctx context.Context, login string) (Identity, error)

	// List retrieves identities filtered by role and active flag.
	List(ctx context.Context, filter Filter) ([]Identity, error)

	// ListByRole retrieves active identities of a single role.
	// Used for approval-stage notification fan-out.
	ListByRole(ctx context.Context, role Role) ([]Identity, error)

	// ListBySupervisor retrieves the employees assigned to a supervisor.
	ListBySupervisor(ctx context.Context, supervisorID string) ([]Identity, error)

	Update(ctx context.Context, id Identity) error

	// UpdateSalary overwrites only the salary-component fields.
	UpdateSalary(ctx context.Context, id string, salary SalaryUpdate) error

	// Deactivate flips is_active off; records are never deleted.
	Deactivate(ctx context.Context, id string) error
}
