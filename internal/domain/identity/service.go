package identity

import "context"

// Service defines business logic for identity management.
type Service interface {
	// Create registers a new identity; passwords are hashed before storage.
	Create(ctx context.Context, req CreateIdentityRequest) (IdentityResponse, error)

	Get(ctx context.Context, id string) (IdentityResponse, error)

	List(ctx context.Context, filter Filter) ([]IdentityResponse, error)

	// Deactivate disables an identity without deleting it.
	Deactivate(ctx context.Context, id string) error
}
