package notification

import "context"

// Service defines the recipient-facing notification surface.
type Service interface {
	// ListMine lists the authenticated user's notifications, newest
	// first.
	ListMine(ctx context.Context) ([]Response, error)

	// MarkSeen marks one of the authenticated user's notifications seen.
	MarkSeen(ctx context.Context, id string) (Response, error)
}
