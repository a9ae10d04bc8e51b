package notification

import "context"

// Repository defines data access methods for notifications.
type Repository interface {
	Create(ctx context.Context, n Notification) (Notification, error)

	// CreateBatch inserts one notification per recipient in a single
	// round trip; used for stage fan-out.
	CreateBatch(ctx context.Context, ns []Notification) error

	ListByRecipient(ctx context.Context, recipientID string) ([]Notification, error)

	GetByID(ctx context.Context, id string) (Notification, error)

	MarkSeen(ctx context.Context, id string) error

	// DeleteByRequest clears every notification tied to a request; called
	// when the request goes terminal.
	DeleteByRequest(ctx context.Context, requestID string, kind Kind) error
}
