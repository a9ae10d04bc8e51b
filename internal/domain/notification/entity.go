package notification

import (
	"time"
)

// Kind mirrors the request kinds notifications are raised for.
type Kind string

const (
	KindLeave   Kind = "Leave"
	KindAdvance Kind = "Advance"
)

// Notification is one message for one recipient, tied to the request
// whose transition produced it. Notifications are never edited; the
// recipient may mark them seen, and terminal approval of the parent
// request clears them.
type Notification struct {
	ID               string
	RecipientID      string
	Kind             Kind
	Message          string
	RelatedRequestID string
	Seen             bool
	CreatedAt        time.Time
}

type Response struct {
	ID               string    `json:"id"`
	Kind             string    `json:"kind"`
	Message          string    `json:"message"`
	RelatedRequestID string    `json:"related_request_id"`
	Seen             bool      `json:"seen"`
	CreatedAt        time.Time `json:"created_at"`
}

func ToResponse(n Notification) Response {
	return Response{
		ID:               n.ID,
		Kind:             string(n.Kind),
		Message:          n.Message,
		RelatedRequestID: n.RelatedRequestID,
		Seen:             n.Seen,
		CreatedAt:        n.CreatedAt,
	}
}
