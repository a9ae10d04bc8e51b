package notification

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stafftrack/hrms-backend-go/internal/domain/notification"
)

type NotificationServiceImpl struct {
	notificationRepo notification.Repository
}

func NewNotificationService(notificationRepo notification.Repository) notification.Service {
	return &NotificationServiceImpl{
		notificationRepo: notificationRepo,
	}
}

// Helper function to extract claims from context
func getClaimsFromContext(ctx context.Context) (userID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user_id claim is missing or invalid")
	}

	return userID, nil
}

// ListMine implements notification.Service.
func (s *NotificationServiceImpl) ListMine(ctx context.Context) ([]notification.Response, error) {
	callerID, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	notifications, err := s.notificationRepo.ListByRecipient(ctx, callerID)
	if err != nil {
		return nil, err
	}

	responses := make([]notification.Response, 0, len(notifications))
	for _, n := range notifications {
		responses = append(responses, notification.ToResponse(n))
	}
	return responses, nil
}

// MarkSeen implements notification.Service.
func (s *NotificationServiceImpl) MarkSeen(ctx context.Context, id string) (notification.Response, error) {
	callerID, err := getClaimsFromContext(ctx)
	if err != nil {
		return notification.Response{}, err
	}

	n, err := s.notificationRepo.GetByID(ctx, id)
	if err != nil {
		return notification.Response{}, err
	}
	if n.RecipientID != callerID {
		return notification.Response{}, notification.ErrNotRecipient
	}

	if err := s.notificationRepo.MarkSeen(ctx, id); err != nil {
		return notification.Response{}, err
	}

	n.Seen = true
	return notification.ToResponse(n), nil
}
