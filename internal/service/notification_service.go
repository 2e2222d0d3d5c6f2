package service

import (
	"context"

	"github.com/teamtask-app/teamtask-backend/internal/repository"
)

type NotificationService interface {
	List(ctx context.Context, userID string) ([]*repository.Notification, error)
	// Delete removes the caller's notification. A notification owned by
	// someone else reports not-found, never forbidden, so existence is not
	// disclosed. Deleting an already-deleted id reports not-found again.
	Delete(ctx context.Context, notificationID, callerID string) error
}

type notificationService struct {
	notificationRepo repository.NotificationRepository
}

func NewNotificationService(notificationRepo repository.NotificationRepository) NotificationService {
	return &notificationService{notificationRepo: notificationRepo}
}

func (s *notificationService) List(ctx context.Context, userID string) ([]*repository.Notification, error) {
	return s.notificationRepo.FindByUserID(ctx, userID)
}

func (s *notificationService) Delete(ctx context.Context, notificationID, callerID string) error {
	n, err := s.notificationRepo.FindByID(ctx, notificationID)
	if err != nil {
		return err
	}
	if n == nil || n.UserID != callerID {
		return ErrNotFound
	}
	return s.notificationRepo.Delete(ctx, notificationID)
}
