package notification

import (
	"context"
	"fmt"

	"github.com/teamtask-app/teamtask-backend/internal/repository"
)

// Notification types
const (
	TypeTaskAssigned   = "task_assigned"
	TypeProjectInvited = "project_invited"
	TypeTaskOverdue    = "task_overdue"
)

// Service creates notification records as side effects of mutations.
// Callers treat dispatch as best-effort: a failure is logged by the caller
// and never rolls back the primary operation. Clients poll for new records.
type Service struct {
	notificationRepo repository.NotificationRepository
}

func NewService(notificationRepo repository.NotificationRepository) *Service {
	return &Service{notificationRepo: notificationRepo}
}

// SendTaskAssigned notifies a user that a task was assigned to them.
func (s *Service) SendTaskAssigned(ctx context.Context, userID, taskTitle, projectName, taskID string) error {
	if userID == "" {
		return nil
	}

	n := &repository.Notification{
		UserID:  userID,
		Type:    TypeTaskAssigned,
		Message: fmt.Sprintf("You have been assigned to task %q in project %q", taskTitle, projectName),
		TaskID:  &taskID,
	}
	return s.notificationRepo.Create(ctx, n)
}

// SendProjectInvited notifies a user that they were added to a project.
func (s *Service) SendProjectInvited(ctx context.Context, userID, projectName string) error {
	if userID == "" {
		return nil
	}

	n := &repository.Notification{
		UserID:  userID,
		Type:    TypeProjectInvited,
		Message: fmt.Sprintf("You have been added to project %q", projectName),
	}
	return s.notificationRepo.Create(ctx, n)
}

// SendTaskOverdue reminds an assignee about a task past its deadline.
func (s *Service) SendTaskOverdue(ctx context.Context, userID, taskTitle, projectName, taskID string) error {
	if userID == "" {
		return nil
	}

	n := &repository.Notification{
		UserID:  userID,
		Type:    TypeTaskOverdue,
		Message: fmt.Sprintf("Task %q in project %q is overdue", taskTitle, projectName),
		TaskID:  &taskID,
	}
	return s.notificationRepo.Create(ctx, n)
}
