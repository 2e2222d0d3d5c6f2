package service

import (
	"context"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/teamtask-app/teamtask-backend/internal/notification"
	"github.com/teamtask-app/teamtask-backend/internal/repository"
	"github.com/teamtask-app/teamtask-backend/internal/types"
)

type CreateTaskRequest struct {
	ProjectID   string
	CreatorID   string
	Title       string
	Description *string
	AssigneeID  *string
	Deadline    *time.Time
	Priority    *string
}

type TaskService interface {
	ListByProject(ctx context.Context, projectID, callerID string) ([]*repository.Task, error)
	Create(ctx context.Context, req *CreateTaskRequest) (*repository.Task, error)
	UpdateStatus(ctx context.Context, taskID, callerID, status string) (*repository.Task, error)
	UpdateAssignee(ctx context.Context, taskID, callerID string, assigneeID *string) (*repository.Task, error)
}

type taskService struct {
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
	members     MemberService
	notifSvc    *notification.Service
}

func NewTaskService(
	taskRepo repository.TaskRepository,
	projectRepo repository.ProjectRepository,
	members MemberService,
	notifSvc *notification.Service,
) TaskService {
	return &taskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		members:     members,
		notifSvc:    notifSvc,
	}
}

// ListByProject returns the whole board for members, ordered by priority
// descending then creation time descending. No pagination.
func (s *taskService) ListByProject(ctx context.Context, projectID, callerID string) ([]*repository.Task, error) {
	isMember, err := s.members.IsMember(ctx, projectID, callerID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, ErrForbidden
	}

	tasks, err := s.taskRepo.FindByProjectID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	sortTasks(tasks)
	return tasks, nil
}

// sortTasks orders a board: URGENT > HIGH > MEDIUM > LOW, newest first within
// the same priority. Stable so the repository's created_at ordering survives.
func sortTasks(tasks []*repository.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		ri, rj := types.PriorityRank(tasks[i].Priority), types.PriorityRank(tasks[j].Priority)
		if ri != rj {
			return ri > rj
		}
		return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
	})
}

// Create validates in a fixed order; the first failing check wins.
func (s *taskService) Create(ctx context.Context, req *CreateTaskRequest) (*repository.Task, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, NewValidationError("title required")
	}

	if req.Deadline != nil {
		today := startOfDay(time.Now())
		if req.Deadline.Before(today) {
			return nil, NewValidationError("deadline cannot be in the past")
		}
	}

	isAdmin, err := s.members.IsAdmin(ctx, req.ProjectID, req.CreatorID)
	if err != nil {
		return nil, err
	}
	if !isAdmin {
		return nil, ErrForbidden
	}

	assigneeID := req.AssigneeID
	if assigneeID != nil && *assigneeID == "" {
		assigneeID = nil
	}
	if assigneeID != nil {
		member, err := s.projectRepo.FindMember(ctx, req.ProjectID, *assigneeID)
		if err != nil {
			return nil, err
		}
		if member == nil {
			return nil, NewValidationError("assignee must be a project member")
		}
	}

	priority := types.PriorityMedium
	if req.Priority != nil && *req.Priority != "" {
		if !types.IsValidPriority(*req.Priority) {
			return nil, NewValidationError("invalid priority")
		}
		priority = *req.Priority
	}

	task := &repository.Task{
		ProjectID:   req.ProjectID,
		Title:       title,
		Description: normalizeOptional(req.Description),
		Status:      types.StatusTodo,
		Priority:    priority,
		Deadline:    req.Deadline,
		CreatorID:   req.CreatorID,
		AssigneeID:  assigneeID,
	}
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}

	// Reload with creator/assignee/project projections.
	created, err := s.taskRepo.FindByID(ctx, task.ID)
	if err != nil || created == nil {
		return task, nil
	}

	// Best-effort side effect: notify the assignee unless they created the
	// task themselves. A dispatch failure never fails the creation.
	if assigneeID != nil && *assigneeID != req.CreatorID && s.notifSvc != nil {
		projectName := ""
		if created.Project != nil {
			projectName = created.Project.Name
		}
		if err := s.notifSvc.SendTaskAssigned(ctx, *assigneeID, created.Title, projectName, created.ID); err != nil {
			log.Printf("[Task] Failed to send assignment notification: %v", err)
		}
	}

	return created, nil
}

func (s *taskService) UpdateStatus(ctx context.Context, taskID, callerID, status string) (*repository.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrNotFound
	}

	isAdmin, err := s.members.IsAdmin(ctx, task.ProjectID, callerID)
	if err != nil {
		return nil, err
	}
	if !isAdmin {
		return nil, ErrForbidden
	}

	if !types.IsValidTaskStatus(status) {
		return nil, NewValidationError("invalid status")
	}

	if err := s.taskRepo.UpdateStatus(ctx, taskID, status); err != nil {
		return nil, err
	}
	task.Status = status
	return task, nil
}

func (s *taskService) UpdateAssignee(ctx context.Context, taskID, callerID string, assigneeID *string) (*repository.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrNotFound
	}

	isAdmin, err := s.members.IsAdmin(ctx, task.ProjectID, callerID)
	if err != nil {
		return nil, err
	}
	if !isAdmin {
		return nil, ErrForbidden
	}

	if assigneeID != nil && *assigneeID == "" {
		assigneeID = nil
	}
	if assigneeID != nil {
		member, err := s.projectRepo.FindMember(ctx, task.ProjectID, *assigneeID)
		if err != nil {
			return nil, err
		}
		if member == nil {
			return nil, NewValidationError("assignee must be a project member")
		}
	}

	if err := s.taskRepo.UpdateAssignee(ctx, taskID, assigneeID); err != nil {
		return nil, err
	}

	updated, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil || updated == nil {
		updated = task
		updated.AssigneeID = assigneeID
	}

	if assigneeID != nil && *assigneeID != callerID && s.notifSvc != nil {
		projectName := ""
		if updated.Project != nil {
			projectName = updated.Project.Name
		}
		if err := s.notifSvc.SendTaskAssigned(ctx, *assigneeID, updated.Title, projectName, updated.ID); err != nil {
			log.Printf("[Task] Failed to send assignment notification: %v", err)
		}
	}

	return updated, nil
}

// startOfDay truncates to local midnight. Deadline checks are date-only.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
