package service

import (
	"context"
	"strings"
	"time"

	"github.com/teamtask-app/teamtask-backend/internal/repository"
	"github.com/teamtask-app/teamtask-backend/internal/types"
)

// ProjectWithCounts is a dashboard row: the project plus computed counts.
// The overdue count is recomputed on every call, never stored.
type ProjectWithCounts struct {
	Project      *repository.Project
	MemberCount  int
	TaskCount    int
	OverdueCount int
}

type ProjectService interface {
	Create(ctx context.Context, creatorID, name string, description *string) (*repository.Project, error)
	Get(ctx context.Context, projectID, callerID string) (*repository.Project, error)
	Update(ctx context.Context, projectID, callerID string, name, description *string) (*repository.Project, error)
	UpdateStatus(ctx context.Context, projectID, callerID, status string) (*repository.Project, error)
	Dashboard(ctx context.Context, callerID string) ([]*ProjectWithCounts, error)
}

type projectService struct {
	projectRepo repository.ProjectRepository
	taskRepo    repository.TaskRepository
	members     MemberService
}

func NewProjectService(
	projectRepo repository.ProjectRepository,
	taskRepo repository.TaskRepository,
	members MemberService,
) ProjectService {
	return &projectService{
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
		members:     members,
	}
}

// Create makes a new active project; the creator becomes its first admin
// member.
func (s *projectService) Create(ctx context.Context, creatorID, name string, description *string) (*repository.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, NewValidationError("project name required")
	}

	project := &repository.Project{
		Name:        name,
		Description: normalizeOptional(description),
		Status:      types.ProjectActive,
		CreatorID:   creatorID,
	}
	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}

	member := &repository.ProjectMember{
		ProjectID: project.ID,
		UserID:    creatorID,
		Role:      types.RoleAdmin,
	}
	if err := s.projectRepo.AddMember(ctx, member); err != nil {
		return nil, err
	}

	return project, nil
}

func (s *projectService) Get(ctx context.Context, projectID, callerID string) (*repository.Project, error) {
	isMember, err := s.members.IsMember(ctx, projectID, callerID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, ErrForbidden
	}

	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrNotFound
	}
	return project, nil
}

func (s *projectService) Update(ctx context.Context, projectID, callerID string, name, description *string) (*repository.Project, error) {
	isAdmin, err := s.members.IsAdmin(ctx, projectID, callerID)
	if err != nil {
		return nil, err
	}
	if !isAdmin {
		return nil, ErrForbidden
	}

	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrNotFound
	}

	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return nil, NewValidationError("project name required")
		}
		project.Name = trimmed
	}
	if description != nil {
		project.Description = normalizeOptional(description)
	}

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// UpdateStatus sets any of the three statuses; there is no transition graph,
// any admin may set any status at any time.
func (s *projectService) UpdateStatus(ctx context.Context, projectID, callerID, status string) (*repository.Project, error) {
	isAdmin, err := s.members.IsAdmin(ctx, projectID, callerID)
	if err != nil {
		return nil, err
	}
	if !isAdmin {
		return nil, ErrForbidden
	}

	if !types.IsValidProjectStatus(status) {
		return nil, NewValidationError("invalid project status")
	}

	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrNotFound
	}

	project.Status = status
	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// Dashboard returns every project the caller belongs to, annotated with
// member/task counts and the overdue-task count as of now.
func (s *projectService) Dashboard(ctx context.Context, callerID string) ([]*ProjectWithCounts, error) {
	projects, err := s.projectRepo.FindByUserID(ctx, callerID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	result := make([]*ProjectWithCounts, 0, len(projects))
	for _, p := range projects {
		memberCount, err := s.projectRepo.CountMembers(ctx, p.ID)
		if err != nil {
			return nil, err
		}

		tasks, err := s.taskRepo.FindByProjectID(ctx, p.ID)
		if err != nil {
			return nil, err
		}

		overdue := 0
		for _, t := range tasks {
			if types.IsOverdue(t.Deadline, t.Status, now) {
				overdue++
			}
		}

		result = append(result, &ProjectWithCounts{
			Project:      p,
			MemberCount:  memberCount,
			TaskCount:    len(tasks),
			OverdueCount: overdue,
		})
	}
	return result, nil
}

// normalizeOptional trims an optional string and maps blank to nil.
func normalizeOptional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
