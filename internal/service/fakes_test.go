package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/teamtask-app/teamtask-backend/internal/repository"
)

// In-memory repository fakes backing the service tests.

type fakeUserRepo struct {
	users  map[string]*repository.User
	tokens map[string]*repository.RefreshToken
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:  make(map[string]*repository.User),
		tokens: make(map[string]*repository.RefreshToken),
	}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *repository.User) error {
	r.nextID++
	user.ID = fmt.Sprintf("user-%d", r.nextID)
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id string) (*repository.User, error) {
	return r.users[id], nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*repository.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *repository.User) error {
	user.UpdatedAt = time.Now()
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) SaveRefreshToken(ctx context.Context, token *repository.RefreshToken) error {
	token.ID = token.Token
	token.CreatedAt = time.Now()
	r.tokens[token.Token] = token
	return nil
}

func (r *fakeUserRepo) FindRefreshToken(ctx context.Context, token string) (*repository.RefreshToken, error) {
	return r.tokens[token], nil
}

func (r *fakeUserRepo) DeleteRefreshToken(ctx context.Context, token string) error {
	delete(r.tokens, token)
	return nil
}

type fakeProjectRepo struct {
	projects map[string]*repository.Project
	members  []*repository.ProjectMember
	nextID   int
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{projects: make(map[string]*repository.Project)}
}

func (r *fakeProjectRepo) Create(ctx context.Context, project *repository.Project) error {
	r.nextID++
	project.ID = fmt.Sprintf("project-%d", r.nextID)
	project.CreatedAt = time.Now()
	project.UpdatedAt = project.CreatedAt
	r.projects[project.ID] = project
	return nil
}

func (r *fakeProjectRepo) FindByID(ctx context.Context, id string) (*repository.Project, error) {
	return r.projects[id], nil
}

func (r *fakeProjectRepo) FindByUserID(ctx context.Context, userID string) ([]*repository.Project, error) {
	var result []*repository.Project
	for _, m := range r.members {
		if m.UserID == userID {
			if p, ok := r.projects[m.ProjectID]; ok {
				result = append(result, p)
			}
		}
	}
	return result, nil
}

func (r *fakeProjectRepo) Update(ctx context.Context, project *repository.Project) error {
	project.UpdatedAt = time.Now()
	r.projects[project.ID] = project
	return nil
}

func (r *fakeProjectRepo) AddMember(ctx context.Context, member *repository.ProjectMember) error {
	r.nextID++
	member.ID = fmt.Sprintf("member-%d", r.nextID)
	member.JoinedAt = time.Now()
	r.members = append(r.members, member)
	return nil
}

func (r *fakeProjectRepo) FindMember(ctx context.Context, projectID, userID string) (*repository.ProjectMember, error) {
	for _, m := range r.members {
		if m.ProjectID == projectID && m.UserID == userID {
			return m, nil
		}
	}
	return nil, nil
}

func (r *fakeProjectRepo) FindMembers(ctx context.Context, projectID string) ([]*repository.ProjectMember, error) {
	var result []*repository.ProjectMember
	for _, m := range r.members {
		if m.ProjectID == projectID {
			result = append(result, m)
		}
	}
	return result, nil
}

func (r *fakeProjectRepo) CountMembers(ctx context.Context, projectID string) (int, error) {
	count := 0
	for _, m := range r.members {
		if m.ProjectID == projectID {
			count++
		}
	}
	return count, nil
}

func (r *fakeProjectRepo) RemoveMember(ctx context.Context, projectID, userID string) error {
	for i, m := range r.members {
		if m.ProjectID == projectID && m.UserID == userID {
			r.members = append(r.members[:i], r.members[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakeTaskRepo struct {
	tasks  map[string]*repository.Task
	order  []string
	nextID int
	clock  time.Time
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[string]*repository.Task), clock: time.Now().Add(-time.Hour)}
}

func (r *fakeTaskRepo) Create(ctx context.Context, task *repository.Task) error {
	r.nextID++
	task.ID = fmt.Sprintf("task-%d", r.nextID)
	// Monotonic timestamps so creation order is observable.
	r.clock = r.clock.Add(time.Minute)
	task.CreatedAt = r.clock
	task.UpdatedAt = task.CreatedAt
	r.tasks[task.ID] = task
	r.order = append(r.order, task.ID)
	return nil
}

func (r *fakeTaskRepo) FindByID(ctx context.Context, id string) (*repository.Task, error) {
	return r.tasks[id], nil
}

func (r *fakeTaskRepo) FindByProjectID(ctx context.Context, projectID string) ([]*repository.Task, error) {
	// Newest first, like the SQL ordering.
	var result []*repository.Task
	for i := len(r.order) - 1; i >= 0; i-- {
		t := r.tasks[r.order[i]]
		if t != nil && t.ProjectID == projectID {
			result = append(result, t)
		}
	}
	return result, nil
}

func (r *fakeTaskRepo) UpdateStatus(ctx context.Context, taskID, status string) error {
	if t, ok := r.tasks[taskID]; ok {
		t.Status = status
		t.UpdatedAt = time.Now()
	}
	return nil
}

func (r *fakeTaskRepo) UpdateAssignee(ctx context.Context, taskID string, assigneeID *string) error {
	if t, ok := r.tasks[taskID]; ok {
		t.AssigneeID = assigneeID
		t.UpdatedAt = time.Now()
	}
	return nil
}

func (r *fakeTaskRepo) FindOverdue(ctx context.Context, asOf time.Time) ([]*repository.Task, error) {
	var result []*repository.Task
	for _, id := range r.order {
		t := r.tasks[id]
		if t.Deadline != nil && t.Deadline.Before(asOf) && t.Status != "DONE" {
			result = append(result, t)
		}
	}
	return result, nil
}

type fakeNotificationRepo struct {
	notifications map[string]*repository.Notification
	nextID        int
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{notifications: make(map[string]*repository.Notification)}
}

func (r *fakeNotificationRepo) Create(ctx context.Context, n *repository.Notification) error {
	r.nextID++
	n.ID = fmt.Sprintf("notification-%d", r.nextID)
	n.CreatedAt = time.Now()
	r.notifications[n.ID] = n
	return nil
}

func (r *fakeNotificationRepo) FindByID(ctx context.Context, id string) (*repository.Notification, error) {
	return r.notifications[id], nil
}

func (r *fakeNotificationRepo) FindByUserID(ctx context.Context, userID string) ([]*repository.Notification, error) {
	var result []*repository.Notification
	for _, n := range r.notifications {
		if n.UserID == userID {
			result = append(result, n)
		}
	}
	return result, nil
}

func (r *fakeNotificationRepo) Delete(ctx context.Context, id string) error {
	delete(r.notifications, id)
	return nil
}

func (r *fakeNotificationRepo) DeleteOlderThan(ctx context.Context, olderThan time.Time) (int, error) {
	deleted := 0
	for id, n := range r.notifications {
		if n.CreatedAt.Before(olderThan) {
			delete(r.notifications, id)
			deleted++
		}
	}
	return deleted, nil
}
