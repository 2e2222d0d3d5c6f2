package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/teamtask-app/teamtask-backend/internal/repository"
	"github.com/teamtask-app/teamtask-backend/internal/types"
)

type projectFixture struct {
	users    *fakeUserRepo
	projects *fakeProjectRepo
	tasks    *fakeTaskRepo
	svc      ProjectService
	user     *repository.User
}

func newProjectFixture(t *testing.T) *projectFixture {
	t.Helper()

	users := newFakeUserRepo()
	projects := newFakeProjectRepo()
	tasks := newFakeTaskRepo()

	members := NewMemberService(projects, users, nil, nil)
	svc := NewProjectService(projects, tasks, members)

	user := &repository.User{Email: "owner@example.com", Tier: types.TierFree}
	if err := users.Create(context.Background(), user); err != nil {
		t.Fatalf("create user: %v", err)
	}

	return &projectFixture{users: users, projects: projects, tasks: tasks, svc: svc, user: user}
}

func TestCreateProjectMakesCreatorAdmin(t *testing.T) {
	f := newProjectFixture(t)
	ctx := context.Background()

	project, err := f.svc.Create(ctx, f.user.ID, "Launch", nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if project.Status != types.ProjectActive {
		t.Errorf("status = %q, want %q", project.Status, types.ProjectActive)
	}

	member, err := f.projects.FindMember(ctx, project.ID, f.user.ID)
	if err != nil {
		t.Fatalf("find member: %v", err)
	}
	if member == nil {
		t.Fatal("creator is not a member")
	}
	if member.Role != types.RoleAdmin {
		t.Errorf("creator role = %q, want %q", member.Role, types.RoleAdmin)
	}
}

func TestCreateProjectNameRequired(t *testing.T) {
	f := newProjectFixture(t)

	_, err := f.svc.Create(context.Background(), f.user.ID, "   ", nil)
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("blank name: err = %v, want ValidationError", err)
	}
}

func TestGetProjectRequiresMembership(t *testing.T) {
	f := newProjectFixture(t)
	ctx := context.Background()

	project, err := f.svc.Create(ctx, f.user.ID, "Launch", nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	outsider := &repository.User{Email: "outsider@example.com", Tier: types.TierFree}
	if err := f.users.Create(ctx, outsider); err != nil {
		t.Fatalf("create outsider: %v", err)
	}

	if _, err := f.svc.Get(ctx, project.ID, outsider.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("get by outsider: err = %v, want ErrForbidden", err)
	}

	// A nonexistent project is indistinguishable from one the caller is not
	// in: the membership gate fires before any existence check.
	if _, err := f.svc.Get(ctx, "no-such-project", f.user.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("get missing project: err = %v, want ErrForbidden", err)
	}
}

func TestUpdateProjectStatus(t *testing.T) {
	f := newProjectFixture(t)
	ctx := context.Background()

	project, err := f.svc.Create(ctx, f.user.ID, "Launch", nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Any status may follow any other; there is no transition graph.
	for _, status := range []string{
		types.ProjectCompleted,
		types.ProjectArchived,
		types.ProjectActive,
	} {
		updated, err := f.svc.UpdateStatus(ctx, project.ID, f.user.ID, status)
		if err != nil {
			t.Fatalf("set status %s: %v", status, err)
		}
		if updated.Status != status {
			t.Errorf("status = %q, want %q", updated.Status, status)
		}
	}

	_, err = f.svc.UpdateStatus(ctx, project.ID, f.user.ID, "PAUSED")
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("invalid status: err = %v, want ValidationError", err)
	}
}

func TestUpdateProjectRequiresAdmin(t *testing.T) {
	f := newProjectFixture(t)
	ctx := context.Background()

	project, err := f.svc.Create(ctx, f.user.ID, "Launch", nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	regular := &repository.User{Email: "regular@example.com", Tier: types.TierFree}
	if err := f.users.Create(ctx, regular); err != nil {
		t.Fatalf("create regular: %v", err)
	}
	if err := f.projects.AddMember(ctx, &repository.ProjectMember{
		ProjectID: project.ID,
		UserID:    regular.ID,
		Role:      types.RoleMember,
	}); err != nil {
		t.Fatalf("add member: %v", err)
	}

	name := "Renamed"
	if _, err := f.svc.Update(ctx, project.ID, regular.ID, &name, nil); !errors.Is(err, ErrForbidden) {
		t.Fatalf("update by regular member: err = %v, want ErrForbidden", err)
	}
	if _, err := f.svc.UpdateStatus(ctx, project.ID, regular.ID, types.ProjectArchived); !errors.Is(err, ErrForbidden) {
		t.Fatalf("status update by regular member: err = %v, want ErrForbidden", err)
	}
}

func TestDashboardCounts(t *testing.T) {
	f := newProjectFixture(t)
	ctx := context.Background()

	project, err := f.svc.Create(ctx, f.user.ID, "Launch", nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	yesterday := time.Now().AddDate(0, 0, -1)
	tomorrow := time.Now().AddDate(0, 0, 1)
	seed := []*repository.Task{
		// Past deadline, still open: overdue.
		{ProjectID: project.ID, Title: "Late", Status: types.StatusTodo, Priority: types.PriorityHigh, Deadline: &yesterday, CreatorID: f.user.ID},
		// Past deadline but finished: not overdue.
		{ProjectID: project.ID, Title: "Finished late", Status: types.StatusDone, Priority: types.PriorityMedium, Deadline: &yesterday, CreatorID: f.user.ID},
		// Future deadline: not overdue.
		{ProjectID: project.ID, Title: "Upcoming", Status: types.StatusInProgress, Priority: types.PriorityMedium, Deadline: &tomorrow, CreatorID: f.user.ID},
		// No deadline: never overdue.
		{ProjectID: project.ID, Title: "Open ended", Status: types.StatusTodo, Priority: types.PriorityLow, CreatorID: f.user.ID},
	}
	for _, task := range seed {
		if err := f.tasks.Create(ctx, task); err != nil {
			t.Fatalf("seed task %s: %v", task.Title, err)
		}
	}

	rows, err := f.svc.Dashboard(ctx, f.user.ID)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("dashboard rows = %d, want 1", len(rows))
	}

	row := rows[0]
	if row.Project.ID != project.ID {
		t.Errorf("project id = %s, want %s", row.Project.ID, project.ID)
	}
	if row.MemberCount != 1 {
		t.Errorf("member count = %d, want 1", row.MemberCount)
	}
	if row.TaskCount != 4 {
		t.Errorf("task count = %d, want 4", row.TaskCount)
	}
	if row.OverdueCount != 1 {
		t.Errorf("overdue count = %d, want 1", row.OverdueCount)
	}
}

func TestDashboardEmpty(t *testing.T) {
	f := newProjectFixture(t)

	rows, err := f.svc.Dashboard(context.Background(), f.user.ID)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("dashboard rows = %d, want 0", len(rows))
	}
}
