package repository

import (
	"context"
	"database/sql"
	"time"
)

type Task struct {
	ID          string
	ProjectID   string
	Title       string
	Description *string
	Status      string
	Priority    string
	Deadline    *time.Time
	CreatorID   string
	AssigneeID  *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Shallow projections, populated on reads. Never includes password
	// or other sensitive fields.
	Creator  *UserRef
	Assignee *UserRef
	Project  *ProjectRef
}

type UserRef struct {
	ID    string
	Name  *string
	Email string
}

type ProjectRef struct {
	ID   string
	Name string
}

type TaskRepository interface {
	Create(ctx context.Context, task *Task) error
	FindByID(ctx context.Context, id string) (*Task, error)
	FindByProjectID(ctx context.Context, projectID string) ([]*Task, error)
	UpdateStatus(ctx context.Context, taskID, status string) error
	UpdateAssignee(ctx context.Context, taskID string, assigneeID *string) error
	FindOverdue(ctx context.Context, asOf time.Time) ([]*Task, error)
}

type taskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(ctx context.Context, task *Task) error {
	query := `
		INSERT INTO tasks (project_id, title, description, status, priority, deadline, creator_id, assignee_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`

	return r.db.QueryRowContext(ctx, query,
		task.ProjectID, task.Title, task.Description, task.Status,
		task.Priority, task.Deadline, task.CreatorID, task.AssigneeID,
	).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)
}

const taskSelect = `
	SELECT t.id, t.project_id, t.title, t.description, t.status, t.priority,
	       t.deadline, t.creator_id, t.assignee_id, t.created_at, t.updated_at,
	       c.id, c.name, c.email,
	       a.id, a.name, a.email,
	       p.id, p.name
	FROM tasks t
	JOIN users c ON c.id = t.creator_id
	LEFT JOIN users a ON a.id = t.assignee_id
	JOIN projects p ON p.id = t.project_id`

func scanTask(scan func(dest ...interface{}) error) (*Task, error) {
	t := &Task{Creator: &UserRef{}, Project: &ProjectRef{}}
	var assigneeID, assigneeEmail sql.NullString
	var assigneeName sql.NullString
	if err := scan(
		&t.ID, &t.ProjectID, &t.Title, &t.Description, &t.Status, &t.Priority,
		&t.Deadline, &t.CreatorID, &t.AssigneeID, &t.CreatedAt, &t.UpdatedAt,
		&t.Creator.ID, &t.Creator.Name, &t.Creator.Email,
		&assigneeID, &assigneeName, &assigneeEmail,
		&t.Project.ID, &t.Project.Name,
	); err != nil {
		return nil, err
	}
	if assigneeID.Valid {
		t.Assignee = &UserRef{ID: assigneeID.String, Email: assigneeEmail.String}
		if assigneeName.Valid {
			name := assigneeName.String
			t.Assignee.Name = &name
		}
	}
	return t, nil
}

func (r *taskRepository) FindByID(ctx context.Context, id string) (*Task, error) {
	row := r.db.QueryRowContext(ctx, taskSelect+` WHERE t.id = $1`, id)
	task, err := scanTask(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (r *taskRepository) FindByProjectID(ctx context.Context, projectID string) ([]*Task, error) {
	rows, err := r.db.QueryContext(ctx,
		taskSelect+` WHERE t.project_id = $1 ORDER BY t.created_at DESC`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []*Task
	for rows.Next() {
		task, err := scanTask(rows.Scan)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

func (r *taskRepository) UpdateStatus(ctx context.Context, taskID, status string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET status = $2, updated_at = NOW() WHERE id = $1`,
		taskID, status,
	)
	return err
}

func (r *taskRepository) UpdateAssignee(ctx context.Context, taskID string, assigneeID *string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET assignee_id = $2, updated_at = NOW() WHERE id = $1`,
		taskID, assigneeID,
	)
	return err
}

// FindOverdue returns tasks whose deadline has passed and that are not done.
func (r *taskRepository) FindOverdue(ctx context.Context, asOf time.Time) ([]*Task, error) {
	rows, err := r.db.QueryContext(ctx,
		taskSelect+` WHERE t.deadline IS NOT NULL AND t.deadline < $1 AND t.status <> 'DONE'`,
		asOf,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []*Task
	for rows.Next() {
		task, err := scanTask(rows.Scan)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}
