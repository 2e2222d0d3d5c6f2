package repository

import (
	"database/sql"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repositories struct {
	// Core repositories (pgxpool)
	UserRepo         UserRepository
	ProjectRepo      ProjectRepository
	NotificationRepo NotificationRepository

	// Task repository (sql.DB)
	TaskRepo TaskRepository
}

func NewRepositories(pool *pgxpool.Pool, db *sql.DB) *Repositories {
	return &Repositories{
		UserRepo:         NewUserRepository(pool),
		ProjectRepo:      NewProjectRepository(pool),
		NotificationRepo: NewNotificationRepository(pool),

		TaskRepo: NewTaskRepository(db),
	}
}
