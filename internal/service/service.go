package service

import (
	"errors"

	"github.com/teamtask-app/teamtask-backend/internal/config"
	"github.com/teamtask-app/teamtask-backend/internal/db"
	"github.com/teamtask-app/teamtask-backend/internal/email"
	"github.com/teamtask-app/teamtask-backend/internal/notification"
	"github.com/teamtask-app/teamtask-backend/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidToken       = errors.New("invalid token")
	ErrNotFound           = errors.New("resource not found")
	ErrForbidden          = errors.New("forbidden")
	ErrConflict           = errors.New("resource already exists")
)

// ValidationError carries the message surfaced in a 400 response body.
// First failing check wins; validation order is fixed per operation.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func NewValidationError(msg string) error { return &ValidationError{Msg: msg} }

// ============================================
// Services Container
// ============================================

type Services struct {
	Auth         AuthService
	User         UserService
	Project      ProjectService
	Member       MemberService
	Task         TaskService
	Notification NotificationService
}

// ServiceDeps contains all dependencies needed to create services
type ServiceDeps struct {
	Config   *config.Config
	Repos    *repository.Repositories
	NotifSvc *notification.Service
	EmailSvc *email.Service
	Cache    *db.RedisDB
}

func NewServices(deps *ServiceDeps) *Services {
	// Keep the nil *RedisDB from becoming a non-nil Cache interface.
	var cache Cache
	if deps.Cache != nil {
		cache = deps.Cache
	}

	memberService := NewMemberService(
		deps.Repos.ProjectRepo,
		deps.Repos.UserRepo,
		deps.NotifSvc,
		deps.EmailSvc,
	)

	return &Services{
		Auth:   NewAuthService(deps.Config, deps.Repos.UserRepo),
		User:   NewUserService(deps.Repos.UserRepo, cache),
		Member: memberService,
		Project: NewProjectService(
			deps.Repos.ProjectRepo,
			deps.Repos.TaskRepo,
			memberService,
		),
		Task: NewTaskService(
			deps.Repos.TaskRepo,
			deps.Repos.ProjectRepo,
			memberService,
			deps.NotifSvc,
		),
		Notification: NewNotificationService(deps.Repos.NotificationRepo),
	}
}
