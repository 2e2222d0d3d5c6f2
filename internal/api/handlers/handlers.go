package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/teamtask-app/teamtask-backend/internal/models"
	"github.com/teamtask-app/teamtask-backend/internal/repository"
	"github.com/teamtask-app/teamtask-backend/internal/service"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	Auth         *AuthHandler
	User         *UserHandler
	Project      *ProjectHandler
	Member       *MemberHandler
	Task         *TaskHandler
	Notification *NotificationHandler
}

// NewHandlers creates all handlers
func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Auth:         &AuthHandler{authService: services.Auth},
		User:         &UserHandler{userService: services.User},
		Project:      &ProjectHandler{projectService: services.Project},
		Member:       &MemberHandler{memberService: services.Member},
		Task:         &TaskHandler{taskService: services.Task},
		Notification: &NotificationHandler{notificationService: services.Notification},
	}
}

// handleServiceError maps the service error taxonomy onto HTTP statuses.
// Unexpected errors are logged and surface as an opaque 500.
func handleServiceError(c *gin.Context, err error) {
	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Msg})
		return
	}

	switch err {
	case service.ErrInvalidCredentials:
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
	case service.ErrInvalidToken:
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
	case service.ErrForbidden:
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	case service.ErrNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
	case service.ErrUserNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	case service.ErrUserExists:
		c.JSON(http.StatusConflict, gin.H{"error": "User already exists"})
	case service.ErrConflict:
		c.JSON(http.StatusConflict, gin.H{"error": "Resource already exists"})
	default:
		log.Printf("[API_ERROR] method=%s path=%s userID=%v err=%v",
			c.Request.Method, c.FullPath(), c.GetString("userID"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// ============================================
// Response Mappers
// ============================================

func toUserResponse(u *repository.User) models.UserResponse {
	return models.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Tier:      u.Tier,
		CreatedAt: u.CreatedAt,
	}
}

func toUserRefResponse(u *repository.UserRef) *models.UserRefResponse {
	if u == nil {
		return nil
	}
	return &models.UserRefResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
}

func toProjectResponse(p *repository.Project) models.ProjectResponse {
	return models.ProjectResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Status:      p.Status,
		CreatorID:   p.CreatorID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toMemberResponse(m *repository.ProjectMember) models.MemberResponse {
	resp := models.MemberResponse{
		ID:        m.ID,
		ProjectID: m.ProjectID,
		UserID:    m.UserID,
		Role:      m.Role,
		JoinedAt:  m.JoinedAt,
	}
	if m.User != nil {
		resp.User = &models.UserRefResponse{
			ID:    m.User.ID,
			Name:  m.User.Name,
			Email: m.User.Email,
		}
	}
	return resp
}

func toTaskResponse(t *repository.Task) models.TaskResponse {
	resp := models.TaskResponse{
		ID:          t.ID,
		ProjectID:   t.ProjectID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		Deadline:    t.Deadline,
		CreatorID:   t.CreatorID,
		AssigneeID:  t.AssigneeID,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
		Creator:     toUserRefResponse(t.Creator),
		Assignee:    toUserRefResponse(t.Assignee),
	}
	if t.Project != nil {
		resp.Project = &models.ProjectRefResponse{ID: t.Project.ID, Name: t.Project.Name}
	}
	return resp
}

func toTaskResponseList(tasks []*repository.Task) []models.TaskResponse {
	response := make([]models.TaskResponse, len(tasks))
	for i, t := range tasks {
		response[i] = toTaskResponse(t)
	}
	return response
}

func toNotificationResponse(n *repository.Notification) models.NotificationResponse {
	return models.NotificationResponse{
		ID:        n.ID,
		Message:   n.Message,
		Type:      n.Type,
		TaskID:    n.TaskID,
		CreatedAt: n.CreatedAt,
	}
}
