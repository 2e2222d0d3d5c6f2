package models

import "time"

// ============================================
// Auth DTOs
// ============================================

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type AuthResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}

// ============================================
// User DTOs
// ============================================

type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      *string   `json:"name"`
	Tier      string    `json:"tier"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserRefResponse is the shallow user projection embedded in tasks and
// members. Never carries the password or other sensitive fields.
type UserRefResponse struct {
	ID    string  `json:"id"`
	Name  *string `json:"name"`
	Email string  `json:"email"`
}

type UpdateUserRequest struct {
	Name *string `json:"name,omitempty"`
	Tier *string `json:"tier,omitempty"`
}

type CheckEmailRequest struct {
	Email string `json:"email" binding:"required"`
}

type CheckEmailResponse struct {
	Exists  bool             `json:"exists"`
	Message string           `json:"message,omitempty"`
	User    *UserRefResponse `json:"user,omitempty"`
}

// ============================================
// Project DTOs
// ============================================

type CreateProjectRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

type UpdateProjectRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

type UpdateProjectStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type ProjectResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Status      string    `json:"status"`
	CreatorID   string    `json:"creatorId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type ProjectCounts struct {
	Members      int `json:"members"`
	Tasks        int `json:"tasks"`
	OverdueTasks int `json:"overdueTasks"`
}

type DashboardProjectResponse struct {
	ProjectResponse
	Counts ProjectCounts `json:"counts"`
}

type ProjectRefResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ============================================
// Member DTOs
// ============================================

type InviteMemberRequest struct {
	Email string `json:"email" binding:"required"`
}

type MemberResponse struct {
	ID        string           `json:"id"`
	ProjectID string           `json:"projectId"`
	UserID    string           `json:"userId"`
	Role      string           `json:"role"`
	JoinedAt  time.Time        `json:"joinedAt"`
	User      *UserRefResponse `json:"user,omitempty"`
}

// ============================================
// Task DTOs
// ============================================

type CreateTaskRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	AssigneeID  *string `json:"assigneeId,omitempty"`
	Deadline    *string `json:"deadline,omitempty"`
	Priority    *string `json:"priority,omitempty"`
}

type UpdateTaskStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type UpdateTaskAssigneeRequest struct {
	AssigneeID *string `json:"assigneeId"`
}

type TaskResponse struct {
	ID          string              `json:"id"`
	ProjectID   string              `json:"projectId"`
	Title       string              `json:"title"`
	Description *string             `json:"description"`
	Status      string              `json:"status"`
	Priority    string              `json:"priority"`
	Deadline    *time.Time          `json:"deadline"`
	CreatorID   string              `json:"creatorId"`
	AssigneeID  *string             `json:"assigneeId"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
	Creator     *UserRefResponse    `json:"creator,omitempty"`
	Assignee    *UserRefResponse    `json:"assignee,omitempty"`
	Project     *ProjectRefResponse `json:"project,omitempty"`
}

// ============================================
// Notification DTOs
// ============================================

type NotificationResponse struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	TaskID    *string   `json:"taskId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
