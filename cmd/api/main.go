// main.go
package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/teamtask-app/teamtask-backend/internal/api/handlers"
	"github.com/teamtask-app/teamtask-backend/internal/api/middleware"
	"github.com/teamtask-app/teamtask-backend/internal/config"
	"github.com/teamtask-app/teamtask-backend/internal/cron"
	"github.com/teamtask-app/teamtask-backend/internal/db"
	"github.com/teamtask-app/teamtask-backend/internal/email"
	"github.com/teamtask-app/teamtask-backend/internal/notification"
	"github.com/teamtask-app/teamtask-backend/internal/repository"
	"github.com/teamtask-app/teamtask-backend/internal/seed"
	"github.com/teamtask-app/teamtask-backend/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Run database migrations first
	migrationsPath := "./internal/db/migrations"
	if err := db.RunMigrations(cfg.DatabaseURL, migrationsPath); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("[DB] Migrations completed")

	// Initialize PostgreSQL (pgxpool + sql.DB)
	pgDB, err := db.NewPostgresDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create pgx pool: %v", err)
	}
	defer pgDB.Close()

	sqlDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to open sql DB: %v", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Fatalf("Failed to ping sql DB: %v", err)
	}

	repos := repository.NewRepositories(pgDB.Pool, sqlDB)

	// Initialize Redis (optional, email-lookup cache only)
	var redisDB *db.RedisDB
	if cfg.RedisURL != "" {
		redisDB, err = db.NewRedisDB(cfg.RedisURL)
		if err != nil {
			log.Printf("Failed to connect to Redis: %v (continuing without cache)", err)
		} else {
			defer redisDB.Close()
		}
	}

	// Initialize Email Service (optional)
	var emailSvc *email.Service
	if cfg.SMTPHost != "" {
		emailSvc = email.NewService(&email.Config{
			Host:        cfg.SMTPHost,
			Port:        cfg.SMTPPort,
			User:        cfg.SMTPUser,
			Password:    cfg.SMTPPassword,
			From:        cfg.SMTPFrom,
			FromName:    cfg.SMTPFromName,
			UseTLS:      cfg.SMTPUseTLS,
			FrontendURL: cfg.FrontendURL,
		})
		log.Println("[Email] Email service initialized")
	} else {
		log.Println("[Email] Not configured (SMTP_HOST not set)")
	}

	// Seed data (for development)
	if cfg.Environment != "production" {
		seed.SeedData(repos)
	}

	notificationSvc := notification.NewService(repos.NotificationRepo)

	services := service.NewServices(&service.ServiceDeps{
		Config:   cfg,
		Repos:    repos,
		NotifSvc: notificationSvc,
		EmailSvc: emailSvc,
		Cache:    redisDB,
	})

	h := handlers.NewHandlers(services)

	// Background jobs: overdue reminders, notification cleanup
	cronScheduler := cron.NewScheduler(notificationSvc, repos.TaskRepo, repos.NotificationRepo)
	cronScheduler.Start()
	defer cronScheduler.Stop()

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"database":  "connected",
			"cache":     getCacheStatus(redisDB),
			"email":     getEmailStatus(emailSvc),
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Public routes (no auth required)
		auth := api.Group("/auth")
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
			auth.POST("/logout", h.Auth.Logout)
		}

		// Pre-invite email lookup, consumed by the invite form
		api.POST("/check-email", h.User.CheckEmail)

		// Protected routes (require auth middleware)
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(services.Auth))
		{
			users := protected.Group("/users")
			{
				users.GET("/me", h.User.GetCurrentUser)
				users.PUT("/me", h.User.UpdateCurrentUser)
			}

			protected.GET("/dashboard/projects", h.Project.Dashboard)

			projects := protected.Group("/projects")
			{
				projects.POST("", h.Project.Create)
				projects.GET("/:id", h.Project.Get)
				projects.PUT("/:id", h.Project.Update)
				projects.PATCH("/:id/status", h.Project.UpdateStatus)

				projects.GET("/:id/tasks", h.Task.ListByProject)
				projects.POST("/:id/tasks", h.Task.Create)

				projects.GET("/:id/members", h.Member.List)
				projects.POST("/:id/members", h.Member.Invite)
				projects.DELETE("/:id/members/:userId", h.Member.Remove)
			}

			tasks := protected.Group("/tasks")
			{
				tasks.PATCH("/:id/status", h.Task.UpdateStatus)
				tasks.PATCH("/:id/assignee", h.Task.UpdateAssignee)
			}

			notifications := protected.Group("/user/notifications")
			{
				notifications.GET("", h.Notification.List)
				notifications.DELETE("/:id", h.Notification.Delete)
			}
		}
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

func getCacheStatus(redisDB *db.RedisDB) string {
	if redisDB != nil {
		return "connected"
	}
	return "disabled"
}

func getEmailStatus(emailSvc *email.Service) string {
	if emailSvc != nil {
		return "configured"
	}
	return "disabled"
}
