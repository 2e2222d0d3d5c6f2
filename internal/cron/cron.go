package cron

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/teamtask-app/teamtask-backend/internal/notification"
	"github.com/teamtask-app/teamtask-backend/internal/repository"
)

const notificationRetention = 30 * 24 * time.Hour

// Scheduler handles scheduled background jobs
type Scheduler struct {
	cron             *cron.Cron
	notifSvc         *notification.Service
	taskRepo         repository.TaskRepository
	notificationRepo repository.NotificationRepository
}

// NewScheduler creates a new scheduler
func NewScheduler(
	notifSvc *notification.Service,
	taskRepo repository.TaskRepository,
	notificationRepo repository.NotificationRepository,
) *Scheduler {
	return &Scheduler{
		cron:             cron.New(),
		notifSvc:         notifSvc,
		taskRepo:         taskRepo,
		notificationRepo: notificationRepo,
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() {
	// Run every day at 9 AM - overdue task reminders
	s.cron.AddFunc("0 9 * * *", func() {
		log.Println("[Cron] Running overdue task check...")
		s.checkOverdueTasks()
	})

	// Clean up old notifications - run every Sunday at midnight
	s.cron.AddFunc("0 0 * * 0", func() {
		log.Println("[Cron] Running notification cleanup...")
		s.cleanupOldNotifications()
	})

	s.cron.Start()
	log.Println("[Cron] Scheduler started")
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("[Cron] Scheduler stopped")
}

// checkOverdueTasks reminds assignees about tasks past their deadline.
func (s *Scheduler) checkOverdueTasks() {
	ctx := context.Background()

	tasks, err := s.taskRepo.FindOverdue(ctx, time.Now())
	if err != nil {
		log.Printf("[Cron] Error finding overdue tasks: %v", err)
		return
	}

	sent := 0
	for _, task := range tasks {
		if task.AssigneeID == nil {
			continue
		}
		projectName := ""
		if task.Project != nil {
			projectName = task.Project.Name
		}
		if err := s.notifSvc.SendTaskOverdue(ctx, *task.AssigneeID, task.Title, projectName, task.ID); err != nil {
			log.Printf("[Cron] Error sending overdue notification for task %s: %v", task.ID, err)
			continue
		}
		sent++
	}
	log.Printf("[Cron] Overdue check done: %d tasks, %d reminders sent", len(tasks), sent)
}

// cleanupOldNotifications deletes notifications past the retention window.
func (s *Scheduler) cleanupOldNotifications() {
	ctx := context.Background()

	deleted, err := s.notificationRepo.DeleteOlderThan(ctx, time.Now().Add(-notificationRetention))
	if err != nil {
		log.Printf("[Cron] Error cleaning up notifications: %v", err)
		return
	}
	log.Printf("[Cron] Deleted %d old notifications", deleted)
}
