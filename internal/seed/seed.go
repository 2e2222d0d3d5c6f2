// internal/seed/seed.go
package seed

import (
	"context"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/teamtask-app/teamtask-backend/internal/repository"
	"github.com/teamtask-app/teamtask-backend/internal/types"
)

func SeedData(repos *repository.Repositories) {
	ctx := context.Background()

	existing, _ := repos.UserRepo.FindByEmail(ctx, "anna@teamtask.local")
	if existing != nil {
		log.Println("[Seed] Data already exists, skipping...")
		return
	}

	log.Println("[Seed] Creating development data...")

	password, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	hash := string(password)

	anna := &repository.User{Email: "anna@teamtask.local", Password: &hash, Tier: types.TierProf}
	annaName := "Anna Petrova"
	anna.Name = &annaName
	repos.UserRepo.Create(ctx, anna)

	boris := &repository.User{Email: "boris@teamtask.local", Password: &hash, Tier: types.TierFree}
	borisName := "Boris Ivanov"
	boris.Name = &borisName
	repos.UserRepo.Create(ctx, boris)

	website := &repository.Project{
		Name:      "Website Redesign",
		Status:    types.ProjectActive,
		CreatorID: anna.ID,
	}
	repos.ProjectRepo.Create(ctx, website)
	repos.ProjectRepo.AddMember(ctx, &repository.ProjectMember{
		ProjectID: website.ID, UserID: anna.ID, Role: types.RoleAdmin,
	})
	repos.ProjectRepo.AddMember(ctx, &repository.ProjectMember{
		ProjectID: website.ID, UserID: boris.ID, Role: types.RoleMember,
	})

	yesterday := time.Now().AddDate(0, 0, -1)
	nextWeek := time.Now().AddDate(0, 0, 7)

	repos.TaskRepo.Create(ctx, &repository.Task{
		ProjectID:  website.ID,
		Title:      "Draft new landing page",
		Status:     types.StatusInProgress,
		Priority:   types.PriorityHigh,
		Deadline:   &nextWeek,
		CreatorID:  anna.ID,
		AssigneeID: &boris.ID,
	})
	repos.TaskRepo.Create(ctx, &repository.Task{
		ProjectID: website.ID,
		Title:     "Audit old pages",
		Status:    types.StatusTodo,
		Priority:  types.PriorityUrgent,
		Deadline:  &yesterday,
		CreatorID: anna.ID,
	})

	log.Println("[Seed] Development data created")
}
