//go:build ignore

package main

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/voltask/tasksphere/internal/auth"
	"github.com/voltask/tasksphere/internal/database"
	"github.com/voltask/tasksphere/internal/database/models"
	"github.com/voltask/tasksphere/pkg/config"
	"github.com/voltask/tasksphere/pkg/util"
)

// Seeds a demo company with one user per role and a few tasks.
// Usage: go run scripts/seed.go
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := util.NewLogger(cfg.Server.Env)

	db, err := database.Connect(&cfg.Database, logger)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	company := models.Company{Name: "Acme Corp"}
	if err := db.Create(&company).Error; err != nil {
		log.Fatalf("failed to create company: %v", err)
	}

	hash, err := auth.HashPassword("password123")
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	seedUsers := []models.User{
		{Name: "Alice Admin", Email: "alice@acme.test", Role: models.RoleAdmin},
		{Name: "Mark Manager", Email: "mark@acme.test", Role: models.RoleManager},
		{Name: "Eve Employee", Email: "eve@acme.test", Role: models.RoleEmployee},
	}
	for i := range seedUsers {
		seedUsers[i].PasswordHash = hash
		seedUsers[i].CompanyID = company.ID
		seedUsers[i].IsActive = true
		if err := db.Create(&seedUsers[i]).Error; err != nil {
			log.Fatalf("failed to create user %s: %v", seedUsers[i].Email, err)
		}
	}

	employee := seedUsers[2]
	seedTasks := []models.Task{
		{Title: "Set up project board", Description: "Initial workspace setup", Status: models.TaskStatusDone},
		{Title: "Draft Q4 roadmap", Status: models.TaskStatusInProgress, AssignedTo: &employee.ID},
		{Title: "Review onboarding docs", Status: models.TaskStatusPending, AssignedTo: &employee.ID},
	}
	for i := range seedTasks {
		seedTasks[i].CompanyID = company.ID
		seedTasks[i].CreatedBy = seedUsers[0].ID
		if err := db.Create(&seedTasks[i]).Error; err != nil {
			log.Fatalf("failed to create task %q: %v", seedTasks[i].Title, err)
		}
	}

	fmt.Println("Seeded demo data:")
	fmt.Printf("  company: %s (%s)\n", company.Name, company.ID)
	for _, u := range seedUsers {
		fmt.Printf("  %-8s %s / password123\n", u.Role, u.Email)
	}
	fmt.Printf("  %d tasks\n", len(seedTasks))
}
