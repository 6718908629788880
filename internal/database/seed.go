package database

import (
	"context"
	"fmt"

	"athletrack/internal/models"
	"athletrack/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

// SeedPassword is the password given to every seeded user.
const SeedPassword = "password123"

// Seed inserts a demo athlete and coach plus two workouts and two goals for the athlete.
// It expects empty tables.
func Seed(ctx context.Context, users repositories.UserRepository, workouts repositories.WorkoutRepository, goals repositories.GoalRepository) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(SeedPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	height, position := 74, "Guard"
	athlete := &models.User{Username: "Isaac", Password: string(hash), Role: models.RoleAthlete, Height: &height, Position: &position}
	coach := &models.User{Username: "Coach Mike", Password: string(hash), Role: models.RoleCoach}
	for _, u := range []*models.User{athlete, coach} {
		if err := users.Create(ctx, u); err != nil {
			return fmt.Errorf("failed to seed user %s: %w", u.Username, err)
		}
	}

	shots, reps, sets := 350, 10, 4
	jumpShot, legDay := "Focused on jump shot mechanics", "Leg day, heavy squats"
	seededWorkouts := []models.Workout{
		{UserID: athlete.ID, Type: "Shooting", Date: "2025-02-01", Duration: 60, ShotsMade: &shots, Notes: &jumpShot},
		{UserID: athlete.ID, Type: "Strength Training", Date: "2025-02-03", Duration: 45, Reps: &reps, Sets: &sets, Notes: &legDay},
	}
	for i := range seededWorkouts {
		if err := workouts.Create(ctx, &seededWorkouts[i]); err != nil {
			return fmt.Errorf("failed to seed workout %s: %w", seededWorkouts[i].Type, err)
		}
	}

	seededGoals := []models.Goal{
		{UserID: athlete.ID, Title: "Make 5,000 shots", TargetNumber: 5000, Deadline: "2025-05-01", Progress: 350},
		{UserID: athlete.ID, Title: "Increase bench press", TargetNumber: 225, Deadline: "2025-04-15", Progress: 185},
	}
	for i := range seededGoals {
		if err := goals.Create(ctx, &seededGoals[i]); err != nil {
			return fmt.Errorf("failed to seed goal %s: %w", seededGoals[i].Title, err)
		}
	}
	return nil
}
