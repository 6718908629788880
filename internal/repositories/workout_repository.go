package repositories

import (
	"context"

	"athletrack/internal/access"
	"athletrack/internal/models"
)

// WorkoutRepository defines the interface for workout data access.
// Single-row reads and writes always filter by id and owner together.
type WorkoutRepository interface {
	List(ctx context.Context, scope access.Scope) ([]models.Workout, error)
	GetOwned(ctx context.Context, id, ownerID string) (*models.Workout, error)
	Create(ctx context.Context, workout *models.Workout) error
	Update(ctx context.Context, workout *models.Workout) error
	Delete(ctx context.Context, id, ownerID string) error
}
