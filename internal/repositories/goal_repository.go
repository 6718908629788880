package repositories

import (
	"context"

	"athletrack/internal/access"
	"athletrack/internal/models"
)

// GoalRepository defines the interface for goal data access.
type GoalRepository interface {
	List(ctx context.Context, scope access.Scope) ([]models.Goal, error)
	GetOwned(ctx context.Context, id, ownerID string) (*models.Goal, error)
	Create(ctx context.Context, goal *models.Goal) error
	Update(ctx context.Context, goal *models.Goal) error
	Delete(ctx context.Context, id, ownerID string) error
}
