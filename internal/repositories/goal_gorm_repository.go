package repositories

import (
	"context"
	"errors"
	"fmt"

	"athletrack/internal/access"
	"athletrack/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMGoalRepository is a GORM implementation of GoalRepository.
type GORMGoalRepository struct {
	db *gorm.DB
}

// NewGORMGoalRepository creates a new instance of GORMGoalRepository.
func NewGORMGoalRepository(db *gorm.DB) *GORMGoalRepository {
	return &GORMGoalRepository{
		db: db,
	}
}

// List retrieves the goals visible under scope.
func (r *GORMGoalRepository) List(ctx context.Context, scope access.Scope) ([]models.Goal, error) {
	q := r.db.WithContext(ctx).Order("deadline asc, created_at asc")
	if !scope.All() {
		q = q.Where("user_id = ?", scope.OwnerID)
	}

	var goals []models.Goal
	if err := q.Find(&goals).Error; err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	return goals, nil
}

// GetOwned retrieves a goal by id, only if it belongs to ownerID.
func (r *GORMGoalRepository) GetOwned(ctx context.Context, id, ownerID string) (*models.Goal, error) {
	var goal models.Goal
	err := r.db.WithContext(ctx).First(&goal, "id = ? AND user_id = ?", id, ownerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("goal %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get goal %s: %w", id, err)
	}
	return &goal, nil
}

// Create inserts a new goal.
func (r *GORMGoalRepository) Create(ctx context.Context, goal *models.Goal) error {
	if goal.ID == "" {
		goal.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Omit("User").Create(goal).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return fmt.Errorf("goal owner %s: %w", goal.UserID, ErrOwnerMissing)
		}
		return fmt.Errorf("failed to create goal: %w", err)
	}
	return nil
}

// Update writes the mutable columns of a goal, matching on id and owner.
func (r *GORMGoalRepository) Update(ctx context.Context, goal *models.Goal) error {
	res := r.db.WithContext(ctx).
		Model(&models.Goal{}).
		Where("id = ? AND user_id = ?", goal.ID, goal.UserID).
		Select("title", "target_number", "deadline", "progress", "updated_at").
		Updates(goal)
	if res.Error != nil {
		return fmt.Errorf("failed to update goal: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("goal %s: %w", goal.ID, ErrNotFound)
	}
	return nil
}

// Delete removes a goal, matching on id and owner.
func (r *GORMGoalRepository) Delete(ctx context.Context, id, ownerID string) error {
	res := r.db.WithContext(ctx).Delete(&models.Goal{}, "id = ? AND user_id = ?", id, ownerID)
	if res.Error != nil {
		return fmt.Errorf("failed to delete goal: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("goal %s: %w", id, ErrNotFound)
	}
	return nil
}
