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

// GORMWorkoutRepository is a GORM implementation of WorkoutRepository.
type GORMWorkoutRepository struct {
	db *gorm.DB
}

// NewGORMWorkoutRepository creates a new instance of GORMWorkoutRepository.
func NewGORMWorkoutRepository(db *gorm.DB) *GORMWorkoutRepository {
	return &GORMWorkoutRepository{
		db: db,
	}
}

// List retrieves the workouts visible under scope. Owner filtering happens in the query.
func (r *GORMWorkoutRepository) List(ctx context.Context, scope access.Scope) ([]models.Workout, error) {
	q := r.db.WithContext(ctx).Order("date desc, created_at desc")
	if !scope.All() {
		q = q.Where("user_id = ?", scope.OwnerID)
	}
	if scope.WithOwner {
		q = q.Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "username", "role")
		})
	}

	var workouts []models.Workout
	if err := q.Find(&workouts).Error; err != nil {
		return nil, fmt.Errorf("failed to list workouts: %w", err)
	}
	return workouts, nil
}

// GetOwned retrieves a workout by id, only if it belongs to ownerID.
func (r *GORMWorkoutRepository) GetOwned(ctx context.Context, id, ownerID string) (*models.Workout, error) {
	var workout models.Workout
	err := r.db.WithContext(ctx).First(&workout, "id = ? AND user_id = ?", id, ownerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("workout %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get workout %s: %w", id, err)
	}
	return &workout, nil
}

// Create inserts a new workout.
func (r *GORMWorkoutRepository) Create(ctx context.Context, workout *models.Workout) error {
	if workout.ID == "" {
		workout.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Omit("User").Create(workout).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return fmt.Errorf("workout owner %s: %w", workout.UserID, ErrOwnerMissing)
		}
		return fmt.Errorf("failed to create workout: %w", err)
	}
	return nil
}

// Update writes the mutable columns of a workout, matching on id and owner.
func (r *GORMWorkoutRepository) Update(ctx context.Context, workout *models.Workout) error {
	res := r.db.WithContext(ctx).
		Model(&models.Workout{}).
		Where("id = ? AND user_id = ?", workout.ID, workout.UserID).
		Select("type", "date", "duration", "notes", "shots_made", "reps", "sets", "updated_at").
		Updates(workout)
	if res.Error != nil {
		return fmt.Errorf("failed to update workout: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("workout %s: %w", workout.ID, ErrNotFound)
	}
	return nil
}

// Delete removes a workout, matching on id and owner.
func (r *GORMWorkoutRepository) Delete(ctx context.Context, id, ownerID string) error {
	res := r.db.WithContext(ctx).Delete(&models.Workout{}, "id = ? AND user_id = ?", id, ownerID)
	if res.Error != nil {
		return fmt.Errorf("failed to delete workout: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("workout %s: %w", id, ErrNotFound)
	}
	return nil
}
