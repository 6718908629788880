package repositories

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"athletrack/internal/access"
	"athletrack/internal/models"

	"github.com/google/uuid"
)

// MemoryWorkoutRepository is an in-memory implementation of WorkoutRepository.
type MemoryWorkoutRepository struct {
	workouts map[string]models.Workout
	users    *MemoryUserRepository
	mu       sync.RWMutex
}

// NewMemoryWorkoutRepository creates a new instance of MemoryWorkoutRepository.
// users resolves owners for coach-wide listings and may be nil.
func NewMemoryWorkoutRepository(users *MemoryUserRepository) *MemoryWorkoutRepository {
	return &MemoryWorkoutRepository{
		workouts: make(map[string]models.Workout),
		users:    users,
	}
}

// List returns the workouts visible under scope, newest date first.
func (r *MemoryWorkoutRepository) List(_ context.Context, scope access.Scope) ([]models.Workout, error) {
	r.mu.RLock()
	list := make([]models.Workout, 0, len(r.workouts))
	for _, w := range r.workouts {
		if scope.All() || w.UserID == scope.OwnerID {
			list = append(list, w)
		}
	}
	r.mu.RUnlock()

	if scope.WithOwner && r.users != nil {
		for i := range list {
			list[i].User = r.users.owner(list[i].UserID)
		}
	}
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Date != list[j].Date {
			return list[i].Date > list[j].Date
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}

// GetOwned returns a workout by id if ownerID owns it.
func (r *MemoryWorkoutRepository) GetOwned(_ context.Context, id, ownerID string) (*models.Workout, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	w, ok := r.workouts[id]
	if !ok || w.UserID != ownerID {
		return nil, fmt.Errorf("workout %s: %w", id, ErrNotFound)
	}
	return &w, nil
}

// Create adds a new workout.
func (r *MemoryWorkoutRepository) Create(_ context.Context, workout *models.Workout) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if workout.ID == "" {
		workout.ID = uuid.New().String()
	}
	now := time.Now()
	workout.CreatedAt = now
	workout.UpdatedAt = now
	stored := *workout
	stored.User = nil
	r.workouts[workout.ID] = stored
	return nil
}

// Update replaces a workout matching on id and owner.
func (r *MemoryWorkoutRepository) Update(_ context.Context, workout *models.Workout) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.workouts[workout.ID]
	if !ok || existing.UserID != workout.UserID {
		return fmt.Errorf("workout %s: %w", workout.ID, ErrNotFound)
	}
	workout.CreatedAt = existing.CreatedAt
	workout.UpdatedAt = time.Now()
	stored := *workout
	stored.User = nil
	r.workouts[workout.ID] = stored
	return nil
}

// Delete removes a workout matching on id and owner.
func (r *MemoryWorkoutRepository) Delete(_ context.Context, id, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, ok := r.workouts[id]
	if !ok || w.UserID != ownerID {
		return fmt.Errorf("workout %s: %w", id, ErrNotFound)
	}
	delete(r.workouts, id)
	return nil
}
