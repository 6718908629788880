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

// MemoryGoalRepository is an in-memory implementation of GoalRepository.
type MemoryGoalRepository struct {
	goals map[string]models.Goal
	mu    sync.RWMutex
}

// NewMemoryGoalRepository creates a new instance of MemoryGoalRepository.
func NewMemoryGoalRepository() *MemoryGoalRepository {
	return &MemoryGoalRepository{
		goals: make(map[string]models.Goal),
	}
}

// List returns the goals visible under scope, nearest deadline first.
func (r *MemoryGoalRepository) List(_ context.Context, scope access.Scope) ([]models.Goal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]models.Goal, 0, len(r.goals))
	for _, g := range r.goals {
		if scope.All() || g.UserID == scope.OwnerID {
			list = append(list, g)
		}
	}
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Deadline != list[j].Deadline {
			return list[i].Deadline < list[j].Deadline
		}
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
	return list, nil
}

// GetOwned returns a goal by id if ownerID owns it.
func (r *MemoryGoalRepository) GetOwned(_ context.Context, id, ownerID string) (*models.Goal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.goals[id]
	if !ok || g.UserID != ownerID {
		return nil, fmt.Errorf("goal %s: %w", id, ErrNotFound)
	}
	return &g, nil
}

// Create adds a new goal.
func (r *MemoryGoalRepository) Create(_ context.Context, goal *models.Goal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if goal.ID == "" {
		goal.ID = uuid.New().String()
	}
	now := time.Now()
	goal.CreatedAt = now
	goal.UpdatedAt = now
	r.goals[goal.ID] = *goal
	return nil
}

// Update replaces a goal matching on id and owner.
func (r *MemoryGoalRepository) Update(_ context.Context, goal *models.Goal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.goals[goal.ID]
	if !ok || existing.UserID != goal.UserID {
		return fmt.Errorf("goal %s: %w", goal.ID, ErrNotFound)
	}
	goal.CreatedAt = existing.CreatedAt
	goal.UpdatedAt = time.Now()
	r.goals[goal.ID] = *goal
	return nil
}

// Delete removes a goal matching on id and owner.
func (r *MemoryGoalRepository) Delete(_ context.Context, id, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, ok := r.goals[id]
	if !ok || g.UserID != ownerID {
		return fmt.Errorf("goal %s: %w", id, ErrNotFound)
	}
	delete(r.goals, id)
	return nil
}
