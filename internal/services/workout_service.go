package services

import (
	"context"
	"errors"

	"athletrack/internal/access"
	"athletrack/internal/apperr"
	"athletrack/internal/models"
	"athletrack/internal/repositories"

	"go.uber.org/zap"
)

// WorkoutService handles workout records, scoped to their owners.
type WorkoutService struct {
	repo     repositories.WorkoutRepository
	events   EventPublisher
	recorder access.Recorder
	log      *zap.Logger
}

// NewWorkoutService creates a new WorkoutService. events and recorder may be nil.
func NewWorkoutService(repo repositories.WorkoutRepository, events EventPublisher, recorder access.Recorder, log *zap.Logger) *WorkoutService {
	return &WorkoutService{
		repo:     repo,
		events:   events,
		recorder: recorder,
		log:      log,
	}
}

// WorkoutInput is the data needed to log a workout.
type WorkoutInput struct {
	Type      string
	Date      string
	Duration  int
	Notes     *string
	ShotsMade *int
	Reps      *int
	Sets      *int
}

// WorkoutUpdate holds the workout fields to change; nil fields are left untouched.
type WorkoutUpdate struct {
	Type      *string
	Date      *string
	Duration  *int
	Notes     *string
	ShotsMade *int
	Reps      *int
	Sets      *int
}

// List returns every workout with its owner for coaches, and the caller's own
// workouts for everyone else.
func (s *WorkoutService) List(ctx context.Context, p access.Principal) ([]models.Workout, error) {
	if err := authorize(s.recorder, access.ResourceWorkout, access.ReadAll, access.AuthorizeWorkoutAction(p, access.ReadAll, "")); err != nil {
		return nil, err
	}
	workouts, err := s.repo.List(ctx, access.WorkoutScope(p))
	if err != nil {
		return nil, apperr.Internal("Could not retrieve workouts", err)
	}
	return workouts, nil
}

// Get returns one of the caller's workouts.
func (s *WorkoutService) Get(ctx context.Context, p access.Principal, id string) (*models.Workout, error) {
	return s.owned(ctx, p, access.ReadOne, id)
}

// Create logs a workout owned by the caller.
func (s *WorkoutService) Create(ctx context.Context, p access.Principal, in WorkoutInput) (*models.Workout, error) {
	if err := authorize(s.recorder, access.ResourceWorkout, access.Create, access.AuthorizeWorkoutAction(p, access.Create, "")); err != nil {
		return nil, err
	}

	workout := &models.Workout{
		UserID:    access.OwnerForCreate(p),
		Type:      in.Type,
		Date:      in.Date,
		Duration:  in.Duration,
		Notes:     in.Notes,
		ShotsMade: in.ShotsMade,
		Reps:      in.Reps,
		Sets:      in.Sets,
	}
	if err := s.repo.Create(ctx, workout); err != nil {
		if errors.Is(err, repositories.ErrOwnerMissing) {
			return nil, errAccountGone
		}
		return nil, apperr.Internal("Could not create workout", err)
	}

	publishEvent(ctx, s.events, s.log, EventWorkoutCreated, ownedEvent{ID: workout.ID, UserID: workout.UserID})
	return workout, nil
}

// Update changes one of the caller's workouts.
func (s *WorkoutService) Update(ctx context.Context, p access.Principal, id string, in WorkoutUpdate) (*models.Workout, error) {
	workout, err := s.owned(ctx, p, access.Update, id)
	if err != nil {
		return nil, err
	}

	if in.Type != nil {
		workout.Type = *in.Type
	}
	if in.Date != nil {
		workout.Date = *in.Date
	}
	if in.Duration != nil {
		workout.Duration = *in.Duration
	}
	if in.Notes != nil {
		workout.Notes = in.Notes
	}
	if in.ShotsMade != nil {
		workout.ShotsMade = in.ShotsMade
	}
	if in.Reps != nil {
		workout.Reps = in.Reps
	}
	if in.Sets != nil {
		workout.Sets = in.Sets
	}

	if err := s.repo.Update(ctx, workout); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperr.NotFound("Workout not found")
		}
		return nil, apperr.Internal("Could not update workout", err)
	}

	publishEvent(ctx, s.events, s.log, EventWorkoutUpdated, ownedEvent{ID: workout.ID, UserID: workout.UserID})
	return workout, nil
}

// Delete removes one of the caller's workouts.
func (s *WorkoutService) Delete(ctx context.Context, p access.Principal, id string) error {
	workout, err := s.owned(ctx, p, access.Delete, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, workout.ID, workout.UserID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperr.NotFound("Workout not found")
		}
		return apperr.Internal("Could not delete workout", err)
	}

	publishEvent(ctx, s.events, s.log, EventWorkoutDeleted, ownedEvent{ID: workout.ID, UserID: workout.UserID})
	return nil
}

// owned performs the ownership-scoped lookup and authorizes action on its result.
func (s *WorkoutService) owned(ctx context.Context, p access.Principal, action access.Action, id string) (*models.Workout, error) {
	var ownerID string
	workout, err := s.repo.GetOwned(ctx, id, access.LookupOwner(p))
	switch {
	case err == nil:
		ownerID = workout.UserID
	case !errors.Is(err, repositories.ErrNotFound):
		return nil, apperr.Internal("Could not retrieve workout", err)
	}

	if err := authorize(s.recorder, access.ResourceWorkout, action, access.AuthorizeWorkoutAction(p, action, ownerID)); err != nil {
		return nil, err
	}
	return workout, nil
}
