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

// GoalService handles goal records. Goals are only ever visible to their owner.
type GoalService struct {
	repo     repositories.GoalRepository
	events   EventPublisher
	recorder access.Recorder
	log      *zap.Logger
}

// NewGoalService creates a new GoalService. events and recorder may be nil.
func NewGoalService(repo repositories.GoalRepository, events EventPublisher, recorder access.Recorder, log *zap.Logger) *GoalService {
	return &GoalService{
		repo:     repo,
		events:   events,
		recorder: recorder,
		log:      log,
	}
}

// GoalInput is the data needed to set a goal.
type GoalInput struct {
	Title        string
	TargetNumber int
	Deadline     string
	Progress     *int
}

// GoalUpdate holds the goal fields to change; nil fields are left untouched.
type GoalUpdate struct {
	Title        *string
	TargetNumber *int
	Deadline     *string
	Progress     *int
}

// List returns the caller's goals, whatever their role.
func (s *GoalService) List(ctx context.Context, p access.Principal) ([]models.Goal, error) {
	if err := authorize(s.recorder, access.ResourceGoal, access.ReadAll, access.AuthorizeGoalAction(p, access.ReadAll, "")); err != nil {
		return nil, err
	}
	goals, err := s.repo.List(ctx, access.GoalScope(p))
	if err != nil {
		return nil, apperr.Internal("Could not retrieve goals", err)
	}
	return goals, nil
}

// Get returns one of the caller's goals.
func (s *GoalService) Get(ctx context.Context, p access.Principal, id string) (*models.Goal, error) {
	return s.owned(ctx, p, access.ReadOne, id)
}

// Create sets a goal owned by the caller. Progress starts at 0 unless given.
func (s *GoalService) Create(ctx context.Context, p access.Principal, in GoalInput) (*models.Goal, error) {
	if err := authorize(s.recorder, access.ResourceGoal, access.Create, access.AuthorizeGoalAction(p, access.Create, "")); err != nil {
		return nil, err
	}

	goal := &models.Goal{
		UserID:       access.OwnerForCreate(p),
		Title:        in.Title,
		TargetNumber: in.TargetNumber,
		Deadline:     in.Deadline,
	}
	if in.Progress != nil {
		goal.Progress = *in.Progress
	}
	if err := s.repo.Create(ctx, goal); err != nil {
		if errors.Is(err, repositories.ErrOwnerMissing) {
			return nil, errAccountGone
		}
		return nil, apperr.Internal("Could not create goal", err)
	}

	publishEvent(ctx, s.events, s.log, EventGoalCreated, ownedEvent{ID: goal.ID, UserID: goal.UserID})
	return goal, nil
}

// Update changes one of the caller's goals.
func (s *GoalService) Update(ctx context.Context, p access.Principal, id string, in GoalUpdate) (*models.Goal, error) {
	goal, err := s.owned(ctx, p, access.Update, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		goal.Title = *in.Title
	}
	if in.TargetNumber != nil {
		goal.TargetNumber = *in.TargetNumber
	}
	if in.Deadline != nil {
		goal.Deadline = *in.Deadline
	}
	if in.Progress != nil {
		goal.Progress = *in.Progress
	}

	if err := s.repo.Update(ctx, goal); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperr.NotFound("Goal not found")
		}
		return nil, apperr.Internal("Could not update goal", err)
	}

	publishEvent(ctx, s.events, s.log, EventGoalUpdated, ownedEvent{ID: goal.ID, UserID: goal.UserID})
	return goal, nil
}

// Delete removes one of the caller's goals.
func (s *GoalService) Delete(ctx context.Context, p access.Principal, id string) error {
	goal, err := s.owned(ctx, p, access.Delete, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, goal.ID, goal.UserID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperr.NotFound("Goal not found")
		}
		return apperr.Internal("Could not delete goal", err)
	}

	publishEvent(ctx, s.events, s.log, EventGoalDeleted, ownedEvent{ID: goal.ID, UserID: goal.UserID})
	return nil
}

func (s *GoalService) owned(ctx context.Context, p access.Principal, action access.Action, id string) (*models.Goal, error) {
	var ownerID string
	goal, err := s.repo.GetOwned(ctx, id, access.LookupOwner(p))
	switch {
	case err == nil:
		ownerID = goal.UserID
	case !errors.Is(err, repositories.ErrNotFound):
		return nil, apperr.Internal("Could not retrieve goal", err)
	}

	if err := authorize(s.recorder, access.ResourceGoal, action, access.AuthorizeGoalAction(p, action, ownerID)); err != nil {
		return nil, err
	}
	return goal, nil
}
