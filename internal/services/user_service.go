package services

import (
	"context"
	"errors"
	"fmt"

	"athletrack/internal/access"
	"athletrack/internal/apperr"
	"athletrack/internal/models"
	"athletrack/internal/repositories"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserService handles reads and writes of user profiles.
type UserService struct {
	repo     repositories.UserRepository
	events   EventPublisher
	recorder access.Recorder
	log      *zap.Logger
}

// NewUserService creates a new UserService. events and recorder may be nil.
func NewUserService(repo repositories.UserRepository, events EventPublisher, recorder access.Recorder, log *zap.Logger) *UserService {
	return &UserService{
		repo:     repo,
		events:   events,
		recorder: recorder,
		log:      log,
	}
}

// List returns every user. Coaches only.
func (s *UserService) List(ctx context.Context, p access.Principal) ([]models.User, error) {
	if err := authorize(s.recorder, access.ResourceUser, access.ReadAll, access.AuthorizeUserAction(p, access.ReadAll, "")); err != nil {
		return nil, err
	}
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperr.Internal("Could not retrieve users", err)
	}
	return users, nil
}

// Get returns one user. Coaches only.
func (s *UserService) Get(ctx context.Context, p access.Principal, id string) (*models.User, error) {
	if err := authorize(s.recorder, access.ResourceUser, access.ReadOne, access.AuthorizeUserAction(p, access.ReadOne, id)); err != nil {
		return nil, err
	}
	return s.find(ctx, id)
}

// UpdateUserInput holds the profile fields to change; nil fields are left untouched.
type UpdateUserInput struct {
	Username *string
	Password *string
	Role     *models.Role
	Height   *int
	Position *string
}

// Update changes a user's profile. Coaches may update anyone, other users only
// themselves. Changing a role is reserved to coaches.
func (s *UserService) Update(ctx context.Context, p access.Principal, id string, in UpdateUserInput) (*models.User, error) {
	if err := authorize(s.recorder, access.ResourceUser, access.Update, access.AuthorizeUserAction(p, access.Update, id)); err != nil {
		return nil, err
	}

	user, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Role != nil && *in.Role != user.Role {
		if !in.Role.Valid() {
			return nil, apperr.Validation("Validation failed", map[string]string{"role": "role must be athlete or coach"})
		}
		if !p.IsCoach() {
			return nil, apperr.Authorization("Access denied. Only coaches can change roles.")
		}
		user.Role = *in.Role
	}

	if in.Username != nil && *in.Username != user.Username {
		taken, err := s.repo.GetByUsername(ctx, *in.Username)
		switch {
		case err == nil && taken != nil:
			return nil, apperr.Conflict("Username already exists")
		case err != nil && !errors.Is(err, repositories.ErrNotFound):
			return nil, apperr.Internal("Could not update user", err)
		}
		user.Username = *in.Username
	}

	if in.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, apperr.Internal("Could not update user", fmt.Errorf("failed to hash password: %w", err))
		}
		user.Password = string(hashed)
	}
	if in.Height != nil {
		user.Height = in.Height
	}
	if in.Position != nil {
		user.Position = in.Position
	}

	if err := s.repo.Update(ctx, user); err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return nil, apperr.NotFound("User not found")
		case errors.Is(err, repositories.ErrDuplicate):
			return nil, apperr.Conflict("Username already exists")
		}
		return nil, apperr.Internal("Could not update user", err)
	}

	publishEvent(ctx, s.events, s.log, EventUserUpdated, userEvent{ID: user.ID, Username: user.Username, Role: string(user.Role)})
	return user, nil
}

// Delete removes a user. Coaches only. Their workouts and goals are not deleted.
func (s *UserService) Delete(ctx context.Context, p access.Principal, id string) error {
	if err := authorize(s.recorder, access.ResourceUser, access.Delete, access.AuthorizeUserAction(p, access.Delete, id)); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperr.NotFound("User not found")
		}
		return apperr.Internal("Could not delete user", err)
	}

	s.log.Info("user deleted", zap.String("user_id", id), zap.String("by", p.ID))
	publishEvent(ctx, s.events, s.log, EventUserDeleted, userEvent{ID: id})
	return nil
}

func (s *UserService) find(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, apperr.Internal("Could not retrieve user", err)
	}
	return user, nil
}
