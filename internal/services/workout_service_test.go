package services_test

import (
	"context"
	"testing"

	"athletrack/internal/access"
	"athletrack/internal/apperr"
	"athletrack/internal/models"
	"athletrack/internal/repositories"
	"athletrack/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newWorkoutService(t *testing.T, pub services.EventPublisher) (*services.WorkoutService, *decisionLog) {
	t.Helper()
	users := repositories.NewMemoryUserRepository()
	ctx := context.Background()
	for _, p := range []access.Principal{coach, athleteA, athleteB} {
		require.NoError(t, users.Create(ctx, &models.User{ID: p.ID, Username: p.Username, Password: "hash", Role: p.Role}))
	}
	log := &decisionLog{}
	return services.NewWorkoutService(repositories.NewMemoryWorkoutRepository(users), pub, log, zap.NewNop()), log
}

func basketball() services.WorkoutInput {
	return services.WorkoutInput{Type: "Basketball", Date: "2025-12-06", Duration: 60}
}

func TestWorkoutService_CreateForcesOwner(t *testing.T) {
	ctx := context.Background()
	pub := new(MockPublisher)
	svc, _ := newWorkoutService(t, pub)

	pub.On("Publish", ctx, services.EventWorkoutCreated, mock.Anything).Return(nil).Once()
	workout, err := svc.Create(ctx, athleteA, basketball())
	require.NoError(t, err)
	assert.NotEmpty(t, workout.ID)
	assert.Equal(t, athleteA.ID, workout.UserID)
	pub.AssertExpectations(t)
}

func TestWorkoutService_OwnershipScopedLookup(t *testing.T) {
	ctx := context.Background()
	svc, log := newWorkoutService(t, nil)

	workout, err := svc.Create(ctx, athleteA, basketball())
	require.NoError(t, err)

	got, err := svc.Get(ctx, athleteA, workout.ID)
	require.NoError(t, err)
	assert.Equal(t, "Basketball", got.Type)

	_, foreignErr := svc.Get(ctx, athleteB, workout.ID)
	_, missingErr := svc.Get(ctx, athleteB, "does-not-exist")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(foreignErr))
	assert.Equal(t, missingErr.Error(), foreignErr.Error(), "foreign and missing ids must be indistinguishable")
	assert.Equal(t, decision{access.ResourceWorkout, access.ReadOne, false}, log.last())

	// coaches have no read-one or write rights over athletes' workouts
	_, err = svc.Get(ctx, coach, workout.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	_, err = svc.Update(ctx, coach, workout.ID, services.WorkoutUpdate{Duration: intPtr(10)})
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(svc.Delete(ctx, coach, workout.ID)))
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(svc.Delete(ctx, athleteB, workout.ID)))
}

func TestWorkoutService_List(t *testing.T) {
	ctx := context.Background()
	svc, _ := newWorkoutService(t, nil)

	_, err := svc.Create(ctx, athleteA, basketball())
	require.NoError(t, err)
	_, err = svc.Create(ctx, athleteB, services.WorkoutInput{Type: "Strength", Date: "2025-12-07", Duration: 45, Reps: intPtr(10), Sets: intPtr(4)})
	require.NoError(t, err)

	own, err := svc.List(ctx, athleteA)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, athleteA.ID, own[0].UserID)
	assert.Nil(t, own[0].User)

	all, err := svc.List(ctx, coach)
	require.NoError(t, err)
	require.Len(t, all, 2)
	for _, w := range all {
		require.NotNil(t, w.User)
		assert.Equal(t, w.UserID, w.User.ID)
		assert.Equal(t, models.RoleAthlete, w.User.Role)
		assert.Empty(t, w.User.Password)
	}
	assert.Equal(t, "2025-12-07", all[0].Date, "newest first")
}

func TestWorkoutService_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	svc, _ := newWorkoutService(t, nil)

	workout, err := svc.Create(ctx, athleteA, basketball())
	require.NoError(t, err)

	updated, err := svc.Update(ctx, athleteA, workout.ID, services.WorkoutUpdate{
		Duration:  intPtr(90),
		ShotsMade: intPtr(250),
		Notes:     strPtr("Free throws"),
	})
	require.NoError(t, err)
	assert.Equal(t, 90, updated.Duration)
	assert.Equal(t, "Basketball", updated.Type)
	assert.Equal(t, 250, *updated.ShotsMade)

	_, err = svc.Update(ctx, athleteB, workout.ID, services.WorkoutUpdate{Duration: intPtr(1)})
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	require.NoError(t, svc.Delete(ctx, athleteA, workout.ID))
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(svc.Delete(ctx, athleteA, workout.ID)))
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(svc.Delete(ctx, athleteA, workout.ID)))
}

func TestWorkoutService_RequiresPrincipal(t *testing.T) {
	svc, _ := newWorkoutService(t, nil)
	_, err := svc.List(context.Background(), access.Principal{})
	assert.Equal(t, apperr.KindAuthentication, apperr.KindOf(err))
	_, err = svc.Create(context.Background(), access.Principal{}, basketball())
	assert.Equal(t, apperr.KindAuthentication, apperr.KindOf(err))
}
