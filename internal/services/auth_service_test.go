package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"athletrack/internal/access"
	"athletrack/internal/apperr"
	"athletrack/internal/models"
	"athletrack/internal/repositories"
	"athletrack/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "test_jwt_secret"

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPublisher is a mock implementation of services.EventPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, routingKey string, payload any) error {
	args := m.Called(ctx, routingKey, payload)
	return args.Error(0)
}

func notFound(what string) error {
	return fmt.Errorf("%s: %w", what, repositories.ErrNotFound)
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)
	mockPub := new(MockPublisher)
	authService := services.NewAuthService(mockRepo, testJWTSecret, time.Hour, mockPub, zap.NewNop())

	input := services.RegisterInput{Username: "testuser", Password: "password123", Role: models.RoleAthlete}

	var stored *models.User
	mockRepo.On("GetByUsername", ctx, "testuser").Return(nil, notFound("user testuser")).Once()
	mockRepo.On("Create", ctx, mock.AnythingOfType("*models.User")).
		Run(func(args mock.Arguments) {
			stored = args.Get(1).(*models.User)
			stored.ID = "user-1"
		}).
		Return(nil).Once()
	mockPub.On("Publish", ctx, services.EventUserRegistered, mock.Anything).Return(nil).Once()

	user, err := authService.Register(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
	assert.NotEqual(t, input.Password, stored.Password, "password must be stored hashed")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte(input.Password)))
	mockRepo.AssertExpectations(t)
	mockPub.AssertExpectations(t)

	// Duplicate username, different other fields
	mockRepo.On("GetByUsername", ctx, "testuser").Return(&models.User{ID: "user-1", Username: "testuser"}, nil).Once()
	_, err = authService.Register(ctx, services.RegisterInput{Username: "testuser", Password: "other-pass", Role: models.RoleCoach})
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	mockRepo.AssertExpectations(t)

	// Unique constraint hit by a concurrent registration
	mockRepo.On("GetByUsername", ctx, "racer").Return(nil, notFound("user racer")).Once()
	mockRepo.On("Create", ctx, mock.AnythingOfType("*models.User")).Return(fmt.Errorf("insert: %w", repositories.ErrDuplicate)).Once()
	_, err = authService.Register(ctx, services.RegisterInput{Username: "racer", Password: "password123", Role: models.RoleAthlete})
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	mockRepo.AssertExpectations(t)

	// Unknown role never reaches the store
	_, err = authService.Register(ctx, services.RegisterInput{Username: "x-user", Password: "password123", Role: "referee"})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	// Store failure
	mockRepo.On("GetByUsername", ctx, "broken").Return(nil, fmt.Errorf("connection reset")).Once()
	_, err = authService.Register(ctx, services.RegisterInput{Username: "broken", Password: "password123", Role: models.RoleAthlete})
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret, time.Hour, nil, zap.NewNop())

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		ID:       "user-123",
		Username: "testuser",
		Password: string(hashedPassword),
		Role:     models.RoleCoach,
	}

	// Successful login
	mockRepo.On("GetByUsername", ctx, user.Username).Return(user, nil).Once()
	token, err := authService.Login(ctx, "testuser", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	parsed, err := jwt.ParseWithClaims(token, &services.Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	claims := parsed.Claims.(*services.Claims)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Username, claims.Username)
	assert.Equal(t, models.RoleCoach, claims.Role)
	assert.InDelta(t, time.Now().Add(time.Hour).Unix(), claims.ExpiresAt, 5)
	mockRepo.AssertExpectations(t)

	// Wrong password
	mockRepo.On("GetByUsername", ctx, user.Username).Return(user, nil).Once()
	token, err = authService.Login(ctx, "testuser", "wrongpassword")
	assert.Empty(t, token)
	assert.Equal(t, apperr.KindAuthentication, apperr.KindOf(err))
	assert.Contains(t, err.Error(), "Invalid credentials")

	// Unknown user gets the same answer
	mockRepo.On("GetByUsername", ctx, "nonexistentuser").Return(nil, notFound("user nonexistentuser")).Once()
	_, unknownErr := authService.Login(ctx, "nonexistentuser", "password123")
	assert.Equal(t, err.Error(), unknownErr.Error())
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ValidateToken(t *testing.T) {
	authService := services.NewAuthService(new(MockUserRepository), testJWTSecret, time.Hour, nil, zap.NewNop())
	athlete := access.Principal{ID: "user-123", Username: "testuser", Role: models.RoleAthlete}

	token, err := authService.IssueToken(athlete)
	require.NoError(t, err)

	principal, err := authService.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, athlete, principal)

	_, err = authService.ValidateToken("")
	assert.ErrorIs(t, err, services.ErrTokenMissing)

	_, err = authService.ValidateToken("invalid.token.string")
	assert.ErrorIs(t, err, services.ErrTokenMalformed)

	// Signed with another secret
	other := services.NewAuthService(new(MockUserRepository), "another_secret", time.Hour, nil, zap.NewNop())
	foreign, _ := other.IssueToken(athlete)
	_, err = authService.ValidateToken(foreign)
	assert.ErrorIs(t, err, services.ErrTokenMalformed)

	// Expired
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, services.Claims{
		UserID:         athlete.ID,
		Username:       athlete.Username,
		Role:           athlete.Role,
		StandardClaims: jwt.StandardClaims{ExpiresAt: time.Now().Add(-time.Hour).Unix()},
	})
	expiredString, _ := expired.SignedString([]byte(testJWTSecret))
	_, err = authService.ValidateToken(expiredString)
	assert.ErrorIs(t, err, services.ErrTokenExpired)

	// Missing identity
	anonymous := jwt.NewWithClaims(jwt.SigningMethodHS256, services.Claims{
		Role:           models.RoleCoach,
		StandardClaims: jwt.StandardClaims{ExpiresAt: time.Now().Add(time.Hour).Unix()},
	})
	anonymousString, _ := anonymous.SignedString([]byte(testJWTSecret))
	_, err = authService.ValidateToken(anonymousString)
	assert.ErrorIs(t, err, services.ErrTokenMalformed)

	for _, e := range []error{services.ErrTokenMissing, services.ErrTokenMalformed, services.ErrTokenExpired} {
		assert.Equal(t, apperr.KindAuthentication, apperr.KindOf(e))
	}
}
