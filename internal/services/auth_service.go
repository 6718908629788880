package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"athletrack/internal/access"
	"athletrack/internal/apperr"
	"athletrack/internal/models"
	"athletrack/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Token verification failures. All of them are authentication errors; the messages
// tell the client whether to log in again.
var (
	ErrTokenMissing   = apperr.Authentication("Access denied. No token provided.")
	ErrTokenMalformed = apperr.Authentication("Invalid token. Please log in again.")
	ErrTokenExpired   = apperr.Authentication("Token expired. Please log in again.")
)

var errInvalidCredentials = apperr.Authentication("Invalid credentials")

// errAccountGone answers a still-valid token whose user has been deleted.
var errAccountGone = apperr.Authentication("Account no longer exists. Please log in again.")

// Claims is the payload of an access token.
type Claims struct {
	UserID   string      `json:"user_id"`
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
	jwt.StandardClaims
}

// AuthService handles registration, login and access token issuing and verification.
type AuthService struct {
	userRepo  repositories.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
	events    EventPublisher
	log       *zap.Logger
}

// NewAuthService creates a new AuthService. events may be nil.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string, tokenTTL time.Duration, events EventPublisher, log *zap.Logger) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		events:    events,
		log:       log,
	}
}

// RegisterInput is the data needed to create a user.
type RegisterInput struct {
	Username string
	Password string
	Role     models.Role
	Height   *int
	Position *string
}

// Register creates a user with a bcrypt-hashed password.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if !in.Role.Valid() {
		return nil, apperr.Validation("Validation failed", map[string]string{"role": "role must be athlete or coach"})
	}

	existing, err := s.userRepo.GetByUsername(ctx, in.Username)
	switch {
	case err == nil && existing != nil:
		return nil, apperr.Conflict("Username already exists")
	case err != nil && !errors.Is(err, repositories.ErrNotFound):
		return nil, apperr.Internal("Could not register user", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Internal("Could not register user", fmt.Errorf("failed to hash password: %w", err))
	}

	user := &models.User{
		Username: in.Username,
		Password: string(hashedPassword),
		Role:     in.Role,
		Height:   in.Height,
		Position: in.Position,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, apperr.Conflict("Username already exists")
		}
		return nil, apperr.Internal("Could not register user", err)
	}

	s.log.Info("user registered", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	publishEvent(ctx, s.events, s.log, EventUserRegistered, userEvent{ID: user.ID, Username: user.Username, Role: string(user.Role)})
	return user, nil
}

// Login checks the credentials and returns a signed access token.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			// same answer as a wrong password so usernames cannot be probed
			return "", errInvalidCredentials
		}
		return "", apperr.Internal("Could not log in", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", errInvalidCredentials
	}

	return s.IssueToken(access.Principal{ID: user.ID, Username: user.Username, Role: user.Role})
}

// IssueToken signs an HS256 token for p that expires after the configured TTL.
func (s *AuthService) IssueToken(p access.Principal) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   p.ID,
		Username: p.Username,
		Role:     p.Role,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(s.tokenTTL).Unix(),
		},
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return "", apperr.Internal("Could not log in", fmt.Errorf("failed to generate token: %w", err))
	}
	return tokenString, nil
}

// ValidateToken verifies a token and returns the principal it asserts.
func (s *AuthService) ValidateToken(tokenString string) (access.Principal, error) {
	if tokenString == "" {
		return access.Principal{}, ErrTokenMissing
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) && ve.Errors&jwt.ValidationErrorExpired != 0 &&
			ve.Errors&(jwt.ValidationErrorSignatureInvalid|jwt.ValidationErrorUnverifiable) == 0 {
			return access.Principal{}, ErrTokenExpired
		}
		s.log.Debug("token validation failed", zap.Error(err))
		return access.Principal{}, ErrTokenMalformed
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" || !claims.Role.Valid() {
		return access.Principal{}, ErrTokenMalformed
	}
	return access.Principal{ID: claims.UserID, Username: claims.Username, Role: claims.Role}, nil
}
