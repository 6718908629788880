package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"athletrack/internal/apperr"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// RegisterRequest represents the request body for registration.
type RegisterRequest struct {
	Username string  `json:"username" validate:"required,min=3,max=30"`
	Password string  `json:"password" validate:"required,min=6,max=72"`
	Role     string  `json:"role" validate:"required,oneof=athlete coach"`
	Height   *int    `json:"height" validate:"omitnil,gt=0"`
	Position *string `json:"position" validate:"omitnil,max=50"`
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdateUserRequest represents the request body for a profile update. Absent fields
// are left unchanged.
type UpdateUserRequest struct {
	Username *string `json:"username" validate:"omitnil,min=3,max=30"`
	Password *string `json:"password" validate:"omitnil,min=6,max=72"`
	Role     *string `json:"role" validate:"omitnil,oneof=athlete coach"`
	Height   *int    `json:"height" validate:"omitnil,gt=0"`
	Position *string `json:"position" validate:"omitnil,max=50"`
}

// CreateWorkoutRequest represents the request body for logging a workout. Any owner
// field in the body is ignored.
type CreateWorkoutRequest struct {
	Type      string  `json:"type" validate:"required,max=100"`
	Date      string  `json:"date" validate:"required,datetime=2006-01-02"`
	Duration  int     `json:"duration" validate:"required,gt=0"`
	Notes     *string `json:"notes"`
	ShotsMade *int    `json:"shotsMade" validate:"omitnil,gte=0"`
	Reps      *int    `json:"reps" validate:"omitnil,gte=0"`
	Sets      *int    `json:"sets" validate:"omitnil,gte=0"`
}

// UpdateWorkoutRequest represents the request body for a workout update.
type UpdateWorkoutRequest struct {
	Type      *string `json:"type" validate:"omitnil,min=1,max=100"`
	Date      *string `json:"date" validate:"omitnil,datetime=2006-01-02"`
	Duration  *int    `json:"duration" validate:"omitnil,gt=0"`
	Notes     *string `json:"notes"`
	ShotsMade *int    `json:"shotsMade" validate:"omitnil,gte=0"`
	Reps      *int    `json:"reps" validate:"omitnil,gte=0"`
	Sets      *int    `json:"sets" validate:"omitnil,gte=0"`
}

// CreateGoalRequest represents the request body for setting a goal.
type CreateGoalRequest struct {
	Title        string `json:"title" validate:"required,max=255"`
	TargetNumber int    `json:"targetNumber" validate:"required,gt=0"`
	Deadline     string `json:"deadline" validate:"required,datetime=2006-01-02"`
	Progress     *int   `json:"progress" validate:"omitnil,gte=0"`
}

// UpdateGoalRequest represents the request body for a goal update.
type UpdateGoalRequest struct {
	Title        *string `json:"title" validate:"omitnil,min=1,max=255"`
	TargetNumber *int    `json:"targetNumber" validate:"omitnil,gt=0"`
	Deadline     *string `json:"deadline" validate:"omitnil,datetime=2006-01-02"`
	Progress     *int    `json:"progress" validate:"omitnil,gte=0"`
}

// newValidator reports field errors under their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// bind parses the JSON body into req and validates it.
func bind(c *fiber.Ctx, v *validator.Validate, req any) error {
	if err := c.BodyParser(req); err != nil {
		return apperr.Validation("Invalid request body", nil)
	}
	if err := v.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return apperr.Internal("Could not validate request", err)
		}
		errorMessages := make(map[string]string, len(validationErrors))
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return apperr.Validation("Validation failed", errorMessages)
	}
	return nil
}
