package handlers

import (
	"athletrack/internal/middleware"
	"athletrack/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// WorkoutHandler handles HTTP requests for workouts.
type WorkoutHandler struct {
	workoutService *services.WorkoutService
	validate       *validator.Validate
}

// NewWorkoutHandler creates a new WorkoutHandler.
func NewWorkoutHandler(workoutService *services.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{
		workoutService: workoutService,
		validate:       newValidator(),
	}
}

// RegisterRoutes registers the workout routes, each behind auth.
func (h *WorkoutHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	workoutRoutes := router.Group("/workouts")
	workoutRoutes.Get("/", auth, h.HandleGetWorkouts)
	workoutRoutes.Get("/:id", auth, h.HandleGetWorkout)
	workoutRoutes.Post("/", auth, h.HandleCreateWorkout)
	workoutRoutes.Put("/:id", auth, h.HandleUpdateWorkout)
	workoutRoutes.Delete("/:id", auth, h.HandleDeleteWorkout)
}

// HandleGetWorkouts lists the workouts visible to the caller.
func (h *WorkoutHandler) HandleGetWorkouts(c *fiber.Ctx) error {
	workouts, err := h.workoutService.List(c.UserContext(), middleware.Principal(c))
	if err != nil {
		return err
	}
	out := make([]WorkoutResponse, 0, len(workouts))
	for i := range workouts {
		out = append(out, toWorkoutResponse(&workouts[i]))
	}
	return c.JSON(out)
}

// HandleGetWorkout returns one of the caller's workouts.
func (h *WorkoutHandler) HandleGetWorkout(c *fiber.Ctx) error {
	workout, err := h.workoutService.Get(c.UserContext(), middleware.Principal(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(toWorkoutResponse(workout))
}

// HandleCreateWorkout logs a workout for the caller.
func (h *WorkoutHandler) HandleCreateWorkout(c *fiber.Ctx) error {
	var req CreateWorkoutRequest
	if err := bind(c, h.validate, &req); err != nil {
		return err
	}

	workout, err := h.workoutService.Create(c.UserContext(), middleware.Principal(c), services.WorkoutInput{
		Type:      req.Type,
		Date:      req.Date,
		Duration:  req.Duration,
		Notes:     req.Notes,
		ShotsMade: req.ShotsMade,
		Reps:      req.Reps,
		Sets:      req.Sets,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Workout created successfully",
		"workout": toWorkoutResponse(workout),
	})
}

// HandleUpdateWorkout applies a partial update to one of the caller's workouts.
func (h *WorkoutHandler) HandleUpdateWorkout(c *fiber.Ctx) error {
	var req UpdateWorkoutRequest
	if err := bind(c, h.validate, &req); err != nil {
		return err
	}

	workout, err := h.workoutService.Update(c.UserContext(), middleware.Principal(c), c.Params("id"), services.WorkoutUpdate{
		Type:      req.Type,
		Date:      req.Date,
		Duration:  req.Duration,
		Notes:     req.Notes,
		ShotsMade: req.ShotsMade,
		Reps:      req.Reps,
		Sets:      req.Sets,
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Workout updated successfully",
		"workout": toWorkoutResponse(workout),
	})
}

// HandleDeleteWorkout removes one of the caller's workouts.
func (h *WorkoutHandler) HandleDeleteWorkout(c *fiber.Ctx) error {
	if err := h.workoutService.Delete(c.UserContext(), middleware.Principal(c), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Workout deleted successfully"})
}
