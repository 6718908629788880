package handlers

import (
	"athletrack/internal/middleware"
	"athletrack/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// GoalHandler handles HTTP requests for goals.
type GoalHandler struct {
	goalService *services.GoalService
	validate    *validator.Validate
}

// NewGoalHandler creates a new GoalHandler.
func NewGoalHandler(goalService *services.GoalService) *GoalHandler {
	return &GoalHandler{
		goalService: goalService,
		validate:    newValidator(),
	}
}

// RegisterRoutes registers the goal routes, each behind auth.
func (h *GoalHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	goalRoutes := router.Group("/goals")
	goalRoutes.Get("/", auth, h.HandleGetGoals)
	goalRoutes.Get("/:id", auth, h.HandleGetGoal)
	goalRoutes.Post("/", auth, h.HandleCreateGoal)
	goalRoutes.Put("/:id", auth, h.HandleUpdateGoal)
	goalRoutes.Delete("/:id", auth, h.HandleDeleteGoal)
}

// HandleGetGoals lists the caller's goals.
func (h *GoalHandler) HandleGetGoals(c *fiber.Ctx) error {
	goals, err := h.goalService.List(c.UserContext(), middleware.Principal(c))
	if err != nil {
		return err
	}
	out := make([]GoalResponse, 0, len(goals))
	for i := range goals {
		out = append(out, toGoalResponse(&goals[i]))
	}
	return c.JSON(out)
}

// HandleGetGoal returns one of the caller's goals.
func (h *GoalHandler) HandleGetGoal(c *fiber.Ctx) error {
	goal, err := h.goalService.Get(c.UserContext(), middleware.Principal(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(toGoalResponse(goal))
}

// HandleCreateGoal sets a goal for the caller.
func (h *GoalHandler) HandleCreateGoal(c *fiber.Ctx) error {
	var req CreateGoalRequest
	if err := bind(c, h.validate, &req); err != nil {
		return err
	}

	goal, err := h.goalService.Create(c.UserContext(), middleware.Principal(c), services.GoalInput{
		Title:        req.Title,
		TargetNumber: req.TargetNumber,
		Deadline:     req.Deadline,
		Progress:     req.Progress,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Goal created successfully",
		"goal":    toGoalResponse(goal),
	})
}

// HandleUpdateGoal applies a partial update to one of the caller's goals.
func (h *GoalHandler) HandleUpdateGoal(c *fiber.Ctx) error {
	var req UpdateGoalRequest
	if err := bind(c, h.validate, &req); err != nil {
		return err
	}

	goal, err := h.goalService.Update(c.UserContext(), middleware.Principal(c), c.Params("id"), services.GoalUpdate{
		Title:        req.Title,
		TargetNumber: req.TargetNumber,
		Deadline:     req.Deadline,
		Progress:     req.Progress,
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Goal updated successfully",
		"goal":    toGoalResponse(goal),
	})
}

// HandleDeleteGoal removes one of the caller's goals.
func (h *GoalHandler) HandleDeleteGoal(c *fiber.Ctx) error {
	if err := h.goalService.Delete(c.UserContext(), middleware.Principal(c), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Goal deleted successfully"})
}
