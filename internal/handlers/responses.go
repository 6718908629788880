package handlers

import (
	"time"

	"athletrack/internal/models"
)

// UserSummary is the public identity of a user.
type UserSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// UserResponse is a user profile. It never carries the password hash.
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	Height    *int      `json:"height,omitempty"`
	Position  *string   `json:"position,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// WorkoutResponse is a workout; User is only set in coach listings.
type WorkoutResponse struct {
	ID        string       `json:"id"`
	UserID    string       `json:"userId"`
	Type      string       `json:"type"`
	Date      string       `json:"date"`
	Duration  int          `json:"duration"`
	Notes     *string      `json:"notes,omitempty"`
	ShotsMade *int         `json:"shotsMade,omitempty"`
	Reps      *int         `json:"reps,omitempty"`
	Sets      *int         `json:"sets,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
	User      *UserSummary `json:"user,omitempty"`
}

// GoalResponse is a goal.
type GoalResponse struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	Title        string    `json:"title"`
	TargetNumber int       `json:"targetNumber"`
	Deadline     string    `json:"deadline"`
	Progress     int       `json:"progress"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func toUserSummary(u *models.User) *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{ID: u.ID, Username: u.Username, Role: string(u.Role)}
}

func toUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Role:      string(u.Role),
		Height:    u.Height,
		Position:  u.Position,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toWorkoutResponse(w *models.Workout) WorkoutResponse {
	return WorkoutResponse{
		ID:        w.ID,
		UserID:    w.UserID,
		Type:      w.Type,
		Date:      w.Date,
		Duration:  w.Duration,
		Notes:     w.Notes,
		ShotsMade: w.ShotsMade,
		Reps:      w.Reps,
		Sets:      w.Sets,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
		User:      toUserSummary(w.User),
	}
}

func toGoalResponse(g *models.Goal) GoalResponse {
	return GoalResponse{
		ID:           g.ID,
		UserID:       g.UserID,
		Title:        g.Title,
		TargetNumber: g.TargetNumber,
		Deadline:     g.Deadline,
		Progress:     g.Progress,
		CreatedAt:    g.CreatedAt,
		UpdatedAt:    g.UpdatedAt,
	}
}
