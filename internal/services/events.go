package services

import (
	"context"

	"go.uber.org/zap"
)

// Routing keys for domain events.
const (
	EventUserRegistered = "user.registered"
	EventUserUpdated    = "user.updated"
	EventUserDeleted    = "user.deleted"
	EventWorkoutCreated = "workout.created"
	EventWorkoutUpdated = "workout.updated"
	EventWorkoutDeleted = "workout.deleted"
	EventGoalCreated    = "goal.created"
	EventGoalUpdated    = "goal.updated"
	EventGoalDeleted    = "goal.deleted"
)

// EventPublisher sends a JSON-encodable payload under a routing key.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

// publishEvent is best effort: a failed publish is logged and never fails the request.
func publishEvent(ctx context.Context, pub EventPublisher, log *zap.Logger, key string, payload any) {
	if pub == nil {
		return
	}
	if err := pub.Publish(ctx, key, payload); err != nil {
		log.Warn("failed to publish event", zap.String("event", key), zap.Error(err))
		return
	}
	log.Debug("published event", zap.String("event", key))
}

type ownedEvent struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`
}

type userEvent struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}
