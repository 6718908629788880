package services_test

import (
	"sync"

	"athletrack/internal/access"
	"athletrack/internal/models"
)

var (
	coach    = access.Principal{ID: "coach-1", Username: "Coach Mike", Role: models.RoleCoach}
	athleteA = access.Principal{ID: "athlete-a", Username: "isaac", Role: models.RoleAthlete}
	athleteB = access.Principal{ID: "athlete-b", Username: "jordan", Role: models.RoleAthlete}
)

type decision struct {
	resource access.Resource
	action   access.Action
	allowed  bool
}

// decisionLog records every access decision taken by a service.
type decisionLog struct {
	mu        sync.Mutex
	decisions []decision
}

func (l *decisionLog) RecordDecision(resource access.Resource, action access.Action, d access.Decision) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.decisions = append(l.decisions, decision{resource, action, d.Allowed})
}

func (l *decisionLog) last() decision {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.decisions[len(l.decisions)-1]
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }
