// Package access decides whether an authenticated principal may act on a user,
// workout or goal record.
//
// Workouts and goals are always looked up by id and owner together. A row owned by
// someone else is therefore indistinguishable from a row that does not exist, and
// both are denied with a NotFound error.
package access

import (
	"athletrack/internal/apperr"
	"athletrack/internal/models"
)

// Principal is the identity attached to a request after token verification.
type Principal struct {
	ID       string
	Username string
	Role     models.Role
}

func (p Principal) Authenticated() bool { return p.ID != "" }

func (p Principal) IsCoach() bool { return p.Role == models.RoleCoach }

// Action is an operation requested on a resource.
type Action string

const (
	ReadOne Action = "read-one"
	ReadAll Action = "read-all"
	Create  Action = "create"
	Update  Action = "update"
	Delete  Action = "delete"
)

// Resource names a record type guarded by this package.
type Resource string

const (
	ResourceUser    Resource = "user"
	ResourceWorkout Resource = "workout"
	ResourceGoal    Resource = "goal"
)

// Decision is the outcome of an authorization check. Err is nil when Allowed.
type Decision struct {
	Allowed bool
	Err     *apperr.Error
}

func allow() Decision { return Decision{Allowed: true} }

func deny(err *apperr.Error) Decision { return Decision{Err: err} }

// Error returns the denial reason as an error, or nil when the action is allowed.
func (d Decision) Error() error {
	if d.Allowed || d.Err == nil {
		return nil
	}
	return d.Err
}

// Recorder observes decisions, e.g. for metrics.
type Recorder interface {
	RecordDecision(resource Resource, action Action, d Decision)
}

var errUnauthenticated = apperr.Authentication("Access denied. No token provided.")

// AuthorizeUserAction applies the user rules: listing, reading and deleting users is
// reserved to coaches; an update is allowed for coaches and for the user themself.
func AuthorizeUserAction(p Principal, action Action, targetUserID string) Decision {
	if !p.Authenticated() {
		return deny(errUnauthenticated)
	}
	switch action {
	case ReadAll, ReadOne, Delete:
		if p.IsCoach() {
			return allow()
		}
		return deny(apperr.Authorization("Access denied. Coaches only."))
	case Update:
		if p.IsCoach() || p.ID == targetUserID {
			return allow()
		}
		return deny(apperr.Authorization("Access denied. You can only update your own profile."))
	default:
		return deny(apperr.Authorization("Access denied."))
	}
}

// AuthorizeWorkoutAction applies the workout rules. ownerID is the owner of the row
// returned by the ownership-scoped lookup, or "" when that lookup matched nothing.
// It is ignored for ReadAll and Create.
func AuthorizeWorkoutAction(p Principal, action Action, ownerID string) Decision {
	return authorizeOwned(p, action, ownerID, "Workout not found")
}

// AuthorizeGoalAction applies the goal rules, which have the same shape as workouts.
func AuthorizeGoalAction(p Principal, action Action, ownerID string) Decision {
	return authorizeOwned(p, action, ownerID, "Goal not found")
}

func authorizeOwned(p Principal, action Action, ownerID, notFound string) Decision {
	if !p.Authenticated() {
		return deny(errUnauthenticated)
	}
	switch action {
	case ReadAll, Create:
		return allow()
	case ReadOne, Update, Delete:
		if ownerID != "" && ownerID == p.ID {
			return allow()
		}
		return deny(apperr.NotFound(notFound))
	default:
		return deny(apperr.Authorization("Access denied."))
	}
}

// Scope filters a listing query. An empty OwnerID means every row is visible.
type Scope struct {
	OwnerID string
	// WithOwner asks the store to attach the owner's id, username and role to each row.
	WithOwner bool
}

// All reports whether the scope spans every owner.
func (s Scope) All() bool { return s.OwnerID == "" }

// WorkoutScope returns the rows a principal may list: coaches see every workout with
// its owner attached, everyone else only their own.
func WorkoutScope(p Principal) Scope {
	if p.IsCoach() {
		return Scope{WithOwner: true}
	}
	return Scope{OwnerID: p.ID}
}

// GoalScope always restricts goals to the principal's own rows, regardless of role.
func GoalScope(p Principal) Scope {
	return Scope{OwnerID: p.ID}
}

// LookupOwner is the owner id to combine with a record id in an ownership-scoped lookup.
func LookupOwner(p Principal) string { return p.ID }

// OwnerForCreate is the owner forced onto every created workout or goal, whatever the
// request body says.
func OwnerForCreate(p Principal) string { return p.ID }
