package services

import "athletrack/internal/access"

// authorize records the decision, if a recorder is set, and returns the denial error.
func authorize(rec access.Recorder, resource access.Resource, action access.Action, d access.Decision) error {
	if rec != nil {
		rec.RecordDecision(resource, action, d)
	}
	return d.Error()
}
