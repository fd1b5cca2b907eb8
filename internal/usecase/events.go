package usecase

import "context"

const (
	EventTeamCommitted        = "team_committed"
	EventProjectStatusChanged = "project_status_changed"
)

type Event struct {
	Type         string   `json:"type"`
	ProjectID    string   `json:"project_id"`
	Status       string   `json:"status,omitempty"`
	Team         []string `json:"team,omitempty"`
	AssignmentID string   `json:"assignment_id,omitempty"`
	CliqueScore  *float64 `json:"clique_score,omitempty"`
}

// EventPublisher receives events after a state change has been persisted.
type EventPublisher interface {
	Publish(ctx context.Context, ev Event)
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, Event) {}
