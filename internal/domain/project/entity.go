package project

import (
	"strings"

	"team-formation/internal/domain/skill"
)

type Project struct {
	ID             string
	RequiredSkills []string
	TeamSize       int
	Description    string
	Status         Status

	Extra []string
}

func (p Project) RequiredSet() skill.Set {
	return skill.NewSet(p.RequiredSkills...)
}

type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusOnGoing    Status = "on_going"
	StatusCompleted  Status = "completed"
)

func ParseStatus(raw string) (Status, bool) {
	switch s := Status(strings.TrimSpace(raw)); s {
	case StatusNotStarted, StatusOnGoing, StatusCompleted:
		return s, true
	default:
		return "", false
	}
}

func (s Status) String() string {
	return string(s)
}
