package employee

import "team-formation/internal/domain/skill"

type Employee struct {
	ID           string
	Name         string
	Age          int
	Skills       []string
	Available    bool
	PastProjects []string

	// HasPastProjects is false when the stored row omitted the trailing
	// past-projects field; writes keep it omitted.
	HasPastProjects bool
	Extra           []string

	// RawAge keeps a stored age that is not a number. Age is 0 then.
	RawAge string
}

func (e Employee) SkillSet() skill.Set {
	return skill.NewSet(e.Skills...)
}

// AddSkill appends name unless it is already present. It reports whether the
// skill list changed.
func (e *Employee) AddSkill(name string) bool {
	if e == nil || name == "" {
		return false
	}
	for _, s := range e.Skills {
		if s == name {
			return false
		}
	}
	e.Skills = append(e.Skills, name)
	return true
}
