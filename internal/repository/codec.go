package repository

import (
	"strconv"
	"strings"

	"team-formation/internal/domain/assignment"
	"team-formation/internal/domain/collaboration"
	"team-formation/internal/domain/employee"
	"team-formation/internal/domain/project"
	"team-formation/internal/domain/skill"
)

const (
	employeeFields      = 5
	skillFields         = 5
	projectFields       = 5
	collaborationFields = 4
	assignmentFields    = 4
)

func malformed(c Collection, reason string) error {
	return &MalformedError{Collection: c, Index: -1, Reason: reason}
}

func tail(r Record, from int) []string {
	if len(r) <= from {
		return nil
	}
	return append([]string(nil), r[from:]...)
}

func decodeEmployee(r Record) (employee.Employee, error) {
	if len(r) < employeeFields {
		return employee.Employee{}, malformed(CollectionEmployees, "too few fields")
	}
	id := r.Key()
	if id == "" {
		return employee.Employee{}, malformed(CollectionEmployees, "empty id")
	}
	e := employee.Employee{
		ID:        id,
		Name:      r[1],
		Skills:    skill.SplitList(r[3]),
		Available: parseAvailable(r[4]),
	}
	if age, err := strconv.Atoi(strings.TrimSpace(r[2])); err == nil {
		e.Age = age
	} else {
		e.RawAge = r[2]
	}
	if len(r) > employeeFields {
		e.HasPastProjects = true
		e.PastProjects = skill.SplitList(r[5])
		e.Extra = tail(r, employeeFields+1)
	}
	return e, nil
}

func encodeEmployee(e employee.Employee) Record {
	age := strconv.Itoa(e.Age)
	if e.RawAge != "" {
		age = e.RawAge
	}
	r := Record{e.ID, e.Name, age, skill.JoinList(e.Skills), strconv.FormatBool(e.Available)}
	if e.HasPastProjects || len(e.Extra) > 0 {
		r = append(r, skill.JoinList(e.PastProjects))
		r = append(r, e.Extra...)
	}
	return r
}

func parseAvailable(raw string) bool {
	return strings.EqualFold(strings.TrimSpace(raw), "true")
}

func decodeSkill(r Record) (skill.Skill, error) {
	if len(r) < skillFields {
		return skill.Skill{}, malformed(CollectionSkills, "too few fields")
	}
	if r.Key() == "" || strings.TrimSpace(r[1]) == "" {
		return skill.Skill{}, malformed(CollectionSkills, "empty id or name")
	}
	return skill.Skill{
		ID:         r.Key(),
		Name:       strings.TrimSpace(r[1]),
		Category:   r[2],
		Level:      r[3],
		EmployeeID: strings.TrimSpace(r[4]),
		Extra:      tail(r, skillFields),
	}, nil
}

func encodeSkill(s skill.Skill) Record {
	r := Record{s.ID, s.Name, s.Category, s.Level, s.EmployeeID}
	return append(r, s.Extra...)
}

func decodeProject(r Record) (project.Project, error) {
	if len(r) < projectFields {
		return project.Project{}, malformed(CollectionProjects, "too few fields")
	}
	if r.Key() == "" {
		return project.Project{}, malformed(CollectionProjects, "empty id")
	}
	size, err := strconv.Atoi(strings.TrimSpace(r[2]))
	if err != nil || size <= 0 {
		return project.Project{}, malformed(CollectionProjects, "team size is not a positive number")
	}
	status, ok := project.ParseStatus(r[4])
	if !ok {
		return project.Project{}, malformed(CollectionProjects, "unknown status "+strconv.Quote(r[4]))
	}
	return project.Project{
		ID:             r.Key(),
		RequiredSkills: skill.SplitList(r[1]),
		TeamSize:       size,
		Description:    r[3],
		Status:         status,
		Extra:          tail(r, projectFields),
	}, nil
}

func encodeProject(p project.Project) Record {
	r := Record{p.ID, skill.JoinList(p.RequiredSkills), strconv.Itoa(p.TeamSize), p.Description, p.Status.String()}
	return append(r, p.Extra...)
}

// decodeCollaboration only requires a well formed pair. Metrics that are
// missing or unparseable decode as nil and score with defaults.
func decodeCollaboration(r Record) (collaboration.Collaboration, error) {
	pair, ok := collaboration.ParsePair(r.Key())
	if !ok {
		return collaboration.Collaboration{}, malformed(CollectionCollaborations, "pair must be two ids separated by a comma")
	}
	c := collaboration.Collaboration{Pair: pair, Extra: tail(r, collaborationFields)}
	if len(r) > 1 {
		if n, err := strconv.Atoi(strings.TrimSpace(r[1])); err == nil {
			c.Count = &n
		}
	}
	if len(r) > 2 {
		c.SuccessRate = parseFloatPtr(r[2])
	}
	if len(r) > 3 {
		c.Compatibility = parseFloatPtr(r[3])
	}
	return c, nil
}

func parseFloatPtr(raw string) *float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return nil
	}
	return &v
}

func encodeCollaboration(c collaboration.Collaboration) Record {
	r := Record{c.Pair.String(), "", "", ""}
	if c.Count != nil {
		r[1] = strconv.Itoa(*c.Count)
	}
	if c.SuccessRate != nil {
		r[2] = strconv.FormatFloat(*c.SuccessRate, 'f', -1, 64)
	}
	if c.Compatibility != nil {
		r[3] = strconv.FormatFloat(*c.Compatibility, 'f', -1, 64)
	}
	return append(r, c.Extra...)
}

func decodeAssignment(r Record) (assignment.Assignment, error) {
	if len(r) < assignmentFields {
		return assignment.Assignment{}, malformed(CollectionAssignments, "too few fields")
	}
	if r.Key() == "" || strings.TrimSpace(r[2]) == "" {
		return assignment.Assignment{}, malformed(CollectionAssignments, "empty id or project id")
	}
	score, err := strconv.ParseFloat(strings.TrimSpace(r[3]), 64)
	if err != nil {
		return assignment.Assignment{}, malformed(CollectionAssignments, "clique score is not a number")
	}
	return assignment.Assignment{
		ID:          r.Key(),
		Members:     skill.SplitList(r[1]),
		ProjectID:   strings.TrimSpace(r[2]),
		CliqueScore: score,
		Extra:       tail(r, assignmentFields),
	}, nil
}

func encodeAssignment(a assignment.Assignment) Record {
	r := Record{a.ID, skill.JoinList(a.Members), a.ProjectID, assignment.FormatScore(a.CliqueScore)}
	return append(r, a.Extra...)
}
