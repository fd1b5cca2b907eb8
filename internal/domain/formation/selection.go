package formation

import (
	"sort"

	"team-formation/internal/domain/employee"
	"team-formation/internal/domain/graph"
	"team-formation/internal/domain/skill"
)

// StartVertex picks the available employee sharing the most skills with
// required. Ties keep the earliest employee. An employee with no matching
// skill is never chosen.
func StartVertex(employees []employee.Employee, required skill.Set) (employee.Employee, bool) {
	best := -1
	bestMatches := 0
	for i, e := range employees {
		if !e.Available {
			continue
		}
		if n := e.SkillSet().IntersectCount(required); n > bestMatches {
			best, bestMatches = i, n
		}
	}
	if best < 0 {
		return employee.Employee{}, false
	}
	return employees[best], true
}

// Rank orders employees by matching skill count, highest first. The sort is
// stable so equal matches keep store order.
func Rank(employees []employee.Employee, required skill.Set) []employee.Employee {
	type ranked struct {
		emp     employee.Employee
		matches int
	}
	rs := make([]ranked, len(employees))
	for i, e := range employees {
		rs[i] = ranked{emp: e, matches: e.SkillSet().IntersectCount(required)}
	}
	sort.SliceStable(rs, func(i, j int) bool { return rs[i].matches > rs[j].matches })

	out := make([]employee.Employee, len(rs))
	for i, r := range rs {
		out[i] = r.emp
	}
	return out
}

// Assemble walks ranked in order and keeps reachable, available employees
// with at least one matching skill, stopping at size members.
func Assemble(ranked []employee.Employee, reachable map[string]struct{}, required skill.Set, size int) []employee.Employee {
	team := make([]employee.Employee, 0, max(size, 0))
	for _, e := range ranked {
		if len(team) >= size {
			break
		}
		if _, ok := reachable[e.ID]; !ok {
			continue
		}
		if !e.Available || e.SkillSet().IntersectCount(required) == 0 {
			continue
		}
		team = append(team, e)
	}
	return team
}

// Recommend runs the full candidate selection for one project. An empty
// result means no available employee matches any required skill. The result
// may be shorter than size; callers decide whether that is acceptable.
func Recommend(g *graph.Graph, algorithm graph.Algorithm, employees []employee.Employee, required skill.Set, size int) []employee.Employee {
	start, ok := StartVertex(employees, required)
	if !ok || size <= 0 {
		return []employee.Employee{}
	}
	reachable := g.Reachable(algorithm, start.ID)
	return Assemble(Rank(employees, required), reachable, required, size)
}

func IDs(team []employee.Employee) []string {
	out := make([]string, len(team))
	for i, e := range team {
		out[i] = e.ID
	}
	return out
}
