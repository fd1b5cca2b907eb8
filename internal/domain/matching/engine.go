package matching

import (
	"math"

	"team-formation/internal/domain/collaboration"
	"team-formation/internal/domain/employee"
	"team-formation/internal/domain/skill"
)

const (
	skillMatchMax     = 10.0
	availabilityBonus = 10.0

	memberSkillWeight        = 0.9
	memberAvailabilityWeight = 0.1

	pairSuccessWeight       = 0.5
	pairCompatibilityWeight = 0.3
	pairBonusWeight         = 0.2

	collabBonusPerCount = 0.2
)

// Policy pins down the behaviours the legacy scorer left implicit.
type Policy struct {
	// EmptyRequirementScore is the skill match of any employee against a
	// project with no required skills.
	EmptyRequirementScore float64
	// SumDuplicatePairs makes the collaboration bonus sum the counts of every
	// record for a pair. When false only the first record counts.
	SumDuplicatePairs bool
	// DefaultPairRate is used for success rate and compatibility when no
	// record exists for a pair, or its value could not be parsed.
	DefaultPairRate float64
}

func DefaultPolicy() Policy {
	return Policy{
		EmptyRequirementScore: 0,
		SumDuplicatePairs:     true,
		DefaultPairRate:       0.5,
	}
}

type Engine struct {
	policy Policy
}

func NewEngine(p Policy) *Engine {
	p.EmptyRequirementScore = clampFloat(p.EmptyRequirementScore, 0, skillMatchMax)
	return &Engine{policy: p}
}

// SkillMatch is |employee ∩ required| / |required| scaled to [0,10].
func (e *Engine) SkillMatch(emp employee.Employee, required skill.Set) float64 {
	if required.Len() == 0 {
		return e.policy.EmptyRequirementScore
	}
	n := emp.SkillSet().IntersectCount(required)
	return float64(n) / float64(required.Len()) * skillMatchMax
}

func AvailabilityBonus(emp employee.Employee) float64 {
	if emp.Available {
		return availabilityBonus
	}
	return 0
}

func (e *Engine) MemberScore(emp employee.Employee, required skill.Set) float64 {
	return memberSkillWeight*e.SkillMatch(emp, required) + memberAvailabilityWeight*AvailabilityBonus(emp)
}

// SuccessRate and Compatibility use the first record matching the pair.
func (e *Engine) SuccessRate(a, b string, records []collaboration.Collaboration) float64 {
	for _, r := range records {
		if !r.Pair.Matches(a, b) {
			continue
		}
		if r.SuccessRate == nil {
			return e.policy.DefaultPairRate
		}
		return *r.SuccessRate
	}
	return e.policy.DefaultPairRate
}

func (e *Engine) Compatibility(a, b string, records []collaboration.Collaboration) float64 {
	for _, r := range records {
		if !r.Pair.Matches(a, b) {
			continue
		}
		if r.Compatibility == nil {
			return e.policy.DefaultPairRate
		}
		return *r.Compatibility
	}
	return e.policy.DefaultPairRate
}

// CollabBonus is min(1, sum(count) * 0.2) over the matching records.
func (e *Engine) CollabBonus(a, b string, records []collaboration.Collaboration) float64 {
	total := 0
	for _, r := range records {
		if !r.Pair.Matches(a, b) {
			continue
		}
		if r.Count != nil && *r.Count > 0 {
			total += *r.Count
		}
		if !e.policy.SumDuplicatePairs {
			break
		}
	}
	return math.Min(1, float64(total)*collabBonusPerCount)
}

func (e *Engine) Pair(a, b string, records []collaboration.Collaboration) PairDetail {
	sr := e.SuccessRate(a, b, records)
	comp := e.Compatibility(a, b, records)
	bonus := e.CollabBonus(a, b, records)
	return PairDetail{
		A:             a,
		B:             b,
		SuccessRate:   sr,
		Compatibility: comp,
		CollabBonus:   bonus,
		Score:         pairSuccessWeight*sr + pairCompatibilityWeight*comp + pairBonusWeight*bonus,
	}
}

// Score evaluates a whole team. Pairs are enumerated i<j in team order and
// the clique score is their mean, or 0 when the team has fewer than two
// members.
func (e *Engine) Score(team []employee.Employee, required skill.Set, records []collaboration.Collaboration) TeamScore {
	out := TeamScore{
		PerMember: make(map[string]float64, len(team)),
		PerPair:   map[string]PairDetail{},
	}
	for _, m := range team {
		out.PerMember[m.ID] = e.MemberScore(m, required)
	}

	sum := 0.0
	for i := 0; i < len(team); i++ {
		for j := i + 1; j < len(team); j++ {
			d := e.Pair(team[i].ID, team[j].ID, records)
			out.Pairs = append(out.Pairs, d)
			out.PerPair[PairKey(d.A, d.B)] = d
			sum += d.Score
		}
	}
	if len(out.Pairs) > 0 {
		out.CliqueScore = sum / float64(len(out.Pairs))
	}
	return out
}

func clampFloat(v, minV, maxV float64) float64 {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}
