package skill

import (
	"sort"
	"strings"
)

// Skill is one row of the skills collection. Adding a skill always upserts
// Name into the owning employee's skill set.
type Skill struct {
	ID         string
	Name       string
	Category   string
	Level      string
	EmployeeID string

	// Extra holds trailing fields beyond the known arity so they survive a rewrite.
	Extra []string
}

// Set is a set of skill names. Order is irrelevant.
type Set map[string]struct{}

// ParseSet splits a comma-joined skill list. Names are trimmed and empty
// entries dropped, so "" yields an empty set.
func ParseSet(csv string) Set {
	return NewSet(SplitList(csv)...)
}

func NewSet(names ...string) Set {
	s := make(Set, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		s[n] = struct{}{}
	}
	return s
}

func (s Set) Has(name string) bool {
	_, ok := s[name]
	return ok
}

func (s Set) Len() int {
	return len(s)
}

// IntersectCount returns |s ∩ other|.
func (s Set) IntersectCount(other Set) int {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}
	n := 0
	for k := range small {
		if _, ok := large[k]; ok {
			n++
		}
	}
	return n
}

func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// SplitList splits a comma-joined list keeping order, trimming entries and
// dropping empty ones.
func SplitList(csv string) []string {
	if strings.TrimSpace(csv) == "" {
		return nil
	}
	parts := strings.Split(csv, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

func JoinList(items []string) string {
	return strings.Join(items, ",")
}
