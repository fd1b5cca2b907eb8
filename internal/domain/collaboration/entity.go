package collaboration

import "strings"

// Pair is an unordered pair of employee ids, stored as "a,b".
type Pair struct {
	A string
	B string
}

// ParsePair parses "a,b". Both ids must be non-empty.
func ParsePair(raw string) (Pair, bool) {
	parts := strings.Split(raw, ",")
	if len(parts) != 2 {
		return Pair{}, false
	}
	a := strings.TrimSpace(parts[0])
	b := strings.TrimSpace(parts[1])
	if a == "" || b == "" {
		return Pair{}, false
	}
	return Pair{A: a, B: b}, true
}

func (p Pair) String() string {
	return p.A + "," + p.B
}

// Matches is order-insensitive.
func (p Pair) Matches(x, y string) bool {
	return (p.A == x && p.B == y) || (p.A == y && p.B == x)
}

// Collaboration records past work between two employees. Metric fields are
// nil when the stored value could not be parsed; scoring then falls back to
// its defaults for that field.
type Collaboration struct {
	Pair          Pair
	Count         *int
	SuccessRate   *float64
	Compatibility *float64

	Extra []string
}
