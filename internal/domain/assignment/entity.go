package assignment

import (
	"fmt"
	"strconv"
	"strings"
)

const idPrefix = "T"

// Assignment is a persisted scoring record: the committed team for a project
// together with its clique score. Assignments are append-only.
type Assignment struct {
	ID          string
	Members     []string
	ProjectID   string
	CliqueScore float64

	Extra []string
}

// NextID returns the id following the highest numbered id in existing.
// Ids that do not carry a numeric suffix are ignored, so a deleted or rolled
// back record never causes an id to be handed out twice.
func NextID(existing []string) string {
	max := 0
	for _, id := range existing {
		n, ok := sequence(id)
		if ok && n > max {
			max = n
		}
	}
	return fmt.Sprintf("%s%02d", idPrefix, max+1)
}

func sequence(id string) (int, bool) {
	id = strings.TrimSpace(id)
	if !strings.HasPrefix(id, idPrefix) {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimPrefix(id, idPrefix))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func FormatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
