package matching

import "team-formation/internal/domain/collaboration"

type PairDetail struct {
	A             string  `json:"a"`
	B             string  `json:"b"`
	SuccessRate   float64 `json:"success_rate"`
	Compatibility float64 `json:"compatibility"`
	CollabBonus   float64 `json:"collab_bonus"`
	Score         float64 `json:"score"`
}

type TeamScore struct {
	PerMember   map[string]float64    `json:"per_member"`
	PerPair     map[string]PairDetail `json:"per_pair"`
	Pairs       []PairDetail          `json:"pairs"`
	CliqueScore float64               `json:"clique_score"`
}

// PairKey is the key used in TeamScore.PerPair for the pair a, b. It uses
// the stored collaboration form "a,b"; employee ids never contain a comma.
func PairKey(a, b string) string {
	return collaboration.Pair{A: a, B: b}.String()
}
