package dto

import "team-formation/internal/domain/collaboration"

// CollaborationResponse leaves a metric null when the stored value could not
// be parsed.
type CollaborationResponse struct {
	A             string   `json:"a"`
	B             string   `json:"b"`
	Count         *int     `json:"count"`
	SuccessRate   *float64 `json:"success_rate"`
	Compatibility *float64 `json:"compatibility"`
}

func NewCollaborationResponse(c collaboration.Collaboration) CollaborationResponse {
	return CollaborationResponse{
		A:             c.Pair.A,
		B:             c.Pair.B,
		Count:         c.Count,
		SuccessRate:   c.SuccessRate,
		Compatibility: c.Compatibility,
	}
}

func NewCollaborationList(items []collaboration.Collaboration) []CollaborationResponse {
	out := make([]CollaborationResponse, 0, len(items))
	for _, c := range items {
		out = append(out, NewCollaborationResponse(c))
	}
	return out
}
