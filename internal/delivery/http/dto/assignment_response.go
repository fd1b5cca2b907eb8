package dto

import "team-formation/internal/domain/assignment"

type AssignmentResponse struct {
	ID          string   `json:"id"`
	Members     []string `json:"members"`
	ProjectID   string   `json:"project_id"`
	CliqueScore float64  `json:"clique_score"`
}

func NewAssignmentResponse(a assignment.Assignment) AssignmentResponse {
	return AssignmentResponse{ID: a.ID, Members: nonNil(a.Members), ProjectID: a.ProjectID, CliqueScore: a.CliqueScore}
}

func NewAssignmentList(items []assignment.Assignment) []AssignmentResponse {
	out := make([]AssignmentResponse, 0, len(items))
	for _, a := range items {
		out = append(out, NewAssignmentResponse(a))
	}
	return out
}
