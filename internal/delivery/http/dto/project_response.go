package dto

import "team-formation/internal/domain/project"

type ProjectResponse struct {
	ID             string   `json:"id"`
	RequiredSkills []string `json:"required_skills"`
	TeamSize       int      `json:"team_size"`
	Description    string   `json:"description"`
	Status         string   `json:"status"`
}

func NewProjectResponse(p project.Project) ProjectResponse {
	return ProjectResponse{
		ID:             p.ID,
		RequiredSkills: nonNil(p.RequiredSkills),
		TeamSize:       p.TeamSize,
		Description:    p.Description,
		Status:         string(p.Status),
	}
}

func NewProjectList(items []project.Project) []ProjectResponse {
	out := make([]ProjectResponse, 0, len(items))
	for _, p := range items {
		out = append(out, NewProjectResponse(p))
	}
	return out
}
