package dto

import "team-formation/internal/domain/skill"

type SkillResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Category   string `json:"category"`
	Level      string `json:"level"`
	EmployeeID string `json:"employee_id"`
}

func NewSkillResponse(s skill.Skill) SkillResponse {
	return SkillResponse{ID: s.ID, Name: s.Name, Category: s.Category, Level: s.Level, EmployeeID: s.EmployeeID}
}

func NewSkillList(items []skill.Skill) []SkillResponse {
	out := make([]SkillResponse, 0, len(items))
	for _, s := range items {
		out = append(out, NewSkillResponse(s))
	}
	return out
}
