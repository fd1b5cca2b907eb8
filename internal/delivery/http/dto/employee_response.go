package dto

import "team-formation/internal/domain/employee"

type EmployeeResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Age          int      `json:"age"`
	Skills       []string `json:"skills"`
	Available    bool     `json:"available"`
	PastProjects []string `json:"past_projects"`
}

func NewEmployeeResponse(e employee.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:           e.ID,
		Name:         e.Name,
		Age:          e.Age,
		Skills:       nonNil(e.Skills),
		Available:    e.Available,
		PastProjects: nonNil(e.PastProjects),
	}
}

func NewEmployeeList(items []employee.Employee) []EmployeeResponse {
	out := make([]EmployeeResponse, 0, len(items))
	for _, e := range items {
		out = append(out, NewEmployeeResponse(e))
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
