package seeder

import (
	"context"

	"team-formation/internal/usecase"
)

type EmployeesSeeder struct{ Items []EmployeeFixture }

func (EmployeesSeeder) Name() string { return "employees" }

func (s EmployeesSeeder) Run(ctx context.Context, uc usecase.RecordsUsecase) (int, error) {
	existing, err := uc.ListEmployees(ctx)
	if err != nil {
		return 0, err
	}
	have := make(map[string]struct{}, len(existing))
	for _, e := range existing {
		have[e.ID] = struct{}{}
	}

	n := 0
	for _, it := range s.Items {
		if _, ok := have[it.ID]; ok {
			continue
		}
		available := true
		if it.Available != nil {
			available = *it.Available
		}
		if _, err := uc.CreateEmployee(ctx, usecase.EmployeeInput{
			ID:           it.ID,
			Name:         it.Name,
			Age:          it.Age,
			Skills:       it.Skills,
			Available:    available,
			PastProjects: it.PastProjects,
		}); err != nil {
			return n, err
		}
		have[it.ID] = struct{}{}
		n++
	}
	return n, nil
}

type SkillsSeeder struct{ Items []SkillFixture }

func (SkillsSeeder) Name() string { return "skills" }

func (s SkillsSeeder) Run(ctx context.Context, uc usecase.RecordsUsecase) (int, error) {
	existing, err := uc.ListSkills(ctx)
	if err != nil {
		return 0, err
	}
	have := make(map[string]struct{}, len(existing))
	for _, sk := range existing {
		have[sk.ID] = struct{}{}
	}

	n := 0
	for _, it := range s.Items {
		if _, ok := have[it.ID]; ok {
			continue
		}
		if _, err := uc.CreateSkill(ctx, usecase.SkillInput{
			ID:         it.ID,
			Name:       it.Name,
			Category:   it.Category,
			Level:      it.Level,
			EmployeeID: it.EmployeeID,
		}); err != nil {
			return n, err
		}
		have[it.ID] = struct{}{}
		n++
	}
	return n, nil
}

type ProjectsSeeder struct{ Items []ProjectFixture }

func (ProjectsSeeder) Name() string { return "projects" }

func (s ProjectsSeeder) Run(ctx context.Context, uc usecase.RecordsUsecase) (int, error) {
	existing, err := uc.ListProjects(ctx)
	if err != nil {
		return 0, err
	}
	have := make(map[string]struct{}, len(existing))
	for _, p := range existing {
		have[p.ID] = struct{}{}
	}

	n := 0
	for _, it := range s.Items {
		if _, ok := have[it.ID]; ok {
			continue
		}
		if _, err := uc.CreateProject(ctx, usecase.ProjectInput{
			ID:             it.ID,
			RequiredSkills: it.RequiredSkills,
			TeamSize:       it.TeamSize,
			Description:    it.Description,
			Status:         it.Status,
		}); err != nil {
			return n, err
		}
		have[it.ID] = struct{}{}
		n++
	}
	return n, nil
}

// CollaborationsSeeder skips a pair already recorded in either order.
type CollaborationsSeeder struct{ Items []CollaborationFixture }

func (CollaborationsSeeder) Name() string { return "collaborations" }

func (s CollaborationsSeeder) Run(ctx context.Context, uc usecase.RecordsUsecase) (int, error) {
	existing, err := uc.ListCollaborations(ctx)
	if err != nil {
		return 0, err
	}

	n := 0
	for _, it := range s.Items {
		a, b := it.Pair[0], it.Pair[1]
		dup := false
		for _, c := range existing {
			if c.Pair.Matches(a, b) {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		created, err := uc.CreateCollaboration(ctx, usecase.CollaborationInput{
			A:             a,
			B:             b,
			Count:         it.Count,
			SuccessRate:   it.SuccessRate,
			Compatibility: it.Compatibility,
		})
		if err != nil {
			return n, err
		}
		existing = append(existing, created)
		n++
	}
	return n, nil
}
