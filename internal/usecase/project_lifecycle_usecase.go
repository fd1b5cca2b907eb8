package usecase

import (
	"context"
	"errors"

	"team-formation/internal/domain/project"
	"team-formation/internal/repository"

	"go.uber.org/zap"
)

type ProjectLifecycleUsecase interface {
	TransitionProjectStatus(ctx context.Context, projectID string, to project.Status) (project.Project, error)
}

type ProjectLifecycle struct {
	rt *Runtime
}

func NewProjectLifecycleUsecase(rt *Runtime) *ProjectLifecycle {
	return &ProjectLifecycle{rt: rt}
}

// TransitionProjectStatus applies one lifecycle step. Starting a project
// requires a committed team and reserves its members; completing releases
// them. The team is taken from the project's latest scoring record.
func (u *ProjectLifecycle) TransitionProjectStatus(ctx context.Context, projectID string, to project.Status) (project.Project, error) {
	u.rt.mu.Lock()
	defer u.rt.mu.Unlock()

	p, err := u.rt.findProject(ctx, projectID)
	if err != nil {
		return project.Project{}, err
	}
	tr, err := project.Plan(p.Status, to)
	if err != nil {
		return project.Project{}, validationf("project %s: %v", p.ID, err)
	}

	var members []string
	latest, err := u.rt.repos.Assignments.LatestForProject(ctx, p.ID)
	switch {
	case err == nil:
		members = latest.Members
	case errors.Is(err, repository.ErrRecordNotFound):
		if tr.RequiresTeam {
			return project.Project{}, validationf("project %s has no committed team", p.ID)
		}
	default:
		return project.Project{}, storeErr(err)
	}

	if tr.Members == project.MemberEffectRelease {
		if members, err = u.existingMembers(ctx, members); err != nil {
			return project.Project{}, err
		}
	}

	err = repository.WithRollback(ctx, u.rt.repos.Store, []repository.Collection{
		repository.CollectionEmployees,
		repository.CollectionProjects,
	}, func() error {
		return u.rt.applyTransition(ctx, p, tr, members)
	})
	if err != nil {
		u.rt.log.Error("status transition failed",
			zap.String("project_id", p.ID),
			zap.String("from", tr.From.String()),
			zap.String("to", tr.To.String()),
			zap.Error(err),
		)
		return project.Project{}, storeErr(err)
	}

	u.rt.invalidateRecommendations(ctx)
	u.rt.events.Publish(ctx, Event{
		Type:      EventProjectStatusChanged,
		ProjectID: p.ID,
		Status:    tr.To.String(),
		Team:      members,
	})
	u.rt.log.Info("project status changed",
		zap.String("project_id", p.ID),
		zap.String("from", tr.From.String()),
		zap.String("to", tr.To.String()),
	)

	p.Status = tr.To
	return p, nil
}

// existingMembers drops ids whose employee record no longer exists, so a
// deleted employee cannot block a project from completing.
func (u *ProjectLifecycle) existingMembers(ctx context.Context, ids []string) ([]string, error) {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		_, err := u.rt.repos.Employees.FindByID(ctx, id)
		switch {
		case err == nil, errors.Is(err, repository.ErrMalformedRecord):
			out = append(out, id)
		case errors.Is(err, repository.ErrRecordNotFound):
			u.rt.log.Warn("skipping release of unknown employee", zap.String("employee_id", id))
		default:
			return nil, storeErr(err)
		}
	}
	return out, nil
}
