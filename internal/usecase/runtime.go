package usecase

import (
	"context"
	"sync"
	"time"

	"team-formation/internal/domain/collaboration"
	"team-formation/internal/domain/graph"
	"team-formation/internal/domain/matching"
	"team-formation/internal/domain/project"
	"team-formation/internal/repository"

	"go.uber.org/zap"
)

type Deps struct {
	Repos    repository.Repositories
	Cache    RecommendationCache
	Events   EventPublisher
	Policy   matching.Policy
	CacheTTL time.Duration
	Logger   *zap.Logger
}

// Runtime is the state shared by the usecases: the record repositories, the
// collaboration graph derived from them and the scoring engine. Every
// operation holds mu for its whole duration, so engine operations never
// interleave even when callers are concurrent.
type Runtime struct {
	mu sync.Mutex

	repos    repository.Repositories
	graph    *graph.Graph
	scorer   *matching.Engine
	cache    RecommendationCache
	events   EventPublisher
	cacheTTL time.Duration
	log      *zap.Logger
	now      func() time.Time
}

func NewRuntime(d Deps) *Runtime {
	rt := &Runtime{
		repos:    d.Repos,
		graph:    graph.New(),
		scorer:   matching.NewEngine(d.Policy),
		cache:    d.Cache,
		events:   d.Events,
		cacheTTL: d.CacheTTL,
		log:      d.Logger,
		now:      time.Now,
	}
	if rt.cache == nil {
		rt.cache = noopCache{}
	}
	if rt.events == nil {
		rt.events = noopPublisher{}
	}
	if rt.log == nil {
		rt.log = zap.NewNop()
	}
	return rt
}

// collaborations loads the collaboration records and rebuilds the graph if
// it is empty.
func (rt *Runtime) collaborations(ctx context.Context) ([]collaboration.Collaboration, error) {
	collabs, err := rt.repos.Collaborations.FindAll(ctx)
	if err != nil {
		return nil, storeErr(err)
	}
	if rt.graph.Empty() {
		rt.graph.Rebuild(collabs)
		rt.log.Debug("collaboration graph rebuilt", zap.Int("vertices", rt.graph.Len()), zap.Int("records", len(collabs)))
	}
	return collabs, nil
}

func (rt *Runtime) invalidateGraph() {
	rt.graph.Invalidate()
}

func (rt *Runtime) invalidateRecommendations(ctx context.Context) {
	if err := rt.cache.DeleteByPattern(ctx, recommendationKeyPrefix+"*"); err != nil {
		rt.log.Warn("recommendation cache invalidation failed", zap.Error(err))
	}
}

func (rt *Runtime) findProject(ctx context.Context, id string) (project.Project, error) {
	if id == "" {
		return project.Project{}, validationf("project id is required")
	}
	p, err := rt.repos.Projects.FindByID(ctx, id)
	if err != nil {
		return project.Project{}, storeErr(err)
	}
	return p, nil
}

// applyTransition writes the member availability change and then the new
// status. Callers run it inside a rollback boundary.
func (rt *Runtime) applyTransition(ctx context.Context, p project.Project, tr project.Transition, members []string) error {
	switch tr.Members {
	case project.MemberEffectReserve:
		if err := rt.repos.Employees.SetAvailability(ctx, members, false); err != nil {
			return err
		}
	case project.MemberEffectRelease:
		if err := rt.repos.Employees.SetAvailability(ctx, members, true); err != nil {
			return err
		}
	}
	return rt.repos.Projects.SetStatus(ctx, p.ID, tr.To)
}
