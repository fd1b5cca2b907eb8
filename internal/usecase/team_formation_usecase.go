package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"team-formation/internal/domain/assignment"
	"team-formation/internal/domain/employee"
	"team-formation/internal/domain/formation"
	"team-formation/internal/domain/graph"
	"team-formation/internal/domain/matching"
	"team-formation/internal/domain/project"
	"team-formation/internal/repository"

	"go.uber.org/zap"
)

type TeamMember struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Skills         []string `json:"skills"`
	Available      bool     `json:"available"`
	PastProjects   []string `json:"past_projects"`
	MatchingSkills int      `json:"matching_skills"`
}

type Recommendation struct {
	ProjectID    string             `json:"project_id"`
	Algorithm    graph.Algorithm    `json:"algorithm"`
	Team         []TeamMember       `json:"team"`
	RequiredSize int                `json:"required_size"`
	Complete     bool               `json:"complete"`
	Score        matching.TeamScore `json:"score"`
}

func (r Recommendation) MemberIDs() []string {
	out := make([]string, len(r.Team))
	for i, m := range r.Team {
		out[i] = m.ID
	}
	return out
}

type AlgorithmRun struct {
	Algorithm    graph.Algorithm `json:"algorithm"`
	Team         []string        `json:"team"`
	Size         int             `json:"size"`
	ElapsedNanos int64           `json:"elapsed_nanos"`
}

type Comparison struct {
	ProjectID string       `json:"project_id"`
	DFS       AlgorithmRun `json:"dfs"`
	BFS       AlgorithmRun `json:"bfs"`
	// Faster is "dfs", "bfs" or "tie".
	Faster string `json:"faster"`
}

type CommitTeamInput struct {
	ProjectID   string
	Team        []string
	PairScores  map[string]float64
	CliqueScore float64
}

type TeamFormationUsecase interface {
	RecommendTeam(ctx context.Context, projectID string, algorithm graph.Algorithm) (Recommendation, error)
	ScoreTeam(ctx context.Context, projectID string, team []string) (matching.TeamScore, error)
	CompareAlgorithms(ctx context.Context, projectID string) (Comparison, error)
	CommitTeam(ctx context.Context, in CommitTeamInput) (assignment.Assignment, error)
}

type TeamFormation struct {
	rt *Runtime
}

func NewTeamFormationUsecase(rt *Runtime) *TeamFormation {
	return &TeamFormation{rt: rt}
}

// RecommendTeam forms a team for the project. A result shorter than the
// project's team size is returned with Complete=false; an empty team means no
// available employee has any required skill.
func (u *TeamFormation) RecommendTeam(ctx context.Context, projectID string, algorithm graph.Algorithm) (Recommendation, error) {
	u.rt.mu.Lock()
	defer u.rt.mu.Unlock()

	if algorithm == "" {
		algorithm = graph.AlgorithmDFS
	}
	if _, err := graph.ParseAlgorithm(string(algorithm)); err != nil {
		return Recommendation{}, validationf("%v", err)
	}

	p, err := u.rt.findProject(ctx, projectID)
	if err != nil {
		return Recommendation{}, err
	}
	if err := project.CanRecommend(p.Status); err != nil {
		return Recommendation{}, validationf("project %s: %v", p.ID, err)
	}

	key := RecommendationCacheKey(algorithm, p.ID)
	var cached Recommendation
	if ok, err := u.rt.cache.GetJSON(ctx, key, &cached); err == nil && ok {
		return cached, nil
	}

	employees, err := u.rt.repos.Employees.FindAll(ctx)
	if err != nil {
		return Recommendation{}, storeErr(err)
	}
	collabs, err := u.rt.collaborations(ctx)
	if err != nil {
		return Recommendation{}, err
	}

	required := p.RequiredSet()
	team := formation.Recommend(u.rt.graph, algorithm, employees, required, p.TeamSize)

	rec := Recommendation{
		ProjectID:    p.ID,
		Algorithm:    algorithm,
		Team:         make([]TeamMember, 0, len(team)),
		RequiredSize: p.TeamSize,
		Complete:     len(team) == p.TeamSize,
		Score:        u.rt.scorer.Score(team, required, collabs),
	}
	for _, e := range team {
		rec.Team = append(rec.Team, TeamMember{
			ID:             e.ID,
			Name:           e.Name,
			Skills:         e.Skills,
			Available:      e.Available,
			PastProjects:   e.PastProjects,
			MatchingSkills: e.SkillSet().IntersectCount(required),
		})
	}

	if err := u.rt.cache.SetJSON(ctx, key, rec, u.rt.cacheTTL); err != nil {
		u.rt.log.Warn("recommendation cache write failed", zap.String("key", key), zap.Error(err))
	}

	u.rt.log.Info("team recommended",
		zap.String("project_id", p.ID),
		zap.String("algorithm", string(algorithm)),
		zap.Strings("team", rec.MemberIDs()),
		zap.Int("required", p.TeamSize),
	)
	return rec, nil
}

func (u *TeamFormation) ScoreTeam(ctx context.Context, projectID string, team []string) (matching.TeamScore, error) {
	u.rt.mu.Lock()
	defer u.rt.mu.Unlock()

	p, err := u.rt.findProject(ctx, projectID)
	if err != nil {
		return matching.TeamScore{}, err
	}
	members, err := u.resolveTeam(ctx, team)
	if err != nil {
		return matching.TeamScore{}, err
	}
	collabs, err := u.rt.collaborations(ctx)
	if err != nil {
		return matching.TeamScore{}, err
	}
	return u.rt.scorer.Score(members, p.RequiredSet(), collabs), nil
}

// CompareAlgorithms times a DFS and a BFS recommendation over the same
// snapshot. It never reads the cache and never writes.
func (u *TeamFormation) CompareAlgorithms(ctx context.Context, projectID string) (Comparison, error) {
	u.rt.mu.Lock()
	defer u.rt.mu.Unlock()

	p, err := u.rt.findProject(ctx, projectID)
	if err != nil {
		return Comparison{}, err
	}
	employees, err := u.rt.repos.Employees.FindAll(ctx)
	if err != nil {
		return Comparison{}, storeErr(err)
	}
	if _, err := u.rt.collaborations(ctx); err != nil {
		return Comparison{}, err
	}

	required := p.RequiredSet()
	run := func(algorithm graph.Algorithm) AlgorithmRun {
		start := u.rt.now()
		team := formation.Recommend(u.rt.graph, algorithm, employees, required, p.TeamSize)
		elapsed := u.rt.now().Sub(start)
		return AlgorithmRun{
			Algorithm:    algorithm,
			Team:         formation.IDs(team),
			Size:         len(team),
			ElapsedNanos: elapsed.Nanoseconds(),
		}
	}

	cmp := Comparison{
		ProjectID: p.ID,
		DFS:       run(graph.AlgorithmDFS),
		BFS:       run(graph.AlgorithmBFS),
	}
	switch {
	case cmp.DFS.ElapsedNanos < cmp.BFS.ElapsedNanos:
		cmp.Faster = string(graph.AlgorithmDFS)
	case cmp.BFS.ElapsedNanos < cmp.DFS.ElapsedNanos:
		cmp.Faster = string(graph.AlgorithmBFS)
	default:
		cmp.Faster = "tie"
	}
	return cmp, nil
}

// CommitTeam persists the team as a scoring record and moves the project to
// on_going, reserving its members. Every precondition is checked before the
// first write; if a write fails the touched collections are restored.
func (u *TeamFormation) CommitTeam(ctx context.Context, in CommitTeamInput) (assignment.Assignment, error) {
	u.rt.mu.Lock()
	defer u.rt.mu.Unlock()

	p, err := u.rt.findProject(ctx, in.ProjectID)
	if err != nil {
		return assignment.Assignment{}, err
	}
	tr, err := project.Plan(p.Status, project.StatusOnGoing)
	if err != nil {
		return assignment.Assignment{}, validationf("project %s: %v", p.ID, err)
	}
	if len(in.Team) != p.TeamSize {
		return assignment.Assignment{}, validationf("team has %d members, project %s requires %d", len(in.Team), p.ID, p.TeamSize)
	}
	members, err := u.resolveTeam(ctx, in.Team)
	if err != nil {
		return assignment.Assignment{}, err
	}
	for _, m := range members {
		if !m.Available {
			return assignment.Assignment{}, validationf("employee %s is not available", m.ID)
		}
	}
	if err := validatePairScores(in.Team, in.PairScores); err != nil {
		return assignment.Assignment{}, err
	}
	if math.IsNaN(in.CliqueScore) || math.IsInf(in.CliqueScore, 0) {
		return assignment.Assignment{}, validationf("clique score must be a finite number")
	}

	var saved assignment.Assignment
	err = repository.WithRollback(ctx, u.rt.repos.Store, []repository.Collection{
		repository.CollectionAssignments,
		repository.CollectionEmployees,
		repository.CollectionProjects,
	}, func() error {
		a, err := u.rt.repos.Assignments.Append(ctx, assignment.Assignment{
			Members:     in.Team,
			ProjectID:   p.ID,
			CliqueScore: in.CliqueScore,
		})
		if err != nil {
			return err
		}
		saved = a
		return u.rt.applyTransition(ctx, p, tr, in.Team)
	})
	if err != nil {
		u.rt.log.Error("commit team failed", zap.String("project_id", p.ID), zap.Error(err))
		return assignment.Assignment{}, storeErr(err)
	}

	u.rt.invalidateRecommendations(ctx)
	score := saved.CliqueScore
	u.rt.events.Publish(ctx, Event{
		Type:         EventTeamCommitted,
		ProjectID:    p.ID,
		Status:       project.StatusOnGoing.String(),
		Team:         saved.Members,
		AssignmentID: saved.ID,
		CliqueScore:  &score,
	})
	u.rt.log.Info("team committed",
		zap.String("project_id", p.ID),
		zap.String("assignment_id", saved.ID),
		zap.Strings("team", saved.Members),
	)
	return saved, nil
}

// resolveTeam looks up every id, rejecting empty, duplicate and unknown ids.
func (u *TeamFormation) resolveTeam(ctx context.Context, ids []string) ([]employee.Employee, error) {
	if len(ids) == 0 {
		return nil, validationf("team must not be empty")
	}
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if strings.TrimSpace(id) == "" {
			return nil, validationf("team contains an empty employee id")
		}
		if strings.Contains(id, ",") {
			return nil, validationf("employee id %q must not contain a comma", id)
		}
		if _, dup := seen[id]; dup {
			return nil, validationf("employee %s appears more than once", id)
		}
		seen[id] = struct{}{}
	}

	members := make([]employee.Employee, 0, len(ids))
	for _, id := range ids {
		e, err := u.rt.repos.Employees.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrRecordNotFound) {
				return nil, notFoundf("employee %s", id)
			}
			return nil, storeErr(err)
		}
		members = append(members, e)
	}
	return members, nil
}

// validatePairScores accepts keys for unordered pairs of team members only.
func validatePairScores(team []string, scores map[string]float64) error {
	if len(scores) == 0 {
		return nil
	}
	valid := make(map[string]struct{}, len(team)*len(team))
	for i := 0; i < len(team); i++ {
		for j := i + 1; j < len(team); j++ {
			valid[matching.PairKey(team[i], team[j])] = struct{}{}
			valid[matching.PairKey(team[j], team[i])] = struct{}{}
		}
	}
	for k, v := range scores {
		if _, ok := valid[k]; !ok {
			return validationf("pair score %q does not name two team members", k)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return validationf("pair score %q is not a finite number", k)
		}
	}
	return nil
}

func (c Comparison) String() string {
	return fmt.Sprintf("dfs=%v (%s) bfs=%v (%s) faster=%s",
		c.DFS.Team, time.Duration(c.DFS.ElapsedNanos), c.BFS.Team, time.Duration(c.BFS.ElapsedNanos), c.Faster)
}
