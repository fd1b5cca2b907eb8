package handler

import (
	"team-formation/internal/delivery/http/dto"
	"team-formation/internal/domain/graph"
	"team-formation/internal/domain/project"
	"team-formation/internal/pkg/response"
	"team-formation/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ProjectHandler struct {
	records   usecase.RecordsUsecase
	teams     usecase.TeamFormationUsecase
	lifecycle usecase.ProjectLifecycleUsecase
}

type projectRequest struct {
	ID             string   `json:"id"`
	RequiredSkills []string `json:"required_skills"`
	TeamSize       int      `json:"team_size"`
	Description    string   `json:"description"`
	Status         string   `json:"status"`
}

type scoreTeamRequest struct {
	Team []string `json:"team"`
}

type commitTeamRequest struct {
	Team        []string           `json:"team"`
	PairScores  map[string]float64 `json:"pair_scores"`
	CliqueScore *float64           `json:"clique_score"`
}

type statusRequest struct {
	Status string `json:"status"`
}

func NewProjectHandler(records usecase.RecordsUsecase, teams usecase.TeamFormationUsecase, lifecycle usecase.ProjectLifecycleUsecase) *ProjectHandler {
	return &ProjectHandler{records: records, teams: teams, lifecycle: lifecycle}
}

func (h *ProjectHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/projects")
	grp.Get("/", h.List)
	grp.Post("/", h.Create)
	grp.Get("/:id", h.Get)
	grp.Put("/:id", h.Update)
	grp.Delete("/:id", h.Delete)

	grp.Get("/:id/recommendation", h.Recommend)
	grp.Post("/:id/score", h.Score)
	grp.Get("/:id/comparison", h.Compare)
	grp.Post("/:id/team", h.Commit)
	grp.Patch("/:id/status", h.TransitionStatus)

	r.Get("/assignments", h.ListAssignments)
}

func (h *ProjectHandler) List(c fiber.Ctx) error {
	items, err := h.records.ListProjects(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewProjectList(items))
}

func (h *ProjectHandler) Get(c fiber.Ctx) error {
	p, err := h.records.GetProject(c.Context(), c.Params("id"))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewProjectResponse(p))
}

func (h *ProjectHandler) Create(c fiber.Ctx) error {
	var req projectRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	created, err := h.records.CreateProject(c.Context(), usecase.ProjectInput{
		ID:             req.ID,
		RequiredSkills: req.RequiredSkills,
		TeamSize:       req.TeamSize,
		Description:    req.Description,
		Status:         req.Status,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Created(c, dto.NewProjectResponse(created))
}

// Update edits required skills, team size and description. Status changes
// use PATCH /:id/status.
func (h *ProjectHandler) Update(c fiber.Ctx) error {
	var req projectRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	updated, err := h.records.UpdateProject(c.Context(), usecase.ProjectInput{
		ID:             c.Params("id"),
		RequiredSkills: req.RequiredSkills,
		TeamSize:       req.TeamSize,
		Description:    req.Description,
		Status:         req.Status,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewProjectResponse(updated))
}

func (h *ProjectHandler) Delete(c fiber.Ctx) error {
	if err := h.records.DeleteProject(c.Context(), c.Params("id")); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

// Recommend defaults to dfs when no algorithm is given.
func (h *ProjectHandler) Recommend(c fiber.Ctx) error {
	algo, err := graph.ParseAlgorithm(c.Query("algorithm"))
	if err != nil {
		return badRequest(err)
	}

	rec, err := h.teams.RecommendTeam(c.Context(), c.Params("id"), algo)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, rec)
}

func (h *ProjectHandler) Score(c fiber.Ctx) error {
	var req scoreTeamRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	score, err := h.teams.ScoreTeam(c.Context(), c.Params("id"), req.Team)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, score)
}

func (h *ProjectHandler) Compare(c fiber.Ctx) error {
	cmp, err := h.teams.CompareAlgorithms(c.Context(), c.Params("id"))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, cmp)
}

// Commit stores the team and starts the project. A missing clique score is
// computed from the current data.
func (h *ProjectHandler) Commit(c fiber.Ctx) error {
	var req commitTeamRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	projectID := c.Params("id")
	in := usecase.CommitTeamInput{ProjectID: projectID, Team: req.Team, PairScores: req.PairScores}
	if req.CliqueScore != nil {
		in.CliqueScore = *req.CliqueScore
	} else {
		score, err := h.teams.ScoreTeam(c.Context(), projectID, req.Team)
		if err != nil {
			return mapUsecaseError(err)
		}
		in.CliqueScore = score.CliqueScore
	}

	saved, err := h.teams.CommitTeam(c.Context(), in)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Created(c, dto.NewAssignmentResponse(saved))
}

func (h *ProjectHandler) TransitionStatus(c fiber.Ctx) error {
	var req statusRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}
	to, ok := project.ParseStatus(req.Status)
	if !ok {
		return badRequest(project.ErrUnknownStatus)
	}

	p, err := h.lifecycle.TransitionProjectStatus(c.Context(), c.Params("id"), to)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewProjectResponse(p))
}

func (h *ProjectHandler) ListAssignments(c fiber.Ctx) error {
	items, err := h.records.ListAssignments(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewAssignmentList(items))
}
