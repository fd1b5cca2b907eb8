package usecase

import (
	"context"
	"errors"
	"strings"

	"team-formation/internal/domain/assignment"
	"team-formation/internal/domain/collaboration"
	"team-formation/internal/domain/employee"
	"team-formation/internal/domain/project"
	"team-formation/internal/domain/skill"
	"team-formation/internal/repository"

	"go.uber.org/zap"
)

type EmployeeInput struct {
	ID           string
	Name         string
	Age          int
	Skills       []string
	Available    bool
	PastProjects []string
}

type SkillInput struct {
	ID         string
	Name       string
	Category   string
	Level      string
	EmployeeID string
}

type ProjectInput struct {
	ID             string
	RequiredSkills []string
	TeamSize       int
	Description    string
	Status         string
}

type CollaborationInput struct {
	A             string
	B             string
	Count         int
	SuccessRate   float64
	Compatibility float64
}

type RecordsUsecase interface {
	ListEmployees(ctx context.Context) ([]employee.Employee, error)
	GetEmployee(ctx context.Context, id string) (employee.Employee, error)
	CreateEmployee(ctx context.Context, in EmployeeInput) (employee.Employee, error)
	UpdateEmployee(ctx context.Context, in EmployeeInput) (employee.Employee, error)
	DeleteEmployee(ctx context.Context, id string) error

	ListSkills(ctx context.Context) ([]skill.Skill, error)
	CreateSkill(ctx context.Context, in SkillInput) (skill.Skill, error)
	UpdateSkill(ctx context.Context, in SkillInput) (skill.Skill, error)
	DeleteSkill(ctx context.Context, id string) error

	ListProjects(ctx context.Context) ([]project.Project, error)
	GetProject(ctx context.Context, id string) (project.Project, error)
	CreateProject(ctx context.Context, in ProjectInput) (project.Project, error)
	UpdateProject(ctx context.Context, in ProjectInput) (project.Project, error)
	DeleteProject(ctx context.Context, id string) error

	ListCollaborations(ctx context.Context) ([]collaboration.Collaboration, error)
	CreateCollaboration(ctx context.Context, in CollaborationInput) (collaboration.Collaboration, error)
	UpdateCollaboration(ctx context.Context, in CollaborationInput) (collaboration.Collaboration, error)
	DeleteCollaboration(ctx context.Context, pair collaboration.Pair) error

	ListAssignments(ctx context.Context) ([]assignment.Assignment, error)
}

type Records struct {
	rt *Runtime
}

func NewRecordsUsecase(rt *Runtime) *Records {
	return &Records{rt: rt}
}

func (u *Records) ListEmployees(ctx context.Context) ([]employee.Employee, error) {
	u.rt.mu.Lock()
	defer u.rt.mu.Unlock()

	out, err := u.rt.repos.Employees.FindAll(ctx)
	return out, storeErr(err)
}

func (u *Records) GetEmployee(ctx context.Context, id string) (employee.Employee, error) {
	u.rt.mu.Lock()
	defer u.rt.mu.Unlock()

	out, err := u.rt.repos.Employees.FindByID(ctx, strings.TrimSpace(id))
	return out, storeErr(err)
}

func (u *Records) CreateEmployee(ctx context.Context, in EmployeeInput) (employee.Employee, error) {
	e, err := in.toEmployee()
	if err != nil {
		return employee.Employee{}, err
	}

	u.rt.mu.Lock()
	defer u.rt.mu.Unlock()

	if err := u.rt.repos.Employees.Create(ctx, e); err != nil {
		return employee.Employee{}, storeErr(err)
	}
	u.rt.invalidateRecommendations(ctx)
	u.rt.log.Info("employee created", zap.String("employee_id", e.ID))
	return e, nil
}

// UpdateEmployee replaces the editable fields. Past projects and any extra
// stored fields are kept from the existing record when not supplied.
func (u *Records) UpdateEmployee(ctx context.Context, in EmployeeInput) (employee.Employee, error) {
	e, err := in.toEmployee()
	if err != nil {
		return employee.Employee{}, err
	}

	u.rt.mu.Lock()
	defer u.rt.mu.Unlock()

	current, err := u.rt.repos.Employees.FindByID(ctx, e.ID)
	if err != nil {
		return employee.Employee{}, storeErr(err)
	}
	if in.PastProjects == nil {
		e.PastProjects = current.PastProjects
		e.HasPastProjects = current.HasPastProjects
	}
	e.Extra = current.Extra

	if err := u.rt.repos.Employees.Update(ctx, e); err != nil {
		return employee.Employee{}, storeErr(err)
	}
	u.rt.invalidateRecommendations(ctx)
	return e, nil
}

func (u *Records) DeleteEmployee(ctx context.Context, id string) error {
	u.rt.mu.Lock()
	defer u.rt.mu.Unlock()

	if err := u.rt.repos.Employees.Delete(ctx, strings.TrimSpace(id)); err != nil {
		return storeErr(err)
	}
	u.rt.invalidateRecommendations(ctx)
	return nil
}

func (u *Records) ListSkills(ctx context.Context) ([]skill.Skill, error) {
	u.rt.mu.Lock()
	defer u.rt.mu.Unlock()

	out, err := u.rt.repos.Skills.FindAll(ctx)
	return out, storeErr(err)
}

// CreateSkill stores the skill record and upserts its name into the owning
// employee's skill set. Both writes succeed or neither is kept.
func (u *Records) CreateSkill(ctx context.Context, in SkillInput) (skill.Skill, error) {
	s, err := in.toSkill()
	if err != nil {
		return skill.Skill{}, err
	}

	u.rt.mu.Lock()
	defer u.rt.mu.Unlock()

	return s, u.writeSkill(ctx, s, u.rt.repos.Skills.Create)
}

// UpdateSkill rewrites the skill record keyed in.ID and upserts the name into
// the (possibly new) owner's skill set. The previous owner keeps the name.
func (u *Records) UpdateSkill(ctx context.Context, in SkillInput) (skill.Skill, error) {
	s, err := in.toSkill()
	if err != nil {
		return skill.Skill{}, err
	}

	u.rt.mu.Lock()
	defer u.rt.mu.Unlock()

	current, err := u.rt.repos.Skills.FindByID(ctx, s.ID)
	if err != nil {
		return skill.Skill{}, storeErr(err)
	}
	s.Extra = current.Extra
	return s, u.writeSkill(ctx, s, u.rt.repos.Skills.Update)
}

func (u *Records) writeSkill(ctx context.Context, s skill.Skill, write func(context.Context, skill.Skill) error) error {
	if _, err := u.rt.repos.Employees.FindByID(ctx, s.EmployeeID); err != nil {
		return storeErr(err)
	}
	err := repository.WithRollback(ctx, u.rt.repos.Store, []repository.Collection{
		repository.CollectionSkills,
		repository.CollectionEmployees,
	}, func() error {
		if err := write(ctx, s); err != nil {
			return err
		}
		return u.rt.repos.Employees.AddSkill(ctx, s.EmployeeID, s.Name)
	})
	if err != nil {
		return storeErr(err)
	}
	u.rt.invalidateRecommendations(ctx)
	return nil
}

func (u *Records) DeleteSkill(ctx context.Context, id string) error {
	u.rt.mu.Lock()
	defer u.rt.mu.Unlock()

	if err := u.rt.repos.Skills.Delete(ctx, strings.TrimSpace(id)); err != nil {
		return storeErr(err)
	}
	return nil
}

func (u *Records) ListProjects(ctx context.Context) ([]project.Project, error) {
	u.rt.mu.Lock()
	defer u.rt.mu.Unlock()

	out, err := u.rt.repos.Projects.FindAll(ctx)
	return out, storeErr(err)
}

func (u *Records) GetProject(ctx context.Context, id string) (project.Project, error) {
	u.rt.mu.Lock()
	defer u.rt.mu.Unlock()

	return u.rt.findProject(ctx, strings.TrimSpace(id))
}

// CreateProject stores a new project. Projects always start as not_started;
// later states are reached only through TransitionProjectStatus.
func (u *Records) CreateProject(ctx context.Context, in ProjectInput) (project.Project, error) {
	p, err := in.toProject()
	if err != nil {
		return project.Project{}, err
	}
	if s, given := in.status(); given && s != project.StatusNotStarted {
		return project.Project{}, validationf("new projects must be %s, got %q", project.StatusNotStarted, in.Status)
	}
	p.Status = project.StatusNotStarted

	u.rt.mu.Lock()
	defer u.rt.mu.Unlock()

	if err := u.rt.repos.Projects.Create(ctx, p); err != nil {
		return project.Project{}, storeErr(err)
	}
	u.rt.log.Info("project created", zap.String("project_id", p.ID))
	return p, nil
}

// UpdateProject replaces required skills, team size and description. The
// status is kept; a different status in the input is rejected.
func (u *Records) UpdateProject(ctx context.Context, in ProjectInput) (project.Project, error) {
	p, err := in.toProject()
	if err != nil {
		return project.Project{}, err
	}

	u.rt.mu.Lock()
	defer u.rt.mu.Unlock()

	current, err := u.rt.findProject(ctx, p.ID)
	if err != nil {
		return project.Project{}, err
	}
	if s, given := in.status(); given && s != current.Status {
		return project.Project{}, validationf("project %s: status changes go through the status transition", p.ID)
	}
	p.Status = current.Status
	p.Extra = current.Extra

	if err := u.rt.repos.Projects.Update(ctx, p); err != nil {
		return project.Project{}, storeErr(err)
	}
	u.rt.invalidateRecommendations(ctx)
	u.rt.log.Info("project updated", zap.String("project_id", p.ID))
	return p, nil
}

// DeleteProject refuses on_going projects: their team is reserved until the
// project completes.
func (u *Records) DeleteProject(ctx context.Context, id string) error {
	u.rt.mu.Lock()
	defer u.rt.mu.Unlock()

	id = strings.TrimSpace(id)
	p, err := u.rt.findProject(ctx, id)
	switch {
	case err == nil:
		if p.Status == project.StatusOnGoing {
			return validationf("project %s is %s; complete it before deleting", p.ID, p.Status)
		}
	case errors.Is(err, ErrMalformedRecord):
	default:
		return err
	}
	if err := u.rt.repos.Projects.Delete(ctx, id); err != nil {
		return storeErr(err)
	}
	u.rt.invalidateRecommendations(ctx)
	return nil
}

func (u *Records) ListCollaborations(ctx context.Context) ([]collaboration.Collaboration, error) {
	u.rt.mu.Lock()
	defer u.rt.mu.Unlock()

	out, err := u.rt.repos.Collaborations.FindAll(ctx)
	return out, storeErr(err)
}

func (u *Records) CreateCollaboration(ctx context.Context, in CollaborationInput) (collaboration.Collaboration, error) {
	c, err := in.toCollaboration()
	if err != nil {
		return collaboration.Collaboration{}, err
	}

	u.rt.mu.Lock()
	defer u.rt.mu.Unlock()

	if err := u.rt.repos.Collaborations.Create(ctx, c); err != nil {
		return collaboration.Collaboration{}, storeErr(err)
	}
	u.rt.invalidateGraph()
	u.rt.invalidateRecommendations(ctx)
	return c, nil
}

// UpdateCollaboration replaces the metrics of the first record for the pair.
func (u *Records) UpdateCollaboration(ctx context.Context, in CollaborationInput) (collaboration.Collaboration, error) {
	c, err := in.toCollaboration()
	if err != nil {
		return collaboration.Collaboration{}, err
	}

	u.rt.mu.Lock()
	defer u.rt.mu.Unlock()

	if err := u.rt.repos.Collaborations.Update(ctx, c); err != nil {
		return collaboration.Collaboration{}, storeErr(err)
	}
	u.rt.invalidateGraph()
	u.rt.invalidateRecommendations(ctx)
	return c, nil
}

func (u *Records) DeleteCollaboration(ctx context.Context, pair collaboration.Pair) error {
	u.rt.mu.Lock()
	defer u.rt.mu.Unlock()

	if err := u.rt.repos.Collaborations.Delete(ctx, pair); err != nil {
		return storeErr(err)
	}
	u.rt.invalidateGraph()
	u.rt.invalidateRecommendations(ctx)
	return nil
}

func (u *Records) ListAssignments(ctx context.Context) ([]assignment.Assignment, error) {
	u.rt.mu.Lock()
	defer u.rt.mu.Unlock()

	out, err := u.rt.repos.Assignments.FindAll(ctx)
	return out, storeErr(err)
}

func (in EmployeeInput) toEmployee() (employee.Employee, error) {
	e := employee.Employee{
		ID:           strings.TrimSpace(in.ID),
		Name:         strings.TrimSpace(in.Name),
		Age:          in.Age,
		Skills:       cleanList(in.Skills),
		Available:    in.Available,
		PastProjects: cleanList(in.PastProjects),
	}
	e.HasPastProjects = len(e.PastProjects) > 0
	if e.ID == "" || e.Name == "" {
		return employee.Employee{}, validationf("employee id and name are required")
	}
	if strings.Contains(e.ID, ",") {
		return employee.Employee{}, validationf("employee id must not contain a comma")
	}
	if e.Age < 0 {
		return employee.Employee{}, validationf("age must not be negative")
	}
	if err := checkListItems(append(append([]string{}, e.Skills...), e.PastProjects...)); err != nil {
		return employee.Employee{}, err
	}
	fields := append([]string{e.ID, e.Name}, e.Skills...)
	if err := checkFields(append(fields, e.PastProjects...)...); err != nil {
		return employee.Employee{}, err
	}
	return e, nil
}

func (in SkillInput) toSkill() (skill.Skill, error) {
	s := skill.Skill{
		ID:         strings.TrimSpace(in.ID),
		Name:       strings.TrimSpace(in.Name),
		Category:   strings.TrimSpace(in.Category),
		Level:      strings.TrimSpace(in.Level),
		EmployeeID: strings.TrimSpace(in.EmployeeID),
	}
	if s.ID == "" || s.Name == "" || s.EmployeeID == "" {
		return skill.Skill{}, validationf("skill id, name and employee id are required")
	}
	if strings.Contains(s.Name, ",") {
		return skill.Skill{}, validationf("skill name must not contain a comma")
	}
	if err := checkFields(s.ID, s.Name, s.Category, s.Level, s.EmployeeID); err != nil {
		return skill.Skill{}, err
	}
	return s, nil
}

// toProject validates everything but the status.
func (in ProjectInput) toProject() (project.Project, error) {
	p := project.Project{
		ID:             strings.TrimSpace(in.ID),
		RequiredSkills: cleanList(in.RequiredSkills),
		TeamSize:       in.TeamSize,
		Description:    strings.TrimSpace(in.Description),
	}
	if p.ID == "" {
		return project.Project{}, validationf("project id is required")
	}
	if len(p.RequiredSkills) == 0 {
		return project.Project{}, validationf("at least one required skill is needed")
	}
	if p.TeamSize <= 0 {
		return project.Project{}, validationf("team size must be positive")
	}
	if raw := strings.TrimSpace(in.Status); raw != "" {
		if _, ok := project.ParseStatus(raw); !ok {
			return project.Project{}, validationf("unknown status %q", raw)
		}
	}
	if err := checkListItems(p.RequiredSkills); err != nil {
		return project.Project{}, err
	}
	if err := checkFields(append([]string{p.ID, p.Description}, p.RequiredSkills...)...); err != nil {
		return project.Project{}, err
	}
	return p, nil
}

// status reports the parsed input status and whether one was given.
func (in ProjectInput) status() (project.Status, bool) {
	return project.ParseStatus(strings.TrimSpace(in.Status))
}

func (in CollaborationInput) toCollaboration() (collaboration.Collaboration, error) {
	pair := collaboration.Pair{A: strings.TrimSpace(in.A), B: strings.TrimSpace(in.B)}
	if pair.A == "" || pair.B == "" {
		return collaboration.Collaboration{}, validationf("both employee ids are required")
	}
	if strings.Contains(pair.A, ",") || strings.Contains(pair.B, ",") {
		return collaboration.Collaboration{}, validationf("employee ids must not contain a comma")
	}
	if err := checkFields(pair.A, pair.B); err != nil {
		return collaboration.Collaboration{}, err
	}
	if in.Count < 0 {
		return collaboration.Collaboration{}, validationf("collaboration count must not be negative")
	}
	count, sr, comp := in.Count, in.SuccessRate, in.Compatibility
	return collaboration.Collaboration{Pair: pair, Count: &count, SuccessRate: &sr, Compatibility: &comp}, nil
}

// cleanList trims entries, drops empty ones and removes duplicates while
// keeping the first occurrence.
func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		it = strings.TrimSpace(it)
		if it == "" {
			continue
		}
		if _, ok := seen[it]; ok {
			continue
		}
		seen[it] = struct{}{}
		out = append(out, it)
	}
	return out
}

// checkFields rejects values that would break the stored tuple layout.
func checkFields(values ...string) error {
	for _, v := range values {
		if strings.ContainsAny(v, "|\n\r") {
			return validationf("value %q must not contain '|' or line breaks", v)
		}
	}
	return nil
}

func checkListItems(items []string) error {
	for _, it := range items {
		if strings.Contains(it, ",") {
			return validationf("list entry %q must not contain a comma", it)
		}
	}
	return nil
}
