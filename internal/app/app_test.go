package app

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"team-formation/internal/config"
	"team-formation/internal/repository"
	"team-formation/internal/repository/filestore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func testConfig(dir string) config.Config {
	return config.Config{
		App:   config.AppConfig{AppName: "team-formation-test", HTTPPort: "0"},
		Store: config.StoreConfig{Backend: config.StoreBackendFile, DataDir: dir},
		Scoring: config.ScoringConfig{
			SumDuplicatePairs: true,
			DefaultPairRate:   0.5,
		},
	}
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	dir := t.TempDir()

	store, err := filestore.New(dir, nil)
	require.NoError(t, err)
	ctx := context.Background()
	seed := map[repository.Collection][]repository.Record{
		repository.CollectionEmployees: {
			{"E1", "Ann", "30", "java,sql", "true", ""},
			{"E2", "Bob", "28", "java", "true", ""},
			{"E3", "Cid", "35", "go", "true", ""},
		},
		repository.CollectionProjects: {
			{"P1", "java,sql", "2", "Billing rewrite", "not_started"},
			{"P3", "java", "1", "Broken", "paused"},
		},
		repository.CollectionCollaborations: {
			{"E1,E2", "3", "0.8", "0.9"},
		},
	}
	for c, recs := range seed {
		require.NoError(t, store.ReplaceAll(ctx, c, recs))
	}

	c, err := NewContainer(ctx, testConfig(dir), nil, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return New(c, nil)
}

func do(t *testing.T, a *App, method, target, body string) (*http.Response, envelope) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := a.Fiber.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp, env
}

func TestHealth(t *testing.T) {
	a := newTestApp(t)

	resp, env := do(t, a, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	var data struct {
		Status string            `json:"status"`
		Checks map[string]string `json:"checks"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "up", data.Status)
	assert.Equal(t, "up", data.Checks["store"])
}

func TestRecommendation(t *testing.T) {
	a := newTestApp(t)

	resp, env := do(t, a, http.MethodGet, "/api/v1/projects/P1/recommendation?algorithm=bfs", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var rec struct {
		Algorithm string `json:"algorithm"`
		Team      []struct {
			ID string `json:"id"`
		} `json:"team"`
		Complete bool `json:"complete"`
		Score    struct {
			CliqueScore float64 `json:"clique_score"`
		} `json:"score"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &rec))
	assert.Equal(t, "bfs", rec.Algorithm)
	require.Len(t, rec.Team, 2)
	assert.Equal(t, "E1", rec.Team[0].ID)
	assert.Equal(t, "E2", rec.Team[1].ID)
	assert.True(t, rec.Complete)
	assert.InDelta(t, 0.79, rec.Score.CliqueScore, 1e-9)
}

func TestRecommendation_Errors(t *testing.T) {
	a := newTestApp(t)

	cases := []struct {
		name   string
		target string
		status int
	}{
		{"unknown algorithm", "/api/v1/projects/P1/recommendation?algorithm=astar", http.StatusBadRequest},
		{"unknown project", "/api/v1/projects/P9/recommendation", http.StatusNotFound},
		{"malformed project", "/api/v1/projects/P3/recommendation", http.StatusConflict},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, env := do(t, a, http.MethodGet, tc.target, "")
			assert.Equal(t, tc.status, resp.StatusCode)
			assert.Equal(t, tc.status, env.Status)
			assert.NotEmpty(t, env.Message)
		})
	}
}

func TestCommitThenComplete(t *testing.T) {
	a := newTestApp(t)

	resp, env := do(t, a, http.MethodPost, "/api/v1/projects/P1/team", `{"team":["E1","E2"]}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, env.Message)

	var saved struct {
		ID          string   `json:"id"`
		Members     []string `json:"members"`
		CliqueScore float64  `json:"clique_score"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &saved))
	assert.Equal(t, "T01", saved.ID)
	assert.Equal(t, []string{"E1", "E2"}, saved.Members)
	assert.InDelta(t, 0.79, saved.CliqueScore, 1e-9)

	resp, _ = do(t, a, http.MethodGet, "/api/v1/projects/P1/recommendation", "")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp, env = do(t, a, http.MethodGet, "/api/v1/employees/E1", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(env.Data), `"available":false`)

	resp, env = do(t, a, http.MethodPatch, "/api/v1/projects/P1/status", `{"status":"completed"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, env.Message)
	assert.Contains(t, string(env.Data), `"status":"completed"`)

	resp, env = do(t, a, http.MethodGet, "/api/v1/employees/E2", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(env.Data), `"available":true`)

	resp, _ = do(t, a, http.MethodPatch, "/api/v1/projects/P1/status", `{"status":"on_going"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp, env = do(t, a, http.MethodGet, "/api/v1/assignments", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(env.Data), `"project_id":"P1"`)
}

func TestCommit_WrongSizeRejected(t *testing.T) {
	a := newTestApp(t)

	resp, _ := do(t, a, http.MethodPost, "/api/v1/projects/P1/team", `{"team":["E1"],"clique_score":0.5}`)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp, env := do(t, a, http.MethodGet, "/api/v1/projects/P1", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(env.Data), `"status":"not_started"`)
}

func TestStatus_UnknownValueIsBadRequest(t *testing.T) {
	a := newTestApp(t)

	resp, _ := do(t, a, http.MethodPatch, "/api/v1/projects/P1/status", `{"status":"paused"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestScoreAndCompare(t *testing.T) {
	a := newTestApp(t)

	resp, env := do(t, a, http.MethodPost, "/api/v1/projects/P1/score", `{"team":["E1","E2"]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, env.Message)
	assert.Contains(t, string(env.Data), `"E1,E2"`)

	resp, _ = do(t, a, http.MethodPost, "/api/v1/projects/P1/score", `{"team":["E1","E9"]}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, env = do(t, a, http.MethodGet, "/api/v1/projects/P1/comparison", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var cmp struct {
		DFS struct {
			Team []string `json:"team"`
		} `json:"dfs"`
		BFS struct {
			Team []string `json:"team"`
		} `json:"bfs"`
		Faster string `json:"faster"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &cmp))
	assert.ElementsMatch(t, cmp.DFS.Team, cmp.BFS.Team)
	assert.Contains(t, []string{"dfs", "bfs", "tie"}, cmp.Faster)
}

func TestEmployeeCRUD(t *testing.T) {
	a := newTestApp(t)

	resp, _ := do(t, a, http.MethodPost, "/api/v1/employees", `{"id":`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, env := do(t, a, http.MethodPost, "/api/v1/employees", `{"id":"E4","name":"Dee","age":41,"skills":["java"]}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, env.Message)
	assert.Contains(t, string(env.Data), `"available":true`)

	resp, _ = do(t, a, http.MethodPost, "/api/v1/employees", `{"id":"E4","name":"Dee","age":41}`)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp, env = do(t, a, http.MethodPut, "/api/v1/employees/E4", `{"name":"Dee","age":42,"skills":["java","go"],"available":false}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, env.Message)
	assert.Contains(t, string(env.Data), `"age":42`)

	resp, env = do(t, a, http.MethodPost, "/api/v1/skills", `{"id":"S1","name":"rust","category":"lang","level":"mid","employee_id":"E4"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, env.Message)

	resp, env = do(t, a, http.MethodGet, "/api/v1/employees/E4", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(env.Data), `"rust"`)

	resp, _ = do(t, a, http.MethodDelete, "/api/v1/employees/E4", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = do(t, a, http.MethodGet, "/api/v1/employees/E4", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCollaborations(t *testing.T) {
	a := newTestApp(t)

	resp, env := do(t, a, http.MethodPost, "/api/v1/collaborations", `{"a":"E1","b":"E3","count":1,"success_rate":0.6,"compatibility":0.7}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, env.Message)

	resp, _ = do(t, a, http.MethodDelete, "/api/v1/collaborations/E2/E1", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, env = do(t, a, http.MethodGet, "/api/v1/collaborations", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var items []struct {
		A string `json:"a"`
		B string `json:"b"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &items))
	require.Len(t, items, 1)
	assert.Equal(t, "E3", items[0].B)
}

func TestProjects_CreateAndList(t *testing.T) {
	a := newTestApp(t)

	resp, env := do(t, a, http.MethodPost, "/api/v1/projects", `{"id":"P5","required_skills":["go"],"team_size":1,"description":"CLI"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, env.Message)
	assert.Contains(t, string(env.Data), `"status":"not_started"`)

	resp, _ = do(t, a, http.MethodPost, "/api/v1/projects", `{"id":"P6","required_skills":[],"team_size":1}`)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp, env = do(t, a, http.MethodGet, "/api/v1/projects", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var items []struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &items))
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	// P3 is malformed and skipped by the listing.
	assert.Equal(t, []string{"P1", "P5"}, ids)

	resp, _ = do(t, a, http.MethodDelete, "/api/v1/projects/P5", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestProjects_UpdateAndLifecycleGuards(t *testing.T) {
	a := newTestApp(t)

	resp, _ := do(t, a, http.MethodPost, "/api/v1/projects", `{"id":"P7","required_skills":["go"],"team_size":1,"status":"completed"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp, env := do(t, a, http.MethodPut, "/api/v1/projects/P1", `{"required_skills":["java"],"team_size":1,"description":"Billing v2"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, env.Message)
	assert.Contains(t, string(env.Data), `"team_size":1`)
	assert.Contains(t, string(env.Data), `"status":"not_started"`)

	resp, _ = do(t, a, http.MethodPut, "/api/v1/projects/P1", `{"required_skills":["java"],"team_size":1,"status":"on_going"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp, env = do(t, a, http.MethodPost, "/api/v1/projects/P1/team", `{"team":["E1"]}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, env.Message)

	resp, _ = do(t, a, http.MethodDelete, "/api/v1/projects/P1", "")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestSkillsAndCollaborations_Update(t *testing.T) {
	a := newTestApp(t)

	resp, env := do(t, a, http.MethodPost, "/api/v1/skills", `{"id":"S1","name":"go","employee_id":"E3"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, env.Message)

	resp, env = do(t, a, http.MethodPut, "/api/v1/skills/S1", `{"name":"rust","level":"senior","employee_id":"E3"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, env.Message)
	assert.Contains(t, string(env.Data), `"name":"rust"`)

	resp, _ = do(t, a, http.MethodPut, "/api/v1/skills/S9", `{"name":"rust","employee_id":"E3"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, env = do(t, a, http.MethodPut, "/api/v1/collaborations/E2/E1", `{"count":7,"success_rate":0.1,"compatibility":0.2}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, env.Message)
	assert.Contains(t, string(env.Data), `"count":7`)

	resp, env = do(t, a, http.MethodPost, "/api/v1/projects/P1/score", `{"team":["E1","E2"]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, env.Message)
	var score struct {
		CliqueScore float64 `json:"clique_score"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &score))
	assert.InDelta(t, 0.5*0.1+0.3*0.2+0.2*1.0, score.CliqueScore, 1e-9)

	resp, _ = do(t, a, http.MethodPut, "/api/v1/collaborations/E1/E3", `{"count":1}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListenAddr(t *testing.T) {
	addr, err := ListenAddr("8080")
	require.NoError(t, err)
	assert.Equal(t, ":8080", addr)

	addr, err = ListenAddr(" :9090 ")
	require.NoError(t, err)
	assert.Equal(t, ":9090", addr)

	_, err = ListenAddr("")
	assert.Error(t, err)
}
