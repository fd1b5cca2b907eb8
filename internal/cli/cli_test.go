package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupEnv(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("STORE_BACKEND", "file")
	t.Setenv("STORE_DATA_DIR", t.TempDir())
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("REDIS_ADDR", "")
}

func run(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := Execute(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestSeedRecommendCommitComplete(t *testing.T) {
	setupEnv(t)

	code, out, errOut := run(t, "seed")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "seeded 13 records")

	code, out, errOut = run(t, "recommend", "P1", "--json")
	require.Equal(t, 0, code, errOut)
	var rec struct {
		Team []struct {
			ID string `json:"id"`
		} `json:"team"`
		Complete bool `json:"complete"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &rec))
	require.Len(t, rec.Team, 2)
	assert.Equal(t, "E1", rec.Team[0].ID)
	assert.True(t, rec.Complete)

	code, out, errOut = run(t, "commit", "P1", "E1", "E2")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "committed T01: E1,E2 -> P1")

	code, _, errOut = run(t, "recommend", "P1")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "validation failed")

	code, out, errOut = run(t, "status", "P1", "completed")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "project P1 is now completed")
}

func TestScoreAndCompare(t *testing.T) {
	setupEnv(t)

	code, _, errOut := run(t, "seed")
	require.Equal(t, 0, code, errOut)

	code, out, errOut := run(t, "score", "P1", "E1", "E2")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "pair E1,E2\t0.79")
	assert.Contains(t, out, "clique score: 0.79")

	code, out, errOut = run(t, "compare", "P2")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "faster=")
}

func TestRecommend_NoMatchingSkill(t *testing.T) {
	setupEnv(t)

	code, _, errOut := run(t, "seed")
	require.Equal(t, 0, code, errOut)

	code, out, errOut := run(t, "recommend", "P3")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "0/1 members")
	assert.Contains(t, out, "team is incomplete")
}

func TestArgumentErrors(t *testing.T) {
	setupEnv(t)

	code, _, _ := run(t, "recommend")
	assert.Equal(t, 1, code)

	code, _, errOut := run(t, "recommend", "P1", "--algorithm", "astar")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "unknown traversal algorithm")

	code, _, errOut = run(t, "status", "P1", "paused")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "paused")

	code, _, errOut = run(t, "seed", "--fixture", "missing.yaml")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "missing.yaml")
}
