package sqlitestore

import (
	"context"
	"path/filepath"
	"testing"

	"team-formation/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "records.db")
	s, err := Open(context.Background(), path, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, path
}

func TestStore_AppendAndLoadKeepOrder(t *testing.T) {
	ctx := context.Background()
	s, _ := openTemp(t)

	require.NoError(t, s.AppendOne(ctx, repository.CollectionProjects, repository.Record{"P1", "java,sql", "2", "Billing", "not_started"}))
	require.NoError(t, s.AppendOne(ctx, repository.CollectionProjects, repository.Record{"P2", "go", "1", "a|b", "on_going"}))
	require.NoError(t, s.AppendOne(ctx, repository.CollectionEmployees, repository.Record{"E1"}))

	got, err := s.LoadAll(ctx, repository.CollectionProjects)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "P1", got[0].Key())
	assert.Equal(t, "a|b", got[1][3])

	empty, err := s.LoadAll(ctx, repository.CollectionSkills)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestStore_ReplaceAll(t *testing.T) {
	ctx := context.Background()
	s, _ := openTemp(t)

	require.NoError(t, s.AppendOne(ctx, repository.CollectionSkills, repository.Record{"S1"}))
	require.NoError(t, s.ReplaceAll(ctx, repository.CollectionSkills, []repository.Record{{"S2"}, {"S3", ""}}))

	got, err := s.LoadAll(ctx, repository.CollectionSkills)
	require.NoError(t, err)
	assert.Equal(t, []repository.Record{{"S2"}, {"S3", ""}}, got)

	require.NoError(t, s.ReplaceAll(ctx, repository.CollectionSkills, nil))
	got, err = s.LoadAll(ctx, repository.CollectionSkills)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	s, path := openTemp(t)
	require.NoError(t, s.AppendOne(ctx, repository.CollectionEmployees, repository.Record{"E1", "Ann", "30", "go", "true"}))
	require.NoError(t, s.Close())

	reopened, err := Open(ctx, path, nil)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.LoadAll(ctx, repository.CollectionEmployees)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Ann", got[0][1])
}

func TestStore_WorksWithRepositories(t *testing.T) {
	ctx := context.Background()
	s, _ := openTemp(t)
	repos := repository.NewRepositories(s, nil)

	require.NoError(t, s.ReplaceAll(ctx, repository.CollectionEmployees, []repository.Record{
		{"E1", "Ann", "30", "java", "true"},
		{"E2", "Bob", "28", "sql", "true"},
	}))
	require.NoError(t, repos.Employees.SetAvailability(ctx, []string{"E2"}, false))

	e2, err := repos.Employees.FindByID(ctx, "E2")
	require.NoError(t, err)
	assert.False(t, e2.Available)
}

func TestOpen_RequiresPath(t *testing.T) {
	_, err := Open(context.Background(), "  ", nil)
	assert.Error(t, err)
}
