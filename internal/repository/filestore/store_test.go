package filestore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"team-formation/internal/repository"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir(), nil)
	require.NoError(t, err)
	return s
}

func TestLoadAll_MissingCollectionIsEmpty(t *testing.T) {
	s := newStore(t)

	recs, err := s.LoadAll(context.Background(), repository.CollectionProjects)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestAppendAndReplace(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	require.NoError(t, s.AppendOne(ctx, repository.CollectionEmployees, repository.Record{"E1", "Ann", "30", "go,sql", "true"}))
	require.NoError(t, s.AppendOne(ctx, repository.CollectionEmployees, repository.Record{"E2", "Bob", "41", "java", "false", "P1", "x"}))

	raw, err := os.ReadFile(s.Path(repository.CollectionEmployees))
	require.NoError(t, err)
	assert.Equal(t, "E1|Ann|30|go,sql|true\nE2|Bob|41|java|false|P1|x\n", string(raw))

	require.NoError(t, s.ReplaceAll(ctx, repository.CollectionEmployees, []repository.Record{{"E2", "Bob", "41", "java", "false", "P1", "x"}}))

	recs, err := s.LoadAll(ctx, repository.CollectionEmployees)
	require.NoError(t, err)
	assert.Equal(t, []repository.Record{{"E2", "Bob", "41", "java", "false", "P1", "x"}}, recs)
}

func TestLoadAll_SkipsBlankLines(t *testing.T) {
	s := newStore(t)
	path := s.Path(repository.CollectionCollaborations)
	require.NoError(t, os.WriteFile(path, []byte("E1,E2|3|0.8|0.9\n\n  \r\nbroken\n"), 0o644))

	recs, err := s.LoadAll(context.Background(), repository.CollectionCollaborations)
	require.NoError(t, err)
	assert.Equal(t, []repository.Record{{"E1,E2", "3", "0.8", "0.9"}, {"broken"}}, recs)
}

func TestReplaceAll_LeavesNoTempFiles(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	require.NoError(t, s.ReplaceAll(ctx, repository.CollectionSkills, []repository.Record{{"S1", "go", "lang", "3", "E1"}}))

	entries, err := os.ReadDir(s.Dir())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, filepath.Base(s.Path(repository.CollectionSkills)), entries[0].Name())
}

func TestReplaceAll_RejectsSeparatorInField(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	require.NoError(t, s.ReplaceAll(ctx, repository.CollectionProjects, []repository.Record{{"P1", "go", "2", "d", "not_started"}}))

	err := s.ReplaceAll(ctx, repository.CollectionProjects, []repository.Record{{"P2", "go", "2", "a|b", "not_started"}})
	require.Error(t, err)

	recs, err := s.LoadAll(ctx, repository.CollectionProjects)
	require.NoError(t, err)
	assert.Equal(t, []repository.Record{{"P1", "go", "2", "d", "not_started"}}, recs)
}

func TestUnknownCollection(t *testing.T) {
	s := newStore(t)
	_, err := s.LoadAll(context.Background(), repository.Collection("nope"))
	assert.Error(t, err)
}
