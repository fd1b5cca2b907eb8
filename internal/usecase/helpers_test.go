package usecase

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"team-formation/internal/domain/matching"
	"team-formation/internal/repository"
	"team-formation/internal/repository/filestore"
)

type seed map[repository.Collection][]repository.Record

// flakyStore fails the next ReplaceAll of a collection once.
type flakyStore struct {
	repository.RecordStore

	mu       sync.Mutex
	failNext map[repository.Collection]error
}

func (s *flakyStore) ReplaceAll(ctx context.Context, c repository.Collection, recs []repository.Record) error {
	s.mu.Lock()
	err := s.failNext[c]
	delete(s.failNext, c)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	return s.RecordStore.ReplaceAll(ctx, c, recs)
}

type recordingPublisher struct {
	events []Event
}

func (p *recordingPublisher) Publish(_ context.Context, ev Event) {
	p.events = append(p.events, ev)
}

type memCache struct {
	data    map[string]any
	deletes int
}

func newMemCache() *memCache {
	return &memCache{data: map[string]any{}}
}

func (c *memCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	v, ok := c.data[key]
	if !ok {
		return false, nil
	}
	if rec, ok := v.(Recommendation); ok {
		if dst, ok := out.(*Recommendation); ok {
			*dst = rec
			return true, nil
		}
	}
	return false, nil
}

func (c *memCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	c.data[key] = value
	return nil
}

func (c *memCache) DeleteByPattern(_ context.Context, pattern string) error {
	c.deletes++
	prefix := strings.TrimSuffix(pattern, "*")
	for k := range c.data {
		if strings.HasPrefix(k, prefix) {
			delete(c.data, k)
		}
	}
	return nil
}

type fixture struct {
	store     *flakyStore
	rt        *Runtime
	events    *recordingPublisher
	cache     *memCache
	team      *TeamFormation
	lifecycle *ProjectLifecycle
	records   *Records
}

func newFixture(t *testing.T, data seed) *fixture {
	t.Helper()
	fs, err := filestore.New(t.TempDir(), nil)
	require.NoError(t, err)

	ctx := context.Background()
	for c, recs := range data {
		require.NoError(t, fs.ReplaceAll(ctx, c, recs))
	}

	store := &flakyStore{RecordStore: fs, failNext: map[repository.Collection]error{}}
	events := &recordingPublisher{}
	cache := newMemCache()
	rt := NewRuntime(Deps{
		Repos:  repository.NewRepositories(store, nil),
		Cache:  cache,
		Events: events,
		Policy: matching.DefaultPolicy(),
	})
	return &fixture{
		store:     store,
		rt:        rt,
		events:    events,
		cache:     cache,
		team:      NewTeamFormationUsecase(rt),
		lifecycle: NewProjectLifecycleUsecase(rt),
		records:   NewRecordsUsecase(rt),
	}
}

func (f *fixture) load(t *testing.T, c repository.Collection) []repository.Record {
	t.Helper()
	recs, err := f.store.LoadAll(context.Background(), c)
	require.NoError(t, err)
	return recs
}

// exampleSeed is project P1 needing java and sql with two candidates who
// worked together three times.
func exampleSeed() seed {
	return seed{
		repository.CollectionEmployees: {
			{"E1", "Ann", "30", "java,sql", "true", ""},
			{"E2", "Bob", "28", "java", "true", ""},
			{"E3", "Cid", "35", "go", "true", ""},
		},
		repository.CollectionProjects: {
			{"P1", "java,sql", "2", "Billing rewrite", "not_started"},
			{"P2", "cobol", "1", "Mainframe", "not_started"},
			{"P3", "java", "1", "Broken", "paused"},
		},
		repository.CollectionCollaborations: {
			{"E1,E2", "3", "0.8", "0.9"},
		},
	}
}
