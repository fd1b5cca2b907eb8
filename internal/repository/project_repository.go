package repository

import (
	"context"
	"fmt"

	"team-formation/internal/domain/project"

	"go.uber.org/zap"
)

type ProjectRepository interface {
	FindAll(ctx context.Context) ([]project.Project, error)
	FindByID(ctx context.Context, id string) (project.Project, error)
	Create(ctx context.Context, p project.Project) error
	Update(ctx context.Context, p project.Project) error
	Delete(ctx context.Context, id string) error
	SetStatus(ctx context.Context, id string, status project.Status) error
}

type RecordProjectRepository struct {
	c collection[project.Project]
}

func NewRecordProjectRepository(store RecordStore, log *zap.Logger) *RecordProjectRepository {
	return &RecordProjectRepository{c: newCollection(store, CollectionProjects, decodeProject, log)}
}

func (r *RecordProjectRepository) FindAll(ctx context.Context) ([]project.Project, error) {
	return r.c.list(ctx)
}

func (r *RecordProjectRepository) FindByID(ctx context.Context, id string) (project.Project, error) {
	return r.c.find(ctx, id)
}

func (r *RecordProjectRepository) Create(ctx context.Context, p project.Project) error {
	return r.c.insert(ctx, encodeProject(p))
}

// Update replaces the first tuple keyed p.ID.
func (r *RecordProjectRepository) Update(ctx context.Context, p project.Project) error {
	return r.c.replaceFirst(ctx, p.ID, encodeProject(p))
}

func (r *RecordProjectRepository) Delete(ctx context.Context, id string) error {
	return r.c.deleteByKey(ctx, id)
}

// SetStatus rewrites only the status field of the first tuple keyed id.
func (r *RecordProjectRepository) SetStatus(ctx context.Context, id string, status project.Status) error {
	done := false
	n, err := r.c.rewrite(ctx, func(rec Record) (Record, bool) {
		if done || rec.Key() != id || len(rec) < projectFields {
			return rec, false
		}
		done = true
		rec[4] = status.String()
		return rec, true
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s %q: %w", CollectionProjects, id, ErrRecordNotFound)
	}
	return nil
}
