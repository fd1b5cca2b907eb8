package repository

import (
	"context"
	"fmt"

	"team-formation/internal/domain/assignment"

	"go.uber.org/zap"
)

type AssignmentRepository interface {
	FindAll(ctx context.Context) ([]assignment.Assignment, error)
	// Append assigns the next id to a and persists it.
	Append(ctx context.Context, a assignment.Assignment) (assignment.Assignment, error)
	LatestForProject(ctx context.Context, projectID string) (assignment.Assignment, error)
}

type RecordAssignmentRepository struct {
	c collection[assignment.Assignment]
}

func NewRecordAssignmentRepository(store RecordStore, log *zap.Logger) *RecordAssignmentRepository {
	return &RecordAssignmentRepository{c: newCollection(store, CollectionAssignments, decodeAssignment, log)}
}

func (r *RecordAssignmentRepository) FindAll(ctx context.Context) ([]assignment.Assignment, error) {
	return r.c.list(ctx)
}

func (r *RecordAssignmentRepository) Append(ctx context.Context, a assignment.Assignment) (assignment.Assignment, error) {
	recs, err := r.c.rows(ctx)
	if err != nil {
		return assignment.Assignment{}, err
	}
	ids := make([]string, len(recs))
	for i, rec := range recs {
		ids[i] = rec.Key()
	}
	a.ID = assignment.NextID(ids)

	if err := r.c.store.AppendOne(ctx, CollectionAssignments, encodeAssignment(a)); err != nil {
		return assignment.Assignment{}, fmt.Errorf("append %s: %w", CollectionAssignments, err)
	}
	return a, nil
}

// LatestForProject returns the most recently appended assignment for the
// project.
func (r *RecordAssignmentRepository) LatestForProject(ctx context.Context, projectID string) (assignment.Assignment, error) {
	all, err := r.c.list(ctx)
	if err != nil {
		return assignment.Assignment{}, err
	}
	for i := len(all) - 1; i >= 0; i-- {
		if all[i].ProjectID == projectID {
			return all[i], nil
		}
	}
	return assignment.Assignment{}, fmt.Errorf("%s for project %q: %w", CollectionAssignments, projectID, ErrRecordNotFound)
}
