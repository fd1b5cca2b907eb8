package repository

import (
	"context"
	"fmt"

	"team-formation/internal/domain/collaboration"

	"go.uber.org/zap"
)

type CollaborationRepository interface {
	FindAll(ctx context.Context) ([]collaboration.Collaboration, error)
	Create(ctx context.Context, c collaboration.Collaboration) error
	Update(ctx context.Context, c collaboration.Collaboration) error
	Delete(ctx context.Context, pair collaboration.Pair) error
}

type RecordCollaborationRepository struct {
	c collection[collaboration.Collaboration]
}

func NewRecordCollaborationRepository(store RecordStore, log *zap.Logger) *RecordCollaborationRepository {
	return &RecordCollaborationRepository{c: newCollection(store, CollectionCollaborations, decodeCollaboration, log)}
}

func (r *RecordCollaborationRepository) FindAll(ctx context.Context) ([]collaboration.Collaboration, error) {
	return r.c.list(ctx)
}

// Create appends c. Duplicate pairs are allowed; lookups use the first.
func (r *RecordCollaborationRepository) Create(ctx context.Context, c collaboration.Collaboration) error {
	if err := r.c.store.AppendOne(ctx, CollectionCollaborations, encodeCollaboration(c)); err != nil {
		return fmt.Errorf("append %s: %w", CollectionCollaborations, err)
	}
	return nil
}

// Update replaces the metrics of the first record for c.Pair, in either
// order. The stored orientation and trailing fields are kept.
func (r *RecordCollaborationRepository) Update(ctx context.Context, c collaboration.Collaboration) error {
	done := false
	n, err := r.c.rewrite(ctx, func(rec Record) (Record, bool) {
		if done {
			return rec, false
		}
		current, err := decodeCollaboration(rec)
		if err != nil || !current.Pair.Matches(c.Pair.A, c.Pair.B) {
			return rec, false
		}
		done = true
		current.Count, current.SuccessRate, current.Compatibility = c.Count, c.SuccessRate, c.Compatibility
		return encodeCollaboration(current), true
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s %q: %w", CollectionCollaborations, c.Pair.String(), ErrRecordNotFound)
	}
	return nil
}

// Delete removes every record for the pair, in either order.
func (r *RecordCollaborationRepository) Delete(ctx context.Context, pair collaboration.Pair) error {
	n, err := r.c.rewrite(ctx, func(rec Record) (Record, bool) {
		p, ok := collaboration.ParsePair(rec.Key())
		if ok && p.Matches(pair.A, pair.B) {
			return nil, true
		}
		return rec, false
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s %q: %w", CollectionCollaborations, pair.String(), ErrRecordNotFound)
	}
	return nil
}
