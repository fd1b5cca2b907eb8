package repository

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// collection adapts a RecordStore collection to a typed view. Bulk reads skip
// malformed tuples; keyed reads surface them.
type collection[T any] struct {
	store  RecordStore
	name   Collection
	decode func(Record) (T, error)
	log    *zap.Logger
}

func newCollection[T any](store RecordStore, name Collection, decode func(Record) (T, error), log *zap.Logger) collection[T] {
	if log == nil {
		log = zap.NewNop()
	}
	return collection[T]{store: store, name: name, decode: decode, log: log.With(zap.String("collection", string(name)))}
}

// rows returns the stored tuples without blank ones.
func (c collection[T]) rows(ctx context.Context) ([]Record, error) {
	recs, err := c.store.LoadAll(ctx, c.name)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", c.name, err)
	}
	out := recs[:0:0]
	for _, r := range recs {
		if r.Blank() {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (c collection[T]) list(ctx context.Context) ([]T, error) {
	recs, err := c.rows(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(recs))
	for i, r := range recs {
		v, err := c.decode(r)
		if err != nil {
			c.log.Warn("skipping malformed record", zap.Int("index", i), zap.Error(err))
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

// find decodes the first tuple whose key is id.
func (c collection[T]) find(ctx context.Context, id string) (T, error) {
	var zero T
	recs, err := c.rows(ctx)
	if err != nil {
		return zero, err
	}
	for i, r := range recs {
		if r.Key() != id {
			continue
		}
		v, err := c.decode(r)
		if err != nil {
			var me *MalformedError
			if errors.As(err, &me) {
				me.Index = i
			}
			return zero, err
		}
		return v, nil
	}
	return zero, fmt.Errorf("%s %q: %w", c.name, id, ErrRecordNotFound)
}

func (c collection[T]) exists(ctx context.Context, id string) (bool, error) {
	recs, err := c.rows(ctx)
	if err != nil {
		return false, err
	}
	for _, r := range recs {
		if r.Key() == id {
			return true, nil
		}
	}
	return false, nil
}

// insert appends rec unless a tuple with the same key already exists.
func (c collection[T]) insert(ctx context.Context, rec Record) error {
	ok, err := c.exists(ctx, rec.Key())
	if err != nil {
		return err
	}
	if ok {
		return fmt.Errorf("%s %q: %w", c.name, rec.Key(), ErrDuplicateRecord)
	}
	if err := c.store.AppendOne(ctx, c.name, rec); err != nil {
		return fmt.Errorf("append %s: %w", c.name, err)
	}
	return nil
}

// rewrite applies edit to every tuple and replaces the collection in one
// write. edit returns the tuple to keep and whether it touched it; a nil
// tuple drops the row. Untouched tuples are written back unchanged.
func (c collection[T]) rewrite(ctx context.Context, edit func(Record) (Record, bool)) (int, error) {
	recs, err := c.rows(ctx)
	if err != nil {
		return 0, err
	}
	out := make([]Record, 0, len(recs))
	touched := 0
	for _, r := range recs {
		next, hit := edit(r.Clone())
		if hit {
			touched++
		}
		if next == nil {
			continue
		}
		out = append(out, next)
	}
	if touched == 0 {
		return 0, nil
	}
	if err := c.store.ReplaceAll(ctx, c.name, out); err != nil {
		return 0, fmt.Errorf("replace %s: %w", c.name, err)
	}
	return touched, nil
}

// replaceFirst swaps the first tuple keyed id for rec.
func (c collection[T]) replaceFirst(ctx context.Context, id string, rec Record) error {
	done := false
	n, err := c.rewrite(ctx, func(r Record) (Record, bool) {
		if done || r.Key() != id {
			return r, false
		}
		done = true
		return rec, true
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s %q: %w", c.name, id, ErrRecordNotFound)
	}
	return nil
}

func (c collection[T]) deleteByKey(ctx context.Context, id string) error {
	n, err := c.rewrite(ctx, func(r Record) (Record, bool) {
		if r.Key() == id {
			return nil, true
		}
		return r, false
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s %q: %w", c.name, id, ErrRecordNotFound)
	}
	return nil
}
