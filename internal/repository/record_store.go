package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrRecordNotFound  = errors.New("record not found")
	ErrMalformedRecord = errors.New("malformed record")
	ErrDuplicateRecord = errors.New("record already exists")
)

// Record is one stored tuple. Field order is fixed per collection.
type Record []string

func (r Record) Key() string {
	if len(r) == 0 {
		return ""
	}
	return strings.TrimSpace(r[0])
}

func (r Record) Blank() bool {
	for _, f := range r {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

func (r Record) Clone() Record {
	return append(Record(nil), r...)
}

type Collection string

const (
	CollectionEmployees      Collection = "employees"
	CollectionSkills         Collection = "skills"
	CollectionProjects       Collection = "projects"
	CollectionCollaborations Collection = "collaborations"
	CollectionAssignments    Collection = "scoring"
)

func Collections() []Collection {
	return []Collection{
		CollectionEmployees,
		CollectionSkills,
		CollectionProjects,
		CollectionCollaborations,
		CollectionAssignments,
	}
}

func (c Collection) Valid() bool {
	for _, known := range Collections() {
		if c == known {
			return true
		}
	}
	return false
}

// RecordStore persists whole collections of tuples. A collection that was
// never written loads as empty. Each call is atomic with respect to readers:
// a reader sees either the old or the new collection, never a mix.
type RecordStore interface {
	LoadAll(ctx context.Context, c Collection) ([]Record, error)
	AppendOne(ctx context.Context, c Collection, rec Record) error
	ReplaceAll(ctx context.Context, c Collection, recs []Record) error
}

// MalformedError reports a stored tuple that cannot be decoded.
type MalformedError struct {
	Collection Collection
	Index      int
	Reason     string
}

func (e *MalformedError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("malformed %s record: %s", e.Collection, e.Reason)
	}
	return fmt.Sprintf("malformed %s record at index %d: %s", e.Collection, e.Index, e.Reason)
}

func (e *MalformedError) Unwrap() error {
	return ErrMalformedRecord
}

// WithRollback snapshots collections, runs fn and restores every snapshot
// if fn fails. A failed restore is joined onto fn's error.
func WithRollback(ctx context.Context, store RecordStore, collections []Collection, fn func() error) error {
	snapshots := make(map[Collection][]Record, len(collections))
	for _, c := range collections {
		recs, err := store.LoadAll(ctx, c)
		if err != nil {
			return fmt.Errorf("snapshot %s: %w", c, err)
		}
		snapshots[c] = recs
	}

	err := fn()
	if err == nil {
		return nil
	}

	errs := []error{err}
	for _, c := range collections {
		if rerr := store.ReplaceAll(context.WithoutCancel(ctx), c, snapshots[c]); rerr != nil {
			errs = append(errs, fmt.Errorf("restore %s: %w", c, rerr))
		}
	}
	return errors.Join(errs...)
}
