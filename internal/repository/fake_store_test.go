package repository

import (
	"context"
	"errors"
)

type memStore struct {
	data map[Collection][]Record

	failReplace map[Collection]error
	replaces    int
}

func newMemStore(seed map[Collection][]Record) *memStore {
	m := &memStore{data: map[Collection][]Record{}, failReplace: map[Collection]error{}}
	for c, recs := range seed {
		m.data[c] = cloneAll(recs)
	}
	return m
}

func cloneAll(recs []Record) []Record {
	out := make([]Record, len(recs))
	for i, r := range recs {
		out[i] = r.Clone()
	}
	return out
}

func (m *memStore) LoadAll(_ context.Context, c Collection) ([]Record, error) {
	return cloneAll(m.data[c]), nil
}

func (m *memStore) AppendOne(_ context.Context, c Collection, rec Record) error {
	m.data[c] = append(m.data[c], rec.Clone())
	return nil
}

func (m *memStore) ReplaceAll(_ context.Context, c Collection, recs []Record) error {
	if err := m.failReplace[c]; err != nil {
		return err
	}
	m.replaces++
	m.data[c] = cloneAll(recs)
	return nil
}

var errDisk = errors.New("disk full")
