package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"team-formation/internal/domain/employee"
	"team-formation/internal/domain/skill"

	"go.uber.org/zap"
)

type EmployeeRepository interface {
	FindAll(ctx context.Context) ([]employee.Employee, error)
	FindByID(ctx context.Context, id string) (employee.Employee, error)
	Create(ctx context.Context, e employee.Employee) error
	Update(ctx context.Context, e employee.Employee) error
	Delete(ctx context.Context, id string) error
	SetAvailability(ctx context.Context, ids []string, available bool) error
	AddSkill(ctx context.Context, id string, name string) error
}

type RecordEmployeeRepository struct {
	c collection[employee.Employee]
}

func NewRecordEmployeeRepository(store RecordStore, log *zap.Logger) *RecordEmployeeRepository {
	return &RecordEmployeeRepository{c: newCollection(store, CollectionEmployees, decodeEmployee, log)}
}

func (r *RecordEmployeeRepository) FindAll(ctx context.Context) ([]employee.Employee, error) {
	return r.c.list(ctx)
}

func (r *RecordEmployeeRepository) FindByID(ctx context.Context, id string) (employee.Employee, error) {
	return r.c.find(ctx, id)
}

func (r *RecordEmployeeRepository) Create(ctx context.Context, e employee.Employee) error {
	return r.c.insert(ctx, encodeEmployee(e))
}

// Update replaces the first tuple keyed e.ID.
func (r *RecordEmployeeRepository) Update(ctx context.Context, e employee.Employee) error {
	return r.c.replaceFirst(ctx, e.ID, encodeEmployee(e))
}

func (r *RecordEmployeeRepository) Delete(ctx context.Context, id string) error {
	return r.c.deleteByKey(ctx, id)
}

// SetAvailability flips the availability field of every listed employee in
// a single collection write. Nothing is written if any id is unknown.
func (r *RecordEmployeeRepository) SetAvailability(ctx context.Context, ids []string, available bool) error {
	if len(ids) == 0 {
		return nil
	}
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = false
	}

	recs, err := r.c.rows(ctx)
	if err != nil {
		return err
	}
	for _, rec := range recs {
		if _, ok := want[rec.Key()]; ok && len(rec) >= employeeFields {
			want[rec.Key()] = true
		}
	}
	var missing []string
	for _, id := range ids {
		if !want[id] {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%s %s: %w", CollectionEmployees, strings.Join(missing, ","), ErrRecordNotFound)
	}

	value := strconv.FormatBool(available)
	_, err = r.c.rewrite(ctx, func(rec Record) (Record, bool) {
		if _, ok := want[rec.Key()]; !ok || len(rec) < employeeFields {
			return rec, false
		}
		rec[4] = value
		return rec, true
	})
	return err
}

// AddSkill upserts name into the employee's skill list.
func (r *RecordEmployeeRepository) AddSkill(ctx context.Context, id string, name string) error {
	name = strings.TrimSpace(name)
	found := false
	_, err := r.c.rewrite(ctx, func(rec Record) (Record, bool) {
		if found || rec.Key() != id || len(rec) < employeeFields {
			return rec, false
		}
		found = true
		skills := skill.SplitList(rec[3])
		if skill.NewSet(skills...).Has(name) {
			return rec, false
		}
		rec[3] = skill.JoinList(append(skills, name))
		return rec, true
	})
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%s %q: %w", CollectionEmployees, id, ErrRecordNotFound)
	}
	return nil
}
