package repository

import (
	"context"

	"team-formation/internal/domain/skill"

	"go.uber.org/zap"
)

type SkillRepository interface {
	FindAll(ctx context.Context) ([]skill.Skill, error)
	FindByID(ctx context.Context, id string) (skill.Skill, error)
	Create(ctx context.Context, s skill.Skill) error
	Update(ctx context.Context, s skill.Skill) error
	Delete(ctx context.Context, id string) error
}

type RecordSkillRepository struct {
	c collection[skill.Skill]
}

func NewRecordSkillRepository(store RecordStore, log *zap.Logger) *RecordSkillRepository {
	return &RecordSkillRepository{c: newCollection(store, CollectionSkills, decodeSkill, log)}
}

func (r *RecordSkillRepository) FindAll(ctx context.Context) ([]skill.Skill, error) {
	return r.c.list(ctx)
}

func (r *RecordSkillRepository) FindByID(ctx context.Context, id string) (skill.Skill, error) {
	return r.c.find(ctx, id)
}

func (r *RecordSkillRepository) Create(ctx context.Context, s skill.Skill) error {
	return r.c.insert(ctx, encodeSkill(s))
}

func (r *RecordSkillRepository) Update(ctx context.Context, s skill.Skill) error {
	return r.c.replaceFirst(ctx, s.ID, encodeSkill(s))
}

func (r *RecordSkillRepository) Delete(ctx context.Context, id string) error {
	return r.c.deleteByKey(ctx, id)
}
