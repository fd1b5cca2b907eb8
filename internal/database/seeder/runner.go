package seeder

import (
	"context"
	"errors"
	"fmt"

	"team-formation/internal/usecase"

	"go.uber.org/zap"
)

type Runner struct {
	Seeders []Seeder
	Log     *zap.Logger
}

// Run applies the seeders in order and returns the number of records written.
func (r Runner) Run(ctx context.Context, uc usecase.RecordsUsecase) (int, error) {
	if uc == nil {
		return 0, errors.New("nil records usecase")
	}
	log := r.Log
	if log == nil {
		log = zap.NewNop()
	}

	total := 0
	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		n, err := s.Run(ctx, uc)
		total += n
		if err != nil {
			return total, fmt.Errorf("seed %s: %w", s.Name(), err)
		}
		log.Info("seeded", zap.String("seeder", s.Name()), zap.Int("created", n))
	}
	return total, nil
}
