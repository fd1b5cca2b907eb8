package seeder

import (
	"context"

	"team-formation/internal/usecase"
)

// Seeder writes one collection of a fixture. Seeders skip records that
// already exist, so running them twice is harmless.
type Seeder interface {
	Name() string
	Run(ctx context.Context, uc usecase.RecordsUsecase) (int, error)
}
