package usecase

import (
	"errors"
	"fmt"

	"team-formation/internal/repository"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("validation failed")
	ErrPersistence     = errors.New("persistence failure")
	ErrMalformedRecord = errors.New("malformed record")
)

func validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func notFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// storeErr maps a repository error onto the usecase taxonomy. Errors that
// already carry a usecase kind pass through untouched.
func storeErr(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrValidation),
		errors.Is(err, ErrPersistence), errors.Is(err, ErrMalformedRecord):
		return err
	case errors.Is(err, repository.ErrRecordNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, repository.ErrMalformedRecord):
		return fmt.Errorf("%w: %w", ErrMalformedRecord, err)
	case errors.Is(err, repository.ErrDuplicateRecord):
		return fmt.Errorf("%w: %w", ErrValidation, err)
	default:
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
}
