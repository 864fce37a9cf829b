package usecase

import (
	"errors"
	"fmt"

	"github.com/riskibarqy/community-league/internal/domain/roster"
	"github.com/riskibarqy/community-league/internal/domain/team"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrConflict              = errors.New("resource conflict")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// storeConflicts are repository errors raised by unique or foreign key
// constraints that a concurrent write can trip after the usecase checks pass.
var storeConflicts = []error{roster.ErrDuplicateJersey, team.ErrReferenced}

// asConflict tags err with ErrConflict when it wraps one of storeConflicts.
func asConflict(err error) error {
	for _, target := range storeConflicts {
		if errors.Is(err, target) {
			return fmt.Errorf("%w: %w", ErrConflict, err)
		}
	}
	return err
}
