package model

import (
	"errors"
	"fmt"
)

// Error kinds. Every business error wraps exactly one of these so callers
// can classify with errors.Is.
var (
	ErrNotFound           = errors.New("not found")
	ErrPreconditionFailed = errors.New("precondition failed")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrValidation         = errors.New("validation failed")
)

var (
	// Lookup errors
	ErrPlayerNotFound = fmt.Errorf("player %w", ErrNotFound)
	ErrGameNotFound   = fmt.Errorf("game %w", ErrNotFound)
	ErrTeamNotFound   = fmt.Errorf("team %w", ErrNotFound)

	// Membership errors
	ErrAlreadyInGame = fmt.Errorf("player is already in game: %w", ErrPreconditionFailed)
	ErrNotInGame     = fmt.Errorf("player is not in game: %w", ErrPreconditionFailed)
	ErrAlreadyInTeam = fmt.Errorf("player is already in team: %w", ErrPreconditionFailed)
	ErrNotInTeam     = fmt.Errorf("player is not in team: %w", ErrPreconditionFailed)
	ErrTeamNotInGame = fmt.Errorf("team does not belong to game: %w", ErrPreconditionFailed)

	// Ownership errors
	ErrNotGameOwner = fmt.Errorf("player is not the game owner: %w", ErrUnauthorized)
	ErrNotTeamOwner = fmt.Errorf("player is not the team owner: %w", ErrUnauthorized)

	// Input errors
	ErrNameRequired = fmt.Errorf("name is required: %w", ErrValidation)
	ErrIDRequired   = fmt.Errorf("id is required: %w", ErrValidation)
)

// FieldError reports a required request field that was missing. Err is
// one of the ErrValidation family.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return e.Field + " is required"
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// PreconditionError reports a reference that could not be resolved on a
// path where that counts as a failed precondition rather than a lookup
// failure. It deliberately does not unwrap to ErrNotFound.
type PreconditionError struct {
	Cause error
}

func (e *PreconditionError) Error() string {
	return "precondition failed: " + e.Cause.Error()
}

// Is lets errors.Is(err, ErrPreconditionFailed) match
func (e *PreconditionError) Is(target error) bool {
	return target == ErrPreconditionFailed
}

// Precondition converts a lookup failure into a precondition failure.
// Other errors are returned unchanged.
func Precondition(err error) error {
	if errors.Is(err, ErrNotFound) {
		return &PreconditionError{Cause: err}
	}
	return err
}
