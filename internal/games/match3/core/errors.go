package core

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfBounds is returned for positions outside the grid.
	ErrOutOfBounds = errors.New("match3: position out of bounds")

	// ErrInvalidDimensions is returned for unusable grid sizes or variety counts.
	ErrInvalidDimensions = errors.New("match3: invalid grid dimensions")

	// ErrUnplayable is returned when no board with a legal move exists for the settings.
	ErrUnplayable = errors.New("match3: no playable board for these settings")

	// ErrVacantCell is returned when reading a cell emptied mid-resolution.
	ErrVacantCell = errors.New("match3: cell is vacant")
)

// OutOfBoundsError describes which position missed the grid.
type OutOfBoundsError struct {
	Pos    Pos
	Height int
	Width  int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("match3: position %s outside %dx%d grid", e.Pos, e.Height, e.Width)
}

// Unwrap lets errors.Is match ErrOutOfBounds.
func (e *OutOfBoundsError) Unwrap() error {
	return ErrOutOfBounds
}
