package wishsheet

import (
	"errors"
	"fmt"
)

// ErrNoData indicates a sheet decoded to nothing usable.
var ErrNoData = errors.New("no data for sheet")

// ErrNoWishes indicates a mode has zero usable wishes; the caller shows a
// "data unavailable" state and may retry.
var ErrNoWishes = errors.New("no wishes available")

// ErrUnknownMode indicates a mode name that is neither Oracle nor MaxFrei.
var ErrUnknownMode = errors.New("unknown mode")

// LoadError represents a failure while loading one sheet.
type LoadError struct {
	Sheet string
	Stage string // "fetch", "decode"
	Err   error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load error in sheet %q (%s): %v", e.Sheet, e.Stage, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// NewLoadError creates a new LoadError.
func NewLoadError(sheet, stage string, err error) *LoadError {
	return &LoadError{
		Sheet: sheet,
		Stage: stage,
		Err:   err,
	}
}
