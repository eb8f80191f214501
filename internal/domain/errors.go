package domain

import (
	"errors"
	"fmt"

	m "github.com/mouse-blink/nodecov/internal/model"
)

// ErrMissingEntrypoint is returned when no entrypoint was given.
var ErrMissingEntrypoint = errors.New("undefined entrypoint")

// CollectorUnavailableError means no profiling session could be established.
type CollectorUnavailableError struct {
	Err error
}

func (e *CollectorUnavailableError) Error() string {
	return fmt.Sprintf("coverage collector unavailable: %v", e.Err)
}

func (e *CollectorUnavailableError) Unwrap() error {
	return e.Err
}

// EntrypointError wraps a failure raised while loading or running the entrypoint.
type EntrypointError struct {
	Entrypoint string
	Err        error
}

func (e *EntrypointError) Error() string {
	return fmt.Sprintf("entrypoint %s failed: %v", e.Entrypoint, e.Err)
}

func (e *EntrypointError) Unwrap() error {
	return e.Err
}

// SourceUnavailableError means a covered file could not be read back for reporting.
type SourceUnavailableError struct {
	Path m.Path
	Err  error
}

func (e *SourceUnavailableError) Error() string {
	return fmt.Sprintf("source unavailable for %s: %v", e.Path, e.Err)
}

func (e *SourceUnavailableError) Unwrap() error {
	return e.Err
}
