package reconcile

import (
	"errors"
	"fmt"
)

// ErrAmbiguousMatch is returned when a tag lookup matches more than one
// route table. The user has to disambiguate, typically by adding tags or
// switching to an ID lookup.
var ErrAmbiguousMatch = errors.New("tags provided do not identify a unique route table")

// Reconciliation phases, reported in PhaseError so a failure names the step
// that aborted the pipeline.
const (
	PhaseLookup       = "lookup"
	PhaseCreate       = "create"
	PhaseDelete       = "delete"
	PhaseTags         = "tags"
	PhaseAssociations = "associations"
	PhaseRoutes       = "routes"
	PhaseRefresh      = "refresh"
)

// PhaseError wraps a failure with the pipeline phase it occurred in.
// Earlier phases may already have mutated remote state; there is no
// rollback.
type PhaseError struct {
	Phase string
	Err   error
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Phase, e.Err)
}

func (e *PhaseError) Unwrap() error {
	return e.Err
}

func phaseErr(phase string, err error) error {
	if err == nil {
		return nil
	}
	return &PhaseError{Phase: phase, Err: err}
}
