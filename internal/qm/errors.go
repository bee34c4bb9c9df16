package qm

import "fmt"

// ResourceExhausted reports that a configured ceiling was hit before the
// computation finished: too many input variables, too many implicants, or
// too many merge steps. Callers may retry with a looser Limits or a
// cheaper covering mode, or treat it as fatal.
type ResourceExhausted struct {
	Msg string
}

func (e *ResourceExhausted) Error() string {
	return "resource exhausted: " + e.Msg
}

func exhaustedf(format string, args ...interface{}) error {
	return &ResourceExhausted{Msg: fmt.Sprintf(format, args...)}
}

// CoverageError reports that a selected cover does not reproduce its
// required minterm set. Given a validated table this is unreachable; it
// flags a broken internal invariant, not bad input.
type CoverageError struct {
	Msg string
}

func (e *CoverageError) Error() string {
	return "cover verification: " + e.Msg
}

func coveragef(format string, args ...interface{}) error {
	return &CoverageError{Msg: fmt.Sprintf(format, args...)}
}
