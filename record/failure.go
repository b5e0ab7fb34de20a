package record

import (
	"errors"
	"fmt"
)

// Failure is the signal produced by Record.Fail. It carries the record at
// the moment of failure and unwinds execution up to the collaborator that
// invoked the step. It is not meant to cross a second step's execution: the
// step wrapper intercepts it at the call site and hands the failed record
// back to the orchestrator.
type Failure struct {
	rec *Record
}

// Error implements the error interface.
func (f *Failure) Error() string {
	if f.rec != nil && f.rec.Err() != nil {
		return fmt.Sprintf("step failed: %v", f.rec.Err())
	}
	return "step failed"
}

// Record returns the failed record.
func (f *Failure) Record() *Record {
	return f.rec
}

// AsFailure unwraps err down to a *Failure if one is in its chain. The step
// wrapper uses it to distinguish a designed-for business failure from a
// genuine error.
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}
