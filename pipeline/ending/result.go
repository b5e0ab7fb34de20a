package ending

import (
	"fmt"
	"strings"
)

// RunStatus defines the outcome of a pipeline run.
type RunStatus int

const (
	RunPending    RunStatus = iota // Run has not finished or is in an indeterminate state
	RunSuccess                     // Every step completed successfully
	RunFailed                      // A step failed or errored; no rollback was attempted
	RunRolledBack                  // A step failed and completed steps were rolled back
	RunSkipped                     // Run was skipped entirely
)

// String returns a string representation of the RunStatus.
func (s RunStatus) String() string {
	switch s {
	case RunPending:
		return "PENDING"
	case RunSuccess:
		return "SUCCESS"
	case RunFailed:
		return "FAILED"
	case RunRolledBack:
		return "ROLLED_BACK"
	case RunSkipped:
		return "SKIPPED"
	default:
		return fmt.Sprintf("UNKNOWN_STATUS_%d", int(s))
	}
}

// RunResult holds the outcome of a pipeline run.
type RunResult struct {
	Status  RunStatus
	Message string
	Errors  []error // Aggregates step and rollback errors
}

// NewRunResult creates a new RunResult, defaulting to Pending. The pipeline
// sets an explicit status when the run settles.
func NewRunResult() *RunResult {
	return &RunResult{
		Status: RunPending,
		Errors: make([]error, 0),
	}
}

// IsFailed checks whether the run is considered failed. A result is failed
// if its status is explicitly Failed or RolledBack, or if errors accumulated
// while the status is still Pending.
func (r *RunResult) IsFailed() bool {
	if r.Status == RunFailed || r.Status == RunRolledBack {
		return true
	}
	if len(r.Errors) > 0 && r.Status == RunPending {
		return true
	}
	return false
}

// AddError appends an error to the list of errors. It moves a Pending or
// Success status to Failed, since accumulating an error implies a problem.
func (r *RunResult) AddError(err error) {
	if err == nil {
		return
	}
	r.Errors = append(r.Errors, err)
	if r.Status == RunPending || r.Status == RunSuccess {
		r.Status = RunFailed
	}
}

// SetError sets a primary message and records the error. This always marks
// the result as Failed.
func (r *RunResult) SetError(err error, message string) {
	r.Message = message
	if err != nil {
		r.Errors = append(r.Errors, err)
	} else if message != "" && len(r.Errors) == 0 {
		r.Errors = append(r.Errors, fmt.Errorf("%s", message))
	}
	r.Status = RunFailed
}

// CombinedError returns a single error aggregating all recorded errors, or
// nil if there are none.
func (r *RunResult) CombinedError() error {
	if len(r.Errors) == 0 {
		return nil
	}
	if len(r.Errors) == 1 {
		return r.Errors[0]
	}
	var errorStrings []string
	for _, e := range r.Errors {
		errorStrings = append(errorStrings, e.Error())
	}
	return fmt.Errorf("multiple errors occurred: %s", strings.Join(errorStrings, "; "))
}

// SetStatus sets the run's result status.
func (r *RunResult) SetStatus(status RunStatus) {
	r.Status = status
}

// SetMessage sets a descriptive message for the result.
func (r *RunResult) SetMessage(message string) {
	r.Message = message
}
