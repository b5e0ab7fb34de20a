package step

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/mensylisir/flowctx/common"
	"github.com/mensylisir/flowctx/hook"
	"github.com/mensylisir/flowctx/record"
)

// Run is the step-execution wrapper: it builds a context record from the
// caller-supplied input through the step's schema, invokes the business
// logic, and intercepts the failure signal at the call site.
//
// The returned record carries the outcome: on a business failure the record
// comes back with Failure() true and a nil error, because aborting a step is
// the designed-for control-flow path, not a bug. A non-nil error means
// either the record could not be built (missing required fields) or the step
// returned a genuine error (including a recovered panic).
func Run(s Step, input any, log *logrus.Entry) (*record.Record, error) {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	log = log.WithField(common.LogFieldStep, s.Name())

	rec, err := s.Type().Build(input)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to build context record for step %s", s.Name())
	}

	log.Debugf("Executing step: %s (%s)", s.Name(), s.Description())

	callErr := hook.Call(hook.Funcs{
		TryFunc: func() error {
			return s.Call(rec, log)
		},
	})
	if callErr == nil {
		log.Debugf("Step %s completed successfully", s.Name())
		return rec, nil
	}

	if f, ok := record.AsFailure(callErr); ok {
		failed := f.Record()
		if failed == nil {
			failed = rec
		}
		log.Warnf("Step %s signaled failure: %v", s.Name(), failed.Err())
		return failed, nil
	}

	return rec, errors.Wrapf(callErr, "step %s execution failed", s.Name())
}
