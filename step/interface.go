package step

import (
	"github.com/sirupsen/logrus"

	"github.com/mensylisir/flowctx/record"
	"github.com/mensylisir/flowctx/schema"
)

// Step is one unit of business logic. A step owns a schema (its StepType),
// receives a context record built through that schema, and either completes,
// returns a genuine error, or returns the record's failure signal via
// rec.Fail to abort the rest of the pipeline.
type Step interface {
	// Name returns the name of the step.
	Name() string

	// Description returns a human-readable description of the step.
	Description() string

	// Type returns the step type whose schema governs the context record
	// this step is called with.
	Type() *schema.StepType

	// Call runs the step's business logic against the record.
	Call(rec *record.Record, log *logrus.Entry) error

	// Rollback undoes the step's effects after a later step failed. It is
	// only invoked for steps that completed successfully.
	Rollback(rec *record.Record, log *logrus.Entry) error
}
