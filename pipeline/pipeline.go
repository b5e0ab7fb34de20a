package pipeline

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/mensylisir/flowctx/cache"
	"github.com/mensylisir/flowctx/common"
	"github.com/mensylisir/flowctx/pipeline/ending"
	"github.com/mensylisir/flowctx/record"
	"github.com/mensylisir/flowctx/step"
	ftime "github.com/mensylisir/flowctx/time"
)

// Pipeline runs an ordered list of steps sequentially, forwarding the
// accumulated context from each completed step to the next. When a step
// fails or errors, the remaining steps are skipped and the completed ones
// are rolled back in reverse order.
type Pipeline struct {
	name        string
	description string
	steps       []step.Step
}

// New creates a Pipeline with no steps. Steps are added via AddStep.
func New(name, description string) *Pipeline {
	return &Pipeline{
		name:        name,
		description: description,
		steps:       make([]step.Step, 0),
	}
}

// Name returns the name of the pipeline.
func (p *Pipeline) Name() string {
	return p.name
}

// Description returns the description of the pipeline.
func (p *Pipeline) Description() string {
	return p.description
}

// Steps returns the list of steps in the pipeline. The returned slice is a
// copy to prevent external modification.
func (p *Pipeline) Steps() []step.Step {
	s := make([]step.Step, len(p.steps))
	copy(s, p.steps)
	return s
}

// AddStep appends a step to the pipeline's execution list.
func (p *Pipeline) AddStep(s step.Step) *Pipeline {
	p.steps = append(p.steps, s)
	return p
}

// Run holds the outcome of one pipeline execution: the run identity, the
// settled result, each completed step's record, and the record of the step
// the run settled on.
type Run struct {
	ID      string
	Result  *ending.RunResult
	Records *cache.Cache[string, *record.Record]
	Final   *record.Record
}

// Execute runs the pipeline against the supplied input. The input is handed
// to the first step's Build; each subsequent step receives the previous
// record's ToMap, so every step builds (and validates) its own record from
// the accumulated field values, picking up what it declared and dropping the
// rest.
//
// A step signaling failure settles the run: completed steps are rolled back
// in reverse order and the result status becomes RolledBack (or Failed when
// nothing had completed yet). Rollback errors are aggregated on the result
// but do not stop the remaining rollbacks.
func (p *Pipeline) Execute(input any, log *logrus.Entry) *Run {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}

	run := &Run{
		ID:      uuid.New().String(),
		Result:  ending.NewRunResult(),
		Records: cache.NewCache[string, *record.Record](),
	}
	log = log.WithFields(logrus.Fields{
		common.LogFieldPipeline: p.name,
		common.LogFieldRun:      run.ID,
	})

	if len(p.steps) == 0 {
		log.Warnf("Pipeline %s has no steps to execute", p.name)
		run.Result.SetStatus(ending.RunSkipped)
		run.Result.SetMessage("pipeline has no steps")
		return run
	}

	log.Infof("Executing pipeline: %s (%s), %d steps", p.name, p.description, len(p.steps))
	start := time.Now()

	var completed []step.Step
	current := input

	for i, s := range p.steps {
		log.Infof("Executing step %d/%d: %s", i+1, len(p.steps), s.Name())

		rec, err := step.Run(s, current, log)
		if err != nil {
			log.Errorf("Step %s errored: %v", s.Name(), err)
			run.Final = rec
			run.Result.SetError(errors.Wrapf(err, "step %s in pipeline %s", s.Name(), p.name),
				"step "+s.Name()+" errored")
			p.rollback(completed, run, log)
			return run
		}

		run.Final = rec
		if rec.Failure() {
			log.Warnf("Step %s failed, aborting pipeline %s: %v", s.Name(), p.name, rec.Err())
			run.Result.SetError(nil, "step "+s.Name()+" failed")
			p.rollback(completed, run, log)
			return run
		}

		run.Records.Set(s.Name(), rec)
		completed = append(completed, s)
		current = rec.ToMap()
	}

	log.Infof("Pipeline %s completed successfully in %s", p.name, ftime.Since(start))
	run.Result.SetStatus(ending.RunSuccess)
	run.Result.SetMessage("pipeline completed")
	return run
}

// rollback undoes completed steps in reverse completion order, using the
// record each step produced. It settles the result status to RolledBack when
// at least one step had completed, otherwise leaves it Failed.
func (p *Pipeline) rollback(completed []step.Step, run *Run, log *logrus.Entry) {
	if len(completed) == 0 {
		return
	}
	for i := len(completed) - 1; i >= 0; i-- {
		s := completed[i]
		rec, ok := run.Records.Get(s.Name())
		if !ok {
			continue
		}
		log.Infof("Rolling back step: %s", s.Name())
		if err := s.Rollback(rec, log.WithField(common.LogFieldStep, s.Name())); err != nil {
			log.Errorf("Rollback of step %s failed: %v", s.Name(), err)
			run.Result.AddError(errors.Wrapf(err, "rollback of step %s", s.Name()))
		}
	}
	run.Result.SetStatus(ending.RunRolledBack)
}
