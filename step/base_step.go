package step

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/mensylisir/flowctx/record"
	"github.com/mensylisir/flowctx/schema"
)

// BaseStep provides common fields and default method implementations for
// steps. Concrete steps embed it and override Call.
type BaseStep struct {
	NameField        string
	DescriptionField string
	TypeField        *schema.StepType
}

// NewBaseStep is a helper constructor for initializing common BaseStep
// fields. Concrete steps can call this in their own constructors.
func NewBaseStep(name, description string, t *schema.StepType) BaseStep {
	return BaseStep{
		NameField:        name,
		DescriptionField: description,
		TypeField:        t,
	}
}

// Name returns the name of the step.
func (bs *BaseStep) Name() string {
	return bs.NameField
}

// Description returns the description of the step.
func (bs *BaseStep) Description() string {
	return bs.DescriptionField
}

// Type returns the step type declared for this step.
func (bs *BaseStep) Type() *schema.StepType {
	return bs.TypeField
}

// Call is meant to be overridden by concrete steps. The base implementation
// returns an error indicating it is not implemented.
func (bs *BaseStep) Call(rec *record.Record, log *logrus.Entry) error {
	if log != nil {
		log.Warnf("BaseStep.Call invoked directly for step [%s], this should be overridden by a concrete step implementation", bs.NameField)
	}
	return errors.Errorf("Call not implemented in BaseStep for step '%s'", bs.NameField)
}

// Rollback is a no-op by default. Concrete steps with side effects override
// it to undo their work.
func (bs *BaseStep) Rollback(rec *record.Record, log *logrus.Entry) error {
	return nil
}

// Func wraps a step type and a plain function as a Step with a no-op
// rollback. Useful for tests and small pipelines.
type Func struct {
	BaseStep
	CallFunc     func(rec *record.Record, log *logrus.Entry) error
	RollbackFunc func(rec *record.Record, log *logrus.Entry) error
}

// NewFunc creates a function-backed step.
func NewFunc(name string, t *schema.StepType, call func(rec *record.Record, log *logrus.Entry) error) *Func {
	return &Func{
		BaseStep: NewBaseStep(name, "", t),
		CallFunc: call,
	}
}

// Call invokes the wrapped function.
func (f *Func) Call(rec *record.Record, log *logrus.Entry) error {
	if f.CallFunc == nil {
		return f.BaseStep.Call(rec, log)
	}
	return f.CallFunc(rec, log)
}

// Rollback invokes the wrapped rollback function when set.
func (f *Func) Rollback(rec *record.Record, log *logrus.Entry) error {
	if f.RollbackFunc == nil {
		return nil
	}
	return f.RollbackFunc(rec, log)
}
