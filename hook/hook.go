package hook

import "github.com/pkg/errors"

// Interface is a Try/Catch/Finally lifecycle hook. Try runs the guarded
// work, Catch translates its error (returning nil swallows it), and Finally
// always runs last.
type Interface interface {
	Try() error
	Catch(err error) error
	Finally()
}

// Call runs the hook. A panic inside Try is recovered and surfaced as an
// error rather than unwinding through the caller; Finally runs regardless of
// the outcome.
func Call(h Interface) (err error) {
	if h == nil {
		return errors.New("hook cannot be nil")
	}

	defer h.Finally()

	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("panic occurred during hook execution: %v", r)
		}
	}()

	tryErr := h.Try()
	if tryErr != nil {
		return h.Catch(tryErr)
	}
	return nil
}

// Funcs adapts plain functions to Interface. Nil members are no-ops (Catch
// defaults to passing the error through unchanged).
type Funcs struct {
	TryFunc     func() error
	CatchFunc   func(err error) error
	FinallyFunc func()
}

func (f Funcs) Try() error {
	if f.TryFunc == nil {
		return nil
	}
	return f.TryFunc()
}

func (f Funcs) Catch(err error) error {
	if f.CatchFunc == nil {
		return err
	}
	return f.CatchFunc(err)
}

func (f Funcs) Finally() {
	if f.FinallyFunc == nil {
		return
	}
	f.FinallyFunc()
}
