package record

import (
	"github.com/mensylisir/flowctx/common"
)

// Record is the runtime value that flows through a pipeline: field storage
// for an accumulated schema, the success/failure flag, and the failure
// signal. It is a single mapping derived by folding the owning step type's
// schema layers; there is no type hierarchy at runtime.
//
// A Record is exclusively owned by whichever execution path currently holds
// it. There is no internal locking; the orchestrator is responsible for
// sequencing step execution.
type Record struct {
	fields []Field
	index  map[string]int

	// values holds both explicitly assigned values and memoized defaults.
	// Presence in the map is the Unset -> Set transition: once a key is
	// here, its default producer is never consulted again.
	values map[string]any

	err      any
	errCause any
	failed   bool
}

// New creates a Record over the given accumulated, ordered field list. The
// caller (normally schema.StepType.Build) guarantees the names are unique.
func New(fields []Field) *Record {
	r := &Record{
		fields: fields,
		index:  make(map[string]int, len(fields)),
		values: make(map[string]any),
	}
	for i, f := range fields {
		r.index[f.Name] = i
	}
	return r
}

// Fields returns the record's accumulated field descriptors in declaration
// order. The returned slice is a copy.
func (r *Record) Fields() []Field {
	fields := make([]Field, len(r.fields))
	copy(fields, r.fields)
	return fields
}

// Has reports whether the record exposes an accessor for name. The base
// attributes "error" and "error_cause" are always present.
func (r *Record) Has(name string) bool {
	if name == common.FieldError || name == common.FieldErrorCause {
		return true
	}
	_, ok := r.index[name]
	return ok
}

// Get reads a field by name. For an optional field that has never been
// written, the default producer is evaluated with the record as context,
// cached, and returned; later reads return the cached value without
// re-evaluating, even if the fields the computation read have changed since.
// Unknown names read as nil.
func (r *Record) Get(name string) any {
	switch name {
	case common.FieldError:
		return r.err
	case common.FieldErrorCause:
		return r.errCause
	}
	i, ok := r.index[name]
	if !ok {
		return nil
	}
	if v, set := r.values[name]; set {
		return v
	}
	f := r.fields[i]
	if f.Kind != Optional || f.Default == nil {
		return nil
	}
	v := f.Default(r)
	r.values[name] = v
	return v
}

// Set writes a field by name and reports whether a writer for that name
// exists. Writing an optional field (even a nil or false value) permanently
// short-circuits its default producer.
func (r *Record) Set(name string, value any) bool {
	switch name {
	case common.FieldError:
		r.err = value
		return true
	case common.FieldErrorCause:
		r.errCause = value
		return true
	}
	if _, ok := r.index[name]; !ok {
		return false
	}
	r.values[name] = value
	return true
}

// Assign writes every key of fields for which the record exposes a writer.
// Unknown keys are silently dropped: callers may forward a superset mapping
// (for example an upstream record's ToMap) without knowing the exact schema
// of the receiving record. Assign never fails.
func (r *Record) Assign(fields map[string]any) {
	for name, value := range fields {
		r.Set(name, value)
	}
}

// Success reports whether the record has not been failed.
func (r *Record) Success() bool {
	return !r.failed
}

// Failure reports whether Fail has been called on the record. Once true it
// never reverts.
func (r *Record) Failure() bool {
	return r.failed
}

// Err returns the base "error" attribute.
func (r *Record) Err() any {
	return r.err
}

// ErrCause returns the base "error_cause" attribute.
func (r *Record) ErrCause() any {
	return r.errCause
}

// Fail merges fields into the record, marks it failed, and returns the
// Failure signal carrying the record. This is the only way the failed flag
// becomes true. Business code is expected to return the result directly:
//
//	return rec.Fail(map[string]any{"error": "card declined"})
//
// so that the step wrapper intercepts the signal at the call site.
func (r *Record) Fail(fields map[string]any) error {
	r.Assign(fields)
	r.failed = true
	return &Failure{rec: r}
}

// ToMap serializes the record to an ordered mapping: the base "error"
// attribute first, then every accumulated field in declaration order at its
// current value. Reading through Get means unset optional fields show their
// (now cached) defaults.
func (r *Record) ToMap() *Mapping {
	m := NewMapping()
	m.Set(common.FieldError, r.err)
	for _, f := range r.fields {
		m.Set(f.Name, r.Get(f.Name))
	}
	return m
}

// GetAs reads a field by name and asserts it to type T. It returns the zero
// value and false when the field is absent, nil, or of a different type.
func GetAs[T any](r *Record, name string) (T, bool) {
	var zero T
	v := r.Get(name)
	if v == nil {
		return zero, false
	}
	typed, ok := v.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}
