package schema

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/mensylisir/flowctx/record"
)

// Defaults maps optional field names to their default producers. Use
// record.Literal for fixed values; any other DefaultFunc is a computed
// default evaluated lazily with the record on first read.
type Defaults map[string]record.DefaultFunc

// StepType owns the schema of one kind of step: a linear chain of layers,
// each declared by a Receive or Hold call, plus the bookkeeping needed to
// keep field names unique across the accumulated schema. Declarations are
// meant to happen once, at step definition time; Build is the runtime entry
// point.
type StepType struct {
	name     string
	current  *Layer
	declared map[string]record.Kind
}

// New creates a StepType with an empty schema.
func New(name string) *StepType {
	return &StepType{
		name:     name,
		declared: make(map[string]record.Kind),
	}
}

// Name returns the step type's name.
func (t *StepType) Name() string {
	return t.name
}

// Derive creates a child step type whose schema starts at this type's
// current layer. Later declarations on either side branch from that point
// independently: extending the parent afterwards does not change the child's
// accumulated schema, and vice versa.
func (t *StepType) Derive(name string) *StepType {
	declared := make(map[string]record.Kind, len(t.declared))
	for k, v := range t.declared {
		declared[k] = v
	}
	return &StepType{
		name:     name,
		current:  t.current,
		declared: declared,
	}
}

// Current returns the most recent schema layer, or nil when nothing has been
// declared yet.
func (t *StepType) Current() *Layer {
	return t.current
}

// Fields returns the accumulated field list of the current layer in
// declaration order.
func (t *StepType) Fields() []record.Field {
	if t.current == nil {
		return nil
	}
	return t.current.Fields()
}

// Receive declares required and optional fields, extending the schema with
// one new layer. Required names already declared as required are silently
// skipped, so repeating a declaration is a no-op rather than an error.
// Re-declaring an optional name as optional replaces its default producer.
// Declaring a name under a different kind than before fails with a
// *ConflictError and leaves the step type unchanged. Optional names within
// one call are added in lexical order to keep the accumulated schema
// deterministic.
func (t *StepType) Receive(required []string, optional Defaults) error {
	names := make([]string, 0, len(optional))
	for name := range optional {
		names = append(names, name)
	}
	sort.Strings(names)

	// Validate the whole call before touching any state, so a rejected
	// declaration does not leave names half-declared and silently skipped
	// by a later, corrected call.
	pending := make(map[string]record.Kind, len(required))
	for _, name := range required {
		kind, seen := t.declared[name]
		if seen && kind != record.Required {
			return &ConflictError{Step: t.name, Name: name, Existing: kind, Requested: record.Required}
		}
		pending[name] = record.Required
	}
	for _, name := range names {
		if kind, dup := pending[name]; dup && kind != record.Optional {
			return &ConflictError{Step: t.name, Name: name, Existing: kind, Requested: record.Optional}
		}
		if kind, seen := t.declared[name]; seen && kind != record.Optional {
			return &ConflictError{Step: t.name, Name: name, Existing: kind, Requested: record.Optional}
		}
	}

	var added []record.Field
	for _, name := range required {
		if _, seen := t.declared[name]; seen {
			continue
		}
		t.declared[name] = record.Required
		added = append(added, record.Field{Name: name, Kind: record.Required})
	}
	for _, name := range names {
		t.declared[name] = record.Optional
		added = append(added, record.Field{Name: name, Kind: record.Optional, Default: optional[name]})
	}

	if len(added) > 0 {
		t.current = &Layer{parent: t.current, fields: added}
	}
	return nil
}

// Hold declares pass-through fields: plain read/write storage with no
// default and no presence validation. Names already held are skipped; names
// declared under another kind fail with a *ConflictError and leave the step
// type unchanged.
func (t *StepType) Hold(names ...string) error {
	for _, name := range names {
		if kind, seen := t.declared[name]; seen && kind != record.Held {
			return &ConflictError{Step: t.name, Name: name, Existing: kind, Requested: record.Held}
		}
	}

	var added []record.Field
	for _, name := range names {
		if _, seen := t.declared[name]; seen {
			continue
		}
		t.declared[name] = record.Held
		added = append(added, record.Field{Name: name, Kind: record.Held})
	}

	if len(added) > 0 {
		t.current = &Layer{parent: t.current, fields: added}
	}
	return nil
}

// Build constructs a record of this step type from caller-supplied input.
//
// An input that is already a *record.Record is returned unchanged, without
// copying or re-validation, so a pipeline stage can pass either a plain
// mapping or an already-built context interchangeably. A mapping input must
// cover every accumulated required field or Build fails with a
// *MissingFieldsError naming all unmet names. Optional keys present in the
// mapping are applied eagerly, bypassing the lazy default; keys outside the
// schema are silently dropped.
func (t *StepType) Build(input any) (*record.Record, error) {
	var fields map[string]any
	switch in := input.(type) {
	case *record.Record:
		return in, nil
	case nil:
		fields = map[string]any{}
	case map[string]any:
		fields = in
	case *record.Mapping:
		fields = make(map[string]any, in.Len())
		in.Range(func(k string, v any) bool {
			fields[k] = v
			return true
		})
	default:
		return nil, errors.Errorf("step type %q: cannot build a record from %T", t.name, input)
	}

	accumulated := t.Fields()

	var missing []string
	for _, f := range accumulated {
		if f.Kind != record.Required {
			continue
		}
		if _, ok := fields[f.Name]; !ok {
			missing = append(missing, f.Name)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingFieldsError{Step: t.name, Names: missing}
	}

	rec := record.New(accumulated)
	rec.Assign(fields)
	return rec, nil
}
