package record

import "fmt"

// Kind classifies a declared field. Required fields must be supplied at
// construction, optional fields carry a default producer evaluated lazily on
// first read, and held fields are caller-supplied scratch state with no
// presence contract.
type Kind int

const (
	Required Kind = iota
	Optional
	Held
)

// String returns a string representation of the field kind.
func (k Kind) String() string {
	switch k {
	case Required:
		return "required"
	case Optional:
		return "optional"
	case Held:
		return "held"
	default:
		return fmt.Sprintf("UNKNOWN_KIND_%d", int(k))
	}
}

// DefaultFunc produces the default value for an optional field. It receives
// the record as the evaluation context, so a computed default can read other
// fields at the moment of first access.
type DefaultFunc func(r *Record) any

// Literal wraps a fixed value as a DefaultFunc.
func Literal(v any) DefaultFunc {
	return func(*Record) any { return v }
}

// Field describes one declared attribute of a context record: its name, its
// kind, and (for optional fields) the default producer.
type Field struct {
	Name    string
	Kind    Kind
	Default DefaultFunc
}
