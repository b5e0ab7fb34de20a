package schema

import (
	"fmt"
	"strings"

	"github.com/mensylisir/flowctx/record"
)

// MissingFieldsError is returned by Build when one or more required fields
// are absent from the supplied input. Names lists every unmet field, not
// just the first, in declaration order.
type MissingFieldsError struct {
	Step  string
	Names []string
}

// Error implements the error interface.
func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("step type %q: missing required fields: %s",
		e.Step, strings.Join(e.Names, ", "))
}

// ConflictError is returned by Receive and Hold when a field name is
// re-declared under a different kind than its original declaration. This is
// a misuse of the declaration API and should abort step-type setup.
type ConflictError struct {
	Step      string
	Name      string
	Existing  record.Kind
	Requested record.Kind
}

// Error implements the error interface.
func (e *ConflictError) Error() string {
	return fmt.Sprintf("step type %q: field %q already declared as %s, cannot re-declare as %s",
		e.Step, e.Name, e.Existing, e.Requested)
}
