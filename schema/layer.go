package schema

import "github.com/mensylisir/flowctx/record"

// Layer is one increment of declared fields. Layers form a strictly linear
// chain per step type: each points at the layer it extends, and the
// accumulated schema of a layer is derived by folding the chain rather than
// by any runtime type hierarchy.
type Layer struct {
	parent *Layer
	fields []record.Field
}

// Parent returns the layer this one extends, or nil for a root layer.
func (l *Layer) Parent() *Layer {
	return l.parent
}

// Added returns only the fields this layer contributes. The returned slice
// is a copy.
func (l *Layer) Added() []record.Field {
	fields := make([]record.Field, len(l.fields))
	copy(fields, l.fields)
	return fields
}

// Fields folds the chain into the accumulated field list, parent layers
// first, preserving declaration order. A later re-declaration of an optional
// name replaces the earlier descriptor in place, so a field never appears
// twice and keeps its original position.
func (l *Layer) Fields() []record.Field {
	var chain []*Layer
	for cur := l; cur != nil; cur = cur.parent {
		chain = append(chain, cur)
	}

	var fields []record.Field
	index := make(map[string]int)
	for i := len(chain) - 1; i >= 0; i-- {
		for _, f := range chain[i].fields {
			if at, seen := index[f.Name]; seen {
				fields[at] = f
				continue
			}
			index[f.Name] = len(fields)
			fields = append(fields, f)
		}
	}
	return fields
}
