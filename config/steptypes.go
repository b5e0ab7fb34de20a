package config

import (
	"github.com/pkg/errors"

	"github.com/mensylisir/flowctx/record"
	"github.com/mensylisir/flowctx/schema"
)

// StepTypes materializes the flow's step declarations into schema.StepTypes,
// in document order. Optional defaults from YAML are literals; a step with
// an extends clause derives from the named earlier step's type instead of
// starting from an empty schema.
func (c *FlowConfig) StepTypes() ([]*schema.StepType, error) {
	if c.Spec == nil {
		return nil, errors.New("flow has no spec")
	}

	byName := make(map[string]*schema.StepType, len(c.Spec.Steps))
	types := make([]*schema.StepType, 0, len(c.Spec.Steps))

	for _, sc := range c.Spec.Steps {
		var t *schema.StepType
		if sc.Extends != "" {
			parent, ok := byName[sc.Extends]
			if !ok {
				return nil, errors.Errorf("step '%s' extends unknown step '%s'", sc.Name, sc.Extends)
			}
			t = parent.Derive(sc.Name)
		} else {
			t = schema.New(sc.Name)
		}

		if sc.Receive != nil {
			defaults := make(schema.Defaults, len(sc.Receive.Optional))
			for name, value := range sc.Receive.Optional {
				defaults[name] = record.Literal(value)
			}
			if err := t.Receive(sc.Receive.Required, defaults); err != nil {
				return nil, errors.Wrapf(err, "declaring receive schema for step '%s'", sc.Name)
			}
		}
		if len(sc.Hold) > 0 {
			if err := t.Hold(sc.Hold...); err != nil {
				return nil, errors.Wrapf(err, "declaring hold schema for step '%s'", sc.Name)
			}
		}

		byName[sc.Name] = t
		types = append(types, t)
	}
	return types, nil
}
