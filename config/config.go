package config

// FlowConfig is the top-level YAML document describing a flow: an ordered
// list of step declarations, each with its schema (required, optional with
// literal defaults, held fields).
//
// Example:
//
//	apiVersion: flowctx/v1
//	kind: Flow
//	metadata:
//	  name: checkout
//	spec:
//	  steps:
//	    - name: charge
//	      receive:
//	        required: [amount]
//	        optional:
//	          currency: USD
//	      hold: [request_id]
type FlowConfig struct {
	APIVersion string    `yaml:"apiVersion"`
	Kind       string    `yaml:"kind"`
	Metadata   Metadata  `yaml:"metadata"`
	Spec       *FlowSpec `yaml:"spec"`
}

// Metadata identifies the flow.
type Metadata struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
}

// FlowSpec holds the ordered step declarations.
type FlowSpec struct {
	Steps []StepConfig `yaml:"steps"`
}

// StepConfig declares one step's name and schema. Extends names an earlier
// step in the same flow whose accumulated schema this step derives from.
type StepConfig struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description,omitempty"`
	Extends     string         `yaml:"extends,omitempty"`
	Receive     *ReceiveConfig `yaml:"receive,omitempty"`
	Hold        []string       `yaml:"hold,omitempty"`
}

// ReceiveConfig declares required field names and optional fields with
// literal default values. Computed defaults cannot be expressed in YAML;
// they are declared in code via schema.Defaults.
type ReceiveConfig struct {
	Required []string       `yaml:"required,omitempty"`
	Optional map[string]any `yaml:"optional,omitempty"`
}
