package config

// DefaultAPIVersion is filled in for documents that omit apiVersion before
// validation is re-run by callers that want lenient parsing.
const DefaultAPIVersion = "flowctx/v1"

// ApplyDefaults fills optional fields that were omitted from the document.
// It never overwrites a value the document supplied.
func (c *FlowConfig) ApplyDefaults() {
	if c.APIVersion == "" {
		c.APIVersion = DefaultAPIVersion
	}
	if c.Kind == "" {
		c.Kind = SupportedKind
	}
	if c.Metadata.Description == "" {
		c.Metadata.Description = c.Metadata.Name
	}
	if c.Spec == nil {
		return
	}
	for i := range c.Spec.Steps {
		if c.Spec.Steps[i].Description == "" {
			c.Spec.Steps[i].Description = c.Spec.Steps[i].Name
		}
	}
}
