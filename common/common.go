package common

const (
	AppName = "flowctx"
)

const (
	PipelineName = "Pipeline"
	StepName     = "Step"
	RunName      = "Run"
)

// Logger field keys used across the framework so the formatter can display
// them in a stable order.
const (
	LogFieldApp      = "app"
	LogFieldPipeline = "pipeline"
	LogFieldStep     = "step"
	LogFieldRun      = "run_id"
)

// Base attribute names present on every context record regardless of its
// declared schema.
const (
	FieldError      = "error"
	FieldErrorCause = "error_cause"
)
