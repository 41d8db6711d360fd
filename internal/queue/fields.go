package queue

// Stream entry field names. Data is the JSON encoded template variables.
const (
	fieldTo          = "to"
	fieldTemplate    = "template"
	fieldData        = "data"
	fieldWorkspaceID = "workspace_id"
	fieldAttempt     = "attempt"
	fieldTraceID     = "trace_id"
	fieldLastError   = "last_error"
	fieldError       = "error"
)
