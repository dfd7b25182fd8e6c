package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// HTTP headers
	HeaderContentType   = "Content-Type"
	HeaderXRequestID    = "X-Request-ID"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderUserAgent     = "User-Agent"

	// Content types
	ContentTypeJSON = "application/json"

	// Context keys
	ContextKeyRequestID = "request_id"

	// Database table names
	TableCallers       = "callers"
	TableCallerStates  = "caller_states"
	TableLeads         = "leads"
	TableAssignments   = "assignments"
	TableRRPointers    = "rr_pointers"
	TableDailyCounters = "daily_counters"

	// Error messages
	ErrMsgInternalServerError = "internal server error occurred"
	ErrMsgResourceNotFound    = "resource not found"
	ErrMsgValidationFailed    = "validation failed"
	ErrMsgConflict            = "resource already exists"
)
