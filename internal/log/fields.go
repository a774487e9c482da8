package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldUsername   = "username"
	FieldSessionID  = "session_id"
	FieldIntent     = "intent"
	FieldDesc       = "expense_description"
	FieldCents      = "amount_cents"
	FieldTurnID     = "turn_id"
)

// Components defines standard component names
const (
	ComponentApp         = "app"
	ComponentHTTP        = "http"
	ComponentChat        = "chat"
	ComponentInterpreter = "interpreter"
	ComponentStorage     = "storage"
	ComponentAMQP        = "amqp"
	ComponentWorker      = "worker"
	ComponentLLM         = "llm"
	ComponentAuth        = "auth"
)

// Operations defines standard operation names
const (
	OpCreate   = "create"
	OpRead     = "read"
	OpRecord   = "record"
	OpClassify = "classify"
	OpGenerate = "generate"
	OpArchive  = "archive"
	OpRegister = "register"
	OpLogin    = "login"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
