package logbase

// Level names understood by the severity helpers. Any other name is a valid
// level as far as the processor is concerned; it only has to be enabled.
const (
	LevelTrace = "trace"
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
	LevelFatal = "fatal"
)

// Record keys populated by the processor.
const (
	MessageKey = "message"
	FieldsKey  = "fields"
	StackKey   = "stack"
)

const (
	emptyString      = ""
	defaultErrorName = "Error"
	levelSeparator   = ","
)

const (
	errMsgSendNotImplemented = "logbase: Send is not implemented; bind a Sender to the processor"
	errMsgInvalidEnrichment  = "logbase: enrichment must be a non-nil function or Enricher"
	errMsgUnsupportedLevels  = "logbase: unsupported level configuration"
)
