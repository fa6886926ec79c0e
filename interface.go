package logbase

// Sender delivers a finished record to a transport. Concrete loggers
// implement it and bind themselves to a Processor with SetSender or New.
// Processor does not implement it, so an embedding type must define Send.
// Any error it returns is handed back to the Report caller untouched.
type Sender interface {
	Send(rec Record, level string) error
}

// Enricher adds contextual data to a record before it is sent.
// Returning nil keeps the record that was passed in.
type Enricher interface {
	Enrich(rec Record) Record
}

// EnricherFunc adapts a plain function to Enricher.
type EnricherFunc func(rec Record) Record

func (f EnricherFunc) Enrich(rec Record) Record {
	return f(rec)
}

// Logger is the surface shared by every concrete logger built on Processor.
type Logger interface {
	Report(level, msg string, fields Fields) error
	ReportError(v any) error
	IsLevelEnabled(level string) bool

	Trace(msg string, fields ...Fields) error
	Debug(msg string, fields ...Fields) error
	Info(msg string, fields ...Fields) error
	Warn(msg string, fields ...Fields) error
	Error(msg string, fields ...Fields) error
	Fatal(msg string, fields ...Fields) error

	// At starts a fluent event at the given level.
	// Example: logger.At("warn").Str("user_id", id).Msg("slow request")
	At(level string) *Event
}
