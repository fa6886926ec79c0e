// Package logbase is the foundation for concrete loggers: it builds records,
// gates them by level name, runs an ordered enrichment pipeline over them and
// hands the finished record to a Sender supplied by the concrete logger.
//
// Key features
//   - Level gating by name: a LevelSet configured from "error,warn,fatal",
//     from an explicit map, or from loosely typed config input
//   - Ordered enrichment: enrichers run in registration order over the same
//     record; later ones may overwrite what earlier ones set
//   - Error normalization: Go errors, serialized error objects and plain
//     values all become {message, fields.stack}, with the error chain of
//     wrapped errors (Station-Manager DetailedError aware)
//   - An emission contract: a Processor without a Sender fails with
//     ErrSendNotImplemented instead of dropping records
//
// Typical usage
//
//	type consoleLogger struct{ logbase.Processor }
//
//	func (c *consoleLogger) Send(rec logbase.Record, level string) error {
//		_, err := fmt.Fprintf(os.Stderr, "%s %s %v\n", level, rec.Message(), rec.Fields())
//		return err
//	}
//
//	l := &consoleLogger{}
//	l.SetSender(l)
//	l.ConfigureLevels(logbase.LevelString("error,warn"))
//	_ = l.AddEnrichment(logbase.Hostname())
//	_ = l.Warn("disk almost full", logbase.Fields{"free_mb": 120})
package logbase
