// Package logrusbridge is a logbase logger that emits through a logrus entry.
package logrusbridge

import (
	"github.com/Station-Manager/logbase"
	"github.com/sirupsen/logrus"
)

// Logger emits logbase records through a logrus entry. Level gating and
// enrichment happen in the embedded processor; the logrus logger's own level
// still applies on top.
type Logger struct {
	logbase.Processor

	entry *logrus.Entry
}

// New builds a Logger around entry. A nil entry uses the logrus standard logger.
func New(entry *logrus.Entry, opts ...logbase.Option) (*Logger, error) {
	if entry == nil {
		entry = logrus.NewEntry(logrus.StandardLogger())
	}
	l := &Logger{entry: entry}
	l.SetSender(l)
	for _, opt := range opts {
		if err := opt(&l.Processor); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// Send writes rec through logrus. Top-level record keys other than message
// and fields are merged into the logrus fields.
func (l *Logger) Send(rec logbase.Record, level string) error {
	fields := make(logrus.Fields, len(rec))
	for k, v := range rec.Fields() {
		fields[k] = v
	}
	for k, v := range rec {
		if k == logbase.MessageKey || k == logbase.FieldsKey {
			continue
		}
		fields[k] = v
	}

	lvl, known := parseLevel(level)
	if !known {
		fields["level_name"] = level
	}
	l.entry.WithFields(fields).Log(lvl, rec.Message())
	return nil
}

// parseLevel maps a level name onto logrus. Entry.Log panics for PanicLevel,
// so "panic" is written as fatal; Log never exits. Unknown names go out at info.
func parseLevel(level string) (logrus.Level, bool) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return logrus.InfoLevel, false
	}
	if lvl == logrus.PanicLevel {
		return logrus.FatalLevel, true
	}
	return lvl, true
}
