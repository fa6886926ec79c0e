package logbase

import (
	"fmt"
	"time"
)

// Event is a fluent builder for a single record. It is created by
// Processor.At and finished by Msg, Msgf or Send.
//
// An Event for a disabled level is inert: every method is a no-op and
// the finishing call returns nil.
type Event struct {
	p      *Processor
	level  string
	fields Fields
}

// At starts an Event at level.
// Example: p.At("error").Err(err).Str("operation", "database").Msg("query failed")
func (p *Processor) At(level string) *Event {
	if p == nil || !p.IsLevelEnabled(level) {
		return &Event{}
	}
	return &Event{p: p, level: level, fields: Fields{}}
}

// Enabled reports whether the event will be emitted.
func (e *Event) Enabled() bool {
	return e != nil && e.p != nil
}

func (e *Event) Str(key, val string) *Event {
	if e.Enabled() {
		e.fields[key] = val
	}
	return e
}

func (e *Event) Strs(key string, vals []string) *Event {
	if e.Enabled() {
		e.fields[key] = vals
	}
	return e
}

func (e *Event) Int(key string, val int) *Event {
	if e.Enabled() {
		e.fields[key] = val
	}
	return e
}

func (e *Event) Int64(key string, val int64) *Event {
	if e.Enabled() {
		e.fields[key] = val
	}
	return e
}

func (e *Event) Float64(key string, val float64) *Event {
	if e.Enabled() {
		e.fields[key] = val
	}
	return e
}

func (e *Event) Bool(key string, val bool) *Event {
	if e.Enabled() {
		e.fields[key] = val
	}
	return e
}

func (e *Event) Time(key string, val time.Time) *Event {
	if e.Enabled() {
		e.fields[key] = val
	}
	return e
}

func (e *Event) Dur(key string, val time.Duration) *Event {
	if e.Enabled() {
		e.fields[key] = val
	}
	return e
}

func (e *Event) Any(key string, val any) *Event {
	if e.Enabled() {
		e.fields[key] = val
	}
	return e
}

// Fields merges every entry of fields into the event.
func (e *Event) Fields(fields Fields) *Event {
	if e.Enabled() {
		e.fields.merge(fields)
	}
	return e
}

// Err records err under "error" together with the normalized stack and,
// for wrapped errors, the error chain fields.
func (e *Event) Err(err error) *Event {
	if !e.Enabled() || err == nil {
		return e
	}
	e.fields["error"] = err.Error()
	e.fields.merge(FormatError(err).Fields)
	return e
}

// Dict nests the fields built by dict under key.
func (e *Event) Dict(key string, dict func(*Event)) *Event {
	if e.Enabled() {
		sub := &Event{p: e.p, level: e.level, fields: Fields{}}
		dict(sub)
		e.fields[key] = sub.fields
	}
	return e
}

func (e *Event) Msg(msg string) error {
	if !e.Enabled() {
		return nil
	}
	return e.p.Report(e.level, msg, e.fields)
}

func (e *Event) Msgf(format string, v ...any) error {
	if !e.Enabled() {
		return nil
	}
	return e.p.Report(e.level, fmt.Sprintf(format, v...), e.fields)
}

// Send emits the event with an empty message.
func (e *Event) Send() error {
	return e.Msg(emptyString)
}
