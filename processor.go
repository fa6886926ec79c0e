package logbase

import (
	"sync"

	"go.uber.org/atomic"
)

const packagePath = "github.com/Station-Manager/logbase"

// Processor builds records, gates them by level, runs the enrichment pipeline
// and hands the result to the bound Sender.
//
// The zero value is ready to use with DefaultLevels and no enrichments, but
// it cannot emit anything until a Sender is bound: concrete loggers embed a
// Processor and bind themselves with SetSender.
type Processor struct {
	sender atomic.Pointer[senderBox]
	levels atomic.Pointer[LevelSet]

	mu          sync.RWMutex
	enrichments []Enricher
}

// senderBox lets an interface value live behind an atomic pointer.
type senderBox struct {
	Sender
}

// Option configures a Processor built with New.
type Option func(*Processor) error

// WithLevels sets the initial level configuration.
func WithLevels(spec LevelSpec) Option {
	return func(p *Processor) error {
		p.ConfigureLevels(spec)
		return nil
	}
}

// WithEnrichers registers enrichers in the given order.
func WithEnrichers(enrichers ...Enricher) Option {
	return func(p *Processor) error {
		for _, e := range enrichers {
			if err := p.AddEnrichment(e); err != nil {
				return err
			}
		}
		return nil
	}
}

// New returns a Processor bound to sender. A nil sender is allowed; such a
// processor fails every enabled report with ErrSendNotImplemented.
func New(sender Sender, opts ...Option) (*Processor, error) {
	p := &Processor{}
	p.SetSender(sender)
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// SetSender binds the emission hook. Passing nil unbinds it.
func (p *Processor) SetSender(s Sender) {
	if s == nil {
		p.sender.Store(nil)
		return
	}
	p.sender.Store(&senderBox{Sender: s})
}

// AddEnrichment appends e to the pipeline. Nil enrichers are rejected with
// ErrInvalidEnrichment and leave the pipeline unchanged.
func (p *Processor) AddEnrichment(e Enricher) error {
	if isNilEnricher(e) {
		return ErrInvalidEnrichment
	}
	p.mu.Lock()
	p.enrichments = append(p.enrichments, e)
	p.mu.Unlock()
	return nil
}

// RemoveEnrichment removes the first registered enricher identical to e.
// It is a no-op when e is not registered.
func (p *Processor) RemoveEnrichment(e Enricher) {
	if isNilEnricher(e) {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, existing := range p.enrichments {
		if sameEnricher(existing, e) {
			// Copy instead of re-slicing so snapshots handed to
			// in-flight reports never see the shift.
			next := make([]Enricher, 0, len(p.enrichments)-1)
			next = append(next, p.enrichments[:i]...)
			next = append(next, p.enrichments[i+1:]...)
			p.enrichments = next
			return
		}
	}
}

// DropEnrichments clears the pipeline.
func (p *Processor) DropEnrichments() {
	p.mu.Lock()
	p.enrichments = nil
	p.mu.Unlock()
}

// Enrichments returns the registered enrichers in registration order.
func (p *Processor) Enrichments() []Enricher {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]Enricher, len(p.enrichments))
	copy(out, p.enrichments)
	return out
}

// ConfigureLevels replaces the level configuration. A nil spec leaves the
// current configuration untouched.
func (p *Processor) ConfigureLevels(spec LevelSpec) {
	if spec == nil {
		return
	}
	set := spec.levelSet()
	p.levels.Store(&set)
}

// ConfigureLevelsFrom accepts level configuration as it comes out of a config
// decoder: nil, a string, a LevelSpec, map[string]bool, map[string]any of
// bools, or a list of names. Any other shape leaves the configuration as it
// was and returns ErrUnsupportedLevelSpec; callers that must not fail on bad
// logging config can ignore the error.
func (p *Processor) ConfigureLevelsFrom(v any) error {
	spec, ok := levelSpecFrom(v)
	if !ok {
		return ErrUnsupportedLevelSpec
	}
	p.ConfigureLevels(spec)
	return nil
}

// Levels returns a copy of the active level set.
func (p *Processor) Levels() LevelSet {
	return p.activeLevels().Clone()
}

func (p *Processor) activeLevels() LevelSet {
	if set := p.levels.Load(); set != nil {
		return *set
	}
	return defaultLevels
}

var defaultLevels = DefaultLevels()

// IsLevelEnabled reports whether records at level are emitted.
func (p *Processor) IsLevelEnabled(level string) bool {
	return p.activeLevels().Enabled(level)
}

// Report emits msg at level. Disabled levels return nil without building a
// record, running enrichments or calling the Sender. Errors from the Sender
// are returned as-is; a panicking enrichment is not recovered.
func (p *Processor) Report(level, msg string, fields Fields) error {
	if !p.IsLevelEnabled(level) {
		return nil
	}
	rec := p.EnrichRecord(newRecord(msg, fields))
	return p.emit(rec, level)
}

// EnrichRecord runs every registered enrichment over rec in registration
// order and returns the final record.
func (p *Processor) EnrichRecord(rec Record) Record {
	p.mu.RLock()
	enrichments := p.enrichments
	p.mu.RUnlock()

	for _, e := range enrichments {
		if out := e.Enrich(rec); out != nil {
			rec = out
		}
	}
	return rec
}

// emit hands rec to the bound Sender and fails with ErrSendNotImplemented
// when there is none. Processor does not implement Sender; a type embedding
// it has to define its own Send before it can bind itself.
func (p *Processor) emit(rec Record, level string) error {
	box := p.sender.Load()
	if box == nil || box.Sender == nil {
		return ErrSendNotImplemented
	}
	return box.Send(rec, level)
}

// FormatError normalizes an arbitrary error value. See the package level FormatError.
func (p *Processor) FormatError(v any) NormalizedError {
	return FormatError(v)
}

// ReportError normalizes v and reports it at error level, with the stack and
// any chain details as fields.
func (p *Processor) ReportError(v any) error {
	if !p.IsLevelEnabled(LevelError) {
		return nil
	}
	n := FormatError(v)
	return p.Report(LevelError, n.Message, n.Fields)
}

func (p *Processor) Trace(msg string, fields ...Fields) error {
	return p.Report(LevelTrace, msg, mergeFields(fields))
}

func (p *Processor) Debug(msg string, fields ...Fields) error {
	return p.Report(LevelDebug, msg, mergeFields(fields))
}

func (p *Processor) Info(msg string, fields ...Fields) error {
	return p.Report(LevelInfo, msg, mergeFields(fields))
}

func (p *Processor) Warn(msg string, fields ...Fields) error {
	return p.Report(LevelWarn, msg, mergeFields(fields))
}

func (p *Processor) Error(msg string, fields ...Fields) error {
	return p.Report(LevelError, msg, mergeFields(fields))
}

// Fatal reports at fatal level. It does not terminate the process; that is
// left to the caller.
func (p *Processor) Fatal(msg string, fields ...Fields) error {
	return p.Report(LevelFatal, msg, mergeFields(fields))
}
