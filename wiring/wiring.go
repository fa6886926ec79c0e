package wiring

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/Station-Manager/errors"
)

const (
	// ServiceName is the locator name the logger is registered under.
	ServiceName = "logger"
	// EventError is the bus event whose payloads are reported as errors.
	EventError = "error"
)

const (
	errMsgNilLocator   = "Service locator is nil."
	errMsgNilBus       = "Event bus is nil."
	errMsgNilProvider  = "Logger provider is nil."
	errMsgRegister     = "Failed to register logger."
	errMsgResolve      = "Failed to resolve logger."
	errMsgNotReporter  = "Resolved logger cannot report errors."
	errMsgReportFailed = "logger: failed to report error event"
)

// Registrar registers a provider under a name. What a provider is (an
// instance, a constructor, a type to build) is up to the registrar.
type Registrar interface {
	Register(name string, provider any) error
}

// Resolver returns the service registered under name.
type Resolver interface {
	Resolve(name string) (any, error)
}

// Locator is the service registry the logger is wired into.
type Locator interface {
	Registrar
	Resolver
}

// Bus is the application's event bus. On returns a function that removes the
// subscription.
type Bus interface {
	On(event string, handler func(payload any)) (unsubscribe func())
}

// ErrorReporter is what the resolved logger must provide.
// logbase.Processor and everything embedding it satisfy it.
type ErrorReporter interface {
	ReportError(v any) error
}

// Option tweaks Register.
type Option func(*options)

type options struct {
	name     string
	event    string
	fallback io.Writer
}

// WithName registers the logger under name instead of ServiceName.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithEvent subscribes to event instead of EventError.
func WithEvent(event string) Option {
	return func(o *options) { o.event = event }
}

// WithFallback sets where failures to report an error event are written.
// The default is os.Stderr.
func WithFallback(w io.Writer) Option {
	return func(o *options) { o.fallback = w }
}

// Register registers provider with loc, resolves the logger back and
// subscribes its ReportError to the bus error event. The returned teardown
// removes the subscription and is safe to call more than once.
func Register(loc Locator, bus Bus, provider any, opts ...Option) (teardown func(), err error) {
	const op errors.Op = "wiring.Register"
	if loc == nil {
		return nil, errors.New(op).Msg(errMsgNilLocator)
	}
	if bus == nil {
		return nil, errors.New(op).Msg(errMsgNilBus)
	}
	if provider == nil {
		return nil, errors.New(op).Msg(errMsgNilProvider)
	}

	o := options{name: ServiceName, event: EventError, fallback: os.Stderr}
	for _, opt := range opts {
		opt(&o)
	}

	if err = loc.Register(o.name, provider); err != nil {
		return nil, errors.New(op).Err(err).Msg(errMsgRegister)
	}

	resolved, err := loc.Resolve(o.name)
	if err != nil {
		return nil, errors.New(op).Err(err).Msg(errMsgResolve)
	}
	reporter, ok := resolved.(ErrorReporter)
	if !ok || reporter == nil {
		return nil, errors.New(op).Msg(errMsgNotReporter)
	}

	unsubscribe := bus.On(o.event, func(payload any) {
		if rerr := reporter.ReportError(payload); rerr != nil {
			// The bus has nowhere to return this to.
			_, _ = fmt.Fprintf(o.fallback, "%s: %v\n", errMsgReportFailed, rerr)
		}
	})

	var once sync.Once
	return func() {
		once.Do(func() {
			if unsubscribe != nil {
				unsubscribe()
			}
		})
	}, nil
}
