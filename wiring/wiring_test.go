package wiring

import (
	"bytes"
	stderrs "errors"
	"fmt"
	"sync"
	"testing"

	"github.com/Station-Manager/logbase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapLocator registers instances as-is and builds constructors once.
type mapLocator struct {
	mu       sync.Mutex
	services map[string]any
}

func newMapLocator() *mapLocator {
	return &mapLocator{services: map[string]any{}}
}

func (l *mapLocator) Register(name string, provider any) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, exists := l.services[name]; exists {
		return fmt.Errorf("%s already registered", name)
	}
	l.services[name] = provider
	return nil
}

func (l *mapLocator) Resolve(name string) (any, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	svc, ok := l.services[name]
	if !ok {
		return nil, fmt.Errorf("%s not registered", name)
	}
	if ctor, isCtor := svc.(func() any); isCtor {
		svc = ctor()
		l.services[name] = svc
	}
	return svc, nil
}

type memBus struct {
	handlers map[string]map[int]func(any)
	next     int
}

func newMemBus() *memBus {
	return &memBus{handlers: map[string]map[int]func(any){}}
}

func (b *memBus) On(event string, handler func(any)) func() {
	if b.handlers[event] == nil {
		b.handlers[event] = map[int]func(any){}
	}
	id := b.next
	b.next++
	b.handlers[event][id] = handler
	return func() { delete(b.handlers[event], id) }
}

func (b *memBus) Emit(event string, payload any) {
	for _, h := range b.handlers[event] {
		h(payload)
	}
}

type captureLogger struct {
	logbase.Processor
	records []logbase.Record
	levels  []string
	fail    error
}

func newCaptureLogger() *captureLogger {
	c := &captureLogger{}
	c.SetSender(c)
	return c
}

func (c *captureLogger) Send(rec logbase.Record, level string) error {
	if c.fail != nil {
		return c.fail
	}
	c.records = append(c.records, rec)
	c.levels = append(c.levels, level)
	return nil
}

func TestRegister_Instance(t *testing.T) {
	loc, bus := newMapLocator(), newMemBus()
	logger := newCaptureLogger()

	teardown, err := Register(loc, bus, logger)
	require.NoError(t, err)

	resolved, err := loc.Resolve(ServiceName)
	require.NoError(t, err)
	assert.Same(t, logger, resolved)

	bus.Emit(EventError, stderrs.New("boom"))
	require.Len(t, logger.records, 1)
	assert.Equal(t, "Error: boom", logger.records[0].Message())
	assert.NotEmpty(t, logger.records[0].Fields()[logbase.StackKey])
	assert.Equal(t, []string{logbase.LevelError}, logger.levels)

	teardown()
	teardown()
	bus.Emit(EventError, "after teardown")
	assert.Len(t, logger.records, 1)
}

func TestRegister_Constructor(t *testing.T) {
	loc, bus := newMapLocator(), newMemBus()
	var built *captureLogger

	_, err := Register(loc, bus, func() any {
		built = newCaptureLogger()
		return built
	})
	require.NoError(t, err)
	require.NotNil(t, built)

	bus.Emit(EventError, map[string]any{"message": "remote", "stack": "s"})
	require.Len(t, built.records, 1)
	assert.Equal(t, "remote", built.records[0].Message())
	assert.Equal(t, "s", built.records[0].Fields()[logbase.StackKey])
}

func TestRegister_Options(t *testing.T) {
	loc, bus := newMapLocator(), newMemBus()
	logger := newCaptureLogger()

	_, err := Register(loc, bus, logger, WithName("log"), WithEvent("failure"))
	require.NoError(t, err)

	_, err = loc.Resolve("log")
	require.NoError(t, err)

	bus.Emit(EventError, "ignored")
	bus.Emit("failure", "oops")
	require.Len(t, logger.records, 1)
	assert.Equal(t, "oops", logger.records[0].Message())
}

func TestRegister_ReportFailureGoesToFallback(t *testing.T) {
	loc, bus := newMapLocator(), newMemBus()
	logger := newCaptureLogger()
	logger.fail = stderrs.New("transport down")
	var out bytes.Buffer

	_, err := Register(loc, bus, logger, WithFallback(&out))
	require.NoError(t, err)

	assert.NotPanics(t, func() { bus.Emit(EventError, "oops") })
	assert.Contains(t, out.String(), "transport down")
}

func TestRegister_Errors(t *testing.T) {
	t.Run("nil collaborators", func(t *testing.T) {
		_, err := Register(nil, newMemBus(), newCaptureLogger())
		assert.Error(t, err)
		_, err = Register(newMapLocator(), nil, newCaptureLogger())
		assert.Error(t, err)
		_, err = Register(newMapLocator(), newMemBus(), nil)
		assert.Error(t, err)
	})

	t.Run("register fails", func(t *testing.T) {
		loc := newMapLocator()
		require.NoError(t, loc.Register(ServiceName, "taken"))
		_, err := Register(loc, newMemBus(), newCaptureLogger())
		assert.Error(t, err)
	})

	t.Run("resolved value cannot report", func(t *testing.T) {
		bus := newMemBus()
		_, err := Register(newMapLocator(), bus, "not a logger")
		assert.Error(t, err)
		assert.Empty(t, bus.handlers[EventError])
	})
}

// countingBus counts how often a subscription is removed.
type countingBus struct {
	mu       sync.Mutex
	removals int
}

func (b *countingBus) On(string, func(any)) func() {
	return func() {
		b.mu.Lock()
		b.removals++
		b.mu.Unlock()
	}
}

func TestRegister_ConcurrentTeardown(t *testing.T) {
	bus := &countingBus{}
	teardown, err := Register(newMapLocator(), bus, newCaptureLogger())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			teardown()
		}()
	}
	wg.Wait()

	bus.mu.Lock()
	defer bus.mu.Unlock()
	assert.Equal(t, 1, bus.removals)
}
