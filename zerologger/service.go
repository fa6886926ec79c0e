package zerologger

import (
	"io"
	"sync"
	"time"

	"github.com/Station-Manager/errors"
	"github.com/Station-Manager/logbase"
	"github.com/rs/zerolog"
	"go.uber.org/atomic"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Service is a logbase logger that writes records through zerolog to a
// rolling file and/or the console.
//
// It is meant to be built by a DI container: the container fills the
// injected fields and calls Initialize. NewService covers the case where the
// caller builds the instance itself.
type Service struct {
	logbase.Processor

	WorkingDir string  `di.inject:"WorkingDir"`
	Config     *Config `di.inject:"loggingconfig"`

	logger        atomic.Pointer[zerolog.Logger]
	fileWriter    *lumberjack.Logger
	isInitialized atomic.Bool
	enriched      atomic.Bool
	activeOps     atomic.Int64
	mu            sync.RWMutex
}

// NewService builds and initializes a Service in one step.
func NewService(workingDir string, cfg *Config) (*Service, error) {
	s := &Service{WorkingDir: workingDir, Config: cfg}
	if err := s.Initialize(); err != nil {
		return nil, err
	}
	return s, nil
}

// Initialize validates the config, opens the writers and binds the service
// as the processor's Sender. Calling it on an initialized service is a no-op.
func (s *Service) Initialize() error {
	const op errors.Op = "zerologger.Service.Initialize"
	if s == nil {
		return errors.New(op).Msg(errMsgNilService)
	}
	if s.Config == nil {
		return errors.New(op).Msg(errMsgConfigNotSet)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isInitialized.Load() {
		return nil
	}

	if err := validateConfig(s.Config); err != nil {
		return errors.New(op).Err(err).Msg(errMsgConfigInvalid)
	}
	if (s.Config.FileLogging || !s.Config.ConsoleLogging) && s.WorkingDir == emptyString {
		return errors.New(op).Msg(errMsgWorkingDir)
	}

	writers, err := s.initializeWriters()
	if err != nil {
		return errors.New(op).Err(err).Msg(errMsgConfigInvalid)
	}

	// Level gating belongs to the processor; zerolog lets everything through.
	logger := zerolog.New(io.MultiWriter(writers...)).Level(zerolog.TraceLevel)
	if s.Config.WithTimestamp {
		logger = logger.With().Timestamp().Logger()
	}
	if s.Config.SkipFrameCount > 0 {
		logger = logger.With().CallerWithSkipFrameCount(s.Config.SkipFrameCount).Logger()
	}

	if err = s.ConfigureLevelsFrom(s.Config.Levels); err != nil {
		logger.Warn().Err(err).Str("levels", s.Levels().String()).Msg("Ignoring logging levels config, keeping current levels")
	}

	// Built-in enrichments survive Close, so a re-initialized service keeps them.
	if s.enriched.CompareAndSwap(false, true) {
		if s.Config.EnrichHostname {
			_ = s.AddEnrichment(logbase.Hostname())
		}
		if s.Config.EnrichInstanceID {
			_ = s.AddEnrichment(logbase.InstanceID())
		}
	}

	s.logger.Store(&logger)
	s.SetSender(s)
	s.isInitialized.Store(true)
	return nil
}

// Send writes a finished record. It is the emission hook bound to the
// embedded processor; call Report or the severity helpers instead.
func (s *Service) Send(rec logbase.Record, level string) error {
	const op errors.Op = "zerologger.Service.Send"
	if s == nil || !s.isInitialized.Load() {
		return errors.New(op).Msg(errMsgNotInitialized)
	}

	s.activeOps.Add(1)
	defer s.activeOps.Add(-1)

	// Acquire read lock to prevent Close() from running
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Double-check after acquiring lock
	if !s.isInitialized.Load() {
		return errors.New(op).Msg(errMsgNotInitialized)
	}
	logger := s.logger.Load()
	if logger == nil {
		return errors.New(op).Msg(errMsgNotInitialized)
	}

	writeRecord(logger, rec, level)
	return nil
}

// Close stops accepting records, waits up to ShutdownTimeoutMS for in-flight
// writes and closes the log file. It's safe to call Close multiple times.
func (s *Service) Close() error {
	const op errors.Op = "zerologger.Service.Close"
	if s == nil || !s.isInitialized.CompareAndSwap(true, false) {
		return nil
	}

	timeout := time.Duration(s.Config.ShutdownTimeoutMS) * time.Millisecond
	if pending := s.waitForActiveOps(timeout); pending > 0 && s.Config.ShutdownTimeoutWarning {
		if logger := s.logger.Load(); logger != nil {
			logger.Warn().Int64("active_operations", pending).Dur("timeout", timeout).Msg("Logger shutdown timeout exceeded")
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.logger.Store(nil)
	if s.fileWriter != nil {
		err := s.fileWriter.Close()
		s.fileWriter = nil
		if err != nil {
			return errors.New(op).Err(err).Msg(errMsgCloseFile)
		}
	}
	return nil
}

// waitForActiveOps polls the in-flight counter until it drops to zero or
// timeout passes, and returns what is still pending.
func (s *Service) waitForActiveOps(timeout time.Duration) int64 {
	deadline := time.Now().Add(timeout)
	for {
		pending := s.activeOps.Load()
		if pending <= 0 || !time.Now().Before(deadline) {
			return pending
		}
		time.Sleep(time.Millisecond)
	}
}

// Hook installs zerolog hooks on the underlying logger.
func (s *Service) Hook(hooks ...zerolog.Hook) {
	if !s.isInitialized.Load() {
		return
	}

	// Atomic compare-and-swap loop for thread-safe hook installation
	for {
		oldLogger := s.logger.Load()
		if oldLogger == nil {
			return
		}

		newLogger := oldLogger.Hook(hooks...)

		// Try to swap - if another goroutine changed it, retry
		if s.logger.CompareAndSwap(oldLogger, &newLogger) {
			break
		}
	}
}

// Initialized reports whether the service accepts records.
func (s *Service) Initialized() bool {
	return s != nil && s.isInitialized.Load()
}
