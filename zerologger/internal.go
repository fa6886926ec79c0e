package zerologger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/Station-Manager/errors"
	"github.com/Station-Manager/logbase"
	"github.com/Station-Manager/utils"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// logFileName picks the rolling file name: the configured one, else the
// executable's name, else "app".
func (s *Service) logFileName() string {
	if s.Config.LogFileName != emptyString {
		return s.Config.LogFileName
	}
	exeName, err := utils.ExecName(true)
	if err != nil || exeName == emptyString {
		exeName = defaultExecName
	}
	return exeName + logFileExt
}

func (s *Service) initializeRollingFileLogger() (*lumberjack.Logger, error) {
	const op errors.Op = "zerologger.Service.initializeRollingFileLogger"

	dir := filepath.Join(s.WorkingDir, s.Config.RelLogFileDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.New(op).Err(err).Msg(errMsgLogDir)
	}

	return &lumberjack.Logger{
		Filename:   filepath.Join(dir, s.logFileName()),
		MaxBackups: s.Config.LogFileMaxBackups,
		MaxAge:     s.Config.LogFileMaxAgeDays,
		MaxSize:    s.Config.LogFileMaxSizeMB,
		Compress:   s.Config.LogFileCompress,
	}, nil
}

func (s *Service) initializeConsoleWriter() zerolog.ConsoleWriter {
	noColor := s.Config.ConsoleNoColor
	fd := os.Stderr.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		noColor = true
	}
	cw := zerolog.ConsoleWriter{Out: os.Stderr, NoColor: noColor}
	if s.Config.ConsoleTimeFormat != emptyString {
		cw.TimeFormat = s.Config.ConsoleTimeFormat
	}
	return cw
}

func (s *Service) initializeWriters() ([]io.Writer, error) {
	var writers []io.Writer

	// If both writers are disabled, enable the file writer
	if !s.Config.ConsoleLogging && !s.Config.FileLogging {
		s.Config.FileLogging = true
	}
	if s.Config.FileLogging {
		fw, err := s.initializeRollingFileLogger()
		if err != nil {
			return nil, err
		}
		s.fileWriter = fw
		writers = append(writers, fw)
	}
	if s.Config.ConsoleLogging {
		writers = append(writers, s.initializeConsoleWriter())
	}

	return writers, nil
}

// parseLevel maps a level name onto zerolog. Names zerolog does not know are
// written with NoLevel and their own "level" field.
func parseLevel(level string) (zerolog.Level, bool) {
	l, err := zerolog.ParseLevel(level)
	if err != nil || l == zerolog.NoLevel {
		return zerolog.NoLevel, false
	}
	return l, true
}

// writeRecord emits rec through logger. WithLevel never exits or panics, so
// fatal and panic records are written like any other.
func writeRecord(logger *zerolog.Logger, rec logbase.Record, level string) {
	zl, known := parseLevel(level)
	event := logger.WithLevel(zl)
	if event == nil {
		return
	}
	if !known && level != emptyString {
		event = event.Str(zerolog.LevelFieldName, level)
	}
	// Keys set by enrichments outside "fields" are written at the top level.
	for k, v := range rec {
		if k == logbase.MessageKey || k == logbase.FieldsKey {
			continue
		}
		event = event.Interface(k, v)
	}
	event.Fields(map[string]interface{}(rec.Fields())).Msg(rec.Message())
}
