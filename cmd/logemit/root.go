package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/Station-Manager/logbase"
	"github.com/Station-Manager/logbase/logrusbridge"
	"github.com/Station-Manager/logbase/zerologger"
	"github.com/joho/godotenv"
	"github.com/segmentio/encoding/json"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type emitOptions struct {
	configPath string
	workDir    string
	backend    string
	levels     string
	level      string
	fields     string
	asError    bool
}

func newRootCommand() *cobra.Command {
	opts := &emitOptions{}

	rootCmd := &cobra.Command{
		Use:   "logemit [message]",
		Short: "Emit a single log record through a logbase logger",
		Long: "logemit loads a logging config, builds a concrete logger and reports one record.\n" +
			"It is handy for checking what a config file actually does.",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// .env is optional
			_ = godotenv.Load()
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEmit(opts, args[0])
		},
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Logging config file (yaml, json or toml)")
	flags.StringVar(&opts.workDir, "workdir", ".", "Working directory for file logging")
	flags.StringVar(&opts.backend, "backend", "zerolog", "Logger backend: zerolog or logrus")
	flags.StringVar(&opts.levels, "levels", "", "Override enabled levels, e.g. \"error,warn\"")
	flags.StringVarP(&opts.level, "level", "l", logbase.LevelInfo, "Level to report at")
	flags.StringVarP(&opts.fields, "fields", "f", "", "Extra fields as a JSON object")
	flags.BoolVar(&opts.asError, "error", false, "Treat the message as an error value and report it at error level")

	return rootCmd
}

// emitter is what both backends provide.
type emitter interface {
	logbase.Logger
	ConfigureLevels(spec logbase.LevelSpec)
}

func runEmit(opts *emitOptions, message string) error {
	fields, err := parseFields(opts.fields)
	if err != nil {
		return err
	}

	logger, closeFn, err := buildLogger(opts)
	if err != nil {
		return err
	}
	defer closeFn()

	if opts.levels != "" {
		logger.ConfigureLevels(logbase.LevelString(opts.levels))
	}

	if opts.asError {
		return logger.ReportError(message)
	}
	if !logger.IsLevelEnabled(opts.level) {
		fmt.Fprintf(os.Stderr, "level %q is disabled; nothing emitted\n", opts.level)
		return nil
	}
	return logger.Report(opts.level, message, fields)
}

func buildLogger(opts *emitOptions) (emitter, func(), error) {
	switch strings.ToLower(opts.backend) {
	case "zerolog":
		cfg, err := zerologger.LoadConfig(opts.configPath)
		if err != nil {
			return nil, nil, err
		}
		svc, err := zerologger.NewService(opts.workDir, cfg)
		if err != nil {
			return nil, nil, err
		}
		return svc, func() { _ = svc.Close() }, nil
	case "logrus":
		base := logrus.New()
		base.SetOutput(os.Stderr)
		base.SetLevel(logrus.TraceLevel)
		base.SetFormatter(&logrus.JSONFormatter{})
		l, err := logrusbridge.New(logrus.NewEntry(base), logbase.WithEnrichers(logbase.Hostname()))
		if err != nil {
			return nil, nil, err
		}
		return l, func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown backend %q (want zerolog or logrus)", opts.backend)
	}
}

func parseFields(raw string) (logbase.Fields, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var fields logbase.Fields
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return nil, fmt.Errorf("parse --fields: %w", err)
	}
	return fields, nil
}
