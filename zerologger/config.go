package zerologger

import (
	"strings"

	"github.com/Station-Manager/errors"
	"github.com/spf13/viper"
)

// Config drives Service.Initialize.
//
// Levels is deliberately loosely typed: it takes whatever the config decoder
// produced ("error,warn", a YAML list, a map of name to bool) and is handed
// to logbase.Processor.ConfigureLevelsFrom. Unreadable shapes are reported as
// a warning and the default levels stay in force.
type Config struct {
	Levels any `mapstructure:"levels"`

	WithTimestamp  bool `mapstructure:"with_timestamp"`
	SkipFrameCount int  `mapstructure:"skip_frame_count" validate:"gte=0"`

	ConsoleLogging    bool   `mapstructure:"console_logging"`
	ConsoleNoColor    bool   `mapstructure:"console_no_color"`
	ConsoleTimeFormat string `mapstructure:"console_time_format"`

	FileLogging       bool   `mapstructure:"file_logging"`
	RelLogFileDir     string `mapstructure:"rel_log_file_dir" validate:"omitempty,safe_reldir"`
	LogFileName       string `mapstructure:"log_file_name" validate:"omitempty,excludesall=/\\"`
	LogFileMaxBackups int    `mapstructure:"log_file_max_backups" validate:"gte=0"`
	LogFileMaxAgeDays int    `mapstructure:"log_file_max_age_days" validate:"gte=0"`
	LogFileMaxSizeMB  int    `mapstructure:"log_file_max_size_mb" validate:"gte=0"`
	LogFileCompress   bool   `mapstructure:"log_file_compress"`

	ShutdownTimeoutMS      int  `mapstructure:"shutdown_timeout_ms" validate:"gte=0"`
	ShutdownTimeoutWarning bool `mapstructure:"shutdown_timeout_warning"`

	// Built-in enrichments registered by Initialize.
	EnrichHostname   bool `mapstructure:"enrich_hostname"`
	EnrichInstanceID bool `mapstructure:"enrich_instance_id"`
}

// DefaultConfig returns a console-only configuration with the default levels.
func DefaultConfig() *Config {
	return &Config{
		Levels:                 "fatal,error,warn,info",
		WithTimestamp:          true,
		ConsoleLogging:         true,
		RelLogFileDir:          "logs",
		LogFileMaxBackups:      3,
		LogFileMaxAgeDays:      7,
		LogFileMaxSizeMB:       10,
		ShutdownTimeoutMS:      defaultShutdownTimeoutMS,
		ShutdownTimeoutWarning: true,
	}
}

// LoadConfig reads a logging config file (any format viper understands) on
// top of DefaultConfig. LOGBASE_* environment variables override file values,
// e.g. LOGBASE_LEVELS="error,fatal". An empty path looks for "logging.*" in
// the working directory and falls back to the defaults when there is none.
func LoadConfig(path string) (*Config, error) {
	const op errors.Op = "zerologger.LoadConfig"

	v := viper.New()
	if path != emptyString {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("logging")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	def := DefaultConfig()
	v.SetDefault("levels", def.Levels)
	v.SetDefault("with_timestamp", def.WithTimestamp)
	v.SetDefault("skip_frame_count", def.SkipFrameCount)
	v.SetDefault("console_logging", def.ConsoleLogging)
	v.SetDefault("console_no_color", def.ConsoleNoColor)
	v.SetDefault("console_time_format", def.ConsoleTimeFormat)
	v.SetDefault("file_logging", def.FileLogging)
	v.SetDefault("rel_log_file_dir", def.RelLogFileDir)
	v.SetDefault("log_file_name", def.LogFileName)
	v.SetDefault("log_file_max_backups", def.LogFileMaxBackups)
	v.SetDefault("log_file_max_age_days", def.LogFileMaxAgeDays)
	v.SetDefault("log_file_max_size_mb", def.LogFileMaxSizeMB)
	v.SetDefault("log_file_compress", def.LogFileCompress)
	v.SetDefault("shutdown_timeout_ms", def.ShutdownTimeoutMS)
	v.SetDefault("shutdown_timeout_warning", def.ShutdownTimeoutWarning)
	v.SetDefault("enrich_hostname", def.EnrichHostname)
	v.SetDefault("enrich_instance_id", def.EnrichInstanceID)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.New(op).Err(err).Msg(errMsgConfigRead)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.New(op).Err(err).Msg(errMsgConfigDecode)
	}
	return cfg, nil
}
