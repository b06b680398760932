package app

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/dshills/keywarp/internal/xdg"
)

// EnvPrefix prefixes the environment variables that set process options,
// e.g. KEYWARP_LOG_LEVEL.
const EnvPrefix = "KEYWARP"

// Flag names shared with the command line.
const (
	FlagConfig    = "config"
	FlagHistory   = "history-file"
	FlagLockDir   = "lock-dir"
	FlagLogLevel  = "log-level"
	FlagLogFormat = "log-format"
	FlagLogFile   = "log-file"
)

// Options configures the application process. Pointer behavior lives in
// the config file; these only say where things are and how to log.
type Options struct {
	// ConfigPath is the keywarp config file.
	ConfigPath string

	// HistoryPath is the persistent hint history file.
	HistoryPath string

	// LockDir holds the single instance lock.
	LockDir string

	// LogLevel and LogFormat configure the process logger.
	LogLevel  string
	LogFormat string

	// LogFile receives the log instead of stderr when set.
	LogFile string

	// Output receives the print binding's output. Defaults to discarding.
	Output io.Writer
}

// RegisterFlags adds the process option flags to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.StringP(FlagConfig, "c", "", "config file (default $XDG_CONFIG_HOME/keywarp/config)")
	fs.String(FlagHistory, "", "history file (default $XDG_DATA_HOME/keywarp/history)")
	fs.String(FlagLockDir, "", "directory of the instance lock (default $XDG_RUNTIME_DIR)")
	fs.String(FlagLogLevel, "warn", "log level: trace, debug, info, warn, error, off")
	fs.String(FlagLogFormat, LogFormatConsole, "log format: console or json")
	fs.String(FlagLogFile, "", "append the log to this file instead of stderr")
}

// LoadOptions resolves the options from fs, then KEYWARP_* environment
// variables, then the per-user defaults. A flag given on the command line
// wins over the environment.
func LoadOptions(fs *pflag.FlagSet) (Options, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(FlagLogLevel, "warn")
	v.SetDefault(FlagLogFormat, LogFormatConsole)
	if fs != nil {
		if err := v.BindPFlags(fs); err != nil {
			return Options{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	opts := Options{
		ConfigPath:  v.GetString(FlagConfig),
		HistoryPath: v.GetString(FlagHistory),
		LockDir:     v.GetString(FlagLockDir),
		LogLevel:    v.GetString(FlagLogLevel),
		LogFormat:   strings.ToLower(v.GetString(FlagLogFormat)),
		LogFile:     v.GetString(FlagLogFile),
	}

	var err error
	if opts.ConfigPath == "" {
		if opts.ConfigPath, err = xdg.ConfigFile(); err != nil {
			return Options{}, err
		}
	}
	if opts.HistoryPath == "" {
		if opts.HistoryPath, err = xdg.HistoryFile(); err != nil {
			return Options{}, err
		}
	}
	if opts.LockDir == "" {
		opts.LockDir = xdg.RuntimeDir()
	}

	switch opts.LogFormat {
	case LogFormatConsole, LogFormatJSON:
	default:
		return Options{}, fmt.Errorf("%w: log format %q", ErrInvalidOption, opts.LogFormat)
	}
	return opts, nil
}

// LogConfig returns the logger configuration for these options.
func (o Options) LogConfig(out io.Writer) LogConfig {
	return LogConfig{
		Level:  ParseLogLevel(o.LogLevel),
		Format: o.LogFormat,
		Output: out,
	}
}
