// Package lumber is the logging facade used across covgate.
package lumber

import "github.com/LambdaTest/covgate/pkg/errs"

// LoggingConfig is the log section of the covgate configuration.
// logrus has a single level for all outputs and uses the console level when set.
type LoggingConfig struct {
	EnableConsole     bool   `mapstructure:"enable_console"`
	ConsoleJSONFormat bool   `mapstructure:"console_json_format"`
	ConsoleLevel      string `mapstructure:"console_level"`
	EnableFile        bool   `mapstructure:"enable_file"`
	FileJSONFormat    bool   `mapstructure:"file_json_format"`
	FileLevel         string `mapstructure:"file_level"`
	FileLocation      string `mapstructure:"file_location"`
}

// Fields Type to pass when we want to call WithFields for structured logging
type Fields map[string]interface{}

const (
	// Debug has verbose message
	Debug = "debug"
	// Info is default log level
	Info = "info"
	// Warn is for logging messages about possible issues
	Warn = "warn"
	// Error is for logging errors
	Error = "error"
	// Fatal is for logging fatal messages. The system shutsdown after logging the message.
	Fatal = "fatal"
)

// List of supported loggers.
const (
	InstanceZapLogger int = iota
	InstanceLogrusLogger
)

// loggerNames maps the configured logger name to its instance.
var loggerNames = map[string]int{
	"zap":    InstanceZapLogger,
	"logrus": InstanceLogrusLogger,
}

// ParseInstance returns the logger instance configured by name. An empty name selects zap.
func ParseInstance(name string) (int, error) {
	if name == "" {
		return InstanceZapLogger, nil
	}
	instance, ok := loggerNames[name]
	if !ok {
		return 0, errs.ErrInvalidLoggerInstance
	}
	return instance, nil
}

// Logger is the printf style logger every covgate component receives.
// Implementations write to the console on stderr and optionally to a rotating file.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	// Fatalf logs and then exits the process with status 1.
	Fatalf(format string, args ...interface{})
	Panicf(format string, args ...interface{})
	// WithFields returns a child logger that adds keyValues to every entry.
	WithFields(keyValues Fields) Logger
}

// NewLogger returns a logger of the given instance. verbose forces debug level on every output.
func NewLogger(config LoggingConfig, verbose bool, loggerInstance int) (Logger, error) {
	switch loggerInstance {
	case InstanceZapLogger:
		return newZapLogger(config, verbose), nil
	case InstanceLogrusLogger:
		return newLogrusLogger(config, verbose)
	default:
		return nil, errs.ErrInvalidLoggerInstance
	}
}
