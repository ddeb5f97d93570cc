package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/trace"
)

const (
	FormatPretty  = "pretty"
	FormatConsole = "console"
	BooleanTrue   = "true"
)

// Logger wraps zerolog.Logger with additional context.
type Logger struct {
	logger  zerolog.Logger
	service string
}

// Init initializes the global logger from config.
func Init(cfg Config) {
	cfg.ApplyDefaults()
	globalLogger = New(&cfg, "default")

	level, _ := zerolog.ParseLevel(cfg.Level)
	zerolog.SetGlobalLevel(level)

	if isConsole(cfg.Format) {
		log.Logger = newConsoleLogger(&cfg, "default")
	}
}

// New creates a new logger instance with configuration.
func New(cfg *Config, serviceName string) *Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var zl zerolog.Logger
	if isConsole(cfg.Format) {
		zl = newConsoleLogger(cfg, serviceName)
	} else {
		zl = zerolog.New(outputWriter(cfg.Output))
		if cfg.Timestamp {
			zl = zl.With().Timestamp().Logger()
		}
	}
	if cfg.Caller {
		zl = zl.With().Caller().Logger()
	}
	zl = zl.Level(level)
	if serviceName != "" && serviceName != "default" {
		zl = zl.With().Str(FieldService, serviceName).Logger()
	}

	return &Logger{
		logger:  zl,
		service: serviceName,
	}
}

// NewWithWriter creates a JSON logger writing to w. Useful for tests and for
// embedding collectionkit logs into an existing sink.
func NewWithWriter(w io.Writer, level, serviceName string) *Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zl := zerolog.New(w).Level(lvl).With().Timestamp().Logger()
	if serviceName != "" {
		zl = zl.With().Str(FieldService, serviceName).Logger()
	}
	return &Logger{logger: zl, service: serviceName}
}

// NewDefault creates a logger with default configuration.
func NewDefault(serviceName string) *Logger {
	cfg := &Config{
		Level:     "info",
		Format:    FormatConsole,
		Output:    "stdout",
		NoColor:   false,
		Timestamp: true,
	}
	return New(cfg, serviceName)
}

// NewFromEnv creates a logger configured from environment variables.
func NewFromEnv(serviceName string) *Logger {
	cfg := &Config{
		Level:     getEnvOrDefault("LOG_LEVEL", "info"),
		Format:    getEnvOrDefault("LOG_FORMAT", FormatConsole),
		Output:    getEnvOrDefault("LOG_OUTPUT", "stdout"),
		NoColor:   getEnvOrDefault("LOG_NO_COLOR", "false") == BooleanTrue,
		Timestamp: getEnvOrDefault("LOG_TIMESTAMP", "true") == BooleanTrue,
	}
	return New(cfg, serviceName)
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{logger: zerolog.Nop()}
}

// WithContext returns a logger enriched with the trace and span IDs of the
// active span in ctx, if any.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return l
	}
	zc := l.logger.With().
		Str(FieldTraceID, sc.TraceID().String()).
		Str(FieldSpanID, sc.SpanID().String())
	return &Logger{logger: zc.Logger(), service: l.service}
}

// WithComponent returns a logger tagged with a component name.
func (l *Logger) WithComponent(name string) *Logger {
	return &Logger{
		logger:  l.logger.With().Str(FieldComponent, name).Logger(),
		service: l.service,
	}
}

// WithFields returns a logger with additional fields.
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	zc := l.logger.With()
	for k, v := range fields {
		zc = zc.Interface(k, v)
	}
	return &Logger{logger: zc.Logger(), service: l.service}
}

// WithError returns a logger with an error field.
func (l *Logger) WithError(err error) *Logger {
	return &Logger{
		logger:  l.logger.With().Err(err).Logger(),
		service: l.service,
	}
}

// GetLogger returns the underlying zerolog.Logger.
func (l *Logger) GetLogger() zerolog.Logger {
	return l.logger
}

// Enabled reports whether messages at level would be written.
func (l *Logger) Enabled(level zerolog.Level) bool {
	return l.logger.GetLevel() <= level && zerolog.GlobalLevel() <= level
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, fields ...map[string]interface{}) {
	event := l.logger.Debug()
	addFields(event, fields...)
	event.Msg(msg)
}

// Info logs an info message.
func (l *Logger) Info(msg string, fields ...map[string]interface{}) {
	event := l.logger.Info()
	addFields(event, fields...)
	event.Msg(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string, fields ...map[string]interface{}) {
	event := l.logger.Warn()
	addFields(event, fields...)
	event.Msg(msg)
}

// Error logs an error message.
func (l *Logger) Error(msg string, fields ...map[string]interface{}) {
	event := l.logger.Error()
	addFields(event, fields...)
	event.Msg(msg)
}

// --- Global logger ---

var globalLogger *Logger

// SetGlobalLogger sets the global logger instance.
func SetGlobalLogger(l *Logger) { globalLogger = l }

// GetGlobalLogger returns the global logger, creating a default one if needed.
func GetGlobalLogger() *Logger {
	if globalLogger == nil {
		globalLogger = NewDefault("default")
	}
	return globalLogger
}

// Package-level convenience functions delegate to the global logger.

func Debug(msg string, fields ...map[string]interface{}) {
	GetGlobalLogger().Debug(msg, fields...)
}

func Info(msg string, fields ...map[string]interface{}) {
	GetGlobalLogger().Info(msg, fields...)
}

func Warn(msg string, fields ...map[string]interface{}) {
	GetGlobalLogger().Warn(msg, fields...)
}

func Error(msg string, fields ...map[string]interface{}) {
	GetGlobalLogger().Error(msg, fields...)
}

// WithComponent returns a component-tagged logger from the global logger.
func WithComponent(name string) *Logger {
	return GetGlobalLogger().WithComponent(name)
}

// --- internal helpers ---

func addFields(event *zerolog.Event, fields ...map[string]interface{}) {
	for _, fm := range fields {
		for k, v := range fm {
			event.Interface(k, v)
		}
	}
}

func isConsole(format string) bool {
	f := strings.ToLower(format)
	return f == FormatConsole || f == FormatPretty
}

func outputWriter(output string) *os.File {
	switch strings.ToLower(output) {
	case "stderr":
		return os.Stderr
	default:
		return os.Stdout
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

var levelTags = map[string]struct{ plain, color string }{
	"DEBUG": {"[DBG]", "\033[36m[DBG]\033[0m"},
	"INFO":  {"[INF]", "\033[32m[INF]\033[0m"},
	"WARN":  {"[WRN]", "\033[33m[WRN]\033[0m"},
	"ERROR": {"[ERR]", "\033[31m[ERR]\033[0m"},
	"FATAL": {"[FTL]", "\033[35m[FTL]\033[0m"},
}

func newConsoleLogger(cfg *Config, serviceName string) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{
		Out:        outputWriter(cfg.Output),
		TimeFormat: "15:04:05",
		NoColor:    cfg.NoColor,
		FormatLevel: func(i interface{}) string {
			lvl := strings.ToUpper(fmt.Sprintf("%s", i))
			tag, ok := levelTags[lvl]
			switch {
			case !ok:
				lvl = fmt.Sprintf("[%s]", lvl)
			case cfg.NoColor:
				lvl = tag.plain
			default:
				lvl = tag.color
			}
			if serviceName != "" && serviceName != "default" && len(serviceName) >= 3 {
				svc := strings.ToUpper(serviceName[:3])
				if !cfg.NoColor {
					return fmt.Sprintf("\033[34m[%s]\033[0m%s", svc, lvl)
				}
				return fmt.Sprintf("[%s]%s", svc, lvl)
			}
			return lvl
		},
		FormatFieldName: func(i interface{}) string {
			return fmt.Sprintf("%s:", i)
		},
	}).With().Timestamp().Logger()
}
