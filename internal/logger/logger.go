package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"
)

// Level is the logging level.
type Level int

const (
	Debug Level = iota
	Info
	Warn
	Error
)

// Config controls where and how much the logger writes.
type Config struct {
	Enabled bool
	Level   string
	File    string
	Console bool
}

// Logger is a leveled printf logger. A nil or disabled Logger discards everything.
type Logger struct {
	level     Level
	logger    *log.Logger
	enabled   bool
	component string
	closer    io.Closer
	now       func() time.Time
}

var defaultLogger atomic.Pointer[Logger]

func init() {
	defaultLogger.Store(&Logger{enabled: false})
}

// New builds a logger from cfg, opening the log file when one is configured.
func New(cfg Config) (*Logger, error) {
	if !cfg.Enabled {
		return &Logger{enabled: false}, nil
	}

	var writers []io.Writer
	var closer io.Closer

	if cfg.File != "" {
		dir := filepath.Dir(cfg.File)
		if dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory: %w", err)
			}
		}
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		writers = append(writers, f)
		closer = f
	}

	if cfg.Console || len(writers) == 0 {
		writers = append(writers, os.Stdout)
	}

	return &Logger{
		level:   ParseLevel(cfg.Level),
		logger:  log.New(io.MultiWriter(writers...), "", 0),
		enabled: true,
		closer:  closer,
		now:     time.Now,
	}, nil
}

// NewWriter builds an enabled logger writing to w.
func NewWriter(w io.Writer, level string) *Logger {
	return &Logger{
		level:   ParseLevel(level),
		logger:  log.New(w, "", 0),
		enabled: true,
		now:     time.Now,
	}
}

// Init builds a logger from cfg and installs it as the process default.
func Init(cfg Config) error {
	l, err := New(cfg)
	if err != nil {
		return err
	}
	defaultLogger.Store(l)
	return nil
}

// Default returns the process default logger. It discards output until Init is called.
func Default() *Logger {
	return defaultLogger.Load()
}

// With returns a logger that tags every line with component.
func (l *Logger) With(component string) *Logger {
	if l == nil {
		return nil
	}
	child := *l
	child.closer = nil
	if child.component != "" {
		child.component += "." + component
	} else {
		child.component = component
	}
	return &child
}

// Close releases the log file, if any.
func (l *Logger) Close() error {
	if l == nil || l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

// ParseLevel maps a level name to a Level; unknown names map to Info.
func ParseLevel(levelStr string) Level {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case "debug":
		return Debug
	case "info":
		return Info
	case "warn", "warning":
		return Warn
	case "error":
		return Error
	default:
		return Info
	}
}

func (lv Level) String() string {
	switch lv {
	case Debug:
		return "DEBUG"
	case Warn:
		return "WARN"
	case Error:
		return "ERROR"
	default:
		return "INFO"
	}
}

func (l *Logger) logf(level Level, format string, args ...interface{}) {
	if l == nil || !l.enabled || l.level > level {
		return
	}
	ts := l.now().Format("2006-01-02 15:04:05")
	msg := fmt.Sprintf(format, args...)
	if l.component != "" {
		l.logger.Println(fmt.Sprintf("[%s] [%s] [%s] %s", ts, level, l.component, msg))
		return
	}
	l.logger.Println(fmt.Sprintf("[%s] [%s] %s", ts, level, msg))
}

// Debugf logs a debug message.
func (l *Logger) Debugf(format string, args ...interface{}) { l.logf(Debug, format, args...) }

// Infof logs an info message.
func (l *Logger) Infof(format string, args ...interface{}) { l.logf(Info, format, args...) }

// Warnf logs a warning.
func (l *Logger) Warnf(format string, args ...interface{}) { l.logf(Warn, format, args...) }

// Errorf logs an error message.
func (l *Logger) Errorf(format string, args ...interface{}) { l.logf(Error, format, args...) }

// Debugf logs a debug message on the default logger.
func Debugf(format string, args ...interface{}) { Default().logf(Debug, format, args...) }

// Infof logs an info message on the default logger.
func Infof(format string, args ...interface{}) { Default().logf(Info, format, args...) }

// Warnf logs a warning on the default logger.
func Warnf(format string, args ...interface{}) { Default().logf(Warn, format, args...) }

// Errorf logs an error message on the default logger.
func Errorf(format string, args ...interface{}) { Default().logf(Error, format, args...) }
