// Package logging provides category-based file logging for craftmon. Each
// category writes to its own file under <dir>/logs; when debug mode is off
// every logger is a silent no-op so the render loop pays nothing for it.
package logging

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Category represents a log category/system.
type Category string

const (
	CategoryBoot       Category = "boot"       // Startup, shutdown
	CategoryLoop       Category = "loop"       // Event loop ticks and dispatch
	CategoryView       Category = "view"       // View registration, data fetch
	CategoryRender     Category = "render"     // Frame rendering, flush stats
	CategoryPeripheral Category = "peripheral" // Bus attach/detach
	CategoryTouch      Category = "touch"      // Touch dispatch
	CategoryManager    Category = "manager"    // Assignment decisions
	CategoryConfig     Category = "config"     // Config load/reload
)

// Log levels.
const (
	LevelDebug = 0
	LevelInfo  = 1
	LevelWarn  = 2
	LevelError = 3
)

// Options controls the logging system. Mapped from config.LoggingConfig by
// the caller so this package has no config dependency.
type Options struct {
	Enabled    bool
	Level      string          // debug, info, warn, error
	Categories map[string]bool // nil enables all
}

// Logger wraps a standard logger with category and file output.
type Logger struct {
	category Category
	logger   *log.Logger
	file     *os.File
}

var (
	mu       sync.RWMutex
	loggers  = make(map[Category]*Logger)
	logsDir  string
	opts     Options
	logLevel int
)

// Initialize sets up the logging directory. dir is the craftmon state
// directory; logs land in dir/logs. A no-op when opts.Enabled is false.
func Initialize(dir string, o Options) error {
	mu.Lock()
	defer mu.Unlock()

	opts = o
	switch o.Level {
	case "debug":
		logLevel = LevelDebug
	case "warn", "warning":
		logLevel = LevelWarn
	case "error":
		logLevel = LevelError
	default:
		logLevel = LevelInfo
	}

	if !o.Enabled {
		logsDir = ""
		return nil
	}
	if dir == "" {
		return fmt.Errorf("logging directory required")
	}
	logsDir = filepath.Join(dir, "logs")
	if err := os.MkdirAll(logsDir, 0o755); err != nil {
		return fmt.Errorf("create logs directory: %w", err)
	}
	return nil
}

// IsCategoryEnabled reports whether a category currently logs.
func IsCategoryEnabled(c Category) bool {
	mu.RLock()
	defer mu.RUnlock()
	return categoryEnabled(c)
}

func categoryEnabled(c Category) bool {
	if !opts.Enabled {
		return false
	}
	if opts.Categories == nil {
		return true
	}
	enabled, ok := opts.Categories[string(c)]
	if !ok {
		return true
	}
	return enabled
}

// Get returns (or creates) the logger for a category. Disabled categories
// get a no-op logger.
func Get(c Category) *Logger {
	mu.RLock()
	if !categoryEnabled(c) || logsDir == "" {
		mu.RUnlock()
		return &Logger{category: c}
	}
	if l, ok := loggers[c]; ok {
		mu.RUnlock()
		return l
	}
	mu.RUnlock()

	mu.Lock()
	defer mu.Unlock()
	if l, ok := loggers[c]; ok {
		return l
	}

	date := time.Now().Format("2006-01-02")
	path := filepath.Join(logsDir, fmt.Sprintf("%s_%s.log", date, c))
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[logging] could not open %s: %v\n", path, err)
		return &Logger{category: c}
	}
	l := &Logger{
		category: c,
		file:     file,
		logger:   log.New(file, "", log.Ldate|log.Ltime|log.Lmicroseconds),
	}
	loggers[c] = l
	return l
}

// Debug logs a debug message.
func (l *Logger) Debug(format string, args ...interface{}) {
	if l.logger == nil || logLevel > LevelDebug {
		return
	}
	l.logger.Printf("[DEBUG] %s", fmt.Sprintf(format, args...))
}

// Info logs an informational message.
func (l *Logger) Info(format string, args ...interface{}) {
	if l.logger == nil || logLevel > LevelInfo {
		return
	}
	l.logger.Printf("[INFO] %s", fmt.Sprintf(format, args...))
}

// Warn logs a warning.
func (l *Logger) Warn(format string, args ...interface{}) {
	if l.logger == nil || logLevel > LevelWarn {
		return
	}
	l.logger.Printf("[WARN] %s", fmt.Sprintf(format, args...))
}

// Error logs an error. Always written if the logger exists.
func (l *Logger) Error(format string, args ...interface{}) {
	if l.logger == nil {
		return
	}
	l.logger.Printf("[ERROR] %s", fmt.Sprintf(format, args...))
}

// CloseAll closes open log files. Call at shutdown.
func CloseAll() {
	mu.Lock()
	defer mu.Unlock()
	for _, l := range loggers {
		if l.file != nil {
			_ = l.file.Close()
		}
	}
	loggers = make(map[Category]*Logger)
}

// Convenience functions for the hot categories. No-ops when disabled.

// Boot logs to the boot category.
func Boot(format string, args ...interface{}) { Get(CategoryBoot).Info(format, args...) }

// Loop logs to the loop category.
func Loop(format string, args ...interface{}) { Get(CategoryLoop).Info(format, args...) }

// LoopDebug logs debug to the loop category.
func LoopDebug(format string, args ...interface{}) { Get(CategoryLoop).Debug(format, args...) }

// Render logs to the render category.
func Render(format string, args ...interface{}) { Get(CategoryRender).Info(format, args...) }

// RenderDebug logs debug to the render category.
func RenderDebug(format string, args ...interface{}) { Get(CategoryRender).Debug(format, args...) }

// View logs to the view category.
func View(format string, args ...interface{}) { Get(CategoryView).Info(format, args...) }

// ViewError logs error to the view category.
func ViewError(format string, args ...interface{}) { Get(CategoryView).Error(format, args...) }

// Manager logs to the manager category.
func Manager(format string, args ...interface{}) { Get(CategoryManager).Info(format, args...) }

// ManagerWarn logs warning to the manager category.
func ManagerWarn(format string, args ...interface{}) { Get(CategoryManager).Warn(format, args...) }

// Touch logs to the touch category.
func Touch(format string, args ...interface{}) { Get(CategoryTouch).Info(format, args...) }

// PeripheralLog logs to the peripheral category.
func PeripheralLog(format string, args ...interface{}) {
	Get(CategoryPeripheral).Info(format, args...)
}

// Timer helps measure operation duration.
type Timer struct {
	category Category
	op       string
	start    time.Time
}

// StartTimer begins timing an operation.
func StartTimer(category Category, operation string) *Timer {
	return &Timer{category: category, op: operation, start: time.Now()}
}

// Stop ends the timer and logs the duration at debug level.
func (t *Timer) Stop() time.Duration {
	elapsed := time.Since(t.start)
	Get(t.category).Debug("%s completed in %v", t.op, elapsed)
	return elapsed
}

// StopWithThreshold logs a warning if the duration exceeds threshold.
func (t *Timer) StopWithThreshold(threshold time.Duration) time.Duration {
	elapsed := time.Since(t.start)
	if elapsed > threshold {
		Get(t.category).Warn("%s took %v (threshold: %v)", t.op, elapsed, threshold)
	} else {
		Get(t.category).Debug("%s completed in %v", t.op, elapsed)
	}
	return elapsed
}
