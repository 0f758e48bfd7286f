// Package logging configures the process-wide zerolog logger.
package logging

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls SetupLogger.
type Options struct {
	// Verbosity maps to a level: 0 warn, 1 info, 2 debug, 3+ trace.
	Verbosity int
	// Out receives console log lines. Defaults to os.Stderr.
	Out io.Writer
	// NoColor disables colors in console log lines.
	NoColor bool
	// File, when set, receives every log line through a rotating writer.
	File       string
	MaxSizeMB  int
	MaxBackups int
}

var (
	mu      sync.Mutex
	rotator *lumberjack.Logger
)

func init() {
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()
}

// LevelFor returns the zerolog level used for a verbosity count.
func LevelFor(verbosity int) zerolog.Level {
	switch {
	case verbosity <= 0:
		return zerolog.WarnLevel
	case verbosity == 1:
		return zerolog.InfoLevel
	case verbosity == 2:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// SetupLogger configures the global logger. Console output goes to opts.Out
// and, if opts.File is set, to a size-rotated log file as JSON lines.
func SetupLogger(opts Options) {
	mu.Lock()
	defer mu.Unlock()

	zerolog.SetGlobalLevel(LevelFor(opts.Verbosity))

	out := opts.Out
	if out == nil {
		out = os.Stderr
	}

	writers := []io.Writer{zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.Kitchen,
		NoColor:    opts.NoColor,
	}}

	if rotator != nil {
		_ = rotator.Close()
		rotator = nil
	}
	if opts.File != "" {
		rotator = &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    valueOr(opts.MaxSizeMB, 5),
			MaxBackups: valueOr(opts.MaxBackups, 3),
			MaxAge:     28,
		}
		writers = append(writers, rotator)
	}

	ctx := zerolog.New(io.MultiWriter(writers...)).With().Timestamp()
	if opts.Verbosity >= 2 {
		ctx = ctx.Caller()
	}
	log.Logger = ctx.Logger()

	log.Debug().
		Int("verbosity", opts.Verbosity).
		Str("logFile", opts.File).
		Msg("Logger initialized")
}

// Close releases the log file, if any.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if rotator == nil {
		return nil
	}
	err := rotator.Close()
	rotator = nil
	return err
}

// GetLogger returns a contextualized logger with the given component name.
func GetLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

// LogDuration logs the duration of an operation.
func LogDuration(start time.Time, operation string) {
	log.Debug().
		Str("operation", operation).
		Dur("duration", time.Since(start)).
		Msg("Operation completed")
}

func valueOr(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}
