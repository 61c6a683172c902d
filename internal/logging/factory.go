package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options selects the backend, level, format and destination of a logger.
type Options struct {
	Backend string // "slog" or "zerolog"
	Level   string // debug, info, warn, error
	Format  string // "json" or "text"
	File    string // optional path; rotated with lumberjack

	// Output overrides stdout when set.
	Output io.Writer
}

// New builds a Logger from opts. The returned closer releases the log file,
// if any.
func New(opts Options) (Logger, io.Closer, error) {
	var (
		w      io.Writer = os.Stdout
		closer io.Closer = nopCloser{}
	)
	if opts.Output != nil {
		w = opts.Output
	}
	if opts.File != "" {
		lj := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
		}
		w = io.MultiWriter(w, lj)
		closer = lj
	}

	switch strings.ToLower(opts.Backend) {
	case "", "slog":
		level, err := slogLevel(opts.Level)
		if err != nil {
			return nil, nil, err
		}
		ho := &slog.HandlerOptions{Level: level}
		var h slog.Handler
		if strings.EqualFold(opts.Format, "text") {
			h = slog.NewTextHandler(w, ho)
		} else {
			h = slog.NewJSONHandler(w, ho)
		}
		return NewSlogLogger(slog.New(h)), closer, nil

	case "zerolog":
		level, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return nil, nil, fmt.Errorf("log level %q: %w", opts.Level, err)
		}
		if level == zerolog.NoLevel {
			level = zerolog.InfoLevel
		}
		if strings.EqualFold(opts.Format, "text") {
			w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
		}
		zl := zerolog.New(w).Level(level).With().Timestamp().Logger()
		return NewZerologLogger(zl), closer, nil
	}

	return nil, nil, fmt.Errorf("unknown log backend %q", opts.Backend)
}

func slogLevel(s string) (slog.Level, error) {
	var l slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("log level %q: %w", s, err)
	}
	return l, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
