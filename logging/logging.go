// Package logging builds the *slog.Logger used by the deltabridge commands.
// Library packages only accept a *slog.Logger; the handler choice lives here.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	charmlog "github.com/charmbracelet/log"
)

// Option configures a logger created with New.
type Option func(*options)

type options struct {
	level   slog.Level
	json    bool
	writers []io.Writer
	prefix  string
}

// WithLevel sets the minimum level.
func WithLevel(level slog.Level) Option {
	return func(o *options) { o.level = level }
}

// WithJSON switches the charm handler to its JSON formatter.
func WithJSON(json bool) Option {
	return func(o *options) { o.json = json }
}

// WithWriter overrides the output writer. Defaults to os.Stderr.
func WithWriter(w io.Writer) Option {
	return func(o *options) { o.writers = []io.Writer{w} }
}

// WithWriters sets multiple output writers.
func WithWriters(w ...io.Writer) Option {
	return func(o *options) { o.writers = w }
}

// WithPrefix sets the charm log prefix, usually the command name.
func WithPrefix(prefix string) Option {
	return func(o *options) { o.prefix = prefix }
}

// New returns a *slog.Logger backed by charmbracelet/log.
func New(opts ...Option) *slog.Logger {
	o := options{level: slog.LevelInfo}
	for _, opt := range opts {
		opt(&o)
	}

	var w io.Writer = os.Stderr
	switch len(o.writers) {
	case 0:
	case 1:
		w = o.writers[0]
	default:
		w = io.MultiWriter(o.writers...)
	}

	formatter := charmlog.TextFormatter
	if o.json {
		formatter = charmlog.JSONFormatter
	}

	handler := charmlog.NewWithOptions(w, charmlog.Options{
		Level:           charmlog.Level(o.level),
		ReportTimestamp: true,
		Prefix:          o.prefix,
		Formatter:       formatter,
	})
	return slog.New(handler)
}

// ParseLevel maps debug/info/warn/error to a slog level. Empty means info.
func ParseLevel(s string) (slog.Level, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return slog.LevelInfo, nil
	}
	level, err := charmlog.ParseLevel(strings.ToLower(s))
	if err != nil {
		return slog.LevelInfo, err
	}
	return slog.Level(level), nil
}
