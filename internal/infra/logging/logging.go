// Where: internal/infra/logging/logging.go
// What: Diagnostic logger construction on top of log/slog.
// Why: Keep debug output on stderr, separate from generator status lines.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// Format selects the handler encoding.
type Format string

const (
	// FormatText writes key=value pairs.
	FormatText Format = "text"
	// FormatJSON writes one JSON object per record.
	FormatJSON Format = "json"
)

// Options configures the logger.
type Options struct {
	Format           Format
	Level            slog.Level
	Writer           io.Writer
	DisableTimestamp bool
}

// Option configures logger behavior.
type Option func(*Options)

// WithFormat sets the output format.
func WithFormat(format Format) Option {
	return func(o *Options) { o.Format = format }
}

// WithLevel sets the minimum log level.
func WithLevel(level slog.Level) Option {
	return func(o *Options) { o.Level = level }
}

// WithVerbose lowers the level to debug when enabled.
func WithVerbose(verbose bool) Option {
	return func(o *Options) {
		if verbose {
			o.Level = slog.LevelDebug
		}
	}
}

// WithWriter sets the output writer.
func WithWriter(w io.Writer) Option {
	return func(o *Options) { o.Writer = w }
}

// WithoutTimestamp drops the time attribute from every record.
func WithoutTimestamp() Option {
	return func(o *Options) { o.DisableTimestamp = true }
}

// New creates a logger. The default writes warnings and above as text to stderr.
func New(opts ...Option) *slog.Logger {
	options := Options{
		Format: FormatText,
		Level:  slog.LevelWarn,
		Writer: os.Stderr,
	}
	for _, opt := range opts {
		opt(&options)
	}
	if options.Writer == nil {
		options.Writer = os.Stderr
	}

	handlerOpts := &slog.HandlerOptions{Level: options.Level}
	if options.DisableTimestamp {
		handlerOpts.ReplaceAttr = func(groups []string, attr slog.Attr) slog.Attr {
			if len(groups) == 0 && attr.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return attr
		}
	}

	var handler slog.Handler
	switch options.Format {
	case FormatJSON:
		handler = slog.NewJSONHandler(options.Writer, handlerOpts)
	default:
		handler = slog.NewTextHandler(options.Writer, handlerOpts)
	}
	return slog.New(handler)
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
