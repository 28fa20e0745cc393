package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// Config holds logger settings loaded from the environment.
type Config struct {
	Level   string `env:"LOG_LEVEL" envDefault:"info"`
	Format  string `env:"LOG_FORMAT" envDefault:"json"`
	Service string `env:"APP_NAME" envDefault:"todo"`
	Sentry  SentryConfig
}

type options struct {
	writer     io.Writer
	level      slog.Level
	format     string
	service    string
	extractors []ContextExtractor
	extra      []slog.Handler
}

// Option configures New.
type Option func(*options)

// WithWriter sets the output destination. Defaults to os.Stdout.
func WithWriter(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.writer = w
		}
	}
}

// WithLevel sets the minimum level. Defaults to slog.LevelInfo.
func WithLevel(level slog.Level) Option {
	return func(o *options) {
		o.level = level
	}
}

// WithFormat selects FormatJSON or FormatText.
func WithFormat(format string) Option {
	return func(o *options) {
		o.format = strings.ToLower(format)
	}
}

// WithService adds a "service" attribute to every record.
func WithService(name string) Option {
	return func(o *options) {
		o.service = name
	}
}

// WithExtractors adds context extractors.
func WithExtractors(extractors ...ContextExtractor) Option {
	return func(o *options) {
		o.extractors = append(o.extractors, extractors...)
	}
}

// WithHandler adds another destination next to the writer.
func WithHandler(h slog.Handler) Option {
	return func(o *options) {
		if h != nil {
			o.extra = append(o.extra, h)
		}
	}
}

// New creates a structured logger. JSON on stdout at info level by default.
func New(opts ...Option) *slog.Logger {
	o := &options{
		writer: os.Stdout,
		level:  slog.LevelInfo,
		format: FormatJSON,
	}
	for _, opt := range opts {
		opt(o)
	}

	hopts := &slog.HandlerOptions{Level: o.level}
	var h slog.Handler
	if o.format == FormatText {
		h = slog.NewTextHandler(o.writer, hopts)
	} else {
		h = slog.NewJSONHandler(o.writer, hopts)
	}
	if len(o.extra) > 0 {
		h = append(fanout{h}, o.extra...)
	}
	if o.service != "" {
		h = h.WithAttrs([]slog.Attr{slog.String("service", o.service)})
	}
	return slog.New(NewLogHandlerDecorator(h, o.extractors...))
}

// NewFromConfig creates a logger from Config. When a Sentry DSN is set,
// warnings and errors are also sent to Sentry; a failed Sentry setup is
// logged and the logger continues without it.
func NewFromConfig(cfg Config, opts ...Option) (*slog.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	base := []Option{
		WithLevel(level),
		WithFormat(cfg.Format),
		WithService(cfg.Service),
	}

	sentryHandler, sentryErr := newSentryHandler(cfg.Sentry)
	if sentryHandler != nil {
		base = append(base, WithHandler(sentryHandler))
	}

	log := New(append(base, opts...)...)
	if sentryErr != nil {
		log.Error("failed to initialize sentry", slog.String("error", sentryErr.Error()))
	}
	return log, nil
}

// ParseLevel parses debug, info, warn or error, case-insensitively.
// An empty string means info.
func ParseLevel(s string) (slog.Level, error) {
	if strings.TrimSpace(s) == "" {
		return slog.LevelInfo, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("logger: invalid level %q: %w", s, err)
	}
	return level, nil
}
