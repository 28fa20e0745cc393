package logger

import (
	"context"
	"log/slog"
)

type nopeHandler struct{}

func (nopeHandler) Enabled(context.Context, slog.Level) bool { return false }
func (nopeHandler) Handle(context.Context, slog.Record) error { return nil }
func (h nopeHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h nopeHandler) WithGroup(string) slog.Handler { return h }

// NewNope returns a logger that discards everything.
// Components use it as their default so a logger is never nil.
func NewNope() *slog.Logger {
	return slog.New(nopeHandler{})
}
