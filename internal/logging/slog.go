// Package logging adapts slog to the small structured-logger interface the
// service's packages accept.
package logging

import "log/slog"

// SlogLogger wraps *slog.Logger. The variadic args are key-value pairs.
type SlogLogger struct {
	l *slog.Logger
}

// NewSlogLogger returns an adapter over l.
func NewSlogLogger(l *slog.Logger) *SlogLogger {
	return &SlogLogger{l: l}
}

func (s *SlogLogger) Debug(msg string, args ...any) { s.l.Debug(msg, args...) }
func (s *SlogLogger) Info(msg string, args ...any)  { s.l.Info(msg, args...) }
func (s *SlogLogger) Warn(msg string, args ...any)  { s.l.Warn(msg, args...) }
func (s *SlogLogger) Error(msg string, args ...any) { s.l.Error(msg, args...) }

// With returns a child logger that always includes the given key-value pairs.
func (s *SlogLogger) With(args ...any) *SlogLogger {
	return &SlogLogger{l: s.l.With(args...)}
}
