package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/novelsrc"
)

// Ensure LoggingRegistry implements novelsrc.PresetRegistry.
var _ novelsrc.PresetRegistry = (*LoggingRegistry)(nil)

// LoggingRegistry wraps a PresetRegistry with debug logging for theme detection.
type LoggingRegistry struct {
	next   novelsrc.PresetRegistry
	logger *slog.Logger
}

// NewLoggingRegistry creates a new LoggingRegistry.
func NewLoggingRegistry(next novelsrc.PresetRegistry, logger *slog.Logger) *LoggingRegistry {
	return &LoggingRegistry{next: next, logger: logger}
}

// Get delegates to the wrapped registry.
func (r *LoggingRegistry) Get(theme novelsrc.Theme) (novelsrc.Descriptors, bool) {
	return r.next.Get(theme)
}

// GetForHTML detects the theme, logs it, and returns the matching preset.
func (r *LoggingRegistry) GetForHTML(html string) (theme novelsrc.Theme, preset novelsrc.Descriptors, ok bool) {
	defer func(begin time.Time) {
		name := string(theme)
		if theme == novelsrc.ThemeUnknown {
			name = "(unknown)"
		}
		r.logger.Info("theme detection",
			"theme", name,
			"preset", ok,
			"duration", time.Since(begin),
		)
	}(time.Now())
	return r.next.GetForHTML(html)
}

// Register delegates to the wrapped registry.
func (r *LoggingRegistry) Register(theme novelsrc.Theme, preset novelsrc.Descriptors) {
	r.next.Register(theme, preset)
}

// List delegates to the wrapped registry.
func (r *LoggingRegistry) List() []novelsrc.Theme {
	return r.next.List()
}
