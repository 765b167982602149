package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/readmeta"
)

// Ensure LoggingRenderer implements readmeta.Renderer.
var _ readmeta.Renderer = (*LoggingRenderer)(nil)

// LoggingRenderer wraps a Renderer with debug logging.
type LoggingRenderer struct {
	next   readmeta.Renderer
	logger *slog.Logger
}

// NewLoggingRenderer creates a new LoggingRenderer.
func NewLoggingRenderer(next readmeta.Renderer, logger *slog.Logger) *LoggingRenderer {
	return &LoggingRenderer{next: next, logger: logger}
}

// Render delegates to the wrapped renderer and logs input and output sizes.
func (r *LoggingRenderer) Render(markdown string) (html string, err error) {
	defer func(begin time.Time) {
		r.logger.Info("render",
			"in", len(markdown),
			"out", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.Render(markdown)
}

// Sections delegates to the wrapped renderer and logs the heading count.
func (r *LoggingRenderer) Sections(markdown string) (sections []readmeta.Section, err error) {
	defer func(begin time.Time) {
		r.logger.Info("sections",
			"in", len(markdown),
			"count", len(sections),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.Sections(markdown)
}
