package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/readmeta"
)

// Ensure LoggingSource implements readmeta.Source.
var _ readmeta.Source = (*LoggingSource)(nil)

// LoggingSource wraps a Source with debug logging.
type LoggingSource struct {
	next   readmeta.Source
	logger *slog.Logger
}

// NewLoggingSource creates a new LoggingSource.
func NewLoggingSource(next readmeta.Source, logger *slog.Logger) *LoggingSource {
	return &LoggingSource{next: next, logger: logger}
}

// FetchReadme delegates to the wrapped source and logs the operation.
func (s *LoggingSource) FetchReadme(ctx context.Context, ref readmeta.RepoRef) (content string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("fetch readme",
			"repo", ref.String(),
			"bytes", len(content),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FetchReadme(ctx, ref)
}

// ListMarkdown delegates to the wrapped source and logs the operation.
func (s *LoggingSource) ListMarkdown(ctx context.Context, ref readmeta.RepoRef, dir string) (paths []string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("list markdown",
			"repo", ref.String(),
			"dir", dir,
			"count", len(paths),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.ListMarkdown(ctx, ref, dir)
}

// FetchFile delegates to the wrapped source and logs the operation.
func (s *LoggingSource) FetchFile(ctx context.Context, ref readmeta.RepoRef, path string) (content string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("fetch file",
			"repo", ref.String(),
			"path", path,
			"bytes", len(content),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FetchFile(ctx, ref, path)
}
