package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/fwojciec/readmeta"
	"github.com/fwojciec/readmeta/mock"
	rmslog "github.com/fwojciec/readmeta/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testRef = readmeta.RepoRef{Owner: "acme", Name: "shell-c"}

func TestLoggingSource_FetchReadme(t *testing.T) {
	t.Parallel()

	t.Run("logs repo and size with duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Source{
			FetchReadmeFn: func(_ context.Context, _ readmeta.RepoRef) (string, error) {
				return "# Shell", nil
			},
		}

		src := rmslog.NewLoggingSource(inner, logger)
		content, err := src.FetchReadme(context.Background(), testRef)

		require.NoError(t, err)
		assert.Equal(t, "# Shell", content)
		output := buf.String()
		assert.Contains(t, output, "fetch readme")
		assert.Contains(t, output, "repo=acme/shell-c")
		assert.Contains(t, output, "bytes=7")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Source{
			FetchReadmeFn: func(_ context.Context, _ readmeta.RepoRef) (string, error) {
				return "", readmeta.Errorf(readmeta.ENOTFOUND, "no readme")
			},
		}

		src := rmslog.NewLoggingSource(inner, logger)
		_, err := src.FetchReadme(context.Background(), testRef)

		require.Error(t, err)
		assert.Contains(t, buf.String(), "no readme")
	})
}

func TestLoggingSource_ListMarkdown(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	inner := &mock.Source{
		ListMarkdownFn: func(_ context.Context, _ readmeta.RepoRef, dir string) ([]string, error) {
			return []string{dir + "/a.md", dir + "/b.md"}, nil
		},
	}

	src := rmslog.NewLoggingSource(inner, logger)
	paths, err := src.ListMarkdown(context.Background(), testRef, "docs")

	require.NoError(t, err)
	assert.Equal(t, []string{"docs/a.md", "docs/b.md"}, paths)
	output := buf.String()
	assert.Contains(t, output, "list markdown")
	assert.Contains(t, output, "dir=docs")
	assert.Contains(t, output, "count=2")
}

func TestLoggingSource_FetchFile(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	inner := &mock.Source{
		FetchFileFn: func(_ context.Context, _ readmeta.RepoRef, path string) (string, error) {
			return "content", nil
		},
	}

	src := rmslog.NewLoggingSource(inner, logger)
	_, err := src.FetchFile(context.Background(), testRef, "docs/a.md")

	require.NoError(t, err)
	output := buf.String()
	assert.Contains(t, output, "fetch file")
	assert.Contains(t, output, "path=docs/a.md")
	assert.Contains(t, output, "bytes=7")
}
