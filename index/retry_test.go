package index_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/fwojciec/readmeta"
	"github.com/fwojciec/readmeta/index"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetry(t *testing.T) {
	t.Parallel()

	t.Run("returns value on first success", func(t *testing.T) {
		t.Parallel()

		calls := 0
		got, err := index.Retry(context.Background(), "x", []time.Duration{0, 0}, nil, func(context.Context) (string, error) {
			calls++
			return "ok", nil
		})

		require.NoError(t, err)
		assert.Equal(t, "ok", got)
		assert.Equal(t, 1, calls)
	})

	t.Run("retries transient errors and logs each attempt", func(t *testing.T) {
		t.Parallel()

		calls := 0
		var logs []string
		logger := func(format string, args ...any) {
			logs = append(logs, fmt.Sprintf(format, args...))
		}

		got, err := index.Retry(context.Background(), "a.md", []time.Duration{0, 0}, logger, func(context.Context) (int, error) {
			calls++
			if calls < 3 {
				return 0, errors.New("timeout")
			}
			return 42, nil
		})

		require.NoError(t, err)
		assert.Equal(t, 42, got)
		assert.Equal(t, 3, calls)
		assert.Equal(t, []string{
			"retry a.md (attempt 2): timeout",
			"retry a.md (attempt 3): timeout",
		}, logs)
	})

	t.Run("returns last error after exhausting attempts", func(t *testing.T) {
		t.Parallel()

		calls := 0
		_, err := index.Retry(context.Background(), "x", []time.Duration{0}, nil, func(context.Context) (string, error) {
			calls++
			return "", fmt.Errorf("attempt %d", calls)
		})

		require.EqualError(t, err, "attempt 2")
		assert.Equal(t, 2, calls)
	})

	t.Run("does not retry not found errors", func(t *testing.T) {
		t.Parallel()

		calls := 0
		_, err := index.Retry(context.Background(), "x", []time.Duration{0, 0}, nil, func(context.Context) (string, error) {
			calls++
			return "", readmeta.Errorf(readmeta.ENOTFOUND, "gone")
		})

		assert.Equal(t, readmeta.ENOTFOUND, readmeta.ErrorCode(err))
		assert.Equal(t, 1, calls)
	})

	t.Run("does not retry invalid errors", func(t *testing.T) {
		t.Parallel()

		calls := 0
		_, err := index.Retry(context.Background(), "x", []time.Duration{0, 0}, nil, func(context.Context) (string, error) {
			calls++
			return "", fmt.Errorf("wrapped: %w", readmeta.Errorf(readmeta.EINVALID, "bad"))
		})

		assert.Equal(t, readmeta.EINVALID, readmeta.ErrorCode(err))
		assert.Equal(t, 1, calls)
	})

	t.Run("stops waiting when context is canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		calls := 0
		_, err := index.Retry(ctx, "x", []time.Duration{time.Hour}, nil, func(context.Context) (string, error) {
			calls++
			cancel()
			return "", errors.New("transient")
		})

		require.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	})
}

func TestDefaultRetryDelays(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}, index.DefaultRetryDelays())
}
