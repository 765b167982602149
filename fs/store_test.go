package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/readmeta"
	"github.com/fwojciec/readmeta/frontmatter"
	"github.com/fwojciec/readmeta/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func TestStore_SaveWritesToTempDirectory(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	store := fs.NewStore(base, "shell-c")

	err := store.Save(context.Background(), &readmeta.Chapter{
		Path:    "chapters/01-intro.md",
		Title:   "Introduction",
		Content: "# Introduction",
	})
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(base, "shell-c.tmp", "chapters", "01-intro.md"))
	require.NoError(t, err, "file should exist in temp directory")

	_, err = os.Stat(filepath.Join(base, "shell-c"))
	assert.True(t, os.IsNotExist(err), "final directory should not exist before commit")
}

func TestStore_CommitReplacesFinalDirectory(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	stale := filepath.Join(base, "shell-c", "stale.md")
	require.NoError(t, os.MkdirAll(filepath.Dir(stale), 0755))
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0644))

	store := fs.NewStore(base, "shell-c")
	require.NoError(t, store.Save(context.Background(), &readmeta.Chapter{Path: "a.md", Title: "A", Content: "body"}))
	require.NoError(t, store.Commit())

	_, err := os.Stat(filepath.Join(base, "shell-c", "a.md"))
	require.NoError(t, err)
	_, err = os.Stat(stale)
	assert.True(t, os.IsNotExist(err), "stale file should be gone")
	_, err = os.Stat(filepath.Join(base, "shell-c.tmp"))
	assert.True(t, os.IsNotExist(err), "temp directory should be gone")
}

func TestStore_AbortRemovesTempDirectory(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	store := fs.NewStore(base, "shell-c")
	require.NoError(t, store.Save(context.Background(), &readmeta.Chapter{Path: "a.md", Title: "A"}))

	require.NoError(t, store.Abort())

	_, err := os.Stat(filepath.Join(base, "shell-c.tmp"))
	assert.True(t, os.IsNotExist(err))
}

func TestStore_SaveRejectsEscapingPath(t *testing.T) {
	t.Parallel()

	store := fs.NewStore(t.TempDir(), "shell-c")

	err := store.Save(context.Background(), &readmeta.Chapter{Path: "../outside.md", Title: "X"})

	require.Error(t, err)
	assert.Equal(t, readmeta.EINVALID, readmeta.ErrorCode(err))
}

func TestChapterPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    string
		invalid bool
	}{
		{in: "a.md", want: "a.md"},
		{in: "docs/guide/a.md", want: filepath.Join("docs", "guide", "a.md")},
		{in: "/docs/a.md", want: filepath.Join("docs", "a.md")},
		{in: "", invalid: true},
		{in: "../a.md", invalid: true},
		{in: "docs/../../a.md", invalid: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := fs.ChapterPath(tt.in)
			if tt.invalid {
				assert.Equal(t, readmeta.EINVALID, readmeta.ErrorCode(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatChapter(t *testing.T) {
	t.Parallel()

	t.Run("writes front matter the parser reads back", func(t *testing.T) {
		t.Parallel()

		chapter := &readmeta.Chapter{
			Path:        "chapters/02-pipes.md",
			Title:       "Pipes: connecting processes",
			Description: ptr("Connect processes."),
			Content:     "# Pipes\n\nBody.",
			Position:    2,
			FetchedAt:   time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		}

		out, err := fs.FormatChapter(chapter)
		require.NoError(t, err)

		assert.Contains(t, out, "2026-03-01")
		assert.Contains(t, out, "source: chapters/02-pipes.md")

		fm, body, err := frontmatter.NewParser().ParseFrontMatter(out)
		require.NoError(t, err)
		assert.Equal(t, "Pipes: connecting processes", fm.Title)
		assert.Equal(t, "Connect processes.", fm.Description)
		require.NotNil(t, fm.Order)
		assert.Equal(t, 2, *fm.Order)
		assert.Contains(t, body, "# Pipes\n\nBody.")
	})

	t.Run("omits absent description", func(t *testing.T) {
		t.Parallel()

		out, err := fs.FormatChapter(&readmeta.Chapter{Path: "a.md", Title: "A"})

		require.NoError(t, err)
		assert.NotContains(t, out, "description:")
		assert.NotContains(t, out, "fetched:")
	})
}
