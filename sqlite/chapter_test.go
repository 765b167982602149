package sqlite_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/fwojciec/readmeta"
	"github.com/fwojciec/readmeta/index"
	"github.com/fwojciec/readmeta/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupChapters(t *testing.T) (*sqlite.ChapterService, *readmeta.Repository) {
	t.Helper()
	db := setupTestDB(t)
	repo := createRepository(t, sqlite.NewRepositoryService(db), "acme", "shell-c")
	return sqlite.NewChapterService(db), repo
}

func TestChapterService_CreateChapter(t *testing.T) {
	t.Parallel()

	t.Run("creates chapter with ID, hash and fetch time", func(t *testing.T) {
		t.Parallel()

		svc, repo := setupChapters(t)

		chapter := &readmeta.Chapter{RepositoryID: repo.ID, Path: "01-intro.md", Title: "Intro", Content: "# Intro"}
		err := svc.CreateChapter(context.Background(), chapter)

		require.NoError(t, err)
		assert.NotEmpty(t, chapter.ID)
		assert.Len(t, chapter.ContentHash, 16)
		assert.False(t, chapter.FetchedAt.IsZero())
	})

	t.Run("stores the same content hash the indexer computes", func(t *testing.T) {
		t.Parallel()

		svc, repo := setupChapters(t)
		ctx := context.Background()

		for i, content := range []string{"", "# Intro", "héllo\r\nworld"} {
			chapter := &readmeta.Chapter{RepositoryID: repo.ID, Path: fmt.Sprintf("%d.md", i), Content: content}
			require.NoError(t, svc.CreateChapter(ctx, chapter))
			assert.Equal(t, index.ComputeHash(content), chapter.ContentHash)

			found, err := svc.FindChapterByID(ctx, chapter.ID)
			require.NoError(t, err)
			assert.Equal(t, index.ComputeHash(content), found.ContentHash)
		}
	})

	t.Run("returns EINVALID for invalid chapter", func(t *testing.T) {
		t.Parallel()

		svc, _ := setupChapters(t)

		err := svc.CreateChapter(context.Background(), &readmeta.Chapter{})

		assert.Equal(t, readmeta.EINVALID, readmeta.ErrorCode(err))
	})

	t.Run("returns error for unknown repository", func(t *testing.T) {
		t.Parallel()

		svc, _ := setupChapters(t)

		err := svc.CreateChapter(context.Background(), &readmeta.Chapter{RepositoryID: "missing", Path: "a.md"})

		require.Error(t, err)
	})
}

func TestChapterService_FindChapterByID(t *testing.T) {
	t.Parallel()

	t.Run("round-trips present and absent descriptions", func(t *testing.T) {
		t.Parallel()

		svc, repo := setupChapters(t)
		ctx := context.Background()

		with := &readmeta.Chapter{RepositoryID: repo.ID, Path: "a.md", Title: "A", Description: ptr("About A.")}
		without := &readmeta.Chapter{RepositoryID: repo.ID, Path: "b.md", Title: "B"}
		require.NoError(t, svc.CreateChapter(ctx, with))
		require.NoError(t, svc.CreateChapter(ctx, without))

		found, err := svc.FindChapterByID(ctx, with.ID)
		require.NoError(t, err)
		require.NotNil(t, found.Description)
		assert.Equal(t, "About A.", *found.Description)

		found, err = svc.FindChapterByID(ctx, without.ID)
		require.NoError(t, err)
		assert.Nil(t, found.Description)
	})

	t.Run("returns ENOTFOUND when not found", func(t *testing.T) {
		t.Parallel()

		svc, _ := setupChapters(t)

		_, err := svc.FindChapterByID(context.Background(), "missing")

		assert.Equal(t, readmeta.ENOTFOUND, readmeta.ErrorCode(err))
	})
}

func TestChapterService_FindChapters(t *testing.T) {
	t.Parallel()

	seed := func(t *testing.T) (*sqlite.ChapterService, *readmeta.Repository) {
		t.Helper()
		svc, repo := setupChapters(t)
		ctx := context.Background()
		for _, c := range []*readmeta.Chapter{
			{Path: "03-pipes.md", Title: "Pipes", Content: "Connect processes with pipe().", Position: 2},
			{Path: "01-intro.md", Title: "Introduction", Description: ptr("What a shell does."), Position: 0},
			{Path: "02-fork.md", Title: "Forking", Content: "fork() and exec()", Position: 1},
		} {
			c.RepositoryID = repo.ID
			require.NoError(t, svc.CreateChapter(ctx, c))
		}
		return svc, repo
	}

	t.Run("orders by position by default", func(t *testing.T) {
		t.Parallel()

		svc, repo := seed(t)

		chapters, err := svc.FindChapters(context.Background(), readmeta.ChapterFilter{RepositoryID: &repo.ID})

		require.NoError(t, err)
		require.Len(t, chapters, 3)
		assert.Equal(t, "01-intro.md", chapters[0].Path)
		assert.Equal(t, "02-fork.md", chapters[1].Path)
		assert.Equal(t, "03-pipes.md", chapters[2].Path)
	})

	t.Run("orders by title", func(t *testing.T) {
		t.Parallel()

		svc, repo := seed(t)

		chapters, err := svc.FindChapters(context.Background(), readmeta.ChapterFilter{
			RepositoryID: &repo.ID,
			SortBy:       readmeta.SortByTitle,
		})

		require.NoError(t, err)
		require.Len(t, chapters, 3)
		assert.Equal(t, "Forking", chapters[0].Title)
		assert.Equal(t, "Introduction", chapters[1].Title)
		assert.Equal(t, "Pipes", chapters[2].Title)
	})

	t.Run("filters by path", func(t *testing.T) {
		t.Parallel()

		svc, _ := seed(t)

		chapters, err := svc.FindChapters(context.Background(), readmeta.ChapterFilter{Path: ptr("02-fork.md")})

		require.NoError(t, err)
		require.Len(t, chapters, 1)
		assert.Equal(t, "Forking", chapters[0].Title)
	})

	t.Run("searches title, description and content ignoring case", func(t *testing.T) {
		t.Parallel()

		svc, _ := seed(t)
		ctx := context.Background()

		byContent, err := svc.FindChapters(ctx, readmeta.ChapterFilter{Query: ptr("FORK()")})
		require.NoError(t, err)
		require.Len(t, byContent, 1)
		assert.Equal(t, "02-fork.md", byContent[0].Path)

		byDescription, err := svc.FindChapters(ctx, readmeta.ChapterFilter{Query: ptr("shell does")})
		require.NoError(t, err)
		require.Len(t, byDescription, 1)
		assert.Equal(t, "01-intro.md", byDescription[0].Path)
	})

	t.Run("treats wildcard characters literally", func(t *testing.T) {
		t.Parallel()

		svc, _ := seed(t)

		chapters, err := svc.FindChapters(context.Background(), readmeta.ChapterFilter{Query: ptr("%")})

		require.NoError(t, err)
		assert.Empty(t, chapters)
	})

	t.Run("applies limit", func(t *testing.T) {
		t.Parallel()

		svc, _ := seed(t)

		chapters, err := svc.FindChapters(context.Background(), readmeta.ChapterFilter{Limit: 2})

		require.NoError(t, err)
		assert.Len(t, chapters, 2)
	})
}

func TestChapterService_DeleteChapter(t *testing.T) {
	t.Parallel()

	t.Run("deletes chapter", func(t *testing.T) {
		t.Parallel()

		svc, repo := setupChapters(t)
		ctx := context.Background()
		chapter := &readmeta.Chapter{RepositoryID: repo.ID, Path: "a.md"}
		require.NoError(t, svc.CreateChapter(ctx, chapter))

		require.NoError(t, svc.DeleteChapter(ctx, chapter.ID))

		_, err := svc.FindChapterByID(ctx, chapter.ID)
		assert.Equal(t, readmeta.ENOTFOUND, readmeta.ErrorCode(err))
	})

	t.Run("returns ENOTFOUND when not found", func(t *testing.T) {
		t.Parallel()

		svc, _ := setupChapters(t)

		err := svc.DeleteChapter(context.Background(), "missing")

		assert.Equal(t, readmeta.ENOTFOUND, readmeta.ErrorCode(err))
	})
}

func TestChapterService_DeleteChaptersByRepository(t *testing.T) {
	t.Parallel()

	svc, repo := setupChapters(t)
	ctx := context.Background()
	require.NoError(t, svc.CreateChapter(ctx, &readmeta.Chapter{RepositoryID: repo.ID, Path: "a.md"}))
	require.NoError(t, svc.CreateChapter(ctx, &readmeta.Chapter{RepositoryID: repo.ID, Path: "b.md"}))

	require.NoError(t, svc.DeleteChaptersByRepository(ctx, repo.ID))

	chapters, err := svc.FindChapters(ctx, readmeta.ChapterFilter{RepositoryID: &repo.ID})
	require.NoError(t, err)
	assert.Empty(t, chapters)
}

func TestChapterService_ReplaceChapters(t *testing.T) {
	t.Parallel()

	seed := func(t *testing.T) (*sqlite.ChapterService, *readmeta.Repository) {
		t.Helper()
		svc, repo := setupChapters(t)
		ctx := context.Background()
		require.NoError(t, svc.CreateChapter(ctx, &readmeta.Chapter{RepositoryID: repo.ID, Path: "a.md", Content: "old a"}))
		require.NoError(t, svc.CreateChapter(ctx, &readmeta.Chapter{RepositoryID: repo.ID, Path: "b.md", Content: "old b", Position: 1}))
		return svc, repo
	}

	paths := func(t *testing.T, svc *sqlite.ChapterService, repoID string) []string {
		t.Helper()
		chapters, err := svc.FindChapters(context.Background(), readmeta.ChapterFilter{RepositoryID: &repoID})
		require.NoError(t, err)
		var out []string
		for _, c := range chapters {
			out = append(out, c.Path+"="+c.Content)
		}
		return out
	}

	t.Run("replaces the stored set", func(t *testing.T) {
		t.Parallel()

		svc, repo := seed(t)

		err := svc.ReplaceChapters(context.Background(), repo.ID, []*readmeta.Chapter{
			{RepositoryID: repo.ID, Path: "a.md", Content: "new a"},
			{RepositoryID: repo.ID, Path: "c.md", Content: "new c", Position: 1},
		})

		require.NoError(t, err)
		assert.Equal(t, []string{"a.md=new a", "c.md=new c"}, paths(t, svc, repo.ID))
	})

	t.Run("keeps old set when a chapter is invalid", func(t *testing.T) {
		t.Parallel()

		svc, repo := seed(t)

		err := svc.ReplaceChapters(context.Background(), repo.ID, []*readmeta.Chapter{
			{RepositoryID: repo.ID, Path: "a.md", Content: "new a"},
			{RepositoryID: repo.ID},
		})

		assert.Equal(t, readmeta.EINVALID, readmeta.ErrorCode(err))
		assert.Equal(t, []string{"a.md=old a", "b.md=old b"}, paths(t, svc, repo.ID))
	})

	t.Run("rejects chapters of another repository", func(t *testing.T) {
		t.Parallel()

		svc, repo := seed(t)

		err := svc.ReplaceChapters(context.Background(), repo.ID, []*readmeta.Chapter{
			{RepositoryID: "other", Path: "a.md"},
		})

		assert.Equal(t, readmeta.EINVALID, readmeta.ErrorCode(err))
		assert.Equal(t, []string{"a.md=old a", "b.md=old b"}, paths(t, svc, repo.ID))
	})

	t.Run("preserves fetch time of carried over chapters", func(t *testing.T) {
		t.Parallel()

		svc, repo := seed(t)
		fetched := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

		err := svc.ReplaceChapters(context.Background(), repo.ID, []*readmeta.Chapter{
			{RepositoryID: repo.ID, Path: "a.md", Content: "kept", FetchedAt: fetched},
		})

		require.NoError(t, err)
		chapters, err := svc.FindChapters(context.Background(), readmeta.ChapterFilter{RepositoryID: &repo.ID})
		require.NoError(t, err)
		require.Len(t, chapters, 1)
		assert.True(t, fetched.Equal(chapters[0].FetchedAt))
		assert.Equal(t, index.ComputeHash("kept"), chapters[0].ContentHash)
	})
}
