package mock

import (
	"context"

	"github.com/fwojciec/readmeta"
)

var _ readmeta.ChapterService = (*ChapterService)(nil)

// ChapterService is a mock implementation of readmeta.ChapterService.
type ChapterService struct {
	CreateChapterFn              func(ctx context.Context, chapter *readmeta.Chapter) error
	FindChapterByIDFn            func(ctx context.Context, id string) (*readmeta.Chapter, error)
	FindChaptersFn               func(ctx context.Context, filter readmeta.ChapterFilter) ([]*readmeta.Chapter, error)
	DeleteChapterFn              func(ctx context.Context, id string) error
	DeleteChaptersByRepositoryFn func(ctx context.Context, repositoryID string) error
	ReplaceChaptersFn            func(ctx context.Context, repositoryID string, chapters []*readmeta.Chapter) error
}

func (s *ChapterService) CreateChapter(ctx context.Context, chapter *readmeta.Chapter) error {
	return s.CreateChapterFn(ctx, chapter)
}

func (s *ChapterService) FindChapterByID(ctx context.Context, id string) (*readmeta.Chapter, error) {
	return s.FindChapterByIDFn(ctx, id)
}

func (s *ChapterService) FindChapters(ctx context.Context, filter readmeta.ChapterFilter) ([]*readmeta.Chapter, error) {
	return s.FindChaptersFn(ctx, filter)
}

func (s *ChapterService) DeleteChapter(ctx context.Context, id string) error {
	return s.DeleteChapterFn(ctx, id)
}

func (s *ChapterService) DeleteChaptersByRepository(ctx context.Context, repositoryID string) error {
	return s.DeleteChaptersByRepositoryFn(ctx, repositoryID)
}

func (s *ChapterService) ReplaceChapters(ctx context.Context, repositoryID string, chapters []*readmeta.Chapter) error {
	return s.ReplaceChaptersFn(ctx, repositoryID, chapters)
}
