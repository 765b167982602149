package mock

import (
	"context"

	"github.com/fwojciec/readmeta"
)

var _ readmeta.Source = (*Source)(nil)

// Source is a mock implementation of readmeta.Source.
type Source struct {
	FetchReadmeFn  func(ctx context.Context, ref readmeta.RepoRef) (string, error)
	ListMarkdownFn func(ctx context.Context, ref readmeta.RepoRef, dir string) ([]string, error)
	FetchFileFn    func(ctx context.Context, ref readmeta.RepoRef, path string) (string, error)
}

func (s *Source) FetchReadme(ctx context.Context, ref readmeta.RepoRef) (string, error) {
	return s.FetchReadmeFn(ctx, ref)
}

func (s *Source) ListMarkdown(ctx context.Context, ref readmeta.RepoRef, dir string) ([]string, error) {
	return s.ListMarkdownFn(ctx, ref, dir)
}

func (s *Source) FetchFile(ctx context.Context, ref readmeta.RepoRef, path string) (string, error) {
	return s.FetchFileFn(ctx, ref, path)
}
