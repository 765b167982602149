package readmeta

import "context"

// Source retrieves raw Markdown from a hosted repository.
type Source interface {
	// FetchReadme returns the repository's README.
	// Returns ENOTFOUND if the repository or its README does not exist.
	FetchReadme(ctx context.Context, ref RepoRef) (string, error)

	// ListMarkdown returns the paths of Markdown files directly inside dir,
	// sorted by name. An empty dir lists the repository root.
	ListMarkdown(ctx context.Context, ref RepoRef, dir string) ([]string, error)

	// FetchFile returns the content of the file at path.
	// Returns ENOTFOUND if the file does not exist.
	FetchFile(ctx context.Context, ref RepoRef, path string) (string, error)
}
