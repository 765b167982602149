package main

import (
	"fmt"

	"github.com/fwojciec/readmeta"
)

// findRepository resolves an OWNER/NAME argument to a stored repository,
// reporting failures to stderr.
func findRepository(deps *Dependencies, arg string) (*readmeta.Repository, error) {
	ref, err := readmeta.ParseRepoRef(arg)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", readmeta.ErrorMessage(err))
		return nil, err
	}

	repos, err := deps.Repositories.FindRepositories(deps.Ctx, readmeta.RepositoryFilter{
		Owner: &ref.Owner,
		Name:  &ref.Name,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", readmeta.ErrorMessage(err))
		return nil, err
	}

	if len(repos) == 0 {
		name := ref.Owner + "/" + ref.Name
		fmt.Fprintf(deps.Stderr, "error: repository %q not found. Use 'readmeta list' to see indexed repositories.\n", name)
		return nil, readmeta.Errorf(readmeta.ENOTFOUND, "repository %q not found", name)
	}

	return repos[0], nil
}

// findChapter resolves a chapter path within the repository named by arg.
func findChapter(deps *Dependencies, arg, path string) (*readmeta.Chapter, error) {
	repo, err := findRepository(deps, arg)
	if err != nil {
		return nil, err
	}

	chapters, err := deps.Chapters.FindChapters(deps.Ctx, readmeta.ChapterFilter{
		RepositoryID: &repo.ID,
		Path:         &path,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", readmeta.ErrorMessage(err))
		return nil, err
	}

	if len(chapters) == 0 {
		fmt.Fprintf(deps.Stderr, "error: chapter %q not found. Use 'readmeta chapters %s --paths' to see chapter paths.\n", path, arg)
		return nil, readmeta.Errorf(readmeta.ENOTFOUND, "chapter %q not found", path)
	}

	return chapters[0], nil
}
