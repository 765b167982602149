package main

import (
	"fmt"

	"github.com/fwojciec/readmeta"
)

// Run executes the chapters command.
func (c *ChaptersCmd) Run(deps *Dependencies) error {
	repo, err := findRepository(deps, c.Repo)
	if err != nil {
		return err
	}

	filter := readmeta.ChapterFilter{
		RepositoryID: &repo.ID,
		SortBy:       readmeta.SortByPosition,
	}
	if c.Query != "" {
		filter.Query = &c.Query
	}

	chapters, err := deps.Chapters.FindChapters(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", readmeta.ErrorMessage(err))
		return err
	}

	if len(chapters) == 0 {
		if c.Query != "" {
			fmt.Fprintf(deps.Stdout, "No chapters of %s/%s match %q.\n", repo.Owner, repo.Name, c.Query)
			return nil
		}
		fmt.Fprintf(deps.Stdout, "%s/%s has no chapters.\n", repo.Owner, repo.Name)
		return nil
	}

	fmt.Fprintf(deps.Stdout, "%s (%d chapters):\n\n", repo.Title, len(chapters))

	if c.Paths {
		for _, ch := range chapters {
			fmt.Fprintf(deps.Stdout, "%s  %s\n", ch.Path, ch.Title)
		}
		return nil
	}

	fmt.Fprintln(deps.Stdout, readmeta.FormatChapters(chapters))
	return nil
}
