package main

import (
	"fmt"

	"github.com/fwojciec/readmeta"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	repo, err := findRepository(deps, c.Repo)
	if err != nil {
		return err
	}

	chapters, err := deps.Chapters.FindChapters(deps.Ctx, readmeta.ChapterFilter{
		RepositoryID: &repo.ID,
		SortBy:       readmeta.SortByPosition,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", readmeta.ErrorMessage(err))
		return err
	}

	exporter := deps.NewExporter(c.Dir, repo.Name)
	for _, ch := range chapters {
		if err := exporter.Save(deps.Ctx, ch); err != nil {
			_ = exporter.Abort()
			fmt.Fprintf(deps.Stderr, "error: export %s: %v\n", ch.Path, err)
			return err
		}
	}
	if err := exporter.Commit(); err != nil {
		_ = exporter.Abort()
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Exported %d chapters of %s/%s\n", len(chapters), repo.Owner, repo.Name)
	return nil
}
