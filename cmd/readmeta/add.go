package main

import (
	"fmt"

	"github.com/fwojciec/readmeta"
	"github.com/fwojciec/readmeta/index"
)

// Run executes the add command.
func (c *AddCmd) Run(deps *Dependencies) error {
	ref, err := readmeta.ParseRepoRef(c.Repo)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", readmeta.ErrorMessage(err))
		return err
	}

	// Force mode: delete existing repository first
	if c.Force {
		existing, err := deps.Repositories.FindRepositories(deps.Ctx, readmeta.RepositoryFilter{
			Owner: &ref.Owner,
			Name:  &ref.Name,
		})
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", readmeta.ErrorMessage(err))
			return err
		}
		if len(existing) > 0 {
			if err := deps.Repositories.DeleteRepository(deps.Ctx, existing[0].ID); err != nil {
				fmt.Fprintf(deps.Stderr, "error: %s\n", readmeta.ErrorMessage(err))
				return err
			}
		}
	}

	if c.Concurrency > 0 {
		deps.Indexer.Concurrency = c.Concurrency
	}

	progress := func(event index.ProgressEvent) {
		switch event.Type {
		case index.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "  Found %d chapters\n", event.Total)
		case index.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", event.Path, event.Error)
		}
	}

	result, err := deps.Indexer.IndexRepository(deps.Ctx, ref, index.Options{Dir: c.Dir}, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error indexing: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Indexed %s: %s\n", ref, result.Repository.Title)
	fmt.Fprintf(deps.Stdout, "  Saved %d chapters (%s, %d unchanged)\n",
		result.Chapters, index.FormatBytes(result.Bytes), result.Unchanged)
	if result.Failed > 0 {
		fmt.Fprintf(deps.Stdout, "  Failed %d chapters (%d kept from previous index)\n", result.Failed, result.Kept)
	}

	return nil
}
