package main

import (
	"fmt"

	"github.com/fwojciec/readmeta"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return readmeta.Errorf(readmeta.EINVALID, "use --force to confirm deletion")
	}

	repo, err := findRepository(deps, c.Repo)
	if err != nil {
		return err
	}

	if err := deps.Repositories.DeleteRepository(deps.Ctx, repo.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", readmeta.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted repository %s/%s\n", repo.Owner, repo.Name)
	return nil
}
