package main

import (
	"fmt"

	"github.com/fwojciec/readmeta"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	repos, err := deps.Repositories.FindRepositories(deps.Ctx, readmeta.RepositoryFilter{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", readmeta.ErrorMessage(err))
		return err
	}

	if len(repos) == 0 {
		fmt.Fprintln(deps.Stdout, "No repositories found. Use 'readmeta add' to index one.")
		return nil
	}

	for _, r := range repos {
		fmt.Fprintf(deps.Stdout, "%s/%s  %s\n", r.Owner, r.Name, r.Title)
		if r.Description != nil {
			fmt.Fprintf(deps.Stdout, "    %s\n", *r.Description)
		}
	}

	return nil
}
