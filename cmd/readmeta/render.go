package main

import (
	"fmt"

	"github.com/fwojciec/readmeta"
)

// Run executes the render command.
func (c *RenderCmd) Run(deps *Dependencies) error {
	chapter, err := findChapter(deps, c.Repo, c.Path)
	if err != nil {
		return err
	}

	html, err := deps.Renderer.Render(chapter.Content)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", readmeta.ErrorMessage(err))
		return err
	}

	fmt.Fprint(deps.Stdout, html)
	return nil
}
