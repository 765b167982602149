package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/readmeta"
)

// Run executes the toc command.
func (c *TocCmd) Run(deps *Dependencies) error {
	chapter, err := findChapter(deps, c.Repo, c.Path)
	if err != nil {
		return err
	}

	sections, err := deps.Renderer.Sections(chapter.Content)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", readmeta.ErrorMessage(err))
		return err
	}
	if len(sections) == 0 {
		fmt.Fprintf(deps.Stdout, "%s has no headings.\n", c.Path)
		return nil
	}

	// Indent relative to the shallowest heading.
	top := sections[0].Level
	for _, s := range sections {
		top = min(top, s.Level)
	}

	for _, s := range sections {
		indent := strings.Repeat("  ", s.Level-top)
		fmt.Fprintf(deps.Stdout, "%s- %s (#%s)\n", indent, s.Title, s.Anchor)
	}
	return nil
}
