package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fwojciec/readmeta"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	var content []byte
	var err error
	if c.File == "" || c.File == "-" {
		content, err = io.ReadAll(deps.Stdin)
	} else {
		content, err = os.ReadFile(c.File)
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	data := readmeta.ParseReadme(string(content), c.fallbackName())

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	}

	fmt.Fprintf(deps.Stdout, "Title: %s\n", data.Title)
	if data.Description != nil {
		fmt.Fprintf(deps.Stdout, "Description: %s\n", *data.Description)
	} else {
		fmt.Fprintln(deps.Stdout, "Description: (none)")
	}
	return nil
}

// fallbackName returns --name, or the name of the directory holding the
// README file, which is normally the repository checkout.
func (c *ExtractCmd) fallbackName() string {
	if c.Name != "" || c.File == "" || c.File == "-" {
		return c.Name
	}
	abs, err := filepath.Abs(c.File)
	if err != nil {
		return ""
	}
	return filepath.Base(filepath.Dir(abs))
}
