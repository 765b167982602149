package main

import (
	"context"
	"io"

	"github.com/fwojciec/readmeta"
	"github.com/fwojciec/readmeta/index"
	"github.com/fwojciec/readmeta/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx          context.Context
	Stdin        io.Reader
	Stdout       io.Writer
	Stderr       io.Writer
	DB           *sqlite.DB
	Repositories readmeta.RepositoryService
	Chapters     readmeta.ChapterService
	Indexer      *index.Indexer
	Renderer     readmeta.Renderer

	// NewExporter opens an exporter writing to baseDir/name.
	NewExporter func(baseDir, name string) readmeta.ChapterExporter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose     bool   `short:"v" help:"Log source and render calls to stderr"`
	GitHubToken string `name:"github-token" env:"GITHUB_TOKEN" help:"GitHub API token"`
	GitHubURL   string `name:"github-url" env:"READMETA_GITHUB_URL" help:"GitHub API base URL"`

	Extract  ExtractCmd  `cmd:"" help:"Print the title and description of a README"`
	Add      AddCmd      `cmd:"" help:"Index a GitHub repository and its chapters"`
	List     ListCmd     `cmd:"" help:"List indexed repositories"`
	Chapters ChaptersCmd `cmd:"" help:"List or search chapters of a repository"`
	Toc      TocCmd      `cmd:"" help:"Show the table of contents of a chapter"`
	Render   RenderCmd   `cmd:"" help:"Render a chapter as HTML"`
	Export   ExportCmd   `cmd:"" help:"Write chapters as Markdown files with front matter"`
	Delete   DeleteCmd   `cmd:"" help:"Delete a repository and its chapters"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	File string `arg:"" optional:"" help:"README file (stdin when omitted or -)"`
	Name string `short:"n" help:"Repository name used when no title is found"`
	JSON bool   `help:"Print JSON"`
}

// AddCmd is the "add" subcommand.
type AddCmd struct {
	Repo        string `arg:"" help:"Repository as OWNER/NAME[@REF]"`
	Dir         string `short:"d" help:"Directory holding chapter files"`
	Force       bool   `short:"f" help:"Delete existing repository first"`
	Concurrency int    `short:"c" default:"10" help:"Concurrent fetch limit"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct{}

// ChaptersCmd is the "chapters" subcommand.
type ChaptersCmd struct {
	Repo  string `arg:"" help:"Repository as OWNER/NAME"`
	Query string `short:"q" help:"Only chapters containing this text"`
	Paths bool   `help:"Show chapter file paths"`
}

// TocCmd is the "toc" subcommand.
type TocCmd struct {
	Repo string `arg:"" help:"Repository as OWNER/NAME"`
	Path string `arg:"" help:"Chapter file path"`
}

// RenderCmd is the "render" subcommand.
type RenderCmd struct {
	Repo string `arg:"" help:"Repository as OWNER/NAME"`
	Path string `arg:"" help:"Chapter file path"`
	Safe bool   `help:"Drop raw HTML from the output"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Repo string `arg:"" help:"Repository as OWNER/NAME"`
	Dir  string `arg:"" optional:"" default:"." help:"Parent directory of the export"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	Repo  string `arg:"" help:"Repository as OWNER/NAME"`
	Force bool   `help:"Confirm deletion"`
}
