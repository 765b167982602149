package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/readmeta"
	"github.com/fwojciec/readmeta/frontmatter"
	"github.com/fwojciec/readmeta/fs"
	"github.com/fwojciec/readmeta/github"
	"github.com/fwojciec/readmeta/goldmark"
	"github.com/fwojciec/readmeta/index"
	rmslog "github.com/fwojciec/readmeta/slog"
	"github.com/fwojciec/readmeta/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// Input for commands reading from standard input.
	Stdin io.Reader

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Source overrides the GitHub source. Used for end-to-end testing.
	Source readmeta.Source

	// Services for end-to-end testing.
	RepositoryService readmeta.RepositoryService
	ChapterService    readmeta.ChapterService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
		Stdin:  os.Stdin,
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  m.Stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("readmeta"),
		kong.Description("Extract titles and descriptions from course READMEs and index their chapters."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'readmeta --help' to see available commands")
	}

	switch args[0] {
	case "help", "--help", "-h":
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	logger := slog.New(slog.DiscardHandler)
	if cli.Verbose {
		logger = slog.New(slog.NewTextHandler(stderr, nil))
	}

	// extract works on local input only.
	if cmd == "extract" {
		return kongCtx.Run(deps)
	}

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set READMETA_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.RepositoryService = sqlite.NewRepositoryService(m.DB)
	m.ChapterService = sqlite.NewChapterService(m.DB)
	deps.DB = m.DB
	deps.Repositories = m.RepositoryService
	deps.Chapters = m.ChapterService

	switch cmd {
	case "add":
		source := m.Source
		if source == nil {
			opts := []github.Option{github.WithToken(cli.GitHubToken)}
			if cli.GitHubURL != "" {
				opts = append(opts, github.WithBaseURL(cli.GitHubURL))
			}
			source = github.NewSource(opts...)
		}
		if cli.Verbose {
			source = rmslog.NewLoggingSource(source, logger)
		}

		deps.Indexer = &index.Indexer{
			Source:       source,
			Repositories: m.RepositoryService,
			Chapters:     m.ChapterService,
			FrontMatter:  frontmatter.NewParser(),
			Concurrency:  cli.Add.Concurrency,
			Logger: func(format string, args ...any) {
				logger.Warn(fmt.Sprintf(format, args...))
			},
		}

	case "render", "toc":
		var renderer readmeta.Renderer = goldmark.NewRenderer()
		if cmd == "render" && cli.Render.Safe {
			renderer = goldmark.NewRenderer(goldmark.WithSafeMode())
		}
		if cli.Verbose {
			renderer = rmslog.NewLoggingRenderer(renderer, logger)
		}
		deps.Renderer = renderer

	case "export":
		deps.NewExporter = func(baseDir, name string) readmeta.ChapterExporter {
			return fs.NewStore(baseDir, name)
		}
	}

	return kongCtx.Run(deps)
}

func defaultDBPath() string {
	if path := os.Getenv("READMETA_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "readmeta.db"
	}
	dir := filepath.Join(home, ".readmeta")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "readmeta.db")
}
