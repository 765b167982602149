// Package fs exports indexed chapters as Markdown files.
package fs

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/fwojciec/readmeta"
	"gopkg.in/yaml.v3"
)

// Ensure Store implements readmeta.ChapterExporter at compile time.
var _ readmeta.ChapterExporter = (*Store)(nil)

// Store implements readmeta.ChapterExporter with atomic update semantics.
// Chapters are saved to a temporary directory, then moved into place on Commit.
type Store struct {
	baseDir string
	name    string
}

// NewStore creates a new Store.
// Files are saved to baseDir/name.tmp and moved to baseDir/name on Commit.
func NewStore(baseDir, name string) *Store {
	return &Store{
		baseDir: baseDir,
		name:    name,
	}
}

func (s *Store) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *Store) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// Save writes the chapter under its repository path.
func (s *Store) Save(ctx context.Context, chapter *readmeta.Chapter) error {
	relPath, err := ChapterPath(chapter.Path)
	if err != nil {
		return err
	}

	fullPath := filepath.Join(s.tempDir(), relPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	content, err := FormatChapter(chapter)
	if err != nil {
		return err
	}
	return os.WriteFile(fullPath, []byte(content), 0644)
}

// Commit replaces the final directory with the saved chapters.
func (s *Store) Commit() error {
	if err := os.RemoveAll(s.finalDir()); err != nil {
		return err
	}
	return os.Rename(s.tempDir(), s.finalDir())
}

// Abort removes the saved chapters.
func (s *Store) Abort() error {
	return os.RemoveAll(s.tempDir())
}

// ChapterPath converts a repository path to a relative file path,
// rejecting paths that would escape the export directory.
func ChapterPath(p string) (string, error) {
	clean := path.Clean("/" + p)[1:]
	if clean == "" || clean != strings.TrimPrefix(p, "/") {
		return "", readmeta.Errorf(readmeta.EINVALID, "invalid chapter path %q", p)
	}
	return filepath.FromSlash(clean), nil
}

// header is the front matter written before each chapter. It reads back
// through the frontmatter package.
type header struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description,omitempty"`
	Order       int    `yaml:"order"`
	Source      string `yaml:"source"`
	Fetched     string `yaml:"fetched,omitempty"`
}

// FormatChapter formats a chapter with YAML front matter.
func FormatChapter(chapter *readmeta.Chapter) (string, error) {
	h := header{
		Title:  chapter.Title,
		Order:  chapter.Position,
		Source: chapter.Path,
	}
	if chapter.Description != nil {
		h.Description = *chapter.Description
	}
	if !chapter.FetchedAt.IsZero() {
		h.Fetched = chapter.FetchedAt.Format("2006-01-02")
	}

	meta, err := yaml.Marshal(h)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(meta)
	b.WriteString("---\n\n")
	b.WriteString(chapter.Content)
	return b.String(), nil
}
