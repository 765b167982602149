package readmeta

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"
)

// Chapter is a Markdown file of an indexed repository.
type Chapter struct {
	ID           string    `json:"id"`
	RepositoryID string    `json:"repositoryId"`
	Path         string    `json:"path"`
	Title        string    `json:"title"`
	Description  *string   `json:"description"`
	Content      string    `json:"content"`
	ContentHash  string    `json:"contentHash"`
	Position     int       `json:"position"`
	FetchedAt    time.Time `json:"fetchedAt"`
}

// Validate returns an error if the chapter contains invalid fields.
func (c *Chapter) Validate() error {
	if c.RepositoryID == "" {
		return Errorf(EINVALID, "chapter repository ID required")
	}
	if c.Path == "" {
		return Errorf(EINVALID, "chapter path required")
	}
	return nil
}

// ChapterService represents a service for managing chapters.
type ChapterService interface {
	// CreateChapter creates a new chapter.
	CreateChapter(ctx context.Context, chapter *Chapter) error

	// FindChapterByID retrieves a chapter by ID.
	// Returns ENOTFOUND if chapter does not exist.
	FindChapterByID(ctx context.Context, id string) (*Chapter, error)

	// FindChapters retrieves chapters matching the filter.
	FindChapters(ctx context.Context, filter ChapterFilter) ([]*Chapter, error)

	// DeleteChapter permanently removes a chapter.
	// Returns ENOTFOUND if chapter does not exist.
	DeleteChapter(ctx context.Context, id string) error

	// DeleteChaptersByRepository removes all chapters for a repository.
	DeleteChaptersByRepository(ctx context.Context, repositoryID string) error

	// ReplaceChapters atomically replaces all chapters of a repository.
	// Either every chapter is stored or the previous set is kept.
	// Returns EINVALID if a chapter is invalid or belongs to another repository.
	ReplaceChapters(ctx context.Context, repositoryID string, chapters []*Chapter) error
}

// SortOrder represents the sort order for chapter queries.
type SortOrder string

// SortOrder constants for ChapterFilter.
const (
	SortByPosition SortOrder = "position"
	SortByTitle    SortOrder = "title"
)

// ChapterFilter represents a filter for FindChapters.
type ChapterFilter struct {
	ID           *string `json:"id"`
	RepositoryID *string `json:"repositoryId"`
	Path         *string `json:"path"`

	// Query matches chapters whose title, description or content contains
	// the text, ignoring case.
	Query *string `json:"query"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`

	SortBy SortOrder `json:"sortBy"`
}

// ChapterName returns the fallback name for a chapter file: its base name
// without a Markdown extension.
func ChapterName(p string) string {
	base := path.Base(p)
	for _, ext := range []string{".md", ".markdown"} {
		if strings.HasSuffix(strings.ToLower(base), ext) {
			return base[:len(base)-len(ext)]
		}
	}
	return base
}

// FormatChapters formats chapters as a numbered listing, one title per
// line followed by an indented description when one exists.
func FormatChapters(chapters []*Chapter) string {
	if len(chapters) == 0 {
		return ""
	}

	var sb strings.Builder
	for i, c := range chapters {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%d. %s", i+1, c.Title)
		if c.Description != nil {
			fmt.Fprintf(&sb, "\n   %s", *c.Description)
		}
	}
	return sb.String()
}
