package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/fwojciec/readmeta"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ readmeta.ChapterService = (*ChapterService)(nil)

// ChapterService implements readmeta.ChapterService using SQLite.
type ChapterService struct {
	db *DB
}

// NewChapterService creates a new ChapterService.
func NewChapterService(db *DB) *ChapterService {
	return &ChapterService{db: db}
}

const chapterColumns = "id, repository_id, path, title, description, content, content_hash, position, fetched_at"

// CreateChapter creates a new chapter. The content hash is computed from
// the chapter content.
func (s *ChapterService) CreateChapter(ctx context.Context, chapter *readmeta.Chapter) error {
	if err := chapter.Validate(); err != nil {
		return err
	}
	chapter.FetchedAt = time.Time{}
	return insertChapter(ctx, s.db, chapter)
}

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// insertChapter assigns the ID and content hash and stores the chapter.
// A zero FetchedAt is set to the current time.
func insertChapter(ctx context.Context, db execer, chapter *readmeta.Chapter) error {
	chapter.ID = uuid.New().String()
	if chapter.FetchedAt.IsZero() {
		chapter.FetchedAt = time.Now().UTC()
	}
	chapter.ContentHash = hashContent(chapter.Content)

	_, err := db.ExecContext(ctx, `
		INSERT INTO chapters (`+chapterColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, chapter.ID, chapter.RepositoryID, chapter.Path, chapter.Title, nullString(chapter.Description),
		chapter.Content, chapter.ContentHash, chapter.Position, chapter.FetchedAt.Format(time.RFC3339))

	return err
}

// FindChapterByID retrieves a chapter by ID.
func (s *ChapterService) FindChapterByID(ctx context.Context, id string) (*readmeta.Chapter, error) {
	chapter, err := scanChapter(s.db.QueryRowContext(ctx,
		"SELECT "+chapterColumns+" FROM chapters WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, readmeta.Errorf(readmeta.ENOTFOUND, "chapter not found")
	}
	if err != nil {
		return nil, err
	}
	return chapter, nil
}

// FindChapters retrieves chapters matching the filter.
func (s *ChapterService) FindChapters(ctx context.Context, filter readmeta.ChapterFilter) ([]*readmeta.Chapter, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + chapterColumns + " FROM chapters WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.RepositoryID != nil {
		query.WriteString(" AND repository_id = ?")
		args = append(args, *filter.RepositoryID)
	}
	if filter.Path != nil {
		query.WriteString(" AND path = ?")
		args = append(args, *filter.Path)
	}
	if filter.Query != nil && *filter.Query != "" {
		// LIKE is case-insensitive for ASCII in SQLite.
		query.WriteString(` AND (title LIKE ? ESCAPE '\' OR COALESCE(description, '') LIKE ? ESCAPE '\' OR content LIKE ? ESCAPE '\')`)
		p := likePattern(*filter.Query)
		args = append(args, p, p, p)
	}

	switch filter.SortBy {
	case readmeta.SortByTitle:
		query.WriteString(" ORDER BY title COLLATE NOCASE ASC, position ASC")
	default:
		query.WriteString(" ORDER BY position ASC, path ASC")
	}

	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chapters []*readmeta.Chapter
	for rows.Next() {
		chapter, err := scanChapter(rows)
		if err != nil {
			return nil, err
		}
		chapters = append(chapters, chapter)
	}

	return chapters, rows.Err()
}

// DeleteChapter permanently removes a chapter.
func (s *ChapterService) DeleteChapter(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM chapters WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return readmeta.Errorf(readmeta.ENOTFOUND, "chapter not found")
	}

	return nil
}

// DeleteChaptersByRepository removes all chapters for a repository.
func (s *ChapterService) DeleteChaptersByRepository(ctx context.Context, repositoryID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM chapters WHERE repository_id = ?", repositoryID)
	return err
}

func scanChapter(row scanner) (*readmeta.Chapter, error) {
	var chapter readmeta.Chapter
	var description sql.NullString
	var fetchedAt string

	if err := row.Scan(&chapter.ID, &chapter.RepositoryID, &chapter.Path, &chapter.Title, &description,
		&chapter.Content, &chapter.ContentHash, &chapter.Position, &fetchedAt); err != nil {
		return nil, err
	}
	chapter.Description = stringPtr(description)

	var err error
	if chapter.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at"); err != nil {
		return nil, err
	}

	return &chapter, nil
}

// ReplaceChapters deletes the repository's chapters and inserts chapters in
// one transaction. Chapters keep a non-zero FetchedAt.
func (s *ChapterService) ReplaceChapters(ctx context.Context, repositoryID string, chapters []*readmeta.Chapter) error {
	for _, c := range chapters {
		if err := c.Validate(); err != nil {
			return err
		}
		if c.RepositoryID != repositoryID {
			return readmeta.Errorf(readmeta.EINVALID, "chapter %s belongs to another repository", c.Path)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM chapters WHERE repository_id = ?", repositoryID); err != nil {
		return err
	}
	for _, c := range chapters {
		if err := insertChapter(ctx, tx, c); err != nil {
			return err
		}
	}

	return tx.Commit()
}
