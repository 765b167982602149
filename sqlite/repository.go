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
var _ readmeta.RepositoryService = (*RepositoryService)(nil)

// RepositoryService implements readmeta.RepositoryService using SQLite.
type RepositoryService struct {
	db *DB
}

// NewRepositoryService creates a new RepositoryService.
func NewRepositoryService(db *DB) *RepositoryService {
	return &RepositoryService{db: db}
}

const repositoryColumns = "id, owner, name, ref, dir, title, description, content_hash, created_at, updated_at"

// CreateRepository creates a new repository.
func (s *RepositoryService) CreateRepository(ctx context.Context, repo *readmeta.Repository) error {
	if err := repo.Validate(); err != nil {
		return err
	}

	var count int
	if err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM repositories WHERE owner = ? AND name = ?",
		repo.Owner, repo.Name,
	).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return readmeta.Errorf(readmeta.ECONFLICT, "repository %s/%s already exists", repo.Owner, repo.Name)
	}

	repo.ID = uuid.New().String()
	now := time.Now().UTC()
	repo.CreatedAt = now
	repo.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO repositories (`+repositoryColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, repo.ID, repo.Owner, repo.Name, repo.Ref, repo.Dir, repo.Title, nullString(repo.Description),
		repo.ContentHash, repo.CreatedAt.Format(time.RFC3339), repo.UpdatedAt.Format(time.RFC3339))

	return err
}

// FindRepositoryByID retrieves a repository by ID.
func (s *RepositoryService) FindRepositoryByID(ctx context.Context, id string) (*readmeta.Repository, error) {
	repo, err := scanRepository(s.db.QueryRowContext(ctx,
		"SELECT "+repositoryColumns+" FROM repositories WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, readmeta.Errorf(readmeta.ENOTFOUND, "repository not found")
	}
	if err != nil {
		return nil, err
	}
	return repo, nil
}

// FindRepositories retrieves repositories matching the filter, oldest first.
func (s *RepositoryService) FindRepositories(ctx context.Context, filter readmeta.RepositoryFilter) ([]*readmeta.Repository, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + repositoryColumns + " FROM repositories WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Owner != nil {
		query.WriteString(" AND owner = ?")
		args = append(args, *filter.Owner)
	}
	if filter.Name != nil {
		query.WriteString(" AND name = ?")
		args = append(args, *filter.Name)
	}

	query.WriteString(" ORDER BY created_at ASC, owner ASC, name ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var repos []*readmeta.Repository
	for rows.Next() {
		repo, err := scanRepository(rows)
		if err != nil {
			return nil, err
		}
		repos = append(repos, repo)
	}

	return repos, rows.Err()
}

// UpdateRepository updates an existing repository.
func (s *RepositoryService) UpdateRepository(ctx context.Context, id string, upd readmeta.RepositoryUpdate) (*readmeta.Repository, error) {
	repo, err := s.FindRepositoryByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Ref != nil {
		repo.Ref = *upd.Ref
	}
	if upd.Dir != nil {
		repo.Dir = *upd.Dir
	}
	if upd.Title != nil {
		repo.Title = *upd.Title
	}
	if upd.Description != nil {
		repo.Description = stringPtr(nullString(upd.Description))
	}
	if upd.ContentHash != nil {
		repo.ContentHash = *upd.ContentHash
	}

	if err := repo.Validate(); err != nil {
		return nil, err
	}

	repo.UpdatedAt = time.Now().UTC()

	_, err = s.db.ExecContext(ctx, `
		UPDATE repositories
		SET ref = ?, dir = ?, title = ?, description = ?, content_hash = ?, updated_at = ?
		WHERE id = ?
	`, repo.Ref, repo.Dir, repo.Title, nullString(repo.Description), repo.ContentHash,
		repo.UpdatedAt.Format(time.RFC3339), id)
	if err != nil {
		return nil, err
	}

	return repo, nil
}

// DeleteRepository permanently removes a repository. Its chapters are
// removed by the foreign key cascade.
func (s *RepositoryService) DeleteRepository(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM repositories WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return readmeta.Errorf(readmeta.ENOTFOUND, "repository not found")
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRepository(row scanner) (*readmeta.Repository, error) {
	var repo readmeta.Repository
	var description sql.NullString
	var createdAt, updatedAt string

	if err := row.Scan(&repo.ID, &repo.Owner, &repo.Name, &repo.Ref, &repo.Dir, &repo.Title,
		&description, &repo.ContentHash, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	repo.Description = stringPtr(description)

	var err error
	if repo.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if repo.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}

	return &repo, nil
}
