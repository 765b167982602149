package readmeta

import (
	"context"
	"strings"
	"time"
)

// RepoRef identifies a GitHub repository and, optionally, a branch, tag or
// commit to read content from.
type RepoRef struct {
	Owner string
	Name  string
	Ref   string
}

// ParseRepoRef parses "owner/name" or "owner/name@ref".
func ParseRepoRef(s string) (RepoRef, error) {
	var ref RepoRef

	path, at, hasRef := strings.Cut(strings.TrimSpace(s), "@")
	if hasRef {
		if at == "" {
			return RepoRef{}, Errorf(EINVALID, "invalid repository %q: empty ref after @", s)
		}
		ref.Ref = at
	}

	owner, name, ok := strings.Cut(path, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return RepoRef{}, Errorf(EINVALID, "invalid repository %q: expected owner/name", s)
	}
	ref.Owner = owner
	ref.Name = name

	return ref, nil
}

// String returns the reference in the form accepted by ParseRepoRef.
func (r RepoRef) String() string {
	s := r.Owner + "/" + r.Name
	if r.Ref != "" {
		s += "@" + r.Ref
	}
	return s
}

// Repository is an indexed course or book repository.
type Repository struct {
	ID          string    `json:"id"`
	Owner       string    `json:"owner"`
	Name        string    `json:"name"`
	Ref         string    `json:"ref"`
	Dir         string    `json:"dir"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	ContentHash string    `json:"contentHash"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// RepoRef returns the reference used to fetch the repository's content.
func (r *Repository) RepoRef() RepoRef {
	return RepoRef{Owner: r.Owner, Name: r.Name, Ref: r.Ref}
}

// Validate returns an error if the repository contains invalid fields.
func (r *Repository) Validate() error {
	if r.Owner == "" {
		return Errorf(EINVALID, "repository owner required")
	}
	if r.Name == "" {
		return Errorf(EINVALID, "repository name required")
	}
	if r.Title == "" {
		return Errorf(EINVALID, "repository title required")
	}
	return nil
}

// RepositoryService represents a service for managing repositories.
type RepositoryService interface {
	// CreateRepository creates a new repository.
	// Returns ECONFLICT if owner/name is already registered.
	CreateRepository(ctx context.Context, repo *Repository) error

	// FindRepositoryByID retrieves a repository by ID.
	// Returns ENOTFOUND if repository does not exist.
	FindRepositoryByID(ctx context.Context, id string) (*Repository, error)

	// FindRepositories retrieves repositories matching the filter.
	FindRepositories(ctx context.Context, filter RepositoryFilter) ([]*Repository, error)

	// UpdateRepository updates an existing repository.
	// Returns ENOTFOUND if repository does not exist.
	UpdateRepository(ctx context.Context, id string, upd RepositoryUpdate) (*Repository, error)

	// DeleteRepository permanently removes a repository and all its chapters.
	// Returns ENOTFOUND if repository does not exist.
	DeleteRepository(ctx context.Context, id string) error
}

// RepositoryFilter represents a filter for FindRepositories.
type RepositoryFilter struct {
	ID    *string `json:"id"`
	Owner *string `json:"owner"`
	Name  *string `json:"name"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RepositoryUpdate represents fields that can be updated on a repository.
// A non-nil Description pointing at an empty string clears the description.
type RepositoryUpdate struct {
	Ref         *string `json:"ref"`
	Dir         *string `json:"dir"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	ContentHash *string `json:"contentHash"`
}
