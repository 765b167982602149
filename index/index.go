// Package index builds the chapter index of a course repository.
// It coordinates README and chapter fetching, metadata extraction and
// storage.
package index

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/fwojciec/readmeta"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of chapters fetched in parallel.
const DefaultConcurrency = 10

// Indexer fetches a repository's README and chapters and stores their
// extracted metadata.
type Indexer struct {
	Source       readmeta.Source
	Repositories readmeta.RepositoryService
	Chapters     readmeta.ChapterService

	// FrontMatter, when set, strips chapter front matter and applies its
	// title and description over the extracted ones.
	FrontMatter readmeta.FrontMatterParser

	Concurrency int
	RetryDelays []time.Duration
	Logger      LogFunc
}

// Options controls what IndexRepository reads.
type Options struct {
	// Dir is the repository directory holding chapters. Empty means the root.
	Dir string
}

// Result holds the outcome of an index operation.
type Result struct {
	Repository *readmeta.Repository
	Chapters   int
	Failed     int
	Kept       int
	Unchanged  int
	Bytes      int
}

// ProgressEvent reports progress during an index operation.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Path      string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting index progress.
type ProgressFunc func(event ProgressEvent)

// chapterResult holds the outcome of processing a single chapter file.
type chapterResult struct {
	position int
	path     string
	chapter  *readmeta.Chapter
	err      error
}

// IndexRepository indexes the repository identified by ref. The repository
// record is created on first use and refreshed afterwards; its chapters are
// replaced by the ones fetched in this run, except that a chapter whose
// fetch failed keeps its previously stored copy. A missing README is not an
// error: the title then falls back to the formatted repository name.
func (ix *Indexer) IndexRepository(ctx context.Context, ref readmeta.RepoRef, opts Options, progress ProgressFunc) (*Result, error) {
	readme, err := Retry(ctx, ref.String()+" README", ix.delays(), ix.Logger, func(ctx context.Context) (string, error) {
		return ix.Source.FetchReadme(ctx, ref)
	})
	if err != nil && readmeta.ErrorCode(err) != readmeta.ENOTFOUND {
		return nil, fmt.Errorf("fetch readme: %w", err)
	}

	paths, err := Retry(ctx, ref.String()+" listing", ix.delays(), ix.Logger, func(ctx context.Context) ([]string, error) {
		return ix.Source.ListMarkdown(ctx, ref, opts.Dir)
	})
	if err != nil {
		return nil, fmt.Errorf("list chapters: %w", err)
	}

	repo, err := ix.saveRepository(ctx, ref, opts.Dir, readme)
	if err != nil {
		return nil, err
	}

	previous, err := ix.Chapters.FindChapters(ctx, readmeta.ChapterFilter{RepositoryID: &repo.ID})
	if err != nil {
		return nil, fmt.Errorf("find chapters: %w", err)
	}
	previousByPath := make(map[string]*readmeta.Chapter, len(previous))
	for _, c := range previous {
		previousByPath[c.Path] = c
	}

	results := ix.fetchChapters(ctx, ref, paths, progress)

	// Keep the stored chapters when the run was cut short.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &Result{Repository: repo}
	var chapters, fetched []*readmeta.Chapter
	for _, r := range results {
		if r.err != nil {
			result.Failed++
			// A chapter that failed to fetch keeps its stored copy.
			if prev, ok := previousByPath[r.path]; ok {
				chapters = append(chapters, prev)
				result.Kept++
			}
			continue
		}
		r.chapter.RepositoryID = repo.ID
		chapters = append(chapters, r.chapter)
		fetched = append(fetched, r.chapter)
	}

	if err := ix.Chapters.ReplaceChapters(ctx, repo.ID, chapters); err != nil {
		return nil, fmt.Errorf("replace chapters: %w", err)
	}

	// Content hashes are assigned by the store.
	for _, c := range fetched {
		result.Chapters++
		result.Bytes += len(c.Content)
		if prev, ok := previousByPath[c.Path]; ok && prev.ContentHash == c.ContentHash {
			result.Unchanged++
		}
	}

	if progress != nil {
		progress(ProgressEvent{
			Type:      ProgressFinished,
			Completed: len(paths),
			Total:     len(paths),
		})
	}

	return result, nil
}

// saveRepository creates or refreshes the repository record from its README.
func (ix *Indexer) saveRepository(ctx context.Context, ref readmeta.RepoRef, dir, readme string) (*readmeta.Repository, error) {
	data := readmeta.ParseReadme(readme, ref.Name)
	hash := ComputeHash(readme)

	existing, err := ix.Repositories.FindRepositories(ctx, readmeta.RepositoryFilter{
		Owner: &ref.Owner,
		Name:  &ref.Name,
	})
	if err != nil {
		return nil, fmt.Errorf("find repository: %w", err)
	}

	if len(existing) == 0 {
		repo := &readmeta.Repository{
			Owner:       ref.Owner,
			Name:        ref.Name,
			Ref:         ref.Ref,
			Dir:         dir,
			Title:       data.Title,
			Description: data.Description,
			ContentHash: hash,
		}
		if err := ix.Repositories.CreateRepository(ctx, repo); err != nil {
			return nil, fmt.Errorf("create repository: %w", err)
		}
		return repo, nil
	}

	// An empty description clears a stale one.
	description := ""
	if data.Description != nil {
		description = *data.Description
	}

	repo, err := ix.Repositories.UpdateRepository(ctx, existing[0].ID, readmeta.RepositoryUpdate{
		Ref:         &ref.Ref,
		Dir:         &dir,
		Title:       &data.Title,
		Description: &description,
		ContentHash: &hash,
	})
	if err != nil {
		return nil, fmt.Errorf("update repository: %w", err)
	}
	return repo, nil
}

// fetchChapters fetches and parses paths concurrently. Results keep the
// order of paths.
func (ix *Indexer) fetchChapters(ctx context.Context, ref readmeta.RepoRef, paths []string, progress ProgressFunc) []chapterResult {
	concurrency := ix.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	total := len(paths)
	if progress != nil {
		progress(ProgressEvent{
			Type:  ProgressStarted,
			Total: total,
		})
	}

	resultCh := make(chan chapterResult, total)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, p := range paths {
			g.Go(func() error {
				resultCh <- ix.processChapter(gctx, ref, i, p)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	var completed atomic.Int64
	results := make([]chapterResult, total)
	for r := range resultCh {
		completed.Add(1)
		results[r.position] = r

		if progress == nil {
			continue
		}
		event := ProgressEvent{
			Type:      ProgressCompleted,
			Completed: int(completed.Load()),
			Total:     total,
			Path:      r.path,
		}
		if r.err != nil {
			event.Type = ProgressFailed
			event.Error = r.err
		}
		progress(event)
	}

	return results
}

// processChapter fetches a single chapter and extracts its metadata.
func (ix *Indexer) processChapter(ctx context.Context, ref readmeta.RepoRef, position int, path string) chapterResult {
	result := chapterResult{
		position: position,
		path:     path,
	}

	content, err := Retry(ctx, path, ix.delays(), ix.Logger, func(ctx context.Context) (string, error) {
		return ix.Source.FetchFile(ctx, ref, path)
	})
	if err != nil {
		result.err = err
		return result
	}

	var fm readmeta.FrontMatter
	body := content
	if ix.FrontMatter != nil {
		if fm, body, err = ix.FrontMatter.ParseFrontMatter(content); err != nil {
			result.err = fmt.Errorf("%s: %w", path, err)
			return result
		}
	}

	data := readmeta.ApplyFrontMatter(readmeta.ParseReadme(body, readmeta.ChapterName(path)), fm)

	order := position
	if fm.Order != nil {
		order = *fm.Order
	}

	result.chapter = &readmeta.Chapter{
		Path:        path,
		Title:       data.Title,
		Description: data.Description,
		Content:     body,
		Position:    order,
	}
	return result
}

func (ix *Indexer) delays() []time.Duration {
	if ix.RetryDelays == nil {
		return DefaultRetryDelays()
	}
	return ix.RetryDelays
}
