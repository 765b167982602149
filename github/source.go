// Package github implements readmeta.Source against the GitHub REST API
// and raw content host.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/fwojciec/readmeta"
	"golang.org/x/time/rate"
)

// Default endpoints and limits.
const (
	DefaultBaseURL    = "https://api.github.com"
	DefaultRawBaseURL = "https://raw.githubusercontent.com"
	DefaultTimeout    = 10 * time.Second

	// DefaultRate keeps well below GitHub's secondary rate limits.
	DefaultRate = 5.0
)

// maxBodySize caps the size of a single Markdown file.
const maxBodySize = 10 << 20

// Ensure Source implements readmeta.Source at compile time.
var _ readmeta.Source = (*Source)(nil)

// Source retrieves repository Markdown over HTTP.
type Source struct {
	client     *http.Client
	baseURL    string
	rawBaseURL string
	token      string
	timeout    time.Duration
	limiter    *rate.Limiter
}

// Option configures a Source.
type Option func(*Source)

// WithBaseURL sets the REST API endpoint, e.g. for GitHub Enterprise.
func WithBaseURL(u string) Option {
	return func(s *Source) {
		s.baseURL = strings.TrimSuffix(u, "/")
	}
}

// WithRawBaseURL sets the host serving raw file content.
func WithRawBaseURL(u string) Option {
	return func(s *Source) {
		s.rawBaseURL = strings.TrimSuffix(u, "/")
	}
}

// WithToken authenticates requests with a personal access token.
func WithToken(token string) Option {
	return func(s *Source) {
		s.token = token
	}
}

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(s *Source) {
		s.timeout = d
	}
}

// WithRateLimit sets the maximum number of requests per second.
// A non-positive value disables limiting.
func WithRateLimit(rps float64) Option {
	return func(s *Source) {
		if rps <= 0 {
			s.limiter = nil
			return
		}
		s.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// WithHTTPClient sets the HTTP client. Its timeout is left untouched.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Source) {
		s.client = c
	}
}

// NewSource creates a new GitHub-backed Source.
func NewSource(opts ...Option) *Source {
	s := &Source{
		baseURL:    DefaultBaseURL,
		rawBaseURL: DefaultRawBaseURL,
		timeout:    DefaultTimeout,
		limiter:    rate.NewLimiter(rate.Limit(DefaultRate), 1),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.client == nil {
		s.client = &http.Client{
			Timeout: s.timeout,
		}
	}

	return s
}

// FetchReadme returns the raw README of the repository.
func (s *Source) FetchReadme(ctx context.Context, ref readmeta.RepoRef) (string, error) {
	u := s.baseURL + "/repos/" + repoPath(ref) + "/readme" + refQuery(ref)

	body, err := s.get(ctx, u, "application/vnd.github.raw")
	if err != nil {
		return "", fmt.Errorf("fetch readme %s: %w", ref, err)
	}
	return string(body), nil
}

// contentEntry is an item of the contents API directory listing.
type contentEntry struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Type string `json:"type"`
}

// ListMarkdown returns the Markdown files directly inside dir, sorted by
// path. README files are excluded since they describe the repository itself.
func (s *Source) ListMarkdown(ctx context.Context, ref readmeta.RepoRef, dir string) ([]string, error) {
	u := s.baseURL + "/repos/" + repoPath(ref) + "/contents"
	if dir = strings.Trim(dir, "/"); dir != "" {
		u += "/" + escapePath(dir)
	}
	u += refQuery(ref)

	body, err := s.get(ctx, u, "application/vnd.github+json")
	if err != nil {
		return nil, fmt.Errorf("list %s/%s: %w", ref, dir, err)
	}

	var entries []contentEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, readmeta.Errorf(readmeta.EINVALID, "%s/%s is not a directory", ref, dir)
	}

	var paths []string
	for _, e := range entries {
		if e.Type != "file" || !isMarkdown(e.Name) || isReadme(e.Name) {
			continue
		}
		paths = append(paths, e.Path)
	}
	sort.Strings(paths)

	return paths, nil
}

// FetchFile returns the raw content of path.
func (s *Source) FetchFile(ctx context.Context, ref readmeta.RepoRef, p string) (string, error) {
	branch := ref.Ref
	if branch == "" {
		branch = "HEAD"
	}
	u := s.rawBaseURL + "/" + repoPath(ref) + "/" + url.PathEscape(branch) + "/" + escapePath(strings.TrimPrefix(p, "/"))

	body, err := s.get(ctx, u, "")
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", p, err)
	}
	return string(body), nil
}

func (s *Source) get(ctx context.Context, u, accept string) ([]byte, error) {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	req.Header.Set("User-Agent", "readmeta")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, readmeta.Errorf(readmeta.ENOTFOUND, "not found: %s", u)
	default:
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, u)
	}

	return io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
}

func repoPath(ref readmeta.RepoRef) string {
	return url.PathEscape(ref.Owner) + "/" + url.PathEscape(ref.Name)
}

func refQuery(ref readmeta.RepoRef) string {
	if ref.Ref == "" {
		return ""
	}
	return "?ref=" + url.QueryEscape(ref.Ref)
}

func escapePath(p string) string {
	segments := strings.Split(p, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return strings.Join(segments, "/")
}

func isMarkdown(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

func isReadme(name string) bool {
	return strings.EqualFold(readmeta.ChapterName(name), "readme")
}
