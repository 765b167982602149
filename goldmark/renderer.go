// Package goldmark implements readmeta.Renderer using the goldmark
// CommonMark engine with GitHub Flavored Markdown extensions.
package goldmark

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/fwojciec/readmeta"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
)

// Ensure Renderer implements readmeta.Renderer at compile time.
var _ readmeta.Renderer = (*Renderer)(nil)

// Renderer converts Markdown chapters to HTML. It is safe for concurrent use.
type Renderer struct {
	safe   bool
	engine goldmark.Markdown
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithSafeMode drops raw HTML from the output.
func WithSafeMode() Option {
	return func(r *Renderer) {
		r.safe = true
	}
}

// NewRenderer creates a Renderer with GitHub Flavored Markdown support
// (tables, strikethrough, autolinks and task lists).
// Headings get id attributes matching the anchors returned by Sections.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{}
	for _, opt := range opts {
		opt(r)
	}

	var rendererOptions []goldmark.Option
	if !r.safe {
		rendererOptions = append(rendererOptions, goldmark.WithRendererOptions(html.WithUnsafe()))
	}

	r.engine = goldmark.New(append([]goldmark.Option{
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	}, rendererOptions...)...)

	return r
}

// Render returns the HTML for markdown.
func (r *Renderer) Render(markdown string) (string, error) {
	src := []byte(markdown)
	doc := r.parse(src)

	var buf bytes.Buffer
	if err := r.engine.Renderer().Render(&buf, src, doc); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}

// Sections returns the headings of markdown in document order. Each anchor
// is the id attribute Render gives the same heading.
func (r *Renderer) Sections(markdown string) ([]readmeta.Section, error) {
	src := []byte(markdown)
	doc := r.parse(src)

	var sections []readmeta.Section
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}

		section := readmeta.Section{
			Level: h.Level,
			Title: strings.TrimSpace(string(h.Text(src))),
		}
		if id, ok := h.AttributeString("id"); ok {
			if b, ok := id.([]byte); ok {
				section.Anchor = string(b)
			}
		}
		sections = append(sections, section)
		return ast.WalkSkipChildren, nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk headings: %w", err)
	}
	return sections, nil
}

// parse builds the document tree. IDs must be unique per document, so each
// call gets a fresh context.
func (r *Renderer) parse(src []byte) ast.Node {
	pc := parser.NewContext(parser.WithIDs(&sectionIDs{}))
	return r.engine.Parser().Parse(text.NewReader(src), parser.WithContext(pc))
}

// sectionIDs generates heading IDs from the heading text with GitHub's
// slug and duplicate rules.
type sectionIDs struct {
	slugger readmeta.Slugger
}

func (s *sectionIDs) Generate(value []byte, kind ast.NodeKind) []byte {
	return []byte(s.slugger.Slug(readmeta.StripMarkdown(string(value))))
}

func (s *sectionIDs) Put(value []byte) {
	s.slugger.Reserve(string(value))
}
