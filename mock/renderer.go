package mock

import "github.com/fwojciec/readmeta"

var _ readmeta.Renderer = (*Renderer)(nil)

// Renderer is a mock implementation of readmeta.Renderer.
type Renderer struct {
	RenderFn   func(markdown string) (string, error)
	SectionsFn func(markdown string) ([]readmeta.Section, error)
}

func (r *Renderer) Render(markdown string) (string, error) {
	return r.RenderFn(markdown)
}

func (r *Renderer) Sections(markdown string) ([]readmeta.Section, error) {
	return r.SectionsFn(markdown)
}
