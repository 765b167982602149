package readmeta

// Renderer converts Markdown to HTML.
type Renderer interface {
	// Render returns the HTML for markdown. Headings carry id attributes.
	Render(markdown string) (string, error)

	// Sections returns the headings of markdown in document order, each
	// with the id Render assigns to it.
	Sections(markdown string) ([]Section, error)
}
