package readmeta

// FrontMatter holds the metadata a chapter may declare ahead of its body.
type FrontMatter struct {
	Title       string
	Description string
	Order       *int
}

// FrontMatterParser separates front matter from a Markdown body.
type FrontMatterParser interface {
	// ParseFrontMatter returns the declared metadata and the body without
	// delimiters. Content without front matter is returned unchanged.
	// Returns EINVALID if the front matter cannot be decoded.
	ParseFrontMatter(content string) (FrontMatter, string, error)
}

// ApplyFrontMatter overrides heuristic metadata with values declared in
// front matter.
func ApplyFrontMatter(data ReadmeData, fm FrontMatter) ReadmeData {
	if fm.Title != "" {
		data.Title = fm.Title
	}
	if fm.Description != "" {
		desc := fm.Description
		data.Description = &desc
	}
	return data
}
