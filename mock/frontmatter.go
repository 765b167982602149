package mock

import "github.com/fwojciec/readmeta"

var _ readmeta.FrontMatterParser = (*FrontMatterParser)(nil)

// FrontMatterParser is a mock implementation of readmeta.FrontMatterParser.
type FrontMatterParser struct {
	ParseFrontMatterFn func(content string) (readmeta.FrontMatter, string, error)
}

func (p *FrontMatterParser) ParseFrontMatter(content string) (readmeta.FrontMatter, string, error) {
	return p.ParseFrontMatterFn(content)
}
