// Package frontmatter implements readmeta.FrontMatterParser for YAML and
// TOML front matter.
package frontmatter

import (
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/adrg/frontmatter"
	"github.com/fwojciec/readmeta"
	"gopkg.in/yaml.v3"
)

// Ensure Parser implements readmeta.FrontMatterParser at compile time.
var _ readmeta.FrontMatterParser = (*Parser)(nil)

// formats lists the accepted delimiters. JSON front matter is left out
// because a document opening with "{" is more likely body text.
var formats = []*frontmatter.Format{
	frontmatter.NewFormat("---", "---", yaml.Unmarshal),
	frontmatter.NewFormat("---yaml", "---", yaml.Unmarshal),
	frontmatter.NewFormat("+++", "+++", toml.Unmarshal),
}

// envelope mirrors the keys chapters may declare.
type envelope struct {
	Title       string `yaml:"title" toml:"title"`
	Description string `yaml:"description" toml:"description"`
	Summary     string `yaml:"summary" toml:"summary"`
	Order       *int   `yaml:"order" toml:"order"`
}

// Parser separates front matter from Markdown bodies.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// ParseFrontMatter returns the declared metadata and the remaining body.
// "summary" is accepted when "description" is not set.
func (p *Parser) ParseFrontMatter(content string) (readmeta.FrontMatter, string, error) {
	var env envelope

	body, err := frontmatter.Parse(strings.NewReader(content), &env, formats...)
	if err != nil {
		return readmeta.FrontMatter{}, "", readmeta.Errorf(readmeta.EINVALID, "invalid front matter: %v", err)
	}

	fm := readmeta.FrontMatter{
		Title:       strings.TrimSpace(env.Title),
		Description: strings.TrimSpace(env.Description),
		Order:       env.Order,
	}
	if fm.Description == "" {
		fm.Description = strings.TrimSpace(env.Summary)
	}

	return fm, string(body), nil
}
