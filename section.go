package readmeta

import (
	"strconv"
	"strings"
	"unicode"
)

// Section is a heading in a chapter, used to build its table of contents.
type Section struct {
	Level  int    `json:"level"`
	Title  string `json:"title"`
	Anchor string `json:"anchor"`
}

// Anchor returns the URL fragment GitHub derives from a heading title:
// lowercased, each space replaced by a hyphen, and everything except
// letters, digits, hyphens and underscores removed.
func Anchor(title string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case r == ' ':
			sb.WriteRune('-')
		case r == '-' || r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r):
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// Slugger assigns unique anchors within one document. A repeated anchor
// gets the lowest free numeric suffix, and suffixed anchors are reserved
// too, so "a", "a", "a-1" yields "a", "a-1", "a-1-1".
// The zero value is ready to use. A Slugger is not safe for concurrent use.
type Slugger struct {
	occurrences map[string]int
}

// Slug returns the unique anchor for title. Titles without any anchor
// characters use "section".
func (s *Slugger) Slug(title string) string {
	base := Anchor(title)
	if base == "" {
		base = "section"
	}
	return s.reserve(base)
}

// Reserve marks id as taken, as for an explicitly declared heading ID.
func (s *Slugger) Reserve(id string) {
	s.reserve(id)
}

func (s *Slugger) reserve(base string) string {
	if s.occurrences == nil {
		s.occurrences = make(map[string]int)
	}

	id := base
	for {
		if _, taken := s.occurrences[id]; !taken {
			break
		}
		s.occurrences[base]++
		id = base + "-" + strconv.Itoa(s.occurrences[base])
	}
	s.occurrences[id] = 0
	return id
}
