package readmeta

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ReadmeData holds the presentable metadata derived from a Markdown document.
type ReadmeData struct {
	// Title is never empty.
	Title string `json:"title"`

	// Description is nil when the document has no usable summary paragraph.
	Description *string `json:"description"`
}

const (
	// maxTitleLength bounds the length of a plain first line used as a title.
	maxTitleLength = 100

	// descriptionThreshold is the accumulated length after which the
	// description is cut at the first sentence boundary.
	descriptionThreshold = 150

	// descriptionSkipWindow is the number of leading lines scanned for
	// headings and blank lines before the description starts.
	descriptionSkipWindow = 5

	// untitled is returned when neither the content nor the fallback name
	// yields a title.
	untitled = "Untitled"
)

var (
	h1Re          = regexp.MustCompile(`(?m)^#\s+(.+)$`)
	h2Re          = regexp.MustCompile(`(?m)^##\s+(.+)$`)
	sentenceEndRe = regexp.MustCompile(`[.!?]\s`)

	linkRe   = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	boldRe   = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	italicRe = regexp.MustCompile(`\*([^*]+)\*`)
	codeRe   = regexp.MustCompile("`([^`]+)`")
)

// ParseReadme derives the title and description of a Markdown document.
// The fallback name, typically a repository slug, is used to synthesize a
// title when the content offers none.
func ParseReadme(content, fallbackName string) ReadmeData {
	return ReadmeData{
		Title:       ExtractTitle(content, fallbackName),
		Description: ExtractDescription(content),
	}
}

// ExtractTitle returns the best available title for content. The first
// level-1 heading wins, then the first level-2 heading, then a short plain
// first line, and finally the formatted fallback name.
func ExtractTitle(content, fallbackName string) string {
	if title, ok := firstHeading(h1Re, content); ok {
		return title
	}
	if title, ok := firstHeading(h2Re, content); ok {
		return title
	}

	if line, ok := firstNonBlankLine(content); ok {
		if n := utf8.RuneCountInString(line); n > 0 && n < maxTitleLength && !startsWithMarker(line) {
			return line
		}
	}

	return FormatRepoName(fallbackName)
}

func firstHeading(re *regexp.Regexp, content string) (string, bool) {
	m := re.FindStringSubmatch(content)
	if m == nil {
		return "", false
	}
	title := strings.TrimSpace(m[1])
	return title, title != ""
}

func firstNonBlankLine(content string) (string, bool) {
	for _, line := range strings.Split(content, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed, true
		}
	}
	return "", false
}

// startsWithMarker reports whether line opens with a Markdown structural
// character that disqualifies it from being used verbatim as a title.
func startsWithMarker(line string) bool {
	switch line[0] {
	case '#', '*', '-', '[', ']', '`':
		return true
	}
	return false
}

// FormatRepoName turns a hyphen-delimited slug into a title by capitalizing
// each segment: "unix-shell-basics" becomes "Unix Shell Basics".
func FormatRepoName(name string) string {
	segments := strings.Split(name, "-")
	for i, s := range segments {
		r, size := utf8.DecodeRuneInString(s)
		if size == 0 {
			continue
		}
		segments[i] = string(unicode.ToUpper(r)) + s[size:]
	}

	title := strings.Join(segments, " ")
	if strings.TrimSpace(title) == "" {
		return untitled
	}
	return title
}

// ExtractDescription returns the first paragraph of content following any
// leading headings, with Markdown decorations removed. Long paragraphs are
// cut at the first sentence boundary once they pass the length threshold.
// Returns nil when no usable text is found.
func ExtractDescription(content string) *string {
	lines := strings.Split(content, "\n")

	// Skip leading headings and blank lines. The skip stops at the first
	// line that is neither, even if later lines in the window would match.
	start := 0
	for i := 0; i < descriptionSkipWindow && i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line != "" && !strings.HasPrefix(line, "#") {
			break
		}
		start = i + 1
	}

	var desc string
	for _, raw := range lines[start:] {
		line := strings.TrimSpace(raw)

		if strings.HasPrefix(line, "#") {
			break
		}
		if line == "" {
			if desc != "" {
				break
			}
			continue
		}

		if desc == "" {
			desc = line
		} else {
			desc += " " + line
		}

		if utf8.RuneCountInString(desc) > descriptionThreshold {
			if loc := sentenceEndRe.FindStringIndex(desc); loc != nil {
				desc = desc[:loc[0]+1]
			}
			break
		}
	}

	desc = StripMarkdown(desc)
	if desc == "" {
		return nil
	}
	return &desc
}

// StripMarkdown replaces inline links with their text and removes bold,
// italic and inline code markers, then trims surrounding whitespace.
func StripMarkdown(s string) string {
	s = linkRe.ReplaceAllString(s, "$1")
	s = boldRe.ReplaceAllString(s, "$1")
	s = italicRe.ReplaceAllString(s, "$1")
	s = codeRe.ReplaceAllString(s, "$1")
	return strings.TrimSpace(s)
}
