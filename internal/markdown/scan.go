// Package markdown scans Markdown source for references and derives heading anchors.
package markdown

import (
	"regexp"
	"sort"
	"strings"
)

// PatternKind selects the reference syntax FindMatches looks for.
type PatternKind string

const (
	PatternLink     PatternKind = "link"     // [text](target), not preceded by '!'
	PatternImage    PatternKind = "image"    // ![alt](target)
	PatternAutolink PatternKind = "autolink" // <target>
)

// Match is one syntax match with its 1-based line number.
type Match struct {
	Line   int
	Offset int
	Text   string
	Label  string
	Target string
}

var (
	// The optional '!' lets the link pass consume image syntax so it can be discarded;
	// link text may hold one level of nested brackets, as in [![badge](b.svg)](url).
	linkRe     = regexp.MustCompile(`!?\[((?:[^\[\]]|\[[^\[\]]*\])*)\]\(([^)\n]+)\)`)
	imageRe    = regexp.MustCompile(`!\[([^\[\]]*)\]\(([^)\n]+)\)`)
	autolinkRe = regexp.MustCompile(`<((?:[a-zA-Z][a-zA-Z0-9+.\-]{1,31}:[^<>\s]+)|(?:[^<>\s@/]+@[^<>\s@/]+\.[^<>\s@/]+))>`)
)

// FindMatches returns every match of kind in text, in document order.
func FindMatches(kind PatternKind, text string) []Match {
	if text == "" {
		return nil
	}
	newlines := newlineOffsets(text)

	var re *regexp.Regexp
	switch kind {
	case PatternLink:
		re = linkRe
	case PatternImage:
		re = imageRe
	case PatternAutolink:
		re = autolinkRe
	default:
		return nil
	}

	var matches []Match
	for _, loc := range re.FindAllStringSubmatchIndex(text, -1) {
		raw := text[loc[0]:loc[1]]
		if kind == PatternLink && strings.HasPrefix(raw, "!") {
			continue
		}
		m := Match{
			Line:   lineAt(newlines, loc[0]),
			Offset: loc[0],
			Text:   raw,
		}
		if kind == PatternAutolink {
			m.Target = text[loc[2]:loc[3]]
		} else {
			m.Label = text[loc[2]:loc[3]]
			m.Target = text[loc[4]:loc[5]]
		}
		matches = append(matches, m)
	}
	return matches
}

// ExcludeInRegions drops matches whose start offset lies inside any region.
func ExcludeInRegions(matches []Match, regions []Region) []Match {
	if len(regions) == 0 {
		return matches
	}
	out := matches[:0:0]
	for _, m := range matches {
		if !InRegions(regions, m.Offset) {
			out = append(out, m)
		}
	}
	return out
}

// Destination normalises a raw link target: surrounding <...> are removed and a trailing
// "title" or 'title' is dropped. Other whitespace inside the target is kept.
func Destination(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "<") {
		if end := strings.IndexByte(s, '>'); end > 0 {
			return strings.TrimSpace(s[1:end])
		}
	}
	if strings.HasPrefix(s, `"`) || strings.HasPrefix(s, "'") {
		return ""
	}
	for i := 0; i < len(s); i++ {
		if s[i] != ' ' && s[i] != '\t' {
			continue
		}
		rest := strings.TrimLeft(s[i:], " \t")
		if strings.HasPrefix(rest, `"`) || strings.HasPrefix(rest, "'") {
			return strings.TrimSpace(s[:i])
		}
	}
	return s
}

func newlineOffsets(text string) []int {
	offsets := make([]int, 0, strings.Count(text, "\n"))
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			offsets = append(offsets, i)
		}
	}
	return offsets
}

// lineAt counts the newlines before offset.
func lineAt(newlines []int, offset int) int {
	return sort.SearchInts(newlines, offset) + 1
}
