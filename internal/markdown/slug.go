package markdown

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Slugify turns heading text into an anchor slug: lower-cased, trimmed, stripped of everything
// except letters, digits, spaces and hyphens, with whitespace runs joined by a single hyphen.
func Slugify(heading string) string {
	s := strings.TrimSpace(lowerNFC(heading))

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) || r == '-' {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), "-")
}

// NormalizeFragment prepares a URL fragment for lookup in an anchor index.
func NormalizeFragment(fragment string) string {
	return lowerNFC(fragment)
}

// lowerNFC builds a fresh Caser per call; Casers keep state and cannot be shared.
func lowerNFC(s string) string {
	return cases.Lower(language.Und).String(norm.NFC.String(s))
}

// slugCounter hands out GitHub-style suffixes for repeated slugs: intro, intro-1, intro-2.
type slugCounter map[string]int

func (c slugCounter) next(slug string) (base, suffixed string) {
	n := c[slug]
	c[slug] = n + 1
	if n == 0 {
		return slug, ""
	}
	return slug, slug + "-" + strconv.Itoa(n)
}
