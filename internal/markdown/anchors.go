package markdown

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"golang.org/x/net/html"

	"git.home.luguber.info/inful/refcheck/internal/util/sets"
)

var htmlTagRe = regexp.MustCompile(`<[^>]+>`)

// AnchorIndex is the set of fragment identifiers a document defines.
type AnchorIndex = sets.Set[string]

// BuildAnchorIndex derives the anchors of a Markdown document.
//
// Every ATX heading (# through ######) contributes its slug. A heading repeated in the same
// document also contributes suffixed variants (-1, -2, ...) while keeping the base slug.
// Headings inside code blocks and setext headings are ignored. Explicit id and <a name>
// attributes in raw HTML are added as well.
func BuildAnchorIndex(src []byte) AnchorIndex {
	index := sets.New[string]()
	if len(src) == 0 {
		return index
	}

	root := goldmark.New().Parser().Parse(text.NewReader(src))
	counter := slugCounter{}

	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *gmast.Heading:
			if heading, ok := atxHeadingText(node, src); ok {
				if slug := Slugify(heading); slug != "" {
					base, suffixed := counter.next(slug)
					index.Add(base)
					if suffixed != "" {
						index.Add(suffixed)
					}
				}
			}
		case *gmast.HTMLBlock:
			var raw bytes.Buffer
			lines := node.Lines()
			for i := range lines.Len() {
				seg := lines.At(i)
				raw.Write(seg.Value(src))
			}
			if node.HasClosure() {
				raw.Write(node.ClosureLine.Value(src))
			}
			addHTMLAnchors(index, raw.Bytes())
		case *gmast.RawHTML:
			var raw bytes.Buffer
			for i := range node.Segments.Len() {
				seg := node.Segments.At(i)
				raw.Write(seg.Value(src))
			}
			addHTMLAnchors(index, raw.Bytes())
		}
		return gmast.WalkContinue, nil
	})

	return index
}

// atxHeadingText returns the raw text of an ATX heading. Setext headings report false.
func atxHeadingText(node *gmast.Heading, src []byte) (string, bool) {
	lines := node.Lines()
	if lines.Len() == 0 {
		return "", false
	}
	seg := lines.At(0)
	lineStart := bytes.LastIndexByte(src[:seg.Start], '\n') + 1
	prefix := bytes.TrimLeft(src[lineStart:seg.Start], " \t")
	if !bytes.HasPrefix(prefix, []byte("#")) {
		return "", false
	}
	return htmlTagRe.ReplaceAllString(string(seg.Value(src)), ""), true
}

func addHTMLAnchors(index AnchorIndex, raw []byte) {
	z := html.NewTokenizer(bytes.NewReader(raw))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			for _, attr := range tok.Attr {
				if attr.Key == "id" || (attr.Key == "name" && tok.Data == "a") {
					if v := strings.TrimSpace(attr.Val); v != "" {
						index.Add(NormalizeFragment(v))
					}
				}
			}
		}
	}
}
