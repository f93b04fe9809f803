package markdown

import (
	"regexp"
	"sort"
	"strings"
)

// Region is a half-open [Start, End) byte range of a fenced code block or inline code span.
type Region struct {
	Start int
	End   int
}

// Contains reports whether offset lies inside the region.
func (r Region) Contains(offset int) bool {
	return offset >= r.Start && offset < r.End
}

const (
	fenceBacktick = "```"
	fenceTilde    = "~~~"
)

var inlineCodeRe = regexp.MustCompile("`[^`\n]+`")

// FindCodeRegions returns the fenced code blocks and inline code spans of text in document order.
//
// A fence opens on a line whose trimmed content starts with ``` or ~~~ and closes on the next
// line starting with the same marker. An unterminated fence runs to the end of text. Inline
// spans are only looked for outside fences and never cross a line boundary.
func FindCodeRegions(text string) []Region {
	regions := make([]Region, 0)

	inCodeBlock := false
	activeFence := ""
	blockStart := 0

	for lineStart := 0; lineStart < len(text); {
		lineEnd := len(text)
		next := len(text)
		if i := strings.IndexByte(text[lineStart:], '\n'); i >= 0 {
			lineEnd = lineStart + i
			next = lineEnd + 1
		}
		line := text[lineStart:lineEnd]

		if fence := fenceMarker(line); fence != "" {
			switch {
			case !inCodeBlock:
				inCodeBlock, activeFence, blockStart = true, fence, lineStart
			case fence == activeFence:
				regions = append(regions, Region{Start: blockStart, End: next})
				inCodeBlock, activeFence = false, ""
			}
			lineStart = next
			continue
		}

		if !inCodeBlock {
			for _, loc := range inlineCodeRe.FindAllStringIndex(line, -1) {
				regions = append(regions, Region{Start: lineStart + loc[0], End: lineStart + loc[1]})
			}
		}
		lineStart = next
	}

	if inCodeBlock {
		regions = append(regions, Region{Start: blockStart, End: len(text)})
	}
	return regions
}

// fenceMarker returns the fence a line opens or closes, or "" when it is not a fence line.
// A backtick run followed by another backtick on the same line is inline code, not a fence.
func fenceMarker(line string) string {
	trimmed := strings.TrimSpace(line)
	switch {
	case strings.HasPrefix(trimmed, fenceBacktick):
		info := strings.TrimLeft(trimmed, "`")
		if strings.Contains(info, "`") {
			return ""
		}
		return fenceBacktick
	case strings.HasPrefix(trimmed, fenceTilde):
		return fenceTilde
	default:
		return ""
	}
}

// InRegions reports whether offset falls inside any of the sorted, disjoint regions.
func InRegions(regions []Region, offset int) bool {
	i := sort.Search(len(regions), func(i int) bool { return regions[i].Start > offset })
	return i > 0 && regions[i-1].Contains(offset)
}
