package markdown

import (
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/refcheck/internal/util/sets"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Section A":           "section-a",
		"  Hello,   World!  ": "hello-world",
		"pre-existing hyphen": "pre-existing-hyphen",
		"Über Straße":         "über-straße",
		"Version 2.0 (beta)":  "version-20-beta",
		"**Bold** and `code`": "bold-and-code",
		"a - b":               "a---b",
		"!!!":                 "",
	}
	for in, want := range cases {
		require.Equal(t, want, Slugify(in), in)
	}
}

func TestBuildAnchorIndex_Empty(t *testing.T) {
	require.Equal(t, 0, BuildAnchorIndex(nil).Len())
}

func TestBuildAnchorIndex_ATXHeadings(t *testing.T) {
	src := []byte("# Title\n\ntext\n\n## Section A\n\n###### Deep One ##\n")
	index := BuildAnchorIndex(src)
	require.Equal(t, []string{"deep-one", "section-a", "title"}, sets.Sorted(index))
}

func TestBuildAnchorIndex_IgnoresCodeAndSetext(t *testing.T) {
	src := []byte("Setext\n======\n\n```\n# not a heading\n```\n\n#nospace\n\n# Real\n")
	index := BuildAnchorIndex(src)
	require.Equal(t, []string{"real"}, sets.Sorted(index))
}

func TestBuildAnchorIndex_DuplicateHeadings(t *testing.T) {
	src := []byte("# Intro\n\n## Intro\n\n### Intro\n")
	index := BuildAnchorIndex(src)
	require.Equal(t, []string{"intro", "intro-1", "intro-2"}, sets.Sorted(index))
}

func TestBuildAnchorIndex_HTMLAnchors(t *testing.T) {
	src := []byte("<div id=\"Custom-Block\"></div>\n\nSee <a name=\"inline-anchor\"></a> here.\n\n## <span id=\"x\"></span>Heading\n")
	index := BuildAnchorIndex(src)
	require.True(t, index.Has("custom-block"))
	require.True(t, index.Has("inline-anchor"))
	require.True(t, index.Has("x"))
	require.True(t, index.Has("heading"))
}

func TestNormalizeFragment(t *testing.T) {
	require.Equal(t, "section-a", NormalizeFragment("Section-A"))
}
