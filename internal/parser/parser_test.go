package parser

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/refcheck/internal/foundation/errors"
	"git.home.luguber.info/inful/refcheck/internal/reference"
	helpers "git.home.luguber.info/inful/refcheck/internal/testutil/testutils"
)

func TestParseFile_Categories(t *testing.T) {
	dir := t.TempDir()
	path := helpers.WriteFile(t, dir, "doc.md", ""+
		"# Title\n"+
		"See [guide](guide.md#setup) and [site](https://example.com).\n"+
		"![logo](img/logo.png \"Logo\")\n"+
		"Mail <user@example.com> or <https://example.org>.\n")

	doc := New().ParseFile(path)
	require.NoError(t, doc.Err)
	require.True(t, doc.OK())

	links := doc.References[reference.KindLink]
	require.Len(t, links, 2)
	require.Equal(t, "guide.md#setup", links[0].Target)
	require.False(t, links[0].Remote)
	require.Equal(t, 2, links[0].Line)
	require.Equal(t, "[guide](guide.md#setup)", links[0].Syntax)
	require.True(t, links[1].Remote)

	images := doc.References[reference.KindImage]
	require.Len(t, images, 1)
	require.Equal(t, "img/logo.png", images[0].Target)
	require.Equal(t, 3, images[0].Line)

	autolinks := doc.References[reference.KindAutolink]
	require.Len(t, autolinks, 2)
	require.Equal(t, "user@example.com", autolinks[0].Target)
	require.True(t, autolinks[0].Remote)
	require.Equal(t, 4, autolinks[1].Line)

	require.Equal(t, 5, doc.Count())
	all := doc.All()
	require.Len(t, all, 5)
	require.Equal(t, []int{2, 2, 3, 4, 4}, []int{all[0].Line, all[1].Line, all[2].Line, all[3].Line, all[4].Line})
}

func TestParseFile_ImagesAreNotLinks(t *testing.T) {
	doc := New().Parse("a.md", "![alt](pic.png)")
	require.Empty(t, doc.References[reference.KindLink])
	require.Len(t, doc.References[reference.KindImage], 1)
}

func TestParseFile_ExcludesCode(t *testing.T) {
	text := "" +
		"Inline `[skip](inline.md)` code.\n" +
		"```md\n" +
		"[skip](fenced.md)\n" +
		"![skip](fenced.png)\n" +
		"<https://fenced.example.com>\n" +
		"```\n" +
		"[keep](real.md)\n"
	doc := New().Parse("a.md", text)
	require.Len(t, doc.References[reference.KindLink], 1)
	require.Equal(t, "real.md", doc.References[reference.KindLink][0].Target)
	require.Equal(t, 7, doc.References[reference.KindLink][0].Line)
	require.Empty(t, doc.References[reference.KindImage])
	require.Empty(t, doc.References[reference.KindAutolink])
}

func TestParseFile_EmptyDocument(t *testing.T) {
	path := helpers.WriteFile(t, t.TempDir(), "empty.md", "")
	doc := New().ParseFile(path)
	require.NoError(t, doc.Err)
	for _, kind := range reference.Kinds {
		refs, ok := doc.References[kind]
		require.True(t, ok, kind)
		require.Empty(t, refs, kind)
	}
}

func TestParseFile_Missing(t *testing.T) {
	doc := New().ParseFile(filepath.Join(t.TempDir(), "missing.md"))
	require.Error(t, doc.Err)
	require.False(t, doc.OK())
	require.True(t, errors.HasCategory(doc.Err, errors.CategoryFileSystem))
	require.Empty(t, doc.References)
	require.Empty(t, doc.All())
}

func TestParseFile_InvalidUTF8(t *testing.T) {
	path := helpers.WriteFile(t, t.TempDir(), "bin.md", "[a](b.md)\xff\xfe")
	doc := New().ParseFile(path)
	require.Error(t, doc.Err)
	require.Empty(t, doc.References)
}

func TestParse_WithClassifier(t *testing.T) {
	p := New(WithClassifier(reference.NewClassifier("ftp")))
	doc := p.Parse("a.md", "[f](ftp://host/x) [h](https://x)")
	links := doc.References[reference.KindLink]
	require.Len(t, links, 2)
	require.True(t, links[0].Remote)
	require.False(t, links[1].Remote)
}

func TestParse_DropsEmptyTargets(t *testing.T) {
	doc := New().Parse("a.md", "[a](<>) [b]( \"title only\")")
	require.Empty(t, doc.References[reference.KindLink])
}

func TestParseFile_WithReadFile(t *testing.T) {
	p := New(WithReadFile(func(string) ([]byte, error) { return []byte("[x](y.md)"), nil }))
	doc := p.ParseFile("virtual.md")
	require.Len(t, doc.References[reference.KindLink], 1)
	require.Equal(t, "virtual.md", doc.References[reference.KindLink][0].SourcePath)
}
