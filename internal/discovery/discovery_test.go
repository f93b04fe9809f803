package discovery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	helpers "git.home.luguber.info/inful/refcheck/internal/testutil/testutils"
)

func TestFind_Directory(t *testing.T) {
	root := t.TempDir()
	helpers.Touch(t, root, "file1.md", "file2.py", "subdir1/file3.md", "subdir2/file4.txt", "subdir2/file5.markdown")

	got := NewFinder(nil, nil).Find([]string{root})
	require.Equal(t, []string{
		filepath.Join(root, "file1.md"),
		filepath.Join(root, "subdir1", "file3.md"),
		filepath.Join(root, "subdir2", "file5.markdown"),
	}, got)
}

func TestFind_ExcludeDirectoryAndFile(t *testing.T) {
	root := t.TempDir()
	helpers.Touch(t, root, "file1.md", "subdir1/file3.md", "subdir2/file5.md")

	got := NewFinder([]string{filepath.Join(root, "subdir1")}, nil).Find([]string{root})
	require.Equal(t, []string{filepath.Join(root, "file1.md"), filepath.Join(root, "subdir2", "file5.md")}, got)

	got = NewFinder([]string{filepath.Join(root, "subdir1", "file3.md")}, nil).Find([]string{root})
	require.Equal(t, []string{filepath.Join(root, "file1.md"), filepath.Join(root, "subdir2", "file5.md")}, got)
}

func TestFind_ComponentAndGlobExcludes(t *testing.T) {
	root := t.TempDir()
	helpers.Touch(t, root, "a.md", "node_modules/pkg/readme.md", "CHANGELOG.md", "drafts/wip.md")

	got := NewFinder([]string{"node_modules", "CHANGE*.md", "drafts/"}, nil).Find([]string{root})
	require.Equal(t, []string{filepath.Join(root, "a.md")}, got)
}

func TestFind_FilesInvalidAndDuplicates(t *testing.T) {
	root := t.TempDir()
	helpers.Touch(t, root, "file1.md", "file2.md", "excluded.md", "dir/dir_file.md")

	var invalid []string
	f := NewFinder([]string{"excluded.md"}, func(p string) { invalid = append(invalid, p) })

	f1 := filepath.Join(root, "file1.md")
	got := f.Find([]string{
		f1,
		filepath.Join(root, "excluded.md"),
		filepath.Join(root, "invalid_path"),
		filepath.Join(root, "dir"),
		f1,
	})
	require.Equal(t, []string{f1, filepath.Join(root, "dir", "dir_file.md")}, got)
	require.Equal(t, []string{filepath.Join(root, "invalid_path")}, invalid)
}

func TestIsMarkdown(t *testing.T) {
	require.True(t, IsMarkdown("a.md"))
	require.True(t, IsMarkdown("A.MD"))
	require.True(t, IsMarkdown("x/y.markdown"))
	require.False(t, IsMarkdown("a.txt"))
	require.False(t, IsMarkdown("md"))
}

func TestLoadIgnoreFile(t *testing.T) {
	dir := t.TempDir()

	patterns, found, err := LoadIgnoreFile(filepath.Join(dir, DefaultIgnoreFile))
	require.NoError(t, err)
	require.False(t, found)
	require.Equal(t, DefaultExcludes, patterns)

	path := filepath.Join(dir, DefaultIgnoreFile)
	require.NoError(t, os.WriteFile(path, []byte(""), 0o600))
	patterns, found, err = LoadIgnoreFile(path)
	require.NoError(t, err)
	require.True(t, found)
	require.Empty(t, patterns)
	require.NotNil(t, patterns)

	require.NoError(t, os.WriteFile(path, []byte("\n  node_modules  \n\t.git\t\n\n# This is a comment\nbuild\n"), 0o600))
	patterns, _, err = LoadIgnoreFile(path)
	require.NoError(t, err)
	require.Equal(t, []string{"node_modules", ".git", "# This is a comment", "build"}, patterns)
}

func TestLoadIgnoreFile_Unreadable(t *testing.T) {
	dir := t.TempDir()
	_, _, err := LoadIgnoreFile(dir)
	require.Error(t, err)
}
