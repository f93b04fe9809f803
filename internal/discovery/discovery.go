// Package discovery expands command-line paths into the ordered set of Markdown files to check.
package discovery

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/refcheck/internal/logfields"
	"git.home.luguber.info/inful/refcheck/internal/util/sets"
)

// IsMarkdown reports whether path has a Markdown extension.
func IsMarkdown(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return true
	default:
		return false
	}
}

// Finder resolves inputs to Markdown files, honouring exclusion patterns.
type Finder struct {
	excludes []string
	invalid  func(path string)
	logger   *slog.Logger
}

// NewFinder creates a Finder. invalid, when non-nil, is called for every input that is neither
// a file nor a directory.
func NewFinder(excludes []string, invalid func(path string)) *Finder {
	cleaned := make([]string, 0, len(excludes))
	for _, e := range excludes {
		if e = strings.TrimSpace(e); e != "" {
			cleaned = append(cleaned, filepath.Clean(e))
		}
	}
	return &Finder{excludes: cleaned, invalid: invalid, logger: slog.Default()}
}

// Find returns the Markdown files named by paths or found beneath them, first occurrence first.
// Explicitly named files are included whatever their extension unless excluded.
func (f *Finder) Find(paths []string) []string {
	files := sets.NewOrdered[string]()
	for _, p := range paths {
		p = filepath.Clean(p)
		info, err := os.Stat(p)
		switch {
		case err != nil:
			f.logger.Debug("Skipping invalid path", logfields.Path(p), logfields.Error(err))
			if f.invalid != nil {
				f.invalid(p)
			}
		case info.IsDir():
			f.walk(p, files)
		case info.Mode().IsRegular():
			if !f.Excluded(p) {
				files.Add(p)
			}
		default:
			if f.invalid != nil {
				f.invalid(p)
			}
		}
	}
	return files.Items()
}

func (f *Finder) walk(root string, files *sets.Ordered[string]) {
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			f.logger.Warn("Cannot walk path", logfields.Path(path), logfields.Error(err))
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if f.Excluded(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() && d.Type().IsRegular() && IsMarkdown(path) {
			files.Add(path)
		}
		return nil
	})
}

// Excluded reports whether path matches any exclusion pattern. A pattern matches the path
// itself, any parent directory of it, any single path component, or, as a glob, the base name.
func (f *Finder) Excluded(path string) bool {
	path = filepath.Clean(path)
	base := filepath.Base(path)
	parts := strings.Split(filepath.ToSlash(path), "/")

	for _, pattern := range f.excludes {
		if path == pattern || strings.HasPrefix(path, pattern+string(filepath.Separator)) {
			return true
		}
		for _, part := range parts {
			if part == pattern {
				return true
			}
		}
		if ok, _ := filepath.Match(pattern, base); ok {
			return true
		}
		if ok, _ := filepath.Match(pattern, path); ok {
			return true
		}
	}
	return false
}
