package discovery

import (
	"bufio"
	"bytes"
	stderrors "errors"
	"io/fs"
	"os"
	"slices"
	"strings"

	"git.home.luguber.info/inful/refcheck/internal/foundation/errors"
)

// DefaultIgnoreFile is looked up in the working directory.
const DefaultIgnoreFile = ".refcheckignore"

// DefaultExcludes apply when no ignore file exists.
var DefaultExcludes = []string{
	".git",
	"node_modules",
	"venv",
	".venv",
	"__pycache__",
}

// LoadIgnoreFile reads exclusion patterns from path, one per line. Lines are trimmed and blank
// lines skipped; every other line, including one starting with '#', is kept as a literal pattern.
// A missing file yields DefaultExcludes and found=false; an empty file yields no patterns.
func LoadIgnoreFile(path string) (patterns []string, found bool, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return slices.Clone(DefaultExcludes), false, nil
		}
		return nil, false, errors.WrapError(err, errors.CategoryFileSystem, "cannot read ignore file").
			WithContext("path", path).
			Build()
	}
	return parseIgnore(data), true, nil
}

func parseIgnore(data []byte) []string {
	patterns := []string{}
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		patterns = append(patterns, line)
	}
	return patterns
}
