// Package report renders run progress and results for the terminal or for machines.
package report

import (
	"fmt"
	"io"

	"git.home.luguber.info/inful/refcheck/internal/checker"
)

// Format names an output format.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Reporter receives everything a run wants to tell the user. It doubles as the checker's Sink.
type Reporter interface {
	checker.Sink

	Excluded(patterns []string)
	InvalidPath(path string)
	Files(files []string)
	NoFiles()
	Summary(sum checker.Summary) error
}

// New returns a Reporter for format writing to w.
func New(format Format, w io.Writer, useColor bool) (Reporter, error) {
	switch format {
	case FormatText, "":
		return NewTextReporter(w, useColor), nil
	case FormatJSON:
		return NewJSONReporter(w), nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}
