package report

import (
	"encoding/json"
	"io"
	"sync"

	"git.home.luguber.info/inful/refcheck/internal/checker"
	"git.home.luguber.info/inful/refcheck/internal/reference"
)

// JSONResult is the document written by JSONReporter.
type JSONResult struct {
	Files          []string              `json:"files"`
	Excluded       []string              `json:"excluded,omitempty"`
	InvalidPaths   []string              `json:"invalid_paths,omitempty"`
	RemoteDisabled bool                  `json:"remote_disabled"`
	Checked        int                   `json:"checked"`
	Skipped        []reference.Reference `json:"skipped"`
	Broken         []reference.Broken    `json:"broken"`
	OK             bool                  `json:"ok"`
}

// JSONReporter buffers progress and writes a single JSON document on Summary.
type JSONReporter struct {
	w      io.Writer
	mu     sync.Mutex
	result JSONResult
}

// NewJSONReporter creates a JSON reporter.
func NewJSONReporter(w io.Writer) *JSONReporter {
	return &JSONReporter{w: w, result: JSONResult{Files: []string{}}}
}

func (r *JSONReporter) Excluded(patterns []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.result.Excluded = append(r.result.Excluded, patterns...)
}

func (r *JSONReporter) InvalidPath(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.result.InvalidPaths = append(r.result.InvalidPaths, path)
}

func (r *JSONReporter) Files(files []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.result.Files = append(r.result.Files, files...)
}

func (r *JSONReporter) NoFiles() {}

func (r *JSONReporter) RemoteDisabled() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.result.RemoteDisabled = true
}

// Skipped is a no-op; skipped references are taken from the summary.
func (r *JSONReporter) Skipped(reference.Reference) {}

// Summary writes the buffered result.
func (r *JSONReporter) Summary(sum checker.Summary) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.result.Checked = sum.Checked
	r.result.Skipped = nonNil(sum.Skipped)
	r.result.Broken = nonNil(sum.Broken)
	r.result.OK = sum.OK()

	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	return enc.Encode(r.result)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
