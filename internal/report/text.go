package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"git.home.luguber.info/inful/refcheck/internal/checker"
	"git.home.luguber.info/inful/refcheck/internal/reference"
)

// Color palette shared by all text output.
const (
	colorPrimary   = lipgloss.Color("#7C3AED")
	colorMuted     = lipgloss.Color("#6B7280")
	colorSuccess   = lipgloss.Color("#10B981")
	colorError     = lipgloss.Color("#EF4444")
	colorWarning   = lipgloss.Color("#F59E0B")
	colorHighlight = lipgloss.Color("#3B82F6")
)

type palette struct {
	title     lipgloss.Style
	muted     lipgloss.Style
	success   lipgloss.Style
	failure   lipgloss.Style
	warning   lipgloss.Style
	highlight lipgloss.Style
}

func newPalette(r *lipgloss.Renderer) palette {
	return palette{
		title:     r.NewStyle().Bold(true).Foreground(colorPrimary),
		muted:     r.NewStyle().Foreground(colorMuted),
		success:   r.NewStyle().Foreground(colorSuccess),
		failure:   r.NewStyle().Bold(true).Foreground(colorError),
		warning:   r.NewStyle().Foreground(colorWarning),
		highlight: r.NewStyle().Foreground(colorHighlight),
	}
}

// TextReporter writes human-readable lines as the run progresses.
type TextReporter struct {
	w        io.Writer
	useColor bool
	styles   palette
}

// NewTextReporter creates a text reporter. Without color every line is plain text.
func NewTextReporter(w io.Writer, useColor bool) *TextReporter {
	return &TextReporter{
		w:        w,
		useColor: useColor,
		styles:   newPalette(lipgloss.NewRenderer(w)),
	}
}

func (r *TextReporter) paint(style lipgloss.Style, s string) string {
	if !r.useColor {
		return s
	}
	return style.Render(s)
}

func (r *TextReporter) println(s string) {
	_, _ = fmt.Fprintln(r.w, s)
}

func (r *TextReporter) Excluded(patterns []string) {
	if len(patterns) == 0 {
		return
	}
	r.println(r.paint(r.styles.muted, "Skipping these files and directories: "+strings.Join(patterns, ", ")))
}

func (r *TextReporter) InvalidPath(path string) {
	r.println(r.paint(r.styles.warning, path+" is not a valid file or directory."))
}

func (r *TextReporter) Files(files []string) {
	r.println(r.paint(r.styles.title, fmt.Sprintf("%d Markdown files to check", len(files))))
	for _, f := range files {
		r.println(r.paint(r.styles.muted, "- "+f))
	}
}

func (r *TextReporter) NoFiles() {
	r.println(r.paint(r.styles.failure, "No Markdown files specified or found"))
}

func (r *TextReporter) RemoteDisabled() {
	r.println(r.paint(r.styles.warning, "Skipping remote reference check"))
}

func (r *TextReporter) Skipped(ref reference.Reference) {
	r.println(r.paint(r.styles.muted, fmt.Sprintf("%s: %s %s", ref.Location(), ref.Target, "SKIPPED")))
}

// Summary writes the closing report.
func (r *TextReporter) Summary(sum checker.Summary) error {
	if _, err := fmt.Fprintf(r.w, "\n%s\n", r.paint(r.styles.title, "Summary")); err != nil {
		return err
	}
	if sum.OK() {
		_, err := fmt.Fprintln(r.w, r.paint(r.styles.success, "No broken references!"))
		return err
	}

	if _, err := fmt.Fprintln(r.w, r.paint(r.styles.failure, fmt.Sprintf("%d broken references found:", len(sum.Broken)))); err != nil {
		return err
	}
	for _, b := range sum.Broken {
		if _, err := fmt.Fprintf(r.w, "%s: %s\n", r.paint(r.styles.highlight, b.Location()), b.Syntax); err != nil {
			return err
		}
	}
	return nil
}
