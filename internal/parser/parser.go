// Package parser extracts references from Markdown documents.
package parser

import (
	"log/slog"
	"os"
	"slices"
	"unicode/utf8"

	"git.home.luguber.info/inful/refcheck/internal/foundation/errors"
	"git.home.luguber.info/inful/refcheck/internal/logfields"
	"git.home.luguber.info/inful/refcheck/internal/markdown"
	"git.home.luguber.info/inful/refcheck/internal/reference"
)

// Document is the result of parsing one file.
//
// When the file cannot be read, References is empty and Err says why. A readable
// document always has an entry for every reference kind, possibly empty.
type Document struct {
	Path       string
	References map[reference.Kind][]reference.Reference
	Err        error
}

// OK reports whether the document was read successfully.
func (d Document) OK() bool { return d.Err == nil }

// All returns the references of every kind ordered by line, links before images before
// autolinks on the same line.
func (d Document) All() []reference.Reference {
	var out []reference.Reference
	for _, kind := range reference.Kinds {
		out = append(out, d.References[kind]...)
	}
	slices.SortStableFunc(out, func(a, b reference.Reference) int { return a.Line - b.Line })
	return out
}

// Count returns the number of references found.
func (d Document) Count() int {
	n := 0
	for _, refs := range d.References {
		n += len(refs)
	}
	return n
}

// Parser turns Markdown files into reference records.
type Parser struct {
	classifier reference.Classifier
	readFile   func(string) ([]byte, error)
	logger     *slog.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithClassifier sets the rule deciding which targets are remote.
func WithClassifier(c reference.Classifier) Option {
	return func(p *Parser) { p.classifier = c }
}

// WithReadFile replaces the function used to load documents.
func WithReadFile(fn func(string) ([]byte, error)) Option {
	return func(p *Parser) { p.readFile = fn }
}

// WithLogger sets the logger used for read failures.
func WithLogger(l *slog.Logger) Option {
	return func(p *Parser) { p.logger = l }
}

// New creates a Parser with the default remote schemes, reading from the local filesystem.
func New(opts ...Option) *Parser {
	p := &Parser{
		classifier: reference.NewClassifier(),
		readFile:   os.ReadFile,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseFile reads path and extracts its references. It never fails outright:
// a read or decode failure is reported through Document.Err.
func (p *Parser) ParseFile(path string) Document {
	src, err := p.readFile(path)
	if err != nil {
		p.logger.Debug("Cannot read document", logfields.File(path), logfields.Error(err))
		return Document{
			Path:       path,
			References: map[reference.Kind][]reference.Reference{},
			Err:        errors.WrapError(err, errors.CategoryFileSystem, "cannot read document").WithContext("path", path).Build(),
		}
	}
	if !utf8.Valid(src) {
		p.logger.Debug("Document is not valid UTF-8", logfields.File(path))
		return Document{
			Path:       path,
			References: map[reference.Kind][]reference.Reference{},
			Err:        errors.FileSystemError("document is not valid UTF-8").WithContext("path", path).Build(),
		}
	}
	return p.Parse(path, string(src))
}

// Parse extracts references from already loaded text attributed to path.
func (p *Parser) Parse(path, text string) Document {
	doc := Document{
		Path:       path,
		References: make(map[reference.Kind][]reference.Reference, len(reference.Kinds)),
	}
	regions := markdown.FindCodeRegions(text)

	for _, kind := range reference.Kinds {
		matches := markdown.ExcludeInRegions(markdown.FindMatches(patternFor(kind), text), regions)
		refs := make([]reference.Reference, 0, len(matches))
		for _, m := range matches {
			target := m.Target
			if kind != reference.KindAutolink {
				target = markdown.Destination(target)
			}
			ref, err := reference.New(path, m.Line, m.Text, target, kind, p.classifier.IsRemote(target))
			if err != nil {
				p.logger.Debug("Skipping reference", logfields.File(path), logfields.Line(m.Line), logfields.Error(err))
				continue
			}
			refs = append(refs, ref)
		}
		doc.References[kind] = refs
	}
	return doc
}

func patternFor(kind reference.Kind) markdown.PatternKind {
	switch kind {
	case reference.KindImage:
		return markdown.PatternImage
	case reference.KindAutolink:
		return markdown.PatternAutolink
	default:
		return markdown.PatternLink
	}
}
