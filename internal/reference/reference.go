// Package reference defines the value types produced by the parser and
// consumed by the validator and checker session.
package reference

import (
	"fmt"
	"strings"

	"git.home.luguber.info/inful/refcheck/internal/foundation/errors"
)

// Kind is the syntax category a reference was found with.
type Kind string

const (
	KindLink     Kind = "basic_references" // [text](target)
	KindImage    Kind = "basic_images"     // ![alt](target)
	KindAutolink Kind = "inline_links"     // <target>
)

// Kinds lists every category in scan order.
var Kinds = []Kind{KindLink, KindImage, KindAutolink}

// StatusBroken is the label attached to references that failed validation.
const StatusBroken = "BROKEN"

// Reference describes one discovered reference. It is immutable once built.
type Reference struct {
	SourcePath string `json:"file"`
	Line       int    `json:"line"`
	Syntax     string `json:"syntax"`
	Target     string `json:"target"`
	Remote     bool   `json:"remote"`
	Kind       Kind   `json:"kind"`
}

// New builds a Reference, rejecting an empty target or a line below 1.
func New(source string, line int, syntax, target string, kind Kind, remote bool) (Reference, error) {
	if strings.TrimSpace(target) == "" {
		return Reference{}, errors.ValidationError("reference target is empty").
			WithContext("file", source).
			WithContext("line", line).
			Build()
	}
	if line < 1 {
		return Reference{}, errors.ValidationError("reference line must be at least 1").
			WithContext("file", source).
			WithContext("line", line).
			Build()
	}
	return Reference{
		SourcePath: source,
		Line:       line,
		Syntax:     syntax,
		Target:     target,
		Remote:     remote,
		Kind:       kind,
	}, nil
}

// SplitTarget splits the target on the first '#' into a path and a fragment.
// hasFragment is true when a '#' was present, even if the fragment is empty.
func (r Reference) SplitTarget() (path, fragment string, hasFragment bool) {
	return strings.Cut(r.Target, "#")
}

// Location returns "path:line".
func (r Reference) Location() string {
	return fmt.Sprintf("%s:%d", r.SourcePath, r.Line)
}

func (r Reference) String() string {
	scope := "Local"
	if r.Remote {
		scope = "Remote"
	}
	return fmt.Sprintf("Reference: %s -> %s (%s)", r.Location(), r.Target, scope)
}

// Broken is a Reference that failed validation.
type Broken struct {
	Reference
	Status string `json:"status"`
}

// NewBroken labels ref as broken.
func NewBroken(ref Reference) Broken {
	return Broken{Reference: ref, Status: StatusBroken}
}
