// Package events publishes broken-reference notifications to a message broker.
package events

import (
	"time"

	"git.home.luguber.info/inful/refcheck/internal/reference"
)

// BrokenReferenceEvent represents a broken reference discovered during a run.
// It is published to NATS for downstream processing (e.g., opening issues).
type BrokenReferenceEvent struct {
	RunID  string `json:"run_id"`
	File   string `json:"file"`
	Line   int    `json:"line"`
	Syntax string `json:"syntax"`
	Target string `json:"target"`
	Kind   string `json:"kind"`
	Remote bool   `json:"remote"`
	Status string `json:"status"`

	Timestamp time.Time `json:"timestamp"`
}

// NewBrokenReferenceEvent builds the event for one broken reference.
func NewBrokenReferenceEvent(runID string, b reference.Broken, at time.Time) BrokenReferenceEvent {
	return BrokenReferenceEvent{
		RunID:     runID,
		File:      b.SourcePath,
		Line:      b.Line,
		Syntax:    b.Syntax,
		Target:    b.Target,
		Kind:      string(b.Kind),
		Remote:    b.Remote,
		Status:    b.Status,
		Timestamp: at.UTC(),
	}
}
