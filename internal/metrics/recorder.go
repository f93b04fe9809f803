package metrics

import "time"

// ResultLabel enumerates per-reference outcomes for counters.
type ResultLabel string

const (
	ResultValid   ResultLabel = "valid"
	ResultBroken  ResultLabel = "broken"
	ResultSkipped ResultLabel = "skipped"
)

// OutcomeLabel enumerates run outcomes.
type OutcomeLabel string

const (
	OutcomeClean  OutcomeLabel = "clean"
	OutcomeBroken OutcomeLabel = "broken"
	OutcomeFailed OutcomeLabel = "failed"
)

// Recorder defines observability hooks for a check run. Implementations
// may forward to Prometheus or elsewhere.
type Recorder interface {
	IncReference(kind string, result ResultLabel)
	ObserveProbeDuration(d time.Duration, reachable bool)
	ObserveRunDuration(d time.Duration)
	SetFilesChecked(n int)
	IncRunOutcome(outcome OutcomeLabel)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) IncReference(string, ResultLabel)         {}
func (NoopRecorder) ObserveProbeDuration(time.Duration, bool) {}
func (NoopRecorder) ObserveRunDuration(time.Duration)         {}
func (NoopRecorder) SetFilesChecked(int)                      {}
func (NoopRecorder) IncRunOutcome(OutcomeLabel)               {}
