package metrics

import (
	"time"
)

type testRecorder struct {
	references map[string]map[ResultLabel]int
	probes     int
	runs       int
	files      int
	outcomes   map[OutcomeLabel]int
}

func newTestRecorder() *testRecorder {
	return &testRecorder{references: map[string]map[ResultLabel]int{}, outcomes: map[OutcomeLabel]int{}}
}

func (t *testRecorder) IncReference(kind string, result ResultLabel) {
	m, ok := t.references[kind]
	if !ok {
		m = map[ResultLabel]int{}
		t.references[kind] = m
	}
	m[result]++
}
func (t *testRecorder) ObserveProbeDuration(time.Duration, bool) { t.probes++ }
func (t *testRecorder) ObserveRunDuration(time.Duration)         { t.runs++ }
func (t *testRecorder) SetFilesChecked(n int)                    { t.files = n }
func (t *testRecorder) IncRunOutcome(outcome OutcomeLabel)       { t.outcomes[outcome]++ }

var (
	_ Recorder = (*testRecorder)(nil)
	_ Recorder = NoopRecorder{}
	_ Recorder = (*PrometheusRecorder)(nil)
)
