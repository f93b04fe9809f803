package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.IncReference("basic_references", ResultValid)
	pr.IncReference("basic_references", ResultValid)
	pr.IncReference("inline_links", ResultSkipped)
	pr.ObserveProbeDuration(150*time.Millisecond, true)
	pr.ObserveRunDuration(500 * time.Millisecond)
	pr.SetFilesChecked(3)
	pr.IncRunOutcome(OutcomeClean)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	require.Len(t, mfs, 5)

	values := map[string]float64{}
	for _, mf := range mfs {
		switch mf.GetName() {
		case "refcheck_files_checked":
			values["files"] = mf.GetMetric()[0].GetGauge().GetValue()
		case "refcheck_references_total":
			for _, m := range mf.GetMetric() {
				if labelValue(m.GetLabel(), "kind") == "basic_references" && labelValue(m.GetLabel(), "result") == "valid" {
					values["valid_links"] = m.GetCounter().GetValue()
				}
			}
		}
	}
	require.InDelta(t, 3, values["files"], 0)
	require.InDelta(t, 2, values["valid_links"], 0)
}

func labelValue(pairs []*dto.LabelPair, name string) string {
	for _, p := range pairs {
		if p.GetName() == name {
			return p.GetValue()
		}
	}
	return ""
}

func TestPrometheusRecorder_NilSafe(t *testing.T) {
	var pr *PrometheusRecorder
	require.NotPanics(t, func() {
		pr.IncReference("x", ResultBroken)
		pr.ObserveRunDuration(time.Second)
		pr.SetFilesChecked(1)
	})
}

func TestWriteTextfile(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.IncRunOutcome(OutcomeBroken)

	path := filepath.Join(t.TempDir(), "refcheck.prom")
	require.NoError(t, WriteTextfile(path, reg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `refcheck_run_outcomes_total{outcome="broken"} 1`)
}

func TestTestRecorder(t *testing.T) {
	r := newTestRecorder()
	r.IncReference("basic_images", ResultBroken)
	r.SetFilesChecked(2)
	require.Equal(t, 1, r.references["basic_images"][ResultBroken])
	require.Equal(t, 2, r.files)
}
