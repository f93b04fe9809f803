// Package metrics provides optional run metrics for refcheck.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so no nil checks are needed at call sites:
//
//	session := checker.New(validator, checker.WithRecorder(metrics.NoopRecorder{}))
//
// When --metrics-file is set the CLI swaps in a PrometheusRecorder backed by a
// private registry and writes it with WriteTextfile once the run finishes.
package metrics
