package commands

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/refcheck/internal/checker"
	"git.home.luguber.info/inful/refcheck/internal/config"
	"git.home.luguber.info/inful/refcheck/internal/discovery"
	"git.home.luguber.info/inful/refcheck/internal/events"
	"git.home.luguber.info/inful/refcheck/internal/foundation/errors"
	"git.home.luguber.info/inful/refcheck/internal/linkverify"
	"git.home.luguber.info/inful/refcheck/internal/logfields"
	"git.home.luguber.info/inful/refcheck/internal/metrics"
	"git.home.luguber.info/inful/refcheck/internal/parser"
	"git.home.luguber.info/inful/refcheck/internal/reference"
	"git.home.luguber.info/inful/refcheck/internal/report"
)

// ErrNoFiles is returned when the inputs contain no Markdown file.
var ErrNoFiles = errors.ConfigError("no Markdown files specified or found").Build()

// exclusions merges the ignore file (or the built-in defaults when it is absent) with the
// configured exclusions.
func exclusions(s config.Settings) ([]string, error) {
	patterns, found, err := discovery.LoadIgnoreFile(s.IgnoreFile)
	if err != nil {
		return nil, err
	}
	if found {
		slog.Debug("Loaded ignore file", logfields.Path(s.IgnoreFile), logfields.Count(len(patterns)))
	}
	return append(patterns, slices.Clone(s.Exclude)...), nil
}

// runCheck performs one complete check of s.Paths and reports to out. It returns
// ErrBrokenReferences when the run completed with broken references.
func runCheck(ctx context.Context, s config.Settings, out io.Writer) error {
	start := time.Now()
	runID := uuid.NewString()
	logger := slog.Default().With(logfields.RunID(runID))

	var recorder metrics.Recorder = metrics.NoopRecorder{}
	var registry *prometheus.Registry
	if s.MetricsFile != "" {
		registry = prometheus.NewRegistry()
		recorder = metrics.NewPrometheusRecorder(registry)
	}

	outcome := metrics.OutcomeFailed
	defer func() {
		recorder.IncRunOutcome(outcome)
		recorder.ObserveRunDuration(time.Since(start))
		if registry == nil {
			return
		}
		if werr := metrics.WriteTextfile(s.MetricsFile, registry); werr != nil {
			logger.Warn("Failed to write metrics", logfields.Path(s.MetricsFile), logfields.Error(werr))
		}
	}()

	rep, err := report.New(report.Format(s.Format), out, !s.NoColor && isColorSupported())
	if err != nil {
		return errors.WrapError(err, errors.CategoryConfig, "invalid output format").Fatal().Build()
	}

	excludes, err := exclusions(s)
	if err != nil {
		return err
	}
	if len(excludes) > 0 {
		rep.Excluded(excludes)
	}

	files := discovery.NewFinder(excludes, rep.InvalidPath).Find(s.Paths)
	recorder.SetFilesChecked(len(files))
	if len(files) == 0 {
		rep.NoFiles()
		return ErrNoFiles
	}
	rep.Files(files)

	opts := []checker.Option{
		checker.WithCheckRemote(s.CheckRemote),
		checker.WithConcurrency(s.Concurrency),
		checker.WithSink(rep),
		checker.WithRecorder(recorder),
		checker.WithLogger(logger),
	}
	if s.NATSURL != "" {
		pub, perr := events.NewNATSPublisher(s.NATSURL, s.NATSSubject)
		if perr != nil {
			return errors.WrapError(perr, errors.CategoryNetwork, "cannot connect to event broker").
				WithContext("url", s.NATSURL).
				Build()
		}
		defer func() {
			if cerr := pub.Close(); cerr != nil {
				logger.Warn("Failed to close publisher", logfields.Error(cerr))
			}
		}()
		opts = append(opts, checker.WithPublisher(pub, runID))
	}

	p := parser.New(
		parser.WithClassifier(reference.NewClassifier(s.RemoteSchemes...)),
		parser.WithLogger(logger),
	)
	v := linkverify.NewValidator(
		linkverify.WithProber(linkverify.NewHTTPProber(s.Timeout)),
		linkverify.WithAllowAbsolute(s.AllowAbsolute),
		linkverify.WithLogger(logger),
	)
	session := checker.New(v, opts...)

	var refs []reference.Reference
	for _, f := range files {
		doc := p.ParseFile(f)
		if !doc.OK() {
			logger.Warn("Cannot parse file", logfields.File(f), logfields.Error(doc.Err))
			continue
		}
		refs = append(refs, doc.All()...)
	}
	logger.Debug("References extracted", logfields.Count(len(refs)))

	session.Check(ctx, refs)
	sum := session.Summary()
	if err := rep.Summary(sum); err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to write report").Build()
	}

	logger.Info("Check finished",
		logfields.Count(sum.Checked),
		slog.Int("broken", len(sum.Broken)),
		slog.Int("skipped", len(sum.Skipped)),
		logfields.Duration(time.Since(start)))

	if !sum.OK() {
		outcome = metrics.OutcomeBroken
		return errors.ErrBrokenReferences
	}
	outcome = metrics.OutcomeClean
	return nil
}
