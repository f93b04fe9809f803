// Package checker runs the validator over parsed references and accumulates broken ones.
package checker

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"git.home.luguber.info/inful/refcheck/internal/events"
	"git.home.luguber.info/inful/refcheck/internal/logfields"
	"git.home.luguber.info/inful/refcheck/internal/metrics"
	"git.home.luguber.info/inful/refcheck/internal/reference"
)

// Validator decides whether a single reference resolves.
type Validator interface {
	Validate(ctx context.Context, ref reference.Reference) bool
}

// Sink receives notices emitted while checking.
type Sink interface {
	// RemoteDisabled is called once per session, before the first remote reference is skipped.
	RemoteDisabled()
	Skipped(ref reference.Reference)
}

type nopSink struct{}

func (nopSink) RemoteDisabled()             {}
func (nopSink) Skipped(reference.Reference) {}

// Session owns the broken-reference list for one run. It is not safe for concurrent Check calls.
type Session struct {
	validator   Validator
	checkRemote bool
	concurrency int
	sink        Sink
	recorder    metrics.Recorder
	publisher   events.Publisher
	runID       string
	logger      *slog.Logger

	warnedRemote bool
	checked      int
	skipped      []reference.Reference
	broken       []reference.Broken
}

// Option configures a Session.
type Option func(*Session)

// WithCheckRemote enables validation of remote references. When disabled they are skipped.
func WithCheckRemote(enabled bool) Option {
	return func(s *Session) { s.checkRemote = enabled }
}

// WithConcurrency bounds the number of remote probes in flight. Values below 2 keep the run sequential.
func WithConcurrency(n int) Option {
	return func(s *Session) { s.concurrency = max(n, 1) }
}

// WithSink sets the receiver of skip notices.
func WithSink(sink Sink) Option {
	return func(s *Session) { s.sink = sink }
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(s *Session) { s.recorder = r }
}

// WithPublisher publishes every broken reference as an event stamped with runID.
func WithPublisher(p events.Publisher, runID string) Option {
	return func(s *Session) {
		s.publisher = p
		s.runID = runID
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// New creates a Session. Remote checking is enabled by default.
func New(v Validator, opts ...Option) *Session {
	s := &Session{
		validator:   v,
		checkRemote: true,
		concurrency: 1,
		sink:        nopSink{},
		recorder:    metrics.NoopRecorder{},
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Check validates refs in input order, recording the broken ones. Remote references are
// skipped when remote checking is disabled. With concurrency above one, remote probes run on
// a bounded pool while local references are validated inline; results are merged by index.
func (s *Session) Check(ctx context.Context, refs []reference.Reference) {
	results := make([]bool, len(refs))
	include := make([]bool, len(refs))

	pending := make([]int, 0, len(refs))
	for i, ref := range refs {
		if ref.Remote && !s.checkRemote {
			s.skip(ref)
			continue
		}
		include[i] = true
		pending = append(pending, i)
	}

	parallel := s.concurrency > 1
	var wg sync.WaitGroup
	if parallel {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.probeRemote(ctx, refs, pending, results)
		}()
	}
	for _, i := range pending {
		if parallel && refs[i].Remote {
			continue
		}
		results[i] = s.validate(ctx, refs[i])
	}
	wg.Wait()

	for i, ref := range refs {
		if !include[i] {
			continue
		}
		s.checked++
		if results[i] {
			s.recorder.IncReference(string(ref.Kind), metrics.ResultValid)
			continue
		}
		s.recorder.IncReference(string(ref.Kind), metrics.ResultBroken)
		s.addBroken(ctx, reference.NewBroken(ref))
	}
}

// probeRemote validates the remote references among pending on at most s.concurrency goroutines.
func (s *Session) probeRemote(ctx context.Context, refs []reference.Reference, pending []int, results []bool) {
	var wg sync.WaitGroup
	sem := make(chan struct{}, s.concurrency)
	for _, i := range pending {
		if !refs[i].Remote {
			continue
		}
		sem <- struct{}{}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			results[i] = s.validate(ctx, refs[i])
		}()
	}
	wg.Wait()
}

func (s *Session) validate(ctx context.Context, ref reference.Reference) bool {
	if !ref.Remote {
		return s.validator.Validate(ctx, ref)
	}
	start := time.Now()
	ok := s.validator.Validate(ctx, ref)
	s.recorder.ObserveProbeDuration(time.Since(start), ok)
	return ok
}

func (s *Session) skip(ref reference.Reference) {
	if !s.warnedRemote {
		s.warnedRemote = true
		s.sink.RemoteDisabled()
	}
	s.skipped = append(s.skipped, ref)
	s.recorder.IncReference(string(ref.Kind), metrics.ResultSkipped)
	s.sink.Skipped(ref)
}

func (s *Session) addBroken(ctx context.Context, b reference.Broken) {
	s.broken = append(s.broken, b)
	s.logger.Debug("Broken reference",
		logfields.File(b.SourcePath),
		logfields.Line(b.Line),
		logfields.Target(b.Target))

	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishBroken(ctx, events.NewBrokenReferenceEvent(s.runID, b, time.Now())); err != nil {
		s.logger.Warn("Failed to publish broken reference event", logfields.Target(b.Target), logfields.Error(err))
	}
}

// Summary returns the run's result with broken references sorted by (path, line).
// References with equal keys keep the order they were found in.
func (s *Session) Summary() Summary {
	broken := slices.Clone(s.broken)
	slices.SortStableFunc(broken, func(a, b reference.Broken) int {
		return cmp.Or(cmp.Compare(a.SourcePath, b.SourcePath), cmp.Compare(a.Line, b.Line))
	})
	return Summary{
		Checked: s.checked,
		Skipped: slices.Clone(s.skipped),
		Broken:  broken,
	}
}

// Summary is the outcome of a session.
type Summary struct {
	Checked int                   `json:"checked"`
	Skipped []reference.Reference `json:"skipped"`
	Broken  []reference.Broken    `json:"broken"`
}

// OK reports whether no broken references were found.
func (s Summary) OK() bool { return len(s.Broken) == 0 }

// String renders the plain-text report.
func (s Summary) String() string {
	if s.OK() {
		return "No broken references!"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d broken references found:", len(s.Broken))
	for _, ref := range s.Broken {
		fmt.Fprintf(&b, "\n%s: %s", ref.Location(), ref.Syntax)
	}
	return b.String()
}
