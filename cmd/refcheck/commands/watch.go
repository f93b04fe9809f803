package commands

import (
	"context"
	stderrors "errors"
	"os"
	"time"

	"git.home.luguber.info/inful/refcheck/internal/discovery"
	"git.home.luguber.info/inful/refcheck/internal/foundation/errors"
	"git.home.luguber.info/inful/refcheck/internal/logfields"
	"git.home.luguber.info/inful/refcheck/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	CheckFlags `embed:""`
	Debounce   time.Duration `default:"300ms" help:"Quiet period after the last change before re-checking"`
}

// Run checks once, then again after every change, until interrupted.
func (w *WatchCmd) Run(ctx context.Context, g *Global) error {
	s, err := resolveSettings(g, w.CheckFlags, os.Getenv)
	if err != nil {
		return err
	}
	if closer := relevelLogging(g, s); closer != nil {
		defer func() { _ = closer.Close() }()
	}

	excludes, err := exclusions(s)
	if err != nil {
		return err
	}
	finder := discovery.NewFinder(excludes, nil)

	watcher := watch.New(s.Paths, func(ctx context.Context) {
		err := runCheck(ctx, s, g.Stdout)
		if err != nil && !stderrors.Is(err, errors.ErrBrokenReferences) {
			g.Logger.Error("Check failed", logfields.Error(err))
		}
	}, watch.WithDebounce(w.Debounce), watch.WithExclude(finder.Excluded))

	g.Logger.Info("Watching for changes", "paths", s.Paths)
	if err := watcher.Run(ctx); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "file watcher failed").Build()
	}
	return nil
}
