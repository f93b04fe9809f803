package commands

import (
	"context"
	"os"
)

// CheckCmd implements the default 'check' command.
type CheckCmd struct {
	CheckFlags `embed:""`
}

// Run resolves settings and performs one check.
func (c *CheckCmd) Run(ctx context.Context, g *Global) error {
	s, err := resolveSettings(g, c.CheckFlags, os.Getenv)
	if err != nil {
		return err
	}
	if closer := relevelLogging(g, s); closer != nil {
		defer func() { _ = closer.Close() }()
	}
	return runCheck(ctx, s, g.Stdout)
}
