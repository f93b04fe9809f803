package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/refcheck/cmd/refcheck/commands"
	"git.home.luguber.info/inful/refcheck/internal/foundation/errors"
	"git.home.luguber.info/inful/refcheck/internal/version"
)

func main() {
	cli := &commands.CLI{}
	parser := kong.Must(cli,
		kong.Name("refcheck"),
		kong.Description("Find broken links, images and anchors in Markdown files."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)
	kctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	kctx.BindTo(ctx, (*context.Context)(nil))

	err = kctx.Run(cli.Global())
	cancel()
	if cerr := cli.Close(); cerr != nil {
		slog.Warn("Failed to close log file", "error", cerr)
	}

	errors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
}
