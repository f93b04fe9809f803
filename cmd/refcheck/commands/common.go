package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"gopkg.in/natefinch/lumberjack.v2"

	"git.home.luguber.info/inful/refcheck/internal/config"
)

// Global carries the root options into subcommands.
type Global struct {
	Logger  *slog.Logger
	Config  string
	Verbose bool
	LogFile string
	Stdout  io.Writer
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:".refcheck.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	LogFile string           `name:"log-file" help:"Also write JSON logs to this file (rotated)"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Check CheckCmd `cmd:"" default:"withargs" help:"Check references in Markdown files and directories"`
	Watch WatchCmd `cmd:"" help:"Re-check whenever Markdown files change"`

	logCloser io.Closer `kong:"-"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	c.logCloser = setupLogging(c.Verbose, c.LogFile)
	return nil
}

// Global returns the root options for binding into Run methods.
func (c *CLI) Global() *Global {
	return &Global{
		Logger:  slog.Default(),
		Config:  c.Config,
		Verbose: c.Verbose,
		LogFile: c.LogFile,
		Stdout:  os.Stdout,
	}
}

// Close releases the log file, if any.
func (c *CLI) Close() error {
	if c.logCloser == nil {
		return nil
	}
	return c.logCloser.Close()
}

// setupLogging installs the default logger: text on stderr, plus JSON to a rotated file when
// logFile is set. The returned closer is nil without a log file.
func setupLogging(verbose bool, logFile string) io.Closer {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	console := slog.NewTextHandler(os.Stderr, opts)

	if logFile == "" {
		slog.SetDefault(slog.New(console))
		return nil
	}

	rotated := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    10,
		MaxBackups: 3,
		LocalTime:  true,
	}
	slog.SetDefault(slog.New(teeHandler{console, slog.NewJSONHandler(rotated, opts)}))
	return rotated
}

// relevelLogging reconfigures logging when settings loaded from file or environment ask for
// more than the flags did.
func relevelLogging(g *Global, s config.Settings) io.Closer {
	if s.Verbose == g.Verbose && s.LogFile == g.LogFile {
		return nil
	}
	closer := setupLogging(s.Verbose, s.LogFile)
	g.Logger = slog.Default()
	return closer
}

// isColorSupported checks if the terminal supports color output.
func isColorSupported() bool {
	// Check if stdout is a terminal
	if fileInfo, _ := os.Stdout.Stat(); fileInfo == nil || (fileInfo.Mode()&os.ModeCharDevice) == 0 {
		return false
	}

	// Check NO_COLOR environment variable (https://no-color.org/)
	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	term := os.Getenv("TERM")
	return term != "dumb" && term != ""
}
