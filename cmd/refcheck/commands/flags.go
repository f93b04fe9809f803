package commands

import (
	"time"

	"git.home.luguber.info/inful/refcheck/internal/config"
)

// CheckFlags are shared by check and watch.
type CheckFlags struct {
	Paths         []string      `arg:"" optional:"" name:"paths" help:"Markdown files or directories to check"`
	Exclude       []string      `short:"e" help:"Files or directories to skip"`
	CheckRemote   bool          `name:"check-remote" short:"r" help:"Probe remote references (http, https, mailto)"`
	NoColor       bool          `name:"no-color" help:"Disable coloured output"`
	AllowAbsolute bool          `name:"allow-absolute" help:"Check absolute local paths instead of reporting them broken"`
	Format        string        `short:"f" help:"Output format (text or json)"`
	Timeout       time.Duration `help:"Timeout for each remote probe"`
	Concurrency   int           `help:"Maximum remote probes in flight"`
	RemoteScheme  []string      `name:"remote-scheme" help:"URI schemes treated as remote (replaces the defaults)"`
	IgnoreFile    string        `name:"ignore-file" help:"Exclusion file, one pattern per line"`
	MetricsFile   string        `name:"metrics-file" help:"Write Prometheus metrics to this textfile after the run"`
	NATSURL       string        `name:"nats-url" help:"Publish broken references to this NATS server"`
	NATSSubject   string        `name:"nats-subject" help:"Subject for broken reference events"`
}

func (f CheckFlags) settings(g *Global) config.Settings {
	return config.Settings{
		Paths:         f.Paths,
		Exclude:       f.Exclude,
		CheckRemote:   f.CheckRemote,
		NoColor:       f.NoColor,
		Verbose:       g.Verbose,
		AllowAbsolute: f.AllowAbsolute,
		Format:        f.Format,
		Timeout:       f.Timeout,
		Concurrency:   f.Concurrency,
		RemoteSchemes: f.RemoteScheme,
		IgnoreFile:    f.IgnoreFile,
		LogFile:       g.LogFile,
		MetricsFile:   f.MetricsFile,
		NATSURL:       f.NATSURL,
		NATSSubject:   f.NATSSubject,
	}
}

// resolveSettings layers defaults, the YAML file, .env files, REFCHECK_* variables and flags,
// in that order, and validates the result.
func resolveSettings(g *Global, flags CheckFlags, getenv func(string) string) (config.Settings, error) {
	s := config.Default()

	optional := g.Config == config.DefaultConfigFile
	if err := config.LoadFile(g.Config, &s, optional); err != nil {
		return s, err
	}
	if loaded, err := config.LoadDotEnv(config.DefaultEnvFiles...); err != nil {
		return s, err
	} else if len(loaded) > 0 {
		g.Logger.Debug("Loaded env files", "files", loaded)
	}
	if err := config.ApplyEnv(&s, getenv); err != nil {
		return s, err
	}
	s.Overlay(flags.settings(g))

	if err := s.Check(); err != nil {
		return s, err
	}
	g.Logger.Debug("Settings resolved", "settings", s.String())
	return s, nil
}
