// Package config holds the settings of a refcheck run.
package config

import (
	"fmt"
	"strings"
	"time"

	"git.home.luguber.info/inful/refcheck/internal/discovery"
	"git.home.luguber.info/inful/refcheck/internal/reference"
)

// Settings is constructed once at the CLI boundary and passed to every component that needs it.
type Settings struct {
	Paths         []string      `yaml:"paths"`
	Exclude       []string      `yaml:"exclude"`
	CheckRemote   bool          `yaml:"check_remote"`
	NoColor       bool          `yaml:"no_color"`
	Verbose       bool          `yaml:"verbose"`
	AllowAbsolute bool          `yaml:"allow_absolute"`
	Format        string        `yaml:"format" validate:"oneof=text json"`
	Timeout       time.Duration `yaml:"timeout" validate:"gt=0"`
	Concurrency   int           `yaml:"concurrency" validate:"min=1,max=64"`
	RemoteSchemes []string      `yaml:"remote_schemes" validate:"min=1,dive,scheme"`
	IgnoreFile    string        `yaml:"ignore_file"`
	LogFile       string        `yaml:"log_file"`
	MetricsFile   string        `yaml:"metrics_file"`
	NATSURL       string        `yaml:"nats_url" validate:"omitempty,url"`
	NATSSubject   string        `yaml:"nats_subject"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		Format:        "text",
		Timeout:       5 * time.Second,
		Concurrency:   1,
		RemoteSchemes: append([]string(nil), reference.DefaultRemoteSchemes...),
		IgnoreFile:    discovery.DefaultIgnoreFile,
	}
}

// IsValid reports whether the settings can drive a run: at least one path and no validation errors.
func (s Settings) IsValid() bool {
	return s.Check() == nil
}

func (s Settings) String() string {
	return fmt.Sprintf("Settings(paths=[%s], verbose=%t, check_remote=%t, no_color=%t, allow_absolute=%t, exclude=[%s])",
		strings.Join(s.Paths, ", "), s.Verbose, s.CheckRemote, s.NoColor, s.AllowAbsolute, strings.Join(s.Exclude, ", "))
}

// Overlay copies the fields set in o over s. Booleans only ever switch on, strings and
// slices apply when non-empty and numbers when positive. Exclusions accumulate.
func (s *Settings) Overlay(o Settings) {
	if len(o.Paths) > 0 {
		s.Paths = o.Paths
	}
	if len(o.Exclude) > 0 {
		s.Exclude = append(s.Exclude, o.Exclude...)
	}
	s.CheckRemote = s.CheckRemote || o.CheckRemote
	s.NoColor = s.NoColor || o.NoColor
	s.Verbose = s.Verbose || o.Verbose
	s.AllowAbsolute = s.AllowAbsolute || o.AllowAbsolute
	if o.Format != "" {
		s.Format = o.Format
	}
	if o.Timeout > 0 {
		s.Timeout = o.Timeout
	}
	if o.Concurrency > 0 {
		s.Concurrency = o.Concurrency
	}
	if len(o.RemoteSchemes) > 0 {
		s.RemoteSchemes = o.RemoteSchemes
	}
	if o.IgnoreFile != "" {
		s.IgnoreFile = o.IgnoreFile
	}
	if o.LogFile != "" {
		s.LogFile = o.LogFile
	}
	if o.MetricsFile != "" {
		s.MetricsFile = o.MetricsFile
	}
	if o.NATSURL != "" {
		s.NATSURL = o.NATSURL
	}
	if o.NATSSubject != "" {
		s.NATSSubject = o.NATSSubject
	}
}
