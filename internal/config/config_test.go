package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/refcheck/internal/foundation/errors"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestDefault(t *testing.T) {
	s := Default()
	require.Equal(t, "text", s.Format)
	require.Equal(t, 5*time.Second, s.Timeout)
	require.Equal(t, 1, s.Concurrency)
	require.Equal(t, []string{"http", "https", "mailto"}, s.RemoteSchemes)
	require.Equal(t, ".refcheckignore", s.IgnoreFile)
	require.False(t, s.CheckRemote)
	require.NoError(t, s.Validate())
}

func TestIsValid_RequiresPaths(t *testing.T) {
	s := Default()
	require.False(t, s.IsValid())
	require.ErrorIs(t, s.Check(), ErrNoPaths)

	s.Paths = []string{"docs"}
	require.True(t, s.IsValid())
	require.NoError(t, s.Check())
}

func TestValidate_Constraints(t *testing.T) {
	cases := map[string]func(*Settings){
		"format":      func(s *Settings) { s.Format = "xml" },
		"timeout":     func(s *Settings) { s.Timeout = 0 },
		"concurrency": func(s *Settings) { s.Concurrency = 0 },
		"schemes":     func(s *Settings) { s.RemoteSchemes = []string{"1bad"} },
		"no schemes":  func(s *Settings) { s.RemoteSchemes = nil },
		"nats url":    func(s *Settings) { s.NATSURL = "not a url" },
	}
	for name, mutate := range cases {
		s := Default()
		s.Paths = []string{"docs"}
		mutate(&s)
		err := s.Validate()
		require.Error(t, err, name)
		require.True(t, errors.HasCategory(err, errors.CategoryConfig), name)
		require.False(t, s.IsValid(), name)
	}
}

func TestString(t *testing.T) {
	s := Default()
	s.Paths = []string{"README.md", "docs"}
	s.CheckRemote = true
	s.Exclude = []string{"node_modules"}
	require.Equal(t,
		"Settings(paths=[README.md, docs], verbose=false, check_remote=true, no_color=false, allow_absolute=false, exclude=[node_modules])",
		s.String())
}

func TestOverlay(t *testing.T) {
	s := Default()
	s.Exclude = []string{"a"}
	s.Overlay(Settings{
		Paths:       []string{"docs"},
		Exclude:     []string{"b"},
		CheckRemote: true,
		Format:      "json",
		Concurrency: 4,
	})
	require.Equal(t, []string{"docs"}, s.Paths)
	require.Equal(t, []string{"a", "b"}, s.Exclude)
	require.True(t, s.CheckRemote)
	require.Equal(t, "json", s.Format)
	require.Equal(t, 4, s.Concurrency)
	require.Equal(t, 5*time.Second, s.Timeout)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultConfigFile)
	t.Setenv("REFCHECK_TEST_DOCS", "handbook")
	require.NoError(t, os.WriteFile(path, []byte(""+
		"paths: [README.md, ${REFCHECK_TEST_DOCS}]\n"+
		"check_remote: true\n"+
		"timeout: 2s\n"+
		"remote_schemes: [https]\n"), 0o600))

	s := Default()
	require.NoError(t, LoadFile(path, &s, false))
	require.Equal(t, []string{"README.md", "handbook"}, s.Paths)
	require.True(t, s.CheckRemote)
	require.Equal(t, 2*time.Second, s.Timeout)
	require.Equal(t, []string{"https"}, s.RemoteSchemes)
	require.Equal(t, "text", s.Format)
}

func TestLoadFile_Missing(t *testing.T) {
	s := Default()
	missing := filepath.Join(t.TempDir(), "nope.yaml")
	require.NoError(t, LoadFile(missing, &s, true))

	err := LoadFile(missing, &s, false)
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryConfig))
}

func TestLoadFile_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("paths: [unterminated\n"), 0o600))
	s := Default()
	require.Error(t, LoadFile(path, &s, false))
}

func TestApplyEnv(t *testing.T) {
	s := Default()
	err := ApplyEnv(&s, envMap(map[string]string{
		"REFCHECK_PATHS":        "docs, README.md",
		"REFCHECK_CHECK_REMOTE": "true",
		"REFCHECK_TIMEOUT":      "750ms",
		"REFCHECK_CONCURRENCY":  "8",
		"REFCHECK_FORMAT":       "json",
		"REFCHECK_NATS_URL":     "nats://localhost:4222",
		"NO_COLOR":              "1",
	}))
	require.NoError(t, err)
	require.Equal(t, []string{"docs", "README.md"}, s.Paths)
	require.True(t, s.CheckRemote)
	require.Equal(t, 750*time.Millisecond, s.Timeout)
	require.Equal(t, 8, s.Concurrency)
	require.Equal(t, "json", s.Format)
	require.Equal(t, "nats://localhost:4222", s.NATSURL)
	require.True(t, s.NoColor)
	require.NoError(t, s.Check())
}

func TestApplyEnv_InvalidValues(t *testing.T) {
	s := Default()
	err := ApplyEnv(&s, envMap(map[string]string{
		"REFCHECK_VERBOSE":     "maybe",
		"REFCHECK_CONCURRENCY": "many",
		"REFCHECK_TIMEOUT":     "soon",
	}))
	require.Error(t, err)
	require.ErrorContains(t, err, "invalid environment variable")
	require.False(t, s.Verbose)
	require.Equal(t, 1, s.Concurrency)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("REFCHECK_DOTENV_A=from-file\nREFCHECK_DOTENV_B=from-file\n"), 0o600))

	t.Setenv("REFCHECK_DOTENV_B", "from-process")
	// Unset after the test so the loaded value does not leak.
	t.Setenv("REFCHECK_DOTENV_A", "")
	require.NoError(t, os.Unsetenv("REFCHECK_DOTENV_A"))

	loaded, err := LoadDotEnv(filepath.Join(dir, "missing.env"), envFile)
	require.NoError(t, err)
	require.Equal(t, []string{envFile}, loaded)
	require.Equal(t, "from-file", os.Getenv("REFCHECK_DOTENV_A"))
	require.Equal(t, "from-process", os.Getenv("REFCHECK_DOTENV_B"))
}
