package config

import (
	stderrors "errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/refcheck/internal/foundation/errors"
)

// DefaultConfigFile is read from the working directory when present.
const DefaultConfigFile = ".refcheck.yaml"

// EnvPrefix prefixes every environment variable the settings read.
const EnvPrefix = "REFCHECK_"

// DefaultEnvFiles are loaded into the environment when present, first file winning.
var DefaultEnvFiles = []string{".env", ".env.local"}

// LoadFile overlays the YAML file at path onto s. Keys missing from the file keep their value.
// When optional is true a missing file is not an error. ${VAR} references are expanded.
func LoadFile(path string, s *Settings, optional bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && stderrors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return errors.WrapError(err, errors.CategoryConfig, "failed to read config file").
			WithContext("path", path).
			Fatal().
			Build()
	}

	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), s); err != nil {
		return errors.WrapError(err, errors.CategoryConfig, "failed to parse config file").
			WithContext("path", path).
			Fatal().
			Build()
	}
	return nil
}

// LoadDotEnv loads the existing files among paths into the process environment.
// Variables that are already set are not overridden. It returns the files it loaded.
func LoadDotEnv(paths ...string) ([]string, error) {
	var loaded []string
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return loaded, errors.WrapError(err, errors.CategoryConfig, "failed to load env file").
				WithContext("path", p).
				Build()
		}
		loaded = append(loaded, p)
	}
	return loaded, nil
}

// ApplyEnv overlays REFCHECK_* variables read through getenv onto s. NO_COLOR is honoured too.
func ApplyEnv(s *Settings, getenv func(string) string) error {
	env := func(name string) (string, bool) {
		v := strings.TrimSpace(getenv(EnvPrefix + name))
		return v, v != ""
	}

	var errs []error
	setBool := func(name string, dst *bool) {
		if v, ok := env(name); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, invalidEnv(name, v, err))
				return
			}
			*dst = b
		}
	}
	setList := func(name string, dst *[]string) {
		if v, ok := env(name); ok {
			*dst = splitList(v)
		}
	}
	setString := func(name string, dst *string) {
		if v, ok := env(name); ok {
			*dst = v
		}
	}

	setList("PATHS", &s.Paths)
	setList("EXCLUDE", &s.Exclude)
	setBool("CHECK_REMOTE", &s.CheckRemote)
	setBool("NO_COLOR", &s.NoColor)
	setBool("VERBOSE", &s.Verbose)
	setBool("ALLOW_ABSOLUTE", &s.AllowAbsolute)
	setString("FORMAT", &s.Format)
	setList("REMOTE_SCHEMES", &s.RemoteSchemes)
	setString("IGNORE_FILE", &s.IgnoreFile)
	setString("LOG_FILE", &s.LogFile)
	setString("METRICS_FILE", &s.MetricsFile)
	setString("NATS_URL", &s.NATSURL)
	setString("NATS_SUBJECT", &s.NATSSubject)

	if v, ok := env("TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, invalidEnv("TIMEOUT", v, err))
		} else {
			s.Timeout = d
		}
	}
	if v, ok := env("CONCURRENCY"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, invalidEnv("CONCURRENCY", v, err))
		} else {
			s.Concurrency = n
		}
	}

	if getenv("NO_COLOR") != "" {
		s.NoColor = true
	}
	return stderrors.Join(errs...)
}

func invalidEnv(name, value string, err error) error {
	return errors.WrapError(err, errors.CategoryConfig, "invalid environment variable").
		WithContext("name", EnvPrefix+name).
		WithContext("value", value).
		Build()
}

// splitList splits on commas and whitespace.
func splitList(v string) []string {
	return strings.FieldsFunc(v, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
}
