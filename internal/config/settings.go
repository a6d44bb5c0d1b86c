package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Settings represents the tagjs.yaml configuration.
type Settings struct {
	// Timeout interrupts a running program after the given duration
	// (e.g. "2s", "500ms"). Empty means no limit.
	Timeout string `yaml:"timeout,omitempty"`

	// PrintConverted echoes the converted text to stderr before running it.
	PrintConverted bool `yaml:"print_converted,omitempty"`

	// OutputExt is the extension used when writing converted files.
	// Defaults to ".js".
	OutputExt string `yaml:"output_ext,omitempty"`

	// Globals lists extra global names bound to the print function.
	// Defaults to ["print"]. console.log is always bound.
	Globals []string `yaml:"globals,omitempty"`

	timeout time.Duration
}

// DefaultSettings returns the settings used when no tagjs.yaml is found.
func DefaultSettings() *Settings {
	s := &Settings{}
	s.setDefaults()
	return s
}

// LoadSettings reads and parses a tagjs.yaml file.
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading config %s", path)
	}
	return ParseSettings(data, path)
}

// ParseSettings parses tagjs.yaml content from bytes.
// The path argument is used only for error messages.
func ParseSettings(data []byte, path string) (*Settings, error) {
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	if err := s.validate(path); err != nil {
		return nil, err
	}
	s.setDefaults()
	return &s, nil
}

// FindSettings searches for tagjs.yaml starting from dir and walking up
// to parent directories. Returns an empty path and nil error if none exists.
func FindSettings(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.Wrap(err, "resolving directory")
	}

	for {
		for _, name := range SettingsFileNames {
			candidate := filepath.Join(dir, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// ResolveSettings loads the nearest tagjs.yaml above dir, falling back to
// DefaultSettings when there is none.
func ResolveSettings(dir string) (*Settings, error) {
	path, err := FindSettings(dir)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return DefaultSettings(), nil
	}
	return LoadSettings(path)
}

// TimeoutDuration returns the parsed timeout, or zero when unset.
func (s *Settings) TimeoutDuration() time.Duration {
	return s.timeout
}

func (s *Settings) validate(path string) error {
	if s.Timeout != "" {
		d, err := time.ParseDuration(s.Timeout)
		if err != nil {
			return errors.Wrapf(err, "%s: timeout %q", path, s.Timeout)
		}
		if d < 0 {
			return errors.Errorf("%s: timeout %q must not be negative", path, s.Timeout)
		}
		s.timeout = d
	}

	if s.OutputExt != "" && !strings.HasPrefix(s.OutputExt, ".") {
		return errors.Errorf("%s: output_ext %q must start with '.'", path, s.OutputExt)
	}

	for i, name := range s.Globals {
		if !identifierRegex.MatchString(name) {
			return errors.Errorf("%s: globals[%d]: %q is not an identifier", path, i, name)
		}
	}

	return nil
}

func (s *Settings) setDefaults() {
	if s.OutputExt == "" {
		s.OutputExt = DefaultOutputExt
	}
	if len(s.Globals) == 0 {
		s.Globals = []string{PrintFuncName}
	}
}
