package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/artpar/reqpane/internal/input"
	"github.com/artpar/reqpane/internal/tui/vim"
)

// Format identifies the serialization format of a config file.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Environment variables read by ApplyEnv.
const (
	EnvConfigDir = "REQPANE_CONFIG_DIR"
	EnvTimeout   = "REQPANE_TIMEOUT"
	EnvLogFile   = "REQPANE_LOG_FILE"
	EnvTrace     = "REQPANE_TRACE"
	EnvInsecure  = "REQPANE_INSECURE"
)

// Source describes where the config was loaded from. Path is empty when no
// file was found.
type Source struct {
	Path   string
	Format Format
}

// Config is the user configuration.
type Config struct {
	Timeout         Duration            `yaml:"timeout"          toml:"timeout"`
	FollowRedirects bool                `yaml:"follow_redirects" toml:"follow_redirects"`
	Insecure        bool                `yaml:"insecure"         toml:"insecure"`
	Cookies         bool                `yaml:"cookies"          toml:"cookies"`
	LogFile         string              `yaml:"log_file"         toml:"log_file"`
	Trace           bool                `yaml:"trace"            toml:"trace"`
	Highlight       bool                `yaml:"highlight"        toml:"highlight"`
	HighlightStyle  string              `yaml:"highlight_style"  toml:"highlight_style"`
	UserAgent       string              `yaml:"user_agent"       toml:"user_agent"`
	Keys            map[string][]string `yaml:"keys"             toml:"keys"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Timeout:         Duration(30 * time.Second),
		FollowRedirects: true,
		Cookies:         true,
		Highlight:       true,
		HighlightStyle:  "monokai",
	}
}

// Dir returns the directory searched for config files.
func Dir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "reqpane")
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "reqpane")
	}
	return filepath.Join(".", ".reqpane")
}

// Load reads the config file at path, or the first of config.yaml,
// config.yml and config.toml found in Dir when path is empty. Missing
// default files yield Default; a missing explicit path is an error. Values
// absent from the file keep their defaults.
func Load(path string) (Config, Source, error) {
	if path != "" {
		source := Source{Path: path, Format: formatFor(path)}
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, Source{}, fmt.Errorf("read config %q: %w", path, err)
		}
		cfg, err := decode(data, source.Format)
		if err != nil {
			return Config{}, Source{}, fmt.Errorf("parse config %q: %w", path, err)
		}
		return cfg, source, nil
	}

	dir := Dir()
	candidates := []Source{
		{Path: filepath.Join(dir, "config.yaml"), Format: FormatYAML},
		{Path: filepath.Join(dir, "config.yml"), Format: FormatYAML},
		{Path: filepath.Join(dir, "config.toml"), Format: FormatTOML},
	}

	var accumulated error
	for _, candidate := range candidates {
		data, err := os.ReadFile(candidate.Path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			accumulated = errors.Join(
				accumulated,
				fmt.Errorf("read config %q: %w", candidate.Path, err),
			)
			continue
		}

		cfg, err := decode(data, candidate.Format)
		if err != nil {
			return Config{}, Source{}, fmt.Errorf("parse config %q: %w", candidate.Path, err)
		}
		return cfg, candidate, nil
	}

	if accumulated != nil {
		return Config{}, Source{}, accumulated
	}
	return Default(), Source{}, nil
}

func formatFor(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

func decode(data []byte, format Format) (Config, error) {
	cfg := Default()
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, err
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, err
		}
	default:
		return Config{}, fmt.Errorf("unsupported config format %q", format)
	}
	return cfg, nil
}

// ApplyEnv overlays environment variables onto cfg. Every malformed value is
// reported; well-formed ones are still applied.
func ApplyEnv(cfg Config, getenv func(string) string) (Config, error) {
	var errs error

	if v := getenv(EnvTimeout); v != "" {
		d, err := parseDuration(v)
		if err != nil {
			errs = errors.Join(errs, fmt.Errorf("%s: %w", EnvTimeout, err))
		} else {
			cfg.Timeout = d
		}
	}
	if v := getenv(EnvLogFile); v != "" {
		cfg.LogFile = v
	}
	if v := getenv(EnvTrace); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = errors.Join(errs, fmt.Errorf("%s: %w", EnvTrace, err))
		} else {
			cfg.Trace = b
		}
	}
	if v := getenv(EnvInsecure); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = errors.Join(errs, fmt.Errorf("%s: %w", EnvInsecure, err))
		} else {
			cfg.Insecure = b
		}
	}

	return cfg, errs
}

// ApplyKeys rebinds every action named in the keys section. Actions are
// applied in name order so conflicts are reported deterministically.
func (c Config) ApplyKeys(km *vim.KeyMap) error {
	names := make([]string, 0, len(c.Keys))
	for name := range c.Keys {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		keyNames := c.Keys[name]
		keys := make([]input.Key, 0, len(keyNames))
		for _, keyName := range keyNames {
			k, err := input.Parse(keyName)
			if err != nil {
				return fmt.Errorf("keys.%s: %w", name, err)
			}
			keys = append(keys, k)
		}
		if err := km.Rebind(vim.Action(name), keys); err != nil {
			return fmt.Errorf("keys.%s: %w", name, err)
		}
	}
	return nil
}

// Duration is a time.Duration written as a Go duration string ("30s").
// Bare integers are read as seconds.
type Duration time.Duration

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := parseDuration(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	return d.UnmarshalText([]byte(node.Value))
}

func parseDuration(s string) (Duration, error) {
	s = strings.TrimSpace(s)
	if secs, err := strconv.Atoi(s); err == nil {
		if secs < 0 {
			return 0, fmt.Errorf("negative duration %q", s)
		}
		return Duration(time.Duration(secs) * time.Second), nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	if parsed < 0 {
		return 0, fmt.Errorf("negative duration %q", s)
	}
	return Duration(parsed), nil
}
