// Package config loads fjscene settings from an optional TOML file and the
// environment.
//
// Example file:
//
//	renderer = "scene"
//	library_path_env = "FJ_LIBRARY_PATH"
//	timeout = "30m"
//	workspace_root = "/var/tmp"
//
//	[converters]
//	hdr2mip = "/opt/fujiyama/bin/hdr2mip"
//
// Every field is optional; zero values fall back to the defaults below.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/fjscene/pkg/errors"
)

const (
	// DefaultRenderer is the renderer executable that reads the protocol.
	DefaultRenderer = "scene"

	// DefaultLibraryPathEnv names the variable holding the renderer's
	// native library directory.
	DefaultLibraryPathEnv = "FJ_LIBRARY_PATH"

	// appName is used for the config directory.
	appName = "fjscene"
)

// Duration is a time.Duration that decodes from TOML strings like "90s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// Config holds settings for building and running scenes.
type Config struct {
	// Renderer is the executable fed the protocol on stdin.
	Renderer string `toml:"renderer"`

	// LibraryPathEnv names the environment variable read for LibraryPath.
	LibraryPathEnv string `toml:"library_path_env"`

	// LibraryPath overrides the environment variable when set.
	LibraryPath string `toml:"library_path"`

	// Timeout bounds each subprocess. Zero waits forever.
	Timeout Duration `toml:"timeout"`

	// WorkspaceRoot is the parent of scratch directories.
	WorkspaceRoot string `toml:"workspace_root"`

	// Converters maps converter names to executables.
	Converters map[string]string `toml:"converters"`
}

// Default returns the built-in configuration.
func Default() *Config {
	c := &Config{}
	c.SetDefaults()
	return c
}

// SetDefaults fills zero fields with defaults.
func (c *Config) SetDefaults() {
	if c.Renderer == "" {
		c.Renderer = DefaultRenderer
	}
	if c.LibraryPathEnv == "" {
		c.LibraryPathEnv = DefaultLibraryPathEnv
	}
	if c.Converters == nil {
		c.Converters = map[string]string{}
	}
}

// Validate checks the loaded values.
func (c *Config) Validate() error {
	if c.Timeout.Duration < 0 {
		return errors.New(errors.ErrCodeConfig, "timeout cannot be negative: %s", c.Timeout.Duration)
	}
	for name, bin := range c.Converters {
		if bin == "" {
			return errors.New(errors.ErrCodeConfig, "converter %q has an empty executable", name)
		}
	}
	return nil
}

// Load reads a TOML config file. Unknown keys are rejected so typos do not
// silently fall back to defaults.
func Load(path string) (*Config, error) {
	var c Config
	md, err := toml.DecodeFile(path, &c)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfig, err, "read %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeConfig, "%s: unknown key %q", path, undecoded[0].String())
	}
	c.SetDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadDefault loads path if set, otherwise the user config file if it
// exists, otherwise the built-in defaults.
func LoadDefault(path string) (*Config, error) {
	if path != "" {
		return Load(path)
	}
	p, err := UserPath()
	if err != nil {
		return Default(), nil
	}
	if _, err := os.Stat(p); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(p)
}

// UserPath returns the per-user config file location following XDG
// (~/.config/fjscene/config.toml).
func UserPath() (string, error) {
	if home := os.Getenv("XDG_CONFIG_HOME"); home != "" {
		return filepath.Join(home, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// ResolveLibraryPath returns LibraryPath if set, otherwise the value of
// LibraryPathEnv looked up with getenv. An empty result is a CONFIG error.
func (c *Config) ResolveLibraryPath(getenv func(string) string) (string, error) {
	if c.LibraryPath != "" {
		return c.LibraryPath, nil
	}
	if getenv == nil {
		getenv = os.Getenv
	}
	env := c.LibraryPathEnv
	if env == "" {
		env = DefaultLibraryPathEnv
	}
	if v := getenv(env); v != "" {
		return v, nil
	}
	return "", errors.New(errors.ErrCodeConfig, "%s environment variable is not set up properly", env)
}
