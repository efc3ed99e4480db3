// Package config loads nmsweep settings. Sources are layered, lowest first:
// built-in defaults, an optional config file, NMSWEEP_* environment variables,
// and command-line flags bound by the cmd package.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/lakshaymaurya-felt/nmsweep/internal/purge"
)

const (
	// DefaultDepth is how many path segments below the root a manifest may sit.
	DefaultDepth = 2

	// DefaultManifest identifies a project directory.
	DefaultManifest = "package.json"

	// DefaultCacheDir is the dependency cache removed from each project.
	DefaultCacheDir = "node_modules"

	envPrefix  = "NMSWEEP"
	configName = "nmsweep"
)

// Keys shared by defaults, env bindings, and flag bindings.
const (
	KeyDepth       = "depth"
	KeyConcurrency = "concurrency"
	KeyManifest    = "manifest"
	KeyCacheDir    = "cache_dir"
	KeyExclude     = "exclude"
	KeySilent      = "silent"
	KeyInteractive = "interactive"
	KeyPlain       = "plain"
	KeyDebug       = "debug"
)

// Config is the resolved set of options for one run.
type Config struct {
	// Depth bounds the walk; the root is depth 0.
	Depth int `mapstructure:"depth"`

	// Concurrency is the number of deletions allowed in flight.
	Concurrency int `mapstructure:"concurrency"`

	// Manifest is the file name marking a project directory.
	Manifest string `mapstructure:"manifest"`

	// CacheDir is the directory name deleted inside each project.
	CacheDir string `mapstructure:"cache_dir"`

	// Exclude lists directory names (case-insensitive) never descended into.
	Exclude []string `mapstructure:"exclude"`

	Silent      bool `mapstructure:"silent"`
	Interactive bool `mapstructure:"interactive"`
	Plain       bool `mapstructure:"plain"`
	Debug       bool `mapstructure:"debug"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Depth:       DefaultDepth,
		Concurrency: purge.DefaultConcurrency,
		Manifest:    DefaultManifest,
		CacheDir:    DefaultCacheDir,
	}
}

// NewViper returns a viper instance with defaults, config search paths, and
// environment bindings in place. Flags are bound by the caller.
func NewViper() *viper.Viper {
	v := viper.New()

	d := Default()
	v.SetDefault(KeyDepth, d.Depth)
	v.SetDefault(KeyConcurrency, d.Concurrency)
	v.SetDefault(KeyManifest, d.Manifest)
	v.SetDefault(KeyCacheDir, d.CacheDir)
	v.SetDefault(KeyExclude, []string{})
	v.SetDefault(KeySilent, false)
	v.SetDefault(KeyInteractive, false)
	v.SetDefault(KeyPlain, false)
	v.SetDefault(KeyDebug, false)

	v.SetConfigName(configName)
	v.AddConfigPath(".")
	for _, dir := range configDirs() {
		v.AddConfigPath(dir)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads the optional config file and returns the validated result.
// A missing config file is not an error; the file is never created.
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config %s: %w", v.ConfigFileUsed(), err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	normalize(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks the invariants the rest of the program relies on.
func (c *Config) Validate() error {
	if c.Depth < 0 {
		return fmt.Errorf("depth must be >= 0, got %d", c.Depth)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be >= 1, got %d", c.Concurrency)
	}
	if err := validateName("manifest", c.Manifest); err != nil {
		return err
	}
	if err := validateName("cache_dir", c.CacheDir); err != nil {
		return err
	}
	if strings.EqualFold(c.Manifest, c.CacheDir) {
		return fmt.Errorf("manifest and cache_dir must differ, both are %q", c.Manifest)
	}
	return nil
}

// validateName rejects anything that is not a single path element.
func validateName(field, name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%s must not be empty", field)
	case name == "." || name == "..":
		return fmt.Errorf("%s must not be %q", field, name)
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("%s must be a plain name, got %q", field, name)
	}
	return nil
}

func normalize(c *Config) {
	c.Manifest = strings.TrimSpace(c.Manifest)
	c.CacheDir = strings.TrimSpace(c.CacheDir)

	exclude := c.Exclude[:0]
	for _, e := range c.Exclude {
		if e = strings.TrimSpace(e); e != "" {
			exclude = append(exclude, e)
		}
	}
	c.Exclude = exclude
}

// configDirs returns the per-user directories searched for nmsweep.{yaml,toml,json}.
func configDirs() []string {
	var dirs []string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		dirs = append(dirs, filepath.Join(xdg, configName))
	}
	if dir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(dir, configName))
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".config", configName))
	}
	return dirs
}
