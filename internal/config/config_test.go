package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate keeps the developer's real config files out of the test.
func isolate(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(NewViper())
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Depth)
	assert.Equal(t, 8, cfg.Concurrency)
	assert.Equal(t, "package.json", cfg.Manifest)
	assert.Equal(t, "node_modules", cfg.CacheDir)
	assert.Empty(t, cfg.Exclude)
	assert.False(t, cfg.Silent)
	assert.False(t, cfg.Interactive)
}

func TestLoad_EnvOverridesDefaults(t *testing.T) {
	isolate(t)
	t.Setenv("NMSWEEP_DEPTH", "5")
	t.Setenv("NMSWEEP_CONCURRENCY", "4")
	t.Setenv("NMSWEEP_CACHE_DIR", "vendor")
	t.Setenv("NMSWEEP_SILENT", "true")

	cfg, err := Load(NewViper())
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Depth)
	assert.Equal(t, 4, cfg.Concurrency)
	assert.Equal(t, "vendor", cfg.CacheDir)
	assert.True(t, cfg.Silent)
}

func TestLoad_ConfigFileInWorkingDir(t *testing.T) {
	isolate(t)
	body := "depth: 4\nmanifest: composer.json\ncache_dir: vendor\nexclude:\n  - .git\n  - \" dist \"\n"
	require.NoError(t, os.WriteFile("nmsweep.yaml", []byte(body), 0o644))

	cfg, err := Load(NewViper())
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Depth)
	assert.Equal(t, "composer.json", cfg.Manifest)
	assert.Equal(t, "vendor", cfg.CacheDir)
	assert.Equal(t, []string{".git", "dist"}, cfg.Exclude)
}

func TestLoad_ConfigFileInXDGDir(t *testing.T) {
	isolate(t)
	dir := filepath.Join(os.Getenv("XDG_CONFIG_HOME"), "nmsweep")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nmsweep.toml"), []byte("concurrency = 3\n"), 0o644))

	cfg, err := Load(NewViper())
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Concurrency)
}

func TestLoad_MalformedFile(t *testing.T) {
	isolate(t)
	require.NoError(t, os.WriteFile("nmsweep.yaml", []byte("depth: [oops\n"), 0o644))

	_, err := Load(NewViper())
	assert.Error(t, err)
}

func TestLoad_InvalidValues(t *testing.T) {
	isolate(t)
	t.Setenv("NMSWEEP_CONCURRENCY", "0")

	_, err := Load(NewViper())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "concurrency")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"depth zero", func(c *Config) { c.Depth = 0 }, ""},
		{"negative depth", func(c *Config) { c.Depth = -1 }, "depth"},
		{"zero concurrency", func(c *Config) { c.Concurrency = 0 }, "concurrency"},
		{"empty manifest", func(c *Config) { c.Manifest = "" }, "manifest"},
		{"nested cache dir", func(c *Config) { c.CacheDir = "a/node_modules" }, "cache_dir"},
		{"dot dot", func(c *Config) { c.CacheDir = ".." }, "cache_dir"},
		{"same names", func(c *Config) { c.CacheDir = "package.json" }, "differ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
