package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setTestHome points HOME at a fresh temp dir so the allowed-directory
// check accepts files the test writes. Symlinks are resolved up front
// because validateConfigPath compares resolved paths.
func setTestHome(t *testing.T) string {
	t.Helper()
	home, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	t.Setenv("HOME", home)
	return home
}

func writeConfig(t *testing.T, content string, perm os.FileMode) string {
	t.Helper()
	home := setTestHome(t)
	dir := filepath.Join(home, ".config", "verdant")
	require.NoError(t, os.MkdirAll(dir, 0700))
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), perm))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	setTestHome(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.Equal(t, "private", cfg.Insights.DefaultMode)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.Gemini.APIKey)
}

func TestLoad_FromFile(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9001
store:
  driver: sqlite
  path: /tmp/verdant.db
gemini:
  api_key: file-key
  model: gemini-pro
insights:
  default_mode: gemini
log:
  level: debug
`, 0600)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9001, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "/tmp/verdant.db", cfg.Store.Path)
	assert.Equal(t, "file-key", cfg.Gemini.APIKey)
	assert.Equal(t, "gemini-pro", cfg.Gemini.Model)
	assert.Equal(t, "gemini", cfg.Insights.DefaultMode)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 9001\n", 0600)
	t.Setenv("VERDANT_SERVER_PORT", "9002")
	t.Setenv("VERDANT_GEMINI_API_KEY", "env-key")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9002, cfg.Server.Port)
	assert.Equal(t, "env-key", cfg.Gemini.APIKey)
}

func TestLoad_RejectsWorldReadableFile(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 9001\n", 0644)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insecure config file permissions")
}

func TestLoad_RejectsMalformedYAML(t *testing.T) {
	path := writeConfig(t, "server: [not a map", 0600)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_RejectsPathOutsideAllowedDirs(t *testing.T) {
	setTestHome(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 9001\n"), 0600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file must be in")
}

func TestValidateConfigPath(t *testing.T) {
	home := setTestHome(t)

	tests := []struct {
		name    string
		path    string
		allowed bool
	}{
		{"home config", filepath.Join(home, ".config", "verdant", "config.yaml"), true},
		{"home config subdir", filepath.Join(home, ".config", "verdant", "prod", "config.yaml"), true},
		{"nonexistent in allowed dir", filepath.Join(home, ".config", "verdant", "missing.yaml"), true},
		{"etc config", "/etc/verdant/config.yaml", true},
		{"system file", "/etc/passwd", false},
		{"tmp file", "/tmp/config.yaml", false},
		{"sibling config dir", filepath.Join(home, ".config", "other", "config.yaml"), false},
		{"traversal escape", filepath.Join(home, ".config", "verdant", "..", "..", "..", "etc", "passwd"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateConfigPath(tt.path)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		var cfg Config
		applyDefaults(&cfg)
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid defaults", func(*Config) {}, ""},
		{"bad port", func(c *Config) { c.Server.Port = -1 }, "invalid server port"},
		{"bad driver", func(c *Config) { c.Store.Driver = "postgres" }, "unknown store driver"},
		{"sqlite without path", func(c *Config) { c.Store.Driver = "sqlite" }, "store path required"},
		{"bad mode", func(c *Config) { c.Insights.DefaultMode = "public" }, "unknown insights mode"},
		{"bad level", func(c *Config) { c.Log.Level = "verbose" }, "unknown log level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
