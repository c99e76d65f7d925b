package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAPIConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadAPIConfig(filepath.Join(t.TempDir(), "apiconfig"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000", cfg.PlatformURL)
	assert.Equal(t, "no-proxy", cfg.Proxy.Mode)
}

func TestAPIConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "apiconfig")

	cfg := NewAPIConfig()
	cfg.PlatformURL = "https://analyst.example.com"
	cfg.Proxy.Mode = "basic"
	cfg.Proxy.Host = "proxy.corp"
	cfg.Proxy.Port = 8080
	cfg.Proxy.User = "svc"
	cfg.Proxy.NoProxy = "localhost,127.0.0.1"

	require.NoError(t, SaveAPIConfig(cfg, path))

	loaded, err := LoadAPIConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "https://analyst.example.com", loaded.PlatformURL)
	assert.Equal(t, "basic", loaded.Proxy.Mode)
	assert.Equal(t, "proxy.corp", loaded.Proxy.Host)
	assert.Equal(t, 8080, loaded.Proxy.Port)
	assert.Equal(t, "svc", loaded.Proxy.User)
	assert.Equal(t, "localhost,127.0.0.1", loaded.Proxy.NoProxy)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestSaveAPIConfigDoesNotPersistProxyPassword(t *testing.T) {
	path := filepath.Join(t.TempDir(), "apiconfig")

	cfg := NewAPIConfig()
	cfg.Proxy.Mode = "ntlm"
	cfg.Proxy.Password = "hunter2"
	require.NoError(t, SaveAPIConfig(cfg, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hunter2")

	loaded, err := LoadAPIConfig(path)
	require.NoError(t, err)
	assert.Empty(t, loaded.Proxy.Password)
}

func TestLoadEffectiveConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "apiconfig")
	cfg := NewAPIConfig()
	cfg.PlatformURL = "https://analyst.example.com/"
	require.NoError(t, SaveAPIConfig(cfg, path))

	t.Run("flag overrides file", func(t *testing.T) {
		effective, err := Load(path, "http://override:9000")
		require.NoError(t, err)
		assert.Equal(t, "http://override:9000", effective.APIBaseURL)
	})

	t.Run("file value trimmed of trailing slash", func(t *testing.T) {
		effective, err := Load(path, "")
		require.NoError(t, err)
		assert.Equal(t, "https://analyst.example.com", effective.APIBaseURL)
	})
}
