package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/ini.v1"

	"github.com/mini-analyst/analyst-cli/internal/constants"
)

// APIConfig is the persisted configuration file, written by 'config init'.
//
// Config file location:
//   - Unix: ~/.config/analyst/apiconfig
//   - Windows: %APPDATA%\analyst\apiconfig
//
// INI format:
//
//	[analyst]
//	platform_url = http://localhost:8000
//
//	[proxy]
//	mode = no-proxy
//	host =
//	port = 0
//	user =
//	no_proxy =
type APIConfig struct {
	PlatformURL string `ini:"platform_url"`

	Proxy ProxyConfig `ini:"-"`
}

// ProxyConfig mirrors the [proxy] section. The password is deliberately not
// persisted; it is prompted for or taken from the environment.
type ProxyConfig struct {
	Mode     string `ini:"mode"` // "no-proxy", "system", "basic", "ntlm"
	Host     string `ini:"host"`
	Port     int    `ini:"port"`
	User     string `ini:"user"`
	Password string `ini:"-"`
	NoProxy  string `ini:"no_proxy"`
}

// NewAPIConfig returns an APIConfig with default values.
func NewAPIConfig() *APIConfig {
	return &APIConfig{
		PlatformURL: constants.DefaultAPIBaseURL,
		Proxy: ProxyConfig{
			Mode: "no-proxy",
		},
	}
}

// DefaultAPIConfigPath returns the default apiconfig file location.
func DefaultAPIConfigPath() string {
	dir := configDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "apiconfig")
}

// LoadAPIConfig loads the INI file at path, or the default location when
// path is empty. A missing file yields defaults with no error; an existing
// but unparseable file is an error.
func LoadAPIConfig(path string) (*APIConfig, error) {
	cfg := NewAPIConfig()

	if path == "" {
		path = DefaultAPIConfigPath()
		if path == "" {
			return cfg, nil
		}
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	file, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse apiconfig %s: %w", path, err)
	}

	if err := file.Section("analyst").MapTo(cfg); err != nil {
		return nil, fmt.Errorf("failed to map [analyst] section: %w", err)
	}
	if err := file.Section("proxy").MapTo(&cfg.Proxy); err != nil {
		return nil, fmt.Errorf("failed to map [proxy] section: %w", err)
	}

	return cfg, nil
}

// SaveAPIConfig writes the config to path (default location when empty) with
// owner-only permissions.
func SaveAPIConfig(cfg *APIConfig, path string) error {
	if path == "" {
		path = DefaultAPIConfigPath()
		if path == "" {
			return fmt.Errorf("could not determine config directory")
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	file := ini.Empty()
	if err := file.Section("analyst").ReflectFrom(cfg); err != nil {
		return fmt.Errorf("failed to serialize [analyst] section: %w", err)
	}
	if err := file.Section("proxy").ReflectFrom(&cfg.Proxy); err != nil {
		return fmt.Errorf("failed to serialize [proxy] section: %w", err)
	}

	if err := file.SaveTo(path); err != nil {
		return fmt.Errorf("failed to write apiconfig: %w", err)
	}
	return os.Chmod(path, 0600)
}
