// Package config provides configuration and token management for analyst-cli.
package config

import (
	"strings"

	"github.com/mini-analyst/analyst-cli/internal/constants"
)

// Config holds the settings an API client needs. Built by the CLI layer from
// flags, the apiconfig INI file, and environment variables.
type Config struct {
	// API settings
	APIBaseURL string

	// Proxy settings
	ProxyMode     string // "no-proxy", "system", "basic", "ntlm"
	ProxyHost     string
	ProxyPort     int
	ProxyUser     string
	ProxyPassword string
	NoProxy       string // comma-separated hosts to bypass
}

// NewConfig returns a Config with defaults applied.
func NewConfig() *Config {
	return &Config{
		APIBaseURL: constants.DefaultAPIBaseURL,
		ProxyMode:  "no-proxy",
	}
}

// Load builds the effective Config. Flag values win over the apiconfig file,
// which wins over built-in defaults. An empty apiconfigPath means the default
// location; a missing file is not an error.
func Load(apiconfigPath, apiBaseURL string) (*Config, error) {
	cfg := NewConfig()

	apiCfg, err := LoadAPIConfig(apiconfigPath)
	if err != nil {
		return nil, err
	}
	if apiCfg.PlatformURL != "" {
		cfg.APIBaseURL = apiCfg.PlatformURL
	}
	cfg.ProxyMode = apiCfg.Proxy.Mode
	cfg.ProxyHost = apiCfg.Proxy.Host
	cfg.ProxyPort = apiCfg.Proxy.Port
	cfg.ProxyUser = apiCfg.Proxy.User
	cfg.ProxyPassword = apiCfg.Proxy.Password
	cfg.NoProxy = apiCfg.Proxy.NoProxy

	if apiBaseURL != "" {
		cfg.APIBaseURL = apiBaseURL
	}
	cfg.APIBaseURL = strings.TrimSuffix(cfg.APIBaseURL, "/")

	if cfg.ProxyMode == "" {
		cfg.ProxyMode = "no-proxy"
	}

	return cfg, nil
}
