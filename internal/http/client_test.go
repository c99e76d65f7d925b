package http

import (
	nethttp "net/http"
	"net/url"
	"testing"

	"github.com/mini-analyst/analyst-cli/internal/config"
)

func TestConfigureHTTPClientModes(t *testing.T) {
	tests := []struct {
		name      string
		mode      string
		host      string
		wantError bool
	}{
		{"no-proxy", "no-proxy", "", false},
		{"empty mode defaults to no-proxy", "", "", false},
		{"system", "system", "", false},
		{"basic with host", "basic", "proxy.corp", false},
		{"basic without host falls back", "basic", "", false},
		{"ntlm with host", "ntlm", "proxy.corp", false},
		{"unsupported mode", "socks5", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.NewConfig()
			cfg.ProxyMode = tt.mode
			cfg.ProxyHost = tt.host

			client, err := ConfigureHTTPClient(cfg)
			if tt.wantError {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if client == nil {
				t.Fatal("expected client, got nil")
			}
		})
	}
}

// TestProxyFuncWithBypass_EmptyNoProxy verifies an empty bypass list always
// routes through the proxy.
func TestProxyFuncWithBypass_EmptyNoProxy(t *testing.T) {
	proxyURL, _ := url.Parse("http://proxy.corp:8080")
	proxyFunc := proxyFuncWithBypass(proxyURL, "")

	req, _ := nethttp.NewRequest("GET", "https://api.example.com/data", nil)
	result, err := proxyFunc(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result == nil {
		t.Fatal("expected proxy URL, got nil (direct)")
	}
	if result.Host != "proxy.corp:8080" {
		t.Errorf("expected proxy host proxy.corp:8080, got %s", result.Host)
	}
}

// TestProxyFuncWithBypass_Domain verifies a bypass domain matches the root
// and its subdomains.
func TestProxyFuncWithBypass_Domain(t *testing.T) {
	proxyURL, _ := url.Parse("http://proxy.corp:8080")
	proxyFunc := proxyFuncWithBypass(proxyURL, "example.com")

	for _, target := range []string{"https://example.com/data", "https://api.example.com/data"} {
		req, _ := nethttp.NewRequest("GET", target, nil)
		result, err := proxyFunc(req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result != nil {
			t.Errorf("expected nil (bypass) for %s, got %v", target, result)
		}
	}
}

func TestNeedsProxyPassword(t *testing.T) {
	tests := []struct {
		name     string
		mode     string
		user     string
		password string
		want     bool
	}{
		{"no-proxy never needs password", "no-proxy", "svc", "", false},
		{"basic with user and no password", "basic", "svc", "", true},
		{"basic with full credentials", "basic", "svc", "secret", false},
		{"ntlm with user and no password", "ntlm", "svc", "", true},
		{"basic without user", "basic", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.NewConfig()
			cfg.ProxyMode = tt.mode
			cfg.ProxyUser = tt.user
			cfg.ProxyPassword = tt.password
			if got := NeedsProxyPassword(cfg); got != tt.want {
				t.Errorf("NeedsProxyPassword() = %v, want %v", got, tt.want)
			}
		})
	}
}
