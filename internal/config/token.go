package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mini-analyst/analyst-cli/internal/constants"
)

// ErrNoToken indicates no bearer token could be found in any source. The
// workflow treats this as its sole authorization failure: without a token the
// user is routed to registration/login instead of the workflow.
var ErrNoToken = errors.New("no API token found")

// ResolveToken returns a bearer token by checking sources in priority order.
// The token is issued by the backend's login flow and stored out-of-band; the
// CLI only reads it.
//
// Priority (highest to lowest):
//  1. Provided token parameter (e.g. from the --token flag)
//  2. Explicit token file (--token-file flag)
//  3. Default token file (~/.config/analyst/token) - created by 'config init'
//  4. ANALYST_TOKEN environment variable
//
// Returns empty string if no token is found in any source.
func ResolveToken(token, tokenFile string) string {
	resolved, _ := ResolveTokenSource(token, tokenFile)
	return resolved
}

// ResolveTokenSource returns the token and a label naming where it came from:
// "flag", "token-file", "default-token-file", or "environment". Used by
// 'config show' and --verbose output. Empty source means no token was found.
func ResolveTokenSource(token, tokenFile string) (string, string) {
	if token != "" {
		return token, "flag"
	}

	if tokenFile != "" {
		if key, err := ReadTokenFile(tokenFile); err == nil && key != "" {
			return key, "token-file"
		}
	}

	if path := DefaultTokenPath(); path != "" {
		if key, err := ReadTokenFile(path); err == nil && key != "" {
			return key, "default-token-file"
		}
	}

	if envKey := os.Getenv(constants.EnvToken); envKey != "" {
		return envKey, "environment"
	}

	return "", ""
}

// DefaultTokenPath returns ~/.config/analyst/token, or "" if the config
// directory cannot be determined.
func DefaultTokenPath() string {
	dir := configDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "token")
}

// ReadTokenFile reads a bearer token from a file. The file should contain
// only the token; surrounding whitespace is trimmed. Warns when the file is
// readable by group or others.
func ReadTokenFile(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("failed to stat token file: %w", err)
	}

	if mode := info.Mode().Perm(); mode&0077 != 0 {
		fmt.Fprintf(os.Stderr, "Warning: token file %s has insecure permissions %04o, consider 'chmod 600 %s'\n", path, mode, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read token file: %w", err)
	}

	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", fmt.Errorf("token file is empty")
	}
	return token, nil
}

// WriteTokenFile stores a token with owner-only permissions, creating the
// config directory if needed.
func WriteTokenFile(path, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("cannot write empty token")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}

	if err := os.WriteFile(path, []byte(token+"\n"), 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}

	return nil
}

// configDir returns ~/.config/analyst (or the platform equivalent via
// os.UserConfigDir).
func configDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		return filepath.Join(home, ".config", constants.ConfigDir)
	}
	return filepath.Join(dir, constants.ConfigDir)
}
