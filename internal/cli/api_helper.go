// Package cli provides API client helper functions.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/mini-analyst/analyst-cli/internal/api"
	"github.com/mini-analyst/analyst-cli/internal/config"
	"github.com/mini-analyst/analyst-cli/internal/constants"
	internalhttp "github.com/mini-analyst/analyst-cli/internal/http"
	"github.com/mini-analyst/analyst-cli/internal/workflow"
)

// loadConfig resolves the effective configuration from the --config and
// --api-url global flags. A proxy password, when required, comes from the
// environment or an interactive prompt; it is never read from the file.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile, apiBaseURL)
	if err != nil {
		return nil, err
	}

	if internalhttp.NeedsProxyPassword(cfg) {
		if pw := os.Getenv(constants.EnvProxyPassword); pw != "" {
			cfg.ProxyPassword = pw
		} else {
			pw, err := readPassword(fmt.Sprintf("Proxy password for %s@%s: ", cfg.ProxyUser, cfg.ProxyHost))
			if err != nil {
				return nil, fmt.Errorf("failed to read proxy password: %w", err)
			}
			cfg.ProxyPassword = pw
		}
	}

	return cfg, nil
}

// getAPIClient loads configuration and creates an API client.
// This is the standard way to get an API client in CLI commands.
func getAPIClient() (*api.Client, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	client, err := api.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}

	return client, nil
}

// credentialGate builds the workflow gate from the --token and --token-file
// global flags plus the default token sources. Re-evaluated on every check so
// a token removed mid-session blocks the next action.
func credentialGate() workflow.Gate {
	return workflow.GateFunc(func() (workflow.Credential, error) {
		token, source := config.ResolveTokenSource(tokenFlag, tokenFile)
		if token == "" {
			return "", config.ErrNoToken
		}
		GetLogger().Debug().Str("source", source).Msg("API token resolved")
		return workflow.Credential(token), nil
	})
}

// resolveToken is the single-shot variant for commands that talk to the API
// directly without going through the workflow coordinator.
func resolveToken() (string, error) {
	token := config.ResolveToken(tokenFlag, tokenFile)
	if token == "" {
		return "", config.ErrNoToken
	}
	return token, nil
}

// describeTokenError turns the missing-token sentinel into an actionable
// message.
func describeTokenError(err error) error {
	if errors.Is(err, config.ErrNoToken) {
		return fmt.Errorf("no API token found: pass --token, --token-file, or set ANALYST_TOKEN (register an account with 'analyst-cli register')")
	}
	return err
}
