// Package cli provides configuration management commands.
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mini-analyst/analyst-cli/internal/config"
)

// newConfigCmd creates the 'config' command group.
func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage analyst-cli configuration",
		Long: `Configuration management commands for analyst-cli.

Commands:
  init  - Interactive configuration setup
  show  - Display current configuration
  path  - Show configuration file locations`,
	}

	configCmd.AddCommand(newConfigInitCmd())
	configCmd.AddCommand(newConfigShowCmd())
	configCmd.AddCommand(newConfigPathCmd())

	return configCmd
}

// newConfigInitCmd creates the 'config init' command.
func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration interactively",
		Long: `Interactive configuration setup for analyst-cli.

The configuration is saved to the apiconfig file in the user config
directory. Use --force to overwrite an existing configuration. The proxy
password and the API token are never written to this file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultAPIConfigPath()
			if path == "" {
				return fmt.Errorf("could not determine config directory")
			}

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("configuration already exists at %s (use --force to overwrite)", path)
			}

			cfg := config.NewAPIConfig()
			reader := bufio.NewReader(os.Stdin)

			fmt.Printf("Backend URL [%s]: ", cfg.PlatformURL)
			if line := readLine(reader); line != "" {
				cfg.PlatformURL = strings.TrimSuffix(line, "/")
			}

			fmt.Printf("Proxy mode (no-proxy, system, basic, ntlm) [%s]: ", cfg.Proxy.Mode)
			if line := readLine(reader); line != "" {
				switch line {
				case "no-proxy", "system", "basic", "ntlm":
					cfg.Proxy.Mode = line
				default:
					return fmt.Errorf("unknown proxy mode %q", line)
				}
			}

			if cfg.Proxy.Mode == "basic" || cfg.Proxy.Mode == "ntlm" {
				fmt.Print("Proxy host: ")
				cfg.Proxy.Host = readLine(reader)

				fmt.Print("Proxy port: ")
				if line := readLine(reader); line != "" {
					port, err := strconv.Atoi(line)
					if err != nil || port < 1 || port > 65535 {
						return fmt.Errorf("invalid proxy port %q", line)
					}
					cfg.Proxy.Port = port
				}

				fmt.Print("Proxy user: ")
				cfg.Proxy.User = readLine(reader)

				fmt.Print("Bypass proxy for (comma-separated hosts, optional): ")
				cfg.Proxy.NoProxy = readLine(reader)
			}

			if err := config.SaveAPIConfig(cfg, path); err != nil {
				return err
			}
			fmt.Printf("Configuration saved to %s\n", path)

			fmt.Print("API token (leave empty to skip): ")
			if token := readLine(reader); token != "" {
				tokenPath := config.DefaultTokenPath()
				if err := config.WriteTokenFile(tokenPath, token); err != nil {
					return fmt.Errorf("failed to save token: %w", err)
				}
				fmt.Printf("Token saved to %s\n", tokenPath)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")

	return cmd
}

// newConfigShowCmd creates the 'config show' command.
func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile, apiBaseURL)
			if err != nil {
				return err
			}

			fmt.Printf("Backend URL: %s\n", cfg.APIBaseURL)
			fmt.Printf("Proxy mode:  %s\n", cfg.ProxyMode)
			if cfg.ProxyMode == "basic" || cfg.ProxyMode == "ntlm" {
				fmt.Printf("Proxy:       %s@%s:%d\n", cfg.ProxyUser, cfg.ProxyHost, cfg.ProxyPort)
				if cfg.NoProxy != "" {
					fmt.Printf("No proxy:    %s\n", cfg.NoProxy)
				}
			}

			token, source := config.ResolveTokenSource(tokenFlag, tokenFile)
			if token == "" {
				fmt.Println("API token:   not set")
			} else {
				fmt.Printf("API token:   set (from %s)\n", source)
			}
			return nil
		},
	}
}

// newConfigPathCmd creates the 'config path' command.
func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show configuration file locations",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("apiconfig: %s\n", config.DefaultAPIConfigPath())
			fmt.Printf("token:     %s\n", config.DefaultTokenPath())
			return nil
		},
	}
}

func readLine(reader *bufio.Reader) string {
	line, err := reader.ReadString('\n')
	if err != nil {
		return ""
	}
	return strings.TrimSpace(line)
}
