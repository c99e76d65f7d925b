package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mini-analyst/analyst-cli/internal/config"
	"github.com/mini-analyst/analyst-cli/internal/models"
)

// newRegisterCmd creates the 'register' command: create a backend account
// and optionally save the issued token to the default token file.
func newRegisterCmd() *cobra.Command {
	var (
		username  string
		email     string
		saveToken string
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new account with the backend",
		Long: `Register a new account. The password is prompted for and never echoed.

After registering, obtain an API token from the backend and store it with
--save-token or the ANALYST_TOKEN environment variable.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			reader := bufio.NewReader(os.Stdin)

			if username == "" {
				fmt.Print("Username: ")
				line, err := reader.ReadString('\n')
				if err != nil {
					return err
				}
				username = strings.TrimSpace(line)
			}
			if email == "" {
				fmt.Print("Email: ")
				line, err := reader.ReadString('\n')
				if err != nil {
					return err
				}
				email = strings.TrimSpace(line)
			}
			if username == "" || email == "" {
				return fmt.Errorf("username and email are required")
			}

			password, err := readPassword("Password: ")
			if err != nil {
				return err
			}
			confirm, err := readPassword("Confirm password: ")
			if err != nil {
				return err
			}
			if password != confirm {
				return fmt.Errorf("passwords do not match")
			}
			if password == "" {
				return fmt.Errorf("password must not be empty")
			}

			client, err := getAPIClient()
			if err != nil {
				return err
			}

			err = client.Register(GetContext(), models.RegisterRequest{
				Username: username,
				Email:    email,
				Password: password,
			})
			if err != nil {
				return fmt.Errorf("registration failed: %w", err)
			}

			fmt.Printf("Account %q registered.\n", username)

			if saveToken != "" {
				path := config.DefaultTokenPath()
				if err := config.WriteTokenFile(path, saveToken); err != nil {
					return fmt.Errorf("failed to save token: %w", err)
				}
				fmt.Printf("Token saved to %s\n", path)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Account username (prompted if omitted)")
	cmd.Flags().StringVar(&email, "email", "", "Account email (prompted if omitted)")
	cmd.Flags().StringVar(&saveToken, "save-token", "", "Write this API token to the default token file after registering")

	return cmd
}

// readPassword reads a password without echo when stdin is a terminal, and
// falls back to a plain line read otherwise (pipes, CI).
func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	if term.IsTerminal(int(os.Stdin.Fd())) {
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(raw)), nil
	}

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
