// Package cli provides the command-line interface for analyst-cli.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mini-analyst/analyst-cli/internal/logging"
	"github.com/mini-analyst/analyst-cli/internal/version"
)

var (
	// Global flags
	cfgFile    string
	tokenFlag  string
	tokenFile  string // Path to file containing the API token
	apiBaseURL string
	verbose    bool
	debug      bool
	quiet      bool

	// Global logger
	logger *logging.Logger

	// Global context for signal handling
	rootContext context.Context
	cancelFunc  context.CancelFunc
)

// NewRootCmd creates the root command for CLI mode. Version information
// comes from the version package, the canonical source set by main at
// startup.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "analyst-cli",
		Short: "Mini AI Analyst - dataset profiling and AutoML from the terminal",
		Long: `Mini AI Analyst ` + version.Version + ` - Built: ` + version.BuildTime + `
Upload a tabular dataset, review its data-quality profile, and train a
baseline model against the Mini AI Analyst backend.

Typical flow:
  analyst-cli analyze churn.csv            Upload and profile a dataset
  analyst-cli analyze churn.csv --train    Same, then train a model
  analyst-cli analyze churn.csv -i         Interactive session panel

The API token is read from --token, --token-file, the default token file,
or the ANALYST_TOKEN environment variable, in that order.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Initialize logger
			logger = logging.NewDefaultCLILogger()
			if verbose || debug {
				logging.SetGlobalLevel(zerolog.DebugLevel)
			}
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&tokenFlag, "token", "", "API token (overrides all other sources)")
	rootCmd.PersistentFlags().StringVar(&tokenFile, "token-file", "", "Path to file containing the API token")
	rootCmd.PersistentFlags().StringVar(&apiBaseURL, "api-url", "", "Backend base URL (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output (shows debug messages)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug output (same as --verbose)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress progress bars")

	rootCmd.Version = version.Version + " (" + version.BuildTime + ")"

	return rootCmd
}

// Execute runs the CLI.
func Execute() error {
	// Create a context that can be cancelled by signals
	rootContext, cancelFunc = context.WithCancel(context.Background())

	// Set up signal handling for graceful cancellation
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		for sig := range sigChan {
			if sig != nil {
				fmt.Fprintf(os.Stderr, "\nReceived signal %v, cancelling...\n", sig)
				cancelFunc()
			}
		}
	}()

	rootCmd := NewRootCmd()
	AddCommands(rootCmd)
	err := rootCmd.Execute()

	// Clean up signal handler
	signal.Stop(sigChan)
	close(sigChan)

	return err
}

// AddCommands adds all subcommands to the root command.
func AddCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(newAnalyzeCmd())
	rootCmd.AddCommand(newProfileCmd())
	rootCmd.AddCommand(newTrainCmd())
	rootCmd.AddCommand(newPredictCmd())
	rootCmd.AddCommand(newRegisterCmd())
	rootCmd.AddCommand(newConfigCmd())
}

// GetLogger returns the global CLI logger.
func GetLogger() *logging.Logger {
	if logger == nil {
		logger = logging.NewDefaultCLILogger()
	}
	return logger
}

// GetContext returns the global CLI context with signal handling.
// This context will be cancelled when the user presses Ctrl+C.
func GetContext() context.Context {
	if rootContext == nil {
		// Fallback to background context if called before Execute()
		return context.Background()
	}
	return rootContext
}
