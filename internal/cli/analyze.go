package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mini-analyst/analyst-cli/internal/view"
	"github.com/mini-analyst/analyst-cli/internal/workflow"
)

// newAnalyzeCmd creates the 'analyze' command, the main entry point: upload a
// dataset, profile it, and optionally train a model in one run.
func newAnalyzeCmd() *cobra.Command {
	var (
		viewMode    string
		trainAfter  bool
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "analyze <dataset.csv>",
		Short: "Upload a dataset and view its data-quality profile",
		Long: `Upload a tabular dataset to the backend and fetch its profile report.
Profiling runs automatically after a successful upload; training only runs
when requested with --train or from the interactive panel.

Examples:
  analyst-cli analyze churn.csv
  analyst-cli analyze churn.csv --view insights
  analyst-cli analyze churn.csv --train
  analyst-cli analyze churn.csv --interactive`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			coord, err := newCoordinator()
			if err != nil {
				return err
			}

			ctx := GetContext()
			if err := coord.StartAnalysis(ctx, args[0]); err != nil {
				return describeWorkflowError(err)
			}

			if interactive {
				return runSessionPanel(coord)
			}

			if viewMode != "" {
				mode, err := view.ParseMode(viewMode)
				if err != nil {
					return err
				}
				if trainAfter {
					fmt.Println("Training model...")
					if err := coord.Train(ctx); err != nil {
						return describeWorkflowError(err)
					}
				}
				view.Render(os.Stdout, view.Select(mode, coord.Snapshot()))
				return nil
			}

			snap := coord.Snapshot()
			fmt.Printf("Session: %s\n\n", snap.SessionID)
			view.Render(os.Stdout, view.Select(view.ModeSchema, snap))
			fmt.Println()
			view.Render(os.Stdout, view.Select(view.ModeInsights, snap))

			if trainAfter {
				fmt.Println("\nTraining model...")
				if err := coord.Train(ctx); err != nil {
					return describeWorkflowError(err)
				}
				fmt.Println()
				view.Render(os.Stdout, view.Select(view.ModeTrain, coord.Snapshot()))
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&viewMode, "view", "", "Render a single view: schema, insights, or train")
	cmd.Flags().BoolVar(&trainAfter, "train", false, "Train a model after profiling completes")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Open the interactive session panel")

	return cmd
}

// newCoordinator wires the credential gate and API stages into a workflow
// coordinator and checks the gate once up front.
func newCoordinator() (*workflow.Coordinator, error) {
	client, err := getAPIClient()
	if err != nil {
		return nil, err
	}

	coord := workflow.New(credentialGate(), newAPIStages(client))
	if err := coord.Enter(); err != nil {
		return nil, describeWorkflowError(err)
	}
	return coord, nil
}

// describeWorkflowError maps workflow sentinels to actionable messages.
func describeWorkflowError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, workflow.ErrBlocked):
		return fmt.Errorf("no API token found: pass --token, --token-file, or set ANALYST_TOKEN (register an account with 'analyst-cli register')")
	case errors.Is(err, workflow.ErrNoFileSelected):
		return fmt.Errorf("dataset file not found: %w", err)
	case errors.Is(err, workflow.ErrNotReady):
		return fmt.Errorf("no active session to train on: upload a dataset first")
	case errors.Is(err, workflow.ErrStageInFlight):
		return fmt.Errorf("another stage is still in flight, wait for it to settle")
	default:
		return err
	}
}

// runSessionPanel drives the interactive menu loop over one workflow session.
func runSessionPanel(coord *workflow.Coordinator) error {
	ctx := GetContext()
	reader := bufio.NewReader(os.Stdin)

	for {
		snap := coord.Snapshot()
		fmt.Printf("\nSession %s  [%s]\n", snap.SessionID, snap.State)
		if snap.LastErr != nil {
			fmt.Printf("Last error: %v\n", snap.LastErr)
		}
		fmt.Println("  1. View schema")
		fmt.Println("  2. View insights")
		fmt.Println("  3. Train model")
		fmt.Println("  4. View training result")
		fmt.Println("  5. Analyze another dataset")
		fmt.Println("  6. Quit")
		fmt.Print("Choose [1-6]: ")

		input, err := reader.ReadString('\n')
		if err != nil {
			return err
		}

		switch strings.TrimSpace(input) {
		case "1":
			view.Render(os.Stdout, view.Select(view.ModeSchema, coord.Snapshot()))
		case "2":
			view.Render(os.Stdout, view.Select(view.ModeInsights, coord.Snapshot()))
		case "3":
			fmt.Println("Training model...")
			if err := coord.Train(ctx); err != nil {
				fmt.Fprintf(os.Stderr, "Training failed: %v\n", describeWorkflowError(err))
				continue
			}
			view.Render(os.Stdout, view.Select(view.ModeTrain, coord.Snapshot()))
		case "4":
			view.Render(os.Stdout, view.Select(view.ModeTrain, coord.Snapshot()))
		case "5":
			fmt.Print("Path to dataset: ")
			path, err := reader.ReadString('\n')
			if err != nil {
				return err
			}
			if err := coord.StartAnalysis(ctx, strings.TrimSpace(path)); err != nil {
				fmt.Fprintf(os.Stderr, "Analysis failed: %v\n", describeWorkflowError(err))
				continue
			}
			fmt.Printf("Session: %s\n", coord.Snapshot().SessionID)
		case "6":
			return nil
		default:
			fmt.Println("Invalid choice, please try again.")
		}
	}
}
