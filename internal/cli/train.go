package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mini-analyst/analyst-cli/internal/view"
)

// newTrainCmd creates the 'train' command: request an AutoML run for an
// existing session without re-uploading.
func newTrainCmd() *cobra.Command {
	var sessionID string

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train a baseline model for an existing session",
		Long: `Request an AutoML training run for a session created by a previous upload.
The backend picks the model type; metrics and feature importances are
printed when training finishes. Re-running overwrites the prior model.

Example:
  analyst-cli train --session-id 1f4c9a`,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := resolveToken()
			if err != nil {
				return describeTokenError(err)
			}

			client, err := getAPIClient()
			if err != nil {
				return err
			}

			fmt.Println("Training model...")
			result, err := client.Train(GetContext(), token, sessionID)
			if err != nil {
				return err
			}

			view.Render(os.Stdout, view.RenderPayload{Kind: view.PayloadTrainingResult, Result: result})
			return nil
		},
	}

	cmd.Flags().StringVar(&sessionID, "session-id", "", "Session identifier from a previous upload")
	_ = cmd.MarkFlagRequired("session-id")

	return cmd
}
