package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mini-analyst/analyst-cli/internal/view"
)

// newProfileCmd creates the 'profile' command: fetch the report for an
// existing session without re-uploading.
func newProfileCmd() *cobra.Command {
	var sessionID string

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Fetch the data-quality profile for an existing session",
		Long: `Fetch the profile report for a session created by a previous upload.

Example:
  analyst-cli profile --session-id 1f4c9a`,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := resolveToken()
			if err != nil {
				return describeTokenError(err)
			}

			client, err := getAPIClient()
			if err != nil {
				return err
			}

			profile, err := client.FetchProfile(GetContext(), token, sessionID)
			if err != nil {
				return err
			}

			view.Render(os.Stdout, view.RenderPayload{Kind: view.PayloadSchema, Schema: profile.ParsedSchema})
			view.Render(os.Stdout, view.RenderPayload{Kind: view.PayloadInsights, Profile: profile})
			return nil
		},
	}

	cmd.Flags().StringVar(&sessionID, "session-id", "", "Session identifier from a previous upload")
	_ = cmd.MarkFlagRequired("session-id")

	return cmd
}
