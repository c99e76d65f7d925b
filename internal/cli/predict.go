package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mini-analyst/analyst-cli/internal/models"
)

// newPredictCmd creates the 'predict' command: run the session's trained
// model over a batch of input rows supplied as JSON.
func newPredictCmd() *cobra.Command {
	var sessionID string
	var inputPath string

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Run the trained model over a batch of input rows",
		Long: `Run the model trained for a session over input rows and print one
prediction per row.

Inputs are a JSON array of objects, one object per row, keyed by column
name. Read from a file with --input, or from stdin when --input is '-'
or omitted.

Example:
  analyst-cli predict --session-id 1f4c9a --input rows.json
  echo '[{"age": 42, "income": 51000}]' | analyst-cli predict --session-id 1f4c9a`,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := resolveToken()
			if err != nil {
				return describeTokenError(err)
			}

			inputs, err := readPredictionInputs(inputPath)
			if err != nil {
				return err
			}

			client, err := getAPIClient()
			if err != nil {
				return err
			}

			predictions, err := client.Predict(GetContext(), token, sessionID, inputs)
			if err != nil {
				return err
			}

			for i, p := range predictions {
				fmt.Printf("Row %d: %v\n", i+1, p)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sessionID, "session-id", "", "Session identifier from a previous training run")
	cmd.Flags().StringVar(&inputPath, "input", "", "Path to a JSON array of input rows ('-' or empty reads stdin)")
	_ = cmd.MarkFlagRequired("session-id")

	return cmd
}

// readPredictionInputs decodes the input rows from a file, or from stdin
// when path is empty or '-'.
func readPredictionInputs(path string) ([]models.PredictionRow, error) {
	var r io.Reader = os.Stdin
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open input file: %w", err)
		}
		defer f.Close()
		r = f
	}

	var inputs []models.PredictionRow
	if err := json.NewDecoder(r).Decode(&inputs); err != nil {
		return nil, fmt.Errorf("failed to parse input rows: %w", err)
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("no input rows provided")
	}

	return inputs, nil
}
