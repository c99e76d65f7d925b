package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/term"

	"github.com/mini-analyst/analyst-cli/internal/api"
	"github.com/mini-analyst/analyst-cli/internal/models"
	"github.com/mini-analyst/analyst-cli/internal/progress"
	"github.com/mini-analyst/analyst-cli/internal/workflow"
)

// apiStages adapts the API client to the workflow's stage interface, adding
// terminal progress reporting to the upload.
type apiStages struct {
	client *api.Client
}

func newAPIStages(client *api.Client) *apiStages {
	return &apiStages{client: client}
}

func (s *apiStages) reporter() progress.Reporter {
	if quiet || !term.IsTerminal(int(os.Stderr.Fd())) {
		return progress.NewNoOpProgress()
	}
	return progress.NewCLIProgress()
}

// Upload streams the dataset file to the backend, reporting bytes sent.
func (s *apiStages) Upload(ctx context.Context, cred workflow.Credential, filePath string) (*models.UploadResult, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat dataset: %w", err)
	}

	var body io.Reader = progress.NewProgressReader(f, info.Size(),
		fmt.Sprintf("Uploading %s", filepath.Base(filePath)), s.reporter())

	return s.client.UploadDataset(ctx, string(cred), filepath.Base(filePath), body)
}

// FetchProfile retrieves the data-quality report for a session.
func (s *apiStages) FetchProfile(ctx context.Context, cred workflow.Credential, sessionID string) (*models.Profile, error) {
	return s.client.FetchProfile(ctx, string(cred), sessionID)
}

// Train requests an AutoML run for a session.
func (s *apiStages) Train(ctx context.Context, cred workflow.Credential, sessionID string) (*models.TrainingResult, error) {
	return s.client.Train(ctx, string(cred), sessionID)
}
