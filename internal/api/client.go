package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	nethttp "net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog/log"

	"github.com/mini-analyst/analyst-cli/internal/config"
	"github.com/mini-analyst/analyst-cli/internal/constants"
	"github.com/mini-analyst/analyst-cli/internal/http"
	"github.com/mini-analyst/analyst-cli/internal/models"
	"github.com/mini-analyst/analyst-cli/internal/version"
)

// userAgent identifies the client on every request.
func userAgent() string {
	return constants.AppName + "/" + version.Version
}

// retryLogger adapts zerolog to the retryablehttp.LeveledLogger interface.
// Only warnings and errors are surfaced; retry chatter stays at debug.
type retryLogger struct{}

func (l *retryLogger) Error(msg string, keysAndValues ...interface{}) {
	log.Error().Msgf("[retry] %s %v", msg, keysAndValues)
}

func (l *retryLogger) Warn(msg string, keysAndValues ...interface{}) {
	log.Warn().Msgf("[retry] %s %v", msg, keysAndValues)
}

func (l *retryLogger) Info(msg string, keysAndValues ...interface{}) {
	log.Debug().Msgf("[retry] %s %v", msg, keysAndValues)
}

func (l *retryLogger) Debug(msg string, keysAndValues ...interface{}) {
	log.Debug().Msgf("[retry] %s %v", msg, keysAndValues)
}

// Client talks to the Mini AI Analyst backend. The bearer token is not held
// on the client; every call takes it explicitly so the caller controls the
// credential's lifetime.
type Client struct {
	httpClient   *nethttp.Client // retry-wrapped, JSON endpoints
	uploadClient *nethttp.Client // plain, streamed multipart upload
	baseURL      string
}

// NewClient creates a backend client from config.
func NewClient(cfg *config.Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIBaseURL) == "" {
		return nil, fmt.Errorf("API base URL is empty")
	}

	baseClient, err := http.ConfigureHTTPClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to configure HTTP client: %w", err)
	}

	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient = baseClient
	retryClient.RetryMax = constants.RetryMax
	retryClient.RetryWaitMin = constants.RetryWaitMin
	retryClient.RetryWaitMax = constants.RetryWaitMax
	retryClient.Logger = &retryLogger{}
	// Only connection-level failures are retried. An HTTP error status is a
	// stage outcome the user acts on, not something to retry behind their
	// back.
	retryClient.CheckRetry = func(ctx context.Context, resp *nethttp.Response, err error) (bool, error) {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		if err != nil {
			return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
		}
		return false, nil
	}

	uploadClient, err := http.ConfigureHTTPClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to configure upload client: %w", err)
	}

	return &Client{
		httpClient:   retryClient.StandardClient(),
		uploadClient: uploadClient,
		baseURL:      strings.TrimSuffix(cfg.APIBaseURL, "/"),
	}, nil
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// doRequest performs a JSON request. An empty token sends no Authorization
// header (registration is unauthenticated).
func (c *Client) doRequest(ctx context.Context, method, path, token string, body interface{}) (*nethttp.Response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(jsonData)
	}

	req, err := nethttp.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent())
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	return resp, nil
}

// decodeError turns a non-success response into a *StatusError, pulling the
// backend's {detail} message out of the body when present.
func decodeError(resp *nethttp.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))

	var payload struct {
		Detail string `json:"detail"`
	}
	detail := ""
	if err := json.Unmarshal(body, &payload); err == nil {
		detail = payload.Detail
	}
	if detail == "" {
		detail = strings.TrimSpace(string(body))
	}

	return &StatusError{StatusCode: resp.StatusCode, Detail: detail}
}

// UploadDataset uploads a CSV dataset as a multipart form and returns the
// server-issued session plus the schema inferred at upload time. The reader
// is streamed; wrap it for progress reporting.
func (c *Client) UploadDataset(ctx context.Context, token, filename string, r io.Reader) (*models.UploadResult, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		part, err := mw.CreateFormFile("file", filename)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, r); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(mw.Close())
	}()

	req, err := nethttp.NewRequestWithContext(ctx, "POST", c.baseURL+"/upload", pr)
	if err != nil {
		return nil, fmt.Errorf("failed to create upload request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent())
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := c.uploadClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != nethttp.StatusOK && resp.StatusCode != nethttp.StatusCreated {
		return nil, decodeError(resp)
	}

	var result models.UploadResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode upload response: %w", err)
	}
	if result.SessionID == "" {
		return nil, fmt.Errorf("upload response missing session_id: %w", ErrMalformedResponse)
	}

	return &result, nil
}

// FetchProfile retrieves the data-quality profile for a session. Individual
// profile sections may be absent; only a wholly missing profile object is an
// error.
func (c *Client) FetchProfile(ctx context.Context, token, sessionID string) (*models.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	path := "/profile?session_id=" + url.QueryEscape(sessionID)

	resp, err := c.doRequest(ctx, "GET", path, token, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != nethttp.StatusOK {
		return nil, decodeError(resp)
	}

	var result struct {
		Message string          `json:"message"`
		Profile *models.Profile `json:"profile"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode profile response: %w", err)
	}
	if result.Profile == nil {
		return nil, fmt.Errorf("profile response missing profile object: %w", ErrMalformedResponse)
	}

	return result.Profile, nil
}

// Train requests AutoML training for a session and returns the training
// summary. The session identifier travels in the JSON body.
func (c *Client) Train(ctx context.Context, token, sessionID string) (*models.TrainingResult, error) {
	body := map[string]string{"session_id": sessionID}

	resp, err := c.doRequest(ctx, "POST", "/train", token, body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != nethttp.StatusOK {
		return nil, decodeError(resp)
	}

	var payload struct {
		ModelType          *string            `json:"model_type"`
		ModelFileID        *string            `json:"model_file_id"`
		Metrics            map[string]float64 `json:"metrics"`
		FeatureImportances map[string]float64 `json:"feature_importances"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode training response: %w", err)
	}

	switch {
	case payload.ModelType == nil:
		return nil, fmt.Errorf("training response missing model_type: %w", ErrMalformedResponse)
	case payload.ModelFileID == nil:
		return nil, fmt.Errorf("training response missing model_file_id: %w", ErrMalformedResponse)
	case payload.Metrics == nil:
		return nil, fmt.Errorf("training response missing metrics: %w", ErrMalformedResponse)
	case payload.FeatureImportances == nil:
		return nil, fmt.Errorf("training response missing feature_importances: %w", ErrMalformedResponse)
	}

	return &models.TrainingResult{
		ModelType:          *payload.ModelType,
		ModelFileID:        *payload.ModelFileID,
		Metrics:            payload.Metrics,
		FeatureImportances: payload.FeatureImportances,
	}, nil
}

// Predict runs the session's trained model over the given input rows and
// returns one prediction per row, in order. Requires a prior successful
// training run; the backend answers 404 otherwise.
func (c *Client) Predict(ctx context.Context, token, sessionID string, inputs []models.PredictionRow) ([]interface{}, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	body := models.PredictRequest{SessionID: sessionID, Inputs: inputs}

	resp, err := c.doRequest(ctx, "POST", "/predict", token, body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != nethttp.StatusOK {
		return nil, decodeError(resp)
	}

	var payload struct {
		Predictions []interface{} `json:"predictions"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode predict response: %w", err)
	}
	if payload.Predictions == nil {
		return nil, fmt.Errorf("predict response missing predictions: %w", ErrMalformedResponse)
	}

	return payload.Predictions, nil
}

// Register creates a new backend account. No authentication required.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) error {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	resp, err := c.doRequest(ctx, "POST", "/register", "", req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case nethttp.StatusOK, nethttp.StatusCreated, nethttp.StatusNoContent:
		return nil
	default:
		return decodeError(resp)
	}
}
