package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mini-analyst/analyst-cli/internal/config"
	"github.com/mini-analyst/analyst-cli/internal/models"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := config.NewConfig()
	cfg.APIBaseURL = server.URL

	client, err := NewClient(cfg)
	require.NoError(t, err)
	return client
}

// TestNewClientRejectsEmptyBaseURL verifies that NewClient fails with a clear
// error instead of creating a broken client that produces "unsupported
// protocol scheme" errors on every request.
func TestNewClientRejectsEmptyBaseURL(t *testing.T) {
	cfg := config.NewConfig()
	cfg.APIBaseURL = "  "

	_, err := NewClient(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API base URL is empty")
}

func TestUploadDataset(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "POST", r.Method)
			assert.Equal(t, "/upload", r.URL.Path)
			assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
			assert.NotEmpty(t, r.Header.Get("X-Request-Id"))

			file, header, err := r.FormFile("file")
			require.NoError(t, err)
			defer file.Close()
			assert.Equal(t, "data.csv", header.Filename)

			json.NewEncoder(w).Encode(map[string]interface{}{
				"session_id": "s1",
				"parsed_schema": []map[string]interface{}{
					{"column": "age", "dtype": "numerical", "null_percentage": 1.5},
				},
			})
		}))

		result, err := client.UploadDataset(context.Background(), "tok-1", "data.csv", strings.NewReader("age,target\n1,0\n"))
		require.NoError(t, err)
		assert.Equal(t, "s1", result.SessionID)
		require.Len(t, result.ParsedSchema, 1)
		assert.Equal(t, "age", result.ParsedSchema[0].Column)
	})

	t.Run("rejected status carries backend detail", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"detail": "Only CSV files are allowed."})
		}))

		_, err := client.UploadDataset(context.Background(), "tok-1", "data.bin", strings.NewReader("x"))
		require.Error(t, err)
		assert.True(t, IsStatus(err, http.StatusBadRequest))

		var statusErr *StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, "Only CSV files are allowed.", statusErr.Detail)
	})

	t.Run("missing session_id is malformed", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]interface{}{"parsed_schema": []interface{}{}})
		}))

		_, err := client.UploadDataset(context.Background(), "tok-1", "data.csv", strings.NewReader("x"))
		assert.ErrorIs(t, err, ErrMalformedResponse)
	})
}

func TestFetchProfile(t *testing.T) {
	t.Run("success with partial sections", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "GET", r.Method)
			assert.Equal(t, "/profile", r.URL.Path)
			assert.Equal(t, "s1", r.URL.Query().Get("session_id"))
			assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))

			// No leakage or imbalance sections; both must be tolerated.
			w.Write([]byte(`{
				"message": "Data profiling complete.",
				"profile": {
					"parsed_schema": [{"column": "age", "dtype": "numerical", "null_percentage": 0}],
					"outliers": {"age": 3},
					"skewness": {"age": 1.2}
				}
			}`))
		}))

		profile, err := client.FetchProfile(context.Background(), "tok-1", "s1")
		require.NoError(t, err)
		assert.Equal(t, 3, profile.Outliers["age"])
		assert.Empty(t, profile.PotentialLeakage)
		assert.Nil(t, profile.LeakageWarnings())
	})

	t.Run("missing profile object is malformed", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"message": "ok"}`))
		}))

		_, err := client.FetchProfile(context.Background(), "tok-1", "s1")
		assert.ErrorIs(t, err, ErrMalformedResponse)
	})

	t.Run("unknown session is a status error", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"detail": "Invalid session_id"})
		}))

		_, err := client.FetchProfile(context.Background(), "tok-1", "gone")
		assert.True(t, IsStatus(err, http.StatusNotFound))
	})
}

func TestTrain(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "POST", r.Method)
			assert.Equal(t, "/train", r.URL.Path)

			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "s1", body["session_id"])

			w.Write([]byte(`{
				"model_type": "classification",
				"model_file_id": "m1",
				"metrics": {"accuracy": 0.91},
				"feature_importances": {"age": 0.5, "income": 0.3}
			}`))
		}))

		result, err := client.Train(context.Background(), "tok-1", "s1")
		require.NoError(t, err)
		assert.Equal(t, "classification", result.ModelType)
		assert.Equal(t, "m1", result.ModelFileID)
		assert.InDelta(t, 0.91, result.Metrics["accuracy"], 1e-9)

		ranked := result.RankedImportances()
		require.Len(t, ranked, 2)
		assert.Equal(t, "age", ranked[0].Feature)
		assert.Equal(t, "income", ranked[1].Feature)
	})

	t.Run("missing metrics is malformed", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"model_type": "classification", "model_file_id": "m1", "feature_importances": {}}`))
		}))

		_, err := client.Train(context.Background(), "tok-1", "s1")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMalformedResponse)
		assert.Contains(t, err.Error(), "metrics")
	})

	t.Run("server error surfaces unretried", func(t *testing.T) {
		calls := 0
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"detail": "Target column not found"})
		}))

		_, err := client.Train(context.Background(), "tok-1", "s1")
		require.Error(t, err)
		assert.True(t, IsStatus(err, http.StatusInternalServerError))
		assert.Equal(t, 1, calls, "HTTP error statuses must not be retried")
	})
}

func TestRegister(t *testing.T) {
	t.Run("success without auth header", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/register", r.URL.Path)
			assert.Empty(t, r.Header.Get("Authorization"))

			var body models.RegisterRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "alice", body.Username)

			w.WriteHeader(http.StatusOK)
		}))

		err := client.Register(context.Background(), models.RegisterRequest{
			Username: "alice",
			Email:    "alice@example.com",
			Password: "secret",
		})
		assert.NoError(t, err)
	})

	t.Run("duplicate username", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"detail": "Username already registered"})
		}))

		err := client.Register(context.Background(), models.RegisterRequest{Username: "alice"})
		var statusErr *StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, "Username already registered", statusErr.Detail)
	})
}

func TestPredict(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "POST", r.Method)
			assert.Equal(t, "/predict", r.URL.Path)
			assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))

			var body models.PredictRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "s1", body.SessionID)
			require.Len(t, body.Inputs, 2)
			assert.Equal(t, float64(42), body.Inputs[0]["age"])

			json.NewEncoder(w).Encode(map[string]interface{}{
				"predictions": []interface{}{1, 0},
			})
		}))

		inputs := []models.PredictionRow{
			{"age": 42, "income": 51000},
			{"age": 19, "income": 8000},
		}
		predictions, err := client.Predict(context.Background(), "tok-1", "s1", inputs)
		require.NoError(t, err)
		require.Len(t, predictions, 2)
		assert.Equal(t, float64(1), predictions[0])
	})

	t.Run("model not trained", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"detail": "Model not found for session."})
		}))

		_, err := client.Predict(context.Background(), "tok-1", "s1", []models.PredictionRow{{"age": 1}})
		require.Error(t, err)
		assert.True(t, IsStatus(err, http.StatusNotFound))
		assert.Contains(t, err.Error(), "Model not found")
	})

	t.Run("missing predictions field is malformed", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]string{"message": "ok"})
		}))

		_, err := client.Predict(context.Background(), "tok-1", "s1", []models.PredictionRow{{"age": 1}})
		require.ErrorIs(t, err, ErrMalformedResponse)
	})
}

// TestRequestsCarryUserAgent verifies that both the JSON and the streamed
// upload paths identify the client on the wire.
func TestRequestsCarryUserAgent(t *testing.T) {
	var jsonUA, uploadUA string

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/train":
			jsonUA = r.Header.Get("User-Agent")
			json.NewEncoder(w).Encode(map[string]interface{}{
				"model_type":          "classification",
				"model_file_id":       "m1",
				"metrics":             map[string]float64{"accuracy": 0.9},
				"feature_importances": map[string]float64{"age": 1.0},
			})
		case "/upload":
			uploadUA = r.Header.Get("User-Agent")
			json.NewEncoder(w).Encode(map[string]interface{}{
				"session_id":    "s1",
				"parsed_schema": []map[string]interface{}{},
			})
		}
	}))

	_, err := client.Train(context.Background(), "tok-1", "s1")
	require.NoError(t, err)
	_, err = client.UploadDataset(context.Background(), "tok-1", "data.csv", strings.NewReader("a\n1\n"))
	require.NoError(t, err)

	assert.Equal(t, userAgent(), jsonUA)
	assert.Equal(t, userAgent(), uploadUA)
	assert.Contains(t, jsonUA, "analyst-cli/")
}
