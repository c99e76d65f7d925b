package models

// PredictionRow is one input row for model prediction, column name → value.
// Values keep whatever JSON type the caller supplies; the backend aligns the
// rows to the training feature space itself.
type PredictionRow map[string]interface{}

// PredictRequest asks for predictions from the model trained for a session.
type PredictRequest struct {
	SessionID string          `json:"session_id"`
	Inputs    []PredictionRow `json:"inputs"`
}
