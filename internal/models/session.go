package models

// UploadResult is the backend's answer to a dataset upload. SessionID
// correlates every later stage to this dataset. ParsedSchema is inferred at
// upload time, before the full profile exists.
type UploadResult struct {
	SessionID    string         `json:"session_id"`
	ParsedSchema []SchemaColumn `json:"parsed_schema"`
}

// RegisterRequest creates a new backend account.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
