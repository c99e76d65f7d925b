package constants

import (
	"time"
)

// Application identity
const (
	// AppName is the binary name used in help text and user agent strings.
	AppName = "analyst-cli"

	// ConfigDir is the directory under ~/.config holding the token file
	// and the apiconfig INI.
	ConfigDir = "analyst"

	// EnvToken is the environment variable checked as the lowest-priority
	// token source.
	EnvToken = "ANALYST_TOKEN"

	// EnvProxyPassword supplies the proxy password for basic/ntlm modes,
	// since the apiconfig file never stores it.
	EnvProxyPassword = "ANALYST_PROXY_PASSWORD"
)

// Backend defaults
const (
	// DefaultAPIBaseURL points at a locally running Mini AI Analyst backend.
	// Override with --api-url or the apiconfig platform_url key.
	DefaultAPIBaseURL = "http://localhost:8000"
)

// HTTP client tuning
const (
	// HTTPDialTimeout bounds TCP connection establishment.
	HTTPDialTimeout = 30 * time.Second

	// HTTPDialKeepAlive is the keep-alive probe interval for open connections.
	HTTPDialKeepAlive = 30 * time.Second

	// HTTPIdleConnTimeout is how long idle connections stay pooled.
	HTTPIdleConnTimeout = 90 * time.Second

	// HTTPTLSHandshakeTimeout is extended beyond the net/http default to
	// tolerate slow corporate proxies.
	HTTPTLSHandshakeTimeout = 30 * time.Second

	// HTTPExpectContinueTimeout for HTTP 100-continue negotiation.
	HTTPExpectContinueTimeout = 5 * time.Second

	// RequestTimeout bounds a single JSON API round trip. Dataset uploads
	// and training runs are not subject to this; they use the caller's
	// context instead, since training time scales with the dataset.
	RequestTimeout = 300 * time.Second
)

// Retry tuning for the JSON API client. Only connection-level failures are
// retried; HTTP error statuses surface to the workflow unretried so the user
// decides whether to repeat the action.
const (
	RetryMax     = 3
	RetryWaitMin = 1 * time.Second
	RetryWaitMax = 15 * time.Second
)
