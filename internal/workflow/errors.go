package workflow

import "errors"

var (
	// ErrBlocked is returned for workflow actions attempted without a
	// credential. The caller should route the user to login/registration.
	ErrBlocked = errors.New("workflow blocked: no credential")

	// ErrNoFileSelected is the local validation failure for an upload
	// attempted without a dataset file. No network call is issued.
	ErrNoFileSelected = errors.New("no dataset file selected")

	// ErrNotReady is returned when training is requested before a session
	// exists. No network call is issued.
	ErrNotReady = errors.New("training not ready: no active session")

	// ErrStageInFlight rejects a new action while another stage is running.
	// Two sessions must never race; the current chain has to settle first.
	ErrStageInFlight = errors.New("another stage is in flight")

	// ErrSuperseded is returned when a stage completed for a session that is
	// no longer the coordinator's active session. Its result was discarded.
	ErrSuperseded = errors.New("stage result superseded by a newer session")
)
