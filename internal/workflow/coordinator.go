package workflow

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/mini-analyst/analyst-cli/internal/models"
)

// Credential is the opaque bearer token authorizing stage requests. It is
// threaded explicitly into every stage call; stages never read an ambient
// credential store.
type Credential string

// Gate decides whether a usable credential exists. Checked on every workflow
// entry, never memoized, since the token may be cleared out-of-band.
type Gate interface {
	Check() (Credential, error)
}

// GateFunc adapts a function to the Gate interface.
type GateFunc func() (Credential, error)

// Check implements Gate.
func (f GateFunc) Check() (Credential, error) { return f() }

// Stages is the network-bound stage set the coordinator sequences. The
// production implementation wraps the API client; tests substitute fakes.
type Stages interface {
	Upload(ctx context.Context, cred Credential, filePath string) (*models.UploadResult, error)
	FetchProfile(ctx context.Context, cred Credential, sessionID string) (*models.Profile, error)
	Train(ctx context.Context, cred Credential, sessionID string) (*models.TrainingResult, error)
}

// Snapshot is a point-in-time copy of the coordinator's aggregate state,
// consumed by the view layer. Schema prefers the profile's parsed schema and
// falls back to the one echoed by the upload response.
type Snapshot struct {
	State             State
	CredentialPresent bool
	SessionID         string
	Schema            []models.SchemaColumn
	Profile           *models.Profile
	TrainingResult    *models.TrainingResult
	InFlight          Stage
	LastErr           error
}

// Coordinator owns the session workflow: it gates entry on a credential,
// runs upload with an automatically chained profile fetch, and runs training
// on user request. Exactly one session is active at a time and at most one
// stage is in flight; a stage completing for a discarded session is ignored.
type Coordinator struct {
	mu     sync.Mutex
	gate   Gate
	stages Stages

	state     State
	cred      Credential
	sessionID string
	schema    []models.SchemaColumn
	profile   *models.Profile
	result    *models.TrainingResult
	inFlight  Stage
	lastErr   error

	// gen identifies the active session attempt. Bumped whenever the session
	// is replaced or discarded; stage completions tagged with an older gen
	// must not mutate state.
	gen uint64
}

// New creates a coordinator in the Blocked state. Call Enter to check the
// gate and unlock the workflow.
func New(gate Gate, stages Stages) *Coordinator {
	return &Coordinator{
		gate:   gate,
		stages: stages,
		state:  StateBlocked,
	}
}

// Enter re-checks the credential gate. On success the workflow unblocks
// (Blocked → Idle); other states are preserved across re-entries. On failure
// the workflow blocks regardless of prior state.
func (c *Coordinator) Enter() error {
	cred, err := c.gate.Check()

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil || cred == "" {
		c.cred = ""
		c.state = StateBlocked
		if err == nil {
			err = ErrBlocked
		}
		c.lastErr = err
		return err
	}

	c.cred = cred
	if c.state == StateBlocked {
		c.state = StateIdle
		c.lastErr = nil
	}
	return nil
}

// CanTransitionTo checks if a transition to the given state is valid.
func (c *Coordinator) CanTransitionTo(newState State) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.canTransitionTo(newState)
}

func (c *Coordinator) canTransitionTo(newState State) bool {
	switch newState {
	case StateBlocked:
		return true // the token can vanish out-of-band at any entry check

	case StateIdle:
		return true // reset and failure-settle target, legal from anywhere

	case StateUploading:
		// A new upload from Ready or TrainError discards the prior session.
		return c.state == StateIdle || c.state == StateReady || c.state == StateTrainError

	case StateProfiling:
		return c.state == StateUploading

	case StateReady:
		return c.state == StateProfiling || c.state == StateTraining

	case StateTraining:
		return c.state == StateReady || c.state == StateTrainError

	case StateTrainError:
		return c.state == StateTraining

	default:
		return false
	}
}

// TransitionTo moves to a new state if the transition is valid.
func (c *Coordinator) TransitionTo(newState State) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.transitionTo(newState)
}

func (c *Coordinator) transitionTo(newState State) error {
	if !c.canTransitionTo(newState) {
		return fmt.Errorf("invalid transition from %s to %s", c.state, newState)
	}
	c.state = newState
	return nil
}

// settle records a stage outcome: the in-flight marker clears, the error (if
// any) is retained for display, and the machine lands on a settle state.
// Settle targets are legal by construction so no validation happens here.
func (c *Coordinator) settle(s State, err error) {
	c.state = s
	c.inFlight = StageNone
	c.lastErr = err
}

// StartAnalysis uploads the dataset at filePath and, on success, immediately
// fetches its profile. The two stages are one chain: the user never requests
// profiling separately. On a profile failure the session is retained but the
// workflow settles back to Idle with the error surfaced; the profile stays
// unset rather than half-filled.
func (c *Coordinator) StartAnalysis(ctx context.Context, filePath string) error {
	c.mu.Lock()
	if c.cred == "" || c.state == StateBlocked {
		c.mu.Unlock()
		return ErrBlocked
	}
	if c.inFlight != StageNone {
		c.mu.Unlock()
		return ErrStageInFlight
	}
	if strings.TrimSpace(filePath) == "" {
		c.lastErr = ErrNoFileSelected
		c.mu.Unlock()
		return ErrNoFileSelected
	}
	if _, err := os.Stat(filePath); err != nil {
		err = fmt.Errorf("%w: %s", ErrNoFileSelected, filePath)
		c.lastErr = err
		c.mu.Unlock()
		return err
	}
	if err := c.transitionTo(StateUploading); err != nil {
		c.mu.Unlock()
		return err
	}

	// Starting a new upload replaces the active session. Results from
	// anything still in flight for the old session must be ignored.
	c.gen++
	gen := c.gen
	c.sessionID = ""
	c.schema = nil
	c.profile = nil
	c.result = nil
	c.lastErr = nil
	c.inFlight = StageUpload
	cred := c.cred
	c.mu.Unlock()

	uploaded, err := c.stages.Upload(ctx, cred, filePath)

	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		return ErrSuperseded
	}
	if err != nil {
		c.settle(StateIdle, err)
		c.mu.Unlock()
		return err
	}

	c.sessionID = uploaded.SessionID
	c.schema = uploaded.ParsedSchema
	c.state = StateProfiling
	c.inFlight = StageProfile
	sessionID := c.sessionID
	c.mu.Unlock()

	profile, err := c.stages.FetchProfile(ctx, cred, sessionID)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return ErrSuperseded
	}
	if err != nil {
		// The session survives a failed profile fetch; only the profile is
		// missing. The user may retry by uploading again.
		c.settle(StateIdle, err)
		return err
	}

	c.profile = profile
	c.settle(StateReady, nil)
	return nil
}

// Train requests model training for the active session. Always
// user-triggered, never auto-chained. Requires both a session and a
// credential; otherwise it fails locally with ErrNotReady and no network
// call is made. A failure lands on TrainError with session and profile
// retained so the user can retry; a retry that succeeds replaces any prior
// training result.
func (c *Coordinator) Train(ctx context.Context) error {
	c.mu.Lock()
	if c.inFlight != StageNone {
		c.mu.Unlock()
		return ErrStageInFlight
	}
	if c.sessionID == "" || c.cred == "" {
		c.lastErr = ErrNotReady
		c.mu.Unlock()
		return ErrNotReady
	}
	if err := c.transitionTo(StateTraining); err != nil {
		c.mu.Unlock()
		return err
	}

	c.inFlight = StageTrain
	gen := c.gen
	cred := c.cred
	sessionID := c.sessionID
	c.mu.Unlock()

	result, err := c.stages.Train(ctx, cred, sessionID)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return ErrSuperseded
	}
	if err != nil {
		c.settle(StateTrainError, err)
		return err
	}

	c.result = result
	c.settle(StateReady, nil)
	return nil
}

// Reset discards the active session and returns to Idle (or Blocked without
// a credential). A stage still in flight for the discarded session will find
// its generation stale on completion and its result is dropped.
func (c *Coordinator) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gen++
	c.sessionID = ""
	c.schema = nil
	c.profile = nil
	c.result = nil
	c.inFlight = StageNone
	c.lastErr = nil
	if c.cred == "" {
		c.state = StateBlocked
	} else {
		c.state = StateIdle
	}
}

// State returns the current workflow state.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Snapshot returns a copy of the aggregate state for rendering.
func (c *Coordinator) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	schema := c.schema
	if c.profile != nil && len(c.profile.ParsedSchema) > 0 {
		schema = c.profile.ParsedSchema
	}

	return Snapshot{
		State:             c.state,
		CredentialPresent: c.cred != "",
		SessionID:         c.sessionID,
		Schema:            schema,
		Profile:           c.profile,
		TrainingResult:    c.result,
		InFlight:          c.inFlight,
		LastErr:           c.lastErr,
	}
}
