// Package workflow coordinates the upload → profile → train session
// workflow against the backend.
package workflow

// State represents the coordinator's position in the workflow.
type State int

const (
	StateBlocked    State = iota // No usable credential; workflow entry denied
	StateIdle                    // Credential present, awaiting a user upload
	StateUploading               // Dataset upload in flight
	StateProfiling               // Profile fetch in flight (auto-chained)
	StateReady                   // Session and profile held; train available
	StateTraining                // Training request in flight (user-triggered)
	StateTrainError              // Training failed; session/profile retained, retry allowed
)

// String returns the string representation of the workflow state.
func (s State) String() string {
	switch s {
	case StateBlocked:
		return "Blocked"
	case StateIdle:
		return "Idle"
	case StateUploading:
		return "Uploading"
	case StateProfiling:
		return "Profiling"
	case StateReady:
		return "Ready"
	case StateTraining:
		return "Training"
	case StateTrainError:
		return "TrainError"
	default:
		return "Unknown"
	}
}

// Stage identifies which network-bound stage is in flight. At most one stage
// may be in flight at a time.
type Stage int

const (
	StageNone Stage = iota
	StageUpload
	StageProfile
	StageTrain
)

// String returns the string representation of the stage.
func (s Stage) String() string {
	switch s {
	case StageNone:
		return "none"
	case StageUpload:
		return "uploading"
	case StageProfile:
		return "profiling"
	case StageTrain:
		return "training"
	default:
		return "unknown"
	}
}
