// Package view maps a user-chosen view mode onto the workflow's current
// results. Selection is a pure function of the snapshot: switching modes
// never triggers a fetch.
package view

import (
	"fmt"
	"strings"

	"github.com/mini-analyst/analyst-cli/internal/models"
	"github.com/mini-analyst/analyst-cli/internal/workflow"
)

// Mode identifies which result set the user wants rendered.
type Mode int

const (
	ModeSchema Mode = iota
	ModeInsights
	ModeTrain
)

// ModeNames lists the accepted mode spellings in menu order.
var ModeNames = []string{"schema", "insights", "train"}

// String returns the mode's flag spelling.
func (m Mode) String() string {
	switch m {
	case ModeSchema:
		return "schema"
	case ModeInsights:
		return "insights"
	case ModeTrain:
		return "train"
	default:
		return "unknown"
	}
}

// ParseMode parses a mode name as given on the command line.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "schema":
		return ModeSchema, nil
	case "insights":
		return ModeInsights, nil
	case "train":
		return ModeTrain, nil
	default:
		return ModeSchema, fmt.Errorf("unknown view mode %q (expected one of: %s)", s, strings.Join(ModeNames, ", "))
	}
}

// PayloadKind tells the renderer what a payload carries.
type PayloadKind int

const (
	// PayloadPlaceholder carries only a message explaining what is missing.
	PayloadPlaceholder PayloadKind = iota
	// PayloadSchema carries parsed schema rows.
	PayloadSchema
	// PayloadInsights carries a full profile report.
	PayloadInsights
	// PayloadTrainPrompt means no training has run yet; render the trigger.
	PayloadTrainPrompt
	// PayloadTrainingResult carries a completed training outcome.
	PayloadTrainingResult
)

// RenderPayload is what Select hands the renderer. Exactly one of the data
// fields is populated, per Kind.
type RenderPayload struct {
	Kind    PayloadKind
	Message string
	Schema  []models.SchemaColumn
	Profile *models.Profile
	Result  *models.TrainingResult
}

// Select picks what to render for the given mode and snapshot. Schema and
// insights degrade to placeholders when their data has not arrived; train is
// always renderable, showing either the trigger prompt or the result.
func Select(mode Mode, snap workflow.Snapshot) RenderPayload {
	switch mode {
	case ModeSchema:
		if len(snap.Schema) == 0 {
			return RenderPayload{
				Kind:    PayloadPlaceholder,
				Message: "No schema available yet. Upload a dataset first.",
			}
		}
		return RenderPayload{Kind: PayloadSchema, Schema: snap.Schema}

	case ModeInsights:
		if snap.Profile == nil {
			return RenderPayload{
				Kind:    PayloadPlaceholder,
				Message: "No profile available yet. Upload a dataset first.",
			}
		}
		return RenderPayload{Kind: PayloadInsights, Profile: snap.Profile}

	case ModeTrain:
		if snap.TrainingResult == nil {
			return RenderPayload{
				Kind:    PayloadTrainPrompt,
				Message: "No model trained for this session yet. Run train to start.",
			}
		}
		return RenderPayload{Kind: PayloadTrainingResult, Result: snap.TrainingResult}

	default:
		return RenderPayload{
			Kind:    PayloadPlaceholder,
			Message: fmt.Sprintf("unknown view mode %d", mode),
		}
	}
}
