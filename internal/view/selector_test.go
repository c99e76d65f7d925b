package view

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mini-analyst/analyst-cli/internal/models"
	"github.com/mini-analyst/analyst-cli/internal/workflow"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		input    string
		expected Mode
		wantErr  bool
	}{
		{"schema", ModeSchema, false},
		{"insights", ModeInsights, false},
		{"train", ModeTrain, false},
		{"  Train ", ModeTrain, false},
		{"SCHEMA", ModeSchema, false},
		{"metrics", ModeSchema, true},
		{"", ModeSchema, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			mode, err := ParseMode(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, mode)
		})
	}
}

func TestSelectSchemaPlaceholderBeforeUpload(t *testing.T) {
	p := Select(ModeSchema, workflow.Snapshot{})
	assert.Equal(t, PayloadPlaceholder, p.Kind)
	assert.Contains(t, p.Message, "Upload a dataset")
}

func TestSelectSchemaRendersRows(t *testing.T) {
	snap := workflow.Snapshot{
		Schema: []models.SchemaColumn{
			{Column: "age", DType: "int64", UniqueValues: 40, NullPercentage: 1.5},
			{Column: "plan", DType: "object", UniqueValues: 3, HighCardinality: false},
		},
	}

	p := Select(ModeSchema, snap)
	require.Equal(t, PayloadSchema, p.Kind)

	var buf bytes.Buffer
	Render(&buf, p)
	out := buf.String()
	assert.Contains(t, out, "COLUMN")
	assert.Contains(t, out, "age")
	assert.Contains(t, out, "plan")
}

func TestSelectInsightsRequiresProfile(t *testing.T) {
	p := Select(ModeInsights, workflow.Snapshot{})
	assert.Equal(t, PayloadPlaceholder, p.Kind)

	profile := &models.Profile{
		Outliers:         map[string]int{"income": 12},
		PotentialLeakage: map[string]float64{"balance": 0.97},
	}
	p = Select(ModeInsights, workflow.Snapshot{Profile: profile})
	require.Equal(t, PayloadInsights, p.Kind)

	var buf bytes.Buffer
	Render(&buf, p)
	out := buf.String()
	assert.Contains(t, out, "Outliers")
	assert.Contains(t, out, "income")
	assert.Contains(t, out, "leakage")
}

func TestSelectTrainShowsPromptThenResult(t *testing.T) {
	p := Select(ModeTrain, workflow.Snapshot{})
	assert.Equal(t, PayloadTrainPrompt, p.Kind)
	assert.Contains(t, p.Message, "train")

	result := &models.TrainingResult{
		ModelType:   "RandomForest",
		ModelFileID: "m1",
		Metrics:     map[string]float64{"accuracy": 0.91},
		FeatureImportances: map[string]float64{
			"age":    0.5,
			"income": 0.3,
		},
	}
	p = Select(ModeTrain, workflow.Snapshot{TrainingResult: result})
	require.Equal(t, PayloadTrainingResult, p.Kind)

	var buf bytes.Buffer
	Render(&buf, p)
	out := buf.String()
	assert.Contains(t, out, "RandomForest")
	assert.Contains(t, out, "accuracy")

	// Importances render sorted descending by weight.
	ageAt := strings.Index(out, "age")
	incomeAt := strings.Index(out, "income")
	require.GreaterOrEqual(t, ageAt, 0)
	require.GreaterOrEqual(t, incomeAt, 0)
	assert.Less(t, ageAt, incomeAt)
}

func TestRenderInsightsEmptyProfile(t *testing.T) {
	var buf bytes.Buffer
	Render(&buf, Select(ModeInsights, workflow.Snapshot{Profile: &models.Profile{}}))
	assert.Contains(t, buf.String(), "No notable issues")
}

func TestRenderCorrelationsOncePerPair(t *testing.T) {
	profile := &models.Profile{
		PairwiseCorrelations: map[string]map[string]float64{
			"age":    {"income": 0.92},
			"income": {"age": 0.92},
		},
	}

	var buf bytes.Buffer
	Render(&buf, Select(ModeInsights, workflow.Snapshot{Profile: profile}))
	assert.Equal(t, 1, strings.Count(buf.String(), "<->"))
}
