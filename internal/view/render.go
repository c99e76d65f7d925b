package view

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/mini-analyst/analyst-cli/internal/models"
)

// Render writes a payload as plain text. All table output uses fixed-width
// columns so it stays readable without a terminal-aware dependency.
func Render(w io.Writer, p RenderPayload) {
	switch p.Kind {
	case PayloadSchema:
		renderSchema(w, p.Schema)
	case PayloadInsights:
		renderInsights(w, p.Profile)
	case PayloadTrainingResult:
		renderTrainingResult(w, p.Result)
	case PayloadTrainPrompt, PayloadPlaceholder:
		fmt.Fprintln(w, p.Message)
	default:
		fmt.Fprintln(w, p.Message)
	}
}

func renderSchema(w io.Writer, schema []models.SchemaColumn) {
	fmt.Fprintf(w, "%-24s %-10s %8s %8s %-6s %s\n", "COLUMN", "DTYPE", "UNIQUE", "NULL%", "FLAGS", "SAMPLE")
	for _, col := range schema {
		var flags []string
		if col.HighCardinality {
			flags = append(flags, "hi-card")
		}
		if col.Constant {
			flags = append(flags, "const")
		}
		sample := strings.Join(col.SampleValues, ", ")
		if len(sample) > 40 {
			sample = sample[:37] + "..."
		}
		fmt.Fprintf(w, "%-24s %-10s %8d %7.1f%% %-6s %s\n",
			col.Column, col.DType, col.UniqueValues, col.NullPercentage,
			strings.Join(flags, ","), sample)
	}
}

func renderInsights(w io.Writer, profile *models.Profile) {
	if len(profile.Outliers) > 0 {
		fmt.Fprintln(w, "Outliers (IQR):")
		for _, col := range sortedKeys(profile.Outliers) {
			fmt.Fprintf(w, "  %-24s %d rows\n", col, profile.Outliers[col])
		}
		fmt.Fprintln(w)
	}

	if len(profile.Skewness) > 0 {
		fmt.Fprintln(w, "Skewness:")
		for _, col := range sortedKeys(profile.Skewness) {
			fmt.Fprintf(w, "  %-24s %+.3f\n", col, profile.Skewness[col])
		}
		fmt.Fprintln(w)
	}

	if len(profile.PairwiseCorrelations) > 0 {
		fmt.Fprintln(w, "Strong pairwise correlations:")
		for _, a := range sortedKeys(profile.PairwiseCorrelations) {
			row := profile.PairwiseCorrelations[a]
			for _, b := range sortedKeys(row) {
				// Each pair appears once under both keys; keep one direction.
				if a < b {
					fmt.Fprintf(w, "  %s <-> %s: %+.3f\n", a, b, row[b])
				}
			}
		}
		fmt.Fprintln(w)
	}

	if len(profile.ImbalancedColumns) > 0 {
		fmt.Fprintln(w, "Imbalanced columns:")
		for _, col := range sortedKeys(profile.ImbalancedColumns) {
			fmt.Fprintf(w, "  %-24s dominant class %.1f%%\n", col, profile.ImbalancedColumns[col]*100)
		}
		fmt.Fprintln(w)
	}

	if warnings := profile.LeakageWarnings(); len(warnings) > 0 {
		fmt.Fprintln(w, "Potential target leakage:")
		for _, warn := range warnings {
			fmt.Fprintf(w, "  %-24s corr(%s) = %+.3f\n", warn.Feature, warn.Target, warn.Strength)
		}
		fmt.Fprintln(w)
	}

	if len(profile.Outliers) == 0 && len(profile.Skewness) == 0 &&
		len(profile.PairwiseCorrelations) == 0 && len(profile.ImbalancedColumns) == 0 &&
		len(profile.PotentialLeakage) == 0 {
		fmt.Fprintln(w, "No notable issues found in this dataset.")
	}
}

func renderTrainingResult(w io.Writer, result *models.TrainingResult) {
	fmt.Fprintf(w, "Model:      %s\n", result.ModelType)
	fmt.Fprintf(w, "Model file: %s\n", result.ModelFileID)

	if len(result.Metrics) > 0 {
		fmt.Fprintln(w, "Metrics:")
		for _, name := range result.MetricNames() {
			fmt.Fprintf(w, "  %-24s %.4f\n", name, result.Metrics[name])
		}
	}

	if ranked := result.RankedImportances(); len(ranked) > 0 {
		fmt.Fprintln(w, "Feature importances:")
		for _, fi := range ranked {
			fmt.Fprintf(w, "  %-24s %.4f\n", fi.Feature, fi.Weight)
		}
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
