package models

import "sort"

// TrainingResult is the outcome of one AutoML training run for a session.
// All four fields are required on the wire; a response missing any of them
// is rejected as malformed.
type TrainingResult struct {
	ModelType          string             `json:"model_type"`
	ModelFileID        string             `json:"model_file_id"`
	Metrics            map[string]float64 `json:"metrics"`
	FeatureImportances map[string]float64 `json:"feature_importances"`
}

// FeatureImportance is one (feature, weight) pair from a trained model.
type FeatureImportance struct {
	Feature string
	Weight  float64
}

// RankedImportances returns the feature importances sorted descending by
// weight, with the feature name as a tiebreaker so output is deterministic.
func (r *TrainingResult) RankedImportances() []FeatureImportance {
	if r == nil || len(r.FeatureImportances) == 0 {
		return nil
	}

	ranked := make([]FeatureImportance, 0, len(r.FeatureImportances))
	for feature, weight := range r.FeatureImportances {
		ranked = append(ranked, FeatureImportance{Feature: feature, Weight: weight})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Weight != ranked[j].Weight {
			return ranked[i].Weight > ranked[j].Weight
		}
		return ranked[i].Feature < ranked[j].Feature
	})

	return ranked
}

// MetricNames returns the metric keys in sorted order for stable rendering.
func (r *TrainingResult) MetricNames() []string {
	if r == nil || len(r.Metrics) == 0 {
		return nil
	}
	names := make([]string, 0, len(r.Metrics))
	for name := range r.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
