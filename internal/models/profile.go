// Package models defines the wire types exchanged with the Mini AI Analyst
// backend.
package models

import (
	"math"
	"sort"
)

// SchemaColumn is one row of the parsed schema for an uploaded dataset.
// The backend infers these during upload and echoes them again inside the
// profile report.
type SchemaColumn struct {
	Column          string   `json:"column"`
	DType           string   `json:"dtype"`
	UniqueValues    int      `json:"unique_values"`
	NullPercentage  float64  `json:"null_percentage"`
	HighCardinality bool     `json:"high_cardinality"`
	Constant        bool     `json:"constant"`
	SampleValues    []string `json:"sample_values"`
}

// Profile is the data-quality report computed for one session. Individual
// sections may be absent (nil/empty) when the backend had nothing to report;
// only the report as a whole is required.
type Profile struct {
	ParsedSchema         []SchemaColumn                `json:"parsed_schema"`
	Outliers             map[string]int                `json:"outliers"`
	Skewness             map[string]float64            `json:"skewness"`
	PairwiseCorrelations map[string]map[string]float64 `json:"pairwise_correlations"`
	ImbalancedColumns    map[string]float64            `json:"imbalanced_columns"`
	PotentialLeakage     map[string]float64            `json:"potential_leakage"`
}

// LeakageWarning flags a feature whose correlation with the target column is
// strong enough to suggest target leakage.
type LeakageWarning struct {
	Feature  string
	Target   string
	Strength float64
}

// LeakageWarnings converts the raw leakage map into rows sorted by absolute
// strength, strongest first. The backend only checks features against the
// dataset's "target" column.
func (p *Profile) LeakageWarnings() []LeakageWarning {
	if p == nil || len(p.PotentialLeakage) == 0 {
		return nil
	}

	warnings := make([]LeakageWarning, 0, len(p.PotentialLeakage))
	for feature, strength := range p.PotentialLeakage {
		warnings = append(warnings, LeakageWarning{
			Feature:  feature,
			Target:   "target",
			Strength: strength,
		})
	}

	sort.Slice(warnings, func(i, j int) bool {
		a, b := math.Abs(warnings[i].Strength), math.Abs(warnings[j].Strength)
		if a != b {
			return a > b
		}
		return warnings[i].Feature < warnings[j].Feature
	})

	return warnings
}
