// Package motif normalizes heterogeneous structure-prediction outputs
// (Z-DNA scores, G-quadruplex matches) into a common interval+score record.
package motif

import (
	"github.com/alexsuw/drosophila-dna-analysis/internal/genome"
)

// Kind identifies the predicted structure type.
type Kind int8

const (
	KindZDNA Kind = iota
	KindG4
)

// String returns the display name of the kind.
func (k Kind) String() string {
	switch k {
	case KindZDNA:
		return "Z-DNA"
	case KindG4:
		return "G4"
	default:
		return "unknown"
	}
}

// Motif is a predicted structural motif that passed its kind-specific score
// filter. Motifs are value records and never mutated downstream.
type Motif struct {
	Kind     Kind
	Interval genome.Interval
	Score    float64
	Sequence string // matched sequence, when the predictor reports one
}

// ScoreFilter decides whether a motif's score retains it for analysis.
// Filter bounds are analysis parameters, not tool invariants.
type ScoreFilter interface {
	Retain(score float64) bool
}

// RangeFilter retains scores within an inclusive [Min, Max] range, the
// shape used for Z-Hunt Z-scores.
type RangeFilter struct {
	Min float64
	Max float64
}

// Retain implements ScoreFilter.
func (f RangeFilter) Retain(score float64) bool {
	return score >= f.Min && score <= f.Max
}

// ThresholdFilter retains scores at or above Min, the shape used for
// combined G-quadruplex scores.
type ThresholdFilter struct {
	Min float64
}

// Retain implements ScoreFilter.
func (f ThresholdFilter) Retain(score float64) bool {
	return score >= f.Min
}

// LoadStats reports data quality of a loaded motif batch. Skipped rows are
// malformed (non-numeric score, zero-length interval, unknown chromosome)
// and never fatal; filtered rows were well-formed but outside the
// configured score filter.
type LoadStats struct {
	Retained int
	Skipped  int
	Filtered int
}
