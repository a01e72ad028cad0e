package output

import (
	"encoding/json"
	"io"

	"github.com/alexsuw/drosophila-dna-analysis/internal/motif"
	"github.com/alexsuw/drosophila-dna-analysis/internal/stats"
)

// Filtering records the analysis parameters a run was produced with.
type Filtering struct {
	MinZScore         float64 `json:"min_zscore"`
	MaxZScore         float64 `json:"max_zscore"`
	MinG4Score        float64 `json:"min_g4_score"`
	PromoterHalfWidth int64   `json:"promoter_half_width"`
}

// LoadCounts mirrors motif.LoadStats in the JSON artifact.
type LoadCounts struct {
	Retained int `json:"retained"`
	Skipped  int `json:"skipped"`
	Filtered int `json:"filtered"`
}

// RunSummary is the machine-readable run artifact written next to the
// tables, covering totals, per-chromosome stats, data quality and the
// filter parameters.
type RunSummary struct {
	Genes     int                   `json:"genes"`
	Filtering Filtering             `json:"filtering"`
	Loading   map[string]LoadCounts `json:"loading"`
	Report    *stats.Report         `json:"report"`
}

// NewRunSummary assembles the JSON artifact from a finalized report.
func NewRunSummary(report *stats.Report, genes int, filtering Filtering, zdnaStats, g4Stats motif.LoadStats) *RunSummary {
	return &RunSummary{
		Genes:     genes,
		Filtering: filtering,
		Loading: map[string]LoadCounts{
			motif.KindZDNA.String(): {Retained: zdnaStats.Retained, Skipped: zdnaStats.Skipped, Filtered: zdnaStats.Filtered},
			motif.KindG4.String():   {Retained: g4Stats.Retained, Skipped: g4Stats.Skipped, Filtered: g4Stats.Filtered},
		},
		Report: report,
	}
}

// WriteJSON writes the run summary as indented JSON.
func (rs *RunSummary) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rs)
}
