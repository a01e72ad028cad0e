package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexsuw/drosophila-dna-analysis/internal/motif"
	"github.com/alexsuw/drosophila-dna-analysis/internal/stats"
)

func TestRunSummary_WriteJSON(t *testing.T) {
	report := &stats.Report{
		ZDNA: sampleSummary(),
		G4:   &stats.KindSummary{Kind: "G4"},
		Colocalization: &stats.Colocalization{
			Window: 1000,
			Pairs:  3,
		},
	}
	filtering := Filtering{MinZScore: 300, MaxZScore: 400, MinG4Score: 60, PromoterHalfWidth: 1000}
	summary := NewRunSummary(report, 17559, filtering,
		motif.LoadStats{Retained: 4, Skipped: 1, Filtered: 10},
		motif.LoadStats{Retained: 2})

	var buf bytes.Buffer
	require.NoError(t, summary.WriteJSON(&buf))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, float64(17559), decoded["genes"])

	filt := decoded["filtering"].(map[string]any)
	assert.Equal(t, float64(300), filt["min_zscore"])
	assert.Equal(t, float64(1000), filt["promoter_half_width"])

	loading := decoded["loading"].(map[string]any)
	zdna := loading["Z-DNA"].(map[string]any)
	assert.Equal(t, float64(1), zdna["skipped"])

	// Rendering identical input twice is byte-identical.
	var again bytes.Buffer
	require.NoError(t, summary.WriteJSON(&again))
	assert.Equal(t, buf.Bytes(), again.Bytes())
}
