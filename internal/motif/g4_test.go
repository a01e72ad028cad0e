package motif

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexsuw/drosophila-dna-analysis/internal/genome"
)

func TestG4Parser(t *testing.T) {
	content := "chromosome,start,end,length,sequence,g_run_length,g_content,gc_content,score\n" +
		"chr2L,1500,1525,25,GGGATGGGTTGGGCAGGG,3,0.52,0.64,72.5\n" + // retained
		"chr2L,3000,3020,20,GGGAGGGAGGGAGGG,3,0.6,0.6,55.0\n" + // below threshold
		"chr3R,100,130,30,GGGGTTGGGGTTGGGGTTGGGG,4,0.6,0.6,60.0\n" // retained, boundary

	p, err := NewG4Parser(writeFile(t, "g4.csv", content), ThresholdFilter{Min: 60}, testSizes)
	require.NoError(t, err)
	defer p.Close()

	motifs, stats, err := LoadAll(p)
	require.NoError(t, err)

	require.Len(t, motifs, 2)
	assert.Equal(t, KindG4, motifs[0].Kind)
	assert.Equal(t, "chr2L", motifs[0].Interval.Chrom)
	assert.Equal(t, 72.5, motifs[0].Score)
	assert.Equal(t, "GGGATGGGTTGGGCAGGG", motifs[0].Sequence)
	assert.Equal(t, 60.0, motifs[1].Score, "inclusive threshold")

	assert.Equal(t, LoadStats{Retained: 2, Skipped: 0, Filtered: 1}, stats)

	for _, m := range motifs {
		assert.GreaterOrEqual(t, m.Score, 60.0)
	}
}

func TestG4Parser_MinimalColumns(t *testing.T) {
	content := "chromosome,start,end,score\n" + "chr2L,1500,1525,80\n"

	p, err := NewG4Parser(writeFile(t, "g4.csv", content), ThresholdFilter{Min: 60}, testSizes)
	require.NoError(t, err)
	defer p.Close()

	motifs, _, err := LoadAll(p)
	require.NoError(t, err)
	require.Len(t, motifs, 1)
	assert.Empty(t, motifs[0].Sequence)
}

func TestG4Parser_SkipsMalformedRows(t *testing.T) {
	content := "chromosome,start,end,score\n" +
		"chr2L,abc,1525,80\n" + // non-numeric start
		"chrUn,1500,1525,80\n" + // unknown chromosome
		"chr2L,1500,1500,80\n" + // zero-length interval
		"chr2L,1500,1525,80\n" // retained

	p, err := NewG4Parser(writeFile(t, "g4.csv", content), ThresholdFilter{Min: 60}, testSizes)
	require.NoError(t, err)
	defer p.Close()

	motifs, stats, err := LoadAll(p)
	require.NoError(t, err)

	assert.Len(t, motifs, 1)
	assert.Equal(t, 3, stats.Skipped)
}

func TestG4Parser_SchemaMismatch(t *testing.T) {
	content := "chromosome,start,end,g_content\nchr2L,1500,1525,0.5\n"

	_, err := NewG4Parser(writeFile(t, "g4.csv", content), ThresholdFilter{Min: 60}, testSizes)
	require.Error(t, err)

	var schema *genome.SchemaMismatchError
	assert.True(t, errors.As(err, &schema))
}

func TestFilters(t *testing.T) {
	r := RangeFilter{Min: 300, Max: 400}
	assert.True(t, r.Retain(300))
	assert.True(t, r.Retain(400))
	assert.False(t, r.Retain(299.9))
	assert.False(t, r.Retain(400.1))

	th := ThresholdFilter{Min: 60}
	assert.True(t, th.Retain(60))
	assert.True(t, th.Retain(1000))
	assert.False(t, th.Retain(59.9))
}
