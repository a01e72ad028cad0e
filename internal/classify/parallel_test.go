package classify

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexsuw/drosophila-dna-analysis/internal/annotation"
	"github.com/alexsuw/drosophila-dna-analysis/internal/genome"
	"github.com/alexsuw/drosophila-dna-analysis/internal/motif"
)

func TestClassifyAll_PreservesInputOrder(t *testing.T) {
	c := NewClassifier(singleGeneIndex(t))

	var motifs []motif.Motif
	for i := 0; i < 200; i++ {
		start := int64(i * 40)
		motifs = append(motifs, zdnaAt("chr1", start, start+20, 350))
	}

	results := c.ClassifyAll(motifs, 4)
	require.Len(t, results, len(motifs))

	for i, r := range results {
		assert.Equal(t, motifs[i].Interval, r.Motif.Interval, "result %d out of order", i)
	}
}

func TestClassifyAll_MatchesSequential(t *testing.T) {
	c := NewClassifier(singleGeneIndex(t))

	var motifs []motif.Motif
	for i := 0; i < 50; i++ {
		start := int64(i * 150)
		motifs = append(motifs, zdnaAt("chr1", start, start+30, 350))
	}

	parallel := c.ClassifyAll(motifs, 8)
	for i, m := range motifs {
		assert.Equal(t, c.Classify(m), parallel[i])
	}
}

func TestOrderedCollect_BuffersOutOfOrder(t *testing.T) {
	results := make(chan WorkResult, 4)
	results <- WorkResult{Seq: 2}
	results <- WorkResult{Seq: 0}
	results <- WorkResult{Seq: 3}
	results <- WorkResult{Seq: 1}
	close(results)

	var seen int
	err := OrderedCollect(results, func(r Result) error {
		seen++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 4, seen)
}

func TestOrderedCollect_StopsOnError(t *testing.T) {
	results := make(chan WorkResult, 2)
	results <- WorkResult{Seq: 0}
	results <- WorkResult{Seq: 1}
	close(results)

	calls := 0
	err := OrderedCollect(results, func(r Result) error {
		calls++
		return fmt.Errorf("sink failed")
	})
	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestParallelClassify_EmptyInput(t *testing.T) {
	idx := annotation.BuildIndex(nil, 1000, genome.ChromSizes{"chr1": 10000})
	c := NewClassifier(idx)

	assert.Empty(t, c.ClassifyAll(nil, 2))
}
