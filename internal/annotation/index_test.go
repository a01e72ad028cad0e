package annotation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexsuw/drosophila-dna-analysis/internal/genome"
)

func testGene(id, chrom string, start, end int64, strand genome.Strand) *Gene {
	return &Gene{
		ID:       id,
		Interval: genome.Interval{Chrom: chrom, Start: start, End: end, Strand: strand},
	}
}

func TestGene_TSS(t *testing.T) {
	fwd := testGene("g1", "chr2L", 1000, 2000, genome.StrandForward)
	assert.Equal(t, int64(1000), fwd.TSS())

	rev := testGene("g2", "chr2L", 1000, 2000, genome.StrandReverse)
	assert.Equal(t, int64(2000), rev.TSS())

	unknown := testGene("g3", "chr2L", 1000, 2000, genome.StrandUnknown)
	assert.Equal(t, int64(1000), unknown.TSS(), "unknown strand uses the forward convention")
}

func TestBuildIndex_PromoterClipping(t *testing.T) {
	sizes := genome.ChromSizes{"chr2L": 10000}
	g := testGene("g1", "chr2L", 500, 2000, genome.StrandForward)

	idx := BuildIndex([]*Gene{g}, 1000, sizes)

	// TSS=500, window [-500, 1500) clips to [0, 1500)
	_, windows := idx.FindOverlaps(genome.Interval{Chrom: "chr2L", Start: 0, End: 10})
	require.Len(t, windows, 1)
	assert.Equal(t, int64(0), windows[0].Interval.Start)
	assert.Equal(t, int64(1500), windows[0].Interval.End)

	// Reverse-strand gene near the chromosome end clips at the length.
	rev := testGene("g2", "chr2L", 8000, 9800, genome.StrandReverse)
	idx = BuildIndex([]*Gene{rev}, 1000, sizes)

	_, windows = idx.FindOverlaps(genome.Interval{Chrom: "chr2L", Start: 9900, End: 9990})
	require.Len(t, windows, 1)
	assert.Equal(t, int64(8800), windows[0].Interval.Start)
	assert.Equal(t, int64(10000), windows[0].Interval.End)
}

func TestIndex_FindOverlaps(t *testing.T) {
	sizes := genome.ChromSizes{"chr2L": 100000, "chr3R": 100000}
	genes := []*Gene{
		testGene("g1", "chr2L", 10000, 20000, genome.StrandForward),
		testGene("g2", "chr2L", 15000, 25000, genome.StrandReverse),
		testGene("g3", "chr3R", 10000, 20000, genome.StrandForward),
	}
	idx := BuildIndex(genes, 1000, sizes)
	assert.Equal(t, 3, idx.GeneCount())
	assert.Equal(t, []string{"chr2L", "chr3R"}, idx.Chromosomes())

	overlapping, _ := idx.FindOverlaps(genome.Interval{Chrom: "chr2L", Start: 16000, End: 16100})
	require.Len(t, overlapping, 2, "both chr2L genes cover the query")

	overlapping, _ = idx.FindOverlaps(genome.Interval{Chrom: "chr3R", Start: 16000, End: 16100})
	require.Len(t, overlapping, 1)
	assert.Equal(t, "g3", overlapping[0].ID)

	overlapping, windows := idx.FindOverlaps(genome.Interval{Chrom: "chr2L", Start: 50000, End: 50100})
	assert.Empty(t, overlapping)
	assert.Empty(t, windows)

	// g2 is reverse strand: TSS=25000, promoter [24000, 26000)
	_, windows = idx.FindOverlaps(genome.Interval{Chrom: "chr2L", Start: 25500, End: 25600})
	require.Len(t, windows, 1)
	assert.Equal(t, "g2", windows[0].GeneID)
}

func TestBuildIndex_Empty(t *testing.T) {
	idx := BuildIndex(nil, 1000, genome.ChromSizes{"chr2L": 10000})

	genes, windows := idx.FindOverlaps(genome.Interval{Chrom: "chr2L", Start: 0, End: 10000})
	assert.Empty(t, genes)
	assert.Empty(t, windows)
	assert.Equal(t, 0, idx.GeneCount())
}
