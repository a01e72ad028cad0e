package annotation

import (
	"sort"

	"github.com/alexsuw/drosophila-dna-analysis/internal/genome"
)

// Index provides overlap lookup of genes and derived promoter windows, one
// sorted interval collection per chromosome. It is built once and read-only
// afterwards, so concurrent queries need no locking.
type Index struct {
	genes     map[string]*intervalTree[*Gene]
	promoters map[string]*intervalTree[PromoterWindow]
	geneCount int
	halfWidth int64
}

// BuildIndex derives promoter windows with the given half-width, clips them
// to chromosome bounds, and indexes genes and windows per chromosome. An
// empty gene set yields a valid index whose every query is empty.
func BuildIndex(genes []*Gene, promoterHalfWidth int64, sizes genome.ChromSizes) *Index {
	geneIvs := make(map[string][]treeInterval[*Gene])
	promIvs := make(map[string][]treeInterval[PromoterWindow])

	for _, g := range genes {
		chrom := g.Interval.Chrom
		geneIvs[chrom] = append(geneIvs[chrom], treeInterval[*Gene]{
			start: g.Interval.Start,
			end:   g.Interval.End,
			item:  g,
		})

		w := promoterWindow(g, promoterHalfWidth, sizes)
		if w.Interval.Length() == 0 {
			continue
		}
		promIvs[chrom] = append(promIvs[chrom], treeInterval[PromoterWindow]{
			start: w.Interval.Start,
			end:   w.Interval.End,
			item:  w,
		})
	}

	idx := &Index{
		genes:     make(map[string]*intervalTree[*Gene], len(geneIvs)),
		promoters: make(map[string]*intervalTree[PromoterWindow], len(promIvs)),
		geneCount: len(genes),
		halfWidth: promoterHalfWidth,
	}
	for chrom, ivs := range geneIvs {
		idx.genes[chrom] = buildIntervalTree(ivs)
	}
	for chrom, ivs := range promIvs {
		idx.promoters[chrom] = buildIntervalTree(ivs)
	}
	return idx
}

// FindOverlaps returns every gene and promoter window overlapping the
// query interval. Results are complete and duplicate-free.
func (idx *Index) FindOverlaps(iv genome.Interval) ([]*Gene, []PromoterWindow) {
	var genes []*Gene
	if tree, ok := idx.genes[iv.Chrom]; ok {
		genes = tree.findOverlaps(iv.Start, iv.End)
	}
	var windows []PromoterWindow
	if tree, ok := idx.promoters[iv.Chrom]; ok {
		windows = tree.findOverlaps(iv.Start, iv.End)
	}
	return genes, windows
}

// GeneCount returns the number of indexed genes.
func (idx *Index) GeneCount() int {
	return idx.geneCount
}

// PromoterHalfWidth returns the half-width the promoter windows were
// derived with.
func (idx *Index) PromoterHalfWidth() int64 {
	return idx.halfWidth
}

// Chromosomes returns the sorted chromosome names carrying indexed genes.
func (idx *Index) Chromosomes() []string {
	chroms := make([]string, 0, len(idx.genes))
	for chrom := range idx.genes {
		chroms = append(chroms, chrom)
	}
	sort.Strings(chroms)
	return chroms
}
