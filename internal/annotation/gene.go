// Package annotation loads gene models and provides fast overlap lookup of
// genes and derived promoter windows.
package annotation

import (
	"github.com/alexsuw/drosophila-dna-analysis/internal/genome"
)

// Gene is a gene model from the annotation input. Genes are constructed
// once by the loader and immutable thereafter.
type Gene struct {
	ID       string // Gene identifier (e.g., FBgn0000001)
	Name     string // Gene symbol, when present
	Interval genome.Interval
	Biotype  string
}

// TSS returns the transcription start site: Start on the forward strand,
// End on the reverse strand. Unknown-strand genes use the forward
// convention.
func (g *Gene) TSS() int64 {
	if g.Interval.Strand == genome.StrandReverse {
		return g.Interval.End
	}
	return g.Interval.Start
}

// PromoterWindow is the fixed-width regulatory window around a gene's TSS.
type PromoterWindow struct {
	GeneID   string
	Interval genome.Interval
}

// promoterWindow derives [TSS-halfWidth, TSS+halfWidth) clipped to the
// chromosome bounds.
func promoterWindow(g *Gene, halfWidth int64, sizes genome.ChromSizes) PromoterWindow {
	tss := g.TSS()
	iv := genome.Interval{
		Chrom:  g.Interval.Chrom,
		Start:  tss - halfWidth,
		End:    tss + halfWidth,
		Strand: g.Interval.Strand,
	}
	return PromoterWindow{GeneID: g.ID, Interval: sizes.Clip(iv)}
}
