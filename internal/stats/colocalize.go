package stats

import (
	"sort"

	"github.com/alexsuw/drosophila-dna-analysis/internal/motif"
)

// Colocalization summarizes Z-DNA/G4 motif pairs lying within a fixed
// window of each other on the same chromosome.
type Colocalization struct {
	Window       int64   `json:"window"`
	Pairs        int     `json:"pairs"`
	G4WithZDNA   int     `json:"g4_with_zdna"`
	ZDNAWithG4   int     `json:"zdna_with_g4"`
	MeanDistance float64 `json:"mean_distance"`
}

type colocEntry struct {
	start  int64
	end    int64
	maxEnd int64 // max(end) over entries[0:i+1], for backward-scan pruning
	id     int
}

// Colocalize finds all Z-DNA/G4 pairs whose intervals lie within window
// bases of each other (0 distance for overlapping pairs). The result does
// not depend on input ordering.
func Colocalize(zdna, g4 []motif.Motif, window int64) *Colocalization {
	c := &Colocalization{Window: window}
	if len(zdna) == 0 || len(g4) == 0 {
		return c
	}

	byChrom := make(map[string][]colocEntry)
	for i, m := range zdna {
		byChrom[m.Interval.Chrom] = append(byChrom[m.Interval.Chrom], colocEntry{
			start: m.Interval.Start,
			end:   m.Interval.End,
			id:    i,
		})
	}
	for chrom := range byChrom {
		entries := byChrom[chrom]
		sort.Slice(entries, func(i, j int) bool { return entries[i].start < entries[j].start })
		maxEnd := int64(0)
		for i := range entries {
			if entries[i].end > maxEnd {
				maxEnd = entries[i].end
			}
			entries[i].maxEnd = maxEnd
		}
		byChrom[chrom] = entries
	}

	g4Hit := make(map[int]bool)
	zdnaHit := make(map[int]bool)
	var distanceSum int64

	for gi, g := range g4 {
		entries, ok := byChrom[g.Interval.Chrom]
		if !ok {
			continue
		}

		// Candidates start at or before the expanded query end; scan
		// backward with the prefix-max prune, mirroring the annotation
		// index. Edges are inclusive: a gap of exactly window qualifies.
		qStart, qEnd := g.Interval.Start-window, g.Interval.End+window
		hi := sort.Search(len(entries), func(i int) bool {
			return entries[i].start > qEnd
		})
		for i := hi - 1; i >= 0; i-- {
			if entries[i].maxEnd < qStart {
				break
			}
			z := entries[i]
			d := int64(0)
			if z.end <= g.Interval.Start {
				d = g.Interval.Start - z.end
			} else if g.Interval.End <= z.start {
				d = z.start - g.Interval.End
			}
			if d > window {
				continue
			}
			c.Pairs++
			distanceSum += d
			g4Hit[gi] = true
			zdnaHit[z.id] = true
		}
	}

	c.G4WithZDNA = len(g4Hit)
	c.ZDNAWithG4 = len(zdnaHit)
	if c.Pairs > 0 {
		c.MeanDistance = float64(distanceSum) / float64(c.Pairs)
	}
	return c
}
