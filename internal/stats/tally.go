// Package stats aggregates classification results into the summary
// statistics, per-chromosome breakdowns and gene lists of the analysis.
package stats

import (
	"math"
	"sort"

	"github.com/alexsuw/drosophila-dna-analysis/internal/classify"
	"github.com/alexsuw/drosophila-dna-analysis/internal/motif"
)

// Tally accumulates order-independent partial statistics. Additions reduce
// to sums and set unions only, so tallies built from any sharding or
// ordering of the same results merge to identical reports.
type Tally struct {
	kinds map[motif.Kind]*kindTally
}

type kindTally struct {
	count         int
	scoreSum      float64
	lengthSum     int64
	byContext     map[classify.Context]int
	byChrom       map[string]*chromTally
	genes         map[string]struct{}
	promoterGenes map[string]struct{}
}

type chromTally struct {
	count    int
	scoreSum float64
	minScore float64
	maxScore float64
}

// NewTally creates an empty tally.
func NewTally() *Tally {
	return &Tally{kinds: make(map[motif.Kind]*kindTally)}
}

func newKindTally() *kindTally {
	return &kindTally{
		byContext:     make(map[classify.Context]int),
		byChrom:       make(map[string]*chromTally),
		genes:         make(map[string]struct{}),
		promoterGenes: make(map[string]struct{}),
	}
}

// Add folds one classification result into the tally.
func (t *Tally) Add(r classify.Result) {
	kt, ok := t.kinds[r.Motif.Kind]
	if !ok {
		kt = newKindTally()
		t.kinds[r.Motif.Kind] = kt
	}

	kt.count++
	kt.scoreSum += r.Motif.Score
	kt.lengthSum += r.Motif.Interval.Length()
	kt.byContext[r.Context]++

	ct, ok := kt.byChrom[r.Motif.Interval.Chrom]
	if !ok {
		ct = &chromTally{minScore: math.Inf(1), maxScore: math.Inf(-1)}
		kt.byChrom[r.Motif.Interval.Chrom] = ct
	}
	ct.count++
	ct.scoreSum += r.Motif.Score
	ct.minScore = math.Min(ct.minScore, r.Motif.Score)
	ct.maxScore = math.Max(ct.maxScore, r.Motif.Score)

	for _, id := range r.Genes {
		kt.genes[id] = struct{}{}
	}
	for _, id := range r.PromoterGenes {
		kt.promoterGenes[id] = struct{}{}
	}
}

// Merge folds another tally into this one. Merge is associative and
// commutative, so per-worker partial tallies combine in any order.
func (t *Tally) Merge(other *Tally) {
	for kind, okt := range other.kinds {
		kt, ok := t.kinds[kind]
		if !ok {
			kt = newKindTally()
			t.kinds[kind] = kt
		}
		kt.count += okt.count
		kt.scoreSum += okt.scoreSum
		kt.lengthSum += okt.lengthSum
		for ctx, n := range okt.byContext {
			kt.byContext[ctx] += n
		}
		for chrom, oct := range okt.byChrom {
			ct, ok := kt.byChrom[chrom]
			if !ok {
				ct = &chromTally{minScore: math.Inf(1), maxScore: math.Inf(-1)}
				kt.byChrom[chrom] = ct
			}
			ct.count += oct.count
			ct.scoreSum += oct.scoreSum
			ct.minScore = math.Min(ct.minScore, oct.minScore)
			ct.maxScore = math.Max(ct.maxScore, oct.maxScore)
		}
		for id := range okt.genes {
			kt.genes[id] = struct{}{}
		}
		for id := range okt.promoterGenes {
			kt.promoterGenes[id] = struct{}{}
		}
	}
}

// ContextStats is the count and share of one genomic context.
type ContextStats struct {
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// ChromStats is the per-chromosome breakdown for one motif kind.
type ChromStats struct {
	Count     int     `json:"count"`
	MinScore  float64 `json:"min_score"`
	MaxScore  float64 `json:"max_score"`
	MeanScore float64 `json:"mean_score"`
}

// KindSummary holds the aggregate statistics for one motif kind.
type KindSummary struct {
	Kind          string                  `json:"kind"`
	Total         int                     `json:"total"`
	MeanScore     float64                 `json:"mean_score"`
	MeanLength    float64                 `json:"mean_length"`
	ByContext     map[string]ContextStats `json:"by_context"`
	ByChrom       map[string]ChromStats   `json:"by_chromosome"`
	Genes         []string                `json:"-"`
	PromoterGenes []string                `json:"-"`
}

// Report is the final aggregation output, emitted only after the full
// input has been loaded and classified.
type Report struct {
	ZDNA           *KindSummary    `json:"zdna"`
	G4             *KindSummary    `json:"g4"`
	GenesWithBoth  []string        `json:"-"`
	Colocalization *Colocalization `json:"colocalization,omitempty"`
}

// Report finalizes the tally. Percentages are count/total for that kind,
// reported as 0 when the kind total is 0. Gene lists are sorted so repeated
// runs over identical input serialize byte-identically.
func (t *Tally) Report() *Report {
	zdna := t.summarize(motif.KindZDNA)
	g4 := t.summarize(motif.KindG4)

	return &Report{
		ZDNA:          zdna,
		G4:            g4,
		GenesWithBoth: intersect(zdna.PromoterGenes, g4.PromoterGenes),
	}
}

func (t *Tally) summarize(kind motif.Kind) *KindSummary {
	s := &KindSummary{
		Kind:      kind.String(),
		ByContext: make(map[string]ContextStats, len(classify.Contexts)),
		ByChrom:   make(map[string]ChromStats),
	}

	kt, ok := t.kinds[kind]
	if !ok {
		kt = newKindTally()
	}

	s.Total = kt.count
	if kt.count > 0 {
		s.MeanScore = kt.scoreSum / float64(kt.count)
		s.MeanLength = float64(kt.lengthSum) / float64(kt.count)
	}

	for _, ctx := range classify.Contexts {
		count := kt.byContext[ctx]
		percent := 0.0
		if kt.count > 0 {
			percent = float64(count) / float64(kt.count) * 100
		}
		s.ByContext[ctx.String()] = ContextStats{Count: count, Percent: percent}
	}

	for chrom, ct := range kt.byChrom {
		s.ByChrom[chrom] = ChromStats{
			Count:     ct.count,
			MinScore:  ct.minScore,
			MaxScore:  ct.maxScore,
			MeanScore: ct.scoreSum / float64(ct.count),
		}
	}

	s.Genes = sortedSet(kt.genes)
	s.PromoterGenes = sortedSet(kt.promoterGenes)
	return s
}

func sortedSet(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// intersect returns the sorted intersection of two sorted string slices.
func intersect(a, b []string) []string {
	out := []string{}
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			out = append(out, a[i])
			i++
			j++
		case a[i] < b[j]:
			i++
		default:
			j++
		}
	}
	return out
}
