// Package classify assigns genomic context to structural motifs by overlap
// with an annotation index.
package classify

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/alexsuw/drosophila-dna-analysis/internal/annotation"
	"github.com/alexsuw/drosophila-dna-analysis/internal/motif"
)

// Context is the genomic context of a classified motif.
type Context int8

const (
	ContextIntergenic Context = iota
	ContextGene
	ContextPromoter
)

// Contexts lists every context in a fixed reporting order.
var Contexts = []Context{ContextGene, ContextPromoter, ContextIntergenic}

// String returns the display name of the context.
func (c Context) String() string {
	switch c {
	case ContextGene:
		return "GENE"
	case ContextPromoter:
		return "PROMOTER"
	case ContextIntergenic:
		return "INTERGENIC"
	default:
		return "UNKNOWN"
	}
}

// DefaultPrecedence resolves multi-overlap ties: promoter overlap, even
// partial, dominates gene-body overlap. INTERGENIC is always the fallback
// and never listed.
var DefaultPrecedence = []Context{ContextPromoter, ContextGene}

// ParsePrecedence parses a precedence expression such as "promoter>gene".
func ParsePrecedence(expr string) ([]Context, error) {
	if expr == "" {
		return DefaultPrecedence, nil
	}

	var order []Context
	seen := make(map[Context]bool)
	for _, name := range strings.Split(expr, ">") {
		var c Context
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "promoter":
			c = ContextPromoter
		case "gene":
			c = ContextGene
		default:
			return nil, fmt.Errorf("unknown context %q in precedence %q", name, expr)
		}
		if seen[c] {
			return nil, fmt.Errorf("duplicate context %q in precedence %q", name, expr)
		}
		seen[c] = true
		order = append(order, c)
	}
	if len(order) != 2 {
		return nil, fmt.Errorf("precedence %q must order both promoter and gene", expr)
	}
	return order, nil
}

// Result is the classification of a single motif. The full overlapping-gene
// set is recorded regardless of which context wins; gene-list reporting
// needs every gene touched, not just the classifying one.
type Result struct {
	Motif         motif.Motif
	Context       Context
	Genes         []string // sorted unique IDs of genes touched via body or promoter
	PromoterGenes []string // sorted unique IDs of genes touched via promoter window
}

// Classifier classifies motifs against a read-only annotation index. It
// holds no mutable state, so one classifier is safe to share across
// workers.
type Classifier struct {
	index      *annotation.Index
	precedence []Context
	logger     *zap.Logger
}

// NewClassifier creates a classifier using the default context precedence.
func NewClassifier(index *annotation.Index) *Classifier {
	return &Classifier{
		index:      index,
		precedence: DefaultPrecedence,
		logger:     zap.NewNop(),
	}
}

// SetPrecedence overrides the multi-overlap tie-break order.
func (c *Classifier) SetPrecedence(order []Context) {
	c.precedence = order
}

// SetLogger sets the logger for warning and info messages.
func (c *Classifier) SetLogger(l *zap.Logger) {
	c.logger = l
}

// Classify determines the genomic context of a motif. Pure function over
// the immutable index; safe to invoke concurrently.
func (c *Classifier) Classify(m motif.Motif) Result {
	genes, windows := c.index.FindOverlaps(m.Interval)

	geneSet := make(map[string]struct{}, len(genes)+len(windows))
	for _, g := range genes {
		geneSet[g.ID] = struct{}{}
	}
	promSet := make(map[string]struct{}, len(windows))
	for _, w := range windows {
		geneSet[w.GeneID] = struct{}{}
		promSet[w.GeneID] = struct{}{}
	}

	context := ContextIntergenic
	for _, candidate := range c.precedence {
		if candidate == ContextPromoter && len(windows) > 0 {
			context = ContextPromoter
			break
		}
		if candidate == ContextGene && len(genes) > 0 {
			context = ContextGene
			break
		}
	}

	return Result{
		Motif:         m,
		Context:       context,
		Genes:         sortedKeys(geneSet),
		PromoterGenes: sortedKeys(promSet),
	}
}

func sortedKeys(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
