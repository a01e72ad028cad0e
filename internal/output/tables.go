// Package output renders aggregation reports as the tabular and JSON
// artifacts consumed by downstream report rendering and enrichment tools.
package output

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/alexsuw/drosophila-dna-analysis/internal/classify"
	"github.com/alexsuw/drosophila-dna-analysis/internal/stats"
)

// SummaryWriter writes the per-kind summary statistics table.
type SummaryWriter struct {
	w       *bufio.Writer
	columns []string
}

// NewSummaryWriter creates a tab-delimited summary table writer.
func NewSummaryWriter(w io.Writer) *SummaryWriter {
	return &SummaryWriter{
		w: bufio.NewWriter(w),
		columns: []string{
			"#kind",
			"total",
			"mean_score",
			"mean_length",
			"gene_count",
			"gene_pct",
			"promoter_count",
			"promoter_pct",
			"intergenic_count",
			"intergenic_pct",
		},
	}
}

// WriteHeader writes the header line.
func (sw *SummaryWriter) WriteHeader() error {
	_, err := sw.w.WriteString(strings.Join(sw.columns, "\t") + "\n")
	return err
}

// Write writes one kind's summary row.
func (sw *SummaryWriter) Write(s *stats.KindSummary) error {
	gene := s.ByContext[classify.ContextGene.String()]
	promoter := s.ByContext[classify.ContextPromoter.String()]
	intergenic := s.ByContext[classify.ContextIntergenic.String()]

	_, err := fmt.Fprintf(sw.w, "%s\t%d\t%.2f\t%.2f\t%d\t%.2f\t%d\t%.2f\t%d\t%.2f\n",
		s.Kind, s.Total, s.MeanScore, s.MeanLength,
		gene.Count, gene.Percent,
		promoter.Count, promoter.Percent,
		intergenic.Count, intergenic.Percent)
	return err
}

// Flush flushes buffered output.
func (sw *SummaryWriter) Flush() error {
	return sw.w.Flush()
}

// ChromWriter writes the per-chromosome distribution table.
type ChromWriter struct {
	w       *bufio.Writer
	columns []string
}

// NewChromWriter creates a tab-delimited per-chromosome table writer.
func NewChromWriter(w io.Writer) *ChromWriter {
	return &ChromWriter{
		w: bufio.NewWriter(w),
		columns: []string{
			"#kind",
			"chromosome",
			"count",
			"min_score",
			"max_score",
			"mean_score",
		},
	}
}

// WriteHeader writes the header line.
func (cw *ChromWriter) WriteHeader() error {
	_, err := cw.w.WriteString(strings.Join(cw.columns, "\t") + "\n")
	return err
}

// Write writes one kind's rows, chromosomes sorted for reproducible output.
func (cw *ChromWriter) Write(s *stats.KindSummary) error {
	chroms := make([]string, 0, len(s.ByChrom))
	for chrom := range s.ByChrom {
		chroms = append(chroms, chrom)
	}
	sort.Strings(chroms)

	for _, chrom := range chroms {
		cs := s.ByChrom[chrom]
		_, err := fmt.Fprintf(cw.w, "%s\t%s\t%d\t%.1f\t%.1f\t%.1f\n",
			s.Kind, chrom, cs.Count, cs.MinScore, cs.MaxScore, cs.MeanScore)
		if err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes buffered output.
func (cw *ChromWriter) Flush() error {
	return cw.w.Flush()
}
