package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/alexsuw/drosophila-dna-analysis/internal/annotation"
	"github.com/alexsuw/drosophila-dna-analysis/internal/classify"
	"github.com/alexsuw/drosophila-dna-analysis/internal/genome"
	"github.com/alexsuw/drosophila-dna-analysis/internal/motif"
	"github.com/alexsuw/drosophila-dna-analysis/internal/output"
	"github.com/alexsuw/drosophila-dna-analysis/internal/resultsdb"
	"github.com/alexsuw/drosophila-dna-analysis/internal/stats"
)

func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Classify structural motifs and aggregate statistics",
		Long: `Classify retained Z-DNA and G-quadruplex motifs by genomic context
against a gene annotation, then write summary tables, gene lists and a
JSON run summary to the output directory.`,
		Example: `  dna-analysis analyze \
    --gtf dmel.gtf.gz --chrom-sizes dm6.chrom.sizes \
    --zdna results/zdna_structures.txt --g4 results/quadruplex_results.csv \
    --out results/`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze()
		},
	}

	flags := cmd.Flags()
	flags.String("gtf", "", "Gene annotation GTF file (required)")
	flags.String("chrom-sizes", "", "Chromosome length table (required)")
	flags.String("zdna", "", "Z-DNA predictions TSV (required)")
	flags.String("g4", "", "G-quadruplex predictions CSV (required)")
	flags.String("out", "results", "Output directory")
	flags.Int64("promoter-half-width", 1000, "Promoter window half-width around the TSS (bp)")
	flags.Float64("zscore-min", 300, "Minimum retained Z-DNA Z-score (inclusive)")
	flags.Float64("zscore-max", 400, "Maximum retained Z-DNA Z-score (inclusive)")
	flags.Float64("g4-min-score", 60, "Minimum retained G-quadruplex score")
	flags.Int64("coloc-window", 1000, "Colocalization window between Z-DNA and G4 motifs (bp)")
	flags.String("precedence", "promoter>gene", "Context precedence for multi-overlap motifs")
	flags.Int("workers", 0, "Classification workers (0 = all CPUs)")
	flags.String("duckdb", "", "Also write classifications to a DuckDB database at this path")
	flags.Bool("verbose", false, "Verbose logging")

	for _, required := range []string{"gtf", "chrom-sizes", "zdna", "g4"} {
		_ = cmd.MarkFlagRequired(required)
	}
	_ = viper.BindPFlags(flags)

	return cmd
}

func runAnalyze() error {
	logger, err := newLogger(viper.GetBool("verbose"))
	if err != nil {
		return err
	}
	defer logger.Sync()

	halfWidth := viper.GetInt64("promoter-half-width")
	zdnaFilter := motif.RangeFilter{Min: viper.GetFloat64("zscore-min"), Max: viper.GetFloat64("zscore-max")}
	g4Filter := motif.ThresholdFilter{Min: viper.GetFloat64("g4-min-score")}

	precedence, err := classify.ParsePrecedence(viper.GetString("precedence"))
	if err != nil {
		return err
	}

	sizes, err := genome.LoadChromSizes(viper.GetString("chrom-sizes"))
	if err != nil {
		return err
	}
	logger.Info("loaded chromosome table", zap.Int("chromosomes", len(sizes)))

	genes, gtfSkipped, err := annotation.NewGTFLoader(viper.GetString("gtf")).Load()
	if err != nil {
		return err
	}
	if gtfSkipped > 0 {
		logger.Warn("skipped malformed annotation records", zap.Int("skipped", gtfSkipped))
	}
	logger.Info("loaded gene annotation", zap.Int("genes", len(genes)))

	index := annotation.BuildIndex(genes, halfWidth, sizes)

	zdnaMotifs, zdnaStats, err := loadMotifs(viper.GetString("zdna"), motif.KindZDNA, zdnaFilter, sizes)
	if err != nil {
		return err
	}
	logLoad(logger, motif.KindZDNA, zdnaStats)

	g4Motifs, g4Stats, err := loadMotifs(viper.GetString("g4"), motif.KindG4, g4Filter, sizes)
	if err != nil {
		return err
	}
	logLoad(logger, motif.KindG4, g4Stats)

	classifier := classify.NewClassifier(index)
	classifier.SetPrecedence(precedence)
	classifier.SetLogger(logger)

	all := make([]motif.Motif, 0, len(zdnaMotifs)+len(g4Motifs))
	all = append(all, zdnaMotifs...)
	all = append(all, g4Motifs...)
	results := classifier.ClassifyAll(all, viper.GetInt("workers"))

	tally := stats.NewTally()
	for _, r := range results {
		tally.Add(r)
	}
	report := tally.Report()
	report.Colocalization = stats.Colocalize(zdnaMotifs, g4Motifs, viper.GetInt64("coloc-window"))
	logger.Info("classification complete",
		zap.Int("motifs", len(results)),
		zap.Int("coloc_pairs", report.Colocalization.Pairs))

	outDir := viper.GetString("out")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	filtering := output.Filtering{
		MinZScore:         zdnaFilter.Min,
		MaxZScore:         zdnaFilter.Max,
		MinG4Score:        g4Filter.Min,
		PromoterHalfWidth: halfWidth,
	}
	if err := writeArtifacts(outDir, report, len(genes), filtering, zdnaStats, g4Stats); err != nil {
		return err
	}

	if dbPath := viper.GetString("duckdb"); dbPath != "" {
		if err := writeResultsDB(dbPath, results, report); err != nil {
			return err
		}
		logger.Info("wrote results database", zap.String("path", dbPath))
	}

	logger.Info("analysis complete", zap.String("out", outDir))
	return nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	return cfg.Build()
}

func loadMotifs(path string, kind motif.Kind, filter motif.ScoreFilter, sizes genome.ChromSizes) ([]motif.Motif, motif.LoadStats, error) {
	var parser motif.Parser
	var err error
	switch kind {
	case motif.KindZDNA:
		parser, err = motif.NewZDNAParser(path, filter, sizes)
	case motif.KindG4:
		parser, err = motif.NewG4Parser(path, filter, sizes)
	default:
		return nil, motif.LoadStats{}, fmt.Errorf("unknown motif kind %v", kind)
	}
	if err != nil {
		return nil, motif.LoadStats{}, err
	}
	defer parser.Close()

	return motif.LoadAll(parser)
}

func logLoad(logger *zap.Logger, kind motif.Kind, s motif.LoadStats) {
	logger.Info("loaded motif predictions",
		zap.String("kind", kind.String()),
		zap.Int("retained", s.Retained),
		zap.Int("filtered", s.Filtered),
		zap.Int("skipped", s.Skipped))
	if s.Skipped > 0 {
		logger.Warn("skipped malformed prediction rows",
			zap.String("kind", kind.String()),
			zap.Int("skipped", s.Skipped))
	}
}

// writeArtifacts renders every output file. Each file lands atomically and
// nothing is written before the whole input was loaded and classified.
func writeArtifacts(outDir string, report *stats.Report, genes int, filtering output.Filtering, zdnaStats, g4Stats motif.LoadStats) error {
	writeTable := func(name string, render func(f *os.File) error) error {
		return output.WriteFileAtomic(filepath.Join(outDir, name), render)
	}

	if err := writeTable("summary.tsv", func(f *os.File) error {
		sw := output.NewSummaryWriter(f)
		if err := sw.WriteHeader(); err != nil {
			return err
		}
		if err := sw.Write(report.ZDNA); err != nil {
			return err
		}
		if err := sw.Write(report.G4); err != nil {
			return err
		}
		return sw.Flush()
	}); err != nil {
		return err
	}

	if err := writeTable("chromosomes.tsv", func(f *os.File) error {
		cw := output.NewChromWriter(f)
		if err := cw.WriteHeader(); err != nil {
			return err
		}
		if err := cw.Write(report.ZDNA); err != nil {
			return err
		}
		if err := cw.Write(report.G4); err != nil {
			return err
		}
		return cw.Flush()
	}); err != nil {
		return err
	}

	geneLists := []struct {
		name  string
		genes []string
	}{
		{"genes_zdna.txt", report.ZDNA.Genes},
		{"genes_g4.txt", report.G4.Genes},
		{"genes_both_promoters.txt", report.GenesWithBoth},
	}
	for _, gl := range geneLists {
		ids := gl.genes
		if err := writeTable(gl.name, func(f *os.File) error {
			return output.WriteGeneList(f, ids)
		}); err != nil {
			return err
		}
	}

	summary := output.NewRunSummary(report, genes, filtering, zdnaStats, g4Stats)
	return writeTable("summary.json", func(f *os.File) error {
		return summary.WriteJSON(f)
	})
}

func writeResultsDB(path string, results []classify.Result, report *stats.Report) error {
	db, err := resultsdb.Open(path)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.CreateSchema(); err != nil {
		return err
	}
	if err := db.InsertResults(results); err != nil {
		return err
	}
	for name, genes := range map[string][]string{
		"genes_zdna":           report.ZDNA.Genes,
		"genes_g4":             report.G4.Genes,
		"genes_both_promoters": report.GenesWithBoth,
	} {
		if err := db.InsertGeneList(name, genes); err != nil {
			return err
		}
	}
	return nil
}
