package annotation

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alexsuw/drosophila-dna-analysis/internal/genome"
)

// GTFLoader loads gene models from a GTF annotation file.
type GTFLoader struct {
	path string
}

// NewGTFLoader creates a loader for the given GTF path. Gzipped files are
// detected by extension.
func NewGTFLoader(path string) *GTFLoader {
	return &GTFLoader{path: path}
}

// Load parses the GTF file and returns its gene features. Records missing a
// gene_id and malformed lines are skipped; the second return value counts
// them so the caller can log data-quality issues.
func (l *GTFLoader) Load() ([]*Gene, int, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, 0, &genome.MissingInputError{Path: l.path, Err: err}
	}
	defer f.Close()

	var reader io.Reader = f
	if strings.HasSuffix(l.path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, 0, fmt.Errorf("open gzip reader: %w", err)
		}
		defer gz.Close()
		reader = gz
	}

	return l.parseGTF(reader)
}

// gtfFeature is a parsed GTF line.
type gtfFeature struct {
	chrom       string
	featureType string
	start       int64
	end         int64
	strand      string
	attributes  map[string]string
}

func (l *GTFLoader) parseGTF(reader io.Reader) ([]*Gene, int, error) {
	scanner := bufio.NewScanner(reader)
	// Increase buffer size for long attribute lists
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	var genes []*Gene
	seen := make(map[string]bool)
	skipped := 0

	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "#") || line == "" {
			continue
		}

		feat, err := parseLine(line)
		if err != nil {
			skipped++
			continue
		}

		// Transcript, exon and CDS records are redundant at gene
		// granularity.
		if feat.featureType != "gene" {
			continue
		}

		geneID := feat.attributes["gene_id"]
		if geneID == "" {
			skipped++
			continue
		}
		geneID = stripVersion(geneID)
		if seen[geneID] {
			skipped++
			continue
		}

		// GTF coordinates are 1-based inclusive; convert to 0-based
		// half-open.
		iv, err := genome.NewInterval(feat.chrom, feat.start-1, feat.end, genome.ParseStrand(feat.strand))
		if err != nil {
			skipped++
			continue
		}

		seen[geneID] = true
		genes = append(genes, &Gene{
			ID:       geneID,
			Name:     feat.attributes["gene_name"],
			Interval: iv,
			Biotype:  firstNonEmpty(feat.attributes["gene_biotype"], feat.attributes["gene_type"]),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, skipped, fmt.Errorf("read GTF: %w", err)
	}

	return genes, skipped, nil
}

// parseLine parses a single tab-delimited GTF line.
func parseLine(line string) (*gtfFeature, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < 9 {
		return nil, fmt.Errorf("expected 9 fields, got %d", len(fields))
	}

	start, err := strconv.ParseInt(fields[3], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse start: %w", err)
	}
	end, err := strconv.ParseInt(fields[4], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse end: %w", err)
	}

	return &gtfFeature{
		chrom:       fields[0],
		featureType: fields[2],
		start:       start,
		end:         end,
		strand:      fields[6],
		attributes:  parseAttributes(fields[8]),
	}, nil
}

// parseAttributes parses the GTF attribute column:
// gene_id "FBgn0000001"; gene_name "a"; ...
func parseAttributes(s string) map[string]string {
	attrs := make(map[string]string)
	for _, part := range strings.Split(s, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		idx := strings.IndexByte(part, ' ')
		if idx < 0 {
			continue
		}
		key := part[:idx]
		value := strings.Trim(strings.TrimSpace(part[idx+1:]), `"`)
		attrs[key] = value
	}
	return attrs
}

// stripVersion removes a trailing version suffix from a feature ID
// (FBgn0000001.2 -> FBgn0000001).
func stripVersion(id string) string {
	if idx := strings.LastIndexByte(id, '.'); idx > 0 {
		return id[:idx]
	}
	return id
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
