package motif

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexsuw/drosophila-dna-analysis/internal/genome"
)

// ZDNA prediction files are tab-delimited with a header line:
//
//	chromosome	start	end	zscore
//
// as written by the Z-Hunt extraction step.
const (
	zdnaColChromosome = "chromosome"
	zdnaColStart      = "start"
	zdnaColEnd        = "end"
	zdnaColZScore     = "zscore"
)

// ZDNAParser streams Z-DNA motif records from a prediction file.
type ZDNAParser struct {
	path    string
	scanner *bufio.Scanner
	close   func() error
	cols    zdnaColumns
	lineNum int
	stats   LoadStats
	filter  ScoreFilter
	sizes   genome.ChromSizes
}

type zdnaColumns struct {
	chromosome int
	start      int
	end        int
	zscore     int
}

// NewZDNAParser opens a Z-DNA prediction file and resolves its header.
// Rows are retained only when their Z-score passes the filter; rows on
// chromosomes absent from sizes are skipped as malformed.
func NewZDNAParser(path string, filter ScoreFilter, sizes genome.ChromSizes) (*ZDNAParser, error) {
	reader, closer, err := openInput(path)
	if err != nil {
		return nil, err
	}

	p := &ZDNAParser{
		path:    path,
		scanner: bufio.NewScanner(reader),
		close:   closer,
		filter:  filter,
		sizes:   sizes,
	}
	if err := p.readHeader(); err != nil {
		closer()
		return nil, err
	}
	return p, nil
}

func (p *ZDNAParser) readHeader() error {
	for p.scanner.Scan() {
		p.lineNum++
		line := strings.TrimSpace(p.scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		cols := map[string]int{}
		for i, name := range strings.Split(line, "\t") {
			cols[strings.ToLower(strings.TrimSpace(name))] = i
		}
		for _, required := range []string{zdnaColChromosome, zdnaColStart, zdnaColEnd, zdnaColZScore} {
			idx, ok := cols[required]
			if !ok {
				return &genome.SchemaMismatchError{Path: p.path, Line: p.lineNum, Column: required}
			}
			switch required {
			case zdnaColChromosome:
				p.cols.chromosome = idx
			case zdnaColStart:
				p.cols.start = idx
			case zdnaColEnd:
				p.cols.end = idx
			case zdnaColZScore:
				p.cols.zscore = idx
			}
		}
		return nil
	}
	if err := p.scanner.Err(); err != nil {
		return fmt.Errorf("read zdna header: %w", err)
	}
	return &genome.SchemaMismatchError{Path: p.path, Line: p.lineNum, Column: zdnaColChromosome}
}

// Next returns the next retained motif, or nil at end of input. Malformed
// rows are skipped and counted, never fatal.
func (p *ZDNAParser) Next() (*Motif, error) {
	for p.scanner.Scan() {
		p.lineNum++
		line := strings.TrimSpace(p.scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, "\t")
		m, ok := p.parseRow(fields)
		if !ok {
			p.stats.Skipped++
			continue
		}
		if !p.filter.Retain(m.Score) {
			p.stats.Filtered++
			continue
		}
		p.stats.Retained++
		return m, nil
	}
	if err := p.scanner.Err(); err != nil {
		return nil, fmt.Errorf("read zdna predictions: %w", err)
	}
	return nil, nil
}

func (p *ZDNAParser) parseRow(fields []string) (*Motif, bool) {
	last := p.cols.chromosome
	for _, idx := range []int{p.cols.start, p.cols.end, p.cols.zscore} {
		if idx > last {
			last = idx
		}
	}
	if len(fields) <= last {
		return nil, false
	}

	chrom := fields[p.cols.chromosome]
	start, err := strconv.ParseInt(fields[p.cols.start], 10, 64)
	if err != nil {
		return nil, false
	}
	end, err := strconv.ParseInt(fields[p.cols.end], 10, 64)
	if err != nil {
		return nil, false
	}
	score, err := strconv.ParseFloat(fields[p.cols.zscore], 64)
	if err != nil {
		return nil, false
	}
	if p.sizes != nil && !p.sizes.Has(chrom) {
		return nil, false
	}

	iv, err := genome.NewInterval(chrom, start, end, genome.StrandUnknown)
	if err != nil || iv.Length() == 0 {
		return nil, false
	}

	return &Motif{Kind: KindZDNA, Interval: iv, Score: score}, true
}

// Stats returns retained/skipped/filtered counters for the rows read so far.
func (p *ZDNAParser) Stats() LoadStats {
	return p.stats
}

// Close releases the underlying file.
func (p *ZDNAParser) Close() error {
	return p.close()
}
