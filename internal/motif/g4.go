package motif

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alexsuw/drosophila-dna-analysis/internal/genome"
)

// G4 prediction files are CSV with a header naming at least
// chromosome, start, end and score; a sequence column and pattern-scanner
// extras (length, g_run_length, g_content, gc_content) are tolerated and
// the sequence, when present, is carried through.
const (
	g4ColChromosome = "chromosome"
	g4ColStart      = "start"
	g4ColEnd        = "end"
	g4ColScore      = "score"
	g4ColSequence   = "sequence"
)

// G4Parser streams G-quadruplex motif records from a prediction file.
type G4Parser struct {
	path    string
	reader  *csv.Reader
	close   func() error
	cols    g4Columns
	lineNum int
	stats   LoadStats
	filter  ScoreFilter
	sizes   genome.ChromSizes
}

type g4Columns struct {
	chromosome int
	start      int
	end        int
	score      int
	sequence   int // -1 when absent
}

// NewG4Parser opens a G4 prediction file and resolves its header. Rows are
// retained only when their combined score passes the filter.
func NewG4Parser(path string, filter ScoreFilter, sizes genome.ChromSizes) (*G4Parser, error) {
	reader, closer, err := openInput(path)
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(reader)
	cr.FieldsPerRecord = -1 // rows may carry trailing extras

	p := &G4Parser{
		path:   path,
		reader: cr,
		close:  closer,
		filter: filter,
		sizes:  sizes,
	}
	if err := p.readHeader(); err != nil {
		closer()
		return nil, err
	}
	return p, nil
}

func (p *G4Parser) readHeader() error {
	record, err := p.reader.Read()
	if err == io.EOF {
		return &genome.SchemaMismatchError{Path: p.path, Line: 0, Column: g4ColChromosome}
	}
	if err != nil {
		return fmt.Errorf("read g4 header: %w", err)
	}
	p.lineNum++

	cols := map[string]int{}
	for i, name := range record {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}

	p.cols.sequence = -1
	if idx, ok := cols[g4ColSequence]; ok {
		p.cols.sequence = idx
	}
	for _, required := range []string{g4ColChromosome, g4ColStart, g4ColEnd, g4ColScore} {
		idx, ok := cols[required]
		if !ok {
			return &genome.SchemaMismatchError{Path: p.path, Line: p.lineNum, Column: required}
		}
		switch required {
		case g4ColChromosome:
			p.cols.chromosome = idx
		case g4ColStart:
			p.cols.start = idx
		case g4ColEnd:
			p.cols.end = idx
		case g4ColScore:
			p.cols.score = idx
		}
	}
	return nil
}

// Next returns the next retained motif, or nil at end of input. Malformed
// rows are skipped and counted, never fatal.
func (p *G4Parser) Next() (*Motif, error) {
	for {
		record, err := p.reader.Read()
		if err == io.EOF {
			return nil, nil
		}
		if err != nil {
			// Ragged or unquotable rows are data-quality issues, not
			// batch failures.
			if _, ok := err.(*csv.ParseError); ok {
				p.lineNum++
				p.stats.Skipped++
				continue
			}
			return nil, fmt.Errorf("read g4 predictions: %w", err)
		}
		p.lineNum++

		m, ok := p.parseRecord(record)
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
}

func (p *G4Parser) parseRecord(record []string) (*Motif, bool) {
	last := p.cols.chromosome
	for _, idx := range []int{p.cols.start, p.cols.end, p.cols.score} {
		if idx > last {
			last = idx
		}
	}
	if len(record) <= last {
		return nil, false
	}

	chrom := record[p.cols.chromosome]
	start, err := strconv.ParseInt(record[p.cols.start], 10, 64)
	if err != nil {
		return nil, false
	}
	end, err := strconv.ParseInt(record[p.cols.end], 10, 64)
	if err != nil {
		return nil, false
	}
	score, err := strconv.ParseFloat(record[p.cols.score], 64)
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

	m := &Motif{Kind: KindG4, Interval: iv, Score: score}
	if p.cols.sequence >= 0 && p.cols.sequence < len(record) {
		m.Sequence = record[p.cols.sequence]
	}
	return m, true
}

// Stats returns retained/skipped/filtered counters for the rows read so far.
func (p *G4Parser) Stats() LoadStats {
	return p.stats
}

// Close releases the underlying file.
func (p *G4Parser) Close() error {
	return p.close()
}
