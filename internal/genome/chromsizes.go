package genome

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
)

// MissingInputError reports a required input file that is absent or
// unreadable. Missing inputs are always fatal to the run.
type MissingInputError struct {
	Path string
	Err  error
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("required input %s: %v", e.Path, e.Err)
}

func (e *MissingInputError) Unwrap() error { return e.Err }

// SchemaMismatchError reports an input record missing a required column.
type SchemaMismatchError struct {
	Path   string
	Line   int
	Column string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("%s:%d: missing required column %q", e.Path, e.Line, e.Column)
}

// ChromSizes maps chromosome names to their lengths. It is built once from
// the assembly's chromosome table and read-only afterwards.
type ChromSizes map[string]int64

// LoadChromSizes reads a two-column chromosome length table
// (chrom<TAB>length). Gzipped tables are supported.
func LoadChromSizes(path string) (ChromSizes, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &MissingInputError{Path: path, Err: err}
	}
	defer f.Close()

	var reader io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("open gzip reader: %w", err)
		}
		defer gz.Close()
		reader = gz
	}

	sizes := make(ChromSizes)
	scanner := bufio.NewScanner(reader)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, &SchemaMismatchError{Path: path, Line: lineNum, Column: "length"}
		}
		length, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil || length < 0 {
			return nil, fmt.Errorf("%s:%d: bad chromosome length %q", path, lineNum, fields[1])
		}
		sizes[fields[0]] = length
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read chromosome table: %w", err)
	}
	if len(sizes) == 0 {
		return nil, fmt.Errorf("%s: empty chromosome table", path)
	}
	return sizes, nil
}

// Has reports whether the chromosome is present in the table.
func (cs ChromSizes) Has(chrom string) bool {
	_, ok := cs[chrom]
	return ok
}

// Clip bounds an interval to [0, chromLength). Unknown chromosomes clip
// only at zero.
func (cs ChromSizes) Clip(iv Interval) Interval {
	if iv.Start < 0 {
		iv.Start = 0
	}
	if length, ok := cs[iv.Chrom]; ok {
		if iv.End > length {
			iv.End = length
		}
		if iv.Start > length {
			iv.Start = length
		}
	}
	if iv.Start > iv.End {
		iv.Start = iv.End
	}
	return iv
}

// Chromosomes returns the chromosome names in sorted order.
func (cs ChromSizes) Chromosomes() []string {
	chroms := make([]string, 0, len(cs))
	for chrom := range cs {
		chroms = append(chroms, chrom)
	}
	sort.Strings(chroms)
	return chroms
}
