// Package genome provides genomic coordinate primitives shared by the
// annotation index, motif loaders and classifier.
package genome

import "fmt"

// Strand is the orientation of a feature on the reference.
type Strand int8

const (
	StrandUnknown Strand = 0
	StrandForward Strand = 1
	StrandReverse Strand = -1
)

// ParseStrand maps the GTF strand column to a Strand.
// "." and unrecognized values map to StrandUnknown.
func ParseStrand(s string) Strand {
	switch s {
	case "+":
		return StrandForward
	case "-":
		return StrandReverse
	default:
		return StrandUnknown
	}
}

// String returns the GTF representation of the strand.
func (s Strand) String() string {
	switch s {
	case StrandForward:
		return "+"
	case StrandReverse:
		return "-"
	default:
		return "."
	}
}

// Interval is a half-open, 0-based genomic range [Start, End).
// Intervals are value records; nothing mutates them after construction.
type Interval struct {
	Chrom  string
	Start  int64
	End    int64
	Strand Strand
}

// InvalidIntervalError reports a malformed interval.
type InvalidIntervalError struct {
	Chrom  string
	Start  int64
	End    int64
	Reason string
}

func (e *InvalidIntervalError) Error() string {
	return fmt.Sprintf("invalid interval %s:%d-%d: %s", e.Chrom, e.Start, e.End, e.Reason)
}

// NewInterval validates and constructs an interval.
func NewInterval(chrom string, start, end int64, strand Strand) (Interval, error) {
	if chrom == "" {
		return Interval{}, &InvalidIntervalError{Chrom: chrom, Start: start, End: end, Reason: "empty chromosome name"}
	}
	if start < 0 {
		return Interval{}, &InvalidIntervalError{Chrom: chrom, Start: start, End: end, Reason: "negative start"}
	}
	if start > end {
		return Interval{}, &InvalidIntervalError{Chrom: chrom, Start: start, End: end, Reason: "start greater than end"}
	}
	return Interval{Chrom: chrom, Start: start, End: end, Strand: strand}, nil
}

// Length returns the number of bases covered by the interval.
func (iv Interval) Length() int64 {
	return iv.End - iv.Start
}

// Overlaps reports whether two intervals share at least one base.
// Intervals on different chromosomes never overlap.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Chrom == other.Chrom && iv.Start < other.End && other.Start < iv.End
}

// Distance returns the gap between the nearest edges of two intervals,
// or 0 when they overlap or abut. It is undefined across chromosomes.
func (iv Interval) Distance(other Interval) (int64, error) {
	if iv.Chrom != other.Chrom {
		return 0, fmt.Errorf("distance undefined across chromosomes %s and %s", iv.Chrom, other.Chrom)
	}
	if iv.Start < other.End && other.Start < iv.End {
		return 0, nil
	}
	if iv.End <= other.Start {
		return other.Start - iv.End, nil
	}
	return iv.Start - other.End, nil
}

// String formats the interval as chrom:start-end.
func (iv Interval) String() string {
	return fmt.Sprintf("%s:%d-%d", iv.Chrom, iv.Start, iv.End)
}
