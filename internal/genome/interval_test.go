package genome

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInterval_Valid(t *testing.T) {
	iv, err := NewInterval("chr2L", 100, 200, StrandForward)
	require.NoError(t, err)
	assert.Equal(t, int64(100), iv.Start)
	assert.Equal(t, int64(200), iv.End)
	assert.Equal(t, int64(100), iv.Length())
}

func TestNewInterval_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		chrom string
		start int64
		end   int64
	}{
		{"empty chromosome", "", 0, 10},
		{"start after end", "chr2L", 20, 10},
		{"negative start", "chr2L", -5, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewInterval(tt.chrom, tt.start, tt.end, StrandUnknown)
			require.Error(t, err)

			var invErr *InvalidIntervalError
			assert.True(t, errors.As(err, &invErr))
		})
	}
}

func TestInterval_Overlaps(t *testing.T) {
	a := Interval{Chrom: "chr2L", Start: 100, End: 200}

	assert.True(t, a.Overlaps(Interval{Chrom: "chr2L", Start: 150, End: 250}))
	assert.True(t, a.Overlaps(Interval{Chrom: "chr2L", Start: 199, End: 300}), "one-base overlap")
	assert.False(t, a.Overlaps(Interval{Chrom: "chr2L", Start: 200, End: 300}), "half-open: abutting does not overlap")
	assert.False(t, a.Overlaps(Interval{Chrom: "chr2L", Start: 0, End: 100}), "half-open: abutting on the left")
	assert.False(t, a.Overlaps(Interval{Chrom: "chr3R", Start: 100, End: 200}), "different chromosome")
}

func TestInterval_Distance(t *testing.T) {
	a := Interval{Chrom: "chr2L", Start: 100, End: 200}

	d, err := a.Distance(Interval{Chrom: "chr2L", Start: 150, End: 250})
	require.NoError(t, err)
	assert.Equal(t, int64(0), d, "overlapping intervals have distance 0")

	d, err = a.Distance(Interval{Chrom: "chr2L", Start: 500, End: 600})
	require.NoError(t, err)
	assert.Equal(t, int64(300), d)

	d, err = a.Distance(Interval{Chrom: "chr2L", Start: 0, End: 50})
	require.NoError(t, err)
	assert.Equal(t, int64(50), d)

	_, err = a.Distance(Interval{Chrom: "chr3R", Start: 0, End: 50})
	assert.Error(t, err, "distance undefined across chromosomes")
}

func TestParseStrand(t *testing.T) {
	assert.Equal(t, StrandForward, ParseStrand("+"))
	assert.Equal(t, StrandReverse, ParseStrand("-"))
	assert.Equal(t, StrandUnknown, ParseStrand("."))
	assert.Equal(t, StrandUnknown, ParseStrand(""))
}
