package annotation

import "sort"

// intervalTree provides O(log n + k) half-open overlap queries using a
// sorted-slice approach. Items are loaded once and never modified after
// build.
type intervalTree[T any] struct {
	intervals []treeInterval[T]
	maxEnd    []int64 // maxEnd[i] = max(end) for intervals[0:i+1]
}

type treeInterval[T any] struct {
	start int64
	end   int64
	item  T
}

// buildIntervalTree creates an interval tree from parallel start/end/item
// slices produced by the index builder.
func buildIntervalTree[T any](intervals []treeInterval[T]) *intervalTree[T] {
	if len(intervals) == 0 {
		return &intervalTree[T]{}
	}

	sort.Slice(intervals, func(i, j int) bool {
		return intervals[i].start < intervals[j].start
	})

	// Build prefix-max array: maxEnd[i] = max(end) for intervals[0:i+1]
	maxEnd := make([]int64, len(intervals))
	maxEnd[0] = intervals[0].end
	for i := 1; i < len(intervals); i++ {
		maxEnd[i] = intervals[i].end
		if maxEnd[i-1] > maxEnd[i] {
			maxEnd[i] = maxEnd[i-1]
		}
	}

	return &intervalTree[T]{intervals: intervals, maxEnd: maxEnd}
}

// findOverlaps returns the items of all intervals overlapping the half-open
// query [start, end). Each stored item appears at most once.
func (t *intervalTree[T]) findOverlaps(start, end int64) []T {
	if len(t.intervals) == 0 {
		return nil
	}

	var result []T

	// Binary search: find the first interval with start >= end. Every
	// candidate must start before the query end, so candidates are [0, hi).
	hi := sort.Search(len(t.intervals), func(i int) bool {
		return t.intervals[i].start >= end
	})

	for i := hi - 1; i >= 0; i-- {
		// Prune: if no interval in [0, i] ends past the query start,
		// nothing earlier can overlap either.
		if t.maxEnd[i] <= start {
			break
		}
		if t.intervals[i].end > start {
			result = append(result, t.intervals[i].item)
		}
	}

	return result
}
