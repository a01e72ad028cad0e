package annotation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func entries(ivs ...[3]int64) []treeInterval[int] {
	out := make([]treeInterval[int], len(ivs))
	for i, iv := range ivs {
		out[i] = treeInterval[int]{start: iv[0], end: iv[1], item: int(iv[2])}
	}
	return out
}

func TestIntervalTree_Empty(t *testing.T) {
	tree := buildIntervalTree[int](nil)
	assert.Empty(t, tree.findOverlaps(0, 100))
}

func TestIntervalTree_Single(t *testing.T) {
	tree := buildIntervalTree(entries([3]int64{100, 200, 1}))

	assert.Len(t, tree.findOverlaps(150, 160), 1)
	assert.Len(t, tree.findOverlaps(199, 300), 1, "one-base overlap at the end")
	assert.Len(t, tree.findOverlaps(0, 101), 1, "one-base overlap at the start")
	assert.Empty(t, tree.findOverlaps(200, 300), "half-open: query starting at end")
	assert.Empty(t, tree.findOverlaps(0, 100), "half-open: query ending at start")
}

func TestIntervalTree_Overlapping(t *testing.T) {
	tree := buildIntervalTree(entries(
		[3]int64{100, 300, 1},
		[3]int64{150, 250, 2},
		[3]int64{200, 400, 3},
	))

	got := tree.findOverlaps(160, 180)
	assert.ElementsMatch(t, []int{1, 2}, got)

	got = tree.findOverlaps(240, 260)
	assert.ElementsMatch(t, []int{1, 2, 3}, got)

	got = tree.findOverlaps(350, 360)
	assert.Equal(t, []int{3}, got)
}

func TestIntervalTree_MaxEndPruning(t *testing.T) {
	// A long interval sorted early must still be found for queries far
	// past the starts of its later, shorter neighbors.
	tree := buildIntervalTree(entries(
		[3]int64{100, 500, 1},
		[3]int64{105, 110, 2},
		[3]int64{120, 130, 3},
	))

	got := tree.findOverlaps(400, 410)
	assert.Equal(t, []int{1}, got)
}

func TestIntervalTree_DuplicateFree(t *testing.T) {
	tree := buildIntervalTree(entries(
		[3]int64{100, 200, 1},
		[3]int64{100, 200, 2},
	))

	got := tree.findOverlaps(150, 160)
	assert.ElementsMatch(t, []int{1, 2}, got, "each stored item appears exactly once")
}
