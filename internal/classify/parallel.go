package classify

import (
	"runtime"
	"sync"

	"go.uber.org/zap"

	"github.com/alexsuw/drosophila-dna-analysis/internal/motif"
)

// WorkItem holds a loaded motif ready for classification.
type WorkItem struct {
	Seq   int
	Motif motif.Motif
}

// WorkResult holds the classification output for a single motif.
type WorkResult struct {
	Seq    int
	Result Result
}

// ParallelClassify classifies work items using a pool of workers sharing
// the read-only index. Results are sent to the returned channel in arrival
// order (not sequence order). Use OrderedCollect to consume results in
// sequence-number order. If workers is 0, runtime.NumCPU() is used.
func (c *Classifier) ParallelClassify(items <-chan WorkItem, workers int) <-chan WorkResult {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make(chan WorkResult, 2*workers)

	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for item := range items {
				results <- WorkResult{
					Seq:    item.Seq,
					Result: c.Classify(item.Motif),
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}

// OrderedCollect calls fn for each result in sequence-number order. It
// buffers out-of-order results in a pending map and emits them as soon as
// the next expected sequence number is available. Blocks until the results
// channel is closed.
func OrderedCollect(results <-chan WorkResult, fn func(Result) error) error {
	pending := make(map[int]WorkResult)
	nextSeq := 0

	for r := range results {
		pending[r.Seq] = r

		for {
			rr, ok := pending[nextSeq]
			if !ok {
				break
			}
			delete(pending, nextSeq)
			nextSeq++
			if err := fn(rr.Result); err != nil {
				// Drain remaining results to unblock workers.
				for range results {
				}
				return err
			}
		}
	}

	return nil
}

// ClassifyAll classifies a motif batch across the worker pool and returns
// results in input order.
func (c *Classifier) ClassifyAll(motifs []motif.Motif, workers int) []Result {
	items := make(chan WorkItem, 2*runtime.NumCPU())
	go func() {
		defer close(items)
		for i, m := range motifs {
			items <- WorkItem{Seq: i, Motif: m}
		}
	}()

	out := make([]Result, 0, len(motifs))
	_ = OrderedCollect(c.ParallelClassify(items, workers), func(r Result) error {
		out = append(out, r)
		return nil
	})

	c.logger.Debug("classified motif batch",
		zap.Int("motifs", len(out)),
		zap.Int("workers", workers))
	return out
}
