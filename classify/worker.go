/*
Package classify implements the three candidate-identification strategies
over a fixed sequencing model: HMM (full forward-algorithm evaluation
against every candidate), NN (k-d tree nearest-neighbor pre-classification
over dye-track feature vectors), and Hybrid (NN shortlist feeding a
restricted HMM evaluation), grounded on the upstream hmm-classifier.cc,
nn-classifier.cc, and hybrid-classifier.cc.
*/
package classify

import (
	"sync"

	"github.com/fluoroseq-project/fluoroseq/model"
)

// runOrdered runs work(i) for every i in [0, n) across a fixed-size worker
// pool, collecting results into a slice indexed by i so the output order
// matches the input order regardless of which goroutine finishes first.
func runOrdered(n, workers int, work func(i int) model.ScoredClassification) []model.ScoredClassification {
	results := make([]model.ScoredClassification, n)
	if n == 0 {
		return results
	}
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}
	if workers == 1 {
		for i := 0; i < n; i++ {
			results[i] = work(i)
		}
		return results
	}

	jobs := make(chan int, n)
	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = work(i)
			}
		}()
	}
	wg.Wait()
	return results
}

func allIndices(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
