// Package fingerprint implements the concurrent content-fingerprinting
// pipeline: a bounded worker pool hashing discovered files, per-tree
// fingerprint tables, and the set algebra reconciling two tables into
// intersection and unique partitions.
package fingerprint

import (
	"context"
	"runtime"
	"sync"

	"github.com/filematch/filematch/pkg/hasher"
	"github.com/filematch/filematch/pkg/models"
)

// Pool hashes file entries with a fixed number of workers draining a
// shared queue. Every entry submitted yields exactly one HashOutcome on
// the completion channel, in arbitrary completion order.
type Pool struct {
	hasher  hasher.Hasher
	workers int
}

// NewPool creates a worker pool. A worker count below 1 defaults to the
// number of available CPUs.
func NewPool(h hasher.Hasher, workers int) *Pool {
	return &Pool{hasher: h, workers: poolWorkers(workers)}
}

// poolWorkers resolves a configured worker count to an effective one.
func poolWorkers(workers int) int {
	if workers < 1 {
		return runtime.NumCPU()
	}
	return workers
}

// Workers returns the effective worker count.
func (p *Pool) Workers() int {
	return p.workers
}

// Run starts the workers consuming entries and returns the completion
// channel. The channel is closed once the entry channel is closed,
// fully drained, and every worker has returned. A failure hashing one
// file becomes a Failure outcome; the other workers keep running.
func (p *Pool) Run(ctx context.Context, entries <-chan models.FileEntry) <-chan models.HashOutcome {
	results := make(chan models.HashOutcome, p.workers)

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go p.runWorker(ctx, entries, results, &wg)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}

// runWorker loops: pull an entry, hash it, publish the outcome.
func (p *Pool) runWorker(ctx context.Context, entries <-chan models.FileEntry, results chan<- models.HashOutcome, wg *sync.WaitGroup) {
	defer wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case entry, ok := <-entries:
			if !ok {
				// Queue is closed and empty, worker exits
				return
			}

			digest, err := p.hasher.Sum(ctx, entry.Path)
			outcome := models.HashOutcome{Entry: entry, Digest: digest, Err: err}

			select {
			case results <- outcome:
			case <-ctx.Done():
				return
			}
		}
	}
}
