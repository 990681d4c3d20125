// Package parallel provides the partitioning and fan-out helpers CPU kernels
// use to split work across goroutines.
package parallel

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Number of worker goroutines to use.
	MinChunkSize int  // Minimum items per goroutine to avoid overhead.
}

// DefaultConfig returns sensible defaults based on CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 64, // Typical cache line aware chunk.
	}
}

// Sequential returns a config that never spawns goroutines.
func Sequential() Config {
	return Config{Enabled: false, NumWorkers: 1, MinChunkSize: 1}
}

// Range is the half-open index interval [Start, End).
type Range struct {
	Start, End int
}

// Len returns the number of indices in the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// Ranges splits [0, n) into contiguous ranges.
// The split is a pure function of n and cfg, so work that combines
// per-range partial results in slice order is reproducible for a fixed cfg.
func Ranges(n int, cfg Config) []Range {
	if n <= 0 {
		return nil
	}
	if !cfg.Enabled || cfg.NumWorkers <= 1 || n < cfg.MinChunkSize {
		return []Range{{0, n}}
	}

	chunkSize := max((n+cfg.NumWorkers-1)/cfg.NumWorkers, cfg.MinChunkSize, 1)
	ranges := make([]Range, 0, (n+chunkSize-1)/chunkSize)
	for start := 0; start < n; start += chunkSize {
		ranges = append(ranges, Range{start, min(start+chunkSize, n)})
	}
	return ranges
}

// ForRanges executes f(idx, ranges[idx]) for every range, running at most
// cfg.NumWorkers of them at once. A single range runs on the calling goroutine.
func ForRanges(ranges []Range, f func(idx int, r Range), cfg Config) {
	if len(ranges) == 1 || !cfg.Enabled {
		for i, r := range ranges {
			f(i, r)
		}
		return
	}

	var g errgroup.Group
	g.SetLimit(max(cfg.NumWorkers, 1))
	for i, r := range ranges {
		g.Go(func() error {
			f(i, r)
			return nil
		})
	}
	_ = g.Wait() // workers never fail
}

// For executes f(i) for i in [0, n) with optional parallelism.
// Falls back to sequential execution if parallelism is disabled or n is too small.
func For(n int, f func(i int), cfg Config) {
	ForRanges(Ranges(n, cfg), func(_ int, r Range) {
		for i := r.Start; i < r.End; i++ {
			f(i)
		}
	}, cfg)
}
