package qlab

import (
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Shot requests below this size stay on the calling goroutine.
const parallelShotThreshold = 2048

// sampleIndex draws one basis state from a probability vector by
// walking the cumulative distribution.
func sampleIndex(probs []float64, rng *rand.Rand) int {
	r := rng.Float64()
	acc := 0.0
	for i, p := range probs {
		acc += p
		if r < acc {
			return i
		}
	}
	return len(probs) - 1
}

// sampleCounts draws shots independent samples from one fixed
// distribution. workers <= 0 picks GOMAXPROCS. Worker seeds derive from
// rng in chunk order, so a given seed and worker count always produce
// the same histogram.
func sampleCounts(probs []float64, width, shots int, rng *rand.Rand, workers int) (Histogram, error) {
	total := 0.0
	for _, p := range probs {
		total += p
	}
	if math.Abs(total-1) > 1e-6 {
		return nil, fmt.Errorf("%w: distribution sums to %v, want 1", ErrInvalidArgument, total)
	}

	counts := make(Histogram, len(probs))
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if shots < parallelShotThreshold || workers == 1 {
		for s := 0; s < shots; s++ {
			counts.Add(FormatBasisState(sampleIndex(probs, rng), width))
		}
		return counts, nil
	}

	chunk := shots / workers
	var mu sync.Mutex
	var g errgroup.Group
	for w := 0; w < workers; w++ {
		n := chunk
		if w == workers-1 {
			n = shots - chunk*(workers-1)
		}
		seed := rng.Int63()
		g.Go(func() error {
			local := make(Histogram, len(probs))
			wrng := rand.New(rand.NewSource(seed))
			for s := 0; s < n; s++ {
				local.Add(FormatBasisState(sampleIndex(probs, wrng), width))
			}
			mu.Lock()
			counts.Merge(local)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return counts, nil
}
