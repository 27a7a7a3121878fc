package qlab

import "sort"

// Histogram counts measurement outcomes by bitstring.
type Histogram map[string]int

func (h Histogram) Add(key string) { h[key]++ }

// Merge folds other into h. Merging is a per-key sum, so partial
// histograms from parallel workers combine in any order.
func (h Histogram) Merge(other Histogram) {
	for k, v := range other {
		h[k] += v
	}
}

func (h Histogram) Total() int {
	total := 0
	for _, v := range h {
		total += v
	}
	return total
}

// Keys returns outcome labels in lexicographic order.
func (h Histogram) Keys() []string {
	keys := make([]string, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Probabilities normalizes counts by the total number of shots.
func (h Histogram) Probabilities() map[string]float64 {
	total := h.Total()
	probs := make(map[string]float64, len(h))
	if total == 0 {
		return probs
	}
	for k, v := range h {
		probs[k] = float64(v) / float64(total)
	}
	return probs
}

// MostLikely returns the outcome with the highest count. Ties go to the
// lexicographically smallest bitstring.
func (h Histogram) MostLikely() (string, int) {
	best, bestCount := "", -1
	for _, k := range h.Keys() {
		if h[k] > bestCount {
			best, bestCount = k, h[k]
		}
	}
	if bestCount < 0 {
		return "", 0
	}
	return best, bestCount
}
