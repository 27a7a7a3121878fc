package qlab

import (
	"fmt"
	"math/rand"
	"strconv"
)

type PhaseResult struct {
	CountingQubits int       `json:"counting_qubits"`
	Shots          int       `json:"shots"`
	MeasuredValue  int       `json:"measured_value"`
	EstimatedPhase float64   `json:"estimated_phase"`
	Confidence     float64   `json:"confidence"`
	Counts         Histogram `json:"counts"`
}

// EstimatePhase runs phase estimation against Z acting on an eigenstate
// qubit prepared to |1>, whose eigenphase is exactly one half. The
// eigenstate qubit sits after the counting register; each counting
// qubit applies the controlled unitary as many times as its binary
// weight, and the inverse Fourier transform turns the accumulated
// kickback into one basis state. The estimate is measured/2^n and the
// confidence is the modal outcome's frequency.
func EstimatePhase(countingQubits, shots int, rng *rand.Rand) (*PhaseResult, error) {
	if countingQubits <= 0 {
		return nil, fmt.Errorf("%w: counting qubits %d, want at least 1", ErrInvalidArgument, countingQubits)
	}
	if shots <= 0 {
		return nil, fmt.Errorf("%w: shots %d, want at least 1", ErrInvalidArgument, shots)
	}
	m := countingQubits
	eigen := m
	reg, err := NewRegister(m + 1)
	if err != nil {
		return nil, err
	}

	if err := reg.Apply(X(eigen)); err != nil {
		return nil, err
	}
	for q := 0; q < m; q++ {
		if err := reg.Apply(H(q)); err != nil {
			return nil, err
		}
	}
	for q := 0; q < m; q++ {
		reps := 1 << (m - 1 - q)
		for i := 0; i < reps; i++ {
			if err := reg.Apply(CZ(q, eigen)); err != nil {
				return nil, err
			}
		}
	}
	for _, g := range InverseQFTGates(m) {
		if err := reg.Apply(g); err != nil {
			return nil, err
		}
	}

	counting := make([]int, m)
	for q := range counting {
		counting[q] = q
	}
	probs, err := reg.MarginalProbabilities(counting...)
	if err != nil {
		return nil, err
	}
	counts, err := sampleCounts(probs, m, shots, rng, 0)
	if err != nil {
		return nil, err
	}
	top, topCount := counts.MostLikely()
	measured, err := strconv.ParseInt(top, 2, 64)
	if err != nil {
		return nil, err
	}
	return &PhaseResult{
		CountingQubits: m,
		Shots:          shots,
		MeasuredValue:  int(measured),
		EstimatedPhase: float64(measured) / float64(int64(1)<<m),
		Confidence:     float64(topCount) / float64(shots),
		Counts:         counts,
	}, nil
}
