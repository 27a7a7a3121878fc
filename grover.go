package qlab

import (
	"fmt"
	"math"
	"math/rand"
)

type GroverResult struct {
	NumQubits   int       `json:"num_qubits"`
	Marked      int       `json:"marked"`
	MarkedState string    `json:"marked_state"`
	Iterations  int       `json:"iterations"`
	Shots       int       `json:"shots"`
	Counts      Histogram `json:"counts"`
	Top         string    `json:"top"`
	Probability float64   `json:"probability"`
}

func applyToAll(reg *Register, gate func(int) GateOp) error {
	for q := 0; q < reg.NumQubits(); q++ {
		if err := reg.Apply(gate(q)); err != nil {
			return err
		}
	}
	return nil
}

// GroverSearch amplifies the marked basis state: uniform superposition,
// then floor(pi/4*sqrt(2^n)) rounds of oracle and diffusion. The oracle
// flips the sign of the marked amplitude; diffusion reflects about the
// mean by conjugating an all-ones phase flip with H and X on every
// qubit.
func GroverSearch(numQubits, marked, shots int, rng *rand.Rand) (*GroverResult, error) {
	reg, err := NewRegister(numQubits)
	if err != nil {
		return nil, err
	}
	dim := 1 << numQubits
	if marked < 0 || marked >= dim {
		return nil, fmt.Errorf("%w: marked item %d, want 0..%d", ErrIndexOutOfRange, marked, dim-1)
	}
	if shots <= 0 {
		return nil, fmt.Errorf("%w: shots %d, want at least 1", ErrInvalidArgument, shots)
	}

	if err := applyToAll(reg, H); err != nil {
		return nil, err
	}
	iterations := int(math.Floor(math.Pi / 4 * math.Sqrt(float64(dim))))
	for it := 0; it < iterations; it++ {
		reg.flipSign(marked)
		if err := applyToAll(reg, H); err != nil {
			return nil, err
		}
		if err := applyToAll(reg, X); err != nil {
			return nil, err
		}
		reg.flipSign(dim - 1)
		if err := applyToAll(reg, X); err != nil {
			return nil, err
		}
		if err := applyToAll(reg, H); err != nil {
			return nil, err
		}
	}

	counts, err := sampleCounts(reg.Probabilities(), numQubits, shots, rng, 0)
	if err != nil {
		return nil, err
	}
	top, topCount := counts.MostLikely()
	return &GroverResult{
		NumQubits:   numQubits,
		Marked:      marked,
		MarkedState: FormatBasisState(marked, numQubits),
		Iterations:  iterations,
		Shots:       shots,
		Counts:      counts,
		Top:         top,
		Probability: float64(topCount) / float64(shots),
	}, nil
}
