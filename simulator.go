package qlab

import (
	"fmt"
	"math"
	"math/cmplx"
	"math/rand"
)

// Simulator evolves circuits and samples measurements. It keeps no
// state between calls. Workers caps the sampling fan-out: 0 uses all
// CPUs, 1 forces sequential sampling.
type Simulator struct {
	Workers int
}

// Evolve runs every gate of the circuit, in order, on a fresh register
// and returns the resulting state.
func (s Simulator) Evolve(c *Circuit) (*Register, error) {
	reg, err := NewRegister(c.NumQubits)
	if err != nil {
		return nil, err
	}
	for _, g := range c.Gates {
		if err := reg.Apply(g); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// Run evolves the circuit once and draws shots samples from the final
// distribution over all qubits. Sampling never re-simulates: every shot
// comes from the same evolved state, which is returned alongside the
// histogram as the pre-measurement amplitudes.
func (s Simulator) Run(c *Circuit, shots int, rng *rand.Rand) (*Register, Histogram, error) {
	if shots <= 0 {
		return nil, nil, fmt.Errorf("%w: shots %d, want at least 1", ErrInvalidArgument, shots)
	}
	reg, err := s.Evolve(c)
	if err != nil {
		return nil, nil, err
	}
	counts, err := sampleCounts(reg.Probabilities(), c.NumQubits, shots, rng, s.Workers)
	if err != nil {
		return nil, nil, err
	}
	return reg, counts, nil
}

// MeasureQubit samples one qubit, collapses the register onto the
// observed branch and renormalizes. The register stays usable: later
// gates and measurements continue from the collapsed state.
func (s Simulator) MeasureQubit(reg *Register, q int, rng *rand.Rand) (int, error) {
	if err := reg.checkQubit(q); err != nil {
		return 0, err
	}
	bit := reg.mask(q)
	p1 := 0.0
	for i, a := range reg.amps {
		if i&bit != 0 {
			p1 += real(a * cmplx.Conj(a))
		}
	}
	outcome := 0
	keep := 1 - p1
	if rng.Float64() < p1 {
		outcome = 1
		keep = p1
	}
	norm := 1.0
	if keep > 0 {
		norm = math.Sqrt(keep)
	}
	for i := range reg.amps {
		if (i&bit != 0) == (outcome == 1) {
			reg.amps[i] /= complex(norm, 0)
		} else {
			reg.amps[i] = 0
		}
	}
	return outcome, nil
}

// MeasureSingle evolves the circuit and performs one full measurement,
// returning the observed bitstring and the register collapsed onto it.
func (s Simulator) MeasureSingle(c *Circuit, rng *rand.Rand) (string, *Register, error) {
	reg, err := s.Evolve(c)
	if err != nil {
		return "", nil, err
	}
	idx := sampleIndex(reg.Probabilities(), rng)
	for i := range reg.amps {
		reg.amps[i] = 0
	}
	reg.amps[idx] = 1
	return FormatBasisState(idx, c.NumQubits), reg, nil
}
