package qlab

import (
	"fmt"
	"math"
	"math/cmplx"
	"math/rand"
)

// StateFidelity is |<a|b>|^2 between two registers of the same width.
func StateFidelity(a, b *Register) (float64, error) {
	if a.numQubits != b.numQubits {
		return 0, fmt.Errorf("%w: register widths %d and %d differ", ErrInvalidArgument, a.numQubits, b.numQubits)
	}
	var overlap complex128
	for i := range a.amps {
		overlap += cmplx.Conj(a.amps[i]) * b.amps[i]
	}
	f := real(overlap * cmplx.Conj(overlap))
	if f > 1 {
		f = 1
	}
	return f, nil
}

// EntanglementEntropy traces out every qubit but q and returns the von
// Neumann entropy of the remaining one-qubit density matrix, in bits.
// 0 marks a product state, 1 a maximally entangled pair.
func EntanglementEntropy(r *Register, q int) (float64, error) {
	if err := r.checkQubit(q); err != nil {
		return 0, err
	}
	bit := r.mask(q)
	var p00, p11 float64
	var coh complex128
	for i, a := range r.amps {
		if i&bit == 0 {
			j := i | bit
			p00 += real(a * cmplx.Conj(a))
			p11 += real(r.amps[j] * cmplx.Conj(r.amps[j]))
			coh += a * cmplx.Conj(r.amps[j])
		}
	}
	tr := p00 + p11
	det := p00*p11 - real(coh*cmplx.Conj(coh))
	disc := tr*tr - 4*det
	if disc < 0 {
		disc = 0
	}
	root := math.Sqrt(disc)
	return entropyTerm((tr+root)/2) + entropyTerm((tr-root)/2), nil
}

func entropyTerm(p float64) float64 {
	if p <= 0 {
		return 0
	}
	return -p * math.Log2(p)
}

// PairCorrelation is the <Z x Z> expectation of two qubits: +1 when
// they always agree, -1 when they always disagree.
func PairCorrelation(r *Register, a, b int) (float64, error) {
	if err := r.checkQubit(a); err != nil {
		return 0, err
	}
	if err := r.checkQubit(b); err != nil {
		return 0, err
	}
	if a == b {
		return 0, fmt.Errorf("%w: qubit %d paired with itself", ErrIndexOutOfRange, a)
	}
	aBit, bBit := r.mask(a), r.mask(b)
	zz := 0.0
	for i, amp := range r.amps {
		p := real(amp * cmplx.Conj(amp))
		if (i&aBit != 0) == (i&bBit != 0) {
			zz += p
		} else {
			zz -= p
		}
	}
	return zz, nil
}

// DistributionFidelity scores a measured distribution against an ideal
// one as the Bhattacharyya coefficient, clamped to 1.
func DistributionFidelity(measured, ideal map[string]float64) float64 {
	f := 0.0
	for k, p := range ideal {
		if q, ok := measured[k]; ok {
			f += math.Sqrt(p * q)
		}
	}
	if f > 1 {
		f = 1
	}
	return f
}

type BellResult struct {
	State         string             `json:"state"`
	Shots         int                `json:"shots"`
	Counts        Histogram          `json:"counts"`
	Probabilities map[string]float64 `json:"probabilities"`
	Entanglement  float64            `json:"entanglement"`
	Fidelity      float64            `json:"fidelity"`
}

// RunBellState prepares (|00>+|11>)/sqrt(2), samples it and scores the
// measured distribution against the ideal half/half split.
func RunBellState(shots int, rng *rand.Rand) (*BellResult, error) {
	c, err := NewCircuit("bell", 2, H(0), CNOT(0, 1))
	if err != nil {
		return nil, err
	}
	var sim Simulator
	reg, counts, err := sim.Run(c, shots, rng)
	if err != nil {
		return nil, err
	}
	ent, err := EntanglementEntropy(reg, 0)
	if err != nil {
		return nil, err
	}
	probs := counts.Probabilities()
	return &BellResult{
		State:         "(|00> + |11>)/sqrt(2)",
		Shots:         shots,
		Counts:        counts,
		Probabilities: probs,
		Entanglement:  ent,
		Fidelity:      DistributionFidelity(probs, map[string]float64{"00": 0.5, "11": 0.5}),
	}, nil
}
