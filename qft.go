package qlab

import (
	"math"
	"math/rand"
)

// QFTGates builds the quantum Fourier transform: each qubit gets H and
// then a controlled phase of pi/2^d from every lower qubit at distance
// d, finishing with a reversal of qubit order.
func QFTGates(numQubits int) []GateOp {
	gates := make([]GateOp, 0, numQubits*(numQubits+3)/2)
	for q := 0; q < numQubits; q++ {
		gates = append(gates, H(q))
		for t := q + 1; t < numQubits; t++ {
			gates = append(gates, CPhase(t, q, math.Pi/math.Exp2(float64(t-q))))
		}
	}
	for q := 0; q < numQubits/2; q++ {
		gates = append(gates, SWAP(q, numQubits-1-q))
	}
	return gates
}

// InverseQFTGates is the exact reverse of QFTGates with negated phases,
// so the two compose to the identity.
func InverseQFTGates(numQubits int) []GateOp {
	fwd := QFTGates(numQubits)
	inv := make([]GateOp, 0, len(fwd))
	for i := len(fwd) - 1; i >= 0; i-- {
		g := fwd[i]
		if g.Name == GateCPhase {
			g.Theta = -g.Theta
		}
		inv = append(inv, g)
	}
	return inv
}

type QFTResult struct {
	NumQubits  int       `json:"num_qubits"`
	Shots      int       `json:"shots"`
	Counts     Histogram `json:"counts"`
	MostLikely string    `json:"most_likely"`
}

// RunQFT prepares |1010...> with an X on every even qubit, applies the
// transform and samples the interference pattern.
func RunQFT(numQubits, shots int, rng *rand.Rand) (*QFTResult, error) {
	var gates []GateOp
	for q := 0; q < numQubits; q += 2 {
		gates = append(gates, X(q))
	}
	gates = append(gates, QFTGates(numQubits)...)
	c, err := NewCircuit("qft", numQubits, gates...)
	if err != nil {
		return nil, err
	}
	var sim Simulator
	_, counts, err := sim.Run(c, shots, rng)
	if err != nil {
		return nil, err
	}
	top, _ := counts.MostLikely()
	return &QFTResult{
		NumQubits:  numQubits,
		Shots:      shots,
		Counts:     counts,
		MostLikely: top,
	}, nil
}
