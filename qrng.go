package qlab

import (
	"fmt"
	"math/big"
	"math/rand"
	"strings"
)

// Hadamard registers are measured in chunks of this many qubits. Every
// bit is an independent H|0> measurement, so chunking leaves the
// distribution untouched while keeping registers small.
const qrngChunkBits = 16

// RandomResult is one quantum random number in its three readings. The
// bitstring is big-endian: the first measured bit is the most
// significant.
type RandomResult struct {
	Bits    int     `json:"bits"`
	Binary  string  `json:"binary"`
	Decimal string  `json:"decimal"`
	Hex     string  `json:"hex"`
	Entropy float64 `json:"entropy"`
}

// QuantumRandom measures bits qubits prepared in uniform superposition
// and reads the outcome as a number. Bit counts beyond 64 are fine; the
// decimal and hex renderings use big integers.
func QuantumRandom(bits int, rng *rand.Rand) (*RandomResult, error) {
	if bits <= 0 {
		return nil, fmt.Errorf("%w: bit count %d, want at least 1", ErrInvalidArgument, bits)
	}
	var sim Simulator
	var b strings.Builder
	b.Grow(bits)
	for remaining := bits; remaining > 0; {
		k := remaining
		if k > qrngChunkBits {
			k = qrngChunkBits
		}
		gates := make([]GateOp, k)
		for q := 0; q < k; q++ {
			gates[q] = H(q)
		}
		c, err := NewCircuit("qrng", k, gates...)
		if err != nil {
			return nil, err
		}
		sample, _, err := sim.MeasureSingle(c, rng)
		if err != nil {
			return nil, err
		}
		b.WriteString(sample)
		remaining -= k
	}

	binary := b.String()
	value := new(big.Int)
	value.SetString(binary, 2)
	return &RandomResult{
		Bits:    bits,
		Binary:  binary,
		Decimal: value.String(),
		Hex:     strings.ToUpper(value.Text(16)),
		Entropy: float64(bits),
	}, nil
}
