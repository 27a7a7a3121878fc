package qlab

import (
	"fmt"
	"math"
	"math/big"
	"math/rand"
	"strings"
)

// Basis is a BB84 preparation or measurement basis.
type Basis int

const (
	Rectilinear Basis = iota // Z basis: |0>, |1>
	Diagonal                 // X basis: |+>, |->
)

func (b Basis) String() string {
	if b == Diagonal {
		return "Diagonal(x)"
	}
	return "Rectilinear(+)"
}

// BB84Result carries a sifted key and the channel statistics behind it.
// Partial is set when the trial budget ran out before enough bits
// survived sifting; the key is never padded to length.
type BB84Result struct {
	KeyBinary     string  `json:"key_binary"`
	KeyHex        string  `json:"key_hex"`
	RequestedBits int     `json:"requested_bits"`
	SiftedBits    int     `json:"sifted_bits"`
	Trials        int     `json:"trials"`
	ErrorRate     float64 `json:"error_rate"`
	Efficiency    float64 `json:"efficiency"`
	Partial       bool    `json:"partial"`
	SecurityLevel string  `json:"security_level"`
}

// BB84Key sifts a shared key over a simulated quantum channel. Each
// trial prepares one qubit in a random bit and basis, sends it through
// the channel and measures it in the receiver's random basis; matching
// bases keep the bit. At most 2*keyLength trials run. flipProb is the
// channel's independent bit-flip probability; at 0 the matched-basis
// measurement is deterministic and the error rate is exactly zero.
func BB84Key(keyLength int, flipProb float64, rng *rand.Rand) (*BB84Result, error) {
	if keyLength <= 0 {
		return nil, fmt.Errorf("%w: key length %d, want at least 1", ErrInvalidArgument, keyLength)
	}
	if math.IsNaN(flipProb) || flipProb < 0 || flipProb > 1 {
		return nil, fmt.Errorf("%w: flip probability %v, want 0..1", ErrInvalidArgument, flipProb)
	}

	var sim Simulator
	var key strings.Builder
	sifted, mismatches, trials := 0, 0, 0
	for trials < 2*keyLength && sifted < keyLength {
		trials++
		bit := rng.Intn(2)
		senderBasis := Basis(rng.Intn(2))
		receiverBasis := Basis(rng.Intn(2))

		reg, err := NewRegister(1)
		if err != nil {
			return nil, err
		}
		if bit == 1 {
			if err := reg.Apply(X(0)); err != nil {
				return nil, err
			}
		}
		if senderBasis == Diagonal {
			if err := reg.Apply(H(0)); err != nil {
				return nil, err
			}
		}
		if flipProb > 0 && rng.Float64() < flipProb {
			if err := reg.Apply(X(0)); err != nil {
				return nil, err
			}
		}
		if receiverBasis == Diagonal {
			if err := reg.Apply(H(0)); err != nil {
				return nil, err
			}
		}
		measured, err := sim.MeasureQubit(reg, 0, rng)
		if err != nil {
			return nil, err
		}

		if senderBasis != receiverBasis {
			continue
		}
		sifted++
		if measured != bit {
			mismatches++
		}
		key.WriteByte(byte('0' + measured))
	}

	binary := key.String()
	errorRate := 0.0
	if sifted > 0 {
		errorRate = float64(mismatches) / float64(sifted)
	}
	security := "HIGH"
	if errorRate >= 0.11 {
		security = "COMPROMISED"
	}
	hex := ""
	if binary != "" {
		v := new(big.Int)
		v.SetString(binary, 2)
		hex = strings.ToUpper(v.Text(16))
	}
	return &BB84Result{
		KeyBinary:     binary,
		KeyHex:        hex,
		RequestedBits: keyLength,
		SiftedBits:    sifted,
		Trials:        trials,
		ErrorRate:     errorRate,
		Efficiency:    float64(sifted) / float64(trials),
		Partial:       sifted < keyLength,
		SecurityLevel: security,
	}, nil
}
