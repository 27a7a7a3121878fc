package qlab

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func TestStateFidelity(t *testing.T) {
	zero := mustRegister(t, 1)
	one := mustRegister(t, 1)
	mustApply(t, one, X(0))
	plus := mustRegister(t, 1)
	mustApply(t, plus, H(0))

	tests := []struct {
		name string
		a, b *Register
		want float64
	}{
		{"identical", zero, zero.Clone(), 1},
		{"orthogonal", zero, one, 0},
		{"half overlap", zero, plus, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := StateFidelity(tt.a, tt.b)
			if err != nil {
				t.Fatalf("StateFidelity: %v", err)
			}
			if math.Abs(got-tt.want) > tol {
				t.Fatalf("fidelity = %v, want %v", got, tt.want)
			}
		})
	}

	wide := mustRegister(t, 2)
	if _, err := StateFidelity(zero, wide); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("width mismatch err = %v", err)
	}
}

func TestEntanglementEntropy(t *testing.T) {
	tests := []struct {
		name string
		ops  []GateOp
		want float64
	}{
		{"computational basis", nil, 0},
		{"local superposition", []GateOp{H(0)}, 0},
		{"bell pair", []GateOp{H(0), CNOT(0, 1)}, 1},
		{"flipped bell pair", []GateOp{H(0), CNOT(0, 1), X(1)}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := mustRegister(t, 2)
			mustApply(t, reg, tt.ops...)
			got, err := EntanglementEntropy(reg, 0)
			if err != nil {
				t.Fatalf("EntanglementEntropy: %v", err)
			}
			if math.Abs(got-tt.want) > tol {
				t.Fatalf("entropy = %v, want %v", got, tt.want)
			}
		})
	}

	reg := mustRegister(t, 2)
	if _, err := EntanglementEntropy(reg, 5); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("out of range err = %v", err)
	}
}

func TestPairCorrelation(t *testing.T) {
	tests := []struct {
		name string
		ops  []GateOp
		want float64
	}{
		{"aligned zeros", nil, 1},
		{"bell pair agrees", []GateOp{H(0), CNOT(0, 1)}, 1},
		{"anti-aligned", []GateOp{X(1)}, -1},
		{"uncorrelated", []GateOp{H(0)}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := mustRegister(t, 2)
			mustApply(t, reg, tt.ops...)
			got, err := PairCorrelation(reg, 0, 1)
			if err != nil {
				t.Fatalf("PairCorrelation: %v", err)
			}
			if math.Abs(got-tt.want) > tol {
				t.Fatalf("correlation = %v, want %v", got, tt.want)
			}
		})
	}

	reg := mustRegister(t, 2)
	if _, err := PairCorrelation(reg, 1, 1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("self pair err = %v", err)
	}
}

func TestDistributionFidelity(t *testing.T) {
	ideal := map[string]float64{"00": 0.5, "11": 0.5}
	if got := DistributionFidelity(map[string]float64{"00": 0.5, "11": 0.5}, ideal); math.Abs(got-1) > tol {
		t.Fatalf("matched distributions = %v, want 1", got)
	}
	if got := DistributionFidelity(map[string]float64{"01": 1}, ideal); got != 0 {
		t.Fatalf("disjoint distributions = %v, want 0", got)
	}
	want := math.Sqrt(0.5)
	if got := DistributionFidelity(map[string]float64{"00": 1}, ideal); math.Abs(got-want) > tol {
		t.Fatalf("one-sided distribution = %v, want %v", got, want)
	}
}

func TestRunBellState(t *testing.T) {
	res, err := RunBellState(1000, rand.New(rand.NewSource(21)))
	if err != nil {
		t.Fatalf("RunBellState: %v", err)
	}
	if res.Shots != 1000 || res.Counts.Total() != 1000 {
		t.Fatalf("shot accounting: %d shots, %d counted", res.Shots, res.Counts.Total())
	}
	for key := range res.Counts {
		if key != "00" && key != "11" {
			t.Fatalf("impossible outcome %q", key)
		}
	}
	// 3 sigma around the even split.
	if n := res.Counts["00"]; n < 453 || n > 547 {
		t.Fatalf("counts[00] = %d, outside the even-split band", n)
	}
	if math.Abs(res.Entanglement-1) > tol {
		t.Fatalf("entanglement = %v, want 1", res.Entanglement)
	}
	if res.Fidelity < 0.99 {
		t.Fatalf("fidelity = %v, want near 1", res.Fidelity)
	}
	if res.State != "(|00> + |11>)/sqrt(2)" {
		t.Fatalf("state label = %q", res.State)
	}
}
