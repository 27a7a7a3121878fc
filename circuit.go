package qlab

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// GateOp is one bound gate application. For controlled gates the control
// precedes the target in Qubits. Ops are immutable once built.
type GateOp struct {
	Name   string  `json:"name"`
	Qubits []int   `json:"qubits"`
	Theta  float64 `json:"theta,omitempty"`
}

func H(q int) GateOp { return GateOp{Name: GateH, Qubits: []int{q}} }
func X(q int) GateOp { return GateOp{Name: GateX, Qubits: []int{q}} }
func Y(q int) GateOp { return GateOp{Name: GateY, Qubits: []int{q}} }
func Z(q int) GateOp { return GateOp{Name: GateZ, Qubits: []int{q}} }

func RY(q int, theta float64) GateOp {
	return GateOp{Name: GateRY, Qubits: []int{q}, Theta: theta}
}

func RZ(q int, theta float64) GateOp {
	return GateOp{Name: GateRZ, Qubits: []int{q}, Theta: theta}
}

func CNOT(control, target int) GateOp {
	return GateOp{Name: GateCNOT, Qubits: []int{control, target}}
}

func CZ(control, target int) GateOp {
	return GateOp{Name: GateCZ, Qubits: []int{control, target}}
}

func SWAP(a, b int) GateOp {
	return GateOp{Name: GateSWAP, Qubits: []int{a, b}}
}

func CPhase(control, target int, theta float64) GateOp {
	return GateOp{Name: GateCPhase, Qubits: []int{control, target}, Theta: theta}
}

func (g GateOp) String() string {
	qs := make([]string, len(g.Qubits))
	for i, q := range g.Qubits {
		qs[i] = strconv.Itoa(q)
	}
	if gateTakesTheta[g.Name] {
		return fmt.Sprintf("%s(%s, %.4g)", g.Name, strings.Join(qs, ","), g.Theta)
	}
	return fmt.Sprintf("%s(%s)", g.Name, strings.Join(qs, ","))
}

func (g GateOp) validate(numQubits int) error {
	arity, known := gateArity[g.Name]
	if !known {
		return fmt.Errorf("%w: unknown gate %q", ErrConfiguration, g.Name)
	}
	if len(g.Qubits) != arity {
		return fmt.Errorf("%w: gate %s wants %d qubits, got %d", ErrInvalidArgument, g.Name, arity, len(g.Qubits))
	}
	for _, q := range g.Qubits {
		if q < 0 || q >= numQubits {
			return fmt.Errorf("%w: gate %s qubit %d on %d-qubit circuit", ErrIndexOutOfRange, g.Name, q, numQubits)
		}
	}
	if arity == 2 && g.Qubits[0] == g.Qubits[1] {
		return fmt.Errorf("%w: gate %s uses qubit %d twice", ErrIndexOutOfRange, g.Name, g.Qubits[0])
	}
	if gateTakesTheta[g.Name] && (math.IsNaN(g.Theta) || math.IsInf(g.Theta, 0)) {
		return fmt.Errorf("%w: gate %s angle %v is not finite", ErrInvalidArgument, g.Name, g.Theta)
	}
	return nil
}

// Circuit is an ordered gate sequence over a fixed qubit count. Built
// once, executed any number of times, never mutated.
type Circuit struct {
	Name      string    `json:"name"`
	NumQubits int       `json:"num_qubits"`
	Gates     []GateOp  `json:"gates"`
	CreatedAt time.Time `json:"created_at"`
}

// NewCircuit validates every op against the qubit count and rejects the
// whole circuit on the first bad one. No partial circuits.
func NewCircuit(name string, numQubits int, gates ...GateOp) (*Circuit, error) {
	if numQubits <= 0 {
		return nil, fmt.Errorf("%w: qubit count %d, want at least 1", ErrInvalidArgument, numQubits)
	}
	if numQubits > MaxQubits {
		return nil, fmt.Errorf("%w: qubit count %d exceeds limit %d", ErrInvalidArgument, numQubits, MaxQubits)
	}
	for _, g := range gates {
		if err := g.validate(numQubits); err != nil {
			return nil, err
		}
	}
	ops := make([]GateOp, len(gates))
	copy(ops, gates)
	return &Circuit{
		Name:      name,
		NumQubits: numQubits,
		Gates:     ops,
		CreatedAt: time.Now(),
	}, nil
}

func (c *Circuit) clone() *Circuit {
	ops := make([]GateOp, len(c.Gates))
	copy(ops, c.Gates)
	dup := *c
	dup.Gates = ops
	return &dup
}

// BindTokens builds a circuit from symbolic gate names. The token at
// position i binds to qubit i mod n; two-qubit tokens take control
// i mod n and target (i mod n)+1 mod n. Bare RY and RZ bind a fixed
// pi/4 angle. Unknown tokens abort the build with an error naming the
// token; nothing is skipped.
func BindTokens(name string, numQubits int, tokens []string) (*Circuit, error) {
	if numQubits <= 0 {
		return nil, fmt.Errorf("%w: qubit count %d, want at least 1", ErrInvalidArgument, numQubits)
	}
	gates := make([]GateOp, 0, len(tokens))
	for i, tok := range tokens {
		q := i % numQubits
		var op GateOp
		switch strings.ToUpper(strings.TrimSpace(tok)) {
		case GateH:
			op = H(q)
		case GateX:
			op = X(q)
		case GateY:
			op = Y(q)
		case GateZ:
			op = Z(q)
		case GateRY:
			op = RY(q, math.Pi/4)
		case GateRZ:
			op = RZ(q, math.Pi/4)
		case GateCNOT:
			if numQubits < 2 {
				return nil, fmt.Errorf("%w: token %q needs at least 2 qubits", ErrConfiguration, tok)
			}
			op = CNOT(q, (q+1)%numQubits)
		case GateCZ:
			if numQubits < 2 {
				return nil, fmt.Errorf("%w: token %q needs at least 2 qubits", ErrConfiguration, tok)
			}
			op = CZ(q, (q+1)%numQubits)
		case GateSWAP:
			if numQubits < 2 {
				return nil, fmt.Errorf("%w: token %q needs at least 2 qubits", ErrConfiguration, tok)
			}
			op = SWAP(q, (q+1)%numQubits)
		default:
			return nil, fmt.Errorf("%w: unknown gate token %q", ErrConfiguration, tok)
		}
		gates = append(gates, op)
	}
	return NewCircuit(name, numQubits, gates...)
}
