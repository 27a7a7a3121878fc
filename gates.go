package qlab

import (
	"math"
	"math/cmplx"
)

// Gate names understood by Apply and the token binder.
const (
	GateH      = "H"
	GateX      = "X"
	GateY      = "Y"
	GateZ      = "Z"
	GateRY     = "RY"
	GateRZ     = "RZ"
	GateCNOT   = "CNOT"
	GateCZ     = "CZ"
	GateSWAP   = "SWAP"
	GateCPhase = "CP"
)

// gateArity maps each gate name to the number of qubit operands it
// takes. Presence in this table is what makes a name known.
var gateArity = map[string]int{
	GateH:      1,
	GateX:      1,
	GateY:      1,
	GateZ:      1,
	GateRY:     1,
	GateRZ:     1,
	GateCNOT:   2,
	GateCZ:     2,
	GateSWAP:   2,
	GateCPhase: 2,
}

var gateTakesTheta = map[string]bool{
	GateRY:     true,
	GateRZ:     true,
	GateCPhase: true,
}

// Apply left-multiplies the register by the gate's unitary, acting as
// identity on every qubit the op does not name. Gates are never skipped:
// any op that cannot be applied is an error.
func (r *Register) Apply(op GateOp) error {
	if err := op.validate(r.numQubits); err != nil {
		return err
	}
	switch op.Name {
	case GateH:
		r.applyH(r.mask(op.Qubits[0]))
	case GateX:
		r.applyX(r.mask(op.Qubits[0]))
	case GateY:
		r.applyY(r.mask(op.Qubits[0]))
	case GateZ:
		r.applyZ(r.mask(op.Qubits[0]))
	case GateRY:
		r.applyRY(r.mask(op.Qubits[0]), op.Theta)
	case GateRZ:
		r.applyRZ(r.mask(op.Qubits[0]), op.Theta)
	case GateCNOT:
		r.applyCNOT(r.mask(op.Qubits[0]), r.mask(op.Qubits[1]))
	case GateCZ:
		r.applyCZ(r.mask(op.Qubits[0]), r.mask(op.Qubits[1]))
	case GateSWAP:
		r.applySWAP(r.mask(op.Qubits[0]), r.mask(op.Qubits[1]))
	case GateCPhase:
		r.applyCPhase(r.mask(op.Qubits[0]), r.mask(op.Qubits[1]), op.Theta)
	}
	return nil
}

func (r *Register) applyH(bit int) {
	hFactor := complex(1.0/math.Sqrt2, 0)
	n := len(r.amps)
	next := make([]complex128, n)
	for i := 0; i < n; i++ {
		if i&bit == 0 {
			j := i | bit
			next[i] = hFactor * (r.amps[i] + r.amps[j])
			next[j] = hFactor * (r.amps[i] - r.amps[j])
		}
	}
	r.amps = next
}

func (r *Register) applyX(bit int) {
	n := len(r.amps)
	for i := 0; i < n; i++ {
		if i&bit == 0 {
			j := i | bit
			r.amps[i], r.amps[j] = r.amps[j], r.amps[i]
		}
	}
}

func (r *Register) applyY(bit int) {
	n := len(r.amps)
	for i := 0; i < n; i++ {
		if i&bit == 0 {
			j := i | bit
			r.amps[i], r.amps[j] = -1i*r.amps[j], 1i*r.amps[i]
		}
	}
}

func (r *Register) applyZ(bit int) {
	n := len(r.amps)
	for i := 0; i < n; i++ {
		if i&bit != 0 {
			r.amps[i] *= -1
		}
	}
}

func (r *Register) applyRY(bit int, theta float64) {
	n := len(r.amps)
	c := complex(math.Cos(theta/2), 0)
	s := complex(math.Sin(theta/2), 0)
	next := make([]complex128, n)
	for i := 0; i < n; i++ {
		if i&bit == 0 {
			j := i | bit
			next[i] = c*r.amps[i] - s*r.amps[j]
			next[j] = s*r.amps[i] + c*r.amps[j]
		}
	}
	r.amps = next
}

func (r *Register) applyRZ(bit int, theta float64) {
	n := len(r.amps)
	phase := cmplx.Exp(complex(0, theta/2))
	for i := 0; i < n; i++ {
		if i&bit != 0 {
			r.amps[i] *= phase
		} else {
			r.amps[i] *= cmplx.Conj(phase)
		}
	}
}

func (r *Register) applyCNOT(cBit, tBit int) {
	n := len(r.amps)
	for i := 0; i < n; i++ {
		if i&cBit != 0 && i&tBit == 0 {
			j := i | tBit
			r.amps[i], r.amps[j] = r.amps[j], r.amps[i]
		}
	}
}

func (r *Register) applyCZ(cBit, tBit int) {
	n := len(r.amps)
	for i := 0; i < n; i++ {
		if i&cBit != 0 && i&tBit != 0 {
			r.amps[i] *= -1
		}
	}
}

func (r *Register) applySWAP(bit1, bit2 int) {
	n := len(r.amps)
	for i := 0; i < n; i++ {
		if i&bit1 != 0 && i&bit2 == 0 {
			j := (i & ^bit1) | bit2
			r.amps[i], r.amps[j] = r.amps[j], r.amps[i]
		}
	}
}

func (r *Register) applyCPhase(cBit, tBit int, theta float64) {
	n := len(r.amps)
	phase := cmplx.Exp(complex(0, theta))
	for i := 0; i < n; i++ {
		if i&cBit != 0 && i&tBit != 0 {
			r.amps[i] *= phase
		}
	}
}
