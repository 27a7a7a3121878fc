package main

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"qlab"
)

// piExprRegex matches expressions like: pi, 2pi, 2*pi, pi/2, 3pi/4,
// 3*pi/4, -pi, -pi/2, -3*pi/4
var piExprRegex = regexp.MustCompile(`^(-?)(\d*\.?\d*)\s*\*?\s*pi(?:\s*/\s*(\d+\.?\d*))?$`)

// parseParamExpr parses one angle expression, supporting plain numbers
// and pi forms.
//
// Supported formats:
//   - Plain numbers: "1.5707", "3.14", "-0.5"
//   - Pi constant: "pi"
//   - Pi fractions: "pi/2", "pi/4", "pi/3"
//   - Coefficients: "2pi", "2*pi", "3pi/4", "3*pi/4"
//   - Negative: "-pi", "-pi/2", "-3*pi/4"
func parseParamExpr(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	if val, err := strconv.ParseFloat(s, 64); err == nil {
		return val, true
	}

	s = strings.ToLower(s)
	matches := piExprRegex.FindStringSubmatch(s)
	if matches == nil {
		return 0, false
	}

	coeff := 1.0
	if matches[2] != "" {
		var err error
		coeff, err = strconv.ParseFloat(matches[2], 64)
		if err != nil {
			return 0, false
		}
	}
	result := coeff * math.Pi
	if matches[3] != "" {
		denom, err := strconv.ParseFloat(matches[3], 64)
		if err != nil || denom == 0 {
			return 0, false
		}
		result /= denom
	}
	if matches[1] == "-" {
		result = -result
	}
	return result, true
}

// formatParam renders an angle with pi notation when it matches a
// common fraction.
func formatParam(val float64) string {
	type piForm struct {
		value   float64
		display string
	}
	piForms := []piForm{
		{2 * math.Pi, "2*pi"},
		{math.Pi, "pi"},
		{math.Pi / 2, "pi/2"},
		{math.Pi / 3, "pi/3"},
		{math.Pi / 4, "pi/4"},
		{math.Pi / 6, "pi/6"},
		{math.Pi / 8, "pi/8"},
		{3 * math.Pi / 4, "3*pi/4"},
		{3 * math.Pi / 2, "3*pi/2"},
		{2 * math.Pi / 3, "2*pi/3"},
	}

	for _, pf := range piForms {
		if math.Abs(val-pf.value) < 1e-10 {
			return pf.display
		}
		if math.Abs(val+pf.value) < 1e-10 {
			return "-" + pf.display
		}
	}

	return fmt.Sprintf("%g", val)
}

// gateSpec is one parsed circuit token: a gate name, optionally with an
// explicit angle such as "RZ(pi/2)".
type gateSpec struct {
	name     string
	theta    float64
	hasTheta bool
}

var gateSpecRegex = regexp.MustCompile(`^([A-Za-z]+)(?:\(([^)]*)\))?$`)

func parseGateSpec(tok string) (gateSpec, error) {
	matches := gateSpecRegex.FindStringSubmatch(strings.TrimSpace(tok))
	if matches == nil {
		return gateSpec{}, errors.Errorf("bad gate token %q", tok)
	}
	spec := gateSpec{name: strings.ToUpper(matches[1])}
	if matches[2] != "" {
		val, ok := parseParamExpr(matches[2])
		if !ok {
			return gateSpec{}, errors.Errorf("bad angle %q in token %q - use numbers or pi expressions like pi/2, 3*pi/4", matches[2], tok)
		}
		spec.theta = val
		spec.hasTheta = true
	}
	return spec, nil
}

func parseGateSpecs(tokens []string) ([]gateSpec, error) {
	specs := make([]gateSpec, 0, len(tokens))
	for _, tok := range tokens {
		spec, err := parseGateSpec(tok)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

// hasAngles reports whether any spec needs the explicit-angle build
// path instead of the plain token binder.
func hasAngles(specs []gateSpec) bool {
	for _, s := range specs {
		if s.hasTheta || s.name == "CP" {
			return true
		}
	}
	return false
}

// buildGates binds parsed specs to qubits the way the token binder
// does: position i takes qubit i mod n and pair gates add the next
// qubit around, but rotation and phase angles come from the token.
func buildGates(specs []gateSpec, numQubits int) ([]qlab.GateOp, error) {
	if numQubits <= 0 {
		return nil, errors.Errorf("qubit count %d, want at least 1", numQubits)
	}
	ops := make([]qlab.GateOp, 0, len(specs))
	for i, spec := range specs {
		q := i % numQubits
		pairTarget := (q + 1) % numQubits
		switch spec.name {
		case "H", "X", "Y", "Z":
			if spec.hasTheta {
				return nil, errors.Errorf("gate %s takes no angle", spec.name)
			}
			switch spec.name {
			case "H":
				ops = append(ops, qlab.H(q))
			case "X":
				ops = append(ops, qlab.X(q))
			case "Y":
				ops = append(ops, qlab.Y(q))
			case "Z":
				ops = append(ops, qlab.Z(q))
			}
		case "RY", "RZ":
			theta := math.Pi / 4
			if spec.hasTheta {
				theta = spec.theta
			}
			if spec.name == "RY" {
				ops = append(ops, qlab.RY(q, theta))
			} else {
				ops = append(ops, qlab.RZ(q, theta))
			}
		case "CNOT", "CZ", "SWAP":
			if spec.hasTheta {
				return nil, errors.Errorf("gate %s takes no angle", spec.name)
			}
			if numQubits < 2 {
				return nil, errors.Errorf("gate %s needs at least 2 qubits", spec.name)
			}
			switch spec.name {
			case "CNOT":
				ops = append(ops, qlab.CNOT(q, pairTarget))
			case "CZ":
				ops = append(ops, qlab.CZ(q, pairTarget))
			case "SWAP":
				ops = append(ops, qlab.SWAP(q, pairTarget))
			}
		case "CP":
			if numQubits < 2 {
				return nil, errors.Errorf("gate CP needs at least 2 qubits")
			}
			theta := math.Pi / 4
			if spec.hasTheta {
				theta = spec.theta
			}
			ops = append(ops, qlab.CPhase(q, pairTarget, theta))
		default:
			return nil, errors.Errorf("unknown gate token %q", spec.name)
		}
	}
	return ops, nil
}
