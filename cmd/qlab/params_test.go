package main

import (
	"math"
	"reflect"
	"strings"
	"testing"

	"qlab"
)

func TestParseParamExpr(t *testing.T) {
	tests := []struct {
		input string
		want  float64
		ok    bool
	}{
		// Plain numbers
		{"1.5707", 1.5707, true},
		{"-0.5", -0.5, true},
		{"0", 0, true},

		// Pi constant
		{"pi", math.Pi, true},
		{"PI", math.Pi, true},

		// Pi fractions
		{"pi/2", math.Pi / 2, true},
		{"pi/4", math.Pi / 4, true},
		{"pi/8", math.Pi / 8, true},

		// Coefficients
		{"2pi", 2 * math.Pi, true},
		{"2*pi", 2 * math.Pi, true},
		{"3pi/4", 3 * math.Pi / 4, true},
		{"3*pi/4", 3 * math.Pi / 4, true},

		// Negative
		{"-pi", -math.Pi, true},
		{"-pi/2", -math.Pi / 2, true},
		{"-3*pi/4", -3 * math.Pi / 4, true},

		// Whitespace
		{" pi / 2 ", math.Pi / 2, true},

		// Invalid
		{"", 0, false},
		{"abc", 0, false},
		{"pi/0", 0, false},
	}

	for _, tt := range tests {
		got, ok := parseParamExpr(tt.input)
		if ok != tt.ok {
			t.Errorf("parseParamExpr(%q): ok=%v, want ok=%v", tt.input, ok, tt.ok)
			continue
		}
		if ok && math.Abs(got-tt.want) > 1e-10 {
			t.Errorf("parseParamExpr(%q) = %g, want %g", tt.input, got, tt.want)
		}
	}
}

func TestFormatParam(t *testing.T) {
	tests := []struct {
		input float64
		want  string
	}{
		{math.Pi, "pi"},
		{math.Pi / 2, "pi/2"},
		{math.Pi / 4, "pi/4"},
		{3 * math.Pi / 4, "3*pi/4"},
		{-math.Pi, "-pi"},
		{2 * math.Pi, "2*pi"},
		{1.5, "1.5"},
		{0, "0"},
	}

	for _, tt := range tests {
		got := formatParam(tt.input)
		if got != tt.want {
			t.Errorf("formatParam(%g) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestParseGateSpec(t *testing.T) {
	spec, err := parseGateSpec("h")
	if err != nil {
		t.Fatalf("parseGateSpec(h) error: %v", err)
	}
	if spec.name != "H" || spec.hasTheta {
		t.Errorf("parseGateSpec(h) = %+v, want bare H", spec)
	}

	spec, err = parseGateSpec("rz(pi/2)")
	if err != nil {
		t.Fatalf("parseGateSpec(rz(pi/2)) error: %v", err)
	}
	if spec.name != "RZ" || !spec.hasTheta || math.Abs(spec.theta-math.Pi/2) > 1e-10 {
		t.Errorf("parseGateSpec(rz(pi/2)) = %+v", spec)
	}

	// Empty parens behave like a bare token
	spec, err = parseGateSpec("X()")
	if err != nil {
		t.Fatalf("parseGateSpec(X()) error: %v", err)
	}
	if spec.name != "X" || spec.hasTheta {
		t.Errorf("parseGateSpec(X()) = %+v, want bare X", spec)
	}

	if _, err := parseGateSpec("RY(garbage)"); err == nil {
		t.Errorf("parseGateSpec(RY(garbage)) expected error")
	} else if !strings.Contains(err.Error(), "RY(garbage)") {
		t.Errorf("error should name the token, got %q", err.Error())
	}

	if _, err := parseGateSpec("12x"); err == nil {
		t.Errorf("parseGateSpec(12x) expected error")
	}
}

func TestParseGateSpecs(t *testing.T) {
	specs, err := parseGateSpecs([]string{"H", "cnot", "RZ(3*pi/4)"})
	if err != nil {
		t.Fatalf("parseGateSpecs error: %v", err)
	}
	if len(specs) != 3 || specs[1].name != "CNOT" {
		t.Errorf("unexpected specs: %+v", specs)
	}

	if _, err := parseGateSpecs([]string{"H", "???"}); err == nil {
		t.Errorf("parseGateSpecs with bad token expected error")
	}
}

func TestHasAngles(t *testing.T) {
	tests := []struct {
		tokens []string
		want   bool
	}{
		{[]string{"H", "CNOT"}, false},
		{[]string{"RY"}, false},
		{[]string{"RZ(pi/2)"}, true},
		{[]string{"CP"}, true},
	}

	for _, tt := range tests {
		specs, err := parseGateSpecs(tt.tokens)
		if err != nil {
			t.Fatalf("parseGateSpecs(%v) error: %v", tt.tokens, err)
		}
		if got := hasAngles(specs); got != tt.want {
			t.Errorf("hasAngles(%v) = %v, want %v", tt.tokens, got, tt.want)
		}
	}
}

func TestBuildGatesPositionalBinding(t *testing.T) {
	specs, err := parseGateSpecs([]string{"H", "CNOT", "RZ(pi/2)"})
	if err != nil {
		t.Fatalf("parseGateSpecs error: %v", err)
	}

	ops, err := buildGates(specs, 2)
	if err != nil {
		t.Fatalf("buildGates error: %v", err)
	}

	want := []qlab.GateOp{
		qlab.H(0),
		qlab.CNOT(1, 0),
		qlab.RZ(0, math.Pi/2),
	}
	if !reflect.DeepEqual(ops, want) {
		t.Errorf("buildGates = %v, want %v", ops, want)
	}
}

func TestBuildGatesWrapAround(t *testing.T) {
	specs, err := parseGateSpecs([]string{"H", "CNOT", "H", "X"})
	if err != nil {
		t.Fatalf("parseGateSpecs error: %v", err)
	}

	ops, err := buildGates(specs, 3)
	if err != nil {
		t.Fatalf("buildGates error: %v", err)
	}

	want := []qlab.GateOp{
		qlab.H(0),
		qlab.CNOT(1, 2),
		qlab.H(2),
		qlab.X(0),
	}
	if !reflect.DeepEqual(ops, want) {
		t.Errorf("buildGates = %v, want %v", ops, want)
	}
}

func TestBuildGatesDefaultAngles(t *testing.T) {
	specs, err := parseGateSpecs([]string{"RY", "CP"})
	if err != nil {
		t.Fatalf("parseGateSpecs error: %v", err)
	}

	ops, err := buildGates(specs, 2)
	if err != nil {
		t.Fatalf("buildGates error: %v", err)
	}

	want := []qlab.GateOp{
		qlab.RY(0, math.Pi/4),
		qlab.CPhase(1, 0, math.Pi/4),
	}
	if !reflect.DeepEqual(ops, want) {
		t.Errorf("buildGates = %v, want %v", ops, want)
	}
}

func TestBuildGatesErrors(t *testing.T) {
	tests := []struct {
		name      string
		tokens    []string
		numQubits int
		errSubstr string
	}{
		{"angle on H", []string{"H(pi)"}, 2, "takes no angle"},
		{"angle on CNOT", []string{"CNOT(pi/2)"}, 2, "takes no angle"},
		{"pair on one qubit", []string{"CNOT"}, 1, "at least 2 qubits"},
		{"cp on one qubit", []string{"CP"}, 1, "at least 2 qubits"},
		{"unknown gate", []string{"FOO"}, 2, "FOO"},
		{"zero qubits", []string{"H"}, 0, "at least 1"},
	}

	for _, tt := range tests {
		specs, err := parseGateSpecs(tt.tokens)
		if err != nil {
			t.Fatalf("%s: parseGateSpecs error: %v", tt.name, err)
		}
		_, err = buildGates(specs, tt.numQubits)
		if err == nil {
			t.Errorf("%s: buildGates expected error", tt.name)
			continue
		}
		if !strings.Contains(err.Error(), tt.errSubstr) {
			t.Errorf("%s: error %q should contain %q", tt.name, err.Error(), tt.errSubstr)
		}
	}
}
