package qlab

import (
	"fmt"
	"math"
	"strings"
)

type moleculeSpec struct {
	qubits int
	bonds  int
}

// Supported molecules and the register sizes their bond models use.
var molecules = map[string]moleculeSpec{
	"h2o": {qubits: 6, bonds: 2},
	"co2": {qubits: 6, bonds: 2},
	"nh3": {qubits: 8, bonds: 3},
	"ch4": {qubits: 10, bonds: 4},
}

type MoleculeResult struct {
	Molecule        string  `json:"molecule"`
	NumQubits       int     `json:"num_qubits"`
	Bonds           int     `json:"bonds"`
	TemperatureK    float64 `json:"temperature_k"`
	PressureAtm     float64 `json:"pressure_atm"`
	Energy          float64 `json:"energy"`
	VibrationalFreq float64 `json:"vibrational_freq"`
	Stability       float64 `json:"stability"`
}

// SimulateMolecule runs the bond model: each bond is an entangled qubit
// pair perturbed by temperature (RZ) and pressure (RY) rotations, and
// the energy is the negative sum of bond <Z x Z> correlations from the
// exact final state. Cold, low-pressure runs give fully correlated
// bonds, so the energy floor is minus the bond count.
func SimulateMolecule(name string, temperatureK, pressureAtm float64) (*MoleculeResult, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	spec, ok := molecules[key]
	if !ok {
		return nil, fmt.Errorf("%w: molecule %q not supported", ErrConfiguration, name)
	}
	if math.IsNaN(temperatureK) || math.IsInf(temperatureK, 0) || temperatureK < 0 {
		return nil, fmt.Errorf("%w: temperature %v K", ErrInvalidArgument, temperatureK)
	}
	if math.IsNaN(pressureAtm) || math.IsInf(pressureAtm, 0) || pressureAtm < 0 {
		return nil, fmt.Errorf("%w: pressure %v atm", ErrInvalidArgument, pressureAtm)
	}

	gates := make([]GateOp, 0, spec.bonds*4)
	for b := 0; b < spec.bonds; b++ {
		hi, lo := 2*b, 2*b+1
		gates = append(gates,
			H(hi),
			CNOT(hi, lo),
			RZ(lo, math.Pi*temperatureK/1000),
			RY(hi, math.Pi*pressureAtm/10),
		)
	}
	c, err := NewCircuit(key, spec.qubits, gates...)
	if err != nil {
		return nil, err
	}
	var sim Simulator
	reg, err := sim.Evolve(c)
	if err != nil {
		return nil, err
	}

	energy := 0.0
	for b := 0; b < spec.bonds; b++ {
		zz, err := PairCorrelation(reg, 2*b, 2*b+1)
		if err != nil {
			return nil, err
		}
		energy -= zz
	}
	return &MoleculeResult{
		Molecule:        strings.ToUpper(key),
		NumQubits:       spec.qubits,
		Bonds:           spec.bonds,
		TemperatureK:    temperatureK,
		PressureAtm:     pressureAtm,
		Energy:          energy,
		VibrationalFreq: 3000 + 0.1*temperatureK,
		Stability:       math.Exp(-math.Abs(temperatureK-298) / 100),
	}, nil
}
