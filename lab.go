// Package qlab simulates quantum circuits on a statevector backend and
// builds the standard protocol demonstrations on top of it: BB84 key
// sifting, quantum random numbers, Grover search, the quantum Fourier
// transform, phase estimation and teleportation.
package qlab

import (
	"fmt"
	"math/rand"
	"os"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultShots is the sample count used by the protocol helpers when
// the caller does not choose one.
const DefaultShots = 1000

// Lab fronts the simulator, the circuit registry and the protocol entry
// points. Construct one per consumer; there is no package-level
// instance and no shared randomness between labs.
type Lab struct {
	sim       Simulator
	reg       *Registry
	log       *log.Logger
	seed      int64
	calls     atomic.Int64
	molecules atomic.Int64
	keys      atomic.Int64
	shots     int
}

type Option func(*Lab)

// WithSeed fixes the base seed. Every call still draws from its own
// derived stream, so concurrent use stays race-free.
func WithSeed(seed int64) Option { return func(l *Lab) { l.seed = seed } }

// WithWorkers caps the sampling fan-out for executed circuits.
func WithWorkers(n int) Option { return func(l *Lab) { l.sim.Workers = n } }

// WithLogger replaces the default stderr logger.
func WithLogger(logger *log.Logger) Option { return func(l *Lab) { l.log = logger } }

// WithDefaultShots changes the shot count used by the protocol helpers.
func WithDefaultShots(n int) Option { return func(l *Lab) { l.shots = n } }

func New(opts ...Option) *Lab {
	l := &Lab{
		reg:   NewRegistry(),
		seed:  time.Now().UnixNano(),
		shots: DefaultShots,
	}
	l.log = log.NewWithOptions(os.Stderr, log.Options{
		Level:  log.WarnLevel,
		Prefix: "qlab",
	})
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// newRNG derives an independent stream for one call.
func (l *Lab) newRNG() *rand.Rand {
	return rand.New(rand.NewSource(l.seed + l.calls.Add(1)))
}

// CreateCircuit binds gate tokens, stores the circuit and returns its
// id. A bad token fails the whole call; nothing is stored.
func (l *Lab) CreateCircuit(name string, numQubits int, tokens []string) (string, error) {
	c, err := BindTokens(name, numQubits, tokens)
	if err != nil {
		return "", err
	}
	id := l.reg.Add(c)
	l.log.Info("circuit created", "id", id, "name", name, "qubits", numQubits, "gates", len(c.Gates))
	return id, nil
}

// StoreCircuit registers an already-built circuit and returns its id.
// Callers that need explicit qubit placement or angles build with
// NewCircuit and store here instead of going through the token binder.
func (l *Lab) StoreCircuit(c *Circuit) (string, error) {
	if c == nil {
		return "", fmt.Errorf("%w: nil circuit", ErrInvalidArgument)
	}
	id := l.reg.Add(c)
	l.log.Info("circuit stored", "id", id, "name", c.Name, "qubits", c.NumQubits)
	return id, nil
}

// ExecutionResult reports one run of a stored circuit. Amplitudes hold
// the evolved pre-measurement state; counts and probabilities come from
// sampling it.
type ExecutionResult struct {
	CircuitID     string             `json:"circuit_id"`
	Name          string             `json:"name"`
	NumQubits     int                `json:"num_qubits"`
	Shots         int                `json:"shots"`
	Counts        Histogram          `json:"counts"`
	Probabilities map[string]float64 `json:"probabilities"`
	MostLikely    string             `json:"most_likely"`
	Amplitudes    []complex128       `json:"-"`
}

// Execute runs a stored circuit for the given number of shots.
func (l *Lab) Execute(id string, shots int) (*ExecutionResult, error) {
	if shots <= 0 {
		return nil, fmt.Errorf("%w: shots %d, want at least 1", ErrInvalidArgument, shots)
	}
	c, err := l.reg.Get(id)
	if err != nil {
		return nil, err
	}
	reg, counts, err := l.sim.Run(c, shots, l.newRNG())
	if err != nil {
		return nil, err
	}
	top, _ := counts.MostLikely()
	l.log.Info("circuit executed", "id", id, "shots", shots, "outcome", top)
	return &ExecutionResult{
		CircuitID:     id,
		Name:          c.Name,
		NumQubits:     c.NumQubits,
		Shots:         shots,
		Counts:        counts,
		Probabilities: counts.Probabilities(),
		MostLikely:    top,
		Amplitudes:    reg.Amplitudes(),
	}, nil
}

// CircuitInfo returns the stored summary of one circuit.
func (l *Lab) CircuitInfo(id string) (*CircuitInfo, error) {
	return l.reg.Info(id)
}

// ListCircuits returns every stored circuit in creation order.
func (l *Lab) ListCircuits() []CircuitInfo {
	return l.reg.List()
}

// LabStatus is a point-in-time snapshot of what the lab has done.
type LabStatus struct {
	Circuits  int    `json:"circuits"`
	Molecules int    `json:"molecules"`
	Keys      int    `json:"keys"`
	MaxQubits int    `json:"max_qubits"`
	Backend   string `json:"backend"`
	Status    string `json:"status"`
}

func (l *Lab) Status() LabStatus {
	return LabStatus{
		Circuits:  l.reg.Len(),
		Molecules: int(l.molecules.Load()),
		Keys:      int(l.keys.Load()),
		MaxQubits: MaxQubits,
		Backend:   "statevector",
		Status:    "operational",
	}
}

// BB84 sifts a key over a noiseless channel.
func (l *Lab) BB84(keyLength int) (*BB84Result, error) {
	return l.bb84(keyLength, 0)
}

// BB84OverChannel sifts a key over a channel that flips each qubit with
// the given probability.
func (l *Lab) BB84OverChannel(keyLength int, flipProb float64) (*BB84Result, error) {
	return l.bb84(keyLength, flipProb)
}

func (l *Lab) bb84(keyLength int, flipProb float64) (*BB84Result, error) {
	res, err := BB84Key(keyLength, flipProb, l.newRNG())
	if err != nil {
		return nil, err
	}
	l.keys.Add(1)
	l.log.Info("bb84 key sifted", "bits", res.SiftedBits, "trials", res.Trials, "error", res.ErrorRate, "partial", res.Partial)
	return res, nil
}

// QuantumRandom draws the requested number of bits by measuring
// Hadamard qubits.
func (l *Lab) QuantumRandom(bits int) (*RandomResult, error) {
	return QuantumRandom(bits, l.newRNG())
}

// Grover searches for the marked basis state.
func (l *Lab) Grover(numQubits, marked int) (*GroverResult, error) {
	return GroverSearch(numQubits, marked, l.shots, l.newRNG())
}

// QFT runs the Fourier transform demonstration.
func (l *Lab) QFT(numQubits int) (*QFTResult, error) {
	return RunQFT(numQubits, l.shots, l.newRNG())
}

// PhaseEstimation estimates the Z eigenphase of |1> with the given
// counting register width.
func (l *Lab) PhaseEstimation(countingQubits int) (*PhaseResult, error) {
	return EstimatePhase(countingQubits, l.shots, l.newRNG())
}

// Teleport runs the teleportation protocol with the given message
// preparation.
func (l *Lab) Teleport(prep string) (*TeleportResult, error) {
	return Teleport(prep, l.shots, l.newRNG())
}

// BellState prepares and samples the two-qubit Bell pair.
func (l *Lab) BellState() (*BellResult, error) {
	return RunBellState(l.shots, l.newRNG())
}

// SimulateMolecule runs the bond model for a supported molecule.
func (l *Lab) SimulateMolecule(name string, temperatureK, pressureAtm float64) (*MoleculeResult, error) {
	res, err := SimulateMolecule(name, temperatureK, pressureAtm)
	if err != nil {
		return nil, err
	}
	l.molecules.Add(1)
	l.log.Info("molecule simulated", "molecule", res.Molecule, "energy", res.Energy)
	return res, nil
}
