package qlab

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Registry is the in-memory circuit store. One writer appends, readers
// run concurrently; records are never mutated or removed.
type Registry struct {
	mu    sync.RWMutex
	byID  map[string]*Circuit
	order []string
}

func NewRegistry() *Registry {
	return &Registry{byID: make(map[string]*Circuit)}
}

// Add stores a copy of the circuit and returns its issued id.
func (r *Registry) Add(c *Circuit) string {
	id := uuid.NewString()
	r.mu.Lock()
	r.byID[id] = c.clone()
	r.order = append(r.order, id)
	r.mu.Unlock()
	return id
}

// Get returns a copy of the stored circuit.
func (r *Registry) Get(id string) (*Circuit, error) {
	r.mu.RLock()
	c, ok := r.byID[id]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: circuit %s", ErrNotFound, id)
	}
	return c.clone(), nil
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// CircuitInfo summarizes a stored circuit for listings.
type CircuitInfo struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	NumQubits int       `json:"num_qubits"`
	GateCount int       `json:"gate_count"`
	Gates     []string  `json:"gates"`
	CreatedAt time.Time `json:"created_at"`
}

func (r *Registry) info(id string, c *Circuit) CircuitInfo {
	gates := make([]string, len(c.Gates))
	for i, g := range c.Gates {
		gates[i] = g.String()
	}
	return CircuitInfo{
		ID:        id,
		Name:      c.Name,
		NumQubits: c.NumQubits,
		GateCount: len(c.Gates),
		Gates:     gates,
		CreatedAt: c.CreatedAt,
	}
}

// Info returns the summary of one stored circuit.
func (r *Registry) Info(id string) (*CircuitInfo, error) {
	r.mu.RLock()
	c, ok := r.byID[id]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: circuit %s", ErrNotFound, id)
	}
	info := r.info(id, c)
	return &info, nil
}

// List returns summaries of every stored circuit in creation order.
func (r *Registry) List() []CircuitInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	infos := make([]CircuitInfo, 0, len(r.order))
	for _, id := range r.order {
		infos = append(infos, r.info(id, r.byID[id]))
	}
	return infos
}
