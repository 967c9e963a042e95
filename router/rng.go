package router

import (
	"hash/fnv"
	"math/rand"
)

// SimulationKey uniquely identifies a reproducible simulation run. Two
// runs with the same SimulationKey and identical topology/config MUST
// produce bit-for-bit identical routing and allocation decisions.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// Subsystem names partition the network's single seeded PRNG so that
// unrelated non-deterministic choices don't perturb each other when one
// call site's usage pattern changes.
const (
	// SubsystemTableRouting is used by unordered-vnet table-lookup
	// tie-breaking.
	SubsystemTableRouting = "table_routing"
	// SubsystemTorusSelect is used by torus_send_allowed's uniform
	// choice among admissible (outport, first_half) pairs.
	SubsystemTorusSelect = "torus_select"
)

// PartitionedRNG provides deterministic, isolated RNG instances per
// subsystem from one master seed. Every non-deterministic routing or
// allocation choice draws from it; each subsystem gets its own derived
// stream so that, e.g., adding a table-routing tie-break call doesn't
// reseed the torus selection stream.
//
// Thread-safety: NOT thread-safe. A router is single-threaded within a
// cycle, and PartitionedRNG is owned by the network, not shared across
// concurrent goroutines.
type PartitionedRNG struct {
	key        SimulationKey
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns a deterministically-seeded RNG for the named
// subsystem. The same name always returns the same *rand.Rand instance
// (cached). Never returns nil.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}
	derivedSeed := int64(p.key) ^ fnv1a64(name)
	rng := rand.New(rand.NewSource(derivedSeed))
	p.subsystems[name] = rng
	return rng
}

// Key returns the SimulationKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
