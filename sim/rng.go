package sim

import (
	"hash/fnv"
	"math/rand"
)

// SimulationKey identifies a reproducible synthetic workload. Two runs with
// the same key and generator settings produce identical programs.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// RNG subsystems. Each draws from its own stream so that, for example,
// widening the arrival spread does not change any program's instructions.
const (
	// SubsystemPrograms drives instruction mixes. Uses the master seed
	// directly.
	SubsystemPrograms = "programs"

	SubsystemArrivals   = "arrivals"
	SubsystemPriorities = "priorities"
)

// PartitionedRNG hands out one deterministically seeded *rand.Rand per
// subsystem. Not safe for concurrent use.
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

// ForSubsystem returns the cached RNG for name, creating it on first use.
// SubsystemPrograms is seeded with the master seed; every other subsystem
// with masterSeed XOR fnv1a64(name).
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}
	seed := int64(p.key)
	if name != SubsystemPrograms {
		seed ^= fnv1a64(name)
	}
	rng := rand.New(rand.NewSource(seed))
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
