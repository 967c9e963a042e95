// Package traffic generates synthetic injection processes that exercise a
// network.Simulator end to end: an arrival process (when packets are
// created) paired with a destination pattern (which router each packet
// targets), in the textbook synthetic-NoC-traffic vocabulary.
package traffic

import "math/rand"

// DestinationPattern picks a destination router id for a packet
// originating at src, given a network of numRouters nodes.
type DestinationPattern interface {
	Destination(rng *rand.Rand, src, numRouters int) int
}

// UniformRandom picks any router other than src with equal probability —
// the baseline synthetic pattern.
type UniformRandom struct{}

func (UniformRandom) Destination(rng *rand.Rand, src, numRouters int) int {
	if numRouters <= 1 {
		return src
	}
	for {
		d := rng.Intn(numRouters)
		if d != src {
			return d
		}
	}
}

// BitComplement targets the router whose id, read as a bit pattern over
// log2(numRouters) bits, is the bitwise complement of src — the classic
// adversarial pattern for XY-routed meshes (every packet crosses the
// full diameter).
type BitComplement struct{}

func (BitComplement) Destination(_ *rand.Rand, src, numRouters int) int {
	mask := numRouters - 1
	return (^src) & mask
}

// Tornado sends every node's traffic to the node roughly halfway around
// the network in id-space — saturates a ring/torus's long-haul links.
type Tornado struct{}

func (Tornado) Destination(_ *rand.Rand, src, numRouters int) int {
	if numRouters <= 1 {
		return src
	}
	return (src + numRouters/2) % numRouters
}

// Hotspot sends every packet to the same fixed destination router,
// stressing that router's output-VC and credit accounting under
// many-to-one contention.
type Hotspot struct {
	Target int
}

func (h Hotspot) Destination(_ *rand.Rand, src, numRouters int) int {
	return h.Target
}

// ArrivalSampler generates inter-arrival times for a single injection
// source, in cycles.
type ArrivalSampler interface {
	// SampleIAT returns the next inter-arrival time in cycles (>= 1).
	SampleIAT(rng *rand.Rand) int64
}

// PoissonSampler generates exponentially-distributed inter-arrival times,
// the standard open-loop NoC injection process.
type PoissonSampler struct {
	// RatePerCycle is the mean number of packets injected per cycle
	// (injection rate, typically expressed as flits/node/cycle in NoC
	// literature; here it drives whole-packet injection).
	RatePerCycle float64
}

func (s PoissonSampler) SampleIAT(rng *rand.Rand) int64 {
	iat := int64(rng.ExpFloat64() / s.RatePerCycle)
	if iat < 1 {
		return 1
	}
	return iat
}
