package traffic

import (
	"math/rand"

	"github.com/vcnoc/vcnoc/network"
	"github.com/vcnoc/vcnoc/router"
)

// subsystemArrival / subsystemDestination name the streams of the
// generator's own PartitionedRNG, in the style of router's subsystem
// constants. The generator never draws from the simulator's PRNG, so its
// random choices never perturb the routing/allocation streams.
const (
	subsystemArrival    = "traffic_arrival"
	subsystemDestination = "traffic_destination"
)

// Spec configures one injection source: the arrival process, destination
// pattern, vnet, and packet length for packets originating at a fixed
// source router.
type Spec struct {
	SrcRouter     int
	LocalInport   int // the router's NI-facing inport index (0 for every topology builder in this repo)
	Vnet          int
	VCsPerVnet    int
	Arrival       ArrivalSampler
	Destination   DestinationPattern
	PacketLength  int // flits per packet; 1 produces a HEAD_TAIL flit
	StopAfterTick int64
}

// Generator drives one or more injection Specs against a network.Simulator,
// scheduling each source's packets ahead of time via ScheduleInject: a
// pure producer of timed arrivals, decoupled from the thing consuming them.
type Generator struct {
	specs      []Spec
	numRouters int
	nextVC     map[int]int // keyed by src*1000+vnet, round-robins across a vnet's VCs
}

// NewGenerator creates a Generator over numRouters (used by destination
// patterns that need the network's size, e.g. BitComplement/Tornado).
func NewGenerator(numRouters int) *Generator {
	return &Generator{numRouters: numRouters, nextVC: make(map[int]int)}
}

// AddSource registers one injection Spec.
func (g *Generator) AddSource(s Spec) { g.specs = append(g.specs, s) }

func (g *Generator) pickVC(src, vnet, vcsPerVnet int) int {
	key := src*1000 + vnet
	offset := g.nextVC[key]
	g.nextVC[key] = (offset + 1) % vcsPerVnet
	return vnet*vcsPerVnet + offset
}

// Run schedules every source's packets from startTick through each
// source's StopAfterTick (or sim's own horizon if the caller later calls
// Simulator.Run with an earlier bound — unscheduled packets past the
// horizon are simply never drawn from the heap). rngKey seeds this
// generator's own arrival/destination draws; pass the same key the
// simulator's topology was built with for a fully reproducible run, or a
// different one to vary traffic while keeping routing/allocation fixed.
func (g *Generator) Run(sim *network.Simulator, rngKey router.SimulationKey, startTick int64) {
	prng := router.NewPartitionedRNG(rngKey)
	arrivalRNG := prng.ForSubsystem(subsystemArrival)
	destRNG := prng.ForSubsystem(subsystemDestination)

	for _, spec := range g.specs {
		g.runSource(sim, spec, arrivalRNG, destRNG, startTick)
	}
}

func (g *Generator) runSource(sim *network.Simulator, spec Spec, arrivalRNG, destRNG *rand.Rand, startTick int64) {
	tick := startTick
	for tick <= spec.StopAfterTick {
		dest := spec.Destination.Destination(destRNG, spec.SrcRouter, g.numRouters)
		vc := g.pickVC(spec.SrcRouter, spec.Vnet, spec.VCsPerVnet)
		sim.ScheduleInject(tick, spec.SrcRouter, spec.LocalInport, vc, buildPacket(spec, dest))
		tick += spec.Arrival.SampleIAT(arrivalRNG)
	}
}

// buildPacket segments one packet into its HEAD/BODY/TAIL flits (or a
// single HEAD_TAIL flit when PacketLength is 1), all sharing one
// RouteInfo pointer.
func buildPacket(spec Spec, dest int) []*router.Flit {
	route := &router.RouteInfo{
		Vnet:       spec.Vnet,
		NetDest:    router.NewNetDest(dest),
		SrcRouter:  spec.SrcRouter,
		DestRouter: dest,
	}

	n := spec.PacketLength
	if n < 1 {
		n = 1
	}
	flits := make([]*router.Flit, n)
	for i := 0; i < n; i++ {
		kind := router.BodyFlit
		switch {
		case n == 1:
			kind = router.HeadTailFlit
		case i == 0:
			kind = router.HeadFlit
		case i == n-1:
			kind = router.TailFlit
		}
		flits[i] = &router.Flit{
			Kind:    kind,
			Vnet:    spec.Vnet,
			Outport: -1,
			VC:      -1,
			Stage:   router.StageSA,
			Route:   route,
		}
	}
	return flits
}
