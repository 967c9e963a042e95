package network

import (
	"fmt"

	"github.com/vcnoc/vcnoc/router"
)

// Link describes one directed physical connection from an outport (or,
// mirrored, from an inport for the credit return path) to a neighbor.
// ToRouter == localDelivery marks a router's NI-facing port: flits
// granted out of it are consumed rather than forwarded.
type Link struct {
	ToRouter int
	ToPort   int
	Latency  int64
}

const localDelivery = -1

// Router is one node of the network: it owns a routing unit and switch
// allocator from package router, the concrete VC queues and credit
// counters they operate on, and the physical links to its neighbors. It
// implements router.RouterHost.
type Router struct {
	id int

	numInports  int
	numOutports int
	numVCs      int
	vcsPerVnet  int
	numVnets    int
	vnetOrdered []bool
	wormhole    bool
	algo        router.RoutingAlgorithm

	routingUnit *router.RoutingUnit
	alloc       *router.SwitchAllocator

	inputs  []*InputPort
	outputs []*OutputPort

	outDirNames map[int]string
	outLinks    []Link // indexed by outport
	inLinks     []Link // indexed by inport; credit return destination

	// packetOutport remembers, per in-flight packet, the outport its
	// head committed to at this router, so body/tail flits can be
	// stamped with it even when another packet's flits share their
	// input VC (wormhole mode interleaves packets on a VC).
	packetOutport map[*router.RouteInfo]int

	sim       *Simulator
	scheduled map[int64]bool
}

// NewRouter creates a Router with numOutports/numInports ports, each
// carrying numVCs virtual channels split into numVCs/vcsPerVnet vnets.
// The caller must still register directions, routes, and links before
// the router is simulated.
func NewRouter(id, numInports, numOutports, numVCs, vcsPerVnet int, algo router.RoutingAlgorithm, wormhole bool, vnetOrdered []bool) *Router {
	r := &Router{
		id:          id,
		numInports:  numInports,
		numOutports: numOutports,
		numVCs:      numVCs,
		vcsPerVnet:  vcsPerVnet,
		numVnets:    numVCs / vcsPerVnet,
		vnetOrdered: vnetOrdered,
		wormhole:      wormhole,
		algo:          algo,
		outDirNames:   make(map[int]string),
		packetOutport: make(map[*router.RouteInfo]int),
		scheduled:     make(map[int64]bool),
	}
	r.routingUnit = router.NewRoutingUnit(r)
	r.alloc = router.NewSwitchAllocator(r)
	r.alloc.Init()

	r.inputs = make([]*InputPort, numInports)
	for i := range r.inputs {
		r.inputs[i] = NewInputPort("", numVCs)
	}
	r.outputs = make([]*OutputPort, numOutports)
	for i := range r.outputs {
		r.outputs[i] = NewOutputPort("", numVCs, vcsPerVnet, 2)
	}
	r.outLinks = make([]Link, numOutports)
	r.inLinks = make([]Link, numInports)
	for i := range r.outLinks {
		r.outLinks[i] = Link{ToRouter: localDelivery}
	}
	for i := range r.inLinks {
		r.inLinks[i] = Link{ToRouter: localDelivery}
	}
	return r
}

// RoutingUnit exposes the routing unit for topology builders to
// configure (AddRoute, AddWeight, AddInDirection, AddOutDirection,
// SetMeshDims, SetRingSize, SetTorusDims).
func (r *Router) RoutingUnit() *router.RoutingUnit { return r.routingUnit }

// SetOutDirection names outport idx (for PortDirectionName and the
// routing unit's turn-restriction checks) and links it to a neighbor
// router's inport, with the given per-hop latency.
func (r *Router) SetOutDirection(idx int, name string, toRouter, toInport int, latency int64) {
	r.outDirNames[idx] = name
	r.routingUnit.AddOutDirection(name, idx)
	r.outLinks[idx] = Link{ToRouter: toRouter, ToPort: toInport, Latency: latency}
}

// SetInDirection names inport idx for the routing unit's turn-restriction
// checks (outport_compute's inport_dirn parameter).
func (r *Router) SetInDirection(idx int, name string) {
	r.inputs[idx].dirn = name
	r.routingUnit.AddInDirection(name, idx)
}

// SetInLink points inport idx's credit-return path back at the neighbor
// router's outport that feeds it.
func (r *Router) SetInLink(idx, toRouter, toOutport int, latency int64) {
	r.inLinks[idx] = Link{ToRouter: toRouter, ToPort: toOutport, Latency: latency}
}

// attach binds this router to the network that owns its event timeline
// and seeded PRNG. Called once by the topology builder.
func (r *Router) attach(sim *Simulator) { r.sim = sim }

// ID / NumInports / ... implement router.RouterHost.
func (r *Router) ID() int                                 { return r.id }
func (r *Router) NumInports() int                         { return r.numInports }
func (r *Router) NumOutports() int                        { return r.numOutports }
func (r *Router) NumVCs() int                              { return r.numVCs }
func (r *Router) VCsPerVnet() int                         { return r.vcsPerVnet }
func (r *Router) NumVnets() int                           { return r.numVnets }
func (r *Router) IsVnetOrdered(vnet int) bool {
	return vnet < len(r.vnetOrdered) && r.vnetOrdered[vnet]
}
func (r *Router) IsWormholeEnabled() bool                 { return r.wormhole }
func (r *Router) RoutingAlgorithm() router.RoutingAlgorithm { return r.algo }
func (r *Router) InputUnit(inport int) router.InputUnit   { return r.inputs[inport] }
func (r *Router) OutputUnit(outport int) router.OutputUnit { return r.outputs[outport] }
func (r *Router) PortDirectionName(outport int) string    { return r.outDirNames[outport] }
func (r *Router) CurTick() int64                          { return r.sim.clock }
func (r *Router) ClockEdge(cyclesAhead int64) int64       { return r.sim.clock + cyclesAhead }
func (r *Router) AlreadyScheduled(tick int64) bool        { return r.scheduled[tick] }

func (r *Router) ScheduleWakeup(cyclesAhead int64) {
	edge := r.sim.clock + cyclesAhead
	if r.scheduled[edge] {
		return
	}
	r.scheduled[edge] = true
	r.sim.scheduleRouterWakeup(edge, r.id)
}

// GrantSwitch hands a flit off the crossbar: either onto the link toward
// its next-hop neighbor (after that link's latency) or, for a
// locally-delivered outport, to the network's completion recorder. The
// local port models an ideal sink: its credit comes straight back, with
// the VC released once the packet's tail has been consumed.
func (r *Router) GrantSwitch(inport int, flit *router.Flit) {
	link := r.outLinks[flit.Outport]
	if link.ToRouter == localDelivery {
		r.sim.deliver(r.id, flit)
		vcFreed := flit.Kind == router.TailFlit || flit.Kind == router.HeadTailFlit
		r.outputs[flit.Outport].ReturnCredit(flit.VC, vcFreed)
		return
	}
	r.sim.scheduleFlitArrival(r.sim.clock+link.Latency, link.ToRouter, link.ToPort, flit.VC, flit)
}

func (r *Router) Rand() *router.PartitionedRNG { return r.sim.rng }

// wakeup runs the router's switch-allocation cycle. The credits it queues
// on its input ports are collected afterwards by drainCredits, which the
// simulator turns into CreditArrivalEvents on the appropriate reverse link.
func (r *Router) wakeup() {
	delete(r.scheduled, r.sim.clock)
	r.alloc.Wakeup()
}

// drainCredits collects and clears the credits every input VC queued
// during the cycle just run, indexed by inport. Inport order matters:
// credit events must be scheduled in a run-stable order for replays of
// the same seed to stay bit-identical.
func (r *Router) drainCredits() [][]creditSignal {
	out := make([][]creditSignal, len(r.inputs))
	for i, in := range r.inputs {
		out[i] = in.drainCredits()
	}
	return out
}

// arrive delivers a flit to inport/vc and marks it SA-ready, then wakes
// the router if it isn't already scheduled for the next edge. Route
// computation happens only once per packet per router, at the head
// flit; body/tail flits are stamped with the outport their head
// committed to rather than re-deriving one (table routing's random
// tie-break, in particular, must not be re-rolled per-flit). The stamp
// is kept in packetOutport, keyed by the packet's shared RouteInfo
// pointer, so it survives wormhole mode interleaving two packets on one
// input VC.
func (r *Router) arrive(inport, vc int, flit *router.Flit, tick int64) {
	flit.EnqueueTime = tick
	in := r.inputs[inport]
	isHead := flit.Kind == router.HeadFlit || flit.Kind == router.HeadTailFlit

	if r.algo == router.XYZ {
		if isHead {
			choices := r.routingUnit.OutportComputeXYZ(*flit.Route, inport, in.Direction())
			in.GrantOutports(vc, choices)
			flit.Route.HopsTraversed++
		}
	} else {
		if isHead {
			outport := r.routingUnit.OutportCompute(*flit.Route, inport, in.Direction())
			in.GrantOutport(vc, outport)
			r.packetOutport[flit.Route] = outport
			flit.Route.HopsTraversed++
		}
		outport, ok := r.packetOutport[flit.Route]
		if !ok {
			panic(fmt.Sprintf("network: router %d inport %d vc %d: %v flit arrived with no outport committed for its packet", r.id, inport, vc, flit.Kind))
		}
		flit.Outport = outport
		if flit.Kind == router.TailFlit || flit.Kind == router.HeadTailFlit {
			delete(r.packetOutport, flit.Route)
		}
	}

	flit.Stage = router.StageSA
	in.Enqueue(vc, flit)
	r.ScheduleWakeup(1)
}
