package network

import "github.com/vcnoc/vcnoc/router"

// DeliveryRecorder is notified every time a flit reaches its destination
// router's local (NI-facing) port. trace.Recorder implements this so the
// simulator never needs to import the trace package.
type DeliveryRecorder interface {
	RecordDelivery(tick int64, routerID int, flit *router.Flit)
}

// Simulator drives the discrete-event timeline shared by every Router in
// a Network: a seeded PRNG, a priority-ordered Timeline of pending
// events, and the wiring that turns a granted switch traversal into a
// FlitArrivalEvent or CreditArrivalEvent some cycles later.
type Simulator struct {
	routers map[int]*Router
	rng     *router.PartitionedRNG

	heap        *Timeline
	clock       int64
	nextEventID uint64

	recorder DeliveryRecorder
}

// NewSimulator creates an empty Simulator seeded by key. Use AddRouter to
// populate the topology before calling Run.
func NewSimulator(key router.SimulationKey) *Simulator {
	return &Simulator{
		routers: make(map[int]*Router),
		rng:     router.NewPartitionedRNG(key),
		heap:    NewTimeline(),
	}
}

// SetRecorder installs the sink notified of every flit delivery.
func (s *Simulator) SetRecorder(r DeliveryRecorder) { s.recorder = r }

// AddRouter registers r under its ID and attaches it to this simulator's
// timeline and PRNG.
func (s *Simulator) AddRouter(r *Router) {
	r.attach(s)
	s.routers[r.id] = r
}

// Router looks up a router by ID, or nil if absent.
func (s *Simulator) Router(id int) *Router { return s.routers[id] }

// Clock is the current simulated tick.
func (s *Simulator) Clock() int64 { return s.clock }

func (s *Simulator) nextID() uint64 {
	s.nextEventID++
	return s.nextEventID
}

func (s *Simulator) scheduleRouterWakeup(tick int64, routerID int) {
	s.heap.Schedule(newRouterWakeupEvent(tick, routerID, s.nextID()))
}

func (s *Simulator) scheduleFlitArrival(tick int64, routerID, inport, vc int, flit *router.Flit) {
	s.heap.Schedule(newFlitArrivalEvent(tick, routerID, inport, vc, flit, s.nextID()))
}

func (s *Simulator) scheduleCreditArrival(tick int64, routerID, outport, vc int, vcFreed bool) {
	s.heap.Schedule(newCreditArrivalEvent(tick, routerID, outport, vc, vcFreed, s.nextID()))
}

func (s *Simulator) deliver(routerID int, flit *router.Flit) {
	if s.recorder != nil {
		s.recorder.RecordDelivery(s.clock, routerID, flit)
	}
}

// Inject pushes a freshly-created packet's flits onto router src's local
// input VC at the current clock, as if a network interface had just
// handed them over. The caller is responsible for splitting a packet
// into its HEAD/BODY/TAIL flits and picking a VC within the packet's
// vnet; see package traffic.
func (s *Simulator) Inject(src, localInport, vc int, flits []*router.Flit) {
	r := s.routers[src]
	for _, f := range flits {
		r.arrive(localInport, vc, f, s.clock)
	}
}

// ScheduleInject queues a whole packet for injection at a future tick,
// for traffic generators that plan their injection process ahead of
// Run/Step. The packet lands atomically: if the target VC is still busy
// with an earlier packet at that tick, injection defers cycle by cycle
// until the VC drains.
func (s *Simulator) ScheduleInject(tick int64, src, localInport, vc int, flits []*router.Flit) {
	s.heap.Schedule(newPacketInjectionEvent(tick, src, localInport, vc, flits, s.nextID()))
}

func (s *Simulator) handleRouterWakeup(e *RouterWakeupEvent) {
	r := s.routers[e.RouterID]
	if r == nil {
		return
	}
	r.wakeup()
	for inport, credits := range r.drainCredits() {
		link := r.inLinks[inport]
		if link.ToRouter == localDelivery || len(credits) == 0 {
			continue
		}
		// A credit queued on invc maps back to the same-indexed outvc on
		// the upstream neighbor: Router.arrive binds a packet's invc to
		// the outvc its sender allocated for it, so the two always agree.
		for _, c := range credits {
			s.scheduleCreditArrival(s.clock+link.Latency, link.ToRouter, link.ToPort, c.vc, c.vcFreed)
		}
	}
}

func (s *Simulator) handleFlitArrival(e *FlitArrivalEvent) {
	r := s.routers[e.RouterID]
	if r == nil {
		return
	}
	r.arrive(e.Inport, e.VC, e.Flit, e.Timestamp())
}

func (s *Simulator) handlePacketInjection(e *PacketInjectionEvent) {
	r := s.routers[e.RouterID]
	if r == nil {
		return
	}
	in := r.inputs[e.Inport]
	if in.vcs[e.VC].state != router.VCIdle || len(in.vcs[e.VC].queue) > 0 {
		s.heap.Schedule(newPacketInjectionEvent(e.Timestamp()+1, e.RouterID, e.Inport, e.VC, e.Flits, s.nextID()))
		return
	}
	for _, f := range e.Flits {
		r.arrive(e.Inport, e.VC, f, e.Timestamp())
	}
}

func (s *Simulator) handleCreditArrival(e *CreditArrivalEvent) {
	r := s.routers[e.RouterID]
	if r == nil {
		return
	}
	r.outputs[e.Outport].ReturnCredit(e.VC, e.VCFreed)
}

// Run drains the event heap through tick horizon (inclusive), advancing
// Clock to each event's timestamp before executing it.
func (s *Simulator) Run(horizon int64) {
	for {
		next := s.heap.Peek()
		if next == nil || next.Timestamp() > horizon {
			return
		}
		e := s.heap.PopNext()
		s.clock = e.Timestamp()
		e.Execute(s)
	}
}

// Step executes exactly one event and returns false once the heap is
// drained, useful for interactive or traced single-stepping.
func (s *Simulator) Step() bool {
	e := s.heap.PopNext()
	if e == nil {
		return false
	}
	s.clock = e.Timestamp()
	e.Execute(s)
	return true
}
