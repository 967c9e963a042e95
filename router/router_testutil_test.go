package router

// Minimal hand-rolled fakes implementing InputUnit/OutputUnit/RouterHost
// for unit tests.

type vcRecord struct {
	state     VCState
	queue     []*Flit
	outport   int
	outvc     int
	outports  []OutportChoice
	firstHalf bool
}

type fakeInputUnit struct {
	dir           string
	vcs           []vcRecord
	creditsFreed  []int // per call, which vc got a credit-increment
	creditVCFrees []bool
}

func newFakeInputUnit(dir string, numVCs int) *fakeInputUnit {
	vcs := make([]vcRecord, numVCs)
	for i := range vcs {
		vcs[i] = vcRecord{outport: noOutport, outvc: noOutvc}
	}
	return &fakeInputUnit{dir: dir, vcs: vcs}
}

func (u *fakeInputUnit) enqueue(vc int, f *Flit) {
	u.vcs[vc].queue = append(u.vcs[vc].queue, f)
}

func (u *fakeInputUnit) NeedStage(vc int, stage FlitStage, tick int64) bool {
	r := u.vcs[vc]
	return len(r.queue) > 0 && r.queue[0].Stage == stage
}
func (u *fakeInputUnit) PeekTopFlit(vc int) *Flit { return u.vcs[vc].queue[0] }
func (u *fakeInputUnit) GetTopFlit(vc int) *Flit {
	f := u.vcs[vc].queue[0]
	u.vcs[vc].queue = u.vcs[vc].queue[1:]
	return f
}
func (u *fakeInputUnit) IsReady(vc int, tick int64) bool { return len(u.vcs[vc].queue) > 0 }
func (u *fakeInputUnit) GetOutport(vc int) int           { return u.vcs[vc].outport }
func (u *fakeInputUnit) GetOutvc(vc int) int             { return u.vcs[vc].outvc }
func (u *fakeInputUnit) GetOutports(vc int) []OutportChoice { return u.vcs[vc].outports }
func (u *fakeInputUnit) GetFirstHalf(vc int) bool        { return u.vcs[vc].firstHalf }
func (u *fakeInputUnit) GetEnqueueTime(vc int) int64 {
	if len(u.vcs[vc].queue) == 0 {
		return 0
	}
	return u.vcs[vc].queue[0].EnqueueTime
}
func (u *fakeInputUnit) GrantOutport(vc int, outport int) {
	r := u.vcs[vc]
	r.outport = outport
	u.vcs[vc] = r
}
func (u *fakeInputUnit) GrantOutvc(vc int, outvc int) {
	r := u.vcs[vc]
	r.outvc = outvc
	u.vcs[vc] = r
}
func (u *fakeInputUnit) GrantOutports(vc int, choices []OutportChoice) {
	r := u.vcs[vc]
	r.outports = choices
	u.vcs[vc] = r
}
func (u *fakeInputUnit) GrantFirstHalf(vc int, fh bool) {
	r := u.vcs[vc]
	r.firstHalf = fh
	u.vcs[vc] = r
}
func (u *fakeInputUnit) SetVCIdle(vc int, tick int64) {
	r := u.vcs[vc]
	r.state = VCIdle
	r.outport = noOutport
	r.outvc = noOutvc
	u.vcs[vc] = r
}
func (u *fakeInputUnit) IncrementCredit(vc int, vcFree bool, tick int64) {
	u.creditsFreed = append(u.creditsFreed, vc)
	u.creditVCFrees = append(u.creditVCFrees, vcFree)
}
func (u *fakeInputUnit) Direction() string { return u.dir }

type fakeOutputUnit struct {
	dir        string
	vcsPerVnet int
	free       []bool
	credit     []int
}

func newFakeOutputUnit(dir string, numVCs, vcsPerVnet, initialCredit int) *fakeOutputUnit {
	free := make([]bool, numVCs)
	credit := make([]int, numVCs)
	for i := range free {
		free[i] = true
		credit[i] = initialCredit
	}
	return &fakeOutputUnit{dir: dir, vcsPerVnet: vcsPerVnet, free: free, credit: credit}
}

func (o *fakeOutputUnit) rangeFor(vnet int) (int, int) {
	return vnet * o.vcsPerVnet, (vnet + 1) * o.vcsPerVnet
}

func (o *fakeOutputUnit) HasFreeVC(vnet int) bool {
	lo, hi := o.rangeFor(vnet)
	for i := lo; i < hi; i++ {
		if o.free[i] {
			return true
		}
	}
	return false
}
func (o *fakeOutputUnit) FirstHasFreeVC(vnet int) bool {
	lo, hi := o.rangeFor(vnet)
	mid := lo + (hi-lo)/2
	for i := lo; i < mid; i++ {
		if o.free[i] {
			return true
		}
	}
	return false
}
func (o *fakeOutputUnit) SecondHasFreeVC(vnet int) bool {
	lo, hi := o.rangeFor(vnet)
	mid := lo + (hi-lo)/2
	for i := mid; i < hi; i++ {
		if o.free[i] {
			return true
		}
	}
	return false
}
func (o *fakeOutputUnit) SelectFreeVC(vnet int) int {
	lo, hi := o.rangeFor(vnet)
	for i := lo; i < hi; i++ {
		if o.free[i] {
			o.free[i] = false
			return i
		}
	}
	return noOutvc
}
func (o *fakeOutputUnit) FirstSelectFreeVC(vnet int) int {
	lo, hi := o.rangeFor(vnet)
	mid := lo + (hi-lo)/2
	for i := lo; i < mid; i++ {
		if o.free[i] {
			o.free[i] = false
			return i
		}
	}
	return noOutvc
}
func (o *fakeOutputUnit) SecondSelectFreeVC(vnet int) int {
	lo, hi := o.rangeFor(vnet)
	mid := lo + (hi-lo)/2
	for i := mid; i < hi; i++ {
		if o.free[i] {
			o.free[i] = false
			return i
		}
	}
	return noOutvc
}
func (o *fakeOutputUnit) HasCredit(outvc int) bool { return o.credit[outvc] > 0 }
func (o *fakeOutputUnit) HasVCWithCredits(vnet int) bool {
	lo, hi := o.rangeFor(vnet)
	for i := lo; i < hi; i++ {
		if o.credit[i] > 0 {
			return true
		}
	}
	return false
}
func (o *fakeOutputUnit) SelectVCWithCredits(vnet int) int {
	lo, hi := o.rangeFor(vnet)
	for i := lo; i < hi; i++ {
		if o.credit[i] > 0 {
			return i
		}
	}
	return noOutvc
}
func (o *fakeOutputUnit) DecrementCredit(outvc int) {
	if o.credit[outvc] <= 0 {
		panic("decrementing credit below zero")
	}
	o.credit[outvc]--
}
func (o *fakeOutputUnit) Direction() string { return o.dir }

type fakeHost struct {
	id          int
	numInports  int
	numOutports int
	numVCs      int
	vcsPerVnet  int
	numVnets    int
	orderedVnet map[int]bool
	wormhole    bool
	algo        RoutingAlgorithm

	inputs  []*fakeInputUnit
	outputs []*fakeOutputUnit
	outDirs map[int]string

	tick         int64
	scheduled    map[int64]bool
	scheduledLog []int64
	granted      []grantRecord
	rng          *PartitionedRNG
}

type grantRecord struct {
	inport int
	flit   *Flit
}

func newFakeHost(id, numInports, numOutports, numVCs, vcsPerVnet int) *fakeHost {
	numVnets := numVCs / vcsPerVnet
	h := &fakeHost{
		id:          id,
		numInports:  numInports,
		numOutports: numOutports,
		numVCs:      numVCs,
		vcsPerVnet:  vcsPerVnet,
		numVnets:    numVnets,
		orderedVnet: make(map[int]bool),
		outDirs:     make(map[int]string),
		scheduled:   make(map[int64]bool),
		rng:         NewPartitionedRNG(NewSimulationKey(42)),
	}
	for i := 0; i < numInports; i++ {
		h.inputs = append(h.inputs, newFakeInputUnit("", numVCs))
	}
	for i := 0; i < numOutports; i++ {
		h.outputs = append(h.outputs, newFakeOutputUnit("", numVCs, vcsPerVnet, 2))
	}
	return h
}

func (h *fakeHost) ID() int             { return h.id }
func (h *fakeHost) NumInports() int     { return h.numInports }
func (h *fakeHost) NumOutports() int    { return h.numOutports }
func (h *fakeHost) NumVCs() int         { return h.numVCs }
func (h *fakeHost) VCsPerVnet() int     { return h.vcsPerVnet }
func (h *fakeHost) NumVnets() int       { return h.numVnets }
func (h *fakeHost) IsVnetOrdered(v int) bool      { return h.orderedVnet[v] }
func (h *fakeHost) IsWormholeEnabled() bool       { return h.wormhole }
func (h *fakeHost) RoutingAlgorithm() RoutingAlgorithm { return h.algo }
func (h *fakeHost) InputUnit(inport int) InputUnit   { return h.inputs[inport] }
func (h *fakeHost) OutputUnit(outport int) OutputUnit { return h.outputs[outport] }
func (h *fakeHost) PortDirectionName(outport int) string { return h.outDirs[outport] }
func (h *fakeHost) CurTick() int64 { return h.tick }
func (h *fakeHost) ClockEdge(cyclesAhead int64) int64 { return h.tick + cyclesAhead }
func (h *fakeHost) AlreadyScheduled(tick int64) bool  { return h.scheduled[tick] }
func (h *fakeHost) ScheduleWakeup(cyclesAhead int64) {
	edge := h.tick + cyclesAhead
	h.scheduled[edge] = true
	h.scheduledLog = append(h.scheduledLog, edge)
}
func (h *fakeHost) GrantSwitch(inport int, flit *Flit) {
	h.granted = append(h.granted, grantRecord{inport: inport, flit: flit})
}
func (h *fakeHost) Rand() *PartitionedRNG { return h.rng }
