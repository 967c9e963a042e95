package network

import "github.com/vcnoc/vcnoc/router"

// vcRecord holds a VC's router.VCState plus the bookkeeping an InputUnit
// implementation needs that the router package never touches directly.
type vcRecord struct {
	state       router.VCState
	queue       []*Flit
	outport     int
	outvc       int
	outports    []router.OutportChoice
	firstHalf   bool
}

// InputPort is the per-inport collection of virtual-channel flit queues,
// the concrete implementation of router.InputUnit. One InputPort is owned
// by each Router per physical inport.
type InputPort struct {
	dirn string
	vcs  []vcRecord

	// pendingCredits lists the credits owed upstream, one entry per
	// IncrementCredit call; drainCredits empties it and the Simulator
	// turns each entry into a CreditArrivalEvent.
	pendingCredits []creditSignal
}

type creditSignal struct {
	vc      int
	vcFreed bool
}

// NewInputPort creates an InputPort with numVCs idle virtual channels.
func NewInputPort(dirn string, numVCs int) *InputPort {
	vcs := make([]vcRecord, numVCs)
	for i := range vcs {
		vcs[i] = vcRecord{outport: noOutport, outvc: noOutvc}
	}
	return &InputPort{dirn: dirn, vcs: vcs}
}

// Enqueue appends a freshly-arrived flit to vc's queue, marking the vc
// active if it was idle.
func (p *InputPort) Enqueue(vc int, f *Flit) {
	if p.vcs[vc].state == router.VCIdle {
		p.vcs[vc].state = router.VCAllocated
	}
	p.vcs[vc].queue = append(p.vcs[vc].queue, f)
}

func (p *InputPort) NeedStage(vc int, stage router.FlitStage, tick int64) bool {
	r := p.vcs[vc]
	return len(r.queue) > 0 && r.queue[0].Stage == stage
}

func (p *InputPort) PeekTopFlit(vc int) *Flit { return p.vcs[vc].queue[0] }

func (p *InputPort) GetTopFlit(vc int) *Flit {
	f := p.vcs[vc].queue[0]
	p.vcs[vc].queue = p.vcs[vc].queue[1:]
	return f
}

func (p *InputPort) IsReady(vc int, tick int64) bool { return len(p.vcs[vc].queue) > 0 }

func (p *InputPort) GetOutport(vc int) int { return p.vcs[vc].outport }
func (p *InputPort) GetOutvc(vc int) int   { return p.vcs[vc].outvc }
func (p *InputPort) GetOutports(vc int) []router.OutportChoice { return p.vcs[vc].outports }
func (p *InputPort) GetFirstHalf(vc int) bool                  { return p.vcs[vc].firstHalf }

func (p *InputPort) GetEnqueueTime(vc int) int64 {
	if len(p.vcs[vc].queue) == 0 {
		return 0
	}
	return p.vcs[vc].queue[0].EnqueueTime
}

func (p *InputPort) GrantOutport(vc, outport int)                     { p.vcs[vc].outport = outport }
func (p *InputPort) GrantOutvc(vc, outvc int)                         { p.vcs[vc].outvc = outvc }
func (p *InputPort) GrantOutports(vc int, choices []router.OutportChoice) { p.vcs[vc].outports = choices }
func (p *InputPort) GrantFirstHalf(vc int, firstHalf bool)             { p.vcs[vc].firstHalf = firstHalf }

func (p *InputPort) SetVCIdle(vc int, tick int64) {
	p.vcs[vc].state = router.VCIdle
	p.vcs[vc].outport = noOutport
	p.vcs[vc].outvc = noOutvc
	p.vcs[vc].outports = nil
}

// IncrementCredit queues a credit to be carried back to the upstream
// neighbor's output vc; once Router.drainCredits collects them, the
// Simulator schedules them as CreditArrivalEvents after the credit
// link's latency.
func (p *InputPort) IncrementCredit(vc int, vcFree bool, tick int64) {
	p.pendingCredits = append(p.pendingCredits, creditSignal{vc: vc, vcFreed: vcFree})
}

func (p *InputPort) Direction() string { return p.dirn }

// drainCredits removes and returns every credit queued this cycle.
func (p *InputPort) drainCredits() []creditSignal {
	c := p.pendingCredits
	p.pendingCredits = nil
	return c
}
