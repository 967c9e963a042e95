package router

// SwitchAllocator runs once per router per cycle. It arbitrates among
// input VCs contending for output ports (SA-I), then among output ports
// contending for input-VC requesters (SA-II), committing at most
// min(numInports, numOutports) flits to switch traversal per cycle.
type SwitchAllocator struct {
	host RouterHost

	numInports  int
	numOutports int
	numVCs      int
	vcsPerVnet  int

	// roundRobinInVC[inport] is the next VC index SA-I starts from.
	roundRobinInVC []int
	// roundRobinInport[outport] is the next inport index SA-II starts from.
	roundRobinInport []int

	// portRequests[inport] is the outport requested this cycle, or -1.
	portRequests []int
	// vcWinners[inport] is the winning invc this cycle, or -1.
	vcWinners []int

	inputArbiterActivity  int
	outputArbiterActivity int
}

// NewSwitchAllocator creates a SwitchAllocator bound to its owning router.
// Call Init once numInports/numOutports/numVCs are known.
func NewSwitchAllocator(host RouterHost) *SwitchAllocator {
	return &SwitchAllocator{host: host}
}

// Init allocates request/winner vectors sized to inports/outports and
// zeros all round-robin pointers.
func (sa *SwitchAllocator) Init() {
	sa.numInports = sa.host.NumInports()
	sa.numOutports = sa.host.NumOutports()
	sa.numVCs = sa.host.NumVCs()
	sa.vcsPerVnet = sa.host.VCsPerVnet()

	sa.roundRobinInVC = make([]int, sa.numInports)
	sa.portRequests = make([]int, sa.numInports)
	sa.vcWinners = make([]int, sa.numInports)
	for i := range sa.portRequests {
		sa.roundRobinInVC[i] = 0
		sa.portRequests[i] = noOutport
		sa.vcWinners[i] = noOutvc
	}

	sa.roundRobinInport = make([]int, sa.numOutports)
}

// ResetStats zeros the input- and output-arbiter activity counters.
func (sa *SwitchAllocator) ResetStats() {
	sa.inputArbiterActivity = 0
	sa.outputArbiterActivity = 0
}

// InputArbiterActivity is the count of successful SA-I grants since the
// last ResetStats.
func (sa *SwitchAllocator) InputArbiterActivity() int { return sa.inputArbiterActivity }

// OutputArbiterActivity is the count of successful SA-II grants since the
// last ResetStats.
func (sa *SwitchAllocator) OutputArbiterActivity() int { return sa.outputArbiterActivity }

func (sa *SwitchAllocator) vnetOf(invc int) int {
	vnet := invc / sa.vcsPerVnet
	if vnet >= sa.host.NumVnets() {
		fatalf("router: vc %d maps to out-of-range vnet %d", invc, vnet)
	}
	return vnet
}

func (sa *SwitchAllocator) clearRequestVector() {
	for i := range sa.portRequests {
		sa.portRequests[i] = noOutport
		sa.vcWinners[i] = noOutvc
	}
}
