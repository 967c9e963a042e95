package router

// FlitKind identifies a flit's role within its packet.
type FlitKind int

const (
	HeadFlit FlitKind = iota
	BodyFlit
	TailFlit
	HeadTailFlit
	CreditFlit
)

func (k FlitKind) String() string {
	switch k {
	case HeadFlit:
		return "HEAD"
	case BodyFlit:
		return "BODY"
	case TailFlit:
		return "TAIL"
	case HeadTailFlit:
		return "HEAD_TAIL"
	case CreditFlit:
		return "CREDIT"
	default:
		return "UNKNOWN"
	}
}

// VCState is the lifecycle state of a virtual channel.
type VCState int

const (
	// VCIdle means the VC holds no packet and is free to be allocated.
	VCIdle VCState = iota
	// VCAllocated means a head flit has bound this VC but has not yet
	// been granted switch traversal.
	VCAllocated
	// VCActive means the VC is carrying an in-flight multi-flit packet.
	VCActive
)

// FlitStage is a flit's position in the per-router pipeline.
type FlitStage int

const (
	StageI FlitStage = iota
	StageVA
	StageSA
	StageST
	StageLT
)

// RoutingAlgorithm selects the next-hop computation strategy for a network.
type RoutingAlgorithm int

const (
	// Table is weighted, table-driven routing; works for any topology.
	Table RoutingAlgorithm = iota
	// XY is deterministic dimension-order routing for a 2D mesh.
	XY
	// Ring is deterministic shortest-arc routing for a uni-dimensional ring.
	Ring
	// XYZ is adaptive routing for a 3D torus with R1/R2 channel classes.
	XYZ
	// Custom is a reserved placeholder. A conformant build must never
	// dispatch to it; invoking it is a fatal configuration error.
	Custom
)

func (a RoutingAlgorithm) String() string {
	switch a {
	case Table:
		return "TABLE"
	case XY:
		return "XY"
	case Ring:
		return "RING"
	case XYZ:
		return "XYZ"
	case Custom:
		return "CUSTOM"
	default:
		return "UNKNOWN"
	}
}

// infiniteWeight seeds the minimum-weight search in table routing; any
// real link weight must compare less than it.
const infiniteWeight = 10000

// noOutport / noOutvc are the sentinel "unassigned" values for the
// outport/outvc fields carried on a VC or a flit.
const (
	noOutport = -1
	noOutvc   = -1
)
