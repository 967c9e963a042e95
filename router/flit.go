package router

// Flit is a single flow-control digit, the smallest unit of transfer on
// the network. A packet is a HEAD, zero or more BODY, and a TAIL — or a
// single HEAD_TAIL flit for single-flit packets.
type Flit struct {
	Kind        FlitKind
	Vnet        int
	Outport     int
	VC          int // the VC this flit will occupy on the next-hop link
	Stage       FlitStage
	EnqueueTime int64
	Route       *RouteInfo
}

// SetOutport updates the flit's outport. Used by SA-II once the winning
// output port is known (non-wormhole path re-stamps it; wormhole asserts
// it was already correct).
func (f *Flit) SetOutport(outport int) { f.Outport = outport }

// SetVC records the outgoing VC index assigned to this flit for its next hop.
func (f *Flit) SetVC(vc int) { f.VC = vc }

// AdvanceStage moves the flit to the given pipeline stage.
func (f *Flit) AdvanceStage(stage FlitStage) { f.Stage = stage }
