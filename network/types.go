package network

import "github.com/vcnoc/vcnoc/router"

// Flit and RouteInfo are re-exported so callers building topologies and
// traffic generators never need to import router directly.
type (
	Flit      = router.Flit
	RouteInfo = router.RouteInfo
	NetDest   = router.NetDest
)

const (
	HeadFlit     = router.HeadFlit
	BodyFlit     = router.BodyFlit
	TailFlit     = router.TailFlit
	HeadTailFlit = router.HeadTailFlit
)

var NewNetDest = router.NewNetDest

// noOutport / noOutvc mirror router's unexported sentinels — network owns
// the concrete InputUnit/OutputUnit state so it needs its own copies.
const (
	noOutport = -1
	noOutvc   = -1
)
