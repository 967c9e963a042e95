package router

// NetDest is a set-valued destination descriptor: the set of terminal
// node ids eligible to receive a multicast-capable table-routed message.
// A plain unicast destination is a singleton set.
type NetDest map[int]struct{}

// NewNetDest builds a NetDest from the given terminal node ids.
func NewNetDest(ids ...int) NetDest {
	d := make(NetDest, len(ids))
	for _, id := range ids {
		d[id] = struct{}{}
	}
	return d
}

// Intersects reports whether d and other share at least one member.
func (d NetDest) Intersects(other NetDest) bool {
	small, large := d, other
	if len(large) < len(small) {
		small, large = large, small
	}
	for id := range small {
		if _, ok := large[id]; ok {
			return true
		}
	}
	return false
}

// RouteInfo is the destination descriptor carried by a flit's RouteInfo
// pointer: enough for both table-driven and topology-specific routing.
type RouteInfo struct {
	Vnet           int
	NetDest        NetDest
	SrcNI          int
	SrcRouter      int
	DestNI         int
	DestRouter     int
	HopsTraversed  int
}
