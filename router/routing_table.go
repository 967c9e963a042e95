package router

// addRoute appends one column to the routing table: perVnet[v] is the
// destination set reachable via the new link, for vnet v. The table
// grows to accommodate len(perVnet) vnets if it doesn't already have
// that many rows. After K calls, every vnet's row has K links.
func (ru *RoutingUnit) addRoute(perVnet []NetDest) {
	if len(perVnet) > len(ru.routingTable) {
		grown := make([][]NetDest, len(perVnet))
		copy(grown, ru.routingTable)
		ru.routingTable = grown
	}
	for v, dest := range perVnet {
		ru.routingTable[v] = append(ru.routingTable[v], dest)
	}
}

// addWeight appends to the weight table, in the same link order addRoute
// uses. Weights are shared across vnets: link L has the same weight
// regardless of which vnet's row it appears in.
func (ru *RoutingUnit) addWeight(w int) {
	ru.weightTable = append(ru.weightTable, w)
}

// lookupRoutingTable resolves vnet+dest to an outport via the weighted
// routing table. Ties are broken by first-candidate choice in ordered
// vnets and by uniform random choice (via the network's seeded PRNG) in
// unordered vnets. Fatal (NoRoute) when no candidate exists.
func (ru *RoutingUnit) lookupRoutingTable(vnet int, dest NetDest) int {
	row := ru.routingTable[vnet]

	minWeight := infiniteWeight
	for link, linkDest := range row {
		if dest.Intersects(linkDest) {
			if ru.weightTable[link] <= minWeight {
				minWeight = ru.weightTable[link]
			}
		}
	}

	var candidates []int
	for link, linkDest := range row {
		if dest.Intersects(linkDest) && ru.weightTable[link] == minWeight {
			candidates = append(candidates, link)
		}
	}

	if len(candidates) == 0 {
		fatalf("router: NoRoute — no candidate output link for vnet %d", vnet)
	}

	chosen := 0
	if !ru.host.IsVnetOrdered(vnet) {
		chosen = ru.host.Rand().ForSubsystem(SubsystemTableRouting).Intn(len(candidates))
	}

	return candidates[chosen]
}
