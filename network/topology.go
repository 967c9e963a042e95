package network

import "github.com/vcnoc/vcnoc/router"

// Mesh outport/inport indices. Local carries the NI-facing route table
// entry; inports are registered under the direction name their traffic
// comes from, so the inport at index portEast receives from the west
// neighbor and is registered under the direction name "West".
const (
	portLocal = 0
	portEast  = 1
	portWest  = 2
	portNorth = 3
	portSouth = 4
)

// Ring outport/inport indices.
const (
	ringPortLocal = 0
	ringPortRight = 1
	ringPortLeft  = 2
)

// Torus outport/inport indices, matching OutportComputeXYZ's direction
// assignment (Front/Back = x, Right/Left = y, Up/Down = z).
const (
	torusPortLocal = 0
	torusPortFront = 1
	torusPortBack  = 2
	torusPortRight = 3
	torusPortLeft  = 4
	torusPortUp    = 5
	torusPortDown  = 6
)

// connect wires the bidirectional link pair between a and b: a's aName
// outport feeds b's inport bIn, which b sees as traffic from direction
// bName (and symmetrically back). Inport direction names drive the
// routing unit's turn-restriction checks, so they must name where the
// traffic comes FROM.
func connect(a *Router, aOut, aIn int, aName string, b *Router, bOut, bIn int, bName string, latency int64) {
	a.SetOutDirection(aOut, aName, b.id, bIn, latency)
	b.SetInDirection(bIn, bName)
	b.SetInLink(bIn, a.id, aOut, latency)
	b.SetOutDirection(bOut, bName, a.id, aIn, latency)
	a.SetInDirection(aIn, aName)
	a.SetInLink(aIn, b.id, bOut, latency)
}

func addLocalRoute(r *Router, numVnets int) {
	dest := make([]router.NetDest, numVnets)
	for v := range dest {
		dest[v] = router.NewNetDest(r.id)
	}
	r.RoutingUnit().AddRoute(dest)
	r.RoutingUnit().AddWeight(1)
}

// BuildMesh wires a numCols x numRows 2D mesh with XY dimension-order
// routing and wraps the routers into a new Simulator. Router ID = y*
// numCols + x; edge routers simply have no neighbor on the missing side.
func BuildMesh(key router.SimulationKey, numCols, numRows, numVCs, vcsPerVnet int, wormhole bool, vnetOrdered []bool, linkLatency int64) *Simulator {
	sim := NewSimulator(key)
	numVnets := numVCs / vcsPerVnet

	routers := make([][]*Router, numRows)
	for y := 0; y < numRows; y++ {
		routers[y] = make([]*Router, numCols)
		for x := 0; x < numCols; x++ {
			id := y*numCols + x
			r := NewRouter(id, 5, 5, numVCs, vcsPerVnet, router.XY, wormhole, vnetOrdered)
			r.RoutingUnit().SetMeshDims(numCols, numRows)
			r.SetInDirection(portLocal, router.DirLocal)
			r.SetOutDirection(portLocal, router.DirLocal, localDelivery, 0, 0)
			addLocalRoute(r, numVnets)
			routers[y][x] = r
			sim.AddRouter(r)
		}
	}

	for y := 0; y < numRows; y++ {
		for x := 0; x < numCols; x++ {
			r := routers[y][x]
			if x+1 < numCols {
				connect(r, portEast, portWest, router.DirEast, routers[y][x+1], portWest, portEast, router.DirWest, linkLatency)
			}
			if y+1 < numRows {
				connect(r, portNorth, portSouth, router.DirNorth, routers[y+1][x], portSouth, portNorth, router.DirSouth, linkLatency)
			}
		}
	}
	return sim
}

// BuildRing wires a numRouters-node ring with deterministic shortest-arc
// routing.
func BuildRing(key router.SimulationKey, numRouters, numVCs, vcsPerVnet int, wormhole bool, vnetOrdered []bool, linkLatency int64) *Simulator {
	sim := NewSimulator(key)
	numVnets := numVCs / vcsPerVnet

	routers := make([]*Router, numRouters)
	for id := 0; id < numRouters; id++ {
		r := NewRouter(id, 3, 3, numVCs, vcsPerVnet, router.Ring, wormhole, vnetOrdered)
		r.RoutingUnit().SetRingSize(numRouters)
		r.SetInDirection(ringPortLocal, router.DirLocal)
		r.SetOutDirection(ringPortLocal, router.DirLocal, localDelivery, 0, 0)
		addLocalRoute(r, numVnets)
		routers[id] = r
		sim.AddRouter(r)
	}

	for id := 0; id < numRouters; id++ {
		next := (id + 1) % numRouters
		connect(routers[id], ringPortRight, ringPortLeft, router.DirRight, routers[next], ringPortLeft, ringPortRight, router.DirLeft, linkLatency)
	}
	return sim
}

// BuildTorus wires a numXs x numYs x numZs 3D torus with adaptive
// R1/R2-partitioned routing. Router ID = x + y*numXs + z*numXs*numYs.
// Torus routing requires real output-VC allocation to keep the R1/R2
// channel classes disjoint, so wormhole mode is not offered here.
func BuildTorus(key router.SimulationKey, numXs, numYs, numZs, numVCs, vcsPerVnet int, vnetOrdered []bool, linkLatency int64) *Simulator {
	sim := NewSimulator(key)
	numVnets := numVCs / vcsPerVnet
	numRouters := numXs * numYs * numZs

	routers := make([]*Router, numRouters)
	for id := 0; id < numRouters; id++ {
		r := NewRouter(id, 7, 7, numVCs, vcsPerVnet, router.XYZ, false, vnetOrdered)
		r.RoutingUnit().SetTorusDims(numXs, numYs, numZs)
		r.SetInDirection(torusPortLocal, router.DirLocal)
		r.SetOutDirection(torusPortLocal, router.DirLocal, localDelivery, 0, 0)
		addLocalRoute(r, numVnets)
		routers[id] = r
		sim.AddRouter(r)
	}

	idOf := func(x, y, z int) int { return x + y*numXs + z*numXs*numYs }

	for z := 0; z < numZs; z++ {
		for y := 0; y < numYs; y++ {
			for x := 0; x < numXs; x++ {
				r := routers[idOf(x, y, z)]
				nx := routers[idOf((x+1)%numXs, y, z)]
				connect(r, torusPortFront, torusPortBack, router.DirFront, nx, torusPortBack, torusPortFront, router.DirBack, linkLatency)
				ny := routers[idOf(x, (y+1)%numYs, z)]
				connect(r, torusPortRight, torusPortLeft, router.DirRight, ny, torusPortLeft, torusPortRight, router.DirLeft, linkLatency)
				nz := routers[idOf(x, y, (z+1)%numZs)]
				connect(r, torusPortUp, torusPortDown, router.DirUp, nz, torusPortDown, torusPortUp, router.DirDown, linkLatency)
			}
		}
	}
	return sim
}
