package router

// OutportComputeXYZ implements adaptive routing for a num_xs × num_ys ×
// num_zs 3D torus with wraparound in every dimension, router id = x +
// y*num_xs + z*num_xs*num_ys. Deadlock freedom comes from partitioning
// every ring into two disjoint channel classes: R1 (the shorter-arc
// direction, always eligible when the dimension has hops remaining) and
// R2 (eligible on at most one dimension per packet, restricted to the
// two dateline routers when that dimension requires the long-arc
// wraparound). The result is the set of admissible (outport, firstHalf)
// pairs; firstHalf is true for R1, false for R2. Size is always in [1,4].
//
// This must never be reached for a flit whose destination is handled by
// OutportCompute — 3D-torus flits route exclusively through this entry
// point, invoked upstream of SA-I; the candidate set it returns is stored
// on the VC for SA-I to read.
func (ru *RoutingUnit) OutportComputeXYZ(route RouteInfo, inport int, inportDirn string) []OutportChoice {
	numXs, numYs, numZs := ru.numXs, ru.numYs, ru.numZs
	if numXs <= 0 || numYs <= 0 || numZs <= 0 || numXs*numYs*numZs != ru.numRouters {
		fatalf("router: XYZ routing requires positive, consistent torus dimensions")
	}

	myID := ru.host.ID()
	myX := myID % numXs
	myY := (myID / numXs) % numYs
	myZ := (myID - myX - myY*numXs) / (numXs * numYs)

	destID := route.DestRouter
	destX := destID % numXs
	destY := (destID / numXs) % numYs
	destZ := (destID - destX - destY*numXs) / (numXs * numYs)

	if destID == myID {
		outport := ru.lookupRoutingTable(route.Vnet, route.NetDest)
		return []OutportChoice{{Outport: outport, FirstHalf: true}, {Outport: outport, FirstHalf: false}}
	}

	xHops, yHops, zHops := abs(destX-myX), abs(destY-myY), abs(destZ-myZ)
	if xHops == 0 && yHops == 0 && zHops == 0 {
		fatalf("router: XYZ routing invoked with x_hops == y_hops == z_hops == 0")
	}

	xDirn1En, yDirn1En, zDirn1En := destX != myX, destY != myY, destZ != myZ

	// R1: the shorter-arc direction modulo each ring.
	xDirn1 := (myX > destX && myX-destX > numXs/2) || (myX < destX && destX-myX <= numXs/2)
	yDirn1 := (myY > destY && myY-destY > numYs/2) || (myY < destY && destY-myY <= numYs/2)
	zDirn1 := (myZ > destZ && myZ-destZ > numZs/2) || (myZ < destZ && destZ-myZ <= numZs/2)

	// R2: at most one dimension is the "active R2 dimension". The first
	// wraparound dimension in x,y,z order claims R2, restricted to its
	// two dateline routers; if no dimension wraps, the first dimension
	// with nonzero hops claims R2 with the direct (non-wraparound)
	// direction. x before y before z, deliberately.
	xWrap := xHops > numXs/2
	yWrap := yHops > numYs/2
	zWrap := zHops > numZs/2

	var xDirn2En, yDirn2En, zDirn2En bool
	var xDirn2, yDirn2, zDirn2 bool

	switch {
	case xWrap:
		if myX == numXs-1 {
			xDirn2En, xDirn2 = true, true
		} else if myX == 0 {
			xDirn2En = true
		}
	case yWrap:
		if myY == numYs-1 {
			yDirn2En, yDirn2 = true, true
		} else if myY == 0 {
			yDirn2En = true
		}
	case zWrap:
		if myZ == numZs-1 {
			zDirn2En, zDirn2 = true, true
		} else if myZ == 0 {
			zDirn2En = true
		}
	default:
		switch {
		case xHops != 0:
			xDirn2En, xDirn2 = true, destX-myX > 0
		case yHops != 0:
			yDirn2En, yDirn2 = true, destY-myY > 0
		case zHops != 0:
			zDirn2En, zDirn2 = true, destZ-myZ > 0
		default:
			fatalf("router: x_hops == y_hops == z_hops == 0")
		}
	}

	front, _ := ru.outDirs.index(DirFront)
	back, _ := ru.outDirs.index(DirBack)
	right, _ := ru.outDirs.index(DirRight)
	left, _ := ru.outDirs.index(DirLeft)
	up, _ := ru.outDirs.index(DirUp)
	down, _ := ru.outDirs.index(DirDown)

	var out []OutportChoice
	if xDirn1En && xDirn1 {
		out = append(out, OutportChoice{front, true})
	}
	if xDirn2En && xDirn2 {
		out = append(out, OutportChoice{front, false})
	}
	if xDirn1En && !xDirn1 {
		out = append(out, OutportChoice{back, true})
	}
	if xDirn2En && !xDirn2 {
		out = append(out, OutportChoice{back, false})
	}
	if yDirn1En && yDirn1 {
		out = append(out, OutportChoice{right, true})
	}
	if yDirn2En && yDirn2 {
		out = append(out, OutportChoice{right, false})
	}
	if yDirn1En && !yDirn1 {
		out = append(out, OutportChoice{left, true})
	}
	if yDirn2En && !yDirn2 {
		out = append(out, OutportChoice{left, false})
	}
	if zDirn1En && zDirn1 {
		out = append(out, OutportChoice{up, true})
	}
	if zDirn2En && zDirn2 {
		out = append(out, OutportChoice{up, false})
	}
	if zDirn1En && !zDirn1 {
		out = append(out, OutportChoice{down, true})
	}
	if zDirn2En && !zDirn2 {
		out = append(out, OutportChoice{down, false})
	}

	if len(out) == 0 || len(out) > 4 {
		fatalf("router: XYZ candidate set size %d out of [1,4]", len(out))
	}
	return out
}
