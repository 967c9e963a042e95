package router

import "testing"

// TestOutportComputeRing_ForwardShorterArc verifies a destination closer
// via the forward (Right) arc.
func TestOutportComputeRing_ForwardShorterArc(t *testing.T) {
	host := newFakeHost(1, 3, 3, 4, 4)
	host.algo = Ring
	ru := NewRoutingUnit(host)
	ru.SetRingSize(8)
	ru.AddOutDirection(DirRight, 0)
	ru.AddOutDirection(DirLeft, 1)

	outport := ru.OutportCompute(RouteInfo{DestRouter: 3}, 0, DirLocal)
	dirn, _ := ru.outDirs.direction(outport)
	if dirn != DirRight {
		t.Fatalf("ring hop = %q, want Right (distance 2 <= N/2)", dirn)
	}
}

// TestOutportComputeRing_ExactHalfDistance documents the half-way case
// (ring of 8, router 2 -> router 6): both distance arms compare with <=,
// so a forward distance of exactly N/2 takes the forward
// (Right/clockwise) arm, since dest_id > my_id.
func TestOutportComputeRing_ExactHalfDistance(t *testing.T) {
	host := newFakeHost(2, 3, 3, 4, 4)
	host.algo = Ring
	ru := NewRoutingUnit(host)
	ru.SetRingSize(8)
	ru.AddOutDirection(DirRight, 0)
	ru.AddOutDirection(DirLeft, 1)

	outport := ru.OutportCompute(RouteInfo{DestRouter: 6}, 0, DirLocal)
	dirn, _ := ru.outDirs.direction(outport)
	if dirn != DirRight {
		t.Fatalf("ring hop at exact half distance = %q, want Right (<= branch wins for dest_id > my_id)", dirn)
	}
}

func TestOutportComputeRing_SameNodeFatal(t *testing.T) {
	host := newFakeHost(2, 3, 3, 4, 4)
	host.algo = Ring
	ru := NewRoutingUnit(host)
	ru.SetRingSize(8)

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for my_id == dest_id")
		}
	}()
	ru.outportComputeRing(RouteInfo{DestRouter: 2}, 0, DirLocal)
}
