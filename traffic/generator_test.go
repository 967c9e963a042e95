package traffic

import (
	"testing"

	"github.com/vcnoc/vcnoc/router"
)

func TestBuildPacket_SingleFlit_IsHeadTail(t *testing.T) {
	// GIVEN a packet spec with length 1
	spec := Spec{Vnet: 0, PacketLength: 1}

	// WHEN the packet is segmented
	flits := buildPacket(spec, 4)

	// THEN it is a single HEAD_TAIL flit carrying the shared route
	if len(flits) != 1 {
		t.Fatalf("len(flits) = %d, want 1", len(flits))
	}
	if flits[0].Kind != router.HeadTailFlit {
		t.Errorf("kind = %v, want HEAD_TAIL", flits[0].Kind)
	}
	if flits[0].Route.DestRouter != 4 {
		t.Errorf("dest = %d, want 4", flits[0].Route.DestRouter)
	}
}

func TestBuildPacket_MultiFlit_HeadBodyTail(t *testing.T) {
	// GIVEN a 4-flit packet spec
	spec := Spec{Vnet: 1, PacketLength: 4}

	// WHEN segmented
	flits := buildPacket(spec, 9)

	// THEN kinds are HEAD, BODY, BODY, TAIL and all share one RouteInfo
	want := []router.FlitKind{router.HeadFlit, router.BodyFlit, router.BodyFlit, router.TailFlit}
	for i, k := range want {
		if flits[i].Kind != k {
			t.Errorf("flit %d kind = %v, want %v", i, flits[i].Kind, k)
		}
		if flits[i].Route != flits[0].Route {
			t.Errorf("flit %d does not share the packet's RouteInfo pointer", i)
		}
	}
}

func TestGenerator_PickVC_RoundRobinsWithinVnet(t *testing.T) {
	// GIVEN a generator and a vnet with 2 VCs per vnet
	g := NewGenerator(4)

	// WHEN picking VCs for the same (src, vnet) repeatedly
	first := g.pickVC(0, 1, 2)
	second := g.pickVC(0, 1, 2)
	third := g.pickVC(0, 1, 2)

	// THEN it cycles through the vnet's own VC range and wraps
	if first == second {
		t.Errorf("pickVC did not advance: %d, %d", first, second)
	}
	if third != first {
		t.Errorf("pickVC did not wrap after vcsPerVnet draws: got %d, want %d", third, first)
	}
	base := 1 * 2
	if first < base || first >= base+2 || second < base || second >= base+2 {
		t.Errorf("pickVC returned %d/%d outside vnet 1's range [%d,%d)", first, second, base, base+2)
	}
}
