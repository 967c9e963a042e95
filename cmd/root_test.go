package cmd

import "testing"

func TestRunCmd_DefaultTopologyIsMesh(t *testing.T) {
	// GIVEN the run command's registered flags
	flag := runCmd.Flags().Lookup("topology")

	// THEN the default topology kind is "mesh"
	if flag == nil {
		t.Fatal("topology flag must be registered")
	}
	if flag.DefValue != "mesh" {
		t.Errorf("default topology = %q, want mesh", flag.DefValue)
	}
}

func TestResolveConfig_NoConfigPath_UsesFlags(t *testing.T) {
	// GIVEN flag-driven state with no --config path
	configPath = ""
	topoKind = "ring"
	ringSize = 6
	numVCs = 4
	vcsPerVnet = 2

	// WHEN resolveConfig runs
	cfg := resolveConfig()

	// THEN it reflects the flag values, not a loaded file
	if cfg.Topology.Kind != "ring" || cfg.Topology.Size != 6 {
		t.Errorf("cfg.Topology = %+v, want kind=ring size=6", cfg.Topology)
	}
}

func TestNumRoutersFor(t *testing.T) {
	cases := []struct {
		spec TopologySpec
		want int
	}{
		{TopologySpec{Kind: "mesh", Cols: 4, Rows: 4}, 16},
		{TopologySpec{Kind: "ring", Size: 8}, 8},
		{TopologySpec{Kind: "torus", Xs: 4, Ys: 4, Zs: 4}, 64},
	}
	for _, c := range cases {
		if got := numRoutersFor(c.spec); got != c.want {
			t.Errorf("numRoutersFor(%+v) = %d, want %d", c.spec, got, c.want)
		}
	}
}

func TestVnetOrdered_MarksOnlyListedVnets(t *testing.T) {
	// GIVEN 3 vnets with vnet 1 marked ordered
	flags := vnetOrdered(3, []int{1})

	// THEN only index 1 is true
	want := []bool{false, true, false}
	for i, w := range want {
		if flags[i] != w {
			t.Errorf("vnetOrdered[%d] = %v, want %v", i, flags[i], w)
		}
	}
}
