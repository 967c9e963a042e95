package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// TopologyConfig is the YAML-loaded shape of a --config file: topology
// kind and dimensions, VC/vnet layout, and the injection process to
// drive it.
type TopologyConfig struct {
	Topology TopologySpec `yaml:"topology"`
	Traffic  TrafficSpec  `yaml:"traffic"`
}

// TopologySpec describes the network to build.
type TopologySpec struct {
	// Kind is one of "mesh", "ring", "torus".
	Kind string `yaml:"kind"`
	Cols int    `yaml:"cols"`
	Rows int    `yaml:"rows"`
	Size int    `yaml:"size"` // ring node count
	Xs   int    `yaml:"xs"`
	Ys   int    `yaml:"ys"`
	Zs   int    `yaml:"zs"`

	NumVCs        int    `yaml:"num_vcs"`
	VCsPerVnet    int    `yaml:"vcs_per_vnet"`
	Wormhole      bool   `yaml:"wormhole"`
	OrderedVnets  []int  `yaml:"ordered_vnets"`
	LinkLatency   int64  `yaml:"link_latency"`
}

// TrafficSpec describes the synthetic injection process.
type TrafficSpec struct {
	// Pattern is one of "uniform", "bit_complement", "tornado", "hotspot".
	Pattern      string  `yaml:"pattern"`
	HotspotNode  int     `yaml:"hotspot_node"`
	RatePerCycle float64 `yaml:"rate_per_cycle"`
	PacketLength int     `yaml:"packet_length"`
	Vnet         int     `yaml:"vnet"`
	StopAtCycle  int64   `yaml:"stop_at_cycle"`
}

// LoadTopologyConfig reads and parses a TopologyConfig from path.
func LoadTopologyConfig(path string) *TopologyConfig {
	data, err := os.ReadFile(path)
	if err != nil {
		logrus.Fatalf("reading topology config %s: %v", path, err)
	}

	var cfg TopologyConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		logrus.Fatalf("parsing topology config %s: %v", path, err)
	}
	return &cfg
}
