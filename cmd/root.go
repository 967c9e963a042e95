// cmd/root.go
package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vcnoc/vcnoc/network"
	"github.com/vcnoc/vcnoc/router"
	"github.com/vcnoc/vcnoc/trace"
	"github.com/vcnoc/vcnoc/traffic"
)

var (
	configPath string
	topoKind   string
	cols, rows int
	ringSize   int
	xs, ys, zs int
	numVCs     int
	vcsPerVnet int
	wormhole   bool
	linkLat    int64
	trafficPattern string
	hotspotNode    int
	ratePerCycle   float64
	packetLength   int
	vnet           int
	cycles         int64
	seed           int64
	logLevel       string
	traceLevel     string
)

var rootCmd = &cobra.Command{
	Use:   "vcnoc",
	Short: "Discrete-event simulator for a VC-routed on-chip interconnect",
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Build a topology, inject synthetic traffic, and run the router core",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		cfg := resolveConfig()
		sim := buildSimulator(cfg)
		recorder := trace.NewRecorder(trace.Level(traceLevel))
		sim.SetRecorder(recorder)

		gen := buildGenerator(cfg, numRoutersFor(cfg.Topology))
		gen.Run(sim, router.NewSimulationKey(seed), 0)

		logrus.Infof("running %s topology for %d cycles (seed=%d)", cfg.Topology.Kind, cycles, seed)
		sim.Run(cycles)

		logrus.Infof("simulation complete: %d deliveries recorded at clock %d", recorder.Count(-1), sim.Clock())
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	runCmd.Flags().StringVar(&configPath, "config", "", "YAML topology/traffic config (overrides the flags below when set)")
	runCmd.Flags().StringVar(&topoKind, "topology", "mesh", "Topology kind: mesh, ring, torus")
	runCmd.Flags().IntVar(&cols, "cols", 4, "Mesh columns")
	runCmd.Flags().IntVar(&rows, "rows", 4, "Mesh rows")
	runCmd.Flags().IntVar(&ringSize, "ring-size", 8, "Ring node count")
	runCmd.Flags().IntVar(&xs, "xs", 4, "Torus x dimension")
	runCmd.Flags().IntVar(&ys, "ys", 4, "Torus y dimension")
	runCmd.Flags().IntVar(&zs, "zs", 4, "Torus z dimension")
	runCmd.Flags().IntVar(&numVCs, "num-vcs", 4, "Virtual channels per port")
	runCmd.Flags().IntVar(&vcsPerVnet, "vcs-per-vnet", 2, "VCs per virtual network")
	runCmd.Flags().BoolVar(&wormhole, "wormhole", true, "Enable wormhole routing (mesh/ring; torus always performs full VC allocation)")
	runCmd.Flags().Int64Var(&linkLat, "link-latency", 1, "Per-hop link latency in cycles")
	runCmd.Flags().StringVar(&trafficPattern, "pattern", "uniform", "Destination pattern: uniform, bit_complement, tornado, hotspot")
	runCmd.Flags().IntVar(&hotspotNode, "hotspot-node", 0, "Target router id when --pattern=hotspot")
	runCmd.Flags().Float64Var(&ratePerCycle, "rate", 0.02, "Poisson injection rate, packets/cycle/source")
	runCmd.Flags().IntVar(&packetLength, "packet-length", 4, "Flits per packet")
	runCmd.Flags().IntVar(&vnet, "vnet", 0, "Virtual network to inject traffic on")
	runCmd.Flags().Int64Var(&cycles, "cycles", 1000, "Cycles to run")
	runCmd.Flags().Int64Var(&seed, "seed", 1, "PRNG seed; identical seed + config reproduces identical routing/allocation decisions")
	runCmd.Flags().StringVar(&logLevel, "log", "info", "Log level (debug, info, warn, error)")
	runCmd.Flags().StringVar(&traceLevel, "trace", "none", "Delivery trace level: none, deliveries")

	rootCmd.AddCommand(runCmd)
}

func resolveConfig() *TopologyConfig {
	if configPath != "" {
		return LoadTopologyConfig(configPath)
	}
	return &TopologyConfig{
		Topology: TopologySpec{
			Kind: topoKind, Cols: cols, Rows: rows, Size: ringSize,
			Xs: xs, Ys: ys, Zs: zs, NumVCs: numVCs, VCsPerVnet: vcsPerVnet,
			Wormhole: wormhole, LinkLatency: linkLat,
		},
		Traffic: TrafficSpec{
			Pattern: trafficPattern, HotspotNode: hotspotNode, RatePerCycle: ratePerCycle,
			PacketLength: packetLength, Vnet: vnet, StopAtCycle: cycles,
		},
	}
}

func vnetOrdered(numVnets int, ordered []int) []bool {
	flags := make([]bool, numVnets)
	for _, v := range ordered {
		if v >= 0 && v < numVnets {
			flags[v] = true
		}
	}
	return flags
}

func numRoutersFor(t TopologySpec) int {
	switch t.Kind {
	case "ring":
		return t.Size
	case "torus":
		return t.Xs * t.Ys * t.Zs
	default:
		return t.Cols * t.Rows
	}
}

func buildSimulator(cfg *TopologyConfig) *network.Simulator {
	t := cfg.Topology
	numVnets := t.NumVCs / t.VCsPerVnet
	ordered := vnetOrdered(numVnets, t.OrderedVnets)
	key := router.NewSimulationKey(seed)

	switch t.Kind {
	case "ring":
		return network.BuildRing(key, t.Size, t.NumVCs, t.VCsPerVnet, t.Wormhole, ordered, t.LinkLatency)
	case "torus":
		return network.BuildTorus(key, t.Xs, t.Ys, t.Zs, t.NumVCs, t.VCsPerVnet, ordered, t.LinkLatency)
	default:
		return network.BuildMesh(key, t.Cols, t.Rows, t.NumVCs, t.VCsPerVnet, t.Wormhole, ordered, t.LinkLatency)
	}
}

func buildGenerator(cfg *TopologyConfig, numRouters int) *traffic.Generator {
	tr := cfg.Traffic
	gen := traffic.NewGenerator(numRouters)

	var pattern traffic.DestinationPattern
	switch tr.Pattern {
	case "bit_complement":
		pattern = traffic.BitComplement{}
	case "tornado":
		pattern = traffic.Tornado{}
	case "hotspot":
		pattern = traffic.Hotspot{Target: tr.HotspotNode}
	default:
		pattern = traffic.UniformRandom{}
	}

	for src := 0; src < numRouters; src++ {
		gen.AddSource(traffic.Spec{
			SrcRouter:     src,
			LocalInport:   0,
			Vnet:          tr.Vnet,
			VCsPerVnet:    cfg.Topology.VCsPerVnet,
			Arrival:       traffic.PoissonSampler{RatePerCycle: tr.RatePerCycle},
			Destination:   pattern,
			PacketLength:  tr.PacketLength,
			StopAfterTick: tr.StopAtCycle,
		})
	}
	return gen
}
