// Package router implements the per-cycle routing and switch-allocation
// core of a virtual-channel wormhole/flit-level network-on-chip router.
//
// # Reading Guide
//
// Start with these files:
//   - types.go: flit kinds, VC states, pipeline stages, the routing
//     algorithm enum, and the INFINITE weight sentinel.
//   - flit.go / routeinfo.go: the data carried through the pipeline.
//   - routing_unit.go: table-driven and topology-specific next-hop
//     computation (TABLE, XY mesh, RING, XYZ 3D torus).
//   - switch_allocator.go: the two-stage separable arbiter that moves
//     flits from input VCs to switch traversal each cycle.
//
// # Architecture
//
// router defines the core pipeline and the interfaces (InputUnit,
// OutputUnit, RouterHost) it is coded against. Concrete input/output
// queues, the router-to-router event loop, and topology construction
// are external collaborators — see package network.
//
// # Key Interfaces
//
//   - InputUnit: per-VC flit queue and stage bookkeeping on the input side.
//   - OutputUnit: per-VC credit and free-VC bookkeeping on the output side.
//   - RouterHost: the owning router's identity, clock, and crossbar handle.
package router
