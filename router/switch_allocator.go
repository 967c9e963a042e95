package router

// firstHalf tri-state: restrict VC selection to the R1 half of a vnet's
// range (1), the R2 half (0), or leave it unrestricted (-1). Threaded
// through sendAllowed and vcAllocate; only the 3D torus ever restricts.
const (
	firstHalfUnrestricted = -1
	firstHalfFalse        = 0
	firstHalfTrue         = 1
)

// Wakeup runs SA-I then SA-II, clears the request vector, and reschedules
// the router for the next cycle if work remains.
func (sa *SwitchAllocator) Wakeup() {
	sa.arbitrateInports()
	sa.arbitrateOutports()
	sa.clearRequestVector()
	sa.checkForWakeup()
}

// arbitrateInports is SA-I: for each inport, starting at its round-robin
// pointer and cycling once through all VCs, pick at most one VC whose
// head flit is ready to request an outport this cycle.
func (sa *SwitchAllocator) arbitrateInports() {
	wormhole := sa.host.IsWormholeEnabled()
	torus := sa.host.RoutingAlgorithm() == XYZ
	tick := sa.host.CurTick()

	for inport := 0; inport < sa.numInports; inport++ {
		invc := sa.roundRobinInVC[inport]
		input := sa.host.InputUnit(inport)

		for i := 0; i < sa.numVCs; i++ {
			if input.NeedStage(invc, StageSA, tick) {
				var outport, outvc int
				var makeRequest bool

				switch {
				case !torus:
					if wormhole {
						// Wormhole pins the outport for the life of the
						// packet: re-grant the head's outport from the flit
						// itself, but re-derive the output vc fresh every
						// cycle so SA-II's vc_allocate runs on every flit,
						// not just the head.
						top := input.PeekTopFlit(invc)
						input.GrantOutport(invc, top.Outport)
						input.GrantOutvc(invc, noOutvc)
					}
					outport = input.GetOutport(invc)
					outvc = input.GetOutvc(invc)
					if outport < 0 {
						fatalf("router: SA-I inport %d vc %d has no outport bound", inport, invc)
					}
					makeRequest = sa.sendAllowed(inport, invc, outport, outvc, wormhole, firstHalfUnrestricted)

				case input.GetOutvc(invc) == noOutvc:
					// torus head flit: candidate set already stored on the VC.
					choices := input.GetOutports(invc)
					if len(choices) == 0 || len(choices) > 4 {
						fatalf("router: torus candidate set size %d out of [1,4]", len(choices))
					}
					makeRequest = sa.torusSendAllowed(inport, invc, choices)
					outport = input.GetOutport(invc)
					outvc = input.GetOutvc(invc)

				default:
					// torus body/tail: outport, outvc, and channel class
					// were already bound when the head flit won SA-II.
					outport = input.GetOutport(invc)
					outvc = input.GetOutvc(invc)
					firstHalf := firstHalfFalse
					if input.GetFirstHalf(invc) {
						firstHalf = firstHalfTrue
					}
					makeRequest = sa.sendAllowed(inport, invc, outport, outvc, wormhole, firstHalf)
				}

				if makeRequest {
					sa.inputArbiterActivity++
					sa.portRequests[inport] = outport
					sa.vcWinners[inport] = invc
					break
				}
			}

			invc++
			if invc >= sa.numVCs {
				invc = 0
			}
		}
	}
}

// arbitrateOutports is SA-II: for each outport, starting at its
// round-robin pointer and cycling once through all inports, pick the one
// requester (if any), perform output-VC allocation, credit decrement,
// and hand the flit to the crossbar.
func (sa *SwitchAllocator) arbitrateOutports() {
	wormhole := sa.host.IsWormholeEnabled()
	torus := sa.host.RoutingAlgorithm() == XYZ
	tick := sa.host.CurTick()

	for outport := 0; outport < sa.numOutports; outport++ {
		inport := sa.roundRobinInport[outport]

		for i := 0; i < sa.numInports; i++ {
			if sa.portRequests[inport] == outport {
				output := sa.host.OutputUnit(outport)
				input := sa.host.InputUnit(inport)

				invc := sa.vcWinners[inport]
				outvc := input.GetOutvc(invc)

				if outvc == noOutvc {
					firstHalf := firstHalfUnrestricted
					if torus {
						firstHalf = firstHalfFalse
						if input.GetFirstHalf(invc) {
							firstHalf = firstHalfTrue
						}
					}
					outvc = sa.vcAllocate(outport, inport, invc, wormhole, firstHalf)
				}

				flit := input.GetTopFlit(invc)
				if wormhole {
					if flit.Outport != outport {
						fatalf("router: wormhole flit outport %d disagrees with granted outport %d", flit.Outport, outport)
					}
				} else {
					flit.SetOutport(outport)
				}
				flit.SetVC(outvc)

				output.DecrementCredit(outvc)

				flit.AdvanceStage(StageST)
				sa.host.GrantSwitch(inport, flit)
				sa.outputArbiterActivity++

				vcNowEmpty := !input.IsReady(invc, tick)
				signalFree := false
				if !wormhole {
					signalFree = flit.Kind == TailFlit || flit.Kind == HeadTailFlit
					if signalFree && !vcNowEmpty {
						fatalf("router: input vc %d on inport %d still holds flits past its packet's tail", invc, inport)
					}
				} else {
					signalFree = vcNowEmpty
				}

				if signalFree {
					input.SetVCIdle(invc, tick)
				}
				input.IncrementCredit(invc, signalFree, tick)

				sa.portRequests[inport] = noOutport
				sa.roundRobinInport[outport] = (inport + 1) % sa.numInports
				sa.roundRobinInVC[inport] = (invc + 1) % sa.numVCs

				break
			}

			inport++
			if inport >= sa.numInports {
				inport = 0
			}
		}
	}
}

// sendAllowed is the per-flit admissibility check: a VC/credit check,
// then (in an ordered vnet) a head-of-line ordering check against
// sibling VCs on the same inport.
func (sa *SwitchAllocator) sendAllowed(inport, invc, outport, outvc int, wormhole bool, firstHalf int) bool {
	vnet := sa.vnetOf(invc)
	output := sa.host.OutputUnit(outport)

	hasOutvc := outvc != noOutvc
	hasCredit := false

	if !wormhole {
		if !hasOutvc {
			switch firstHalf {
			case firstHalfTrue:
				if output.FirstHasFreeVC(vnet) {
					hasOutvc, hasCredit = true, true
				}
			case firstHalfFalse:
				if output.SecondHasFreeVC(vnet) {
					hasOutvc, hasCredit = true, true
				}
			default:
				if output.HasFreeVC(vnet) {
					hasOutvc, hasCredit = true, true
				}
			}
		} else {
			hasCredit = output.HasCredit(outvc)
		}
		if !hasOutvc || !hasCredit {
			return false
		}
	} else {
		// Wormhole re-derives outvc fresh every cycle (SA-I resets it to
		// unbound before calling here), so there is no already-bound vc
		// to check credit on: any credited vc in the vnet justifies the
		// request, and SA-II's vc_allocate picks one.
		if !output.HasVCWithCredits(vnet) {
			return false
		}
	}

	if sa.host.IsVnetOrdered(vnet) {
		input := sa.host.InputUnit(inport)
		enqueueTime := input.GetEnqueueTime(invc)
		tick := sa.host.CurTick()

		vcBase := vnet * sa.vcsPerVnet
		for offset := 0; offset < sa.vcsPerVnet; offset++ {
			other := vcBase + offset
			if input.NeedStage(other, StageSA, tick) &&
				input.GetOutport(other) == outport &&
				input.GetEnqueueTime(other) < enqueueTime {
				return false
			}
		}
	}

	return true
}

// torusSendAllowed filters the routing-unit-provided candidate set down
// to admissible pairs via sendAllowed, then selects one uniformly at
// random (via the network's seeded PRNG) and grants it onto the VC.
func (sa *SwitchAllocator) torusSendAllowed(inport, invc int, choices []OutportChoice) bool {
	var legal []OutportChoice
	for _, c := range choices {
		firstHalf := firstHalfFalse
		if c.FirstHalf {
			firstHalf = firstHalfTrue
		}
		if sa.sendAllowed(inport, invc, c.Outport, noOutvc, false, firstHalf) {
			legal = append(legal, c)
		}
	}
	if len(legal) == 0 {
		return false
	}

	idx := sa.host.Rand().ForSubsystem(SubsystemTorusSelect).Intn(len(legal))
	choice := legal[idx]

	input := sa.host.InputUnit(inport)
	input.GrantOutport(invc, choice.Outport)
	input.GrantFirstHalf(invc, choice.FirstHalf)
	return true
}

// vcAllocate assigns a free output VC to the winner of SA-II, recording
// the binding on the input VC. Fatal if no VC is available — SA-I must
// have already guaranteed one exists.
func (sa *SwitchAllocator) vcAllocate(outport, inport, invc int, wormhole bool, firstHalf int) int {
	output := sa.host.OutputUnit(outport)
	vnet := sa.vnetOf(invc)

	var outvc int
	if !wormhole {
		switch firstHalf {
		case firstHalfTrue:
			outvc = output.FirstSelectFreeVC(vnet)
		case firstHalfFalse:
			outvc = output.SecondSelectFreeVC(vnet)
		default:
			outvc = output.SelectFreeVC(vnet)
		}
	} else {
		outvc = output.SelectVCWithCredits(vnet)
	}

	if outvc == noOutvc {
		fatalf("router: vc_allocate found no free VC for outport %d (inport %d, invc %d)", outport, inport, invc)
	}

	sa.host.InputUnit(inport).GrantOutvc(invc, outvc)
	return outvc
}

// checkForWakeup reschedules the router one cycle out if any (inport,
// vc) will have a flit ready for SA at the next clock edge and the
// router isn't already scheduled for it.
func (sa *SwitchAllocator) checkForWakeup() {
	nextEdge := sa.host.ClockEdge(1)
	if sa.host.AlreadyScheduled(nextEdge) {
		return
	}

	for i := 0; i < sa.numInports; i++ {
		input := sa.host.InputUnit(i)
		for j := 0; j < sa.numVCs; j++ {
			if input.NeedStage(j, StageSA, nextEdge) {
				sa.host.ScheduleWakeup(1)
				return
			}
		}
	}
}
