package network

// OutputPort is the per-outport collection of VC credit counters and
// free-VC bookkeeping, the concrete implementation of router.OutputUnit.
// VCs are partitioned vnet-major: vcsPerVnet contiguous indices per vnet,
// split in half for FirstHasFreeVC/SecondHasFreeVC (R1/R2 channel-class
// reservation on 3D-torus outputs; ignored by every other topology).
type OutputPort struct {
	dirn       string
	vcsPerVnet int
	free       []bool
	credit     []int
	maxCredit  []int
}

// NewOutputPort creates an OutputPort with numVCs VCs, each seeded with
// initialCredit buffer slots on the downstream neighbor.
func NewOutputPort(dirn string, numVCs, vcsPerVnet, initialCredit int) *OutputPort {
	free := make([]bool, numVCs)
	credit := make([]int, numVCs)
	maxCredit := make([]int, numVCs)
	for i := range free {
		free[i] = true
		credit[i] = initialCredit
		maxCredit[i] = initialCredit
	}
	return &OutputPort{dirn: dirn, vcsPerVnet: vcsPerVnet, free: free, credit: credit, maxCredit: maxCredit}
}

func (o *OutputPort) rangeFor(vnet int) (int, int) {
	return vnet * o.vcsPerVnet, (vnet + 1) * o.vcsPerVnet
}

func (o *OutputPort) HasFreeVC(vnet int) bool {
	lo, hi := o.rangeFor(vnet)
	for i := lo; i < hi; i++ {
		if o.free[i] {
			return true
		}
	}
	return false
}

func (o *OutputPort) FirstHasFreeVC(vnet int) bool {
	lo, hi := o.rangeFor(vnet)
	mid := lo + (hi-lo)/2
	for i := lo; i < mid; i++ {
		if o.free[i] {
			return true
		}
	}
	return false
}

func (o *OutputPort) SecondHasFreeVC(vnet int) bool {
	lo, hi := o.rangeFor(vnet)
	mid := lo + (hi-lo)/2
	for i := mid; i < hi; i++ {
		if o.free[i] {
			return true
		}
	}
	return false
}

func (o *OutputPort) SelectFreeVC(vnet int) int {
	lo, hi := o.rangeFor(vnet)
	for i := lo; i < hi; i++ {
		if o.free[i] {
			o.free[i] = false
			return i
		}
	}
	return noOutvc
}

func (o *OutputPort) FirstSelectFreeVC(vnet int) int {
	lo, hi := o.rangeFor(vnet)
	mid := lo + (hi-lo)/2
	for i := lo; i < mid; i++ {
		if o.free[i] {
			o.free[i] = false
			return i
		}
	}
	return noOutvc
}

func (o *OutputPort) SecondSelectFreeVC(vnet int) int {
	lo, hi := o.rangeFor(vnet)
	mid := lo + (hi-lo)/2
	for i := mid; i < hi; i++ {
		if o.free[i] {
			o.free[i] = false
			return i
		}
	}
	return noOutvc
}

func (o *OutputPort) HasCredit(outvc int) bool { return o.credit[outvc] > 0 }

func (o *OutputPort) HasVCWithCredits(vnet int) bool {
	lo, hi := o.rangeFor(vnet)
	for i := lo; i < hi; i++ {
		if o.credit[i] > 0 {
			return true
		}
	}
	return false
}

func (o *OutputPort) SelectVCWithCredits(vnet int) int {
	lo, hi := o.rangeFor(vnet)
	for i := lo; i < hi; i++ {
		if o.credit[i] > 0 {
			return i
		}
	}
	return noOutvc
}

func (o *OutputPort) DecrementCredit(outvc int) {
	if o.credit[outvc] <= 0 {
		panic("network: decrementing credit below zero")
	}
	o.credit[outvc]--
}

// ReturnCredit is called when a CreditArrivalEvent lands: the downstream
// neighbor has freed buffer space (and, if vcFreed, released the vc
// itself back to the free pool).
func (o *OutputPort) ReturnCredit(vc int, vcFreed bool) {
	if o.credit[vc] < o.maxCredit[vc] {
		o.credit[vc]++
	}
	if vcFreed {
		o.free[vc] = true
	}
}

func (o *OutputPort) Direction() string { return o.dirn }
