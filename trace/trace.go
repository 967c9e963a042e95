// Package trace records per-delivery outcomes for offline analysis: a
// dependency-free data recorder the simulator writes to and a CLI or
// test reads back from, decoupled from network so neither package needs
// the other's internals beyond network.DeliveryRecorder.
package trace

import "github.com/vcnoc/vcnoc/router"

// Level controls recording verbosity.
type Level string

const (
	// LevelNone disables recording (zero overhead, the default).
	LevelNone Level = "none"
	// LevelDeliveries records one DeliveryRecord per flit that reaches
	// its destination.
	LevelDeliveries Level = "deliveries"
)

// IsValid reports whether level is a recognized Level string.
func IsValid(level string) bool {
	switch Level(level) {
	case LevelNone, LevelDeliveries, "":
		return true
	default:
		return false
	}
}

// DeliveryRecord captures one flit's arrival at its destination router.
type DeliveryRecord struct {
	Tick          int64
	RouterID      int
	Vnet          int
	Kind          router.FlitKind
	SrcRouter     int
	HopsTraversed int
}

// Recorder collects DeliveryRecords during a Simulator run and implements
// network.DeliveryRecorder.
type Recorder struct {
	Level      Level
	Deliveries []DeliveryRecord
}

// NewRecorder creates a Recorder at the given level.
func NewRecorder(level Level) *Recorder {
	return &Recorder{Level: level}
}

// RecordDelivery implements network.DeliveryRecorder. At LevelNone it is
// a no-op so tracing never costs allocation in the common case.
func (r *Recorder) RecordDelivery(tick int64, routerID int, flit *router.Flit) {
	if r.Level != LevelDeliveries {
		return
	}
	rec := DeliveryRecord{
		Tick:     tick,
		RouterID: routerID,
		Vnet:     flit.Vnet,
		Kind:     flit.Kind,
	}
	if flit.Route != nil {
		rec.SrcRouter = flit.Route.SrcRouter
		rec.HopsTraversed = flit.Route.HopsTraversed
	}
	r.Deliveries = append(r.Deliveries, rec)
}

// Count returns the number of recorded deliveries matching kind, or every
// delivery if kind is -1.
func (r *Recorder) Count(kind router.FlitKind) int {
	if kind == -1 {
		return len(r.Deliveries)
	}
	n := 0
	for _, d := range r.Deliveries {
		if d.Kind == kind {
			n++
		}
	}
	return n
}
