package network

import "container/heap"

// eventPriority breaks ties between events landing on the same tick. A
// router must finish arbitrating its current cycle (RouterWakeup) before
// the flits or credits that just arrived this same tick (FlitArrival,
// CreditArrival) are allowed to trigger its next wakeup, so wakeups
// always sort first regardless of arrival order.
func eventPriority(t EventType) int {
	switch t {
	case EventTypeRouterWakeup:
		return 0
	case EventTypeFlitArrival:
		return 1
	case EventTypeCreditArrival:
		return 2
	case EventTypePacketInjection:
		return 3
	default:
		panic("network: unknown event type " + string(t))
	}
}

// Timeline is the simulator's global event queue: every RouterWakeup,
// FlitArrival, and CreditArrival across the whole network lands here in
// a single container/heap ordered by (timestamp, eventPriority, event
// ID), so replaying the same seed always drains events in the same
// order no matter how many routers or links are in flight.
type Timeline struct {
	events []Event
}

// NewTimeline creates an empty, heap-initialized Timeline.
func NewTimeline() *Timeline {
	t := &Timeline{events: make([]Event, 0)}
	heap.Init(t)
	return t
}

func (t *Timeline) Len() int { return len(t.events) }

func (t *Timeline) Less(i, j int) bool {
	ei, ej := t.events[i], t.events[j]
	if ei.Timestamp() != ej.Timestamp() {
		return ei.Timestamp() < ej.Timestamp()
	}
	if pi, pj := eventPriority(ei.Type()), eventPriority(ej.Type()); pi != pj {
		return pi < pj
	}
	return ei.EventID() < ej.EventID()
}

func (t *Timeline) Swap(i, j int) { t.events[i], t.events[j] = t.events[j], t.events[i] }

func (t *Timeline) Push(x interface{}) { t.events = append(t.events, x.(Event)) }

func (t *Timeline) Pop() interface{} {
	old := t.events
	n := len(old)
	item := old[n-1]
	t.events = old[0 : n-1]
	return item
}

// Schedule inserts e into the timeline.
func (t *Timeline) Schedule(e Event) { heap.Push(t, e) }

// PopNext removes and returns the earliest-ordered event, or nil if empty.
func (t *Timeline) PopNext() Event {
	if t.Len() == 0 {
		return nil
	}
	return heap.Pop(t).(Event)
}

// Peek returns the earliest-ordered event without removing it, or nil.
func (t *Timeline) Peek() Event {
	if t.Len() == 0 {
		return nil
	}
	return t.events[0]
}
