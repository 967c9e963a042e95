package router

import "fmt"

// fatalf reports a fatal invariant breach — NoRoute, a CUSTOM-routing
// invocation, an XY/Ring turn-restriction violation, an exhausted
// vcAllocate, or an empty/oversized torus candidate set. These signify
// a configuration or upstream logic bug, never a runtime condition a
// caller can recover from: a formatted panic, no error return to carry.
func fatalf(format string, args ...interface{}) {
	panic(fmt.Sprintf(format, args...))
}
