// Package sim implements the distance-vector routing simulator: a
// RIP-style unicast relaxation and a DVMRP/TRPB multicast forwarding rule
// layered on top of it, both driven by a single simulation-wide mutex.
package sim

import "fmt"

// NONE is the sentinel next-hop value meaning "no route."
const NONE = -1

// Infinity is the poisoned-infinity cost ceiling: a cost of 16 means
// unreachable.
const Infinity = 16

// RoutingEntry is a node's per-destination routing-table row.
type RoutingEntry struct {
	// DestID is the destination node id; equal to this entry's index in
	// the owning Node's Table.
	DestID int

	// NextHop is the neighbor id to forward through, or NONE.
	NextHop int

	// Cost is the hop count to DestID, capped at Infinity.
	Cost int

	// GroupIDs is the set of multicast groups advertised as reachable at
	// DestID, carried along the shortest path (DVMRP variant only).
	GroupIDs map[int]struct{}
}

func newRoutingEntry(dest int) RoutingEntry {
	return RoutingEntry{DestID: dest, NextHop: NONE, Cost: Infinity}
}

func (e RoutingEntry) String() string {
	return fmt.Sprintf("dest=%d next_hop=%d cost=%d", e.DestID, e.NextHop, e.Cost)
}

func cloneGroupSet(src map[int]struct{}) map[int]struct{} {
	if len(src) == 0 {
		return nil
	}
	dst := make(map[int]struct{}, len(src))
	for g := range src {
		dst[g] = struct{}{}
	}
	return dst
}
