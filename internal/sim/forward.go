package sim

import "github.com/kprusa/routesim/internal/logging"

// forwardTick drains the inbox, if occupied, and dispatches to the
// unicast or multicast forwarding rule based on the packet's tagged
// destination kind. Must be called with the shared mutex held.
func (n *Node) forwardTick(sink logging.Sink) {
	if !n.Inbox.Occupied {
		return
	}
	defer func() { n.Inbox.Occupied = false }()

	switch n.Inbox.DestKind {
	case Unicast:
		n.forwardUnicast(sink)
	case Multicast:
		n.forwardMulticast(sink)
	}
}

// forwardUnicast implements spec.md §4.3: drop on no route, log received
// at the destination, or relay to the next hop.
func (n *Node) forwardUnicast(sink logging.Sink) {
	pkt := n.Inbox
	dest := pkt.DestID
	nextHop := n.Table[dest].NextHop

	switch {
	case nextHop == NONE:
		sink.Log(logging.PacketEvent{
			Node: n.ID, Packet: pkt.Payload, Dest: dest,
			State: logging.StateDropped,
		})

	case nextHop == n.ID:
		sink.Log(logging.PacketEvent{
			Node: n.ID, Packet: pkt.Payload, Dest: dest,
			State: logging.StateReceived,
		})

	default:
		link := n.findNeighbor(nextHop)
		if link == nil {
			// No channel to the advertised next hop: the table disagrees
			// with the graph (should not happen under the invariants),
			// treat as a drop.
			sink.Log(logging.PacketEvent{
				Node: n.ID, Packet: pkt.Payload, Dest: dest,
				State: logging.StateDropped,
			})
			return
		}
		link.Inbox = Mailbox{
			Occupied: true,
			Payload:  pkt.Payload,
			Src:      pkt.Src,
			DestKind: Unicast,
			DestID:   dest,
			From:     n.ID,
		}
		sink.Log(logging.PacketEvent{
			Node: n.ID, Packet: pkt.Payload, Dest: dest,
			State: logging.DeliveredState(nextHop),
		})
	}
}

// forwardMulticast implements spec.md §4.4, Truncated Reverse Path
// Broadcasting: local delivery if the node has joined the group, a
// reverse-path check against the source, and child-link selection over
// every destination entry whose group set contains this group.
func (n *Node) forwardMulticast(sink logging.Sink) {
	pkt := n.Inbox
	src := pkt.Src
	group := pkt.DestID

	if src < 0 || src >= len(n.Table) {
		// Neither a valid unicast destination nor a valid multicast
		// source: drop silently (spec.md §4.4, final else branch).
		return
	}

	if _, joined := n.Groups[group]; joined {
		sinkSrc, sinkFrom := src, pkt.From
		sink.Log(logging.PacketEvent{
			Node: n.ID, Packet: pkt.Payload, Src: &sinkSrc, Dest: group,
			From: &sinkFrom, State: logging.StateReceived,
		})
	}

	rpf := n.Table[src].NextHop
	if pkt.From != rpf {
		// Arrived on the wrong interface: discard without forwarding,
		// no log line (spec.md §4.4 step 2).
		return
	}

	used := make(map[int]bool, len(n.Neighbors))
	selfCostToSrc := n.Table[src].Cost

	for i := range n.Table {
		entry := &n.Table[i]
		if _, reachable := entry.GroupIDs[group]; !reachable {
			continue
		}

		link := n.findNeighbor(entry.NextHop)
		if link == nil || used[link.ID] {
			continue
		}

		linkCostToSrc := link.Table[src].Cost
		isChild := selfCostToSrc < linkCostToSrc ||
			(selfCostToSrc == linkCostToSrc && n.ID < link.ID)
		if !isChild {
			continue
		}

		link.Inbox = Mailbox{
			Occupied: true,
			Payload:  pkt.Payload,
			Src:      src,
			DestKind: Multicast,
			DestID:   group,
			From:     n.ID,
		}
		used[link.ID] = true
		// No log line is emitted for a multicast relay: spec.md §4.4 only
		// calls for a log on local group delivery, mirroring
		// original_source/main.cpp's run_routing (which never prints
		// anything for the forwarding fan-out itself).
	}
}
