package sim

// relaxEntry recomputes Table[i] from the current neighbor snapshot.
// Must be called with the shared mutex held. Shared by both protocol
// variants for the self-entry and direct-neighbor cases (spec.md §4.2
// steps 1-2); the remainder is protocol-specific (step 3 for RIP, step 4
// for DVMRP).
func (n *Node) relaxEntry(i int) {
	entry := &n.Table[i]

	// Step 1: self entry.
	if i == n.ID {
		entry.NextHop = n.ID
		entry.Cost = 0
		if n.Protocol == DVMRP {
			entry.GroupIDs = cloneGroupSet(n.Groups)
		}
		return
	}

	// Step 2: direct neighbor.
	for _, m := range n.Neighbors {
		if m.ID == i {
			entry.NextHop = i
			entry.Cost = 1
			if n.Protocol == DVMRP {
				entry.GroupIDs = cloneGroupSet(m.Groups)
			}
			return
		}
	}

	switch n.Protocol {
	case RIP:
		n.relaxRIPEntry(entry)
	case DVMRP:
		n.relaxDVMRPEntry(entry)
	}
}

// relaxRIPEntry implements spec.md §4.2 step 3, the unicast-only RIP
// relaxation: mutual-next-hop poison, preferred-neighbor tracking, and
// plain relaxation, evaluated once per neighbor in insertion order.
func (n *Node) relaxRIPEntry(entry *RoutingEntry) {
	dest := entry.DestID
	for _, m := range n.Neighbors {
		nbr := m.Table[dest]

		switch {
		case nbr.NextHop == n.ID && entry.NextHop == m.ID:
			// Two-hop loop: the neighbor we route through now points
			// back at us.
			entry.NextHop = NONE
			entry.Cost = Infinity

		case entry.NextHop == m.ID:
			// Current route goes through m; track its advertised cost.
			if nbr.NextHop == NONE {
				entry.NextHop = NONE
				entry.Cost = Infinity
			} else {
				cost := nbr.Cost + 1
				if cost > Infinity {
					cost = Infinity
				}
				entry.Cost = cost
				if entry.Cost == Infinity {
					entry.NextHop = NONE
				}
			}

		case nbr.NextHop != NONE && nbr.Cost+1 < Infinity && nbr.Cost+1 < entry.Cost:
			entry.NextHop = m.ID
			entry.Cost = nbr.Cost + 1
		}
	}
}

// relaxDVMRPEntry implements spec.md §4.2 step 4, the multicast-aware
// DVMRP relaxation: reset the entry, then take the cheapest neighbor
// advertisement that isn't routed back through us or already at the
// poisoned-infinity edge, carrying its group set along.
func (n *Node) relaxDVMRPEntry(entry *RoutingEntry) {
	dest := entry.DestID
	entry.NextHop = NONE
	entry.Cost = Infinity
	entry.GroupIDs = nil

	for _, m := range n.Neighbors {
		nbr := m.Table[dest]
		if nbr.NextHop == NONE || nbr.NextHop == n.ID || nbr.Cost >= 15 {
			continue
		}
		if entry.NextHop == NONE || nbr.Cost+1 < entry.Cost {
			entry.NextHop = m.ID
			entry.Cost = nbr.Cost + 1
			entry.GroupIDs = cloneGroupSet(nbr.GroupIDs)
		}
	}
}
