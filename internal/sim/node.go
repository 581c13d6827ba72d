package sim

import (
	"context"
	"runtime"
	"sync"

	"github.com/kprusa/routesim/internal/logging"
)

// Protocol selects which distance-vector relaxation a Node's dv_loop
// runs: RIP (unicast-only) or DVMRP (multicast-aware, TRPB forwarding).
type Protocol int

const (
	RIP Protocol = iota
	DVMRP
)

func (p Protocol) String() string {
	switch p {
	case RIP:
		return "rip"
	case DVMRP:
		return "dvmrp"
	default:
		return "unknown"
	}
}

// DestinationKind tags a Mailbox payload as unicast (a node id) or
// multicast (a group id), replacing the dest-vs-N range comparison the
// original source used to tell the two apart.
type DestinationKind int

const (
	Unicast DestinationKind = iota
	Multicast
)

// Mailbox is a node's single-slot packet inbox. At most one undelivered
// packet may occupy it at a time; a later write silently overwrites an
// occupied slot (see DESIGN.md "inbox overwrite").
type Mailbox struct {
	Occupied bool
	Payload  int
	Src      int
	DestKind DestinationKind
	DestID   int
	From     int
}

// Node is a virtual router: identity, neighbor set, group memberships,
// routing table, and packet inbox. All mutation goes through the shared
// mutex supplied at construction (Network owns the single simulation-wide
// lock; see DESIGN.md).
type Node struct {
	ID       int
	Protocol Protocol

	// Neighbors is insertion-ordered; dv_loop's tie-break picks the first
	// neighbor visited on equal cost, so this order must stay stable.
	Neighbors []*Node

	Groups map[int]struct{}
	Table  []RoutingEntry
	Inbox  Mailbox

	mu *sync.Mutex
}

func newNode(id, nodeCount int, proto Protocol, mu *sync.Mutex) *Node {
	table := make([]RoutingEntry, nodeCount)
	for i := range table {
		table[i] = newRoutingEntry(i)
	}
	return &Node{
		ID:       id,
		Protocol: proto,
		Groups:   make(map[int]struct{}),
		Table:    table,
		mu:       mu,
	}
}

func (n *Node) hasNeighbor(id int) bool {
	for _, m := range n.Neighbors {
		if m.ID == id {
			return true
		}
	}
	return false
}

func (n *Node) findNeighbor(id int) *Node {
	for _, m := range n.Neighbors {
		if m.ID == id {
			return m
		}
	}
	return nil
}

// DVLoop is the node's continuously-running distance-vector relaxation
// loop: each tick relaxes exactly one routing-table entry under the
// shared mutex, cycling 0..N-1. It returns only when ctx is cancelled.
func (n *Node) DVLoop(ctx context.Context) {
	i := 0
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		n.mu.Lock()
		n.relaxEntry(i)
		n.mu.Unlock()

		runtime.Gosched()
		i = (i + 1) % len(n.Table)
	}
}

// ForwardLoop is the node's continuously-running packet-consuming loop:
// each tick drains the inbox (if occupied) under the shared mutex. It
// returns only when ctx is cancelled.
func (n *Node) ForwardLoop(ctx context.Context, sink logging.Sink) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		n.mu.Lock()
		n.forwardTick(sink)
		n.mu.Unlock()

		runtime.Gosched()
	}
}
