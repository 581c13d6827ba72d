package sim

import (
	"context"
	"math/rand"
	"sync"

	"github.com/kprusa/routesim/internal/logging"
	"golang.org/x/sync/errgroup"
)

// Network owns the node population, builds the graph, launches the 2N
// control loops, and administers packet injection and group membership.
// A single mutex serializes all mutation of node state across the whole
// simulation (spec.md §5 "Shared-resource policy").
type Network struct {
	mu       sync.Mutex
	nodes    []*Node
	protocol Protocol
	sink     logging.Sink

	cancel context.CancelFunc
	group  *errgroup.Group
}

// NewNetwork allocates nodeCount nodes with ids 0..nodeCount-1, each with
// an N-entry table where every entry starts unreachable
// ({next_hop: NONE, cost: 16}), per spec.md §4.1 `new`.
func NewNetwork(nodeCount int, protocol Protocol, sink logging.Sink) (*Network, error) {
	if nodeCount <= 0 {
		return nil, indexOutOfRange(nodeCount, 0)
	}
	if sink == nil {
		sink = logging.NopSink{}
	}

	net := &Network{protocol: protocol, sink: sink}
	nodes := make([]*Node, nodeCount)
	for i := 0; i < nodeCount; i++ {
		nodes[i] = newNode(i, nodeCount, protocol, &net.mu)
	}
	net.nodes = nodes
	return net, nil
}

// NodeCount reports N.
func (net *Network) NodeCount() int {
	return len(net.nodes)
}

// Node returns the node at id, or nil if id is out of range. Intended for
// tests and CLI inspection; never mutate the returned Node outside the
// Network's own mutex.
func (net *Network) Node(id int) *Node {
	if id < 0 || id >= len(net.nodes) {
		return nil
	}
	return net.nodes[id]
}

func (net *Network) checkIndex(id int) error {
	if id < 0 || id >= len(net.nodes) {
		return indexOutOfRange(id, len(net.nodes))
	}
	return nil
}

// BuildChannel installs the symmetric neighbor relation between a and b,
// unless a == b or the edge is already present (spec.md §4.1
// `build_channel`).
func (net *Network) BuildChannel(a, b int) error {
	if err := net.checkIndex(a); err != nil {
		return err
	}
	if err := net.checkIndex(b); err != nil {
		return err
	}
	if a == b {
		return nil
	}

	net.mu.Lock()
	defer net.mu.Unlock()

	na, nb := net.nodes[a], net.nodes[b]
	if na.hasNeighbor(b) {
		return nil
	}
	na.Neighbors = append(na.Neighbors, nb)
	nb.Neighbors = append(nb.Neighbors, na)
	return nil
}

// BuildRandomChannels draws a single edge-count k uniform in [1,3], then
// for each node attempts k random edges to a different node, folding
// duplicate undirected candidates before realizing them (spec.md §4.1/§6
// `build_random_channels`). Resulting graphs are not guaranteed connected.
func (net *Network) BuildRandomChannels(rng *rand.Rand) error {
	n := len(net.nodes)
	if n == 0 {
		return nil
	}

	k := rng.Intn(3) + 1
	es := &edgeSet{}
	for i := 0; i < n; i++ {
		for j := 0; j < k; j++ {
			es.add(createEdge(rng, i, n))
		}
	}

	for _, e := range es.list {
		if err := net.BuildChannel(e.a, e.b); err != nil {
			return err
		}
	}
	return nil
}

// LoadTopology installs each edge of an already-decoded edge list (as
// returned by internal/graphgen.LoadEdges) via BuildChannel. Supplements spec.md with a way to
// declare the graph out of band instead of only randomly.
func (net *Network) LoadTopology(edges [][2]int) error {
	for _, e := range edges {
		if err := net.BuildChannel(e[0], e[1]); err != nil {
			return err
		}
	}
	return nil
}

// Start launches one DV-relaxation loop and one forwarding loop per node
// (spec.md §4.1 `start`, §5). The loops run until ctx is cancelled or
// Stop is called.
func (net *Network) Start(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(ctx)
	group, groupCtx := errgroup.WithContext(runCtx)

	for _, node := range net.nodes {
		node := node
		group.Go(func() error {
			node.DVLoop(groupCtx)
			return nil
		})
		group.Go(func() error {
			node.ForwardLoop(groupCtx, net.sink)
			return nil
		})
	}

	net.cancel = cancel
	net.group = group
	return nil
}

// Stop cancels the context passed to Start and waits for every loop to
// return. Not part of spec.md's protocol — a test/operational shutdown
// convenience, since the simulated protocol itself never terminates.
func (net *Network) Stop() {
	if net.cancel == nil {
		return
	}
	net.cancel()
	_ = net.group.Wait()
	net.cancel = nil
	net.group = nil
}

// TransferPacket injects a packet at src's inbox: {occupied: true,
// payload, src, dest, from: src}. A previously occupied inbox is silently
// overwritten (spec.md §4.1 `transfer_packet`).
func (net *Network) TransferPacket(src, dest, payload int) error {
	if err := net.checkIndex(src); err != nil {
		return err
	}

	net.mu.Lock()
	defer net.mu.Unlock()

	kind := Unicast
	if dest >= len(net.nodes) {
		kind = Multicast
	}

	net.nodes[src].Inbox = Mailbox{
		Occupied: true,
		Payload:  payload,
		Src:      src,
		DestKind: kind,
		DestID:   dest,
		From:     src,
	}
	return nil
}

// AssignGroup adds gid to nodeID's group set (spec.md §4.1
// `assign_group`).
func (net *Network) AssignGroup(nodeID, gid int) error {
	if err := net.checkIndex(nodeID); err != nil {
		return err
	}
	net.mu.Lock()
	defer net.mu.Unlock()
	net.nodes[nodeID].Groups[gid] = struct{}{}
	return nil
}

// CancelGroup removes gid from nodeID's group set. A no-op if the node
// had not joined gid (spec.md §7/§9: the source aborts on this case,
// which is a bug; this implementation treats it as a no-op).
func (net *Network) CancelGroup(nodeID, gid int) error {
	if err := net.checkIndex(nodeID); err != nil {
		return err
	}
	net.mu.Lock()
	defer net.mu.Unlock()
	delete(net.nodes[nodeID].Groups, gid)
	return nil
}
