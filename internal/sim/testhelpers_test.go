package sim

import (
	"testing"

	"github.com/kprusa/routesim/internal/logging"
)

// collectingSink records every event logged during a test instead of
// writing to a real logger.
type collectingSink struct {
	events []logging.PacketEvent
}

func (s *collectingSink) Log(ev logging.PacketEvent) {
	s.events = append(s.events, ev)
}

func (s *collectingSink) states() []logging.State {
	out := make([]logging.State, len(s.events))
	for i, ev := range s.events {
		out[i] = ev.State
	}
	return out
}

func mustNetwork(t *testing.T, nodeCount int, protocol Protocol, sink logging.Sink) *Network {
	t.Helper()
	net, err := NewNetwork(nodeCount, protocol, sink)
	if err != nil {
		t.Fatalf("NewNetwork(%d): %v", nodeCount, err)
	}
	return net
}

// converge runs `rounds` full sweeps of relaxEntry over every node and
// every destination index, directly and single-threaded (no goroutines),
// equivalent to running DVLoop for rounds*N ticks per node under a fair
// round-robin scheduler. Used instead of starting real goroutines so
// convergence tests are deterministic.
func converge(net *Network, rounds int) {
	for r := 0; r < rounds; r++ {
		for _, n := range net.nodes {
			for i := range n.Table {
				n.relaxEntry(i)
			}
		}
	}
}

func buildEdges(t *testing.T, net *Network, edges [][2]int) {
	t.Helper()
	for _, e := range edges {
		if err := net.BuildChannel(e[0], e[1]); err != nil {
			t.Fatalf("BuildChannel(%d,%d): %v", e[0], e[1], err)
		}
	}
}
