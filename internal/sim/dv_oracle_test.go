package sim

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
)

// buildOracle mirrors net's edges into a gonum undirected graph so its
// shortest-path algorithms can serve as an independent correctness check
// on the hand-rolled distance-vector relaxation.
func buildOracle(net *Network) *simple.UndirectedGraph {
	g := simple.NewUndirectedGraph()
	for i := 0; i < net.NodeCount(); i++ {
		g.AddNode(simple.Node(i))
	}
	seen := make(map[[2]int]bool)
	for _, node := range net.nodes {
		for _, m := range node.Neighbors {
			key := [2]int{node.ID, m.ID}
			rev := [2]int{m.ID, node.ID}
			if seen[key] || seen[rev] {
				continue
			}
			seen[key] = true
			g.SetEdge(simple.Edge{F: simple.Node(node.ID), T: simple.Node(m.ID)})
		}
	}
	return g
}

// After convergence, every reachable node's routing cost must equal the
// gonum-computed unweighted shortest-path hop count, and every
// unreachable node must sit at Infinity.
func TestDV_OracleAgreesWithConvergedCosts(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	net := mustNetwork(t, 12, RIP, nil)
	require.NoError(t, net.BuildRandomChannels(rng))

	converge(net, 60)
	assertCoreInvariants(t, net)

	g := buildOracle(net)

	for _, src := range net.nodes {
		paths := path.DijkstraFrom(simple.Node(src.ID), g)
		for dest := 0; dest < net.NodeCount(); dest++ {
			_, wantCost := paths.To(int64(dest))
			got := src.Table[dest].Cost

			if math.IsInf(wantCost, 1) {
				assert.Equal(t, Infinity, got, "node %d dest %d: oracle unreachable but table says %d", src.ID, dest, got)
				continue
			}
			want := int(wantCost)
			if want > Infinity {
				want = Infinity
			}
			assert.Equal(t, want, got, "node %d dest %d: oracle cost %d, table cost %d", src.ID, dest, want, got)
		}
	}
}

func TestDV_OracleAgreesOnLineGraph(t *testing.T) {
	net := mustNetwork(t, 6, RIP, nil)
	buildEdges(t, net, [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 4}, {4, 5}})
	converge(net, 20)

	g := buildOracle(net)
	paths := path.DijkstraFrom(simple.Node(0), g)

	for dest := 0; dest < 6; dest++ {
		_, wantCost := paths.To(int64(dest))
		assert.Equal(t, int(wantCost), net.Node(0).Table[dest].Cost, "dest %d", dest)
	}
}
