package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/kprusa/routesim/internal/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTestNetwork(t *testing.T) *sim.Network {
	t.Helper()
	net, err := sim.NewNetwork(3, sim.RIP, nil)
	require.NoError(t, err)
	return net
}

func TestRepl_PromptsAndTransfers(t *testing.T) {
	net := mustTestNetwork(t)
	require.NoError(t, net.BuildChannel(0, 1))

	in := strings.NewReader("0 1 42\n")
	var out bytes.Buffer

	require.NoError(t, repl(net, in, &out))

	assert.Contains(t, out.String(), "Please enter the sending node: ")
	assert.Contains(t, out.String(), "Please enter the receiving node: ")
	assert.Contains(t, out.String(), "Please enter the packet data: ")
	assert.True(t, net.Node(0).Inbox.Occupied)
	assert.Equal(t, 42, net.Node(0).Inbox.Payload)
}

func TestRepl_EOFTerminatesCleanly(t *testing.T) {
	net := mustTestNetwork(t)
	in := strings.NewReader("")
	var out bytes.Buffer

	assert.NoError(t, repl(net, in, &out))
}

func TestRepl_MidRoundEOFTerminatesCleanly(t *testing.T) {
	net := mustTestNetwork(t)
	in := strings.NewReader("0 1")
	var out bytes.Buffer

	assert.NoError(t, repl(net, in, &out))
}

func TestRepl_InvalidIndexIsReportedAndLoopContinues(t *testing.T) {
	net := mustTestNetwork(t)
	require.NoError(t, net.BuildChannel(0, 1))

	in := strings.NewReader("9 1 1\n0 1 2\n")
	var out bytes.Buffer

	require.NoError(t, repl(net, in, &out))

	assert.Contains(t, out.String(), "out of range")
	assert.True(t, net.Node(0).Inbox.Occupied)
	assert.Equal(t, 2, net.Node(0).Inbox.Payload)
}
