// Package logging is the simulator's console log sink: the "external
// collaborator" that renders packet-forwarding events, kept behind an
// interface so internal/sim never imports a logging library directly.
package logging

import (
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// State names a forwarding outcome, matching the three states named in
// the simulator's log format.
type State string

const (
	StateDropped  State = "dropped"
	StateReceived State = "received"
)

// DeliveredState formats the "delivered to next hop <id>" state.
func DeliveredState(nextHop int) State {
	return State("delivered to next hop " + strconv.Itoa(nextHop))
}

// PacketEvent is one forwarding-loop outcome. Src and From are nil for
// unicast records, matching spec.md's "src (multicast only), from
// (multicast only)" field list.
type PacketEvent struct {
	Node   int
	Packet int
	Src    *int
	Dest   int
	From   *int
	State  State
}

// Sink consumes forwarding outcomes for logging.
type Sink interface {
	Log(PacketEvent)
}

// LogrusSink renders a PacketEvent both as structured logrus fields and as
// the blank-line-separated multi-line record spec.md describes, so a
// console tailing stdout sees the same record shape the original program
// produced.
type LogrusSink struct {
	log *logrus.Logger
}

// NewLogrusSink builds a Sink around the given logrus logger. A nil logger
// gets logrus's standard logger as currently configured (text-formatted and
// writing to stderr unless its output has been changed). The record reaches
// the output verbatim only when the logger's formatter does not quote the
// message.
func NewLogrusSink(log *logrus.Logger) *LogrusSink {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &LogrusSink{log: log}
}

func (s *LogrusSink) Log(ev PacketEvent) {
	fields := logrus.Fields{
		"node":   ev.Node,
		"packet": ev.Packet,
		"dest":   ev.Dest,
		"state":  string(ev.State),
	}
	if ev.Src != nil {
		fields["src"] = *ev.Src
	}
	if ev.From != nil {
		fields["from"] = *ev.From
	}

	var b strings.Builder
	b.WriteString("\n\nnode:\t")
	b.WriteString(strconv.Itoa(ev.Node))
	b.WriteString("\npacket:\t")
	b.WriteString(strconv.Itoa(ev.Packet))
	if ev.Src != nil {
		b.WriteString("\nsrc:\t")
		b.WriteString(strconv.Itoa(*ev.Src))
	}
	b.WriteString("\ndest:\t")
	b.WriteString(strconv.Itoa(ev.Dest))
	if ev.From != nil {
		b.WriteString("\nfrom:\t")
		b.WriteString(strconv.Itoa(*ev.From))
	}
	b.WriteString("\nstate:\t")
	b.WriteString(string(ev.State))

	s.log.WithFields(fields).Info(b.String())
}

// NopSink discards events; useful for tests that only care about
// routing-table/inbox side effects.
type NopSink struct{}

func (NopSink) Log(PacketEvent) {}
