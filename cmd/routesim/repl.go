package main

import (
	"bufio"
	"fmt"
	"io"

	"github.com/kprusa/routesim/internal/sim"
)

// repl implements spec.md §6's interactive console driver: three
// whitespace-separated-integer prompts per round, then a transfer_packet
// call. EOF terminates the program; an invalid id passed to
// TransferPacket is printed and the loop continues.
func repl(net *sim.Network, in io.Reader, out io.Writer) error {
	r := bufio.NewReader(in)

	for {
		src, err := promptInt(r, out, "Please enter the sending node: ")
		if err != nil {
			return eofOrErr(err)
		}

		dest, err := promptInt(r, out, "Please enter the receiving node: ")
		if err != nil {
			return eofOrErr(err)
		}

		payload, err := promptInt(r, out, "Please enter the packet data: ")
		if err != nil {
			return eofOrErr(err)
		}

		if err := net.TransferPacket(src, dest, payload); err != nil {
			fmt.Fprintln(out, err)
		}
	}
}

func eofOrErr(err error) error {
	if err == io.EOF {
		return nil
	}
	return err
}

func promptInt(r *bufio.Reader, out io.Writer, prompt string) (int, error) {
	fmt.Fprint(out, prompt)
	var v int
	if _, err := fmt.Fscan(r, &v); err != nil {
		return 0, err
	}
	return v, nil
}
