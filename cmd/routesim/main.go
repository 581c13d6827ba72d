// Command routesim drives the distance-vector routing simulator: it
// builds a Network (random or loaded from a topology file), starts its
// control loops, optionally preloads DVMRP group memberships, and then
// runs the interactive REPL described in spec.md §6.
package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/kprusa/routesim/internal/config"
	"github.com/kprusa/routesim/internal/graphgen"
	"github.com/kprusa/routesim/internal/logging"
	"github.com/kprusa/routesim/internal/sim"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

func main() {
	app := cli.NewApp()
	app.Name = "routesim"
	app.Usage = "simulate RIP and DVMRP/TRPB distance-vector routing over a random graph"
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "variant", Value: "rip", Usage: "protocol variant: rip or dvmrp"},
		cli.IntFlag{Name: "nodes", Value: 10, Usage: "number of nodes"},
		cli.Int64Flag{Name: "seed", Value: time.Now().UnixNano(), Usage: "random seed for graph generation"},
		cli.StringFlag{Name: "topology", Usage: "optional JSON topology file; disables random graph generation"},
		cli.StringFlag{
			Name:  "groups",
			Value: "1:18,3:18,5:18,6:18,9:18",
			Usage: "DVMRP group preload as node:gid,node:gid,... (ignored for rip)",
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	cfg := config.FromContext(c)

	variant, err := parseVariant(cfg.Variant)
	if err != nil {
		return err
	}

	log := logrus.StandardLogger()
	log.SetOutput(os.Stdout)
	log.SetFormatter(&logrus.TextFormatter{DisableQuote: true})
	sink := logging.NewLogrusSink(log)

	net, err := sim.NewNetwork(cfg.Nodes, variant, sink)
	if err != nil {
		return errors.Wrap(err, "create network")
	}

	if cfg.TopologyPath != "" {
		f, err := os.Open(cfg.TopologyPath)
		if err != nil {
			return errors.Wrap(err, "open topology file")
		}
		edges, err := graphgen.LoadEdges(f)
		f.Close()
		if err != nil {
			return errors.Wrap(err, "load topology")
		}
		if err := net.LoadTopology(edges); err != nil {
			return errors.Wrap(err, "install topology")
		}
	} else {
		rng := rand.New(rand.NewSource(cfg.Seed))
		if err := net.BuildRandomChannels(rng); err != nil {
			return errors.Wrap(err, "build random graph")
		}
	}

	if variant == sim.DVMRP {
		if err := preloadGroups(net, cfg); err != nil {
			return err
		}
	}

	ctx := context.Background()
	if err := net.Start(ctx); err != nil {
		return errors.Wrap(err, "start network")
	}

	return repl(net, os.Stdin, os.Stdout)
}

func parseVariant(s string) (sim.Protocol, error) {
	switch strings.ToLower(s) {
	case "rip":
		return sim.RIP, nil
	case "dvmrp":
		return sim.DVMRP, nil
	default:
		return 0, fmt.Errorf("unknown variant %q: must be rip or dvmrp", s)
	}
}

// preloadGroups reproduces original_source/main.cpp's literal
// `net.assign_group(1, 18)` etc preload, generalized via cfg.GroupPairs
// so the node/gid set is not hardcoded.
func preloadGroups(net *sim.Network, cfg config.Config) error {
	pairs, err := cfg.GroupPairs()
	if err != nil {
		return err
	}
	for _, p := range pairs {
		if err := net.AssignGroup(p[0], p[1]); err != nil {
			return errors.Wrapf(err, "preload group %d:%d", p[0], p[1])
		}
	}
	return nil
}
