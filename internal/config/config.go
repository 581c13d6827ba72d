// Package config collects routesim's startup parameters into one struct,
// independent of how they were sourced (CLI flags today), so
// cmd/routesim stays a thin translation layer between urfave/cli and the
// simulator.
package config

import (
	"fmt"
	"strings"

	"github.com/urfave/cli"
)

// Config holds everything needed to construct and seed a Network.
type Config struct {
	Variant      string
	Nodes        int
	Seed         int64
	TopologyPath string
	GroupPreload string
}

// FromContext reads a Config out of a parsed cli.Context.
func FromContext(c *cli.Context) Config {
	return Config{
		Variant:      c.String("variant"),
		Nodes:        c.Int("nodes"),
		Seed:         c.Int64("seed"),
		TopologyPath: c.String("topology"),
		GroupPreload: c.String("groups"),
	}
}

// GroupPairs parses the "node:gid,node:gid,..." preload flag into
// node/group id pairs, without touching the Network itself.
func (cfg Config) GroupPairs() ([][2]int, error) {
	if cfg.GroupPreload == "" {
		return nil, nil
	}
	var pairs [][2]int
	for _, pair := range strings.Split(cfg.GroupPreload, ",") {
		parts := strings.SplitN(pair, ":", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid group preload entry %q: want node:gid", pair)
		}
		var nodeID, gid int
		if _, err := fmt.Sscanf(parts[0], "%d", &nodeID); err != nil {
			return nil, fmt.Errorf("invalid node id in %q: %w", pair, err)
		}
		if _, err := fmt.Sscanf(parts[1], "%d", &gid); err != nil {
			return nil, fmt.Errorf("invalid group id in %q: %w", pair, err)
		}
		pairs = append(pairs, [2]int{nodeID, gid})
	}
	return pairs, nil
}
