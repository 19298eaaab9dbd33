// Authors: midasr contributors
// Date: Dec 12th 2025
// Project: Restriction Tests for Mixed-Frequency (MIDAS) Regressions
// Class: 02-613 at Carnegie Mellon University

package main

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/strategist922/midasr/internal/config"
	"github.com/strategist922/midasr/internal/logger"
)

// setupConfig loads the configuration file and installs the logger.
func setupConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	lc, err := cfg.Logger()
	if err != nil {
		return nil, err
	}
	logger.Init(lc)
	return cfg, nil
}

// visited returns the names of the flags set on the command line.
func visited(fs *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

// parseFloats parses a comma-separated list such as "1,-0.1".
func parseFloats(s string) ([]float64, error) {
	var out []float64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("parse %q: %w", part, err)
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("empty parameter list %q", s)
	}
	return out, nil
}
