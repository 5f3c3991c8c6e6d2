// Package hiergen builds a tree of Verilog modules instantiated
// hierarchically, with a root-level reduction expression whose operands are
// cross-hierarchy references by hierarchical name — plain, $root-absolute,
// or relative-up — stressing elaboration-time name resolution (spec.md
// §4.3).
package hiergen

import "fmt"

// Config holds the hierarchy generator's knobs (spec.md §3, "Hierarchy
// config field").
type Config struct {
	Seed         int64
	Depth        int
	MinChild     int
	MaxChild     int
	RootPrefix   bool
	RelativeUp   bool
	Defparam     bool
	Alias        bool
	EnableBigGen bool
	BigGenProb   float64
}

// DefaultConfig matches the CLI defaults of spec.md §6.
func DefaultConfig() Config {
	return Config{
		Depth:      2,
		MinChild:   2,
		MaxChild:   4,
		BigGenProb: 0.5,
	}
}

// Validate checks the generator preconditions of spec.md §4.3/§7.
func (c Config) Validate() error {
	if c.Depth < 0 {
		return fmt.Errorf("hiergen: depth must be >= 0, got %d", c.Depth)
	}
	if c.MinChild < 1 {
		return fmt.Errorf("hiergen: min_child must be >= 1, got %d", c.MinChild)
	}
	if c.MaxChild < c.MinChild {
		return fmt.Errorf("hiergen: max_child (%d) must be >= min_child (%d)", c.MaxChild, c.MinChild)
	}
	if c.EnableBigGen && (c.BigGenProb < 0 || c.BigGenProb > 1) {
		return fmt.Errorf("hiergen: big_gen_prob must be in [0,1], got %g", c.BigGenProb)
	}
	return nil
}
