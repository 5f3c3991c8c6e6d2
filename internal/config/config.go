// Package config loads veridiff.yaml, the run-level configuration file
// that pins generator knobs and tool selection so a campaign can be
// reproduced without re-typing CLI flags (spec.md §6, "--config").
//
// The loading shape — read, yaml.Unmarshal, validate, apply defaults — is
// grounded on the teacher's internal/ext.LoadConfig/ParseConfig pair.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/funvibe/veridiff/internal/hiergen"
	"github.com/funvibe/veridiff/internal/loopgen"
)

// RunConfig is the top-level veridiff.yaml document.
type RunConfig struct {
	Seed int64 `yaml:"seed"`

	// Generator selects which design generator a run draws from: "loop",
	// "hier", or "both" (alternating, spec.md §5).
	Generator string `yaml:"generator"`

	Iterations int `yaml:"iterations"`

	Loop LoopConfig `yaml:"loop"`
	Hier HierConfig `yaml:"hier"`

	// Tools lists the backend names to run each iteration through (spec.md
	// §4.4): any of "quartus", "quartuspro", "vivado", "icarus", "modelsim",
	// "comparesim".
	Tools []string `yaml:"tools"`

	// TimeoutSeconds bounds each tool invocation (spec.md §4.4 watchdog).
	TimeoutSeconds int `yaml:"timeout_seconds"`

	// DBPath is the SQLite results store path (spec.md §6, "--db").
	DBPath string `yaml:"db_path"`
}

// LoopConfig mirrors loopgen.Config for YAML decoding.
type LoopConfig struct {
	Depth        int  `yaml:"depth"`
	MinStart     int  `yaml:"min_start"`
	MaxStart     int  `yaml:"max_start"`
	MinIter      int  `yaml:"min_iter"`
	MaxIter      int  `yaml:"max_iter"`
	RandomUpdate bool `yaml:"random_update"`
}

// HierConfig mirrors hiergen.Config for YAML decoding.
type HierConfig struct {
	Depth        int     `yaml:"depth"`
	MinChild     int     `yaml:"min_child"`
	MaxChild     int     `yaml:"max_child"`
	RootPrefix   bool    `yaml:"root_prefix"`
	RelativeUp   bool    `yaml:"relative_up"`
	Defparam     bool    `yaml:"defparam"`
	Alias        bool    `yaml:"alias"`
	EnableBigGen bool    `yaml:"enable_big_gen"`
	BigGenProb   float64 `yaml:"big_gen_prob"`
}

// ToLoopgen converts the YAML-decoded fields into a loopgen.Config, filling
// the seed in from the run's own Seed field.
func (l LoopConfig) ToLoopgen(seed int64) loopgen.Config {
	c := loopgen.DefaultConfig()
	c.Seed = seed
	if l.Depth != 0 {
		c.Depth = l.Depth
	}
	c.MinStart, c.MaxStart = l.MinStart, l.MaxStart
	if l.MinIter != 0 {
		c.MinIter = l.MinIter
	}
	if l.MaxIter != 0 {
		c.MaxIter = l.MaxIter
	}
	c.RandomUpdate = l.RandomUpdate
	return c
}

// ToHiergen converts the YAML-decoded fields into a hiergen.Config.
func (h HierConfig) ToHiergen(seed int64) hiergen.Config {
	c := hiergen.DefaultConfig()
	c.Seed = seed
	if h.Depth != 0 {
		c.Depth = h.Depth
	}
	if h.MinChild != 0 {
		c.MinChild = h.MinChild
	}
	if h.MaxChild != 0 {
		c.MaxChild = h.MaxChild
	}
	c.RootPrefix = h.RootPrefix
	c.RelativeUp = h.RelativeUp
	c.Defparam = h.Defparam
	c.Alias = h.Alias
	c.EnableBigGen = h.EnableBigGen
	if h.BigGenProb != 0 {
		c.BigGenProb = h.BigGenProb
	}
	return c
}

// DefaultRunConfig returns the values a run uses for every field that
// neither veridiff.yaml nor a CLI flag sets: both generators alternating,
// 100 iterations, the comparesim backend, a 60-second per-tool time-out,
// and veridiff.db as the results store.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		Generator:      "both",
		Iterations:     100,
		Tools:          []string{"comparesim"},
		TimeoutSeconds: 60,
		DBPath:         "veridiff.db",
	}
}

// Load reads and parses a veridiff.yaml file, applying defaults for any
// field left unset.
func Load(path string) (*RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse parses veridiff.yaml content from bytes. path is used only for
// error messages.
func Parse(data []byte, path string) (*RunConfig, error) {
	cfg := DefaultRunConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *RunConfig) validate(path string) error {
	switch c.Generator {
	case "loop", "hier", "both":
	default:
		return fmt.Errorf("%s: generator must be one of loop, hier, both; got %q", path, c.Generator)
	}
	if c.Iterations < 1 {
		return fmt.Errorf("%s: iterations must be >= 1, got %d", path, c.Iterations)
	}
	if len(c.Tools) == 0 {
		return fmt.Errorf("%s: tools must list at least one backend", path)
	}
	if c.TimeoutSeconds < 1 {
		return fmt.Errorf("%s: timeout_seconds must be >= 1, got %d", path, c.TimeoutSeconds)
	}
	if err := c.Loop.ToLoopgen(c.Seed).Validate(); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := c.Hier.ToHiergen(c.Seed).Validate(); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// Find searches for veridiff.yaml starting from dir and walking up to
// parent directories, the same convention the teacher's ext.FindConfig
// uses for funxy.yaml. Returns "" with a nil error if no file is found.
func Find(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "veridiff.yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}
