package loopgen

import (
	"strings"
	"testing"

	"github.com/funvibe/veridiff/internal/randsrc"
)

func TestGenerateDepthZero(t *testing.T) {
	cfg := Config{Seed: 1, Depth: 0, MinIter: 2, MaxIter: 2}
	g := New(cfg)
	res := g.Generate("top")
	if res.UsesConstBlock {
		t.Fatalf("depth 0 must not need const_block")
	}
	if !strings.Contains(res.Verilog, "module top") {
		t.Fatalf("expected a module named top, got:\n%s", res.Verilog)
	}
}

func TestGenerateDepthOneMatchesScenario(t *testing.T) {
	cfg := Config{Seed: 1, Depth: 1, MinStart: 0, MaxStart: 0, MinIter: 2, MaxIter: 2, RandomUpdate: false}
	g := New(cfg)
	res := g.Generate("top")
	if !res.UsesConstBlock {
		t.Fatalf("depth 1 with a leaf level must use const_block")
	}
	if strings.Count(res.Verilog, "for (i0") != 1 {
		t.Fatalf("expected exactly one top-level for-generate, got:\n%s", res.Verilog)
	}
	if !strings.Contains(res.Verilog, "localparam [63:0] CONSTS0") {
		t.Fatalf("expected a 2-entry (64-bit) CONSTS0, got:\n%s", res.Verilog)
	}
}

func TestGenerateIsReproducibleForFixedSeed(t *testing.T) {
	cfg := Config{Seed: 42, Depth: 2, MinStart: 0, MaxStart: 1, MinIter: 2, MaxIter: 4, RandomUpdate: true}
	a := New(cfg).Generate("top")
	b := New(cfg).Generate("top")
	if a.Verilog != b.Verilog || a.Oracle != b.Oracle {
		t.Fatalf("same seed must reproduce identical output")
	}
}

func TestGenerateMinStartGreaterThanMaxStartIsSwapped(t *testing.T) {
	cfg := Config{Seed: 7, Depth: 1, MinStart: 5, MaxStart: 0, MinIter: 2, MaxIter: 2}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("swapped start bounds should not fail Validate: %v", err)
	}
	g := New(cfg)
	if got := randsrc.Range(g.src, cfg.MinStart, cfg.MaxStart); got < 0 || got > 5 {
		t.Fatalf("Range did not honor swapped bounds: got %d", got)
	}
}

func TestValidateRejectsBadIterBounds(t *testing.T) {
	cfg := Config{Depth: 1, MinIter: 0, MaxIter: 2}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for min_iter < 1")
	}
	cfg2 := Config{Depth: 1, MinIter: 5, MaxIter: 2}
	if err := cfg2.Validate(); err == nil {
		t.Fatalf("expected error for max_iter < min_iter")
	}
}

func TestDeepNestingStaysConsistent(t *testing.T) {
	cfg := Config{Seed: 99, Depth: 4, MinStart: 0, MaxStart: 2, MinIter: 2, MaxIter: 3, RandomUpdate: true}
	res := New(cfg).Generate("deep")
	if strings.Count(res.Verilog, "for (i") != 4 {
		t.Fatalf("expected 4 nested for-generate levels, got:\n%s", res.Verilog)
	}
}
