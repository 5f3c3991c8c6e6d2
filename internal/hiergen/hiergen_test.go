package hiergen

import (
	"strings"
	"testing"
)

func TestGenerateProducesATopModule(t *testing.T) {
	cfg := Config{Seed: 1, Depth: 2, MinChild: 2, MaxChild: 2}
	res := New(cfg).Generate("top")
	if !strings.Contains(res.Verilog, "module top") {
		t.Fatalf("expected a module named top, got:\n%s", res.Verilog)
	}
}

func TestGenerateIsReproducibleForFixedSeed(t *testing.T) {
	cfg := Config{Seed: 5, Depth: 3, MinChild: 2, MaxChild: 3, RootPrefix: true, RelativeUp: true}
	a := New(cfg).Generate("top")
	b := New(cfg).Generate("top")
	if a.Verilog != b.Verilog || a.Oracle != b.Oracle {
		t.Fatalf("same seed must reproduce identical output")
	}
}

func TestGenerateDepthZeroIsALeaf(t *testing.T) {
	cfg := Config{Seed: 2, Depth: 0, MinChild: 2, MaxChild: 2}
	res := New(cfg).Generate("top")
	if !strings.Contains(res.Verilog, "module top") || strings.Count(res.Verilog, "module ") != 1 {
		t.Fatalf("depth 0 should be a plain constant leaf, got:\n%s", res.Verilog)
	}
}

func TestDefparamEmitsOverrideStatement(t *testing.T) {
	cfg := Config{Seed: 3, Depth: 2, MinChild: 2, MaxChild: 3, Defparam: true}
	res := New(cfg).Generate("top")
	if !strings.Contains(res.Verilog, "defparam") {
		t.Fatalf("expected a defparam statement when Defparam is set, got:\n%s", res.Verilog)
	}
	if !strings.Contains(res.Verilog, "parameter VALUE") {
		t.Fatalf("expected parameterized leaves when Defparam is set, got:\n%s", res.Verilog)
	}
}

func TestBigGenEmbedsLoopGenSubmodule(t *testing.T) {
	cfg := Config{Seed: 4, Depth: 1, MinChild: 2, MaxChild: 2, EnableBigGen: true, BigGenProb: 1.0}
	res := New(cfg).Generate("top")
	if !strings.Contains(res.Verilog, "lg1") {
		t.Fatalf("expected an embedded loop-generator submodule with BigGenProb=1, got:\n%s", res.Verilog)
	}
}

func TestAliasEmitsRealAliasStatement(t *testing.T) {
	cfg := Config{Seed: 6, Depth: 2, MinChild: 2, MaxChild: 3, Alias: true}
	res := New(cfg).Generate("top")
	if !strings.Contains(res.Verilog, "alias ") || !strings.Contains(res.Verilog, " = ") {
		t.Fatalf("expected a real alias statement when Alias is set, got:\n%s", res.Verilog)
	}
	if strings.Contains(res.Verilog, "// alias declaration") {
		t.Fatalf("alias must be a real statement, not a disguised comment, got:\n%s", res.Verilog)
	}
}

func TestNormaliseIsIdempotent(t *testing.T) {
	cases := []string{
		"$root.tb.top.c0.c1.out",
		"../c1.out",
		"../../c2.out",
		"c0.out",
		"top.c0.out",
	}
	for _, c := range cases {
		once := Normalise(c)
		twice := Normalise(once)
		if once != twice {
			t.Fatalf("Normalise not idempotent for %q: once=%q twice=%q", c, once, twice)
		}
	}
}

func TestCollectLeafRefsCountsAllLeaves(t *testing.T) {
	leafA := &node{modName: "a", instName: "c0", leaf: true, constVal: 1}
	leafB := &node{modName: "b", instName: "c1", leaf: true, constVal: 2}
	mid := &node{modName: "mid", instName: "c0", children: []*node{leafA, leafB}}
	root := &node{modName: "top", children: []*node{mid}}

	refs := collectLeafRefs(root)
	if len(refs) != 2 {
		t.Fatalf("expected 2 leaves, got %d: %+v", len(refs), refs)
	}
	if refs[0].path != "c0.c0.out" || refs[1].path != "c0.c1.out" {
		t.Fatalf("unexpected leaf paths: %+v", refs)
	}
}
