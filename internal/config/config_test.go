package config

import "testing"

func TestParseAppliesDefaults(t *testing.T) {
	cfg, err := Parse([]byte("seed: 7\n"), "veridiff.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Generator != "both" || cfg.Iterations != 100 || cfg.TimeoutSeconds != 60 {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
	if len(cfg.Tools) != 1 || cfg.Tools[0] != "comparesim" {
		t.Fatalf("expected default tools [comparesim], got %v", cfg.Tools)
	}
}

func TestParseRejectsUnknownGenerator(t *testing.T) {
	_, err := Parse([]byte("generator: bogus\n"), "veridiff.yaml")
	if err == nil {
		t.Fatalf("expected error for unknown generator")
	}
}

func TestParseRejectsZeroIterations(t *testing.T) {
	_, err := Parse([]byte("iterations: 0\n"), "veridiff.yaml")
	if err == nil {
		t.Fatalf("expected error for iterations: 0")
	}
}

func TestLoopConfigRoundTrip(t *testing.T) {
	l := LoopConfig{Depth: 2, MinIter: 3, MaxIter: 5}
	c := l.ToLoopgen(42)
	if c.Seed != 42 || c.Depth != 2 || c.MinIter != 3 || c.MaxIter != 5 {
		t.Fatalf("unexpected loopgen.Config: %+v", c)
	}
}

func TestHierConfigRoundTrip(t *testing.T) {
	h := HierConfig{Depth: 3, MinChild: 2, MaxChild: 5, Defparam: true}
	c := h.ToHiergen(9)
	if c.Seed != 9 || c.Depth != 3 || c.MinChild != 2 || c.MaxChild != 5 || !c.Defparam {
		t.Fatalf("unexpected hiergen.Config: %+v", c)
	}
}
