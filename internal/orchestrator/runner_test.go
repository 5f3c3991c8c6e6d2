package orchestrator

import (
	"context"
	"testing"
	"time"

	"github.com/funvibe/veridiff/internal/tool"
)

type fakeTool struct {
	name  string
	res   tool.Result
	delay time.Duration
}

func (f *fakeTool) Name() string { return f.name }
func (f *fakeTool) Run(ctx context.Context, verilog, topModule string) tool.Result {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return tool.Result{Outcome: tool.OutcomeTimeout, Err: ctx.Err()}
		}
	}
	return f.res
}

func TestRunIterationPass(t *testing.T) {
	ft := &fakeTool{name: "icarus", res: tool.Result{Outcome: tool.OutcomeOK, Value: 42}}
	r := New([]tool.Tool{ft}, time.Second)
	it := r.RunIteration(0, Design{ModuleName: "top", Oracle: 42})
	if it.Outcome != Pass {
		t.Fatalf("expected Pass, got %v", it.Outcome)
	}
	if r.Counters.Pass != 1 || r.Counters.Total != 1 {
		t.Fatalf("unexpected counters: %+v", r.Counters)
	}
}

func TestRunIterationMismatch(t *testing.T) {
	ft := &fakeTool{name: "icarus", res: tool.Result{Outcome: tool.OutcomeOK, Value: 1}}
	r := New([]tool.Tool{ft}, time.Second)
	it := r.RunIteration(0, Design{ModuleName: "top", Oracle: 2})
	if it.Outcome != Mismatch || r.Counters.Mismatch != 1 {
		t.Fatalf("expected Mismatch, got %v / %+v", it.Outcome, r.Counters)
	}
}

func TestRunIterationCrash(t *testing.T) {
	ft := &fakeTool{name: "icarus", res: tool.Result{Outcome: tool.OutcomeCrash}}
	r := New([]tool.Tool{ft}, time.Second)
	it := r.RunIteration(0, Design{ModuleName: "top", Oracle: 2})
	if it.Outcome != Crash || r.Counters.Crash != 1 {
		t.Fatalf("expected Crash, got %v / %+v", it.Outcome, r.Counters)
	}
}

func TestRunIterationTimeoutCountsAsCrash(t *testing.T) {
	ft := &fakeTool{name: "icarus", delay: 50 * time.Millisecond}
	r := New([]tool.Tool{ft}, 5*time.Millisecond)
	it := r.RunIteration(0, Design{ModuleName: "top", Oracle: 2})
	if it.Outcome != Crash || r.Counters.Timeout != 1 {
		t.Fatalf("expected Crash with a timeout counted, got %v / %+v", it.Outcome, r.Counters)
	}
	if r.Counters.RealCrash != 0 {
		t.Fatalf("a pure timeout must not count as a RealCrash (exit-code dominance needs them told apart), got %+v", r.Counters)
	}
}

func TestRunIterationRealCrashDistinctFromTimeout(t *testing.T) {
	ft := &fakeTool{name: "icarus", res: tool.Result{Outcome: tool.OutcomeCrash}}
	r := New([]tool.Tool{ft}, time.Second)
	r.RunIteration(0, Design{ModuleName: "top", Oracle: 2})
	if r.Counters.RealCrash != 1 || r.Counters.Timeout != 0 {
		t.Fatalf("expected RealCrash=1, Timeout=0, got %+v", r.Counters)
	}
}

func TestCompareSimValueNeverComparedAgainstOracle(t *testing.T) {
	ft := &fakeTool{name: "comparesim", res: tool.Result{Outcome: tool.OutcomeOK, Value: 999}}
	r := New([]tool.Tool{ft}, time.Second)
	it := r.RunIteration(0, Design{ModuleName: "top", Oracle: 1})
	if it.Outcome != Pass {
		t.Fatalf("comparesim success must never trigger a mismatch against oracle, got %v", it.Outcome)
	}
}
