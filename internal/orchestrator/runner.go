// Package orchestrator drives one fuzzing campaign: for each design the
// caller hands it, it runs the design through every configured Tool under
// a watchdog and classifies the iteration as pass, mismatch, or crash
// (spec.md §4.4, §5).
//
// The per-tool watchdog is grounded on the teacher's differential fuzz
// target (tests/fuzz/targets/differential_fuzz_test.go), which runs each
// backend on its own goroutine and races it against a context deadline;
// the overall "run backend, classify errors, append to a log" shape is
// grounded on backend.ExecutionProcessor.
package orchestrator

import (
	"context"
	"log"
	"time"

	"github.com/funvibe/veridiff/internal/tool"
)

// Outcome classifies one completed iteration (spec.md §4.4).
type Outcome int

const (
	Pass Outcome = iota
	Mismatch
	Crash
)

func (o Outcome) String() string {
	switch o {
	case Pass:
		return "pass"
	case Mismatch:
		return "mismatch"
	case Crash:
		return "crash"
	default:
		return "unknown"
	}
}

// Design is the minimal shape the orchestrator needs from a generator
// result: the named top-level module, its Verilog text, and the oracle
// value the design is expected to settle to.
type Design struct {
	ModuleName string
	Verilog    string
	Oracle     uint32
}

// ToolOutcome is one tool's contribution to an iteration's record.
type ToolOutcome struct {
	ToolName string
	Result   tool.Result
}

// Iteration is the full record of one generate-and-check cycle, the unit
// internal/store persists.
type Iteration struct {
	Seq     int
	Design  Design
	Tools   []ToolOutcome
	Outcome Outcome
}

// Counters accumulates totals across a run (spec.md §4.4, "a terminal
// summary reports totals").
type Counters struct {
	Pass     int
	Mismatch int
	Crash    int
	Timeout  int
	Total    int

	// RealCrash counts iterations where some tool returned OutcomeCrash
	// outright, as opposed to timing out. Crash already folds timeouts in
	// (spec.md §4.4: "crash ⟺ any tool fails or times out"), but the CLI's
	// exit-code dominance (spec.md §6/§8, "crash>timeout>mismatch") needs
	// the two told apart: a run with only timeouts exits 2, not 3.
	RealCrash int
}

// Runner owns a Tool set and a per-tool timeout, and drives iterations
// against designs handed to it.
type Runner struct {
	Tools   []tool.Tool
	Timeout time.Duration

	Counters Counters
}

// New builds a Runner over the given tools with the given per-invocation
// timeout (spec.md §4.4, "Watchdog... default 10 minutes").
func New(tools []tool.Tool, timeout time.Duration) *Runner {
	if timeout <= 0 {
		timeout = 10 * time.Minute
	}
	return &Runner{Tools: tools, Timeout: timeout}
}

// RunIteration runs d through every configured tool and classifies the
// result (spec.md §4.4's outcome rules).
func (r *Runner) RunIteration(seq int, d Design) Iteration {
	it := Iteration{Seq: seq, Design: d}
	r.Counters.Total++

	sawTimeout := false
	sawRealCrash := false
	sawMismatch := false

	for _, t := range r.Tools {
		res := r.runWithWatchdog(t, d)
		it.Tools = append(it.Tools, ToolOutcome{ToolName: t.Name(), Result: res})

		switch res.Outcome {
		case tool.OutcomeTimeout:
			r.Counters.Timeout++
			sawTimeout = true
		case tool.OutcomeCrash:
			sawRealCrash = true
		case tool.OutcomeOK:
			// CompareSim is a pure cross-simulator check: the orchestrator
			// never compares its value against the generator's own oracle
			// (spec.md §4.4, "CompareSim semantics").
			if t.Name() != "comparesim" && res.Value != d.Oracle {
				sawMismatch = true
			}
		}
	}

	switch {
	case sawRealCrash || sawTimeout:
		it.Outcome = Crash
		r.Counters.Crash++
		if sawRealCrash {
			r.Counters.RealCrash++
		}
	case sawMismatch:
		it.Outcome = Mismatch
		r.Counters.Mismatch++
	default:
		it.Outcome = Pass
		r.Counters.Pass++
	}

	log.Printf("iteration %d: %s (%s)", seq, it.Outcome, d.ModuleName)
	return it
}

// runWithWatchdog runs t on an auxiliary goroutine and races it against
// r.Timeout. On expiry the goroutine's eventual result is discarded
// (spec.md §5: "cancellation is coarse... the worker is allowed to drain
// in the background").
func (r *Runner) runWithWatchdog(t tool.Tool, d Design) tool.Result {
	ctx, cancel := context.WithTimeout(context.Background(), r.Timeout)
	defer cancel()

	done := make(chan tool.Result, 1)
	go func() {
		done <- t.Run(ctx, d.Verilog, d.ModuleName)
	}()

	select {
	case res := <-done:
		return res
	case <-ctx.Done():
		return tool.Result{Outcome: tool.OutcomeTimeout, Err: ctx.Err()}
	}
}
