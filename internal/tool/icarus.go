package tool

import (
	"context"
	"os"
)

// Icarus compiles and simulates a design with the open-source iverilog/vvp
// toolchain — no synthesis step, RTL-level simulation only.
type Icarus struct {
	// WorkDir is the per-iteration, per-tool directory this instance owns
	// (spec.md §4.4: "the tool owns its contents").
	WorkDir string
}

func (t *Icarus) Name() string { return "icarus" }

func (t *Icarus) Run(ctx context.Context, verilog, topModule string) Result {
	if err := os.MkdirAll(t.WorkDir, 0o755); err != nil {
		return Result{Outcome: OutcomeCrash, Err: err}
	}
	dutPath, err := writeRTL(t.WorkDir, verilog)
	if err != nil {
		return Result{Outcome: OutcomeCrash, Err: err}
	}
	tbPath, err := writeTestbench(t.WorkDir, topModule)
	if err != nil {
		return Result{Outcome: OutcomeCrash, Err: err}
	}

	vvpOut := t.WorkDir + "/sim.vvp"
	log1, ok, err := runSubprocess(ctx, t.WorkDir, "compile.log", "iverilog", "-o", vvpOut, dutPath, tbPath)
	if err == context.DeadlineExceeded {
		return Result{Outcome: OutcomeTimeout, Err: err, Log: log1}
	}
	if err != nil || !ok {
		return Result{Outcome: OutcomeCrash, Log: log1, Err: err}
	}

	log2, ok, err := runSubprocess(ctx, t.WorkDir, "sim.log", "vvp", vvpOut)
	if err == context.DeadlineExceeded {
		return Result{Outcome: OutcomeTimeout, Err: err, Log: log1 + log2}
	}
	if err != nil || !ok {
		return Result{Outcome: OutcomeCrash, Log: log1 + log2, Err: err}
	}

	v, found := scanForResult(log2)
	if !found {
		return Result{Outcome: OutcomeCrash, Log: log1 + log2}
	}
	return Result{Outcome: OutcomeOK, Value: v, Log: log1 + log2}
}
