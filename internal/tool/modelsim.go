package tool

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// ModelSim runs RTL-level simulation only, via a generated run.do script fed
// to vsim — no synthesis step (spec.md §4.4, "one ModelSim-only flow").
type ModelSim struct {
	WorkDir string
}

func (t *ModelSim) Name() string { return "modelsim" }

func (t *ModelSim) Run(ctx context.Context, verilog, topModule string) Result {
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

	doScript := fmt.Sprintf(`vlib work
vlog %s %s
vsim -c tb -do "run -all; quit -f"
`, filepath.Base(dutPath), filepath.Base(tbPath))
	doPath := filepath.Join(t.WorkDir, "run.do")
	if err := os.WriteFile(doPath, []byte(doScript), 0o644); err != nil {
		return Result{Outcome: OutcomeCrash, Err: err}
	}

	log, ok, err := runSubprocess(ctx, t.WorkDir, "vsim.log", "vsim", "-c", "-do", "do run.do")
	if err == context.DeadlineExceeded {
		return Result{Outcome: OutcomeTimeout, Err: err, Log: log}
	}
	if err != nil || !ok {
		return Result{Outcome: OutcomeCrash, Log: log, Err: err}
	}

	v, found := scanForResult(log)
	if !found {
		return Result{Outcome: OutcomeCrash, Log: log}
	}
	return Result{Outcome: OutcomeOK, Value: v, Log: log}
}
