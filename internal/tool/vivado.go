package tool

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Vivado runs AMD Vivado's out-of-context synthesis followed by xsim
// elaboration and execution (spec.md §4.4, "one AMD Vivado flow").
type Vivado struct {
	WorkDir string
}

func (t *Vivado) Name() string { return "vivado" }

// vivadoBin returns the Vivado executable to invoke, honoring the
// VIVADO_BIN override spec.md §6 "Environment" documents.
func vivadoBin() string {
	if b := os.Getenv("VIVADO_BIN"); b != "" {
		return b
	}
	return "vivado"
}

func (t *Vivado) Run(ctx context.Context, verilog, topModule string) Result {
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

	tclScript := fmt.Sprintf(`read_verilog %s
synth_design -top %s -mode out_of_context
write_verilog -force synth_netlist.v
`, filepath.Base(dutPath), topModule)
	tclPath := filepath.Join(t.WorkDir, "synth.tcl")
	if err := os.WriteFile(tclPath, []byte(tclScript), 0o644); err != nil {
		return Result{Outcome: OutcomeCrash, Err: err}
	}

	log1, ok, err := runSubprocess(ctx, t.WorkDir, "synth.log", vivadoBin(), "-mode", "batch", "-source", "synth.tcl")
	if err == context.DeadlineExceeded {
		return Result{Outcome: OutcomeTimeout, Err: err, Log: log1}
	}
	if err != nil || !ok {
		return Result{Outcome: OutcomeCrash, Log: log1, Err: err}
	}

	netlist := filepath.Join(t.WorkDir, "synth_netlist.v")
	log2, ok, err := runSubprocess(ctx, t.WorkDir, "xelab.log", "xelab", "tb",
		"-snapshot", "tb_snap", netlist, tbPath)
	if err == context.DeadlineExceeded {
		return Result{Outcome: OutcomeTimeout, Err: err, Log: log1 + log2}
	}
	if err != nil || !ok {
		return Result{Outcome: OutcomeCrash, Log: log1 + log2, Err: err}
	}

	log3, ok, err := runSubprocess(ctx, t.WorkDir, "xsim.log", "xsim", "tb_snap", "-runall")
	if err == context.DeadlineExceeded {
		return Result{Outcome: OutcomeTimeout, Err: err, Log: log1 + log2 + log3}
	}
	if err != nil || !ok {
		return Result{Outcome: OutcomeCrash, Log: log1 + log2 + log3, Err: err}
	}

	v, found := scanForResult(log3)
	if !found {
		return Result{Outcome: OutcomeCrash, Log: log1 + log2 + log3}
	}
	return Result{Outcome: OutcomeOK, Value: v, Log: log1 + log2 + log3}
}
