package tool

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// quartusFlow is the shared synthesis+gate-level-sim procedure for both
// Intel Quartus variants (spec.md §4.4: "two Intel Quartus flows, standard
// and Pro, each producing a post-synthesis gate-level netlist and
// simulating that netlist with a ModelSim-like simulator against vendor
// libraries"). The two backends differ only in which binaries they shell
// out to, so the procedure is factored out and parameterized.
type quartusFlow struct {
	shBinary   string // quartus_sh (Pro variant adds --64bit)
	simBinary  string // ModelSim-like netlist simulator
	proFlow    bool
	vendorLibs string // vendor simulation library name passed to the simulator
}

func (q *quartusFlow) run(ctx context.Context, workDir, verilog, topModule string) Result {
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return Result{Outcome: OutcomeCrash, Err: err}
	}
	dutPath, err := writeRTL(workDir, verilog)
	if err != nil {
		return Result{Outcome: OutcomeCrash, Err: err}
	}

	tclScript := fmt.Sprintf(`project_new %s -overwrite
set_global_assignment -name TOP_LEVEL_ENTITY %s
set_global_assignment -name VERILOG_FILE %s
execute_module -tool map
execute_module -tool fit
execute_module -tool asm
execute_module -tool eda_netlist_writer
project_close
`, topModule, topModule, filepath.Base(dutPath))
	tclPath := filepath.Join(workDir, "flow.tcl")
	if err := os.WriteFile(tclPath, []byte(tclScript), 0o644); err != nil {
		return Result{Outcome: OutcomeCrash, Err: err}
	}

	shArgs := []string{"-t", "flow.tcl"}
	if q.proFlow {
		shArgs = append([]string{"--64bit"}, shArgs...)
	}
	log1, ok, err := runSubprocess(ctx, workDir, "synth.log", q.shBinary, shArgs...)
	if err == context.DeadlineExceeded {
		return Result{Outcome: OutcomeTimeout, Err: err, Log: log1}
	}
	if err != nil || !ok {
		return Result{Outcome: OutcomeCrash, Log: log1, Err: err}
	}

	netlist := filepath.Join(workDir, "simulation", "modelsim", topModule+".vo")
	tbPath, err := writeTestbench(workDir, topModule)
	if err != nil {
		return Result{Outcome: OutcomeCrash, Err: err}
	}

	doScript := fmt.Sprintf(`vlib work
vlog -L %s %s %s
vsim -c tb -do "run -all; quit -f"
`, q.vendorLibs, netlist, filepath.Base(tbPath))
	doPath := filepath.Join(workDir, "run.do")
	if err := os.WriteFile(doPath, []byte(doScript), 0o644); err != nil {
		return Result{Outcome: OutcomeCrash, Err: err}
	}

	log2, ok, err := runSubprocess(ctx, workDir, "sim.log", q.simBinary, "-c", "-do", "do run.do")
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

// Quartus is the standard Intel Quartus (non-Pro) flow.
type Quartus struct {
	WorkDir string
}

func (t *Quartus) Name() string { return "quartus" }

func (t *Quartus) Run(ctx context.Context, verilog, topModule string) Result {
	flow := &quartusFlow{
		shBinary: "quartus_sh", simBinary: "vsim",
		vendorLibs: "altera_ver", proFlow: false,
	}
	return flow.run(ctx, t.WorkDir, verilog, topModule)
}

// QuartusPro is the Quartus Prime Pro edition flow, used for device
// families the standard edition doesn't support.
type QuartusPro struct {
	WorkDir string
}

func (t *QuartusPro) Name() string { return "quartuspro" }

func (t *QuartusPro) Run(ctx context.Context, verilog, topModule string) Result {
	flow := &quartusFlow{
		shBinary: "quartus_sh", simBinary: "vsim",
		vendorLibs: "altera_pro_ver", proFlow: true,
	}
	return flow.run(ctx, t.WorkDir, verilog, topModule)
}
