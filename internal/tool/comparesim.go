package tool

import "context"

// CompareSim is the meta-backend of spec.md §4.4: it runs two child
// simulator backends in order and requires their values to agree. The
// orchestrator recognizes it by Name() and skips the external-oracle
// comparison for it — CompareSim is a pure cross-simulator check, never
// compared against the generator's own oracle.
type CompareSim struct {
	A, B Tool
}

func (t *CompareSim) Name() string { return "comparesim" }

func (t *CompareSim) Run(ctx context.Context, verilog, topModule string) Result {
	ra := t.A.Run(ctx, verilog, topModule)
	if ra.Outcome != OutcomeOK {
		return Result{Outcome: ra.Outcome, Log: ra.Log, Err: ra.Err}
	}
	rb := t.B.Run(ctx, verilog, topModule)
	if rb.Outcome != OutcomeOK {
		return Result{Outcome: rb.Outcome, Log: ra.Log + rb.Log, Err: rb.Err}
	}
	if ra.Value != rb.Value {
		return Result{Outcome: OutcomeCrash, Log: ra.Log + rb.Log}
	}
	return Result{Outcome: OutcomeOK, Value: ra.Value, Log: ra.Log + rb.Log}
}
