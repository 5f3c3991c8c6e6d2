// Package loopgen builds a nested `for`-generate Verilog design of
// configurable depth over a pool of random constants, together with an
// oracle value computed by pure evaluation of the same random draws used
// to emit the text (spec.md §4.2).
package loopgen

import (
	"fmt"
	"strings"

	"github.com/funvibe/veridiff/internal/ast"
	"github.com/funvibe/veridiff/internal/randsrc"
)

// Config holds the loop generator's knobs (spec.md §3, "Loop config
// field"). Depth is not part of the CLI-exposed table in spec.md §6, but
// every operation in §4.2 and the testable properties of §8 range over it,
// so it lives here as a generator-level setting with a conservative
// default (see DESIGN.md).
type Config struct {
	Seed         int64
	Depth        int
	MinStart     int
	MaxStart     int
	MinIter      int
	MaxIter      int
	RandomUpdate bool
}

// DefaultConfig matches the CLI defaults of spec.md §6.
func DefaultConfig() Config {
	return Config{
		Depth:        3,
		MinStart:     0,
		MaxStart:     0,
		MinIter:      2,
		MaxIter:      16,
		RandomUpdate: true,
	}
}

// Validate checks the generator preconditions of spec.md §4.2/§7. A
// violation here is fatal at the CLI boundary (kind 1 of spec.md §7), never
// a per-iteration failure.
func (c Config) Validate() error {
	if c.Depth < 0 {
		return fmt.Errorf("loopgen: depth must be >= 0, got %d", c.Depth)
	}
	if c.MinIter < 1 {
		return fmt.Errorf("loopgen: min_iter must be >= 1, got %d (oracle undefined for empty iteration ranges)", c.MinIter)
	}
	if c.MaxIter < c.MinIter {
		return fmt.Errorf("loopgen: max_iter (%d) must be >= min_iter (%d)", c.MaxIter, c.MinIter)
	}
	return nil
}

// Result is the (Verilog, oracle) pair produced by one call to Generate.
type Result struct {
	ModuleName string
	Verilog    string
	Oracle     uint32
	// UsesConstBlock is true when Verilog instantiates the const_block
	// helper module and the caller must ensure ast.ConstBlock is emitted
	// exactly once somewhere earlier in the same file.
	UsesConstBlock bool
}

// Generator is one random draw sequence bound to a Config. Every draw made
// while building a design happens through src, in program-text order.
type Generator struct {
	cfg    Config
	src    randsrc.Source
	consts []uint32
}

// New returns a Generator seeded from cfg.Seed.
func New(cfg Config) *Generator {
	return &Generator{cfg: cfg, src: randsrc.NewSeeded(cfg.Seed)}
}

// NewWithSource returns a Generator drawing from an explicit Source,
// letting callers replay a captured byte corpus (internal/fuzzing) through
// the same construction code used for seeded runs.
func NewWithSource(cfg Config, src randsrc.Source) *Generator {
	return &Generator{cfg: cfg, src: src}
}

func indent(n int) string { return strings.Repeat("  ", n) }

// Generate builds one design named moduleName and returns its Verilog text
// and oracle value.
func (g *Generator) Generate(moduleName string) *Result {
	if g.cfg.Depth <= 0 {
		// Edge case (spec.md §4.2): depth=0 emits a single level, no loop,
		// oracle equals the single drawn constant.
		c0 := randsrc.Uint32(g.src)
		mod := &ast.Module{
			Name:  moduleName,
			Ports: []string{"output [31:0] result"},
			Body: []ast.Stmt{
				&ast.Assign{LHS: "result", RHS: &ast.Literal{Value: c0}},
			},
		}
		return &Result{ModuleName: moduleName, Verilog: mod.Emit(), Oracle: c0}
	}

	g.consts = nil
	rootStmt, outputs0, n0 := g.buildLevel(0)

	constsDecl := &ast.Custom{Text: func(ind int) string {
		return fmt.Sprintf("%slocalparam [%d:0] CONSTS0 = {%s};",
			indent(ind), len(g.consts)*32-1, concatHex(g.consts))
	}}
	t0Decl := &ast.Custom{Text: func(ind int) string {
		return fmt.Sprintf("%swire [31:0] t0 [0:%d];", indent(ind), n0-1)
	}}

	finalOp := ast.OpAdd
	if randsrc.Bool(g.src) {
		finalOp = ast.OpXor
	}
	operands := make([]ast.Expr, n0)
	for k := 0; k < n0; k++ {
		operands[k] = &ast.WireRef{Name: "t0", Index: k, HasIndex: true}
	}
	finalExpr := &ast.BinaryTree{Op: finalOp, Operands: operands}
	oracle, _ := finalExpr.Eval(&ast.Env{Values: outputs0})
	finalAssign := &ast.Assign{LHS: "result", RHS: finalExpr}

	mod := &ast.Module{
		Name:  moduleName,
		Ports: []string{"output [31:0] result"},
		Body:  []ast.Stmt{constsDecl, t0Decl, rootStmt, finalAssign},
	}

	return &Result{ModuleName: moduleName, Verilog: mod.Emit(), Oracle: oracle, UsesConstBlock: true}
}

// concatHex renders a Verilog concatenation listing consts from highest
// index to lowest, so that CONSTS0[(i)*32 +: 32] recovers consts[i].
func concatHex(consts []uint32) string {
	parts := make([]string, len(consts))
	for i := range consts {
		parts[i] = fmt.Sprintf("32'h%08x", consts[len(consts)-1-i])
	}
	return strings.Join(parts, ", ")
}

// buildLevel builds the `for`-generate block for the given nesting level
// (0 is outermost) and returns it alongside the oracle vector it produces
// (one entry per value the level's induction variable takes) and the
// level's own iteration count.
//
// Draw order for a non-leaf level is: this level's own loop header, then
// (by recursing) everything inside it, then this level's own per-arm
// reduction operators. This is a deliberate, self-consistent choice — unlike
// the original tool this spec describes, nothing outside this package
// depends on byte-exact draw ordering, only on reproducibility for a fixed
// seed (spec.md §5), which this order satisfies.
func (g *Generator) buildLevel(level int) (*ast.ForGen, []uint32, int) {
	start := randsrc.Range(g.src, g.cfg.MinStart, g.cfg.MaxStart)
	n := randsrc.Range(g.src, g.cfg.MinIter, g.cfg.MaxIter)

	dec := false
	if g.cfg.RandomUpdate {
		dec = randsrc.Bool(g.src)
	}

	varName := fmt.Sprintf("i%d", level)
	label := fmt.Sprintf("g%d", level)
	init := fmt.Sprintf("%d", start)
	var cond, update, idxText string
	if dec {
		cond = fmt.Sprintf("%s > %d-%d", varName, start, n)
		update = fmt.Sprintf("%s - 1", varName)
		idxText = fmt.Sprintf("%d - %s", start, varName)
	} else {
		cond = fmt.Sprintf("%s < %d+%d", varName, start, n)
		update = fmt.Sprintf("%s + 1", varName)
		idxText = fmt.Sprintf("%s - %d", varName, start)
	}

	if level == g.cfg.Depth-1 {
		outputs := make([]uint32, n)
		for i := 0; i < n; i++ {
			outputs[i] = randsrc.Uint32(g.src)
			g.consts = append(g.consts, outputs[i])
		}
		inst := &ast.Instance{
			Module: ast.ConstBlockName,
			Inst:   fmt.Sprintf("c%d", level),
			Params: []string{fmt.Sprintf(".VALUE(CONSTS0[(%s)*32 +: 32])", idxText)},
			Ports:  []ast.PortConn{{Port: "w", Net: fmt.Sprintf("t%d[%s]", level, varName)}},
		}
		stmt := &ast.ForGen{Var: varName, Label: label, Init: init, Cond: cond, Update: update, Body: []ast.Stmt{inst}}
		return stmt, outputs, n
	}

	innerStmt, innerOutputs, innerN := g.buildLevel(level + 1)

	wireDecl := &ast.Custom{Text: func(ind int) string {
		return fmt.Sprintf("%swire [31:0] t%d [0:%d];", indent(ind), level+1, innerN-1)
	}}

	arms := make([]ast.CaseArm, n)
	outputs := make([]uint32, n)
	env := &ast.Env{Values: innerOutputs}
	for i := 0; i < n; i++ {
		val := start + i
		if dec {
			val = start - i
		}
		op := ast.OpAdd
		if randsrc.Bool(g.src) {
			op = ast.OpXor
		}
		operands := make([]ast.Expr, innerN)
		for k := 0; k < innerN; k++ {
			operands[k] = &ast.WireRef{Name: fmt.Sprintf("t%d", level+1), Index: k, HasIndex: true}
		}
		reduction := &ast.BinaryTree{Op: op, Operands: operands}
		v, _ := reduction.Eval(env)
		outputs[i] = v
		assign := &ast.Assign{LHS: fmt.Sprintf("t%d[%s]", level, varName), RHS: reduction}
		arms[i] = ast.CaseArm{
			Label: &ast.Literal{Value: uint32(val), Symbol: fmt.Sprintf("%d", val)},
			Body:  []ast.Stmt{assign},
		}
	}
	caseStmt := &ast.CaseGen{Selector: &ast.WireRef{Name: varName}, Arms: arms}

	stmt := &ast.ForGen{
		Var: varName, Label: label, Init: init, Cond: cond, Update: update,
		Body: []ast.Stmt{wireDecl, innerStmt, caseStmt},
	}
	return stmt, outputs, n
}
