package ast

import (
	"fmt"
	"strings"
)

// Stmt is any node that can be emitted as Verilog source text at a given
// indent level. Statements are never evaluated by the oracle directly:
// generators track expected values alongside construction and consult
// Expr.Eval only where a statement embeds one (Assign.RHS, generate
// conditions).
type Stmt interface {
	Emit(indent int) string
}

func pad(indent int) string { return strings.Repeat("  ", indent) }

// Assign is a continuous assignment: `assign LHS = RHS;`.
type Assign struct {
	LHS string
	RHS Expr
}

func (a *Assign) Emit(indent int) string {
	return fmt.Sprintf("%sassign %s = %s;", pad(indent), a.LHS, a.RHS.Emit())
}

// PortConn is one (port name, connected net) pair in a module instance's
// port list.
type PortConn struct {
	Port string
	Net  string
}

// Instance is a module instantiation, with optional `#(...)` parameter
// overrides and an ordered port connection list. An instance with no ports
// emits `name inst();` (used by the hierarchy generator, whose children are
// observed only through hierarchical names, never direct connections).
type Instance struct {
	Module string
	Inst   string
	Params []string
	Ports  []PortConn
}

func (in *Instance) Emit(indent int) string {
	var b strings.Builder
	b.WriteString(pad(indent))
	b.WriteString(in.Module)
	if len(in.Params) > 0 {
		b.WriteString(" #(")
		b.WriteString(strings.Join(in.Params, ", "))
		b.WriteString(")")
	}
	b.WriteString(" ")
	b.WriteString(in.Inst)
	b.WriteString("(")
	conns := make([]string, len(in.Ports))
	for i, p := range in.Ports {
		conns[i] = fmt.Sprintf(".%s(%s)", p.Port, p.Net)
	}
	b.WriteString(strings.Join(conns, ", "))
	b.WriteString(");")
	return b.String()
}

// ForGen is a `for`-generate block. Var/Label identify the induction
// variable and generate-block label; Init/Cond/Update are held as opaque
// emitted text because they encode direction-dependent forms (increment vs.
// decrement) the oracle never needs to re-derive — the generator tracks the
// equivalent numeric sequence separately for evaluation.
type ForGen struct {
	Var    string
	Label  string
	Init   string
	Cond   string
	Update string
	Body   []Stmt
}

func (f *ForGen) Emit(indent int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%sfor (%s = %s; %s; %s = %s) begin : %s\n",
		pad(indent), f.Var, f.Init, f.Cond, f.Var, f.Update, f.Label)
	for _, s := range f.Body {
		b.WriteString(s.Emit(indent + 1))
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "%send", pad(indent))
	return b.String()
}

// IfGen is an `if`-generate block with an optional else branch.
type IfGen struct {
	Cond Expr
	Then []Stmt
	Else []Stmt
}

func (ig *IfGen) Emit(indent int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%sif (%s) begin\n", pad(indent), ig.Cond.Emit())
	for _, s := range ig.Then {
		b.WriteString(s.Emit(indent + 1))
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "%send", pad(indent))
	if ig.Else != nil {
		b.WriteString(" else begin\n")
		for _, s := range ig.Else {
			b.WriteString(s.Emit(indent + 1))
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%send", pad(indent))
	}
	return b.String()
}

// CaseArm is one labeled arm of a `case`-generate block.
type CaseArm struct {
	Label Expr
	Body  []Stmt
}

// CaseGen is a `case`-generate block over a selector expression, with an
// ordered list of arms and an optional default arm.
type CaseGen struct {
	Selector Expr
	Arms     []CaseArm
	Default  []Stmt
}

func (c *CaseGen) Emit(indent int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%scase (%s)\n", pad(indent), c.Selector.Emit())
	for _, arm := range c.Arms {
		fmt.Fprintf(&b, "%s%s: begin\n", pad(indent+1), arm.Label.Emit())
		for _, s := range arm.Body {
			b.WriteString(s.Emit(indent + 2))
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%send\n", pad(indent+1))
	}
	if c.Default != nil {
		fmt.Fprintf(&b, "%sdefault: begin\n", pad(indent+1))
		for _, s := range c.Default {
			b.WriteString(s.Emit(indent + 2))
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%send\n", pad(indent+1))
	}
	fmt.Fprintf(&b, "%sendcase", pad(indent))
	return b.String()
}

// Custom is the escape hatch for Verilog text the oracle never inspects:
// declarations, defparam statements, loop headers folded into a single
// line, and anything else that has no evaluable counterpart. Text is
// produced lazily from the given indent so the closure can reuse Emit's
// own padding convention.
type Custom struct {
	Text func(indent int) string
}

func (c *Custom) Emit(indent int) string { return c.Text(indent) }
