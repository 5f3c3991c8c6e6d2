package ast

import "strings"

// Module is a single Verilog module: a name, an ordered list of port
// declarations (held as opaque text — `input`/`output` direction and width
// syntax has no oracle counterpart), and an ordered body.
type Module struct {
	Name  string
	Params []string // optional `#(parameter ...)` texts, e.g. leaf VALUE overrides
	Ports []string
	Body  []Stmt
}

// Emit renders `module name #(params) (...); body endmodule`.
func (m *Module) Emit() string {
	var b strings.Builder
	b.WriteString("module ")
	b.WriteString(m.Name)
	if len(m.Params) > 0 {
		b.WriteString(" #(")
		b.WriteString(strings.Join(m.Params, ", "))
		b.WriteString(")")
	}
	b.WriteString(" (")
	b.WriteString(strings.Join(m.Ports, ", "))
	b.WriteString(");\n")
	for _, s := range m.Body {
		b.WriteString(s.Emit(1))
		b.WriteString("\n")
	}
	b.WriteString("endmodule")
	return b.String()
}

// ConstBlock is the helper module emitted once per file when any generator
// needs a parameterized pass-through constant:
// `const_block #(parameter VALUE=32'h0)(output [31:0] w)`.
const ConstBlock = "module const_block #(parameter VALUE = 32'h0) (output [31:0] w);\n" +
	"  assign w = VALUE;\n" +
	"endmodule"

// ConstBlockName is the module name used when instantiating ConstBlock.
const ConstBlockName = "const_block"
