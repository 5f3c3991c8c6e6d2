package hiergen

import (
	"fmt"
	"strings"

	"github.com/funvibe/veridiff/internal/ast"
	"github.com/funvibe/veridiff/internal/loopgen"
	"github.com/funvibe/veridiff/internal/randsrc"
)

// Result is the (Verilog, oracle) pair produced by one call to Generate.
// Verilog concatenates every module text in the tree, bottom-up (leaves
// first, root last), plus const_block when any leaf needed it.
type Result struct {
	ModuleName string
	Verilog    string
	Oracle     uint32
}

// Generator is one random draw sequence bound to a Config.
type Generator struct {
	cfg Config
	src randsrc.Source

	modules     []string
	emitted     map[string]bool
	nodeCounter int
	leafCounter int
}

// New returns a Generator seeded from cfg.Seed.
func New(cfg Config) *Generator {
	return &Generator{cfg: cfg, src: randsrc.NewSeeded(cfg.Seed)}
}

// NewWithSource returns a Generator drawing from an explicit Source.
func NewWithSource(cfg Config, src randsrc.Source) *Generator {
	return &Generator{cfg: cfg, src: src}
}

func indent(n int) string { return strings.Repeat("  ", n) }

// Generate builds one design rooted at a module named topName.
func (g *Generator) Generate(topName string) *Result {
	g.modules = nil
	g.emitted = map[string]bool{}
	g.nodeCounter = 0
	g.leafCounter = 0

	root := g.build(g.cfg.Depth, nil, topName, true)
	return &Result{ModuleName: topName, Verilog: strings.Join(g.modules, "\n\n"), Oracle: root.constVal}
}

func (g *Generator) newModName() string {
	g.nodeCounter++
	return fmt.Sprintf("m%d", g.nodeCounter)
}

func (g *Generator) addModule(text string) {
	if g.emitted[text] {
		return
	}
	g.emitted[text] = true
	g.modules = append(g.modules, text)
}

func (g *Generator) build(depthRemaining int, ancestry []string, forcedName string, isRoot bool) *node {
	if depthRemaining <= 0 {
		return g.buildLeaf(ancestry, forcedName, isRoot)
	}
	return g.buildInternal(depthRemaining, ancestry, forcedName, isRoot)
}

func outPortName(isRoot bool) string {
	if isRoot {
		return "result"
	}
	return "out"
}

// buildLeaf builds a leaf node: a plain constant (possibly parameterized,
// under Defparam), or — if EnableBigGen and a Bernoulli(BigGenProb) draw
// succeeds — a wrapper around an embedded loop-generator submodule.
func (g *Generator) buildLeaf(ancestry []string, forcedName string, isRoot bool) *node {
	name := forcedName
	if name == "" {
		name = g.newModName()
	}
	out := outPortName(isRoot)
	n := &node{modName: name, leaf: true}

	if g.cfg.EnableBigGen && randsrc.BoolProb(g.src, g.cfg.BigGenProb) {
		n.embeddedGen = true
		g.leafCounter++
		loopModName := fmt.Sprintf("lg%d", g.leafCounter)

		// A small, fixed-shape embedded config: the embedded submodule only
		// needs to be a legal, evaluable design of its own, not another
		// knob surface — spec.md doesn't prescribe its shape, only that it
		// be "a standalone module and its oracle value".
		lc := loopgen.Config{
			Seed: int64(randsrc.Uint32(g.src)), Depth: 1,
			MinStart: 0, MaxStart: 0, MinIter: 2, MaxIter: 4, RandomUpdate: true,
		}
		lg := loopgen.NewWithSource(lc, g.src)
		res := lg.Generate(loopModName)
		if res.UsesConstBlock {
			g.addModule(ast.ConstBlock)
		}
		g.addModule(res.Verilog)

		n.embeddedModule = loopModName
		n.constVal = res.Oracle

		mod := &ast.Module{
			Name:  name,
			Ports: []string{fmt.Sprintf("output [31:0] %s", out)},
			Body: []ast.Stmt{
				&ast.Custom{Text: func(ind int) string { return fmt.Sprintf("%swire [31:0] w_result;", indent(ind)) }},
				&ast.Instance{Module: loopModName, Inst: "lg", Ports: []ast.PortConn{{Port: "result", Net: "w_result"}}},
				&ast.Assign{LHS: out, RHS: &ast.WireRef{Name: "w_result"}},
			},
		}
		g.addModule(mod.Emit())
		return n
	}

	val := randsrc.Uint32(g.src)
	n.constVal = val

	var mod *ast.Module
	if g.cfg.Defparam {
		mod = &ast.Module{
			Name:   name,
			Params: []string{fmt.Sprintf("parameter VALUE = 32'h%08x", val)},
			Ports:  []string{fmt.Sprintf("output [31:0] %s", out)},
			Body:   []ast.Stmt{&ast.Assign{LHS: out, RHS: &ast.WireRef{Name: "VALUE"}}},
		}
	} else {
		mod = &ast.Module{
			Name:  name,
			Ports: []string{fmt.Sprintf("output [31:0] %s", out)},
			Body:  []ast.Stmt{&ast.Assign{LHS: out, RHS: &ast.Literal{Value: val}}},
		}
	}
	g.addModule(mod.Emit())
	return n
}

// buildInternal builds a module that instantiates u children and
// reduces a random selection of its own reachable leaf paths into its
// output ("result" at root, "out" elsewhere).
func (g *Generator) buildInternal(depthRemaining int, ancestry []string, forcedName string, isRoot bool) *node {
	name := forcedName
	if name == "" {
		name = g.newModName()
	}
	out := outPortName(isRoot)

	numChildren := randsrc.Range(g.src, g.cfg.MinChild, g.cfg.MaxChild)
	children := make([]*node, numChildren)
	for i := 0; i < numChildren; i++ {
		instName := fmt.Sprintf("c%d", i)
		childAncestry := append(append([]string{}, ancestry...), instName)
		child := g.build(depthRemaining-1, childAncestry, "", false)
		child.instName = instName
		children[i] = child
	}
	n := &node{modName: name, children: children}

	leaves := collectLeafRefs(n)

	bodyStmts := make([]ast.Stmt, 0, len(children)+4)
	for _, c := range children {
		bodyStmts = append(bodyStmts, &ast.Instance{Module: c.modName, Inst: c.instName})
	}

	// Defparam override: pick one plain (non-embedded) leaf, draw a new
	// value, and mutate the live node *before* this node's own reduction
	// is built, so the oracle reflects the override (spec.md §4.3).
	if isRoot && g.cfg.Defparam {
		var plain []leafRef
		for _, lr := range leaves {
			if !lr.target.embeddedGen {
				plain = append(plain, lr)
			}
		}
		if len(plain) > 0 {
			pick := plain[randsrc.Range(g.src, 0, len(plain)-1)]
			newVal := randsrc.Uint32(g.src)
			pick.target.constVal = newVal
			path := strings.TrimSuffix(pick.path, ".out")
			bodyStmts = append(bodyStmts, &ast.Custom{Text: func(ind int) string {
				return fmt.Sprintf("%sdefparam %s.VALUE = 32'h%08x;", indent(ind), path, newVal)
			}})
		}
	}

	effMax := len(leaves)
	k := effMax
	if effMax >= 2 {
		k = randsrc.Range(g.src, 2, effMax)
	}
	idxs := pickDistinct(g.src, len(leaves), k)
	chosen := make([]leafRef, k)
	for i, idx := range idxs {
		chosen[i] = leaves[idx]
	}

	// Alias declarations (experimental, gated by Config.Alias): each chosen leaf
	// gets a real `alias` statement binding a fresh local name to its
	// hierarchical path (spec.md §3, "alias: emit alias declarations").
	// The aliased name is never itself declared as a net, so this may be
	// illegal Verilog — that is the point: it exercises elaboration-time
	// name resolution the same way RelativeUp/RootPrefix paths do, and a
	// tool rejecting it is an expected crash, not a bug to suppress.
	if g.cfg.Alias {
		for i, lr := range chosen {
			path := lr.path
			aliasName := fmt.Sprintf("alias_%s_%d", name, i)
			bodyStmts = append(bodyStmts, &ast.Custom{Text: func(ind int) string {
				return fmt.Sprintf("%salias %s = %s;", indent(ind), aliasName, path)
			}})
		}
	}

	includeLiteral := randsrc.Bool(g.src)
	var litVal uint32
	if includeLiteral {
		litVal = randsrc.Uint32(g.src)
	}

	op := pickOp(g.src)
	depth := len(ancestry)

	emitOperands := make([]ast.Expr, 0, k+1)
	oracleVals := make([]uint32, 0, k+1)
	for _, lr := range chosen {
		qp := qualify(lr.path, ancestry, depth, g.cfg, g.src)
		emitOperands = append(emitOperands, &ast.WireRef{Name: qp})
		oracleVals = append(oracleVals, lr.target.constVal)
	}
	if includeLiteral {
		emitOperands = append(emitOperands, &ast.Literal{Value: litVal})
		oracleVals = append(oracleVals, litVal)
	}

	reduction := &ast.BinaryTree{Op: op, Operands: emitOperands}
	n.constVal = foldVals(op, oracleVals)

	bodyStmts = append(bodyStmts, &ast.Assign{LHS: out, RHS: reduction})

	mod := &ast.Module{
		Name:  name,
		Ports: []string{fmt.Sprintf("output [31:0] %s", out)},
		Body:  bodyStmts,
	}
	g.addModule(mod.Emit())
	return n
}

func pickOp(src randsrc.Source) ast.BinOp {
	ops := []ast.BinOp{ast.OpAdd, ast.OpOr, ast.OpAnd, ast.OpXor}
	return ops[src.Intn(len(ops))]
}

// pickDistinct draws k distinct indices from [0,n) via partial Fisher-Yates.
func pickDistinct(src randsrc.Source, n, k int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	for i := 0; i < k && i < n; i++ {
		j := i + src.Intn(n-i)
		idx[i], idx[j] = idx[j], idx[i]
	}
	return idx[:k]
}

// foldVals folds vals left-associatively under op, reusing ast.BinaryTree's
// own operator semantics so the oracle and the emitted expression can never
// drift apart.
func foldVals(op ast.BinOp, vals []uint32) uint32 {
	operands := make([]ast.Expr, len(vals))
	for i, v := range vals {
		operands[i] = &ast.Literal{Value: v}
	}
	v, _ := (&ast.BinaryTree{Op: op, Operands: operands}).Eval(nil)
	return v
}
