package hiergen

// node is the in-memory hierarchy node used only during construction and
// evaluation (spec.md §3, "Hierarchy node"). A node is either a leaf (no
// children, constVal defined) or internal (children in [minChild,
// maxChild]).
type node struct {
	modName  string // unique Verilog module type name for this node
	instName string // instance name this node is given by its parent ("" for root)
	children []*node

	leaf     bool
	constVal uint32

	embeddedGen    bool   // leaf wraps an embedded loop-generator module
	embeddedModule string // module name of the embedded loop-generator submodule
}

// collectLeafRefs enumerates every leaf reachable below n, in the order
// child 0, child 1, ..., with the dotted instance-name path (relative to n)
// that reaches each one. n itself is never included: when n has no
// children (n is a leaf) the result is empty.
func collectLeafRefs(n *node) []leafRef {
	var out []leafRef
	var walk func(cur *node, prefix []string)
	walk = func(cur *node, prefix []string) {
		if cur.leaf {
			out = append(out, leafRef{path: joinDot(prefix) + ".out", target: cur})
			return
		}
		for _, c := range cur.children {
			walk(c, append(append([]string{}, prefix...), c.instName))
		}
	}
	for _, c := range n.children {
		walk(c, []string{c.instName})
	}
	return out
}

type leafRef struct {
	path   string // dotted path relative to the node under construction, ending in ".out"
	target *node  // the leaf this path reaches, for direct oracle lookup
}

func joinDot(parts []string) string {
	s := ""
	for i, p := range parts {
		if i > 0 {
			s += "."
		}
		s += p
	}
	return s
}
