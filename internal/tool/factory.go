package tool

import (
	"fmt"
	"path/filepath"
)

// New builds a Tool by name, rooted at dir — the exact workdir the
// returned Tool owns for its whole lifetime. Callers are responsible for
// handing New a dedicated, per-iteration, per-tool directory (spec.md
// §4.4: "the workdir is dedicated per-iteration, per-tool") — typically
// session.Session.ToolDir(iteration, name) — and for calling New again
// for each new iteration rather than reusing one Tool instance across
// iterations.
// CompareSim is always composed from an Icarus/ModelSim pair — the spec
// leaves the child pairing unspecified beyond "two simulator backends",
// and RTL-only simulators are the natural choice since CompareSim never
// needs a synthesized netlist.
func New(name, dir string) (Tool, error) {
	switch name {
	case "quartus":
		return &Quartus{WorkDir: dir}, nil
	case "quartuspro":
		return &QuartusPro{WorkDir: dir}, nil
	case "vivado":
		return &Vivado{WorkDir: dir}, nil
	case "icarus":
		return &Icarus{WorkDir: dir}, nil
	case "modelsim":
		return &ModelSim{WorkDir: dir}, nil
	case "comparesim":
		return &CompareSim{
			A: &Icarus{WorkDir: filepath.Join(dir, "a")},
			B: &ModelSim{WorkDir: filepath.Join(dir, "b")},
		}, nil
	default:
		return nil, fmt.Errorf("tool: unknown backend %q", name)
	}
}
