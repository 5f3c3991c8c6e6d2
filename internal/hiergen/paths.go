package hiergen

import (
	"strings"

	"github.com/funvibe/veridiff/internal/randsrc"
)

// Normalise strips the qualifiers a hierarchical reference may have been
// dressed up with — a "$root.tb.top." absolute prefix, a bare leading
// "top.", or a leading ".." relative-up segment — back to the plain dotted
// path. It is idempotent: Normalise(Normalise(p)) == Normalise(p), since
// the stripping repeats until no qualifier prefix is left (spec.md §8,
// "path normalization idempotence").
func Normalise(p string) string {
	for {
		q := strings.TrimPrefix(p, "$root.")
		q = strings.TrimPrefix(q, "tb.top.")
		q = strings.TrimPrefix(q, "top.")
		for strings.HasPrefix(q, "../") {
			q = strings.TrimPrefix(q, "../")
		}
		q = strings.TrimPrefix(q, "..")
		if q == p {
			return p
		}
		p = q
	}
}

// qualify rewrites a leaf path relative to the node under construction
// (which sits at the given depth, with the given dotted ancestry of
// instance names from the root) into one of the three addressing styles of
// spec.md §4.3: plain, $root-absolute, or relative-up. RelativeUp is never
// applied at the root (depth 0) since there is nothing to go "up" from.
func qualify(relPath string, ancestry []string, depth int, cfg Config, src randsrc.Source) string {
	if cfg.RootPrefix && randsrc.BoolProb(src, 0.33) {
		if len(ancestry) == 0 {
			return "$root.tb.top." + relPath
		}
		return "$root.tb.top." + strings.Join(ancestry, ".") + "." + relPath
	}
	if cfg.RelativeUp && depth >= 1 && randsrc.BoolProb(src, 0.5) {
		if idx := strings.IndexByte(relPath, '.'); idx >= 0 {
			return ".." + relPath[idx:]
		}
		return ".."
	}
	return relPath
}
