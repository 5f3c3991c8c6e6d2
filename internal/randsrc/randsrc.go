// Package randsrc provides the single random-draw seam shared by the loop
// and hierarchy generators, grounded on the teacher's
// tests/fuzz/generators.RandomSource pair: one implementation seeded from
// math/rand for ordinary runs, one that consumes a byte slice so the same
// generator code doubles as a Go-native fuzz target (see internal/fuzzing).
package randsrc

import "math/rand"

// Source abstracts the source of randomness a generator draws from. Every
// generator holds exactly one Source and performs all draws through it, in
// program-text order, so that a fixed seed reproduces an identical draw
// sequence (spec's reproducibility guarantee).
type Source interface {
	Intn(n int) int
	Float64() float64
}

// Rand wraps math/rand.Rand for seeded, ordinary runs.
type Rand struct {
	*rand.Rand
}

// NewSeeded returns a Source deterministically derived from seed.
func NewSeeded(seed int64) Source {
	return &Rand{rand.New(rand.NewSource(seed))}
}

// ByteSource drains a byte slice to answer draws, for replaying a captured
// fuzz corpus entry through the generators deterministically. Exhausted
// sources answer zero, matching the teacher's ByteSource.
type ByteSource struct {
	data []byte
	pos  int
}

// NewByteSource wraps data as a Source.
func NewByteSource(data []byte) *ByteSource {
	return &ByteSource{data: data}
}

func (s *ByteSource) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	if s.pos >= len(s.data) {
		return 0
	}
	v := int(s.data[s.pos])
	s.pos++
	return v % n
}

func (s *ByteSource) Float64() float64 {
	if s.pos >= len(s.data) {
		return 0.0
	}
	v := int(s.data[s.pos])
	s.pos++
	return float64(v) / 255.0
}

// Uint32 draws a full-width 32-bit value by composing two 16-bit draws.
// Source only exposes Intn/Float64 (matching the teacher's seam exactly),
// so this is a package-level helper rather than a Source method.
func Uint32(src Source) uint32 {
	hi := uint32(src.Intn(1 << 16))
	lo := uint32(src.Intn(1 << 16))
	return hi<<16 | lo
}

// Bool draws a fair coin via Intn(2).
func Bool(src Source) bool { return src.Intn(2) == 1 }

// BoolProb draws true with probability p via Float64.
func BoolProb(src Source, p float64) bool { return src.Float64() < p }

// Range draws a uniform int in [lo, hi] inclusive. If lo > hi the bounds
// are swapped, matching spec.md's "min_start>max_start is swapped" edge
// case.
func Range(src Source, lo, hi int) int {
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo + src.Intn(hi-lo+1)
}
