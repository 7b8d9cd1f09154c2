// Package sequence wraps a rope.Rope with a lazily-applied left truncation,
// giving the driver loop a cheap "skip k symbols off the front" operation
// that doesn't pay for a tree rebuild on every single step.
//
// This is the Sequence of spec §3/§4.2, adapted from texere's RopeDocument
// adapter pattern (pkg/rope/document.go) to the fixed-capacity symbol rope
// in package rope instead of texere's rune/grapheme-aware string rope.
package sequence

import (
	"github.com/dnarope/endo/internal/rope"
	"github.com/dnarope/endo/internal/symbol"
)

// Sequence is the live, logically-ordered symbol buffer the interpreter
// rewrites. The zero value is not usable; construct one with New or Empty.
type Sequence struct {
	r       *rope.Rope
	skipped int
}

// Empty returns the zero-length Sequence.
func Empty() Sequence {
	return Sequence{r: rope.Empty()}
}

// New wraps xs into a Sequence. xs is copied (see rope.FromSymbols).
func New(xs []symbol.Symbol) Sequence {
	return Sequence{r: rope.FromSymbols(xs)}
}

// FromText parses s (a string of I/C/F/P characters) into a Sequence.
func FromText(s string) (Sequence, error) {
	xs, err := symbol.Parse(s)
	if err != nil {
		return Sequence{}, err
	}
	return New(xs), nil
}

// Len returns the number of symbols currently live in the sequence (i.e.
// after accounting for any pending skip).
func (s Sequence) Len() int {
	return s.r.Len() - s.skipped
}

// Prefix returns up to the next k symbols without consuming them. Callers
// (the literal and pattern/template decoders) use this for short
// lookaheads, typically 1-3 symbols.
func (s Sequence) Prefix(k int) []symbol.Symbol {
	if k > s.Len() {
		k = s.Len()
	}
	if k <= 0 {
		return nil
	}
	return s.r.Symbols(s.skipped, s.skipped+k)
}

// maxLazySkip bounds how far skipped may run ahead of a physical
// truncation. Spec §4.2: "when skipped exceeds MAX_LEAF, it physically
// materializes the truncation". Tying this to rope.MaxLeaf means the
// deferred arithmetic (s.skipped + i on every Nth/Prefix) never drifts far
// enough to matter, while the overwhelming majority of steps - which skip
// only a handful of symbols - never touch the tree at all.
const maxLazySkip = rope.MaxLeaf

// Skip advances the logical start of the sequence by k symbols. k must not
// exceed Len(). The underlying rope is only actually rebuilt once the
// deferred skip exceeds maxLazySkip; in between, Skip is O(1).
func (s Sequence) Skip(k int) Sequence {
	skipped := s.skipped + k
	if skipped <= maxLazySkip {
		return Sequence{r: s.r, skipped: skipped}
	}
	return Sequence{r: s.r.Subseq(skipped, s.r.Len())}
}

// Nth returns the symbol at logical position i and true, or the zero
// Symbol and false if i is out of range.
func (s Sequence) Nth(i int) (symbol.Symbol, bool) {
	if i < 0 || i >= s.Len() {
		return 0, false
	}
	return s.r.Nth(s.skipped + i)
}

// Subseq returns a fresh Sequence over the logical range [lo, hi). An
// inverted or empty range yields the empty Sequence; hi saturates to
// Len().
func (s Sequence) Subseq(lo, hi int) Sequence {
	n := s.Len()
	if hi > n {
		hi = n
	}
	if lo < 0 {
		lo = 0
	}
	if lo >= hi {
		return Empty()
	}
	return Sequence{r: s.r.Subseq(s.skipped+lo, s.skipped+hi)}
}

// Concat returns a new Sequence equal to s followed by other, over the
// logically live parts of both.
func (s Sequence) Concat(other Sequence) Sequence {
	return Sequence{r: rope.Concat(s.live(), other.live())}
}

// live materializes the logically-visible part of the rope (i.e. applies
// any pending skip) so Concat never reintroduces already-skipped symbols.
func (s Sequence) live() *rope.Rope {
	if s.skipped == 0 {
		return s.r
	}
	return s.r.Subseq(s.skipped, s.r.Len())
}

// Iter returns an iterator over the logically live symbols, in order.
func (s Sequence) Iter() *rope.Iterator {
	return s.live().Iter()
}

// Text renders the whole live sequence as an I/C/F/P string. Diagnostic
// use only (CLI output, golden-test comparisons); never called on the
// decode/match/replace hot path.
func (s Sequence) Text() string {
	return s.live().Text()
}

// Clone returns s unchanged; Sequence values are already cheap,
// structurally-shared snapshots because the underlying rope is
// persistent. Exposed so callers (the checkpoint sink) can express intent
// explicitly.
func (s Sequence) Clone() Sequence {
	return s
}
