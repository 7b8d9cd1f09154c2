// Package rope implements a persistent balanced tree of fixed-capacity DNA
// symbol leaves.
//
// # Why a rope
//
// The driver loop (see package interpreter) skips millions of symbols off
// the front of the live sequence and prepends freshly built replacement
// text, over and over, for every step of a run that may touch gigabytes of
// data. A contiguous buffer would have to shift or reallocate on every one
// of those operations; a rope keeps front-trim and concatenation at
// O(log n) by sharing untouched subtrees between the old and new versions
// of the sequence.
//
// # Persistence
//
// Rope is immutable: every operation (Subseq, Concat) returns a new Rope,
// sharing structure with its inputs wherever the edited range allows it.
// Cloning a Rope is a zero-cost reference copy — see Clone — which is what
// lets a checkpoint sink or a stepwise debug viewer (spec §5) hold onto a
// snapshot of the sequence after a step without synchronizing with the
// driver's subsequent mutations: there aren't any, a "mutation" always
// produces a new value.
//
// # Leaf capacity
//
// Leaves hold at most MaxLeaf symbols. FromSymbols builds leaves of at least
// MinLeaf symbols (except possibly the rightmost leaf); Subseq and Concat
// can leave shorter leaves at their edges and join points. Keeping leaves at this size means the hot
// inner scans done by the pattern matcher (Base/Skip/Search) stay inside
// one or two leaves' worth of memory at a time, and Concat's leaf-merge
// fast path (see concatNode) can outright fuse two small leaves instead of
// branching.
package rope

import "github.com/dnarope/endo/internal/symbol"

// Rope is an immutable, persistent sequence of Symbols.
type Rope struct {
	root node
	len  int
}

// Empty returns the zero-length Rope.
func Empty() *Rope {
	return &Rope{root: newLeaf(nil), len: 0}
}

// FromSymbols builds a Rope holding exactly xs. For |xs| <= MaxLeaf the
// result is a single leaf (possibly empty). Larger inputs are split
// greedily: every non-final leaf takes min(MaxLeaf, remaining-MinLeaf)
// symbols, so the last leaf is never left undersized by an unlucky
// division — this is the same arithmetic the spec's §4.1 from_slice
// contract names.
//
// xs is copied; the caller's backing array is never aliased, so mutating
// xs after this call has no effect on the returned Rope.
func FromSymbols(xs []symbol.Symbol) *Rope {
	if len(xs) == 0 {
		return Empty()
	}
	owned := make([]symbol.Symbol, len(xs))
	copy(owned, xs)

	if len(owned) <= MaxLeaf {
		return &Rope{root: newLeaf(owned), len: len(owned)}
	}

	var leaves []node
	rest := owned
	for len(rest) > 0 {
		split := len(rest)
		if split > MaxLeaf {
			split = MaxLeaf
			if remaining := len(rest) - split; remaining < MinLeaf {
				split = len(rest) - MinLeaf
			}
		}
		leaves = append(leaves, newLeaf(rest[:split:split]))
		rest = rest[split:]
	}
	return &Rope{root: buildBalanced(leaves), len: len(owned)}
}

// buildBalanced assembles a list of leaves (in logical order) into a
// height-balanced tree by simple divide and conquer. Because the list's
// length is known up front this produces a tree of height ceil(log2(n))
// directly, without needing concatNode's rotation machinery.
func buildBalanced(leaves []node) node {
	switch len(leaves) {
	case 0:
		return newLeaf(nil)
	case 1:
		return leaves[0]
	default:
		mid := len(leaves) / 2
		return newInternal(buildBalanced(leaves[:mid]), buildBalanced(leaves[mid:]))
	}
}

// Len returns the total number of symbols in the Rope.
func (r *Rope) Len() int {
	if r == nil {
		return 0
	}
	return r.len
}

// Nth returns the symbol at position i and true, or the zero Symbol and
// false if i is out of range.
func (r *Rope) Nth(i int) (symbol.Symbol, bool) {
	if r == nil || i < 0 || i >= r.len {
		return 0, false
	}
	return nth(r.root, i), true
}

// Clone returns r unchanged. Because Rope is immutable and persistent,
// "cloning" never needs to copy anything — every Rope value is already
// safe to hold onto indefinitely while the tree it was built from keeps
// being sliced and concatenated elsewhere.
func (r *Rope) Clone() *Rope {
	return r
}

// Concat returns a new Rope equal to a followed by b. Both a and b are
// left unchanged; the result shares structure with both wherever the
// height-balancing join (see concatNode) doesn't need to touch a subtree.
func Concat(a, b *Rope) *Rope {
	if a == nil || a.Len() == 0 {
		if b == nil {
			return Empty()
		}
		return b
	}
	if b == nil || b.Len() == 0 {
		return a
	}
	return &Rope{root: concatNode(a.root, b.root), len: a.len + b.len}
}

// Text renders the whole Rope as an I/C/F/P string. This is for
// diagnostics (CLI output, golden-test failure messages) only; it is
// never called from the decode/match/replace hot path.
func (r *Rope) Text() string {
	return symbol.Join(r.Symbols(0, r.Len()))
}
