package rope

import "github.com/dnarope/endo/internal/symbol"

// subseqNode returns the subtree covering the half-open range [lo, hi) of
// n, assuming 0 <= lo <= hi <= n.length(). Nodes entirely inside the range
// are shared by reference with the original tree; only the leaves straddled
// by lo or hi are copied (sliced) into fresh, possibly undersized, leaves.
// This is what makes Subseq persistent and cheap: a Subseq of a
// multi-megabyte rope touches O(log n) nodes, not O(n).
func subseqNode(n node, lo, hi int) node {
	if lo >= hi {
		return nil
	}
	switch t := n.(type) {
	case *leafNode:
		if lo == 0 && hi == len(t.data) {
			return t
		}
		return newLeaf(t.data[lo:hi:hi])
	case *internalNode:
		if hi <= t.leftLen {
			return subseqNode(t.left, lo, hi)
		}
		if lo >= t.leftLen {
			return subseqNode(t.right, lo-t.leftLen, hi-t.leftLen)
		}
		left := subseqNode(t.left, lo, t.leftLen)
		right := subseqNode(t.right, 0, hi-t.leftLen)
		return concatNode(left, right)
	}
	return nil
}

// Subseq returns the persistent slice [lo, hi) of symbols. An inverted or
// empty range (hi <= lo) yields the empty Rope; hi is clamped to Len() so
// an out-of-range upper bound saturates instead of panicking.
func (r *Rope) Subseq(lo, hi int) *Rope {
	n := r.Len()
	if lo < 0 {
		lo = 0
	}
	if hi > n {
		hi = n
	}
	if lo >= hi {
		return Empty()
	}
	sub := subseqNode(r.root, lo, hi)
	return &Rope{root: sub, len: hi - lo}
}

// Symbols flattens the range [lo, hi) into a freshly allocated slice. It
// exists for the decoders' short prefix peeks and for the rare full-sequence
// materialization (CLI output, golden-test comparison); it is never called
// on the matcher/replacer hot path for anything but small ranges.
func (r *Rope) Symbols(lo, hi int) []symbol.Symbol {
	sub := r.Subseq(lo, hi)
	if sub.len == 0 {
		return nil
	}
	return appendSymbols(make([]symbol.Symbol, 0, sub.len), sub.root)
}
