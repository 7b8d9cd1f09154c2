package rope

import "github.com/dnarope/endo/internal/symbol"

// ChunkIterator walks the leaves of a Rope left to right without
// flattening the whole tree into one buffer. It is the persistent
// equivalent of texere's chunked string iteration, specialized to
// fixed-capacity symbol leaves: each Next() exposes one leaf's backing
// slice directly, so a caller that only needs to scan (such as the
// matcher's Search, through Iter) touches each symbol exactly once.
type ChunkIterator struct {
	leaves []*leafNode
	idx    int
}

// Chunks returns a ChunkIterator over the whole Rope.
func (r *Rope) Chunks() *ChunkIterator {
	it := &ChunkIterator{}
	if r.root != nil && r.len > 0 {
		collectLeaves(r.root, &it.leaves)
	}
	return it
}

// collectLeaves appends the leaves of n, in logical order, to *out.
func collectLeaves(n node, out *[]*leafNode) {
	switch t := n.(type) {
	case *leafNode:
		*out = append(*out, t)
	case *internalNode:
		collectLeaves(t.left, out)
		collectLeaves(t.right, out)
	}
}

// Next advances to the next leaf, returning false when exhausted.
func (it *ChunkIterator) Next() bool {
	if it.idx >= len(it.leaves) {
		return false
	}
	it.idx++
	return true
}

// Current returns the symbols of the leaf Next() just advanced to.
func (it *ChunkIterator) Current() []symbol.Symbol {
	if it.idx == 0 || it.idx > len(it.leaves) {
		return nil
	}
	return it.leaves[it.idx-1].data
}

// Iterator walks individual symbols in logical order.
type Iterator struct {
	chunks  *ChunkIterator
	current []symbol.Symbol
	offset  int
}

// Iter returns a per-symbol Iterator over the whole Rope.
func (r *Rope) Iter() *Iterator {
	return &Iterator{chunks: r.Chunks()}
}

// Next returns the next symbol and true, or the zero Symbol and false once
// the Rope is exhausted.
func (it *Iterator) Next() (symbol.Symbol, bool) {
	for it.offset >= len(it.current) {
		if !it.chunks.Next() {
			return 0, false
		}
		it.current = it.chunks.Current()
		it.offset = 0
	}
	s := it.current[it.offset]
	it.offset++
	return s, true
}
