package rope

// Leaf capacity constants, fixed by the spec rather than tunable: no leaf
// holds more than MaxLeaf symbols, and FromSymbols builds leaves of at
// least MinLeaf symbols except possibly the last (Subseq and Concat do not
// re-split or merge undersized edge leaves; see node.go). MaxLeaf is chosen so a leaf's backing array stays comfortably
// in cache during the hot inner scans (pattern Base/Skip/Search all walk a
// handful of leaves at a time); MinLeaf is MaxLeaf/2-1 so that splitting a
// leaf in two during rebalancing never produces an undersized remainder.
const (
	MaxLeaf = 1024
	MinLeaf = MaxLeaf/2 - 1
)

// maxImbalance bounds how far height(left) and height(right) may drift
// apart before concatNode rebalances. A height-balanced (AVL-style) rope
// keeps every operation at O(log n) regardless of how skewed the sequence
// of Concat calls is — which matters here because Replacer.Replace calls
// Concat on every successful step, often prepending a small freshly-built
// prefix onto an otherwise untouched multi-megabyte sequence.
const maxImbalance = 1
