package rope

import "github.com/dnarope/endo/internal/symbol"

// concatNode joins two subtrees into one, persistently, keeping the result
// height-balanced in a relaxed AVL sense: concatNode descends when the two
// heights differ by more than maxImbalance, but rebalance only rotates when
// one side is more than maxImbalance+1 taller, so sibling heights in the
// result can differ by up to maxImbalance+1. This is the standard "join"
// operation for balanced trees: descend into whichever side is taller, join with the short side's
// matching child, then rebuild the spine with rotations as needed. It keeps
// Concat at O(log n) no matter how lopsided the two inputs are, which a
// naive "just make a new internal node" version would not: repeatedly
// concatenating a small freshly-built prefix onto one huge sequence (the
// Replacer's steady-state workload) would otherwise grow an O(steps)-deep
// left spine.
func concatNode(a, b node) node {
	if a == nil || a.length() == 0 {
		return b
	}
	if b == nil || b.length() == 0 {
		return a
	}

	// Two small leaves that still fit in one leaf: merge outright instead
	// of creating a branch at all.
	if al, ok := a.(*leafNode); ok {
		if bl, ok := b.(*leafNode); ok && len(al.data)+len(bl.data) <= MaxLeaf {
			merged := make([]symbol.Symbol, 0, len(al.data)+len(bl.data))
			merged = append(merged, al.data...)
			merged = append(merged, bl.data...)
			return newLeaf(merged)
		}
	}

	ha, hb := a.height(), b.height()
	switch {
	case ha > hb+maxImbalance:
		ai := a.(*internalNode)
		newRight := concatNode(ai.right, b)
		return rebalance(ai.left, newRight)
	case hb > ha+maxImbalance:
		bi := b.(*internalNode)
		newLeft := concatNode(a, bi.left)
		return rebalance(newLeft, bi.right)
	default:
		return newInternal(a, b)
	}
}

// rebalance builds an internal node over left/right and restores the height
// invariant with a single or double rotation if the immediate join left one
// side too tall. This is the AVL rebalancing step specialized to ropes: the
// "value" carried at each node is a subtree, and rotations only ever touch
// the three nodes involved (no data copying).
func rebalance(left, right node) node {
	switch {
	case nodeHeight(left) > nodeHeight(right)+maxImbalance+1:
		li := left.(*internalNode)
		if nodeHeight(li.left) >= nodeHeight(li.right) {
			return rotateRight(newInternal(left, right))
		}
		return rotateRight(newInternal(rotateLeft(left), right))
	case nodeHeight(right) > nodeHeight(left)+maxImbalance+1:
		ri := right.(*internalNode)
		if nodeHeight(ri.right) >= nodeHeight(ri.left) {
			return rotateLeft(newInternal(left, right))
		}
		return rotateLeft(newInternal(left, rotateRight(right)))
	default:
		return newInternal(left, right)
	}
}

// rotateLeft performs a standard tree rotation: n.right becomes the new
// root, n becomes its left child.
func rotateLeft(n node) node {
	ni := n.(*internalNode)
	r := ni.right.(*internalNode)
	newLeft := newInternal(ni.left, r.left)
	return newInternal(newLeft, r.right)
}

// rotateRight performs a standard tree rotation: n.left becomes the new
// root, n becomes its right child.
func rotateRight(n node) node {
	ni := n.(*internalNode)
	l := ni.left.(*internalNode)
	newRight := newInternal(l.right, ni.right)
	return newInternal(l.left, newRight)
}
