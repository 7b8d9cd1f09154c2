package rope

import (
	"testing"

	"github.com/dnarope/endo/internal/symbol"
	"github.com/stretchr/testify/require"
)

func syms(s string) []symbol.Symbol {
	xs, err := symbol.Parse(s)
	if err != nil {
		panic(err)
	}
	return xs
}

func TestFromSymbolsLenAndNth(t *testing.T) {
	xs := syms("ICFP")
	r := FromSymbols(xs)
	require.Equal(t, 4, r.Len())
	for i, want := range xs {
		got, ok := r.Nth(i)
		require.True(t, ok)
		require.Equal(t, want, got)
	}
	_, ok := r.Nth(4)
	require.False(t, ok)
}

func TestFromSymbolsEmpty(t *testing.T) {
	r := FromSymbols(nil)
	require.Equal(t, 0, r.Len())
	_, ok := r.Nth(0)
	require.False(t, ok)
}

func TestFromSymbolsLargeSplitsIntoCappedLeaves(t *testing.T) {
	n := MaxLeaf*5 + 17
	xs := make([]symbol.Symbol, n)
	for i := range xs {
		xs[i] = symbol.Symbol(i % 4)
	}
	r := FromSymbols(xs)
	require.Equal(t, n, r.Len())

	it := r.Chunks()
	total := 0
	var leafLens []int
	for it.Next() {
		leaf := it.Current()
		leafLens = append(leafLens, len(leaf))
		total += len(leaf)
	}
	require.Equal(t, n, total)
	for _, l := range leafLens[:len(leafLens)-1] { // every leaf but the last should be well-formed
		require.GreaterOrEqual(t, l, MinLeaf)
		require.LessOrEqual(t, l, MaxLeaf)
	}

	for i, want := range xs {
		got, ok := r.Nth(i)
		require.True(t, ok)
		require.Equal(t, want, got)
	}
}

func TestSubseqBasic(t *testing.T) {
	r := FromSymbols(syms("ICFP"))

	sub := r.Subseq(0, 2)
	require.Equal(t, "IC", symbol.Join(sub.Symbols(0, sub.Len())))

	require.Equal(t, 0, r.Subseq(2, 0).Len())
	require.Equal(t, 0, r.Subseq(2, 2).Len())

	sub = r.Subseq(2, 3)
	require.Equal(t, "F", symbol.Join(sub.Symbols(0, sub.Len())))

	sub = r.Subseq(2, 100)
	require.Equal(t, "FP", symbol.Join(sub.Symbols(0, sub.Len())))

	sub = r.Subseq(4, 100)
	require.Equal(t, 0, sub.Len())
}

func TestSubseqLargeMatchesSlice(t *testing.T) {
	n := MaxLeaf*3 + 101
	xs := make([]symbol.Symbol, n)
	for i := range xs {
		xs[i] = symbol.Symbol(i % 4)
	}
	r := FromSymbols(xs)

	lo, hi := MaxLeaf-10, MaxLeaf*2+55
	sub := r.Subseq(lo, hi)
	require.Equal(t, hi-lo, sub.Len())
	require.Equal(t, xs[lo:hi], sub.Symbols(0, sub.Len()))
}

func TestConcatLengthAndOrder(t *testing.T) {
	a := FromSymbols(syms("IC"))
	b := FromSymbols(syms("FP"))
	c := Concat(a, b)
	require.Equal(t, 4, c.Len())
	require.Equal(t, "ICFP", symbol.Join(c.Symbols(0, c.Len())))

	// originals unaffected
	require.Equal(t, 2, a.Len())
	require.Equal(t, 2, b.Len())
}

func TestConcatWithEmpty(t *testing.T) {
	a := FromSymbols(syms("ICFP"))
	require.Equal(t, a.Len(), Concat(a, Empty()).Len())
	require.Equal(t, a.Len(), Concat(Empty(), a).Len())
	require.Equal(t, 0, Concat(Empty(), Empty()).Len())
}

func TestConcatLargeStaysBalanced(t *testing.T) {
	n := MaxLeaf * 50
	xs := make([]symbol.Symbol, n)
	big := FromSymbols(xs)

	small := FromSymbols(syms("ICFP"))
	joined := big
	for i := 0; i < 2000; i++ {
		joined = Concat(small, joined)
	}
	require.Equal(t, n+2000*4, joined.Len())

	// Height should stay logarithmic, not grow linearly with the number of
	// concatenations; a broken rebalance would blow this bound badly.
	h := joined.root.height()
	require.Less(t, h, 60)

	// Spot check correctness at the new front.
	got, ok := joined.Nth(0)
	require.True(t, ok)
	require.Equal(t, symbol.I, got)
}

func TestIterMatchesSymbols(t *testing.T) {
	xs := syms("ICFPICFPICFP")
	r := FromSymbols(xs)
	it := r.Iter()
	var got []symbol.Symbol
	for {
		s, ok := it.Next()
		if !ok {
			break
		}
		got = append(got, s)
	}
	require.Equal(t, xs, got)
}

func TestCloneSharesStructure(t *testing.T) {
	r := FromSymbols(syms("ICFP"))
	clone := r.Clone()
	require.Same(t, r, clone)
	require.Equal(t, r.Len(), clone.Len())
	require.Equal(t, r.Symbols(0, r.Len()), clone.Symbols(0, clone.Len()))
}

func TestTextRoundTrip(t *testing.T) {
	const s = "ICFPICFPIIIICCFFPP"
	r := FromSymbols(syms(s))
	require.Equal(t, s, r.Text())
}
