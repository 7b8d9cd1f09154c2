// Package match runs a decoded pattern against a sequence, producing the
// capture environment the replacer substitutes into a template, per spec
// §4.6.
//
// Grounded on original_source/src/interpreterv2/match_replace.rs
// (match_pat), with Search upgraded from the original's naive
// sliding-window scan to github.com/coregx/ahocorasick's single-pattern
// automaton (see DESIGN.md).
package match

import (
	"fmt"

	"github.com/coregx/ahocorasick"

	"github.com/dnarope/endo/internal/pattern"
	"github.com/dnarope/endo/internal/sequence"
	"github.com/dnarope/endo/internal/symbol"
)

// Environment is the list of captured subsequences, in the order their
// enclosing Open/Close pairs closed. Index n is referenced by a template's
// Ref{N: n} and Len{N: n} items.
type Environment []sequence.Sequence

// Match walks pat against seq from its front, per spec §4.6: Base
// compares one symbol, Skip advances by a fixed count, Search advances to
// the next occurrence of a literal symbol run, and Open/Close delimit
// captures pushed onto env in closing order. It reports ok=false the
// moment any item fails to match (an unmatched Base, a Skip or Search that
// runs past the end of seq) or if Close executes with no Open pending one.
//
// On success, the returned seq2 is seq with the matched prefix consumed
// (spec §4.6: "the matched region itself is never put in the
// environment — the interpreter still needs to skip past it").
//
// err is non-nil only for an internal invariant violation (wrapping
// ErrInvariant), never for an ordinary failed match: a failed match is
// reported as ok=false, err=nil, exactly like any other pattern that
// simply doesn't fit the sequence in front of it.
func Match(seq sequence.Sequence, pat pattern.Pattern) (env Environment, seq2 sequence.Sequence, ok bool, err error) {
	i := 0
	var stack []int
	for _, item := range pat {
		switch item.Kind {
		case pattern.Base:
			s, found := seq.Nth(i)
			if !found || s != item.Sym {
				return nil, sequence.Sequence{}, false, nil
			}
			i++

		case pattern.Skip:
			i += item.N
			if i > seq.Len() {
				return nil, sequence.Sequence{}, false, nil
			}

		case pattern.Search:
			n, found, serr := search(seq, i, item.S)
			if serr != nil {
				return nil, sequence.Sequence{}, false, serr
			}
			if !found {
				return nil, sequence.Sequence{}, false, nil
			}
			i += n

		case pattern.Open:
			stack = append(stack, i)

		case pattern.Close:
			if len(stack) == 0 {
				return nil, sequence.Sequence{}, false, nil
			}
			start := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			env = append(env, seq.Subseq(start, i))
		}
	}
	return env, seq.Skip(i), true, nil
}

// searchWindow is the first chunk size search tries before widening: a
// quarter of a full rope leaf (rope.MaxLeaf), so the common case (a match
// close to the cursor) never touches the rest of the sequence.
const searchWindow = 256

// search finds the smallest n >= 1 such that the n symbols of seq starting
// at offset i end with target, mirroring the reference find_subseq: it
// returns the offset one past the end of the first occurrence of target
// at or after i, never the offset of its start. target must be non-empty;
// an empty target reports ErrInvariant rather than panicking (spec §9's
// open question on Search(w=[]), resolved in DESIGN.md as an internal-
// invariant violation, never reachable from a well-formed pattern decode,
// but a well-formed *caller* all the same — no program should crash the
// whole process over it).
//
// Unlike the naive approach of materializing the whole seq.Len()-i tail up
// front (unusable at spec §1's scale), this widens a bounded window
// geometrically — doubling from searchWindow — and only pays for copying
// and re-scanning past where the match actually lands. A search that
// matches near the cursor, the overwhelmingly common case, never
// materializes more than a small multiple of the match's own offset; only
// a search with no match (or one right at the far end) ends up scanning
// the whole remainder, which is unavoidable since absence can only be
// confirmed by exhausting the sequence.
func search(seq sequence.Sequence, i int, target []symbol.Symbol) (int, bool, error) {
	if len(target) == 0 {
		return 0, false, fmt.Errorf("%w: search called with empty target", ErrInvariant)
	}

	total := seq.Len() - i
	if total <= 0 {
		return 0, false, nil
	}

	builder := ahocorasick.NewBuilder()
	builder.AddPattern([]byte(symbol.Join(target)))
	auto, err := builder.Build()
	if err != nil {
		return 0, false, nil
	}

	window := searchWindow
	if window < len(target) {
		window = len(target)
	}
	for {
		if window > total {
			window = total
		}
		haystack := materialize(seq, i, i+window)
		if m := auto.Find(haystack, 0); m != nil {
			return m.End, true, nil
		}
		if window >= total {
			return 0, false, nil
		}
		window *= 2
	}
}

// materialize copies seq's live symbols in [lo, hi) into a byte slice for
// the automaton to scan.
func materialize(seq sequence.Sequence, lo, hi int) []byte {
	sub := seq.Subseq(lo, hi)
	out := make([]byte, sub.Len())
	it := sub.Iter()
	for k := range out {
		s, _ := it.Next()
		out[k] = s.Byte()
	}
	return out
}
