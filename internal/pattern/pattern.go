// Package pattern decodes a pattern (the left-hand side of one interpreter
// step) from the front of a cursor's sequence, per spec §4.4.
//
// Grounded on original_source/src/interpreterv2/pattern.rs.
package pattern

import (
	"fmt"

	"github.com/dnarope/endo/internal/cursor"
	"github.com/dnarope/endo/internal/literal"
	"github.com/dnarope/endo/internal/symbol"
)

// ItemKind discriminates the five pattern item shapes.
type ItemKind int

const (
	// Base matches (and consumes) a single symbol in the matcher.
	Base ItemKind = iota
	// Skip advances the match cursor by N symbols without comparing them.
	Skip
	// Search advances the match cursor to the next occurrence of a literal
	// symbol string.
	Search
	// Open pushes a new capture group.
	Open
	// Close pops the innermost open capture group.
	Close
)

// Item is one element of a decoded Pattern. Which fields are meaningful
// depends on Kind: Base uses Sym, Skip uses N, Search uses S, Open and
// Close use neither.
type Item struct {
	Kind ItemKind
	Sym  symbol.Symbol
	N    int
	S    []symbol.Symbol
}

// Pattern is a decoded sequence of pattern items, in the order the matcher
// must apply them.
type Pattern []Item

// Decode reads one Pattern from the front of c's sequence, advancing c and
// appending any RNA words produced by embedded III escapes. Decode returns
// an error, wrapping ErrDecode, the moment the dispatch table finds no
// matching arm (spec §4.4/§7: a malformed pattern head terminates the
// run).
func Decode(c *cursor.Cursor) (Pattern, error) {
	var p Pattern
	lvl := 0
	for {
		h := c.Prefix(3)
		switch {
		case len(h) >= 1 && h[0] == symbol.C:
			c.Skip(1)
			p = append(p, Item{Kind: Base, Sym: symbol.I})

		case len(h) >= 1 && h[0] == symbol.F:
			c.Skip(1)
			p = append(p, Item{Kind: Base, Sym: symbol.C})

		case len(h) >= 1 && h[0] == symbol.P:
			c.Skip(1)
			p = append(p, Item{Kind: Base, Sym: symbol.F})

		case len(h) >= 2 && h[0] == symbol.I && h[1] == symbol.C:
			c.Skip(2)
			p = append(p, Item{Kind: Base, Sym: symbol.P})

		case len(h) >= 2 && h[0] == symbol.I && h[1] == symbol.P:
			c.Skip(2)
			n, err := literal.Nat(c)
			if err != nil {
				return nil, fmt.Errorf("pattern: %w: decoding skip length: %w", ErrDecode, err)
			}
			p = append(p, Item{Kind: Skip, N: n})

		case len(h) >= 3 && h[0] == symbol.I && h[1] == symbol.I && h[2] == symbol.P:
			c.Skip(3)
			lvl++
			p = append(p, Item{Kind: Open})

		case len(h) >= 3 && h[0] == symbol.I && h[1] == symbol.I && (h[2] == symbol.C || h[2] == symbol.F):
			c.Skip(3)
			if lvl == 0 {
				return p, nil
			}
			lvl--
			p = append(p, Item{Kind: Close})

		case len(h) >= 3 && h[0] == symbol.I && h[1] == symbol.I && h[2] == symbol.I:
			w := c.Prefix(10)
			if len(w) < 10 {
				return nil, fmt.Errorf("pattern: %w: III escape truncated before a full RNA word", ErrDecode)
			}
			var word symbol.Word
			copy(word[:], w[3:10])
			c.Emit(word)
			c.Skip(10)

		case len(h) >= 2 && h[0] == symbol.I && h[1] == symbol.F:
			// "IF" is a 3-symbol head: the third symbol is discarded and
			// consts decoding resumes immediately after it, matching the
			// reference interpreter's literal skip(3) (see
			// original_source/src/interpreterv2/pattern.rs).
			c.Skip(3)
			s := literal.Consts(c)
			p = append(p, Item{Kind: Search, S: s})

		default:
			return nil, fmt.Errorf("pattern: %w at offset: unrecognized head %v", ErrDecode, h)
		}
	}
}
