// Package template decodes a template (the right-hand side of one
// interpreter step, substituted against a match environment by package
// replace) from the front of a cursor's sequence, per spec §4.5.
//
// Grounded on original_source/src/interpreter/template.rs.
package template

import (
	"errors"
	"fmt"

	"github.com/dnarope/endo/internal/cursor"
	"github.com/dnarope/endo/internal/literal"
	"github.com/dnarope/endo/internal/symbol"
)

// ErrDecode is wrapped into every error Decode returns.
var ErrDecode = errors.New("template: decode failed")

// ItemKind discriminates the three template item shapes.
type ItemKind int

const (
	// Base emits a single literal symbol.
	Base ItemKind = iota
	// Ref splices in the N-th capture group, protected L times.
	Ref
	// Len emits asnat of the length of the N-th capture group.
	Len
)

// Item is one element of a decoded Template. Base uses Sym; Ref uses N and
// L; Len uses N only.
type Item struct {
	Kind ItemKind
	Sym  symbol.Symbol
	N    int
	L    int
}

// Template is a decoded sequence of template items, in emission order.
type Template []Item

// Decode reads one Template from the front of c's sequence, advancing c
// and appending any RNA words produced by embedded III escapes.
func Decode(c *cursor.Cursor) (Template, error) {
	var t Template
	for {
		h := c.Prefix(3)
		switch {
		case len(h) >= 1 && h[0] == symbol.C:
			c.Skip(1)
			t = append(t, Item{Kind: Base, Sym: symbol.I})

		case len(h) >= 1 && h[0] == symbol.F:
			c.Skip(1)
			t = append(t, Item{Kind: Base, Sym: symbol.C})

		case len(h) >= 1 && h[0] == symbol.P:
			c.Skip(1)
			t = append(t, Item{Kind: Base, Sym: symbol.F})

		case len(h) >= 2 && h[0] == symbol.I && h[1] == symbol.C:
			c.Skip(2)
			t = append(t, Item{Kind: Base, Sym: symbol.P})

		case len(h) >= 2 && h[0] == symbol.I && (h[1] == symbol.F || h[1] == symbol.P):
			c.Skip(2)
			l, err := literal.Nat(c)
			if err != nil {
				return nil, fmt.Errorf("template: %w: decoding ref protection level: %w", ErrDecode, err)
			}
			n, err := literal.Nat(c)
			if err != nil {
				return nil, fmt.Errorf("template: %w: decoding ref index: %w", ErrDecode, err)
			}
			t = append(t, Item{Kind: Ref, N: n, L: l})

		case len(h) >= 3 && h[0] == symbol.I && h[1] == symbol.I && (h[2] == symbol.C || h[2] == symbol.F):
			c.Skip(3)
			return t, nil

		case len(h) >= 3 && h[0] == symbol.I && h[1] == symbol.I && h[2] == symbol.P:
			c.Skip(3)
			n, err := literal.Nat(c)
			if err != nil {
				return nil, fmt.Errorf("template: %w: decoding len index: %w", ErrDecode, err)
			}
			t = append(t, Item{Kind: Len, N: n})

		case len(h) >= 3 && h[0] == symbol.I && h[1] == symbol.I && h[2] == symbol.I:
			w := c.Prefix(10)
			if len(w) < 10 {
				return nil, fmt.Errorf("template: %w: III escape truncated before a full RNA word", ErrDecode)
			}
			var word symbol.Word
			copy(word[:], w[3:10])
			c.Emit(word)
			c.Skip(10)

		default:
			return nil, fmt.Errorf("template: %w: unrecognized head %v", ErrDecode, h)
		}
	}
}
