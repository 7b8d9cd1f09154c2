// Package literal decodes and encodes the embedded literal forms the
// pattern and template decoders rely on: variable-length naturals (nat),
// constant symbol strings (consts), and the quote/protect escape used to
// make a captured substring safe to splice back into the sequence.
//
// Grounded on original_source/src/interpreterv2/literals.rs.
package literal

import (
	"errors"
	"fmt"

	"github.com/dnarope/endo/internal/cursor"
	"github.com/dnarope/endo/internal/symbol"
)

// ErrUnexpectedEnd is wrapped into decode errors produced when a nat
// literal runs off the end of the sequence (spec §7: "nested nat/consts
// hits the end of the sequence").
var ErrUnexpectedEnd = errors.New("literal: unexpected end of sequence")

// Nat decodes a variable-length natural number from the front of c's
// sequence. Symbols are read least-significant-bit first: P terminates
// with bit 0 (i.e. ends the number), C prepends a 1 bit, I and F prepend a
// 0 bit. Recursion on the bit count is flattened into a loop here (the
// spec's own recommendation: "bound the recursion or convert to a loop
// with a shift counter") since pathological inputs can carry tens of
// thousands of bits.
func Nat(c *cursor.Cursor) (int, error) {
	shift := uint(0)
	n := 0
	for {
		p := c.Prefix(1)
		if len(p) == 0 {
			return 0, fmt.Errorf("literal: decoding nat: %w", ErrUnexpectedEnd)
		}
		switch p[0] {
		case symbol.P:
			c.Skip(1)
			return n, nil
		case symbol.I, symbol.F:
			c.Skip(1)
			shift++
		case symbol.C:
			c.Skip(1)
			n |= 1 << shift
			shift++
		default:
			return 0, fmt.Errorf("literal: decoding nat: unexpected symbol %v", p[0])
		}
	}
}

// Asnat encodes n as the inverse of Nat: while n != 0, emit I for an even
// low bit or C for an odd one and halve, then emit the terminating P.
// Asnat(0) is the single symbol P.
func Asnat(n int) []symbol.Symbol {
	var out []symbol.Symbol
	for n != 0 {
		if n%2 == 0 {
			out = append(out, symbol.I)
		} else {
			out = append(out, symbol.C)
		}
		n /= 2
	}
	out = append(out, symbol.P)
	return out
}

// Consts decodes a constant symbol string: it reads while the next 1-2
// symbol prefix is a recognized escape (C->I, F->C, P->F each consuming 1
// symbol; I C -> P consuming 2), returning the accumulated symbols the
// first time the prefix stops matching. An empty prefix or an
// unrecognized escape both simply terminate the read (this is not an
// error case — consts never fails, it just may decode to the empty
// slice).
func Consts(c *cursor.Cursor) []symbol.Symbol {
	var out []symbol.Symbol
	for {
		p := c.Prefix(2)
		switch {
		case len(p) >= 1 && p[0] == symbol.C:
			c.Skip(1)
			out = append(out, symbol.I)
		case len(p) >= 1 && p[0] == symbol.F:
			c.Skip(1)
			out = append(out, symbol.C)
		case len(p) >= 1 && p[0] == symbol.P:
			c.Skip(1)
			out = append(out, symbol.F)
		case len(p) >= 2 && p[0] == symbol.I && p[1] == symbol.C:
			c.Skip(2)
			out = append(out, symbol.P)
		default:
			return out
		}
	}
}

// Quote applies the single escape step to xs: I->C, C->F, F->P, P->IC.
// Quoting is the mechanism that keeps a captured substring re-parsable
// once it is spliced back into the front of the sequence by the
// Replacer: a raw capture might otherwise itself contain sequences that
// look like further pattern/template escapes.
func Quote(xs []symbol.Symbol) []symbol.Symbol {
	out := make([]symbol.Symbol, 0, len(xs))
	for _, s := range xs {
		switch s {
		case symbol.I:
			out = append(out, symbol.C)
		case symbol.C:
			out = append(out, symbol.F)
		case symbol.F:
			out = append(out, symbol.P)
		case symbol.P:
			out = append(out, symbol.I, symbol.C)
		}
	}
	return out
}

// Protect applies Quote exactly l times to xs. Protect(0, xs) == xs.
func Protect(l int, xs []symbol.Symbol) []symbol.Symbol {
	out := xs
	for i := 0; i < l; i++ {
		out = Quote(out)
	}
	return out
}
