// Package cursor holds the mutable decode-time state threaded through the
// literal, pattern, and template decoders: the sequence being consumed and
// the RNA log being appended to.
//
// This mirrors the original interpreter's Context (see
// original_source/src/interpreterv2/interpreter.rs): one struct, passed by
// pointer, that every decoder function advances in place. Go idiom would
// normally prefer returning a new value over mutating through a pointer,
// but the decoders here are a tight, single-threaded pipeline over one
// piece of state for the lifetime of exactly one step — passing a *Cursor
// is simpler than threading (Sequence, []Word) tuples through a dozen
// mutually-recursive functions and matches how the rest of this package
// family (literal, pattern, template) is grounded on the original.
package cursor

import "github.com/dnarope/endo/internal/sequence"
import "github.com/dnarope/endo/internal/symbol"

// Cursor is the decode-time view of one interpreter step: the sequence
// still to be consumed, and the RNA words emitted so far this step.
type Cursor struct {
	Seq sequence.Sequence
	RNA []symbol.Word
}

// New returns a Cursor positioned at the start of seq with no RNA emitted
// yet.
func New(seq sequence.Sequence) *Cursor {
	return &Cursor{Seq: seq}
}

// Prefix returns up to the next k symbols without consuming them.
func (c *Cursor) Prefix(k int) []symbol.Symbol {
	return c.Seq.Prefix(k)
}

// Skip consumes the next k symbols.
func (c *Cursor) Skip(k int) {
	c.Seq = c.Seq.Skip(k)
}

// Emit appends w to the RNA log. w is always the literal 7-symbol slice
// taken from offsets [3,10) of the sequence at the moment an III escape is
// recognized (spec §4.4/§4.5/§6) — callers build it with Word, never a
// partial slice.
func (c *Cursor) Emit(w symbol.Word) {
	c.RNA = append(c.RNA, w)
}
