// Package replace substitutes a match environment into a decoded template
// and splices the result onto the front of the remaining sequence, per
// spec §4.7.
//
// Grounded on original_source/src/interpreterv2/match_replace.rs
// (replace).
package replace

import (
	"github.com/dnarope/endo/internal/literal"
	"github.com/dnarope/endo/internal/match"
	"github.com/dnarope/endo/internal/sequence"
	"github.com/dnarope/endo/internal/symbol"
	"github.com/dnarope/endo/internal/template"
)

// Replace builds the replacement for one interpreter step: tmpl is
// expanded against env symbol by symbol (Base emits a literal, Ref
// splices the N-th capture protected L times, Len emits asnat of the N-th
// capture's length — referencing an index past len(env) yields the empty
// capture, per the reference implementation's unwrap_or default), then
// the expansion is concatenated in front of rest.
func Replace(tmpl template.Template, env match.Environment, rest sequence.Sequence) sequence.Sequence {
	r := sequence.Empty()
	for _, item := range tmpl {
		switch item.Kind {
		case template.Base:
			r = r.Concat(sequence.New([]symbol.Symbol{item.Sym}))

		case template.Ref:
			v := capture(env, item.N)
			protected := literal.Protect(item.L, v)
			r = r.Concat(sequence.New(protected))

		case template.Len:
			v := capture(env, item.N)
			r = r.Concat(sequence.New(literal.Asnat(len(v))))
		}
	}
	return r.Concat(rest)
}

// capture returns the full symbol contents of env[n], or nil if n is out
// of range.
func capture(env match.Environment, n int) []symbol.Symbol {
	if n < 0 || n >= len(env) {
		return nil
	}
	c := env[n]
	return c.Prefix(c.Len())
}
