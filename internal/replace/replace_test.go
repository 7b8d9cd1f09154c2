package replace

import (
	"testing"

	"github.com/dnarope/endo/internal/match"
	"github.com/dnarope/endo/internal/sequence"
	"github.com/dnarope/endo/internal/symbol"
	"github.com/dnarope/endo/internal/template"
	"github.com/stretchr/testify/require"
)

func seq(s string) sequence.Sequence {
	sq, err := sequence.FromText(s)
	if err != nil {
		panic(err)
	}
	return sq
}

func TestReplaceBaseLiterals(t *testing.T) {
	tpl := template.Template{
		{Kind: template.Base, Sym: symbol.I},
		{Kind: template.Base, Sym: symbol.C},
	}
	got := Replace(tpl, nil, seq("FP"))
	require.Equal(t, "ICFP", got.Text())
}

func TestReplaceRefSplicesCaptureProtected(t *testing.T) {
	env := match.Environment{seq("IC")}
	tpl := template.Template{{Kind: template.Ref, N: 0, L: 1}}
	got := Replace(tpl, env, seq(""))
	// protect(1, [I,C]) = quote([I,C]) = [C,F]
	require.Equal(t, "CF", got.Text())
}

func TestReplaceRefOutOfRangeIsEmpty(t *testing.T) {
	tpl := template.Template{{Kind: template.Ref, N: 5, L: 0}}
	got := Replace(tpl, nil, seq("P"))
	require.Equal(t, "P", got.Text())
}

func TestReplaceLenEmitsAsnatOfCaptureLength(t *testing.T) {
	env := match.Environment{seq("ICFP")} // length 4
	tpl := template.Template{{Kind: template.Len, N: 0}}
	got := Replace(tpl, env, seq(""))
	// asnat(4): bits 0,0,1 (LSB first) -> I, I, C, then terminating P
	require.Equal(t, "IICP", got.Text())
}

func TestReplacePrependsToRest(t *testing.T) {
	tpl := template.Template{{Kind: template.Base, Sym: symbol.P}}
	got := Replace(tpl, nil, seq("ICFP"))
	require.Equal(t, "PICFP", got.Text())
}
