package template

import (
	"testing"

	"github.com/dnarope/endo/internal/cursor"
	"github.com/dnarope/endo/internal/sequence"
	"github.com/dnarope/endo/internal/symbol"
	"github.com/stretchr/testify/require"
)

func cur(s string) *cursor.Cursor {
	seq, err := sequence.FromText(s)
	if err != nil {
		panic(err)
	}
	return cursor.New(seq)
}

func TestDecodeBaseLetters(t *testing.T) {
	c := cur("CFPICIIC") // I, C, F, P bases then the terminator
	tpl, err := Decode(c)
	require.NoError(t, err)
	require.Equal(t, Template{
		{Kind: Base, Sym: symbol.I},
		{Kind: Base, Sym: symbol.C},
		{Kind: Base, Sym: symbol.F},
		{Kind: Base, Sym: symbol.P},
	}, tpl)
}

func TestDecodeTerminatesImmediately(t *testing.T) {
	c := cur("IIC")
	tpl, err := Decode(c)
	require.NoError(t, err)
	require.Empty(t, tpl)
	require.Equal(t, 0, c.Seq.Len())
}

func TestDecodeRef(t *testing.T) {
	// IF, then nat "P" (=0) for l, then nat "CP" (=1) for n, then close.
	c := cur("IFPCPIIC")
	tpl, err := Decode(c)
	require.NoError(t, err)
	require.Equal(t, Template{{Kind: Ref, N: 1, L: 0}}, tpl)
}

func TestDecodeLen(t *testing.T) {
	// IIP, then nat "CP" (=1) for n, then close.
	c := cur("IIPCPIIC")
	tpl, err := Decode(c)
	require.NoError(t, err)
	require.Equal(t, Template{{Kind: Len, N: 1}}, tpl)
}

func TestDecodeEmitsRNAOnTripleI(t *testing.T) {
	c := cur("IIICFPICFPIIC")
	tpl, err := Decode(c)
	require.NoError(t, err)
	require.Empty(t, tpl)
	require.Len(t, c.RNA, 1)
	require.Equal(t, "CFPICFP", c.RNA[0].String())
}

func TestDecodeUnexpectedEndIsError(t *testing.T) {
	c := cur("")
	_, err := Decode(c)
	require.ErrorIs(t, err, ErrDecode)
}
