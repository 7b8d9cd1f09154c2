package patterngraph

import (
	"strings"
	"testing"

	"github.com/dnarope/endo/internal/pattern"
	"github.com/dnarope/endo/internal/symbol"
	"github.com/stretchr/testify/require"
)

func TestRenderProducesDOTWithNestAndSeqEdges(t *testing.T) {
	pat := pattern.Pattern{
		{Kind: pattern.Open},
		{Kind: pattern.Base, Sym: symbol.I},
		{Kind: pattern.Close},
	}
	out, err := Render(pat)
	require.NoError(t, err)
	s := string(out)
	require.Contains(t, s, "pattern")
	require.Contains(t, s, "nest")
	require.Contains(t, s, "seq")
}

func TestRenderEmptyPattern(t *testing.T) {
	out, err := Render(nil)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(out), "pattern"))
}
