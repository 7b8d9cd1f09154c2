// Package patterngraph renders a decoded pattern's Open/Close nesting as a
// Graphviz DOT graph, for the -pattern-graph debugging flag: one node per
// pattern item, a sequence edge from each item to the next, and a nesting
// edge from each Open to its matching Close.
//
// Grounded on kortschak-ins's cmd/cmpint/main.go (the DOTID/Attributes
// node-and-edge types and the dot.Marshal call), adapted from a
// file-similarity graph to a single pattern's structure.
package patterngraph

import (
	"fmt"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/encoding"
	"gonum.org/v1/gonum/graph/encoding/dot"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/dnarope/endo/internal/pattern"
	"github.com/dnarope/endo/internal/symbol"
)

type node struct {
	id    int64
	label string
}

func (n node) ID() int64     { return n.id }
func (n node) DOTID() string { return n.label }

type edge struct {
	f, t graph.Node
	kind string
}

func (e edge) From() graph.Node         { return e.f }
func (e edge) To() graph.Node           { return e.t }
func (e edge) ReversedEdge() graph.Edge { return edge{f: e.t, t: e.f, kind: e.kind} }
func (e edge) Attributes() []encoding.Attribute {
	return []encoding.Attribute{{Key: "kind", Value: e.kind}}
}

// Render renders pat as a DOT graph suitable for `dot -Tsvg`. Each pattern
// item becomes a node labeled with its kind and (for Base/Skip/Search)
// its operand; consecutive items are joined by a "seq" edge, and every
// Open is joined to its matching Close by a "nest" edge.
func Render(pat pattern.Pattern) ([]byte, error) {
	g := simple.NewDirectedGraph()

	nodes := make([]node, len(pat))
	for i, item := range pat {
		nodes[i] = node{id: int64(i), label: labelFor(i, item)}
		g.AddNode(nodes[i])
	}
	for i := 1; i < len(nodes); i++ {
		g.SetEdge(edge{f: nodes[i-1], t: nodes[i], kind: "seq"})
	}

	var openStack []int
	for i, item := range pat {
		switch item.Kind {
		case pattern.Open:
			openStack = append(openStack, i)
		case pattern.Close:
			if len(openStack) == 0 {
				continue
			}
			openIdx := openStack[len(openStack)-1]
			openStack = openStack[:len(openStack)-1]
			g.SetEdge(edge{f: nodes[openIdx], t: nodes[i], kind: "nest"})
		}
	}

	return dot.Marshal(g, "pattern", "", "\t")
}

func labelFor(i int, item pattern.Item) string {
	switch item.Kind {
	case pattern.Base:
		return fmt.Sprintf("%d:Base(%s)", i, item.Sym)
	case pattern.Skip:
		return fmt.Sprintf("%d:Skip(%d)", i, item.N)
	case pattern.Search:
		return fmt.Sprintf("%d:Search(%s)", i, symbol.Join(item.S))
	case pattern.Open:
		return fmt.Sprintf("%d:Open", i)
	case pattern.Close:
		return fmt.Sprintf("%d:Close", i)
	default:
		return fmt.Sprintf("%d:?", i)
	}
}
