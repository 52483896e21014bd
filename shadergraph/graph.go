package shadergraph

import (
	"fmt"

	"github.com/HoloTheDrunk/eray/eraylang"
)

// Sentinel endpoint indices standing in for the file's own signature: @IN
// acts as a virtual source node, @OUT as a virtual sink.
const (
	GraphInput  = -1
	GraphOutput = -2
)

// NodeInstance is a named use of a node type within one file's graph.
type NodeInstance struct {
	Name      string
	TypeName  string // builtin name or import alias
	Imported  bool
	Signature Signature
	Pos       eraylang.Position
}

// Endpoint addresses one socket in the graph: a node instance by arena
// index (or a GraphInput/GraphOutput sentinel), the socket name, an optional
// component accessor narrowing a 3-component socket, and the resolved type
// after any narrowing or construction. Component, when set, is always drawn
// from the socket's own accessor set (r/g/b on Color, x/y/z on Vec3), even
// when the source text narrowed through a constructor of the other type.
type Endpoint struct {
	Node      int    // index into Graph.Nodes, or GraphInput/GraphOutput
	Socket    string // empty for an unnamed single output socket
	Component string // optional accessor, "" when absent
	Type      SocketType
}

// LiteralValue is an inline constructed source: a typed constant carried
// directly on a link instead of coming out of a socket.
type LiteralValue struct {
	Type   SocketType
	Values []float64 // length 1 for Value, 3 for Color/Vec3
}

// Link is a directed connection into an input-capable socket. Exactly one of
// Source and Literal is set.
type Link struct {
	Source  *Endpoint
	Literal *LiteralValue
	Target  Endpoint
	Pos     eraylang.Position
}

// Graph is the resolved, typed wiring diagram of one .eray file: the file's
// own signature, the node instance arena, and the links between sockets.
// Instances are referenced by index. A Graph is built once by Resolve, and
// after Validate succeeds it is immutable; ID is assigned at that point and
// the renderer receives the graph by shared pointer.
type Graph struct {
	ID        string
	Signature Signature
	Nodes     []NodeInstance
	Links     []Link

	byName map[string]int
}

// NodeIndex returns the arena index of the named instance.
func (g *Graph) NodeIndex(name string) (int, bool) {
	idx, ok := g.byName[name]
	return idx, ok
}

// Node returns the named instance.
func (g *Graph) Node(name string) (*NodeInstance, bool) {
	idx, ok := g.byName[name]
	if !ok {
		return nil, false
	}
	return &g.Nodes[idx], true
}

// LinksInto returns all links targeting the given node index (use
// GraphOutput for the file's own outputs).
func (g *Graph) LinksInto(node int) []Link {
	var out []Link
	for _, l := range g.Links {
		if l.Target.Node == node {
			out = append(out, l)
		}
	}
	return out
}

// LinksFrom returns all links whose source is a socket of the given node
// index (use GraphInput for the file's own inputs). Literal-sourced links
// never match.
func (g *Graph) LinksFrom(node int) []Link {
	var out []Link
	for _, l := range g.Links {
		if l.Source != nil && l.Source.Node == node {
			out = append(out, l)
		}
	}
	return out
}

// endpointName renders an endpoint for diagnostics, e.g. "@OUT.value" or
// "sum.lhs".
func (g *Graph) endpointName(e Endpoint) string {
	var root string
	switch e.Node {
	case GraphInput:
		root = "@IN"
	case GraphOutput:
		root = "@OUT"
	default:
		root = g.Nodes[e.Node].Name
	}
	if e.Socket != "" {
		root += "." + e.Socket
	}
	if e.Component != "" {
		root += "." + e.Component
	}
	return root
}

func (g *Graph) String() string {
	return fmt.Sprintf("graph %s (%d nodes, %d links)", g.Signature, len(g.Nodes), len(g.Links))
}
