package shadergraph

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/HoloTheDrunk/eray/eraylang"
)

// Validate runs the whole-graph invariants over a resolved graph and returns
// every diagnostic found: fan-in and connection completeness on each input
// socket, and acyclicity of the instance wiring. Independent checks all run;
// nothing stops at the first fault.
func Validate(g *Graph) []Diagnostic {
	var diags []Diagnostic
	diags = append(diags, checkConnections(g)...)
	diags = append(diags, checkAcyclic(g)...)
	return diags
}

// ValidateOrError runs Validate and wraps any findings in a *BuildError.
// On success the graph is sealed: it receives its identity and must not be
// mutated afterwards.
func ValidateOrError(g *Graph) error {
	diags := Validate(g)
	if len(diags) > 0 {
		return &BuildError{Diagnostics: diags}
	}
	g.ID = uuid.New().String()
	return nil
}

// Build runs the full front-end over one .eray source: parse, resolve
// against the registry, validate. A syntax error aborts the pipeline and is
// returned as the sole diagnostic; semantic faults are gathered across
// resolution and validation and returned together. Either way the error is a
// *BuildError. On success the returned graph is validated, immutable, and
// carries a fresh ID.
func Build(src []byte, reg *Registry) (*Graph, error) {
	file, err := eraylang.Parse(src)
	if err != nil {
		return nil, &BuildError{Diagnostics: []Diagnostic{syntaxDiagnostic(err)}}
	}

	graph, diags := Resolve(file, reg)
	if len(diags) > 0 {
		// A partially resolved graph is not worth validating; its faults
		// would shadow the real ones.
		return nil, &BuildError{Diagnostics: diags}
	}

	if err := ValidateOrError(graph); err != nil {
		return nil, err
	}
	return graph, nil
}

// syntaxDiagnostic converts a parse failure into the diagnostic form the
// rest of the pipeline speaks.
func syntaxDiagnostic(err error) Diagnostic {
	d := Diagnostic{Kind: KindSyntaxError, Message: err.Error()}
	var se *eraylang.SyntaxError
	var le *eraylang.LexError
	switch {
	case errors.As(err, &se):
		d.Pos = se.Pos
		if se.Expected != "" {
			d.Message = fmt.Sprintf("expected %s, got %s", se.Expected, se.Got)
		} else {
			d.Message = se.Message
		}
	case errors.As(err, &le):
		d.Pos = le.Pos
		d.Message = le.Message
	}
	return d
}

// checkConnections enforces fan-in rules: every input socket of every node
// instance, and every output socket of the file's own signature, must be the
// target of exactly one link.
func checkConnections(g *Graph) []Diagnostic {
	type slot struct {
		node   int
		socket string
	}
	counts := make(map[slot]int)
	positions := make(map[slot]eraylang.Position)

	for _, l := range g.Links {
		s := slot{l.Target.Node, l.Target.Socket}
		counts[s]++
		if counts[s] > 1 {
			positions[s] = l.Pos
		}
	}

	var diags []Diagnostic

	check := func(node int, sock Socket) {
		s := slot{node, sock.Name}
		name := g.endpointName(Endpoint{Node: node, Socket: sock.Name})
		switch n := counts[s]; {
		case n == 0:
			diags = append(diags, Diagnostic{
				Kind:    KindUnconnectedInput,
				Message: fmt.Sprintf("input socket %s is not connected", name),
				Subject: name,
			})
		case n > 1:
			diags = append(diags, Diagnostic{
				Kind:    KindDuplicateLink,
				Message: fmt.Sprintf("input socket %s is targeted by %d links; fan-in is not allowed", name, n),
				Subject: name,
				Pos:     positions[s],
			})
		}
	}

	for i := range g.Nodes {
		for _, sock := range g.Nodes[i].Signature.Inputs {
			check(i, sock)
		}
	}
	for _, sock := range g.Signature.Outputs {
		check(GraphOutput, sock)
	}

	return diags
}

// checkAcyclic treats links as directed edges between node instances (@IN
// and @OUT are virtual endpoints and cannot take part in a cycle) and
// reports any cycle with its full path.
func checkAcyclic(g *Graph) []Diagnostic {
	adj := make(map[int][]int)
	for _, l := range g.Links {
		if l.Source == nil || l.Source.Node < 0 || l.Target.Node < 0 {
			continue
		}
		adj[l.Source.Node] = append(adj[l.Source.Node], l.Target.Node)
	}

	const (
		unvisited = 0
		inStack   = 1
		done      = 2
	)
	state := make([]int, len(g.Nodes))
	var stack []int
	var diags []Diagnostic

	var visit func(n int)
	visit = func(n int) {
		state[n] = inStack
		stack = append(stack, n)

		for _, next := range adj[n] {
			switch state[next] {
			case unvisited:
				visit(next)
			case inStack:
				diags = append(diags, Diagnostic{
					Kind:    KindCyclicGraph,
					Message: fmt.Sprintf("cycle detected: %s", cyclePath(g, stack, next)),
					Subject: g.Nodes[next].Name,
					Pos:     g.Nodes[next].Pos,
				})
			}
		}

		stack = stack[:len(stack)-1]
		state[n] = done
	}

	for i := range g.Nodes {
		if state[i] == unvisited {
			visit(i)
		}
	}

	return diags
}

// cyclePath renders the portion of the DFS stack from the back-edge target
// onward, closing the loop for the message.
func cyclePath(g *Graph, stack []int, start int) string {
	from := 0
	for i, n := range stack {
		if n == start {
			from = i
			break
		}
	}
	var names []string
	for _, n := range stack[from:] {
		names = append(names, g.Nodes[n].Name)
	}
	names = append(names, g.Nodes[start].Name)
	return strings.Join(names, " -> ")
}
