package shadergraph

import (
	"errors"
	"fmt"
	"strings"

	"github.com/HoloTheDrunk/eray/eraylang"
)

// SignatureFromDecl converts a parsed signature declaration into its typed
// form. The parser guarantees the type names are members of the closed set.
func SignatureFromDecl(decl eraylang.SignatureDecl) Signature {
	sig := Signature{}
	for _, v := range decl.Inputs {
		ty, _ := ParseSocketType(v.Type)
		sig.Inputs = append(sig.Inputs, Socket{Name: v.Name, Type: ty})
	}
	for _, v := range decl.Outputs {
		ty, _ := ParseSocketType(v.Type)
		sig.Outputs = append(sig.Outputs, Socket{Name: v.Name, Type: ty})
	}
	return sig
}

// Resolve walks a parsed file and assembles an unvalidated Graph: imports
// are checked against the registry, node declarations against the known
// types, and every link's fields and expressions are resolved and type
// checked. Semantic faults are accumulated; the pass continues wherever
// later work does not depend on the faulty entity. The returned graph is
// only meaningful when the diagnostic list is empty.
func Resolve(file *eraylang.File, reg *Registry) (*Graph, []Diagnostic) {
	r := &resolver{
		reg:     reg,
		aliases: make(map[string]Signature),
		graph: &Graph{
			Signature: SignatureFromDecl(file.Signature),
			byName:    make(map[string]int),
		},
	}

	r.resolveImports(file.Imports)
	r.resolveNodes(file.Nodes)
	r.resolveLinks(file.Links)

	return r.graph, r.diags
}

type resolver struct {
	reg     *Registry
	graph   *Graph
	aliases map[string]Signature // import alias -> resolved signature
	diags   []Diagnostic
}

func (r *resolver) report(kind ErrorKind, pos eraylang.Position, subject, format string, args ...any) {
	r.diags = append(r.diags, Diagnostic{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Subject: subject,
		Pos:     pos,
	})
}

func (r *resolver) resolveImports(imports []eraylang.ImportDecl) {
	for _, imp := range imports {
		if _, dup := r.aliases[imp.Alias]; dup {
			r.report(KindDuplicateNodeName, imp.Pos, imp.Alias,
				"import alias %q is already defined", imp.Alias)
			continue
		}

		declared := SignatureFromDecl(imp.Signature)
		actual, err := r.reg.Resolve(imp.Target)
		if err != nil {
			var le *LoadError
			if errors.As(err, &le) {
				r.report(KindLoadError, imp.Pos, imp.Target, "%v", err)
			} else {
				r.report(KindUnknownNodeType, imp.Pos, imp.Target,
					"unknown node type %q", imp.Target)
			}
			continue
		}

		if !declared.Equal(actual) {
			r.report(KindImportSignatureMismatch, imp.Pos, imp.Alias,
				"import %q declares signature %s but %q has signature %s",
				imp.Alias, declared, imp.Target, actual)
			continue
		}

		r.aliases[imp.Alias] = actual
	}
}

func (r *resolver) resolveNodes(nodes []eraylang.NodeDecl) {
	for _, decl := range nodes {
		if _, dup := r.graph.byName[decl.Name]; dup {
			r.report(KindDuplicateNodeName, decl.Pos, decl.Name,
				"node instance %q is already declared", decl.Name)
			continue
		}

		var sig Signature
		if decl.Custom {
			alias, ok := r.aliases[decl.Type]
			if !ok {
				// A loadable but unimported name deserves a pointed hint.
				if _, err := r.reg.Resolve(decl.Type); err == nil {
					r.report(KindUnknownNodeType, decl.Pos, "$"+decl.Type,
						"node type %q exists but is not imported in this file", decl.Type)
				} else {
					r.report(KindUnknownNodeType, decl.Pos, "$"+decl.Type,
						"unknown import alias %q", decl.Type)
				}
				continue
			}
			sig = alias
		} else {
			builtin, ok := r.reg.ResolveBuiltin(decl.Type)
			if !ok {
				r.report(KindUnknownNodeType, decl.Pos, decl.Type,
					"unknown builtin node type %q", decl.Type)
				continue
			}
			sig = builtin
		}

		r.graph.byName[decl.Name] = len(r.graph.Nodes)
		r.graph.Nodes = append(r.graph.Nodes, NodeInstance{
			Name:      decl.Name,
			TypeName:  decl.Type,
			Imported:  decl.Custom,
			Signature: sig,
			Pos:       decl.Pos,
		})
	}
}

// Field direction: a source field reads from an output-capable socket, a
// target field writes into an input-capable one.
type direction int

const (
	asSource direction = iota
	asTarget
)

func (r *resolver) resolveLinks(links []eraylang.LinkDecl) {
	for _, decl := range links {
		target, ok := r.resolveField(decl.Target, asTarget)
		if !ok {
			continue
		}

		link := Link{Target: target, Pos: decl.Pos}
		var srcType SocketType
		var srcDesc string

		if decl.Expr != nil {
			endpoint, literal, ty, ok := r.resolveExpr(decl.Expr)
			if !ok {
				continue
			}
			link.Source = endpoint
			link.Literal = literal
			srcType = ty
			srcDesc = decl.Expr.Constructor + "(...)"
		} else {
			source, ok := r.resolveField(decl.Source, asSource)
			if !ok {
				continue
			}
			link.Source = &source
			srcType = source.Type
			srcDesc = decl.Source.String()
		}

		if srcType != target.Type {
			r.report(KindTypeMismatch, decl.Pos, decl.Target.String(),
				"cannot link %s of type %s to %s of type %s",
				srcDesc, srcType, decl.Target.String(), target.Type)
			continue
		}

		r.graph.Links = append(r.graph.Links, link)
	}
}

// resolveField resolves a field reference against the meta namespace first
// (reserved words), then the node instance namespace. Failures are reported
// and ok=false returned; the caller skips the link.
func (r *resolver) resolveField(f *eraylang.FieldExpr, dir direction) (Endpoint, bool) {
	var (
		node int
		side []Socket
		desc string
	)

	switch f.Meta {
	case eraylang.MetaIn:
		if dir == asTarget {
			r.report(KindUnknownSocket, f.Pos, f.String(),
				"@IN sockets carry the file's inputs and cannot be a link target")
			return Endpoint{}, false
		}
		node = GraphInput
		side = r.graph.Signature.Inputs
		desc = "@IN"

	case eraylang.MetaOut:
		if dir == asSource {
			r.report(KindUnknownSocket, f.Pos, f.String(),
				"@OUT sockets carry the file's outputs and cannot be a link source")
			return Endpoint{}, false
		}
		node = GraphOutput
		side = r.graph.Signature.Outputs
		desc = "@OUT"

	default:
		idx, ok := r.graph.byName[f.Root]
		if !ok {
			r.report(KindUnknownSocket, f.Pos, f.String(),
				"unknown node instance %q", f.Root)
			return Endpoint{}, false
		}
		node = idx
		inst := &r.graph.Nodes[idx]
		if dir == asSource {
			side = inst.Signature.Outputs
		} else {
			side = inst.Signature.Inputs
		}
		desc = f.Root
	}

	return r.resolveChain(f, dir, node, side, desc)
}

// resolveChain addresses a socket (and optionally one vector component)
// within the given signature side.
func (r *resolver) resolveChain(f *eraylang.FieldExpr, dir direction, node int, side []Socket, desc string) (Endpoint, bool) {
	chain := f.Chain

	// Bare root: legal only when the side has exactly one socket.
	if len(chain) == 0 {
		if len(side) != 1 {
			r.report(KindUnknownSocket, f.Pos, f.String(),
				"%s has %d sockets; the field must name one of %s",
				desc, len(side), socketNames(side))
			return Endpoint{}, false
		}
		return Endpoint{Node: node, Socket: side[0].Name, Type: side[0].Type}, true
	}

	sock, found := lookupSocket(side, chain[0])
	rest := chain[1:]
	if !found {
		// The lone socket's component may be addressed without naming it.
		if len(side) == 1 && len(chain) == 1 && side[0].Type.HasComponent(chain[0]) {
			sock, found = side[0], true
			rest = chain
		} else {
			r.report(KindUnknownSocket, f.Pos, f.String(),
				"%s has no socket %q; available: %s", desc, chain[0], socketNames(side))
			return Endpoint{}, false
		}
	}

	ep := Endpoint{Node: node, Socket: sock.Name, Type: sock.Type}

	switch len(rest) {
	case 0:
		return ep, true
	case 1:
		if dir == asTarget {
			r.report(KindUnknownSocket, f.Pos, f.String(),
				"components of an input socket are not individually addressable")
			return Endpoint{}, false
		}
		if !sock.Type.HasComponent(rest[0]) {
			r.report(KindUnknownSocket, f.Pos, f.String(),
				"%s is not a component of %s socket %q", rest[0], sock.Type, sock.Name)
			return Endpoint{}, false
		}
		ep.Component = rest[0]
		ep.Type = Value
		return ep, true
	default:
		r.report(KindUnknownSocket, f.Pos, f.String(),
			"field chain is too deep; at most socket and one component may be addressed")
		return Endpoint{}, false
	}
}

// resolveExpr resolves a constructor expression into either an inline
// literal or a converted endpoint, returning the constructed type.
func (r *resolver) resolveExpr(e *eraylang.Expr) (*Endpoint, *LiteralValue, SocketType, bool) {
	ctor, _ := ParseSocketType(e.Constructor)

	if e.Literal != nil {
		return r.resolveLiteralExpr(e, ctor)
	}

	inner, ok := r.resolveField(e.Field, asSource)
	if !ok {
		return nil, nil, 0, false
	}

	if !convertible(inner.Type, ctor) {
		r.report(KindTypeMismatch, e.Pos, e.Field.String(),
			"cannot construct %s from a %s field; narrow it with a component accessor first",
			ctor, inner.Type)
		return nil, nil, 0, false
	}

	final, ok := r.applyTrailing(e, ctor, &inner)
	if !ok {
		return nil, nil, 0, false
	}
	return &inner, nil, final, true
}

func (r *resolver) resolveLiteralExpr(e *eraylang.Expr, ctor SocketType) (*Endpoint, *LiteralValue, SocketType, bool) {
	lit := e.Literal
	if lit.Scalar() != (ctor == Value) {
		r.report(KindTypeMismatch, e.Pos, e.Constructor+"(...)",
			"a %d-component literal cannot construct %s", len(lit.Values), ctor)
		return nil, nil, 0, false
	}

	value := &LiteralValue{Type: ctor, Values: append([]float64(nil), lit.Values...)}

	if len(e.Trailing) == 0 {
		return nil, value, ctor, true
	}

	// A trailing component accessor narrows the constructed constant.
	if len(e.Trailing) > 1 {
		r.report(KindUnknownSocket, e.Pos, e.Constructor+"(...)",
			"at most one component accessor may trail a constructor")
		return nil, nil, 0, false
	}
	if ctor == Value {
		r.report(KindTypeMismatch, e.Pos, e.Constructor+"(...)",
			"%s has no components to access", ctor)
		return nil, nil, 0, false
	}
	idx, ok := componentIndex(ctor, e.Trailing[0])
	if !ok {
		r.report(KindUnknownSocket, e.Pos, e.Constructor+"(...)",
			"%s is not a component of %s", e.Trailing[0], ctor)
		return nil, nil, 0, false
	}

	return nil, &LiteralValue{Type: Value, Values: []float64{value.Values[idx]}}, Value, true
}

// applyTrailing finishes a field constructor: without a trailing accessor
// the endpoint takes the constructed type and the renderer applies the
// conversion. A trailing accessor (e.g. Vec3(n.color).x) narrows the result
// back to Value, and the endpoint records what the accessor reads in terms
// of the operand socket itself: a broadcast Value operand fills every
// channel, so the endpoint keeps the operand as-is; a reinterpreted
// 3-component operand is a relabeling, so the accessor translates by index
// into the socket's own accessor set (Vec3(c).y on a Color socket reads c.g).
func (r *resolver) applyTrailing(e *eraylang.Expr, ctor SocketType, ep *Endpoint) (SocketType, bool) {
	switch len(e.Trailing) {
	case 0:
		ep.Type = ctor
		return ctor, true
	case 1:
		if ctor == Value {
			r.report(KindTypeMismatch, e.Pos, e.Field.String(),
				"%s has no components to access", ctor)
			return 0, false
		}
		idx, ok := componentIndex(ctor, e.Trailing[0])
		if !ok {
			r.report(KindUnknownSocket, e.Pos, e.Field.String(),
				"%s is not a component of %s", e.Trailing[0], ctor)
			return 0, false
		}
		if ep.Type != Value {
			ep.Component = componentAccessors[ep.Type][idx]
			ep.Type = Value
		}
		return Value, true
	default:
		r.report(KindUnknownSocket, e.Pos, e.Field.String(),
			"at most one component accessor may trail a constructor")
		return 0, false
	}
}

// convertible is the constructor conversion matrix for field operands.
// Identity always holds; Value broadcasts into either 3-component type; the
// two 3-component types reinterpret into each other only through an explicit
// constructor. Narrowing a 3-component field to Value requires a component
// accessor and is handled on the field chain, never here.
func convertible(from, to SocketType) bool {
	if from == to {
		return true
	}
	if from == Value {
		return true // broadcast
	}
	return to != Value // Color <-> Vec3 reinterpret
}

// componentIndex maps an accessor to its component slot (x/r=0, y/g=1, z/b=2).
func componentIndex(t SocketType, name string) (int, bool) {
	for i, c := range componentAccessors[t] {
		if c == name {
			return i, true
		}
	}
	return 0, false
}

func lookupSocket(side []Socket, name string) (Socket, bool) {
	for _, s := range side {
		if s.Name == name {
			return s, true
		}
	}
	return Socket{}, false
}

func socketNames(side []Socket) string {
	if len(side) == 0 {
		return "(none)"
	}
	names := make([]string, len(side))
	for i, s := range side {
		if s.Name == "" {
			names[i] = "(unnamed " + s.Type.String() + ")"
		} else {
			names[i] = s.Name
		}
	}
	return strings.Join(names, ", ")
}
