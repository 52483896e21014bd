package eraylang

// Position tracks a source location for error messages.
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based column number
	Offset int // 0-based byte offset into source
}

// MetaKind discriminates field roots: a plain node instance name, the
// enclosing file's own inputs (@IN), or its outputs (@OUT).
type MetaKind int

const (
	MetaNone MetaKind = iota
	MetaIn
	MetaOut
)

func (m MetaKind) String() string {
	switch m {
	case MetaIn:
		return "@IN"
	case MetaOut:
		return "@OUT"
	default:
		return ""
	}
}

// VarDecl is a single `name: Type` socket declaration.
type VarDecl struct {
	Name string
	Type string // "Value", "Color", or "Vec3"
	Pos  Position
}

// SignatureDecl is the parsed form of `|inputs| -> outputs`. A single
// unnamed output (e.g. `-> Value`) is represented as one VarDecl with an
// empty Name.
type SignatureDecl struct {
	Inputs  []VarDecl
	Outputs []VarDecl
	Pos     Position
}

// ImportDecl binds a local alias to an external node and the signature that
// node must satisfy: `import alias = target |...| -> ...`.
type ImportDecl struct {
	Alias     string
	Target    string
	Signature SignatureDecl
	Pos       Position
}

// NodeDecl declares a named node instance: `node id: ref` where ref is a
// builtin type name or `$alias` for an imported one.
type NodeDecl struct {
	Name   string
	Type   string // referenced type name, without the '$' marker
	Custom bool   // true when the reference carried the '$' marker
	Pos    Position
}

// FieldExpr is a socket reference: a root (node instance name or meta token)
// followed by a chain of identifiers addressing a socket and optionally one
// vector component.
type FieldExpr struct {
	Meta  MetaKind
	Root  string   // instance name when Meta == MetaNone
	Chain []string // trailing identifiers, possibly empty
	Pos   Position
}

// String renders the field the way it appears in source.
func (f *FieldExpr) String() string {
	s := f.Root
	if f.Meta != MetaNone {
		s = f.Meta.String()
	}
	for _, part := range f.Chain {
		s += "." + part
	}
	return s
}

// Literal is a scalar number or a fixed 3-component vector of numbers.
type Literal struct {
	Values []float64 // length 1 or 3
	Pos    Position
}

// Scalar reports whether the literal is a single number.
func (l *Literal) Scalar() bool { return len(l.Values) == 1 }

// Expr is a type constructor applied to a literal or a field, with an
// optional trailing component-access chain: `Color(1, 0.5, 0)`,
// `Value(n.vec.x)`, `Vec3(n.color).x`.
type Expr struct {
	Constructor string // "Value", "Color", or "Vec3"
	Literal     *Literal
	Field       *FieldExpr
	Trailing    []string
	Pos         Position
}

// LinkDecl wires a source (expression or field) into a target field:
// `link src -> dst`. Exactly one of Expr and Source is set.
type LinkDecl struct {
	Expr   *Expr
	Source *FieldExpr
	Target *FieldExpr
	Pos    Position
}

// File is the complete parsed representation of one .eray source file, in
// section order: own signature, imports, node declarations, links.
type File struct {
	Signature SignatureDecl
	Imports   []ImportDecl
	Nodes     []NodeDecl
	Links     []LinkDecl
}
