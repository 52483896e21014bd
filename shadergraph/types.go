package shadergraph

import "fmt"

// SocketType is one of the three socket value types a link can carry.
type SocketType int

const (
	Value SocketType = iota // scalar
	Color                   // 3-component, accessors r/g/b
	Vec3                    // 3-component, accessors x/y/z
)

var socketTypeNames = map[SocketType]string{
	Value: "Value",
	Color: "Color",
	Vec3:  "Vec3",
}

func (t SocketType) String() string {
	if name, ok := socketTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("SocketType(%d)", int(t))
}

// Components returns the number of scalar components of the type.
func (t SocketType) Components() int {
	if t == Value {
		return 1
	}
	return 3
}

// ParseSocketType converts a type name from source text. The set is closed;
// the lexer only ever produces these three names in type position.
func ParseSocketType(s string) (SocketType, bool) {
	switch s {
	case "Value":
		return Value, true
	case "Color":
		return Color, true
	case "Vec3":
		return Vec3, true
	default:
		return 0, false
	}
}

// componentAccessors maps each 3-component type to its legal trailing
// accessor identifiers.
var componentAccessors = map[SocketType][]string{
	Color: {"r", "g", "b"},
	Vec3:  {"x", "y", "z"},
}

// HasComponent reports whether name is a legal component accessor on t
// (e.g. "x" on Vec3, "g" on Color). Value has no components.
func (t SocketType) HasComponent(name string) bool {
	for _, c := range componentAccessors[t] {
		if c == name {
			return true
		}
	}
	return false
}

// Socket is a named, typed input or output slot. The single unnamed output
// form of a signature is a Socket with an empty Name.
type Socket struct {
	Name string
	Type SocketType
}

func (s Socket) String() string {
	if s.Name == "" {
		return s.Type.String()
	}
	return fmt.Sprintf("%s: %s", s.Name, s.Type)
}

// Signature is the typed interface of a node or of a file's own graph:
// ordered input sockets and ordered output sockets.
type Signature struct {
	Inputs  []Socket
	Outputs []Socket
}

// Input returns the input socket with the given name.
func (s Signature) Input(name string) (Socket, bool) {
	for _, sock := range s.Inputs {
		if sock.Name == name {
			return sock, true
		}
	}
	return Socket{}, false
}

// Output returns the output socket with the given name.
func (s Signature) Output(name string) (Socket, bool) {
	for _, sock := range s.Outputs {
		if sock.Name == name {
			return sock, true
		}
	}
	return Socket{}, false
}

// Equal reports exact structural equality: socket names, types, and order
// must match on both sides. Import resolution requires nothing weaker.
func (s Signature) Equal(other Signature) bool {
	if len(s.Inputs) != len(other.Inputs) || len(s.Outputs) != len(other.Outputs) {
		return false
	}
	for i, sock := range s.Inputs {
		if sock != other.Inputs[i] {
			return false
		}
	}
	for i, sock := range s.Outputs {
		if sock != other.Outputs[i] {
			return false
		}
	}
	return true
}

func (s Signature) String() string {
	in := ""
	for i, sock := range s.Inputs {
		if i > 0 {
			in += ", "
		}
		in += sock.String()
	}
	out := ""
	for i, sock := range s.Outputs {
		if i > 0 {
			out += ", "
		}
		out += sock.String()
	}
	if len(s.Outputs) == 1 && s.Outputs[0].Name != "" {
		return fmt.Sprintf("|%s| -> %s", in, out)
	}
	return fmt.Sprintf("|%s| -> (%s)", in, out)
}
