// Package shaderlib provides the builtin node library and a filesystem
// loader for custom node types.
//
// The builtin set mirrors the standard shading nodes a renderer ships with:
// generators (flat_color, wave, noise), converters (rgb, combine, separate),
// mixers (mix_color), and scalar arithmetic (add). Custom nodes are .eray
// files looked up by name in a search directory and loaded lazily when an
// import first references them; only the file's own signature matters here.
package shaderlib

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/HoloTheDrunk/eray/eraylang"
	"github.com/HoloTheDrunk/eray/shadergraph"
)

// Builtins returns the builtin node type signatures keyed by name.
func Builtins() map[string]shadergraph.Signature {
	v := func(name string) shadergraph.Socket {
		return shadergraph.Socket{Name: name, Type: shadergraph.Value}
	}
	c := func(name string) shadergraph.Socket {
		return shadergraph.Socket{Name: name, Type: shadergraph.Color}
	}
	w := func(name string) shadergraph.Socket {
		return shadergraph.Socket{Name: name, Type: shadergraph.Vec3}
	}

	return map[string]shadergraph.Signature{
		// Generators
		"flat_color": {
			Inputs:  []shadergraph.Socket{v("red"), v("green"), v("blue")},
			Outputs: []shadergraph.Socket{c("color")},
		},
		"wave": {
			Inputs:  []shadergraph.Socket{v("x_fac"), v("y_fac")},
			Outputs: []shadergraph.Socket{v("value")},
		},
		"noise": {
			Inputs:  []shadergraph.Socket{v("x"), v("y")},
			Outputs: []shadergraph.Socket{v("value")},
		},

		// Converters
		"rgb": {
			Inputs:  []shadergraph.Socket{v("red"), v("green"), v("blue")},
			Outputs: []shadergraph.Socket{c("color")},
		},
		"combine": {
			Inputs:  []shadergraph.Socket{v("x"), v("y"), v("z")},
			Outputs: []shadergraph.Socket{w("vector")},
		},
		"separate": {
			Inputs:  []shadergraph.Socket{w("vector")},
			Outputs: []shadergraph.Socket{v("x"), v("y"), v("z")},
		},

		// Mixers
		"mix_color": {
			Inputs:  []shadergraph.Socket{c("left"), c("right"), v("factor")},
			Outputs: []shadergraph.Socket{c("color")},
		},

		// Arithmetic
		"add": {
			Inputs:  []shadergraph.Socket{v("lhs"), v("rhs")},
			Outputs: []shadergraph.Socket{v("value")},
		},
	}
}

// DirLoader loads custom node signatures from `<Root>/<name>.eray` files.
// A missing file means the node type does not exist; a file that cannot be
// read or parsed is a load failure.
type DirLoader struct {
	Root string
}

// NewDirLoader creates a loader rooted at the given directory. An empty
// root loads builtins only.
func NewDirLoader(root string) *DirLoader {
	return &DirLoader{Root: root}
}

// LoadBuiltinNodes implements shadergraph.Loader.
func (l *DirLoader) LoadBuiltinNodes() map[string]shadergraph.Signature {
	return Builtins()
}

// LoadCustomNode implements shadergraph.Loader. Only the file's leading
// signature is parsed; a body with its own problems surfaces when that file
// itself is built, not at import time.
func (l *DirLoader) LoadCustomNode(name string) (shadergraph.Signature, error) {
	if l.Root == "" {
		return shadergraph.Signature{}, fmt.Errorf("unknown node type %q", name)
	}

	path := filepath.Join(l.Root, name+".eray")
	src, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return shadergraph.Signature{}, fmt.Errorf("unknown node type %q", name)
		}
		return shadergraph.Signature{}, &shadergraph.LoadError{Name: name, Cause: err}
	}

	sig, err := eraylang.ParseSignature(src)
	if err != nil {
		return shadergraph.Signature{}, &shadergraph.LoadError{Name: name, Cause: err}
	}

	return shadergraph.SignatureFromDecl(sig), nil
}
