package shadergraph

import "fmt"

// Loader supplies node type signatures to a Registry. Builtin nodes are
// loaded eagerly when the registry is created; custom nodes are loaded
// lazily, the first time an import statement references their name.
type Loader interface {
	LoadBuiltinNodes() map[string]Signature
	LoadCustomNode(name string) (Signature, error)
}

// Registry holds the node type signatures known during one resolution pass:
// builtin primitives and custom (imported) node types. Lazy custom loads are
// cached. A shared registry is safe for concurrent resolution of independent
// files only once every custom node they import has been loaded; otherwise
// give each goroutine its own registry over the shared loader.
type Registry struct {
	loader   Loader
	builtins map[string]Signature
	customs  map[string]Signature
}

// NewRegistry creates a Registry backed by the given loader. The loader's
// builtin nodes are registered immediately.
func NewRegistry(loader Loader) *Registry {
	r := &Registry{
		loader:   loader,
		builtins: make(map[string]Signature),
		customs:  make(map[string]Signature),
	}
	if loader != nil {
		for name, sig := range loader.LoadBuiltinNodes() {
			r.builtins[name] = sig
		}
	}
	return r
}

// RegisterBuiltin adds a builtin node type signature.
func (r *Registry) RegisterBuiltin(name string, sig Signature) {
	r.builtins[name] = sig
}

// RegisterCustom adds a custom node type signature, as an already-loaded
// external node would be.
func (r *Registry) RegisterCustom(name string, sig Signature) {
	r.customs[name] = sig
}

// ResolveBuiltin returns the builtin signature registered under name.
func (r *Registry) ResolveBuiltin(name string) (Signature, bool) {
	sig, ok := r.builtins[name]
	return sig, ok
}

// Resolve returns the signature registered under name, consulting builtins
// first, then already-loaded customs, then the lazy loader. A loader miss is
// reported as the loader's error; an absent loader yields a plain not-found.
func (r *Registry) Resolve(name string) (Signature, error) {
	if sig, ok := r.builtins[name]; ok {
		return sig, nil
	}
	if sig, ok := r.customs[name]; ok {
		return sig, nil
	}
	if r.loader == nil {
		return Signature{}, fmt.Errorf("unknown node type %q", name)
	}
	sig, err := r.loader.LoadCustomNode(name)
	if err != nil {
		return Signature{}, err
	}
	r.customs[name] = sig
	return sig, nil
}
